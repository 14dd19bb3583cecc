package types

import "errors"

// Config selects a list topology and its resource limits for chain.New.
type Config struct {
	Topology string `json:"topology" yaml:"topology"`
	MaxNodes int    `json:"max_nodes" yaml:"max_nodes"` // 0 means unlimited.
	MaxBytes int    `json:"max_bytes" yaml:"max_bytes"` // 0 means unlimited.
}

// Supported topology names.
const (
	TopologySingly   = "singly"
	TopologyDoubly   = "doubly"
	TopologyCircular = "circular"
)

// Topologies lists the topology names in a stable order for help output.
var Topologies = []string{
	TopologySingly,
	TopologyDoubly,
	TopologyCircular,
}

// Config validation errors.
var (
	ErrTopologyEmpty   = errors.New("topology must not be empty")
	ErrTopologyUnknown = errors.New("unknown topology")
	ErrMaxNodesInvalid = errors.New("max nodes must not be negative")
	ErrMaxBytesInvalid = errors.New("max bytes must not be negative")
)

// knownTopologies lists the topologies that Validate accepts.
var knownTopologies = map[string]bool{
	TopologySingly:   true,
	TopologyDoubly:   true,
	TopologyCircular: true,
}

// Validate checks that the Config is well-formed. It returns a sentinel error
// from this package on failure.
func (c Config) Validate() error {
	if c.Topology == "" {
		return ErrTopologyEmpty
	}
	if !knownTopologies[c.Topology] {
		return ErrTopologyUnknown
	}
	if c.MaxNodes < 0 {
		return ErrMaxNodesInvalid
	}
	if c.MaxBytes < 0 {
		return ErrMaxBytesInvalid
	}
	return nil
}
