// Package script parses YAML operation scripts and replays them against a
// list. A script names its topology and limits and then lists operations,
// each with an ownership mode.
package script

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/mesh-intelligence/chains/internal/render"
	"github.com/mesh-intelligence/chains/pkg/payload"
	"github.com/mesh-intelligence/chains/pkg/types"
)

// Operation names.
const (
	OpPushFront      = "push_front"
	OpPushBack       = "push_back"
	OpInsertAt       = "insert_at"
	OpPushFrontNodes = "push_front_nodes"
	OpPushBackNodes  = "push_back_nodes"
	OpInsertNodesAt  = "insert_nodes_at"
	OpGet            = "get"
	OpFind           = "find"
	OpContains       = "contains"
	OpDeleteAt       = "delete_at"
	OpDeleteValue    = "delete_value"
	OpFreeAll        = "free_all"
	OpLen            = "len"
)

// Script validation errors.
var (
	ErrNoOps         = errors.New("script has no ops")
	ErrUnknownOp     = errors.New("unknown op")
	ErrMissingIndex  = errors.New("op requires an index")
	ErrMissingValue  = errors.New("op requires a value")
	ErrMissingValues = errors.New("op requires values")
)

type opKind struct {
	index  bool // needs Index
	value  bool // needs Value or Hex
	values bool // needs Values
}

var opKinds = map[string]opKind{
	OpPushFront:      {value: true},
	OpPushBack:       {value: true},
	OpInsertAt:       {index: true, value: true},
	OpPushFrontNodes: {values: true},
	OpPushBackNodes:  {values: true},
	OpInsertNodesAt:  {index: true, values: true},
	OpGet:            {index: true},
	OpFind:           {value: true},
	OpContains:       {value: true},
	OpDeleteAt:       {index: true},
	OpDeleteValue:    {value: true},
	OpFreeAll:        {},
	OpLen:            {},
}

// Script is the parsed form of a script file.
type Script struct {
	Name     string `yaml:"name"`
	Topology string `yaml:"topology"`
	MaxNodes int    `yaml:"max_nodes"`
	MaxBytes int    `yaml:"max_bytes"`
	Format   string `yaml:"format"`
	Ops      []Op   `yaml:"ops"`
}

// Op is one step of a script. Value is taken as text; Hex, when set,
// replaces it with raw bytes. Values lists the payloads of a detached node
// chain for the *_nodes operations.
type Op struct {
	Op     string   `yaml:"op"`
	Mode   string   `yaml:"mode,omitempty"`
	Index  *int     `yaml:"index,omitempty"`
	Value  *string  `yaml:"value,omitempty"`
	Hex    string   `yaml:"hex,omitempty"`
	Values []string `yaml:"values,omitempty"`
}

// Parse decodes and validates a script.
func Parse(data []byte) (*Script, error) {
	var s Script
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parsing script: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Load reads and parses the script at path.
func Load(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading script: %w", err)
	}
	s, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// Validate checks the script header and every op before anything runs.
func (s *Script) Validate() error {
	if s.Topology != "" {
		cfg := types.Config{Topology: s.Topology, MaxNodes: s.MaxNodes, MaxBytes: s.MaxBytes}
		if err := cfg.Validate(); err != nil {
			return err
		}
	}
	if s.MaxNodes < 0 {
		return types.ErrMaxNodesInvalid
	}
	if s.MaxBytes < 0 {
		return types.ErrMaxBytesInvalid
	}
	if _, err := render.ParseFormat(s.Format); err != nil {
		return err
	}
	if len(s.Ops) == 0 {
		return ErrNoOps
	}
	for i := range s.Ops {
		if err := s.Ops[i].validate(); err != nil {
			return fmt.Errorf("op %d (%s): %w", i+1, s.Ops[i].Op, err)
		}
	}
	return nil
}

func (o *Op) validate() error {
	o.Op = strings.ToLower(strings.TrimSpace(o.Op))
	k, ok := opKinds[o.Op]
	if !ok {
		return ErrUnknownOp
	}
	if _, err := payload.ParseMode(o.Mode); o.Mode != "" && err != nil {
		return err
	}
	if k.index && o.Index == nil {
		return ErrMissingIndex
	}
	if k.value && o.Value == nil && o.Hex == "" {
		return ErrMissingValue
	}
	if k.values && len(o.Values) == 0 {
		return ErrMissingValues
	}
	if _, err := o.bytes(); err != nil {
		return err
	}
	return nil
}

// mode returns the op's ownership mode, defaulting to copy.
func (o *Op) mode() payload.Mode {
	if o.Mode == "" {
		return payload.ModeCopy
	}
	m, _ := payload.ParseMode(o.Mode)
	return m
}

// bytes returns a fresh buffer holding the op's value.
func (o *Op) bytes() ([]byte, error) {
	if o.Hex != "" {
		b, err := decodeHex(o.Hex)
		if err != nil {
			return nil, fmt.Errorf("hex value: %w", err)
		}
		return b, nil
	}
	if o.Value == nil {
		return nil, nil
	}
	return []byte(*o.Value), nil
}
