package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/chains/internal/paths"
	"github.com/mesh-intelligence/chains/internal/script"
	"github.com/mesh-intelligence/chains/pkg/types"
)

var runCmd = &cobra.Command{
	Use:   "run <script>",
	Short: "Run an operation script against a list",
	Long: `Run replays the ops of a YAML script against a fresh list and prints
one result per op followed by the final traversal.

The script is looked up as given, then under <config-dir>/scripts with and
without a .yaml suffix. The script header overrides config.yaml and the
environment; flags given on the command line override the script.

Runs whose ops had an allocation refused exit with code 1.`,
	Example: `  chains run ops.yaml
  chains run --topology circular --max-bytes 64 ops.yaml
  chains --json run ops`,
	Args: cobra.ExactArgs(1),
	RunE: runScript,
}

func init() {
	listFlags(runCmd)
}

func runScript(cmd *cobra.Command, args []string) error {
	path, err := paths.ResolveScript(configDir, args[0])
	if err != nil {
		return userError(fmt.Errorf("%s: %w", args[0], err))
	}
	s, err := script.Load(path)
	if err != nil {
		return userError(err)
	}

	rep, err := execute(cmd, s)
	if err != nil {
		return err
	}
	if err := printReports(cmd.OutOrStdout(), rep); err != nil {
		return sysError(err)
	}
	if n := rep.Refused(); n > 0 {
		return userError(fmt.Errorf("%d op(s) refused allocation", n))
	}
	return nil
}

// execute runs s with the resolved settings and command-line overrides.
func execute(cmd *cobra.Command, s *script.Script) (*script.Report, error) {
	cfg := s.Settings(settings)
	if err := overrides(cmd, &cfg, s); err != nil {
		return nil, userError(err)
	}
	rep, err := script.Run(s, cfg, logger.WithField("script", s.Name))
	if err != nil {
		if errors.Is(err, types.ErrTopologyEmpty) || errors.Is(err, types.ErrTopologyUnknown) ||
			errors.Is(err, types.ErrMaxNodesInvalid) || errors.Is(err, types.ErrMaxBytesInvalid) {
			return nil, userError(fmt.Errorf("invalid settings: %w", err))
		}
		return nil, sysError(err)
	}
	return rep, nil
}

// overrides applies the list flags the user set explicitly.
func overrides(cmd *cobra.Command, cfg *types.Config, s *script.Script) error {
	f := cmd.Flags()
	var err error
	if f.Changed("topology") {
		cfg.Topology, err = f.GetString("topology")
	}
	if err == nil && f.Changed("max-nodes") {
		cfg.MaxNodes, err = f.GetInt("max-nodes")
	}
	if err == nil && f.Changed("max-bytes") {
		cfg.MaxBytes, err = f.GetInt("max-bytes")
	}
	if err == nil && f.Changed("format") {
		s.Format, err = f.GetString("format")
		if err == nil {
			err = s.Validate()
		}
	}
	return err
}
