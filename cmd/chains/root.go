package main

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/chains/internal/paths"
	"github.com/mesh-intelligence/chains/pkg/types"
)

// Global flag values.
var (
	flagConfigDir string
	flagJSON      bool
	flagLogLevel  string
)

// Set by PersistentPreRunE for all subcommands.
var (
	configDir string
	settings  types.Config
	logger    *logrus.Logger
)

var rootCmd = &cobra.Command{
	Use:           "chains",
	Short:         "chains exercises singly, doubly, and circular linked lists",
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == "version" {
			return nil
		}

		dir, err := paths.ResolveConfigDir(flagConfigDir)
		if err != nil {
			return sysError(err)
		}

		configDir = dir

		v, err := loadConfig(configDir, cmd.Flags())
		if err != nil {
			return sysError(err)
		}

		logger, err = newLogger(v.GetString(cfgKeyLogLevel), flagJSON, cmd.ErrOrStderr())
		if err != nil {
			return userError(err)
		}

		settings = configFrom(v)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfigDir, "config-dir", "", "configuration directory (default: $XDG_CONFIG_HOME/chains)")
	rootCmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "output as JSON")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", defaultLogLevel, "log level (trace, debug, info, warn, error)")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(demoCmd)
	rootCmd.AddCommand(runCmd)
}

// listFlags registers the flags that override the list settings.
func listFlags(cmd *cobra.Command) {
	cmd.Flags().String("topology", "", fmt.Sprintf("list topology %v", types.Topologies))
	cmd.Flags().Int("max-nodes", 0, "node limit (0 = unlimited)")
	cmd.Flags().Int("max-bytes", 0, "owned payload byte limit (0 = unlimited)")
	cmd.Flags().String("format", "", "payload format (auto, text, hex, int, float)")
}
