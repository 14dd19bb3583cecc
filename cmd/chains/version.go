package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "v0.1.0"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the chains version",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		if flagJSON {
			writeJSON(cmd.OutOrStdout(), map[string]string{"version": version})
			return
		}
		fmt.Fprintln(cmd.OutOrStdout(), "chains", version)
	},
}
