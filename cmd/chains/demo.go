package main

import (
	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/chains/internal/script"
)

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Walk through the list operations of each topology",
	Long: `Demo runs the built-in walkthrough for one topology, or for all three
when --topology is not given. Each walkthrough inserts payloads in every
ownership mode, looks some up, deletes some, and prints the final list.`,
	Example: `  chains demo
  chains demo --topology doubly
  chains --json demo --topology circular`,
	Args: cobra.NoArgs,
	RunE: runDemo,
}

func init() {
	listFlags(demoCmd)
}

func runDemo(cmd *cobra.Command, args []string) error {
	names := script.Demos()
	if cmd.Flags().Changed("topology") {
		name, _ := cmd.Flags().GetString("topology")
		names = []string{name}
	}

	reports := make([]*script.Report, 0, len(names))
	for _, name := range names {
		s, err := script.Demo(name)
		if err != nil {
			return userError(err)
		}
		rep, err := execute(cmd, s)
		if err != nil {
			return err
		}
		reports = append(reports, rep)
	}
	if err := printReports(cmd.OutOrStdout(), reports...); err != nil {
		return sysError(err)
	}
	return nil
}
