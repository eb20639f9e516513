// Package main provides the entry point for the repoviz backend.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/repoviz/repoviz/cmd/repoviz/commands"
	"github.com/repoviz/repoviz/pkg/version"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "repoviz",
		Short: "Repoviz - 3D commit history visualization backend",
		Long: `Repoviz analyzes a git repository's commit graph and serves the result
as visualization data: a 3D spatial embedding of commits, a per-file
change heatmap and a branch-graph summary.

Commands:
  serve     Start the visualization HTTP server
  analyze   Run an analysis pass and print the result`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(commands.NewServeCommand())
	rootCmd.AddCommand(commands.NewAnalyzeCommand())
	rootCmd.AddCommand(versionCmd())

	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Fprintf(os.Stdout, "repoviz %s (commit: %s, built: %s)\n",
				version.Version, version.Commit, version.Date)
		},
	}
}
