package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "indra",
	Short: "Indra - climate intervention analysis service",
	Long: `Indra analyzes proposed climate interventions for the Indian monsoon
system and serves the results over a streaming HTTP API.

It provides:
  - Mechanism classification and feasibility scoring for intervention text
  - Staged analysis streamed as newline-delimited JSON
  - Intensity mitigation applied to a baseline cyclone track dataset
  - Literature retrieval from the arXiv API
  - A monsoon hazard monitor with scheduled scans and a historical archive`,
	Version: Version,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Global persistent flags (available to all subcommands)
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "config.yaml", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
