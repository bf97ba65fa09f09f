package main

import (
	"github.com/spf13/cobra"

	"github.com/readlite/readlite/internal/api"
	"github.com/readlite/readlite/version"
)

var (
	cfgFile      string
	homeDir      string
	outputFormat string
)

var rootCmd = &cobra.Command{
	Use:   "readlite",
	Short: "CEFR-graded text simplification pipeline for ESL readers",
	Long: `readlite turns public-domain books into CEFR-graded ESL reading material.

The pipeline:
  - Fetches plain-text books from Project Gutenberg
  - Detects the text's historical era (early-modern, Victorian, ...)
  - Chunks the text once, for both display and audio
  - Simplifies each chunk per CEFR level (A1-C2) with a quality-gated retry loop
  - Generates per-chunk audio with the same chunk boundaries`,
	Version: version.GitRelease,
}

func init() {
	rootCmd.PersistentFlags().StringVar(
		&cfgFile, "config", "", "config file (default: ./config.yaml or ~/.readlite/config.yaml)",
	)
	rootCmd.PersistentFlags().StringVar(
		&homeDir, "home", "", "readlite home directory (default: ~/.readlite)",
	)
	rootCmd.PersistentFlags().StringVarP(
		&outputFormat, "output", "o", "yaml", "output format: yaml or json",
	)

	// Set output format before any command runs
	rootCmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		api.SetOutputFormat(outputFormat)
	}

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(fetchCmd)
	rootCmd.AddCommand(simplifyCmd)
	rootCmd.AddCommand(audioCmd)
}
