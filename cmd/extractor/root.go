package main

import (
	"github.com/spf13/cobra"

	"github.com/mwootten/extractor/internal/api"
	"github.com/mwootten/extractor/version"
)

var (
	cfgFile      string
	homeDir      string
	outputFormat string
)

var rootCmd = &cobra.Command{
	Use:   "extractor",
	Short: "Structured text extraction with LLM prompts and few-shot examples",
	Long: `Extractor turns a prompt description, few-shot examples, and a target
text into structured extractions using an LLM, with each extraction
aligned back to its span in the source text.

It ships as:
  - An HTTP server exposing /schema and /extract
  - A terminal editor for composing and submitting extraction requests
  - CLI commands that call a running server`,
	Version: version.GitRelease,
}

func init() {
	rootCmd.PersistentFlags().StringVar(
		&cfgFile, "config", "", "config file (default: ./config.yaml or ~/.extractor/config.yaml)",
	)
	rootCmd.PersistentFlags().StringVar(
		&homeDir, "home", "", "extractor home directory (default: ~/.extractor)",
	)
	rootCmd.PersistentFlags().StringVarP(
		&outputFormat, "output", "o", "yaml", "output format: yaml or json",
	)

	// Set output format before any command runs
	rootCmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		api.SetOutputFormat(outputFormat)
	}

	rootCmd.AddCommand(versionCmd)
}
