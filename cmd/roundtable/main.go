package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	root := &cobra.Command{
		Use:   "roundtable",
		Short: "Multi-role expert roundtable orchestrator",
		Long:  "Drives a simulated roundtable of expert roles through ten discussion phases, with live user interventions, controversy-driven polls and a final report. Generation runs via OpenRouter.",
	}

	root.PersistentFlags().String("api-key", "", "OpenRouter API key (overrides OPENROUTER_API_KEY env var)")
	root.PersistentFlags().String("output-dir", "", "Output directory for session artifacts")
	root.PersistentFlags().String("language", "", "Discussion language tag (e.g. en, nl)")
	root.PersistentFlags().String("log-file", "", "Log file path")
	root.PersistentFlags().Bool("verbose", false, "Verbose console logging")

	root.AddCommand(newDiscussCmd())
	root.AddCommand(newReportCmd())
	root.AddCommand(newCatalogCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
