package cli

import (
	"os"

	"github.com/spf13/cobra"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "triwatch",
	Short: "Advisory Trust Risk Index over governance event windows",
	Long: "Computes a deterministic, explainable Trust Risk Index from an aggregated\n" +
		"window of governance events. Output is advisory only: triwatch observes\n" +
		"decisions, it never makes or gates them.",
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to engine config YAML (defaults apply when missing)")
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
