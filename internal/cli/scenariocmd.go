package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/BIGmindz/ChainBridge-sub011/internal/scenario"
)

var scenarioJSON bool

func init() {
	rootCmd.AddCommand(scenarioCmd)
	scenarioCmd.Flags().BoolVar(&scenarioJSON, "json", false, "Output results as JSON")
}

var scenarioCmd = &cobra.Command{
	Use:   "scenario <files...>",
	Short: "Run YAML scoring scenarios",
	Long: "Evaluates each scenario file's cases against the engine and reports\n" +
		"pass/fail. Exits 1 if any case fails.",
	Args: cobra.MinimumNArgs(1),
	RunE: runScenario,
}

func runScenario(cmd *cobra.Command, args []string) error {
	now := time.Now().UTC()

	var results []*scenario.RunResult
	failed := false

	for _, path := range args {
		result, err := scenario.LoadAndRun(path, configPath, now)
		if err != nil {
			return err
		}
		if result.Failed > 0 {
			failed = true
		}
		results = append(results, result)
	}

	if scenarioJSON {
		out, err := scenario.FormatJSON(results)
		if err != nil {
			return err
		}
		fmt.Println(out)
	} else {
		fmt.Print(scenario.FormatText(results))
	}

	if failed {
		os.Exit(1)
	}
	return nil
}
