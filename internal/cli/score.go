package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/BIGmindz/ChainBridge-sub011/internal/tri"
)

var (
	scoreNow     string
	scoreExplain bool
)

func init() {
	rootCmd.AddCommand(scoreCmd)
	scoreCmd.Flags().StringVar(&scoreNow, "now", "", "Evaluation clock, RFC 3339 (default: current UTC time)")
	scoreCmd.Flags().BoolVar(&scoreExplain, "explain", false, "Print the attribution table instead of JSON")
}

var scoreCmd = &cobra.Command{
	Use:   "score [summary.json]",
	Short: "Score an event window summary",
	Long: "Reads an EventWindowSummary JSON document from a file (or stdin when no\n" +
		"argument is given) and prints the TRIResult JSON.",
	Args: cobra.MaximumNArgs(1),
	RunE: runScore,
}

func runScore(cmd *cobra.Command, args []string) error {
	var data []byte
	var err error
	if len(args) == 1 {
		data, err = os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("read summary: %w", err)
		}
	} else {
		data, err = io.ReadAll(os.Stdin)
		if err != nil {
			return fmt.Errorf("read stdin: %w", err)
		}
	}

	var summary tri.EventWindowSummary
	if err := json.Unmarshal(data, &summary); err != nil {
		return fmt.Errorf("parse summary: %w", err)
	}

	now, err := parseNow(scoreNow)
	if err != nil {
		return err
	}

	return computeAndPrint(cmd.OutOrStdout(), summary, now, scoreExplain)
}

// parseNow resolves the evaluation clock. The engine never samples the
// wall clock itself; the CLI does it exactly once here.
func parseNow(flag string) (time.Time, error) {
	if flag == "" {
		return time.Now().UTC(), nil
	}
	t, err := time.Parse(time.RFC3339, flag)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse --now: %w", err)
	}
	return t.UTC(), nil
}

// computeAndPrint scores a summary and writes the result to w.
func computeAndPrint(w io.Writer, summary tri.EventWindowSummary, now time.Time, explain bool) error {
	cfg, err := tri.LoadConfig(configPath)
	if err != nil {
		return err
	}

	result, err := tri.NewEngine(cfg).Compute(summary, now)
	if err != nil {
		return err
	}

	if explain {
		fmt.Fprint(w, result.ExplainText())
		return nil
	}

	out, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal result: %w", err)
	}
	fmt.Fprintln(w, string(out))
	return nil
}
