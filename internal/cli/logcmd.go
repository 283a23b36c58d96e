package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/BIGmindz/ChainBridge-sub011/internal/eventlog"
)

var (
	logAppendKind    string
	logAppendOutcome string
	logAppendAgent   string
	logWindowHours   float64
	logScore         bool
	logNow           string
)

func init() {
	rootCmd.AddCommand(logCmd)
	logCmd.AddCommand(logAppendCmd)
	logCmd.AddCommand(logVerifyCmd)
	logCmd.AddCommand(logSummaryCmd)

	logAppendCmd.Flags().StringVar(&logAppendKind, "kind", "", "Event kind (decision, scope_violation, drift, ...)")
	logAppendCmd.Flags().StringVar(&logAppendOutcome, "outcome", "", "Event outcome (allowed, denied, pass, fail, bound, unbound)")
	logAppendCmd.Flags().StringVar(&logAppendAgent, "agent", "", "Agent identifier")
	logAppendCmd.MarkFlagRequired("kind")

	logSummaryCmd.Flags().Float64Var(&logWindowHours, "window", 24, "Window size in hours")
	logSummaryCmd.Flags().BoolVar(&logScore, "score", false, "Score the aggregated window instead of printing it")
	logSummaryCmd.Flags().StringVar(&logNow, "now", "", "Evaluation clock, RFC 3339 (default: current UTC time)")
}

var logCmd = &cobra.Command{
	Use:   "log",
	Short: "Governance event log operations",
	Long:  "Commands for appending to, verifying, and aggregating the hash-chained\ngovernance event log that feeds the TRI engine.",
}

var logAppendCmd = &cobra.Command{
	Use:   "append <path>",
	Short: "Append one event to the log",
	Args:  cobra.ExactArgs(1),
	RunE:  runLogAppend,
}

var logVerifyCmd = &cobra.Command{
	Use:   "verify <path>",
	Short: "Verify hash chain integrity of an event log",
	Long:  "Walks the JSONL event log and validates that every entry's prev_hash\nmatches the SHA-256 of the previous entry. Exits 0 if valid, 1 if tampered.",
	Args:  cobra.ExactArgs(1),
	RunE:  runLogVerify,
}

var logSummaryCmd = &cobra.Command{
	Use:   "summary <path>",
	Short: "Aggregate a window of the log into an event window summary",
	Long:  "Scans the event log read-only, aggregates events inside the window into\nan EventWindowSummary, and prints it (or its TRIResult with --score).",
	Args:  cobra.ExactArgs(1),
	RunE:  runLogSummary,
}

func runLogAppend(cmd *cobra.Command, args []string) error {
	log, err := eventlog.Open(args[0])
	if err != nil {
		return err
	}
	defer log.Close()

	return log.Append(eventlog.Event{
		Kind:    eventlog.Kind(logAppendKind),
		Outcome: logAppendOutcome,
		Agent:   logAppendAgent,
	})
}

func runLogVerify(cmd *cobra.Command, args []string) error {
	result := eventlog.Verify(args[0])
	if result.Valid {
		fmt.Printf("OK: %d entries verified\n", result.Lines)
		return nil
	}
	fmt.Fprintf(os.Stderr, "FAILED at line %d: %s\n", result.ErrorLine, result.Error)
	os.Exit(1)
	return nil
}

func runLogSummary(cmd *cobra.Command, args []string) error {
	now, err := parseNow(logNow)
	if err != nil {
		return err
	}

	summary, err := eventlog.BuildWindowSummaryFromFile(args[0], logWindowHours, now)
	if err != nil {
		return err
	}

	if logScore {
		return computeAndPrint(cmd.OutOrStdout(), summary, now, false)
	}

	out, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal summary: %w", err)
	}
	fmt.Println(string(out))
	return nil
}
