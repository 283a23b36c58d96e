package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/BIGmindz/ChainBridge-sub011/internal/eventlog"
)

var watchWindowHours float64

func init() {
	rootCmd.AddCommand(watchCmd)
	watchCmd.Flags().Float64Var(&watchWindowHours, "window", 24, "Window size in hours")
}

var watchCmd = &cobra.Command{
	Use:   "watch <path>",
	Short: "Rescore the event log window whenever the log changes",
	Long: "Prints the current TRIResult, then watches the log file and reprints\n" +
		"after each append. Display convenience only: each recomputation reads a\n" +
		"fresh aggregated window, the engine itself stays batch.",
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

func runWatch(cmd *cobra.Command, args []string) error {
	path := args[0]

	out := cmd.OutOrStdout()
	rescore := func() {
		now := time.Now().UTC()
		summary, err := eventlog.BuildWindowSummaryFromFile(path, watchWindowHours, now)
		if err != nil {
			fmt.Fprintf(os.Stderr, "rescore failed: %v\n", err)
			return
		}
		if err := computeAndPrint(out, summary, now, false); err != nil {
			fmt.Fprintf(os.Stderr, "rescore failed: %v\n", err)
		}
	}

	rescore()

	watcher, err := eventlog.NewWatcher(path, rescore)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return watcher.Run(ctx)
}
