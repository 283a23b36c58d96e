package cli

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/BIGmindz/ChainBridge-sub011/internal/tri"
)

var (
	demoNow     string
	demoExplain bool
)

func init() {
	rootCmd.AddCommand(demoCmd)
	demoCmd.Flags().StringVar(&demoNow, "now", "", "Evaluation clock, RFC 3339 (default: current UTC time)")
	demoCmd.Flags().BoolVar(&demoExplain, "explain", false, "Print the attribution table instead of JSON")
}

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Score a synthetic 24h window",
	Long: "Builds a synthetic day of governance activity (a lightly noisy but\n" +
		"healthy system) and prints its TRIResult.",
	RunE: runDemo,
}

func runDemo(cmd *cobra.Command, args []string) error {
	now, err := parseNow(demoNow)
	if err != nil {
		return err
	}
	return computeAndPrint(cmd.OutOrStdout(), DemoSummary(now), now, demoExplain)
}

// DemoSummary is a synthetic 24h window: a mostly healthy system with a
// handful of denials, two aging scope violations, and strong gameday
// coverage.
func DemoSummary(now time.Time) tri.EventWindowSummary {
	return tri.EventWindowSummary{
		WindowStart: now.Add(-24 * time.Hour),
		WindowEnd:   now,

		TotalDecisions:        100,
		DeniedDecisions:       5,
		UnknownAgentDecisions: 0,
		ScopeViolations: []time.Time{
			now.Add(-4 * time.Hour),
			now.Add(-12 * time.Hour),
		},
		ForbiddenVerbAttempts: 1,
		ToolRequests:          50,
		ToolDenials:           2,

		TotalOperations:       200,
		Corrections:           3,
		Escalations:           5,
		RetriesAfterDeny:      1,
		ArtifactVerifications: 20,
		ArtifactFailures:      0,

		FingerprintChanges: 0,
		BootAttempts:       3,
		BootFailures:       0,

		GamedayPassing:  130,
		GamedayTotal:    133,
		BoundExecutions: 180,
		TotalExecutions: 200,

		LastEventTime: now.Add(-30 * time.Minute),
	}
}
