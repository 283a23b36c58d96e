package tri

import (
	"strings"
	"testing"
	"time"
)

var testNow = time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)

// activeSummary returns a 24h window with typical healthy activity.
func activeSummary() EventWindowSummary {
	return EventWindowSummary{
		WindowStart: testNow.Add(-24 * time.Hour),
		WindowEnd:   testNow,

		TotalDecisions:        100,
		DeniedDecisions:       5,
		UnknownAgentDecisions: 1,
		ScopeViolations: []time.Time{
			testNow.Add(-4 * time.Hour),
			testNow.Add(-12 * time.Hour),
		},
		ForbiddenVerbAttempts: 1,
		ToolRequests:          50,
		ToolDenials:           2,

		TotalOperations:       200,
		Corrections:           3,
		Escalations:           5,
		RetriesAfterDeny:      1,
		ArtifactVerifications: 20,
		ArtifactFailures:      1,

		DriftEvents:        []time.Time{testNow.Add(-6 * time.Hour)},
		FingerprintChanges: 1,
		BootAttempts:       3,
		BootFailures:       0,

		GamedayPassing:  130,
		GamedayTotal:    133,
		BoundExecutions: 180,
		TotalExecutions: 200,

		LastEventTime: testNow.Add(-30 * time.Minute),
	}
}

func TestValidateAcceptsHealthySummary(t *testing.T) {
	s := activeSummary()
	if err := s.Validate(); err != nil {
		t.Fatalf("expected valid summary, got %v", err)
	}
}

func TestValidateRejectsInvertedWindow(t *testing.T) {
	s := activeSummary()
	s.WindowStart, s.WindowEnd = s.WindowEnd, s.WindowStart
	err := s.Validate()
	if err == nil {
		t.Fatal("expected error for inverted window")
	}
	if !strings.Contains(err.Error(), "window_end") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidateRejectsNegativeCounts(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*EventWindowSummary)
	}{
		{"total_decisions", func(s *EventWindowSummary) { s.TotalDecisions = -1 }},
		{"denied_decisions", func(s *EventWindowSummary) { s.DeniedDecisions = -1 }},
		{"tool_requests", func(s *EventWindowSummary) { s.ToolRequests = -1 }},
		{"artifact_failures", func(s *EventWindowSummary) { s.ArtifactFailures = -1 }},
		{"boot_attempts", func(s *EventWindowSummary) { s.BootAttempts = -1 }},
		{"gameday_total", func(s *EventWindowSummary) { s.GamedayTotal = -1 }},
		{"total_executions", func(s *EventWindowSummary) { s.TotalExecutions = -1 }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := activeSummary()
			tc.mutate(&s)
			if err := s.Validate(); err == nil {
				t.Fatalf("expected error for negative %s", tc.name)
			}
		})
	}
}

func TestValidateRejectsSubsetExceedingTotal(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*EventWindowSummary)
	}{
		{"denied over decisions", func(s *EventWindowSummary) { s.DeniedDecisions = s.TotalDecisions + 1 }},
		{"unknown over decisions", func(s *EventWindowSummary) { s.UnknownAgentDecisions = s.TotalDecisions + 1 }},
		{"tool denials over requests", func(s *EventWindowSummary) { s.ToolDenials = s.ToolRequests + 1 }},
		{"failures over verifications", func(s *EventWindowSummary) { s.ArtifactFailures = s.ArtifactVerifications + 1 }},
		{"boot failures over attempts", func(s *EventWindowSummary) { s.BootFailures = s.BootAttempts + 1 }},
		{"gameday passing over total", func(s *EventWindowSummary) { s.GamedayPassing = s.GamedayTotal + 1 }},
		{"bound over total executions", func(s *EventWindowSummary) { s.BoundExecutions = s.TotalExecutions + 1 }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := activeSummary()
			tc.mutate(&s)
			if err := s.Validate(); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestTotalEventsExcludesSubsetCounters(t *testing.T) {
	s := activeSummary()
	// 100 decisions + 2 scope + 1 forbidden + 50 tool requests +
	// 20 verifications + 200 operations + 3 corrections + 5 escalations +
	// 1 retry + 1 drift + 1 fingerprint + 3 boots. Denials, failures,
	// gamedays, and executions do not add.
	want := 100 + 2 + 1 + 50 + 20 + 200 + 3 + 5 + 1 + 1 + 1 + 3
	if got := s.TotalEvents(); got != want {
		t.Fatalf("TotalEvents = %d, want %d", got, want)
	}
}

func TestWindowHours(t *testing.T) {
	s := activeSummary()
	if got := s.WindowHours(); got != 24 {
		t.Fatalf("WindowHours = %g, want 24", got)
	}
}
