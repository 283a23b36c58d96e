package tri

import (
	"fmt"
	"time"
)

// EventWindowSummary is the aggregated view of governance activity over
// a time window [WindowStart, WindowEnd]. It is populated by the
// upstream event layer; this package never queries an event store.
//
// All counts are totals within the window. Timestamp slices carry one
// entry per event for features that decay with age. A zero-value
// LastEventTime means "no event time known", which is semantically
// distinct from a stale-but-known time.
type EventWindowSummary struct {
	WindowStart time.Time `json:"window_start"`
	WindowEnd   time.Time `json:"window_end"`

	// Governance integrity
	TotalDecisions        int         `json:"total_decisions"`
	DeniedDecisions       int         `json:"denied_decisions"`
	UnknownAgentDecisions int         `json:"unknown_agent_decisions"`
	ScopeViolations       []time.Time `json:"scope_violations,omitempty"`
	ForbiddenVerbAttempts int         `json:"forbidden_verb_attempts"`
	ToolRequests          int         `json:"tool_requests"`
	ToolDenials           int         `json:"tool_denials"`

	// Operational discipline
	TotalOperations       int `json:"total_operations"`
	Corrections           int `json:"corrections"`
	Escalations           int `json:"escalations"`
	RetriesAfterDeny      int `json:"retries_after_deny"`
	ArtifactVerifications int `json:"artifact_verifications"`
	ArtifactFailures      int `json:"artifact_failures"`

	// System drift
	DriftEvents        []time.Time `json:"drift_events,omitempty"`
	FingerprintChanges int         `json:"fingerprint_changes"`
	BootAttempts       int         `json:"boot_attempts"`
	BootFailures       int         `json:"boot_failures"`

	// Trust weight inputs
	GamedayPassing  int `json:"gameday_passing"`
	GamedayTotal    int `json:"gameday_total"`
	BoundExecutions int `json:"bound_executions"`
	TotalExecutions int `json:"total_executions"`

	LastEventTime time.Time `json:"last_event_time,omitempty"`
}

// Validate rejects malformed summaries. Negative counts and an inverted
// window are construction errors, never clamped. Subset counters must
// not exceed their totals, otherwise the ratio features would escape
// [0, 1].
func (s *EventWindowSummary) Validate() error {
	if s.WindowEnd.Before(s.WindowStart) {
		return fmt.Errorf("tri: window_end %s before window_start %s",
			s.WindowEnd.Format(time.RFC3339), s.WindowStart.Format(time.RFC3339))
	}

	counts := []struct {
		name  string
		value int
	}{
		{"total_decisions", s.TotalDecisions},
		{"denied_decisions", s.DeniedDecisions},
		{"unknown_agent_decisions", s.UnknownAgentDecisions},
		{"forbidden_verb_attempts", s.ForbiddenVerbAttempts},
		{"tool_requests", s.ToolRequests},
		{"tool_denials", s.ToolDenials},
		{"total_operations", s.TotalOperations},
		{"corrections", s.Corrections},
		{"escalations", s.Escalations},
		{"retries_after_deny", s.RetriesAfterDeny},
		{"artifact_verifications", s.ArtifactVerifications},
		{"artifact_failures", s.ArtifactFailures},
		{"fingerprint_changes", s.FingerprintChanges},
		{"boot_attempts", s.BootAttempts},
		{"boot_failures", s.BootFailures},
		{"gameday_passing", s.GamedayPassing},
		{"gameday_total", s.GamedayTotal},
		{"bound_executions", s.BoundExecutions},
		{"total_executions", s.TotalExecutions},
	}
	for _, c := range counts {
		if c.value < 0 {
			return fmt.Errorf("tri: negative count %s=%d", c.name, c.value)
		}
	}

	subsets := []struct {
		name   string
		subset int
		total  int
		of     string
	}{
		{"denied_decisions", s.DeniedDecisions, s.TotalDecisions, "total_decisions"},
		{"unknown_agent_decisions", s.UnknownAgentDecisions, s.TotalDecisions, "total_decisions"},
		{"tool_denials", s.ToolDenials, s.ToolRequests, "tool_requests"},
		{"artifact_failures", s.ArtifactFailures, s.ArtifactVerifications, "artifact_verifications"},
		{"boot_failures", s.BootFailures, s.BootAttempts, "boot_attempts"},
		{"gameday_passing", s.GamedayPassing, s.GamedayTotal, "gameday_total"},
		{"bound_executions", s.BoundExecutions, s.TotalExecutions, "total_executions"},
	}
	for _, c := range subsets {
		if c.subset > c.total {
			return fmt.Errorf("tri: %s=%d exceeds %s=%d", c.name, c.subset, c.of, c.total)
		}
	}

	return nil
}

// TotalEvents is the window event count used for density and confidence.
// Subset counters (denials, failures) are not added again: they are
// already inside their totals.
func (s *EventWindowSummary) TotalEvents() int {
	return s.TotalDecisions +
		len(s.ScopeViolations) +
		s.ForbiddenVerbAttempts +
		s.ToolRequests +
		s.ArtifactVerifications +
		s.TotalOperations +
		s.Corrections +
		s.Escalations +
		s.RetriesAfterDeny +
		len(s.DriftEvents) +
		s.FingerprintChanges +
		s.BootAttempts
}

// WindowHours is the window size in hours.
func (s *EventWindowSummary) WindowHours() float64 {
	return s.WindowEnd.Sub(s.WindowStart).Hours()
}
