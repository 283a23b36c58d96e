package scenario

import (
	"time"

	"github.com/BIGmindz/ChainBridge-sub011/internal/tri"
)

// SummarySpec describes an event window in YAML. Event ages are hour
// offsets before the evaluation clock so scenario files stay valid
// forever.
type SummarySpec struct {
	WindowHours float64 `yaml:"window_hours"`

	TotalDecisions        int `yaml:"total_decisions"`
	DeniedDecisions       int `yaml:"denied_decisions"`
	UnknownAgentDecisions int `yaml:"unknown_agent_decisions"`
	ForbiddenVerbAttempts int `yaml:"forbidden_verb_attempts"`
	ToolRequests          int `yaml:"tool_requests"`
	ToolDenials           int `yaml:"tool_denials"`

	TotalOperations       int `yaml:"total_operations"`
	Corrections           int `yaml:"corrections"`
	Escalations           int `yaml:"escalations"`
	RetriesAfterDeny      int `yaml:"retries_after_deny"`
	ArtifactVerifications int `yaml:"artifact_verifications"`
	ArtifactFailures      int `yaml:"artifact_failures"`

	FingerprintChanges int `yaml:"fingerprint_changes"`
	BootAttempts       int `yaml:"boot_attempts"`
	BootFailures       int `yaml:"boot_failures"`

	GamedayPassing  int `yaml:"gameday_passing"`
	GamedayTotal    int `yaml:"gameday_total"`
	BoundExecutions int `yaml:"bound_executions"`
	TotalExecutions int `yaml:"total_executions"`

	ScopeViolationHoursAgo []float64 `yaml:"scope_violation_hours_ago"`
	DriftHoursAgo          []float64 `yaml:"drift_hours_ago"`
	LastEventHoursAgo      *float64  `yaml:"last_event_hours_ago"`
}

// Summary materializes the spec against a concrete clock.
func (sp SummarySpec) Summary(now time.Time) tri.EventWindowSummary {
	window := sp.WindowHours
	if window <= 0 {
		window = 24
	}

	s := tri.EventWindowSummary{
		WindowStart: now.Add(-time.Duration(window * float64(time.Hour))),
		WindowEnd:   now,

		TotalDecisions:        sp.TotalDecisions,
		DeniedDecisions:       sp.DeniedDecisions,
		UnknownAgentDecisions: sp.UnknownAgentDecisions,
		ForbiddenVerbAttempts: sp.ForbiddenVerbAttempts,
		ToolRequests:          sp.ToolRequests,
		ToolDenials:           sp.ToolDenials,

		TotalOperations:       sp.TotalOperations,
		Corrections:           sp.Corrections,
		Escalations:           sp.Escalations,
		RetriesAfterDeny:      sp.RetriesAfterDeny,
		ArtifactVerifications: sp.ArtifactVerifications,
		ArtifactFailures:      sp.ArtifactFailures,

		FingerprintChanges: sp.FingerprintChanges,
		BootAttempts:       sp.BootAttempts,
		BootFailures:       sp.BootFailures,

		GamedayPassing:  sp.GamedayPassing,
		GamedayTotal:    sp.GamedayTotal,
		BoundExecutions: sp.BoundExecutions,
		TotalExecutions: sp.TotalExecutions,
	}

	for _, h := range sp.ScopeViolationHoursAgo {
		s.ScopeViolations = append(s.ScopeViolations, now.Add(-time.Duration(h*float64(time.Hour))))
	}
	for _, h := range sp.DriftHoursAgo {
		s.DriftEvents = append(s.DriftEvents, now.Add(-time.Duration(h*float64(time.Hour))))
	}
	if sp.LastEventHoursAgo != nil {
		s.LastEventTime = now.Add(-time.Duration(*sp.LastEventHoursAgo * float64(time.Hour)))
	}

	return s
}

// Case is one scoring expectation within a scenario.
type Case struct {
	Name    string      `yaml:"name"`
	Summary SummarySpec `yaml:"summary"`

	// ExpectTier is the required tier (MINIMAL..CRITICAL or UNKNOWN).
	ExpectTier string `yaml:"expect_tier"`

	// ExpectMin/ExpectMax optionally bound the TRI value.
	ExpectMin *float64 `yaml:"expect_min"`
	ExpectMax *float64 `yaml:"expect_max"`
}

// Scenario is a named collection of scoring cases.
type Scenario struct {
	Name  string `yaml:"name"`
	Cases []Case `yaml:"cases"`
}

// CaseResult is the outcome of evaluating one case.
type CaseResult struct {
	Index    int      `json:"index"`
	Name     string   `json:"name"`
	Passed   bool     `json:"passed"`
	TRI      *float64 `json:"tri"`
	Tier     string   `json:"tier"`
	Expected string   `json:"expected"`
	Reason   string   `json:"reason,omitempty"`
}

// RunResult is the outcome of running all cases in one scenario file.
type RunResult struct {
	File   string       `json:"file"`
	Name   string       `json:"name"`
	Total  int          `json:"total"`
	Passed int          `json:"passed"`
	Failed int          `json:"failed"`
	Cases  []CaseResult `json:"cases"`
}
