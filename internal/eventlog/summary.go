package eventlog

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/BIGmindz/ChainBridge-sub011/internal/tri"
)

// BuildWindowSummary scans a JSONL event log and aggregates the events
// falling inside [now - windowHours, now] into a validated
// EventWindowSummary. The scan is strictly read-only; events dated
// after now are ignored. LastEventTime is the latest event at or
// before now across the whole log, so staleness survives an empty
// window.
func BuildWindowSummary(r io.Reader, windowHours float64, now time.Time) (tri.EventWindowSummary, error) {
	if windowHours <= 0 {
		return tri.EventWindowSummary{}, fmt.Errorf("eventlog: window must be positive, got %gh", windowHours)
	}

	start := now.Add(-time.Duration(windowHours * float64(time.Hour)))
	s := tri.EventWindowSummary{
		WindowStart: start,
		WindowEnd:   now,
	}

	scanner := bufio.NewScanner(r)
	lineNum := 0
	var lastEvent time.Time

	for scanner.Scan() {
		lineNum++
		var e Event
		if err := json.Unmarshal(scanner.Bytes(), &e); err != nil {
			return tri.EventWindowSummary{}, fmt.Errorf("eventlog: line %d: %w", lineNum, err)
		}
		ts, err := e.Time()
		if err != nil {
			return tri.EventWindowSummary{}, fmt.Errorf("eventlog: line %d: %w", lineNum, err)
		}

		if ts.After(now) {
			continue
		}
		if ts.After(lastEvent) {
			lastEvent = ts
		}
		if ts.Before(start) {
			continue
		}

		apply(&s, e, ts)
	}
	if err := scanner.Err(); err != nil {
		return tri.EventWindowSummary{}, fmt.Errorf("eventlog: scan: %w", err)
	}

	s.LastEventTime = lastEvent

	if err := s.Validate(); err != nil {
		return tri.EventWindowSummary{}, err
	}
	return s, nil
}

// BuildWindowSummaryFromFile is BuildWindowSummary over a log file.
func BuildWindowSummaryFromFile(path string, windowHours float64, now time.Time) (tri.EventWindowSummary, error) {
	f, err := os.Open(path)
	if err != nil {
		return tri.EventWindowSummary{}, fmt.Errorf("eventlog: open %s: %w", path, err)
	}
	defer f.Close()
	return BuildWindowSummary(f, windowHours, now)
}

// apply folds one in-window event into the summary counters.
func apply(s *tri.EventWindowSummary, e Event, ts time.Time) {
	switch e.Kind {
	case KindDecision:
		s.TotalDecisions++
		switch e.Outcome {
		case OutcomeDenied:
			s.DeniedDecisions++
		case OutcomeUnknownAgent:
			s.UnknownAgentDecisions++
		}
	case KindScopeViolation:
		s.ScopeViolations = append(s.ScopeViolations, ts)
	case KindForbiddenVerb:
		s.ForbiddenVerbAttempts++
	case KindToolRequest:
		s.ToolRequests++
		if e.Outcome == OutcomeDenied {
			s.ToolDenials++
		}
	case KindArtifactVerification:
		s.ArtifactVerifications++
		if e.Outcome == OutcomeFail {
			s.ArtifactFailures++
		}
	case KindOperation:
		s.TotalOperations++
	case KindCorrection:
		s.Corrections++
	case KindEscalation:
		s.Escalations++
	case KindRetryAfterDeny:
		s.RetriesAfterDeny++
	case KindDrift:
		s.DriftEvents = append(s.DriftEvents, ts)
	case KindFingerprintChange:
		s.FingerprintChanges++
	case KindBoot:
		s.BootAttempts++
		if e.Outcome == OutcomeFail {
			s.BootFailures++
		}
	case KindGameday:
		s.GamedayTotal++
		if e.Outcome == OutcomePass {
			s.GamedayPassing++
		}
	case KindExecution:
		s.TotalExecutions++
		if e.Outcome == OutcomeBound {
			s.BoundExecutions++
		}
	}
}
