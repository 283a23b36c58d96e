// Package eventlog implements the inbound collaborator contract for the
// TRI engine: an append-only, hash-chained JSONL governance event log
// and the read-only aggregation that turns a window of it into an
// EventWindowSummary. The engine package has no import edge back here;
// composition happens in the CLI only.
package eventlog

import (
	"fmt"
	"time"
)

// TimeFormat is the canonical timestamp layout for log entries.
const TimeFormat = "2006-01-02T15:04:05.000Z"

// Kind classifies a governance event. One kind exists for every counter
// in the window summary.
type Kind string

const (
	KindDecision             Kind = "decision"
	KindScopeViolation       Kind = "scope_violation"
	KindForbiddenVerb        Kind = "forbidden_verb"
	KindToolRequest          Kind = "tool_request"
	KindArtifactVerification Kind = "artifact_verification"
	KindOperation            Kind = "operation"
	KindCorrection           Kind = "correction"
	KindEscalation           Kind = "escalation"
	KindRetryAfterDeny       Kind = "retry_after_deny"
	KindDrift                Kind = "drift"
	KindFingerprintChange    Kind = "fingerprint_change"
	KindBoot                 Kind = "boot"
	KindGameday              Kind = "gameday"
	KindExecution            Kind = "execution"
)

// knownKinds is the closed set of accepted kinds.
var knownKinds = map[Kind]bool{
	KindDecision:             true,
	KindScopeViolation:       true,
	KindForbiddenVerb:        true,
	KindToolRequest:          true,
	KindArtifactVerification: true,
	KindOperation:            true,
	KindCorrection:           true,
	KindEscalation:           true,
	KindRetryAfterDeny:       true,
	KindDrift:                true,
	KindFingerprintChange:    true,
	KindBoot:                 true,
	KindGameday:              true,
	KindExecution:            true,
}

// Outcome qualifiers. Meaning depends on Kind: decisions and tool
// requests are allowed/denied, verifications and gamedays and boots
// pass/fail, executions are bound/unbound.
const (
	OutcomeAllowed      = "allowed"
	OutcomeDenied       = "denied"
	OutcomeUnknownAgent = "unknown_agent"
	OutcomePass         = "pass"
	OutcomeFail         = "fail"
	OutcomeBound        = "bound"
	OutcomeUnbound      = "unbound"
)

// Event is one line in the JSONL log. All fields are scalars (no maps)
// to guarantee deterministic json.Marshal field order for reproducible
// hashing.
type Event struct {
	Timestamp string `json:"ts"`
	EventID   string `json:"event_id"`
	Kind      Kind   `json:"kind"`
	Agent     string `json:"agent,omitempty"`
	Outcome   string `json:"outcome,omitempty"`
	PrevHash  string `json:"prev_hash"`
}

// Time parses the entry timestamp.
func (e Event) Time() (time.Time, error) {
	t, err := time.Parse(TimeFormat, e.Timestamp)
	if err != nil {
		return time.Time{}, fmt.Errorf("eventlog: parse timestamp %q: %w", e.Timestamp, err)
	}
	return t, nil
}

// Validate checks that the entry has a known kind and a parseable
// timestamp.
func (e Event) Validate() error {
	if !knownKinds[e.Kind] {
		return fmt.Errorf("eventlog: unknown event kind %q", e.Kind)
	}
	if _, err := e.Time(); err != nil {
		return err
	}
	return nil
}
