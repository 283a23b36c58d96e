package tri

import (
	"fmt"
	"math"
	"time"
)

// Decay half-lives and the count ceiling, version 1.0.0.
const (
	scopeViolationHalfLifeHours = 168.0 // 7 days
	driftHalfLifeHours          = 72.0  // 3 days

	// countCeiling bounds decayed/raw count features before weighting
	// so one runaway counter cannot dominate the composite.
	countCeiling = 5.0
)

// extractAll maps a validated summary to the fixed feature vector, in
// featureOrder. Every extractor is pure in (summary, now, cfg).
//
// A window with zero events is no-data, not clean data: every feature
// is null and the index degrades to UNKNOWN. The zero baselines below
// (scope violations, drift, fingerprints) only apply to windows that
// contain activity.
func extractAll(s *EventWindowSummary, now time.Time, cfg Config) []Feature {
	if s.TotalEvents() == 0 {
		return nullFeatureVector()
	}

	features := make([]Feature, 0, FeatureCount)

	features = append(features,
		extractDenialRate(s),
		extractScopeViolations(s, now),
		extractForbiddenVerbRate(s),
		extractUnknownAgentRate(s),
		extractToolDenialRate(s),

		extractCorrectionRate(s),
		extractEscalationRate(s),
		extractArtifactFailureRate(s),
		extractRetryAfterDenyRate(s),
		extractUnboundRate(s),

		extractDriftCount(s, now),
		extractBootFailureRate(s),
		extractFingerprintChanges(s),
		extractFreshnessViolation(s, now, cfg),
		extractCoverageGap(s),
	)

	return features
}

// nullFeatureVector is the all-null vector for an empty window.
func nullFeatureVector() []Feature {
	features := make([]Feature, 0, FeatureCount)
	for _, id := range featureOrder {
		features = append(features, newFeature(id, nil, "no events in window"))
	}
	return features
}

func newFeature(id FeatureID, value *float64, evidence string) Feature {
	return Feature{
		ID:       id,
		Domain:   featureDomains[id],
		Value:    value,
		Weight:   featureWeights[id],
		Evidence: evidence,
	}
}

// ratio returns num/den, or nil when den is zero. Callers guarantee
// num <= den (enforced by EventWindowSummary.Validate), so the result
// is in [0, 1] by construction.
func ratio(num, den int) *float64 {
	if den == 0 {
		return nil
	}
	v := float64(num) / float64(den)
	return &v
}

// cappedRatio returns min(1, num/den), or nil when den is zero. Used
// for rates whose numerator is not a strict subset of the denominator.
func cappedRatio(num, den int) *float64 {
	if den == 0 {
		return nil
	}
	v := math.Min(1.0, float64(num)/float64(den))
	return &v
}

// decayedCount sums per-event exponential decay: each event contributes
// e^(-ln2 * age_hours / half_life_hours). Events dated in the future
// contribute their full weight (age clamped to zero) so a clock skew
// cannot push the value above the raw count.
func decayedCount(events []time.Time, now time.Time, halfLifeHours float64) float64 {
	sum := 0.0
	for _, ts := range events {
		age := now.Sub(ts).Hours()
		if age < 0 {
			age = 0
		}
		sum += math.Exp(-math.Ln2 * age / halfLifeHours)
	}
	return sum
}

// boundedCount clips a count-like value to countCeiling and normalizes
// to [0, 1].
func boundedCount(v float64) float64 {
	return math.Min(v, countCeiling) / countCeiling
}

func extractDenialRate(s *EventWindowSummary) Feature {
	v := ratio(s.DeniedDecisions, s.TotalDecisions)
	ev := "no decisions in window"
	if v != nil {
		ev = fmt.Sprintf("%d denied of %d decisions", s.DeniedDecisions, s.TotalDecisions)
	}
	return newFeature(FeatGIDenialRate, v, ev)
}

func extractScopeViolations(s *EventWindowSummary, now time.Time) Feature {
	// Zero qualifying events is a meaningful clean baseline, not "no
	// data": the value is 0, never nil.
	decayed := decayedCount(s.ScopeViolations, now, scopeViolationHalfLifeHours)
	v := boundedCount(decayed)
	ev := fmt.Sprintf("%d scope violations, decayed weight %.3f", len(s.ScopeViolations), decayed)
	return newFeature(FeatGIScopeViolations, &v, ev)
}

func extractForbiddenVerbRate(s *EventWindowSummary) Feature {
	v := cappedRatio(s.ForbiddenVerbAttempts, s.TotalDecisions)
	ev := "no decisions in window"
	if v != nil {
		ev = fmt.Sprintf("%d forbidden-verb attempts over %d decisions", s.ForbiddenVerbAttempts, s.TotalDecisions)
	}
	return newFeature(FeatGIForbiddenVerbs, v, ev)
}

func extractUnknownAgentRate(s *EventWindowSummary) Feature {
	v := ratio(s.UnknownAgentDecisions, s.TotalDecisions)
	ev := "no decisions in window"
	if v != nil {
		ev = fmt.Sprintf("%d unknown-agent decisions of %d", s.UnknownAgentDecisions, s.TotalDecisions)
	}
	return newFeature(FeatGIUnknownAgents, v, ev)
}

func extractToolDenialRate(s *EventWindowSummary) Feature {
	v := ratio(s.ToolDenials, s.ToolRequests)
	ev := "no tool requests in window"
	if v != nil {
		ev = fmt.Sprintf("%d denied of %d tool requests", s.ToolDenials, s.ToolRequests)
	}
	return newFeature(FeatGIToolDenials, v, ev)
}

func extractCorrectionRate(s *EventWindowSummary) Feature {
	v := cappedRatio(s.Corrections, s.TotalOperations)
	ev := "no operations in window"
	if v != nil {
		ev = fmt.Sprintf("%d corrections over %d operations", s.Corrections, s.TotalOperations)
	}
	return newFeature(FeatODCorrectionRate, v, ev)
}

func extractEscalationRate(s *EventWindowSummary) Feature {
	v := cappedRatio(s.Escalations, s.TotalOperations)
	ev := "no operations in window"
	if v != nil {
		ev = fmt.Sprintf("%d human escalations over %d operations", s.Escalations, s.TotalOperations)
	}
	return newFeature(FeatODEscalationRate, v, ev)
}

func extractArtifactFailureRate(s *EventWindowSummary) Feature {
	v := ratio(s.ArtifactFailures, s.ArtifactVerifications)
	ev := "no artifact verifications in window"
	if v != nil {
		ev = fmt.Sprintf("%d failures of %d artifact verifications", s.ArtifactFailures, s.ArtifactVerifications)
	}
	return newFeature(FeatODArtifactFailures, v, ev)
}

func extractRetryAfterDenyRate(s *EventWindowSummary) Feature {
	// Normalized over total decisions, not denials: a rising denied
	// count must never shrink this rate and pull the index down.
	v := cappedRatio(s.RetriesAfterDeny, s.TotalDecisions)
	ev := "no decisions in window"
	if v != nil {
		ev = fmt.Sprintf("%d retries after deny over %d decisions", s.RetriesAfterDeny, s.TotalDecisions)
	}
	return newFeature(FeatODRetryAfterDenyRate, v, ev)
}

func extractUnboundRate(s *EventWindowSummary) Feature {
	v := ratio(s.TotalExecutions-s.BoundExecutions, s.TotalExecutions)
	ev := "no executions in window"
	if v != nil {
		ev = fmt.Sprintf("%d of %d executions without evidence binding",
			s.TotalExecutions-s.BoundExecutions, s.TotalExecutions)
	}
	return newFeature(FeatODUnboundRate, v, ev)
}

func extractDriftCount(s *EventWindowSummary, now time.Time) Feature {
	decayed := decayedCount(s.DriftEvents, now, driftHalfLifeHours)
	v := boundedCount(decayed)
	ev := fmt.Sprintf("%d drift events, decayed weight %.3f", len(s.DriftEvents), decayed)
	return newFeature(FeatSDDriftCount, &v, ev)
}

func extractBootFailureRate(s *EventWindowSummary) Feature {
	v := ratio(s.BootFailures, s.BootAttempts)
	ev := "no boot attempts in window"
	if v != nil {
		ev = fmt.Sprintf("%d failures of %d boot attempts", s.BootFailures, s.BootAttempts)
	}
	return newFeature(FeatSDBootFailureRate, v, ev)
}

func extractFingerprintChanges(s *EventWindowSummary) Feature {
	v := boundedCount(float64(s.FingerprintChanges))
	ev := fmt.Sprintf("%d fingerprint changes", s.FingerprintChanges)
	return newFeature(FeatSDFingerprintChanges, &v, ev)
}

func extractFreshnessViolation(s *EventWindowSummary, now time.Time, cfg Config) Feature {
	// Missing last event time means freshness cannot be demonstrated:
	// treated as violated, never as compliant.
	violated := 0.0
	ev := fmt.Sprintf("last event within %.0fh threshold", cfg.FreshnessThresholdHours)
	if s.LastEventTime.IsZero() {
		violated = 1.0
		ev = "no last event time recorded"
	} else if age := now.Sub(s.LastEventTime).Hours(); age > cfg.FreshnessThresholdHours {
		violated = 1.0
		ev = fmt.Sprintf("last event %.1fh ago exceeds %.0fh threshold", age, cfg.FreshnessThresholdHours)
	}
	return newFeature(FeatSDFreshnessViolation, &violated, ev)
}

func extractCoverageGap(s *EventWindowSummary) Feature {
	var v *float64
	ev := "no gameday scenarios defined"
	if s.GamedayTotal > 0 {
		gap := 1.0 - float64(s.GamedayPassing)/float64(s.GamedayTotal)
		v = &gap
		ev = fmt.Sprintf("%d of %d gameday scenarios passing", s.GamedayPassing, s.GamedayTotal)
	}
	return newFeature(FeatSDCoverageGap, v, ev)
}
