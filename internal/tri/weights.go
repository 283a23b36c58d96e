package tri

import (
	"math"
	"time"
)

// TrustWeights are evidence-quality multipliers. Each factor is in
// [1.0, 2.0]: 1.0 means the evidence is fresh, tested, verified, and
// dense; 2.0 means it is maximally weak on that axis. Composite is the
// geometric mean of the four, so a single weak axis cannot dominate
// while multiple simultaneous weaknesses still compound.
type TrustWeights struct {
	Freshness float64 `json:"freshness"`
	Gameday   float64 `json:"gameday"`
	Evidence  float64 `json:"evidence"`
	Density   float64 `json:"density"`
	Composite float64 `json:"composite"`
}

// Defaults applied when an input signal is entirely absent. Absence of
// verification is penalized, never treated as neutral.
const (
	nullEvidenceWeight = 1.5
	nullGamedayWeight  = 1.5
	maxTrustWeight     = 2.0
)

// computeTrustWeights derives all four multipliers and the composite
// from the summary and the caller-supplied clock.
func computeTrustWeights(s *EventWindowSummary, now time.Time, cfg Config) TrustWeights {
	w := TrustWeights{
		Freshness: freshnessWeight(s.LastEventTime, now, cfg),
		Gameday:   gamedayWeight(s.GamedayPassing, s.GamedayTotal),
		Evidence:  evidenceWeight(s.ArtifactFailures, s.ArtifactVerifications),
		Density:   densityWeight(s.TotalEvents(), s.WindowHours(), cfg),
	}
	w.Composite = math.Pow(w.Freshness*w.Gameday*w.Evidence*w.Density, 0.25)
	return w
}

// freshnessWeight penalizes stale evidence: 1 + min(1, age/maxAge).
// An unknown last event time is unbounded staleness.
func freshnessWeight(lastEvent, now time.Time, cfg Config) float64 {
	if lastEvent.IsZero() {
		return maxTrustWeight
	}
	age := now.Sub(lastEvent).Hours()
	if age < 0 {
		age = 0
	}
	return 1.0 + math.Min(1.0, age/cfg.MaxAcceptableAgeHours)
}

// gamedayWeight passes the coverage gap through unchanged: 1 + gap.
// With no scenarios defined the gap is unknowable and the weight
// defaults to 1.5.
func gamedayWeight(passing, total int) float64 {
	if total == 0 {
		return nullGamedayWeight
	}
	return 1.0 + (1.0 - float64(passing)/float64(total))
}

// evidenceWeight penalizes unverified artifacts: 1 + failure rate.
// With no verifications at all the rate is null and the weight
// defaults to 1.5.
func evidenceWeight(failures, verifications int) float64 {
	if verifications == 0 {
		return nullEvidenceWeight
	}
	return 1.0 + float64(failures)/float64(verifications)
}

// densityWeight penalizes sparse windows. At or above the minimum
// events/day the weight is exactly 1.0; below it the weight rises
// linearly toward 2.0 at zero events.
func densityWeight(eventCount int, windowHours float64, cfg Config) float64 {
	if windowHours <= 0 {
		return maxTrustWeight
	}
	perDay := float64(eventCount) / (windowHours / 24.0)
	if perDay >= cfg.MinEventsPerDay {
		return 1.0
	}
	return 1.0 + (1.0 - perDay/cfg.MinEventsPerDay)
}
