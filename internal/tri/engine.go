// Package tri computes the Trust Risk Index: a deterministic,
// explainable, bounded risk signal over an aggregated window of
// governance events.
//
// The engine is a pure function of (EventWindowSummary, now). It holds
// no state, performs no I/O, reads no clock, and is safe for
// unsynchronized concurrent use. Its output is advisory only: nothing
// in this package can express, import, or return an allow/deny-shaped
// value.
package tri

import (
	"fmt"
	"math"
	"strconv"
	"time"
)

// bandWidthFactor scales the confidence band: width is
// (1 - confidence_level) * bandWidthFactor.
const bandWidthFactor = 0.15

// Engine computes TRI results under a fixed configuration.
type Engine struct {
	cfg Config
}

// NewEngine returns an engine using the given tunables. The model
// weight tables are constants and not part of Config.
func NewEngine(cfg Config) *Engine {
	return &Engine{cfg: cfg}
}

// Compute derives a TRIResult from a summary snapshot. The caller
// supplies now; the engine never samples the wall clock, so identical
// arguments produce identical results across calls and restarts.
// Malformed summaries are rejected, never clamped.
func (e *Engine) Compute(s EventWindowSummary, now time.Time) (*TRIResult, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	if err := e.cfg.Validate(); err != nil {
		return nil, err
	}

	features := extractAll(&s, now, e.cfg)
	domains, triBase, contributions := aggregate(features)
	weights := computeTrustWeights(&s, now, e.cfg)

	var tri *float64
	tier := TierUnknown
	if triBase != nil {
		v := math.Min(1.0, *triBase*weights.Composite)
		tri = &v
		tier = TierFor(v)
	}

	nullFeatures := make([]FeatureID, 0, FeatureCount)
	for _, f := range features {
		if f.Value == nil {
			nullFeatures = append(nullFeatures, f.ID)
		}
	}

	eventCount := s.TotalEvents()

	return &TRIResult{
		TRI:          tri,
		Tier:         tier,
		Confidence:   confidenceBand(tri, eventCount, len(nullFeatures), e.cfg),
		Domains:      domains,
		TrustWeights: weights,
		Metadata: ResultMetadata{
			ComputedAt:   now,
			Window:       formatWindow(s.WindowHours()),
			EventCount:   eventCount,
			FeatureCount: FeatureCount - len(nullFeatures),
			NullFeatures: nullFeatures,
			ModelVersion: ModelVersion,
		},
		Contributions: contributions,
	}, nil
}

// aggregate folds the feature vector into domain scores and the base
// index, and records per-feature contributions from the same pass so
// score and explanation can never diverge.
//
// Null handling is a normalization step, not per-feature branching:
// within a domain, weights of present features are divided by their
// sum; a domain with no present weighted features scores nil and its
// domain weight is likewise renormalized away at the top level.
func aggregate(features []Feature) (DomainScores, *float64, []Contribution) {
	weightedSums := map[Domain]float64{}
	weightSums := map[Domain]float64{}
	nullCounts := map[Domain]int{}

	for _, f := range features {
		if f.Value == nil {
			nullCounts[f.Domain]++
			continue
		}
		weightedSums[f.Domain] += *f.Value * f.Weight
		weightSums[f.Domain] += f.Weight
	}

	var domains DomainScores
	presentDomainWeight := 0.0
	for _, d := range domainOrder {
		ds := domains.byDomain(d)
		ds.DomainID = d
		ds.Weight = domainWeights[d]
		ds.NullFeatureCount = nullCounts[d]
		if weightSums[d] > 0 {
			score := weightedSums[d] / weightSums[d]
			ds.Score = &score
			presentDomainWeight += domainWeights[d]
		}
	}

	var triBase *float64
	if presentDomainWeight > 0 {
		base := 0.0
		for _, d := range domainOrder {
			ds := domains.byDomain(d)
			if ds.Score == nil {
				continue
			}
			contribution := (domainWeights[d] / presentDomainWeight) * *ds.Score
			ds.WeightedContribution = &contribution
			base += contribution
		}
		triBase = &base
	}

	contributions := buildContributions(features, weightSums, presentDomainWeight)
	return domains, triBase, contributions
}

// confidenceBand brackets the score. Confidence grows with event count
// (saturating at the configured minimum) and with feature completeness;
// the band narrows as confidence rises and is clamped to [0, 1]. A nil
// TRI has no band.
func confidenceBand(tri *float64, eventCount, nullFeatures int, cfg Config) *ConfidenceBand {
	if tri == nil {
		return nil
	}
	completeness := float64(FeatureCount-nullFeatures) / float64(FeatureCount)
	level := math.Min(1.0, float64(eventCount)/float64(cfg.MinEventsForConfidence)) * completeness
	half := (1.0 - level) * bandWidthFactor / 2.0
	return &ConfidenceBand{
		Lower: math.Max(0.0, *tri-half),
		Upper: math.Min(1.0, *tri+half),
	}
}

// formatWindow renders a window size in hours as "24h"; fractional
// windows keep their fraction ("1.5h").
func formatWindow(hours float64) string {
	return strconv.FormatFloat(hours, 'f', -1, 64) + "h"
}

// String renders a compact one-line description of the result.
func (r *TRIResult) String() string {
	if r.TRI == nil {
		return fmt.Sprintf("TRI=null tier=%s (no signal)", r.Tier)
	}
	return fmt.Sprintf("TRI=%.4f tier=%s confidence=[%.4f, %.4f]",
		*r.TRI, r.Tier, r.Confidence.Lower, r.Confidence.Upper)
}
