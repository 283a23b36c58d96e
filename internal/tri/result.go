package tri

import (
	"bytes"
	"fmt"
	"time"
)

// ModelVersion identifies the weight tables and formulas in effect.
// Any change to a weight, half-life, ceiling, or tier band bumps this.
const ModelVersion = "1.0.0"

// Tier is the named risk band for a TRI value. There is deliberately
// no "safe" tier: the lowest band is MINIMAL.
type Tier string

const (
	TierMinimal  Tier = "MINIMAL"  // [0.00, 0.10)
	TierLow      Tier = "LOW"      // [0.10, 0.25)
	TierModerate Tier = "MODERATE" // [0.25, 0.50)
	TierHigh     Tier = "HIGH"     // [0.50, 0.75)
	TierCritical Tier = "CRITICAL" // [0.75, 1.00]
	TierUnknown  Tier = "UNKNOWN"  // null score: no signal, not zero risk
)

// TierFor maps a TRI value in [0, 1] to its band.
func TierFor(tri float64) Tier {
	switch {
	case tri < 0.10:
		return TierMinimal
	case tri < 0.25:
		return TierLow
	case tri < 0.50:
		return TierModerate
	case tri < 0.75:
		return TierHigh
	default:
		return TierCritical
	}
}

// ConfidenceBand brackets the score given data volume and completeness.
type ConfidenceBand struct {
	Lower float64 `json:"lower"`
	Upper float64 `json:"upper"`
}

// DomainScore is one domain's aggregated result. Score is nil when
// every weighted feature in the domain was null; its weight is then
// redistributed across the remaining domains. Weight is the nominal
// model weight; WeightedContribution uses the renormalized weight so
// contributions over non-null domains sum to the pre-trust-weight base.
type DomainScore struct {
	DomainID             Domain   `json:"domain_id"`
	Score                *float64 `json:"score"`
	Weight               float64  `json:"weight"`
	WeightedContribution *float64 `json:"weighted_contribution"`
	NullFeatureCount     int      `json:"null_feature_count"`
}

// DomainScores holds all three domains as named fields so JSON field
// order is fixed (maps would randomize it and break byte-identical
// serialization).
type DomainScores struct {
	GovernanceIntegrity   DomainScore `json:"governance_integrity"`
	OperationalDiscipline DomainScore `json:"operational_discipline"`
	SystemDrift           DomainScore `json:"system_drift"`
}

// byDomain returns the score entry for a domain.
func (d *DomainScores) byDomain(domain Domain) *DomainScore {
	switch domain {
	case DomainGovernanceIntegrity:
		return &d.GovernanceIntegrity
	case DomainOperationalDiscipline:
		return &d.OperationalDiscipline
	default:
		return &d.SystemDrift
	}
}

// ResultMetadata describes the computation context.
type ResultMetadata struct {
	ComputedAt   time.Time   `json:"computed_at"`
	Window       string      `json:"window"`
	EventCount   int         `json:"event_count"`
	FeatureCount int         `json:"feature_count"`
	NullFeatures []FeatureID `json:"null_features"`
	ModelVersion string      `json:"model_version"`
}

// AdvisoryFlag marshals as the JSON literal true. It carries no state,
// so no code path can produce a result that claims authority: the type
// system is the enforcement.
type AdvisoryFlag struct{}

// MarshalJSON always emits true.
func (AdvisoryFlag) MarshalJSON() ([]byte, error) {
	return []byte("true"), nil
}

// UnmarshalJSON accepts only the literal true.
func (*AdvisoryFlag) UnmarshalJSON(data []byte) error {
	if !bytes.Equal(bytes.TrimSpace(data), []byte("true")) {
		return fmt.Errorf("tri: advisory_only must be true, got %s", data)
	}
	return nil
}

// Bool reports the flag's only possible value.
func (AdvisoryFlag) Bool() bool { return true }

// TRIResult is the sole public artifact of a computation. TRI is nil
// (tier UNKNOWN) when no domain had any computable feature; callers
// must treat that as "no signal", which is explicitly not "zero risk".
//
// The struct marshals with fixed field order: two computations over
// identical inputs with an identical clock produce byte-identical JSON.
type TRIResult struct {
	TRI          *float64        `json:"tri"`
	Tier         Tier            `json:"tier"`
	Confidence   *ConfidenceBand `json:"confidence"`
	Domains      DomainScores    `json:"domains"`
	TrustWeights TrustWeights    `json:"trust_weights"`
	Metadata     ResultMetadata  `json:"metadata"`
	AdvisoryOnly AdvisoryFlag    `json:"advisory_only"`

	// Contributions is the per-feature attribution table, derived from
	// the same pass that produced TRI. Excluded from the wire shape.
	Contributions []Contribution `json:"-"`
}
