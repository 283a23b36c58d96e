package tri

// Domain is one of the three fixed risk categories.
type Domain string

const (
	DomainGovernanceIntegrity   Domain = "governance_integrity"
	DomainOperationalDiscipline Domain = "operational_discipline"
	DomainSystemDrift           Domain = "system_drift"
)

// domainOrder fixes iteration order for deterministic output.
var domainOrder = []Domain{
	DomainGovernanceIntegrity,
	DomainOperationalDiscipline,
	DomainSystemDrift,
}

// FeatureID names one of the fifteen scored features.
type FeatureID string

const (
	// Governance integrity
	FeatGIDenialRate      FeatureID = "gi_denial_rate"
	FeatGIScopeViolations FeatureID = "gi_scope_violations"
	FeatGIForbiddenVerbs  FeatureID = "gi_forbidden_verb_rate"
	FeatGIUnknownAgents   FeatureID = "gi_unknown_agent_rate"
	FeatGIToolDenials     FeatureID = "gi_tool_denial_rate"

	// Operational discipline
	FeatODCorrectionRate     FeatureID = "od_correction_rate"
	FeatODEscalationRate     FeatureID = "od_escalation_rate"
	FeatODArtifactFailures   FeatureID = "od_artifact_failure_rate"
	FeatODRetryAfterDenyRate FeatureID = "od_retry_after_deny_rate"
	FeatODUnboundRate        FeatureID = "od_unbound_rate"

	// System drift
	FeatSDDriftCount         FeatureID = "sd_drift_count"
	FeatSDBootFailureRate    FeatureID = "sd_boot_failure_rate"
	FeatSDFingerprintChanges FeatureID = "sd_fingerprint_changes"
	FeatSDFreshnessViolation FeatureID = "sd_freshness_violation"
	FeatSDCoverageGap        FeatureID = "sd_coverage_gap"
)

// featureOrder fixes extraction and serialization order.
var featureOrder = []FeatureID{
	FeatGIDenialRate,
	FeatGIScopeViolations,
	FeatGIForbiddenVerbs,
	FeatGIUnknownAgents,
	FeatGIToolDenials,
	FeatODCorrectionRate,
	FeatODEscalationRate,
	FeatODArtifactFailures,
	FeatODRetryAfterDenyRate,
	FeatODUnboundRate,
	FeatSDDriftCount,
	FeatSDBootFailureRate,
	FeatSDFingerprintChanges,
	FeatSDFreshnessViolation,
	FeatSDCoverageGap,
}

// FeatureCount is the fixed size of the feature vector.
const FeatureCount = 15

// Feature is one extracted signal. Value is nil when the feature has no
// computable value (empty denominator or missing required events).
// A nil value is never the same thing as a computed zero.
type Feature struct {
	ID       FeatureID `json:"id"`
	Domain   Domain    `json:"domain"`
	Value    *float64  `json:"value"`
	Weight   float64   `json:"weight"`
	Evidence string    `json:"evidence"`
}

// Model weight tables, version 1.0.0. Hand-specified and reviewed, not
// learned. Changing any value requires a ModelVersion bump.

// domainWeights maps each domain to its share of the composite index.
var domainWeights = map[Domain]float64{
	DomainGovernanceIntegrity:   0.40,
	DomainOperationalDiscipline: 0.35,
	DomainSystemDrift:           0.25,
}

// featureWeights maps each feature to its share within its domain.
// Weights sum to 1.0 per domain. od_unbound_rate carries weight 0.0:
// it is informational (surfaced in explanations and null tracking) and
// deliberately excluded from the aggregate.
var featureWeights = map[FeatureID]float64{
	FeatGIDenialRate:      0.30,
	FeatGIScopeViolations: 0.25,
	FeatGIForbiddenVerbs:  0.20,
	FeatGIUnknownAgents:   0.15,
	FeatGIToolDenials:     0.10,

	FeatODCorrectionRate:     0.25,
	FeatODEscalationRate:     0.25,
	FeatODArtifactFailures:   0.30,
	FeatODRetryAfterDenyRate: 0.20,
	FeatODUnboundRate:        0.00,

	FeatSDDriftCount:         0.25,
	FeatSDBootFailureRate:    0.20,
	FeatSDFingerprintChanges: 0.15,
	FeatSDFreshnessViolation: 0.25,
	FeatSDCoverageGap:        0.15,
}

// featureDomains maps each feature to its domain.
var featureDomains = map[FeatureID]Domain{
	FeatGIDenialRate:      DomainGovernanceIntegrity,
	FeatGIScopeViolations: DomainGovernanceIntegrity,
	FeatGIForbiddenVerbs:  DomainGovernanceIntegrity,
	FeatGIUnknownAgents:   DomainGovernanceIntegrity,
	FeatGIToolDenials:     DomainGovernanceIntegrity,

	FeatODCorrectionRate:     DomainOperationalDiscipline,
	FeatODEscalationRate:     DomainOperationalDiscipline,
	FeatODArtifactFailures:   DomainOperationalDiscipline,
	FeatODRetryAfterDenyRate: DomainOperationalDiscipline,
	FeatODUnboundRate:        DomainOperationalDiscipline,

	FeatSDDriftCount:         DomainSystemDrift,
	FeatSDBootFailureRate:    DomainSystemDrift,
	FeatSDFingerprintChanges: DomainSystemDrift,
	FeatSDFreshnessViolation: DomainSystemDrift,
	FeatSDCoverageGap:        DomainSystemDrift,
}
