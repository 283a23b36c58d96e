package tri

import (
	"math"
	"testing"
	"time"
)

const tolerance = 1e-9

func featureByID(t *testing.T, features []Feature, id FeatureID) Feature {
	t.Helper()
	for _, f := range features {
		if f.ID == id {
			return f
		}
	}
	t.Fatalf("feature %s not extracted", id)
	return Feature{}
}

func value(t *testing.T, f Feature) float64 {
	t.Helper()
	if f.Value == nil {
		t.Fatalf("feature %s is null, expected a value", f.ID)
	}
	return *f.Value
}

func TestExtractVectorShape(t *testing.T) {
	s := activeSummary()
	features := extractAll(&s, testNow, DefaultConfig())
	if len(features) != FeatureCount {
		t.Fatalf("extracted %d features, want %d", len(features), FeatureCount)
	}
	for i, f := range features {
		if f.ID != featureOrder[i] {
			t.Fatalf("feature %d is %s, want %s", i, f.ID, featureOrder[i])
		}
		if f.Domain != featureDomains[f.ID] {
			t.Fatalf("feature %s assigned domain %s", f.ID, f.Domain)
		}
		if f.Weight != featureWeights[f.ID] {
			t.Fatalf("feature %s carries weight %g", f.ID, f.Weight)
		}
	}
}

func TestDenialRate(t *testing.T) {
	// 5 denied of 100 decisions over 24h.
	s := activeSummary()
	f := featureByID(t, extractAll(&s, testNow, DefaultConfig()), FeatGIDenialRate)
	if got := value(t, f); math.Abs(got-0.05) > tolerance {
		t.Fatalf("denial rate = %v, want 0.05", got)
	}
}

func TestRatioFeaturesNullOnZeroDenominator(t *testing.T) {
	s := activeSummary()
	s.TotalDecisions = 0
	s.DeniedDecisions = 0
	s.UnknownAgentDecisions = 0
	s.ToolRequests = 0
	s.ToolDenials = 0
	s.ArtifactVerifications = 0
	s.ArtifactFailures = 0
	s.TotalOperations = 0
	s.BootAttempts = 0
	s.BootFailures = 0
	s.GamedayTotal = 0
	s.GamedayPassing = 0
	s.TotalExecutions = 0
	s.BoundExecutions = 0

	features := extractAll(&s, testNow, DefaultConfig())
	nullIDs := []FeatureID{
		FeatGIDenialRate, FeatGIForbiddenVerbs, FeatGIUnknownAgents,
		FeatGIToolDenials, FeatODCorrectionRate, FeatODEscalationRate,
		FeatODArtifactFailures, FeatODRetryAfterDenyRate, FeatODUnboundRate,
		FeatSDBootFailureRate, FeatSDCoverageGap,
	}
	for _, id := range nullIDs {
		if f := featureByID(t, features, id); f.Value != nil {
			t.Errorf("%s = %v, want null", id, *f.Value)
		}
	}
}

func TestZeroCountsAreBaselineNotNull(t *testing.T) {
	// A window with activity but zero scope violations, drifts, and
	// fingerprint changes is clean data, not missing data.
	s := activeSummary()
	s.ScopeViolations = nil
	s.DriftEvents = nil
	s.FingerprintChanges = 0

	features := extractAll(&s, testNow, DefaultConfig())
	for _, id := range []FeatureID{FeatGIScopeViolations, FeatSDDriftCount, FeatSDFingerprintChanges} {
		f := featureByID(t, features, id)
		if got := value(t, f); got != 0 {
			t.Errorf("%s = %v, want 0", id, got)
		}
	}
}

func TestEmptyWindowIsAllNull(t *testing.T) {
	s := EventWindowSummary{
		WindowStart: testNow.Add(-24 * time.Hour),
		WindowEnd:   testNow,
	}
	features := extractAll(&s, testNow, DefaultConfig())
	if len(features) != FeatureCount {
		t.Fatalf("extracted %d features, want %d", len(features), FeatureCount)
	}
	for _, f := range features {
		if f.Value != nil {
			t.Errorf("%s = %v on empty window, want null", f.ID, *f.Value)
		}
	}
}

func TestScopeViolationDecay(t *testing.T) {
	// One violation exactly one half-life (7 days) old decays to 0.5,
	// normalized by the ceiling of 5.
	s := activeSummary()
	s.ScopeViolations = []time.Time{testNow.Add(-168 * time.Hour)}
	f := featureByID(t, extractAll(&s, testNow, DefaultConfig()), FeatGIScopeViolations)
	if got := value(t, f); math.Abs(got-0.5/5.0) > 1e-6 {
		t.Fatalf("decayed scope violation = %v, want %v", got, 0.5/5.0)
	}
}

func TestDriftDecayHalfLife(t *testing.T) {
	// Drift half-life is 3 days.
	s := activeSummary()
	s.DriftEvents = []time.Time{testNow.Add(-72 * time.Hour)}
	f := featureByID(t, extractAll(&s, testNow, DefaultConfig()), FeatSDDriftCount)
	if got := value(t, f); math.Abs(got-0.5/5.0) > 1e-6 {
		t.Fatalf("decayed drift = %v, want %v", got, 0.5/5.0)
	}
}

func TestFutureEventsDoNotExceedRawCount(t *testing.T) {
	s := activeSummary()
	s.ScopeViolations = []time.Time{testNow.Add(2 * time.Hour)}
	f := featureByID(t, extractAll(&s, testNow, DefaultConfig()), FeatGIScopeViolations)
	if got := value(t, f); got > 1.0/5.0+tolerance {
		t.Fatalf("future-dated violation contributes %v, want at most %v", got, 1.0/5.0)
	}
}

func TestBoundedCountCeiling(t *testing.T) {
	s := activeSummary()
	s.FingerprintChanges = 40
	f := featureByID(t, extractAll(&s, testNow, DefaultConfig()), FeatSDFingerprintChanges)
	if got := value(t, f); got != 1.0 {
		t.Fatalf("fingerprint feature = %v, want 1.0 at ceiling", got)
	}
}

func TestFreshnessViolation(t *testing.T) {
	cfg := DefaultConfig()

	cases := []struct {
		name string
		last time.Time
		want float64
	}{
		{"fresh", testNow.Add(-1 * time.Hour), 0},
		{"at threshold", testNow.Add(-24 * time.Hour), 0},
		{"stale", testNow.Add(-25 * time.Hour), 1},
		{"missing means violated", time.Time{}, 1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := activeSummary()
			s.LastEventTime = tc.last
			f := featureByID(t, extractAll(&s, testNow, cfg), FeatSDFreshnessViolation)
			if got := value(t, f); got != tc.want {
				t.Fatalf("freshness violation = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestCoverageGap(t *testing.T) {
	s := activeSummary()
	s.GamedayPassing = 130
	s.GamedayTotal = 133
	f := featureByID(t, extractAll(&s, testNow, DefaultConfig()), FeatSDCoverageGap)
	want := 1.0 - 130.0/133.0
	if got := value(t, f); math.Abs(got-want) > 1e-6 {
		t.Fatalf("coverage gap = %v, want %v", got, want)
	}
}

func TestRetryAfterDenyRateIgnoresDeniedCount(t *testing.T) {
	// The rate is normalized over total decisions. Denials must not
	// feed the denominator, or more denials would dilute the rate.
	s := activeSummary()
	s.RetriesAfterDeny = 2
	f := featureByID(t, extractAll(&s, testNow, DefaultConfig()), FeatODRetryAfterDenyRate)
	if got := value(t, f); math.Abs(got-0.02) > tolerance {
		t.Fatalf("retry rate = %v, want 0.02", got)
	}

	s.DeniedDecisions = 50
	f = featureByID(t, extractAll(&s, testNow, DefaultConfig()), FeatODRetryAfterDenyRate)
	if got := value(t, f); math.Abs(got-0.02) > tolerance {
		t.Fatalf("retry rate = %v after more denials, want 0.02 unchanged", got)
	}
}

func TestUnboundRate(t *testing.T) {
	s := activeSummary()
	s.BoundExecutions = 180
	s.TotalExecutions = 200
	f := featureByID(t, extractAll(&s, testNow, DefaultConfig()), FeatODUnboundRate)
	if got := value(t, f); math.Abs(got-0.1) > tolerance {
		t.Fatalf("unbound rate = %v, want 0.1", got)
	}
}

// TestFeatureMonotonicity walks each badness input upward and asserts
// the corresponding feature value never decreases.
func TestFeatureMonotonicity(t *testing.T) {
	cfg := DefaultConfig()

	cases := []struct {
		id     FeatureID
		mutate func(*EventWindowSummary, int)
	}{
		{FeatGIDenialRate, func(s *EventWindowSummary, n int) { s.DeniedDecisions = n }},
		{FeatGIScopeViolations, func(s *EventWindowSummary, n int) {
			s.ScopeViolations = nil
			for i := 0; i < n; i++ {
				s.ScopeViolations = append(s.ScopeViolations, testNow.Add(-time.Duration(i)*time.Hour))
			}
		}},
		{FeatGIForbiddenVerbs, func(s *EventWindowSummary, n int) { s.ForbiddenVerbAttempts = n }},
		{FeatGIUnknownAgents, func(s *EventWindowSummary, n int) { s.UnknownAgentDecisions = n }},
		{FeatGIToolDenials, func(s *EventWindowSummary, n int) { s.ToolDenials = n }},
		{FeatODCorrectionRate, func(s *EventWindowSummary, n int) { s.Corrections = n }},
		{FeatODEscalationRate, func(s *EventWindowSummary, n int) { s.Escalations = n }},
		{FeatODArtifactFailures, func(s *EventWindowSummary, n int) { s.ArtifactFailures = n }},
		{FeatODRetryAfterDenyRate, func(s *EventWindowSummary, n int) { s.RetriesAfterDeny = n }},
		{FeatODUnboundRate, func(s *EventWindowSummary, n int) { s.BoundExecutions = s.TotalExecutions - n }},
		{FeatSDDriftCount, func(s *EventWindowSummary, n int) {
			s.DriftEvents = nil
			for i := 0; i < n; i++ {
				s.DriftEvents = append(s.DriftEvents, testNow.Add(-time.Duration(i)*time.Hour))
			}
		}},
		{FeatSDBootFailureRate, func(s *EventWindowSummary, n int) { s.BootFailures = n }},
		{FeatSDFingerprintChanges, func(s *EventWindowSummary, n int) { s.FingerprintChanges = n }},
		{FeatSDCoverageGap, func(s *EventWindowSummary, n int) { s.GamedayPassing = s.GamedayTotal - n }},
	}

	for _, tc := range cases {
		t.Run(string(tc.id), func(t *testing.T) {
			prev := -1.0
			for n := 0; n <= 3; n++ {
				s := activeSummary()
				tc.mutate(&s, n)
				if err := s.Validate(); err != nil {
					t.Fatalf("n=%d: %v", n, err)
				}
				f := featureByID(t, extractAll(&s, testNow, cfg), tc.id)
				got := value(t, f)
				if got < prev-tolerance {
					t.Fatalf("n=%d: feature decreased from %v to %v", n, prev, got)
				}
				prev = got
			}
		})
	}
}
