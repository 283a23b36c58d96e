package tri

import (
	"fmt"
	"sort"
	"strings"
)

// Contribution is one row of the attribution table: how much a single
// feature moved the base index (before the trust-weight multiplier).
// Weight is the nominal model weight; Contribution already includes
// both renormalizations, so summing the column over all rows
// reconstructs the base index exactly.
type Contribution struct {
	Feature      FeatureID `json:"feature"`
	Value        *float64  `json:"value"`
	Weight       float64   `json:"weight"`
	Contribution float64   `json:"contribution"`
	Domain       Domain    `json:"domain"`
	Evidence     string    `json:"evidence"`
}

// buildContributions derives the attribution table from the same
// feature values and weight sums the aggregation used. Null features
// appear with a nil value and zero contribution. Rows are ordered by
// absolute contribution descending, ties broken by feature order so
// output stays deterministic.
func buildContributions(features []Feature, weightSums map[Domain]float64, presentDomainWeight float64) []Contribution {
	rank := make(map[FeatureID]int, len(featureOrder))
	for i, id := range featureOrder {
		rank[id] = i
	}

	rows := make([]Contribution, 0, len(features))
	for _, f := range features {
		row := Contribution{
			Feature:  f.ID,
			Value:    f.Value,
			Weight:   f.Weight,
			Domain:   f.Domain,
			Evidence: f.Evidence,
		}
		if f.Value != nil && weightSums[f.Domain] > 0 && presentDomainWeight > 0 {
			featureShare := f.Weight / weightSums[f.Domain]
			domainShare := domainWeights[f.Domain] / presentDomainWeight
			row.Contribution = *f.Value * featureShare * domainShare
		}
		rows = append(rows, row)
	}

	sort.SliceStable(rows, func(i, j int) bool {
		ai, aj := abs(rows[i].Contribution), abs(rows[j].Contribution)
		if ai != aj {
			return ai > aj
		}
		return rank[rows[i].Feature] < rank[rows[j].Feature]
	})

	return rows
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

// TopFactors returns the n largest contributions.
func (r *TRIResult) TopFactors(n int) []Contribution {
	if n > len(r.Contributions) {
		n = len(r.Contributions)
	}
	return r.Contributions[:n]
}

// ExplainText renders the result and its attribution table as plain
// text for terminal display.
func (r *TRIResult) ExplainText() string {
	var b strings.Builder

	fmt.Fprintf(&b, "Trust Risk Index: %s\n", r.String())
	fmt.Fprintf(&b, "Trust weights: freshness=%.4f gameday=%.4f evidence=%.4f density=%.4f composite=%.4f\n",
		r.TrustWeights.Freshness, r.TrustWeights.Gameday,
		r.TrustWeights.Evidence, r.TrustWeights.Density, r.TrustWeights.Composite)
	fmt.Fprintf(&b, "Window: %s, %d events, %d of %d features computed\n",
		r.Metadata.Window, r.Metadata.EventCount, r.Metadata.FeatureCount, FeatureCount)

	if len(r.Metadata.NullFeatures) > 0 {
		names := make([]string, len(r.Metadata.NullFeatures))
		for i, id := range r.Metadata.NullFeatures {
			names[i] = string(id)
		}
		fmt.Fprintf(&b, "No data for: %s\n", strings.Join(names, ", "))
	}

	b.WriteString("\nTop factors:\n")
	for i, c := range r.TopFactors(3) {
		value := "null"
		if c.Value != nil {
			value = fmt.Sprintf("%.4f", *c.Value)
		}
		fmt.Fprintf(&b, "  %d. %-26s value=%-7s contribution=%.4f  (%s)\n",
			i+1, c.Feature, value, c.Contribution, c.Evidence)
	}

	b.WriteString("\nContributions:\n")
	for _, c := range r.Contributions {
		value := "null"
		if c.Value != nil {
			value = fmt.Sprintf("%.4f", *c.Value)
		}
		fmt.Fprintf(&b, "  %-26s %-24s value=%-7s weight=%.2f contribution=%.4f\n",
			c.Feature, c.Domain, value, c.Weight, c.Contribution)
	}

	b.WriteString("\nAdvisory only: this index cannot gate or modify any decision.\n")
	return b.String()
}
