// Package scenario runs YAML-defined scoring expectations against the
// TRI engine. Each case materializes a summary relative to a fixed
// clock and asserts the resulting tier (and optionally a TRI range).
package scenario

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/BIGmindz/ChainBridge-sub011/internal/tri"
)

// Run evaluates all cases in a scenario with the given engine config.
// Every case is scored against the same clock, so a run is fully
// deterministic for a fixed now.
func Run(s *Scenario, cfg tri.Config, now time.Time) *RunResult {
	engine := tri.NewEngine(cfg)

	result := &RunResult{
		Name:  s.Name,
		Total: len(s.Cases),
	}

	for i, c := range s.Cases {
		cr := CaseResult{
			Index:    i + 1,
			Name:     c.Name,
			Expected: strings.ToUpper(c.ExpectTier),
		}

		res, err := engine.Compute(c.Summary.Summary(now), now)
		if err != nil {
			cr.Reason = fmt.Sprintf("compute: %v", err)
			result.Failed++
			result.Cases = append(result.Cases, cr)
			continue
		}

		cr.TRI = res.TRI
		cr.Tier = string(res.Tier)

		var reasons []string
		if cr.Expected != "" && cr.Tier != cr.Expected {
			reasons = append(reasons, fmt.Sprintf("tier %s, expected %s", cr.Tier, cr.Expected))
		}
		if c.ExpectMin != nil && (res.TRI == nil || *res.TRI < *c.ExpectMin) {
			reasons = append(reasons, fmt.Sprintf("tri %s below expected minimum %.4f", formatTRI(res.TRI), *c.ExpectMin))
		}
		if c.ExpectMax != nil && (res.TRI == nil || *res.TRI > *c.ExpectMax) {
			reasons = append(reasons, fmt.Sprintf("tri %s above expected maximum %.4f", formatTRI(res.TRI), *c.ExpectMax))
		}

		cr.Passed = len(reasons) == 0
		cr.Reason = strings.Join(reasons, "; ")

		if cr.Passed {
			result.Passed++
		} else {
			result.Failed++
		}
		result.Cases = append(result.Cases, cr)
	}

	return result
}

// LoadAndRun loads a scenario YAML file and the engine config, then
// runs all cases.
func LoadAndRun(path, configPath string, now time.Time) (*RunResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scenario %s: %w", path, err)
	}

	var s Scenario
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse scenario %s: %w", path, err)
	}

	cfg, err := tri.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	result := Run(&s, cfg, now)
	result.File = path

	return result, nil
}

func formatTRI(v *float64) string {
	if v == nil {
		return "null"
	}
	return fmt.Sprintf("%.4f", *v)
}
