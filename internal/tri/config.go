package tri

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds the engine tunables. The model weight tables, decay
// half-lives, count ceiling, and tier bands are versioned constants and
// deliberately not configurable: changing them is a model change.
type Config struct {
	// FreshnessThresholdHours is the window age beyond which the
	// freshness-violation feature fires.
	FreshnessThresholdHours float64 `yaml:"freshness_threshold_hours"`

	// MaxAcceptableAgeHours saturates the freshness trust weight.
	MaxAcceptableAgeHours float64 `yaml:"max_acceptable_age_hours"`

	// MinEventsPerDay is the density below which the density trust
	// weight starts penalizing.
	MinEventsPerDay float64 `yaml:"min_events_per_day"`

	// MinEventsForConfidence is the event count at which the
	// confidence level saturates.
	MinEventsForConfidence int `yaml:"min_events_for_confidence"`
}

// DefaultConfig returns the documented defaults.
func DefaultConfig() Config {
	return Config{
		FreshnessThresholdHours: 24,
		MaxAcceptableAgeHours:   168,
		MinEventsPerDay:         100,
		MinEventsForConfidence:  100,
	}
}

// Validate rejects non-positive tunables, which would produce divisions
// by zero in the weight formulas.
func (c Config) Validate() error {
	if c.FreshnessThresholdHours <= 0 {
		return fmt.Errorf("tri: freshness_threshold_hours must be positive, got %g", c.FreshnessThresholdHours)
	}
	if c.MaxAcceptableAgeHours <= 0 {
		return fmt.Errorf("tri: max_acceptable_age_hours must be positive, got %g", c.MaxAcceptableAgeHours)
	}
	if c.MinEventsPerDay <= 0 {
		return fmt.Errorf("tri: min_events_per_day must be positive, got %g", c.MinEventsPerDay)
	}
	if c.MinEventsForConfidence <= 0 {
		return fmt.Errorf("tri: min_events_for_confidence must be positive, got %d", c.MinEventsForConfidence)
	}
	return nil
}

// LoadConfig reads tunables from a YAML file. An empty path or a
// missing file returns the defaults; invalid YAML or invalid values
// return an error. Absent keys keep their default.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("tri: read config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("tri: parse config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("tri: config %s: %w", path, err)
	}

	return cfg, nil
}
