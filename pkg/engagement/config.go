// Package engagement holds the temporal aggregation and decision core:
// a head-turn debouncer, two accumulation windows, the verdict rules and
// the Engine that applies one sample to all of them at once.
package engagement

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidConfig is returned by Validate for out-of-range settings.
var ErrInvalidConfig = errors.New("engagement: invalid config")

// Config holds all tunable thresholds and window durations.
type Config struct {
	// Blink detection
	EyeOpennessThreshold float64 `json:"eye_openness_threshold"` // avg openness below this is a blink event
	MinBlinks            int     `json:"min_blinks"`             // blink events required per long window

	// Windows
	ShortWindow time.Duration `json:"short_window"` // display-only blink status cadence
	LongWindow  time.Duration `json:"long_window"`  // verdict cadence

	// Head orientation
	HeadTurnThreshold  time.Duration `json:"head_turn_threshold"`  // continuous turn before it counts
	HeadDirectionRatio float64       `json:"head_direction_ratio"` // nose-to-cheek / face width cutoff
}

// DefaultConfig returns the stock thresholds.
func DefaultConfig() Config {
	return Config{
		EyeOpennessThreshold: 0.25,
		MinBlinks:            2,

		ShortWindow: 3 * time.Second,
		LongWindow:  10 * time.Second,

		HeadTurnThreshold:  2 * time.Second,
		HeadDirectionRatio: 0.35,
	}
}

// Validate checks that every setting is usable.
func (c Config) Validate() error {
	var problems []string
	if c.EyeOpennessThreshold <= 0 {
		problems = append(problems, "eye openness threshold must be positive")
	}
	if c.MinBlinks < 0 {
		problems = append(problems, "min blinks must not be negative")
	}
	if c.ShortWindow <= 0 {
		problems = append(problems, "short window must be positive")
	}
	if c.LongWindow <= 0 {
		problems = append(problems, "long window must be positive")
	}
	if c.HeadTurnThreshold < 0 {
		problems = append(problems, "head turn threshold must not be negative")
	}
	if c.HeadDirectionRatio <= 0 || c.HeadDirectionRatio >= 1 {
		problems = append(problems, "head direction ratio must be in (0, 1)")
	}
	if len(problems) > 0 {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, problems)
	}
	return nil
}
