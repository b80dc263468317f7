// Package config loads go-engage settings from ENGAGE_* environment
// variables.
package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/teslashibe/go-engage/pkg/engagement"
)

// Prefix is prepended to every variable name, e.g. ENGAGE_LONG_WINDOW.
const Prefix = "ENGAGE"

// Config holds process-level settings.
type Config struct {
	// Capture
	Source      string `envconfig:"SOURCE" default:"0"`
	JPEGQuality int    `envconfig:"JPEG_QUALITY" default:"85"`

	// Face detection
	DetectorModel      string  `envconfig:"DETECTOR_MODEL" default:"models/face_detection_yunet.onnx"`
	DetectorConfidence float64 `envconfig:"DETECTOR_CONFIDENCE" default:"0.5"`

	// Landmark service
	LandmarkURL     string        `envconfig:"LANDMARK_URL" default:"http://127.0.0.1:5005"`
	LandmarkTimeout time.Duration `envconfig:"LANDMARK_TIMEOUT" default:"2s"`

	// Dashboard; empty disables it
	WebPort string `envconfig:"WEB_PORT" default:"8090"`

	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`

	// Engagement thresholds
	EyeOpennessThreshold float64       `envconfig:"EYE_OPENNESS_THRESHOLD" default:"0.25"`
	MinBlinks            int           `envconfig:"MIN_BLINKS" default:"2"`
	ShortWindow          time.Duration `envconfig:"SHORT_WINDOW" default:"3s"`
	LongWindow           time.Duration `envconfig:"LONG_WINDOW" default:"10s"`
	HeadTurnThreshold    time.Duration `envconfig:"HEAD_TURN_THRESHOLD" default:"2s"`
	HeadDirectionRatio   float64       `envconfig:"HEAD_DIRECTION_RATIO" default:"0.35"`
}

// Load reads the environment.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(Prefix, &cfg); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return &cfg, nil
}

// Engagement returns the engine thresholds.
func (c *Config) Engagement() engagement.Config {
	return engagement.Config{
		EyeOpennessThreshold: c.EyeOpennessThreshold,
		MinBlinks:            c.MinBlinks,
		ShortWindow:          c.ShortWindow,
		LongWindow:           c.LongWindow,
		HeadTurnThreshold:    c.HeadTurnThreshold,
		HeadDirectionRatio:   c.HeadDirectionRatio,
	}
}

// DashboardEnabled reports whether the web dashboard should run.
func (c *Config) DashboardEnabled() bool {
	return c.WebPort != ""
}
