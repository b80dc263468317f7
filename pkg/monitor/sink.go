package monitor

import (
	"context"
	"log/slog"

	"github.com/teslashibe/go-engage/pkg/engagement"
)

// Sink receives every frame's snapshot and each long-window report.
// Both arguments are values; sinks may keep them.
type Sink interface {
	Update(snap engagement.Snapshot)
	Report(r engagement.Report)
}

type discard struct{}

func (discard) Update(engagement.Snapshot) {}
func (discard) Report(engagement.Report)   {}

// Discard drops everything.
var Discard Sink = discard{}

// MultiSink fans out to several sinks in order.
type MultiSink []Sink

func (m MultiSink) Update(snap engagement.Snapshot) {
	for _, s := range m {
		s.Update(snap)
	}
}

func (m MultiSink) Report(r engagement.Report) {
	for _, s := range m {
		s.Report(r)
	}
}

// LogSink writes blink status on each short rollover and one record per
// engagement check.
type LogSink struct {
	Logger *slog.Logger
}

// NewLogSink returns a sink that writes to logger.
func NewLogSink(logger *slog.Logger) *LogSink {
	return &LogSink{Logger: logger}
}

func (s *LogSink) Update(snap engagement.Snapshot) {
	if snap.ShortWindow == nil {
		return
	}
	s.Logger.Info("blink status",
		"status", snap.BlinkStatus.String(),
		"events", snap.ShortWindow.Events)
}

func (s *LogSink) Report(r engagement.Report) {
	level := slog.LevelInfo
	if !r.Verdict.Engaged {
		level = slog.LevelWarn
	}
	s.Logger.Log(context.Background(), level, "engagement check",
		"session", r.Session,
		"face_seen", r.FaceSeen,
		"blinks", r.Blinks,
		"head_direction", r.Direction.String(),
		"head_turn_sustained", r.HeadTurnSustained,
		"engaged", r.Verdict.Engaged,
		"reason", r.Verdict.Reason.String(),
		"reason_text", r.Reason)
}
