package engagement

import "time"

// WindowSnapshot is the accumulated content of one closed window.
type WindowSnapshot struct {
	Start    time.Time `json:"start"`
	End      time.Time `json:"end"`
	FaceSeen bool      `json:"face_seen"`
	Events   int       `json:"events"`
}

// Window accumulates face presence and blink events over a fixed
// duration. Every Observe call counts, so callers observe once per sample.
type Window struct {
	duration time.Duration

	start    time.Time
	faceSeen bool
	events   int
}

// NewWindow starts an empty window of the given duration at start.
func NewWindow(duration time.Duration, start time.Time) *Window {
	return &Window{duration: duration, start: start}
}

// Observe folds one sample into the open window.
func (w *Window) Observe(faceDetected, event bool) {
	w.faceSeen = w.faceSeen || faceDetected
	if event {
		w.events++
	}
}

// RollIfDue closes the window when at least its duration has elapsed
// since it opened. The closed window's contents are returned and a fresh
// window starts at now. Before that it returns false and changes nothing.
func (w *Window) RollIfDue(now time.Time) (WindowSnapshot, bool) {
	if now.Sub(w.start) < w.duration {
		return WindowSnapshot{}, false
	}
	snap := WindowSnapshot{
		Start:    w.start,
		End:      now,
		FaceSeen: w.faceSeen,
		Events:   w.events,
	}
	w.start = now
	w.faceSeen = false
	w.events = 0
	return snap, true
}

// Pending returns the contents of the still-open window.
func (w *Window) Pending() (faceSeen bool, events int) {
	return w.faceSeen, w.events
}

// Start returns when the open window began.
func (w *Window) Start() time.Time {
	return w.start
}

// Duration returns the configured window length.
func (w *Window) Duration() time.Duration {
	return w.duration
}
