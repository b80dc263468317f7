package engagement

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/teslashibe/go-engage/pkg/geometry"
)

// BlinkStatus is the display-only result of the short window.
type BlinkStatus int

const (
	BlinkWaiting BlinkStatus = iota
	Blinking
	NotBlinking
)

func (b BlinkStatus) String() string {
	switch b {
	case Blinking:
		return "Blinking"
	case NotBlinking:
		return "Not Blinking"
	default:
		return "Waiting..."
	}
}

// MarshalText renders the status text in JSON payloads.
func (b BlinkStatus) MarshalText() ([]byte, error) {
	return []byte(b.String()), nil
}

// UnmarshalText parses a status text.
func (b *BlinkStatus) UnmarshalText(text []byte) error {
	for _, c := range []BlinkStatus{BlinkWaiting, Blinking, NotBlinking} {
		if c.String() == string(text) {
			*b = c
			return nil
		}
	}
	return fmt.Errorf("engagement: unknown blink status %q", text)
}

// Sample is one frame's worth of observations.
type Sample struct {
	Time         time.Time
	FaceDetected bool
	Landmarks    *geometry.Landmarks // nil when no face was found
}

// Report is the record produced each time the long window closes.
type Report struct {
	Session           string             `json:"session"`
	Time              time.Time          `json:"time"`
	Window            WindowSnapshot     `json:"window"`
	FaceSeen          bool               `json:"face_seen"`
	Blinks            int                `json:"blinks"`
	Direction         geometry.Direction `json:"head_direction"`
	HeadTurnSustained bool               `json:"head_turn_sustained"`
	Verdict           Verdict            `json:"verdict"`
	Status            string             `json:"status"`
	Reason            string             `json:"reason_text"`
}

// Snapshot is an immutable read-out of the engine after one Step.
type Snapshot struct {
	Time         time.Time          `json:"time"`
	FaceDetected bool               `json:"face_detected"`
	Blink        bool               `json:"blink"`
	Openness     float64            `json:"openness"`
	OpennessOK   bool               `json:"openness_ok"`
	Direction    geometry.Direction `json:"head_direction"`
	HeadTurn     TurnState          `json:"-"`
	BlinkStatus  BlinkStatus        `json:"blink_status"`
	Verdict      Verdict            `json:"verdict"`
	VerdictText  string             `json:"verdict_text"`

	// ShortWindow is set on the step that closed a short window.
	ShortWindow *WindowSnapshot `json:"short_window,omitempty"`
	// Report is set on the step that closed a long window.
	Report *Report `json:"report,omitempty"`
}

// Option configures an Engine.
type Option func(*Engine)

// WithSession sets the session id stamped on reports.
func WithSession(id string) Option {
	return func(e *Engine) { e.session = id }
}

// Engine owns the debouncer, both windows and the held verdict. It has a
// single writer: Step is not safe for concurrent use. Readers get
// Snapshot values, never references into engine state.
type Engine struct {
	cfg     Config
	session string

	turn  *Debouncer
	short *Window
	long  *Window

	blinkStatus BlinkStatus
	verdict     Verdict
}

// NewEngine creates an engine whose windows open at start.
func NewEngine(cfg Config, start time.Time, opts ...Option) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	e := &Engine{
		cfg:         cfg,
		session:     uuid.NewString(),
		turn:        NewDebouncer(cfg.HeadTurnThreshold),
		short:       NewWindow(cfg.ShortWindow, start),
		long:        NewWindow(cfg.LongWindow, start),
		blinkStatus: BlinkWaiting,
		verdict:     PendingVerdict,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// Config returns the engine's thresholds.
func (e *Engine) Config() Config {
	return e.cfg
}

// Session returns the id stamped on reports.
func (e *Engine) Session() string {
	return e.session
}

// Verdict returns the currently held verdict.
func (e *Engine) Verdict() Verdict {
	return e.verdict
}

// Step applies one sample. Face metrics are only derived when a face was
// detected; a reading with degenerate geometry contributes nothing for
// that feature. Windows are fed before they are rolled, so the closing
// sample belongs to the window it closes.
func (e *Engine) Step(s Sample) Snapshot {
	snap := Snapshot{
		Time:         s.Time,
		FaceDetected: s.FaceDetected,
		Direction:    geometry.Unknown,
	}

	if s.FaceDetected && s.Landmarks != nil {
		if avg, ok := geometry.AverageOpenness(s.Landmarks); ok {
			snap.Openness, snap.OpennessOK = avg, true
			snap.Blink = avg < e.cfg.EyeOpennessThreshold
		}
		snap.Direction = geometry.HeadDirection(s.Landmarks, e.cfg.HeadDirectionRatio)
		e.turn.Observe(snap.Direction, s.Time)
	}

	e.short.Observe(s.FaceDetected, snap.Blink)
	e.long.Observe(s.FaceDetected, snap.Blink)

	if w, ok := e.short.RollIfDue(s.Time); ok {
		if w.Events > 0 {
			e.blinkStatus = Blinking
		} else {
			e.blinkStatus = NotBlinking
		}
		snap.ShortWindow = &w
	}

	if w, ok := e.long.RollIfDue(s.Time); ok {
		in := Input{
			FaceSeen:  w.FaceSeen,
			Blinks:    w.Events,
			Direction: e.turn.Direction(),
			Sustained: e.turn.Sustained(),
		}
		e.verdict = Evaluate(in, e.cfg.MinBlinks)
		snap.Report = &Report{
			Session:           e.session,
			Time:              s.Time,
			Window:            w,
			FaceSeen:          in.FaceSeen,
			Blinks:            in.Blinks,
			Direction:         in.Direction,
			HeadTurnSustained: in.Sustained,
			Verdict:           e.verdict,
			Status:            e.verdict.Status(),
			Reason:            e.verdict.Text(e.cfg),
		}
	}

	snap.HeadTurn = e.turn.State()
	snap.BlinkStatus = e.blinkStatus
	snap.Verdict = e.verdict
	snap.VerdictText = e.verdict.Text(e.cfg)
	return snap
}
