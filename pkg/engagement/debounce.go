package engagement

import (
	"time"

	"github.com/teslashibe/go-engage/pkg/geometry"
)

// TurnState is the debouncer's position in its state machine.
type TurnState int

const (
	Centered TurnState = iota
	Turning
	Sustained
)

func (s TurnState) String() string {
	switch s {
	case Turning:
		return "turning"
	case Sustained:
		return "sustained"
	default:
		return "centered"
	}
}

// Debouncer tracks how long the head has continuously been away from
// Center. A single Center observation clears it immediately.
type Debouncer struct {
	threshold time.Duration

	state     TurnState
	turnStart time.Time // zero while Centered
	direction geometry.Direction
}

// NewDebouncer creates a debouncer that reports a sustained turn once the
// head has been non-Center for at least threshold.
func NewDebouncer(threshold time.Duration) *Debouncer {
	return &Debouncer{threshold: threshold, direction: geometry.Unknown}
}

// Observe feeds one direction reading taken at now. Unknown readings
// leave the state untouched.
func (d *Debouncer) Observe(dir geometry.Direction, now time.Time) {
	switch dir {
	case geometry.Unknown:
		return
	case geometry.Center:
		d.state = Centered
		d.turnStart = time.Time{}
		d.direction = dir
		return
	}

	d.direction = dir
	switch d.state {
	case Centered:
		d.state = Turning
		d.turnStart = now
	case Turning:
		if now.Sub(d.turnStart) >= d.threshold {
			d.state = Sustained
		}
	}
}

// Sustained reports whether the head has been turned for at least the
// threshold without an intervening Center reading.
func (d *Debouncer) Sustained() bool {
	return d.state == Sustained
}

// State returns the current state machine position.
func (d *Debouncer) State() TurnState {
	return d.state
}

// TurnStart returns when the current turn began, and false while Centered.
func (d *Debouncer) TurnStart() (time.Time, bool) {
	return d.turnStart, d.state != Centered
}

// Direction returns the most recent reliable direction observed.
func (d *Debouncer) Direction() geometry.Direction {
	return d.direction
}
