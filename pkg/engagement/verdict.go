package engagement

import (
	"fmt"

	"github.com/teslashibe/go-engage/pkg/geometry"
)

// Reason explains a Verdict.
type Reason int

const (
	// ReasonPending is held until the first long window closes.
	ReasonPending Reason = iota
	ReasonNoFace
	ReasonInsufficientBlinks
	ReasonHeadTurnedTooLong
	ReasonEngaged
)

func (r Reason) String() string {
	switch r {
	case ReasonNoFace:
		return "no_face"
	case ReasonInsufficientBlinks:
		return "insufficient_blinks"
	case ReasonHeadTurnedTooLong:
		return "head_turned_too_long"
	case ReasonEngaged:
		return "engaged"
	default:
		return "pending"
	}
}

// MarshalText renders the reason code in JSON payloads.
func (r Reason) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

// UnmarshalText parses a reason code.
func (r *Reason) UnmarshalText(b []byte) error {
	for c := ReasonPending; c <= ReasonEngaged; c++ {
		if c.String() == string(b) {
			*r = c
			return nil
		}
	}
	return fmt.Errorf("engagement: unknown reason %q", b)
}

// Verdict is the engagement classification for one long window.
type Verdict struct {
	Engaged   bool               `json:"engaged"`
	Reason    Reason             `json:"reason"`
	Direction geometry.Direction `json:"direction"` // set for ReasonHeadTurnedTooLong
}

// PendingVerdict is the verdict held before any window has closed.
var PendingVerdict = Verdict{Reason: ReasonPending, Direction: geometry.Unknown}

// Status is the short headline for the verdict.
func (v Verdict) Status() string {
	switch {
	case v.Reason == ReasonPending:
		return "Checking..."
	case v.Engaged:
		return "Engaged"
	default:
		return "Not Engaged"
	}
}

// Text renders the human-readable reason, quoting the configured blink
// minimum and head-turn threshold where relevant.
func (v Verdict) Text(cfg Config) string {
	switch v.Reason {
	case ReasonNoFace:
		return "No Face Detected"
	case ReasonInsufficientBlinks:
		return fmt.Sprintf("Blinks < %d", cfg.MinBlinks)
	case ReasonHeadTurnedTooLong:
		return fmt.Sprintf("Head turned %s > %s", v.Direction, cfg.HeadTurnThreshold)
	case ReasonEngaged:
		return "Face Detected, Blinking, Head Centered"
	default:
		return ""
	}
}

// Input is everything the verdict rules look at.
type Input struct {
	FaceSeen  bool
	Blinks    int
	Direction geometry.Direction
	Sustained bool
}

// Evaluate applies the verdict rules in fixed priority order: no face,
// then too few blinks, then a sustained head turn. The first match wins.
func Evaluate(in Input, minBlinks int) Verdict {
	switch {
	case !in.FaceSeen:
		return Verdict{Reason: ReasonNoFace, Direction: in.Direction}
	case in.Blinks < minBlinks:
		return Verdict{Reason: ReasonInsufficientBlinks, Direction: in.Direction}
	case in.Sustained:
		return Verdict{Reason: ReasonHeadTurnedTooLong, Direction: in.Direction}
	default:
		return Verdict{Engaged: true, Reason: ReasonEngaged, Direction: in.Direction}
	}
}
