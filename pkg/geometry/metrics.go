package geometry

import "fmt"

// Direction is the coarse horizontal head orientation.
type Direction int

const (
	// Unknown means no face or no reliable reading this frame.
	Unknown Direction = iota
	Center
	Left
	Right
)

func (d Direction) String() string {
	switch d {
	case Center:
		return "Center"
	case Left:
		return "Left"
	case Right:
		return "Right"
	default:
		return "Unknown"
	}
}

// MarshalText renders the direction name in JSON payloads.
func (d Direction) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText parses a direction name.
func (d *Direction) UnmarshalText(b []byte) error {
	for _, c := range []Direction{Unknown, Center, Left, Right} {
		if c.String() == string(b) {
			*d = c
			return nil
		}
	}
	return fmt.Errorf("geometry: unknown direction %q", b)
}

// EyeOpenness returns the eye aspect ratio of a six-point eye contour:
// (|p1-p5| + |p2-p4|) / (2 * |p0-p3|).
// ok is false when the horizontal reference distance is zero.
func EyeOpenness(eye [6]Point) (ratio float64, ok bool) {
	h := eye[0].Dist(eye[3])
	if h == 0 {
		return 0, false
	}
	v1 := eye[1].Dist(eye[5])
	v2 := eye[2].Dist(eye[4])
	return (v1 + v2) / (2 * h), true
}

// AverageOpenness averages the openness of both eyes. ok is false if
// either eye has no reliable reading.
func AverageOpenness(l *Landmarks) (float64, bool) {
	left, ok := EyeOpenness(l.LeftEye())
	if !ok {
		return 0, false
	}
	right, ok := EyeOpenness(l.RightEye())
	if !ok {
		return 0, false
	}
	return (left + right) / 2, true
}

// HeadDirection classifies head orientation from the nose-to-cheek
// distances normalized by face width. A nose close to the left cheek
// means the head is turned Right, and vice versa. The left side is
// checked first, so when both ratios fall below threshold the result is
// Right. Zero face width yields Unknown.
func HeadDirection(l *Landmarks, threshold float64) Direction {
	nose := l[NoseTip]
	lc, rc := l[LeftCheek], l[RightCheek]

	width := lc.Dist(rc)
	if width == 0 {
		return Unknown
	}

	return ClassifyRatios(nose.Dist(lc)/width, nose.Dist(rc)/width, threshold)
}

// ClassifyRatios maps normalized nose-to-cheek ratios to a Direction.
func ClassifyRatios(leftRatio, rightRatio, threshold float64) Direction {
	switch {
	case leftRatio < threshold:
		return Right
	case rightRatio < threshold:
		return Left
	default:
		return Center
	}
}
