// Package geometry turns facial landmark points into scalar features:
// eye openness and coarse head direction.
package geometry

import "math"

// Landmark indices in the 68-point dlib scheme.
const (
	LeftCheek  = 1
	Chin       = 8
	RightCheek = 15
	NoseTip    = 30

	LeftEyeStart  = 36 // 36-41
	RightEyeStart = 42 // 42-47

	NumLandmarks = 68
)

// Point is a 2-D image coordinate.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Dist returns the Euclidean distance between p and q.
func (p Point) Dist(q Point) float64 {
	return math.Hypot(p.X-q.X, p.Y-q.Y)
}

// Scale returns p multiplied by k.
func (p Point) Scale(k float64) Point {
	return Point{X: p.X * k, Y: p.Y * k}
}

// Landmarks is a full 68-point face landmark set.
type Landmarks [NumLandmarks]Point

// LeftEye returns the six contour points of the subject's left eye.
func (l *Landmarks) LeftEye() [6]Point {
	var eye [6]Point
	copy(eye[:], l[LeftEyeStart:LeftEyeStart+6])
	return eye
}

// RightEye returns the six contour points of the subject's right eye.
func (l *Landmarks) RightEye() [6]Point {
	var eye [6]Point
	copy(eye[:], l[RightEyeStart:RightEyeStart+6])
	return eye
}

// FromSlice builds a Landmarks set. It reports false unless pts holds
// exactly NumLandmarks points.
func FromSlice(pts []Point) (Landmarks, bool) {
	var l Landmarks
	if len(pts) != NumLandmarks {
		return l, false
	}
	copy(l[:], pts)
	return l, true
}
