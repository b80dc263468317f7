package engagement

import (
	"time"

	"github.com/teslashibe/go-engage/pkg/geometry"
)

var t0 = time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC)

func at(ms int) time.Time {
	return t0.Add(time.Duration(ms) * time.Millisecond)
}

// face builds a landmark set with cheeks at x=0 and x=100. closed eyes
// give an openness of 0.05; open eyes give 0.5.
func face(closed bool, noseX float64) *geometry.Landmarks {
	half := 1.0
	if closed {
		half = 0.1
	}
	eye := [6]geometry.Point{
		{X: 0, Y: 0},
		{X: 1, Y: -half},
		{X: 3, Y: -half},
		{X: 4, Y: 0},
		{X: 3, Y: half},
		{X: 1, Y: half},
	}

	var l geometry.Landmarks
	l[geometry.LeftCheek] = geometry.Point{X: 0, Y: 50}
	l[geometry.RightCheek] = geometry.Point{X: 100, Y: 50}
	l[geometry.NoseTip] = geometry.Point{X: noseX, Y: 50}
	for i, p := range eye {
		l[geometry.LeftEyeStart+i] = geometry.Point{X: p.X + 20, Y: p.Y + 30}
		l[geometry.RightEyeStart+i] = geometry.Point{X: p.X + 70, Y: p.Y + 30}
	}
	return &l
}

const (
	noseCenter = 50.0
	noseLeft   = 70.0 // head turned Left
	noseRight  = 30.0 // head turned Right
)
