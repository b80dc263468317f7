package monitor

import (
	"context"
	"io"
	"sync"
	"time"

	"github.com/teslashibe/go-engage/pkg/capture"
	"github.com/teslashibe/go-engage/pkg/detection"
	"github.com/teslashibe/go-engage/pkg/engagement"
	"github.com/teslashibe/go-engage/pkg/geometry"
)

var t0 = time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC)

// stepClock advances by step on every Now call.
type stepClock struct {
	next time.Time
	step time.Duration
}

func (c *stepClock) Now() time.Time {
	now := c.next
	c.next = c.next.Add(c.step)
	return now
}

// fakeSource yields n frames and then io.EOF.
type fakeSource struct {
	n      uint64
	seq    uint64
	onRead func(seq uint64)
}

func (s *fakeSource) Read(ctx context.Context) (capture.Frame, error) {
	if err := ctx.Err(); err != nil {
		return capture.Frame{}, err
	}
	if s.seq >= s.n {
		return capture.Frame{}, io.EOF
	}
	s.seq++
	if s.onRead != nil {
		s.onRead(s.seq)
	}
	return capture.Frame{JPEG: []byte{byte(s.seq)}, Width: 640, Height: 480, Seq: s.seq}, nil
}

type detectFunc func(jpeg []byte) ([]detection.Detection, error)

func (f detectFunc) Detect(jpeg []byte) ([]detection.Detection, error) { return f(jpeg) }

type extractFunc func(ctx context.Context, frame capture.Frame, det detection.Detection) (geometry.Landmarks, error)

func (f extractFunc) Extract(ctx context.Context, frame capture.Frame, det detection.Detection) (geometry.Landmarks, error) {
	return f(ctx, frame, det)
}

var oneFace = detectFunc(func([]byte) ([]detection.Detection, error) {
	return []detection.Detection{{X: 0.3, Y: 0.3, W: 0.4, H: 0.4, Confidence: 0.9}}, nil
})

var noFaces = detectFunc(func([]byte) ([]detection.Detection, error) {
	return nil, nil
})

// recorder keeps everything a sink receives.
type recorder struct {
	mu      sync.Mutex
	updates []engagement.Snapshot
	reports []engagement.Report
}

func (r *recorder) Update(s engagement.Snapshot) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.updates = append(r.updates, s)
}

func (r *recorder) Report(rep engagement.Report) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.reports = append(r.reports, rep)
}

// landmarksFor builds a face with cheeks at x=0 and x=100.
func landmarksFor(closed bool, noseX float64) geometry.Landmarks {
	half := 1.0
	if closed {
		half = 0.1
	}
	eye := [6]geometry.Point{{X: 0, Y: 0}, {X: 1, Y: -half}, {X: 3, Y: -half}, {X: 4, Y: 0}, {X: 3, Y: half}, {X: 1, Y: half}}

	var l geometry.Landmarks
	l[geometry.LeftCheek] = geometry.Point{X: 0, Y: 50}
	l[geometry.RightCheek] = geometry.Point{X: 100, Y: 50}
	l[geometry.NoseTip] = geometry.Point{X: noseX, Y: 50}
	for i, p := range eye {
		l[geometry.LeftEyeStart+i] = geometry.Point{X: p.X + 20, Y: p.Y + 30}
		l[geometry.RightEyeStart+i] = geometry.Point{X: p.X + 70, Y: p.Y + 30}
	}
	return l
}
