// Package monitor drives the engagement engine from a live frame source:
// one frame is read, sensed and applied before the next is read.
package monitor

import (
	"context"
	"errors"
	"fmt"

	"github.com/teslashibe/go-engage/internal/log"
	"github.com/teslashibe/go-engage/pkg/capture"
	"github.com/teslashibe/go-engage/pkg/detection"
	"github.com/teslashibe/go-engage/pkg/engagement"
	"github.com/teslashibe/go-engage/pkg/geometry"
)

// Sentinel errors returned by Run.
var (
	ErrSourceFailed   = errors.New("monitor: frame source failed")
	ErrDetectFailed   = errors.New("monitor: face detection failed")
	ErrLandmarkFailed = errors.New("monitor: landmark extraction failed")
)

// FrameSource delivers camera frames.
type FrameSource interface {
	Read(ctx context.Context) (capture.Frame, error)
}

// FaceDetector finds faces in a JPEG frame.
type FaceDetector interface {
	Detect(jpeg []byte) ([]detection.Detection, error)
}

// LandmarkExtractor returns the full landmark set for one detected face.
type LandmarkExtractor interface {
	Extract(ctx context.Context, frame capture.Frame, det detection.Detection) (geometry.Landmarks, error)
}

// Loop runs the per-frame pipeline.
type Loop struct {
	source    FrameSource
	detector  FaceDetector
	extractor LandmarkExtractor
	engine    *engagement.Engine
	sink      Sink
	clock     Clock

	frames uint64
}

// LoopOption configures a Loop.
type LoopOption func(*Loop)

// WithClock replaces the wall clock, e.g. for deterministic replay.
func WithClock(c Clock) LoopOption {
	return func(l *Loop) { l.clock = c }
}

// WithSink sets where snapshots and reports go.
func WithSink(s Sink) LoopOption {
	return func(l *Loop) { l.sink = s }
}

// NewLoop wires the collaborators around engine.
func NewLoop(src FrameSource, det FaceDetector, ext LandmarkExtractor, engine *engagement.Engine, opts ...LoopOption) *Loop {
	l := &Loop{
		source:    src,
		detector:  det,
		extractor: ext,
		engine:    engine,
		sink:      Discard,
		clock:     WallClock,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Frames returns how many frames have been processed.
func (l *Loop) Frames() uint64 {
	return l.frames
}

// Run processes frames until ctx is cancelled or a collaborator fails.
// Cancellation returns nil; every other stop is fatal and returned.
func (l *Loop) Run(ctx context.Context) error {
	log.Info("engagement monitor started",
		"session", l.engine.Session(),
		"short_window", l.engine.Config().ShortWindow,
		"long_window", l.engine.Config().LongWindow)

	for {
		if ctx.Err() != nil {
			log.Info("engagement monitor stopped", "frames", l.frames)
			return nil
		}
		if err := l.Tick(ctx); err != nil {
			if ctx.Err() != nil {
				log.Info("engagement monitor stopped", "frames", l.frames)
				return nil
			}
			return err
		}
	}
}

// Tick reads and applies exactly one frame.
func (l *Loop) Tick(ctx context.Context) error {
	frame, err := l.source.Read(ctx)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrSourceFailed, err)
	}
	now := l.clock.Now()

	sample, err := l.sense(ctx, frame)
	if err != nil {
		return err
	}
	sample.Time = now

	snap := l.engine.Step(sample)
	l.frames++

	l.sink.Update(snap)
	if snap.Report != nil {
		l.sink.Report(*snap.Report)
	}
	return nil
}

// sense runs detection and landmark extraction. Only the largest face is
// measured when several are present.
func (l *Loop) sense(ctx context.Context, frame capture.Frame) (engagement.Sample, error) {
	dets, err := l.detector.Detect(frame.JPEG)
	if err != nil {
		return engagement.Sample{}, fmt.Errorf("%w: %w", ErrDetectFailed, err)
	}

	face := detection.Largest(dets)
	if face == nil {
		return engagement.Sample{}, nil
	}

	lm, err := l.extractor.Extract(ctx, frame, *face)
	if err != nil {
		return engagement.Sample{}, fmt.Errorf("%w: %w", ErrLandmarkFailed, err)
	}
	return engagement.Sample{FaceDetected: true, Landmarks: &lm}, nil
}
