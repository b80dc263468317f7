// Package webcam reads frames from a local camera or video file with
// OpenCV.
package webcam

import (
	"context"
	"fmt"
	"strconv"
	"sync"

	"github.com/teslashibe/go-engage/pkg/capture"
	"gocv.io/x/gocv"
)

// Config holds capture settings.
type Config struct {
	Source  string // Device index ("0") or path/URL to a video
	Quality int    // JPEG quality 1-100
}

// DefaultConfig returns the first local camera at quality 85.
func DefaultConfig() Config {
	return Config{Source: "0", Quality: 85}
}

// Camera delivers JPEG frames from a gocv VideoCapture.
type Camera struct {
	cap     *gocv.VideoCapture
	mat     gocv.Mat
	quality int
	seq     uint64
	mu      sync.Mutex
}

// Open starts capturing from cfg.Source. Numeric sources are treated as
// device indices.
func Open(cfg Config) (*Camera, error) {
	var src interface{} = cfg.Source
	if idx, err := strconv.Atoi(cfg.Source); err == nil {
		src = idx
	}

	vc, err := gocv.OpenVideoCapture(src)
	if err != nil {
		return nil, fmt.Errorf("open video source %q: %w", cfg.Source, err)
	}
	if !vc.IsOpened() {
		vc.Close()
		return nil, fmt.Errorf("open video source %q: %w", cfg.Source, capture.ErrReadFailed)
	}

	q := cfg.Quality
	if q <= 0 || q > 100 {
		q = DefaultConfig().Quality
	}

	return &Camera{cap: vc, mat: gocv.NewMat(), quality: q}, nil
}

// Read grabs and encodes the next frame.
func (c *Camera) Read(ctx context.Context) (capture.Frame, error) {
	if err := ctx.Err(); err != nil {
		return capture.Frame{}, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if ok := c.cap.Read(&c.mat); !ok || c.mat.Empty() {
		return capture.Frame{}, capture.ErrReadFailed
	}

	buf, err := gocv.IMEncodeWithParams(gocv.JPEGFileExt, c.mat, []int{int(gocv.IMWriteJpegQuality), c.quality})
	if err != nil {
		return capture.Frame{}, fmt.Errorf("encode frame: %w", err)
	}
	defer buf.Close()

	// The native buffer is freed on Close, so keep a Go-owned copy.
	data := append([]byte(nil), buf.GetBytes()...)

	c.seq++
	return capture.Frame{
		JPEG:   data,
		Width:  c.mat.Cols(),
		Height: c.mat.Rows(),
		Seq:    c.seq,
	}, nil
}

// Close releases the capture device.
func (c *Camera) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.mat.Close()
	return c.cap.Close()
}
