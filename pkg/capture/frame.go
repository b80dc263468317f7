// Package capture defines the frame type handed from video acquisition
// to the rest of the pipeline.
package capture

import "errors"

// ErrReadFailed is returned when a source cannot deliver the next frame.
var ErrReadFailed = errors.New("capture: read failed")

// Frame is one JPEG-encoded camera image.
type Frame struct {
	JPEG   []byte
	Width  int
	Height int
	Seq    uint64 // 1-based frame counter
}
