// Package detection defines face detection results and the selection
// rule used when a frame holds more than one face.
package detection

import "image"

// Detection represents a detected face
type Detection struct {
	X, Y       float64 // Top-left corner (0-1 normalized)
	W, H       float64 // Width and height (0-1 normalized)
	Confidence float64 // Detection confidence (0-1)
}

// Center returns the center point of the detection
func (d Detection) Center() (x, y float64) {
	return d.X + d.W/2, d.Y + d.H/2
}

// Area returns the area of the bounding box
func (d Detection) Area() float64 {
	return d.W * d.H
}

// Clamp trims the box to the unit square. Faces at the frame edge come
// back from YuNet partly outside the image.
func (d Detection) Clamp() Detection {
	x0, y0 := clamp01(d.X), clamp01(d.Y)
	x1, y1 := clamp01(d.X+d.W), clamp01(d.Y+d.H)
	d.X, d.Y = x0, y0
	d.W, d.H = x1-x0, y1-y0
	return d
}

func clamp01(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	}
	return v
}

// Rect converts the normalized box to pixel coordinates for an image of
// the given size.
func (d Detection) Rect(width, height int) image.Rectangle {
	w, h := float64(width), float64(height)
	return image.Rect(
		int(d.X*w),
		int(d.Y*h),
		int((d.X+d.W)*w),
		int((d.Y+d.H)*h),
	)
}

// Detector is the interface for face detection backends
type Detector interface {
	// Detect finds faces in a JPEG image
	Detect(jpeg []byte) ([]Detection, error)

	// Close releases resources
	Close() error
}

// Config holds detector configuration
type Config struct {
	ModelPath        string  // Path to ONNX model
	ConfidenceThresh float64 // Minimum confidence (default 0.5)
	NMSThresh        float64 // Non-maximum suppression overlap
	InputWidth       int     // Model input width
	InputHeight      int     // Model input height
}

// DefaultConfig returns production defaults for YuNet
func DefaultConfig() Config {
	return Config{
		ModelPath:        "models/face_detection_yunet.onnx",
		ConfidenceThresh: 0.5,
		NMSThresh:        0.3,
		InputWidth:       320,
		InputHeight:      320,
	}
}

// Largest picks the face with the biggest box. The earliest detection
// wins on equal area. Returns nil for an empty slice.
func Largest(dets []Detection) *Detection {
	if len(dets) == 0 {
		return nil
	}

	best := &dets[0]
	for i := 1; i < len(dets); i++ {
		if dets[i].Area() > best.Area() {
			best = &dets[i]
		}
	}
	return best
}
