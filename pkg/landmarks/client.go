// Package landmarks fetches 68-point face landmarks from a shape
// predictor service over HTTP.
//
// The service receives the frame and one face box and must answer with
// exactly 68 points in image pixels:
//
//	POST /v1/landmarks
//	{"image": "<base64 jpeg>", "box": {"x": 10, "y": 20, "width": 100, "height": 120}}
//	-> {"points": [{"x": 12.5, "y": 40.0}, ...]}
package landmarks

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/teslashibe/go-engage/internal/httpc"
	"github.com/teslashibe/go-engage/pkg/capture"
	"github.com/teslashibe/go-engage/pkg/detection"
	"github.com/teslashibe/go-engage/pkg/geometry"
)

// Sentinel errors.
var (
	// ErrIncomplete is returned when the service does not answer with a
	// full 68-point set.
	ErrIncomplete = errors.New("landmarks: incomplete landmark set")

	// ErrRequestFailed wraps transport and HTTP status failures.
	ErrRequestFailed = errors.New("landmarks: request failed")
)

// DefaultBaseURL is where the sidecar listens by default.
const DefaultBaseURL = "http://127.0.0.1:5005"

// Box is a face region in image pixels.
type Box struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

type request struct {
	Image string `json:"image"`
	Box   Box    `json:"box"`
}

type response struct {
	Points []geometry.Point `json:"points"`
}

// Client calls the landmark service.
type Client struct {
	baseURL string
	http    *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL sets the service address.
func WithBaseURL(url string) Option {
	return func(c *Client) { c.baseURL = strings.TrimRight(url, "/") }
}

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.http = httpc.NewClient(d) }
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// NewClient creates a landmark client.
func NewClient(opts ...Option) *Client {
	c := &Client{
		baseURL: DefaultBaseURL,
		http:    httpc.Client,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Extract returns the landmarks of the face in det.
func (c *Client) Extract(ctx context.Context, frame capture.Frame, det detection.Detection) (geometry.Landmarks, error) {
	r := det.Rect(frame.Width, frame.Height)
	req := request{
		Image: base64.StdEncoding.EncodeToString(frame.JPEG),
		Box:   Box{X: r.Min.X, Y: r.Min.Y, Width: r.Dx(), Height: r.Dy()},
	}

	var resp response
	if err := httpc.PostJSON(ctx, c.http, c.baseURL+"/v1/landmarks", req, &resp); err != nil {
		return geometry.Landmarks{}, fmt.Errorf("%w: %w", ErrRequestFailed, err)
	}

	l, ok := geometry.FromSlice(resp.Points)
	if !ok {
		return geometry.Landmarks{}, fmt.Errorf("%w: got %d points, want %d",
			ErrIncomplete, len(resp.Points), geometry.NumLandmarks)
	}
	return l, nil
}
