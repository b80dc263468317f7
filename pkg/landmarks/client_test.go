package landmarks

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/teslashibe/go-engage/pkg/capture"
	"github.com/teslashibe/go-engage/pkg/detection"
	"github.com/teslashibe/go-engage/pkg/geometry"
)

func pointsResponse(n int) response {
	pts := make([]geometry.Point, n)
	for i := range pts {
		pts[i] = geometry.Point{X: float64(i), Y: float64(2 * i)}
	}
	return response{Points: pts}
}

func TestClientExtract(t *testing.T) {
	jpeg := []byte{0xff, 0xd8, 0xff, 0xd9}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/landmarks", r.URL.Path)
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req request
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, base64.StdEncoding.EncodeToString(jpeg), req.Image)
		assert.Equal(t, Box{X: 160, Y: 120, Width: 320, Height: 240}, req.Box)

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(pointsResponse(geometry.NumLandmarks))
	}))
	defer server.Close()

	client := NewClient(WithBaseURL(server.URL + "/"))
	frame := capture.Frame{JPEG: jpeg, Width: 640, Height: 480}
	det := detection.Detection{X: 0.25, Y: 0.25, W: 0.5, H: 0.5}

	l, err := client.Extract(t.Context(), frame, det)
	require.NoError(t, err)
	assert.Equal(t, geometry.Point{X: 30, Y: 60}, l[geometry.NoseTip])
}

func TestClientExtract_Incomplete(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(pointsResponse(5))
	}))
	defer server.Close()

	client := NewClient(WithBaseURL(server.URL))
	_, err := client.Extract(t.Context(), capture.Frame{Width: 10, Height: 10}, detection.Detection{W: 1, H: 1})
	assert.ErrorIs(t, err, ErrIncomplete)
}

func TestClientExtract_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "predictor not loaded", http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client := NewClient(WithBaseURL(server.URL))
	_, err := client.Extract(t.Context(), capture.Frame{Width: 10, Height: 10}, detection.Detection{W: 1, H: 1})
	require.ErrorIs(t, err, ErrRequestFailed)
	assert.Contains(t, err.Error(), "503")
	assert.Contains(t, err.Error(), "predictor not loaded")
}
