package web

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/teslashibe/go-engage/pkg/engagement"
	"github.com/teslashibe/go-engage/pkg/geometry"
)

func get(t *testing.T, s *Server, path string) (int, []byte) {
	t.Helper()
	resp, err := s.app.Test(httptest.NewRequest(http.MethodGet, path, nil))
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, body
}

func TestServer_StatusBeforeFirstFrame(t *testing.T) {
	s := NewServer("0", "sess-1", engagement.DefaultConfig())

	code, body := get(t, s, "/api/status")
	require.Equal(t, http.StatusOK, code)

	var got map[string]any
	require.NoError(t, json.Unmarshal(body, &got))
	assert.Equal(t, "sess-1", got["session"])
	assert.Equal(t, "Checking...", got["engagement"])
	assert.Equal(t, "pending", got["snapshot"].(map[string]any)["verdict"].(map[string]any)["reason"])
}

func TestServer_Update(t *testing.T) {
	s := NewServer("0", "sess-1", engagement.DefaultConfig())
	s.Update(engagement.Snapshot{
		Time:         time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC),
		FaceDetected: true,
		Direction:    geometry.Left,
		HeadTurn:     engagement.Turning,
		BlinkStatus:  engagement.Blinking,
		Verdict:      engagement.Verdict{Engaged: true, Reason: engagement.ReasonEngaged},
		Report:       &engagement.Report{Blinks: 9},
	})

	status := s.CurrentStatus()
	assert.Equal(t, uint64(1), status.Frames)
	assert.Nil(t, status.Snapshot.Report)

	_, body := get(t, s, "/api/status")
	var got struct {
		Engagement string `json:"engagement"`
		HeadTurn   string `json:"head_turn"`
		Snapshot   struct {
			FaceDetected bool   `json:"face_detected"`
			Direction    string `json:"head_direction"`
			BlinkStatus  string `json:"blink_status"`
		} `json:"snapshot"`
	}
	require.NoError(t, json.Unmarshal(body, &got))
	assert.Equal(t, "Engaged", got.Engagement)
	assert.Equal(t, "turning", got.HeadTurn)
	assert.True(t, got.Snapshot.FaceDetected)
	assert.Equal(t, "Left", got.Snapshot.Direction)
	assert.Equal(t, "Blinking", got.Snapshot.BlinkStatus)
}

func TestServer_Reports(t *testing.T) {
	s := NewServer("0", "sess-1", engagement.DefaultConfig())

	code, _ := get(t, s, "/api/reports/latest")
	assert.Equal(t, http.StatusNotFound, code)

	for i := 0; i < maxReports+5; i++ {
		s.Report(engagement.Report{Blinks: i, Reason: fmt.Sprintf("r%d", i)})
	}

	reports := s.Reports()
	require.Len(t, reports, maxReports)
	assert.Equal(t, 5, reports[0].Blinks, "oldest entries are evicted")

	code, body := get(t, s, "/api/reports?limit=2")
	require.Equal(t, http.StatusOK, code)
	var got []engagement.Report
	require.NoError(t, json.Unmarshal(body, &got))
	require.Len(t, got, 2)
	assert.Equal(t, maxReports+3, got[0].Blinks)

	code, body = get(t, s, "/api/reports/latest")
	require.Equal(t, http.StatusOK, code)
	var latest map[string]any
	require.NoError(t, json.Unmarshal(body, &latest))
	assert.Equal(t, float64(maxReports+4), latest["blinks"])
}

func TestServer_Config(t *testing.T) {
	s := NewServer("0", "sess-1", engagement.DefaultConfig())

	_, body := get(t, s, "/api/config")
	var got configView
	require.NoError(t, json.Unmarshal(body, &got))
	assert.Equal(t, "3s", got.ShortWindow)
	assert.Equal(t, "10s", got.LongWindow)
	assert.Equal(t, "2s", got.HeadTurnThreshold)
	assert.Equal(t, 0.25, got.EyeOpennessThreshold)
}

func TestServer_WebSocketRequiresUpgrade(t *testing.T) {
	s := NewServer("0", "sess-1", engagement.DefaultConfig())
	code, _ := get(t, s, "/ws/status")
	assert.Equal(t, http.StatusUpgradeRequired, code)
}

func TestServer_Health(t *testing.T) {
	s := NewServer("0", "sess-1", engagement.DefaultConfig())
	code, body := get(t, s, "/healthz")
	assert.Equal(t, http.StatusOK, code)
	assert.JSONEq(t, `{"status":"ok","session":"sess-1"}`, string(body))
}
