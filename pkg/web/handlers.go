package web

import (
	"encoding/json"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/teslashibe/go-engage/internal/log"
	"github.com/teslashibe/go-engage/pkg/hub"
)

// configView renders durations as strings for humans.
type configView struct {
	EyeOpennessThreshold float64 `json:"eye_openness_threshold"`
	MinBlinks            int     `json:"min_blinks"`
	ShortWindow          string  `json:"short_window"`
	LongWindow           string  `json:"long_window"`
	HeadTurnThreshold    string  `json:"head_turn_threshold"`
	HeadDirectionRatio   float64 `json:"head_direction_ratio"`
}

func (s *Server) handleHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok", "session": s.session})
}

// handleStatus returns the latest per-frame status
func (s *Server) handleStatus(c *fiber.Ctx) error {
	return c.JSON(s.CurrentStatus())
}

// handleReports returns recent engagement checks, newest last
func (s *Server) handleReports(c *fiber.Ctx) error {
	reports := s.Reports()
	if limit := c.QueryInt("limit", 0); limit > 0 && limit < len(reports) {
		reports = reports[len(reports)-limit:]
	}
	return c.JSON(reports)
}

// handleLatestReport returns the most recent engagement check
func (s *Server) handleLatestReport(c *fiber.Ctx) error {
	reports := s.Reports()
	if len(reports) == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "no engagement check yet",
		})
	}
	return c.JSON(reports[len(reports)-1])
}

// handleConfig returns the active thresholds
func (s *Server) handleConfig(c *fiber.Ctx) error {
	return c.JSON(configView{
		EyeOpennessThreshold: s.cfg.EyeOpennessThreshold,
		MinBlinks:            s.cfg.MinBlinks,
		ShortWindow:          s.cfg.ShortWindow.String(),
		LongWindow:           s.cfg.LongWindow.String(),
		HeadTurnThreshold:    s.cfg.HeadTurnThreshold.String(),
		HeadDirectionRatio:   s.cfg.HeadDirectionRatio,
	})
}

// handleStatusWS streams status updates, starting with the current one
func (s *Server) handleStatusWS(c *websocket.Conn) {
	data, err := json.Marshal(s.CurrentStatus())
	if err != nil {
		log.Warn("encode status", "error", err)
		return
	}
	hub.NewClient(s.statusHub, c, hub.NewJSONMessage(data)).Run()
}

// handleReportsWS streams engagement checks, replaying the history first
func (s *Server) handleReportsWS(c *websocket.Conn) {
	var initial []hub.Message
	for _, r := range s.Reports() {
		data, err := json.Marshal(r)
		if err != nil {
			log.Warn("encode report", "error", err)
			return
		}
		initial = append(initial, hub.NewJSONMessage(data))
	}
	hub.NewClient(s.reportHub, c, initial...).Run()
}
