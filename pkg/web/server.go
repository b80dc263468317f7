// Package web provides a live engagement dashboard: the latest per-frame
// status, recent engagement checks and the active thresholds, over REST
// and websocket.
package web

import (
	"sync"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/websocket/v2"
	"github.com/teslashibe/go-engage/internal/log"
	"github.com/teslashibe/go-engage/pkg/engagement"
	"github.com/teslashibe/go-engage/pkg/hub"
	"github.com/teslashibe/go-engage/pkg/monitor"
)

// maxReports bounds the in-memory history of engagement checks.
const maxReports = 100

// Status is the per-frame dashboard view.
type Status struct {
	Session    string              `json:"session"`
	Frames     uint64              `json:"frames"`
	Snapshot   engagement.Snapshot `json:"snapshot"`
	Engagement string              `json:"engagement"`
	HeadTurn   string              `json:"head_turn"`
}

// Server is the web dashboard server
type Server struct {
	app  *fiber.App
	port string
	cfg  engagement.Config

	session string

	status   Status
	statusMu sync.RWMutex

	reports   []engagement.Report
	reportsMu sync.RWMutex

	// Hubs for websocket broadcast
	statusHub *hub.Hub
	reportHub *hub.Hub
}

var _ monitor.Sink = (*Server)(nil)

// NewServer creates a dashboard server for one monitoring session
func NewServer(port, session string, cfg engagement.Config) *Server {
	s := &Server{
		port:      port,
		cfg:       cfg,
		session:   session,
		reports:   make([]engagement.Report, 0, maxReports),
		statusHub: hub.New("status"),
		reportHub: hub.New("reports"),
	}
	s.status = Status{
		Session:    session,
		Snapshot:   engagement.Snapshot{Verdict: engagement.PendingVerdict},
		Engagement: engagement.PendingVerdict.Status(),
		HeadTurn:   engagement.Centered.String(),
	}

	app := fiber.New(fiber.Config{
		AppName:               "Engagement Dashboard",
		DisableStartupMessage: true,
	})

	// CORS for local development
	app.Use(cors.New())

	app.Get("/healthz", s.handleHealth)

	api := app.Group("/api")
	api.Get("/status", s.handleStatus)
	api.Get("/reports", s.handleReports)
	api.Get("/reports/latest", s.handleLatestReport)
	api.Get("/config", s.handleConfig)

	// WebSocket upgrade middleware
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})

	app.Get("/ws/status", websocket.New(s.handleStatusWS))
	app.Get("/ws/reports", websocket.New(s.handleReportsWS))

	s.app = app
	return s
}

// Start runs the hubs and serves until Shutdown
func (s *Server) Start() error {
	log.Info("web dashboard listening", "url", "http://localhost:"+s.port)

	go s.statusHub.Run()
	go s.reportHub.Run()

	return s.app.Listen(":" + s.port)
}

// StartAsync starts the web server in a goroutine
func (s *Server) StartAsync() {
	go func() {
		if err := s.Start(); err != nil {
			log.Error("web server error", "error", err)
		}
	}()
}

// Shutdown stops the hubs and the HTTP server
func (s *Server) Shutdown() error {
	s.statusHub.Stop()
	s.reportHub.Stop()
	return s.app.Shutdown()
}

// Update stores the latest snapshot and pushes it to status clients
func (s *Server) Update(snap engagement.Snapshot) {
	s.statusMu.Lock()
	s.status.Frames++
	s.status.Snapshot = snap
	s.status.Snapshot.Report = nil // reports have their own stream
	s.status.Engagement = snap.Verdict.Status()
	s.status.HeadTurn = snap.HeadTurn.String()
	status := s.status
	s.statusMu.Unlock()

	if err := s.statusHub.BroadcastJSON(status); err != nil {
		log.Warn("encode status", "error", err)
	}
}

// Report appends an engagement check to the history and pushes it to
// report clients
func (s *Server) Report(r engagement.Report) {
	s.reportsMu.Lock()
	s.reports = append(s.reports, r)
	if len(s.reports) > maxReports {
		s.reports = s.reports[1:]
	}
	s.reportsMu.Unlock()

	if err := s.reportHub.BroadcastJSON(r); err != nil {
		log.Warn("encode report", "error", err)
	}
}

// CurrentStatus returns a copy of the latest status
func (s *Server) CurrentStatus() Status {
	s.statusMu.RLock()
	defer s.statusMu.RUnlock()
	return s.status
}

// Reports returns a copy of the report history, oldest first
func (s *Server) Reports() []engagement.Report {
	s.reportsMu.RLock()
	defer s.reportsMu.RUnlock()
	out := make([]engagement.Report, len(s.reports))
	copy(out, s.reports)
	return out
}
