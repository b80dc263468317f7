// engage - live engagement monitor
//
// Reads frames from a camera or video, measures blink rate and head
// orientation, and reports an engagement verdict every long window.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/teslashibe/go-engage/internal/config"
	"github.com/teslashibe/go-engage/internal/log"
	"github.com/teslashibe/go-engage/pkg/capture/webcam"
	"github.com/teslashibe/go-engage/pkg/detection"
	"github.com/teslashibe/go-engage/pkg/detection/yunet"
	"github.com/teslashibe/go-engage/pkg/engagement"
	"github.com/teslashibe/go-engage/pkg/landmarks"
	"github.com/teslashibe/go-engage/pkg/monitor"
	"github.com/teslashibe/go-engage/pkg/web"
)

func main() {
	cfg, err := parseFlags()
	if err != nil {
		fmt.Fprintf(os.Stderr, "configuration error: %v\n", err)
		os.Exit(2)
	}
	log.Init(cfg.LogLevel)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, cfg); err != nil {
		log.Error("engagement monitor failed", "error", err)
		os.Exit(1)
	}
}

// parseFlags loads ENGAGE_* variables and lets flags override them.
func parseFlags() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	flag.StringVar(&cfg.Source, "source", cfg.Source, "Camera index or video path")
	flag.StringVar(&cfg.DetectorModel, "model", cfg.DetectorModel, "YuNet ONNX model path")
	flag.StringVar(&cfg.LandmarkURL, "landmarks", cfg.LandmarkURL, "Landmark service base URL")
	flag.StringVar(&cfg.WebPort, "port", cfg.WebPort, "Dashboard port (empty disables)")
	flag.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level: debug, info, warn, error")
	flag.DurationVar(&cfg.ShortWindow, "short-window", cfg.ShortWindow, "Blink status window")
	flag.DurationVar(&cfg.LongWindow, "long-window", cfg.LongWindow, "Engagement verdict window")
	flag.DurationVar(&cfg.HeadTurnThreshold, "head-turn", cfg.HeadTurnThreshold, "Head turn duration that fails engagement")
	flag.Float64Var(&cfg.EyeOpennessThreshold, "ear", cfg.EyeOpennessThreshold, "Eye openness below which a frame counts as a blink")
	flag.IntVar(&cfg.MinBlinks, "min-blinks", cfg.MinBlinks, "Blink frames required per verdict window")
	debug := flag.Bool("debug", false, "Shorthand for -log-level=debug")
	flag.Parse()

	if *debug {
		cfg.LogLevel = "debug"
	}
	return cfg, cfg.Engagement().Validate()
}

func run(ctx context.Context, cfg *config.Config) error {
	cam, err := webcam.Open(webcam.Config{Source: cfg.Source, Quality: cfg.JPEGQuality})
	if err != nil {
		return err
	}
	defer cam.Close()

	detCfg := detection.DefaultConfig()
	detCfg.ModelPath = cfg.DetectorModel
	detCfg.ConfidenceThresh = cfg.DetectorConfidence
	det, err := yunet.New(detCfg)
	if err != nil {
		return fmt.Errorf("face detector: %w", err)
	}
	defer det.Close()

	lm := landmarks.NewClient(
		landmarks.WithBaseURL(cfg.LandmarkURL),
		landmarks.WithTimeout(cfg.LandmarkTimeout),
	)

	session := uuid.NewString()
	engine, err := engagement.NewEngine(cfg.Engagement(), time.Now(), engagement.WithSession(session))
	if err != nil {
		return err
	}

	sinks := monitor.MultiSink{monitor.NewLogSink(log.L())}
	if cfg.DashboardEnabled() {
		dash := web.NewServer(cfg.WebPort, session, engine.Config())
		dash.StartAsync()
		defer dash.Shutdown()
		sinks = append(sinks, dash)
	}

	loop := monitor.NewLoop(cam, det, lm, engine, monitor.WithSink(sinks))
	err = loop.Run(ctx)
	if errors.Is(err, monitor.ErrSourceFailed) {
		log.Error("frame source stopped", "frames", loop.Frames())
	}
	return err
}
