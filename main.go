package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"

	"github.com/golangdaddy/roadrush/pkg/config"
	"github.com/golangdaddy/roadrush/pkg/game"
	"github.com/golangdaddy/roadrush/pkg/input"
	"github.com/golangdaddy/roadrush/pkg/logging"
	"github.com/golangdaddy/roadrush/pkg/loop"
	"github.com/golangdaddy/roadrush/pkg/render"
	"github.com/golangdaddy/roadrush/pkg/telemetry"
	"github.com/golangdaddy/roadrush/pkg/viewport"
	"github.com/golangdaddy/roadrush/pkg/world"
)

func main() {
	var (
		configDir string
		headless  bool
		frames    int
		seed      int64
	)
	flag.StringVar(&configDir, "config", ".", "directory containing roadrush.json")
	flag.BoolVar(&headless, "headless", false, "run the simulation without a window")
	flag.IntVar(&frames, "frames", 3600, "frames to run in headless mode")
	flag.Int64Var(&seed, "seed", 0, "random seed, overrides the config value")
	flag.Parse()

	cfg, err := config.Load(configDir)
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if seed != 0 {
		cfg.Seed = seed
	}

	opts := logging.DefaultOptions()
	opts.Level = cfg.LogLevel
	opts.File = cfg.LogFile
	logger, err := logging.New(opts)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer logging.Sync(logger)

	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(cfg.Seed))
	logger.Infow("Starting", "seed", cfg.Seed, "config", config.ConfigFileUsed())

	if headless {
		if err := runHeadless(cfg, rng, frames, logger); err != nil {
			logger.Fatalf("headless: %v", err)
		}
		return
	}

	if err := runWindowed(cfg, rng, logger); err != nil {
		logger.Fatalf("game: %v", err)
	}
}

func runWindowed(cfg *config.Config, rng *rand.Rand, logger *zap.SugaredLogger) error {
	wc := cfg.WorldConfig()
	if _, err := viewport.Fit(viewport.Size{Width: float64(cfg.Window.Width), Height: float64(cfg.Window.Height)}, wc.Width/wc.Height); err != nil {
		return fmt.Errorf("window size: %w", err)
	}

	var client *telemetry.Client
	if cfg.Telemetry.Enabled {
		client = telemetry.NewClient(telemetry.Options{
			BaseURL:   cfg.Telemetry.APIURL,
			Timeout:   cfg.Telemetry.Timeout,
			QueueSize: cfg.Telemetry.QueueSize,
		}, logger)
		defer client.Close()
	}

	var locator telemetry.Locator
	if loc := cfg.Telemetry.Location; loc.Enabled {
		locator = telemetry.StaticLocator{Fix: telemetry.Location{
			Latitude:  loc.Latitude,
			Longitude: loc.Longitude,
			Accuracy:  loc.Accuracy,
		}}
	}

	g := game.NewGame(game.Options{
		World:     wc,
		Rand:      rng,
		Log:       logger,
		Telemetry: client,
		Locator:   locator,
	})

	ebiten.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
	ebiten.SetWindowTitle(cfg.Window.Title)
	if cfg.Window.Resizable {
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	}
	if cfg.Window.TPS > 0 {
		ebiten.SetTPS(cfg.Window.TPS)
	}

	if err := ebiten.RunGame(g); err != nil {
		return fmt.Errorf("run game: %w", err)
	}
	return nil
}

// runHeadless drives the simulation with the autopilot and no display
func runHeadless(cfg *config.Config, rng *rand.Rand, frames int, logger *zap.SugaredLogger) error {
	driver := loop.New(world.New(cfg.WorldConfig(), rng), input.NewState(), logger)
	driver.SetPilot(loop.Autopilot())

	sched := loop.NewTickerScheduler(cfg.Window.TPS)
	defer sched.Stop()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := driver.Run(ctx, loop.Limit(sched, frames), render.Discard{})
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}

	w := driver.World()
	logger.Infow("Headless run finished",
		"frames", driver.Frames(),
		"restarts", driver.Restarts(),
		"phase", w.Phase,
		"score", render.Score(w.Score),
	)
	return nil
}
