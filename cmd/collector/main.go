package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/golangdaddy/roadrush/pkg/collector"
	"github.com/golangdaddy/roadrush/pkg/config"
	"github.com/golangdaddy/roadrush/pkg/logging"
)

// Telemetry collector: receives session and location reports from game clients
func main() {
	var configDir, addr string
	flag.StringVar(&configDir, "config", ".", "directory containing roadrush.json")
	flag.StringVar(&addr, "addr", "", "listen address, overrides collector.addr")
	flag.Parse()

	cfg, err := config.Load(configDir)
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if addr != "" {
		cfg.Collector.Addr = addr
	}

	opts := logging.DefaultOptions()
	opts.Level = cfg.LogLevel
	opts.File = cfg.LogFile
	logger, err := logging.New(opts)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer logging.Sync(logger)

	store, err := collector.Open(cfg.Collector.Storage)
	if err != nil {
		logger.Fatalf("storage: %v", err)
	}
	defer store.Close()
	logger.Infow("Storage ready", "type", cfg.Collector.Storage.Type)

	srvOpts := collector.Options{
		CORSOrigin: cfg.Collector.CORSOrigin,
		ListLimit:  cfg.Collector.ListLimit,
	}
	if path := cfg.Collector.GeoIPPath; path != "" {
		geo, err := collector.OpenGeoIP(path)
		if err != nil {
			logger.Fatalf("geoip: %v", err)
		}
		defer geo.Close()
		srvOpts.Geo = geo
		logger.Infow("GeoIP lookups enabled", "database", path)
	}

	srv := collector.NewServer(store, srvOpts, logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := srv.ListenAndServe(ctx, cfg.Collector.Addr, cfg.Collector.ShutdownTimeout); err != nil {
		logger.Errorf("collector: %v", err)
		os.Exit(1)
	}
}
