package main

import (
	"context"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/citystride/wayfarer/config"
	"github.com/citystride/wayfarer/pkg/otel"
	"github.com/citystride/wayfarer/server"
)

var version = "dev"

func main() {
	path := flag.String("config", "config.yaml", "configuration file")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := otel.Setup(ctx, "wayfarer", version); err != nil {
		slog.Error("unable to initialize telemetry", "error", err)
		os.Exit(1)
	}

	cfg, err := config.Parse(*path)

	if err != nil {
		slog.Error("unable to parse configuration", "error", err)
		os.Exit(1)
	}

	s, err := server.New(cfg)

	if err != nil {
		slog.Error("unable to create server", "error", err)
		os.Exit(1)
	}

	slog.Info("starting server", "address", cfg.Address)

	if err := s.ListenAndServe(ctx); err != nil && err != http.ErrServerClosed {
		slog.Error("server stopped", "error", err)
		os.Exit(1)
	}
}
