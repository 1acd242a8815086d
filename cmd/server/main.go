package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/adrianliechti/narrator/config"
	"github.com/adrianliechti/narrator/pkg/otel"
	"github.com/adrianliechti/narrator/server"
)

var version = "dev"

func main() {
	configFlag := flag.String("config", "narrator.yaml", "config file")
	addressFlag := flag.String("address", "", "listen address")

	flag.Parse()

	level := slog.LevelInfo

	if otel.EnableDebug {
		level = slog.LevelDebug
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if otel.EnableTelemetry {
		shutdown, err := otel.Setup(ctx, "narrator", version)

		if err != nil {
			panic(err)
		}

		defer shutdown(context.Background())
	}

	cfg, err := loadConfig(*configFlag)

	if err != nil {
		panic(err)
	}

	if *addressFlag != "" {
		cfg.Address = *addressFlag
	}

	s, err := server.New(cfg)

	if err != nil {
		panic(err)
	}

	if err := s.ListenAndServe(ctx); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}

func loadConfig(path string) (*config.Config, error) {
	cfg, err := config.Parse(path)

	if errors.Is(err, os.ErrNotExist) {
		slog.Warn("config file not found, using defaults", "path", path)
		return config.Default()
	}

	return cfg, err
}
