package main

import (
	"log/slog"
	"os"

	"github.com/soocke/focus-tracker-go/app"
	"github.com/soocke/focus-tracker-go/config"
)

const configPath = "config.json"

func main() {
	// Config file beside the binary; absent file means defaults
	cfg, err := config.Load(configPath)

	// Set up logger
	level := slog.LevelInfo
	if cfg.Debug {
		level = slog.LevelDebug
	}
	logger := NewLogger(level)
	if err != nil {
		logger.Warn("config load failed, using defaults", "path", configPath, "error", err)
	}

	application := app.NewApp("Focus Tracker", 640, 860, cfg, configPath, logger)
	if err := application.Start(); err != nil {
		logger.Error("startup failed", "error", err)
		os.Exit(1)
	}
}
