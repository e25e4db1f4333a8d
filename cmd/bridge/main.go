package main

import (
	"log"
	"log/slog"
	"os"

	"SquareBridge/config"
	"SquareBridge/internal/bridge"
)

func main() {
	cfg, err := config.New()
	if err != nil {
		log.Fatalf("Config error: %s", err)
	}

	if err := bridge.Run(cfg); err != nil {
		slog.Error("Bridge failed", slog.Any("error", err))
		os.Exit(1)
	}
}
