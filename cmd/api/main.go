package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"hearth/internal/app/bootstrap"
)

// API process entrypoint.
// Data flow:
// 1) Load .env overrides, then config from the environment.
// 2) Build app wiring (ports + adapters + use cases).
// 3) Start HTTP server.
func main() {
	// Missing .env is fine; production config comes from the environment.
	_ = godotenv.Load()

	app, err := bootstrap.BuildAPI()
	if err != nil {
		slog.Error("api bootstrap failed",
			"event", "bootstrap_api_failed",
			"module", "cmd/api",
			"layer", "platform",
			"error", err.Error(),
		)
		os.Exit(1)
	}
	defer func() { _ = app.Close() }()

	if err := app.Run(context.Background()); err != nil {
		slog.Error("api stopped with error",
			"event", "api_stopped",
			"module", "cmd/api",
			"layer", "platform",
			"error", err.Error(),
		)
		os.Exit(1)
	}
}
