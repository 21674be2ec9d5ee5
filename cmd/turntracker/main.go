// Package main is the entry point for turntracker.
package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/samdwyer/turntracker/internal/game"
	"github.com/samdwyer/turntracker/internal/telemetry"
)

func main() {
	// Load .env file for local development.
	// This makes HONEYCOMB_TURNTRACKER_API_KEY available.
	if err := godotenv.Load(); err != nil {
		// Not fatal - env vars might be set directly
		log.Printf("Note: .env file not loaded: %v", err)
	}

	setupOTelEnv()

	ctx := context.Background()

	shutdown, err := telemetry.Setup(ctx)
	if err != nil {
		log.Printf("Warning: telemetry setup failed: %v", err)
		log.Printf("Tracker will run without observability")
		// Continue without telemetry - the tracker still works
	} else {
		defer func() {
			if err := shutdown(ctx); err != nil {
				log.Printf("Error shutting down telemetry: %v", err)
			}
		}()
	}

	cfg, err := game.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	g, err := game.New(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize tracker: %v", err)
	}

	if err := g.Run(ctx); err != nil {
		log.Fatalf("Tracker error: %v", err)
	}
}

// setupOTelEnv configures OTEL environment variables from our custom env vars.
func setupOTelEnv() {
	os.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "https://api.honeycomb.io")

	// Construct headers from our API key - the .env file may have an
	// unexpanded variable reference that doesn't work.
	apiKey := os.Getenv("HONEYCOMB_TURNTRACKER_API_KEY")
	dataset := os.Getenv("HONEYCOMB_TURNTRACKER_DATASET")
	if dataset == "" {
		dataset = "turntracker" // default dataset name
	}
	if apiKey != "" {
		os.Setenv("OTEL_EXPORTER_OTLP_HEADERS",
			fmt.Sprintf("x-honeycomb-team=%s,x-honeycomb-dataset=%s", apiKey, dataset))
	}
}
