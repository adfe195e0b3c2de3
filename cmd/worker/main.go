package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/Bozotek/pickaguide-api/internal/worker"
)

func main() {
	godotenv.Load(".env.dev")

	logger := zerolog.New(os.Stdout).With().Timestamp().Str("service", "pickaguide-worker").Logger()

	natsURL := os.Getenv("NATS_URL")
	if natsURL == "" {
		natsURL = "nats://localhost:4222"
	}

	if err := worker.Start(natsURL, &logger); err != nil {
		logger.Fatal().Err(err).Msg("failed to start worker")
	}

	logger.Info().Msg("notification worker started, waiting for events")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("shutting down notification worker")
}
