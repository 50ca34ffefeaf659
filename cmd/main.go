// Package main is the entry point for the count-service application.
package main

import (
	"github.com/guttosm/count-service/config"
	"github.com/guttosm/count-service/internal/app"
	"github.com/rs/zerolog/log"
)

func main() {
	cfg := config.Load()

	application, err := app.InitializeApp(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to start")
	}
	defer application.Close()

	server := app.NewServer(application.Router, cfg.Server.Port, cfg.Server.ShutdownTimeout)
	if err := server.Run(); err != nil {
		log.Error().Err(err).Msg("Server error")
	}
}
