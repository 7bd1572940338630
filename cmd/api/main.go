package main

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/ANIKETSHETTY47/smart-aquaculture-monitoring-system/internal/app"
	"github.com/ANIKETSHETTY47/smart-aquaculture-monitoring-system/internal/config"
	httpHandlers "github.com/ANIKETSHETTY47/smart-aquaculture-monitoring-system/internal/http"
)

func main() {
	if err := config.Load(); err != nil {
		log.Fatal().Err(err).Msg("config load failed")
	}
	app.SetupLogging()

	svcs, cleanup, err := app.Build(context.Background())
	if err != nil {
		log.Fatal().Err(err).Msg("startup failed")
	}
	defer cleanup()

	// Calls are served by the portable kernels until this finishes.
	svcs.Accel.Start()

	server := fiber.New()
	httpHandlers.Register(server, svcs)

	addr := config.APIAddr()
	if addr == "" {
		addr = ":8080"
	}
	log.Info().Str("addr", addr).Msg("api listening")
	if err := server.Listen(addr); err != nil {
		log.Error().Err(err).Msg("server exit")
	}
}
