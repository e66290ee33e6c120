package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/saiprannav/weatherdesk/internal/api"
	"github.com/saiprannav/weatherdesk/internal/config"
	"github.com/saiprannav/weatherdesk/internal/geocode"
	"github.com/saiprannav/weatherdesk/internal/media"
	"github.com/saiprannav/weatherdesk/internal/openweather"
	"github.com/saiprannav/weatherdesk/internal/ratelimit"
	"github.com/saiprannav/weatherdesk/internal/scheduler"
	"github.com/saiprannav/weatherdesk/internal/storage"
	"github.com/saiprannav/weatherdesk/internal/weather"
)

func main() {
	log := zerolog.New(os.Stderr).With().Timestamp().Logger()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("loading configuration")
	}

	store, err := storage.Open(cfg.DBPath)
	if err != nil {
		log.Fatal().Err(err).Msg("opening database")
	}
	defer store.Close()

	client := openweather.NewClient(cfg.OpenWeatherAPIKey, cfg.HTTPTimeout)
	resolver := geocode.NewResolver(client, ratelimit.New(cfg.GeocodeRPM))

	var mediaClient weather.MediaFetcher
	if cfg.YouTubeAPIKey != "" || cfg.MapsAPIKey != "" {
		mediaClient = media.NewClient(cfg.YouTubeAPIKey, cfg.MapsAPIKey, cfg.HTTPTimeout, cfg.YouTubeRPM, cfg.MapsRPM)
	}

	service := weather.NewService(client, resolver, mediaClient, store)

	sched := scheduler.New(service, store, cfg.RefreshInterval, cfg.HistoryMaxAge, log)
	if err := sched.Start(); err != nil {
		log.Fatal().Err(err).Msg("starting scheduler")
	}
	defer sched.Stop()

	app := api.New(service, log, api.Options{RequestsPerMinute: 120})

	go func() {
		log.Info().Str("port", cfg.Port).Msg("server listening")
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Error().Err(err).Msg("server stopped")
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("shutdown error")
	}
}
