package main

import (
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/saiprannav/weatherdesk/internal/config"
	"github.com/saiprannav/weatherdesk/internal/geocode"
	"github.com/saiprannav/weatherdesk/internal/media"
	"github.com/saiprannav/weatherdesk/internal/openweather"
	"github.com/saiprannav/weatherdesk/internal/ratelimit"
	"github.com/saiprannav/weatherdesk/internal/storage"
	"github.com/saiprannav/weatherdesk/internal/ui"
	"github.com/saiprannav/weatherdesk/internal/weather"
)

func main() {
	exportDir := flag.String("export-dir", ".", "Directory export files are written to")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Error loading configuration: %v\n", err)
		os.Exit(1)
	}

	store, err := storage.Open(cfg.DBPath)
	if err != nil {
		fmt.Printf("Error opening database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	client := openweather.NewClient(cfg.OpenWeatherAPIKey, cfg.HTTPTimeout)
	resolver := geocode.NewResolver(client, ratelimit.New(cfg.GeocodeRPM))

	var mediaClient weather.MediaFetcher
	if cfg.YouTubeAPIKey != "" || cfg.MapsAPIKey != "" {
		mediaClient = media.NewClient(cfg.YouTubeAPIKey, cfg.MapsAPIKey, cfg.HTTPTimeout, cfg.YouTubeRPM, cfg.MapsRPM)
	}

	service := weather.NewService(client, resolver, mediaClient, store)

	model := ui.NewModel(service).WithExportDir(*exportDir)
	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Printf("Error running application: %v\n", err)
		os.Exit(1)
	}
}
