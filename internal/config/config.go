package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all runtime settings for both the API server and the TUI.
type Config struct {
	OpenWeatherAPIKey string
	YouTubeAPIKey     string
	MapsAPIKey        string

	// DBPath is the SQLite database file location.
	DBPath string

	// HTTPTimeout bounds every outbound provider call.
	HTTPTimeout time.Duration

	// Requests-per-minute ceilings for the external services.
	GeocodeRPM int
	YouTubeRPM int
	MapsRPM    int

	// RefreshInterval controls the background refresh of recent locations.
	RefreshInterval time.Duration

	// HistoryMaxAge is how long location history entries are retained.
	HistoryMaxAge time.Duration

	Port string
}

// Load reads configuration from the environment with sensible defaults.
// A .env file is honored when present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		OpenWeatherAPIKey: os.Getenv("OPENWEATHER_API_KEY"),
		YouTubeAPIKey:     os.Getenv("YOUTUBE_API_KEY"),
		MapsAPIKey:        os.Getenv("MAPS_API_KEY"),
		DBPath:            getenvDefault("WEATHERDESK_DB", filepath.Join("data", "weatherdesk.db")),
		GeocodeRPM:        getenvInt("GEOCODE_RPM", 60),
		YouTubeRPM:        getenvInt("YOUTUBE_RPM", 30),
		MapsRPM:           getenvInt("MAPS_RPM", 60),
		Port:              getenvDefault("PORT", "8080"),
	}

	if cfg.OpenWeatherAPIKey == "" {
		return nil, fmt.Errorf("OPENWEATHER_API_KEY is not set")
	}

	timeout, err := getenvDuration("HTTP_TIMEOUT", 10*time.Second)
	if err != nil {
		return nil, err
	}
	cfg.HTTPTimeout = timeout

	refresh, err := getenvDuration("REFRESH_INTERVAL", 30*time.Minute)
	if err != nil {
		return nil, err
	}
	cfg.RefreshInterval = refresh

	maxAge, err := getenvDuration("HISTORY_MAX_AGE", 30*24*time.Hour)
	if err != nil {
		return nil, err
	}
	cfg.HistoryMaxAge = maxAge

	return cfg, nil
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getenvDuration(key string, def time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}
