// Package weather orchestrates location resolution, provider fetches,
// aggregation, and persistence behind one service.
package weather

import (
	"context"
	"fmt"
	"time"

	"github.com/saiprannav/weatherdesk/internal/apperr"
	"github.com/saiprannav/weatherdesk/internal/daterange"
	"github.com/saiprannav/weatherdesk/internal/export"
	"github.com/saiprannav/weatherdesk/internal/forecast"
	"github.com/saiprannav/weatherdesk/internal/geocode"
	"github.com/saiprannav/weatherdesk/internal/location"
	"github.com/saiprannav/weatherdesk/internal/models"
	"github.com/saiprannav/weatherdesk/internal/storage"
)

// samplesPerDay is the provider's 3-hour forecast cadence.
const samplesPerDay = 8

// MaxForecastDays caps a forecast request.
const MaxForecastDays = 5

// Provider fetches weather data for resolved coordinates.
type Provider interface {
	CurrentWeather(ctx context.Context, lat, lon float64) (*models.CurrentWeather, error)
	Forecast(ctx context.Context, lat, lon float64, cnt int) (string, []models.WeatherSample, error)
}

// Resolver turns a raw location string into coordinates.
type Resolver interface {
	Search(ctx context.Context, input string) (*geocode.ResolvedLocation, *models.LocationSearch, error)
}

// MediaFetcher gathers videos and map links for a location.
type MediaFetcher interface {
	LocationMedia(ctx context.Context, locationName string, lat, lon float64) (*models.LocationMedia, error)
}

// Service is the application core shared by the TUI and the REST server.
type Service struct {
	provider  Provider
	resolver  Resolver
	media     MediaFetcher
	store     *storage.Store
	validator *daterange.Validator
}

// NewService wires the orchestrator. media may be nil when no media keys
// are configured.
func NewService(provider Provider, resolver Resolver, media MediaFetcher, store *storage.Store) *Service {
	return &Service{
		provider:  provider,
		resolver:  resolver,
		media:     media,
		store:     store,
		validator: daterange.New(),
	}
}

// Current resolves a location and fetches its current conditions. The
// fetched data is persisted as a weather record plus a history entry; if
// persistence fails the data is still returned alongside the error so a
// successful fetch is never lost.
func (s *Service) Current(ctx context.Context, locationInput string) (*models.CurrentWeather, error) {
	resolved, entry, err := s.resolver.Search(ctx, locationInput)
	if err != nil {
		return nil, err
	}

	current, err := s.provider.CurrentWeather(ctx, resolved.Latitude, resolved.Longitude)
	if err != nil {
		return nil, err
	}
	if current.LocationName == "" {
		current.LocationName = resolved.Name
	}

	if err := s.persistCurrent(current, entry); err != nil {
		return current, err
	}

	return current, nil
}

func (s *Service) persistCurrent(current *models.CurrentWeather, entry *models.LocationSearch) error {
	rec := recordFromCurrent(current)
	if err := s.store.SaveWeatherRecord(&rec); err != nil {
		return fmt.Errorf("persisting weather record: %w", err)
	}
	entry.Timestamp = current.Timestamp
	if err := s.store.AddLocationHistory(entry); err != nil {
		return fmt.Errorf("persisting location history: %w", err)
	}
	return nil
}

// ForecastDays resolves a location and returns up to days daily summaries.
// Each summary is persisted as its own record.
func (s *Service) ForecastDays(ctx context.Context, locationInput string, days int) (string, []models.DailyForecast, error) {
	if days < 1 || days > MaxForecastDays {
		return "", nil, apperr.Validationf("days must be between 1 and %d", MaxForecastDays)
	}

	resolved, entry, err := s.resolver.Search(ctx, locationInput)
	if err != nil {
		return "", nil, err
	}

	cityName, samples, err := s.provider.Forecast(ctx, resolved.Latitude, resolved.Longitude, days*samplesPerDay)
	if err != nil {
		return "", nil, err
	}
	name := resolved.Name
	if cityName != "" {
		name = cityName
	}

	daily := forecast.Aggregate(samples, days)

	if err := s.persistForecast(name, resolved, entry, daily); err != nil {
		return name, daily, err
	}

	return name, daily, nil
}

func (s *Service) persistForecast(name string, resolved *geocode.ResolvedLocation, entry *models.LocationSearch, daily []models.DailyForecast) error {
	records := make([]models.WeatherRecord, 0, len(daily))
	for _, day := range daily {
		records = append(records, models.WeatherRecord{
			LocationName: name,
			Latitude:     resolved.Latitude,
			Longitude:    resolved.Longitude,
			Timestamp:    day.Date,
			Temperature:  day.TempAvg,
			Condition:    day.Condition,
		})
	}
	if err := s.store.SaveForecastBatch(records, entry); err != nil {
		return fmt.Errorf("persisting forecast: %w", err)
	}
	return nil
}

// CreateQuery validates the location and date range, then fetches and
// stores current conditions tagged with the range. Validation happens
// before any network call.
func (s *Service) CreateQuery(ctx context.Context, locationInput, startStr, endStr string) (*models.WeatherRecord, error) {
	if _, err := location.Classify(locationInput); err != nil {
		return nil, err
	}
	rng, err := s.validator.Validate(startStr, endStr)
	if err != nil {
		return nil, err
	}

	resolved, entry, err := s.resolver.Search(ctx, locationInput)
	if err != nil {
		return nil, err
	}

	current, err := s.provider.CurrentWeather(ctx, resolved.Latitude, resolved.Longitude)
	if err != nil {
		return nil, err
	}
	if current.LocationName == "" {
		current.LocationName = resolved.Name
	}

	rec := recordFromCurrent(current)
	rec.DateRangeStart = &rng.Start
	rec.DateRangeEnd = &rng.End
	if err := s.store.SaveWeatherRecord(&rec); err != nil {
		return nil, fmt.Errorf("persisting weather query: %w", err)
	}
	entry.Timestamp = current.Timestamp
	if err := s.store.AddLocationHistory(entry); err != nil {
		return &rec, fmt.Errorf("persisting location history: %w", err)
	}

	return &rec, nil
}

// History returns stored records for a location, newest first.
func (s *Service) History(locationName string, limit int) ([]models.WeatherRecord, error) {
	if _, err := location.Classify(locationName); err != nil {
		return nil, err
	}
	return s.store.WeatherHistory(locationName, limit)
}

// List returns all stored records, newest first.
func (s *Service) List(limit int) ([]models.WeatherRecord, error) {
	return s.store.ListWeatherRecords(limit)
}

// Update edits a stored record's temperature or condition.
func (s *Service) Update(id int64, upd models.RecordUpdate) (*models.WeatherRecord, error) {
	if upd.Temperature == nil && upd.Condition == nil {
		return nil, apperr.Validation("nothing to update")
	}
	if err := s.store.UpdateWeatherRecord(id, upd); err != nil {
		if err == storage.ErrNotFound {
			return nil, apperr.NotFound(fmt.Sprintf("weather record %d not found", id))
		}
		return nil, err
	}
	return s.store.GetWeatherRecord(id)
}

// Delete removes a stored record.
func (s *Service) Delete(id int64) error {
	if err := s.store.DeleteWeatherRecord(id); err != nil {
		if err == storage.ErrNotFound {
			return apperr.NotFound(fmt.Sprintf("weather record %d not found", id))
		}
		return err
	}
	return nil
}

// RecentLocations returns the deduplicated search history.
func (s *Service) RecentLocations(limit int) ([]models.LocationSearch, error) {
	return s.store.RecentLocations(limit)
}

// Media resolves a location and fetches its videos and map links.
func (s *Service) Media(ctx context.Context, locationInput string) (*models.LocationMedia, error) {
	if s.media == nil {
		return nil, apperr.NotFound("media is not configured")
	}
	resolved, _, err := s.resolver.Search(ctx, locationInput)
	if err != nil {
		return nil, err
	}
	return s.media.LocationMedia(ctx, resolved.Name, resolved.Latitude, resolved.Longitude)
}

// Snapshot assembles an export payload: current conditions plus a full
// forecast for one location.
func (s *Service) Snapshot(ctx context.Context, locationInput string) (export.Data, error) {
	current, err := s.Current(ctx, locationInput)
	if err != nil && current == nil {
		return export.Data{}, err
	}

	_, daily, err := s.ForecastDays(ctx, locationInput, MaxForecastDays)
	if err != nil && daily == nil {
		return export.Data{}, err
	}

	return export.Data{
		Location:  current.LocationName,
		Current:   current,
		Forecast:  daily,
		Generated: time.Now().UTC(),
	}, nil
}

func recordFromCurrent(current *models.CurrentWeather) models.WeatherRecord {
	feels := current.FeelsLike
	humidity := current.Humidity
	wind := current.WindSpeed
	return models.WeatherRecord{
		LocationName: current.LocationName,
		Latitude:     current.Latitude,
		Longitude:    current.Longitude,
		Timestamp:    current.Timestamp,
		Temperature:  current.Temperature,
		FeelsLike:    &feels,
		Humidity:     &humidity,
		WindSpeed:    &wind,
		Condition:    current.Condition,
	}
}
