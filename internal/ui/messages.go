package ui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/saiprannav/weatherdesk/internal/models"
	"github.com/saiprannav/weatherdesk/internal/weather"
)

// Message types for async operations

// Fetch messages carry the sequence number of the search that spawned
// them so results from an abandoned search can be discarded.

// currentFetchedMsg is sent when current conditions have been fetched
type currentFetchedMsg struct {
	seq     int
	current *models.CurrentWeather
	err     error
}

// forecastFetchedMsg is sent when the daily forecast has been fetched
type forecastFetchedMsg struct {
	seq      int
	location string
	daily    []models.DailyForecast
	err      error
}

// mediaFetchedMsg is sent when location media has been fetched
type mediaFetchedMsg struct {
	seq   int
	media *models.LocationMedia
	err   error
}

// historyLoadedMsg is sent when recent searches have been loaded
type historyLoadedMsg struct {
	entries []models.LocationSearch
	err     error
}

// recordLoadedMsg is sent with the record an edit will target
type recordLoadedMsg struct {
	record *models.WeatherRecord
	err    error
}

// recordUpdatedMsg is sent after an edit has been saved
type recordUpdatedMsg struct {
	record *models.WeatherRecord
	err    error
}

// exportDoneMsg is sent after writing an export file
type exportDoneMsg struct {
	path string
	err  error
}

// errMsg is a message type for errors
type errMsg struct {
	err error
}

// fetchCurrent fetches current conditions in the background
func fetchCurrent(service *weather.Service, query string, seq int) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		current, err := service.Current(ctx, query)
		return currentFetchedMsg{seq: seq, current: current, err: err}
	}
}

// fetchForecast fetches the daily forecast in the background
func fetchForecast(service *weather.Service, query string, seq int) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		name, daily, err := service.ForecastDays(ctx, query, weather.MaxForecastDays)
		return forecastFetchedMsg{seq: seq, location: name, daily: daily, err: err}
	}
}

// fetchMedia fetches videos and map links in the background
func fetchMedia(service *weather.Service, query string, seq int) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		media, err := service.Media(ctx, query)
		return mediaFetchedMsg{seq: seq, media: media, err: err}
	}
}

// loadHistory loads recent searches in the background
func loadHistory(service *weather.Service) tea.Cmd {
	return func() tea.Msg {
		entries, err := service.RecentLocations(20)
		return historyLoadedMsg{entries: entries, err: err}
	}
}

// loadLatestRecord loads the newest stored record for a location
func loadLatestRecord(service *weather.Service, locationName string) tea.Cmd {
	return func() tea.Msg {
		records, err := service.History(locationName, 1)
		if err != nil {
			return recordLoadedMsg{err: err}
		}
		if len(records) == 0 {
			return recordLoadedMsg{}
		}
		return recordLoadedMsg{record: &records[0]}
	}
}

// saveRecordEdit applies an edit in the background
func saveRecordEdit(service *weather.Service, id int64, upd models.RecordUpdate) tea.Cmd {
	return func() tea.Msg {
		record, err := service.Update(id, upd)
		return recordUpdatedMsg{record: record, err: err}
	}
}
