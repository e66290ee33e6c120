package ui

import (
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/saiprannav/weatherdesk/internal/models"
)

func testModel() Model {
	return NewModel(nil)
}

func sizedModel() Model {
	m := testModel()
	m.width = 100
	m.height = 40
	return m
}

func TestNewModel(t *testing.T) {
	m := testModel()

	if m.state != StateSearch {
		t.Errorf("NewModel() state = %v, want StateSearch", m.state)
	}
	if !m.searchInput.Focused() {
		t.Error("Expected search input to be focused initially")
	}
}

func TestModel_Update_WindowSize(t *testing.T) {
	m := testModel()

	updatedModel, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	m = updatedModel.(Model)

	if m.width != 120 || m.height != 40 {
		t.Errorf("After WindowSizeMsg, size = %dx%d, want 120x40", m.width, m.height)
	}
}

func TestModel_CtrlC_Quits(t *testing.T) {
	m := testModel()

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	if cmd == nil {
		t.Error("Expected Ctrl+C to return quit command")
	}
}

func TestEnterKeyWithEmptyInput(t *testing.T) {
	m := testModel()

	updatedModel, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = updatedModel.(Model)

	if m.state != StateSearch {
		t.Errorf("Expected to remain in StateSearch, got %v", m.state)
	}
	if cmd != nil {
		t.Error("Expected no command for empty search")
	}
}

func TestSearchFansOutFetches(t *testing.T) {
	m := testModel()
	m.searchInput.SetValue("10001")

	updatedModel, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = updatedModel.(Model)

	if m.state != StateLoading {
		t.Errorf("After search, state = %v, want StateLoading", m.state)
	}
	if m.pending != fetchCount {
		t.Errorf("pending = %d, want %d", m.pending, fetchCount)
	}
	if cmd == nil {
		t.Error("Expected batched fetch commands")
	}
}

func TestLoadingCountsDownToDisplay(t *testing.T) {
	m := testModel()
	m.state = StateLoading
	m.pending = fetchCount

	current := &models.CurrentWeather{LocationName: "New York", Temperature: 20.5}

	updatedModel, _ := m.Update(currentFetchedMsg{current: current})
	m = updatedModel.(Model)
	if m.state != StateLoading {
		t.Fatalf("after 1 of %d fetches, state = %v, want StateLoading", fetchCount, m.state)
	}

	updatedModel, _ = m.Update(forecastFetchedMsg{location: "New York", daily: []models.DailyForecast{{}}})
	m = updatedModel.(Model)
	if m.state != StateLoading {
		t.Fatalf("after 2 of %d fetches, state = %v, want StateLoading", fetchCount, m.state)
	}

	updatedModel, _ = m.Update(mediaFetchedMsg{media: &models.LocationMedia{}})
	m = updatedModel.(Model)
	if m.state != StateDisplay {
		t.Errorf("after all fetches, state = %v, want StateDisplay", m.state)
	}
	if m.pending != 0 {
		t.Errorf("pending = %d, want 0", m.pending)
	}
}

func TestLateFetchesFromAbandonedSearchIgnored(t *testing.T) {
	m := testModel()

	// First search fails fast on the current-conditions fetch while its
	// forecast and media fetches are still in flight.
	m.searchInput.SetValue("Paris, France")
	updatedModel, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = updatedModel.(Model)
	staleSeq := m.searchSeq

	updatedModel, _ = m.Update(currentFetchedMsg{seq: staleSeq, err: errors.New("location not found")})
	m = updatedModel.(Model)
	if m.state != StateError {
		t.Fatalf("state = %v, want StateError", m.state)
	}

	// Leave the error state and run a second search.
	updatedModel, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'a'}})
	m = updatedModel.(Model)
	m.searchInput.SetValue("10001")
	updatedModel, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = updatedModel.(Model)
	if m.searchSeq == staleSeq {
		t.Fatal("second search reused the first search's sequence")
	}

	// The abandoned search's results arrive late. They must not count
	// toward the new search or leak data into the model.
	updatedModel, _ = m.Update(forecastFetchedMsg{
		seq:      staleSeq,
		location: "Paris",
		daily:    []models.DailyForecast{{Condition: "light rain"}},
	})
	m = updatedModel.(Model)
	updatedModel, _ = m.Update(mediaFetchedMsg{seq: staleSeq, err: errors.New("quota exceeded")})
	m = updatedModel.(Model)

	if m.state != StateLoading {
		t.Fatalf("state = %v after stale results, want StateLoading", m.state)
	}
	if m.pending != fetchCount {
		t.Errorf("pending = %d after stale results, want %d", m.pending, fetchCount)
	}
	if m.daily != nil {
		t.Errorf("stale forecast leaked into the model: %+v", m.daily)
	}
	if m.mediaErr != nil {
		t.Error("stale media error leaked into the model")
	}

	// The active search completes normally.
	updatedModel, _ = m.Update(currentFetchedMsg{seq: m.searchSeq, current: &models.CurrentWeather{LocationName: "New York"}})
	m = updatedModel.(Model)
	updatedModel, _ = m.Update(forecastFetchedMsg{seq: m.searchSeq, location: "New York", daily: []models.DailyForecast{{Condition: "clear sky"}}})
	m = updatedModel.(Model)
	updatedModel, _ = m.Update(mediaFetchedMsg{seq: m.searchSeq, media: &models.LocationMedia{}})
	m = updatedModel.(Model)

	if m.state != StateDisplay {
		t.Errorf("state = %v, want StateDisplay", m.state)
	}
	if m.location != "New York" || len(m.daily) != 1 || m.daily[0].Condition != "clear sky" {
		t.Errorf("displayed data is not from the active search: location=%q daily=%+v", m.location, m.daily)
	}
}

func TestCurrentFetchErrorShowsErrorState(t *testing.T) {
	m := testModel()
	m.state = StateLoading
	m.pending = fetchCount

	updatedModel, _ := m.Update(currentFetchedMsg{err: errors.New("location not found")})
	m = updatedModel.(Model)

	if m.state != StateError {
		t.Errorf("state = %v, want StateError", m.state)
	}
	if m.err == nil {
		t.Error("Expected error to be set")
	}
}

func TestForecastAndMediaErrorsTolerated(t *testing.T) {
	m := testModel()
	m.state = StateLoading
	m.pending = fetchCount

	updatedModel, _ := m.Update(currentFetchedMsg{current: &models.CurrentWeather{LocationName: "New York"}})
	m = updatedModel.(Model)
	updatedModel, _ = m.Update(forecastFetchedMsg{err: errors.New("upstream unavailable")})
	m = updatedModel.(Model)
	updatedModel, _ = m.Update(mediaFetchedMsg{err: errors.New("media is not configured")})
	m = updatedModel.(Model)

	if m.state != StateDisplay {
		t.Errorf("state = %v, want StateDisplay despite partial failures", m.state)
	}
	if m.daily != nil || m.media != nil {
		t.Error("Expected no forecast or media data after failed fetches")
	}
}

func TestErrorStateReturnsToSearch(t *testing.T) {
	m := testModel()
	m.state = StateError
	m.err = errors.New("boom")

	updatedModel, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'a'}})
	m = updatedModel.(Model)

	if m.state != StateSearch {
		t.Errorf("state = %v, want StateSearch", m.state)
	}
	if m.err != nil {
		t.Error("Expected error to be cleared")
	}
}

func TestErrorClearingOnInput(t *testing.T) {
	m := testModel()
	m.err = errors.New("previous failure")

	updatedModel, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'a'}})
	m = updatedModel.(Model)

	if m.err != nil {
		t.Error("Expected error to be cleared when user types")
	}
}

func TestHistoryLoadedShowsList(t *testing.T) {
	m := sizedModel()

	entries := []models.LocationSearch{
		{Query: "10001", ResolvedName: "New York", Latitude: 40.75, Longitude: -73.99, Timestamp: time.Now()},
		{Query: "Boston, MA", ResolvedName: "Boston", Latitude: 42.36, Longitude: -71.06, Timestamp: time.Now()},
	}
	updatedModel, _ := m.Update(historyLoadedMsg{entries: entries})
	m = updatedModel.(Model)

	if m.state != StateHistory {
		t.Fatalf("state = %v, want StateHistory", m.state)
	}
	if len(m.historyList.Items()) != 2 {
		t.Errorf("list items = %d, want 2", len(m.historyList.Items()))
	}
}

func TestHistoryEnterStartsSearch(t *testing.T) {
	m := sizedModel()
	entries := []models.LocationSearch{
		{Query: "10001", ResolvedName: "New York"},
	}
	updatedModel, _ := m.Update(historyLoadedMsg{entries: entries})
	m = updatedModel.(Model)

	updatedModel, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = updatedModel.(Model)

	if m.state != StateLoading {
		t.Errorf("state = %v, want StateLoading", m.state)
	}
	if m.searchQuery != "10001" {
		t.Errorf("searchQuery = %q, want 10001", m.searchQuery)
	}
	if cmd == nil {
		t.Error("Expected fetch commands from history selection")
	}
}

func TestRecordLoadedEntersEdit(t *testing.T) {
	m := sizedModel()
	m.state = StateDisplay

	rec := &models.WeatherRecord{
		ID:           7,
		LocationName: "New York",
		Temperature:  20.5,
		Condition:    "clear sky",
		Timestamp:    time.Now(),
	}
	updatedModel, _ := m.Update(recordLoadedMsg{record: rec})
	m = updatedModel.(Model)

	if m.state != StateEdit {
		t.Fatalf("state = %v, want StateEdit", m.state)
	}
	if m.tempInput.Value() != "20.5" {
		t.Errorf("temp input = %q, want 20.5", m.tempInput.Value())
	}
	if m.condInput.Value() != "clear sky" {
		t.Errorf("condition input = %q, want clear sky", m.condInput.Value())
	}
	if !m.tempInput.Focused() {
		t.Error("Expected temperature input focused first")
	}
}

func TestEditTabSwitchesFocus(t *testing.T) {
	m := sizedModel()
	updatedModel, _ := m.Update(recordLoadedMsg{record: &models.WeatherRecord{ID: 1, Temperature: 10}})
	m = updatedModel.(Model)

	updatedModel, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = updatedModel.(Model)

	if m.focused != editCondition {
		t.Errorf("focused = %v, want editCondition", m.focused)
	}
	if !m.condInput.Focused() || m.tempInput.Focused() {
		t.Error("Expected condition input focused after tab")
	}
}

func TestBuildUpdateDetectsChanges(t *testing.T) {
	m := sizedModel()
	updatedModel, _ := m.Update(recordLoadedMsg{record: &models.WeatherRecord{ID: 1, Temperature: 20.5, Condition: "clear sky"}})
	m = updatedModel.(Model)

	// Nothing changed yet.
	if _, err := m.buildUpdate(); err == nil {
		t.Error("Expected error when nothing changed")
	}

	m.tempInput.SetValue("25.0")
	upd, err := m.buildUpdate()
	if err != nil {
		t.Fatalf("buildUpdate: %v", err)
	}
	if upd.Temperature == nil || *upd.Temperature != 25.0 {
		t.Errorf("Temperature = %v, want 25.0", upd.Temperature)
	}
	if upd.Condition != nil {
		t.Error("Condition should be unchanged")
	}

	m.tempInput.SetValue("not a number")
	if _, err := m.buildUpdate(); err == nil {
		t.Error("Expected error for non-numeric temperature")
	}
}

func TestRecordUpdatedRefreshesDisplay(t *testing.T) {
	m := sizedModel()
	m.state = StateEdit
	m.current = &models.CurrentWeather{LocationName: "New York", Temperature: 20.5, Condition: "clear sky"}

	updatedModel, _ := m.Update(recordUpdatedMsg{record: &models.WeatherRecord{ID: 1, Temperature: 25, Condition: "light rain"}})
	m = updatedModel.(Model)

	if m.state != StateDisplay {
		t.Errorf("state = %v, want StateDisplay", m.state)
	}
	if m.current.Temperature != 25 || m.current.Condition != "light rain" {
		t.Errorf("current not refreshed: %+v", m.current)
	}
}

func TestExportDoneSetsStatus(t *testing.T) {
	m := sizedModel()
	m.state = StateDisplay

	updatedModel, _ := m.Update(exportDoneMsg{path: "weather-abc.json"})
	m = updatedModel.(Model)
	if m.statusMsg == "" {
		t.Error("Expected status message after export")
	}

	updatedModel, _ = m.Update(exportDoneMsg{err: errors.New("disk full")})
	m = updatedModel.(Model)
	if m.statusMsg == "" {
		t.Error("Expected status message after failed export")
	}
}

func TestModel_View_States(t *testing.T) {
	tests := []struct {
		name  string
		state AppState
	}{
		{"search", StateSearch},
		{"loading", StateLoading},
		{"display", StateDisplay},
		{"edit", StateEdit},
		{"error", StateError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := sizedModel()
			m.state = tt.state

			if tt.state == StateDisplay {
				m.current = &models.CurrentWeather{
					LocationName: "New York",
					Temperature:  20.5,
					Condition:    "clear sky",
				}
			}

			view := m.View()
			if view == "" {
				t.Errorf("View() returned empty string for state %v", tt.state)
			}
		})
	}
}

func TestModel_View_InitialLoading(t *testing.T) {
	m := testModel()
	if view := m.View(); view != "Loading..." {
		t.Errorf("View() before window size = %q, want 'Loading...'", view)
	}
}
