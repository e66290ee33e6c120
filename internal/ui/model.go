// Package ui implements the terminal client.
package ui

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"github.com/saiprannav/weatherdesk/internal/export"
	"github.com/saiprannav/weatherdesk/internal/models"
	"github.com/saiprannav/weatherdesk/internal/weather"
)

// AppState represents the current state of the application
type AppState int

const (
	StateSearch  AppState = iota // Enter a location query
	StateLoading                 // Fetching weather, forecast, and media
	StateDisplay                 // Show current conditions and forecast
	StateHistory                 // Browse recent searches
	StateEdit                    // Edit a stored record
	StateError                   // Error state
)

// fetchCount is how many background fetches a search fans out to.
const fetchCount = 3

// editField selects which edit input has focus
type editField int

const (
	editTemperature editField = iota
	editCondition
)

// Model represents the application's state
type Model struct {
	state  AppState
	width  int
	height int
	err    error

	service *weather.Service

	// Search
	searchInput textinput.Model
	searchQuery string
	spinner     spinner.Model

	// Outstanding background fetches for the active search. searchSeq
	// identifies the search; fetch results carrying an older sequence
	// belong to an abandoned search and are dropped.
	pending   int
	searchSeq int

	// Data
	current  *models.CurrentWeather
	daily    []models.DailyForecast
	location string
	media    *models.LocationMedia
	mediaErr error

	// History
	historyList list.Model

	// Edit
	editRecord *models.WeatherRecord
	tempInput  textinput.Model
	condInput  textinput.Model
	focused    editField

	// Export
	exportDir string
	statusMsg string
}

// NewModel creates a new application model
func NewModel(service *weather.Service) Model {
	ti := textinput.New()
	ti.Placeholder = "Enter zip, city, coordinates, or landmark (e.g. 10001 or Boston, MA)..."
	ti.Focus()
	ti.CharLimit = 100
	ti.Width = 60

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	temp := textinput.New()
	temp.Placeholder = "Temperature"
	temp.CharLimit = 10
	temp.Width = 20

	cond := textinput.New()
	cond.Placeholder = "Condition"
	cond.CharLimit = 60
	cond.Width = 40

	return Model{
		state:       StateSearch,
		service:     service,
		searchInput: ti,
		spinner:     s,
		tempInput:   temp,
		condInput:   cond,
		exportDir:   ".",
	}
}

// WithExportDir sets the directory export files are written to.
func (m Model) WithExportDir(dir string) Model {
	if dir != "" {
		m.exportDir = dir
	}
	return m
}

// Init initializes the application
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	if msg, ok := msg.(tea.WindowSizeMsg); ok {
		m.width = msg.Width
		m.height = msg.Height
		if m.state == StateHistory {
			m.historyList.SetSize(msg.Width-4, msg.Height-10)
		}
		return m, nil
	}

	switch msg := msg.(type) {
	case errMsg:
		m.err = msg.err
		m.state = StateError
		return m, nil

	case currentFetchedMsg:
		if msg.seq != m.searchSeq {
			return m, nil
		}
		m.pending--
		if msg.err != nil && msg.current == nil {
			m.err = msg.err
			m.state = StateError
			return m, nil
		}
		m.current = msg.current
		return m.maybeDisplay()

	case forecastFetchedMsg:
		if msg.seq != m.searchSeq {
			return m, nil
		}
		m.pending--
		if msg.err == nil {
			m.daily = msg.daily
			m.location = msg.location
		}
		return m.maybeDisplay()

	case mediaFetchedMsg:
		if msg.seq != m.searchSeq {
			return m, nil
		}
		m.pending--
		m.mediaErr = msg.err
		if msg.err == nil {
			m.media = msg.media
		}
		return m.maybeDisplay()

	case historyLoadedMsg:
		if msg.err != nil {
			m.err = msg.err
			m.state = StateError
			return m, nil
		}
		m.historyList = newHistoryList(msg.entries, m.width-4, m.height-10)
		m.state = StateHistory
		return m, nil

	case recordLoadedMsg:
		if msg.err != nil || msg.record == nil {
			m.statusMsg = "No stored record to edit"
			return m, nil
		}
		m.editRecord = msg.record
		m.tempInput.SetValue(strconv.FormatFloat(msg.record.Temperature, 'f', 1, 64))
		m.condInput.SetValue(msg.record.Condition)
		m.focused = editTemperature
		m.tempInput.Focus()
		m.condInput.Blur()
		m.state = StateEdit
		return m, textinput.Blink

	case recordUpdatedMsg:
		if msg.err != nil {
			m.err = msg.err
			m.state = StateError
			return m, nil
		}
		if m.current != nil && msg.record != nil {
			m.current.Temperature = msg.record.Temperature
			m.current.Condition = msg.record.Condition
		}
		m.statusMsg = "Record updated"
		m.state = StateDisplay
		return m, nil

	case exportDoneMsg:
		if msg.err != nil {
			m.statusMsg = "Export failed: " + msg.err.Error()
		} else {
			m.statusMsg = "Exported to " + msg.path
		}
		return m, nil
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.String() == "ctrl+c" {
			return m, tea.Quit
		}

		switch m.state {
		case StateSearch:
			return m.handleSearchInput(keyMsg)
		case StateDisplay:
			return m.handleDisplayKeys(keyMsg)
		case StateHistory:
			return m.handleHistoryKeys(keyMsg)
		case StateEdit:
			return m.handleEditKeys(keyMsg)
		case StateError:
			if keyMsg.String() == "q" {
				return m, tea.Quit
			}
			m.state = StateSearch
			m.err = nil
			m.searchInput.Focus()
			return m, textinput.Blink
		}
	}

	switch m.state {
	case StateLoading:
		m.spinner, cmd = m.spinner.Update(msg)
	case StateSearch:
		m.searchInput, cmd = m.searchInput.Update(msg)
	case StateHistory:
		m.historyList, cmd = m.historyList.Update(msg)
	}

	return m, cmd
}

// maybeDisplay transitions to the display state once every fetch for the
// active search has reported back.
func (m Model) maybeDisplay() (tea.Model, tea.Cmd) {
	if m.state == StateLoading && m.pending <= 0 {
		m.state = StateDisplay
	}
	return m, nil
}

// startSearch fans out the background fetches for a query.
func (m Model) startSearch(query string) (tea.Model, tea.Cmd) {
	m.searchQuery = query
	m.err = nil
	m.statusMsg = ""
	m.current = nil
	m.daily = nil
	m.media = nil
	m.mediaErr = nil
	m.state = StateLoading
	m.pending = fetchCount
	m.searchSeq++

	return m, tea.Batch(
		m.spinner.Tick,
		fetchCurrent(m.service, query, m.searchSeq),
		fetchForecast(m.service, query, m.searchSeq),
		fetchMedia(m.service, query, m.searchSeq),
	)
}

// handleSearchInput handles keyboard input in search state
func (m Model) handleSearchInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	if m.err != nil && msg.Type != tea.KeyEnter {
		m.err = nil
	}

	if msg.Type == tea.KeyEnter {
		query := m.searchInput.Value()
		if query == "" {
			return m, nil
		}
		return m.startSearch(query)
	}

	if msg.String() == "ctrl+r" {
		return m, loadHistory(m.service)
	}

	m.searchInput, cmd = m.searchInput.Update(msg)
	return m, cmd
}

// handleDisplayKeys handles keyboard input in display state
func (m Model) handleDisplayKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "s":
		m.state = StateSearch
		m.searchInput.SetValue("")
		m.searchInput.Focus()
		m.current = nil
		m.daily = nil
		m.media = nil
		m.statusMsg = ""
		return m, textinput.Blink
	case "h":
		return m, loadHistory(m.service)
	case "e":
		if m.current != nil {
			return m, loadLatestRecord(m.service, m.current.LocationName)
		}
		return m, nil
	case "j":
		return m, m.exportSnapshot("json")
	case "c":
		return m, m.exportSnapshot("csv")
	case "p":
		return m, m.exportSnapshot("pdf")
	}
	return m, nil
}

// handleHistoryKeys handles keyboard input in the history list
func (m Model) handleHistoryKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		if item, ok := m.historyList.SelectedItem().(historyItem); ok {
			return m.startSearch(item.entry.Query)
		}
		return m, nil
	case tea.KeyEsc:
		m.state = StateSearch
		m.searchInput.Focus()
		return m, textinput.Blink
	}
	if msg.String() == "q" {
		return m, tea.Quit
	}

	var cmd tea.Cmd
	m.historyList, cmd = m.historyList.Update(msg)
	return m, cmd
}

// handleEditKeys handles keyboard input in the edit form
func (m Model) handleEditKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.state = StateDisplay
		m.editRecord = nil
		return m, nil

	case tea.KeyTab:
		if m.focused == editTemperature {
			m.focused = editCondition
			m.tempInput.Blur()
			m.condInput.Focus()
		} else {
			m.focused = editTemperature
			m.condInput.Blur()
			m.tempInput.Focus()
		}
		return m, textinput.Blink

	case tea.KeyEnter:
		if m.editRecord == nil {
			m.state = StateDisplay
			return m, nil
		}
		upd, err := m.buildUpdate()
		if err != nil {
			m.statusMsg = err.Error()
			return m, nil
		}
		return m, saveRecordEdit(m.service, m.editRecord.ID, upd)
	}

	var cmd tea.Cmd
	if m.focused == editTemperature {
		m.tempInput, cmd = m.tempInput.Update(msg)
	} else {
		m.condInput, cmd = m.condInput.Update(msg)
	}
	return m, cmd
}

// buildUpdate collects the changed fields from the edit form.
func (m Model) buildUpdate() (models.RecordUpdate, error) {
	var upd models.RecordUpdate

	if v := m.tempInput.Value(); v != "" {
		temp, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return upd, fmt.Errorf("temperature must be a number")
		}
		if temp != m.editRecord.Temperature {
			upd.Temperature = &temp
		}
	}
	if v := m.condInput.Value(); v != "" && v != m.editRecord.Condition {
		upd.Condition = &v
	}

	if upd.Temperature == nil && upd.Condition == nil {
		return upd, fmt.Errorf("nothing changed")
	}
	return upd, nil
}

// exportSnapshot writes the displayed data to a file in the export dir.
func (m Model) exportSnapshot(format string) tea.Cmd {
	current := m.current
	daily := m.daily
	dir := m.exportDir

	return func() tea.Msg {
		if current == nil {
			return exportDoneMsg{err: fmt.Errorf("nothing to export")}
		}

		data := export.Data{
			Location:  current.LocationName,
			Current:   current,
			Forecast:  daily,
			Generated: time.Now().UTC(),
		}

		path := filepath.Join(dir, fmt.Sprintf("weather-%s.%s", uuid.NewString(), format))
		f, err := os.Create(path)
		if err != nil {
			return exportDoneMsg{err: err}
		}
		defer f.Close()

		switch format {
		case "json":
			err = export.JSON(f, data)
		case "csv":
			err = export.CSV(f, data)
		case "pdf":
			err = export.PDF(f, data)
		}
		if err != nil {
			os.Remove(path)
			return exportDoneMsg{err: err}
		}
		return exportDoneMsg{path: path}
	}
}
