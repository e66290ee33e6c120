package ui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

// View renders the UI
func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	switch m.state {
	case StateSearch:
		return m.viewSearch()
	case StateLoading:
		return m.viewLoading()
	case StateDisplay:
		return m.viewDisplay()
	case StateHistory:
		return m.viewHistory()
	case StateEdit:
		return m.viewEdit()
	case StateError:
		return m.viewError()
	}

	return ""
}

// viewSearch renders the search view
func (m Model) viewSearch() string {
	title := titleStyle.Render("☀ WeatherDesk")
	subtitle := mutedStyle.Render("Current conditions, forecasts & travel media")

	searchBox := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("62")).
		Padding(1, 2).
		Width(64).
		Render(m.searchInput.View())

	var errorMsg string
	if m.err != nil {
		errorMsg = errorStyle.Padding(0, 2).Render("✗ " + m.err.Error())
	}

	examples := mutedStyle.Render("Examples: 10001 | Boston, MA | 40.7128,-74.0060 | Eiffel Tower")
	help := helpStyle.Render("Enter: Search • Ctrl+R: History • Ctrl+C: Quit")

	sections := []string{title, subtitle, "", searchBox}
	if m.err != nil {
		sections = append(sections, "", errorMsg)
	}
	sections = append(sections, "", examples, "", help)

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// viewLoading renders the loading view with per-fetch progress
func (m Model) viewLoading() string {
	done := fetchCount - m.pending

	s := fmt.Sprintf("%s Fetching weather for %s...\n\n", m.spinner.View(), m.searchQuery)
	s += fmt.Sprintf("%d of %d lookups complete\n\n", done, fetchCount)

	if m.current != nil {
		s += "✓ Current conditions\n"
	} else {
		s += "⏳ Current conditions\n"
	}
	if m.daily != nil {
		s += "✓ Forecast\n"
	} else {
		s += "⏳ Forecast\n"
	}
	if m.media != nil || m.mediaErr != nil {
		s += "✓ Location media\n"
	} else {
		s += "⏳ Location media\n"
	}

	return s
}

// viewDisplay renders the main display
func (m Model) viewDisplay() string {
	var sections []string

	headerStyle := lipgloss.NewStyle().
		Foreground(colorPrimary).
		Bold(true).
		Padding(0, 1).
		MarginBottom(1)

	name := m.location
	if m.current != nil {
		name = m.current.LocationName
	}
	sections = append(sections, headerStyle.Render("☀ "+name))

	sections = append(sections,
		sectionHeaderStyle.Render("CURRENT CONDITIONS"),
		m.renderWeatherPane(),
	)

	if len(m.daily) > 0 {
		sections = append(sections,
			sectionHeaderStyle.Render("FORECAST"),
			m.renderForecastPane(),
		)
	}

	if m.media != nil {
		sections = append(sections,
			sectionHeaderStyle.Render("EXPLORE"),
			m.renderMediaPane(),
		)
	}

	if m.statusMsg != "" {
		sections = append(sections, "", statusStyle.Render(m.statusMsg))
	}

	help := helpStyle.Render("S: New search • H: History • E: Edit • J/C/P: Export JSON/CSV/PDF • Q: Quit")
	sections = append(sections, "", help)

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// viewHistory renders the recent searches list
func (m Model) viewHistory() string {
	title := titleStyle.Render("☀ Search History")
	help := helpStyle.Render("↑/↓: Navigate • Enter: Search again • Esc: Back • Q: Quit")

	return lipgloss.JoinVertical(lipgloss.Left,
		title,
		"",
		m.historyList.View(),
		"",
		help,
	)
}

// viewEdit renders the record edit form
func (m Model) viewEdit() string {
	title := titleStyle.Render("✎ Edit Record")

	var sub string
	if m.editRecord != nil {
		sub = mutedStyle.Render(fmt.Sprintf("%s · %s",
			m.editRecord.LocationName,
			m.editRecord.Timestamp.Format("Jan 02 15:04")))
	}

	form := lipgloss.JoinVertical(lipgloss.Left,
		labelStyle.Render("Temperature"),
		m.tempInput.View(),
		"",
		labelStyle.Render("Condition"),
		m.condInput.View(),
	)

	var statusMsg string
	if m.statusMsg != "" {
		statusMsg = errorStyle.Render(m.statusMsg)
	}

	help := helpStyle.Render("Tab: Switch field • Enter: Save • Esc: Cancel")

	sections := []string{title, sub, "", paneStyle.Render(form)}
	if statusMsg != "" {
		sections = append(sections, "", statusMsg)
	}
	sections = append(sections, "", help)

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// viewError renders the error view
func (m Model) viewError() string {
	title := errorStyle.Render("✗ Error")

	errorMsg := "An unknown error occurred"
	if m.err != nil {
		errorMsg = m.err.Error()
	}

	help := helpStyle.Render("Press any key to return to search • Q: Quit")

	return lipgloss.JoinVertical(lipgloss.Left,
		title,
		"",
		errorMsg,
		"",
		help,
	)
}
