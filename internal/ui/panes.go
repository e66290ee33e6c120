package ui

import (
	"fmt"
	"strings"
)

// renderWeatherPane renders current conditions
func (m Model) renderWeatherPane() string {
	if m.current == nil {
		return paneStyle.Render(mutedStyle.Render("No weather data available"))
	}

	var content strings.Builder

	content.WriteString(labelStyle.Render("Temperature: "))
	content.WriteString(valueStyle.Render(fmt.Sprintf("%.1f°C", m.current.Temperature)))
	content.WriteString("\n")

	content.WriteString(labelStyle.Render("Feels Like:  "))
	content.WriteString(valueStyle.Render(fmt.Sprintf("%.1f°C", m.current.FeelsLike)))
	content.WriteString("\n")

	content.WriteString(labelStyle.Render("Humidity:    "))
	content.WriteString(valueStyle.Render(fmt.Sprintf("%d%%", m.current.Humidity)))
	content.WriteString("\n")

	content.WriteString(labelStyle.Render("Wind:        "))
	content.WriteString(valueStyle.Render(fmt.Sprintf("%.1f m/s", m.current.WindSpeed)))
	content.WriteString("\n")

	content.WriteString(labelStyle.Render("Conditions:  "))
	content.WriteString(valueStyle.Render(m.current.Condition))

	return paneStyle.Render(content.String())
}

// renderForecastPane renders the daily forecast table
func (m Model) renderForecastPane() string {
	var content strings.Builder

	for i, day := range m.daily {
		if i > 0 {
			content.WriteString("\n")
		}
		content.WriteString(valueStyle.Bold(true).Render(day.Date.Format("Mon Jan 02")))
		content.WriteString("\n")
		content.WriteString(fmt.Sprintf("  %s  ", day.Condition))
		content.WriteString(mutedStyle.Render(fmt.Sprintf("%.0f°–%.0f°C (avg %.1f°C)",
			day.TempMin, day.TempMax, day.TempAvg)))
		if day.PrecipProb > 0 {
			content.WriteString(mutedStyle.Render(fmt.Sprintf("  %.0f%% precip", day.PrecipProb*100)))
		}
		content.WriteString("\n")
	}

	return paneStyle.Render(strings.TrimRight(content.String(), "\n"))
}

// renderMediaPane renders videos and map links
func (m Model) renderMediaPane() string {
	var content strings.Builder

	if len(m.media.Videos) > 0 {
		content.WriteString(labelStyle.Render("Travel videos"))
		content.WriteString("\n")
		for _, v := range m.media.Videos {
			content.WriteString(fmt.Sprintf("  • %s\n", valueStyle.Render(v.Title)))
			content.WriteString(mutedStyle.Render(fmt.Sprintf("    https://youtu.be/%s\n", v.ID)))
		}
	}

	if m.media.MapsURL != "" {
		if content.Len() > 0 {
			content.WriteString("\n")
		}
		content.WriteString(labelStyle.Render("Map: "))
		content.WriteString(mutedStyle.Render(m.media.MapsURL))
	}

	if content.Len() == 0 {
		return paneStyle.Render(mutedStyle.Render("No media available"))
	}

	return paneStyle.Render(strings.TrimRight(content.String(), "\n"))
}
