package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"

	"github.com/saiprannav/weatherdesk/internal/models"
)

// historyItem wraps a LocationSearch for use in a list
type historyItem struct {
	entry models.LocationSearch
}

// FilterValue implements list.Item
func (h historyItem) FilterValue() string {
	return h.entry.Query + " " + h.entry.ResolvedName
}

// Title implements list.DefaultItem
func (h historyItem) Title() string {
	if h.entry.ResolvedName != "" && h.entry.ResolvedName != h.entry.Query {
		return fmt.Sprintf("%s (%s)", h.entry.ResolvedName, h.entry.Query)
	}
	return h.entry.Query
}

// Description implements list.DefaultItem
func (h historyItem) Description() string {
	return fmt.Sprintf("(%.4f, %.4f) · %s",
		h.entry.Latitude, h.entry.Longitude,
		h.entry.Timestamp.Format("Jan 02 15:04"))
}

// newHistoryList creates a list.Model from search history
func newHistoryList(entries []models.LocationSearch, width, height int) list.Model {
	items := make([]list.Item, len(entries))
	for i, entry := range entries {
		items[i] = historyItem{entry: entry}
	}

	if width < 20 {
		width = 60
	}
	if height < 5 {
		height = 20
	}

	l := list.New(items, list.NewDefaultDelegate(), width, height)
	l.Title = "Recent Searches"
	l.SetShowHelp(true)
	l.SetFilteringEnabled(false)

	return l
}
