package models

import "time"

// WeatherRecord is a persisted weather observation or forecast-day entry.
// Location identity is the exact name string, not a geocoded key.
type WeatherRecord struct {
	ID             int64      `json:"id"`
	LocationName   string     `json:"location_name"`
	Latitude       float64    `json:"latitude"`
	Longitude      float64    `json:"longitude"`
	Timestamp      time.Time  `json:"timestamp"`
	Temperature    float64    `json:"temperature"`
	FeelsLike      *float64   `json:"feels_like,omitempty"`
	Humidity       *int       `json:"humidity,omitempty"`
	WindSpeed      *float64   `json:"wind_speed,omitempty"`
	Condition      string     `json:"condition"`
	DateRangeStart *time.Time `json:"date_range_start,omitempty"`
	DateRangeEnd   *time.Time `json:"date_range_end,omitempty"`
}

// RecordUpdate carries the only fields an edit may change.
type RecordUpdate struct {
	Temperature *float64 `json:"temperature,omitempty"`
	Condition   *string  `json:"condition,omitempty"`
}

// LocationSearch is one entry of the append-only location search history.
type LocationSearch struct {
	ID           int64     `json:"id"`
	Query        string    `json:"query"`
	ResolvedName string    `json:"resolved_name,omitempty"`
	Latitude     float64   `json:"latitude"`
	Longitude    float64   `json:"longitude"`
	Timestamp    time.Time `json:"timestamp"`
}

// Setting is a persisted key/value user preference.
type Setting struct {
	Key         string    `json:"key"`
	Value       string    `json:"value"`
	LastUpdated time.Time `json:"last_updated"`
}
