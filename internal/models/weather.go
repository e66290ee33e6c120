package models

import "time"

// CurrentWeather represents current conditions for a resolved location.
type CurrentWeather struct {
	LocationName string    `json:"location_name"`
	Latitude     float64   `json:"latitude"`
	Longitude    float64   `json:"longitude"`
	Temperature  float64   `json:"temperature"` // Celsius
	FeelsLike    float64   `json:"feels_like"`
	Humidity     int       `json:"humidity"` // percent
	WindSpeed    float64   `json:"wind_speed"` // m/s
	Condition    string    `json:"condition"`
	Icon         string    `json:"icon,omitempty"`
	Timestamp    time.Time `json:"timestamp"`
}

// WeatherSample is a single provider reading at a fixed timestamp,
// typically one every 3 hours.
type WeatherSample struct {
	Timestamp   time.Time `json:"timestamp"`
	Temperature float64   `json:"temperature"`
	FeelsLike   float64   `json:"feels_like"`
	Humidity    int       `json:"humidity"`
	WindSpeed   float64   `json:"wind_speed"`
	Condition   string    `json:"condition"`
	Icon        string    `json:"icon,omitempty"`
	Pop         float64   `json:"pop"` // precipitation probability 0..1
}

// DailyForecast summarizes all samples falling on one calendar date.
type DailyForecast struct {
	Date       time.Time `json:"date"`
	TempMin    float64   `json:"temp_min"`
	TempMax    float64   `json:"temp_max"`
	TempAvg    float64   `json:"temp_avg"`
	Condition  string    `json:"condition"`
	Icon       string    `json:"icon,omitempty"`
	PrecipProb float64   `json:"precipitation_prob"`
}
