package models

import "time"

// Video is a single travel video result for a location.
type Video struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Thumbnail   string    `json:"thumbnail"`
	PublishedAt time.Time `json:"published_at"`
}

// LocationMedia bundles travel videos and a static map image for a location.
type LocationMedia struct {
	Videos       []Video `json:"videos"`
	StaticMapURL string  `json:"static_map_url,omitempty"`
	MapsURL      string  `json:"maps_url"`
}
