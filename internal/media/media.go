// Package media enriches a resolved location with travel videos and a
// static map image.
package media

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/saiprannav/weatherdesk/internal/apperr"
	"github.com/saiprannav/weatherdesk/internal/models"
	"github.com/saiprannav/weatherdesk/internal/ratelimit"
)

const (
	youtubeSearchURL = "https://www.googleapis.com/youtube/v3/search"
	staticMapURL     = "https://maps.googleapis.com/maps/api/staticmap"
	mapsSearchURL    = "https://www.google.com/maps/search/"

	maxVideos = 3
)

// Client fetches location media from the YouTube and Google Maps APIs.
// Either key may be empty, in which case that enrichment is skipped.
type Client struct {
	searchURL  string
	youtubeKey string
	mapsKey    string
	httpClient *http.Client

	youtubeLimiter *ratelimit.Limiter
	mapsLimiter    *ratelimit.Limiter
}

// NewClient builds a media client. youtubeRPM and mapsRPM cap the request
// rate per API; zero disables the cap.
func NewClient(youtubeKey, mapsKey string, timeout time.Duration, youtubeRPM, mapsRPM int) *Client {
	return &Client{
		searchURL:      youtubeSearchURL,
		youtubeKey:     youtubeKey,
		mapsKey:        mapsKey,
		httpClient:     &http.Client{Timeout: timeout},
		youtubeLimiter: ratelimit.New(youtubeRPM),
		mapsLimiter:    ratelimit.New(mapsRPM),
	}
}

// LocationMedia gathers videos and map links for a location. A missing
// YouTube key yields empty videos rather than an error; a failed video
// search is the only error path.
func (c *Client) LocationMedia(ctx context.Context, locationName string, lat, lon float64) (*models.LocationMedia, error) {
	media := &models.LocationMedia{
		MapsURL: mapsSearchURL + url.QueryEscape(locationName),
	}

	if c.mapsKey != "" {
		if err := c.mapsLimiter.Wait(ctx); err != nil {
			return nil, err
		}
		media.StaticMapURL = c.staticMap(lat, lon)
	}

	if c.youtubeKey == "" {
		return media, nil
	}

	videos, err := c.searchVideos(ctx, locationName)
	if err != nil {
		return nil, err
	}
	media.Videos = videos

	return media, nil
}

func (c *Client) staticMap(lat, lon float64) string {
	q := url.Values{}
	q.Set("center", fmt.Sprintf("%.6f,%.6f", lat, lon))
	q.Set("zoom", "12")
	q.Set("size", "600x400")
	q.Set("markers", fmt.Sprintf("color:red|%.6f,%.6f", lat, lon))
	q.Set("key", c.mapsKey)
	return staticMapURL + "?" + q.Encode()
}

type searchResponse struct {
	Items []struct {
		ID struct {
			VideoID string `json:"videoId"`
		} `json:"id"`
		Snippet struct {
			Title       string `json:"title"`
			PublishedAt string `json:"publishedAt"`
			Thumbnails  struct {
				Medium struct {
					URL string `json:"url"`
				} `json:"medium"`
			} `json:"thumbnails"`
		} `json:"snippet"`
	} `json:"items"`
}

// searchVideos returns the most-viewed travel videos for a location.
func (c *Client) searchVideos(ctx context.Context, locationName string) ([]models.Video, error) {
	if err := c.youtubeLimiter.Wait(ctx); err != nil {
		return nil, err
	}

	q := url.Values{}
	q.Set("part", "snippet")
	q.Set("q", locationName+" travel")
	q.Set("type", "video")
	q.Set("order", "viewCount")
	q.Set("maxResults", strconv.Itoa(maxVideos))
	q.Set("key", c.youtubeKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.searchURL+"?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("building youtube request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, apperr.Upstream("YouTube", "video search failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, apperr.Upstream("YouTube", fmt.Sprintf("video search returned status %d", resp.StatusCode), nil)
	}

	var sr searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&sr); err != nil {
		return nil, apperr.Upstream("YouTube", "decoding video search response", err)
	}

	videos := make([]models.Video, 0, len(sr.Items))
	for _, item := range sr.Items {
		if item.ID.VideoID == "" {
			continue
		}
		published, _ := time.Parse(time.RFC3339, item.Snippet.PublishedAt)
		videos = append(videos, models.Video{
			ID:          item.ID.VideoID,
			Title:       item.Snippet.Title,
			Thumbnail:   item.Snippet.Thumbnails.Medium.URL,
			PublishedAt: published,
		})
		if len(videos) == maxVideos {
			break
		}
	}

	return videos, nil
}
