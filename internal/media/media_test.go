package media

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/saiprannav/weatherdesk/internal/apperr"
)

func testClient(youtubeKey, mapsKey, searchURL string) *Client {
	c := NewClient(youtubeKey, mapsKey, 5*time.Second, 0, 0)
	if searchURL != "" {
		c.searchURL = searchURL
	}
	return c
}

func TestLocationMediaVideos(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if got := q.Get("q"); got != "Paris travel" {
			t.Errorf("q = %q, want 'Paris travel'", got)
		}
		if got := q.Get("order"); got != "viewCount" {
			t.Errorf("order = %q, want viewCount", got)
		}
		if got := q.Get("maxResults"); got != "3" {
			t.Errorf("maxResults = %q, want 3", got)
		}
		fmt.Fprint(w, `{"items": [
			{"id": {"videoId": "abc123"}, "snippet": {"title": "Paris in 4K", "publishedAt": "2023-01-15T00:00:00Z", "thumbnails": {"medium": {"url": "https://i.ytimg.com/abc123.jpg"}}}},
			{"id": {"videoId": "def456"}, "snippet": {"title": "Paris Food Tour", "publishedAt": "2023-03-20T00:00:00Z", "thumbnails": {"medium": {"url": "https://i.ytimg.com/def456.jpg"}}}}
		]}`)
	}))
	defer server.Close()

	c := testClient("yt-key", "", server.URL)
	media, err := c.LocationMedia(context.Background(), "Paris", 48.8566, 2.3522)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(media.Videos) != 2 {
		t.Fatalf("expected 2 videos, got %d", len(media.Videos))
	}
	if media.Videos[0].ID != "abc123" || media.Videos[0].Title != "Paris in 4K" {
		t.Errorf("first video = %q/%q", media.Videos[0].ID, media.Videos[0].Title)
	}
	if media.Videos[0].Thumbnail != "https://i.ytimg.com/abc123.jpg" {
		t.Errorf("thumbnail = %q", media.Videos[0].Thumbnail)
	}
	if media.StaticMapURL != "" {
		t.Errorf("expected no static map without maps key, got %q", media.StaticMapURL)
	}
	if !strings.Contains(media.MapsURL, "Paris") {
		t.Errorf("maps URL = %q, want it to contain the location", media.MapsURL)
	}
}

func TestLocationMediaStaticMap(t *testing.T) {
	c := testClient("", "maps-key", "")
	media, err := c.LocationMedia(context.Background(), "Tokyo", 35.6762, 139.6503)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(media.Videos) != 0 {
		t.Errorf("expected no videos without youtube key, got %d", len(media.Videos))
	}
	for _, want := range []string{"center=35.676200%2C139.650300", "zoom=12", "key=maps-key"} {
		if !strings.Contains(media.StaticMapURL, want) {
			t.Errorf("static map URL %q missing %q", media.StaticMapURL, want)
		}
	}
}

func TestLocationMediaNoKeys(t *testing.T) {
	c := testClient("", "", "")
	media, err := c.LocationMedia(context.Background(), "Lisbon", 38.7223, -9.1393)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(media.Videos) != 0 || media.StaticMapURL != "" {
		t.Errorf("expected bare media without keys, got %+v", media)
	}
	if media.MapsURL == "" {
		t.Error("maps search URL should always be present")
	}
}

func TestLocationMediaUpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	c := testClient("yt-key", "", server.URL)
	_, err := c.LocationMedia(context.Background(), "Paris", 48.8566, 2.3522)
	if !apperr.IsUpstream(err) {
		t.Errorf("expected upstream error, got %v", err)
	}
}
