// Package openweather is the HTTP client for the OpenWeatherMap current
// weather, forecast, and geocoding endpoints.
package openweather

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/sony/gobreaker"

	"github.com/saiprannav/weatherdesk/internal/apperr"
	"github.com/saiprannav/weatherdesk/internal/models"
)

const serviceName = "OpenWeather"

// Client calls the OpenWeatherMap API. Construct with NewClient.
type Client struct {
	baseURL    string
	geoURL     string
	apiKey     string
	httpClient *http.Client
	circuit    *gobreaker.CircuitBreaker
}

// NewClient creates a client with a bounded request timeout. All calls share
// one circuit breaker; once OpenWeather starts failing, callers fail fast
// instead of piling on.
func NewClient(apiKey string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "openweather",
		MaxRequests: 5,
		Interval:    1 * time.Minute,
		Timeout:     2 * time.Minute,
	})

	return &Client{
		baseURL: "https://api.openweathermap.org/data/2.5",
		geoURL:  "https://api.openweathermap.org/geo/1.0",
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		circuit: cb,
	}
}

// CurrentWeather fetches current conditions for the given coordinates.
func (c *Client) CurrentWeather(ctx context.Context, lat, lon float64) (*models.CurrentWeather, error) {
	values := url.Values{}
	values.Set("lat", fmt.Sprintf("%f", lat))
	values.Set("lon", fmt.Sprintf("%f", lon))
	values.Set("appid", c.apiKey)
	values.Set("units", "metric")

	var payload currentResponse
	if err := c.getJSON(ctx, c.baseURL+"/weather?"+values.Encode(), &payload); err != nil {
		return nil, err
	}

	cw := &models.CurrentWeather{
		LocationName: payload.Name,
		Latitude:     lat,
		Longitude:    lon,
		Temperature:  payload.Main.Temp,
		FeelsLike:    payload.Main.FeelsLike,
		Humidity:     payload.Main.Humidity,
		WindSpeed:    payload.Wind.Speed,
		Timestamp:    time.Unix(payload.Dt, 0).UTC(),
	}
	if len(payload.Weather) > 0 {
		cw.Condition = payload.Weather[0].Description
		cw.Icon = payload.Weather[0].Icon
	}

	return cw, nil
}

// Forecast fetches up to cnt 3-hour samples for the given coordinates and
// returns the provider's city name alongside the ordered samples.
func (c *Client) Forecast(ctx context.Context, lat, lon float64, cnt int) (string, []models.WeatherSample, error) {
	values := url.Values{}
	values.Set("lat", fmt.Sprintf("%f", lat))
	values.Set("lon", fmt.Sprintf("%f", lon))
	values.Set("appid", c.apiKey)
	values.Set("units", "metric")
	if cnt > 0 {
		values.Set("cnt", fmt.Sprintf("%d", cnt))
	}

	var payload forecastResponse
	if err := c.getJSON(ctx, c.baseURL+"/forecast?"+values.Encode(), &payload); err != nil {
		return "", nil, err
	}

	samples := make([]models.WeatherSample, 0, len(payload.List))
	for _, item := range payload.List {
		s := models.WeatherSample{
			Timestamp:   time.Unix(item.Dt, 0).UTC(),
			Temperature: item.Main.Temp,
			FeelsLike:   item.Main.FeelsLike,
			Humidity:    item.Main.Humidity,
			WindSpeed:   item.Wind.Speed,
			Pop:         item.Pop,
		}
		if len(item.Weather) > 0 {
			s.Condition = item.Weather[0].Description
			s.Icon = item.Weather[0].Icon
		}
		samples = append(samples, s)
	}

	return payload.City.Name, samples, nil
}

// GeoResult is one geocoding candidate.
type GeoResult struct {
	Name string  `json:"name"`
	Lat  float64 `json:"lat"`
	Lon  float64 `json:"lon"`
}

// GeocodeDirect resolves free-text (city, landmark) queries. The endpoint
// returns an ordered candidate list; an empty list means the location does
// not exist as far as the provider knows.
func (c *Client) GeocodeDirect(ctx context.Context, query string, limit int) ([]GeoResult, error) {
	values := url.Values{}
	values.Set("q", query)
	values.Set("limit", fmt.Sprintf("%d", limit))
	values.Set("appid", c.apiKey)

	var results []GeoResult
	if err := c.getJSON(ctx, c.geoURL+"/direct?"+values.Encode(), &results); err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, apperr.NotFound(fmt.Sprintf("location not found: %s", query))
	}
	return results, nil
}

// GeocodeZip resolves a ZIP code through the dedicated endpoint, which
// returns a single object rather than a list.
func (c *Client) GeocodeZip(ctx context.Context, zip string) (*GeoResult, error) {
	values := url.Values{}
	values.Set("zip", zip)
	values.Set("appid", c.apiKey)

	var result GeoResult
	if err := c.getJSON(ctx, c.geoURL+"/zip?"+values.Encode(), &result); err != nil {
		return nil, err
	}
	if result.Lat == 0 && result.Lon == 0 && result.Name == "" {
		return nil, apperr.NotFound(fmt.Sprintf("location not found: %s", zip))
	}
	return &result, nil
}

// getJSON executes a GET through the circuit breaker and decodes the body.
func (c *Client) getJSON(ctx context.Context, rawURL string, out any) error {
	result, err := c.circuit.Execute(func() (any, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("Accept", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return nil, err
		}

		if resp.StatusCode == http.StatusNotFound {
			resp.Body.Close()
			return nil, apperr.NotFound("location not found")
		}
		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			resp.Body.Close()
			return nil, fmt.Errorf("status %d", resp.StatusCode)
		}
		return resp, nil
	})
	if err != nil {
		if apperr.IsNotFound(err) {
			return err
		}
		return apperr.Upstream(serviceName, "request failed", err)
	}

	resp := result.(*http.Response)
	defer resp.Body.Close()

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return apperr.Upstream(serviceName, "decoding response", err)
	}
	return nil
}
