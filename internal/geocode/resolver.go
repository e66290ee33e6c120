// Package geocode resolves classified location strings to coordinates.
package geocode

import (
	"context"

	"github.com/saiprannav/weatherdesk/internal/location"
	"github.com/saiprannav/weatherdesk/internal/models"
	"github.com/saiprannav/weatherdesk/internal/openweather"
	"github.com/saiprannav/weatherdesk/internal/ratelimit"
)

// Geocoder is the subset of the provider client the resolver needs.
type Geocoder interface {
	GeocodeDirect(ctx context.Context, query string, limit int) ([]openweather.GeoResult, error)
	GeocodeZip(ctx context.Context, zip string) (*openweather.GeoResult, error)
}

// ResolvedLocation is a location with known coordinates.
type ResolvedLocation struct {
	Name      string
	Latitude  float64
	Longitude float64
}

// Resolver converts classified locations to coordinates, rate-limiting the
// geocoding calls it makes.
type Resolver struct {
	geocoder Geocoder
	limiter  *ratelimit.Limiter
}

// NewResolver creates a Resolver. limiter may be nil to disable spacing.
func NewResolver(geocoder Geocoder, limiter *ratelimit.Limiter) *Resolver {
	if limiter == nil {
		limiter = ratelimit.New(0)
	}
	return &Resolver{geocoder: geocoder, limiter: limiter}
}

// Resolve returns coordinates for a classified location. Coordinate input is
// parsed locally with no network call; zip codes use the dedicated endpoint;
// city and landmark queries go through free-text search, taking the first
// candidate.
func (r *Resolver) Resolve(ctx context.Context, input string, typ location.Type) (*ResolvedLocation, error) {
	if typ == location.TypeCoordinates {
		lat, lon, err := location.ParseCoordinates(input)
		if err != nil {
			return nil, err
		}
		return &ResolvedLocation{
			Name:      location.FormatForDisplay(input, typ).DisplayName,
			Latitude:  lat,
			Longitude: lon,
		}, nil
	}

	if err := r.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	if typ == location.TypeZip {
		result, err := r.geocoder.GeocodeZip(ctx, input)
		if err != nil {
			return nil, err
		}
		return &ResolvedLocation{Name: result.Name, Latitude: result.Lat, Longitude: result.Lon}, nil
	}

	results, err := r.geocoder.GeocodeDirect(ctx, input, 1)
	if err != nil {
		return nil, err
	}
	first := results[0]
	return &ResolvedLocation{Name: first.Name, Latitude: first.Lat, Longitude: first.Lon}, nil
}

// Search is a convenience that classifies and resolves in one step, also
// reporting the location history entry the caller should record.
func (r *Resolver) Search(ctx context.Context, input string) (*ResolvedLocation, *models.LocationSearch, error) {
	res, err := location.Classify(input)
	if err != nil {
		return nil, nil, err
	}

	loc, err := r.Resolve(ctx, res.Input, res.Type)
	if err != nil {
		return nil, nil, err
	}

	entry := &models.LocationSearch{
		Query:        res.Input,
		ResolvedName: loc.Name,
		Latitude:     loc.Latitude,
		Longitude:    loc.Longitude,
	}
	return loc, entry, nil
}
