package weather

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/saiprannav/weatherdesk/internal/apperr"
	"github.com/saiprannav/weatherdesk/internal/geocode"
	"github.com/saiprannav/weatherdesk/internal/models"
	"github.com/saiprannav/weatherdesk/internal/openweather"
	"github.com/saiprannav/weatherdesk/internal/storage"
)

type fakeProvider struct {
	current      *models.CurrentWeather
	samples      []models.WeatherSample
	cityName     string
	err          error
	currentCalls int
	forecastCnt  int
}

func (f *fakeProvider) CurrentWeather(_ context.Context, lat, lon float64) (*models.CurrentWeather, error) {
	f.currentCalls++
	if f.err != nil {
		return nil, f.err
	}
	cw := *f.current
	cw.Latitude = lat
	cw.Longitude = lon
	return &cw, nil
}

func (f *fakeProvider) Forecast(_ context.Context, lat, lon float64, cnt int) (string, []models.WeatherSample, error) {
	f.forecastCnt = cnt
	if f.err != nil {
		return "", nil, f.err
	}
	return f.cityName, f.samples, nil
}

type fakeGeocoder struct {
	result openweather.GeoResult
}

func (f *fakeGeocoder) GeocodeDirect(_ context.Context, query string, limit int) ([]openweather.GeoResult, error) {
	return []openweather.GeoResult{f.result}, nil
}

func (f *fakeGeocoder) GeocodeZip(_ context.Context, zip string) (*openweather.GeoResult, error) {
	r := f.result
	return &r, nil
}

type fakeMedia struct {
	media *models.LocationMedia
	name  string
}

func (f *fakeMedia) LocationMedia(_ context.Context, locationName string, lat, lon float64) (*models.LocationMedia, error) {
	f.name = locationName
	return f.media, nil
}

func testService(t *testing.T, provider Provider, media MediaFetcher) (*Service, *storage.Store) {
	t.Helper()
	store, err := storage.Open(":memory:")
	if err != nil {
		t.Fatalf("opening store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	resolver := geocode.NewResolver(&fakeGeocoder{
		result: openweather.GeoResult{Name: "New York", Lat: 40.75, Lon: -73.99},
	}, nil)

	return NewService(provider, resolver, media, store), store
}

func TestCurrentEndToEnd(t *testing.T) {
	provider := &fakeProvider{
		current: &models.CurrentWeather{
			LocationName: "New York",
			Temperature:  20.5,
			FeelsLike:    18.2,
			Humidity:     65,
			WindSpeed:    3.4,
			Condition:    "clear sky",
			Timestamp:    time.Date(2024, 6, 15, 10, 0, 0, 0, time.UTC),
		},
	}
	svc, store := testService(t, provider, nil)

	current, err := svc.Current(context.Background(), "10001")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if current.Temperature != 20.5 {
		t.Errorf("temperature = %v, want 20.5", current.Temperature)
	}
	if current.Latitude != 40.75 || current.Longitude != -73.99 {
		t.Errorf("coordinates = %v,%v, want 40.75,-73.99", current.Latitude, current.Longitude)
	}

	records, err := store.ListWeatherRecords(10)
	if err != nil {
		t.Fatalf("listing records: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected 1 persisted record, got %d", len(records))
	}
	if records[0].LocationName != "New York" || records[0].Temperature != 20.5 {
		t.Errorf("persisted record = %q/%v", records[0].LocationName, records[0].Temperature)
	}

	recent, err := store.RecentLocations(10)
	if err != nil {
		t.Fatalf("listing history: %v", err)
	}
	if len(recent) != 1 || recent[0].Query != "10001" {
		t.Errorf("history = %+v", recent)
	}
}

func TestCurrentRejectsInvalidLocationBeforeFetch(t *testing.T) {
	provider := &fakeProvider{current: &models.CurrentWeather{}}
	svc, _ := testService(t, provider, nil)

	_, err := svc.Current(context.Background(), "where@is#this")
	if !apperr.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if provider.currentCalls != 0 {
		t.Errorf("provider called %d times for invalid input", provider.currentCalls)
	}
}

func TestForecastDaysValidatesRange(t *testing.T) {
	provider := &fakeProvider{}
	svc, _ := testService(t, provider, nil)

	for _, days := range []int{0, 6, -1} {
		if _, _, err := svc.ForecastDays(context.Background(), "Boston, MA", days); !apperr.IsValidation(err) {
			t.Errorf("days=%d: expected validation error, got %v", days, err)
		}
	}
	if provider.forecastCnt != 0 {
		t.Error("provider called despite invalid days")
	}
}

func TestForecastDaysPersistsPerDay(t *testing.T) {
	base := time.Date(2024, 6, 16, 0, 0, 0, 0, time.UTC)
	var samples []models.WeatherSample
	for d := 0; d < 2; d++ {
		for i := 0; i < 8; i++ {
			samples = append(samples, models.WeatherSample{
				Timestamp:   base.Add(time.Duration(d)*24*time.Hour + time.Duration(i)*3*time.Hour),
				Temperature: float64(15 + d),
				Condition:   "clear sky",
				Icon:        "01d",
			})
		}
	}
	provider := &fakeProvider{cityName: "New York", samples: samples}
	svc, store := testService(t, provider, nil)

	name, daily, err := svc.ForecastDays(context.Background(), "10001", 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if name != "New York" {
		t.Errorf("name = %q, want New York", name)
	}
	if provider.forecastCnt != 16 {
		t.Errorf("requested cnt = %d, want 16", provider.forecastCnt)
	}
	if len(daily) != 2 {
		t.Fatalf("expected 2 daily entries, got %d", len(daily))
	}

	records, err := store.ListWeatherRecords(10)
	if err != nil {
		t.Fatalf("listing records: %v", err)
	}
	if len(records) != 2 {
		t.Errorf("expected one record per forecast day, got %d", len(records))
	}
}

func TestCreateQueryValidatesBeforeNetwork(t *testing.T) {
	provider := &fakeProvider{current: &models.CurrentWeather{Temperature: 20}}
	svc, _ := testService(t, provider, nil)

	today := time.Now().Format("2006-01-02")
	farOut := time.Now().Add(9 * 24 * time.Hour).Format("2006-01-02")

	_, err := svc.CreateQuery(context.Background(), "Boston, MA", today, farOut)
	if !apperr.IsValidation(err) {
		t.Fatalf("expected validation error for 10-day range, got %v", err)
	}
	if !strings.Contains(err.Error(), "5 days") {
		t.Errorf("error %q should name the 5-day limit", err)
	}
	if provider.currentCalls != 0 {
		t.Errorf("provider called %d times despite invalid range", provider.currentCalls)
	}
}

func TestCreateQueryStoresDateRange(t *testing.T) {
	provider := &fakeProvider{
		current: &models.CurrentWeather{LocationName: "New York", Temperature: 22, Condition: "few clouds"},
	}
	svc, store := testService(t, provider, nil)

	start := time.Now().Format("2006-01-02")
	end := time.Now().Add(2 * 24 * time.Hour).Format("2006-01-02")

	rec, err := svc.CreateQuery(context.Background(), "10001", start, end)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.ID == 0 {
		t.Error("expected assigned record ID")
	}
	if rec.DateRangeStart == nil || rec.DateRangeEnd == nil {
		t.Fatal("expected date range on record")
	}

	stored, err := store.GetWeatherRecord(rec.ID)
	if err != nil {
		t.Fatalf("fetching stored record: %v", err)
	}
	if stored.DateRangeStart == nil || stored.DateRangeStart.Format("2006-01-02") != start {
		t.Errorf("stored range start = %v, want %s", stored.DateRangeStart, start)
	}
}

func TestUpdateAndDelete(t *testing.T) {
	provider := &fakeProvider{current: &models.CurrentWeather{LocationName: "New York", Temperature: 20}}
	svc, _ := testService(t, provider, nil)

	if _, err := svc.Current(context.Background(), "10001"); err != nil {
		t.Fatalf("seeding record: %v", err)
	}

	records, _ := svc.List(10)
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}
	id := records[0].ID

	temp := 25.5
	updated, err := svc.Update(id, models.RecordUpdate{Temperature: &temp})
	if err != nil {
		t.Fatalf("updating record: %v", err)
	}
	if updated.Temperature != 25.5 {
		t.Errorf("updated temperature = %v, want 25.5", updated.Temperature)
	}

	if _, err := svc.Update(id, models.RecordUpdate{}); !apperr.IsValidation(err) {
		t.Errorf("expected validation error for empty update, got %v", err)
	}

	if err := svc.Delete(id); err != nil {
		t.Fatalf("deleting record: %v", err)
	}
	if err := svc.Delete(id); !apperr.IsNotFound(err) {
		t.Errorf("expected not-found on second delete, got %v", err)
	}
	if _, err := svc.Update(id, models.RecordUpdate{Temperature: &temp}); !apperr.IsNotFound(err) {
		t.Errorf("expected not-found updating deleted record, got %v", err)
	}
}

func TestMediaUsesResolvedName(t *testing.T) {
	provider := &fakeProvider{current: &models.CurrentWeather{Temperature: 20}}
	media := &fakeMedia{media: &models.LocationMedia{MapsURL: "https://maps.example/New+York"}}
	svc, _ := testService(t, provider, media)

	got, err := svc.Media(context.Background(), "10001")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.MapsURL == "" {
		t.Error("expected media payload")
	}
	if media.name != "New York" {
		t.Errorf("media fetched for %q, want resolved name New York", media.name)
	}
}

func TestMediaUnconfigured(t *testing.T) {
	svc, _ := testService(t, &fakeProvider{}, nil)
	if _, err := svc.Media(context.Background(), "10001"); !apperr.IsNotFound(err) {
		t.Errorf("expected not-found when media unconfigured, got %v", err)
	}
}

func TestUpstreamErrorPropagates(t *testing.T) {
	provider := &fakeProvider{err: apperr.Upstream("OpenWeather", "service unavailable", errors.New("status 500"))}
	svc, store := testService(t, provider, nil)

	_, err := svc.Current(context.Background(), "10001")
	if !apperr.IsUpstream(err) {
		t.Fatalf("expected upstream error, got %v", err)
	}

	records, _ := store.ListWeatherRecords(10)
	if len(records) != 0 {
		t.Errorf("no record should persist on fetch failure, got %d", len(records))
	}
}
