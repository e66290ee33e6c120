// Package scheduler keeps stored weather fresh and prunes stale history.
package scheduler

import (
	"context"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/rs/zerolog"

	"github.com/saiprannav/weatherdesk/internal/storage"
	"github.com/saiprannav/weatherdesk/internal/weather"
)

// refreshLimit caps how many recent locations a refresh cycle re-fetches.
const refreshLimit = 5

// Scheduler periodically re-fetches weather for recently searched
// locations and prunes old history entries.
type Scheduler struct {
	scheduler  *gocron.Scheduler
	service    *weather.Service
	store      *storage.Store
	interval   time.Duration
	historyAge time.Duration
	log        zerolog.Logger
}

// New creates a Scheduler running on UTC time.
func New(service *weather.Service, store *storage.Store, interval, historyAge time.Duration, log zerolog.Logger) *Scheduler {
	return &Scheduler{
		scheduler:  gocron.NewScheduler(time.UTC),
		service:    service,
		store:      store,
		interval:   interval,
		historyAge: historyAge,
		log:        log,
	}
}

// Start schedules the refresh job and starts the underlying scheduler.
func (s *Scheduler) Start() error {
	minutes := int(s.interval.Minutes())
	if minutes <= 0 {
		minutes = 30
	}

	if _, err := s.scheduler.Every(minutes).Minutes().Do(s.run); err != nil {
		return err
	}

	s.scheduler.StartAsync()
	return nil
}

// Stop stops the scheduler and cancels any future jobs.
func (s *Scheduler) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}

func (s *Scheduler) run() {
	s.log.Info().Msg("refresh job started")

	recent, err := s.store.RecentLocations(refreshLimit)
	if err != nil {
		s.log.Error().Err(err).Msg("loading recent locations")
		return
	}

	for _, loc := range recent {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		if _, err := s.service.Current(ctx, loc.Query); err != nil {
			s.log.Error().Err(err).Str("location", loc.Query).Msg("refresh failed")
		}
		cancel()
	}

	if s.historyAge > 0 {
		n, err := s.store.PruneLocationHistory(time.Now().Add(-s.historyAge))
		if err != nil {
			s.log.Error().Err(err).Msg("pruning location history")
		} else if n > 0 {
			s.log.Info().Int64("pruned", n).Msg("pruned stale history entries")
		}
	}

	s.log.Info().Int("locations", len(recent)).Msg("refresh job completed")
}
