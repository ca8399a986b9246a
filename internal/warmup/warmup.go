// Package warmup pre-resolves temperatures for a configured set of cities so
// the first user requests after startup hit a warm lookup cache. Cache
// entries live for the process lifetime, so only the first run fetches from
// the providers; later runs only re-resolve cities that were evicted under
// capacity pressure.
package warmup

import (
	"context"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/rs/zerolog"

	"github.com/predictive-shelf/api/internal/forecast"
)

// Scheduler keeps the temperature cache populated for a fixed set of cities.
type Scheduler struct {
	scheduler *gocron.Scheduler
	engine    *forecast.Engine
	cities    []string
	interval  time.Duration
	log       zerolog.Logger
}

// New creates a warm-up scheduler. Cities may be empty; Start is then a no-op.
func New(cities []string, interval time.Duration, engine *forecast.Engine, log zerolog.Logger) *Scheduler {
	return &Scheduler{
		scheduler: gocron.NewScheduler(time.UTC),
		engine:    engine,
		cities:    cities,
		interval:  interval,
		log:       log.With().Str("module", "warmup").Logger(),
	}
}

// Start schedules the periodic warm-up job and runs it once immediately.
func (s *Scheduler) Start() error {
	if len(s.cities) == 0 {
		s.log.Info().Msg("no warmup cities configured; skipping")
		return nil
	}

	_, err := s.scheduler.Every(s.interval).StartImmediately().Do(func() {
		var wg sync.WaitGroup
		for _, city := range s.cities {
			city := city
			wg.Add(1)
			go func() {
				defer wg.Done()

				ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
				defer cancel()

				if _, err := s.engine.ResolveTemperature(ctx, city); err != nil {
					s.log.Warn().Err(err).Str("city", city).Msg("warmup fetch failed")
				}
			}()
		}
		wg.Wait()
	})
	if err != nil {
		return err
	}

	s.scheduler.StartAsync()
	return nil
}

// Stop stops the scheduler and cancels future jobs.
func (s *Scheduler) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}
