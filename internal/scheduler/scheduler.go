package scheduler

import (
	"context"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"

	"github.com/i474232898/sunshine-face/internal/weather"
)

// Ticker receives clock ticks.
type Ticker interface {
	OnTick()
}

// Fetcher fetches weather for a location and pushes it to the watch.
type Fetcher interface {
	FetchAndPush(ctx context.Context, loc weather.Location) error
}

// Config holds the job cadences.
type Config struct {
	TickInterval  time.Duration
	FetchInterval time.Duration
	FetchTimeout  time.Duration
	// Location is the one place the companion reports; nil disables fetching.
	Location *weather.Location
}

// Scheduler drives the face clock and the periodic companion weather fetch.
type Scheduler struct {
	scheduler *gocron.Scheduler
	clock     clockwork.Clock
	face      Ticker
	fetcher   Fetcher
	cfg       Config
	log       zerolog.Logger
}

// New creates a new Scheduler. fetcher may be nil to run only the clock.
func New(cfg Config, face Ticker, fetcher Fetcher, logger zerolog.Logger) *Scheduler {
	return NewWithClock(cfg, face, fetcher, logger, clockwork.NewRealClock())
}

// NewWithClock is New with an explicit clock for tick alignment.
func NewWithClock(cfg Config, face Ticker, fetcher Fetcher, logger zerolog.Logger, clock clockwork.Clock) *Scheduler {
	if cfg.TickInterval <= 0 {
		cfg.TickInterval = time.Minute
	}
	if cfg.FetchInterval <= 0 {
		cfg.FetchInterval = 15 * time.Minute
	}
	if cfg.FetchTimeout <= 0 {
		cfg.FetchTimeout = 30 * time.Second
	}
	s := gocron.NewScheduler(time.UTC)
	s.SingletonModeAll()
	return &Scheduler{
		scheduler: s,
		clock:     clock,
		face:      face,
		fetcher:   fetcher,
		cfg:       cfg,
		log:       logger,
	}
}

// NextTick returns the first instant after now that falls on a multiple of
// interval, so a one-minute tick lands on minute boundaries.
func NextTick(now time.Time, interval time.Duration) time.Time {
	next := now.Truncate(interval)
	if !next.After(now) {
		next = next.Add(interval)
	}
	return next
}

// Start ticks the face once, then schedules the tick job on interval
// boundaries and the fetch job, which runs immediately.
func (s *Scheduler) Start() error {
	s.face.OnTick()

	firstTick := NextTick(s.clock.Now(), s.cfg.TickInterval)
	if _, err := s.scheduler.Every(s.cfg.TickInterval).StartAt(firstTick).Tag("tick").Do(s.face.OnTick); err != nil {
		return err
	}
	s.log.Debug().Time("first_tick", firstTick).Msg("scheduler: clock tick aligned")

	if s.fetcher == nil || s.cfg.Location == nil {
		s.log.Info().Msg("scheduler: no weather location configured; companion fetch disabled")
	} else {
		if _, err := s.scheduler.Every(s.cfg.FetchInterval).Tag("fetch").Do(s.fetch); err != nil {
			return err
		}
	}

	s.scheduler.StartAsync()
	return nil
}

func (s *Scheduler) fetch() {
	loc := *s.cfg.Location

	ctx, cancel := context.WithTimeout(context.Background(), s.cfg.FetchTimeout)
	defer cancel()

	if err := s.fetcher.FetchAndPush(ctx, loc); err != nil {
		s.log.Warn().Err(err).Str("location", loc.Key()).Msg("scheduler: fetch failed")
	}
}

// Stop stops the scheduler and cancels any future jobs.
func (s *Scheduler) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}
