package weather

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/i474232898/sunshine-face/internal/metrics"
)

// ErrNoProviders is returned when the service has nothing to fetch from.
var ErrNoProviders = errors.New("no weather providers configured")

// Service is the phone-side companion: it fetches the current weather and
// pushes it to the watch.
type Service struct {
	providers []Provider
	publisher Publisher
	log       zerolog.Logger
	metrics   *metrics.Metrics
}

// NewService creates a new Service.
func NewService(providers []Provider, publisher Publisher, logger zerolog.Logger, m *metrics.Metrics) *Service {
	return &Service{
		providers: providers,
		publisher: publisher,
		log:       logger,
		metrics:   m,
	}
}

// FetchAndPush asks providers in order until one succeeds and publishes the
// result. If every provider fails the watch keeps its last snapshot.
func (s *Service) FetchAndPush(ctx context.Context, loc Location) error {
	if len(s.providers) == 0 {
		return ErrNoProviders
	}

	var errs []error
	for _, p := range s.providers {
		r, err := p.Fetch(ctx, loc)
		if err != nil {
			s.metrics.ProviderFetch(p.Name(), "error")
			s.log.Warn().Err(err).Str("provider", p.Name()).Str("location", loc.Key()).Msg("weather: provider fetch failed")
			errs = append(errs, fmt.Errorf("%s: %w", p.Name(), err))
			continue
		}
		s.metrics.ProviderFetch(p.Name(), "ok")

		snap := r.Snapshot()
		if err := s.publisher.PublishWeather(snap); err != nil {
			return fmt.Errorf("publish weather for %s: %w", loc.Key(), err)
		}

		s.log.Info().
			Str("provider", p.Name()).
			Str("location", loc.Key()).
			Int("condition_id", snap.ConditionCode).
			Str("description", snap.Description).
			Msg("weather: pushed snapshot")
		return nil
	}

	return fmt.Errorf("no provider succeeded for %s: %w", loc.Key(), errors.Join(errs...))
}
