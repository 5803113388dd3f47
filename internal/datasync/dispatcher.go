package datasync

import (
	"github.com/rs/zerolog"

	"github.com/i474232898/sunshine-face/internal/face"
	"github.com/i474232898/sunshine-face/internal/metrics"
)

// WeatherSink is the single ingestion point for weather snapshots.
type WeatherSink interface {
	OnWeatherUpdate(snapshot face.WeatherSnapshot)
}

// Dispatcher routes data events to the watch face.
type Dispatcher struct {
	sink    WeatherSink
	log     zerolog.Logger
	metrics *metrics.Metrics
}

// NewDispatcher creates a Dispatcher feeding sink.
func NewDispatcher(sink WeatherSink, logger zerolog.Logger, m *metrics.Metrics) *Dispatcher {
	return &Dispatcher{sink: sink, log: logger, metrics: m}
}

// Outcome of handling a single event.
const (
	OutcomeApplied   = "applied"
	OutcomeIgnored   = "ignored"
	OutcomeMalformed = "malformed"
)

// HandleDataChanged applies every weather item in events, in order, and
// returns how many were applied. Items on other paths, deletions and
// malformed items are skipped.
func (d *Dispatcher) HandleDataChanged(transport string, events []DataEvent) int {
	applied := 0
	for _, ev := range events {
		outcome := d.handle(ev)
		d.metrics.DataEvent(transport, outcome)
		if outcome == OutcomeApplied {
			applied++
		}
	}
	return applied
}

func (d *Dispatcher) handle(ev DataEvent) string {
	if ev.Path != WeatherPath || ev.Type == EventDeleted {
		d.log.Debug().Str("path", ev.Path).Str("type", string(ev.Type)).Msg("datasync: ignoring event")
		return OutcomeIgnored
	}

	snap, err := DecodeWeather(ev.Data)
	if err != nil {
		d.log.Warn().Err(err).Str("id", ev.ID).Msg("datasync: dropping malformed weather item")
		return OutcomeMalformed
	}

	d.sink.OnWeatherUpdate(snap)
	return OutcomeApplied
}
