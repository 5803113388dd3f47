package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics groups the counters exported by the watch face host. A nil
// *Metrics is valid and records nothing.
type Metrics struct {
	Ticks           prometheus.Counter
	Redraws         prometheus.Counter
	FramesRendered  *prometheus.CounterVec
	WeatherUpdates  prometheus.Counter
	PersistFailures prometheus.Counter
	DataEvents      *prometheus.CounterVec
	ProviderFetches *prometheus.CounterVec
}

// New creates the counters and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Ticks: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "sunshine",
			Name:      "ticks_total",
			Help:      "Clock ticks delivered to the watch face.",
		}),
		Redraws: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "sunshine",
			Name:      "redraw_requests_total",
			Help:      "Redraw requests issued by the watch face.",
		}),
		FramesRendered: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "sunshine",
			Name:      "frames_rendered_total",
			Help:      "Frames rendered, by display mode.",
		}, []string{"mode"}),
		WeatherUpdates: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "sunshine",
			Name:      "weather_updates_total",
			Help:      "Weather snapshots applied to the watch face.",
		}),
		PersistFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "sunshine",
			Name:      "persist_failures_total",
			Help:      "Weather snapshots that could not be written to the preference store.",
		}),
		DataEvents: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "sunshine",
			Name:      "data_events_total",
			Help:      "Data-sync events received, by transport and outcome.",
		}, []string{"transport", "outcome"}),
		ProviderFetches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "sunshine",
			Name:      "provider_fetches_total",
			Help:      "Companion weather fetches, by provider and outcome.",
		}, []string{"provider", "outcome"}),
	}
	reg.MustRegister(
		m.Ticks,
		m.Redraws,
		m.FramesRendered,
		m.WeatherUpdates,
		m.PersistFailures,
		m.DataEvents,
		m.ProviderFetches,
	)
	return m
}

func (m *Metrics) Tick() {
	if m != nil {
		m.Ticks.Inc()
	}
}

func (m *Metrics) Redraw() {
	if m != nil {
		m.Redraws.Inc()
	}
}

func (m *Metrics) FrameRendered(ambient bool) {
	if m == nil {
		return
	}
	mode := "interactive"
	if ambient {
		mode = "ambient"
	}
	m.FramesRendered.WithLabelValues(mode).Inc()
}

func (m *Metrics) WeatherUpdate() {
	if m != nil {
		m.WeatherUpdates.Inc()
	}
}

func (m *Metrics) PersistFailure() {
	if m != nil {
		m.PersistFailures.Inc()
	}
}

func (m *Metrics) DataEvent(transport, outcome string) {
	if m != nil {
		m.DataEvents.WithLabelValues(transport, outcome).Inc()
	}
}

func (m *Metrics) ProviderFetch(provider, outcome string) {
	if m != nil {
		m.ProviderFetches.WithLabelValues(provider, outcome).Inc()
	}
}
