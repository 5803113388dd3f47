package face

// Engine is the set of callbacks a host drives the watch face through.
// Hosts must not assume any particular goroutine; implementations serialize
// internally.
type Engine interface {
	OnTick()
	OnAmbientModeChanged(ambient bool)
	OnApplyBounds(round bool) LayoutMetrics
	OnWeatherUpdate(snapshot WeatherSnapshot)
	Render(bounds Bounds) Frame
}

// Invalidator receives redraw requests.
type Invalidator interface {
	Invalidate()
}

// InvalidatorFunc adapts a plain function to Invalidator.
type InvalidatorFunc func()

func (f InvalidatorFunc) Invalidate() { f() }

// SnapshotStore persists the last received weather snapshot.
type SnapshotStore interface {
	LoadWeather() (WeatherSnapshot, error)
	SaveWeather(snapshot WeatherSnapshot) error
}

// WeatherSnapshot is the last known weather pushed from the phone.
type WeatherSnapshot struct {
	ConditionCode int    `json:"conditionCode"`
	Description   string `json:"description"`
}

var _ Engine = (*Renderer)(nil)
