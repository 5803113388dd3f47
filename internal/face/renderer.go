package face

import (
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"

	"github.com/i474232898/sunshine-face/internal/metrics"
)

const (
	timeLayout = "03:04"
	dateLayout = "Mon, Jan 02 2006"

	// padding separates the date from the lines above and below it.
	padding = 16
)

// RenderState is everything a frame is computed from.
type RenderState struct {
	Time     string          `json:"time"`
	Date     string          `json:"date"`
	Snapshot WeatherSnapshot `json:"snapshot"`
	Icon     IconID          `json:"icon"`
	Ambient  bool            `json:"ambient"`
	Layout   LayoutMetrics   `json:"layout"`
}

// Options configures a Renderer. Store, Assets and Invalidator may be nil.
type Options struct {
	Clock       clockwork.Clock
	Store       SnapshotStore
	Assets      AssetResolver
	Invalidator Invalidator
	Dimensions  Dimensions
	Logger      zerolog.Logger
	Metrics     *metrics.Metrics
}

// Renderer is the watch face. All callbacks may be invoked from any
// goroutine; state changes are serialized so a frame never pairs one
// update's text with another update's icon.
type Renderer struct {
	clock       clockwork.Clock
	store       SnapshotStore
	assets      AssetResolver
	invalidator Invalidator
	dims        Dimensions
	log         zerolog.Logger
	metrics     *metrics.Metrics

	mu       sync.Mutex
	now      time.Time
	ambient  bool
	layout   LayoutMetrics
	snapshot WeatherSnapshot
	icon     IconID
	asset    Asset
	hasAsset bool
}

// NewRenderer builds a Renderer and restores the last persisted snapshot.
func NewRenderer(opts Options) *Renderer {
	if opts.Clock == nil {
		opts.Clock = clockwork.NewRealClock()
	}
	if opts.Dimensions == (Dimensions{}) {
		opts.Dimensions = DefaultDimensions()
	}

	r := &Renderer{
		clock:       opts.Clock,
		store:       opts.Store,
		assets:      opts.Assets,
		invalidator: opts.Invalidator,
		dims:        opts.Dimensions,
		log:         opts.Logger,
		metrics:     opts.Metrics,
	}
	r.now = r.clock.Now()
	r.layout = r.dims.For(false)

	snapshot := WeatherSnapshot{}
	if r.store != nil {
		loaded, err := r.store.LoadWeather()
		if err != nil {
			r.log.Warn().Err(err).Msg("face: could not restore weather, using defaults")
		} else {
			snapshot = loaded
		}
	}
	r.setSnapshot(snapshot)
	return r
}

// OnTick refreshes the time and date and requests a redraw.
func (r *Renderer) OnTick() {
	r.mu.Lock()
	r.now = r.clock.Now()
	r.mu.Unlock()

	r.metrics.Tick()
	r.invalidate()
}

// OnAmbientModeChanged switches between interactive and ambient mode.
// Repeating the current mode is a no-op.
func (r *Renderer) OnAmbientModeChanged(ambient bool) {
	r.mu.Lock()
	changed := r.ambient != ambient
	r.ambient = ambient
	r.mu.Unlock()

	if changed {
		r.log.Debug().Bool("ambient", ambient).Msg("face: ambient mode changed")
		r.invalidate()
	}
}

// OnApplyBounds selects the layout for the display shape.
func (r *Renderer) OnApplyBounds(round bool) LayoutMetrics {
	m := r.dims.For(round)

	r.mu.Lock()
	r.layout = m
	r.mu.Unlock()

	r.invalidate()
	return m
}

// OnWeatherUpdate replaces the weather snapshot, resolves its icon and
// persists it. Persistence failures are logged; the face keeps the update.
func (r *Renderer) OnWeatherUpdate(snapshot WeatherSnapshot) {
	r.mu.Lock()
	r.setSnapshot(snapshot)
	if r.store != nil {
		if err := r.store.SaveWeather(snapshot); err != nil {
			r.metrics.PersistFailure()
			r.log.Error().Err(err).Int("condition_code", snapshot.ConditionCode).Msg("face: persist weather failed")
		}
	}
	r.mu.Unlock()

	r.log.Info().
		Int("condition_code", snapshot.ConditionCode).
		Str("description", snapshot.Description).
		Msg("face: weather updated")
	r.metrics.WeatherUpdate()
	r.invalidate()
}

// setSnapshot must be called with mu held, or before the renderer is shared.
func (r *Renderer) setSnapshot(snapshot WeatherSnapshot) {
	r.snapshot = snapshot
	r.icon = Classify(snapshot.ConditionCode)
	r.asset, r.hasAsset = Asset{}, false
	if r.icon != IconNone && r.assets != nil {
		r.asset, r.hasAsset = r.assets.Resolve(r.icon)
	}
}

// State returns a copy of the current render state.
func (r *Renderer) State() RenderState {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.stateLocked()
}

func (r *Renderer) stateLocked() RenderState {
	return RenderState{
		Time:     r.now.Format(timeLayout),
		Date:     r.now.Format(dateLayout),
		Snapshot: r.snapshot,
		Icon:     r.icon,
		Ambient:  r.ambient,
		Layout:   r.layout,
	}
}

// Render produces the drawing instructions for the current state.
func (r *Renderer) Render(bounds Bounds) Frame {
	r.mu.Lock()
	state := r.stateLocked()
	asset, hasAsset := r.asset, r.hasAsset
	r.mu.Unlock()

	r.metrics.FrameRendered(state.Ambient)
	return compose(bounds, state, asset, hasAsset)
}

func compose(bounds Bounds, state RenderState, asset Asset, hasAsset bool) Frame {
	lay := state.Layout
	cx := float64(bounds.Width) / 2

	frame := Frame{
		Bounds:     bounds,
		Ambient:    state.Ambient,
		Background: ColorBackground,
	}
	color, antiAlias := ColorWhite, true
	if state.Ambient {
		frame.Background = ColorBlack
		color, antiAlias = ColorAmbientText, false
	}

	dateY := lay.TimeYOffset + lay.DateTextSize + padding
	frame.Texts = append(frame.Texts,
		TextOp{
			Role: RoleTime, Text: state.Time,
			X: cx, Y: lay.TimeYOffset, Size: lay.TimeTextSize,
			Bold: true, Color: color, Align: AlignCenter, AntiAlias: antiAlias,
		},
		TextOp{
			Role: RoleDate, Text: state.Date,
			X: cx, Y: dateY, Size: lay.DateTextSize,
			Color: color, Align: AlignCenter, AntiAlias: antiAlias,
		},
	)

	if state.Ambient {
		return frame
	}

	iconHeight := 0.0
	if state.Icon != IconNone && hasAsset {
		frame.Icon = &IconOp{
			ID:    state.Icon,
			Asset: asset,
			X:     cx - float64(asset.Width),
			Y:     dateY + padding,
		}
		iconHeight = float64(asset.Height)
	}

	frame.Texts = append(frame.Texts, TextOp{
		Role: RoleTemperature, Text: state.Snapshot.Description,
		X: cx, Y: dateY + lay.TemperatureTextSize + iconHeight/2, Size: lay.TemperatureTextSize,
		Bold: true, Color: color, Align: AlignLeft, AntiAlias: antiAlias,
	})
	return frame
}

func (r *Renderer) invalidate() {
	r.metrics.Redraw()
	if r.invalidator != nil {
		r.invalidator.Invalidate()
	}
}
