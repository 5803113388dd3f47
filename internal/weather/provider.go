package weather

import (
	"context"

	"github.com/i474232898/sunshine-face/internal/face"
)

// Provider abstracts a weather data source.
type Provider interface {
	Name() string
	Fetch(ctx context.Context, loc Location) (Reading, error)
}

// Publisher pushes a snapshot to the watch over the data-sync channel.
type Publisher interface {
	PublishWeather(snapshot face.WeatherSnapshot) error
}
