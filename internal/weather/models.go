package weather

import (
	"fmt"
	"math"
	"time"

	"github.com/i474232898/sunshine-face/internal/face"
)

// Units selects the temperature scale requested from providers.
type Units string

const (
	UnitsMetric   Units = "metric"
	UnitsImperial Units = "imperial"
)

// Location represents the place the companion reports weather for.
// City/Country must be provided.
type Location struct {
	City    string `json:"city" validate:"required"`
	Country string `json:"country" validate:"required"`
}

// Key returns a canonical string key for logging.
func (l Location) Key() string {
	return l.City + ":" + l.Country
}

// Reading is one provider's view of the current weather.
type Reading struct {
	ProviderName string
	Timestamp    time.Time // always UTC

	Temperature float64
	Units       Units
	// ConditionID is the provider's numeric condition code (200-804 family).
	ConditionID int
	Summary     string
}

// FormatTemperature renders a temperature the way the face shows it: whole
// degrees followed by a degree sign.
func FormatTemperature(temp float64) string {
	v := math.Round(temp)
	if v == 0 {
		v = 0 // avoid "-0°"
	}
	return fmt.Sprintf("%.0f°", v)
}

// Snapshot converts a reading into the data pushed to the watch.
func (r Reading) Snapshot() face.WeatherSnapshot {
	return face.WeatherSnapshot{
		ConditionCode: r.ConditionID,
		Description:   FormatTemperature(r.Temperature),
	}
}
