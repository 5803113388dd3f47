// Package datasync delivers data items pushed from the paired phone to the
// watch face.
package datasync

import (
	"encoding/json"
	"fmt"
	"math"

	"github.com/google/uuid"

	"github.com/i474232898/sunshine-face/internal/face"
)

// Logical path and data map fields used for weather items.
const (
	WeatherPath    = "/WEATHER_DATA_URI"
	FieldWeather   = "WEATHER_DATA"
	FieldWeatherID = "WEATHER_DATA_ID"
)

// EventType tells whether an item was written or removed.
type EventType string

const (
	EventChanged EventType = "changed"
	EventDeleted EventType = "deleted"
)

// DataEvent is one item from a data-sync batch.
type DataEvent struct {
	ID   string         `json:"id,omitempty"`
	Type EventType      `json:"type" validate:"omitempty,oneof=changed deleted"`
	Path string         `json:"path" validate:"required,startswith=/"`
	Data map[string]any `json:"data"`
}

// NewWeatherEvent encodes a snapshot as a weather data item.
func NewWeatherEvent(snapshot face.WeatherSnapshot) DataEvent {
	return DataEvent{
		ID:   uuid.NewString(),
		Type: EventChanged,
		Path: WeatherPath,
		Data: map[string]any{
			FieldWeather:   snapshot.Description,
			FieldWeatherID: snapshot.ConditionCode,
		},
	}
}

// DecodeWeather extracts a snapshot from a weather item's data map. Missing
// fields fall back to an empty description and code 0.
func DecodeWeather(data map[string]any) (face.WeatherSnapshot, error) {
	var snap face.WeatherSnapshot

	if v, ok := data[FieldWeather]; ok && v != nil {
		s, ok := v.(string)
		if !ok {
			return face.WeatherSnapshot{}, fmt.Errorf("%s: expected string, got %T", FieldWeather, v)
		}
		snap.Description = s
	}

	if v, ok := data[FieldWeatherID]; ok && v != nil {
		code, err := toInt(v)
		if err != nil {
			return face.WeatherSnapshot{}, fmt.Errorf("%s: %w", FieldWeatherID, err)
		}
		snap.ConditionCode = code
	}

	return snap, nil
}

// toInt accepts the numeric forms a decoded payload may carry. Condition
// codes are 32-bit on the wire, so anything outside that range is malformed.
func toInt(v any) (int, error) {
	var i int64
	switch n := v.(type) {
	case int:
		i = int64(n)
	case int32:
		return int(n), nil
	case int64:
		i = n
	case float64:
		if n != math.Trunc(n) || n > math.MaxInt32 || n < math.MinInt32 {
			return 0, fmt.Errorf("expected integer, got %v", n)
		}
		return int(n), nil
	case json.Number:
		var err error
		if i, err = n.Int64(); err != nil {
			return 0, err
		}
	default:
		return 0, fmt.Errorf("expected integer, got %T", v)
	}
	if i > math.MaxInt32 || i < math.MinInt32 {
		return 0, fmt.Errorf("integer %d out of range", i)
	}
	return int(i), nil
}
