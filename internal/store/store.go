package store

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/i474232898/sunshine-face/internal/face"
)

var (
	// ErrNotFound is returned when a key has never been written.
	ErrNotFound = errors.New("preference not found")
)

// Preference keys for the cached weather snapshot.
const (
	KeyWeather   = "WEATHER_KEY"
	KeyWeatherID = "WEATHER_KEY_ID"
)

// Backend is a durable string key/value map.
type Backend interface {
	Get(key string) (string, error)
	// Set writes all values together.
	Set(values map[string]string) error
	Close() error
}

// WeatherPrefs stores the watch face's weather snapshot in a Backend.
type WeatherPrefs struct {
	backend Backend
}

// NewWeatherPrefs wraps backend.
func NewWeatherPrefs(backend Backend) *WeatherPrefs {
	return &WeatherPrefs{backend: backend}
}

// LoadWeather reads the snapshot; missing keys yield an empty description
// and condition code 0.
func (p *WeatherPrefs) LoadWeather() (face.WeatherSnapshot, error) {
	var snap face.WeatherSnapshot

	desc, err := p.backend.Get(KeyWeather)
	switch {
	case errors.Is(err, ErrNotFound):
	case err != nil:
		return face.WeatherSnapshot{}, fmt.Errorf("read %s: %w", KeyWeather, err)
	default:
		snap.Description = desc
	}

	raw, err := p.backend.Get(KeyWeatherID)
	switch {
	case errors.Is(err, ErrNotFound):
	case err != nil:
		return face.WeatherSnapshot{}, fmt.Errorf("read %s: %w", KeyWeatherID, err)
	default:
		code, err := strconv.Atoi(raw)
		if err != nil {
			return face.WeatherSnapshot{}, fmt.Errorf("parse %s: %w", KeyWeatherID, err)
		}
		snap.ConditionCode = code
	}

	return snap, nil
}

// SaveWeather writes both keys in one batch.
func (p *WeatherPrefs) SaveWeather(snapshot face.WeatherSnapshot) error {
	return p.backend.Set(map[string]string{
		KeyWeather:   snapshot.Description,
		KeyWeatherID: strconv.Itoa(snapshot.ConditionCode),
	})
}

var _ face.SnapshotStore = (*WeatherPrefs)(nil)
