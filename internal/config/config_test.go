package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/i474232898/sunshine-face/internal/weather"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("WEATHER_LOCATION_CITY", "")
	t.Setenv("WEATHER_LOCATION_COUNTRY", "")
	t.Setenv("OPENWEATHER_API_KEY", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "sqlite", cfg.PrefsDriver)
	assert.Equal(t, time.Minute, cfg.TickInterval)
	assert.Equal(t, 80.0, cfg.TimeYOffset)
	assert.Equal(t, weather.UnitsMetric, cfg.WeatherUnits)
	assert.Equal(t, "local", cfg.CompanionPublish)
	assert.False(t, cfg.CompanionEnabled())
}

func TestLoadLocation(t *testing.T) {
	t.Setenv("WEATHER_LOCATION_CITY", " Paris ")
	t.Setenv("WEATHER_LOCATION_COUNTRY", "FR")
	t.Setenv("OPENWEATHER_API_KEY", "secret")

	cfg, err := Load()
	require.NoError(t, err)
	require.NotNil(t, cfg.Location)
	assert.Equal(t, weather.Location{City: "Paris", Country: "FR"}, *cfg.Location)
	assert.True(t, cfg.CompanionEnabled())
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	cases := map[string][2]string{
		"bad duration":        {"TICK_INTERVAL", "soon"},
		"bad driver":          {"PREFS_DRIVER", "redis"},
		"bad units":           {"WEATHER_UNITS", "kelvin"},
		"bad qos":             {"MQTT_QOS", "3"},
		"mqtt without broker": {"COMPANION_PUBLISH", "mqtt"},
	}
	for name, kv := range cases {
		t.Run(name, func(t *testing.T) {
			t.Setenv("MQTT_BROKER", "")
			t.Setenv(kv[0], kv[1])
			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestLoadRejectsSeveralLocations(t *testing.T) {
	cases := map[string][2]string{
		"comma list":   {"Paris,Berlin", "FR,DE"},
		"mismatched":   {"Paris,Berlin", "FR"},
		"missing city": {"", "FR"},
	}
	for name, loc := range cases {
		t.Run(name, func(t *testing.T) {
			t.Setenv("WEATHER_LOCATION_CITY", loc[0])
			t.Setenv("WEATHER_LOCATION_COUNTRY", loc[1])

			_, err := Load()
			assert.Error(t, err)
		})
	}
}
