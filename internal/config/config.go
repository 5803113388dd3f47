package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/i474232898/sunshine-face/internal/weather"
)

type AppConfig struct {
	Port string `validate:"required,numeric"`

	LogLevel  string `validate:"omitempty,oneof=trace debug info warn error"`
	LogFormat string `validate:"oneof=json text"`

	// Preference store backing the cached weather snapshot.
	PrefsDriver string `validate:"oneof=memory sqlite"`
	PrefsPath   string `validate:"required_if=PrefsDriver sqlite"`

	// TickInterval is how often the face clock refreshes (>= 1 minute cadence on the watch).
	TickInterval time.Duration `validate:"gt=0"`
	TimeYOffset  float64       `validate:"gte=0"`
	RoundDisplay bool
	IconBaseSize int `validate:"gt=0"`

	MQTTBroker      string
	MQTTClientID    string
	MQTTTopicPrefix string `validate:"required"`
	MQTTQoS         int    `validate:"gte=0,lte=2"`

	// Companion weather source; disabled when no API key is set.
	OpenWeatherAPIKey string
	WeatherUnits      weather.Units `validate:"oneof=metric imperial"`
	// Location is the one place reported to the watch; nil disables the companion.
	Location      *weather.Location `validate:"omitempty"`
	FetchInterval time.Duration     `validate:"gt=0"`
	HTTPTimeout   time.Duration     `validate:"gt=0"`
	// CompanionPublish selects how the companion reaches the face.
	CompanionPublish string `validate:"oneof=local mqtt"`
}

// CompanionEnabled reports whether the built-in weather companion should run.
func (c *AppConfig) CompanionEnabled() bool {
	return c.OpenWeatherAPIKey != "" && c.Location != nil
}

var validate = validator.New()

// Load reads configuration from environment with sensible defaults.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		log.Debug().Err(err).Msg("config: no .env file loaded")
	}
	cfg := &AppConfig{}

	cfg.Port = getenvDefault("PORT", "8080")
	cfg.LogLevel = strings.ToLower(getenvDefault("LOG_LEVEL", "info"))
	cfg.LogFormat = strings.ToLower(getenvDefault("LOG_FORMAT", "json"))

	cfg.PrefsDriver = getenvDefault("PREFS_DRIVER", "sqlite")
	cfg.PrefsPath = getenvDefault("PREFS_PATH", "sunshine-prefs.db")

	var err error
	if cfg.TickInterval, err = getenvDuration("TICK_INTERVAL", "1m"); err != nil {
		return nil, err
	}
	cfg.TimeYOffset = getenvFloat("TIME_Y_OFFSET", 80)
	cfg.RoundDisplay = getenvBool("ROUND_DISPLAY", false)
	cfg.IconBaseSize = getenvInt("ICON_BASE_SIZE", 40)

	cfg.MQTTBroker = os.Getenv("MQTT_BROKER")
	cfg.MQTTClientID = os.Getenv("MQTT_CLIENT_ID")
	cfg.MQTTTopicPrefix = getenvDefault("MQTT_TOPIC_PREFIX", "sunshine/wear")
	cfg.MQTTQoS = getenvInt("MQTT_QOS", 1)

	cfg.OpenWeatherAPIKey = os.Getenv("OPENWEATHER_API_KEY")
	cfg.WeatherUnits = weather.Units(getenvDefault("WEATHER_UNITS", string(weather.UnitsMetric)))
	if cfg.FetchInterval, err = getenvDuration("FETCH_INTERVAL", "15m"); err != nil {
		return nil, err
	}
	if cfg.HTTPTimeout, err = getenvDuration("HTTP_TIMEOUT", "10s"); err != nil {
		return nil, err
	}
	cfg.CompanionPublish = getenvDefault("COMPANION_PUBLISH", "local")

	loc, err := loadLocation()
	if err != nil {
		return nil, err
	}
	cfg.Location = loc

	if cfg.CompanionPublish == "mqtt" && cfg.MQTTBroker == "" {
		return nil, fmt.Errorf("COMPANION_PUBLISH=mqtt requires MQTT_BROKER")
	}
	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// loadLocation reads the companion's location. The watch shows one weather
// snapshot, so exactly one city/country pair is accepted.
func loadLocation() (*weather.Location, error) {
	city := strings.TrimSpace(os.Getenv("WEATHER_LOCATION_CITY"))
	country := strings.TrimSpace(os.Getenv("WEATHER_LOCATION_COUNTRY"))
	if city == "" && country == "" {
		return nil, nil
	}
	if strings.Contains(city, ",") || strings.Contains(country, ",") {
		return nil, fmt.Errorf("WEATHER_LOCATION_CITY/COUNTRY must name a single location")
	}
	if city == "" || country == "" {
		return nil, fmt.Errorf("WEATHER_LOCATION_CITY and WEATHER_LOCATION_COUNTRY must both be set")
	}

	return &weather.Location{City: city, Country: country}, nil
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		n, err := strconv.Atoi(v)
		if err == nil {
			return n
		}
	}
	return def
}

func getenvFloat(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err == nil {
			return f
		}
	}
	return def
}

func getenvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}

func getenvDuration(key, def string) (time.Duration, error) {
	d, err := time.ParseDuration(getenvDefault(key, def))
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}
