package store

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/i474232898/sunshine-face/internal/face"
)

func TestWeatherPrefsDefaults(t *testing.T) {
	prefs := NewWeatherPrefs(NewMemoryStore())

	snap, err := prefs.LoadWeather()
	require.NoError(t, err)
	assert.Equal(t, face.WeatherSnapshot{Description: "", ConditionCode: 0}, snap)
}

func TestWeatherPrefsRoundTripMemory(t *testing.T) {
	mem := NewMemoryStore()
	prefs := NewWeatherPrefs(mem)
	want := face.WeatherSnapshot{ConditionCode: 502, Description: "18°"}

	require.NoError(t, prefs.SaveWeather(want))
	require.NoError(t, prefs.SaveWeather(want))

	got, err := prefs.LoadWeather()
	require.NoError(t, err)
	assert.Equal(t, want, got)
	assert.Equal(t, 2, mem.Len())
}

func TestWeatherPrefsBadCode(t *testing.T) {
	mem := NewMemoryStore()
	require.NoError(t, mem.Set(map[string]string{KeyWeatherID: "not-a-number"}))

	_, err := NewWeatherPrefs(mem).LoadWeather()
	assert.Error(t, err)
}

type failingBackend struct{ MemoryStore }

func (*failingBackend) Get(string) (string, error) { return "", errors.New("io error") }

func TestWeatherPrefsBackendError(t *testing.T) {
	_, err := NewWeatherPrefs(&failingBackend{}).LoadWeather()
	require.Error(t, err)
	assert.Contains(t, err.Error(), KeyWeather)
}

func TestMemoryStoreNotFound(t *testing.T) {
	_, err := NewMemoryStore().Get("missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSQLiteStorePersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.db")

	db, err := NewSQLite(path, zerolog.Nop())
	require.NoError(t, err)

	_, err = db.Get(KeyWeather)
	assert.ErrorIs(t, err, ErrNotFound)

	prefs := NewWeatherPrefs(db)
	require.NoError(t, prefs.SaveWeather(face.WeatherSnapshot{ConditionCode: 800, Description: "72°"}))
	require.NoError(t, prefs.SaveWeather(face.WeatherSnapshot{ConditionCode: 801, Description: "70°"}))
	require.NoError(t, db.Close())

	reopened, err := NewSQLite(path, zerolog.Nop())
	require.NoError(t, err)
	defer reopened.Close()

	got, err := NewWeatherPrefs(reopened).LoadWeather()
	require.NoError(t, err)
	assert.Equal(t, face.WeatherSnapshot{ConditionCode: 801, Description: "70°"}, got)
}
