package datasync

import (
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/i474232898/sunshine-face/internal/face"
)

type recordingSink struct {
	got []face.WeatherSnapshot
}

func (s *recordingSink) OnWeatherUpdate(snapshot face.WeatherSnapshot) {
	s.got = append(s.got, snapshot)
}

func newTestDispatcher() (*Dispatcher, *recordingSink) {
	sink := &recordingSink{}
	return NewDispatcher(sink, zerolog.Nop(), nil), sink
}

func TestHandleDataChangedFiltersPath(t *testing.T) {
	d, sink := newTestDispatcher()

	applied := d.HandleDataChanged("test", []DataEvent{
		{Type: EventChanged, Path: "/OTHER", Data: map[string]any{FieldWeather: "x"}},
		{Type: EventChanged, Path: WeatherPath, Data: map[string]any{FieldWeather: "72°", FieldWeatherID: 800}},
		{Type: EventDeleted, Path: WeatherPath},
	})

	assert.Equal(t, 1, applied)
	assert.Equal(t, []face.WeatherSnapshot{{ConditionCode: 800, Description: "72°"}}, sink.got)
}

func TestHandleDataChangedKeepsOrder(t *testing.T) {
	d, sink := newTestDispatcher()

	d.HandleDataChanged("test", []DataEvent{
		NewWeatherEvent(face.WeatherSnapshot{ConditionCode: 500, Description: "a"}),
		NewWeatherEvent(face.WeatherSnapshot{ConditionCode: 600, Description: "b"}),
	})

	require.Len(t, sink.got, 2)
	assert.Equal(t, "b", sink.got[1].Description)
}

func TestHandleDataChangedDropsMalformed(t *testing.T) {
	d, sink := newTestDispatcher()

	applied := d.HandleDataChanged("test", []DataEvent{
		{Path: WeatherPath, Data: map[string]any{FieldWeather: 12}},
		{Path: WeatherPath, Data: map[string]any{FieldWeatherID: "eight hundred"}},
		{Path: WeatherPath, Data: map[string]any{FieldWeatherID: 800.5}},
	})

	assert.Zero(t, applied)
	assert.Empty(t, sink.got)
}

func TestDecodeWeatherDefaults(t *testing.T) {
	snap, err := DecodeWeather(map[string]any{})
	require.NoError(t, err)
	assert.Equal(t, face.WeatherSnapshot{}, snap)

	snap, err = DecodeWeather(map[string]any{FieldWeather: nil, FieldWeatherID: json.Number("803")})
	require.NoError(t, err)
	assert.Equal(t, face.WeatherSnapshot{ConditionCode: 803}, snap)
}

func TestDecodeWeatherJSONNumbers(t *testing.T) {
	var data map[string]any
	require.NoError(t, json.Unmarshal([]byte(`{"WEATHER_DATA":"55°","WEATHER_DATA_ID":211}`), &data))

	snap, err := DecodeWeather(data)
	require.NoError(t, err)
	assert.Equal(t, face.WeatherSnapshot{ConditionCode: 211, Description: "55°"}, snap)
}

func TestDecodeWeatherRejectsOutOfRangeCodes(t *testing.T) {
	for _, v := range []any{
		json.Number("9999999999"),
		json.Number("-9999999999"),
		int64(1) << 40,
		float64(1 << 40),
	} {
		_, err := DecodeWeather(map[string]any{FieldWeatherID: v})
		assert.Error(t, err, "%v", v)
	}

	snap, err := DecodeWeather(map[string]any{FieldWeatherID: json.Number("2147483647")})
	require.NoError(t, err)
	assert.Equal(t, 2147483647, snap.ConditionCode)
}

func TestHandleDataChangedDropsOverflowingCode(t *testing.T) {
	d, sink := newTestDispatcher()

	applied := d.HandleDataChanged("test", []DataEvent{
		{Path: WeatherPath, Data: map[string]any{FieldWeather: "9°", FieldWeatherID: json.Number("4294968096")}},
		{Path: WeatherPath, Data: map[string]any{FieldWeather: "10°", FieldWeatherID: json.Number("800")}},
	})

	assert.Equal(t, 1, applied)
	assert.Equal(t, []face.WeatherSnapshot{{ConditionCode: 800, Description: "10°"}}, sink.got)
}

func TestLocalPublisher(t *testing.T) {
	d, sink := newTestDispatcher()

	require.NoError(t, NewLocalPublisher(d).PublishWeather(face.WeatherSnapshot{ConditionCode: 781, Description: "80°"}))

	assert.Equal(t, []face.WeatherSnapshot{{ConditionCode: 781, Description: "80°"}}, sink.got)
}
