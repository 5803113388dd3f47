package datasync

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"github.com/i474232898/sunshine-face/internal/face"
)

type fakeMessage struct {
	topic   string
	payload []byte
}

func (m fakeMessage) Duplicate() bool   { return false }
func (m fakeMessage) Qos() byte         { return 1 }
func (m fakeMessage) Retained() bool    { return true }
func (m fakeMessage) Topic() string     { return m.topic }
func (m fakeMessage) MessageID() uint16 { return 7 }
func (m fakeMessage) Payload() []byte   { return m.payload }
func (m fakeMessage) Ack()              {}

func TestSubscriberHandleMessage(t *testing.T) {
	d, sink := newTestDispatcher()
	sub := NewSubscriber("wear/phone/", 1, d, zerolog.Nop())

	sub.HandleMessage(nil, fakeMessage{
		topic:   "wear/phone/WEATHER_DATA_URI",
		payload: []byte(`{"WEATHER_DATA":"64°","WEATHER_DATA_ID":802}`),
	})
	sub.HandleMessage(nil, fakeMessage{
		topic:   "wear/phone/OTHER",
		payload: []byte(`{"WEATHER_DATA":"nope"}`),
	})
	sub.HandleMessage(nil, fakeMessage{topic: "wear/phone/WEATHER_DATA_URI"})
	sub.HandleMessage(nil, fakeMessage{
		topic:   "wear/phone/WEATHER_DATA_URI",
		payload: []byte(`not json`),
	})

	assert.Equal(t, []face.WeatherSnapshot{{ConditionCode: 802, Description: "64°"}}, sink.got)
}

func TestTopic(t *testing.T) {
	assert.Equal(t, "wear/WEATHER_DATA_URI", Topic("wear/", WeatherPath))
	assert.Equal(t, "wear/WEATHER_DATA_URI", Topic("wear", WeatherPath))
}
