package datasync

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/i474232898/sunshine-face/internal/face"
)

const transportMQTT = "mqtt"

// MQTTSettings describe how to reach the broker carrying data items.
type MQTTSettings struct {
	Broker         string
	ClientID       string
	Username       string
	Password       string
	TopicPrefix    string
	QoS            byte
	ConnectTimeout time.Duration
}

// Connect builds a client and establishes the initial connection.
// onConnect runs on every (re)connect, which is where subscriptions belong.
func Connect(settings MQTTSettings, logger zerolog.Logger, onConnect mqtt.OnConnectHandler) (mqtt.Client, error) {
	if settings.Broker == "" {
		return nil, fmt.Errorf("mqtt: broker address is required")
	}

	opts := mqtt.NewClientOptions()
	opts.AddBroker(settings.Broker)
	clientID := settings.ClientID
	if clientID == "" {
		clientID = "sunshine-face-" + uuid.NewString()[:8]
	}
	opts.SetClientID(clientID)
	if settings.Username != "" {
		opts.SetUsername(settings.Username)
		opts.SetPassword(settings.Password)
	}
	opts.SetAutoReconnect(true)
	if onConnect != nil {
		opts.OnConnect = onConnect
	}
	opts.SetConnectionLostHandler(func(_ mqtt.Client, err error) {
		logger.Warn().Err(err).Msg("mqtt: connection lost")
	})
	opts.SetReconnectingHandler(func(_ mqtt.Client, _ *mqtt.ClientOptions) {
		logger.Info().Msg("mqtt: reconnecting")
	})

	timeout := settings.ConnectTimeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	client := mqtt.NewClient(opts)
	token := client.Connect()
	if !token.WaitTimeout(timeout) {
		return nil, fmt.Errorf("mqtt: connect timeout")
	}
	if err := token.Error(); err != nil {
		return nil, fmt.Errorf("mqtt: connect failed: %w", err)
	}
	return client, nil
}

// Topic maps a data item path onto the broker's topic space.
func Topic(prefix, path string) string {
	return strings.TrimSuffix(prefix, "/") + path
}

// Subscriber feeds data items received over MQTT into a Dispatcher.
type Subscriber struct {
	prefix     string
	qos        byte
	dispatcher *Dispatcher
	log        zerolog.Logger
}

// NewSubscriber creates a Subscriber for every path below prefix.
func NewSubscriber(prefix string, qos byte, dispatcher *Dispatcher, logger zerolog.Logger) *Subscriber {
	return &Subscriber{
		prefix:     strings.TrimSuffix(prefix, "/"),
		qos:        qos,
		dispatcher: dispatcher,
		log:        logger,
	}
}

// OnConnect subscribes; pass it to Connect so subscriptions survive reconnects.
func (s *Subscriber) OnConnect(client mqtt.Client) {
	filter := s.prefix + "/#"
	token := client.Subscribe(filter, s.qos, s.HandleMessage)
	if token.Wait() && token.Error() != nil {
		s.log.Error().Err(token.Error()).Str("topic", filter).Msg("mqtt: subscribe failed")
		return
	}
	s.log.Info().Str("topic", filter).Msg("mqtt: subscribed")
}

// HandleMessage turns one MQTT message into a data event. An empty payload
// (a cleared retained message) is treated as a deletion.
func (s *Subscriber) HandleMessage(_ mqtt.Client, msg mqtt.Message) {
	path := strings.TrimPrefix(msg.Topic(), s.prefix)
	ev := DataEvent{
		ID:   strconv.Itoa(int(msg.MessageID())),
		Type: EventChanged,
		Path: path,
	}

	if len(msg.Payload()) == 0 {
		ev.Type = EventDeleted
	} else {
		dec := json.NewDecoder(bytes.NewReader(msg.Payload()))
		dec.UseNumber()
		if err := dec.Decode(&ev.Data); err != nil {
			s.log.Warn().Err(err).Str("topic", msg.Topic()).Msg("mqtt: invalid data map payload")
			s.dispatcher.metrics.DataEvent(transportMQTT, OutcomeMalformed)
			return
		}
	}

	s.dispatcher.HandleDataChanged(transportMQTT, []DataEvent{ev})
}

// Publisher pushes weather snapshots to the broker as retained data items.
type Publisher struct {
	client mqtt.Client
	prefix string
	qos    byte
}

// NewPublisher creates a Publisher on an already connected client.
func NewPublisher(client mqtt.Client, prefix string, qos byte) *Publisher {
	return &Publisher{client: client, prefix: prefix, qos: qos}
}

// PublishWeather sends snapshot on the weather path.
func (p *Publisher) PublishWeather(snapshot face.WeatherSnapshot) error {
	payload, err := json.Marshal(NewWeatherEvent(snapshot).Data)
	if err != nil {
		return fmt.Errorf("mqtt: encode weather item: %w", err)
	}

	topic := Topic(p.prefix, WeatherPath)
	token := p.client.Publish(topic, p.qos, true, payload)
	if !token.WaitTimeout(10 * time.Second) {
		return fmt.Errorf("mqtt: publish to %s timed out", topic)
	}
	if err := token.Error(); err != nil {
		return fmt.Errorf("mqtt: publish to %s: %w", topic, err)
	}
	return nil
}

// LocalPublisher delivers weather items straight to a Dispatcher, for a
// companion running in the same process as the face.
type LocalPublisher struct {
	dispatcher *Dispatcher
}

func NewLocalPublisher(dispatcher *Dispatcher) *LocalPublisher {
	return &LocalPublisher{dispatcher: dispatcher}
}

func (p *LocalPublisher) PublishWeather(snapshot face.WeatherSnapshot) error {
	p.dispatcher.HandleDataChanged("local", []DataEvent{NewWeatherEvent(snapshot)})
	return nil
}
