package main

import (
	"context"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	zlog "github.com/rs/zerolog/log"

	httpapi "github.com/i474232898/sunshine-face/internal/api/http"
	"github.com/i474232898/sunshine-face/internal/config"
	"github.com/i474232898/sunshine-face/internal/datasync"
	"github.com/i474232898/sunshine-face/internal/face"
	"github.com/i474232898/sunshine-face/internal/logging"
	"github.com/i474232898/sunshine-face/internal/metrics"
	"github.com/i474232898/sunshine-face/internal/scheduler"
	"github.com/i474232898/sunshine-face/internal/store"
	"github.com/i474232898/sunshine-face/internal/weather"
	"github.com/i474232898/sunshine-face/internal/weather/providers"
)

func main() {
	// Load configuration.
	cfg, err := config.Load()
	if err != nil {
		zlog.Fatal().Err(err).Msg("failed to load config")
	}

	log, err := logging.Setup(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		zlog.Fatal().Err(err).Msg("failed to set up logging")
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg)

	// Preference store holding the last weather snapshot.
	backend, err := openBackend(cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open preference store")
	}
	defer backend.Close()

	dims := face.DefaultDimensions()
	dims.TimeYOffset = cfg.TimeYOffset

	wf := face.NewRenderer(face.Options{
		Clock:  clockwork.NewRealClock(),
		Store:  store.NewWeatherPrefs(backend),
		Assets: face.StaticAssets{BaseSize: cfg.IconBaseSize},
		Invalidator: face.InvalidatorFunc(func() {
			log.Debug().Msg("face: redraw requested")
		}),
		Dimensions: dims,
		Logger:     log.With().Str("component", "face").Logger(),
		Metrics:    m,
	})
	wf.OnApplyBounds(cfg.RoundDisplay)

	dispatcher := datasync.NewDispatcher(wf, log.With().Str("component", "datasync").Logger(), m)

	// MQTT data-sync channel, when a broker is configured.
	var mqttClient mqtt.Client
	if cfg.MQTTBroker != "" {
		sub := datasync.NewSubscriber(cfg.MQTTTopicPrefix, byte(cfg.MQTTQoS), dispatcher, log)
		mqttClient, err = datasync.Connect(datasync.MQTTSettings{
			Broker:      cfg.MQTTBroker,
			ClientID:    cfg.MQTTClientID,
			TopicPrefix: cfg.MQTTTopicPrefix,
			QoS:         byte(cfg.MQTTQoS),
		}, log, sub.OnConnect)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to mqtt broker")
		}
		defer mqttClient.Disconnect(250)
	}

	// Phone-side companion pushing weather to the face.
	var fetcher scheduler.Fetcher
	if cfg.CompanionEnabled() {
		httpClient := &http.Client{Timeout: cfg.HTTPTimeout}
		provs := []weather.Provider{
			providers.NewOpenWeatherProvider(httpClient, cfg.OpenWeatherAPIKey, cfg.WeatherUnits, log),
		}

		var pub weather.Publisher = datasync.NewLocalPublisher(dispatcher)
		if cfg.CompanionPublish == "mqtt" {
			pub = datasync.NewPublisher(mqttClient, cfg.MQTTTopicPrefix, byte(cfg.MQTTQoS))
		}
		fetcher = weather.NewService(provs, pub, log.With().Str("component", "companion").Logger(), m)
	}

	sched := scheduler.New(scheduler.Config{
		TickInterval:  cfg.TickInterval,
		FetchInterval: cfg.FetchInterval,
		Location:      cfg.Location,
	}, wf, fetcher, log)
	if err := sched.Start(); err != nil {
		log.Fatal().Err(err).Msg("failed to start scheduler")
	}
	defer sched.Stop()

	app := fiber.New(fiber.Config{
		AppName:               "sunshine-face",
		DisableStartupMessage: true,
		ReadTimeout:           10 * time.Second,
		WriteTimeout:          10 * time.Second,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			// Centralized error response
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error":   true,
				"message": err.Error(),
			})
		},
	})

	app.Use(logger.New())
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "ok",
			"service": "sunshine-face",
		})
	})
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))

	httpapi.RegisterRoutes(app, wf, dispatcher)

	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Error().Err(err).Msg("fiber server stopped")
		}
	}()
	log.Info().Str("port", cfg.Port).Bool("mqtt", mqttClient != nil).Bool("companion", fetcher != nil).Msg("sunshine-face started")

	// Wait for termination signal
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("error during shutdown")
	}
}

func openBackend(cfg *config.AppConfig, log zerolog.Logger) (store.Backend, error) {
	if cfg.PrefsDriver == "memory" {
		log.Warn().Msg("using in-memory preference store; weather will not survive restarts")
		return store.NewMemoryStore(), nil
	}
	return store.NewSQLite(cfg.PrefsPath, log)
}
