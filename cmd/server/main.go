package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"bookingHub/internal/config"
	realtimehandler "bookingHub/internal/modules/realtime/application/handler"
	realtimeusecase "bookingHub/internal/modules/realtime/application/usecase"
	realtimeinfra "bookingHub/internal/modules/realtime/infrastructure"
	realtimetransport "bookingHub/internal/modules/realtime/interface"
	"bookingHub/internal/modules/reservations/application/handler"
	"bookingHub/internal/modules/reservations/application/port"
	"bookingHub/internal/modules/reservations/application/usecase"
	"bookingHub/internal/modules/reservations/infrastructure"
	transport "bookingHub/internal/modules/reservations/interface"
	"bookingHub/internal/platform/broker"
	"bookingHub/internal/platform/database"
	"bookingHub/internal/shared/httputil"
	"bookingHub/internal/shared/logging"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "booking hub: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Attempt to load variables from .env so local runs honour configuration tweaks.
	if err := godotenv.Overload(); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			fmt.Fprintf(os.Stderr, ".env load warning: %v\n", err)
		}
	}
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config load: %w", err)
	}

	logFile, logger, err := logging.Setup(logging.Config{
		Directory: cfg.Logging.Directory,
		Level:     cfg.Logging.Level,
		Format:    cfg.Logging.Format,
		AddSource: cfg.Logging.AddSource,
	})
	if err != nil {
		return fmt.Errorf("logging setup: %w", err)
	}
	defer logFile.Close()
	slog.SetDefault(logger)
	slog.Info("logging initialized", slog.String("directory", cfg.Logging.Directory), slog.String("level", cfg.Logging.Level), slog.String("format", cfg.Logging.Format))
	slog.Info("kafka config resolved",
		slog.Any("brokers", cfg.Kafka.Brokers),
		slog.String("group", cfg.Kafka.GroupID),
		slog.Any("ingestTopics", cfg.Kafka.IngestTopics),
		slog.String("eventsTopic", cfg.Kafka.EventsTopic),
	)

	db, err := database.Open(cfg.Database)
	if err != nil {
		slog.Error("database open failed", slog.String("driver", cfg.Database.Driver), slog.Any("error", err))
		return err
	}
	defer database.Close(db)
	if cfg.Database.AutoMigrate {
		if err := database.Migrate(db, infrastructure.Models()...); err != nil {
			slog.Error("database migration failed", slog.Any("error", err))
			return err
		}
		slog.Info("database schema migrated", slog.String("driver", cfg.Database.Driver))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	hub := realtimeinfra.NewHub()
	defer hub.Close()
	broadcastUC := realtimeusecase.NewBroadcastUseCase(hub)

	// With an events topic every instance feeds its hub from Kafka, so
	// websocket clients see changes accepted by any instance. Without one the
	// hub is fed directly.
	var publishers []port.EventPublisher
	var consumers []*sync.WaitGroup
	if cfg.Kafka.Enabled() && cfg.Kafka.EventsTopic != "" {
		producer := broker.NewKafkaProducer(cfg.Kafka.Brokers, cfg.Kafka.EventsTopic)
		defer producer.Close()
		publishers = append(publishers, infrastructure.NewKafkaEventPublisher(producer))

		relay := broker.NewHandlerRegistry()
		relay.Register(realtimehandler.NewEventRelayHandler(cfg.Kafka.EventsTopic, broadcastUC))
		feedGroup := cfg.Kafka.GroupID + "-feed-" + uuid.NewString()
		consumers = append(consumers, broker.StartKafkaConsumers(ctx, relay, cfg.Kafka.Brokers, feedGroup))
	} else {
		publishers = append(publishers, broadcastUC)
	}
	events := usecase.NewEventFanOut(publishers...)

	store := infrastructure.NewStore(db)
	upsertUC := usecase.NewUpsertReservationUseCase(store, store)
	submitUC := usecase.NewSubmitBookingUseCase(store, store, upsertUC, events)
	findUC := usecase.NewFindReservationUseCase(store)

	ingest := broker.NewHandlerRegistry()
	for _, topic := range cfg.Kafka.IngestTopics {
		ingest.Register(handler.NewBookingIngestHandler(topic, submitUC, events))
	}
	consumers = append(consumers, broker.StartKafkaConsumers(ctx, ingest, cfg.Kafka.Brokers, cfg.Kafka.GroupID))

	// Echo server
	e := echo.New()
	e.HideBanner = true
	e.Logger.SetOutput(log.Writer())
	e.Use(middleware.RequestID())
	e.Use(middleware.Recover())
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			attrs := []slog.Attr{
				slog.String("method", v.Method),
				slog.String("uri", v.URI),
				slog.Int("status", v.Status),
				slog.Duration("latency", v.Latency),
				slog.String("reqID", v.RequestID),
			}
			if v.Error != nil {
				attrs = append(attrs, slog.Any("error", v.Error))
			}
			slog.LogAttrs(c.Request().Context(), slog.LevelInfo, "http request", attrs...)
			return nil
		},
	}))

	e.GET("/healthz", httputil.Healthz)
	transport.NewReservationHandler(submitUC, findUC).Register(e.Group("/api/v1"))
	e.GET("/ws/reservations", realtimetransport.NewReservationFeedHandler(hub, cfg.Websocket.SendBuffer))

	serveErr := make(chan error, 1)
	go func() {
		if err := e.Start(":" + cfg.Server.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("http server stopped", slog.Any("error", err))
			serveErr <- err
		}
	}()

	// Wait for a stop signal
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	var runErr error
	select {
	case <-stop:
	case runErr = <-serveErr:
	}
	slog.Info("shutting down", slog.Duration("timeout", cfg.Server.ShutdownTimeout))

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		slog.Warn("http shutdown incomplete", slog.Any("error", err))
	}
	cancel()
	for _, wg := range consumers {
		wg.Wait()
	}
	slog.Info("shutdown complete")
	return runErr
}
