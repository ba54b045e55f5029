package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config is the full runtime configuration, read from the environment.
type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Logging   LoggingConfig
	Kafka     KafkaConfig
	Websocket WebsocketConfig
}

type ServerConfig struct {
	Port            string
	ShutdownTimeout time.Duration
}

type DatabaseConfig struct {
	// Driver is either "postgres" or "sqlite".
	Driver       string
	URL          string
	AutoMigrate  bool
	MaxOpenConns int
}

type LoggingConfig struct {
	Directory string
	Level     string
	Format    string
	// AddSource annotates every record with the calling file and line.
	AddSource bool
}

type KafkaConfig struct {
	Brokers      []string
	GroupID      string
	IngestTopics []string
	EventsTopic  string
}

// Enabled reports whether any broker is configured.
func (k KafkaConfig) Enabled() bool {
	return len(k.Brokers) > 0
}

type WebsocketConfig struct {
	SendBuffer int
}

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Load reads the configuration from environment variables, applying defaults
// for everything that is not set.
func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port: envOrDefault("PORT", "3000"),
		},
		Database: DatabaseConfig{
			Driver: strings.ToLower(envOrDefault("DATABASE_DRIVER", DriverPostgres)),
			URL:    strings.TrimSpace(os.Getenv("DATABASE_URL")),
		},
		Logging: LoggingConfig{
			Directory: envOrDefault("LOG_DIR", "./logs"),
			Level:     envOrDefault("LOG_LEVEL", "info"),
			Format:    envOrDefault("LOG_FORMAT", "text"),
		},
		Kafka: KafkaConfig{
			Brokers:      splitList(firstNonEmptyEnv("KAFKA_BROKERS", "KAFKA_BROKER")),
			GroupID:      envOrDefault("KAFKA_GROUP_ID", "booking-hub"),
			IngestTopics: splitList(os.Getenv("KAFKA_INGEST_TOPICS")),
			EventsTopic:  strings.TrimSpace(os.Getenv("KAFKA_EVENTS_TOPIC")),
		},
	}

	var err error
	if cfg.Database.AutoMigrate, err = boolEnv("DATABASE_AUTO_MIGRATE", false); err != nil {
		return nil, err
	}
	if cfg.Logging.AddSource, err = boolEnv("LOG_SOURCE", false); err != nil {
		return nil, err
	}
	if cfg.Database.MaxOpenConns, err = intEnv("DATABASE_MAX_OPEN_CONNS", 10); err != nil {
		return nil, err
	}
	if cfg.Websocket.SendBuffer, err = intEnv("WS_SEND_BUFFER", 16); err != nil {
		return nil, err
	}
	if cfg.Server.ShutdownTimeout, err = durationEnv("SHUTDOWN_TIMEOUT", 10*time.Second); err != nil {
		return nil, err
	}

	switch cfg.Database.Driver {
	case DriverPostgres, DriverSQLite:
	default:
		return nil, fmt.Errorf("DATABASE_DRIVER: unsupported driver %q", cfg.Database.Driver)
	}
	if cfg.Database.URL == "" {
		if cfg.Database.Driver != DriverSQLite {
			return nil, fmt.Errorf("DATABASE_URL is required for driver %s", cfg.Database.Driver)
		}
		cfg.Database.URL = "file:booking_hub.db"
	}
	if cfg.Websocket.SendBuffer <= 0 {
		return nil, fmt.Errorf("WS_SEND_BUFFER must be positive, got %d", cfg.Websocket.SendBuffer)
	}

	return cfg, nil
}

func envOrDefault(key, fallback string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return fallback
}

func firstNonEmptyEnv(keys ...string) string {
	for _, key := range keys {
		if value := strings.TrimSpace(os.Getenv(key)); value != "" {
			return value
		}
	}
	return ""
}

func splitList(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func boolEnv(key string, fallback bool) (bool, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback, nil
	}
	value, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("%s: %w", key, err)
	}
	return value, nil
}

func intEnv(key string, fallback int) (int, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return value, nil
}

func durationEnv(key string, fallback time.Duration) (time.Duration, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback, nil
	}
	value, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return value, nil
}
