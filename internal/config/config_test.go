package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var configKeys = []string{
	"PORT", "DATABASE_DRIVER", "DATABASE_URL", "DATABASE_AUTO_MIGRATE", "DATABASE_MAX_OPEN_CONNS",
	"LOG_DIR", "LOG_LEVEL", "LOG_FORMAT", "LOG_SOURCE", "KAFKA_BROKERS", "KAFKA_BROKER", "KAFKA_GROUP_ID",
	"KAFKA_INGEST_TOPICS", "KAFKA_EVENTS_TOPIC", "WS_SEND_BUFFER", "SHUTDOWN_TIMEOUT",
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range configKeys {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("DATABASE_URL", "postgres://localhost/booking")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "3000", cfg.Server.Port)
	assert.Equal(t, 10*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, DriverPostgres, cfg.Database.Driver)
	assert.False(t, cfg.Database.AutoMigrate)
	assert.Equal(t, 10, cfg.Database.MaxOpenConns)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.False(t, cfg.Logging.AddSource)
	assert.False(t, cfg.Kafka.Enabled())
	assert.Empty(t, cfg.Kafka.IngestTopics)
	assert.Equal(t, 16, cfg.Websocket.SendBuffer)
}

func TestLoadOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "8080")
	t.Setenv("DATABASE_DRIVER", "SQLite")
	t.Setenv("DATABASE_AUTO_MIGRATE", "true")
	t.Setenv("KAFKA_BROKER", "localhost:9092")
	t.Setenv("KAFKA_INGEST_TOPICS", "bookings.first, ,bookings.second")
	t.Setenv("KAFKA_EVENTS_TOPIC", "reservations.events")
	t.Setenv("SHUTDOWN_TIMEOUT", "3s")
	t.Setenv("LOG_SOURCE", "true")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, DriverSQLite, cfg.Database.Driver)
	assert.Equal(t, "file:booking_hub.db", cfg.Database.URL)
	assert.True(t, cfg.Database.AutoMigrate)
	assert.Equal(t, []string{"localhost:9092"}, cfg.Kafka.Brokers)
	assert.Equal(t, []string{"bookings.first", "bookings.second"}, cfg.Kafka.IngestTopics)
	assert.Equal(t, "reservations.events", cfg.Kafka.EventsTopic)
	assert.Equal(t, 3*time.Second, cfg.Server.ShutdownTimeout)
	assert.True(t, cfg.Logging.AddSource)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	cases := map[string]map[string]string{
		"unknown driver":    {"DATABASE_DRIVER": "mysql", "DATABASE_URL": "x"},
		"postgres no url":   {"DATABASE_DRIVER": "postgres"},
		"bad bool":          {"DATABASE_DRIVER": "sqlite", "DATABASE_AUTO_MIGRATE": "maybe"},
		"bad int":           {"DATABASE_DRIVER": "sqlite", "DATABASE_MAX_OPEN_CONNS": "ten"},
		"bad log source":    {"DATABASE_DRIVER": "sqlite", "LOG_SOURCE": "sometimes"},
		"bad duration":      {"DATABASE_DRIVER": "sqlite", "SHUTDOWN_TIMEOUT": "soon"},
		"non positive send": {"DATABASE_DRIVER": "sqlite", "WS_SEND_BUFFER": "0"},
	}

	for name, env := range cases {
		t.Run(name, func(t *testing.T) {
			clearEnv(t)
			for key, value := range env {
				t.Setenv(key, value)
			}
			_, err := Load()
			require.Error(t, err)
		})
	}
}
