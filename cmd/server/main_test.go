package main

import (
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookingHub/internal/shared/logging"
)

func TestRunRejectsInvalidConfig(t *testing.T) {
	t.Setenv("DATABASE_DRIVER", "mysql")
	t.Setenv("DATABASE_URL", "mysql://localhost/booking")

	err := run()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config load")
}

func TestRunReportsDatabaseFailureAfterLogging(t *testing.T) {
	previous := slog.Default()
	t.Cleanup(func() {
		slog.SetDefault(previous)
		log.SetOutput(os.Stderr)
	})

	logDir := t.TempDir()
	t.Setenv("LOG_DIR", logDir)
	t.Setenv("LOG_FORMAT", "json")
	t.Setenv("DATABASE_DRIVER", "sqlite")
	t.Setenv("DATABASE_URL", "file:"+filepath.Join(t.TempDir(), "missing", "booking.db"))
	t.Setenv("KAFKA_BROKERS", "")
	t.Setenv("KAFKA_BROKER", "")

	err := run()
	require.Error(t, err)

	contents, readErr := os.ReadFile(logging.DailyFileName(logDir, time.Now()))
	require.NoError(t, readErr)
	assert.Contains(t, string(contents), "database open failed")
}
