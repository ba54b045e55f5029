package logging

import (
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Config mirrors the LOG_* settings of the process.
type Config struct {
	Directory string
	Level     string
	// Format is "json" or "text"; anything else falls back to text.
	Format    string
	AddSource bool
}

// ParseLevel accepts slog level names with optional offsets ("debug",
// "warn+2") and the "warning" spelling. Unknown values mean info.
func ParseLevel(raw string) slog.Level {
	name := strings.ToLower(strings.TrimSpace(raw))
	if name == "warning" {
		return slog.LevelWarn
	}
	var level slog.Level
	if err := level.UnmarshalText([]byte(name)); err != nil {
		return slog.LevelInfo
	}
	return level
}

// New builds a logger writing to w, stdout when w is nil.
func New(w io.Writer, cfg Config) *slog.Logger {
	if w == nil {
		w = os.Stdout
	}
	opts := &slog.HandlerOptions{Level: ParseLevel(cfg.Level), AddSource: cfg.AddSource}
	if strings.EqualFold(strings.TrimSpace(cfg.Format), "json") {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// DailyFileName returns the log file used for the UTC day of now.
func DailyFileName(dir string, now time.Time) string {
	return filepath.Join(dir, now.UTC().Format("2006-01-02")+".log")
}

// Setup opens today's file under cfg.Directory and returns a logger writing
// to both stdout and that file. The standard library logger is redirected
// too, so echo's own output lands in the same place. Callers close the file.
func Setup(cfg Config) (*os.File, *slog.Logger, error) {
	dir := cfg.Directory
	if dir == "" {
		dir = "./logs"
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, nil, fmt.Errorf("create log dir: %w", err)
	}
	file, err := os.OpenFile(DailyFileName(dir, time.Now()), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}

	writer := io.MultiWriter(os.Stdout, file)
	log.SetOutput(writer)
	log.SetFlags(0)
	log.SetPrefix("")

	return file, New(writer, cfg), nil
}
