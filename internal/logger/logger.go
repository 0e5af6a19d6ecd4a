package logger

import (
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/lmittmann/tint"
)

// Logger wraps slog with the handler setup shared by every entry point.
type Logger struct {
	*slog.Logger
}

// Config selects level and output format for one process.
type Config struct {
	Level   string
	Format  string
	Service string
	Version string
}

// New builds a logger for cfg and stamps every record with the service
// identity. Output goes to stderr: stdout belongs to the MCP stdio
// transport.
func New(cfg Config) (*Logger, error) {
	base := slog.New(newHandler(cfg)).With(
		slog.String("service", cfg.Service),
		slog.String("version", cfg.Version),
	)
	return &Logger{Logger: base}, nil
}

// NewDefault returns a json logger at info level, for tests and early
// startup before configuration is loaded.
func NewDefault() (*Logger, error) {
	return New(Config{
		Level:   "info",
		Format:  "json",
		Service: "dracor-mcp",
		Version: "dev",
	})
}

// newHandler picks json for machine consumption, tinted text for
// terminals.
func newHandler(cfg Config) slog.Handler {
	level := parseLevel(cfg.Level)
	if cfg.Format == "json" {
		return slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	}
	return tint.NewHandler(os.Stderr, &tint.Options{
		Level:      level,
		TimeFormat: time.Kitchen,
	})
}

// parseLevel maps a config string to a slog level, defaulting to info
// on anything it does not recognize.
func parseLevel(name string) slog.Level {
	switch strings.ToLower(name) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
