package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/finlearn/finlearn/internal/config"
)

// Every logger carries this attribute so finlearn records stay
// filterable once they are aggregated with other services' logs.
const serviceName = "finlearn"

// New constructs a slog.Logger configured according to the provided
// settings, writing to stdout.
func New(cfg config.LoggingConfig) (*slog.Logger, error) {
	return NewWithWriter(os.Stdout, cfg)
}

// NewWithWriter is New with a caller-supplied destination.
func NewWithWriter(w io.Writer, cfg config.LoggingConfig) (*slog.Logger, error) {
	handler, err := buildHandler(w, cfg)
	if err != nil {
		return nil, err
	}

	return slog.New(handler).With(slog.String("service", serviceName)), nil
}

func buildHandler(w io.Writer, cfg config.LoggingConfig) (slog.Handler, error) {
	opts := &slog.HandlerOptions{Level: cfg.Level}

	switch cfg.Format {
	case "json":
		return slog.NewJSONHandler(w, opts), nil
	case "text":
		return slog.NewTextHandler(w, opts), nil
	default:
		return nil, fmt.Errorf("unsupported log format: %s", cfg.Format)
	}
}
