package server

import (
	"io"
	"log/slog"
	"net/http"
	"testing"
	"time"

	"github.com/finlearn/finlearn/internal/config"
)

func TestNewConfiguresHTTPServer(t *testing.T) {
	cfg := config.ServerConfig{
		Port:            "9090",
		ReadTimeout:     5 * time.Second,
		WriteTimeout:    10 * time.Second,
		ShutdownTimeout: time.Second,
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	srv := New(cfg, logger, http.NewServeMux())

	if srv.http.Addr != ":9090" {
		t.Errorf("Addr = %q, want :9090", srv.http.Addr)
	}
	if srv.http.ReadTimeout != cfg.ReadTimeout {
		t.Errorf("ReadTimeout = %v, want %v", srv.http.ReadTimeout, cfg.ReadTimeout)
	}
	if srv.http.WriteTimeout != cfg.WriteTimeout {
		t.Errorf("WriteTimeout = %v, want %v", srv.http.WriteTimeout, cfg.WriteTimeout)
	}
	if srv.http.ErrorLog == nil {
		t.Error("ErrorLog not wired to the structured logger")
	}
}
