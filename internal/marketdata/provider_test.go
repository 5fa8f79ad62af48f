package marketdata

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"log/slog"
)

const sampleBody = `{
	"Time Series (Daily)": {
		"2026-08-28": {"1. open": "101.0", "4. close": "102.50"},
		"2026-08-27": {"1. open": "100.0", "4. close": "101.25"},
		"2026-08-26": {"1. open": "99.0", "4. close": "not-a-number"}
	}
}`

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestParseDailySeries(t *testing.T) {
	series, err := parseDailySeries("SPY", []byte(sampleBody))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// The unparseable close is skipped; the rest come back oldest first.
	if len(series.Points) != 2 {
		t.Fatalf("points = %d, want 2", len(series.Points))
	}
	if series.Points[0].Date != "2026-08-27" || series.Points[0].Close != 101.25 {
		t.Errorf("first point = %+v, want 2026-08-27 at 101.25", series.Points[0])
	}
	if series.Points[1].Date != "2026-08-28" {
		t.Errorf("points not sorted oldest first: %+v", series.Points)
	}
}

func TestParseDailySeriesErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"malformed json", "{"},
		{"empty series", `{"Time Series (Daily)": {}}`},
		{"no usable closes", `{"Time Series (Daily)": {"2026-08-28": {"4. close": "garbage"}}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := parseDailySeries("SPY", []byte(tt.body)); err == nil {
				t.Error("expected an error")
			}
		})
	}
}

func TestGetTimeSeriesCaches(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		if got := r.URL.Query().Get("symbol"); got != "SPY" {
			t.Errorf("symbol param = %q, want SPY", got)
		}
		w.Write([]byte(sampleBody))
	}))
	defer srv.Close()

	provider := NewHTTPProvider("test-key", srv.URL, time.Hour, testLogger())

	for i := 0; i < 3; i++ {
		series, err := provider.GetTimeSeries(context.Background(), "SPY")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if series.Symbol != "SPY" {
			t.Errorf("symbol = %q, want SPY", series.Symbol)
		}
	}

	if hits.Load() != 1 {
		t.Errorf("upstream hits = %d, want 1 with a warm cache", hits.Load())
	}
}

func TestGetTimeSeriesWithoutAPIKey(t *testing.T) {
	provider := NewHTTPProvider("", "http://unused", time.Hour, testLogger())
	if _, err := provider.GetTimeSeries(context.Background(), "SPY"); err == nil {
		t.Error("expected an error without an API key")
	}
}

func TestGetTimeSeriesUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	provider := NewHTTPProvider("test-key", srv.URL, time.Hour, testLogger())
	if _, err := provider.GetTimeSeries(context.Background(), "SPY"); err == nil {
		t.Error("expected an error on upstream failure")
	}
}
