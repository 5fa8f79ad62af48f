package marketdata

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"sync"
	"time"
)

// Point is a single observation in a price series.
type Point struct {
	Date  string  `json:"date"` // YYYY-MM-DD
	Close float64 `json:"close"`
}

// TimeSeries is a daily price history for one symbol.
type TimeSeries struct {
	Symbol    string    `json:"symbol"`
	Points    []Point   `json:"points"` // oldest first
	FetchedAt time.Time `json:"fetched_at"`
}

// Provider returns time series by symbol. The live implementation
// calls an external financial data API; tests substitute a fake.
type Provider interface {
	GetTimeSeries(ctx context.Context, symbol string) (*TimeSeries, error)
}

// HTTPProvider fetches daily series from an Alpha Vantage style API
// and caches responses in memory with a TTL. Market data for an
// educational app does not need to be fresher than the cache window.
type HTTPProvider struct {
	apiKey  string
	baseURL string
	client  *http.Client
	logger  *slog.Logger

	ttl   time.Duration
	mutex sync.RWMutex
	cache map[string]*cacheEntry
}

type cacheEntry struct {
	series    *TimeSeries
	expiresAt time.Time
}

// NewHTTPProvider constructs a provider. An empty apiKey is allowed;
// every fetch then fails and callers surface the outage.
func NewHTTPProvider(apiKey, baseURL string, ttl time.Duration, logger *slog.Logger) *HTTPProvider {
	return &HTTPProvider{
		apiKey:  apiKey,
		baseURL: baseURL,
		client:  &http.Client{Timeout: 10 * time.Second},
		logger:  logger,
		ttl:     ttl,
		cache:   make(map[string]*cacheEntry),
	}
}

// GetTimeSeries returns the cached series for symbol or fetches it.
func (p *HTTPProvider) GetTimeSeries(ctx context.Context, symbol string) (*TimeSeries, error) {
	if series, ok := p.getCached(symbol); ok {
		return series, nil
	}

	if p.apiKey == "" {
		return nil, fmt.Errorf("market data API key not configured")
	}

	series, err := p.fetch(ctx, symbol)
	if err != nil {
		return nil, err
	}

	p.setCached(symbol, series)
	return series, nil
}

func (p *HTTPProvider) getCached(symbol string) (*TimeSeries, bool) {
	p.mutex.RLock()
	defer p.mutex.RUnlock()

	entry, exists := p.cache[symbol]
	if !exists || time.Now().After(entry.expiresAt) {
		return nil, false
	}
	return entry.series, true
}

func (p *HTTPProvider) setCached(symbol string, series *TimeSeries) {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	p.cache[symbol] = &cacheEntry{
		series:    series,
		expiresAt: time.Now().Add(p.ttl),
	}
}

func (p *HTTPProvider) fetch(ctx context.Context, symbol string) (*TimeSeries, error) {
	params := url.Values{}
	params.Set("function", "TIME_SERIES_DAILY")
	params.Set("symbol", symbol)
	params.Set("apikey", p.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build market data request: %w", err)
	}

	start := time.Now()
	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("market data request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("market data API returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read market data response: %w", err)
	}

	series, err := parseDailySeries(symbol, body)
	if err != nil {
		return nil, err
	}

	p.logger.Debug("fetched market data",
		"symbol", symbol,
		"points", len(series.Points),
		"duration_ms", time.Since(start).Milliseconds())

	return series, nil
}

// parseDailySeries extracts closes from the provider's verbose JSON
// shape into a compact, oldest-first series.
func parseDailySeries(symbol string, body []byte) (*TimeSeries, error) {
	var raw struct {
		Series map[string]map[string]string `json:"Time Series (Daily)"`
	}
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("malformed market data response: %w", err)
	}
	if len(raw.Series) == 0 {
		return nil, fmt.Errorf("no time series data for symbol %s", symbol)
	}

	points := make([]Point, 0, len(raw.Series))
	for date, fields := range raw.Series {
		closeStr, ok := fields["4. close"]
		if !ok {
			continue
		}
		closeVal, err := strconv.ParseFloat(closeStr, 64)
		if err != nil {
			continue
		}
		points = append(points, Point{Date: date, Close: closeVal})
	}

	if len(points) == 0 {
		return nil, fmt.Errorf("no usable observations for symbol %s", symbol)
	}

	sort.Slice(points, func(i, j int) bool { return points[i].Date < points[j].Date })

	return &TimeSeries{
		Symbol:    symbol,
		Points:    points,
		FetchedAt: time.Now().UTC(),
	}, nil
}
