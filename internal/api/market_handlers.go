package api

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/finlearn/finlearn/internal/marketdata"
	"log/slog"
)

// MarketHandler serves historical market data for the learning charts
type MarketHandler struct {
	provider marketdata.Provider
	logger   *slog.Logger
}

func NewMarketHandler(provider marketdata.Provider, logger *slog.Logger) *MarketHandler {
	return &MarketHandler{
		provider: provider,
		logger:   logger,
	}
}

// GetTimeSeries handles GET /api/market/:symbol
func (h *MarketHandler) GetTimeSeries(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	parts := strings.Split(strings.Trim(r.URL.Path, "/"), "/")
	if len(parts) < 3 || parts[2] == "" {
		http.Error(w, "Symbol required", http.StatusBadRequest)
		return
	}
	symbol := strings.ToUpper(parts[2])

	if len(symbol) > 10 {
		http.Error(w, "Invalid symbol", http.StatusBadRequest)
		return
	}

	series, err := h.provider.GetTimeSeries(r.Context(), symbol)
	if err != nil {
		h.logger.Error("failed to fetch market data", "symbol", symbol, "error", err)
		http.Error(w, "Market data unavailable", http.StatusBadGateway)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(series)
}
