package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"tradejournal/internal/analytics"
	"tradejournal/internal/domain"
	"tradejournal/internal/ports"
)

// tradeRequest is the JSON shape accepted by create/update. The handler owns
// validation: malformed dates and non-numeric fields are rejected here, before
// anything reaches the analytics engine.
type tradeRequest struct {
	Symbol     string   `json:"symbol"`
	Instrument string   `json:"instrument"`
	Direction  string   `json:"direction"`
	EntryPrice float64  `json:"entryPrice"`
	ExitPrice  *float64 `json:"exitPrice"`
	Quantity   float64  `json:"quantity"`
	EntryTime  string   `json:"entryTime"` // RFC3339
	ExitTime   *string  `json:"exitTime"`  // RFC3339
	Fees       float64  `json:"fees"`
	StopLoss   *float64 `json:"stopLoss"`
	TakeProfit *float64 `json:"takeProfit"`
	Tags       []string `json:"tags"`
	Session    string   `json:"marketSession"`
	Notes      string   `json:"notes"`
}

func (req *tradeRequest) toDomain() (*domain.Trade, error) {
	if req.Symbol == "" {
		return nil, fmt.Errorf("symbol is required")
	}
	direction, ok := domain.ParseDirection(req.Direction)
	if !ok {
		return nil, fmt.Errorf("direction must be long/short (or buy/sell)")
	}
	var instrument domain.InstrumentClass
	if req.Instrument != "" {
		instrument, ok = domain.ParseInstrumentClass(req.Instrument)
		if !ok {
			return nil, fmt.Errorf("unknown instrument class '%s'", req.Instrument)
		}
	}
	if req.EntryPrice <= 0 {
		return nil, fmt.Errorf("entryPrice must be positive")
	}
	if req.Quantity < 0 {
		return nil, fmt.Errorf("quantity cannot be negative")
	}
	if req.Fees < 0 {
		return nil, fmt.Errorf("fees cannot be negative")
	}
	entryTime, err := time.Parse(time.RFC3339, req.EntryTime)
	if err != nil {
		return nil, fmt.Errorf("invalid entryTime: %v", err)
	}
	var exitTime *time.Time
	if req.ExitTime != nil {
		et, err := time.Parse(time.RFC3339, *req.ExitTime)
		if err != nil {
			return nil, fmt.Errorf("invalid exitTime: %v", err)
		}
		exitTime = &et
	}
	if (req.ExitPrice == nil) != (exitTime == nil) {
		return nil, fmt.Errorf("exitPrice and exitTime must be set together")
	}
	if req.ExitPrice != nil && *req.ExitPrice <= 0 {
		return nil, fmt.Errorf("exitPrice must be positive")
	}

	return &domain.Trade{
		Symbol:     req.Symbol,
		Instrument: instrument,
		Direction:  direction,
		EntryPrice: req.EntryPrice,
		ExitPrice:  req.ExitPrice,
		Quantity:   req.Quantity,
		EntryTime:  entryTime,
		ExitTime:   exitTime,
		Fees:       req.Fees,
		StopLoss:   req.StopLoss,
		TakeProfit: req.TakeProfit,
		Tags:       req.Tags,
		Session:    domain.ParseMarketSession(req.Session),
		Notes:      req.Notes,
	}, nil
}

func (s *Server) handleListTrades(w http.ResponseWriter, r *http.Request) {
	trades, err := s.service.ListTrades(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if trades == nil {
		trades = []*domain.Trade{}
	}
	writeJSON(w, http.StatusOK, trades)
}

func (s *Server) handleCreateTrade(w http.ResponseWriter, r *http.Request) {
	var req tradeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, r, fmt.Errorf("%w: %v", ports.ErrInvalidRequest, err))
		return
	}
	trade, err := req.toDomain()
	if err != nil {
		s.writeError(w, r, fmt.Errorf("%w: %v", ports.ErrInvalidRequest, err))
		return
	}
	if err := s.service.CreateTrade(r.Context(), trade); err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, trade)
}

func (s *Server) handleGetTrade(w http.ResponseWriter, r *http.Request) {
	trade, err := s.service.GetTrade(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, trade)
}

func (s *Server) handleUpdateTrade(w http.ResponseWriter, r *http.Request) {
	var req tradeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, r, fmt.Errorf("%w: %v", ports.ErrInvalidRequest, err))
		return
	}
	trade, err := req.toDomain()
	if err != nil {
		s.writeError(w, r, fmt.Errorf("%w: %v", ports.ErrInvalidRequest, err))
		return
	}
	trade.ID = chi.URLParam(r, "id")
	if err := s.service.UpdateTrade(r.Context(), trade); err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, trade)
}

func (s *Server) handleDeleteTrade(w http.ResponseWriter, r *http.Request) {
	if err := s.service.DeleteTrade(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := s.service.Summary(r.Context(), rangeParam(r))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

func (s *Server) handleAggregate(w http.ResponseWriter, r *http.Request) {
	dimension := r.URL.Query().Get("by")
	if dimension == "" {
		dimension = "day"
	}
	buckets, err := s.service.AggregateBy(r.Context(), dimension, rangeParam(r))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, buckets)
}

func (s *Server) handleCumulative(w http.ResponseWriter, r *http.Request) {
	series, err := s.service.Cumulative(r.Context(), rangeParam(r))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if series == nil {
		series = []analytics.DailyPoint{}
	}
	writeJSON(w, http.StatusOK, series)
}

func (s *Server) handleInsights(w http.ResponseWriter, r *http.Request) {
	text, err := s.service.Insight(r.Context(), rangeParam(r))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"insight": text})
}

func rangeParam(r *http.Request) analytics.DateRange {
	if v := r.URL.Query().Get("range"); v != "" {
		return analytics.DateRange(v)
	}
	return analytics.RangeAll
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, ports.ErrInvalidRequest):
		status = http.StatusBadRequest
	case errors.Is(err, ports.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, ports.ErrInsightUnconfigured):
		status = http.StatusServiceUnavailable
	case errors.Is(err, ports.ErrInsightUnavailable):
		status = http.StatusBadGateway
	}
	if status == http.StatusInternalServerError {
		s.logger.Error(r.Context(), err, "Request failed", map[string]interface{}{"path": r.URL.Path})
	}
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
