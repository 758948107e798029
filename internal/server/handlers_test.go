package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"tradejournal/config"
	"tradejournal/internal/analytics"
	"tradejournal/internal/app"
	"tradejournal/internal/domain"
	"tradejournal/internal/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockLogger struct{}

func (m *mockLogger) Debug(ctx context.Context, msg string, fields ...map[string]interface{}) {}
func (m *mockLogger) Info(ctx context.Context, msg string, fields ...map[string]interface{})  {}
func (m *mockLogger) Warn(ctx context.Context, msg string, fields ...map[string]interface{})  {}
func (m *mockLogger) Error(ctx context.Context, err error, msg string, fields ...map[string]interface{}) {
}

type memRepo struct {
	trades map[string]*domain.Trade
}

func (r *memRepo) Create(ctx context.Context, t *domain.Trade) error {
	cp := *t
	r.trades[t.ID] = &cp
	return nil
}

func (r *memRepo) Update(ctx context.Context, t *domain.Trade) error {
	if _, ok := r.trades[t.ID]; !ok {
		return ports.ErrNotFound
	}
	cp := *t
	r.trades[t.ID] = &cp
	return nil
}

func (r *memRepo) Delete(ctx context.Context, id string) error {
	if _, ok := r.trades[id]; !ok {
		return ports.ErrNotFound
	}
	delete(r.trades, id)
	return nil
}

func (r *memRepo) FindByID(ctx context.Context, id string) (*domain.Trade, error) {
	t, ok := r.trades[id]
	if !ok {
		return nil, nil
	}
	cp := *t
	return &cp, nil
}

func (r *memRepo) FindAll(ctx context.Context) ([]*domain.Trade, error) {
	out := make([]*domain.Trade, 0, len(r.trades))
	for _, t := range r.trades {
		cp := *t
		out = append(out, &cp)
	}
	return out, nil
}

func (r *memRepo) FindBySymbol(ctx context.Context, symbol string, limit int) ([]*domain.Trade, error) {
	var out []*domain.Trade
	for _, t := range r.trades {
		if t.Symbol == symbol && len(out) < limit {
			cp := *t
			out = append(out, &cp)
		}
	}
	return out, nil
}

func newTestServer(t *testing.T) *Server {
	t.Helper()
	repo := &memRepo{trades: make(map[string]*domain.Trade)}
	svc, err := app.NewJournalService(&config.Config{AccountBalance: 10000}, &mockLogger{}, repo, nil)
	require.NoError(t, err)
	srv, err := New(Config{Port: 0, Logger: &mockLogger{}, Service: svc, DevMode: true})
	require.NoError(t, err)
	return srv
}

func doJSON(t *testing.T, srv *Server, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	srv.router.ServeHTTP(rec, req)
	return rec
}

func validTradeBody() map[string]interface{} {
	return map[string]interface{}{
		"symbol":     "EUR/USD",
		"direction":  "long",
		"entryPrice": 1.1000,
		"exitPrice":  1.1050,
		"quantity":   1.0,
		"entryTime":  "2026-07-06T09:30:00Z",
		"exitTime":   "2026-07-06T13:30:00Z",
		"fees":       7.50,
		"tags":       []string{"breakout"},
	}
}

func TestCreateTradeEndpoint(t *testing.T) {
	srv := newTestServer(t)

	rec := doJSON(t, srv, http.MethodPost, "/api/trades/", validTradeBody())
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var created domain.Trade
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.NotEmpty(t, created.ID)
	require.NotNil(t, created.ProfitLoss)
	assert.Equal(t, 492.50, *created.ProfitLoss)
	assert.Equal(t, domain.SessionOther, created.Session)
}

func TestCreateTradeValidation(t *testing.T) {
	srv := newTestServer(t)

	tests := []struct {
		name   string
		mutate func(map[string]interface{})
	}{
		{"missing symbol", func(b map[string]interface{}) { delete(b, "symbol") }},
		{"bad direction", func(b map[string]interface{}) { b["direction"] = "sideways" }},
		{"bad entry time", func(b map[string]interface{}) { b["entryTime"] = "yesterday" }},
		{"negative entry price", func(b map[string]interface{}) { b["entryPrice"] = -1 }},
		{"exit price without exit time", func(b map[string]interface{}) { delete(b, "exitTime") }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body := validTradeBody()
			tt.mutate(body)
			rec := doJSON(t, srv, http.MethodPost, "/api/trades/", body)
			assert.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())
		})
	}
}

func TestGetTradeNotFound(t *testing.T) {
	srv := newTestServer(t)
	rec := doJSON(t, srv, http.MethodGet, "/api/trades/nope", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUpdateAndDeleteTrade(t *testing.T) {
	srv := newTestServer(t)

	rec := doJSON(t, srv, http.MethodPost, "/api/trades/", validTradeBody())
	require.Equal(t, http.StatusCreated, rec.Code)
	var created domain.Trade
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))

	body := validTradeBody()
	body["exitPrice"] = 1.1100
	rec = doJSON(t, srv, http.MethodPut, "/api/trades/"+created.ID, body)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var updated domain.Trade
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &updated))
	require.NotNil(t, updated.ProfitLoss)
	assert.Equal(t, 992.50, *updated.ProfitLoss)

	rec = doJSON(t, srv, http.MethodDelete, "/api/trades/"+created.ID, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = doJSON(t, srv, http.MethodDelete, "/api/trades/"+created.ID, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestStatsEndpoints(t *testing.T) {
	srv := newTestServer(t)

	rec := doJSON(t, srv, http.MethodPost, "/api/trades/", validTradeBody())
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(t, srv, http.MethodGet, "/api/stats/summary?range=all", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var summary analytics.StatsSummary
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &summary))
	assert.Equal(t, 1, summary.TotalTrades)
	assert.Equal(t, 1, summary.WinningTrades)

	rec = doJSON(t, srv, http.MethodGet, "/api/stats/aggregate?by=session", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var buckets map[string]analytics.Bucket
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &buckets))
	assert.Equal(t, 1, buckets["Other"].TradeCount)

	rec = doJSON(t, srv, http.MethodGet, "/api/stats/aggregate?by=astrology", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, srv, http.MethodGet, "/api/stats/cumulative?range=week", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var series []analytics.DailyPoint
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &series))
	assert.Len(t, series, 8, "one point per calendar day, today-7 through today")
}

func TestInsightsUnconfigured(t *testing.T) {
	srv := newTestServer(t)
	rec := doJSON(t, srv, http.MethodGet, "/api/insights", nil)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t)
	rec := doJSON(t, srv, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}
