// Package app orchestrates the journal: trade CRUD with the derived-field
// recomputation invariant, date-range pre-filtering, and fan-out to the
// analytics engine for the statistics the API serves.
package app

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"tradejournal/config"
	"tradejournal/internal/analytics"
	"tradejournal/internal/domain"
	"tradejournal/internal/ports"
)

// JournalService orchestrates trade persistence and analytics queries.
type JournalService struct {
	cfg     *config.Config
	logger  ports.Logger
	repo    ports.TradeRepository
	insight ports.InsightGenerator // nil when unconfigured
	now     func() time.Time
}

// NewJournalService creates a new application service instance. The insight
// generator is optional; all other dependencies are required.
func NewJournalService(
	cfg *config.Config,
	logger ports.Logger,
	repo ports.TradeRepository,
	insight ports.InsightGenerator,
) (*JournalService, error) {
	if cfg == nil || logger == nil || repo == nil {
		return nil, fmt.Errorf("missing required dependencies for JournalService")
	}
	return &JournalService{
		cfg:     cfg,
		logger:  logger,
		repo:    repo,
		insight: insight,
		now:     time.Now,
	}, nil
}

// recomputeDerived refreshes the trade's cached derived fields from its
// source fields. Called on every write; the stored copies are a display
// cache only and are never trusted for analytics.
func (s *JournalService) recomputeDerived(t *domain.Trade) {
	t.ProfitLoss = analytics.NetProfitLoss(t)
	t.ReturnPercentage = analytics.ReturnPercentage(t, s.cfg.AccountBalance)
	t.RiskPercentage = analytics.RiskPercentage(t, s.cfg.AccountBalance)
}

// CreateTrade assigns an ID if needed, computes derived fields, and persists
// the trade.
func (s *JournalService) CreateTrade(ctx context.Context, t *domain.Trade) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	t.Session = t.MarketSession()
	s.recomputeDerived(t)
	if err := s.repo.Create(ctx, t); err != nil {
		return err
	}
	s.logger.Info(ctx, "Trade created", map[string]interface{}{"trade_id": t.ID, "symbol": t.Symbol})
	return nil
}

// UpdateTrade recomputes derived fields and persists the modified trade.
func (s *JournalService) UpdateTrade(ctx context.Context, t *domain.Trade) error {
	t.Session = t.MarketSession()
	s.recomputeDerived(t)
	if err := s.repo.Update(ctx, t); err != nil {
		return err
	}
	s.logger.Info(ctx, "Trade updated", map[string]interface{}{"trade_id": t.ID})
	return nil
}

// DeleteTrade removes a trade by ID.
func (s *JournalService) DeleteTrade(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info(ctx, "Trade deleted", map[string]interface{}{"trade_id": id})
	return nil
}

// GetTrade retrieves a single trade. Returns ErrNotFound for unknown IDs.
func (s *JournalService) GetTrade(ctx context.Context, id string) (*domain.Trade, error) {
	t, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, fmt.Errorf("%w: trade '%s'", ports.ErrNotFound, id)
	}
	return t, nil
}

// ListTrades returns all trades, newest entry first.
func (s *JournalService) ListTrades(ctx context.Context) ([]*domain.Trade, error) {
	return s.repo.FindAll(ctx)
}

// tradesInRange loads all trades and applies the named date-range pre-filter.
func (s *JournalService) tradesInRange(ctx context.Context, r analytics.DateRange) ([]*domain.Trade, error) {
	trades, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return analytics.FilterRange(trades, r, s.now()), nil
}

// Summary computes the StatsSummary for the given range.
func (s *JournalService) Summary(ctx context.Context, r analytics.DateRange) (analytics.StatsSummary, error) {
	trades, err := s.tradesInRange(ctx, r)
	if err != nil {
		return analytics.StatsSummary{}, err
	}
	return analytics.Summarize(trades), nil
}

// AggregateBy buckets the range's trades along one grouping dimension.
// Supported dimensions: day, weekday, session, symbol, tag.
func (s *JournalService) AggregateBy(ctx context.Context, dimension string, r analytics.DateRange) (map[string]analytics.Bucket, error) {
	trades, err := s.tradesInRange(ctx, r)
	if err != nil {
		return nil, err
	}
	switch dimension {
	case "day":
		return analytics.Aggregate(trades, analytics.ByDay), nil
	case "weekday":
		return analytics.Aggregate(trades, analytics.ByWeekday), nil
	case "session":
		return analytics.Aggregate(trades, analytics.BySession), nil
	case "symbol":
		return analytics.Aggregate(trades, analytics.BySymbol), nil
	case "tag":
		return analytics.AggregateByTag(trades), nil
	default:
		return nil, fmt.Errorf("%w: unknown aggregation dimension '%s'", ports.ErrInvalidRequest, dimension)
	}
}

// Cumulative builds the daily cumulative P&L series for the given range.
func (s *JournalService) Cumulative(ctx context.Context, r analytics.DateRange) ([]analytics.DailyPoint, error) {
	trades, err := s.tradesInRange(ctx, r)
	if err != nil {
		return nil, err
	}
	return analytics.CumulativeSeries(trades, r, s.now()), nil
}

// Insight computes the range's summary and asks the insight service to
// narrate it. Returns ErrInsightUnconfigured when no generator is wired.
func (s *JournalService) Insight(ctx context.Context, r analytics.DateRange) (string, error) {
	if s.insight == nil {
		return "", ports.ErrInsightUnconfigured
	}
	trades, err := s.tradesInRange(ctx, r)
	if err != nil {
		return "", err
	}
	return s.insight.GenerateInsight(ctx, analytics.Summarize(trades), len(trades))
}
