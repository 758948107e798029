package ports

import (
	"context"

	"tradejournal/internal/domain"
)

// TradeRepository defines the interface for storing and retrieving journaled trades.
type TradeRepository interface {
	// Create saves a new trade record.
	Create(ctx context.Context, trade *domain.Trade) error
	// Update modifies an existing trade. Returns ErrNotFound for unknown IDs.
	Update(ctx context.Context, trade *domain.Trade) error
	// Delete removes a trade. Returns ErrNotFound for unknown IDs.
	Delete(ctx context.Context, id string) error
	// FindByID retrieves a trade by its unique ID.
	// Returns nil, nil if not found.
	FindByID(ctx context.Context, id string) (*domain.Trade, error)
	// FindAll retrieves all trades, ordered by entry time descending.
	FindAll(ctx context.Context) ([]*domain.Trade, error)
	// FindBySymbol retrieves the most recent trades for a given symbol, up to a limit.
	FindBySymbol(ctx context.Context, symbol string, limit int) ([]*domain.Trade, error)
}
