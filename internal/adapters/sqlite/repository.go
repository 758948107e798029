package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"tradejournal/internal/domain"
	"tradejournal/internal/ports"

	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

// Repository implements the ports.TradeRepository interface using SQLite.
type Repository struct {
	db     *sql.DB
	logger ports.Logger
}

// Config holds configuration for the SQLite repository.
type Config struct {
	DBPath string
	Logger ports.Logger
}

// NewRepository creates a new SQLite repository instance.
func NewRepository(cfg Config) (*Repository, error) {
	if cfg.Logger == nil {
		return nil, fmt.Errorf("logger is required for SQLite repository")
	}
	dbPath := cfg.DBPath
	if dbPath == "" {
		dbPath = "./data/journal.db" // Default path
	}

	// Create data directory if it doesn't exist
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		err = fmt.Errorf("failed to create data directory '%s': %w", filepath.Dir(dbPath), err)
		cfg.Logger.Error(context.Background(), err, "SQLite repository initialization failed")
		return nil, err
	}

	// Open database connection
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000") // WAL mode for better concurrency
	if err != nil {
		err = fmt.Errorf("failed to open database at '%s': %w", dbPath, err)
		cfg.Logger.Error(context.Background(), err, "SQLite repository initialization failed")
		return nil, err
	}

	// Test the connection
	if err := db.Ping(); err != nil {
		db.Close()
		err = fmt.Errorf("failed to ping database at '%s': %w", dbPath, err)
		cfg.Logger.Error(context.Background(), err, "SQLite repository initialization failed")
		return nil, err
	}

	// Set connection pool settings (important for SQLite)
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	cfg.Logger.Info(context.Background(), "SQLite database connection established", map[string]interface{}{"path": dbPath})

	repo := &Repository{db: db, logger: cfg.Logger}

	if err := repo.initializeSchema(context.Background()); err != nil {
		db.Close()
		err = fmt.Errorf("failed to initialize database schema: %w", err)
		cfg.Logger.Error(context.Background(), err, "SQLite repository initialization failed")
		return nil, err
	}

	return repo, nil
}

// initializeSchema creates tables if they don't exist.
// NOTE: This is a basic approach. A proper migration tool is recommended for production.
func (r *Repository) initializeSchema(ctx context.Context) error {
	const schema = `
	CREATE TABLE IF NOT EXISTS trades (
		id TEXT PRIMARY KEY,
		symbol TEXT NOT NULL,
		instrument TEXT NOT NULL DEFAULT '',
		direction TEXT NOT NULL,
		entry_price REAL NOT NULL,
		exit_price REAL DEFAULT NULL,
		quantity REAL NOT NULL,
		entry_time TIMESTAMP NOT NULL,
		exit_time TIMESTAMP DEFAULT NULL,
		fees REAL NOT NULL DEFAULT 0,
		stop_loss REAL DEFAULT NULL,
		take_profit REAL DEFAULT NULL,
		tags TEXT NOT NULL DEFAULT '[]',
		market_session TEXT NOT NULL DEFAULT 'Other',
		notes TEXT NOT NULL DEFAULT '',
		profit_loss REAL DEFAULT NULL,
		return_percentage REAL NOT NULL DEFAULT 0,
		risk_percentage REAL NOT NULL DEFAULT 0
	);
	-- Add indexes for common lookups
	CREATE INDEX IF NOT EXISTS idx_trades_symbol_entry_time ON trades (symbol, entry_time);
	CREATE INDEX IF NOT EXISTS idx_trades_session ON trades (market_session);
	`
	if _, err := r.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("%w: executing schema: %v", ports.ErrQueryFailed, err)
	}
	return nil
}

// Close closes the underlying database connection.
func (r *Repository) Close() error {
	return r.db.Close()
}

// Create saves a new trade record.
func (r *Repository) Create(ctx context.Context, trade *domain.Trade) error {
	tags, err := json.Marshal(trade.Tags)
	if err != nil {
		return fmt.Errorf("failed to encode tags for trade '%s': %w", trade.ID, err)
	}

	const query = `
	INSERT INTO trades (
		id, symbol, instrument, direction, entry_price, exit_price, quantity,
		entry_time, exit_time, fees, stop_loss, take_profit, tags,
		market_session, notes, profit_loss, return_percentage, risk_percentage
	) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err = r.db.ExecContext(ctx, query,
		trade.ID, trade.Symbol, string(trade.Instrument), string(trade.Direction),
		trade.EntryPrice, nullFloat(trade.ExitPrice), trade.Quantity,
		trade.EntryTime, nullTime(trade.ExitTime), trade.Fees,
		nullFloat(trade.StopLoss), nullFloat(trade.TakeProfit), string(tags),
		string(trade.MarketSession()), trade.Notes,
		nullFloat(trade.ProfitLoss), trade.ReturnPercentage, trade.RiskPercentage,
	)
	if err != nil {
		r.logger.Error(ctx, err, "Failed to insert trade", map[string]interface{}{"trade_id": trade.ID})
		return fmt.Errorf("%w: inserting trade '%s': %v", ports.ErrQueryFailed, trade.ID, err)
	}
	return nil
}

// Update modifies an existing trade.
func (r *Repository) Update(ctx context.Context, trade *domain.Trade) error {
	tags, err := json.Marshal(trade.Tags)
	if err != nil {
		return fmt.Errorf("failed to encode tags for trade '%s': %w", trade.ID, err)
	}

	const query = `
	UPDATE trades SET
		symbol = ?, instrument = ?, direction = ?, entry_price = ?, exit_price = ?,
		quantity = ?, entry_time = ?, exit_time = ?, fees = ?, stop_loss = ?,
		take_profit = ?, tags = ?, market_session = ?, notes = ?,
		profit_loss = ?, return_percentage = ?, risk_percentage = ?
	WHERE id = ?`

	res, err := r.db.ExecContext(ctx, query,
		trade.Symbol, string(trade.Instrument), string(trade.Direction),
		trade.EntryPrice, nullFloat(trade.ExitPrice), trade.Quantity,
		trade.EntryTime, nullTime(trade.ExitTime), trade.Fees,
		nullFloat(trade.StopLoss), nullFloat(trade.TakeProfit), string(tags),
		string(trade.MarketSession()), trade.Notes,
		nullFloat(trade.ProfitLoss), trade.ReturnPercentage, trade.RiskPercentage,
		trade.ID,
	)
	if err != nil {
		r.logger.Error(ctx, err, "Failed to update trade", map[string]interface{}{"trade_id": trade.ID})
		return fmt.Errorf("%w: updating trade '%s': %v", ports.ErrUpdateFailed, trade.ID, err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: checking update result for trade '%s': %v", ports.ErrUpdateFailed, trade.ID, err)
	}
	if rows == 0 {
		return fmt.Errorf("%w: trade '%s'", ports.ErrNotFound, trade.ID)
	}
	return nil
}

// Delete removes a trade by ID.
func (r *Repository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM trades WHERE id = ?`, id)
	if err != nil {
		r.logger.Error(ctx, err, "Failed to delete trade", map[string]interface{}{"trade_id": id})
		return fmt.Errorf("%w: deleting trade '%s': %v", ports.ErrDeleteFailed, id, err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: checking delete result for trade '%s': %v", ports.ErrDeleteFailed, id, err)
	}
	if rows == 0 {
		return fmt.Errorf("%w: trade '%s'", ports.ErrNotFound, id)
	}
	return nil
}

const tradeColumns = `
	id, symbol, instrument, direction, entry_price, exit_price, quantity,
	entry_time, exit_time, fees, stop_loss, take_profit, tags,
	market_session, notes, profit_loss, return_percentage, risk_percentage`

// FindByID retrieves a trade by its unique ID. Returns nil, nil if not found.
func (r *Repository) FindByID(ctx context.Context, id string) (*domain.Trade, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+tradeColumns+` FROM trades WHERE id = ?`, id)
	trade, err := scanTrade(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.logger.Error(ctx, err, "Failed to find trade by ID", map[string]interface{}{"trade_id": id})
		return nil, fmt.Errorf("%w: finding trade '%s': %v", ports.ErrQueryFailed, id, err)
	}
	return trade, nil
}

// FindAll retrieves all trades, ordered by entry time descending.
func (r *Repository) FindAll(ctx context.Context) ([]*domain.Trade, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+tradeColumns+` FROM trades ORDER BY entry_time DESC`)
	if err != nil {
		r.logger.Error(ctx, err, "Failed to query trades")
		return nil, fmt.Errorf("%w: querying trades: %v", ports.ErrQueryFailed, err)
	}
	defer rows.Close()
	return collectTrades(rows)
}

// FindBySymbol retrieves the most recent trades for a given symbol, up to a limit.
func (r *Repository) FindBySymbol(ctx context.Context, symbol string, limit int) ([]*domain.Trade, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+tradeColumns+` FROM trades WHERE symbol = ? ORDER BY entry_time DESC LIMIT ?`,
		symbol, limit)
	if err != nil {
		r.logger.Error(ctx, err, "Failed to query trades by symbol", map[string]interface{}{"symbol": symbol})
		return nil, fmt.Errorf("%w: querying trades for '%s': %v", ports.ErrQueryFailed, symbol, err)
	}
	defer rows.Close()
	return collectTrades(rows)
}

// scanner abstracts *sql.Row and *sql.Rows for scanTrade.
type scanner interface {
	Scan(dest ...interface{}) error
}

func scanTrade(s scanner) (*domain.Trade, error) {
	var (
		t          domain.Trade
		instrument string
		direction  string
		session    string
		tagsJSON   string
		exitPrice  sql.NullFloat64
		exitTime   sql.NullTime
		stopLoss   sql.NullFloat64
		takeProfit sql.NullFloat64
		profitLoss sql.NullFloat64
	)
	err := s.Scan(
		&t.ID, &t.Symbol, &instrument, &direction, &t.EntryPrice, &exitPrice,
		&t.Quantity, &t.EntryTime, &exitTime, &t.Fees, &stopLoss, &takeProfit,
		&tagsJSON, &session, &t.Notes, &profitLoss, &t.ReturnPercentage,
		&t.RiskPercentage,
	)
	if err != nil {
		return nil, err
	}

	t.Instrument = domain.InstrumentClass(instrument)
	t.Direction = domain.Direction(direction)
	t.Session = domain.ParseMarketSession(session)
	if exitPrice.Valid {
		t.ExitPrice = &exitPrice.Float64
	}
	if exitTime.Valid {
		et := exitTime.Time
		t.ExitTime = &et
	}
	if stopLoss.Valid {
		t.StopLoss = &stopLoss.Float64
	}
	if takeProfit.Valid {
		t.TakeProfit = &takeProfit.Float64
	}
	if profitLoss.Valid {
		t.ProfitLoss = &profitLoss.Float64
	}
	if err := json.Unmarshal([]byte(tagsJSON), &t.Tags); err != nil {
		return nil, fmt.Errorf("failed to decode tags for trade '%s': %w", t.ID, err)
	}
	return &t, nil
}

func collectTrades(rows *sql.Rows) ([]*domain.Trade, error) {
	var trades []*domain.Trade
	for rows.Next() {
		t, err := scanTrade(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanning trade row: %v", ports.ErrQueryFailed, err)
		}
		trades = append(trades, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating trade rows: %v", ports.ErrQueryFailed, err)
	}
	return trades, nil
}

func nullFloat(f *float64) sql.NullFloat64 {
	if f == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *f, Valid: true}
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}
