package domain

import "time"

// Trade represents a single journaled trade. A trade is open while
// ExitPrice/ExitTime are nil; derived fields are only defined once closed.
type Trade struct {
	ID         string          `json:"id"`         // Opaque unique identifier (UUID)
	Symbol     string          `json:"symbol"`     // Instrument identifier (e.g. "EUR/USD", "AAPL")
	Instrument InstrumentClass `json:"instrument"` // Explicit class tag; empty means "classify from symbol"
	Direction  Direction       `json:"direction"`  // long or short
	EntryPrice float64         `json:"entryPrice"`
	ExitPrice  *float64        `json:"exitPrice,omitempty"` // nil while the position is open
	Quantity   float64         `json:"quantity"`            // Lot / position size
	EntryTime  time.Time       `json:"entryTime"`
	ExitTime   *time.Time      `json:"exitTime,omitempty"` // nil while the position is open
	Fees       float64         `json:"fees"`               // Commission and fees, subtracted from gross P&L
	StopLoss   *float64        `json:"stopLoss,omitempty"`
	TakeProfit *float64        `json:"takeProfit,omitempty"`
	Tags       []string        `json:"tags,omitempty"`
	Session    MarketSession   `json:"marketSession"` // Empty treated as SessionOther
	Notes      string          `json:"notes,omitempty"`

	// Derived display cache. Recomputed by the service on every write; the
	// analytics engine is the source of truth, never these stored copies.
	ProfitLoss       *float64 `json:"profitLoss,omitempty"` // Net P&L; nil while open
	ReturnPercentage float64  `json:"returnPercentage"`
	RiskPercentage   float64  `json:"riskPercentage"`
}

// IsOpen reports whether the trade has no recorded exit.
func (t *Trade) IsOpen() bool {
	return t.ExitPrice == nil
}

// MarketSession returns the trade's session, defaulting to SessionOther when
// the record carries no label.
func (t *Trade) MarketSession() MarketSession {
	if t.Session == "" {
		return SessionOther
	}
	return t.Session
}
