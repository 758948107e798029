package analytics

import (
	"math"

	"tradejournal/internal/domain"
)

// round2 rounds to two decimal places, half away from zero. Applied once,
// where a P&L value leaves the calculator.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// ComputeProfitLoss returns the gross realized P&L in account currency for a
// closed position, rounded to two decimal places. A zero quantity yields
// exactly 0.
func ComputeProfitLoss(entry, exit, quantity float64, dir domain.Direction, class domain.InstrumentClass, symbol string) float64 {
	if quantity == 0 {
		return 0
	}
	sizing := SizingFor(class, symbol)
	priceDiff := exit - entry
	if dir == domain.Short {
		priceDiff = entry - exit
	}
	return round2(priceDiff * quantity * sizing.ContractSize)
}

// NetProfitLoss computes the trade's net P&L (gross minus fees). Returns nil
// for an open trade: P&L is undefined until exit, never zero.
func NetProfitLoss(t *domain.Trade) *float64 {
	if t.ExitPrice == nil {
		return nil
	}
	class := Classify(t.Symbol, t.Instrument)
	gross := ComputeProfitLoss(t.EntryPrice, *t.ExitPrice, t.Quantity, t.Direction, class, t.Symbol)
	net := round2(gross - t.Fees)
	return &net
}
