// Package analytics is the trade performance engine: pure computation that
// turns journaled trades into P&L values, aggregation buckets, and the
// summary statistics rendered by dashboards. It performs no I/O, keeps no
// state, and never mutates its input, so it is safe to call concurrently.
package analytics

import (
	"strings"

	"tradejournal/internal/domain"
)

// Sizing holds the class-specific constants used to turn a price move into
// account-currency P&L. PipSize selects the correct forex branch (JPY pairs
// quote in 0.01 increments) and feeds pip-value displays; it does not enter
// the P&L formula itself.
type Sizing struct {
	ContractSize float64
	PipSize      float64
}

var cryptoPrefixes = []string{"BTC", "ETH", "XRP", "ADA", "DOT", "SOL"}

var stockSuffixes = []string{".SR", ".SA"}

var indexPrefixes = []string{"SPX", "NDX", "DJI", "FTSE", "TASI"}

var commodityPrefixes = []string{"XAU", "XAG", "CL", "NG"}

// Classify maps a symbol to an instrument class. An explicit hint from the
// trade record wins. Unknown symbols default to stock sizing; classification
// never fails.
func Classify(symbol string, hint domain.InstrumentClass) domain.InstrumentClass {
	if hint != "" {
		return hint
	}

	upper := strings.ToUpper(strings.TrimSpace(symbol))

	if strings.Contains(upper, "/") {
		return domain.Forex
	}
	for _, p := range cryptoPrefixes {
		if strings.HasPrefix(upper, p) {
			return domain.Crypto
		}
	}
	for _, s := range stockSuffixes {
		if strings.HasSuffix(upper, s) {
			return domain.Stock
		}
	}
	for _, p := range indexPrefixes {
		if strings.HasPrefix(upper, p) {
			return domain.Index
		}
	}
	for _, p := range commodityPrefixes {
		if strings.HasPrefix(upper, p) {
			return domain.Commodity
		}
	}
	return domain.Stock
}

// SizingFor resolves the contract size and pip size for a classified symbol.
// Forex contracts are standard 100k lots; gold trades 100 oz, silver 50 oz,
// other commodities 1000 units. Every other class multiplies the price move
// by the position size directly (contract size 1).
func SizingFor(class domain.InstrumentClass, symbol string) Sizing {
	upper := strings.ToUpper(symbol)
	switch class {
	case domain.Forex:
		if strings.Contains(upper, "JPY") {
			return Sizing{ContractSize: 100000, PipSize: 0.01}
		}
		return Sizing{ContractSize: 100000, PipSize: 0.0001}
	case domain.Commodity:
		switch {
		case strings.HasPrefix(upper, "XAU"):
			return Sizing{ContractSize: 100, PipSize: 0.01}
		case strings.HasPrefix(upper, "XAG"):
			return Sizing{ContractSize: 50, PipSize: 0.01}
		default:
			return Sizing{ContractSize: 1000, PipSize: 0.01}
		}
	default:
		return Sizing{ContractSize: 1, PipSize: 1}
	}
}

// SizingForSymbol classifies and sizes in one step.
func SizingForSymbol(symbol string, hint domain.InstrumentClass) Sizing {
	return SizingFor(Classify(symbol, hint), symbol)
}
