package analytics

import (
	"math"

	"tradejournal/internal/domain"
)

// basisFor picks the denominator for percentage metrics: the account balance
// when one is configured, otherwise the trade's entry notional.
func basisFor(t *domain.Trade, accountBalance float64) float64 {
	if accountBalance > 0 {
		return accountBalance
	}
	sizing := SizingForSymbol(t.Symbol, t.Instrument)
	return t.EntryPrice * t.Quantity * sizing.ContractSize
}

// ReturnPercentage expresses the trade's net P&L as a percentage of the
// basis. Returns 0 for open trades and when no basis can be established.
func ReturnPercentage(t *domain.Trade, accountBalance float64) float64 {
	pl := NetProfitLoss(t)
	if pl == nil {
		return 0
	}
	basis := basisFor(t, accountBalance)
	if basis <= 0 {
		return 0
	}
	return round2(*pl / basis * 100)
}

// RiskAmount is the account-currency amount at risk between entry and stop.
// 0 when no stop-loss is set: risk is simply unquantified, not an error.
func RiskAmount(t *domain.Trade) float64 {
	if t.StopLoss == nil {
		return 0
	}
	sizing := SizingForSymbol(t.Symbol, t.Instrument)
	return math.Abs(t.EntryPrice-*t.StopLoss) * t.Quantity * sizing.ContractSize
}

// RiskPercentage expresses the risked amount as a percentage of the basis.
func RiskPercentage(t *domain.Trade, accountBalance float64) float64 {
	risk := RiskAmount(t)
	if risk == 0 {
		return 0
	}
	basis := basisFor(t, accountBalance)
	if basis <= 0 {
		return 0
	}
	return round2(risk / basis * 100)
}

// RMultiple is the trade's net P&L as a multiple of its initial risked
// amount. 0 when the trade is open or risk is unquantified.
func RMultiple(t *domain.Trade) float64 {
	pl := NetProfitLoss(t)
	risk := RiskAmount(t)
	if pl == nil || risk == 0 {
		return 0
	}
	return *pl / risk
}
