package analytics

import (
	"math"
	"testing"
	"time"

	"tradejournal/internal/domain"
)

func fptr(v float64) *float64 { return &v }

func tptr(t time.Time) *time.Time { return &t }

func TestComputeProfitLoss(t *testing.T) {
	tests := []struct {
		name     string
		entry    float64
		exit     float64
		quantity float64
		dir      domain.Direction
		class    domain.InstrumentClass
		symbol   string
		want     float64
	}{
		// One standard lot of EUR/USD moving 50 pips.
		{"forex long", 1.1000, 1.1050, 1.0, domain.Long, domain.Forex, "EUR/USD", 500.00},
		{"forex short same prices", 1.1000, 1.1050, 1.0, domain.Short, domain.Forex, "EUR/USD", -500.00},
		{"jpy pair long", 150.00, 150.50, 1.0, domain.Long, domain.Forex, "USD/JPY", 50000.00},
		{"stock long", 100.0, 110.0, 10, domain.Long, domain.Stock, "AAPL", 100.00},
		{"stock short losing", 100.0, 110.0, 10, domain.Short, domain.Stock, "AAPL", -100.00},
		{"gold long", 1900.0, 1910.0, 0.5, domain.Long, domain.Commodity, "XAUUSD", 500.00},
		{"silver long", 24.0, 25.0, 1.0, domain.Long, domain.Commodity, "XAGUSD", 50.00},
		{"zero quantity is zero not error", 100.0, 110.0, 0, domain.Long, domain.Stock, "AAPL", 0},
		{"rounds to two decimals", 1.00001, 1.00002, 0.33, domain.Long, domain.Forex, "EUR/USD", 0.33},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeProfitLoss(tt.entry, tt.exit, tt.quantity, tt.dir, tt.class, tt.symbol)
			if got != tt.want {
				t.Errorf("ComputeProfitLoss() = %v, want %v", got, tt.want)
			}
		})
	}
}

// A long from E to X equals the negative of a short from X to E with the same
// quantity and class.
func TestComputeProfitLossAntisymmetry(t *testing.T) {
	prices := []struct{ entry, exit float64 }{
		{1.1000, 1.1050},
		{150.00, 149.25},
		{0.9991, 1.0210},
	}
	for _, p := range prices {
		long := ComputeProfitLoss(p.entry, p.exit, 2.5, domain.Long, domain.Forex, "EUR/USD")
		short := ComputeProfitLoss(p.exit, p.entry, 2.5, domain.Short, domain.Forex, "EUR/USD")
		if long != short {
			t.Errorf("entry=%v exit=%v: long %v != flipped short %v", p.entry, p.exit, long, short)
		}
		if math.Abs(long+ComputeProfitLoss(p.entry, p.exit, 2.5, domain.Short, domain.Forex, "EUR/USD")) > 1e-9 {
			t.Errorf("entry=%v exit=%v: long and short with same prices should negate", p.entry, p.exit)
		}
	}
}

func TestNetProfitLoss(t *testing.T) {
	exit := time.Date(2026, 3, 10, 17, 0, 0, 0, time.UTC)
	closed := &domain.Trade{
		Symbol:     "EUR/USD",
		Direction:  domain.Long,
		EntryPrice: 1.1000,
		ExitPrice:  fptr(1.1050),
		Quantity:   1.0,
		EntryTime:  exit.Add(-2 * time.Hour),
		ExitTime:   tptr(exit),
		Fees:       7.50,
	}
	got := NetProfitLoss(closed)
	if got == nil {
		t.Fatal("expected P&L for closed trade, got nil")
	}
	if *got != 492.50 {
		t.Errorf("net P&L = %v, want 492.50 (gross 500.00 minus fees 7.50)", *got)
	}

	open := &domain.Trade{
		Symbol:     "EUR/USD",
		Direction:  domain.Long,
		EntryPrice: 1.1000,
		Quantity:   1.0,
		EntryTime:  exit.Add(-2 * time.Hour),
	}
	// Open positions have no P&L, not a zero P&L.
	if pl := NetProfitLoss(open); pl != nil {
		t.Errorf("expected nil P&L for open trade, got %v", *pl)
	}
}
