package analytics

import (
	"tradejournal/internal/domain"
)

// Bucket holds the reduction of one aggregation group. The win/loss split at
// bucket level treats break-even trades as losses (loss means "not strictly
// positive"); they contribute nothing to either gross figure. This is
// deliberately different from the portfolio-level split in StatsSummary,
// which counts break-even trades separately.
type Bucket struct {
	TradeCount  int     `json:"tradeCount"`
	WinCount    int     `json:"winCount"`
	LossCount   int     `json:"lossCount"`
	GrossProfit float64 `json:"grossProfit"`
	GrossLoss   float64 `json:"grossLoss"`
	NetPL       float64 `json:"netPL"`
}

// add folds one trade's P&L into the bucket. Open trades count toward
// TradeCount only: their P&L is undefined.
func (b *Bucket) add(t *domain.Trade) {
	b.TradeCount++
	pl := NetProfitLoss(t)
	if pl == nil {
		return
	}
	if *pl > 0 {
		b.WinCount++
		b.GrossProfit += *pl
	} else {
		b.LossCount++
		b.GrossLoss += -*pl
	}
	b.NetPL += *pl
}

// Aggregate groups trades by an arbitrary key function and reduces each
// group into a Bucket. Every trade lands in exactly one bucket; the sum of
// TradeCount across buckets always equals len(trades). Date-range filtering
// is the caller's job, applied before bucketing.
func Aggregate[K comparable](trades []*domain.Trade, keyFn func(*domain.Trade) K) map[K]Bucket {
	buckets := make(map[K]Bucket)
	for _, t := range trades {
		key := keyFn(t)
		b := buckets[key]
		b.add(t)
		buckets[key] = b
	}
	return buckets
}

// AggregateByTag buckets each trade under every one of its tags; a trade
// with no tags lands in the "untagged" bucket. Multi-tagged trades appear in
// several buckets, so tag bucket counts are not additive across buckets.
func AggregateByTag(trades []*domain.Trade) map[string]Bucket {
	buckets := make(map[string]Bucket)
	for _, t := range trades {
		tags := t.Tags
		if len(tags) == 0 {
			tags = []string{"untagged"}
		}
		for _, tag := range tags {
			b := buckets[tag]
			b.add(t)
			buckets[tag] = b
		}
	}
	return buckets
}

// Key functions for the grouping dimensions the dashboards use.

// ByDay keys a trade by its entry date (ISO date string).
func ByDay(t *domain.Trade) string {
	return t.EntryTime.Format("2006-01-02")
}

// ByWeekday keys a trade by its entry weekday ("Monday" .. "Sunday").
func ByWeekday(t *domain.Trade) string {
	return t.EntryTime.Weekday().String()
}

// BySession keys a trade by market session; missing labels group under
// "Other", never excluded.
func BySession(t *domain.Trade) string {
	return string(t.MarketSession())
}

// BySymbol keys a trade by its instrument symbol.
func BySymbol(t *domain.Trade) string {
	return t.Symbol
}
