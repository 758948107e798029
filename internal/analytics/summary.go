package analytics

import (
	"time"

	"tradejournal/internal/domain"
)

// StatsSummary holds the portfolio-level scalar statistics shown on
// dashboards. Unlike Bucket, the win/loss split here is strict: wins are
// P&L > 0, losses P&L < 0, and break-even trades are counted separately.
// Both conventions exist on purpose; unifying them would change displayed
// numbers.
type StatsSummary struct {
	TotalTrades     int     `json:"totalTrades"`
	WinningTrades   int     `json:"winningTrades"`
	LosingTrades    int     `json:"losingTrades"`
	BreakEvenTrades int     `json:"breakEvenTrades"`
	WinRate         float64 `json:"winRate"` // Percentage of total, 0 for empty input
	GrossProfit     float64 `json:"grossProfit"`
	GrossLoss       float64 `json:"grossLoss"` // Positive magnitude
	NetProfit       float64 `json:"netProfit"`
	// ProfitFactor is grossProfit/grossLoss. When grossLoss is 0 it carries
	// grossProfit itself as the "infinite" sentinel; display layers render
	// that as an infinity symbol when positive.
	ProfitFactor float64 `json:"profitFactor"`
	AvgWin       float64 `json:"avgWin"`
	AvgLoss      float64 `json:"avgLoss"` // Positive magnitude; display layers negate
	LargestWin   float64 `json:"largestWin"`
	LargestLoss  float64 `json:"largestLoss"` // Positive magnitude
}

// Summarize reduces a trade list into its StatsSummary. Open trades count
// toward TotalTrades only. Never errors: every ratio has a defined value for
// the empty case.
func Summarize(trades []*domain.Trade) StatsSummary {
	var s StatsSummary
	s.TotalTrades = len(trades)

	for _, t := range trades {
		pl := NetProfitLoss(t)
		if pl == nil {
			continue
		}
		s.NetProfit += *pl
		switch {
		case *pl > 0:
			s.WinningTrades++
			s.GrossProfit += *pl
			if *pl > s.LargestWin {
				s.LargestWin = *pl
			}
		case *pl < 0:
			s.LosingTrades++
			s.GrossLoss += -*pl
			if -*pl > s.LargestLoss {
				s.LargestLoss = -*pl
			}
		default:
			s.BreakEvenTrades++
		}
	}

	if s.TotalTrades > 0 {
		s.WinRate = float64(s.WinningTrades) / float64(s.TotalTrades) * 100
	}
	if s.WinningTrades > 0 {
		s.AvgWin = s.GrossProfit / float64(s.WinningTrades)
	}
	if s.LosingTrades > 0 {
		s.AvgLoss = s.GrossLoss / float64(s.LosingTrades)
	}
	if s.GrossLoss > 0 {
		s.ProfitFactor = s.GrossProfit / s.GrossLoss
	} else {
		s.ProfitFactor = s.GrossProfit
	}
	return s
}

// DateRange names the pre-filter windows the dashboards offer.
type DateRange string

const (
	RangeWeek    DateRange = "week"    // today - 7 days
	RangeMonth   DateRange = "month"   // first of the current month
	RangeQuarter DateRange = "quarter" // today - 90 days
	RangeYear    DateRange = "year"    // today - 365 days
	RangeAll     DateRange = "all"     // earliest trade entry, or today when empty
)

// RangeStart resolves a named range to its start date, truncated to
// midnight in now's location.
func RangeStart(r DateRange, trades []*domain.Trade, now time.Time) time.Time {
	var start time.Time
	switch r {
	case RangeWeek:
		start = now.AddDate(0, 0, -7)
	case RangeMonth:
		start = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	case RangeQuarter:
		start = now.AddDate(0, 0, -90)
	case RangeYear:
		start = now.AddDate(0, 0, -365)
	default: // RangeAll
		start = now
		for _, t := range trades {
			if t.EntryTime.Before(start) {
				start = t.EntryTime
			}
		}
	}
	return startOfDay(start, now.Location())
}

// FilterRange returns the trades entered on or after the range start. The
// result is a fresh slice; the input is never modified.
func FilterRange(trades []*domain.Trade, r DateRange, now time.Time) []*domain.Trade {
	if r == "" || r == RangeAll {
		out := make([]*domain.Trade, len(trades))
		copy(out, trades)
		return out
	}
	start := RangeStart(r, trades, now)
	out := make([]*domain.Trade, 0, len(trades))
	for _, t := range trades {
		if !t.EntryTime.Before(start) {
			out = append(out, t)
		}
	}
	return out
}

// DailyPoint is one calendar day on the cumulative P&L curve.
type DailyPoint struct {
	Date         time.Time `json:"date"`
	DailyPL      float64   `json:"dailyPL"`
	CumulativePL float64   `json:"cumulativePL"`
}

// CumulativeSeries builds one point per calendar day from the range start
// through today inclusive, including days with no trades. P&L is attributed
// to the day the trade exited; open trades contribute nothing.
func CumulativeSeries(trades []*domain.Trade, r DateRange, now time.Time) []DailyPoint {
	loc := now.Location()
	start := RangeStart(r, trades, now)
	end := startOfDay(now, loc)

	dailyPL := make(map[string]float64)
	for _, t := range trades {
		pl := NetProfitLoss(t)
		if pl == nil || t.ExitTime == nil {
			continue
		}
		dailyPL[t.ExitTime.In(loc).Format("2006-01-02")] += *pl
	}

	var series []DailyPoint
	var running float64
	for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
		pl := dailyPL[day.Format("2006-01-02")]
		running += pl
		series = append(series, DailyPoint{Date: day, DailyPL: pl, CumulativePL: running})
	}
	return series
}

func startOfDay(t time.Time, loc *time.Location) time.Time {
	t = t.In(loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}
