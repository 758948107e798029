package ports

import (
	"context"

	"tradejournal/internal/analytics"
)

// InsightGenerator turns computed performance statistics into natural-language
// insight text. Implementations call an external text-generation service; the
// engine itself never depends on them.
type InsightGenerator interface {
	GenerateInsight(ctx context.Context, summary analytics.StatsSummary, tradeCount int) (string, error)
}
