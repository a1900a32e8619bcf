package pricing

import (
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"skorpik-value/ledger"
	"skorpik-value/models"
)

// TotalValue returns Σ quantity × value for one side
func TotalValue(entries []models.ResolvedEntry) int64 {
	var total int64
	for _, e := range entries {
		total += int64(e.Quantity) * e.Item.Value
	}
	return total
}

// TotalQuantity returns Σ quantity for one side
func TotalQuantity(entries []models.ResolvedEntry) int {
	total := 0
	for _, e := range entries {
		total += e.Quantity
	}
	return total
}

// AverageDemand returns the quantity-weighted demand of one side, or 0 for an empty side
func AverageDemand(entries []models.ResolvedEntry) decimal.Decimal {
	qty := TotalQuantity(entries)
	if qty == 0 {
		return decimal.Zero
	}

	weighted := decimal.Zero
	for _, e := range entries {
		weighted = weighted.Add(decimal.NewFromFloat(e.Item.Demand).Mul(decimal.NewFromInt(int64(e.Quantity))))
	}
	return weighted.Div(decimal.NewFromInt(int64(qty)))
}

// Summarize computes the aggregates of one side
func Summarize(entries []models.ResolvedEntry) models.SideTotals {
	return models.SideTotals{
		TotalValue:    TotalValue(entries),
		TotalQuantity: TotalQuantity(entries),
		AverageDemand: AverageDemand(entries),
	}
}

// Compare derives the differentials of the receive side against the give side.
// The demand difference is rounded to one decimal place, halves away from zero.
func Compare(give, receive []models.ResolvedEntry) models.Comparison {
	demandDiff := AverageDemand(receive).Sub(AverageDemand(give)).Round(1)

	trend := models.TrendFlat
	switch demandDiff.Sign() {
	case 1:
		trend = models.TrendUp
	case -1:
		trend = models.TrendDown
	}

	return models.Comparison{
		ValueDifference:  TotalValue(receive) - TotalValue(give),
		DemandDifference: demandDiff,
		DemandTrend:      trend,
	}
}

// Engine runs comparisons over a live ledger
type Engine struct {
	logger *zap.Logger
}

// NewEngine creates a comparison engine. A nil logger discards output.
func NewEngine(logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{logger: logger}
}

// CompareLedger resolves both sides against the catalog and summarizes them.
// Entries whose item is no longer in the catalog are left out of every
// aggregate and reported in Skipped.
func (e *Engine) CompareLedger(l *ledger.TradeLedger, lookup ledger.Lookup) models.TradeSummary {
	give, missingGive := l.Give().Resolve(lookup)
	receive, missingRecv := l.Receive().Resolve(lookup)

	skipped := append(missingGive, missingRecv...)
	for _, id := range skipped {
		e.logger.Warn("CompareLedger: skipping entry with unknown item", zap.String("itemId", id))
	}

	summary := models.TradeSummary{
		Give:       give,
		Receive:    receive,
		GiveTotals: Summarize(give),
		RecvTotals: Summarize(receive),
		Comparison: Compare(give, receive),
		Skipped:    skipped,
	}

	e.logger.Debug("CompareLedger: trade compared",
		zap.Int64("valueDifference", summary.Comparison.ValueDifference),
		zap.String("demandDifference", summary.Comparison.DemandDifference.StringFixed(1)),
		zap.String("trend", string(summary.Comparison.DemandTrend)),
	)
	return summary
}
