package models

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// DemandTrend is the direction of the demand differential
type DemandTrend string

const (
	TrendUp   DemandTrend = "up"
	TrendDown DemandTrend = "down"
	TrendFlat DemandTrend = "flat"
)

// Symbol returns the arrow shown next to the demand differential
func (t DemandTrend) Symbol() string {
	switch t {
	case TrendUp:
		return "↑"
	case TrendDown:
		return "↓"
	}
	return "="
}

// SideTotals holds the aggregates of one trade side
type SideTotals struct {
	TotalValue    int64           `json:"totalValue"`
	TotalQuantity int             `json:"totalQuantity"`
	AverageDemand decimal.Decimal `json:"averageDemand"`
}

// Comparison is the differential between the receive and give sides.
// A positive ValueDifference means the receiving side gains.
type Comparison struct {
	ValueDifference  int64           `json:"valueDifference"`
	DemandDifference decimal.Decimal `json:"demandDifference"` // Rounded to 1 decimal place
	DemandTrend      DemandTrend     `json:"demandTrend"`
}

// MarshalJSON writes demand figures with exactly one decimal ("2.0") and
// reports a zero-value trend as flat.
func (c Comparison) MarshalJSON() ([]byte, error) {
	trend := c.DemandTrend
	if trend == "" {
		trend = TrendFlat
	}
	return json.Marshal(struct {
		ValueDifference  int64       `json:"valueDifference"`
		DemandDifference string      `json:"demandDifference"`
		DemandTrend      DemandTrend `json:"demandTrend"`
	}{c.ValueDifference, c.DemandDifference.StringFixed(1), trend})
}

func (t SideTotals) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		TotalValue    int64  `json:"totalValue"`
		TotalQuantity int    `json:"totalQuantity"`
		AverageDemand string `json:"averageDemand"`
	}{t.TotalValue, t.TotalQuantity, t.AverageDemand.StringFixed(1)})
}

// TradeSummary is the full calculator result for both sides
type TradeSummary struct {
	Give       []ResolvedEntry `json:"give"`
	Receive    []ResolvedEntry `json:"receive"`
	GiveTotals SideTotals      `json:"giveTotals"`
	RecvTotals SideTotals      `json:"receiveTotals"`
	Comparison Comparison      `json:"comparison"`
	Skipped    []string        `json:"skipped,omitempty"` // Item ids that could not be resolved
}

// Snapshot is the read-only view of a trade handed to the export adapter
type Snapshot struct {
	TradeSummary
	GeneratedAt time.Time `json:"generatedAt"`
}
