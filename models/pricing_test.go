package models

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComparisonJSON(t *testing.T) {
	cmp := Comparison{
		ValueDifference:  -50,
		DemandDifference: decimal.NewFromInt(2),
		DemandTrend:      TrendUp,
	}
	raw, err := json.Marshal(cmp)
	require.NoError(t, err)
	assert.JSONEq(t, `{"valueDifference":-50,"demandDifference":"2.0","demandTrend":"up"}`, string(raw))

	raw, err = json.Marshal(Comparison{})
	require.NoError(t, err)
	assert.JSONEq(t, `{"valueDifference":0,"demandDifference":"0.0","demandTrend":"flat"}`, string(raw))

	var back Comparison
	require.NoError(t, json.Unmarshal([]byte(`{"valueDifference":-50,"demandDifference":"2.0","demandTrend":"up"}`), &back))
	assert.True(t, back.DemandDifference.Equal(decimal.NewFromInt(2)))
}

func TestSideTotalsJSON(t *testing.T) {
	totals := SideTotals{TotalValue: 200, TotalQuantity: 2, AverageDemand: decimal.RequireFromString("5.25").Round(1)}
	raw, err := json.Marshal(totals)
	require.NoError(t, err)
	assert.JSONEq(t, `{"totalValue":200,"totalQuantity":2,"averageDemand":"5.3"}`, string(raw))
}
