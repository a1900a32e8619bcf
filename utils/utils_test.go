package utils

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"skorpik-value/models"
)

func TestFormatValue(t *testing.T) {
	tests := []struct {
		in   int64
		want string
	}{
		{0, "0"},
		{999, "999"},
		{1000, "1,000"},
		{12500, "12,500"},
		{1234567, "1,234,567"},
		{-50, "-50"},
		{-125000, "-125,000"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatValue(tt.in))
	}
}

func TestFormatDemand(t *testing.T) {
	assert.Equal(t, "7.5/10", FormatDemand(7.5))
	assert.Equal(t, "9/10", FormatDemand(9))
	assert.Equal(t, "2.0", FormatDemandDifference(decimal.NewFromFloat(-2)))
	assert.Equal(t, "0.3", FormatDemandDifference(decimal.NewFromFloat(0.3)))
}

func TestRarityName(t *testing.T) {
	assert.Equal(t, "Божественный", RarityName(models.RarityDivine))
	assert.Equal(t, "Эксклюзивный", RarityName(models.RarityExclusive))
	assert.Equal(t, "Пасc", RarityName(models.RarityPass))
	assert.Equal(t, "Mythic", RarityName("Mythic"))
	assert.Equal(t, "divine", RarityClass(models.RarityDivine))
}

func TestStatusAndDemandClass(t *testing.T) {
	assert.Equal(t, "status-big-rising", StatusClass(models.StatusBigRising))
	assert.Equal(t, "status-stable", StatusClass("Big Stable"))
	assert.Equal(t, "demand-dropping", DemandClass(models.StatusDropping))
	assert.Equal(t, "demand-stable", DemandClass(""))
}

func TestValueAndTrendClass(t *testing.T) {
	assert.Equal(t, "success", ValueClass(10))
	assert.Equal(t, "danger", ValueClass(-1))
	assert.Equal(t, "warning", ValueClass(0))
	assert.Equal(t, "danger", TrendClass(models.TrendDown))
	assert.Equal(t, "warning", TrendClass(models.TrendFlat))
}

func TestTruncateName(t *testing.T) {
	assert.Equal(t, "Short", TruncateName("Short", 20))
	assert.Equal(t, "Exactly twenty chars", TruncateName("Exactly twenty chars", 20))
	assert.Equal(t, "Golden Scorpion K...", TruncateName("Golden Scorpion King Edition", 20))
	assert.Equal(t, "Божественный скор...", TruncateName("Божественный скорпион", 20))
}

func TestCatalogCard(t *testing.T) {
	card := CatalogCard(models.Item{ID: "x", Name: "X", Rarity: models.RarityPass, Value: 12000, Demand: 8, Status: models.StatusRising})
	assert.Equal(t, "Пасc", card.RarityName)
	assert.Equal(t, "12,000", card.ValueLabel)
	assert.Equal(t, "status-rising", card.StatusClass)
	assert.Equal(t, "demand-rising", card.DemandClass)
	assert.InDelta(t, 80.0, card.DemandPercent, 1e-9)
}

func TestParseImageFileName(t *testing.T) {
	id, err := ParseImageFileName("Golden-Scorpion.PNG")
	require.NoError(t, err)
	assert.Equal(t, "golden-scorpion", id)

	id, err = ParseImageFileName("pass1.jpeg")
	require.NoError(t, err)
	assert.Equal(t, "pass1", id)

	_, err = ParseImageFileName("notes.txt")
	assert.Error(t, err)
	_, err = ParseImageFileName(".png")
	assert.Error(t, err)
}
