package utils

import (
	"strings"

	"skorpik-value/models"
)

// rarityNames maps rarities to the names shown on catalog cards
var rarityNames = map[models.Rarity]string{
	models.RarityDivine:    "Божественный",
	models.RarityExclusive: "Эксклюзивный",
	models.RarityPass:      "Пасc",
}

// RarityName returns the display name of a rarity, or the rarity itself when unmapped
func RarityName(r models.Rarity) string {
	if name, exists := rarityNames[r]; exists {
		return name
	}
	return string(r)
}

// RarityClass returns the CSS class of a rarity badge
func RarityClass(r models.Rarity) string {
	return strings.ToLower(string(r))
}

// StatusClass maps a market status to its text CSS class
func StatusClass(s models.Status) string {
	return "status-" + string(models.ParseStatus(string(s)))
}

// DemandClass maps a market status to the demand bar CSS class
func DemandClass(s models.Status) string {
	return "demand-" + string(models.ParseStatus(string(s)))
}

// ValueClass colours a value differential: gain, loss or even
func ValueClass(diff int64) string {
	switch {
	case diff > 0:
		return "success"
	case diff < 0:
		return "danger"
	}
	return "warning"
}

// TrendClass colours a demand trend the same way as ValueClass
func TrendClass(t models.DemandTrend) string {
	switch t {
	case models.TrendUp:
		return "success"
	case models.TrendDown:
		return "danger"
	}
	return "warning"
}

// TruncateName shortens names longer than max runes to their first max-3
// runes followed by "..."
func TruncateName(name string, max int) string {
	runes := []rune(name)
	if len(runes) <= max || max <= 3 {
		return name
	}
	return string(runes[:max-3]) + "..."
}

// CatalogCard prepares an item for a catalog grid
func CatalogCard(item models.Item) models.CatalogCard {
	return models.CatalogCard{
		Item:          item,
		RarityName:    RarityName(item.Rarity),
		ValueLabel:    FormatValue(item.Value),
		StatusClass:   StatusClass(item.Status),
		DemandClass:   DemandClass(item.Status),
		DemandPercent: item.DemandPercent(),
	}
}
