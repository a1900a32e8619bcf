package catalog

import (
	"cmp"
	"slices"
	"strings"

	"skorpik-value/models"
)

// View filters and orders items for display. It never mutates items and
// returns a freshly allocated slice on every call.
//
// Under asc the "-high" keys put the largest values first and the "-low"
// keys the smallest, while name sorts A to Z. desc is the exact reversal of
// the asc sequence. Equal keys keep catalog order under asc.
func View(items []models.Item, state models.ViewState) []models.Item {
	filter := state.ActiveFilter
	if filter == "" {
		filter = models.FilterAll
	}
	term := strings.ToLower(state.SearchTerm)

	out := make([]models.Item, 0, len(items))
	for _, item := range items {
		if filter != models.FilterAll && string(item.Rarity) != filter {
			continue
		}
		if term != "" && !strings.Contains(strings.ToLower(item.Name), term) {
			continue
		}
		out = append(out, item)
	}

	slices.SortStableFunc(out, comparator(state.SortKey))
	if state.SortOrder == models.SortDesc {
		slices.Reverse(out)
	}
	return out
}

// comparator returns the asc ordering for a sort key; unknown keys sort by name
func comparator(key models.SortKey) func(a, b models.Item) int {
	switch key {
	case models.SortByPriceHigh:
		return func(a, b models.Item) int { return cmp.Compare(b.Value, a.Value) }
	case models.SortByPriceLow:
		return func(a, b models.Item) int { return cmp.Compare(a.Value, b.Value) }
	case models.SortByDemandHigh:
		return func(a, b models.Item) int { return cmp.Compare(b.Demand, a.Demand) }
	case models.SortByDemandLow:
		return func(a, b models.Item) int { return cmp.Compare(a.Demand, b.Demand) }
	default:
		return func(a, b models.Item) int {
			return strings.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name))
		}
	}
}
