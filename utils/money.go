package utils

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// FormatValue formats an in-game value like "12,500".
// Uses comma as thousands separator, matching the catalog cards.
func FormatValue(amount int64) string {
	neg := amount < 0
	if neg {
		amount = -amount
	}

	s := strconv.FormatInt(amount, 10)
	if len(s) <= 3 {
		if neg {
			return "-" + s
		}
		return s
	}

	var b strings.Builder
	// Pre-allocate: digits + separators + sign
	b.Grow(len(s) + len(s)/3 + 1)
	if neg {
		b.WriteString("-")
	}

	// Insert separators from the left.
	rem := len(s) % 3
	if rem == 0 {
		rem = 3
	}
	b.WriteString(s[:rem])
	for i := rem; i < len(s); i += 3 {
		b.WriteByte(',')
		b.WriteString(s[i : i+3])
	}

	return b.String()
}

// FormatDemand renders a demand score as "7.5/10"
func FormatDemand(demand float64) string {
	return decimal.NewFromFloat(demand).String() + "/10"
}

// FormatDemandDifference renders the magnitude of a demand differential with
// one decimal; the direction is carried by the trend arrow next to it.
func FormatDemandDifference(diff decimal.Decimal) string {
	return diff.Abs().StringFixed(1)
}
