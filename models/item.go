package models

import "strings"

// Rarity is the closed set of item tiers used for filtering
type Rarity string

const (
	RarityDivine    Rarity = "Divine"
	RarityExclusive Rarity = "Exclusive"
	RarityPass      Rarity = "Pass"
)

// FilterAll matches every rarity
const FilterAll = "all"

// Rarities lists the known rarities in display order
var Rarities = []Rarity{RarityDivine, RarityExclusive, RarityPass}

// IsKnownRarity reports whether r is one of the closed set of rarities
func IsKnownRarity(r string) bool {
	for _, known := range Rarities {
		if string(known) == r {
			return true
		}
	}
	return false
}

// Status describes the market trend of an item
type Status string

const (
	StatusStable    Status = "stable"
	StatusRising    Status = "rising"
	StatusBigRising Status = "big-rising"
	StatusDropping  Status = "dropping"
)

// ParseStatus normalizes free-form status text ("Big Rising", "STABLE", ...).
// Anything unrecognised is treated as stable.
func ParseStatus(s string) Status {
	normalized := strings.ToLower(strings.TrimSpace(s))
	normalized = strings.ReplaceAll(normalized, "_", " ")
	normalized = strings.ReplaceAll(normalized, "-", " ")

	switch {
	case strings.Contains(normalized, "stable"):
		return StatusStable
	case strings.Contains(normalized, "big rising"):
		return StatusBigRising
	case strings.Contains(normalized, "rising"):
		return StatusRising
	case strings.Contains(normalized, "dropping"):
		return StatusDropping
	}
	return StatusStable
}

// UnmarshalText lets JSON catalogs carry display-style status strings
func (s *Status) UnmarshalText(text []byte) error {
	*s = ParseStatus(string(text))
	return nil
}

// Item represents a tradeable catalog entry
type Item struct {
	ID     string  `json:"id"`
	Name   string  `json:"name"`
	Rarity Rarity  `json:"rarity"`
	Value  int64   `json:"value"`
	Demand float64 `json:"demand"`
	Status Status  `json:"status"`
	Image  string  `json:"image,omitempty"` // Empty means the presentation layer uses a placeholder
}

// DemandPercent returns demand as a 0-100 bar width
func (i Item) DemandPercent() float64 {
	return i.Demand / 10 * 100
}

// ItemImage links a catalog item to an image found in an external folder
type ItemImage struct {
	ItemID   string `json:"itemId"`
	FileID   string `json:"fileId"`
	FileName string `json:"fileName"`
	ImageURL string `json:"imageUrl"`
}
