package models

// SortKey selects the catalog ordering
type SortKey string

const (
	SortByName       SortKey = "name"
	SortByPriceHigh  SortKey = "price-high"
	SortByPriceLow   SortKey = "price-low"
	SortByDemandHigh SortKey = "demand-high"
	SortByDemandLow  SortKey = "demand-low"
)

// IsValid reports whether k is a known sort key
func (k SortKey) IsValid() bool {
	switch k {
	case SortByName, SortByPriceHigh, SortByPriceLow, SortByDemandHigh, SortByDemandLow:
		return true
	}
	return false
}

// SortOrder flips the comparison direction of the chosen key
type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// IsValid reports whether o is asc or desc
func (o SortOrder) IsValid() bool {
	return o == SortAsc || o == SortDesc
}

// Toggle returns the opposite order
func (o SortOrder) Toggle() SortOrder {
	if o == SortAsc {
		return SortDesc
	}
	return SortAsc
}

// Tab identifies the active page of the front end
type Tab string

const (
	TabItems      Tab = "items"
	TabCalculator Tab = "calculator"
)

// IsValid reports whether t is a known tab
func (t Tab) IsValid() bool {
	return t == TabItems || t == TabCalculator
}

// ViewState holds the presentation-only catalog settings of a session.
// It never touches ledger contents.
type ViewState struct {
	ActiveFilter string    `json:"activeFilter"`
	SearchTerm   string    `json:"searchTerm"`
	SortKey      SortKey   `json:"sortKey"`
	SortOrder    SortOrder `json:"sortOrder"`
	ActiveTab    Tab       `json:"activeTab"`
}

// DefaultViewState is the state of a fresh session with nothing restored
func DefaultViewState() ViewState {
	return ViewState{
		ActiveFilter: FilterAll,
		SortKey:      SortByName,
		SortOrder:    SortAsc,
		ActiveTab:    TabItems,
	}
}

// CatalogCard is an item prepared for a catalog grid
type CatalogCard struct {
	Item
	RarityName    string  `json:"rarityName"`
	ValueLabel    string  `json:"valueLabel"`
	StatusClass   string  `json:"statusClass"`
	DemandClass   string  `json:"demandClass"`
	DemandPercent float64 `json:"demandPercent"`
}

// CatalogViewResponse is the payload of a catalog listing
type CatalogViewResponse struct {
	View  ViewState     `json:"view"`
	Count int           `json:"count"`
	Items []CatalogCard `json:"items"`
}

// SetFilterRequest represents the request body for selecting a rarity
// Example: {"filter": "Divine"}
type SetFilterRequest struct {
	Filter string `json:"filter"`
}

// SetSearchRequest represents the request body for the name search
type SetSearchRequest struct {
	Term string `json:"term"`
}

// SetSortRequest represents the request body for changing the ordering
// Example: {"key": "price-high", "order": "asc"}
type SetSortRequest struct {
	Key   SortKey   `json:"key"`
	Order SortOrder `json:"order"`
}

// SwitchTabRequest represents the request body for changing the active page
type SwitchTabRequest struct {
	Tab Tab `json:"tab"`
}
