package models

// Side names one pan of a trade
type Side string

const (
	SideGive    Side = "give"
	SideReceive Side = "receive"
)

// IsValid reports whether s is give or receive
func (s Side) IsValid() bool {
	return s == SideGive || s == SideReceive
}

// LedgerEntry is a quantity of one catalog item held by a trade side.
// ItemID is a lookup key only; the catalog owns the item.
type LedgerEntry struct {
	ItemID   string `json:"itemId"`
	Quantity int    `json:"quantity"`
}

// ResolvedEntry is a ledger entry joined with its catalog item
type ResolvedEntry struct {
	Item     Item `json:"item"`
	Quantity int  `json:"quantity"`
}

// AddItemRequest represents the request body for adding an item to a side
// Example: {"itemId": "gold-scorpion"}
type AddItemRequest struct {
	ItemID string `json:"itemId"`
}

// SetQuantityRequest represents the request body for editing an entry quantity
// Example: {"quantity": 3}
type SetQuantityRequest struct {
	Quantity int `json:"quantity"`
}
