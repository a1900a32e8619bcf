package ledger

import (
	"github.com/pkg/errors"

	"skorpik-value/models"
)

var (
	// ErrUnknownItem is returned when an entry refers to an item id missing from the catalog
	ErrUnknownItem = errors.New("item not found in catalog")
	// ErrInvalidQuantity is returned for quantities below 1
	ErrInvalidQuantity = errors.New("quantity must be at least 1")
	// ErrUnknownSide is returned for side names other than give and receive
	ErrUnknownSide = errors.New("unknown trade side")
)

// Lookup resolves item ids against the catalog
type Lookup interface {
	Get(id string) (models.Item, bool)
}

// NewLedgerEntry builds a validated entry
func NewLedgerEntry(itemID string, quantity int) (models.LedgerEntry, error) {
	if quantity < 1 {
		return models.LedgerEntry{}, errors.Wrapf(ErrInvalidQuantity, "item %q quantity %d", itemID, quantity)
	}
	return models.LedgerEntry{ItemID: itemID, Quantity: quantity}, nil
}

// Side is one ordered pan of a trade. Insertion order is display order and
// an item id appears at most once.
type Side struct {
	entries []models.LedgerEntry
}

func (s *Side) indexOf(itemID string) int {
	for i, e := range s.entries {
		if e.ItemID == itemID {
			return i
		}
	}
	return -1
}

// AddItem increments the entry for item or appends a new one with quantity 1
func (s *Side) AddItem(item models.Item) {
	if idx := s.indexOf(item.ID); idx >= 0 {
		s.entries[idx].Quantity++
		return
	}
	s.entries = append(s.entries, models.LedgerEntry{ItemID: item.ID, Quantity: 1})
}

// RemoveEntry deletes the entry for itemID. Absent ids are a no-op.
func (s *Side) RemoveEntry(itemID string) {
	idx := s.indexOf(itemID)
	if idx < 0 {
		return
	}
	s.entries = append(s.entries[:idx], s.entries[idx+1:]...)
}

// SetQuantity overwrites the quantity of an existing entry.
// Quantities below 1 are rejected and leave the entry untouched.
func (s *Side) SetQuantity(itemID string, quantity int) error {
	if quantity < 1 {
		return errors.Wrapf(ErrInvalidQuantity, "item %q quantity %d", itemID, quantity)
	}
	idx := s.indexOf(itemID)
	if idx < 0 {
		return errors.Wrapf(ErrUnknownItem, "item %q is not on this side", itemID)
	}
	s.entries[idx].Quantity = quantity
	return nil
}

// QuantityOf returns the quantity held for itemID, or 0
func (s *Side) QuantityOf(itemID string) int {
	if idx := s.indexOf(itemID); idx >= 0 {
		return s.entries[idx].Quantity
	}
	return 0
}

// Len returns the number of distinct items on the side
func (s *Side) Len() int {
	return len(s.entries)
}

// Raw returns a copy of the unresolved entries in order
func (s *Side) Raw() []models.LedgerEntry {
	out := make([]models.LedgerEntry, len(s.entries))
	copy(out, s.entries)
	return out
}

// Clear empties the side
func (s *Side) Clear() {
	s.entries = nil
}

// Entries resolves every entry against the catalog in insertion order.
// It fails with ErrUnknownItem on the first id the catalog does not know.
func (s *Side) Entries(lookup Lookup) ([]models.ResolvedEntry, error) {
	resolved, missing := s.Resolve(lookup)
	if len(missing) > 0 {
		return nil, errors.Wrapf(ErrUnknownItem, "item %q", missing[0])
	}
	return resolved, nil
}

// Resolve is the lenient form of Entries: unknown ids are skipped and reported
func (s *Side) Resolve(lookup Lookup) (resolved []models.ResolvedEntry, missing []string) {
	resolved = make([]models.ResolvedEntry, 0, len(s.entries))
	for _, e := range s.entries {
		item, ok := lookup.Get(e.ItemID)
		if !ok {
			missing = append(missing, e.ItemID)
			continue
		}
		resolved = append(resolved, models.ResolvedEntry{Item: item, Quantity: e.Quantity})
	}
	return resolved, missing
}

// TradeLedger holds the give and receive sides of one trade
type TradeLedger struct {
	give    Side
	receive Side
}

// New creates an empty ledger
func New() *TradeLedger {
	return &TradeLedger{}
}

// Side returns the addressed side
func (l *TradeLedger) Side(side models.Side) (*Side, error) {
	switch side {
	case models.SideGive:
		return &l.give, nil
	case models.SideReceive:
		return &l.receive, nil
	}
	return nil, errors.Wrapf(ErrUnknownSide, "%q", side)
}

// Give returns the give side
func (l *TradeLedger) Give() *Side { return &l.give }

// Receive returns the receive side
func (l *TradeLedger) Receive() *Side { return &l.receive }

// Reset clears both sides
func (l *TradeLedger) Reset() {
	l.give.Clear()
	l.receive.Clear()
}
