package catalog

import (
	"encoding/json"
	"io"
	"strings"

	"github.com/pkg/errors"

	"skorpik-value/models"
)

// ErrInvalidCatalog is returned when catalog data breaks an item invariant
var ErrInvalidCatalog = errors.New("invalid catalog")

const maxDemand = 10

// Store is the immutable list of known items.
// It is safe for concurrent reads because nothing mutates it after NewStore.
type Store struct {
	items []models.Item
	byID  map[string]int
}

// NewStore validates items and freezes them in catalog order
func NewStore(items []models.Item) (*Store, error) {
	s := &Store{
		items: make([]models.Item, len(items)),
		byID:  make(map[string]int, len(items)),
	}
	copy(s.items, items)

	for i, item := range s.items {
		id := strings.TrimSpace(item.ID)
		if id == "" {
			return nil, errors.Wrapf(ErrInvalidCatalog, "item at position %d has no id", i)
		}
		if _, dup := s.byID[id]; dup {
			return nil, errors.Wrapf(ErrInvalidCatalog, "duplicate item id %q", id)
		}
		if item.Value < 0 {
			return nil, errors.Wrapf(ErrInvalidCatalog, "item %q has negative value %d", id, item.Value)
		}
		if item.Demand < 0 || item.Demand > maxDemand {
			return nil, errors.Wrapf(ErrInvalidCatalog, "item %q demand %.2f outside [0, %d]", id, item.Demand, maxDemand)
		}
		if !models.IsKnownRarity(string(item.Rarity)) {
			return nil, errors.Wrapf(ErrInvalidCatalog, "item %q has unknown rarity %q", id, item.Rarity)
		}
		s.items[i].Status = models.ParseStatus(string(item.Status))
		s.items[i].ID = id
		s.byID[id] = i
	}

	return s, nil
}

// LoadJSON reads a JSON array of items and builds a store from it
func LoadJSON(r io.Reader) (*Store, error) {
	var items []models.Item
	if err := json.NewDecoder(r).Decode(&items); err != nil {
		return nil, errors.Wrap(err, "failed to decode catalog")
	}
	return NewStore(items)
}

// Get looks an item up by id
func (s *Store) Get(id string) (models.Item, bool) {
	idx, ok := s.byID[id]
	if !ok {
		return models.Item{}, false
	}
	return s.items[idx], true
}

// Items returns a copy of the catalog in load order
func (s *Store) Items() []models.Item {
	out := make([]models.Item, len(s.items))
	copy(out, s.items)
	return out
}

// Len returns the number of items in the catalog
func (s *Store) Len() int {
	return len(s.items)
}

// View runs the filter/sort engine over the whole catalog
func (s *Store) View(state models.ViewState) []models.Item {
	return View(s.items, state)
}
