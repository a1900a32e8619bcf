package session

import (
	"context"
	"sync"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"skorpik-value/catalog"
	"skorpik-value/ledger"
	"skorpik-value/models"
	"skorpik-value/pricing"
	"skorpik-value/repository"
)

// Keys under which the view state is persisted
const (
	KeyActiveFilter = "activeFilter"
	KeyActiveTab    = "activeTab"
)

var (
	ErrUnknownFilter    = errors.New("unknown rarity filter")
	ErrUnknownSortKey   = errors.New("unknown sort key")
	ErrUnknownSortOrder = errors.New("unknown sort order")
	ErrUnknownTab       = errors.New("unknown tab")
)

// Catalog is the read-only item source a session works against
type Catalog interface {
	ledger.Lookup
	Items() []models.Item
}

var _ Catalog = (*catalog.Store)(nil)

// State is everything a front end needs to re-render after a command
type State struct {
	View    models.ViewState    `json:"view"`
	Items   []models.Item       `json:"items"`
	Summary models.TradeSummary `json:"summary"`
}

// Controller owns the single user session: the view state and the trade
// ledger. Commands are serialized. Every successful command returns the
// State computed under its own lock and notifies observers with it.
type Controller struct {
	mu        sync.Mutex
	catalog   Catalog
	ledger    *ledger.TradeLedger
	engine    *pricing.Engine
	store     repository.StateStoreInterface
	logger    *zap.Logger
	timeout   time.Duration
	now       func() time.Time
	view      models.ViewState
	observers map[int]func(State)
	nextID    int
}

type Option func(*Controller)

// WithStateStore sets where the active filter and tab are remembered
func WithStateStore(store repository.StateStoreInterface) Option {
	return func(c *Controller) { c.store = store }
}

func WithLogger(logger *zap.Logger) Option {
	return func(c *Controller) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithStoreTimeout bounds each call to the state store
func WithStoreTimeout(d time.Duration) Option {
	return func(c *Controller) { c.timeout = d }
}

// WithClock replaces time.Now for snapshots
func WithClock(now func() time.Time) Option {
	return func(c *Controller) { c.now = now }
}

// New creates a session over cat and restores the persisted filter and tab
func New(ctx context.Context, cat Catalog, opts ...Option) *Controller {
	c := &Controller{
		catalog:   cat,
		ledger:    ledger.New(),
		store:     repository.NewMemoryStateStore(),
		logger:    zap.NewNop(),
		timeout:   2 * time.Second,
		now:       time.Now,
		view:      models.DefaultViewState(),
		observers: make(map[int]func(State)),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.engine = pricing.NewEngine(c.logger)
	c.restore(ctx)
	return c
}

func (c *Controller) restore(ctx context.Context) {
	if filter, ok := c.load(ctx, KeyActiveFilter); ok {
		if validFilter(filter) {
			c.view.ActiveFilter = filter
		} else {
			c.logger.Warn("Restore: ignoring stored filter", zap.String("filter", filter))
		}
	}
	if tab, ok := c.load(ctx, KeyActiveTab); ok {
		if models.Tab(tab).IsValid() {
			c.view.ActiveTab = models.Tab(tab)
		} else {
			c.logger.Warn("Restore: ignoring stored tab", zap.String("tab", tab))
		}
	}
	c.logger.Info("Restore: view state ready",
		zap.String("filter", c.view.ActiveFilter),
		zap.String("tab", string(c.view.ActiveTab)),
	)
}

func (c *Controller) load(ctx context.Context, key string) (string, bool) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	v, found, err := c.store.Get(ctx, key)
	if err != nil {
		c.logger.Warn("Restore: state store unavailable, using default", zap.String("key", key), zap.Error(err))
		return "", false
	}
	return v, found
}

// persist is best effort; a failing store never blocks a command
func (c *Controller) persist(ctx context.Context, key, value string) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	if err := c.store.Set(ctx, key, value); err != nil {
		c.logger.Warn("Persist: failed to save view state", zap.String("key", key), zap.Error(err))
	}
}

func validFilter(filter string) bool {
	return filter == models.FilterAll || models.IsKnownRarity(filter)
}

// Subscribe registers fn to receive the state after every command.
// The returned function removes the subscription.
func (c *Controller) Subscribe(fn func(State)) func() {
	c.mu.Lock()
	id := c.nextID
	c.nextID++
	c.observers[id] = fn
	c.mu.Unlock()

	return func() {
		c.mu.Lock()
		delete(c.observers, id)
		c.mu.Unlock()
	}
}

// apply runs mutate under the session lock and then notifies observers
// outside of it, so observers may query the controller. The returned State
// is the one computed right after mutate, under the same lock.
func (c *Controller) apply(mutate func() error) (State, error) {
	c.mu.Lock()
	if err := mutate(); err != nil {
		c.mu.Unlock()
		return State{}, err
	}
	state := c.stateLocked()
	observers := make([]func(State), 0, len(c.observers))
	for _, fn := range c.observers {
		observers = append(observers, fn)
	}
	c.mu.Unlock()

	for _, fn := range observers {
		fn(state)
	}
	return state, nil
}

func (c *Controller) stateLocked() State {
	return State{
		View:    c.view,
		Items:   catalog.View(c.catalog.Items(), c.view),
		Summary: c.engine.CompareLedger(c.ledger, c.catalog),
	}
}

// SetFilter selects a rarity or "all" and remembers it
func (c *Controller) SetFilter(ctx context.Context, filter string) (State, error) {
	return c.apply(func() error {
		if !validFilter(filter) {
			return errors.Wrapf(ErrUnknownFilter, "%q", filter)
		}
		c.view.ActiveFilter = filter
		c.persist(ctx, KeyActiveFilter, filter)
		return nil
	})
}

// SetSearch sets the case-insensitive name filter
func (c *Controller) SetSearch(term string) (State, error) {
	return c.apply(func() error {
		c.view.SearchTerm = term
		return nil
	})
}

// SetSort selects the sort key and order together
func (c *Controller) SetSort(key models.SortKey, order models.SortOrder) (State, error) {
	return c.apply(func() error {
		if !key.IsValid() {
			return errors.Wrapf(ErrUnknownSortKey, "%q", key)
		}
		if !order.IsValid() {
			return errors.Wrapf(ErrUnknownSortOrder, "%q", order)
		}
		c.view.SortKey = key
		c.view.SortOrder = order
		return nil
	})
}

// ToggleSortOrder flips between asc and desc
func (c *Controller) ToggleSortOrder() (State, error) {
	return c.apply(func() error {
		c.view.SortOrder = c.view.SortOrder.Toggle()
		return nil
	})
}

// SwitchTab changes the active page and remembers it
func (c *Controller) SwitchTab(ctx context.Context, tab models.Tab) (State, error) {
	return c.apply(func() error {
		if !tab.IsValid() {
			return errors.Wrapf(ErrUnknownTab, "%q", tab)
		}
		c.view.ActiveTab = tab
		c.persist(ctx, KeyActiveTab, string(tab))
		return nil
	})
}

// AddItem puts one more of itemID on side
func (c *Controller) AddItem(side models.Side, itemID string) (State, error) {
	return c.apply(func() error {
		s, err := c.ledger.Side(side)
		if err != nil {
			return err
		}
		item, ok := c.catalog.Get(itemID)
		if !ok {
			return errors.Wrapf(ledger.ErrUnknownItem, "item %q", itemID)
		}
		s.AddItem(item)
		c.logger.Debug("AddItem: added", zap.String("side", string(side)), zap.String("itemId", itemID), zap.Int("quantity", s.QuantityOf(itemID)))
		return nil
	})
}

// RemoveEntry drops itemID from side; absent entries are ignored
func (c *Controller) RemoveEntry(side models.Side, itemID string) (State, error) {
	return c.apply(func() error {
		s, err := c.ledger.Side(side)
		if err != nil {
			return err
		}
		s.RemoveEntry(itemID)
		return nil
	})
}

// SetQuantity overwrites the quantity of an entry already on side
func (c *Controller) SetQuantity(side models.Side, itemID string, quantity int) (State, error) {
	return c.apply(func() error {
		s, err := c.ledger.Side(side)
		if err != nil {
			return err
		}
		return s.SetQuantity(itemID, quantity)
	})
}

// Reset clears both sides of the trade. View state is kept.
func (c *Controller) Reset() (State, error) {
	return c.apply(func() error {
		c.ledger.Reset()
		return nil
	})
}

// ViewState returns the current view settings
func (c *Controller) ViewState() models.ViewState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.view
}

// State computes the full render state
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stateLocked()
}

// View returns the filtered and sorted catalog for the current view state
func (c *Controller) View() []models.Item {
	c.mu.Lock()
	defer c.mu.Unlock()
	return catalog.View(c.catalog.Items(), c.view)
}

// Summary compares the two sides of the current trade
func (c *Controller) Summary() models.TradeSummary {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.engine.CompareLedger(c.ledger, c.catalog)
}

// Snapshot is the read-only trade handed to the export adapter
func (c *Controller) Snapshot() models.Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return models.Snapshot{
		TradeSummary: c.engine.CompareLedger(c.ledger, c.catalog),
		GeneratedAt:  c.now(),
	}
}

// Catalog returns the catalog the session reads from
func (c *Controller) Catalog() Catalog {
	return c.catalog
}
