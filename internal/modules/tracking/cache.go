package tracking

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/MitaliChangani/Chai-Biscuit-website/internal/storage"
)

// NamespaceOrders is the storage namespace holding the cached order set.
const NamespaceOrders = "tracking:orders"

// Cache is the local store of orders currently being tracked, keyed by
// order id. All mutation goes through its methods; callers never hold an
// entry across a suspension point and mutate it in place.
type Cache struct {
	store storage.Store
	log   *slog.Logger

	mu     sync.Mutex
	orders map[string]Order
	// Order ids that reached delivered/cancelled. A stale non-terminal
	// update for a tombstoned id must not re-create the entry.
	tombstones map[string]struct{}
}

func NewCache(store storage.Store, log *slog.Logger) *Cache {
	return &Cache{
		store:      store,
		log:        log,
		orders:     make(map[string]Order),
		tombstones: make(map[string]struct{}),
	}
}

func (c *Cache) Get(orderID string) (Order, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	o, ok := c.orders[orderID]
	return o, ok
}

// IDs returns the ids of all cached orders, in no particular order.
func (c *Cache) IDs() []string {
	c.mu.Lock()
	defer c.mu.Unlock()

	ids := make([]string, 0, len(c.orders))
	for id := range c.orders {
		ids = append(ids, id)
	}
	return ids
}

// UpsertMerge applies a field-level merge of p into the cached order,
// creating the entry if absent. A merge that lands on a terminal status
// evicts the entry and leaves a tombstone, so the order stops being polled
// and persisted. It returns the merged order and whether the cache is still
// tracking it (false for evicted, tombstoned and id-less updates).
func (c *Cache) UpsertMerge(p Partial) (Order, bool) {
	if p.ID == "" {
		return Order{}, false
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	cur, exists := c.orders[p.ID]
	if !exists {
		if _, dead := c.tombstones[p.ID]; dead {
			return Order{}, false
		}
		cur = Order{ID: p.ID}
	}

	next := merge(cur, p)
	if IsTerminal(next.Status) {
		delete(c.orders, p.ID)
		c.tombstones[p.ID] = struct{}{}
		return next, false
	}
	c.orders[p.ID] = next
	return next, true
}

// Remove evicts an order. When terminal is true the id is tombstoned so
// later stale updates cannot bring it back.
func (c *Cache) Remove(orderID string, terminal bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.orders, orderID)
	if terminal {
		c.tombstones[orderID] = struct{}{}
	}
}

// ActiveOrders returns the orders the tracking screen should surface: every
// non-terminal order, whether it is still awaiting a delivery estimate or
// already past it. Time alone never evicts; an order past its estimate stays
// visible as overdue until a terminal status arrives.
// Most recently placed first, ties broken by id for determinism.
func (c *Cache) ActiveOrders(now time.Time) []Order {
	c.mu.Lock()
	defer c.mu.Unlock()

	active := make([]Order, 0, len(c.orders))
	for _, o := range c.orders {
		if IsTerminal(o.Status) {
			continue
		}
		active = append(active, o)
	}

	sort.Slice(active, func(i, j int) bool {
		ti := ParseClockLabel(active[i].PlacedAt, now)
		tj := ParseClockLabel(active[j].PlacedAt, now)
		if ti.Equal(tj) {
			return active[i].ID < active[j].ID
		}
		return ti.After(tj)
	})
	return active
}

type cacheSnapshot struct {
	Orders     []json.RawMessage `json:"orders"`
	Tombstones []string          `json:"tombstones,omitempty"`
}

// Load restores the cache from the snapshot store. Malformed or partial
// records are skipped, never fatal.
func (c *Cache) Load(ctx context.Context) error {
	raw, err := c.store.Get(ctx, NamespaceOrders)
	if errors.Is(err, storage.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	var snap cacheSnapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		c.log.Warn("tracking: discarding unreadable order snapshot", "err", err)
		return nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	for _, rec := range snap.Orders {
		var o Order
		if err := json.Unmarshal(rec, &o); err != nil || o.ID == "" {
			c.log.Warn("tracking: skipping malformed cached order", "err", err)
			continue
		}
		c.orders[o.ID] = o
	}
	for _, id := range snap.Tombstones {
		c.tombstones[id] = struct{}{}
	}
	return nil
}

// Save persists the current cache contents.
func (c *Cache) Save(ctx context.Context) error {
	c.mu.Lock()
	snap := cacheSnapshot{Orders: make([]json.RawMessage, 0, len(c.orders))}
	for _, o := range c.orders {
		b, err := json.Marshal(o)
		if err != nil {
			continue
		}
		snap.Orders = append(snap.Orders, b)
	}
	for id := range c.tombstones {
		snap.Tombstones = append(snap.Tombstones, id)
	}
	c.mu.Unlock()

	sort.Strings(snap.Tombstones)
	b, err := json.Marshal(snap)
	if err != nil {
		return err
	}
	return c.store.Put(ctx, NamespaceOrders, b)
}
