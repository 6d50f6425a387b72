package tracking

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"sort"
	"sync"

	"github.com/MitaliChangani/Chai-Biscuit-website/internal/storage"
)

// NamespaceNotified is the storage namespace for the cancellation-notified
// id set. Separate from the order cache so clearing one keeps the other.
const NamespaceNotified = "tracking:cancel_notified"

// Deduper remembers which orders the user has already been alerted about,
// so a cancellation is announced exactly once no matter how many duplicate
// events the stream delivers.
type Deduper struct {
	store storage.Store
	log   *slog.Logger

	mu       sync.Mutex
	notified map[string]struct{}
}

func NewDeduper(store storage.Store, log *slog.Logger) *Deduper {
	return &Deduper{
		store:    store,
		log:      log,
		notified: make(map[string]struct{}),
	}
}

// ShouldNotify records orderID and reports true exactly on the first call
// for that id. The check-and-set is atomic; concurrent update sources
// cannot double-fire.
func (d *Deduper) ShouldNotify(ctx context.Context, orderID string) bool {
	d.mu.Lock()
	if _, seen := d.notified[orderID]; seen {
		d.mu.Unlock()
		return false
	}
	d.notified[orderID] = struct{}{}
	d.mu.Unlock()

	if err := d.save(ctx); err != nil {
		// Still notify; worst case a restart repeats one alert.
		d.log.Warn("tracking: could not persist notified set", "err", err)
	}
	return true
}

func (d *Deduper) Load(ctx context.Context) error {
	raw, err := d.store.Get(ctx, NamespaceNotified)
	if errors.Is(err, storage.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	var ids []string
	if err := json.Unmarshal(raw, &ids); err != nil {
		d.log.Warn("tracking: discarding unreadable notified set", "err", err)
		return nil
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	for _, id := range ids {
		d.notified[id] = struct{}{}
	}
	return nil
}

func (d *Deduper) save(ctx context.Context) error {
	d.mu.Lock()
	ids := make([]string, 0, len(d.notified))
	for id := range d.notified {
		ids = append(ids, id)
	}
	d.mu.Unlock()

	sort.Strings(ids)
	b, err := json.Marshal(ids)
	if err != nil {
		return err
	}
	return d.store.Put(ctx, NamespaceNotified, b)
}
