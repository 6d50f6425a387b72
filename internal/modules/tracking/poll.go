package tracking

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"
)

// StatusFetcher is the slice of the platform API the poller consumes: the
// authoritative per-order status endpoint.
type StatusFetcher interface {
	OrderStatus(ctx context.Context, orderID string) (Partial, error)
}

// Poller re-fetches every cached order's status on each cycle. Fetches run
// concurrently; a failure leaves that one order's cached state untouched
// and never aborts the rest of the batch.
type Poller struct {
	fetcher     StatusFetcher
	cache       *Cache
	log         *slog.Logger
	concurrency int
}

func NewPoller(fetcher StatusFetcher, cache *Cache, log *slog.Logger) *Poller {
	return &Poller{fetcher: fetcher, cache: cache, log: log, concurrency: 8}
}

// Poll runs one cycle and persists the cache afterwards. Merge order across
// orders is undefined, which is fine: merges are per order id.
func (p *Poller) Poll(ctx context.Context) {
	ids := p.cache.IDs()
	if len(ids) == 0 {
		return
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(p.concurrency)
	for _, id := range ids {
		if id == "" {
			continue
		}
		id := id
		g.Go(func() error {
			part, err := p.fetcher.OrderStatus(ctx, id)
			if err != nil {
				p.log.Debug("tracking: poll fetch failed", "order_id", id, "err", err)
				return nil // isolated per order
			}
			// The status endpoint is authoritative for status, courier
			// and address only; other fields keep their cached value.
			p.cache.UpsertMerge(Partial{
				ID:         id,
				Status:     part.Status,
				AssignedTo: part.AssignedTo,
				Address:    part.Address,
			})
			return nil
		})
	}
	_ = g.Wait()

	if err := p.cache.Save(ctx); err != nil && ctx.Err() == nil {
		p.log.Warn("tracking: could not persist order cache", "err", err)
	}
}
