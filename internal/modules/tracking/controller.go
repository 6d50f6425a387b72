package tracking

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/MitaliChangani/Chai-Biscuit-website/internal/storage"
)

// Stream is the push transport the controller owns. Run blocks delivering
// raw messages to onMessage until ctx is cancelled or the connection dies;
// the engine stays correct on polling alone if Run never comes back.
type Stream interface {
	Run(ctx context.Context, onMessage func([]byte)) error
}

// Snapshot is what the presentation boundary receives after every
// reconciliation: the active orders with their progress timelines.
type Snapshot struct {
	GeneratedAt time.Time     `json:"generated_at"`
	Orders      []ActiveOrder `json:"orders"`
}

type ActiveOrder struct {
	Order Order          `json:"order"`
	Steps []ProgressStep `json:"steps"`
}

type PublishFunc func(Snapshot)

// ControllerConfig wires the engine's collaborators together.
type ControllerConfig struct {
	Fetcher  StatusFetcher
	Stream   Stream // optional; nil means poll-only
	Store    storage.Store
	Logger   *slog.Logger
	Interval time.Duration
	Publish  PublishFunc
	Alert    AlertFunc
	Now      func() time.Time // test hook, defaults to time.Now
}

// Controller orchestrates the poll and push paths over one shared cache.
// It owns the poll ticker and the stream lifecycle and republishes the
// active subset on every clock tick, so time-based completion moves even
// when no update arrives.
type Controller struct {
	cache  *Cache
	dedup  *Deduper
	poller *Poller
	push   *PushSync
	stream Stream
	log    *slog.Logger

	interval time.Duration
	publish  PublishFunc
	now      func() time.Time

	mu      sync.Mutex
	cancel  context.CancelFunc
	done    chan struct{}
	started bool
}

func NewController(cfg ControllerConfig) *Controller {
	log := cfg.Logger
	if log == nil {
		log = slog.Default()
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	publish := cfg.Publish
	if publish == nil {
		publish = func(Snapshot) {}
	}
	interval := cfg.Interval
	if interval <= 0 {
		interval = 3 * time.Second
	}

	cache := NewCache(cfg.Store, log)
	dedup := NewDeduper(cfg.Store, log)
	return &Controller{
		cache:    cache,
		dedup:    dedup,
		poller:   NewPoller(cfg.Fetcher, cache, log),
		push:     NewPushSync(cache, dedup, cfg.Alert, log),
		stream:   cfg.Stream,
		log:      log,
		interval: interval,
		publish:  publish,
		now:      now,
	}
}

// Cache exposes the shared order cache for seeding newly placed orders.
func (c *Controller) Cache() *Cache { return c.cache }

// Start loads persisted state, runs one immediate reconciliation and then
// begins the poll ticker and the stream reader. Calling Start twice is a
// no-op until Stop.
func (c *Controller) Start(ctx context.Context) error {
	c.mu.Lock()
	if c.started {
		c.mu.Unlock()
		return nil
	}

	if err := c.cache.Load(ctx); err != nil {
		c.mu.Unlock()
		return err
	}
	if err := c.dedup.Load(ctx); err != nil {
		c.mu.Unlock()
		return err
	}

	runCtx, cancel := context.WithCancel(context.Background())
	c.cancel = cancel
	c.done = make(chan struct{})
	c.started = true
	done := c.done
	c.mu.Unlock()

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		c.runLoop(runCtx)
	}()

	if c.stream != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := c.stream.Run(runCtx, func(raw []byte) {
				if c.push.HandleMessage(runCtx, raw) {
					c.publishActive()
				}
			})
			if err != nil && runCtx.Err() == nil {
				c.log.Warn("tracking: stream ended, continuing on polling", "err", err)
			}
		}()
	}

	go func() {
		wg.Wait()
		close(done)
	}()
	return nil
}

func (c *Controller) runLoop(ctx context.Context) {
	// Immediate cycle so the screen is not empty for a full interval.
	c.poller.Poll(ctx)
	c.publishActive()

	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			c.poller.Poll(ctx)
			// Publish even if every fetch failed: the clock advanced, and
			// estimate-based completion depends on it.
			c.publishActive()
		}
	}
}

func (c *Controller) publishActive() {
	now := c.now()
	orders := c.cache.ActiveOrders(now)

	snap := Snapshot{GeneratedAt: now, Orders: make([]ActiveOrder, 0, len(orders))}
	for _, o := range orders {
		snap.Orders = append(snap.Orders, ActiveOrder{Order: o, Steps: Steps(o, now)})
	}
	c.publish(snap)
}

// Stop tears the timer and the stream down and waits for both loops to
// exit. Safe to call more than once.
func (c *Controller) Stop() {
	c.mu.Lock()
	if !c.started {
		c.mu.Unlock()
		return
	}
	c.started = false
	cancel := c.cancel
	done := c.done
	c.mu.Unlock()

	cancel()
	<-done
}
