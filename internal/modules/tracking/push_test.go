package tracking

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/MitaliChangani/Chai-Biscuit-website/internal/storage"
)

type alertRecorder struct {
	mu  sync.Mutex
	ids []string
}

func (a *alertRecorder) record(orderID string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.ids = append(a.ids, orderID)
}

func (a *alertRecorder) count() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.ids)
}

func newTestPush(t *testing.T) (*PushSync, *Cache, *alertRecorder) {
	t.Helper()
	store := storage.NewMemory()
	cache := NewCache(store, testLogger())
	dedup := NewDeduper(store, testLogger())
	alerts := &alertRecorder{}
	return NewPushSync(cache, dedup, alerts.record, testLogger()), cache, alerts
}

func TestPushCancellationAlertsExactlyOnce(t *testing.T) {
	ctx := context.Background()
	ps, cache, alerts := newTestPush(t)

	cache.UpsertMerge(Partial{ID: "C", Status: strPtr(StatusOutForDelivery)})

	msg := []byte(`{"order":{"order_id":"C","delivery_status":"cancelled"}}`)
	ps.HandleMessage(ctx, msg)
	ps.HandleMessage(ctx, msg)

	if got := alerts.count(); got != 1 {
		t.Fatalf("alert fired %d times, want 1", got)
	}
	if _, ok := cache.Get("C"); ok {
		t.Fatal("cancelled order still in cache")
	}
}

func TestPushDeliveredEvictsWithoutAlert(t *testing.T) {
	ctx := context.Background()
	ps, cache, alerts := newTestPush(t)

	cache.UpsertMerge(Partial{ID: "D", Status: strPtr(StatusOutForDelivery)})
	ps.HandleMessage(ctx, []byte(`{"order":{"order_id":"D","delivery_status":"delivered"}}`))

	if alerts.count() != 0 {
		t.Fatal("delivery must not raise an alert")
	}
	if _, ok := cache.Get("D"); ok {
		t.Fatal("delivered order still in cache")
	}
	// A stale non-terminal event afterwards must not bring it back.
	ps.HandleMessage(ctx, []byte(`{"order":{"order_id":"D","delivery_status":"assigned"}}`))
	if _, ok := cache.Get("D"); ok {
		t.Fatal("stale event resurrected a delivered order")
	}
}

func TestPushMergesNonTerminalEvent(t *testing.T) {
	ctx := context.Background()
	ps, cache, _ := newTestPush(t)

	raw := []byte(`{"order":{
		"order_id":"E",
		"placed_at":"02:10 PM",
		"delivery_time":"02:45 PM",
		"delivery_status":"ASSIGNED",
		"total_amount":"420.00",
		"items":[{"name":"Masala Chai","quantity":2,"price":"60.00"}],
		"assigned_to":{"name":"Ravi","phone_number":"9876543210"},
		"delivery_address":"221B Baker Street"
	}}`)

	if changed := ps.HandleMessage(ctx, raw); !changed {
		t.Fatal("event should report a change")
	}

	o, ok := cache.Get("E")
	if !ok {
		t.Fatal("order not cached")
	}
	if o.Status != StatusAssigned {
		t.Fatalf("status = %q, want normalized %q", o.Status, StatusAssigned)
	}
	if o.Total != 420 {
		t.Fatalf("string amount not decoded: %v", o.Total)
	}
	if len(o.Items) != 1 || o.Items[0].UnitPrice != 60 {
		t.Fatalf("items not decoded: %+v", o.Items)
	}
	if o.AssignedTo == nil || o.AssignedTo.PhoneNumber != "9876543210" {
		t.Fatalf("courier not decoded: %+v", o.AssignedTo)
	}
}

func TestPushLegacyStatusSpelling(t *testing.T) {
	ctx := context.Background()
	ps, cache, _ := newTestPush(t)

	ps.HandleMessage(ctx, []byte(`{"order":{"order_id":"F","status":"Placed"}}`))

	o, ok := cache.Get("F")
	if !ok || o.Status != StatusPlaced {
		t.Fatalf("legacy status field not honored: %+v ok=%v", o, ok)
	}
}

func TestPushDiscardsBadMessages(t *testing.T) {
	ctx := context.Background()
	ps, cache, alerts := newTestPush(t)

	bad := [][]byte{
		[]byte(`not json at all`),
		[]byte(`{}`),
		[]byte(`{"order":null}`),
		[]byte(`{"order":{"delivery_status":"cancelled"}}`), // no order_id
		[]byte(`{"order":{"order_id":""}}`),
		[]byte(``),
	}

	for i, raw := range bad {
		t.Run(fmt.Sprintf("case_%d", i), func(t *testing.T) {
			if changed := ps.HandleMessage(ctx, raw); changed {
				t.Fatalf("bad message %q reported a change", raw)
			}
		})
	}

	if n := len(cache.IDs()); n != 0 {
		t.Fatalf("bad messages mutated the cache: %d entries", n)
	}
	if alerts.count() != 0 {
		t.Fatal("bad messages raised alerts")
	}
}

func TestPushUnknownStatusIsMergedAsNonTerminal(t *testing.T) {
	ctx := context.Background()
	ps, cache, _ := newTestPush(t)

	ps.HandleMessage(ctx, []byte(`{"order":{"order_id":"G","delivery_status":"preparing"}}`))

	o, ok := cache.Get("G")
	if !ok || o.Status != "preparing" {
		t.Fatalf("unknown status not passed through: %+v ok=%v", o, ok)
	}
}
