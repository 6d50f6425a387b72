package tracking

import (
	"context"
	"encoding/json"
	"log/slog"
	"strconv"
	"strings"
)

// AlertFunc receives the one-time cancellation alert for an order.
type AlertFunc func(orderID string)

// PushSync folds order events from the platform's stream into the cache.
// Events arrive at least once and possibly out of order; handling is
// idempotent and a malformed message is logged and dropped, never raised
// back to the transport.
type PushSync struct {
	cache *Cache
	dedup *Deduper
	alert AlertFunc
	log   *slog.Logger
}

func NewPushSync(cache *Cache, dedup *Deduper, alert AlertFunc, log *slog.Logger) *PushSync {
	if alert == nil {
		alert = func(string) {}
	}
	return &PushSync{cache: cache, dedup: dedup, alert: alert, log: log}
}

// wireNumber tolerates the backend's habit of sending amounts either as
// JSON numbers or as decimal strings.
type wireNumber float64

func (n *wireNumber) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "" || s == "null" {
		*n = 0
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		*n = 0
		return nil // tolerated, not fatal
	}
	*n = wireNumber(f)
	return nil
}

// pushEnvelope is the wire shape of one stream message.
type pushEnvelope struct {
	Order *pushOrder `json:"order"`
}

type pushOrder struct {
	OrderID        string          `json:"order_id"`
	PlacedAt       string          `json:"placed_at"`
	DeliveryTime   string          `json:"delivery_time"`
	DeliveryStatus string          `json:"delivery_status"`
	Status         string          `json:"status"` // legacy spelling
	TotalAmount    *wireNumber     `json:"total_amount"`
	Items          []pushOrderItem `json:"items"`
	AssignedTo     *Courier        `json:"assigned_to"`
	Address        string          `json:"delivery_address"`
}

type pushOrderItem struct {
	Name     string     `json:"name"`
	ItemName string     `json:"item_name"`
	Quantity int        `json:"quantity"`
	Price    wireNumber `json:"price"`
}

// HandleMessage processes one raw stream frame. It reports whether the
// active set may have changed so the controller knows to republish.
func (ps *PushSync) HandleMessage(ctx context.Context, raw []byte) bool {
	var env pushEnvelope
	if err := json.Unmarshal(raw, &env); err != nil {
		ps.log.Warn("tracking: unparsable stream message", "err", err)
		return false
	}
	if env.Order == nil || env.Order.OrderID == "" {
		return false
	}

	status := strings.ToLower(env.Order.DeliveryStatus)
	if status == "" {
		status = strings.ToLower(env.Order.Status)
	}

	switch status {
	case StatusCancelled:
		if ps.dedup.ShouldNotify(ctx, env.Order.OrderID) {
			ps.alert(env.Order.OrderID)
		}
		ps.cache.Remove(env.Order.OrderID, true)
	case StatusDelivered:
		ps.cache.Remove(env.Order.OrderID, true)
	default:
		ps.cache.UpsertMerge(env.Order.toPartial(status))
	}

	if err := ps.cache.Save(ctx); err != nil && ctx.Err() == nil {
		ps.log.Warn("tracking: could not persist order cache", "err", err)
	}
	return true
}

func (po *pushOrder) toPartial(status string) Partial {
	p := Partial{ID: po.OrderID}
	if po.PlacedAt != "" {
		p.PlacedAt = &po.PlacedAt
	}
	if po.DeliveryTime != "" {
		p.DeliveryTime = &po.DeliveryTime
	}
	if status != "" {
		p.Status = &status
	}
	if po.TotalAmount != nil {
		f := float64(*po.TotalAmount)
		p.Total = &f
	}
	if po.Items != nil {
		items := make([]OrderItem, 0, len(po.Items))
		for _, it := range po.Items {
			name := it.Name
			if name == "" {
				name = it.ItemName
			}
			items = append(items, OrderItem{Name: name, Quantity: it.Quantity, UnitPrice: float64(it.Price)})
		}
		p.Items = items
	}
	if po.AssignedTo != nil {
		p.AssignedTo = po.AssignedTo
	}
	if po.Address != "" {
		p.Address = &po.Address
	}
	return p
}
