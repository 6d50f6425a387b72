// Package tracking is the order tracking synchronization engine. It keeps a
// durable cache of the orders a user is waiting on, reconciles it against
// the platform's REST poll and push event stream, and derives the delivery
// progress timeline the tracking screen renders.
package tracking

import "strings"

// Delivery statuses used by the platform. Unknown strings are tolerated and
// treated as non-terminal.
const (
	StatusPlaced         = "placed"
	StatusAssigned       = "assigned"
	StatusOutForDelivery = "out_for_delivery"
	StatusDelivered      = "delivered"
	StatusCancelled      = "cancelled"
)

// IsTerminal reports whether status ends an order's life on the tracking
// screen. Comparison is case-insensitive.
func IsTerminal(status string) bool {
	switch strings.ToLower(status) {
	case StatusDelivered, StatusCancelled:
		return true
	}
	return false
}

type OrderItem struct {
	Name      string  `json:"name"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"price"`
}

type Courier struct {
	Name        string `json:"name"`
	PhoneNumber string `json:"phone_number"`
}

// Order is the cached record of one order being tracked. PlacedAt and
// DeliveryTime are the backend's clock labels ("03:30 PM"), kept verbatim
// and parsed only when compared against the clock.
type Order struct {
	ID           string      `json:"order_id"`
	PlacedAt     string      `json:"placed_at"`
	DeliveryTime string      `json:"delivery_time,omitempty"`
	Status       string      `json:"delivery_status"`
	Total        float64     `json:"total"`
	Items        []OrderItem `json:"items,omitempty"`
	AssignedTo   *Courier    `json:"assigned_to,omitempty"`
	Address      string      `json:"delivery_address,omitempty"`
}

// Partial is an update carrying a subset of an order's fields. Nil means
// "not present in this update"; present fields win over the cached value.
type Partial struct {
	ID           string
	PlacedAt     *string
	DeliveryTime *string
	Status       *string
	Total        *float64
	Items        []OrderItem
	AssignedTo   *Courier
	Address      *string
}

// merge applies p onto o field by field. The status of a terminal order is
// never downgraded back to a non-terminal one by a stale update.
func merge(o Order, p Partial) Order {
	if o.ID == "" {
		o.ID = p.ID
	}
	if p.PlacedAt != nil {
		o.PlacedAt = *p.PlacedAt
	}
	if p.DeliveryTime != nil && *p.DeliveryTime != "" {
		o.DeliveryTime = *p.DeliveryTime
	}
	if p.Status != nil && *p.Status != "" {
		next := strings.ToLower(*p.Status)
		if !IsTerminal(o.Status) || IsTerminal(next) {
			o.Status = next
		}
	}
	if p.Total != nil {
		o.Total = *p.Total
	}
	if p.Items != nil {
		o.Items = p.Items
	}
	if p.AssignedTo != nil {
		o.AssignedTo = p.AssignedTo
	}
	if p.Address != nil && *p.Address != "" {
		o.Address = *p.Address
	}
	return o
}
