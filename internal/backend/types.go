// Package backend consumes the ordering platform's REST API and event
// stream. Wire shapes are decoded tolerantly (amounts arrive either as
// numbers or as decimal strings, item names under two spellings) and
// translated at this boundary; unknown fields are dropped.
package backend

import (
	"strconv"
	"strings"

	"github.com/MitaliChangani/Chai-Biscuit-website/internal/modules/tracking"
)

// Amount tolerates decimal strings, numbers and null.
type Amount float64

func (a *Amount) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "" || s == "null" {
		*a = 0
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		*a = 0
		return nil
	}
	*a = Amount(f)
	return nil
}

type WireItem struct {
	ItemName     string `json:"item_name"`
	Name         string `json:"name"` // alternate spelling on stream payloads
	Quantity     int    `json:"quantity"`
	PricePerItem Amount `json:"price_per_item"`
	Price        Amount `json:"price"`
}

func (it WireItem) DisplayName() string {
	if it.ItemName != "" {
		return it.ItemName
	}
	return it.Name
}

func (it WireItem) UnitPrice() float64 {
	if it.PricePerItem != 0 {
		return float64(it.PricePerItem)
	}
	return float64(it.Price)
}

type WireCourier struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	PhoneNumber string `json:"phone_number"`
}

type WireCustomer struct {
	Name        string `json:"name"`
	PhoneNumber string `json:"phone_number"`
	Address     string `json:"address"`
}

// WireOrder is the platform's order representation, shared by the status
// endpoint, the history listings and the partner dashboard feeds.
type WireOrder struct {
	OrderID        string        `json:"order_id"`
	PlacedAt       string        `json:"placed_at"`
	DeliveryTime   string        `json:"delivery_time"`
	DeliveryStatus string        `json:"delivery_status"`
	Status         string        `json:"status"` // legacy spelling
	TotalAmount    Amount        `json:"total_amount"`
	Items          []WireItem    `json:"items"`
	AssignedTo     *WireCourier  `json:"assigned_to"`
	Address        string        `json:"delivery_address"`
	User           *WireCustomer `json:"user"`
	CompletedAt    string        `json:"completed_at"` // delivery history rows only
	Earnings       Amount        `json:"earnings"`     // delivery history rows only
}

// NormalizedStatus prefers delivery_status, falls back to the legacy
// status field, and lower-cases the result.
func (w WireOrder) NormalizedStatus() string {
	if w.DeliveryStatus != "" {
		return strings.ToLower(w.DeliveryStatus)
	}
	return strings.ToLower(w.Status)
}

// ToPartial translates the order into a field-level tracking update.
// Absent wire fields become absent Partial fields, so the merge never
// clobbers a cached value with an empty one.
func (w WireOrder) ToPartial() tracking.Partial {
	p := tracking.Partial{ID: w.OrderID}
	if w.PlacedAt != "" {
		v := w.PlacedAt
		p.PlacedAt = &v
	}
	if w.DeliveryTime != "" {
		v := w.DeliveryTime
		p.DeliveryTime = &v
	}
	if s := w.NormalizedStatus(); s != "" {
		p.Status = &s
	}
	if w.TotalAmount != 0 {
		v := float64(w.TotalAmount)
		p.Total = &v
	}
	if w.Items != nil {
		items := make([]tracking.OrderItem, 0, len(w.Items))
		for _, it := range w.Items {
			items = append(items, tracking.OrderItem{
				Name:      it.DisplayName(),
				Quantity:  it.Quantity,
				UnitPrice: it.UnitPrice(),
			})
		}
		p.Items = items
	}
	if w.AssignedTo != nil {
		p.AssignedTo = &tracking.Courier{Name: w.AssignedTo.Name, PhoneNumber: w.AssignedTo.PhoneNumber}
	}
	if w.Address != "" {
		v := w.Address
		p.Address = &v
	}
	return p
}

// Profile is a customer or delivery partner profile record.
type Profile struct {
	Name        string `json:"name"`
	PhoneNumber string `json:"phone_number"`
	Address     string `json:"address"`
}
