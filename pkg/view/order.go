package view

import (
	"github.com/MitaliChangani/Chai-Biscuit-website/internal/modules/tracking"
)

type OrderItem struct {
	Name      string `json:"name"`
	Quantity  int    `json:"quantity"`
	PriceEach string `json:"price_each"`
	LineTotal string `json:"line_total"`
}

type Courier struct {
	Name        string `json:"name"`
	PhoneNumber string `json:"phone_number"`
}

type ProgressStep struct {
	Label     string `json:"label"`
	Time      string `json:"time"`
	Completed bool   `json:"completed"`
}

// TrackedOrder is one card on the live tracking screen.
type TrackedOrder struct {
	ID              string         `json:"order_id"`
	Status          string         `json:"status"`
	PlacedAt        string         `json:"placed_at"`
	EstimatedArrive string         `json:"estimated_delivery"`
	Total           string         `json:"total"`
	Items           []OrderItem    `json:"items"`
	AssignedTo      *Courier       `json:"assigned_to,omitempty"`
	DeliveryAddress string         `json:"delivery_address,omitempty"`
	Steps           []ProgressStep `json:"steps"`
}

// TrackingPage is the payload the tracking screen polls for.
type TrackingPage struct {
	GeneratedAt string         `json:"generated_at"`
	Orders      []TrackedOrder `json:"orders"`
}

// TrackedOrderFrom maps an engine snapshot entry to its screen shape.
func TrackedOrderFrom(a tracking.ActiveOrder) TrackedOrder {
	o := a.Order

	out := TrackedOrder{
		ID:              o.ID,
		Status:          o.Status,
		PlacedAt:        o.PlacedAt,
		EstimatedArrive: "N/A",
		Total:           Money(o.Total),
		DeliveryAddress: o.Address,
	}
	for _, s := range a.Steps {
		out.Steps = append(out.Steps, ProgressStep{Label: s.Label, Time: s.DisplayTime, Completed: s.Completed})
		if s.Label == "Delivered" {
			out.EstimatedArrive = s.DisplayTime
		}
	}
	for _, it := range o.Items {
		out.Items = append(out.Items, OrderItem{
			Name:      it.Name,
			Quantity:  it.Quantity,
			PriceEach: Money(it.UnitPrice),
			LineTotal: Money(it.UnitPrice * float64(it.Quantity)),
		})
	}
	if o.AssignedTo != nil {
		out.AssignedTo = &Courier{Name: o.AssignedTo.Name, PhoneNumber: o.AssignedTo.PhoneNumber}
	}
	return out
}

// Alert is one cancellation notice surfaced to the user.
type Alert struct {
	OrderID string `json:"order_id"`
	Message string `json:"message"`
	At      string `json:"at"`
}
