package tracking

import "time"

// ProgressStep is one milestone on the tracking screen's timeline.
type ProgressStep struct {
	Label       string `json:"label"`
	DisplayTime string `json:"time"`
	Completed   bool   `json:"completed"`
}

// Steps derives the two-milestone delivery timeline for an order. "Order
// Placed" is always complete; "Delivered" completes when the backend says
// so or when the estimated delivery time has passed.
func Steps(o Order, now time.Time) []ProgressStep {
	placed := ProgressStep{
		Label:       "Order Placed",
		DisplayTime: o.PlacedAt,
		Completed:   true,
	}
	if placed.DisplayTime == "" {
		placed.DisplayTime = "N/A"
	}

	delivered := ProgressStep{
		Label:       "Delivered",
		DisplayTime: "N/A",
		Completed:   o.Status == StatusDelivered,
	}
	if o.DeliveryTime != "" {
		eta := ParseClockLabel(o.DeliveryTime, now)
		delivered.DisplayTime = FormatClockLabel(eta)
		if !now.Before(eta) {
			delivered.Completed = true
		}
	}

	return []ProgressStep{placed, delivered}
}
