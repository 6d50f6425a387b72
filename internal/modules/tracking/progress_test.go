package tracking

import (
	"testing"
	"time"
)

func TestStepsTwoMilestoneTimeline(t *testing.T) {
	now := time.Date(2025, time.March, 14, 15, 0, 0, 0, time.Local)

	tests := []struct {
		name          string
		order         Order
		wantDelivered bool
		wantTime      string
	}{
		{
			name:          "no estimate yet",
			order:         Order{ID: "A", PlacedAt: "02:00 PM", Status: StatusPlaced},
			wantDelivered: false,
			wantTime:      "N/A",
		},
		{
			name:          "estimate in the future",
			order:         Order{ID: "B", PlacedAt: "02:00 PM", DeliveryTime: "03:30 PM", Status: StatusOutForDelivery},
			wantDelivered: false,
			wantTime:      "03:30 PM",
		},
		{
			name:          "estimate passed",
			order:         Order{ID: "C", PlacedAt: "01:00 PM", DeliveryTime: "02:30 PM", Status: StatusOutForDelivery},
			wantDelivered: true,
			wantTime:      "02:30 PM",
		},
		{
			name:          "estimate exactly now",
			order:         Order{ID: "D", PlacedAt: "01:00 PM", DeliveryTime: "03:00 PM", Status: StatusOutForDelivery},
			wantDelivered: true,
			wantTime:      "03:00 PM",
		},
		{
			name:          "delivered status wins without estimate",
			order:         Order{ID: "E", PlacedAt: "01:00 PM", Status: StatusDelivered},
			wantDelivered: true,
			wantTime:      "N/A",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			steps := Steps(tt.order, now)
			if len(steps) != 2 {
				t.Fatalf("got %d steps, want 2", len(steps))
			}

			placed := steps[0]
			if placed.Label != "Order Placed" || !placed.Completed {
				t.Fatalf("placed step wrong: %+v", placed)
			}
			if placed.DisplayTime != tt.order.PlacedAt {
				t.Fatalf("placed time = %q, want %q", placed.DisplayTime, tt.order.PlacedAt)
			}

			delivered := steps[1]
			if delivered.Label != "Delivered" {
				t.Fatalf("delivered step wrong: %+v", delivered)
			}
			if delivered.Completed != tt.wantDelivered {
				t.Fatalf("delivered.Completed = %v, want %v", delivered.Completed, tt.wantDelivered)
			}
			if delivered.DisplayTime != tt.wantTime {
				t.Fatalf("delivered time = %q, want %q", delivered.DisplayTime, tt.wantTime)
			}
		})
	}
}

func TestStepsMissingPlacedAtShowsNA(t *testing.T) {
	steps := Steps(Order{ID: "A", Status: StatusPlaced}, time.Now())
	if steps[0].DisplayTime != "N/A" {
		t.Fatalf("placed time = %q, want N/A", steps[0].DisplayTime)
	}
}
