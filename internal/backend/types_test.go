package backend

import (
	"encoding/json"
	"testing"
)

func TestAmountAcceptsNumbersStringsAndNull(t *testing.T) {
	tests := []struct {
		in   string
		want Amount
	}{
		{`120`, 120},
		{`"120.50"`, 120.5},
		{`null`, 0},
		{`""`, 0},
		{`"free"`, 0}, // unparsable is tolerated, not fatal
	}
	for _, tt := range tests {
		var a Amount
		if err := json.Unmarshal([]byte(tt.in), &a); err != nil {
			t.Fatalf("%s: %v", tt.in, err)
		}
		if a != tt.want {
			t.Errorf("%s: got %v, want %v", tt.in, a, tt.want)
		}
	}
}

func TestToPartialLeavesAbsentFieldsAbsent(t *testing.T) {
	p := WireOrder{OrderID: "ord-1", DeliveryStatus: "Assigned"}.ToPartial()

	if p.ID != "ord-1" {
		t.Fatalf("id = %q", p.ID)
	}
	if p.Status == nil || *p.Status != "assigned" {
		t.Fatalf("status = %v", p.Status)
	}
	if p.PlacedAt != nil || p.DeliveryTime != nil || p.Total != nil ||
		p.Items != nil || p.AssignedTo != nil || p.Address != nil {
		t.Fatalf("absent wire fields produced updates: %+v", p)
	}
}

func TestNormalizedStatusPrefersDeliveryStatus(t *testing.T) {
	w := WireOrder{DeliveryStatus: "Out_for_Delivery", Status: "placed"}
	if got := w.NormalizedStatus(); got != "out_for_delivery" {
		t.Fatalf("got %q", got)
	}
	w = WireOrder{Status: "Placed"}
	if got := w.NormalizedStatus(); got != "placed" {
		t.Fatalf("legacy fallback: got %q", got)
	}
}

func TestWireItemSpellings(t *testing.T) {
	it := WireItem{ItemName: "Ginger Chai", Price: 40}
	if it.DisplayName() != "Ginger Chai" || it.UnitPrice() != 40 {
		t.Fatalf("item_name/price: %+v", it)
	}
	it = WireItem{Name: "Biscuit", PricePerItem: 15, Price: 99}
	if it.DisplayName() != "Biscuit" || it.UnitPrice() != 15 {
		t.Fatalf("name/price_per_item must win: %+v", it)
	}
}
