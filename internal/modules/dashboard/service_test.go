package dashboard

import (
	"context"
	"errors"
	"testing"

	"github.com/MitaliChangani/Chai-Biscuit-website/internal/backend"
	"github.com/MitaliChangani/Chai-Biscuit-website/internal/modules/tracking"
	"github.com/MitaliChangani/Chai-Biscuit-website/internal/shared/apperr"
)

type fakePartnerAPI struct {
	unassigned []backend.WireOrder
	assigned   []backend.WireOrder
	history    []backend.WireOrder
	err        error

	statusOrderID string
	statusValue   string
	statusPhone   string
}

func (f *fakePartnerAPI) UnassignedOrders(ctx context.Context) ([]backend.WireOrder, error) {
	return f.unassigned, f.err
}

func (f *fakePartnerAPI) AssignedOrders(ctx context.Context, phone string) ([]backend.WireOrder, error) {
	return f.assigned, f.err
}

func (f *fakePartnerAPI) DeliveryHistory(ctx context.Context, phone string) ([]backend.WireOrder, error) {
	return f.history, f.err
}

func (f *fakePartnerAPI) UpdateOrderStatus(ctx context.Context, orderID, status, partnerPhone string) error {
	f.statusOrderID = orderID
	f.statusValue = status
	f.statusPhone = partnerPhone
	return f.err
}

func TestPageFillsAllThreeColumns(t *testing.T) {
	api := &fakePartnerAPI{
		unassigned: []backend.WireOrder{{
			OrderID:        "n1",
			DeliveryStatus: "Placed",
			PlacedAt:       "01:00 PM",
			TotalAmount:    120,
			User:           &backend.WireCustomer{Address: "MG Road"},
			Items:          []backend.WireItem{{ItemName: "Ginger Chai", Quantity: 3, PricePerItem: 40}},
		}},
		assigned: []backend.WireOrder{{OrderID: "p1", DeliveryStatus: "out_for_delivery", DeliveryTime: "02:30 PM"}},
		history:  []backend.WireOrder{{OrderID: "c1", DeliveryStatus: "Delivered", CompletedAt: "12:15 PM", Earnings: 30}},
	}

	page, err := NewService(api).Page(context.Background(), "9000000002")
	if err != nil {
		t.Fatalf("page: %v", err)
	}

	if len(page.New) != 1 || len(page.Pending) != 1 || len(page.Completed) != 1 {
		t.Fatalf("columns = %d/%d/%d, want 1/1/1", len(page.New), len(page.Pending), len(page.Completed))
	}

	card := page.New[0]
	if card.ID != "n1" || card.Status != "placed" {
		t.Fatalf("card = %+v", card)
	}
	if card.DeliveryAddress != "MG Road" {
		t.Fatalf("customer address fallback missing: %q", card.DeliveryAddress)
	}
	if card.EstimatedArrive != "N/A" {
		t.Fatalf("missing estimate must show N/A: %q", card.EstimatedArrive)
	}
	if len(card.Items) != 1 || card.Items[0].LineTotal != "₹120.00" {
		t.Fatalf("items = %+v", card.Items)
	}

	if page.Pending[0].EstimatedArrive != "02:30 PM" {
		t.Fatalf("pending estimate = %q", page.Pending[0].EstimatedArrive)
	}
	done := page.Completed[0]
	if done.Date != "12:15 PM" || done.Earnings != "₹30.00" {
		t.Fatalf("completed row = %+v", done)
	}
}

func TestPageFailsWhenAnyFeedFails(t *testing.T) {
	api := &fakePartnerAPI{err: errors.New("boom")}
	_, err := NewService(api).Page(context.Background(), "9000000002")
	if apperr.HTTPStatus(err) != 502 {
		t.Fatalf("status %d, want 502", apperr.HTTPStatus(err))
	}
}

func TestAcceptClaimsOrderForPartner(t *testing.T) {
	api := &fakePartnerAPI{}
	if err := NewService(api).Accept(context.Background(), "n1", "9000000002"); err != nil {
		t.Fatalf("accept: %v", err)
	}
	if api.statusOrderID != "n1" || api.statusValue != tracking.StatusAssigned || api.statusPhone != "9000000002" {
		t.Fatalf("forwarded %q %q %q", api.statusOrderID, api.statusValue, api.statusPhone)
	}
}

func TestAcceptRequiresOrderAndPhone(t *testing.T) {
	svc := NewService(&fakePartnerAPI{})
	if err := svc.Accept(context.Background(), "", "9000000002"); apperr.HTTPStatus(err) != 400 {
		t.Fatal("missing order id must be rejected")
	}
	if err := svc.Accept(context.Background(), "n1", ""); apperr.HTTPStatus(err) != 400 {
		t.Fatal("missing phone must be rejected")
	}
}

func TestDeliveredMarksHandover(t *testing.T) {
	api := &fakePartnerAPI{}
	if err := NewService(api).Delivered(context.Background(), "p1", "9000000002"); err != nil {
		t.Fatalf("delivered: %v", err)
	}
	if api.statusValue != tracking.StatusDelivered {
		t.Fatalf("status = %q", api.statusValue)
	}
}
