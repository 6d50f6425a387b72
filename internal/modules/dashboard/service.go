// Package dashboard backs the delivery partner's order dashboard: the new
// (unassigned) column, the partner's pending deliveries and their completed
// history, plus the accept / delivered actions.
package dashboard

import (
	"context"

	"github.com/MitaliChangani/Chai-Biscuit-website/internal/backend"
	"github.com/MitaliChangani/Chai-Biscuit-website/internal/modules/history"
	"github.com/MitaliChangani/Chai-Biscuit-website/internal/modules/tracking"
	"github.com/MitaliChangani/Chai-Biscuit-website/internal/shared/apperr"
	"github.com/MitaliChangani/Chai-Biscuit-website/pkg/view"
)

type PartnerAPI interface {
	UnassignedOrders(ctx context.Context) ([]backend.WireOrder, error)
	AssignedOrders(ctx context.Context, phone string) ([]backend.WireOrder, error)
	DeliveryHistory(ctx context.Context, phone string) ([]backend.WireOrder, error)
	UpdateOrderStatus(ctx context.Context, orderID, status, partnerPhone string) error
}

type Service struct {
	api PartnerAPI
}

func NewService(api PartnerAPI) *Service { return &Service{api: api} }

// Page assembles the three dashboard columns. The buckets are fetched
// independently; one failing feed fails the page, matching the screen's
// all-or-nothing refresh.
func (s *Service) Page(ctx context.Context, partnerPhone string) (view.DashboardPage, error) {
	if partnerPhone == "" {
		return view.DashboardPage{}, apperr.InvalidErr("Phone number is required.", nil)
	}

	unassigned, err := s.api.UnassignedOrders(ctx)
	if err != nil {
		return view.DashboardPage{}, apperr.UpstreamErr(err)
	}
	assigned, err := s.api.AssignedOrders(ctx, partnerPhone)
	if err != nil {
		return view.DashboardPage{}, apperr.UpstreamErr(err)
	}
	completed, err := s.api.DeliveryHistory(ctx, partnerPhone)
	if err != nil {
		return view.DashboardPage{}, apperr.UpstreamErr(err)
	}

	page := view.DashboardPage{
		New:       make([]view.TrackedOrder, 0, len(unassigned)),
		Pending:   make([]view.TrackedOrder, 0, len(assigned)),
		Completed: make([]view.HistoryRow, 0, len(completed)),
	}
	for _, o := range unassigned {
		page.New = append(page.New, cardFrom(o))
	}
	for _, o := range assigned {
		page.Pending = append(page.Pending, cardFrom(o))
	}
	for _, o := range completed {
		page.Completed = append(page.Completed, history.RowFrom(o))
	}
	return page, nil
}

// Accept claims an unassigned order for the partner.
func (s *Service) Accept(ctx context.Context, orderID, partnerPhone string) error {
	if orderID == "" || partnerPhone == "" {
		return apperr.InvalidErr("Order id and phone number are required.", nil)
	}
	if err := s.api.UpdateOrderStatus(ctx, orderID, tracking.StatusAssigned, partnerPhone); err != nil {
		return apperr.UpstreamErr(err)
	}
	return nil
}

// Delivered marks an assigned order as handed over.
func (s *Service) Delivered(ctx context.Context, orderID, partnerPhone string) error {
	if orderID == "" {
		return apperr.InvalidErr("Order id is required.", nil)
	}
	if err := s.api.UpdateOrderStatus(ctx, orderID, tracking.StatusDelivered, partnerPhone); err != nil {
		return apperr.UpstreamErr(err)
	}
	return nil
}

func cardFrom(o backend.WireOrder) view.TrackedOrder {
	card := view.TrackedOrder{
		ID:              o.OrderID,
		Status:          o.NormalizedStatus(),
		PlacedAt:        o.PlacedAt,
		EstimatedArrive: o.DeliveryTime,
		Total:           view.Money(float64(o.TotalAmount)),
		DeliveryAddress: o.Address,
	}
	if card.EstimatedArrive == "" {
		card.EstimatedArrive = "N/A"
	}
	if card.DeliveryAddress == "" && o.User != nil {
		card.DeliveryAddress = o.User.Address
	}
	for _, it := range o.Items {
		card.Items = append(card.Items, view.OrderItem{
			Name:      it.DisplayName(),
			Quantity:  it.Quantity,
			PriceEach: view.Money(it.UnitPrice()),
			LineTotal: view.Money(it.UnitPrice() * float64(it.Quantity)),
		})
	}
	if o.AssignedTo != nil {
		card.AssignedTo = &view.Courier{Name: o.AssignedTo.Name, PhoneNumber: o.AssignedTo.PhoneNumber}
	}
	return card
}
