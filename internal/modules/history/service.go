// Package history backs the customer order history screen.
package history

import (
	"context"

	"github.com/MitaliChangani/Chai-Biscuit-website/internal/backend"
	"github.com/MitaliChangani/Chai-Biscuit-website/internal/shared/apperr"
	"github.com/MitaliChangani/Chai-Biscuit-website/pkg/view"
)

type HistoryAPI interface {
	OrderHistory(ctx context.Context, phone string) ([]backend.WireOrder, error)
}

type Service struct {
	api HistoryAPI
}

func NewService(api HistoryAPI) *Service { return &Service{api: api} }

// List returns the customer's past orders newest first, with legacy field
// spellings normalized away.
func (s *Service) List(ctx context.Context, phone string) ([]view.HistoryRow, error) {
	if phone == "" {
		return nil, apperr.InvalidErr("Phone number is required.", nil)
	}

	orders, err := s.api.OrderHistory(ctx, phone)
	if err != nil {
		return nil, apperr.UpstreamErr(err)
	}

	rows := make([]view.HistoryRow, 0, len(orders))
	for _, o := range orders {
		rows = append(rows, RowFrom(o))
	}
	return rows, nil
}

// RowFrom maps one wire order onto a history row.
func RowFrom(o backend.WireOrder) view.HistoryRow {
	row := view.HistoryRow{
		ID:     o.OrderID,
		Date:   o.PlacedAt,
		Status: o.NormalizedStatus(),
		Total:  view.Money(float64(o.TotalAmount)),
	}
	if row.Date == "" {
		row.Date = o.CompletedAt
	}
	if row.Status == "" {
		row.Status = "pending"
	}
	for _, it := range o.Items {
		row.Items = append(row.Items, view.HistoryItem{
			Name:      it.DisplayName(),
			Quantity:  it.Quantity,
			PriceEach: view.Money(it.UnitPrice()),
		})
	}
	if o.AssignedTo != nil {
		row.AssignedTo = &view.Courier{Name: o.AssignedTo.Name, PhoneNumber: o.AssignedTo.PhoneNumber}
	}
	if o.Earnings != 0 {
		row.Earnings = view.Money(float64(o.Earnings))
	}
	return row
}
