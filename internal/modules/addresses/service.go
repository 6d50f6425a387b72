// Package addresses backs the address book screen. The platform keeps a
// single delivery address per profile; this service reads and rewrites it
// through the platform API.
package addresses

import (
	"context"
	"strings"

	"github.com/MitaliChangani/Chai-Biscuit-website/internal/backend"
	"github.com/MitaliChangani/Chai-Biscuit-website/internal/shared/apperr"
	"github.com/MitaliChangani/Chai-Biscuit-website/pkg/view"
)

type ProfileAPI interface {
	UserProfile(ctx context.Context, phone string) (backend.Profile, error)
	UpdateUserProfile(ctx context.Context, phone, address string) error
}

type Service struct {
	api ProfileAPI
}

func NewService(api ProfileAPI) *Service { return &Service{api: api} }

func (s *Service) Book(ctx context.Context, phone string) (view.AddressBook, error) {
	if phone == "" {
		return view.AddressBook{}, apperr.InvalidErr("Phone number is required.", nil)
	}

	p, err := s.api.UserProfile(ctx, phone)
	if err != nil {
		return view.AddressBook{}, apperr.UpstreamErr(err)
	}

	book := view.AddressBook{Name: p.Name, Phone: p.PhoneNumber}
	if p.Address != "" {
		book.Addresses = []view.Address{{ID: 1, Address: p.Address}}
	}
	return book, nil
}

func (s *Service) Update(ctx context.Context, phone, address string) error {
	if phone == "" {
		return apperr.InvalidErr("Phone number is required.", nil)
	}
	address = strings.TrimSpace(address)
	if address == "" {
		return apperr.InvalidErr("Address cannot be empty.", map[string]string{"address": "This field is required."})
	}

	if err := s.api.UpdateUserProfile(ctx, phone, address); err != nil {
		return apperr.UpstreamErr(err)
	}
	return nil
}
