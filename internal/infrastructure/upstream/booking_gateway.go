package upstream

import (
	"context"
	"net/http"
	"net/url"

	"github.com/propdesk/crm-console/internal/core/domain"
	"github.com/propdesk/crm-console/internal/core/ports"
)

// BookingGateway talks to the CRM API's /bookings endpoints.
type BookingGateway struct {
	client *Client
}

func NewBookingGateway(client *Client) *BookingGateway {
	return &BookingGateway{client: client}
}

func (g *BookingGateway) List(ctx context.Context, token string, input ports.ListBookingsInput) (*ports.BookingPage, error) {
	var page ports.BookingPage
	if err := g.client.do(ctx, http.MethodGet, "/bookings", input.Values(), token, nil, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

func (g *BookingGateway) Get(ctx context.Context, token, id string) (*domain.Booking, error) {
	var booking domain.Booking
	if err := g.client.do(ctx, http.MethodGet, "/bookings/"+url.PathEscape(id), nil, token, nil, &booking); err != nil {
		return nil, err
	}
	return &booking, nil
}

func (g *BookingGateway) Create(ctx context.Context, token string, form ports.BookingForm) (*domain.Booking, error) {
	var booking domain.Booking
	if err := g.client.do(ctx, http.MethodPost, "/bookings", nil, token, form, &booking); err != nil {
		return nil, err
	}
	return &booking, nil
}

func (g *BookingGateway) Update(ctx context.Context, token, id string, patch ports.BookingPatch) (*domain.Booking, error) {
	var booking domain.Booking
	if err := g.client.do(ctx, http.MethodPatch, "/bookings/"+url.PathEscape(id), nil, token, patch, &booking); err != nil {
		return nil, err
	}
	return &booking, nil
}

// Cancel is a bare state-transition call; the server validates and applies
// the transition and returns the updated booking.
func (g *BookingGateway) Cancel(ctx context.Context, token, id string) (*domain.Booking, error) {
	var booking domain.Booking
	if err := g.client.do(ctx, http.MethodPatch, "/bookings/"+url.PathEscape(id)+"/cancel", nil, token, nil, &booking); err != nil {
		return nil, err
	}
	return &booking, nil
}
