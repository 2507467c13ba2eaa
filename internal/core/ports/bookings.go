package ports

import (
	"context"

	"github.com/propdesk/crm-console/internal/core/domain"
)

// BookingForm carries all data needed to create a booking.
type BookingForm struct {
	LeadID      string             `json:"leadId"`
	UnitID      string             `json:"unitId"`
	PaymentPlan domain.PaymentPlan `json:"paymentPlan"`
	TokenAmount float64            `json:"tokenAmount"`
	BookingDate string             `json:"bookingDate"`
	Notes       string             `json:"notes,omitempty"`
}

// BookingPatch is a partial update; nil fields are left unchanged.
type BookingPatch struct {
	PaymentPlan *domain.PaymentPlan `json:"paymentPlan,omitempty"`
	TokenAmount *float64            `json:"tokenAmount,omitempty"`
	BookingDate *string             `json:"bookingDate,omitempty"`
	Notes       *string             `json:"notes,omitempty"`
}

// ListBookingsInput carries filter and pagination parameters.
type ListBookingsInput struct {
	Status string
	Search string
	Page   int
	Limit  int
}

// BookingPage is one page of bookings plus its pagination meta.
type BookingPage struct {
	Data []domain.Booking `json:"data"`
	Meta ListMeta         `json:"meta"`
}

// BookingGateway is the upstream contract for booking resources.
type BookingGateway interface {
	List(ctx context.Context, token string, input ListBookingsInput) (*BookingPage, error)
	Get(ctx context.Context, token, id string) (*domain.Booking, error)
	Create(ctx context.Context, token string, form BookingForm) (*domain.Booking, error)
	Update(ctx context.Context, token, id string, patch BookingPatch) (*domain.Booking, error)
	Cancel(ctx context.Context, token, id string) (*domain.Booking, error)
}

// BookingService is the cached, invalidating console view over the gateway.
// Create and Cancel additionally invalidate unit listings, since bookings
// change unit availability as an observable cross-resource side effect.
type BookingService interface {
	List(ctx context.Context, session *domain.Session, input ListBookingsInput) (*BookingPage, error)
	Get(ctx context.Context, session *domain.Session, id string) (*domain.Booking, error)
	Create(ctx context.Context, session *domain.Session, form BookingForm) (*domain.Booking, error)
	Update(ctx context.Context, session *domain.Session, id string, patch BookingPatch) (*domain.Booking, error)
	Cancel(ctx context.Context, session *domain.Session, id string) (*domain.Booking, error)
}
