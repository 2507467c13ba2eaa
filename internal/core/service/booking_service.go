package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/propdesk/crm-console/internal/core/domain"
	"github.com/propdesk/crm-console/internal/core/ports"
)

// BookingService fronts the booking endpoints of the CRM API. Booking
// creation and cancellation change unit availability server-side, so both
// also invalidate unit listings (encoded in the rule table, not here).
type BookingService struct {
	gateway ports.BookingGateway
	cache   ports.QueryCache
	inval   *Invalidator
	ttl     time.Duration
	log     zerolog.Logger
}

func NewBookingService(gateway ports.BookingGateway, cache ports.QueryCache, inval *Invalidator, ttl time.Duration, log zerolog.Logger) *BookingService {
	return &BookingService{gateway: gateway, cache: cache, inval: inval, ttl: ttl, log: log}
}

func (s *BookingService) List(ctx context.Context, session *domain.Session, input ports.ListBookingsInput) (*ports.BookingPage, error) {
	tenant, err := tenantOf(session)
	if err != nil {
		return nil, err
	}

	key := listKey(tenant, KindBookings, input.Values().Encode())
	var cached ports.BookingPage
	if cacheLoad(ctx, s.cache, KindBookings, key, &cached, s.log) {
		return &cached, nil
	}

	page, err := s.gateway.List(ctx, session.Token, input)
	if err != nil {
		return nil, err
	}
	cacheStore(ctx, s.cache, key, page, s.ttl, s.log)
	return page, nil
}

func (s *BookingService) Get(ctx context.Context, session *domain.Session, id string) (*domain.Booking, error) {
	tenant, err := tenantOf(session)
	if err != nil {
		return nil, err
	}

	key := detailKey(tenant, KindBookings, id)
	var cached domain.Booking
	if cacheLoad(ctx, s.cache, KindBookings, key, &cached, s.log) {
		return &cached, nil
	}

	booking, err := s.gateway.Get(ctx, session.Token, id)
	if err != nil {
		return nil, err
	}
	cacheStore(ctx, s.cache, key, booking, s.ttl, s.log)
	return booking, nil
}

func (s *BookingService) Create(ctx context.Context, session *domain.Session, form ports.BookingForm) (*domain.Booking, error) {
	tenant, err := tenantOf(session)
	if err != nil {
		return nil, err
	}

	booking, err := s.gateway.Create(ctx, session.Token, form)
	if err != nil {
		return nil, err
	}
	s.inval.After(ctx, OpBookingCreate, tenant, booking.ID)
	s.log.Info().Str("booking_id", booking.ID).Str("unit_id", form.UnitID).Msg("booking created")
	return booking, nil
}

func (s *BookingService) Update(ctx context.Context, session *domain.Session, id string, patch ports.BookingPatch) (*domain.Booking, error) {
	tenant, err := tenantOf(session)
	if err != nil {
		return nil, err
	}

	booking, err := s.gateway.Update(ctx, session.Token, id, patch)
	if err != nil {
		return nil, err
	}
	s.inval.After(ctx, OpBookingUpdate, tenant, id)
	return booking, nil
}

// Cancel is a distinct state transition, not a generic update. The legal
// source states are checked locally so an obviously void request never
// reaches the API; the server remains the final authority.
func (s *BookingService) Cancel(ctx context.Context, session *domain.Session, id string) (*domain.Booking, error) {
	tenant, err := tenantOf(session)
	if err != nil {
		return nil, err
	}

	current, err := s.Get(ctx, session, id)
	if err != nil {
		return nil, err
	}
	if !current.Status.CanTransitionTo(domain.BookingCancelled) {
		return nil, domain.ErrInvalidTransition
	}

	booking, err := s.gateway.Cancel(ctx, session.Token, id)
	if err != nil {
		return nil, err
	}
	s.inval.After(ctx, OpBookingCancel, tenant, id)
	s.log.Info().Str("booking_id", id).Msg("booking cancelled")
	return booking, nil
}
