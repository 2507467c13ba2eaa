package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/propdesk/crm-console/internal/core/domain"
	"github.com/propdesk/crm-console/internal/core/ports"
)

// UnitService fronts the unit endpoints of the CRM API with the shared
// query cache and invalidation rules. Unit listings are also invalidated
// by booking mutations; see the rule table.
type UnitService struct {
	gateway ports.UnitGateway
	cache   ports.QueryCache
	inval   *Invalidator
	ttl     time.Duration
	log     zerolog.Logger
}

func NewUnitService(gateway ports.UnitGateway, cache ports.QueryCache, inval *Invalidator, ttl time.Duration, log zerolog.Logger) *UnitService {
	return &UnitService{gateway: gateway, cache: cache, inval: inval, ttl: ttl, log: log}
}

func (s *UnitService) List(ctx context.Context, session *domain.Session, input ports.ListUnitsInput) (*ports.UnitPage, error) {
	tenant, err := tenantOf(session)
	if err != nil {
		return nil, err
	}

	key := listKey(tenant, KindUnits, input.Values().Encode())
	var cached ports.UnitPage
	if cacheLoad(ctx, s.cache, KindUnits, key, &cached, s.log) {
		return &cached, nil
	}

	page, err := s.gateway.List(ctx, session.Token, input)
	if err != nil {
		return nil, err
	}
	cacheStore(ctx, s.cache, key, page, s.ttl, s.log)
	return page, nil
}

func (s *UnitService) Get(ctx context.Context, session *domain.Session, id string) (*domain.Unit, error) {
	tenant, err := tenantOf(session)
	if err != nil {
		return nil, err
	}

	key := detailKey(tenant, KindUnits, id)
	var cached domain.Unit
	if cacheLoad(ctx, s.cache, KindUnits, key, &cached, s.log) {
		return &cached, nil
	}

	unit, err := s.gateway.Get(ctx, session.Token, id)
	if err != nil {
		return nil, err
	}
	cacheStore(ctx, s.cache, key, unit, s.ttl, s.log)
	return unit, nil
}

func (s *UnitService) Create(ctx context.Context, session *domain.Session, form ports.UnitForm) (*domain.Unit, error) {
	tenant, err := tenantOf(session)
	if err != nil {
		return nil, err
	}

	unit, err := s.gateway.Create(ctx, session.Token, form)
	if err != nil {
		return nil, err
	}
	s.inval.After(ctx, OpUnitCreate, tenant, unit.ID)
	s.log.Info().Str("unit_id", unit.ID).Msg("unit created")
	return unit, nil
}

func (s *UnitService) Update(ctx context.Context, session *domain.Session, id string, patch ports.UnitPatch) (*domain.Unit, error) {
	tenant, err := tenantOf(session)
	if err != nil {
		return nil, err
	}

	unit, err := s.gateway.Update(ctx, session.Token, id, patch)
	if err != nil {
		return nil, err
	}
	s.inval.After(ctx, OpUnitUpdate, tenant, id)
	return unit, nil
}

func (s *UnitService) Delete(ctx context.Context, session *domain.Session, id string) error {
	tenant, err := tenantOf(session)
	if err != nil {
		return err
	}

	if err := s.gateway.Delete(ctx, session.Token, id); err != nil {
		return err
	}
	s.inval.After(ctx, OpUnitDelete, tenant, id)
	s.log.Info().Str("unit_id", id).Msg("unit deleted")
	return nil
}
