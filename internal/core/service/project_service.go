package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/propdesk/crm-console/internal/core/domain"
	"github.com/propdesk/crm-console/internal/core/ports"
)

// ProjectService fronts the project endpoints of the CRM API with the
// shared query cache and invalidation rules.
type ProjectService struct {
	gateway ports.ProjectGateway
	cache   ports.QueryCache
	inval   *Invalidator
	ttl     time.Duration
	log     zerolog.Logger
}

func NewProjectService(gateway ports.ProjectGateway, cache ports.QueryCache, inval *Invalidator, ttl time.Duration, log zerolog.Logger) *ProjectService {
	return &ProjectService{gateway: gateway, cache: cache, inval: inval, ttl: ttl, log: log}
}

func (s *ProjectService) List(ctx context.Context, session *domain.Session, input ports.ListProjectsInput) (*ports.ProjectPage, error) {
	tenant, err := tenantOf(session)
	if err != nil {
		return nil, err
	}

	key := listKey(tenant, KindProjects, input.Values().Encode())
	var cached ports.ProjectPage
	if cacheLoad(ctx, s.cache, KindProjects, key, &cached, s.log) {
		return &cached, nil
	}

	page, err := s.gateway.List(ctx, session.Token, input)
	if err != nil {
		return nil, err
	}
	cacheStore(ctx, s.cache, key, page, s.ttl, s.log)
	return page, nil
}

func (s *ProjectService) Get(ctx context.Context, session *domain.Session, id string) (*domain.Project, error) {
	tenant, err := tenantOf(session)
	if err != nil {
		return nil, err
	}

	key := detailKey(tenant, KindProjects, id)
	var cached domain.Project
	if cacheLoad(ctx, s.cache, KindProjects, key, &cached, s.log) {
		return &cached, nil
	}

	project, err := s.gateway.Get(ctx, session.Token, id)
	if err != nil {
		return nil, err
	}
	cacheStore(ctx, s.cache, key, project, s.ttl, s.log)
	return project, nil
}

func (s *ProjectService) Create(ctx context.Context, session *domain.Session, form ports.ProjectForm) (*domain.Project, error) {
	tenant, err := tenantOf(session)
	if err != nil {
		return nil, err
	}

	project, err := s.gateway.Create(ctx, session.Token, form)
	if err != nil {
		return nil, err
	}
	s.inval.After(ctx, OpProjectCreate, tenant, project.ID)
	s.log.Info().Str("project_id", project.ID).Msg("project created")
	return project, nil
}

func (s *ProjectService) Update(ctx context.Context, session *domain.Session, id string, patch ports.ProjectPatch) (*domain.Project, error) {
	tenant, err := tenantOf(session)
	if err != nil {
		return nil, err
	}

	project, err := s.gateway.Update(ctx, session.Token, id, patch)
	if err != nil {
		return nil, err
	}
	s.inval.After(ctx, OpProjectUpdate, tenant, id)
	return project, nil
}

func (s *ProjectService) Delete(ctx context.Context, session *domain.Session, id string) error {
	tenant, err := tenantOf(session)
	if err != nil {
		return err
	}

	if err := s.gateway.Delete(ctx, session.Token, id); err != nil {
		return err
	}
	s.inval.After(ctx, OpProjectDelete, tenant, id)
	s.log.Info().Str("project_id", id).Msg("project deleted")
	return nil
}
