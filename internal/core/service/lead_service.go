package service

import (
	"context"
	"io"
	"time"

	"github.com/rs/zerolog"

	"github.com/propdesk/crm-console/internal/core/domain"
	"github.com/propdesk/crm-console/internal/core/ports"
)

// LeadService fronts the lead endpoints of the CRM API with a short-lived
// query cache. Reads are served from cache when a fresh snapshot exists;
// successful mutations invalidate per the rule table.
type LeadService struct {
	gateway ports.LeadGateway
	cache   ports.QueryCache
	inval   *Invalidator
	ttl     time.Duration
	log     zerolog.Logger
}

func NewLeadService(gateway ports.LeadGateway, cache ports.QueryCache, inval *Invalidator, ttl time.Duration, log zerolog.Logger) *LeadService {
	return &LeadService{gateway: gateway, cache: cache, inval: inval, ttl: ttl, log: log}
}

func (s *LeadService) List(ctx context.Context, session *domain.Session, input ports.ListLeadsInput) (*ports.LeadPage, error) {
	tenant, err := tenantOf(session)
	if err != nil {
		return nil, err
	}

	key := listKey(tenant, KindLeads, input.Values().Encode())
	var cached ports.LeadPage
	if cacheLoad(ctx, s.cache, KindLeads, key, &cached, s.log) {
		return &cached, nil
	}

	page, err := s.gateway.List(ctx, session.Token, input)
	if err != nil {
		return nil, err
	}
	cacheStore(ctx, s.cache, key, page, s.ttl, s.log)
	return page, nil
}

func (s *LeadService) Get(ctx context.Context, session *domain.Session, id string) (*domain.Lead, error) {
	tenant, err := tenantOf(session)
	if err != nil {
		return nil, err
	}

	key := detailKey(tenant, KindLeads, id)
	var cached domain.Lead
	if cacheLoad(ctx, s.cache, KindLeads, key, &cached, s.log) {
		return &cached, nil
	}

	lead, err := s.gateway.Get(ctx, session.Token, id)
	if err != nil {
		return nil, err
	}
	cacheStore(ctx, s.cache, key, lead, s.ttl, s.log)
	return lead, nil
}

func (s *LeadService) Create(ctx context.Context, session *domain.Session, form ports.LeadForm) (*domain.Lead, error) {
	tenant, err := tenantOf(session)
	if err != nil {
		return nil, err
	}

	lead, err := s.gateway.Create(ctx, session.Token, form)
	if err != nil {
		return nil, err
	}
	s.inval.After(ctx, OpLeadCreate, tenant, lead.ID)
	s.log.Info().Str("lead_id", lead.ID).Msg("lead created")
	return lead, nil
}

func (s *LeadService) Update(ctx context.Context, session *domain.Session, id string, patch ports.LeadPatch) (*domain.Lead, error) {
	tenant, err := tenantOf(session)
	if err != nil {
		return nil, err
	}

	lead, err := s.gateway.Update(ctx, session.Token, id, patch)
	if err != nil {
		return nil, err
	}
	s.inval.After(ctx, OpLeadUpdate, tenant, id)
	return lead, nil
}

func (s *LeadService) Delete(ctx context.Context, session *domain.Session, id string) error {
	tenant, err := tenantOf(session)
	if err != nil {
		return err
	}

	if err := s.gateway.Delete(ctx, session.Token, id); err != nil {
		return err
	}
	s.inval.After(ctx, OpLeadDelete, tenant, id)
	s.log.Info().Str("lead_id", id).Msg("lead deleted")
	return nil
}

func (s *LeadService) AssignAgent(ctx context.Context, session *domain.Session, id, agentID string) (*domain.Lead, error) {
	tenant, err := tenantOf(session)
	if err != nil {
		return nil, err
	}

	lead, err := s.gateway.AssignAgent(ctx, session.Token, id, agentID)
	if err != nil {
		return nil, err
	}
	s.inval.After(ctx, OpLeadAssign, tenant, id)
	s.log.Info().Str("lead_id", id).Str("agent_id", agentID).Msg("agent assigned")
	return lead, nil
}

// Activities returns a lead's timeline. Cached under the activities kind,
// keyed by the owning lead so CreateActivity can invalidate one timeline
// without touching the others.
func (s *LeadService) Activities(ctx context.Context, session *domain.Session, leadID string) ([]domain.Activity, error) {
	tenant, err := tenantOf(session)
	if err != nil {
		return nil, err
	}

	key := listKey(tenant, KindActivities, leadID)
	var cached []domain.Activity
	if cacheLoad(ctx, s.cache, KindActivities, key, &cached, s.log) {
		return cached, nil
	}

	activities, err := s.gateway.Activities(ctx, session.Token, leadID)
	if err != nil {
		return nil, err
	}
	cacheStore(ctx, s.cache, key, activities, s.ttl, s.log)
	return activities, nil
}

func (s *LeadService) CreateActivity(ctx context.Context, session *domain.Session, form ports.ActivityForm) (*domain.Activity, error) {
	tenant, err := tenantOf(session)
	if err != nil {
		return nil, err
	}

	activity, err := s.gateway.CreateActivity(ctx, session.Token, form)
	if err != nil {
		return nil, err
	}
	s.inval.After(ctx, OpActivityCreate, tenant, form.LeadID)
	return activity, nil
}

// Import submits a lead file and returns the server-side job id. The job
// itself is observed through ImportJob or the import watcher.
func (s *LeadService) Import(ctx context.Context, session *domain.Session, fileName string, file io.Reader) (string, error) {
	if _, err := tenantOf(session); err != nil {
		return "", err
	}

	jobID, err := s.gateway.Import(ctx, session.Token, fileName, file)
	if err != nil {
		return "", err
	}
	s.log.Info().Str("job_id", jobID).Str("file", fileName).Msg("lead import started")
	return jobID, nil
}

// ImportJobs is never cached: job listings exist to be watched for change.
func (s *LeadService) ImportJobs(ctx context.Context, session *domain.Session) ([]domain.ImportJob, error) {
	if _, err := tenantOf(session); err != nil {
		return nil, err
	}
	return s.gateway.ImportJobs(ctx, session.Token)
}

// ImportJob is never cached; it is the poll target of the import watcher.
func (s *LeadService) ImportJob(ctx context.Context, session *domain.Session, id string) (*domain.ImportJob, error) {
	if _, err := tenantOf(session); err != nil {
		return nil, err
	}
	return s.gateway.ImportJob(ctx, session.Token, id)
}
