package service

import (
	"context"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/propdesk/crm-console/internal/core/domain"
	"github.com/propdesk/crm-console/internal/core/ports"
)

func testLogger() zerolog.Logger {
	return zerolog.Nop()
}

func authedSession(id string) *domain.Session {
	return &domain.Session{
		ID:    id,
		Token: "token-" + id,
		User: &domain.User{
			ID:       "user-" + id,
			Name:     "Test User",
			Email:    "user@example.com",
			Role:     domain.RoleAdmin,
			TenantID: "tenant-1",
		},
		IsAuthenticated: true,
		RefreshedAt:     time.Now().UTC(),
	}
}

// memorySessionRepo is an in-memory ports.SessionRepository.
type memorySessionRepo struct {
	mu       sync.Mutex
	sessions map[string]domain.Session
}

func newMemorySessionRepo() *memorySessionRepo {
	return &memorySessionRepo{sessions: make(map[string]domain.Session)}
}

func (r *memorySessionRepo) Find(ctx context.Context, id string) (*domain.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[id]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	copied := s
	return &copied, nil
}

func (r *memorySessionRepo) Save(ctx context.Context, session *domain.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[session.ID] = *session
	return nil
}

// stubAuthGateway satisfies ports.AuthGateway; only Me matters to the
// session manager tests.
type stubAuthGateway struct {
	meUser  *domain.User
	meErr   error
	meCalls int
}

func (g *stubAuthGateway) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	return "", nil, nil
}

func (g *stubAuthGateway) Register(ctx context.Context, name, email, password string) (string, error) {
	return "", nil
}

func (g *stubAuthGateway) VerifyEmail(ctx context.Context, token string) (string, *domain.User, error) {
	return "", nil, nil
}

func (g *stubAuthGateway) ForgotPassword(ctx context.Context, email string) (string, error) {
	return "", nil
}

func (g *stubAuthGateway) ResetPassword(ctx context.Context, token, password string) (string, error) {
	return "", nil
}

func (g *stubAuthGateway) ResendVerification(ctx context.Context, email string) (string, error) {
	return "", nil
}

func (g *stubAuthGateway) RequestOTP(ctx context.Context, phoneNumber string) (string, error) {
	return "", nil
}

func (g *stubAuthGateway) VerifyOTP(ctx context.Context, phoneNumber, otp string) (string, *domain.User, error) {
	return "", nil, nil
}

func (g *stubAuthGateway) Me(ctx context.Context, token string) (*domain.User, error) {
	g.meCalls++
	return g.meUser, g.meErr
}

func (g *stubAuthGateway) Logout(ctx context.Context, token string) error {
	return nil
}

// memoryCache is an in-memory ports.QueryCache with prefix invalidation.
type memoryCache struct {
	mu      sync.Mutex
	entries map[string][]byte
}

func newMemoryCache() *memoryCache {
	return &memoryCache{entries: make(map[string][]byte)}
}

func (c *memoryCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	payload, ok := c.entries[key]
	return payload, ok, nil
}

func (c *memoryCache) Set(ctx context.Context, key string, payload []byte, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = payload
	return nil
}

func (c *memoryCache) Invalidate(ctx context.Context, prefixes ...string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for key := range c.entries {
		for _, prefix := range prefixes {
			if strings.HasPrefix(key, prefix) {
				delete(c.entries, key)
				break
			}
		}
	}
	return nil
}

func (c *memoryCache) size() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// stubLeadGateway counts upstream calls so tests can tell cache hits from
// refetches.
type stubLeadGateway struct {
	listCalls       int
	getCalls        int
	activitiesCalls int
	lead            domain.Lead
}

func (g *stubLeadGateway) List(ctx context.Context, token string, input ports.ListLeadsInput) (*ports.LeadPage, error) {
	g.listCalls++
	return &ports.LeadPage{
		Data: []domain.Lead{g.lead},
		Meta: ports.ListMeta{Total: 1, Page: 1, Limit: 20, TotalPages: 1},
	}, nil
}

func (g *stubLeadGateway) Get(ctx context.Context, token, id string) (*domain.Lead, error) {
	g.getCalls++
	lead := g.lead
	lead.ID = id
	return &lead, nil
}

func (g *stubLeadGateway) Create(ctx context.Context, token string, form ports.LeadForm) (*domain.Lead, error) {
	lead := g.lead
	lead.Name = form.Name
	return &lead, nil
}

func (g *stubLeadGateway) Update(ctx context.Context, token, id string, patch ports.LeadPatch) (*domain.Lead, error) {
	lead := g.lead
	lead.ID = id
	return &lead, nil
}

func (g *stubLeadGateway) Delete(ctx context.Context, token, id string) error {
	return nil
}

func (g *stubLeadGateway) AssignAgent(ctx context.Context, token, id, agentID string) (*domain.Lead, error) {
	lead := g.lead
	lead.ID = id
	lead.AssignedTo = agentID
	return &lead, nil
}

func (g *stubLeadGateway) Activities(ctx context.Context, token, leadID string) ([]domain.Activity, error) {
	g.activitiesCalls++
	return []domain.Activity{{ID: "act-1", LeadID: leadID, Type: domain.ActivityNote}}, nil
}

func (g *stubLeadGateway) CreateActivity(ctx context.Context, token string, form ports.ActivityForm) (*domain.Activity, error) {
	return &domain.Activity{ID: "act-2", LeadID: form.LeadID, Type: form.Type}, nil
}

func (g *stubLeadGateway) Import(ctx context.Context, token, fileName string, file io.Reader) (string, error) {
	return "job-1", nil
}

func (g *stubLeadGateway) ImportJobs(ctx context.Context, token string) ([]domain.ImportJob, error) {
	return nil, nil
}

func (g *stubLeadGateway) ImportJob(ctx context.Context, token, id string) (*domain.ImportJob, error) {
	return &domain.ImportJob{ID: id, Status: domain.ImportProcessing}, nil
}

// stubBookingGateway serves a fixed booking and records whether Cancel
// reached upstream.
type stubBookingGateway struct {
	booking     domain.Booking
	cancelCalls int
}

func (g *stubBookingGateway) List(ctx context.Context, token string, input ports.ListBookingsInput) (*ports.BookingPage, error) {
	return &ports.BookingPage{
		Data: []domain.Booking{g.booking},
		Meta: ports.ListMeta{Total: 1, Page: 1, Limit: 20, TotalPages: 1},
	}, nil
}

func (g *stubBookingGateway) Get(ctx context.Context, token, id string) (*domain.Booking, error) {
	booking := g.booking
	booking.ID = id
	return &booking, nil
}

func (g *stubBookingGateway) Create(ctx context.Context, token string, form ports.BookingForm) (*domain.Booking, error) {
	booking := g.booking
	booking.LeadID = form.LeadID
	booking.UnitID = form.UnitID
	return &booking, nil
}

func (g *stubBookingGateway) Update(ctx context.Context, token, id string, patch ports.BookingPatch) (*domain.Booking, error) {
	booking := g.booking
	booking.ID = id
	return &booking, nil
}

func (g *stubBookingGateway) Cancel(ctx context.Context, token, id string) (*domain.Booking, error) {
	g.cancelCalls++
	booking := g.booking
	booking.ID = id
	booking.Status = domain.BookingCancelled
	return &booking, nil
}

// scriptedLeadService feeds the import watcher a fixed sequence of job
// snapshots. Only the import-job methods are meaningful.
type scriptedLeadService struct {
	mu    sync.Mutex
	jobs  []domain.ImportJob
	calls int
}

func (s *scriptedLeadService) nextJob() *domain.ImportJob {
	s.mu.Lock()
	defer s.mu.Unlock()
	idx := s.calls
	if idx >= len(s.jobs) {
		idx = len(s.jobs) - 1
	}
	s.calls++
	job := s.jobs[idx]
	return &job
}

func (s *scriptedLeadService) List(ctx context.Context, session *domain.Session, input ports.ListLeadsInput) (*ports.LeadPage, error) {
	return nil, nil
}

func (s *scriptedLeadService) Get(ctx context.Context, session *domain.Session, id string) (*domain.Lead, error) {
	return nil, nil
}

func (s *scriptedLeadService) Create(ctx context.Context, session *domain.Session, form ports.LeadForm) (*domain.Lead, error) {
	return nil, nil
}

func (s *scriptedLeadService) Update(ctx context.Context, session *domain.Session, id string, patch ports.LeadPatch) (*domain.Lead, error) {
	return nil, nil
}

func (s *scriptedLeadService) Delete(ctx context.Context, session *domain.Session, id string) error {
	return nil
}

func (s *scriptedLeadService) AssignAgent(ctx context.Context, session *domain.Session, id, agentID string) (*domain.Lead, error) {
	return nil, nil
}

func (s *scriptedLeadService) Activities(ctx context.Context, session *domain.Session, leadID string) ([]domain.Activity, error) {
	return nil, nil
}

func (s *scriptedLeadService) CreateActivity(ctx context.Context, session *domain.Session, form ports.ActivityForm) (*domain.Activity, error) {
	return nil, nil
}

func (s *scriptedLeadService) Import(ctx context.Context, session *domain.Session, fileName string, file io.Reader) (string, error) {
	return "", nil
}

func (s *scriptedLeadService) ImportJobs(ctx context.Context, session *domain.Session) ([]domain.ImportJob, error) {
	return nil, nil
}

func (s *scriptedLeadService) ImportJob(ctx context.Context, session *domain.Session, id string) (*domain.ImportJob, error) {
	return s.nextJob(), nil
}
