package ports

import (
	"context"
	"io"

	"github.com/propdesk/crm-console/internal/core/domain"
)

// ListMeta is the pagination envelope returned with every list response.
// The server is the sole authority on counts and slicing; the console
// never paginates or filters locally.
type ListMeta struct {
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalPages int   `json:"totalPages"`
}

// LeadForm carries all data needed to create a lead.
type LeadForm struct {
	Name   string            `json:"name"`
	Email  string            `json:"email,omitempty"`
	Phone  string            `json:"phone"`
	Source string            `json:"source"`
	Status domain.LeadStatus `json:"status"`
	Budget float64           `json:"budget,omitempty"`
	Notes  string            `json:"notes,omitempty"`
}

// LeadPatch is a partial update; nil fields are left unchanged server-side.
type LeadPatch struct {
	Name   *string            `json:"name,omitempty"`
	Email  *string            `json:"email,omitempty"`
	Phone  *string            `json:"phone,omitempty"`
	Source *string            `json:"source,omitempty"`
	Status *domain.LeadStatus `json:"status,omitempty"`
	Budget *float64           `json:"budget,omitempty"`
	Notes  *string            `json:"notes,omitempty"`
}

// ActivityForm carries a new timeline entry for a lead.
type ActivityForm struct {
	LeadID      string              `json:"leadId"`
	Type        domain.ActivityType `json:"type"`
	Description string              `json:"description"`
	ScheduledAt string              `json:"scheduledAt,omitempty"`
}

// ListLeadsInput carries the filter and pagination parameters for the lead
// list. Zero values mean "no filter".
type ListLeadsInput struct {
	Status     string
	Source     string
	AssignedTo string
	Search     string
	Page       int
	Limit      int
}

// LeadPage is one page of leads plus its pagination meta.
type LeadPage struct {
	Data []domain.Lead `json:"data"`
	Meta ListMeta      `json:"meta"`
}

// LeadGateway is the upstream contract for lead resources.
type LeadGateway interface {
	List(ctx context.Context, token string, input ListLeadsInput) (*LeadPage, error)
	Get(ctx context.Context, token, id string) (*domain.Lead, error)
	Create(ctx context.Context, token string, form LeadForm) (*domain.Lead, error)
	Update(ctx context.Context, token, id string, patch LeadPatch) (*domain.Lead, error)
	Delete(ctx context.Context, token, id string) error
	AssignAgent(ctx context.Context, token, id, agentID string) (*domain.Lead, error)
	Activities(ctx context.Context, token, leadID string) ([]domain.Activity, error)
	CreateActivity(ctx context.Context, token string, form ActivityForm) (*domain.Activity, error)
	Import(ctx context.Context, token, fileName string, file io.Reader) (string, error)
	ImportJobs(ctx context.Context, token string) ([]domain.ImportJob, error)
	ImportJob(ctx context.Context, token, id string) (*domain.ImportJob, error)
}

// LeadService is the cached, invalidating console view over the gateway.
type LeadService interface {
	List(ctx context.Context, session *domain.Session, input ListLeadsInput) (*LeadPage, error)
	Get(ctx context.Context, session *domain.Session, id string) (*domain.Lead, error)
	Create(ctx context.Context, session *domain.Session, form LeadForm) (*domain.Lead, error)
	Update(ctx context.Context, session *domain.Session, id string, patch LeadPatch) (*domain.Lead, error)
	Delete(ctx context.Context, session *domain.Session, id string) error
	AssignAgent(ctx context.Context, session *domain.Session, id, agentID string) (*domain.Lead, error)
	Activities(ctx context.Context, session *domain.Session, leadID string) ([]domain.Activity, error)
	CreateActivity(ctx context.Context, session *domain.Session, form ActivityForm) (*domain.Activity, error)
	Import(ctx context.Context, session *domain.Session, fileName string, file io.Reader) (string, error)
	ImportJobs(ctx context.Context, session *domain.Session) ([]domain.ImportJob, error)
	ImportJob(ctx context.Context, session *domain.Session, id string) (*domain.ImportJob, error)
}

// ImportWatcher polls a running import job on a fixed interval and streams
// snapshots until the subscriber's context is cancelled or the job reaches
// a terminal status. The returned channel is closed when polling stops;
// there are no orphaned timers.
type ImportWatcher interface {
	Watch(ctx context.Context, session *domain.Session, jobID string) (<-chan domain.ImportJob, error)
}
