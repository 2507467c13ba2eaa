package ports

import (
	"context"

	"github.com/propdesk/crm-console/internal/core/domain"
)

// ProjectForm carries all data needed to create a project.
type ProjectForm struct {
	Name           string               `json:"name"`
	Location       string               `json:"location"`
	Developer      string               `json:"developer"`
	Description    string               `json:"description,omitempty"`
	TotalUnits     int                  `json:"totalUnits"`
	Status         domain.ProjectStatus `json:"status"`
	PossessionDate string               `json:"possessionDate,omitempty"`
}

// ProjectPatch is a partial update; nil fields are left unchanged.
type ProjectPatch struct {
	Name           *string               `json:"name,omitempty"`
	Location       *string               `json:"location,omitempty"`
	Developer      *string               `json:"developer,omitempty"`
	Description    *string               `json:"description,omitempty"`
	TotalUnits     *int                  `json:"totalUnits,omitempty"`
	Status         *domain.ProjectStatus `json:"status,omitempty"`
	PossessionDate *string               `json:"possessionDate,omitempty"`
}

// ListProjectsInput carries filter and pagination parameters.
type ListProjectsInput struct {
	Status string
	Search string
	Page   int
	Limit  int
}

// ProjectPage is one page of projects plus its pagination meta.
type ProjectPage struct {
	Data []domain.Project `json:"data"`
	Meta ListMeta         `json:"meta"`
}

// ProjectGateway is the upstream contract for project resources.
type ProjectGateway interface {
	List(ctx context.Context, token string, input ListProjectsInput) (*ProjectPage, error)
	Get(ctx context.Context, token, id string) (*domain.Project, error)
	Create(ctx context.Context, token string, form ProjectForm) (*domain.Project, error)
	Update(ctx context.Context, token, id string, patch ProjectPatch) (*domain.Project, error)
	Delete(ctx context.Context, token, id string) error
}

// ProjectService is the cached, invalidating console view over the gateway.
type ProjectService interface {
	List(ctx context.Context, session *domain.Session, input ListProjectsInput) (*ProjectPage, error)
	Get(ctx context.Context, session *domain.Session, id string) (*domain.Project, error)
	Create(ctx context.Context, session *domain.Session, form ProjectForm) (*domain.Project, error)
	Update(ctx context.Context, session *domain.Session, id string, patch ProjectPatch) (*domain.Project, error)
	Delete(ctx context.Context, session *domain.Session, id string) error
}
