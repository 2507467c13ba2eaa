package upstream

import (
	"context"
	"net/http"
	"net/url"

	"github.com/propdesk/crm-console/internal/core/domain"
	"github.com/propdesk/crm-console/internal/core/ports"
)

// ProjectGateway talks to the CRM API's /projects endpoints.
type ProjectGateway struct {
	client *Client
}

func NewProjectGateway(client *Client) *ProjectGateway {
	return &ProjectGateway{client: client}
}

func (g *ProjectGateway) List(ctx context.Context, token string, input ports.ListProjectsInput) (*ports.ProjectPage, error) {
	var page ports.ProjectPage
	if err := g.client.do(ctx, http.MethodGet, "/projects", input.Values(), token, nil, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

func (g *ProjectGateway) Get(ctx context.Context, token, id string) (*domain.Project, error) {
	var project domain.Project
	if err := g.client.do(ctx, http.MethodGet, "/projects/"+url.PathEscape(id), nil, token, nil, &project); err != nil {
		return nil, err
	}
	return &project, nil
}

func (g *ProjectGateway) Create(ctx context.Context, token string, form ports.ProjectForm) (*domain.Project, error) {
	var project domain.Project
	if err := g.client.do(ctx, http.MethodPost, "/projects", nil, token, form, &project); err != nil {
		return nil, err
	}
	return &project, nil
}

func (g *ProjectGateway) Update(ctx context.Context, token, id string, patch ports.ProjectPatch) (*domain.Project, error) {
	var project domain.Project
	if err := g.client.do(ctx, http.MethodPatch, "/projects/"+url.PathEscape(id), nil, token, patch, &project); err != nil {
		return nil, err
	}
	return &project, nil
}

func (g *ProjectGateway) Delete(ctx context.Context, token, id string) error {
	return g.client.do(ctx, http.MethodDelete, "/projects/"+url.PathEscape(id), nil, token, nil, nil)
}
