package upstream

import (
	"context"
	"io"
	"net/http"
	"net/url"

	"github.com/propdesk/crm-console/internal/core/domain"
	"github.com/propdesk/crm-console/internal/core/ports"
)

// LeadGateway talks to the CRM API's /leads endpoints.
type LeadGateway struct {
	client *Client
}

func NewLeadGateway(client *Client) *LeadGateway {
	return &LeadGateway{client: client}
}

func (g *LeadGateway) List(ctx context.Context, token string, input ports.ListLeadsInput) (*ports.LeadPage, error) {
	var page ports.LeadPage
	if err := g.client.do(ctx, http.MethodGet, "/leads", input.Values(), token, nil, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

func (g *LeadGateway) Get(ctx context.Context, token, id string) (*domain.Lead, error) {
	var lead domain.Lead
	if err := g.client.do(ctx, http.MethodGet, "/leads/"+url.PathEscape(id), nil, token, nil, &lead); err != nil {
		return nil, err
	}
	return &lead, nil
}

func (g *LeadGateway) Create(ctx context.Context, token string, form ports.LeadForm) (*domain.Lead, error) {
	var lead domain.Lead
	if err := g.client.do(ctx, http.MethodPost, "/leads", nil, token, form, &lead); err != nil {
		return nil, err
	}
	return &lead, nil
}

func (g *LeadGateway) Update(ctx context.Context, token, id string, patch ports.LeadPatch) (*domain.Lead, error) {
	var lead domain.Lead
	if err := g.client.do(ctx, http.MethodPatch, "/leads/"+url.PathEscape(id), nil, token, patch, &lead); err != nil {
		return nil, err
	}
	return &lead, nil
}

func (g *LeadGateway) Delete(ctx context.Context, token, id string) error {
	return g.client.do(ctx, http.MethodDelete, "/leads/"+url.PathEscape(id), nil, token, nil, nil)
}

func (g *LeadGateway) AssignAgent(ctx context.Context, token, id, agentID string) (*domain.Lead, error) {
	var lead domain.Lead
	err := g.client.do(ctx, http.MethodPatch, "/leads/"+url.PathEscape(id)+"/assign", nil, token,
		map[string]string{"agentId": agentID}, &lead)
	if err != nil {
		return nil, err
	}
	return &lead, nil
}

func (g *LeadGateway) Activities(ctx context.Context, token, leadID string) ([]domain.Activity, error) {
	var activities []domain.Activity
	err := g.client.do(ctx, http.MethodGet, "/leads/"+url.PathEscape(leadID)+"/activities", nil, token, nil, &activities)
	if err != nil {
		return nil, err
	}
	return activities, nil
}

func (g *LeadGateway) CreateActivity(ctx context.Context, token string, form ports.ActivityForm) (*domain.Activity, error) {
	var activity domain.Activity
	if err := g.client.do(ctx, http.MethodPost, "/leads/activities", nil, token, form, &activity); err != nil {
		return nil, err
	}
	return &activity, nil
}

func (g *LeadGateway) Import(ctx context.Context, token, fileName string, file io.Reader) (string, error) {
	var resp struct {
		JobID string `json:"jobId"`
	}
	if err := g.client.upload(ctx, "/leads/import", token, "file", fileName, file, &resp); err != nil {
		return "", err
	}
	return resp.JobID, nil
}

func (g *LeadGateway) ImportJobs(ctx context.Context, token string) ([]domain.ImportJob, error) {
	var jobs []domain.ImportJob
	if err := g.client.do(ctx, http.MethodGet, "/leads/import-jobs", nil, token, nil, &jobs); err != nil {
		return nil, err
	}
	return jobs, nil
}

func (g *LeadGateway) ImportJob(ctx context.Context, token, id string) (*domain.ImportJob, error) {
	var job domain.ImportJob
	err := g.client.do(ctx, http.MethodGet, "/leads/import-jobs/"+url.PathEscape(id), nil, token, nil, &job)
	if err != nil {
		return nil, err
	}
	return &job, nil
}
