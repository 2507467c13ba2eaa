package upstream

import (
	"context"
	"net/http"
	"net/url"

	"github.com/propdesk/crm-console/internal/core/domain"
	"github.com/propdesk/crm-console/internal/core/ports"
)

// UnitGateway talks to the CRM API's /units endpoints.
type UnitGateway struct {
	client *Client
}

func NewUnitGateway(client *Client) *UnitGateway {
	return &UnitGateway{client: client}
}

func (g *UnitGateway) List(ctx context.Context, token string, input ports.ListUnitsInput) (*ports.UnitPage, error) {
	var page ports.UnitPage
	if err := g.client.do(ctx, http.MethodGet, "/units", input.Values(), token, nil, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

func (g *UnitGateway) Get(ctx context.Context, token, id string) (*domain.Unit, error) {
	var unit domain.Unit
	if err := g.client.do(ctx, http.MethodGet, "/units/"+url.PathEscape(id), nil, token, nil, &unit); err != nil {
		return nil, err
	}
	return &unit, nil
}

func (g *UnitGateway) Create(ctx context.Context, token string, form ports.UnitForm) (*domain.Unit, error) {
	var unit domain.Unit
	if err := g.client.do(ctx, http.MethodPost, "/units", nil, token, form, &unit); err != nil {
		return nil, err
	}
	return &unit, nil
}

func (g *UnitGateway) Update(ctx context.Context, token, id string, patch ports.UnitPatch) (*domain.Unit, error) {
	var unit domain.Unit
	if err := g.client.do(ctx, http.MethodPatch, "/units/"+url.PathEscape(id), nil, token, patch, &unit); err != nil {
		return nil, err
	}
	return &unit, nil
}

func (g *UnitGateway) Delete(ctx context.Context, token, id string) error {
	return g.client.do(ctx, http.MethodDelete, "/units/"+url.PathEscape(id), nil, token, nil, nil)
}
