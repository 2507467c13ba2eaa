package ports

import (
	"context"

	"github.com/propdesk/crm-console/internal/core/domain"
)

// UnitForm carries all data needed to create a unit.
type UnitForm struct {
	ProjectID  string            `json:"projectId"`
	UnitNumber string            `json:"unitNumber"`
	Type       domain.UnitType   `json:"type"`
	Floor      int               `json:"floor,omitempty"`
	Area       float64           `json:"area"`
	BasePrice  float64           `json:"basePrice"`
	Status     domain.UnitStatus `json:"status"`
	Amenities  []string          `json:"amenities,omitempty"`
}

// UnitPatch is a partial update; nil fields are left unchanged.
type UnitPatch struct {
	ProjectID  *string            `json:"projectId,omitempty"`
	UnitNumber *string            `json:"unitNumber,omitempty"`
	Type       *domain.UnitType   `json:"type,omitempty"`
	Floor      *int               `json:"floor,omitempty"`
	Area       *float64           `json:"area,omitempty"`
	BasePrice  *float64           `json:"basePrice,omitempty"`
	Status     *domain.UnitStatus `json:"status,omitempty"`
	Amenities  *[]string          `json:"amenities,omitempty"`
}

// ListUnitsInput carries filter and pagination parameters.
type ListUnitsInput struct {
	ProjectID string
	Type      string
	Status    string
	MinPrice  float64
	MaxPrice  float64
	Search    string
	Page      int
	Limit     int
}

// UnitPage is one page of units plus its pagination meta.
type UnitPage struct {
	Data []domain.Unit `json:"data"`
	Meta ListMeta      `json:"meta"`
}

// UnitGateway is the upstream contract for unit resources.
type UnitGateway interface {
	List(ctx context.Context, token string, input ListUnitsInput) (*UnitPage, error)
	Get(ctx context.Context, token, id string) (*domain.Unit, error)
	Create(ctx context.Context, token string, form UnitForm) (*domain.Unit, error)
	Update(ctx context.Context, token, id string, patch UnitPatch) (*domain.Unit, error)
	Delete(ctx context.Context, token, id string) error
}

// UnitService is the cached, invalidating console view over the gateway.
type UnitService interface {
	List(ctx context.Context, session *domain.Session, input ListUnitsInput) (*UnitPage, error)
	Get(ctx context.Context, session *domain.Session, id string) (*domain.Unit, error)
	Create(ctx context.Context, session *domain.Session, form UnitForm) (*domain.Unit, error)
	Update(ctx context.Context, session *domain.Session, id string, patch UnitPatch) (*domain.Unit, error)
	Delete(ctx context.Context, session *domain.Session, id string) error
}
