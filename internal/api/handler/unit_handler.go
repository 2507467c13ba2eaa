package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/propdesk/crm-console/internal/core/domain"
	"github.com/propdesk/crm-console/internal/core/ports"
)

// UnitHandler exposes the unit inventory.
type UnitHandler struct {
	units ports.UnitService
}

func NewUnitHandler(units ports.UnitService) *UnitHandler {
	return &UnitHandler{units: units}
}

type unitRequest struct {
	ProjectID  string   `json:"projectId" validate:"required"`
	UnitNumber string   `json:"unitNumber" validate:"required"`
	Type       string   `json:"type" validate:"required,oneof=1BHK 2BHK 3BHK 4BHK Villa Plot"`
	Floor      int      `json:"floor" validate:"omitempty,gt=0"`
	Area       float64  `json:"area" validate:"required,gt=0"`
	BasePrice  float64  `json:"basePrice" validate:"required,gt=0"`
	Status     string   `json:"status" validate:"required,oneof=available blocked booked sold"`
	Amenities  []string `json:"amenities"`
}

type unitPatchRequest struct {
	ProjectID  *string   `json:"projectId" validate:"omitempty,min=1"`
	UnitNumber *string   `json:"unitNumber" validate:"omitempty,min=1"`
	Type       *string   `json:"type" validate:"omitempty,oneof=1BHK 2BHK 3BHK 4BHK Villa Plot"`
	Floor      *int      `json:"floor" validate:"omitempty,gt=0"`
	Area       *float64  `json:"area" validate:"omitempty,gt=0"`
	BasePrice  *float64  `json:"basePrice" validate:"omitempty,gt=0"`
	Status     *string   `json:"status" validate:"omitempty,oneof=available blocked booked sold"`
	Amenities  *[]string `json:"amenities"`
}

func (h *UnitHandler) List(c echo.Context) error {
	session, err := ctxSession(c)
	if err != nil {
		return err
	}

	input := ports.ListUnitsInput{
		ProjectID: c.QueryParam("projectId"),
		Type:      c.QueryParam("type"),
		Status:    c.QueryParam("status"),
		MinPrice:  queryFloat(c, "minPrice"),
		MaxPrice:  queryFloat(c, "maxPrice"),
		Search:    c.QueryParam("search"),
		Page:      queryInt(c, "page"),
		Limit:     queryInt(c, "limit"),
	}

	page, err := h.units.List(c.Request().Context(), session, input)
	if err != nil {
		return opFailed(err, "Failed to load units")
	}
	return c.JSON(http.StatusOK, page)
}

func (h *UnitHandler) Get(c echo.Context) error {
	session, err := ctxSession(c)
	if err != nil {
		return err
	}

	unit, err := h.units.Get(c.Request().Context(), session, c.Param("id"))
	if err != nil {
		return opFailed(err, "Unit not found")
	}
	return c.JSON(http.StatusOK, unit)
}

func (h *UnitHandler) Create(c echo.Context) error {
	session, err := ctxSession(c)
	if err != nil {
		return err
	}

	var req unitRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	unit, err := h.units.Create(c.Request().Context(), session, ports.UnitForm{
		ProjectID:  req.ProjectID,
		UnitNumber: req.UnitNumber,
		Type:       domain.UnitType(req.Type),
		Floor:      req.Floor,
		Area:       req.Area,
		BasePrice:  req.BasePrice,
		Status:     domain.UnitStatus(req.Status),
		Amenities:  req.Amenities,
	})
	if err != nil {
		return opFailed(err, "Failed to create unit")
	}
	return c.JSON(http.StatusCreated, unit)
}

func (h *UnitHandler) Update(c echo.Context) error {
	session, err := ctxSession(c)
	if err != nil {
		return err
	}

	var req unitPatchRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	patch := ports.UnitPatch{
		ProjectID:  req.ProjectID,
		UnitNumber: req.UnitNumber,
		Floor:      req.Floor,
		Area:       req.Area,
		BasePrice:  req.BasePrice,
		Amenities:  req.Amenities,
	}
	if req.Type != nil {
		t := domain.UnitType(*req.Type)
		patch.Type = &t
	}
	if req.Status != nil {
		s := domain.UnitStatus(*req.Status)
		patch.Status = &s
	}

	unit, err := h.units.Update(c.Request().Context(), session, c.Param("id"), patch)
	if err != nil {
		return opFailed(err, "Failed to update unit")
	}
	return c.JSON(http.StatusOK, unit)
}

func (h *UnitHandler) Delete(c echo.Context) error {
	session, err := ctxSession(c)
	if err != nil {
		return err
	}

	if err := h.units.Delete(c.Request().Context(), session, c.Param("id")); err != nil {
		return opFailed(err, "Failed to delete unit")
	}
	return c.NoContent(http.StatusNoContent)
}

func queryFloat(c echo.Context, name string) float64 {
	f, err := strconv.ParseFloat(c.QueryParam(name), 64)
	if err != nil || f < 0 {
		return 0
	}
	return f
}
