package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/propdesk/crm-console/internal/core/domain"
	"github.com/propdesk/crm-console/internal/core/ports"
)

// ProjectHandler exposes the project catalog. Routes are admin-only.
type ProjectHandler struct {
	projects ports.ProjectService
}

func NewProjectHandler(projects ports.ProjectService) *ProjectHandler {
	return &ProjectHandler{projects: projects}
}

type projectRequest struct {
	Name           string `json:"name" validate:"required,min=2"`
	Location       string `json:"location" validate:"required,min=2"`
	Developer      string `json:"developer" validate:"required,min=2"`
	Description    string `json:"description"`
	TotalUnits     int    `json:"totalUnits" validate:"required,gt=0"`
	Status         string `json:"status" validate:"required,oneof=upcoming ongoing completed"`
	PossessionDate string `json:"possessionDate"`
}

type projectPatchRequest struct {
	Name           *string `json:"name" validate:"omitempty,min=2"`
	Location       *string `json:"location" validate:"omitempty,min=2"`
	Developer      *string `json:"developer" validate:"omitempty,min=2"`
	Description    *string `json:"description"`
	TotalUnits     *int    `json:"totalUnits" validate:"omitempty,gt=0"`
	Status         *string `json:"status" validate:"omitempty,oneof=upcoming ongoing completed"`
	PossessionDate *string `json:"possessionDate"`
}

func (h *ProjectHandler) List(c echo.Context) error {
	session, err := ctxSession(c)
	if err != nil {
		return err
	}

	input := ports.ListProjectsInput{
		Status: c.QueryParam("status"),
		Search: c.QueryParam("search"),
		Page:   queryInt(c, "page"),
		Limit:  queryInt(c, "limit"),
	}

	page, err := h.projects.List(c.Request().Context(), session, input)
	if err != nil {
		return opFailed(err, "Failed to load projects")
	}
	return c.JSON(http.StatusOK, page)
}

func (h *ProjectHandler) Get(c echo.Context) error {
	session, err := ctxSession(c)
	if err != nil {
		return err
	}

	project, err := h.projects.Get(c.Request().Context(), session, c.Param("id"))
	if err != nil {
		return opFailed(err, "Project not found")
	}
	return c.JSON(http.StatusOK, project)
}

func (h *ProjectHandler) Create(c echo.Context) error {
	session, err := ctxSession(c)
	if err != nil {
		return err
	}

	var req projectRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	project, err := h.projects.Create(c.Request().Context(), session, ports.ProjectForm{
		Name:           req.Name,
		Location:       req.Location,
		Developer:      req.Developer,
		Description:    req.Description,
		TotalUnits:     req.TotalUnits,
		Status:         domain.ProjectStatus(req.Status),
		PossessionDate: req.PossessionDate,
	})
	if err != nil {
		return opFailed(err, "Failed to create project")
	}
	return c.JSON(http.StatusCreated, project)
}

func (h *ProjectHandler) Update(c echo.Context) error {
	session, err := ctxSession(c)
	if err != nil {
		return err
	}

	var req projectPatchRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	patch := ports.ProjectPatch{
		Name:           req.Name,
		Location:       req.Location,
		Developer:      req.Developer,
		Description:    req.Description,
		TotalUnits:     req.TotalUnits,
		PossessionDate: req.PossessionDate,
	}
	if req.Status != nil {
		status := domain.ProjectStatus(*req.Status)
		patch.Status = &status
	}

	project, err := h.projects.Update(c.Request().Context(), session, c.Param("id"), patch)
	if err != nil {
		return opFailed(err, "Failed to update project")
	}
	return c.JSON(http.StatusOK, project)
}

func (h *ProjectHandler) Delete(c echo.Context) error {
	session, err := ctxSession(c)
	if err != nil {
		return err
	}

	if err := h.projects.Delete(c.Request().Context(), session, c.Param("id")); err != nil {
		return opFailed(err, "Failed to delete project")
	}
	return c.NoContent(http.StatusNoContent)
}
