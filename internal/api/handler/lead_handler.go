package handler

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/propdesk/crm-console/internal/core/domain"
	"github.com/propdesk/crm-console/internal/core/ports"
)

// LeadHandler exposes the lead pipeline: CRUD, agent assignment, the
// activity timeline and bulk CSV import.
type LeadHandler struct {
	leads   ports.LeadService
	watcher ports.ImportWatcher
}

func NewLeadHandler(leads ports.LeadService, watcher ports.ImportWatcher) *LeadHandler {
	return &LeadHandler{leads: leads, watcher: watcher}
}

type leadRequest struct {
	Name   string  `json:"name" validate:"required,min=2"`
	Email  string  `json:"email" validate:"omitempty,email"`
	Phone  string  `json:"phone" validate:"required,min=10"`
	Source string  `json:"source" validate:"required"`
	Status string  `json:"status" validate:"required,oneof=new contacted qualified converted lost"`
	Budget float64 `json:"budget" validate:"omitempty,gt=0"`
	Notes  string  `json:"notes"`
}

type leadPatchRequest struct {
	Name   *string  `json:"name" validate:"omitempty,min=2"`
	Email  *string  `json:"email" validate:"omitempty,email"`
	Phone  *string  `json:"phone" validate:"omitempty,min=10"`
	Source *string  `json:"source" validate:"omitempty,min=1"`
	Status *string  `json:"status" validate:"omitempty,oneof=new contacted qualified converted lost"`
	Budget *float64 `json:"budget" validate:"omitempty,gt=0"`
	Notes  *string  `json:"notes"`
}

type assignAgentRequest struct {
	AgentID string `json:"agentId" validate:"required"`
}

type activityRequest struct {
	LeadID      string `json:"leadId" validate:"required"`
	Type        string `json:"type" validate:"required,oneof=call email meeting note status_change"`
	Description string `json:"description" validate:"required"`
	ScheduledAt string `json:"scheduledAt"`
}

type importStartedResponse struct {
	JobID string `json:"jobId"`
}

func (h *LeadHandler) List(c echo.Context) error {
	session, err := ctxSession(c)
	if err != nil {
		return err
	}

	input := ports.ListLeadsInput{
		Status:     c.QueryParam("status"),
		Source:     c.QueryParam("source"),
		AssignedTo: c.QueryParam("assignedTo"),
		Search:     c.QueryParam("search"),
		Page:       queryInt(c, "page"),
		Limit:      queryInt(c, "limit"),
	}

	page, err := h.leads.List(c.Request().Context(), session, input)
	if err != nil {
		return opFailed(err, "Failed to load leads")
	}
	return c.JSON(http.StatusOK, page)
}

func (h *LeadHandler) Get(c echo.Context) error {
	session, err := ctxSession(c)
	if err != nil {
		return err
	}

	lead, err := h.leads.Get(c.Request().Context(), session, c.Param("id"))
	if err != nil {
		return opFailed(err, "Lead not found")
	}
	return c.JSON(http.StatusOK, lead)
}

func (h *LeadHandler) Create(c echo.Context) error {
	session, err := ctxSession(c)
	if err != nil {
		return err
	}

	var req leadRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	lead, err := h.leads.Create(c.Request().Context(), session, ports.LeadForm{
		Name:   req.Name,
		Email:  req.Email,
		Phone:  req.Phone,
		Source: req.Source,
		Status: domain.LeadStatus(req.Status),
		Budget: req.Budget,
		Notes:  req.Notes,
	})
	if err != nil {
		return opFailed(err, "Failed to create lead")
	}
	return c.JSON(http.StatusCreated, lead)
}

func (h *LeadHandler) Update(c echo.Context) error {
	session, err := ctxSession(c)
	if err != nil {
		return err
	}

	var req leadPatchRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	patch := ports.LeadPatch{
		Name:   req.Name,
		Email:  req.Email,
		Phone:  req.Phone,
		Source: req.Source,
		Budget: req.Budget,
		Notes:  req.Notes,
	}
	if req.Status != nil {
		status := domain.LeadStatus(*req.Status)
		patch.Status = &status
	}

	lead, err := h.leads.Update(c.Request().Context(), session, c.Param("id"), patch)
	if err != nil {
		return opFailed(err, "Failed to update lead")
	}
	return c.JSON(http.StatusOK, lead)
}

func (h *LeadHandler) Delete(c echo.Context) error {
	session, err := ctxSession(c)
	if err != nil {
		return err
	}

	if err := h.leads.Delete(c.Request().Context(), session, c.Param("id")); err != nil {
		return opFailed(err, "Failed to delete lead")
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *LeadHandler) AssignAgent(c echo.Context) error {
	session, err := ctxSession(c)
	if err != nil {
		return err
	}

	var req assignAgentRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	lead, err := h.leads.AssignAgent(c.Request().Context(), session, c.Param("id"), req.AgentID)
	if err != nil {
		return opFailed(err, "Failed to assign agent")
	}
	return c.JSON(http.StatusOK, lead)
}

func (h *LeadHandler) Activities(c echo.Context) error {
	session, err := ctxSession(c)
	if err != nil {
		return err
	}

	activities, err := h.leads.Activities(c.Request().Context(), session, c.Param("id"))
	if err != nil {
		return opFailed(err, "Failed to load activities")
	}
	return c.JSON(http.StatusOK, activities)
}

func (h *LeadHandler) CreateActivity(c echo.Context) error {
	session, err := ctxSession(c)
	if err != nil {
		return err
	}

	var req activityRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	activity, err := h.leads.CreateActivity(c.Request().Context(), session, ports.ActivityForm{
		LeadID:      req.LeadID,
		Type:        domain.ActivityType(req.Type),
		Description: req.Description,
		ScheduledAt: req.ScheduledAt,
	})
	if err != nil {
		return opFailed(err, "Failed to add activity")
	}
	return c.JSON(http.StatusCreated, activity)
}

// Import uploads a CSV and starts a server-side import job. The job runs
// asynchronously; callers follow progress through the job endpoints.
func (h *LeadHandler) Import(c echo.Context) error {
	session, err := ctxSession(c)
	if err != nil {
		return err
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "file is required")
	}

	src, err := fileHeader.Open()
	if err != nil {
		return opFailed(err, "Failed to start import")
	}
	defer src.Close()

	jobID, err := h.leads.Import(c.Request().Context(), session, fileHeader.Filename, src)
	if err != nil {
		return opFailed(err, "Failed to start import")
	}
	return c.JSON(http.StatusAccepted, importStartedResponse{JobID: jobID})
}

func (h *LeadHandler) ImportJobs(c echo.Context) error {
	session, err := ctxSession(c)
	if err != nil {
		return err
	}

	jobs, err := h.leads.ImportJobs(c.Request().Context(), session)
	if err != nil {
		return opFailed(err, "Failed to load import jobs")
	}
	return c.JSON(http.StatusOK, jobs)
}

func (h *LeadHandler) ImportJob(c echo.Context) error {
	session, err := ctxSession(c)
	if err != nil {
		return err
	}

	job, err := h.leads.ImportJob(c.Request().Context(), session, c.Param("id"))
	if err != nil {
		return opFailed(err, "Import job not found")
	}
	return c.JSON(http.StatusOK, job)
}

// WatchImportJob streams job snapshots as server-sent events until the job
// reaches a terminal status or the client disconnects. Disconnecting stops
// the underlying polling loop.
func (h *LeadHandler) WatchImportJob(c echo.Context) error {
	session, err := ctxSession(c)
	if err != nil {
		return err
	}

	ch, err := h.watcher.Watch(c.Request().Context(), session, c.Param("id"))
	if err != nil {
		return opFailed(err, "Import job not found")
	}

	resp := c.Response()
	resp.Header().Set(echo.HeaderContentType, "text/event-stream")
	resp.Header().Set("Cache-Control", "no-cache")
	resp.Header().Set("Connection", "keep-alive")
	resp.WriteHeader(http.StatusOK)

	for job := range ch {
		payload, err := json.Marshal(job)
		if err != nil {
			continue
		}
		if _, err := fmt.Fprintf(resp, "data: %s\n\n", payload); err != nil {
			return nil
		}
		resp.Flush()
	}
	return nil
}
