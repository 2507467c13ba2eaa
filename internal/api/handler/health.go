package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

// Pinger reports whether a dependency is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

type pingerFunc func(ctx context.Context) error

func (f pingerFunc) Ping(ctx context.Context) error { return f(ctx) }

// PingerFunc adapts a function to the Pinger interface.
func PingerFunc(f func(ctx context.Context) error) Pinger { return pingerFunc(f) }

// HealthHandler exposes liveness and readiness probes. Readiness checks
// the session store and the CRM API; either failing marks the console
// degraded without taking it down.
type HealthHandler struct {
	store    Pinger
	upstream Pinger
}

func NewHealthHandler(store, upstream Pinger) *HealthHandler {
	return &HealthHandler{store: store, upstream: upstream}
}

type healthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks,omitempty"`
}

func (h *HealthHandler) Live(c echo.Context) error {
	return c.JSON(http.StatusOK, healthResponse{Status: "ok"})
}

func (h *HealthHandler) Ready(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 3*time.Second)
	defer cancel()

	checks := map[string]string{
		"session_store": "ok",
		"crm_api":       "ok",
	}
	status := "ok"
	code := http.StatusOK

	if err := h.store.Ping(ctx); err != nil {
		checks["session_store"] = err.Error()
		status = "degraded"
		code = http.StatusServiceUnavailable
	}
	if err := h.upstream.Ping(ctx); err != nil {
		checks["crm_api"] = err.Error()
		status = "degraded"
		code = http.StatusServiceUnavailable
	}

	return c.JSON(code, healthResponse{Status: status, Checks: checks})
}
