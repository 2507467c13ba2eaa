package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/propdesk/crm-console/internal/api/middleware"
	"github.com/propdesk/crm-console/internal/core/domain"
)

// ctxSession pulls the authenticated session the gate injected. Handlers
// registered on gated routes always find one; the error path covers
// misregistration.
func ctxSession(c echo.Context) (*domain.Session, error) {
	session := middleware.CurrentSession(c)
	if session == nil || !session.IsAuthenticated {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "missing session")
	}
	return session, nil
}

func bindAndValidate(c echo.Context, req interface{}) error {
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	return c.Validate(req)
}

// queryInt parses a pagination parameter, ignoring junk values.
func queryInt(c echo.Context, name string) int {
	n, err := strconv.Atoi(c.QueryParam(name))
	if err != nil || n < 0 {
		return 0
	}
	return n
}
