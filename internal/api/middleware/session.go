package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/propdesk/crm-console/internal/core/domain"
	"github.com/propdesk/crm-console/internal/core/ports"
)

const sessionContextKey = "session"

// LoginPath is where unauthenticated navigation is sent.
const LoginPath = "/login"

// SessionGate is the authentication gate. It resolves the signed session
// cookie, rehydrates the session, runs a profile refresh when the cached
// profile has aged out, and injects the session into the request context.
// Anything short of an authenticated session redirects to the login
// screen before the wrapped handler runs.
func SessionGate(codec *CookieCodec, sessions ports.SessionManager) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			sid, ok := resolveSessionID(c, codec)
			if !ok {
				return c.Redirect(http.StatusFound, LoginPath)
			}

			ctx := c.Request().Context()
			session, err := sessions.Get(ctx, sid)
			if err != nil || !session.IsAuthenticated {
				return c.Redirect(http.StatusFound, LoginPath)
			}

			if sessions.NeedsRefresh(session) {
				session, err = sessions.Refresh(ctx, session)
				if err != nil {
					// Token revoked server-side; the session is already
					// cleared by the refresh policy.
					return c.Redirect(http.StatusFound, LoginPath)
				}
			}

			c.Set(sessionContextKey, session)
			return next(c)
		}
	}
}

// CurrentSession returns the session injected by SessionGate, or nil when
// the route is not gated.
func CurrentSession(c echo.Context) *domain.Session {
	session, _ := c.Get(sessionContextKey).(*domain.Session)
	return session
}

// resolveSessionID reads the signed session reference from the cookie, or
// from a bearer Authorization header for non-browser clients.
func resolveSessionID(c echo.Context, codec *CookieCodec) (string, bool) {
	if cookie, err := c.Cookie(SessionCookie); err == nil && cookie.Value != "" {
		if sid, err := codec.Parse(cookie.Value); err == nil {
			return sid, true
		}
		return "", false
	}

	authHeader := c.Request().Header.Get("Authorization")
	if authHeader == "" {
		return "", false
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return "", false
	}
	sid, err := codec.Parse(parts[1])
	if err != nil {
		return "", false
	}
	return sid, true
}
