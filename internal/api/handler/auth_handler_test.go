package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/propdesk/crm-console/internal/api/middleware"
	"github.com/propdesk/crm-console/internal/core/domain"
)

type stubAuthGateway struct {
	logoutErr   error
	logoutCalls int
}

func (g *stubAuthGateway) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	return "tok-1", &domain.User{ID: "u1", Role: domain.RoleAdmin}, nil
}

func (g *stubAuthGateway) Register(ctx context.Context, name, email, password string) (string, error) {
	return "registered", nil
}

func (g *stubAuthGateway) VerifyEmail(ctx context.Context, token string) (string, *domain.User, error) {
	return "tok-1", &domain.User{ID: "u1"}, nil
}

func (g *stubAuthGateway) ForgotPassword(ctx context.Context, email string) (string, error) {
	return "sent", nil
}

func (g *stubAuthGateway) ResetPassword(ctx context.Context, token, password string) (string, error) {
	return "reset", nil
}

func (g *stubAuthGateway) ResendVerification(ctx context.Context, email string) (string, error) {
	return "resent", nil
}

func (g *stubAuthGateway) RequestOTP(ctx context.Context, phoneNumber string) (string, error) {
	return "otp sent", nil
}

func (g *stubAuthGateway) VerifyOTP(ctx context.Context, phoneNumber, otp string) (string, *domain.User, error) {
	return "tok-1", &domain.User{ID: "u1"}, nil
}

func (g *stubAuthGateway) Me(ctx context.Context, token string) (*domain.User, error) {
	return &domain.User{ID: "u1"}, nil
}

func (g *stubAuthGateway) Logout(ctx context.Context, token string) error {
	g.logoutCalls++
	return g.logoutErr
}

type stubSessionManager struct {
	loggedOut []string
}

func (m *stubSessionManager) Start(ctx context.Context, token string, user *domain.User) (*domain.Session, error) {
	return &domain.Session{ID: "s1", Token: token, User: user, IsAuthenticated: true, RefreshedAt: time.Now()}, nil
}

func (m *stubSessionManager) SetAuth(ctx context.Context, id, token string, user *domain.User) (*domain.Session, error) {
	return &domain.Session{ID: id, Token: token, User: user, IsAuthenticated: true}, nil
}

func (m *stubSessionManager) UpdateUser(ctx context.Context, id string, user *domain.User) (*domain.Session, error) {
	return &domain.Session{ID: id, User: user}, nil
}

func (m *stubSessionManager) Logout(ctx context.Context, id string) (*domain.Session, error) {
	m.loggedOut = append(m.loggedOut, id)
	return &domain.Session{ID: id}, nil
}

func (m *stubSessionManager) Get(ctx context.Context, id string) (*domain.Session, error) {
	return nil, domain.ErrSessionNotFound
}

func (m *stubSessionManager) NeedsRefresh(session *domain.Session) bool { return false }

func (m *stubSessionManager) Refresh(ctx context.Context, session *domain.Session) (*domain.Session, error) {
	return session, nil
}

func TestLogoutClearsSessionWhenUpstreamFails(t *testing.T) {
	auth := &stubAuthGateway{logoutErr: errors.New("upstream down")}
	sessions := &stubSessionManager{}
	codec := middleware.NewCookieCodec("test-secret", time.Hour)
	h := NewAuthHandler(auth, sessions, codec, zerolog.Nop())

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/auth/logout", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("session", &domain.Session{
		ID:              "s1",
		Token:           "tok-1",
		User:            &domain.User{ID: "u1"},
		IsAuthenticated: true,
		RefreshedAt:     time.Now(),
	})

	if err := h.Logout(c); err != nil {
		t.Fatalf("Logout: %v", err)
	}
	if auth.logoutCalls != 1 {
		t.Fatal("upstream logout should be attempted")
	}
	if len(sessions.loggedOut) != 1 || sessions.loggedOut[0] != "s1" {
		t.Fatal("local session must be cleared even when upstream logout fails")
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	cookies := rec.Result().Cookies()
	var cleared bool
	for _, cookie := range cookies {
		if cookie.Name == middleware.SessionCookie && cookie.MaxAge < 0 {
			cleared = true
		}
	}
	if !cleared {
		t.Fatal("session cookie should be expired")
	}
}

func TestLoginOpensSessionAndSetsCookie(t *testing.T) {
	auth := &stubAuthGateway{}
	sessions := &stubSessionManager{}
	codec := middleware.NewCookieCodec("test-secret", time.Hour)
	h := NewAuthHandler(auth, sessions, codec, zerolog.Nop())

	e := echo.New()
	e.Validator = NewValidator()
	req := httptest.NewRequest(http.MethodPost, "/auth/login",
		strings.NewReader(`{"email":"a@b.c","password":"secret"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Login(c); err != nil {
		t.Fatalf("Login: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var found bool
	for _, cookie := range rec.Result().Cookies() {
		if cookie.Name == middleware.SessionCookie && cookie.Value != "" {
			if _, err := codec.Parse(cookie.Value); err != nil {
				t.Fatalf("cookie not parseable: %v", err)
			}
			found = true
		}
	}
	if !found {
		t.Fatal("expected a signed session cookie")
	}
}
