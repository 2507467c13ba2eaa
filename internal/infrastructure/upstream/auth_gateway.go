package upstream

import (
	"context"
	"net/http"

	"github.com/propdesk/crm-console/internal/core/domain"
)

// AuthGateway talks to the CRM API's /auth endpoints.
type AuthGateway struct {
	client *Client
}

func NewAuthGateway(client *Client) *AuthGateway {
	return &AuthGateway{client: client}
}

type authResponse struct {
	AccessToken string       `json:"accessToken"`
	User        *domain.User `json:"user"`
	Message     string       `json:"message,omitempty"`
}

type messageResponse struct {
	Message string `json:"message"`
}

func (g *AuthGateway) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	var resp authResponse
	err := g.client.do(ctx, http.MethodPost, "/auth/login", nil, "",
		map[string]string{"email": email, "password": password}, &resp)
	if err != nil {
		return "", nil, err
	}
	return resp.AccessToken, resp.User, nil
}

func (g *AuthGateway) Register(ctx context.Context, name, email, password string) (string, error) {
	var resp messageResponse
	err := g.client.do(ctx, http.MethodPost, "/auth/register", nil, "",
		map[string]string{"name": name, "email": email, "password": password}, &resp)
	if err != nil {
		return "", err
	}
	return resp.Message, nil
}

func (g *AuthGateway) VerifyEmail(ctx context.Context, token string) (string, *domain.User, error) {
	var resp authResponse
	err := g.client.do(ctx, http.MethodPost, "/auth/verify-email", nil, "",
		map[string]string{"token": token}, &resp)
	if err != nil {
		return "", nil, err
	}
	return resp.AccessToken, resp.User, nil
}

func (g *AuthGateway) ForgotPassword(ctx context.Context, email string) (string, error) {
	var resp messageResponse
	err := g.client.do(ctx, http.MethodPost, "/auth/forgot-password", nil, "",
		map[string]string{"email": email}, &resp)
	if err != nil {
		return "", err
	}
	return resp.Message, nil
}

func (g *AuthGateway) ResetPassword(ctx context.Context, token, password string) (string, error) {
	var resp messageResponse
	err := g.client.do(ctx, http.MethodPost, "/auth/reset-password", nil, "",
		map[string]string{"token": token, "password": password}, &resp)
	if err != nil {
		return "", err
	}
	return resp.Message, nil
}

func (g *AuthGateway) ResendVerification(ctx context.Context, email string) (string, error) {
	var resp messageResponse
	err := g.client.do(ctx, http.MethodPost, "/auth/resend-verification", nil, "",
		map[string]string{"email": email}, &resp)
	if err != nil {
		return "", err
	}
	return resp.Message, nil
}

func (g *AuthGateway) RequestOTP(ctx context.Context, phoneNumber string) (string, error) {
	var resp messageResponse
	err := g.client.do(ctx, http.MethodPost, "/auth/otp/request", nil, "",
		map[string]string{"phoneNumber": phoneNumber}, &resp)
	if err != nil {
		return "", err
	}
	return resp.Message, nil
}

func (g *AuthGateway) VerifyOTP(ctx context.Context, phoneNumber, otp string) (string, *domain.User, error) {
	var resp authResponse
	err := g.client.do(ctx, http.MethodPost, "/auth/otp/verify", nil, "",
		map[string]string{"phoneNumber": phoneNumber, "otp": otp}, &resp)
	if err != nil {
		return "", nil, err
	}
	return resp.AccessToken, resp.User, nil
}

func (g *AuthGateway) Me(ctx context.Context, token string) (*domain.User, error) {
	var user domain.User
	if err := g.client.do(ctx, http.MethodGet, "/auth/me", nil, token, nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (g *AuthGateway) Logout(ctx context.Context, token string) error {
	return g.client.do(ctx, http.MethodPost, "/auth/logout", nil, token, nil, nil)
}
