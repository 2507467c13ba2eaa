package ports

import (
	"context"

	"github.com/propdesk/crm-console/internal/core/domain"
)

// AuthGateway exchanges credentials with the CRM API's /auth endpoints.
// Token-returning calls yield the bearer credential the remaining gateways
// attach to every request.
type AuthGateway interface {
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
	Register(ctx context.Context, name, email, password string) (string, error)
	VerifyEmail(ctx context.Context, token string) (string, *domain.User, error)
	ForgotPassword(ctx context.Context, email string) (string, error)
	ResetPassword(ctx context.Context, token, password string) (string, error)
	ResendVerification(ctx context.Context, email string) (string, error)
	RequestOTP(ctx context.Context, phoneNumber string) (string, error)
	VerifyOTP(ctx context.Context, phoneNumber, otp string) (string, *domain.User, error)
	// Me returns the server's current view of the authenticated user.
	Me(ctx context.Context, token string) (*domain.User, error)
	Logout(ctx context.Context, token string) error
}
