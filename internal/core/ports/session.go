package ports

import (
	"context"

	"github.com/propdesk/crm-console/internal/core/domain"
)

// SessionRepository persists session snapshots. One record per session,
// written in full on every mutating operation and rehydrated on read.
type SessionRepository interface {
	Find(ctx context.Context, id string) (*domain.Session, error)
	Save(ctx context.Context, session *domain.Session) error
}

// SessionManager is the single writer of session state. All methods are
// last-write-wins; there is no merge logic.
type SessionManager interface {
	// Start creates a fresh session and authenticates it in one step.
	Start(ctx context.Context, token string, user *domain.User) (*domain.Session, error)
	// SetAuth stores the token and user and marks the session
	// authenticated. The token is opaque; it is never inspected locally.
	SetAuth(ctx context.Context, id, token string, user *domain.User) (*domain.Session, error)
	// UpdateUser replaces the profile wholesale, leaving the token and the
	// authenticated flag untouched.
	UpdateUser(ctx context.Context, id string, user *domain.User) (*domain.Session, error)
	// Logout clears token, user and the authenticated flag atomically and
	// persists the cleared state. Idempotent.
	Logout(ctx context.Context, id string) (*domain.Session, error)
	Get(ctx context.Context, id string) (*domain.Session, error)
	// NeedsRefresh reports whether the session's profile is old enough to
	// warrant reconciliation. Never true for unauthenticated sessions.
	NeedsRefresh(session *domain.Session) bool
	// Refresh reconciles the cached profile with the CRM API's view. An
	// unauthorized answer forces logout; other failures leave the session
	// untouched and are not retried.
	Refresh(ctx context.Context, session *domain.Session) (*domain.Session, error)
}
