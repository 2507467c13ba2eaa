package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/propdesk/crm-console/internal/core/domain"
	"github.com/propdesk/crm-console/internal/core/ports"
	"github.com/propdesk/crm-console/internal/metrics"
)

const defaultRefreshAfter = 5 * time.Minute

// SessionManager is the single writer of session state. Every mutating
// operation persists the full snapshot, so a session survives process
// restarts and is rehydrated on the next request.
type SessionManager struct {
	repo         ports.SessionRepository
	auth         ports.AuthGateway
	refreshAfter time.Duration
	log          zerolog.Logger
}

func NewSessionManager(repo ports.SessionRepository, auth ports.AuthGateway, refreshAfter time.Duration, log zerolog.Logger) *SessionManager {
	if refreshAfter <= 0 {
		refreshAfter = defaultRefreshAfter
	}
	return &SessionManager{repo: repo, auth: auth, refreshAfter: refreshAfter, log: log}
}

// Start creates a fresh session and authenticates it in one step.
func (m *SessionManager) Start(ctx context.Context, token string, user *domain.User) (*domain.Session, error) {
	return m.SetAuth(ctx, uuid.NewString(), token, user)
}

// SetAuth stores the token and user and marks the session authenticated.
// The token is opaque: it came from a trusted exchange with the CRM API
// and is never inspected locally.
func (m *SessionManager) SetAuth(ctx context.Context, id, token string, user *domain.User) (*domain.Session, error) {
	session := &domain.Session{
		ID:              id,
		Token:           token,
		User:            user,
		IsAuthenticated: true,
		RefreshedAt:     time.Now().UTC(),
	}
	if err := m.repo.Save(ctx, session); err != nil {
		return nil, err
	}
	m.log.Info().Str("session_id", id).Str("user_id", user.ID).Msg("session authenticated")
	return session, nil
}

// UpdateUser replaces the profile wholesale. Token and authenticated flag
// keep whatever value they had before the call.
func (m *SessionManager) UpdateUser(ctx context.Context, id string, user *domain.User) (*domain.Session, error) {
	session, err := m.repo.Find(ctx, id)
	if err != nil {
		return nil, err
	}
	session.User = user
	session.RefreshedAt = time.Now().UTC()
	if err := m.repo.Save(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// Logout clears token, user and the authenticated flag in a single
// persisted write. Calling it on an already cleared or missing session is
// a no-op with the same result.
func (m *SessionManager) Logout(ctx context.Context, id string) (*domain.Session, error) {
	session, err := m.repo.Find(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrSessionNotFound) {
			return &domain.Session{ID: id}, nil
		}
		return nil, err
	}
	session.Token = ""
	session.User = nil
	session.IsAuthenticated = false
	if err := m.repo.Save(ctx, session); err != nil {
		return nil, err
	}
	m.log.Info().Str("session_id", id).Msg("session cleared")
	return session, nil
}

// Get rehydrates a session snapshot.
func (m *SessionManager) Get(ctx context.Context, id string) (*domain.Session, error) {
	return m.repo.Find(ctx, id)
}

// NeedsRefresh reports whether the profile is old enough to reconcile with
// the server. Unauthenticated sessions are never probed.
func (m *SessionManager) NeedsRefresh(session *domain.Session) bool {
	if session == nil || !session.IsAuthenticated {
		return false
	}
	return time.Since(session.RefreshedAt) >= m.refreshAfter
}

// Refresh asks the CRM API who the token belongs to and overwrites the
// local profile with the answer.
//
// Policy: an unauthorized answer means the server revoked the token, so
// the session is logged out and ErrUnauthenticated is returned. Any other
// failure keeps the cached profile and is not retried until the next
// refresh window; the operator keeps working on the last known identity.
func (m *SessionManager) Refresh(ctx context.Context, session *domain.Session) (*domain.Session, error) {
	if session == nil || !session.IsAuthenticated {
		return session, nil
	}

	user, err := m.auth.Me(ctx, session.Token)
	if err != nil {
		if errors.Is(err, domain.ErrUnauthenticated) || errors.Is(err, domain.ErrForbidden) {
			m.log.Info().Str("session_id", session.ID).Msg("token rejected on refresh, logging out")
			metrics.SessionsEndedTotal.WithLabelValues("refresh_rejected").Inc()
			cleared, lerr := m.Logout(ctx, session.ID)
			if lerr != nil {
				return nil, lerr
			}
			return cleared, domain.ErrUnauthenticated
		}

		// Transient failure: keep the cached profile, stamp the attempt so
		// the next request does not immediately retry.
		m.log.Warn().Err(err).Str("session_id", session.ID).Msg("session refresh failed")
		session.RefreshedAt = time.Now().UTC()
		if serr := m.repo.Save(ctx, session); serr != nil {
			return nil, serr
		}
		return session, nil
	}

	return m.UpdateUser(ctx, session.ID, user)
}
