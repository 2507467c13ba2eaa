package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/propdesk/crm-console/internal/core/domain"
)

func TestSessionManagerStartAuthenticates(t *testing.T) {
	repo := newMemorySessionRepo()
	manager := NewSessionManager(repo, &stubAuthGateway{}, time.Minute, testLogger())

	user := &domain.User{ID: "u1", Role: domain.RoleAdmin, TenantID: "t1"}
	session, err := manager.Start(context.Background(), "tok-1", user)
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	if session.ID == "" {
		t.Fatal("expected generated session id")
	}
	if !session.IsAuthenticated || session.Token != "tok-1" || session.User != user {
		t.Fatalf("unexpected session state: %+v", session)
	}

	stored, err := repo.Find(context.Background(), session.ID)
	if err != nil {
		t.Fatalf("Find after Start: %v", err)
	}
	if !stored.IsAuthenticated || stored.Token != "tok-1" {
		t.Fatalf("session not persisted: %+v", stored)
	}
}

func TestSessionManagerLogoutClearsEverything(t *testing.T) {
	repo := newMemorySessionRepo()
	manager := NewSessionManager(repo, &stubAuthGateway{}, time.Minute, testLogger())

	session, err := manager.Start(context.Background(), "tok-1", &domain.User{ID: "u1"})
	if err != nil {
		t.Fatalf("Start: %v", err)
	}

	cleared, err := manager.Logout(context.Background(), session.ID)
	if err != nil {
		t.Fatalf("Logout: %v", err)
	}
	if cleared.Token != "" || cleared.User != nil || cleared.IsAuthenticated {
		t.Fatalf("logout left state behind: %+v", cleared)
	}

	stored, err := repo.Find(context.Background(), session.ID)
	if err != nil {
		t.Fatalf("Find after Logout: %v", err)
	}
	if stored.Token != "" || stored.User != nil || stored.IsAuthenticated {
		t.Fatalf("cleared state not persisted: %+v", stored)
	}
}

func TestSessionManagerLogoutIsIdempotent(t *testing.T) {
	manager := NewSessionManager(newMemorySessionRepo(), &stubAuthGateway{}, time.Minute, testLogger())

	cleared, err := manager.Logout(context.Background(), "never-existed")
	if err != nil {
		t.Fatalf("Logout on missing session: %v", err)
	}
	if cleared.IsAuthenticated || cleared.Token != "" || cleared.User != nil {
		t.Fatalf("expected cleared session, got %+v", cleared)
	}
}

func TestSessionManagerUpdateUserPreservesToken(t *testing.T) {
	repo := newMemorySessionRepo()
	manager := NewSessionManager(repo, &stubAuthGateway{}, time.Minute, testLogger())

	session, err := manager.Start(context.Background(), "tok-1", &domain.User{ID: "u1", Name: "Before"})
	if err != nil {
		t.Fatalf("Start: %v", err)
	}

	updated, err := manager.UpdateUser(context.Background(), session.ID, &domain.User{ID: "u1", Name: "After"})
	if err != nil {
		t.Fatalf("UpdateUser: %v", err)
	}
	if updated.Token != "tok-1" || !updated.IsAuthenticated {
		t.Fatalf("UpdateUser touched auth state: %+v", updated)
	}
	if updated.User.Name != "After" {
		t.Fatalf("profile not replaced: %+v", updated.User)
	}
}

func TestSessionManagerNeedsRefresh(t *testing.T) {
	manager := NewSessionManager(newMemorySessionRepo(), &stubAuthGateway{}, time.Minute, testLogger())

	fresh := authedSession("s1")
	if manager.NeedsRefresh(fresh) {
		t.Fatal("fresh session should not need refresh")
	}

	fresh.RefreshedAt = time.Now().Add(-2 * time.Minute)
	if !manager.NeedsRefresh(fresh) {
		t.Fatal("aged session should need refresh")
	}

	if manager.NeedsRefresh(&domain.Session{ID: "anon"}) {
		t.Fatal("unauthenticated session should never need refresh")
	}
}

func TestSessionManagerRefreshReplacesProfile(t *testing.T) {
	repo := newMemorySessionRepo()
	auth := &stubAuthGateway{meUser: &domain.User{ID: "u1", Name: "Renamed", Role: domain.RoleManager}}
	manager := NewSessionManager(repo, auth, time.Minute, testLogger())

	session, err := manager.Start(context.Background(), "tok-1", &domain.User{ID: "u1", Name: "Original"})
	if err != nil {
		t.Fatalf("Start: %v", err)
	}

	refreshed, err := manager.Refresh(context.Background(), session)
	if err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	if refreshed.User.Name != "Renamed" || refreshed.User.Role != domain.RoleManager {
		t.Fatalf("profile not reconciled: %+v", refreshed.User)
	}
	if refreshed.Token != "tok-1" || !refreshed.IsAuthenticated {
		t.Fatalf("refresh touched auth state: %+v", refreshed)
	}
}

func TestSessionManagerRefreshUnauthorizedForcesLogout(t *testing.T) {
	repo := newMemorySessionRepo()
	auth := &stubAuthGateway{meErr: domain.ErrUnauthenticated}
	manager := NewSessionManager(repo, auth, time.Minute, testLogger())

	session, err := manager.Start(context.Background(), "tok-1", &domain.User{ID: "u1"})
	if err != nil {
		t.Fatalf("Start: %v", err)
	}

	_, err = manager.Refresh(context.Background(), session)
	if !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated, got %v", err)
	}

	stored, err := repo.Find(context.Background(), session.ID)
	if err != nil {
		t.Fatalf("Find after forced logout: %v", err)
	}
	if stored.IsAuthenticated || stored.Token != "" || stored.User != nil {
		t.Fatalf("session not cleared after revoked token: %+v", stored)
	}
}

func TestSessionManagerRefreshTransientFailureKeepsProfile(t *testing.T) {
	repo := newMemorySessionRepo()
	auth := &stubAuthGateway{meErr: errors.New("connection refused")}
	manager := NewSessionManager(repo, auth, time.Minute, testLogger())

	session, err := manager.Start(context.Background(), "tok-1", &domain.User{ID: "u1", Name: "Cached"})
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	session.RefreshedAt = time.Now().Add(-5 * time.Minute)
	before := session.RefreshedAt

	refreshed, err := manager.Refresh(context.Background(), session)
	if err != nil {
		t.Fatalf("transient failure should not error: %v", err)
	}
	if refreshed.User == nil || refreshed.User.Name != "Cached" {
		t.Fatalf("cached profile lost: %+v", refreshed.User)
	}
	if !refreshed.IsAuthenticated {
		t.Fatal("transient failure must not log out")
	}
	if !refreshed.RefreshedAt.After(before) {
		t.Fatal("expected attempt to be stamped so the next request does not retry")
	}
}
