package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/propdesk/crm-console/internal/core/domain"
	"github.com/propdesk/crm-console/internal/core/ports"
)

func newLeadFixture() (*LeadService, *stubLeadGateway, *memoryCache) {
	gateway := &stubLeadGateway{lead: domain.Lead{ID: "lead-1", Name: "Asha", Status: domain.LeadNew}}
	cache := newMemoryCache()
	inval := NewInvalidator(cache, testLogger())
	svc := NewLeadService(gateway, cache, inval, time.Minute, testLogger())
	return svc, gateway, cache
}

func TestLeadServiceListServedFromCache(t *testing.T) {
	svc, gateway, _ := newLeadFixture()
	session := authedSession("s1")
	ctx := context.Background()
	input := ports.ListLeadsInput{Status: "new", Page: 1, Limit: 20}

	if _, err := svc.List(ctx, session, input); err != nil {
		t.Fatalf("first List: %v", err)
	}
	page, err := svc.List(ctx, session, input)
	if err != nil {
		t.Fatalf("second List: %v", err)
	}
	if gateway.listCalls != 1 {
		t.Fatalf("second identical query should hit the cache, upstream calls = %d", gateway.listCalls)
	}
	if len(page.Data) != 1 || page.Data[0].ID != "lead-1" {
		t.Fatalf("cached page corrupt: %+v", page)
	}
}

func TestLeadServiceDistinctQueriesMissCache(t *testing.T) {
	svc, gateway, _ := newLeadFixture()
	session := authedSession("s1")
	ctx := context.Background()

	if _, err := svc.List(ctx, session, ports.ListLeadsInput{Status: "new"}); err != nil {
		t.Fatalf("List: %v", err)
	}
	if _, err := svc.List(ctx, session, ports.ListLeadsInput{Status: "qualified"}); err != nil {
		t.Fatalf("List: %v", err)
	}
	if gateway.listCalls != 2 {
		t.Fatalf("different filters must not share an entry, upstream calls = %d", gateway.listCalls)
	}
}

func TestLeadServiceCreateInvalidatesListings(t *testing.T) {
	svc, gateway, _ := newLeadFixture()
	session := authedSession("s1")
	ctx := context.Background()
	input := ports.ListLeadsInput{Page: 1}

	if _, err := svc.List(ctx, session, input); err != nil {
		t.Fatalf("List: %v", err)
	}

	if _, err := svc.Create(ctx, session, ports.LeadForm{Name: "New Lead", Phone: "9876543210", Source: "walk-in", Status: domain.LeadNew}); err != nil {
		t.Fatalf("Create: %v", err)
	}

	if _, err := svc.List(ctx, session, input); err != nil {
		t.Fatalf("List after Create: %v", err)
	}
	if gateway.listCalls != 2 {
		t.Fatalf("list must refetch after a create, upstream calls = %d", gateway.listCalls)
	}
}

func TestLeadServiceCreateActivityOnlyTouchesOwningLead(t *testing.T) {
	svc, gateway, _ := newLeadFixture()
	session := authedSession("s1")
	ctx := context.Background()

	if _, err := svc.Activities(ctx, session, "lead-1"); err != nil {
		t.Fatalf("Activities lead-1: %v", err)
	}
	if _, err := svc.Activities(ctx, session, "lead-2"); err != nil {
		t.Fatalf("Activities lead-2: %v", err)
	}

	if _, err := svc.CreateActivity(ctx, session, ports.ActivityForm{LeadID: "lead-1", Type: domain.ActivityCall, Description: "intro call"}); err != nil {
		t.Fatalf("CreateActivity: %v", err)
	}

	if _, err := svc.Activities(ctx, session, "lead-1"); err != nil {
		t.Fatalf("Activities lead-1 after create: %v", err)
	}
	if _, err := svc.Activities(ctx, session, "lead-2"); err != nil {
		t.Fatalf("Activities lead-2 after create: %v", err)
	}
	if gateway.activitiesCalls != 3 {
		t.Fatalf("only the owning lead's timeline should refetch, upstream calls = %d", gateway.activitiesCalls)
	}
}

func TestLeadServiceRejectsUnauthenticatedSession(t *testing.T) {
	svc, _, _ := newLeadFixture()

	_, err := svc.List(context.Background(), &domain.Session{ID: "anon"}, ports.ListLeadsInput{})
	if !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated, got %v", err)
	}
}
