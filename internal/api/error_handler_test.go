package api

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/rs/zerolog"

	"github.com/propdesk/crm-console/internal/api/handler"
	"github.com/propdesk/crm-console/internal/core/domain"
	"github.com/propdesk/crm-console/internal/infrastructure/upstream"
)

func TestResolveErrorUpstreamMessagePassesThrough(t *testing.T) {
	err := &handler.OpError{
		Err:      &upstream.Error{StatusCode: http.StatusConflict, Message: "Unit already booked"},
		Fallback: "Failed to create booking",
	}

	code, payload := resolveError(err, zerolog.Nop())
	if code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", code)
	}
	resp, ok := payload.(errorResponse)
	if !ok || resp.Error != "Unit already booked" {
		t.Fatalf("server message must pass through verbatim, got %+v", payload)
	}
}

func TestResolveErrorFallbackWhenServerSilent(t *testing.T) {
	err := &handler.OpError{
		Err:      &upstream.Error{StatusCode: http.StatusInternalServerError},
		Fallback: "Failed to create lead",
	}

	code, payload := resolveError(err, zerolog.Nop())
	if code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", code)
	}
	resp := payload.(errorResponse)
	if resp.Error != "Failed to create lead" {
		t.Fatalf("expected fixed fallback message, got %q", resp.Error)
	}
}

func TestResolveErrorValidation(t *testing.T) {
	err := &handler.ValidationError{Fields: map[string]string{"name": "name is required"}}

	code, payload := resolveError(err, zerolog.Nop())
	if code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", code)
	}
	resp, ok := payload.(validationResponse)
	if !ok || resp.Fields["name"] != "name is required" {
		t.Fatalf("field messages lost: %+v", payload)
	}
}

func TestResolveErrorDomainSentinels(t *testing.T) {
	cases := []struct {
		err  error
		code int
	}{
		{domain.ErrNotFound, http.StatusNotFound},
		{domain.ErrUnauthenticated, http.StatusUnauthorized},
		{domain.ErrSessionNotFound, http.StatusUnauthorized},
		{domain.ErrForbidden, http.StatusForbidden},
		{domain.ErrInvalidTransition, http.StatusUnprocessableEntity},
	}

	for _, tc := range cases {
		code, _ := resolveError(fmt.Errorf("wrapped: %w", tc.err), zerolog.Nop())
		if code != tc.code {
			t.Errorf("%v: expected %d, got %d", tc.err, tc.code, code)
		}
	}
}

func TestResolveErrorUnknownIsInternal(t *testing.T) {
	code, payload := resolveError(fmt.Errorf("boom"), zerolog.Nop())
	if code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", code)
	}
	if payload.(errorResponse).Error != "internal server error" {
		t.Fatalf("unexpected message: %+v", payload)
	}
}
