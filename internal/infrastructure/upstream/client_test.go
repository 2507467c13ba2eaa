package upstream

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/propdesk/crm-console/internal/core/domain"
	"github.com/propdesk/crm-console/internal/core/ports"
)

func testClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL, 5*time.Second, zerolog.Nop())
}

func TestClientAttachesBearerToken(t *testing.T) {
	var gotAuth, gotAccept string
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotAccept = r.Header.Get("Accept")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"data":[],"meta":{"total":0,"page":1,"limit":20,"totalPages":0}}`))
	})

	gateway := NewLeadGateway(client)
	if _, err := gateway.List(context.Background(), "tok-123", ports.ListLeadsInput{}); err != nil {
		t.Fatalf("List: %v", err)
	}
	if gotAuth != "Bearer tok-123" {
		t.Fatalf("expected bearer credential, got %q", gotAuth)
	}
	if gotAccept != "application/json" {
		t.Fatalf("expected json accept header, got %q", gotAccept)
	}
}

func TestClientEncodesListFilters(t *testing.T) {
	var gotQuery string
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		w.Write([]byte(`{"data":[],"meta":{}}`))
	})

	gateway := NewLeadGateway(client)
	input := ports.ListLeadsInput{Status: "qualified", Search: "garden view", Page: 2, Limit: 50}
	if _, err := gateway.List(context.Background(), "tok", input); err != nil {
		t.Fatalf("List: %v", err)
	}

	for _, want := range []string{"status=qualified", "search=garden+view", "page=2", "limit=50"} {
		if !strings.Contains(gotQuery, want) {
			t.Fatalf("query %q missing %q", gotQuery, want)
		}
	}
}

func TestClientMapsNotFound(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"message":"Lead not found"}`))
	})

	gateway := NewLeadGateway(client)
	_, err := gateway.Get(context.Background(), "tok", "nope")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	var apiErr *Error
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *Error, got %T", err)
	}
	if apiErr.Message != "Lead not found" {
		t.Fatalf("server message lost: %q", apiErr.Message)
	}
}

func TestClientMapsUnauthorized(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error":"token expired"}`))
	})

	gateway := NewLeadGateway(client)
	_, err := gateway.Get(context.Background(), "tok", "lead-1")
	if !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated, got %v", err)
	}

	var apiErr *Error
	if !errors.As(err, &apiErr) || apiErr.Message != "token expired" {
		t.Fatalf("expected error envelope message, got %v", err)
	}
}

func TestClientEmptyErrorBody(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	gateway := NewLeadGateway(client)
	_, err := gateway.Get(context.Background(), "tok", "lead-1")

	var apiErr *Error
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *Error, got %T", err)
	}
	if apiErr.StatusCode != http.StatusBadGateway || apiErr.Message != "" {
		t.Fatalf("expected bare 502, got %+v", apiErr)
	}
}

func TestClientUploadsMultipartFile(t *testing.T) {
	var gotField, gotName, gotBody string
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		file, header, err := r.FormFile("file")
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		defer file.Close()
		buf := make([]byte, header.Size)
		n, _ := file.Read(buf)
		gotField = "file"
		gotName = header.Filename
		gotBody = string(buf[:n])
		w.WriteHeader(http.StatusAccepted)
		w.Write([]byte(`{"jobId":"job-42"}`))
	})

	gateway := NewLeadGateway(client)
	jobID, err := gateway.Import(context.Background(), "tok", "leads.csv", strings.NewReader("name,phone\n"))
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	if jobID != "job-42" {
		t.Fatalf("expected job id from response, got %q", jobID)
	}
	if gotField != "file" || gotName != "leads.csv" || gotBody != "name,phone\n" {
		t.Fatalf("upload malformed: field=%q name=%q body=%q", gotField, gotName, gotBody)
	}
}

func TestClientAuthGatewayLogin(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/auth/login" || r.Method != http.MethodPost {
			http.Error(w, "wrong route", http.StatusNotFound)
			return
		}
		w.Write([]byte(`{"accessToken":"tok-9","user":{"id":"u1","role":"admin"}}`))
	})

	gateway := NewAuthGateway(client)
	token, user, err := gateway.Login(context.Background(), "a@b.c", "secret")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if token != "tok-9" || user == nil || user.Role != domain.RoleAdmin {
		t.Fatalf("login response mishandled: token=%q user=%+v", token, user)
	}
}
