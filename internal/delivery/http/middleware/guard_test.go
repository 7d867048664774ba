package middleware

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"eventhub/internal/domain"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestGuardRequire(t *testing.T) {
	tests := []struct {
		name         string
		identity     domain.Identity
		predicate    RolePredicate
		wantStatus   int
		wantLocation string
	}{
		{
			name:       "admin passes admin guard",
			identity:   domain.Identity{ID: "u1", Roles: []string{domain.RoleAdmin}},
			predicate:  domain.Identity.IsAdmin,
			wantStatus: http.StatusOK,
		},
		{
			name:         "organizer fails admin guard",
			identity:     domain.Identity{ID: "u1", Roles: []string{domain.RoleOrganizer}},
			predicate:    domain.Identity.IsAdmin,
			wantStatus:   http.StatusSeeOther,
			wantLocation: "/no-permission",
		},
		{
			name:       "organizer passes organizer-or-admin guard",
			identity:   domain.Identity{ID: "u1", Roles: []string{domain.RoleOrganizer}},
			predicate:  domain.Identity.IsOrganizerOrAdmin,
			wantStatus: http.StatusOK,
		},
		{
			name:         "anonymous fails every role guard",
			identity:     domain.Anonymous,
			predicate:    domain.Identity.IsUser,
			wantStatus:   http.StatusSeeOther,
			wantLocation: "/no-permission",
		},
		{
			name:         "user without groups fails user guard",
			identity:     domain.Identity{ID: "u1"},
			predicate:    domain.Identity.IsUser,
			wantStatus:   http.StatusSeeOther,
			wantLocation: "/no-permission",
		},
		{
			name:       "groupless user still counts as authenticated",
			identity:   domain.Identity{ID: "u1"},
			predicate:  domain.Identity.IsAuthenticated,
			wantStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			guard := NewGuard("/no-permission", testLogger())
			handlerCalled := false
			handler := guard.Require(tt.predicate, func(w http.ResponseWriter, r *http.Request) {
				handlerCalled = true
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, "/admin/dashboard", nil)
			req = req.WithContext(SetIdentity(req.Context(), tt.identity))
			rec := httptest.NewRecorder()
			handler(rec, req)

			if rec.Code != tt.wantStatus {
				t.Fatalf("expected status %d, got %d", tt.wantStatus, rec.Code)
			}
			if tt.wantStatus == http.StatusSeeOther {
				if handlerCalled {
					t.Fatal("handler must not run for a denied request")
				}
				if loc := rec.Header().Get("Location"); loc != tt.wantLocation {
					t.Fatalf("expected redirect to %q, got %q", tt.wantLocation, loc)
				}
			} else if !handlerCalled {
				t.Fatal("handler was not invoked")
			}
		})
	}
}

type staticVerifier struct {
	identity domain.Identity
	err      error
}

func (v *staticVerifier) Verify(token string) (domain.Identity, error) {
	if v.err != nil {
		return domain.Anonymous, v.err
	}
	return v.identity, nil
}

func TestAuthenticatePopulatesIdentity(t *testing.T) {
	verifier := &staticVerifier{identity: domain.Identity{ID: "u1", Username: "alice", Roles: []string{"User"}}}
	var got domain.Identity
	handler := Authenticate(verifier, testLogger())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = IdentityFromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/events", nil)
	req.Header.Set("Authorization", "Bearer some-token")
	handler.ServeHTTP(httptest.NewRecorder(), req)

	if got.ID != "u1" || !got.IsUser() {
		t.Fatalf("unexpected identity: %+v", got)
	}
}

func TestAuthenticateWithoutTokenIsAnonymous(t *testing.T) {
	verifier := &staticVerifier{identity: domain.Identity{ID: "u1"}}
	var got domain.Identity
	handler := Authenticate(verifier, testLogger())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = IdentityFromContext(r.Context())
	}))

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/events", nil))

	if !got.IsAnonymous() {
		t.Fatalf("expected anonymous identity, got %+v", got)
	}
}
