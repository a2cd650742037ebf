package routepolicy

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dalemusser/barangayhub/internal/app/client/civic"
	"github.com/dalemusser/barangayhub/internal/app/system/auth"
	"github.com/dalemusser/barangayhub/internal/app/system/session"
	"github.com/dalemusser/barangayhub/internal/domain/models"
	"go.uber.org/zap"
)

const approvedBody = `{"user":{"id":"1","role":"residents","profile":{"residents_id":"R-1","first_name":"Ana","last_name":"Reyes","birth_date":"1990-01-01","email":"a@b.ph","contact_number":"0917","sex":"F","civil_status":"single","religion":"none","full_address":"Purok 1","years_in_barangay":"5","voter_status":"registered","verification_status":"approved"}}}`

func newGuardStore(t *testing.T, body string) *session.Store {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	client := civic.New(srv.URL, "", srv.Client(), zap.NewNop())
	return session.New(client, time.Minute, zap.NewNop())
}

func TestGuard_SignedOutRedirectsToLogin(t *testing.T) {
	store := newGuardStore(t, approvedBody)
	h := Guard(store, models.RoleResidents)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler must not run for a signed-out request")
	}))

	req := httptest.NewRequest(http.MethodGet, "/residents/dashboard", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want 303", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc == "" || loc[:len(LoginPath)] != LoginPath {
		t.Errorf("Location = %q, want a %s redirect", loc, LoginPath)
	}
}

func TestGuard_ApprovedResidentPassesThrough(t *testing.T) {
	store := newGuardStore(t, approvedBody)
	var served bool
	h := Guard(store, models.RoleResidents)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		served = true
	}))

	req := httptest.NewRequest(http.MethodGet, "/residents/projects", nil)
	req = auth.WithTestUser(req, &auth.SessionUser{
		ID:    "1",
		Role:  models.RoleResidents,
		Creds: civic.Credentials{Token: "tok"},
	})
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if !served {
		t.Error("expected the request to reach the handler")
	}
}

func TestGuard_DeniedResidentRedirectsEvenOnAllowListedPath(t *testing.T) {
	denied := `{"user":{"id":"1","role":"residents","profile":{"residents_id":"R-1","verification_status":"denied","denial_reason":"address outside barangay"}}}`
	store := newGuardStore(t, denied)
	h := Guard(store, models.RoleResidents)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler must not run for a denied resident")
	}))

	req := httptest.NewRequest(http.MethodGet, "/residents/dashboard", nil)
	req = auth.WithTestUser(req, &auth.SessionUser{
		ID:    "1",
		Role:  models.RoleResidents,
		Creds: civic.Credentials{Token: "tok"},
	})
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want 303", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != DeniedPath {
		t.Errorf("Location = %q, want %q", loc, DeniedPath)
	}
}

func TestGuard_HTMXGetsHXRedirect(t *testing.T) {
	store := newGuardStore(t, approvedBody)
	h := Guard(store, models.RoleAdmin)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	req := httptest.NewRequest(http.MethodGet, "/admin/residents", nil)
	req.Header.Set("HX-Request", "true")
	req = auth.WithTestUser(req, &auth.SessionUser{
		ID:    "1",
		Role:  models.RoleResidents,
		Creds: civic.Credentials{Token: "tok"},
	})
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if got := rec.Header().Get("HX-Redirect"); got != HomePath {
		t.Errorf("HX-Redirect = %q, want %q", got, HomePath)
	}
}
