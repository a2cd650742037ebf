package login_test

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/dalemusser/barangayhub/internal/app/client/civic"
	uierrors "github.com/dalemusser/barangayhub/internal/app/features/errors"
	"github.com/dalemusser/barangayhub/internal/app/features/login"
	"github.com/dalemusser/barangayhub/internal/app/system/auth"
	"github.com/dalemusser/barangayhub/internal/app/system/session"
	"go.uber.org/zap"
)

const profileBody = `{"user":{"id":"1","role":"residents","profile":{"residents_id":"R-1","first_name":"Ana","last_name":"Reyes","verification_status":"approved"}}}`

func newTestHandler(t *testing.T, upstream http.Handler) *login.Handler {
	t.Helper()
	srv := httptest.NewServer(upstream)
	t.Cleanup(srv.Close)

	logger := zap.NewNop()
	client := civic.New(srv.URL, srv.URL, srv.Client(), logger)
	sessions := session.New(client, time.Minute, logger)

	sessionMgr, err := auth.NewSessionManager("test-session-key-for-testing-only", "test-session", "", false, logger)
	if err != nil {
		t.Fatalf("NewSessionManager failed: %v", err)
	}

	return login.NewHandler(sessions, sessionMgr, uierrors.NewErrorLogger(logger), logger)
}

func civicStub(loginStatus int) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/sanctum/csrf-cookie":
			http.SetCookie(w, &http.Cookie{Name: "XSRF-TOKEN", Value: "tok123"})
			w.WriteHeader(http.StatusNoContent)
		case "/login":
			if loginStatus != http.StatusOK {
				w.WriteHeader(loginStatus)
				return
			}
			w.Write([]byte(`{"token":"abc123"}`))
		case "/profile":
			w.Write([]byte(profileBody))
		default:
			http.NotFound(w, r)
		}
	})
}

func postLogin(handler *login.Handler, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest("POST", "/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	handler.HandleLoginPost(rec, req)
	return rec
}

func TestHandleLoginPost_Success(t *testing.T) {
	handler := newTestHandler(t, civicStub(http.StatusOK))

	rec := postLogin(handler, url.Values{
		"email":    {"ana@example.ph"},
		"password": {"secret"},
	})

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected status %d, got %d", http.StatusSeeOther, rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/residents/dashboard" {
		t.Errorf("Location: got %q, want %q", loc, "/residents/dashboard")
	}

	found := false
	for _, c := range rec.Result().Cookies() {
		if c.Name == "test-session" {
			found = true
			break
		}
	}
	if !found {
		t.Error("expected session cookie to be set")
	}
}

func TestHandleLoginPost_ReturnURL(t *testing.T) {
	tests := []struct {
		name string
		ret  string
		want string
	}{
		{"safe return honored", "/residents/projects", "/residents/projects"},
		{"external url falls back to dashboard", "https://evil.example/phish", "/residents/dashboard"},
		{"login page itself is excluded", "/login?return=/x", "/residents/dashboard"},
		{"logout is excluded", "/logout", "/residents/dashboard"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := newTestHandler(t, civicStub(http.StatusOK))

			rec := postLogin(handler, url.Values{
				"email":    {"ana@example.ph"},
				"password": {"secret"},
				"return":   {tt.ret},
			})

			if rec.Code != http.StatusSeeOther {
				t.Fatalf("expected status %d, got %d", http.StatusSeeOther, rec.Code)
			}
			if loc := rec.Header().Get("Location"); loc != tt.want {
				t.Errorf("Location: got %q, want %q", loc, tt.want)
			}
		})
	}
}

func TestHandleLoginPost_InvalidCredentials(t *testing.T) {
	handler := newTestHandler(t, civicStub(http.StatusUnauthorized))

	rec := postLogin(handler, url.Values{
		"email":    {"ana@example.ph"},
		"password": {"wrong"},
	})

	if rec.Code != http.StatusUnprocessableEntity {
		t.Errorf("expected status %d, got %d", http.StatusUnprocessableEntity, rec.Code)
	}
	if len(rec.Result().Cookies()) != 0 {
		t.Error("no session cookie should be set on a failed sign-in")
	}
}

func TestHandleLoginPost_MissingFields(t *testing.T) {
	handler := newTestHandler(t, civicStub(http.StatusOK))

	rec := postLogin(handler, url.Values{"email": {"ana@example.ph"}})

	if rec.Code != http.StatusUnprocessableEntity {
		t.Errorf("expected status %d, got %d", http.StatusUnprocessableEntity, rec.Code)
	}
}

func TestHandleLoginPost_UpstreamDown(t *testing.T) {
	handler := newTestHandler(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))

	rec := postLogin(handler, url.Values{
		"email":    {"ana@example.ph"},
		"password": {"secret"},
	})

	if rec.Code != http.StatusUnprocessableEntity {
		t.Errorf("expected status %d, got %d", http.StatusUnprocessableEntity, rec.Code)
	}
}
