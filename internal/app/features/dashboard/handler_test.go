package dashboard_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dalemusser/barangayhub/internal/app/client/civic"
	"github.com/dalemusser/barangayhub/internal/app/features/dashboard"
	uierrors "github.com/dalemusser/barangayhub/internal/app/features/errors"
	"github.com/dalemusser/barangayhub/internal/app/system/auth"
	"github.com/dalemusser/barangayhub/internal/app/system/session"
	"go.uber.org/zap"
)

func newTestHandler(t *testing.T) *dashboard.Handler {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	}))
	t.Cleanup(srv.Close)

	logger := zap.NewNop()
	client := civic.New(srv.URL, "", srv.Client(), logger)
	sessions := session.New(client, time.Minute, logger)
	return dashboard.NewHandler(client, sessions, uierrors.NewErrorLogger(logger), logger)
}

func TestDispatch_ByRole(t *testing.T) {
	handler := newTestHandler(t)

	tests := []struct {
		role string
		want string
	}{
		{"admin", "/admin/dashboard"},
		{"staff", "/staff/dashboard"},
		{"treasurer", "/treasurer/dashboard"},
		{"residents", "/residents/dashboard"},
	}
	for _, tt := range tests {
		t.Run(tt.role, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/dashboard", nil)
			req = auth.WithTestUser(req, &auth.SessionUser{ID: "1", Role: tt.role})
			rec := httptest.NewRecorder()
			handler.Dispatch(rec, req)

			if rec.Code != http.StatusSeeOther {
				t.Fatalf("status = %d, want 303", rec.Code)
			}
			if loc := rec.Header().Get("Location"); loc != tt.want {
				t.Errorf("Location = %q, want %q", loc, tt.want)
			}
		})
	}
}

func TestDispatch_SignedOut(t *testing.T) {
	handler := newTestHandler(t)

	req := httptest.NewRequest("GET", "/dashboard", nil)
	rec := httptest.NewRecorder()
	handler.Dispatch(rec, req)

	if loc := rec.Header().Get("Location"); loc != "/login" {
		t.Errorf("Location = %q, want /login", loc)
	}
}
