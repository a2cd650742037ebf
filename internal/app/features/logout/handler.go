// internal/app/features/logout/handler.go
package logout

import (
	"net/http"

	"github.com/dalemusser/barangayhub/internal/app/system/auth"
	"github.com/dalemusser/barangayhub/internal/app/system/session"
	"go.uber.org/zap"
)

type Handler struct {
	Log        *zap.Logger
	Sessions   *session.Store
	SessionMgr *auth.SessionManager
}

func NewHandler(sessions *session.Store, sessionMgr *auth.SessionManager, logger *zap.Logger) *Handler {
	return &Handler{
		Log:        logger,
		Sessions:   sessions,
		SessionMgr: sessionMgr,
	}
}

// ServeLogout handles POST /logout. Signing out always succeeds locally:
// the upstream call is best-effort and the cookie is cleared regardless.
func (h *Handler) ServeLogout(w http.ResponseWriter, r *http.Request) {
	if u, ok := auth.CurrentUser(r); ok {
		h.Sessions.Logout(r.Context(), u.Creds)
	}

	if err := h.SessionMgr.Clear(w, r); err != nil {
		h.Log.Error("logout: clear session", zap.Error(err))
	}

	// HTMX handling: use HX-Redirect to force a client-side navigation to "/".
	if r.Header.Get("HX-Request") != "" {
		w.Header().Set("HX-Redirect", "/")
		w.WriteHeader(http.StatusOK)
		return
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}
