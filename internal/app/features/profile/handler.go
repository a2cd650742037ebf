// internal/app/features/profile/handler.go
package profile

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/dalemusser/barangayhub/internal/app/client/civic"
	uierrors "github.com/dalemusser/barangayhub/internal/app/features/errors"
	"github.com/dalemusser/barangayhub/internal/app/policy/routepolicy"
	"github.com/dalemusser/barangayhub/internal/app/system/auth"
	"github.com/dalemusser/barangayhub/internal/app/system/session"
	"github.com/dalemusser/barangayhub/internal/app/system/viewdata"
	"github.com/dalemusser/barangayhub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/templates"
	"go.uber.org/zap"
)

type Handler struct {
	Civic      *civic.Client
	Sessions   *session.Store
	SessionMgr *auth.SessionManager
	ErrLog     *uierrors.ErrorLogger
	Log        *zap.Logger
}

func NewHandler(client *civic.Client, sessions *session.Store, sessionMgr *auth.SessionManager, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		Civic:      client,
		Sessions:   sessions,
		SessionMgr: sessionMgr,
		ErrLog:     errLog,
		Log:        logger,
	}
}

type profileFormData struct {
	viewdata.BaseVM
	Profile  *models.Profile
	Complete bool
	Saved    bool
	Error    string
}

// ServeProfile handles GET /residents/profile.
func (h *Handler) ServeProfile(w http.ResponseWriter, r *http.Request) {
	u, ok := auth.CurrentUser(r)
	if !ok {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	snap := h.Sessions.Snapshot(r.Context(), u.Creds)
	p := profileFrom(snap, u)

	templates.Render(w, r, "profile_edit", profileFormData{
		BaseVM:   viewdata.NewBaseVM(r, "My Profile", "/residents/dashboard"),
		Profile:  p,
		Complete: routepolicy.ProfileComplete(p),
		Saved:    r.URL.Query().Get("saved") == "1",
	})
}

// profileFields are the form inputs forwarded verbatim to the upstream
// profile update endpoint.
var profileFields = []string{
	"first_name", "last_name", "birth_date", "email", "contact_number",
	"sex", "civil_status", "religion", "full_address",
	"years_in_barangay", "voter_status",
}

// HandleProfilePost handles POST /residents/profile. On success the
// session snapshot is force-refreshed and the cookie copy re-established
// so menus and guards see the new state immediately.
func (h *Handler) HandleProfilePost(w http.ResponseWriter, r *http.Request) {
	u, ok := auth.CurrentUser(r)
	if !ok {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse form failed", err, "Invalid form data.", routepolicy.ProfilePath)
		return
	}

	form := url.Values{}
	for _, f := range profileFields {
		form.Set(f, strings.TrimSpace(r.FormValue(f)))
	}

	if err := h.Civic.UpdateProfile(r.Context(), u.Creds, form); err != nil {
		h.renderWithError(w, r, u, "Saving your profile failed. Please try again.", err)
		return
	}

	snap := h.Sessions.ForceRefresh(r.Context(), u.Creds)
	if snap.User != nil {
		if err := h.SessionMgr.Establish(w, r, u.Creds, snap.User); err != nil {
			h.Log.Error("profile: re-establish session", zap.Error(err))
		}
	}

	http.Redirect(w, r, routepolicy.ProfilePath+"?saved=1", http.StatusSeeOther)
}

func (h *Handler) renderWithError(w http.ResponseWriter, r *http.Request, u *auth.SessionUser, msg string, err error) {
	h.Log.Warn("profile update failed", zap.Error(err), zap.String("user_id", u.ID))

	snap := h.Sessions.Snapshot(r.Context(), u.Creds)
	p := profileFrom(snap, u)

	w.WriteHeader(http.StatusUnprocessableEntity)
	templates.Render(w, r, "profile_edit", profileFormData{
		BaseVM:   viewdata.NewBaseVM(r, "My Profile", "/residents/dashboard"),
		Profile:  p,
		Complete: routepolicy.ProfileComplete(p),
		Error:    msg,
	})
}

func profileFrom(snap session.Snapshot, u *auth.SessionUser) *models.Profile {
	if snap.User != nil {
		return snap.User.Profile
	}
	if u.User != nil {
		return u.User.Profile
	}
	return nil
}
