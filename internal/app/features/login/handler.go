// internal/app/features/login/handler.go
package login

import (
	"errors"
	"net/http"
	"strings"

	"github.com/dalemusser/barangayhub/internal/app/client/civic"
	uierrors "github.com/dalemusser/barangayhub/internal/app/features/errors"
	"github.com/dalemusser/barangayhub/internal/app/system/auth"
	"github.com/dalemusser/barangayhub/internal/app/system/navigation"
	"github.com/dalemusser/barangayhub/internal/app/system/session"
	"github.com/dalemusser/barangayhub/internal/app/system/viewdata"
	"github.com/dalemusser/barangayhub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/query"
	"github.com/dalemusser/waffle/pantry/templates"
	"go.uber.org/zap"
)

type Handler struct {
	Log        *zap.Logger
	Sessions   *session.Store
	SessionMgr *auth.SessionManager
	ErrLog     *uierrors.ErrorLogger
}

func NewHandler(sessions *session.Store, sessionMgr *auth.SessionManager, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		Log:        logger,
		Sessions:   sessions,
		SessionMgr: sessionMgr,
		ErrLog:     errLog,
	}
}

/*─────────────────────────────────────────────────────────────────────────────*
| Template-data                                                               |
*─────────────────────────────────────────────────────────────────────────────*/

type loginFormData struct {
	viewdata.BaseVM
	Error     string
	Email     string
	ReturnURL string
}

/*─────────────────────────────────────────────────────────────────────────────*
| GET /login                                                                  |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) ServeLogin(w http.ResponseWriter, r *http.Request) {
	if _, ok := auth.CurrentUser(r); ok {
		http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
		return
	}

	ret := query.Get(r, "return")

	templates.Render(w, r, "login", loginFormData{
		BaseVM:    viewdata.NewBaseVM(r, "Login", "/"),
		ReturnURL: ret,
	})
}

/*─────────────────────────────────────────────────────────────────────────────*
| POST /login                                                                 |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) HandleLoginPost(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse form failed", err, "Invalid form data.", "/login")
		return
	}

	email := strings.TrimSpace(r.FormValue("email"))
	password := r.FormValue("password")
	if email == "" || password == "" {
		h.renderFormWithError(w, r, "Please enter your email and password.", email)
		return
	}

	creds, snap, err := h.Sessions.Login(r.Context(), email, password)
	switch {
	case errors.Is(err, civic.ErrUnauthenticated):
		h.renderFormWithError(w, r, "Incorrect email or password.", email)
		return
	case err != nil:
		h.Log.Error("login: civic call failed", zap.Error(err))
		h.renderFormWithError(w, r, "Sign-in is temporarily unavailable. Please try again.", email)
		return
	}

	if snap.User == nil {
		// Credentials were accepted but the profile fetch came back
		// empty. Treat as a failed sign-in rather than establishing a
		// half-usable session.
		h.renderFormWithError(w, r, "Could not load your account. Please try again.", email)
		return
	}

	if err := h.SessionMgr.Establish(w, r, creds, snap.User); err != nil {
		h.ErrLog.LogServerError(w, r, "establish session", err, "A server error occurred.", "/login")
		return
	}

	http.Redirect(w, r, h.postLoginURL(r, snap.User), http.StatusSeeOther)
}

// postLoginURL picks the destination after sign-in: a safe return URL if
// one was carried through the form, else the role's dashboard. The auth
// pages themselves are excluded so a stale return value cannot loop the
// user straight back to the form.
func (h *Handler) postLoginURL(r *http.Request, u *models.User) string {
	ret := navigation.SafeBackURL(r, navigation.BackURLOptions{
		ExcludedSubpaths: []string{"/login", "/logout"},
	})
	if ret != "" {
		return ret
	}

	switch strings.ToLower(u.Role) {
	case models.RoleAdmin:
		return "/admin/dashboard"
	case models.RoleStaff:
		return "/staff/dashboard"
	case models.RoleTreasurer:
		return "/treasurer/dashboard"
	default:
		return "/residents/dashboard"
	}
}

func (h *Handler) renderFormWithError(w http.ResponseWriter, r *http.Request, msg, email string) {
	w.WriteHeader(http.StatusUnprocessableEntity)
	templates.Render(w, r, "login", loginFormData{
		BaseVM:    viewdata.NewBaseVM(r, "Login", "/"),
		Error:     msg,
		Email:     email,
		ReturnURL: strings.TrimSpace(r.FormValue("return")),
	})
}
