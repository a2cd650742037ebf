// internal/app/features/benefits/handler.go
package benefits

import (
	"net/http"

	"github.com/dalemusser/barangayhub/internal/app/client/civic"
	"github.com/dalemusser/barangayhub/internal/app/system/auth"
	"github.com/dalemusser/barangayhub/internal/app/system/navigation"
	"github.com/dalemusser/barangayhub/internal/app/system/session"
	"github.com/dalemusser/barangayhub/internal/app/system/viewdata"
	"github.com/dalemusser/waffle/pantry/templates"
	"go.uber.org/zap"
)

type Handler struct {
	Civic    *civic.Client
	Sessions *session.Store
	Log      *zap.Logger
}

func NewHandler(client *civic.Client, sessions *session.Store, logger *zap.Logger) *Handler {
	return &Handler{
		Civic:    client,
		Sessions: sessions,
		Log:      logger,
	}
}

type listData struct {
	viewdata.BaseVM
	Benefits []civic.Benefit
	Error    string
}

// ServeList handles GET /residents/benefits. The page is reachable only
// when the benefits flag normalizes to enabled for this resident; the
// same check hides the menu entry, but typing the URL must not bypass
// the gate.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	u, ok := auth.CurrentUser(r)
	if !ok {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	if !h.benefitsEnabled(r, u) {
		http.Redirect(w, r, "/residents/dashboard", http.StatusSeeOther)
		return
	}

	data := listData{
		BaseVM: viewdata.NewBaseVM(r, "My Benefits", "/residents/dashboard"),
	}

	benefits, err := h.Civic.Benefits(r.Context(), u.Creds)
	if err != nil {
		h.Log.Warn("benefits fetch failed", zap.Error(err))
		data.Error = "Your benefits could not be loaded right now."
	} else {
		data.Benefits = benefits
	}

	templates.Render(w, r, "benefits", data)
}

func (h *Handler) benefitsEnabled(r *http.Request, u *auth.SessionUser) bool {
	snap := h.Sessions.Snapshot(r.Context(), u.Creds)
	if snap.User != nil {
		return navigation.BenefitsVisible(snap.User.Profile)
	}
	if u.User != nil {
		return navigation.BenefitsVisible(u.User.Profile)
	}
	return false
}
