// internal/app/features/admin/households.go
package admin

import (
	"net/http"

	"github.com/dalemusser/barangayhub/internal/app/client/civic"
	"github.com/dalemusser/barangayhub/internal/app/system/auth"
	"github.com/dalemusser/barangayhub/internal/app/system/viewdata"
	"github.com/dalemusser/waffle/pantry/templates"
	"go.uber.org/zap"
)

type householdsData struct {
	viewdata.BaseVM
	Households []civic.Household
	Error      string
}

// ServeHouseholds handles GET /admin/households.
func (h *Handler) ServeHouseholds(w http.ResponseWriter, r *http.Request) {
	u, ok := auth.CurrentUser(r)
	if !ok {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	data := householdsData{
		BaseVM: viewdata.NewBaseVM(r, "Households", "/admin/dashboard"),
	}

	households, err := h.Civic.Households(r.Context(), u.Creds)
	if err != nil {
		h.Log.Warn("households fetch failed", zap.Error(err))
		data.Error = "Household records could not be loaded right now."
	} else {
		data.Households = households
	}

	templates.Render(w, r, "admin_households", data)
}
