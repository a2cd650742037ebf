// internal/app/features/dashboard/admin.go
package dashboard

import (
	"net/http"

	"github.com/dalemusser/barangayhub/internal/app/system/auth"
	"github.com/dalemusser/barangayhub/internal/app/system/viewdata"
	"github.com/dalemusser/waffle/pantry/templates"
	"go.uber.org/zap"
)

type adminDashboardData struct {
	viewdata.BaseVM
	ResidentCount    int
	PendingCount     int
	CountsUnresolved bool
}

// ServeAdmin handles GET /admin/dashboard.
func (h *Handler) ServeAdmin(w http.ResponseWriter, r *http.Request) {
	data := adminDashboardData{
		BaseVM: viewdata.NewBaseVM(r, "Admin Dashboard", "/"),
	}

	if u, ok := auth.CurrentUser(r); ok {
		residents, err := h.Civic.Residents(r.Context(), u.Creds)
		if err != nil {
			h.Log.Warn("admin dashboard: residents fetch failed", zap.Error(err))
			data.CountsUnresolved = true
		} else {
			data.ResidentCount = len(residents)
		}

		pending, err := h.Civic.PendingVerifications(r.Context(), u.Creds)
		if err != nil {
			h.Log.Warn("admin dashboard: pending verifications fetch failed", zap.Error(err))
			data.CountsUnresolved = true
		} else {
			data.PendingCount = len(pending)
		}
	}

	templates.Render(w, r, "admin_dashboard", data)
}
