// internal/app/features/dashboard/staff.go
package dashboard

import (
	"net/http"

	"github.com/dalemusser/barangayhub/internal/app/system/viewdata"
	"github.com/dalemusser/waffle/pantry/templates"
)

type baseDashboardData struct {
	viewdata.BaseVM
}

// ServeStaff handles GET /staff/dashboard.
func (h *Handler) ServeStaff(w http.ResponseWriter, r *http.Request) {
	templates.Render(w, r, "staff_dashboard", baseDashboardData{
		BaseVM: viewdata.NewBaseVM(r, "Staff Dashboard", "/"),
	})
}

// ServeTreasurer handles GET /treasurer/dashboard.
func (h *Handler) ServeTreasurer(w http.ResponseWriter, r *http.Request) {
	templates.Render(w, r, "treasurer_dashboard", baseDashboardData{
		BaseVM: viewdata.NewBaseVM(r, "Treasurer Dashboard", "/"),
	})
}
