// internal/app/features/admin/routes.go
package admin

import (
	"github.com/dalemusser/barangayhub/internal/app/system/auth"
	"github.com/dalemusser/barangayhub/internal/domain/models"
	"github.com/go-chi/chi/v5"
)

// Routes covers the admin screens below the dashboard, mounted under
// /admin. Staff share the resident ledger, announcements, and disaster
// logs; the treasurer shares program management; everything else is
// admin-only.
func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()
	r.Use(sm.RequireSignedIn)

	r.Group(func(g chi.Router) {
		g.Use(sm.RequireRole(models.RoleAdmin, models.RoleStaff))

		g.Get("/residents", h.ServeResidents)

		g.Get("/announcements", h.ServeAnnouncements)
		g.Post("/announcements", h.HandleCreateAnnouncement)

		g.Get("/disasters", h.ServeDisasterLogs)
		g.Post("/disasters", h.HandleCreateDisasterLog)
	})

	r.Group(func(g chi.Router) {
		g.Use(sm.RequireRole(models.RoleAdmin, models.RoleTreasurer))

		g.Get("/programs", h.ServePrograms)
		g.Get("/programs/{programID}", h.ServeBeneficiaries)
		g.Post("/programs/{programID}", h.HandleEnroll)
	})

	r.Group(func(g chi.Router) {
		g.Use(sm.RequireRole(models.RoleAdmin))

		g.Get("/households", h.ServeHouseholds)

		g.Get("/verification", h.ServeVerifications)
		g.Post("/verification", h.HandleReview)

		g.Get("/staff", h.ServeStaff)
		g.Post("/staff", h.HandleCreateStaff)
	})

	return r
}
