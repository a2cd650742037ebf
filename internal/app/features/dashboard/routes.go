// internal/app/features/dashboard/routes.go
package dashboard

import (
	"github.com/dalemusser/barangayhub/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes wires the /dashboard dispatcher. The role-specific dashboards
// are mounted by bootstrap under their own guarded subtrees.
func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()

	r.Group(func(pr chi.Router) {
		pr.Use(sm.RequireSignedIn)
		pr.Get("/", h.Dispatch)
	})

	return r
}
