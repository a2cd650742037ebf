// internal/app/features/logout/routes.go
package logout

import "github.com/go-chi/chi/v5"

func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Post("/", h.ServeLogout)
	r.Get("/", h.ServeLogout) // direct navigation still signs out
	return r
}
