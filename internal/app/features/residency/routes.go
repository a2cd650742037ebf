// internal/app/features/residency/routes.go
package residency

import "github.com/go-chi/chi/v5"

// Routes serves the upload flow; the denied page is mounted separately
// at /residency-denied because it must stay outside the guarded
// /residents subtree.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.ServeUploadForm)
	r.Post("/", h.HandleUpload)
	return r
}
