// internal/app/features/projects/handler.go
package projects

import (
	"net/http"

	"github.com/dalemusser/barangayhub/internal/app/client/civic"
	"github.com/dalemusser/barangayhub/internal/app/system/auth"
	"github.com/dalemusser/barangayhub/internal/app/system/viewdata"
	"github.com/dalemusser/waffle/pantry/templates"
	"go.uber.org/zap"
)

type Handler struct {
	Civic *civic.Client
	Log   *zap.Logger
}

func NewHandler(client *civic.Client, logger *zap.Logger) *Handler {
	return &Handler{
		Civic: client,
		Log:   logger,
	}
}

type listData struct {
	viewdata.BaseVM
	Projects []civic.Project
	Error    string
}

// ServeList handles GET /residents/projects.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	u, ok := auth.CurrentUser(r)
	if !ok {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	data := listData{
		BaseVM: viewdata.NewBaseVM(r, "Barangay Projects", "/residents/dashboard"),
	}

	projects, err := h.Civic.Projects(r.Context(), u.Creds)
	if err != nil {
		h.Log.Warn("projects fetch failed", zap.Error(err))
		data.Error = "Projects could not be loaded right now."
	} else {
		data.Projects = projects
	}

	templates.Render(w, r, "projects", data)
}
