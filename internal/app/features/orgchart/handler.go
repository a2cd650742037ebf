// internal/app/features/orgchart/handler.go
package orgchart

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

type chartData struct {
	viewdata.BaseVM
	Officials []civic.Official
	Error     string
}

// ServeChart handles GET /residents/organizationalChart.
func (h *Handler) ServeChart(w http.ResponseWriter, r *http.Request) {
	u, ok := auth.CurrentUser(r)
	if !ok {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	data := chartData{
		BaseVM: viewdata.NewBaseVM(r, "Organizational Chart", "/residents/dashboard"),
	}

	officials, err := h.Civic.OrganizationalChart(r.Context(), u.Creds)
	if err != nil {
		h.Log.Warn("organizational chart fetch failed", zap.Error(err))
		data.Error = "The organizational chart could not be loaded right now."
	} else {
		data.Officials = officials
	}

	templates.Render(w, r, "orgchart", data)
}
