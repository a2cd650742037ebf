// internal/app/features/admin/disasters.go
package admin

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/dalemusser/barangayhub/internal/app/client/civic"
	"github.com/dalemusser/barangayhub/internal/app/system/auth"
	"github.com/dalemusser/barangayhub/internal/app/system/viewdata"
	"github.com/dalemusser/waffle/pantry/templates"
	"go.uber.org/zap"
)

// DisasterSeverities order matches the upstream's triage levels.
var DisasterSeverities = []string{"low", "moderate", "high", "critical"}

type disastersData struct {
	viewdata.BaseVM
	Logs       []civic.DisasterLog
	Severities []string
	Recorded   bool
	Error      string
}

// ServeDisasterLogs handles GET /admin/disasters.
func (h *Handler) ServeDisasterLogs(w http.ResponseWriter, r *http.Request) {
	u, ok := auth.CurrentUser(r)
	if !ok {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	data := disastersData{
		BaseVM:     viewdata.NewBaseVM(r, "Disaster Logs", "/admin/dashboard"),
		Severities: DisasterSeverities,
		Recorded:   r.URL.Query().Get("recorded") == "1",
	}

	logs, err := h.Civic.DisasterLogs(r.Context(), u.Creds)
	if err != nil {
		h.Log.Warn("disaster logs fetch failed", zap.Error(err))
		data.Error = "Disaster logs could not be loaded right now."
	} else {
		data.Logs = logs
	}

	templates.Render(w, r, "admin_disasters", data)
}

// HandleCreateDisasterLog handles POST /admin/disasters.
func (h *Handler) HandleCreateDisasterLog(w http.ResponseWriter, r *http.Request) {
	u, ok := auth.CurrentUser(r)
	if !ok {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse disaster form failed", err, "Invalid form data.", "/admin/disasters")
		return
	}

	kind := strings.TrimSpace(r.FormValue("kind"))
	location := strings.TrimSpace(r.FormValue("location"))
	severity := strings.TrimSpace(r.FormValue("severity"))
	details := strings.TrimSpace(r.FormValue("details"))
	if kind == "" || location == "" {
		h.renderDisastersError(w, r, u.Creds, "An incident needs a kind and a location.")
		return
	}

	form := url.Values{}
	form.Set("kind", kind)
	form.Set("location", location)
	form.Set("severity", severity)
	form.Set("details", details)

	if err := h.Civic.CreateDisasterLog(r.Context(), u.Creds, form); err != nil {
		h.Log.Warn("create disaster log failed", zap.Error(err))
		h.renderDisastersError(w, r, u.Creds, "Recording the incident failed. Please try again.")
		return
	}

	http.Redirect(w, r, "/admin/disasters?recorded=1", http.StatusSeeOther)
}

func (h *Handler) renderDisastersError(w http.ResponseWriter, r *http.Request, creds civic.Credentials, msg string) {
	data := disastersData{
		BaseVM:     viewdata.NewBaseVM(r, "Disaster Logs", "/admin/dashboard"),
		Severities: DisasterSeverities,
		Error:      msg,
	}
	if logs, err := h.Civic.DisasterLogs(r.Context(), creds); err == nil {
		data.Logs = logs
	}

	w.WriteHeader(http.StatusUnprocessableEntity)
	templates.Render(w, r, "admin_disasters", data)
}
