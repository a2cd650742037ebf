// internal/app/features/admin/announcements.go
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

// AnnouncementTypes mirror the categories the upstream accepts.
var AnnouncementTypes = []string{"info", "warning", "critical"}

type announcementsData struct {
	viewdata.BaseVM
	Announcements []civic.Announcement
	Types         []string
	Posted        bool
	Error         string
}

// ServeAnnouncements handles GET /admin/announcements.
func (h *Handler) ServeAnnouncements(w http.ResponseWriter, r *http.Request) {
	u, ok := auth.CurrentUser(r)
	if !ok {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	data := announcementsData{
		BaseVM: viewdata.NewBaseVM(r, "Announcements", "/admin/dashboard"),
		Types:  AnnouncementTypes,
		Posted: r.URL.Query().Get("posted") == "1",
	}

	list, err := h.Civic.Announcements(r.Context(), u.Creds)
	if err != nil {
		h.Log.Warn("announcements fetch failed", zap.Error(err))
		data.Error = "Announcements could not be loaded right now."
	} else {
		data.Announcements = list
	}

	templates.Render(w, r, "admin_announcements", data)
}

// HandleCreateAnnouncement handles POST /admin/announcements.
func (h *Handler) HandleCreateAnnouncement(w http.ResponseWriter, r *http.Request) {
	u, ok := auth.CurrentUser(r)
	if !ok {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse announcement form failed", err, "Invalid form data.", "/admin/announcements")
		return
	}

	title := strings.TrimSpace(r.FormValue("title"))
	body := strings.TrimSpace(r.FormValue("body"))
	kind := strings.TrimSpace(r.FormValue("type"))
	if title == "" || body == "" {
		h.renderAnnouncementsError(w, r, u.Creds, "An announcement needs a title and a body.")
		return
	}
	if kind == "" {
		kind = "info"
	}

	form := url.Values{}
	form.Set("title", title)
	form.Set("body", body)
	form.Set("type", kind)

	if err := h.Civic.CreateAnnouncement(r.Context(), u.Creds, form); err != nil {
		h.Log.Warn("create announcement failed", zap.Error(err))
		h.renderAnnouncementsError(w, r, u.Creds, "Posting the announcement failed. Please try again.")
		return
	}

	http.Redirect(w, r, "/admin/announcements?posted=1", http.StatusSeeOther)
}

func (h *Handler) renderAnnouncementsError(w http.ResponseWriter, r *http.Request, creds civic.Credentials, msg string) {
	data := announcementsData{
		BaseVM: viewdata.NewBaseVM(r, "Announcements", "/admin/dashboard"),
		Types:  AnnouncementTypes,
		Error:  msg,
	}
	if list, err := h.Civic.Announcements(r.Context(), creds); err == nil {
		data.Announcements = list
	}

	w.WriteHeader(http.StatusUnprocessableEntity)
	templates.Render(w, r, "admin_announcements", data)
}
