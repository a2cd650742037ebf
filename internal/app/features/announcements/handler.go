// internal/app/features/announcements/handler.go
package announcements

import (
	"html/template"
	"net/http"

	"github.com/dalemusser/barangayhub/internal/app/client/civic"
	"github.com/dalemusser/barangayhub/internal/app/system/auth"
	"github.com/dalemusser/barangayhub/internal/app/system/htmlsanitize"
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

// announcementVM is an Announcement with the body sanitized for direct
// template interpolation.
type announcementVM struct {
	Title    string
	Body     template.HTML
	Type     string
	PostedAt string
}

type listData struct {
	viewdata.BaseVM
	Announcements []announcementVM
	Error         string
}

// ServeList handles GET /residents/announcements.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	u, ok := auth.CurrentUser(r)
	if !ok {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	data := listData{
		BaseVM: viewdata.NewBaseVM(r, "Announcements", "/residents/dashboard"),
	}

	anns, err := h.Civic.Announcements(r.Context(), u.Creds)
	if err != nil {
		h.Log.Warn("announcements fetch failed", zap.Error(err))
		data.Error = "Announcements could not be loaded right now."
	} else {
		for _, a := range anns {
			data.Announcements = append(data.Announcements, announcementVM{
				Title:    a.Title,
				Body:     htmlsanitize.SanitizeHTML(a.Body),
				Type:     a.Type,
				PostedAt: a.PostedAt,
			})
		}
	}

	templates.Render(w, r, "announcements", data)
}
