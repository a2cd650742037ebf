// internal/app/features/dashboard/resident.go
package dashboard

import (
	"net/http"

	"github.com/dalemusser/barangayhub/internal/app/client/civic"
	"github.com/dalemusser/barangayhub/internal/app/policy/routepolicy"
	"github.com/dalemusser/barangayhub/internal/app/system/auth"
	"github.com/dalemusser/barangayhub/internal/app/system/viewdata"
	"github.com/dalemusser/barangayhub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/templates"
	"go.uber.org/zap"
)

type residentDashboardData struct {
	viewdata.BaseVM
	Profile         *models.Profile
	Complete        bool
	Status          string
	NextStepURL     string
	NextStepLabel   string
	Announcements   []civic.Announcement
	AnnouncementErr bool
}

// ServeResident handles GET /residents/dashboard. The page always
// renders, even with residency restrictions in place: it is the one
// place a restricted resident learns what to fix next.
func (h *Handler) ServeResident(w http.ResponseWriter, r *http.Request) {
	base := viewdata.NewBaseVM(r, "My Dashboard", "/")

	data := residentDashboardData{
		BaseVM: base,
		Status: models.VerificationPending,
	}

	if u, ok := auth.CurrentUser(r); ok {
		snap := h.Sessions.Snapshot(r.Context(), u.Creds)
		if snap.User != nil {
			data.Profile = snap.User.Profile
		} else if u.User != nil {
			data.Profile = u.User.Profile
		}
		data.Complete = routepolicy.ProfileComplete(data.Profile)
		data.Status = data.Profile.Status()
		if !data.Complete || !data.Profile.IsApproved() {
			data.NextStepURL, data.NextStepLabel = nextStep(data.Profile, data.Complete)
		}

		anns, err := h.Civic.Announcements(r.Context(), u.Creds)
		if err != nil {
			h.Log.Warn("resident dashboard: announcements fetch failed", zap.Error(err))
			data.AnnouncementErr = true
		} else {
			data.Announcements = anns
		}
	}

	templates.Render(w, r, "resident_dashboard", data)
}

func nextStep(p *models.Profile, complete bool) (url, label string) {
	switch {
	case !complete:
		return routepolicy.ProfilePath, "Complete your profile"
	case p.IsDenied():
		return routepolicy.DeniedPath, "View denial details"
	case !p.HasVerificationImage():
		return routepolicy.UploadPath, "Upload proof of residency"
	default:
		return routepolicy.ProfilePath, "Awaiting verification review"
	}
}
