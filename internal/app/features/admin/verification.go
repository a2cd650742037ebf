// internal/app/features/admin/verification.go
package admin

import (
	"net/http"
	"strings"

	"github.com/dalemusser/barangayhub/internal/app/client/civic"
	"github.com/dalemusser/barangayhub/internal/app/system/auth"
	"github.com/dalemusser/barangayhub/internal/app/system/viewdata"
	"github.com/dalemusser/barangayhub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/templates"
	"go.uber.org/zap"
)

type verificationData struct {
	viewdata.BaseVM
	Pending  []civic.ResidentRecord
	Reviewed bool
	Error    string
}

// ServeVerifications handles GET /admin/verification: the queue of
// residents awaiting residency review.
func (h *Handler) ServeVerifications(w http.ResponseWriter, r *http.Request) {
	u, ok := auth.CurrentUser(r)
	if !ok {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	data := verificationData{
		BaseVM:   viewdata.NewBaseVM(r, "Residency Verification", "/admin/dashboard"),
		Reviewed: r.URL.Query().Get("reviewed") == "1",
	}

	pending, err := h.Civic.PendingVerifications(r.Context(), u.Creds)
	if err != nil {
		h.Log.Warn("pending verifications fetch failed", zap.Error(err))
		data.Error = "The verification queue could not be loaded right now."
	} else {
		data.Pending = pending
	}

	templates.Render(w, r, "admin_verification", data)
}

// HandleReview handles POST /admin/verification. Denials require a
// reason; the upstream stores it as the resident's denial_reason and
// the resident sees it on the denial page.
func (h *Handler) HandleReview(w http.ResponseWriter, r *http.Request) {
	u, ok := auth.CurrentUser(r)
	if !ok {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse review form failed", err, "Invalid form data.", "/admin/verification")
		return
	}

	residentID := strings.TrimSpace(r.FormValue("resident_id"))
	status := strings.TrimSpace(r.FormValue("verification_status"))
	reason := strings.TrimSpace(r.FormValue("denial_reason"))

	switch {
	case residentID == "":
		h.renderVerificationError(w, r, u.Creds, "Missing resident.")
		return
	case status != models.VerificationApproved && status != models.VerificationDenied:
		h.renderVerificationError(w, r, u.Creds, "Choose approve or deny.")
		return
	case status == models.VerificationDenied && reason == "":
		h.renderVerificationError(w, r, u.Creds, "A denial needs a reason the resident will see.")
		return
	}

	if err := h.Civic.ReviewVerification(r.Context(), u.Creds, residentID, status, reason); err != nil {
		h.Log.Warn("verification review failed",
			zap.String("resident_id", residentID),
			zap.String("status", status),
			zap.Error(err))
		h.renderVerificationError(w, r, u.Creds, "Saving the review failed. Please try again.")
		return
	}

	http.Redirect(w, r, "/admin/verification?reviewed=1", http.StatusSeeOther)
}

func (h *Handler) renderVerificationError(w http.ResponseWriter, r *http.Request, creds civic.Credentials, msg string) {
	data := verificationData{
		BaseVM: viewdata.NewBaseVM(r, "Residency Verification", "/admin/dashboard"),
		Error:  msg,
	}
	if pending, err := h.Civic.PendingVerifications(r.Context(), creds); err == nil {
		data.Pending = pending
	}

	w.WriteHeader(http.StatusUnprocessableEntity)
	templates.Render(w, r, "admin_verification", data)
}
