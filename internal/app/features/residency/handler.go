// internal/app/features/residency/handler.go
package residency

import (
	"html/template"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/dalemusser/barangayhub/internal/app/client/civic"
	uierrors "github.com/dalemusser/barangayhub/internal/app/features/errors"
	"github.com/dalemusser/barangayhub/internal/app/policy/routepolicy"
	"github.com/dalemusser/barangayhub/internal/app/system/auth"
	"github.com/dalemusser/barangayhub/internal/app/system/htmlsanitize"
	"github.com/dalemusser/barangayhub/internal/app/system/session"
	"github.com/dalemusser/barangayhub/internal/app/system/viewdata"
	"github.com/dalemusser/barangayhub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/templates"
	"go.uber.org/zap"
)

// maxUploadBytes caps proof-of-residency uploads.
const maxUploadBytes = 10 << 20

type Handler struct {
	Civic      *civic.Client
	Sessions   *session.Store
	SessionMgr *auth.SessionManager
	ErrLog     *uierrors.ErrorLogger
	Log        *zap.Logger
}

func NewHandler(client *civic.Client, sessions *session.Store, sessionMgr *auth.SessionManager, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		Civic:      client,
		Sessions:   sessions,
		SessionMgr: sessionMgr,
		ErrLog:     errLog,
		Log:        logger,
	}
}

type uploadFormData struct {
	viewdata.BaseVM
	Status   string
	HasImage bool
	Uploaded bool
	Error    string
}

type deniedPageData struct {
	viewdata.BaseVM
	Reason template.HTML
}

// ServeUploadForm handles GET /residents/residencyVerification.
// Approved residents never need this page and are sent home.
func (h *Handler) ServeUploadForm(w http.ResponseWriter, r *http.Request) {
	u, ok := auth.CurrentUser(r)
	if !ok {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	snap := h.Sessions.Snapshot(r.Context(), u.Creds)
	p := currentProfile(snap, u)
	if p.IsApproved() {
		http.Redirect(w, r, "/residents/dashboard", http.StatusSeeOther)
		return
	}

	templates.Render(w, r, "residency_upload", uploadFormData{
		BaseVM:   viewdata.NewBaseVM(r, "Residency Verification", "/residents/dashboard"),
		Status:   p.Status(),
		HasImage: p.HasVerificationImage(),
		Uploaded: r.URL.Query().Get("uploaded") == "1",
	})
}

// HandleUpload handles POST /residents/residencyVerification. The image
// streams through to the civic API; on success the snapshot is
// force-refreshed so the new pending state is visible immediately.
func (h *Handler) HandleUpload(w http.ResponseWriter, r *http.Request) {
	u, ok := auth.CurrentUser(r)
	if !ok {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		h.renderUploadError(w, r, u, "The file is too large or the form is invalid.", err)
		return
	}

	file, header, err := r.FormFile("residency_verification_image")
	if err != nil {
		h.renderUploadError(w, r, u, "Please choose an image to upload.", err)
		return
	}
	defer file.Close()

	if !allowedImage(header.Filename) {
		h.renderUploadError(w, r, u, "Only JPG and PNG images are accepted.", nil)
		return
	}

	if _, err := h.Civic.UploadResidencyVerification(r.Context(), u.Creds, header.Filename, file); err != nil {
		h.renderUploadError(w, r, u, "Uploading failed. Please try again.", err)
		return
	}

	snap := h.Sessions.ForceRefresh(r.Context(), u.Creds)
	if snap.User != nil {
		if err := h.SessionMgr.Establish(w, r, u.Creds, snap.User); err != nil {
			h.Log.Error("residency: re-establish session", zap.Error(err))
		}
	}

	http.Redirect(w, r, routepolicy.UploadPath+"?uploaded=1", http.StatusSeeOther)
}

// ServeDenied handles GET /residency-denied. The denial reason comes
// from the upstream as free text that may include markup.
func (h *Handler) ServeDenied(w http.ResponseWriter, r *http.Request) {
	u, ok := auth.CurrentUser(r)
	if !ok {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	snap := h.Sessions.Snapshot(r.Context(), u.Creds)
	p := currentProfile(snap, u)
	if !p.IsDenied() {
		http.Redirect(w, r, "/residents/dashboard", http.StatusSeeOther)
		return
	}

	reason := p.DenialReason
	if strings.TrimSpace(reason) == "" {
		reason = "Your residency verification was not approved. Please contact the barangay office."
	}

	templates.Render(w, r, "residency_denied", deniedPageData{
		BaseVM: viewdata.NewBaseVM(r, "Residency Denied", "/residents/dashboard"),
		Reason: htmlsanitize.SanitizeHTML(reason),
	})
}

func (h *Handler) renderUploadError(w http.ResponseWriter, r *http.Request, u *auth.SessionUser, msg string, err error) {
	if err != nil {
		h.Log.Warn("residency upload failed", zap.Error(err), zap.String("user_id", u.ID))
	}

	snap := h.Sessions.Snapshot(r.Context(), u.Creds)
	p := currentProfile(snap, u)

	w.WriteHeader(http.StatusUnprocessableEntity)
	templates.Render(w, r, "residency_upload", uploadFormData{
		BaseVM:   viewdata.NewBaseVM(r, "Residency Verification", "/residents/dashboard"),
		Status:   p.Status(),
		HasImage: p.HasVerificationImage(),
		Error:    msg,
	})
}

func allowedImage(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".jpg", ".jpeg", ".png":
		return true
	default:
		return false
	}
}

func currentProfile(snap session.Snapshot, u *auth.SessionUser) *models.Profile {
	if snap.User != nil {
		return snap.User.Profile
	}
	if u.User != nil {
		return u.User.Profile
	}
	return nil
}
