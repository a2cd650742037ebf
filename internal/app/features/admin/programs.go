// internal/app/features/admin/programs.go
package admin

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/dalemusser/barangayhub/internal/app/client/civic"
	"github.com/dalemusser/barangayhub/internal/app/system/auth"
	"github.com/dalemusser/barangayhub/internal/app/system/viewdata"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type programsData struct {
	viewdata.BaseVM
	Programs []civic.Program
	Error    string
}

type beneficiariesData struct {
	viewdata.BaseVM
	ProgramID     string
	ProgramName   string
	Beneficiaries []civic.Beneficiary
	Enrolled      bool
	Error         string
}

// ServePrograms handles GET /admin/programs.
func (h *Handler) ServePrograms(w http.ResponseWriter, r *http.Request) {
	u, ok := auth.CurrentUser(r)
	if !ok {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	data := programsData{
		BaseVM: viewdata.NewBaseVM(r, "Programs", "/admin/dashboard"),
	}

	programs, err := h.Civic.Programs(r.Context(), u.Creds)
	if err != nil {
		h.Log.Warn("programs fetch failed", zap.Error(err))
		data.Error = "Programs could not be loaded right now."
	} else {
		data.Programs = programs
	}

	templates.Render(w, r, "admin_programs", data)
}

// ServeBeneficiaries handles GET /admin/programs/{programID}.
func (h *Handler) ServeBeneficiaries(w http.ResponseWriter, r *http.Request) {
	u, ok := auth.CurrentUser(r)
	if !ok {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	programID := chi.URLParam(r, "programID")
	data := beneficiariesData{
		BaseVM:    viewdata.NewBaseVM(r, "Program Beneficiaries", "/admin/programs"),
		ProgramID: programID,
		Enrolled:  r.URL.Query().Get("enrolled") == "1",
	}
	data.ProgramName = h.programName(r, u.Creds, programID)

	list, err := h.Civic.ProgramBeneficiaries(r.Context(), u.Creds, programID)
	if err != nil {
		h.Log.Warn("beneficiaries fetch failed", zap.String("program_id", programID), zap.Error(err))
		data.Error = "Beneficiaries could not be loaded right now."
	} else {
		data.Beneficiaries = list
	}

	templates.Render(w, r, "admin_program_beneficiaries", data)
}

// HandleEnroll handles POST /admin/programs/{programID}.
func (h *Handler) HandleEnroll(w http.ResponseWriter, r *http.Request) {
	u, ok := auth.CurrentUser(r)
	if !ok {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	programID := chi.URLParam(r, "programID")
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse enroll form failed", err, "Invalid form data.", "/admin/programs")
		return
	}

	residentID := strings.TrimSpace(r.FormValue("resident_id"))
	if residentID == "" {
		h.renderBeneficiariesError(w, r, u.Creds, programID, "Choose a resident to enroll.")
		return
	}

	form := url.Values{}
	form.Set("resident_id", residentID)

	if err := h.Civic.EnrollBeneficiary(r.Context(), u.Creds, programID, form); err != nil {
		h.Log.Warn("enroll beneficiary failed", zap.String("program_id", programID), zap.Error(err))
		h.renderBeneficiariesError(w, r, u.Creds, programID, "Enrolling the resident failed. Please try again.")
		return
	}

	http.Redirect(w, r, "/admin/programs/"+url.PathEscape(programID)+"?enrolled=1", http.StatusSeeOther)
}

func (h *Handler) renderBeneficiariesError(w http.ResponseWriter, r *http.Request, creds civic.Credentials, programID, msg string) {
	data := beneficiariesData{
		BaseVM:    viewdata.NewBaseVM(r, "Program Beneficiaries", "/admin/programs"),
		ProgramID: programID,
		Error:     msg,
	}
	data.ProgramName = h.programName(r, creds, programID)
	if list, err := h.Civic.ProgramBeneficiaries(r.Context(), creds, programID); err == nil {
		data.Beneficiaries = list
	}

	w.WriteHeader(http.StatusUnprocessableEntity)
	templates.Render(w, r, "admin_program_beneficiaries", data)
}

// programName resolves a display name from the program list. The
// upstream has no single-program endpoint.
func (h *Handler) programName(r *http.Request, creds civic.Credentials, programID string) string {
	programs, err := h.Civic.Programs(r.Context(), creds)
	if err != nil {
		return programID
	}
	for _, p := range programs {
		if p.ID == programID {
			return p.Name
		}
	}
	return programID
}
