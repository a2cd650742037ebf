// internal/app/features/admin/staff.go
package admin

import (
	"net/http"
	"net/mail"
	"net/url"
	"strings"

	"github.com/dalemusser/barangayhub/internal/app/client/civic"
	"github.com/dalemusser/barangayhub/internal/app/system/auth"
	"github.com/dalemusser/barangayhub/internal/app/system/viewdata"
	"github.com/dalemusser/barangayhub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/templates"
	"go.uber.org/zap"
)

// StaffRoles the admin can provision. Admin accounts are created out
// of band.
var StaffRoles = []string{models.RoleStaff, models.RoleTreasurer}

type staffData struct {
	viewdata.BaseVM
	Accounts []civic.StaffAccount
	Roles    []string
	Created  bool
	Error    string
}

// ServeStaff handles GET /admin/staff.
func (h *Handler) ServeStaff(w http.ResponseWriter, r *http.Request) {
	u, ok := auth.CurrentUser(r)
	if !ok {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	data := staffData{
		BaseVM:  viewdata.NewBaseVM(r, "Staff Accounts", "/admin/dashboard"),
		Roles:   StaffRoles,
		Created: r.URL.Query().Get("created") == "1",
	}

	accounts, err := h.Civic.Staff(r.Context(), u.Creds)
	if err != nil {
		h.Log.Warn("staff fetch failed", zap.Error(err))
		data.Error = "Staff accounts could not be loaded right now."
	} else {
		data.Accounts = accounts
	}

	templates.Render(w, r, "admin_staff", data)
}

// HandleCreateStaff handles POST /admin/staff.
func (h *Handler) HandleCreateStaff(w http.ResponseWriter, r *http.Request) {
	u, ok := auth.CurrentUser(r)
	if !ok {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse staff form failed", err, "Invalid form data.", "/admin/staff")
		return
	}

	name := strings.TrimSpace(r.FormValue("name"))
	email := strings.TrimSpace(r.FormValue("email"))
	role := strings.TrimSpace(r.FormValue("role"))

	switch {
	case name == "" || email == "":
		h.renderStaffError(w, r, u.Creds, "A staff account needs a name and an email.")
		return
	case !validEmail(email):
		h.renderStaffError(w, r, u.Creds, "That email address does not look valid.")
		return
	case !validStaffRole(role):
		h.renderStaffError(w, r, u.Creds, "Choose a staff or treasurer role.")
		return
	}

	form := url.Values{}
	form.Set("name", name)
	form.Set("email", email)
	form.Set("role", role)

	if err := h.Civic.CreateStaff(r.Context(), u.Creds, form); err != nil {
		h.Log.Warn("create staff failed", zap.Error(err))
		h.renderStaffError(w, r, u.Creds, "Creating the account failed. Please try again.")
		return
	}

	http.Redirect(w, r, "/admin/staff?created=1", http.StatusSeeOther)
}

func (h *Handler) renderStaffError(w http.ResponseWriter, r *http.Request, creds civic.Credentials, msg string) {
	data := staffData{
		BaseVM: viewdata.NewBaseVM(r, "Staff Accounts", "/admin/dashboard"),
		Roles:  StaffRoles,
		Error:  msg,
	}
	if accounts, err := h.Civic.Staff(r.Context(), creds); err == nil {
		data.Accounts = accounts
	}

	w.WriteHeader(http.StatusUnprocessableEntity)
	templates.Render(w, r, "admin_staff", data)
}

func validEmail(s string) bool {
	_, err := mail.ParseAddress(s)
	return err == nil
}

func validStaffRole(role string) bool {
	for _, r := range StaffRoles {
		if role == r {
			return true
		}
	}
	return false
}
