// internal/app/features/blotter/handler.go
package blotter

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/dalemusser/barangayhub/internal/app/client/civic"
	uierrors "github.com/dalemusser/barangayhub/internal/app/features/errors"
	"github.com/dalemusser/barangayhub/internal/app/system/auth"
	"github.com/dalemusser/barangayhub/internal/app/system/viewdata"
	"github.com/dalemusser/waffle/pantry/templates"
	"go.uber.org/zap"
)

type Handler struct {
	Civic  *civic.Client
	ErrLog *uierrors.ErrorLogger
	Log    *zap.Logger
}

func NewHandler(client *civic.Client, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		Civic:  client,
		ErrLog: errLog,
		Log:    logger,
	}
}

type listData struct {
	viewdata.BaseVM
	Appointments []civic.BlotterAppointment
	Submitted    bool
	Error        string
}

// ServeList handles GET /residents/blotterAppointment.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	u, ok := auth.CurrentUser(r)
	if !ok {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	data := listData{
		BaseVM:    viewdata.NewBaseVM(r, "Blotter Appointments", "/residents/dashboard"),
		Submitted: r.URL.Query().Get("submitted") == "1",
	}

	appts, err := h.Civic.BlotterAppointments(r.Context(), u.Creds)
	if err != nil {
		h.Log.Warn("blotter appointments fetch failed", zap.Error(err))
		data.Error = "Your appointments could not be loaded right now."
	} else {
		data.Appointments = appts
	}

	templates.Render(w, r, "blotter_appointments", data)
}

// HandleCreate handles POST /residents/blotterAppointment.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	u, ok := auth.CurrentUser(r)
	if !ok {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse form failed", err, "Invalid form data.", "/residents/blotterAppointment")
		return
	}

	subject := strings.TrimSpace(r.FormValue("subject"))
	details := strings.TrimSpace(r.FormValue("details"))
	if subject == "" || details == "" {
		h.renderWithError(w, r, u.Creds, "Please describe the incident and what it concerns.")
		return
	}

	form := url.Values{}
	form.Set("subject", subject)
	form.Set("details", details)

	if err := h.Civic.CreateBlotterAppointment(r.Context(), u.Creds, form); err != nil {
		h.Log.Warn("create blotter appointment failed", zap.Error(err))
		h.renderWithError(w, r, u.Creds, "Booking the appointment failed. Please try again.")
		return
	}

	http.Redirect(w, r, "/residents/blotterAppointment?submitted=1", http.StatusSeeOther)
}

func (h *Handler) renderWithError(w http.ResponseWriter, r *http.Request, creds civic.Credentials, msg string) {
	data := listData{
		BaseVM: viewdata.NewBaseVM(r, "Blotter Appointments", "/residents/dashboard"),
		Error:  msg,
	}
	if appts, err := h.Civic.BlotterAppointments(r.Context(), creds); err == nil {
		data.Appointments = appts
	}

	w.WriteHeader(http.StatusUnprocessableEntity)
	templates.Render(w, r, "blotter_appointments", data)
}
