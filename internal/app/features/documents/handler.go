// internal/app/features/documents/handler.go
package documents

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

// DocumentTypes are the certificates a resident can request.
var DocumentTypes = []string{
	"Barangay Clearance",
	"Certificate of Residency",
	"Certificate of Indigency",
	"Business Permit Endorsement",
}

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
	Requests      []civic.DocumentRequest
	DocumentTypes []string
	Submitted     bool
	Error         string
}

// ServeList handles GET /residents/requestDocuments.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	u, ok := auth.CurrentUser(r)
	if !ok {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	data := listData{
		BaseVM:        viewdata.NewBaseVM(r, "Request Documents", "/residents/dashboard"),
		DocumentTypes: DocumentTypes,
		Submitted:     r.URL.Query().Get("submitted") == "1",
	}

	reqs, err := h.Civic.DocumentRequests(r.Context(), u.Creds)
	if err != nil {
		h.Log.Warn("document requests fetch failed", zap.Error(err))
		data.Error = "Your past requests could not be loaded right now."
	} else {
		data.Requests = reqs
	}

	templates.Render(w, r, "document_requests", data)
}

// HandleCreate handles POST /residents/requestDocuments.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	u, ok := auth.CurrentUser(r)
	if !ok {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse form failed", err, "Invalid form data.", "/residents/requestDocuments")
		return
	}

	docType := strings.TrimSpace(r.FormValue("document_type"))
	purpose := strings.TrimSpace(r.FormValue("purpose"))
	if docType == "" || purpose == "" {
		h.renderWithError(w, r, u.Creds, "Please choose a document type and state the purpose.")
		return
	}

	form := url.Values{}
	form.Set("document_type", docType)
	form.Set("purpose", purpose)

	if err := h.Civic.CreateDocumentRequest(r.Context(), u.Creds, form); err != nil {
		h.Log.Warn("create document request failed", zap.Error(err))
		h.renderWithError(w, r, u.Creds, "Submitting your request failed. Please try again.")
		return
	}

	http.Redirect(w, r, "/residents/requestDocuments?submitted=1", http.StatusSeeOther)
}

func (h *Handler) renderWithError(w http.ResponseWriter, r *http.Request, creds civic.Credentials, msg string) {
	data := listData{
		BaseVM:        viewdata.NewBaseVM(r, "Request Documents", "/residents/dashboard"),
		DocumentTypes: DocumentTypes,
		Error:         msg,
	}
	if reqs, err := h.Civic.DocumentRequests(r.Context(), creds); err == nil {
		data.Requests = reqs
	}

	w.WriteHeader(http.StatusUnprocessableEntity)
	templates.Render(w, r, "document_requests", data)
}
