// internal/app/features/assets/handler.go
package assets

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/dalemusser/barangayhub/internal/app/client/civic"
	uierrors "github.com/dalemusser/barangayhub/internal/app/features/errors"
	"github.com/dalemusser/barangayhub/internal/app/system/auth"
	"github.com/dalemusser/barangayhub/internal/app/system/viewdata"
	"github.com/dalemusser/waffle/pantry/templates"
	"go.uber.org/zap"
)

// Assets residents can borrow from the barangay hall.
var AssetNames = []string{
	"Monobloc chairs",
	"Folding tables",
	"Tent",
	"Sound system",
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
	Requests   []civic.AssetRequest
	AssetNames []string
	Submitted  bool
	Error      string
}

// ServeList handles GET /residents/requestAssets.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	u, ok := auth.CurrentUser(r)
	if !ok {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	data := listData{
		BaseVM:     viewdata.NewBaseVM(r, "Request Assets", "/residents/dashboard"),
		AssetNames: AssetNames,
		Submitted:  r.URL.Query().Get("submitted") == "1",
	}

	reqs, err := h.Civic.AssetRequests(r.Context(), u.Creds)
	if err != nil {
		h.Log.Warn("asset requests fetch failed", zap.Error(err))
		data.Error = "Your past requests could not be loaded right now."
	} else {
		data.Requests = reqs
	}

	templates.Render(w, r, "asset_requests", data)
}

// HandleCreate handles POST /residents/requestAssets.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	u, ok := auth.CurrentUser(r)
	if !ok {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse form failed", err, "Invalid form data.", "/residents/requestAssets")
		return
	}

	name := strings.TrimSpace(r.FormValue("asset_name"))
	useDate := strings.TrimSpace(r.FormValue("use_date"))
	qty, err := strconv.Atoi(strings.TrimSpace(r.FormValue("quantity")))
	if name == "" || useDate == "" || err != nil || qty < 1 {
		h.renderWithError(w, r, u.Creds, "Please pick an asset, a quantity, and a use date.")
		return
	}

	form := url.Values{}
	form.Set("asset_name", name)
	form.Set("quantity", strconv.Itoa(qty))
	form.Set("use_date", useDate)

	if err := h.Civic.CreateAssetRequest(r.Context(), u.Creds, form); err != nil {
		h.Log.Warn("create asset request failed", zap.Error(err))
		h.renderWithError(w, r, u.Creds, "Submitting your request failed. Please try again.")
		return
	}

	http.Redirect(w, r, "/residents/requestAssets?submitted=1", http.StatusSeeOther)
}

func (h *Handler) renderWithError(w http.ResponseWriter, r *http.Request, creds civic.Credentials, msg string) {
	data := listData{
		BaseVM:     viewdata.NewBaseVM(r, "Request Assets", "/residents/dashboard"),
		AssetNames: AssetNames,
		Error:      msg,
	}
	if reqs, err := h.Civic.AssetRequests(r.Context(), creds); err == nil {
		data.Requests = reqs
	}

	w.WriteHeader(http.StatusUnprocessableEntity)
	templates.Render(w, r, "asset_requests", data)
}
