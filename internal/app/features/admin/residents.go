// internal/app/features/admin/residents.go
package admin

import (
	"net/http"
	"strings"

	"github.com/dalemusser/barangayhub/internal/app/client/civic"
	"github.com/dalemusser/barangayhub/internal/app/system/auth"
	"github.com/dalemusser/barangayhub/internal/app/system/viewdata"
	"github.com/dalemusser/waffle/pantry/templates"
	"go.uber.org/zap"
)

type residentsData struct {
	viewdata.BaseVM
	Residents []civic.ResidentRecord
	Query     string
	Error     string
}

// ServeResidents handles GET /admin/residents. An optional ?q= filters
// by name or address, matched locally so a flaky upstream search
// endpoint cannot break the ledger.
func (h *Handler) ServeResidents(w http.ResponseWriter, r *http.Request) {
	u, ok := auth.CurrentUser(r)
	if !ok {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	data := residentsData{
		BaseVM: viewdata.NewBaseVM(r, "Residents", "/admin/dashboard"),
		Query:  strings.TrimSpace(r.URL.Query().Get("q")),
	}

	records, err := h.Civic.Residents(r.Context(), u.Creds)
	if err != nil {
		h.Log.Warn("residents fetch failed", zap.Error(err))
		data.Error = "The resident ledger could not be loaded right now."
	} else {
		data.Residents = filterResidents(records, data.Query)
	}

	templates.Render(w, r, "admin_residents", data)
}

func filterResidents(records []civic.ResidentRecord, q string) []civic.ResidentRecord {
	if q == "" {
		return records
	}
	q = strings.ToLower(q)
	out := records[:0:0]
	for _, rec := range records {
		hay := strings.ToLower(rec.FirstName + " " + rec.LastName + " " + rec.FullAddress)
		if strings.Contains(hay, q) {
			out = append(out, rec)
		}
	}
	return out
}
