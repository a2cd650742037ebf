// internal/app/features/dashboard/handler.go
package dashboard

import (
	"net/http"
	"strings"

	"github.com/dalemusser/barangayhub/internal/app/client/civic"
	uierrors "github.com/dalemusser/barangayhub/internal/app/features/errors"
	"github.com/dalemusser/barangayhub/internal/app/system/auth"
	"github.com/dalemusser/barangayhub/internal/app/system/session"
	"github.com/dalemusser/barangayhub/internal/domain/models"
	"go.uber.org/zap"
)

// Handler serves the per-role dashboards.
type Handler struct {
	Civic    *civic.Client
	Sessions *session.Store
	ErrLog   *uierrors.ErrorLogger
	Log      *zap.Logger
}

func NewHandler(client *civic.Client, sessions *session.Store, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		Civic:    client,
		Sessions: sessions,
		ErrLog:   errLog,
		Log:      logger,
	}
}

// Dispatch handles GET /dashboard: every signed-in user has exactly one
// role dashboard, so this just forwards to it.
func (h *Handler) Dispatch(w http.ResponseWriter, r *http.Request) {
	u, ok := auth.CurrentUser(r)
	if !ok {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	var target string
	switch strings.ToLower(u.Role) {
	case models.RoleAdmin:
		target = "/admin/dashboard"
	case models.RoleStaff:
		target = "/staff/dashboard"
	case models.RoleTreasurer:
		target = "/treasurer/dashboard"
	default:
		target = "/residents/dashboard"
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}
