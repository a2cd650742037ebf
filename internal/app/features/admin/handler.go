// internal/app/features/admin/handler.go
//
// The admin area manages the barangay side of the system: resident and
// household ledgers, residency verification review, announcements,
// disaster logs, social-service programs, and staff accounts. Each
// screen lives in its own file; this file holds the shared handler.
package admin

import (
	"github.com/dalemusser/barangayhub/internal/app/client/civic"
	uierrors "github.com/dalemusser/barangayhub/internal/app/features/errors"
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
