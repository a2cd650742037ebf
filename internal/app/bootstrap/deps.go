// internal/app/bootstrap/deps.go
package bootstrap

import (
	"context"
	"net/http"

	"github.com/dalemusser/barangayhub/internal/app/client/civic"
	"github.com/dalemusser/barangayhub/internal/app/system/session"
	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
)

// Deps holds the backend dependencies for the app. There is no local
// database: the civic API is the system of record, and the session
// store is an in-memory cache in front of it.
type Deps struct {
	Civic    *civic.Client
	Sessions *session.Store
}

// ConnectDB builds the upstream client and the session store. The hook
// name comes from the WAFFLE lifecycle; for this app "connecting" means
// constructing the HTTP client for the civic API.
func ConnectDB(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) (Deps, error) {
	httpClient := &http.Client{Timeout: appCfg.CivicTimeout}
	client := civic.New(appCfg.CivicBaseURL, appCfg.AuthBaseURL, httpClient, logger)
	store := session.New(client, appCfg.SessionFreshness, logger)

	return Deps{Civic: client, Sessions: store}, nil
}

// EnsureSchema is a no-op: all persistent state lives upstream.
func EnsureSchema(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps Deps, logger *zap.Logger) error {
	return nil
}
