// internal/app/bootstrap/shutdown.go
package bootstrap

import (
	"context"

	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
)

// Shutdown cleanly tears down backend resources.
func Shutdown(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps Deps, logger *zap.Logger) error {
	if deps.Sessions != nil {
		deps.Sessions.Stop()
	}
	if deps.Civic != nil {
		logger.Info("closing idle civic API connections")
		deps.Civic.CloseIdleConnections()
	}
	return nil
}
