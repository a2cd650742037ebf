// internal/app/bootstrap/startup.go
package bootstrap

import (
	"context"
	"time"

	"github.com/dalemusser/barangayhub/internal/app/resources"
	"github.com/dalemusser/barangayhub/internal/app/system/viewdata"
	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
)

// Startup runs one-time application initialization after backends are
// connected, but before the HTTP handler is built. Shared templates are
// registered here, the view-model layer gets its handle on the session
// store, and the cache janitor starts.
func Startup(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps Deps, logger *zap.Logger) error {
	resources.LoadSharedTemplates()
	viewdata.Init(deps.Sessions, appCfg.SiteName)
	deps.Sessions.StartJanitor(time.Minute, appCfg.SessionMaxIdle)
	return nil
}
