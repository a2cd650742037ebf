// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"

	adminfeature "github.com/dalemusser/barangayhub/internal/app/features/admin"
	announcementsfeature "github.com/dalemusser/barangayhub/internal/app/features/announcements"
	assetsfeature "github.com/dalemusser/barangayhub/internal/app/features/assets"
	benefitsfeature "github.com/dalemusser/barangayhub/internal/app/features/benefits"
	blotterfeature "github.com/dalemusser/barangayhub/internal/app/features/blotter"
	dashboardfeature "github.com/dalemusser/barangayhub/internal/app/features/dashboard"
	documentsfeature "github.com/dalemusser/barangayhub/internal/app/features/documents"
	errorsfeature "github.com/dalemusser/barangayhub/internal/app/features/errors"
	healthfeature "github.com/dalemusser/barangayhub/internal/app/features/health"
	homefeature "github.com/dalemusser/barangayhub/internal/app/features/home"
	loginfeature "github.com/dalemusser/barangayhub/internal/app/features/login"
	logoutfeature "github.com/dalemusser/barangayhub/internal/app/features/logout"
	orgchartfeature "github.com/dalemusser/barangayhub/internal/app/features/orgchart"
	profilefeature "github.com/dalemusser/barangayhub/internal/app/features/profile"
	projectsfeature "github.com/dalemusser/barangayhub/internal/app/features/projects"
	residencyfeature "github.com/dalemusser/barangayhub/internal/app/features/residency"
	"github.com/dalemusser/barangayhub/internal/app/policy/routepolicy"
	"github.com/dalemusser/barangayhub/internal/app/system/auth"
	"github.com/dalemusser/barangayhub/internal/domain/models"
	"github.com/dalemusser/waffle/config"
	"github.com/dalemusser/waffle/pantry/fileserver"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	"github.com/gorilla/csrf"
	"go.uber.org/zap"
)

// BuildHandler constructs the root HTTP handler for this WAFFLE app.
//
// WAFFLE calls this after configuration, backend connections, and the
// Startup hook have completed. The router wires three areas: the public
// pages (home, login, health), the resident subtree behind the
// residency route guard, and the barangay-side screens behind role
// checks.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps Deps, logger *zap.Logger) (http.Handler, error) {
	secure := coreCfg.Env == "prod"
	sessionMgr, err := auth.NewSessionManager(appCfg.SessionKey, appCfg.SessionName, appCfg.SessionDomain, secure, logger)
	if err != nil {
		logger.Error("session manager init failed", zap.Error(err))
		return nil, err
	}

	// Initialize and boot the template engine once at startup.
	// Dev mode enables template reloading for faster iteration.
	eng := templates.New(coreCfg.Env == "dev")
	if err := eng.Boot(logger); err != nil {
		logger.Error("template engine boot failed", zap.Error(err))
		return nil, err
	}
	templates.UseEngine(eng, logger)

	errLog := errorsfeature.NewErrorLogger(logger)

	r := chi.NewRouter()

	// Browser form posts carry the gorilla.csrf.Token field rendered by
	// the shared layout.
	r.Use(csrf.Protect([]byte(appCfg.CSRFKey), csrf.Secure(secure), csrf.Path("/")))

	// Global auth middleware: loads SessionUser into context if logged in.
	r.Use(sessionMgr.LoadSessionUser)

	// Health check endpoint for load balancers and orchestrators.
	healthHandler := healthfeature.NewHandler(deps.Civic, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	// Static assets with pre-compressed file support (gzip/brotli).
	r.Handle("/static/*", fileserver.Handler("/static", "public"))

	// Public pages.
	homeHandler := homefeature.NewHandler(logger)
	r.Mount("/", homefeature.Routes(homeHandler))

	// Authentication.
	loginHandler := loginfeature.NewHandler(deps.Sessions, sessionMgr, errLog, logger)
	r.Mount("/login", loginfeature.Routes(loginHandler))

	logoutHandler := logoutfeature.NewHandler(deps.Sessions, sessionMgr, logger)
	r.Mount("/logout", logoutfeature.Routes(logoutHandler))

	// Error pages.
	errorsHandler := errorsfeature.NewHandler()
	r.Get("/forbidden", errorsHandler.Forbidden)
	r.Get("/unauthorized", errorsHandler.Unauthorized)

	// Role dispatcher: /dashboard forwards to the signed-in user's area.
	dashboardHandler := dashboardfeature.NewHandler(deps.Civic, deps.Sessions, errLog, logger)
	r.Mount("/dashboard", dashboardfeature.Routes(dashboardHandler, sessionMgr))

	residencyHandler := residencyfeature.NewHandler(deps.Civic, deps.Sessions, sessionMgr, errLog, logger)

	// The denial page sits outside /residents so a denied resident can
	// still reach it; the guard passes it through.
	residentGuard := routepolicy.Guard(deps.Sessions, models.RoleResidents)
	r.With(residentGuard).Get(routepolicy.DeniedPath, residencyHandler.ServeDenied)

	// Resident area. Every route goes through the residency guard:
	// incomplete or unverified profiles are redirected according to the
	// policy rules, with the allow-listed pages always reachable.
	r.Route("/residents", func(rr chi.Router) {
		rr.Use(residentGuard)

		rr.Get("/dashboard", dashboardHandler.ServeResident)

		profileHandler := profilefeature.NewHandler(deps.Civic, deps.Sessions, sessionMgr, errLog, logger)
		rr.Mount("/profile", profilefeature.Routes(profileHandler))

		rr.Mount("/residencyVerification", residencyfeature.Routes(residencyHandler))

		projectsHandler := projectsfeature.NewHandler(deps.Civic, logger)
		rr.Mount("/projects", projectsfeature.Routes(projectsHandler))

		announcementsHandler := announcementsfeature.NewHandler(deps.Civic, logger)
		rr.Mount("/announcements", announcementsfeature.Routes(announcementsHandler))

		documentsHandler := documentsfeature.NewHandler(deps.Civic, errLog, logger)
		rr.Mount("/requestDocuments", documentsfeature.Routes(documentsHandler))

		assetsHandler := assetsfeature.NewHandler(deps.Civic, errLog, logger)
		rr.Mount("/requestAssets", assetsfeature.Routes(assetsHandler))

		blotterHandler := blotterfeature.NewHandler(deps.Civic, errLog, logger)
		rr.Mount("/blotterAppointment", blotterfeature.Routes(blotterHandler))

		orgchartHandler := orgchartfeature.NewHandler(deps.Civic, logger)
		rr.Mount("/organizationalChart", orgchartfeature.Routes(orgchartHandler))

		benefitsHandler := benefitsfeature.NewHandler(deps.Civic, deps.Sessions, logger)
		rr.Mount("/benefits", benefitsfeature.Routes(benefitsHandler))
	})

	// Barangay-side screens. Staff and the treasurer share slices of
	// the admin area; the role groups live in the admin feature router.
	adminHandler := adminfeature.NewHandler(deps.Civic, errLog, logger)
	r.Route("/admin", func(ar chi.Router) {
		ar.With(sessionMgr.RequireSignedIn, sessionMgr.RequireRole(models.RoleAdmin)).
			Get("/dashboard", dashboardHandler.ServeAdmin)
		ar.Mount("/", adminfeature.Routes(adminHandler, sessionMgr))
	})

	r.With(sessionMgr.RequireSignedIn, sessionMgr.RequireRole(models.RoleStaff)).
		Get("/staff/dashboard", dashboardHandler.ServeStaff)
	r.With(sessionMgr.RequireSignedIn, sessionMgr.RequireRole(models.RoleTreasurer)).
		Get("/treasurer/dashboard", dashboardHandler.ServeTreasurer)

	return r, nil
}
