// internal/app/bootstrap/appconfig.go
package bootstrap

import "time"

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// WAFFLE's CoreConfig handles framework-level settings (ports, TLS,
// logging, CORS); AppConfig is everything specific to BarangayHub. The
// struct is passed to most lifecycle hooks, so any configuration needed
// during startup, request handling, or shutdown lives here.
type AppConfig struct {
	// Upstream civic API configuration
	CivicBaseURL string // API root, e.g. https://api.barangay.example
	AuthBaseURL  string // origin issuing the CSRF cookie for credential posts (blank means CivicBaseURL)
	CivicTimeout time.Duration

	// Session management configuration
	SessionKey    string // secret key for signing session cookies (must be strong in production)
	SessionName   string // cookie name (default: barangayhub-session)
	SessionDomain string // cookie domain (blank means current host)

	// CSRF protection for browser form posts
	CSRFKey string // 32-byte key for the csrf middleware

	// Session snapshot cache tuning
	SessionFreshness time.Duration // how long a cached user snapshot stays fresh
	SessionMaxIdle   time.Duration // idle time before the janitor evicts an entry

	// Site presentation
	SiteName string
}
