// internal/app/bootstrap/config.go
package bootstrap

import (
	"fmt"
	"net/url"
	"time"

	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
)

const (
	devSessionKey = "dev-only-change-me-please-0123456789ABCDEF"
	devCSRFKey    = "dev-only-32-byte-csrf-key-012345"
)

// appConfigKeys defines the configuration keys for BarangayHub.
// These are loaded via WAFFLE's config system with support for:
//   - Config files: civic_base_url, session_name, etc.
//   - Environment variables: BARANGAYHUB_CIVIC_BASE_URL, etc.
//   - Command-line flags: --civic_base_url, --session_name, etc.
var appConfigKeys = []config.AppKey{
	{Name: "civic_base_url", Default: "http://localhost:8000/api", Desc: "Civic API root URL"},
	{Name: "auth_base_url", Default: "", Desc: "Origin issuing the CSRF cookie for credential posts (blank means civic_base_url)"},
	{Name: "civic_timeout", Default: "10s", Desc: "Per-request timeout for civic API calls"},

	{Name: "session_key", Default: devSessionKey, Desc: "Session signing key (must be strong in production)"},
	{Name: "session_name", Default: "barangayhub-session", Desc: "Session cookie name"},
	{Name: "session_domain", Default: "", Desc: "Session cookie domain (blank means current host)"},
	{Name: "csrf_key", Default: devCSRFKey, Desc: "32-byte key for CSRF form protection"},

	{Name: "session_freshness", Default: "8s", Desc: "How long a cached user snapshot stays fresh (e.g., 8s, 30s)"},
	{Name: "session_max_idle", Default: "30m", Desc: "Idle time before a cached session entry is evicted"},

	{Name: "site_name", Default: "BarangayHub", Desc: "Site display name"},
}

// LoadConfig loads WAFFLE core config and app-specific config.
//
// WAFFLE's config.LoadWithAppConfig handles .env files, config
// files, environment variables (WAFFLE_* for core, BARANGAYHUB_* for
// app), and command-line flags, merged with precedence
// flags > env > files > defaults.
func LoadConfig(logger *zap.Logger) (*config.CoreConfig, AppConfig, error) {
	coreCfg, appValues, err := config.LoadWithAppConfig(logger, "BARANGAYHUB", appConfigKeys)
	if err != nil {
		return nil, AppConfig{}, err
	}

	appCfg := AppConfig{
		CivicBaseURL: appValues.String("civic_base_url"),
		AuthBaseURL:  appValues.String("auth_base_url"),
		CivicTimeout: appValues.Duration("civic_timeout", 10*time.Second),

		SessionKey:    appValues.String("session_key"),
		SessionName:   appValues.String("session_name"),
		SessionDomain: appValues.String("session_domain"),
		CSRFKey:       appValues.String("csrf_key"),

		SessionFreshness: appValues.Duration("session_freshness", 8*time.Second),
		SessionMaxIdle:   appValues.Duration("session_max_idle", 30*time.Minute),

		SiteName: appValues.String("site_name"),
	}

	return coreCfg, appCfg, nil
}

// ValidateConfig performs app-specific config validation.
//
// Return nil to accept the loaded config, or an error to abort startup.
// BarangayHub checks the upstream URL shape early, and refuses to run
// production with the development signing keys.
func ValidateConfig(coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) error {
	u, err := url.Parse(appCfg.CivicBaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("invalid civic_base_url %q", appCfg.CivicBaseURL)
	}

	if appCfg.AuthBaseURL != "" {
		if au, err := url.Parse(appCfg.AuthBaseURL); err != nil || au.Scheme == "" || au.Host == "" {
			return fmt.Errorf("invalid auth_base_url %q", appCfg.AuthBaseURL)
		}
	}

	if len(appCfg.CSRFKey) != 32 {
		return fmt.Errorf("csrf_key must be exactly 32 bytes, got %d", len(appCfg.CSRFKey))
	}

	if coreCfg.Env == "prod" {
		if appCfg.SessionKey == devSessionKey {
			return fmt.Errorf("session_key must be changed from the development default in production")
		}
		if appCfg.CSRFKey == devCSRFKey {
			return fmt.Errorf("csrf_key must be changed from the development default in production")
		}
	}

	if appCfg.SessionFreshness <= 0 {
		logger.Warn("session_freshness is non-positive, the store default applies")
	}

	return nil
}
