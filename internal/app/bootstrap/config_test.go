package bootstrap

import (
	"strings"
	"testing"
	"time"

	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
)

func validAppConfig() AppConfig {
	return AppConfig{
		CivicBaseURL:     "https://api.barangay.example",
		CivicTimeout:     10 * time.Second,
		SessionKey:       strings.Repeat("k", 43),
		SessionName:      "barangayhub-session",
		CSRFKey:          strings.Repeat("c", 32),
		SessionFreshness: 8 * time.Second,
		SessionMaxIdle:   30 * time.Minute,
		SiteName:         "BarangayHub",
	}
}

func TestValidateConfig_Accepts(t *testing.T) {
	core := &config.CoreConfig{Env: "dev"}
	if err := ValidateConfig(core, validAppConfig(), zap.NewNop()); err != nil {
		t.Fatalf("ValidateConfig: %v", err)
	}
}

func TestValidateConfig_RejectsBadUpstreamURL(t *testing.T) {
	core := &config.CoreConfig{Env: "dev"}
	for _, bad := range []string{"", "not-a-url", "localhost:8000"} {
		cfg := validAppConfig()
		cfg.CivicBaseURL = bad
		if err := ValidateConfig(core, cfg, zap.NewNop()); err == nil {
			t.Errorf("civic_base_url %q accepted, want error", bad)
		}
	}
}

func TestValidateConfig_RejectsShortCSRFKey(t *testing.T) {
	core := &config.CoreConfig{Env: "dev"}
	cfg := validAppConfig()
	cfg.CSRFKey = "too-short"
	if err := ValidateConfig(core, cfg, zap.NewNop()); err == nil {
		t.Error("short csrf_key accepted, want error")
	}
}

func TestValidateConfig_RejectsDevKeysInProd(t *testing.T) {
	core := &config.CoreConfig{Env: "prod"}

	cfg := validAppConfig()
	cfg.SessionKey = devSessionKey
	if err := ValidateConfig(core, cfg, zap.NewNop()); err == nil {
		t.Error("dev session_key accepted in prod, want error")
	}

	cfg = validAppConfig()
	cfg.CSRFKey = devCSRFKey
	if err := ValidateConfig(core, cfg, zap.NewNop()); err == nil {
		t.Error("dev csrf_key accepted in prod, want error")
	}
}

func TestDevCSRFKeyLength(t *testing.T) {
	if len(devCSRFKey) != 32 {
		t.Fatalf("devCSRFKey length = %d, want 32", len(devCSRFKey))
	}
}
