package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Port != "5175" || cfg.KVBackend != "sqlite" || cfg.JWTExpiresDays != 14 {
		t.Errorf("defaults = %+v", cfg)
	}
	if cfg.ShareURL != "https://avi-trivia.netlify.app" || cfg.DevMode {
		t.Errorf("share/dev defaults = %q %v", cfg.ShareURL, cfg.DevMode)
	}
	if loc, _ := cfg.Location(); loc != time.Local {
		t.Errorf("Location = %v, want Local", loc)
	}
	if cfg.TokenTTL() != 14*24*time.Hour {
		t.Errorf("TokenTTL = %v", cfg.TokenTTL())
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("KV_BACKEND", "Memory")
	t.Setenv("DAILY_TZ", "UTC")
	t.Setenv("DEV_MODE", "true")
	t.Setenv("APP_ENV", "production")
	t.Setenv("IMAGE_PREFETCH_CONCURRENCY", "0")

	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Port != "9000" || cfg.KVBackend != "memory" || !cfg.DevMode || !cfg.Production() {
		t.Errorf("cfg = %+v", cfg)
	}
	if loc, _ := cfg.Location(); loc.String() != "UTC" {
		t.Errorf("Location = %v", loc)
	}
	if cfg.ImagePrefetchConcurrency != 1 {
		t.Errorf("concurrency = %d, want clamped to 1", cfg.ImagePrefetchConcurrency)
	}
}

func TestLoadRejects(t *testing.T) {
	cases := map[string]map[string]string{
		"unknown backend": {"KV_BACKEND": "etcd"},
		"redis no url":    {"KV_BACKEND": "redis"},
		"bad zone":        {"DAILY_TZ": "Mars/Olympus"},
		"bad int":         {"JWT_EXPIRES_DAYS": "soon"},
	}
	for name, vars := range cases {
		t.Run(name, func(t *testing.T) {
			for k, v := range vars {
				t.Setenv(k, v)
			}
			if _, err := Load(); err == nil {
				t.Error("want error")
			}
		})
	}
}
