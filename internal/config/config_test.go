package config

import (
	"testing"
	"time"
)

func TestPolicyForTiers(t *testing.T) {
	prod, err := PolicyFor(Production)
	if err != nil {
		t.Fatal(err)
	}
	if prod.SameSite != "None" || !prod.Secure {
		t.Fatalf("production policy: %+v", prod)
	}
	dev, err := PolicyFor(Development)
	if err != nil {
		t.Fatal(err)
	}
	if dev.SameSite != "Strict" || dev.Secure {
		t.Fatalf("development policy: %+v", dev)
	}
	if _, err := PolicyFor("staging"); err == nil {
		t.Fatal("expected error for unknown tier")
	}
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("ACCESS_TOKEN_SECRET", "s3cret")
	t.Setenv("APP_ENV", "")
	t.Setenv("STORE_DRIVER", "")
	t.Setenv("PORT", "")
	t.Setenv("TOKEN_TTL", "")
	t.Setenv("CORS_ORIGINS", " http://a.test , ,http://b.test")

	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Port != "3000" || cfg.Env != Development || cfg.StoreDriver != StoreSQLite {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if cfg.TokenTTL != time.Hour {
		t.Fatalf("token ttl = %v", cfg.TokenTTL)
	}
	if len(cfg.CORSOrigins) != 2 || cfg.CORSOrigins[1] != "http://b.test" {
		t.Fatalf("origins = %v", cfg.CORSOrigins)
	}
	if cfg.Cookie.Secure {
		t.Fatal("development cookie must not be secure")
	}
}

func TestLoadRejectsBadInput(t *testing.T) {
	cases := map[string]map[string]string{
		"missing secret": {"ACCESS_TOKEN_SECRET": ""},
		"unknown tier":   {"ACCESS_TOKEN_SECRET": "x", "APP_ENV": "qa"},
		"unknown store":  {"ACCESS_TOKEN_SECRET": "x", "STORE_DRIVER": "redis"},
		"mongo no uri":   {"ACCESS_TOKEN_SECRET": "x", "STORE_DRIVER": "mongo", "MONGO_URI": ""},
		"bad ttl":        {"ACCESS_TOKEN_SECRET": "x", "TOKEN_TTL": "soon"},
	}
	for name, env := range cases {
		t.Run(name, func(t *testing.T) {
			for k, v := range env {
				t.Setenv(k, v)
			}
			if _, err := Load(); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}
