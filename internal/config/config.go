package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Tier string

const (
	Development Tier = "development"
	Production  Tier = "production"
)

// CookiePolicy holds the session cookie attributes for a deployment tier.
type CookiePolicy struct {
	SameSite string // fiber.CookieSameSite* value
	Secure   bool
}

// Production serves the client from another site, so the cookie must be
// sent cross-site. Development hosts differ only by port, which browsers
// treat as same-site.
var cookiePolicies = map[Tier]CookiePolicy{
	Production:  {SameSite: "None", Secure: true},
	Development: {SameSite: "Strict", Secure: false},
}

func PolicyFor(t Tier) (CookiePolicy, error) {
	p, ok := cookiePolicies[t]
	if !ok {
		return CookiePolicy{}, fmt.Errorf("unknown APP_ENV %q", t)
	}
	return p, nil
}

const (
	StoreSQLite = "sqlite"
	StoreMongo  = "mongo"
)

type Config struct {
	Port        string
	Env         Tier
	Cookie      CookiePolicy
	StoreDriver string
	DBDSN       string
	MongoURI    string
	MongoDB     string
	RedisAddr   string
	HomecardTTL time.Duration
	TokenSecret string
	TokenTTL    time.Duration
	CORSOrigins []string
	LogFile     string
	SeedDemo    bool
}

// Load reads .env (when present) and then the process environment.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Printf("[config] .env not loaded: %v", err)
	}

	cfg := Config{
		Port:        getenv("PORT", "3000"),
		Env:         Tier(strings.ToLower(getenv("APP_ENV", string(Development)))),
		StoreDriver: strings.ToLower(getenv("STORE_DRIVER", StoreSQLite)),
		DBDSN:       getenv("DB_DSN", "foodcourt.db"),
		MongoURI:    os.Getenv("MONGO_URI"),
		MongoDB:     getenv("MONGO_DB", "foodcourt"),
		RedisAddr:   os.Getenv("REDIS_ADDR"),
		TokenSecret: os.Getenv("ACCESS_TOKEN_SECRET"),
		CORSOrigins: splitList(getenv("CORS_ORIGINS", "http://localhost:5173")),
		LogFile:     os.Getenv("LOG_FILE"),
	}

	var err error
	if cfg.Cookie, err = PolicyFor(cfg.Env); err != nil {
		return Config{}, err
	}
	if cfg.HomecardTTL, err = time.ParseDuration(getenv("HOMECARD_TTL", "60s")); err != nil {
		return Config{}, fmt.Errorf("HOMECARD_TTL: %w", err)
	}
	if cfg.TokenTTL, err = time.ParseDuration(getenv("TOKEN_TTL", "1h")); err != nil {
		return Config{}, fmt.Errorf("TOKEN_TTL: %w", err)
	}
	if cfg.SeedDemo, err = strconv.ParseBool(getenv("SEED_DEMO", "true")); err != nil {
		return Config{}, fmt.Errorf("SEED_DEMO: %w", err)
	}

	if cfg.TokenSecret == "" {
		return Config{}, errors.New("ACCESS_TOKEN_SECRET is required")
	}
	switch cfg.StoreDriver {
	case StoreSQLite:
	case StoreMongo:
		if cfg.MongoURI == "" {
			return Config{}, errors.New("MONGO_URI is required when STORE_DRIVER=mongo")
		}
	default:
		return Config{}, fmt.Errorf("unknown STORE_DRIVER %q", cfg.StoreDriver)
	}

	log.Printf("[config] PORT=%s APP_ENV=%s STORE_DRIVER=%s DB_DSN=%s MONGO_DB=%s REDIS_ADDR=%s CORS_ORIGINS=%s",
		cfg.Port, cfg.Env, cfg.StoreDriver, cfg.DBDSN, cfg.MongoDB, cfg.RedisAddr, strings.Join(cfg.CORSOrigins, ","))
	return cfg, nil
}

func getenv(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
