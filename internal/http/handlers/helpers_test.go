package handlers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jmoiron/sqlx"

	"foodcourt/internal/config"
	"foodcourt/internal/http/handlers"
	"foodcourt/internal/repos"
	"foodcourt/internal/services"
)

type testApp struct {
	app    *fiber.App
	db     *sqlx.DB
	foods  *repos.FoodRepo
	tokens *services.TokenService
}

func newTestApp(t *testing.T, tier config.Tier) *testApp {
	t.Helper()
	db, err := repos.OpenDB(":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	policy, err := config.PolicyFor(tier)
	if err != nil {
		t.Fatal(err)
	}
	cfg := config.Config{Env: tier, Cookie: policy, CORSOrigins: []string{"http://localhost:5173"}}
	tokens := services.NewTokenService("test-secret", time.Hour)
	st := handlers.Stores{
		Foods:    repos.NewFoodRepo(db),
		Orders:   repos.NewOrderRepo(db),
		Feedback: repos.NewFeedbackRepo(db),
	}
	deps := handlers.NewDeps(st, cfg, tokens, nil)
	return &testApp{app: handlers.NewApp(cfg, deps), db: db, foods: repos.NewFoodRepo(db), tokens: tokens}
}

func (a *testApp) do(t *testing.T, method, target, body string, cookies ...*http.Cookie) *http.Response {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, r)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for _, c := range cookies {
		req.AddCookie(c)
	}
	resp, err := a.app.Test(req, -1)
	if err != nil {
		t.Fatalf("%s %s: %v", method, target, err)
	}
	return resp
}

func (a *testApp) login(t *testing.T, payload string) *http.Cookie {
	t.Helper()
	resp := a.do(t, "POST", "/jwt", payload)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("login: status %d", resp.StatusCode)
	}
	c := cookieNamed(resp, handlers.TokenCookie)
	if c == nil {
		t.Fatal("token cookie missing")
	}
	return c
}

func cookieNamed(resp *http.Response, name string) *http.Cookie {
	for _, c := range resp.Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()
	var v T
	if err := json.NewDecoder(resp.Body).Decode(&v); err != nil {
		t.Fatalf("decode: %v", err)
	}
	return v
}

func wantStatus(t *testing.T, resp *http.Response, code int) {
	t.Helper()
	if resp.StatusCode != code {
		body, _ := io.ReadAll(resp.Body)
		t.Fatalf("want %d, got %d body=%s", code, resp.StatusCode, body)
	}
}

type logEntry struct {
	Level  string         `json:"level"`
	Action string         `json:"action"`
	UserID string         `json:"user_id"`
	Fields map[string]any `json:"fields"`
}

type lockedBuf struct {
	b  bytes.Buffer
	mu sync.Mutex
}

func (l *lockedBuf) Write(p []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.b.Write(p)
}

func captureLogs(t *testing.T, fn func()) []logEntry {
	t.Helper()
	buf := &lockedBuf{}
	oldW, oldFlags := log.Writer(), log.Flags()
	log.SetOutput(buf)
	log.SetFlags(0)
	defer func() {
		log.SetOutput(oldW)
		log.SetFlags(oldFlags)
	}()

	fn()

	var entries []logEntry
	for _, line := range strings.Split(strings.TrimSpace(buf.b.String()), "\n") {
		var e logEntry
		if err := json.Unmarshal([]byte(strings.TrimSpace(line)), &e); err == nil {
			entries = append(entries, e)
		}
	}
	return entries
}
