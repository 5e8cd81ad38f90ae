package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	html "github.com/gofiber/template/html/v2"
	"github.com/jmoiron/sqlx"

	"jerseystore/internal/http/handlers"
	"jerseystore/internal/repos"
)

const (
	adminEmail = "admin@jerseystore.test"
	adminPass  = "Adm1n!pass"
)

type testApp struct {
	*fiber.App
	DB   *sqlx.DB
	Deps *handlers.Deps
}

// newTestApp wires the real routes over a seeded in-memory database.
func newTestApp(t *testing.T) *testApp {
	t.Helper()
	db, err := repos.OpenDB(":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	ctx := context.Background()
	if err := repos.SeedIfEmpty(ctx, db); err != nil {
		t.Fatalf("seed: %v", err)
	}

	deps := handlers.NewDeps(db)
	if err := deps.Auth.EnsureAdmin(ctx, adminEmail, adminPass); err != nil {
		t.Fatalf("ensure admin: %v", err)
	}

	engine := html.New("../../web/templates", ".html")
	app := fiber.New(fiber.Config{Views: engine, ErrorHandler: handlers.ErrorHandler})
	app.Server().MaxRequestBodySize = 1 << 20 // 1 MiB
	app.Use(requestid.New())
	app.Use(handlers.AttachUser(deps.Auth))
	handlers.Routes(app, deps)
	return &testApp{App: app, DB: db, Deps: deps}
}

func (a *testApp) do(t *testing.T, method, path string, body any, cookies ...*http.Cookie) *http.Response {
	t.Helper()
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatal(err)
		}
		r = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for _, c := range cookies {
		if c != nil {
			req.AddCookie(c)
		}
	}
	resp, err := a.Test(req, -1)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	return resp
}

// login signs in as admin and returns the session cookie.
func (a *testApp) login(t *testing.T) *http.Cookie {
	t.Helper()
	resp := a.do(t, "POST", "/api/admin/login", map[string]string{"email": adminEmail, "password": adminPass})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("admin login: got %d", resp.StatusCode)
	}
	c := cookie(resp, "sid")
	if c == nil || c.Value == "" {
		t.Fatal("login did not set sid")
	}
	return &http.Cookie{Name: "sid", Value: c.Value}
}

func cookie(resp *http.Response, name string) *http.Cookie {
	for _, c := range resp.Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}

func decode(t *testing.T, resp *http.Response, v any) {
	t.Helper()
	defer resp.Body.Close()
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		t.Fatalf("decode: %v", err)
	}
}

func message(t *testing.T, resp *http.Response) string {
	t.Helper()
	var m struct {
		Message string `json:"message"`
	}
	decode(t, resp, &m)
	return m.Message
}

type logEntry struct {
	Level  string         `json:"level"`
	Action string         `json:"action"`
	Err    string         `json:"err"`
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
	oldW := log.Writer()
	oldFlags := log.Flags()
	log.SetOutput(buf)
	log.SetFlags(0)
	defer func() {
		log.SetOutput(oldW)
		log.SetFlags(oldFlags)
	}()

	fn()

	var entries []logEntry
	for _, line := range strings.Split(strings.TrimSpace(buf.b.String()), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		var e logEntry
		if err := json.Unmarshal([]byte(line), &e); err == nil {
			entries = append(entries, e)
		}
	}
	return entries
}

func findLog(entries []logEntry, action string) (logEntry, bool) {
	for _, e := range entries {
		if e.Action == action {
			return e, true
		}
	}
	return logEntry{}, false
}

func checkoutBody(lines ...map[string]any) map[string]any {
	return map[string]any{
		"cart": lines,
		"shipping": map[string]string{
			"name": "Asha Rao", "address": "12 MG Road", "city": "Bengaluru", "zip": "560001",
		},
		"paymentMethod": "UPI",
	}
}

func line(id, size string, qty int) map[string]any {
	return map[string]any{"productId": id, "size": size, "quantity": qty}
}
