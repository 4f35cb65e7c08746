package main

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ayush/coinlist/backend/internal/auth"
	"github.com/ayush/coinlist/backend/internal/catalog"
	"github.com/ayush/coinlist/backend/internal/logging"
	"github.com/ayush/coinlist/backend/internal/middleware"
	"github.com/ayush/coinlist/backend/internal/store"
)

// newBackend serves the auth and catalog endpoints on mock data.
func newBackend(t *testing.T) *httptest.Server {
	t.Helper()
	admin, err := auth.NewAdminVerifier("admin", "password")
	if err != nil {
		t.Fatal(err)
	}
	log := logging.Discard()
	m := auth.NewManager(auth.MockVerifier{}, admin, auth.NewMemorySessionStore(), 0, log)
	ah := auth.NewHandler(m)
	ch := catalog.NewHandler(
		store.NewMemoryStore(catalog.SeedCoins(), catalog.SeedSubmissions()),
		store.NewMemoryFiles(), catalog.StaticUserCount(catalog.MockUserCount), log,
	)
	requireAdmin := func(next http.HandlerFunc) http.Handler {
		return middleware.RequireAuth(m)(middleware.RequireAdmin(next))
	}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/auth/login", ah.Login)
	mux.HandleFunc("POST /api/auth/register", ah.Register)
	mux.HandleFunc("POST /api/auth/admin/login", ah.AdminLogin)
	mux.HandleFunc("POST /api/auth/logout", ah.Logout)
	mux.HandleFunc("GET /api/coins", ch.ListCoins)
	mux.HandleFunc("GET /api/coins/promoted", ch.PromotedCoins)
	mux.Handle("GET /api/submissions", requireAdmin(ch.ListSubmissions))
	mux.Handle("GET /api/admin/dashboard", requireAdmin(ch.Dashboard))

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

type cli struct {
	t       *testing.T
	url     string
	storage string
}

func newCLI(t *testing.T) *cli {
	return &cli{t: t, url: newBackend(t).URL, storage: filepath.Join(t.TempDir(), "storage.json")}
}

func (c *cli) run(args ...string) (string, error) {
	c.t.Helper()
	var out bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(io.Discard)
	root.SetArgs(append([]string{"--url", c.url, "--storage", c.storage}, args...))
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func (c *cli) mustRun(args ...string) string {
	c.t.Helper()
	out, err := c.run(args...)
	if err != nil {
		c.t.Fatalf("coinctl %s: %v", strings.Join(args, " "), err)
	}
	return out
}

func TestLoginWhoamiLogout(t *testing.T) {
	c := newCLI(t)

	if out := c.mustRun("login", "--email", "ivy@example.com", "--password", "pw"); !strings.Contains(out, "logged in as ivy") {
		t.Errorf("login output = %q", out)
	}
	if out := c.mustRun("whoami"); out != "ivy <ivy@example.com> id=user-123\n" {
		t.Errorf("whoami output = %q", out)
	}
	if out := c.mustRun("logout"); !strings.Contains(out, auth.LoginPath) {
		t.Errorf("logout output = %q", out)
	}
	if _, err := c.run("whoami"); err == nil || err.Error() != "not logged in" {
		t.Errorf("whoami after logout err = %v", err)
	}
}

func TestLoginErrors(t *testing.T) {
	c := newCLI(t)
	tests := []struct {
		args []string
		want string
	}{
		{[]string{"login", "--email", "ivy@example.com"}, "Failed to login"},
		{[]string{"register", "--password", "pw"}, "Failed to register"},
		{[]string{"admin", "--username", "admin", "--password", "nope"}, "Invalid username or password"},
	}
	for _, tt := range tests {
		if _, err := c.run(tt.args...); err == nil || err.Error() != tt.want {
			t.Errorf("%v err = %v, want %q", tt.args, err, tt.want)
		}
	}
}

func TestCoinsAndPromoted(t *testing.T) {
	c := newCLI(t)

	out := c.mustRun("coins", "--category", "defi")
	if !strings.Contains(out, "SafeFinance") || strings.Contains(out, "DogeMoon") {
		t.Errorf("coins --category defi:\n%s", out)
	}

	out = c.mustRun("promoted")
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 3 {
		t.Fatalf("promoted printed %d lines:\n%s", len(lines), out)
	}
	if !strings.HasPrefix(lines[1], "Memereum") || !strings.HasPrefix(lines[2], "SafeFinance") {
		t.Errorf("promoted:\n%s", out)
	}
}

func TestAdminCommands(t *testing.T) {
	c := newCLI(t)

	c.mustRun("login", "--email", "ivy@example.com", "--password", "pw")
	if _, err := c.run("submissions"); err == nil || !strings.Contains(err.Error(), "403") {
		t.Errorf("submissions as user err = %v, want 403", err)
	}

	c.mustRun("admin", "--username", "admin", "--password", "password")
	out := c.mustRun("submissions")
	if !strings.Contains(out, "ShibaRocket") || !strings.Contains(out, "YLOOP") {
		t.Errorf("submissions:\n%s", out)
	}
	// newest first
	if strings.Index(out, "YieldLoop") > strings.Index(out, "ShibaRocket") {
		t.Errorf("submissions not newest first:\n%s", out)
	}

	out = c.mustRun("dashboard")
	if !strings.HasPrefix(out, "coins 5  pending 2  votes 38300  users 1250\n") {
		t.Errorf("dashboard:\n%s", out)
	}
}

func TestUnknownCommand(t *testing.T) {
	c := newCLI(t)
	if _, err := c.run("frobnicate"); err == nil {
		t.Error("unknown command succeeded")
	}
}
