package e2e

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"os/exec"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// portalStub is an in-process backend covering the happy path the binary
// exercises: login, plan listing, plan change and subscription reads.
type portalStub struct {
	mu        sync.Mutex
	packageID int64
}

func (p *portalStub) handler(t *testing.T) http.Handler {
	t.Helper()

	mux := http.NewServeMux()

	mux.HandleFunc("POST /api/auth/login/", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		if body["password"] != "hunter2222" {
			w.WriteHeader(http.StatusUnauthorized)
			_ = json.NewEncoder(w).Encode(map[string]string{"detail": "No active account found"})
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]string{"access": "jwt-e2e"})
	})

	authed := func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			if r.Header.Get("Authorization") != "Bearer jwt-e2e" {
				w.WriteHeader(http.StatusUnauthorized)
				_ = json.NewEncoder(w).Encode(map[string]string{"detail": "Token missing"})
				return
			}
			next(w, r)
		}
	}

	mux.HandleFunc("GET /api/plans/wifipackages/", authed(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`[
			{"id": 1, "name": "Home 5Mbps", "price": "1499.00", "duration_days": 30, "max_download_speed": 5, "max_upload_speed": 5, "data_cap_mb": 0},
			{"id": 2, "name": "Home 10Mbps", "price": "2999.00", "duration_days": 30, "max_download_speed": 10, "max_upload_speed": 10, "data_cap_mb": 0}
		]`))
	}))

	mux.HandleFunc("POST /api/billing/plan-actions/change_plan/", authed(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]int64
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))

		p.mu.Lock()
		p.packageID = body["package_id"]
		p.mu.Unlock()

		_ = json.NewEncoder(w).Encode(map[string]string{"detail": "plan changed"})
	}))

	mux.HandleFunc("GET /api/billing/subscriptions/", authed(func(w http.ResponseWriter, _ *http.Request) {
		p.mu.Lock()
		packageID := p.packageID
		p.mu.Unlock()

		if packageID == 0 {
			_, _ = w.Write([]byte(`[]`))
			return
		}

		name := "Home 5Mbps"
		if packageID == 2 {
			name = "Home 10Mbps"
		}
		_, _ = fmt.Fprintf(w, `[
			{"id": 7, "package": %d, "package_name": %q, "speed": 10, "price": "2999.00",
			 "start_date": "2026-08-01T00:00:00Z", "end_date": "2026-08-31T00:00:00Z",
			 "is_active": true, "days_remaining": 11}
		]`, packageID, name)
	}))

	mux.HandleFunc("GET /api/billing/payments/", authed(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`[]`))
	}))
	mux.HandleFunc("GET /api/billing/usage/current/", authed(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"download_mb": "512", "upload_mb": "128"}`))
	}))
	mux.HandleFunc("GET /api/billing/usage/history/", authed(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`[]`))
	}))
	mux.HandleFunc("GET /api/support/tickets/", authed(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`[]`))
	}))

	return mux
}

func TestSmokeFlow(t *testing.T) {
	stub := &portalStub{}
	server := httptest.NewServer(stub.handler(t))
	t.Cleanup(server.Close)

	home := t.TempDir()
	binaryPath := buildBinary(t)

	_, stderr, err := runPortal(t, binaryPath, home, server.URL,
		"login", "john_doe", "--password", "hunter2222")
	require.NoError(t, err, "stderr: %s", stderr)

	stdout, stderr, err := runPortal(t, binaryPath, home, server.URL, "plans")
	require.NoError(t, err, "stderr: %s", stderr)
	assert.Contains(t, stdout, "Home 5Mbps")
	assert.Contains(t, stdout, "Home 10Mbps")

	stdout, stderr, err = runPortal(t, binaryPath, home, server.URL,
		"plans", "change", "--package", "2")
	require.NoError(t, err, "stderr: %s", stderr)
	assert.Contains(t, stdout, "Switched to Home 10Mbps")

	stdout, stderr, err = runPortal(t, binaryPath, home, server.URL, "status", "--json")
	require.NoError(t, err, "stderr: %s", stderr)
	assert.Contains(t, stdout, "Home 10Mbps")
	assert.Contains(t, stdout, "john_doe")
	assert.NotContains(t, stdout, "jwt-e2e", "the bearer token never reaches stdout")

	stdout, stderr, err = runPortal(t, binaryPath, home, server.URL, "logout")
	require.NoError(t, err, "stderr: %s", stderr)
	assert.Contains(t, stdout, "Logged out")

	_, _, err = runPortal(t, binaryPath, home, server.URL, "plans")
	require.Error(t, err, "commands require a session after logout")
}

func TestSmokeWrongPassword(t *testing.T) {
	stub := &portalStub{}
	server := httptest.NewServer(stub.handler(t))
	t.Cleanup(server.Close)

	home := t.TempDir()
	binaryPath := buildBinary(t)

	_, stderr, err := runPortal(t, binaryPath, home, server.URL,
		"login", "john_doe", "--password", "wrong")
	require.Error(t, err)
	assert.Contains(t, stderr, "invalid credentials")
}

func buildBinary(t *testing.T) string {
	t.Helper()

	binaryPath := filepath.Join(t.TempDir(), "portal-e2e")
	cmd := exec.Command("go", "build", "-o", binaryPath, "./cmd/portal")
	cmd.Dir = repoRoot(t)

	output, err := cmd.CombinedOutput()
	require.NoError(t, err, "build portal binary: %s", string(output))
	return binaryPath
}

func runPortal(t *testing.T, binaryPath, home, baseURL string, args ...string) (string, string, error) {
	t.Helper()

	cmd := exec.Command(binaryPath, args...)
	cmd.Env = append(os.Environ(),
		"HOME="+home,
		"PORTAL_BASE_URL="+baseURL,
	)

	var stdout bytes.Buffer
	var stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	return stdout.String(), stderr.String(), err
}

func repoRoot(t *testing.T) string {
	t.Helper()

	wd, err := os.Getwd()
	require.NoError(t, err)
	return filepath.Clean(filepath.Join(wd, "..", ".."))
}
