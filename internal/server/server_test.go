package server_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"winsbygroup.com/appmachineid/internal/config"
	"winsbygroup.com/appmachineid/internal/server"
)

const adminKey = "test-admin-key"

func newTestServer(t *testing.T, machineText string) *server.Server {
	t.Helper()
	return newTestServerWith(t, machineText, false)
}

func newTestServerWith(t *testing.T, machineText string, demo bool) *server.Server {
	t.Helper()
	dir := t.TempDir()

	machineFile := filepath.Join(dir, "machine-id")
	if machineText != "" {
		if err := os.WriteFile(machineFile, []byte(machineText), 0644); err != nil {
			t.Fatalf("write machine id: %v", err)
		}
	}

	cfg := &config.Config{
		Addr:           ":0",
		DBPath:         filepath.Join(dir, "test.db"),
		DBPathSource:   "test",
		AdminAPIKey:    adminKey,
		MachineIDPaths: []string{machineFile},
		ReadTimeout:    time.Second,
		WriteTimeout:   time.Second,
		IdleTimeout:    time.Second,
		Demo:           demo,
	}

	srv, err := server.Build(cfg)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	t.Cleanup(func() { srv.DB.Close() })
	return srv
}

func do(srv *server.Server, method, path, body string, header map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	for k, v := range header {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	srv.Echo.ServeHTTP(rec, req)
	return rec
}

func TestBuild_RequiresAdminKey(t *testing.T) {
	_, err := server.Build(&config.Config{DBPath: filepath.Join(t.TempDir(), "x.db")})
	if err == nil {
		t.Fatal("expected error without admin key")
	}
}

func TestServer_EndToEnd(t *testing.T) {
	srv := newTestServer(t, "fed6b2924c424cf1b9a322f606b4de6d\n")

	if rec := do(srv, http.MethodGet, "/readyz", "", nil); rec.Code != http.StatusOK {
		t.Fatalf("readyz: expected 200, got %d", rec.Code)
	}

	// admin routes are protected
	rec := do(srv, http.MethodPost, "/api/admin/applications",
		`{"name":"Agent","uuid":"8e9b38ad-0ef8-4b14-894a-83bef002c713"}`, nil)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without key, got %d", rec.Code)
	}

	rec = do(srv, http.MethodPost, "/api/admin/applications",
		`{"name":"Agent","uuid":"8e9b38ad-0ef8-4b14-894a-83bef002c713"}`,
		map[string]string{"X-API-Key": adminKey})
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	rec = do(srv, http.MethodGet, "/api/admin/applications/uuid/8e9b38ad-0ef8-4b14-894a-83bef002c713", "",
		map[string]string{"X-API-Key": adminKey})
	if rec.Code != http.StatusOK {
		t.Fatalf("uuid lookup: expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	rec = do(srv, http.MethodGet, "/api/v1/apps/Agent/machine-id", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var resp map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if resp["MachineID"] != "e2e8fd79-9298-4f04-a785-aa68fdbb7fc4" {
		t.Errorf("unexpected MachineID %q", resp["MachineID"])
	}
	if rec.Header().Get("X-AppMachineID-Version") == "" {
		t.Error("expected version header")
	}

	rec = do(srv, http.MethodGet, "/api/v1/app-specific/8e9b38ad-0ef8-4b14-894a-83bef002c713", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestServer_ReadyzWithoutMachineID(t *testing.T) {
	srv := newTestServer(t, "")

	if rec := do(srv, http.MethodGet, "/livez", "", nil); rec.Code != http.StatusOK {
		t.Errorf("livez: expected 200, got %d", rec.Code)
	}
	if rec := do(srv, http.MethodGet, "/readyz", "", nil); rec.Code != http.StatusServiceUnavailable {
		t.Errorf("readyz: expected 503, got %d", rec.Code)
	}
}

func TestServer_DemoData(t *testing.T) {
	srv := newTestServerWith(t, "fed6b2924c424cf1b9a322f606b4de6d\n", true)

	rec := do(srv, http.MethodGet, "/api/v1/apps/telemetry%20agent/machine-id", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var resp map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if resp["MachineID"] != "e2e8fd79-9298-4f04-a785-aa68fdbb7fc4" {
		t.Errorf("unexpected MachineID %q", resp["MachineID"])
	}
}

func TestServer_Backup(t *testing.T) {
	srv := newTestServer(t, "fed6b2924c424cf1b9a322f606b4de6d\n")

	rec := do(srv, http.MethodPost, "/api/admin/backup", "", map[string]string{"X-API-Key": adminKey})
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
}
