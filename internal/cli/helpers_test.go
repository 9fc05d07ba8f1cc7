package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

// fakeService emulates the identity, drive-search, and sheets
// endpoints behind one server.
type fakeService struct {
	t  *testing.T
	mu sync.Mutex

	logID      string     // drive search result; "" means no log exists yet
	appended   [][]string // rows received by the append endpoint
	loadValues [][]string // rows served to LoadAll
	validToken string
}

func (s *fakeService) server() *httptest.Server {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /userinfo", func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		defer s.mu.Unlock()
		if r.Header.Get("Authorization") != "Bearer "+s.validToken {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"error":"invalid_token"}`))
			return
		}
		json.NewEncoder(w).Encode(map[string]string{"email": "dev@example.com", "name": "Dev"})
	})

	mux.HandleFunc("GET /files", func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		defer s.mu.Unlock()
		files := []map[string]string{}
		if s.logID != "" {
			files = append(files, map[string]string{"id": s.logID, "name": "Polymath Protocol Data"})
		}
		json.NewEncoder(w).Encode(map[string]any{"files": files})
	})

	mux.HandleFunc("POST /spreadsheets", func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.logID = "sheet-test"
		json.NewEncoder(w).Encode(map[string]string{"spreadsheetId": s.logID})
	})

	mux.HandleFunc("POST /spreadsheets/{id}/values/{range}", func(w http.ResponseWriter, r *http.Request) {
		var payload struct {
			Values [][]string `json:"values"`
		}
		require.NoError(s.t, json.NewDecoder(r.Body).Decode(&payload))
		s.mu.Lock()
		s.appended = append(s.appended, payload.Values...)
		s.mu.Unlock()
		w.Write([]byte(`{}`))
	})

	mux.HandleFunc("GET /spreadsheets/{id}/values/{range}", func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		defer s.mu.Unlock()
		json.NewEncoder(w).Encode(map[string]any{"values": s.loadValues})
	})

	srv := httptest.NewServer(mux)
	s.t.Cleanup(srv.Close)
	return srv
}

func (s *fakeService) appendedRows() [][]string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([][]string, len(s.appended))
	copy(out, s.appended)
	return out
}

func (s *fakeService) setLoadValues(values [][]string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loadValues = values
}

// fixture is one tracker installation: a data dir, a config file, and
// a fake provider. State persists across command invocations, like
// separate runs of the binary against the same home.
type fixture struct {
	t       *testing.T
	cfgPath string
	dataDir string
	service *fakeService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	service := &fakeService{t: t, validToken: "good-token"}
	srv := service.server()

	dir := t.TempDir()
	dataDir := filepath.Join(dir, "data")
	cfgPath := filepath.Join(dir, "config.yaml")
	cfg := fmt.Sprintf(
		"data_dir: %s\ndrive_base_url: %s\nsheets_base_url: %s\nuserinfo_url: %s/userinfo\n",
		dataDir, srv.URL, srv.URL, srv.URL)
	require.NoError(t, os.WriteFile(cfgPath, []byte(cfg), 0o644))

	return &fixture{t: t, cfgPath: cfgPath, dataDir: dataDir, service: service}
}

// run executes one CLI invocation and returns stdout.
func (f *fixture) run(args ...string) (string, error) {
	f.t.Helper()
	return f.runWithStdin("", args...)
}

func (f *fixture) runWithStdin(stdin string, args ...string) (string, error) {
	f.t.Helper()
	cmd := NewRootCommand()
	out := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(append([]string{"--config", f.cfgPath}, args...))
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

// runJSON executes a command with --format json and decodes the data
// payload into target.
func (f *fixture) runJSON(target any, args ...string) error {
	f.t.Helper()
	out, err := f.run(append(args, "--format", "json")...)
	if err != nil {
		return err
	}
	var resp struct {
		Status string          `json:"status"`
		Data   json.RawMessage `json:"data"`
	}
	require.NoError(f.t, json.Unmarshal([]byte(out), &resp))
	require.Equal(f.t, "ok", resp.Status)
	if target != nil {
		require.NoError(f.t, json.Unmarshal(resp.Data, target))
	}
	return nil
}

// login establishes a session with the fake provider.
func (f *fixture) login() {
	f.t.Helper()
	_, err := f.run("login", "--token", "good-token")
	require.NoError(f.t, err)
}
