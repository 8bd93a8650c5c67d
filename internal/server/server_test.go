package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "github.com/benchkit/benchkit/internal/testhelper"
)

func newTestServer(t *testing.T) (*Server, string) {
	t.Helper()

	dir := t.TempDir()
	piqa := `[
  {
    "goal": "Open a jar",
    "sol1": "Twist the lid",
    "sol2": "Push the lid",
    "label": "0"
  }
]`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "piqa.json"), []byte(piqa), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignore me"), 0644))

	config := DefaultConfig()
	config.DataDir = dir

	srv, err := New(config)
	require.NoError(t, err)
	return srv, dir
}

func TestNewRequiresReadableDataDir(t *testing.T) {
	config := DefaultConfig()
	config.DataDir = filepath.Join(t.TempDir(), "missing")

	_, err := New(config)
	assert.Error(t, err)
}

func TestHealthCheck(t *testing.T) {
	srv, _ := newTestServer(t)

	req := httptest.NewRequest("GET", "/health", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "healthy", body["status"])
}

func TestListDatasets(t *testing.T) {
	srv, _ := newTestServer(t)

	req := httptest.NewRequest("GET", "/api/v1/datasets", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var index DatasetIndex
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &index))

	// Only .json files show up in the index
	require.Equal(t, 1, index.Count)
	assert.Equal(t, "piqa", index.Datasets[0].Name)
	assert.Equal(t, 1, index.Datasets[0].Records)
}

func TestGetDataset(t *testing.T) {
	srv, _ := newTestServer(t)

	req := httptest.NewRequest("GET", "/api/v1/datasets/piqa", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var records []map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &records))
	require.Len(t, records, 1)
	assert.Equal(t, "Open a jar", records[0]["goal"])
}

func TestGetDatasetNotFound(t *testing.T) {
	srv, _ := newTestServer(t)

	req := httptest.NewRequest("GET", "/api/v1/datasets/hellaswag", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestMetricsEndpoint(t *testing.T) {
	srv, _ := newTestServer(t)

	// Generate one request so counters exist
	req := httptest.NewRequest("GET", "/health", nil)
	srv.Handler().ServeHTTP(httptest.NewRecorder(), req)

	req = httptest.NewRequest("GET", "/metrics", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "benchkit_http_requests_total")
}

func TestCORSHeaders(t *testing.T) {
	srv, _ := newTestServer(t)

	req := httptest.NewRequest("GET", "/api/v1/datasets", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}
