package main

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePlatform struct {
	mu   sync.Mutex
	hits map[string]int
}

func newFakePlatform(t *testing.T) *httptest.Server {
	t.Helper()

	f := &fakePlatform{hits: make(map[string]int)}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		f.hits[r.URL.Path]++
		n := f.hits[r.URL.Path]
		f.mu.Unlock()

		switch {
		case r.Method == http.MethodPost && r.URL.Path == "/gdc/exporter/executor":
			w.WriteHeader(http.StatusCreated)
			_, _ = w.Write([]byte(`{"uri":"/gdc/exporter/result/r1"}`))
		case r.URL.Path == "/gdc/exporter/result/r1" && n < 2:
			w.WriteHeader(http.StatusAccepted)
		case r.URL.Path == "/gdc/exporter/result/r1":
			_, _ = w.Write([]byte("a,b\n1,2\n"))
		case r.URL.Path == "/gdc/app/one":
			_, _ = w.Write([]byte("one"))
		case r.URL.Path == "/gdc/app/two" && n < 3:
			w.WriteHeader(http.StatusAccepted)
		case r.URL.Path == "/gdc/app/two":
			_, _ = w.Write([]byte("two"))
		case r.Method == http.MethodPost && r.URL.Path == "/gdc/md/p1/ldm/manage2":
			_, _ = w.Write([]byte(`{"entries":[{"link":"/gdc/md/p1/tasks/t1/status","category":"tasks-status"}]}`))
		case r.URL.Path == "/gdc/md/p1/tasks/t1/status":
			_, _ = w.Write([]byte(`{"wTaskStatus":{"status":"OK"}}`))
		default:
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"error":{"message":"not found","requestId":"rid-404"}}`))
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()

	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func baseArgs(t *testing.T, srv *httptest.Server) []string {
	return []string{
		"--base-url", srv.URL,
		"--poll-interval", "1ms",
		"--fail-log", filepath.Join(t.TempDir(), "fail.log"),
	}
}

func TestPollCommandSavesBodies(t *testing.T) {
	srv := newFakePlatform(t)
	dir := t.TempDir()

	args := append(baseArgs(t, srv), "poll", "/gdc/app/one", "/gdc/app/two", "--output-dir", dir, "--concurrency", "2")
	out, err := runCLI(t, args...)
	require.NoError(t, err, out)

	one, err := os.ReadFile(filepath.Join(dir, "one"))
	require.NoError(t, err)
	assert.Equal(t, "one", string(one))

	two, err := os.ReadFile(filepath.Join(dir, "two"))
	require.NoError(t, err)
	assert.Equal(t, "two", string(two))

	assert.Contains(t, out, "Finished")
}

func TestPollCommandRecordsFailures(t *testing.T) {
	srv := newFakePlatform(t)
	failLog := filepath.Join(t.TempDir(), "fail.log")

	_, err := runCLI(t, "--base-url", srv.URL, "--poll-interval", "1ms", "--fail-log", failLog,
		"poll", "/gdc/app/one", "/gdc/app/missing")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "batch completed with 1 errors")

	content, err := os.ReadFile(failLog)
	require.NoError(t, err)
	assert.Contains(t, string(content), "target=/gdc/app/missing")
	assert.Contains(t, string(content), "request-id=rid-404")
}

func TestExportCommand(t *testing.T) {
	srv := newFakePlatform(t)
	target := filepath.Join(t.TempDir(), "out", "report.csv")
	metrics := filepath.Join(t.TempDir(), "poll.prom")

	args := append(baseArgs(t, srv), "--metrics-file", metrics,
		"export", "--report", "/gdc/md/p1/obj/42", "--format", "csv", "-o", target)
	out, err := runCLI(t, args...)
	require.NoError(t, err, out)

	data, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, "a,b\n1,2\n", string(data))

	prom, err := os.ReadFile(metrics)
	require.NoError(t, err)
	assert.Contains(t, string(prom), "analytics_poll_attempts_total")
}

func TestExportCommandRejectsFormat(t *testing.T) {
	srv := newFakePlatform(t)

	args := append(baseArgs(t, srv), "export", "--report", "/gdc/md/p1/obj/42", "--format", "docx")
	_, err := runCLI(t, args...)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported export format")
}

func TestModelUpdateCommand(t *testing.T) {
	srv := newFakePlatform(t)
	maql := filepath.Join(t.TempDir(), "model.maql")
	require.NoError(t, os.WriteFile(maql, []byte("CREATE DATASET {dataset.orders};\n"), 0o600))

	args := append(baseArgs(t, srv), "model", "update", "--project", "p1", "--maql", maql)
	out, err := runCLI(t, args...)
	require.NoError(t, err, out)
	assert.Contains(t, out, "Task finished")
	assert.True(t, strings.Contains(out, "status=OK"), out)
}

func TestInvalidConfigFails(t *testing.T) {
	_, err := runCLI(t, "--base-url", "not a url", "poll", "/gdc/app/one")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid configuration")
}
