package cmd_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	// testBinaryName is the name of the test binary for E2E tests.
	testBinaryName = "http-pprint-test"
)

// TestMain builds the binary before running E2E tests.
func TestMain(m *testing.M) {
	// Build the binary for testing.
	//nolint:noctx // TestMain doesn't have access to context, and build is needed before tests run.
	buildCmd := exec.Command("go", "build", "-o", testBinaryName, "../.")
	if err := buildCmd.Run(); err != nil {
		os.Exit(1)
	}

	// Run tests.
	code := m.Run()

	// Cleanup.
	_ = os.Remove(testBinaryName)

	os.Exit(code)
}

// newE2EServer serves a redirect to a JSON document and a failing endpoint.
func newE2EServer(t *testing.T) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/redirect", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/json", http.StatusFound)
	})
	mux.HandleFunc("/json", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"method":"` + r.Method + `","agent":"` + r.UserAgent() + `"}`))
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	return server
}

// runBinary runs the test binary in a fresh directory so no configuration file is picked up.
func runBinary(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	binaryPath, err := filepath.Abs(testBinaryName)
	require.NoError(t, err)

	//nolint:gosec // Test binary name is a constant, not user input.
	cmd := exec.CommandContext(ctx, binaryPath, args...)
	cmd.Dir = t.TempDir()

	var stdout, stderr strings.Builder

	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err = cmd.Run()

	return stdout.String(), stderr.String(), err
}

// TestE2E_BlockingRedirect tests the redirect summary in blocking mode.
func TestE2E_BlockingRedirect(t *testing.T) {
	t.Parallel()

	server := newE2EServer(t)

	stdout, stderr, err := runBinary(t, "--output-style", "plain", server.URL+"/redirect")
	require.NoError(t, err, stderr)

	assert.Contains(t, stdout, "Request was redirected!")
	assert.Contains(t, stdout, "------ ORIGINAL REQUEST ------")
	assert.Contains(t, stdout, "GET /redirect HTTP/1.1")
	assert.Contains(t, stdout, "HTTP/1.1 302 Found")
	assert.Contains(t, stdout, "------ REDIRECTED RESPONSE ------")
	assert.Contains(t, stdout, `"agent": "http-pprint/`)
	assert.NotContains(t, stdout, "\x1b[", "Plain output must not be styled")
}

// TestE2E_CooperativePost tests a cooperative exchange with request flags.
func TestE2E_CooperativePost(t *testing.T) {
	t.Parallel()

	server := newE2EServer(t)

	stdout, stderr, err := runBinary(t,
		"--mode", "cooperative",
		"--output-style", "plain",
		"--no-follow",
		"-H", "User-Agent: e2e/1.0",
		"-d", "name=value",
		server.URL+"/json")
	require.NoError(t, err, stderr)

	assert.Contains(t, stdout, "Request was not redirected")
	assert.Contains(t, stdout, "POST /json HTTP/1.1")
	assert.Contains(t, stdout, "name=value")
	assert.Contains(t, stdout, `"method": "POST"`)
	assert.Contains(t, stdout, `"agent": "e2e/1.0"`)
}

// TestE2E_FailedURL tests that a failed URL is reported and the remaining URLs are still printed.
func TestE2E_FailedURL(t *testing.T) {
	t.Parallel()

	server := newE2EServer(t)

	stdout, stderr, err := runBinary(t, "--output-style", "plain", "http://127.0.0.1:1/unreachable", server.URL+"/json")
	require.Error(t, err)

	var exitErr *exec.ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, 1, exitErr.ExitCode())

	assert.Contains(t, stdout, "GET /json HTTP/1.1")
	assert.Contains(t, stderr, "unreachable")
}

// TestE2E_ConfigInit tests writing the default configuration and using it.
func TestE2E_ConfigInit(t *testing.T) {
	t.Parallel()

	configPath := filepath.Join(t.TempDir(), "pprint.yaml")

	_, stderr, err := runBinary(t, "config", "init", configPath)
	require.NoError(t, err, stderr)

	content, err := os.ReadFile(configPath)
	require.NoError(t, err)
	assert.Contains(t, string(content), "mode: blocking")

	server := newE2EServer(t)

	stdout, stderr, err := runBinary(t, "--config", configPath, "--output-style", "plain", server.URL+"/json")
	require.NoError(t, err, stderr)
	assert.Contains(t, stdout, "HTTP/1.1 200 OK")
}

// TestE2E_MissingConfig tests that an explicitly named configuration file must exist.
func TestE2E_MissingConfig(t *testing.T) {
	t.Parallel()

	_, stderr, err := runBinary(t, "--config", filepath.Join(t.TempDir(), "missing.yaml"), "https://example.com")
	require.Error(t, err)
	assert.Contains(t, stderr, "failed to load configuration")
}
