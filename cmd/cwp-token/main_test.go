package main

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func unsetenv(t *testing.T, key string) {
	t.Helper()
	t.Setenv(key, "")
	require.NoError(t, os.Unsetenv(key))
}

func newConsole(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/v1/authenticate" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestExecute(t *testing.T) {
	tests := []struct {
		name       string
		status     int
		body       string
		unset      string // environment variable to remove
		wantCode   int
		wantStdout string
	}{
		{
			name:       "token printed on 200",
			status:     200,
			body:       `{"token": "abc"}`,
			wantCode:   0,
			wantStdout: "abc\n",
		},
		{
			name:     "unauthorized",
			status:   401,
			body:     `{"error": "bad credentials"}`,
			wantCode: 1,
		},
		{
			name:     "empty token",
			status:   200,
			body:     `{"token": ""}`,
			wantCode: 1,
		},
		{
			name:     "missing access key",
			status:   200,
			body:     `{"token": "abc"}`,
			unset:    "pcIdentity",
			wantCode: 1,
		},
		{
			name:     "missing access secret",
			status:   200,
			body:     `{"token": "abc"}`,
			unset:    "pcSecret",
			wantCode: 1,
		},
		{
			name:     "missing console url",
			status:   200,
			body:     `{"token": "abc"}`,
			unset:    "tlUrl",
			wantCode: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := newConsole(t, tt.status, tt.body)
			t.Setenv("tlUrl", srv.URL)
			t.Setenv("pcIdentity", "key")
			t.Setenv("pcSecret", "secret")
			if tt.unset != "" {
				unsetenv(t, tt.unset)
			}

			var stdout, stderr bytes.Buffer
			code := execute([]string{}, &stdout, &stderr)

			assert.Equal(t, tt.wantCode, code, "stderr: %s", stderr.String())
			assert.Equal(t, tt.wantStdout, stdout.String())
		})
	}
}

func TestExecute_UnreachableConsole(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	t.Setenv("tlUrl", url)
	t.Setenv("pcIdentity", "key")
	t.Setenv("pcSecret", "secret")

	var stdout, stderr bytes.Buffer
	assert.Equal(t, 1, execute([]string{}, &stdout, &stderr))
	assert.Empty(t, stdout.String())
}

func TestExecute_Version(t *testing.T) {
	var stdout, stderr bytes.Buffer
	assert.Equal(t, 0, execute([]string{"version"}, &stdout, &stderr))
	assert.Contains(t, stdout.String(), "cwp-token version ")
}

func TestExecute_UnknownFlag(t *testing.T) {
	var stdout, stderr bytes.Buffer
	assert.Equal(t, 1, execute([]string{"--nope"}, &stdout, &stderr))
	assert.Empty(t, stdout.String())
	assert.Contains(t, stderr.String(), "unknown flag")
}
