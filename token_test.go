package homelab

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kataras/homelab-tools/pkg/cwp"
)

func newConsole(t *testing.T, status int, body string) (*httptest.Server, *int) {
	t.Helper()
	calls := new(int)
	srv := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*calls++
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, cwp.AuthenticatePath, r.URL.Path)

		var creds map[string]string
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&creds))
		assert.Equal(t, "key", creds["username"])
		assert.Equal(t, "secret", creds["password"])

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv, calls
}

func TestGenerateToken(t *testing.T) {
	srv, calls := newConsole(t, 200, `{"token": "abc"}`)

	// The test server uses a self-signed certificate, accepted because
	// verification is off unless Secure is set.
	token, err := GenerateToken(context.Background(), TokenOptions{
		URL:          srv.URL,
		AccessKey:    "key",
		AccessSecret: "secret",
	})
	require.NoError(t, err)
	assert.Equal(t, "abc", token)
	assert.Equal(t, 1, *calls)
}

func TestGenerateToken_Unauthorized(t *testing.T) {
	srv, calls := newConsole(t, 401, `{"error": "unauthorized"}`)
	logger := &recordLogger{}

	token, err := GenerateToken(context.Background(), TokenOptions{
		URL:          srv.URL,
		AccessKey:    "key",
		AccessSecret: "secret",
		Logger:       logger,
	})
	require.Error(t, err)
	assert.Empty(t, token)
	assert.Equal(t, 1, *calls)

	var statusErr *cwp.StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, 401, statusErr.Status)
	assert.Contains(t, logger.String(), "ERROR unable to acquire token, status code: 401")
}

func TestGenerateToken_SecureRejectsSelfSigned(t *testing.T) {
	srv, calls := newConsole(t, 200, `{"token": "abc"}`)

	_, err := GenerateToken(context.Background(), TokenOptions{
		URL:          srv.URL,
		AccessKey:    "key",
		AccessSecret: "secret",
		Secure:       true,
	})
	require.Error(t, err)
	assert.Equal(t, 0, *calls)
}

func TestGenerateToken_MissingURL(t *testing.T) {
	_, err := GenerateToken(context.Background(), TokenOptions{AccessKey: "key", AccessSecret: "secret"})
	assert.Error(t, err)
}
