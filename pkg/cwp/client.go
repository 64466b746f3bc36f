// Package cwp exchanges an access key pair for an API token at a
// compute-workload-protection console's authentication endpoint.
package cwp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/kataras/homelab-tools/internal/httpx"
)

// AuthenticatePath is appended to the console URL.
const AuthenticatePath = "/api/v1/authenticate"

const defaultTimeout = 60 * time.Second

// ErrEmptyToken is returned when the console accepts the credentials but the
// response carries no token.
var ErrEmptyToken = errors.New("authentication succeeded but no token was returned")

// StatusError is returned when the console answers with anything but 200.
type StatusError struct {
	Status int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unable to acquire token, status code: %d", e.Status)
}

// Client talks to a single console.
type Client struct {
	http *resty.Client
}

// Option configures a Client.
type Option func(*options)

type options struct {
	logger   httpx.Logger
	verbose  bool
	timeout  time.Duration
	insecure bool
}

// WithLogger routes HTTP diagnostics to l.
func WithLogger(l httpx.Logger) Option { return func(o *options) { o.logger = l } }

// WithVerbose logs the response through the logger.
func WithVerbose(v bool) Option { return func(o *options) { o.verbose = v } }

// WithTimeout overrides the 60 second request ceiling.
func WithTimeout(d time.Duration) Option { return func(o *options) { o.timeout = d } }

// WithInsecure controls TLS certificate verification. Consoles are commonly
// deployed with self-signed certificates, so verification is off by default.
func WithInsecure(v bool) Option { return func(o *options) { o.insecure = v } }

// NewClient creates a client for the console at baseURL, the scheme and host
// the authentication path is appended to.
// TLS certificates are not verified unless WithInsecure(false) is given, and
// requests time out after 60 seconds. Nothing is sent until Authenticate is
// called.
func NewClient(baseURL string, opts ...Option) *Client {
	o := options{timeout: defaultTimeout, insecure: true}
	for _, opt := range opts {
		opt(&o)
	}

	c := httpx.New(httpx.Config{
		BaseURL:  strings.TrimRight(baseURL, "/"),
		Timeout:  o.timeout,
		Insecure: o.insecure,
		Verbose:  o.verbose,
		Logger:   o.logger,
	})

	return &Client{http: c}
}

type authRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type authResponse struct {
	Token string `json:"token"`
}

// Authenticate posts the key pair as {"username", "password"} to
// AuthenticatePath and returns the token from the response body.
// The request is sent exactly once and is never retried. Only status 200
// counts as success. Any other status returns a *StatusError, and a 200 without
// a token returns ErrEmptyToken. Transport failures such as refused
// connections, timeouts or TLS errors are wrapped and returned as is.
func (c *Client) Authenticate(ctx context.Context, accessKey, accessSecret string) (string, error) {
	res, err := c.http.R().
		SetContext(ctx).
		SetHeader("Accept", "application/json; charset=UTF-8").
		SetHeader("Content-Type", "application/json").
		SetBody(authRequest{Username: accessKey, Password: accessSecret}).
		Post(AuthenticatePath)
	if err != nil {
		return "", fmt.Errorf("an error occurred during authentication: %w", err)
	}

	if res.StatusCode() != http.StatusOK {
		return "", &StatusError{Status: res.StatusCode()}
	}

	var body authResponse
	if err := json.Unmarshal(res.Body(), &body); err != nil {
		return "", fmt.Errorf("failed to parse authentication response: %w", err)
	}
	if body.Token == "" {
		return "", ErrEmptyToken
	}

	return body.Token, nil
}
