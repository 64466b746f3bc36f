// Package httpx builds the resty clients shared by the API packages so that
// timeouts, TLS policy, user agent and request logging are set in one place.
package httpx

import (
	"crypto/tls"
	"time"

	"github.com/go-resty/resty/v2"
)

const defaultTimeout = 30 * time.Second

// Logger is the subset of the root homelab.Logger the client needs.
type Logger interface {
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
}

// Config holds the HTTP policy of a single API client.
type Config struct {
	BaseURL   string
	Timeout   time.Duration // zero means defaultTimeout
	Insecure  bool          // skip TLS certificate verification
	UserAgent string
	Verbose   bool   // log every response
	Logger    Logger // nil = silent
}

// New returns a resty client configured from cfg. Requests are never retried.
func New(cfg Config) *resty.Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	c := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetTimeout(timeout).
		SetRetryCount(0).
		SetLogger(restyLogger{cfg.Logger})

	if cfg.UserAgent != "" {
		c.SetHeader("User-Agent", cfg.UserAgent)
	}

	if cfg.Insecure {
		c.SetTLSClientConfig(&tls.Config{InsecureSkipVerify: true}) //nolint:gosec
	}

	if cfg.Verbose && cfg.Logger != nil {
		c.OnAfterResponse(func(_ *resty.Client, res *resty.Response) error {
			cfg.Logger.Infof("HTTP %s %s | %d | %s", res.Request.Method, res.Request.URL, res.StatusCode(), res.Time())
			return nil
		})
	}

	return c
}

// restyLogger routes resty's own diagnostics to a Logger.
type restyLogger struct {
	l Logger
}

func (r restyLogger) Errorf(format string, v ...any) {
	if r.l != nil {
		r.l.Errorf(format, v...)
	}
}

func (r restyLogger) Warnf(format string, v ...any) {
	if r.l != nil {
		r.l.Warnf(format, v...)
	}
}

func (r restyLogger) Debugf(format string, v ...any) {
	if r.l != nil {
		r.l.Infof(format, v...)
	}
}
