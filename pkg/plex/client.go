package plex

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"

	"github.com/kataras/homelab-tools/internal/httpx"
)

const (
	// DefaultHost is the address of a Plex server running on the local machine.
	DefaultHost = "http://localhost:32400"

	defaultPageSize = 100
	defaultTimeout  = 30 * time.Second

	product = "homelab-tools"
)

// Client is a read-only Plex Media Server API client.
type Client struct {
	http     *resty.Client
	pageSize int
}

// Option configures a Client.
type Option func(*options)

type options struct {
	logger   httpx.Logger
	verbose  bool
	pageSize int
	timeout  time.Duration
	version  string
}

// WithLogger routes HTTP diagnostics to l.
func WithLogger(l httpx.Logger) Option { return func(o *options) { o.logger = l } }

// WithVerbose logs every response through the logger.
func WithVerbose(v bool) Option { return func(o *options) { o.verbose = v } }

// WithPageSize sets how many items are requested per page when listing a section.
func WithPageSize(n int) Option { return func(o *options) { o.pageSize = n } }

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option { return func(o *options) { o.timeout = d } }

// WithVersion sets the X-Plex-Version and User-Agent version.
func WithVersion(v string) Option { return func(o *options) { o.version = v } }

// NewClient creates a client for the server at baseURL, authenticating every
// request with token. An empty token sends no X-Plex-Token header, which only
// works against servers that allow unauthenticated LAN access.
// Each client identifies itself to the server with a fresh UUID as
// X-Plex-Client-Identifier, plus the product name and version. Requests ask for
// JSON and time out after 30 seconds unless WithTimeout says otherwise. Failed
// requests are never retried.
func NewClient(baseURL, token string, opts ...Option) *Client {
	o := options{pageSize: defaultPageSize, timeout: defaultTimeout, version: "dev"}
	for _, opt := range opts {
		opt(&o)
	}
	if o.pageSize <= 0 {
		o.pageSize = defaultPageSize
	}

	c := httpx.New(httpx.Config{
		BaseURL:   strings.TrimRight(baseURL, "/"),
		Timeout:   o.timeout,
		UserAgent: product + "/" + o.version,
		Verbose:   o.verbose,
		Logger:    o.logger,
	})
	c.SetHeaders(map[string]string{
		"Accept":                   "application/json",
		"X-Plex-Client-Identifier": uuid.NewString(),
		"X-Plex-Product":           product,
		"X-Plex-Version":           o.version,
	})
	if token != "" {
		c.SetHeader("X-Plex-Token", token)
	}

	return &Client{http: c, pageSize: o.pageSize}
}

// APIError is returned when the server answers with a non-200 status.
type APIError struct {
	Status int
	Path   string
	Body   string
}

func (e *APIError) Error() string {
	if e.Status == http.StatusUnauthorized {
		return fmt.Sprintf("GET %s: unauthorized (check the Plex token)", e.Path)
	}
	return fmt.Sprintf("GET %s: API request failed with status %d: %s", e.Path, e.Status, e.Body)
}

// NormalizeHost turns "host:port" or a full URL into a base URL with a scheme.
// The scheme defaults to http, which is what a LAN Plex server speaks.
func NormalizeHost(host string) (string, error) {
	host = strings.TrimSpace(host)
	if host == "" {
		return "", fmt.Errorf("empty Plex host")
	}
	if !strings.Contains(host, "://") {
		host = "http://" + host
	}

	u, err := url.Parse(host)
	if err != nil {
		return "", fmt.Errorf("invalid Plex host %q: %w", host, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", fmt.Errorf("invalid Plex host %q: unsupported scheme %q", host, u.Scheme)
	}
	if u.Host == "" {
		return "", fmt.Errorf("invalid Plex host %q: missing host", host)
	}

	return strings.TrimRight(u.String(), "/"), nil
}

// Identity fetches the server root, which doubles as a connection and
// credential check.
func (c *Client) Identity(ctx context.Context) (*Identity, error) {
	mc, err := c.get(ctx, "/", nil)
	if err != nil {
		return nil, err
	}
	return &Identity{
		FriendlyName:      mc.FriendlyName,
		MachineIdentifier: mc.MachineIdentifier,
		Version:           mc.Version,
	}, nil
}

// Sections lists the library sections in server order.
func (c *Client) Sections(ctx context.Context) ([]Section, error) {
	mc, err := c.get(ctx, "/library/sections", nil)
	if err != nil {
		return nil, err
	}
	return mc.Directory, nil
}

// AllItems returns every top-level item of a section: movies for a movie
// section, series (not seasons or episodes) for a show section.
// Items are requested page by page with X-Plex-Container-Start and
// X-Plex-Container-Size until totalSize items were read or the server returns
// an empty page. Servers that omit totalSize are treated as having returned
// the whole section in one response.
// A failure on any page discards what was read so far and returns the error,
// an *APIError for non-200 responses.
func (c *Client) AllItems(ctx context.Context, sectionKey string) ([]Metadata, error) {
	path := "/library/sections/" + url.PathEscape(sectionKey) + "/all"

	var items []Metadata
	for start := 0; ; {
		mc, err := c.get(ctx, path, map[string]string{
			"X-Plex-Container-Start": strconv.Itoa(start),
			"X-Plex-Container-Size":  strconv.Itoa(c.pageSize),
		})
		if err != nil {
			return nil, err
		}

		items = append(items, mc.Metadata...)
		start += len(mc.Metadata)

		total := mc.TotalSize
		if total == 0 {
			// Servers that ignore paging return everything at once without totalSize.
			total = mc.Size
		}
		if len(mc.Metadata) == 0 || start >= total {
			break
		}
	}

	return items, nil
}

func (c *Client) get(ctx context.Context, path string, query map[string]string) (*MediaContainer, error) {
	res, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(query).
		Get(path)
	if err != nil {
		return nil, fmt.Errorf("GET %s: failed to execute request: %w", path, err)
	}

	if res.StatusCode() != http.StatusOK {
		return nil, &APIError{Status: res.StatusCode(), Path: path, Body: strings.TrimSpace(res.String())}
	}

	var body Response
	if err := json.Unmarshal(res.Body(), &body); err != nil {
		return nil, fmt.Errorf("GET %s: failed to parse response: %w", path, err)
	}

	return &body.MediaContainer, nil
}
