package homelab

import (
	"context"
	"errors"
	"time"

	"github.com/kataras/homelab-tools/pkg/cwp"
)

// TokenOptions configures a token request.
type TokenOptions struct {
	URL          string // console base URL, required
	AccessKey    string
	AccessSecret string
	Secure       bool          // verify the console's TLS certificate
	Timeout      time.Duration // zero = 60s
	Verbose      bool
	Logger       Logger // nil = no logging
}

// GenerateToken exchanges the access key pair for a console API token.
// The request is sent exactly once.
func GenerateToken(ctx context.Context, opts TokenOptions) (string, error) {
	log := logs{opts.Logger}

	if opts.URL == "" {
		return "", errors.New("console URL is not set")
	}

	clientOpts := []cwp.Option{
		cwp.WithLogger(opts.Logger),
		cwp.WithVerbose(opts.Verbose),
		cwp.WithInsecure(!opts.Secure),
	}
	if opts.Timeout > 0 {
		clientOpts = append(clientOpts, cwp.WithTimeout(opts.Timeout))
	}

	token, err := cwp.NewClient(opts.URL, clientOpts...).Authenticate(ctx, opts.AccessKey, opts.AccessSecret)
	if err != nil {
		log.error("%v", err)
		return "", err
	}

	log.info("Authentication token acquired successfully.")
	return token, nil
}
