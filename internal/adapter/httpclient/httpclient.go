// Package httpclient builds the retrying HTTP clients used by the outbound
// adapters (tokenizer sidecar, language model API).
package httpclient

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/hashicorp/go-retryablehttp"
)

const (
	DefaultRetryMax     = 3
	DefaultTimeout      = 10 * time.Second
	MaxIdleConns        = 100
	MaxIdleConnsPerHost = 20
	IdleConnTimeout     = 30 * time.Second
)

// Options configure New. Zero values fall back to the defaults above.
type Options struct {
	RetryMax int
	Timeout  time.Duration
	Logger   *slog.Logger
}

// New returns a standard *http.Client backed by a retrying transport.
// Bad requests and cancelled contexts are never retried.
func New(opts Options) *http.Client {
	if opts.RetryMax <= 0 {
		opts.RetryMax = DefaultRetryMax
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}

	c := &retryablehttp.Client{
		HTTPClient: &http.Client{
			Timeout: opts.Timeout,
			Transport: &http.Transport{
				Proxy:                 http.ProxyFromEnvironment,
				MaxIdleConns:          MaxIdleConns,
				MaxIdleConnsPerHost:   MaxIdleConnsPerHost,
				IdleConnTimeout:       IdleConnTimeout,
				ResponseHeaderTimeout: opts.Timeout,
			},
		},
		RetryWaitMin: 200 * time.Millisecond,
		RetryWaitMax: 2 * time.Second,
		RetryMax:     opts.RetryMax,
		Backoff:      retryablehttp.DefaultBackoff,
		CheckRetry:   IgnoreBadRequestRetryPolicy,
		ErrorHandler: retryablehttp.PassthroughErrorHandler,
	}
	if opts.Logger != nil {
		c.Logger = opts.Logger
	}
	return c.StandardClient()
}

// IgnoreBadRequestRetryPolicy defers to the default policy except that a
// 400 response or a done context stops retrying.
func IgnoreBadRequestRetryPolicy(ctx context.Context, resp *http.Response, err error) (bool, error) {
	if ctx.Err() != nil {
		return false, ctx.Err()
	}
	if resp != nil && resp.StatusCode == http.StatusBadRequest {
		return false, err
	}
	shouldRetry, _ := retryablehttp.DefaultRetryPolicy(ctx, resp, err)
	return shouldRetry, nil
}
