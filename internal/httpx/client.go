// Package httpx builds the tuned net/http client used for calls to the
// generation backend.
package httpx

import (
	"net/http"
	"time"
)

const (
	// DefaultTimeout bounds a whole request including body read. The
	// generation endpoint can take a while, so this is generous.
	DefaultTimeout = 120 * time.Second

	defaultMaxIdleConns        = 100
	defaultMaxIdleConnsPerHost = 10
	defaultIdleConnTimeout     = 90 * time.Second
	defaultTLSHandshakeTimeout = 10 * time.Second
)

// NewClient creates an HTTP client with standardized transport settings.
// A timeout of zero falls back to DefaultTimeout.
func NewClient(timeout time.Duration) *http.Client {
	if timeout == 0 {
		timeout = DefaultTimeout
	}

	return &http.Client{
		Timeout: timeout,
		Transport: &http.Transport{
			MaxIdleConns:        defaultMaxIdleConns,
			MaxIdleConnsPerHost: defaultMaxIdleConnsPerHost,
			IdleConnTimeout:     defaultIdleConnTimeout,
			TLSHandshakeTimeout: defaultTLSHandshakeTimeout,
		},
	}
}
