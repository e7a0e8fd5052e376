// Package network builds the http clients used to talk to the upstream web api.
package network

import (
	"context"
	"net"
	"net/http"
	"time"
)

const (
	DefaultTimeout = 15 * time.Second
	// NoTimeout leaves request deadlines entirely to the caller's context.
	NoTimeout         = time.Duration(-1)
	maxIdleConns      = 16
	idleConnTimeout   = 90 * time.Second
	handshakeTimeout  = 10 * time.Second
	headerWaitTimeout = 10 * time.Second
)

// NewHTTPClient creates a http client with sane transport level timeouts. A zero timeout
// falls back to DefaultTimeout, a negative one disables both the overall request timeout and
// the response header wait.
func NewHTTPClient(timeout time.Duration) *http.Client {
	if timeout == 0 {
		timeout = DefaultTimeout
	}

	headerWait := headerWaitTimeout
	if timeout < 0 {
		timeout = 0
		headerWait = 0
	}

	return &http.Client{
		Timeout: timeout,
		Transport: &http.Transport{
			Proxy: http.ProxyFromEnvironment,
			DialContext: func(ctx context.Context, network string, addr string) (net.Conn, error) {
				return (&net.Dialer{Timeout: handshakeTimeout}).DialContext(ctx, network, addr)
			},
			MaxIdleConns:          maxIdleConns,
			IdleConnTimeout:       idleConnTimeout,
			TLSHandshakeTimeout:   handshakeTimeout,
			ResponseHeaderTimeout: headerWait,
			ExpectContinueTimeout: time.Second,
		},
	}
}
