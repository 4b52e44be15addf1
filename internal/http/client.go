// Package http builds the shared HTTP client used for all backend calls.
package http

import (
	"crypto/tls"
	"net"
	nethttp "net/http"
	"os"

	"golang.org/x/net/http2"

	"github.com/aiscreen-io/canvasctl/internal/constants"
)

// NewClient creates the HTTP client shared by all API calls.
//
// Key characteristics:
//   - Proxy settings from the environment (HTTP_PROXY, HTTPS_PROXY, NO_PROXY)
//   - HTTP/2 with a runtime toggle (DISABLE_HTTP2 env var)
//   - Connection reuse across requests
//   - 10 second per-request timeout
func NewClient() *nethttp.Client {
	tr := &nethttp.Transport{
		Proxy: nethttp.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   constants.RequestTimeout,
			KeepAlive: constants.HTTPIdleConnTimeout,
		}).DialContext,
		MaxIdleConns:        32,
		MaxIdleConnsPerHost: 8,
		IdleConnTimeout:     constants.HTTPIdleConnTimeout,
		TLSHandshakeTimeout: constants.HTTPTLSHandshakeTimeout,
		ForceAttemptHTTP2:   true,
	}

	_ = http2.ConfigureTransport(tr)

	// Runtime toggle for HTTP/2, useful for proxy compatibility issues
	if os.Getenv("DISABLE_HTTP2") == "true" {
		tr.ForceAttemptHTTP2 = false
		tr.TLSNextProto = make(map[string]func(string, *tls.Conn) nethttp.RoundTripper)
	}

	return &nethttp.Client{
		Transport: tr,
		Timeout:   constants.RequestTimeout,
	}
}
