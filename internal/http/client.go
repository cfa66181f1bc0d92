// Package http provides HTTP client configuration for periodo-cli.
package http

import (
	nethttp "net/http"
	"time"

	"golang.org/x/net/http2"
)

// Transport and timeout settings for the API client. The service serves
// small JSON documents, so the pool is kept modest.
const (
	idleConnTimeout       = 90 * time.Second
	tlsHandshakeTimeout   = 10 * time.Second
	expectContinueTimeout = 1 * time.Second
	requestTimeout        = 60 * time.Second
)

// NewClient creates an HTTP client for API calls.
//
// Proxy settings are taken from the environment (HTTP_PROXY, HTTPS_PROXY,
// NO_PROXY). HTTP/2 is enabled when the server supports it.
func NewClient() (*nethttp.Client, error) {
	tr := &nethttp.Transport{
		Proxy:                 nethttp.ProxyFromEnvironment,
		MaxIdleConns:          16,
		MaxIdleConnsPerHost:   8,
		IdleConnTimeout:       idleConnTimeout,
		TLSHandshakeTimeout:   tlsHandshakeTimeout,
		ExpectContinueTimeout: expectContinueTimeout,
		ForceAttemptHTTP2:     true,
	}

	if err := http2.ConfigureTransport(tr); err != nil {
		return nil, err
	}

	return &nethttp.Client{
		Transport: tr,
		Timeout:   requestTimeout,
	}, nil
}
