// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package serializer

import (
	"bytes"
	"crypto/tls"
	"encoding/json"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/NVIDIA/ingredient-checker/pkg/defaults"
)

// RespondJSON writes a JSON response with the given status code and data.
// It buffers the JSON encoding before writing headers to prevent partial responses.
func RespondJSON(w http.ResponseWriter, statusCode int, data any) {
	buf := &bytes.Buffer{}
	if err := json.NewEncoder(buf).Encode(data); err != nil {
		slog.Error("json encoding failed", "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if _, err := w.Write(buf.Bytes()); err != nil {
		// Connection is broken, log but can't recover
		slog.Warn("response write failed", "error", err)
	}
}

// DefaultUserAgent is sent by clients built with NewHTTPClient.
const DefaultUserAgent = "ingredient-checker/1.0"

// ClientOption configures NewHTTPClient.
type ClientOption func(*clientConfig)

type clientConfig struct {
	userAgent             string
	totalTimeout          time.Duration
	connectTimeout        time.Duration
	tlsHandshakeTimeout   time.Duration
	responseHeaderTimeout time.Duration
	idleConnTimeout       time.Duration
	maxIdleConnsPerHost   int
	transport             http.RoundTripper
}

// WithUserAgent sets the User-Agent header on every outbound request.
func WithUserAgent(userAgent string) ClientOption {
	return func(c *clientConfig) {
		c.userAgent = userAgent
	}
}

// WithTotalTimeout bounds each request end to end.
func WithTotalTimeout(timeout time.Duration) ClientOption {
	return func(c *clientConfig) {
		c.totalTimeout = timeout
	}
}

// WithConnectTimeout bounds connection establishment.
func WithConnectTimeout(timeout time.Duration) ClientOption {
	return func(c *clientConfig) {
		c.connectTimeout = timeout
	}
}

// WithResponseHeaderTimeout bounds the wait for response headers.
func WithResponseHeaderTimeout(timeout time.Duration) ClientOption {
	return func(c *clientConfig) {
		c.responseHeaderTimeout = timeout
	}
}

// WithMaxIdleConnsPerHost sizes the per-host idle pool.
func WithMaxIdleConnsPerHost(n int) ClientOption {
	return func(c *clientConfig) {
		c.maxIdleConnsPerHost = n
	}
}

// WithTransport replaces the tuned transport, mostly for tests.
func WithTransport(rt http.RoundTripper) ClientOption {
	return func(c *clientConfig) {
		c.transport = rt
	}
}

// NewHTTPClient returns an *http.Client with pooled, timeout-bounded
// connections and a fixed User-Agent.
func NewHTTPClient(options ...ClientOption) *http.Client {
	c := &clientConfig{
		userAgent:             DefaultUserAgent,
		totalTimeout:          defaults.HTTPClientTimeout,
		connectTimeout:        defaults.HTTPConnectTimeout,
		tlsHandshakeTimeout:   defaults.HTTPTLSHandshakeTimeout,
		responseHeaderTimeout: defaults.HTTPResponseHeaderTimeout,
		idleConnTimeout:       defaults.HTTPIdleConnTimeout,
		maxIdleConnsPerHost:   10,
	}
	for _, opt := range options {
		opt(c)
	}

	rt := c.transport
	if rt == nil {
		rt = &http.Transport{
			Proxy:               http.ProxyFromEnvironment,
			MaxIdleConns:        100,
			MaxIdleConnsPerHost: c.maxIdleConnsPerHost,
			DialContext: (&net.Dialer{
				Timeout:   c.connectTimeout,
				KeepAlive: defaults.HTTPKeepAlive,
			}).DialContext,
			TLSHandshakeTimeout:   c.tlsHandshakeTimeout,
			ResponseHeaderTimeout: c.responseHeaderTimeout,
			ExpectContinueTimeout: 1 * time.Second,
			IdleConnTimeout:       c.idleConnTimeout,
			ForceAttemptHTTP2:     true,
			TLSClientConfig: &tls.Config{
				MinVersion: tls.VersionTLS12,
			},
		}
	}

	return &http.Client{
		Timeout:   c.totalTimeout,
		Transport: &userAgentTransport{next: rt, userAgent: c.userAgent},
	}
}

type userAgentTransport struct {
	next      http.RoundTripper
	userAgent string
}

func (t *userAgentTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if req.Header.Get("User-Agent") == "" {
		req = req.Clone(req.Context())
		req.Header.Set("User-Agent", t.userAgent)
	}
	return t.next.RoundTrip(req)
}
