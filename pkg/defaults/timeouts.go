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

package defaults

import "time"

// Handler timeouts for HTTP request processing.
const (
	// CheckHandlerTimeout is the timeout for ingredient check requests.
	CheckHandlerTimeout = 30 * time.Second

	// CapabilitiesHandlerTimeout is the timeout for capability listing requests.
	CapabilitiesHandlerTimeout = 10 * time.Second
)

// Analysis timeouts for calls into the analysis engine.
const (
	// AnalyzerTimeout is the per-call timeout for the remote analysis engine.
	// Should be less than CheckHandlerTimeout to allow error handling.
	AnalyzerTimeout = 25 * time.Second
)

// Server timeouts for HTTP server configuration.
const (
	// ServerReadTimeout is the maximum duration for reading the entire request,
	// including the body.
	ServerReadTimeout = 10 * time.Second

	// ServerReadHeaderTimeout prevents slow header attacks.
	ServerReadHeaderTimeout = 5 * time.Second

	// ServerWriteTimeout is the maximum duration for writing a response.
	ServerWriteTimeout = 30 * time.Second

	// ServerIdleTimeout is the maximum duration to wait for the next request.
	ServerIdleTimeout = 120 * time.Second

	// ServerShutdownTimeout is the maximum duration for graceful shutdown.
	ServerShutdownTimeout = 30 * time.Second
)

// HTTP client timeouts for outbound requests.
const (
	// HTTPClientTimeout is the default total timeout for HTTP requests.
	HTTPClientTimeout = 30 * time.Second

	// HTTPConnectTimeout is the timeout for establishing connections.
	HTTPConnectTimeout = 5 * time.Second

	// HTTPTLSHandshakeTimeout is the timeout for TLS handshake.
	HTTPTLSHandshakeTimeout = 5 * time.Second

	// HTTPResponseHeaderTimeout is the timeout for reading response headers.
	HTTPResponseHeaderTimeout = 10 * time.Second

	// HTTPIdleConnTimeout is the timeout for idle connections in the pool.
	HTTPIdleConnTimeout = 90 * time.Second

	// HTTPKeepAlive is the keep-alive duration for connections.
	HTTPKeepAlive = 30 * time.Second
)

// Request limits.
const (
	// MaxRequestBodyBytes caps the size of a /check request body (1 MiB).
	MaxRequestBodyBytes int64 = 1 << 20

	// MaxMultipartMemory is the in-memory budget for multipart form parsing.
	// Parts beyond it spill to temporary files.
	MaxMultipartMemory int64 = 1 << 20
)

// Rate limiting defaults.
const (
	// RateLimit is the steady-state requests per second admitted per server.
	RateLimit = 100

	// RateLimitBurst is the token bucket burst size.
	RateLimitBurst = 200
)

// CORSMaxAge is how long browsers may cache a preflight answer.
const CORSMaxAge = 10 * time.Minute
