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

// Package server provides the HTTP server shared by the ingredient checker
// binaries: routing, middleware, the error envelope, probes and lifecycle.
//
// # Architecture
//
// Application handlers are registered with WithHandler and run behind the
// full middleware chain, outermost first:
//
//   - Prometheus RED metrics (ingredient_checker_http_*)
//   - API version negotiation (X-API-Version)
//   - Request ID tracking (X-Request-Id, UUID)
//   - Panic recovery
//   - CORS policy, with preflight handling
//   - Rate limiting (golang.org/x/time/rate token bucket)
//   - Request logging (log/slog)
//
// Probe endpoints skip rate limiting so orchestrators are never throttled.
//
// # Usage
//
//	s := server.New(
//	    server.WithName("ingredient-checker"),
//	    server.WithVersion(version),
//	    server.WithHandler(map[string]http.HandlerFunc{
//	        "/check": h.HandleCheck,
//	    }),
//	    server.WithCORS(&server.CORSConfig{
//	        AllowedOrigins:   []string{"http://localhost:5173"},
//	        AllowCredentials: true,
//	    }),
//	)
//	if err := s.Run(ctx); err != nil {
//	    return err
//	}
//
// Run blocks until ctx is cancelled or SIGINT/SIGTERM arrives, then drains
// in-flight requests for up to Config.ShutdownTimeout. When started by
// systemd the server sends READY=1 once it is accepting connections and
// STOPPING=1 on shutdown.
//
// # System Endpoints
//
//	GET /healthz  always {"status":"ok"}
//	GET /health   liveness, {"status":"healthy","timestamp":"..."}
//	GET /ready    readiness, 503 until the listener is accepting
//	GET /metrics  Prometheus exposition
//	GET /         service banner listing the routes
//
// # Error Handling
//
// Handlers report failures with WriteError or WriteErrorFromErr, which
// produce one JSON shape for every error:
//
//	{
//	  "code": "INVALID_REQUEST",
//	  "message": "ingredients cannot be empty",
//	  "fields": [{"field": "ingredients", "reason": "ingredients cannot be empty"}],
//	  "requestId": "550e8400-e29b-41d4-a716-446655440000",
//	  "timestamp": "2025-12-22T12:00:00Z",
//	  "retryable": false
//	}
//
// HTTPStatusFromCode maps pkg/errors codes to statuses: INVALID_REQUEST 400,
// NOT_FOUND 404, METHOD_NOT_ALLOWED 405, PAYLOAD_TOO_LARGE 413,
// RATE_LIMIT_EXCEEDED 429, INTERNAL 500, SERVICE_UNAVAILABLE 503,
// TIMEOUT 504.
//
// Rate limited responses carry Retry-After; all others carry
// X-RateLimit-Limit, X-RateLimit-Remaining and X-RateLimit-Reset.
package server
