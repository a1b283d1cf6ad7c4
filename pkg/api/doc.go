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

// Package api wires the ingredient checker HTTP service.
//
// Serve loads the process configuration (a .env file, then environment
// variables), configures structured logging, builds the analysis engine and
// runs the server until SIGINT or SIGTERM:
//
//	func main() {
//	    if err := api.Serve(); err != nil {
//	        log.Fatalf("server error: %v", err)
//	    }
//	}
//
// # Endpoints
//
// Application endpoints (rate limited):
//   - POST /check        - Analyze an ingredients payload (JSON, form, multipart or raw text)
//   - GET  /check        - Analyze ?ingredients=...&preferences=...
//   - GET  /capabilities - Describe the analysis engine
//   - GET  /             - Service banner
//
// System endpoints (no rate limiting):
//   - GET /healthz - Liveness, always {"status":"ok"}
//   - GET /health  - Liveness with timestamp
//   - GET /ready   - Readiness
//   - GET /metrics - Prometheus metrics
//
// # Analysis Engine
//
// When ANALYZER_URL is set the service forwards analysis to that engine over
// HTTP. Otherwise the built-in heuristic engine runs in process with the
// embedded rule set, or the file named by RULES_PATH.
package api
