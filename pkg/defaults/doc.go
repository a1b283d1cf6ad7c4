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

// Package defaults provides centralized configuration constants for the
// ingredient checker.
//
// This package defines timeout values, request limits and other defaults used
// across the codebase. Centralizing these values keeps the server, the
// analysis adapters and the CLI consistent.
//
// # Timeout Categories
//
//   - Handler timeouts: For HTTP request processing
//   - Analysis timeouts: For calls into the analysis engine
//   - Server timeouts: For HTTP server configuration
//   - HTTP client timeouts: For outbound HTTP requests
//
// # Usage
//
//	import "github.com/NVIDIA/ingredient-checker/pkg/defaults"
//
//	ctx, cancel := context.WithTimeout(ctx, defaults.CheckHandlerTimeout)
//	defer cancel()
//
// # Timeout Guidelines
//
//   - Handlers: 30s, which bounds the analysis call plus response encoding
//   - Analysis: shorter than the handler timeout so the handler can still
//     write a structured error
//   - Server: read timeouts bound slow request bodies
package defaults
