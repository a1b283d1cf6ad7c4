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

// Package config loads process configuration for the ingredient checker.
//
// Values are read from the environment after an optional dotenv file has been
// applied. The dotenv file defaults to ".env" in the working directory and can
// be pointed elsewhere with ENV_FILE. Variables already present in the
// environment win over the file.
//
// Recognized variables:
//
//	PORT                      HTTP port (default 8080)
//	ADDRESS                   bind address (default all interfaces)
//	LOG_LEVEL                 debug, info, warn, error (default info)
//	SHUTDOWN_TIMEOUT_SECONDS  graceful shutdown budget (default 30)
//	RATE_LIMIT                requests per second (default 100)
//	RATE_LIMIT_BURST          token bucket burst (default 200)
//	MAX_BODY_BYTES            /check body cap in bytes (default 1 MiB)
//	CORS_ALLOWED_ORIGINS      comma separated origin allow-list
//	CORS_ORIGIN_PATTERN       regular expression for preview origins
//	ANALYZER_URL              base URL of a remote analysis engine
//	ANALYZER_TIMEOUT_SECONDS  per-call timeout for the remote engine
//	RULES_PATH                YAML/JSON rule set for the heuristic engine
package config
