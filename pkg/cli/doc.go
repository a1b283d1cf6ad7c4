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

// Package cli implements the checker command line.
//
// # Commands
//
// serve - Run the HTTP service:
//
//	checker serve --port 8080 --rules ./rules.yaml
//
// check - Analyze an ingredient list locally:
//
//	checker check --diet vegan --allergy nuts "Water, Sugar, Almond Milk"
//	checker check -f payload.json --format yaml
//
// capabilities - Describe the configured analysis engine:
//
//	checker capabilities --analyzer-url http://engine:9000
//
// rules - Print the effective heuristic rule set:
//
//	checker rules --format yaml --output rules.yaml
//
// # Global Flags
//
//	--log-level    Logging verbosity: debug, info, warn, error (env LOG_LEVEL)
//	--help, -h     Show command help
//	--version, -v  Show version information
//
// # Output
//
// check, capabilities and rules write a report to stdout or --output in the
// --format given (json, yaml or table). Every report starts with a kind,
// apiVersion and metadata header.
//
// # Environment Variables
//
// Settings are read from a .env file (or ENV_FILE), then the environment;
// flags win. See pkg/config for the full list.
//
// Version information is embedded at build time using ldflags:
//
//	go build -ldflags="-X 'github.com/NVIDIA/ingredient-checker/pkg/cli.version=1.0.0'"
package cli
