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

// Package analysis defines the port through which checked ingredient text is
// handed to an analysis engine, along with the adapters that implement it.
//
// The Analyzer interface is the only thing the HTTP layer depends on:
//
//	type Analyzer interface {
//	    Analyze(ctx context.Context, ingredients string, prefs map[string]any) (*Result, error)
//	    Capabilities(ctx context.Context) (map[string]any, error)
//	}
//
// Three implementations are provided:
//
//   - Heuristic: an in-process engine driven by a YAML rule set. The rule
//     set is embedded in the binary and can be replaced with LoadRules.
//     It splits ingredient lists into entries, normalizes them, and flags
//     forbidden additives, diet conflicts (vegetarian, vegan, jain) and
//     allergens.
//   - Remote: forwards calls to an external engine over HTTP
//     (POST {base}/analyze, GET {base}/capabilities).
//   - Instrumented: wraps another Analyzer and records latency and failures
//     as Prometheus metrics.
//
// Results are returned as-is to the caller; the HTTP layer does not reshape
// them.
package analysis
