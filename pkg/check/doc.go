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

// Package check serves the ingredient check endpoints.
//
// A Handler resolves the request payload through a payload.Resolver, applies
// the validation gate and hands the trimmed ingredients and preferences to an
// analysis.Analyzer:
//
//	engine, err := analysis.NewHeuristic(nil)
//	if err != nil {
//	    return err
//	}
//	h := check.NewHandler(payload.NewResolver(), engine)
//	srv := server.New(server.WithHandler(map[string]http.HandlerFunc{
//	    "/check":        h.HandleCheck,
//	    "/capabilities": h.HandleCapabilities,
//	}))
//
// Resolution and validation failures are answered with 400 (413 for an
// oversized body). An analyzer failure that is not a client error is answered
// with 500 and the message "analysis failed: <reason>". The analyzer is never
// called once the request context is done.
package check
