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

// Package payload turns an arbitrary incoming HTTP request into a canonical
// ingredient check payload.
//
// Clients may be browsers, mobile shells or ad-hoc scripts that misreport or
// omit the Content-Type header, so the Resolver tries an ordered list of
// decoding strategies instead of trusting the header alone:
//
//  1. JSON body (media type contains application/json)
//  2. Form body (application/x-www-form-urlencoded or multipart/form-data)
//  3. Raw body: URL-encoded text carrying an ingredients key is treated as a
//     form, any other non-blank UTF-8 text becomes the ingredients verbatim
//  4. Query string (?ingredients=...&preferences=...)
//
// A strategy either produces a payload, returns a terminal client error
// (invalid JSON, non-object body, non UTF-8 text, a non-string ingredients
// field, broken multipart), or reports no match. URL-encoded bodies never
// fail: a ';' or a stray '%' in label text is kept as written. A payload with blank ingredients is kept as a fallback
// and the chain continues; the first payload with non-blank ingredients wins.
// When nothing matches the request fails with
// "missing or invalid ingredients payload".
//
// Preferences are advisory. ParsePreferences never fails: malformed
// preference values, JSON arrays, numbers and booleans included, degrade to
// "no preferences".
//
// Validate is the single post-resolution gate and rejects blank ingredients.
//
// Usage:
//
//	resolver := payload.NewResolver(payload.WithMaxBodyBytes(1 << 20))
//	p, err := resolver.Resolve(r)
//	if err != nil {
//	    return err
//	}
//	p, err = payload.Validate(p)
package payload
