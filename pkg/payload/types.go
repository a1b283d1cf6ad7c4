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

package payload

import (
	"net/url"
	"strings"
)

// Preferences is a decoded preference mapping. A nil value means absent.
type Preferences map[string]any

// Payload is the canonical check request.
type Payload struct {
	Ingredients string      `json:"ingredients" yaml:"ingredients"`
	Preferences Preferences `json:"preferences" yaml:"preferences"`
}

// Request is the read-only view of an HTTP request the strategies work on.
// The body has already been read and size-checked.
type Request struct {
	// ContentType is the raw Content-Type header value.
	ContentType string
	Body        []byte
	Query       url.Values
}

// mediaType returns the lower-cased Content-Type header.
func (r *Request) mediaType() string {
	return strings.ToLower(strings.TrimSpace(r.ContentType))
}

func (r *Request) hasMediaType(types ...string) bool {
	ct := r.mediaType()
	for _, t := range types {
		if strings.Contains(ct, t) {
			return true
		}
	}
	return false
}
