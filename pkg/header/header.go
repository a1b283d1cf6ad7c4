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

// Package header provides the envelope written in front of CLI reports so
// that saved JSON or YAML files identify what they contain.
//
//	report := struct {
//	    header.Header `json:",inline" yaml:",inline"`
//	    Result        *analysis.Result `json:"result" yaml:"result"`
//	}{}
//	report.Init(header.KindCheckReport, "v1.0.0")
package header

import (
	"time"
)

// APIVersion is the schema identifier of every report.
const APIVersion = "ingredient-checker.nvidia.com/v1"

// Kind names the report type.
type Kind string

// Report kinds.
const (
	KindCheckReport  Kind = "CheckReport"
	KindCapabilities Kind = "Capabilities"
	KindRuleSet      Kind = "RuleSet"
)

// String returns the string representation of the Kind.
func (k Kind) String() string {
	return string(k)
}

// IsValid reports whether k is a known kind.
func (k Kind) IsValid() bool {
	switch k {
	case KindCheckReport, KindCapabilities, KindRuleSet:
		return true
	default:
		return false
	}
}

// Header identifies a report.
type Header struct {
	Kind       Kind              `json:"kind" yaml:"kind"`
	APIVersion string            `json:"apiVersion" yaml:"apiVersion"`
	Metadata   map[string]string `json:"metadata,omitempty" yaml:"metadata,omitempty"`
}

// Init sets the kind and API version and records the creation time and the
// tool version. An empty version is omitted.
func (h *Header) Init(kind Kind, version string) {
	h.Kind = kind
	h.APIVersion = APIVersion
	h.Metadata = map[string]string{
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	}
	if version != "" {
		h.Metadata["version"] = version
	}
}

// Set adds a metadata entry.
func (h *Header) Set(key, value string) {
	if h.Metadata == nil {
		h.Metadata = make(map[string]string)
	}
	h.Metadata[key] = value
}
