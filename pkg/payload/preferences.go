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
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"strings"
)

var errTrailingData = errors.New("unexpected data after top-level value")

// ParsePreferences interprets a preferences value of unknown shape.
//
// A mapping is returned unchanged. A non-blank string (or byte slice) is
// decoded as JSON and returned only if it holds an object. Everything else,
// including decode failures, yields nil.
func ParsePreferences(raw any) Preferences {
	switch v := raw.(type) {
	case Preferences:
		return v
	case map[string]any:
		return v
	case string:
		return decodePreferences([]byte(v))
	case []byte:
		return decodePreferences(v)
	default:
		return nil
	}
}

func decodePreferences(data []byte) Preferences {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil
	}

	decoded, err := decodeJSON(data)
	if err != nil {
		return nil
	}
	if m, ok := decoded.(map[string]any); ok {
		return m
	}
	return nil
}

// decodeJSON decodes exactly one JSON value. Numbers are kept as json.Number
// so preference values are forwarded without float rounding.
func decodeJSON(data []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, errTrailingData
	}
	return v, nil
}

// lastValue returns the last value for key, mirroring form libraries that
// let later fields win.
func lastValue(values map[string][]string, key string) (string, bool) {
	vs, ok := values[key]
	if !ok || len(vs) == 0 {
		return "", false
	}
	return vs[len(vs)-1], true
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
