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

// Package version parses the dotted version strings used by rule set files
// ("v1", "1.2", "v1.2.3") and compares them.
package version

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Parse errors.
var (
	ErrEmptyVersion      = errors.New("version string is empty")
	ErrTooManyComponents = errors.New("version has more than 3 components")
	ErrNonNumeric        = errors.New("version component is not numeric")
)

// Version is a dotted version with one to three significant components.
type Version struct {
	Major int `json:"major" yaml:"major"`
	Minor int `json:"minor,omitempty" yaml:"minor,omitempty"`
	Patch int `json:"patch,omitempty" yaml:"patch,omitempty"`

	// Precision is the number of components given (1, 2, or 3).
	Precision int `json:"precision" yaml:"precision"`

	// Extras holds anything after a '-' or '+' suffix, e.g. "-rc.1".
	Extras string `json:"extras,omitempty" yaml:"extras,omitempty"`
}

// Parse reads "1", "1.2", "1.2.3" with an optional "v" prefix and an
// optional "-suffix" or "+metadata".
func Parse(s string) (Version, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Version{}, ErrEmptyVersion
	}
	s = strings.TrimPrefix(strings.TrimPrefix(s, "v"), "V")

	var v Version
	main := s
	if i := strings.IndexAny(s, "-+"); i > 0 {
		main, v.Extras = s[:i], s[i:]
	}

	parts := strings.Split(main, ".")
	if len(parts) > 3 {
		return Version{}, ErrTooManyComponents
	}

	nums := [3]int{}
	for i, part := range parts {
		n, err := strconv.Atoi(part)
		if err != nil || n < 0 || strings.HasPrefix(part, "+") {
			return Version{}, fmt.Errorf("%w: %q", ErrNonNumeric, part)
		}
		nums[i] = n
	}

	v.Major, v.Minor, v.Patch = nums[0], nums[1], nums[2]
	v.Precision = len(parts)
	return v, nil
}

// MustParse is Parse for literals; it panics on error.
func MustParse(s string) Version {
	v, err := Parse(s)
	if err != nil {
		panic(fmt.Sprintf("version.MustParse: %v", err))
	}
	return v
}

// String renders the significant components with a "v" prefix. Extras are
// dropped.
func (v Version) String() string {
	switch v.Precision {
	case 1:
		return fmt.Sprintf("v%d", v.Major)
	case 2:
		return fmt.Sprintf("v%d.%d", v.Major, v.Minor)
	default:
		return fmt.Sprintf("v%d.%d.%d", v.Major, v.Minor, v.Patch)
	}
}

// Compare returns -1, 0 or 1. Only the components both versions specify are
// compared, so "v1" equals "v1.4".
func (v Version) Compare(other Version) int {
	precision := min(v.Precision, other.Precision)
	a := [3]int{v.Major, v.Minor, v.Patch}
	b := [3]int{other.Major, other.Minor, other.Patch}
	for i := 0; i < precision; i++ {
		switch {
		case a[i] < b[i]:
			return -1
		case a[i] > b[i]:
			return 1
		}
	}
	return 0
}

// Compatible reports whether v shares other's major version.
func (v Version) Compatible(other Version) bool {
	return v.Major == other.Major
}
