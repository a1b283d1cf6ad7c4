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

package analysis

import (
	"context"
)

// SourceHeuristic is the Result.Source reported by the Heuristic analyzer.
const SourceHeuristic = "heuristic"

// Analyzer inspects ingredient text against optional preferences.
// Implementations must be safe for concurrent use.
type Analyzer interface {
	// Analyze evaluates ingredients. Client mistakes are reported as
	// *errors.StructuredError with code INVALID_REQUEST; anything else is
	// treated as an engine failure.
	Analyze(ctx context.Context, ingredients string, prefs map[string]any) (*Result, error)

	// Capabilities describes the engine and its loaded data.
	Capabilities(ctx context.Context) (map[string]any, error)
}

// Result is the analysis record for one ingredient list.
type Result struct {
	// Source names the engine mode that produced the result.
	Source string `json:"source" yaml:"source"`

	// Ingredients holds display names in input order, de-duplicated.
	Ingredients []string `json:"ingredients" yaml:"ingredients"`

	// Canonical holds the normalized key of each entry in Ingredients.
	Canonical []string `json:"canonical" yaml:"canonical"`

	// Taxonomy holds taxonomy details for entries that matched one.
	Taxonomy []map[string]any `json:"taxonomy" yaml:"taxonomy"`

	IsClean bool     `json:"is_clean" yaml:"is_clean"`
	Hits    []string `json:"hits" yaml:"hits"`

	DietHits       []string `json:"diet_hits" yaml:"diet_hits"`
	DietPreference *string  `json:"diet_preference" yaml:"diet_preference"`

	AllergyHits        []string `json:"allergy_hits" yaml:"allergy_hits"`
	AllergyPreferences []string `json:"allergy_preferences" yaml:"allergy_preferences"`

	TaxonomyError  *string `json:"taxonomy_error" yaml:"taxonomy_error"`
	AdditivesError *string `json:"additives_error" yaml:"additives_error"`
}

// normalizeSlices replaces nil slices so they encode as [] rather than null.
func (r *Result) normalizeSlices() {
	if r.Ingredients == nil {
		r.Ingredients = []string{}
	}
	if r.Canonical == nil {
		r.Canonical = []string{}
	}
	if r.Taxonomy == nil {
		r.Taxonomy = []map[string]any{}
	}
	if r.Hits == nil {
		r.Hits = []string{}
	}
	if r.DietHits == nil {
		r.DietHits = []string{}
	}
	if r.AllergyHits == nil {
		r.AllergyHits = []string{}
	}
	if r.AllergyPreferences == nil {
		r.AllergyPreferences = []string{}
	}
}
