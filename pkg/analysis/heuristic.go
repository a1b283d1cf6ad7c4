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
	"fmt"
	"sort"
	"strings"

	"k8s.io/utils/ptr"
)

// Preference keys understood by the Heuristic analyzer.
const (
	PreferenceDiet      = "diet"
	PreferenceAllergies = "allergies"
)

// Heuristic is an in-process Analyzer driven by a Rules set.
// It is immutable after construction and safe for concurrent use.
type Heuristic struct {
	rules *Rules
	rs    *ruleset
}

// NewHeuristic builds a Heuristic analyzer. A nil rules value selects the
// embedded rule set.
func NewHeuristic(rules *Rules) (*Heuristic, error) {
	if rules == nil {
		var err error
		if rules, err = DefaultRules(); err != nil {
			return nil, err
		}
	} else if err := rules.Validate(); err != nil {
		return nil, err
	}

	return &Heuristic{rules: rules, rs: compileRules(rules)}, nil
}

// Rules returns the rule set the analyzer was built from.
func (h *Heuristic) Rules() *Rules {
	return h.rules
}

// Analyze implements Analyzer.
func (h *Heuristic) Analyze(ctx context.Context, ingredients string, prefs map[string]any) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	items := h.rs.normalize(ingredients)
	diet := h.dietPreference(prefs)
	labels, allergyTokens := h.allergyPreferences(prefs)

	res := &Result{
		Source:             SourceHeuristic,
		Ingredients:        make([]string, 0, len(items)),
		Canonical:          make([]string, 0, len(items)),
		Hits:               h.rs.forbiddenHits(items),
		AllergyPreferences: labels,
	}
	for _, it := range items {
		res.Ingredients = append(res.Ingredients, it.display)
		res.Canonical = append(res.Canonical, it.canonical)
	}
	res.IsClean = len(res.Hits) == 0

	if diet != "" {
		res.DietPreference = ptr.To(diet)
		res.DietHits = matchItems(items, h.rs.diets[diet])
	}
	if len(allergyTokens) > 0 {
		res.AllergyHits = matchItems(items, allergyTokens)
	}

	res.normalizeSlices()
	return res, nil
}

// Capabilities implements Analyzer.
func (h *Heuristic) Capabilities(ctx context.Context) (map[string]any, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return map[string]any{
		"engine": SourceHeuristic,
		"rules": map[string]any{
			"source":    h.rules.Source,
			"version":   h.rules.Version,
			"forbidden": len(h.rs.forbidden),
			"stopwords": len(h.rs.stopwords),
			"diets":     h.rules.DietNames(),
			"allergens": h.rules.AllergenNames(),
		},
		"taxonomy":  map[string]any{"loaded": false},
		"additives": map[string]any{"loaded": false},
	}, nil
}

// dietPreference returns the requested diet if it is a known one.
func (h *Heuristic) dietPreference(prefs map[string]any) string {
	raw, ok := prefs[PreferenceDiet].(string)
	if !ok {
		return ""
	}
	diet := strings.ToLower(strings.TrimSpace(raw))
	if _, known := h.rs.diets[diet]; !known {
		return ""
	}
	return diet
}

// allergyPreferences returns the requested allergen labels, de-duplicated
// case-insensitively in request order, and the tokens they expand to.
// Labels with no configured aliases match only themselves.
func (h *Heuristic) allergyPreferences(prefs map[string]any) ([]string, tokenSet) {
	var values []any
	switch v := prefs[PreferenceAllergies].(type) {
	case []any:
		values = v
	case []string:
		for _, s := range v {
			values = append(values, s)
		}
	default:
		return nil, nil
	}

	var labels []string
	seen := map[string]struct{}{}
	tokens := tokenSet{}
	for _, entry := range values {
		if entry == nil {
			continue
		}
		label := strings.TrimSpace(fmt.Sprint(entry))
		normalized := normalizeToken(label)
		if normalized == "" {
			continue
		}
		if _, dup := seen[strings.ToLower(label)]; !dup {
			seen[strings.ToLower(label)] = struct{}{}
			labels = append(labels, label)
		}
		tokens[normalized] = struct{}{}
		for alias := range h.rs.allergens[normalized] {
			tokens[alias] = struct{}{}
		}
	}
	return labels, tokens
}

// forbiddenHits returns the sorted forbidden entries found in items. An
// entry matches when it occurs anywhere in an ingredient, with dashes read
// as spaces, or equals its display name.
func (rs *ruleset) forbiddenHits(items []item) []string {
	hits := tokenSet{}
	for _, it := range items {
		token := strings.ReplaceAll(it.canonical, "-", " ")
		for _, f := range rs.forbidden {
			if strings.Contains(token, f) {
				hits[f] = struct{}{}
			}
		}
		if d := normalizeToken(it.display); rs.forbiddenSet.has(d) {
			hits[d] = struct{}{}
		}
	}
	out := make([]string, 0, len(hits))
	for h := range hits {
		out = append(out, h)
	}
	sort.Strings(out)
	return out
}

// matchItems returns the display names of items whose surface forms are in
// tokens, de-duplicated case-insensitively.
func matchItems(items []item, tokens tokenSet) []string {
	var out []string
	seen := map[string]struct{}{}
	for _, it := range items {
		if !it.signature().intersects(tokens) {
			continue
		}
		name := strings.TrimSpace(it.display)
		if name == "" {
			name = it.canonical
		}
		key := strings.ToLower(name)
		if _, dup := seen[key]; name == "" || dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, name)
	}
	return out
}

func (it item) signature() tokenSet {
	s := tokenSet{}
	s.add(it.canonical, it.token, it.display)
	return s
}
