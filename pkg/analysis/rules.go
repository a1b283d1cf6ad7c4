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
	_ "embed"
	"fmt"
	"regexp"
	"sort"
	"strings"
	"sync"

	cnserrors "github.com/NVIDIA/ingredient-checker/pkg/errors"
	"github.com/NVIDIA/ingredient-checker/pkg/serializer"
	"github.com/NVIDIA/ingredient-checker/pkg/version"
	"gopkg.in/yaml.v3"
)

// RulesSourceEmbedded is the Rules.Source of the built-in rule set.
const RulesSourceEmbedded = "embedded"

//go:embed data/rules.yaml
var embeddedRules []byte

// SupportedRulesVersion is the rule file schema this build reads. Files
// with the same major version are accepted; an empty version is treated as
// current.
var SupportedRulesVersion = version.MustParse("v1")

var (
	defaultRulesOnce sync.Once
	defaultRules     *Rules
	defaultRulesErr  error
)

// Rules is the data the Heuristic analyzer works from.
type Rules struct {
	Version string `json:"version" yaml:"version"`

	// Forbidden entries make a product not clean when found inside an
	// ingredient.
	Forbidden []string `json:"forbidden" yaml:"forbidden"`

	// Stopwords split list entries and are dropped as ingredients.
	Stopwords []string `json:"stopwords" yaml:"stopwords"`

	// StopwordExempt entries are never split on stopwords.
	StopwordExempt []string `json:"stopwordExempt,omitempty" yaml:"stopwordExempt,omitempty"`

	// Diets maps a diet name to the ingredients it excludes.
	Diets map[string]DietRule `json:"diets" yaml:"diets"`

	// Allergens maps an allergen label to the ingredient tokens it covers.
	Allergens map[string][]string `json:"allergens" yaml:"allergens"`

	// Source records where the rules were loaded from.
	Source string `json:"-" yaml:"-"`
}

// DietRule lists the tokens a diet excludes. Includes names other diets
// whose tokens are excluded as well.
type DietRule struct {
	Includes []string `json:"includes,omitempty" yaml:"includes,omitempty"`
	Tokens   []string `json:"tokens" yaml:"tokens"`
}

// DefaultRules returns the embedded rule set. It is parsed once and shared;
// callers must not modify it.
func DefaultRules() (*Rules, error) {
	defaultRulesOnce.Do(func() {
		var r Rules
		if err := yaml.Unmarshal(embeddedRules, &r); err != nil {
			defaultRulesErr = cnserrors.Wrap(cnserrors.ErrCodeInternal, "failed to parse embedded rules", err)
			return
		}
		r.Source = RulesSourceEmbedded
		if err := r.Validate(); err != nil {
			defaultRulesErr = err
			return
		}
		defaultRules = &r
	})
	return defaultRules, defaultRulesErr
}

// LoadRules reads a rule set from a YAML or JSON file, chosen by extension.
func LoadRules(path string) (*Rules, error) {
	r, err := serializer.FromFile[Rules](path)
	if err != nil {
		return nil, cnserrors.Wrap(cnserrors.ErrCodeInvalidRequest, fmt.Sprintf("failed to load rules from %s", path), err)
	}
	r.Source = path
	if err := r.Validate(); err != nil {
		return nil, err
	}
	return r, nil
}

// Validate checks that the rule set is usable.
func (r *Rules) Validate() error {
	var fields []cnserrors.FieldError

	if r.Version != "" {
		v, err := version.Parse(r.Version)
		switch {
		case err != nil:
			fields = append(fields, cnserrors.FieldError{Field: "version", Reason: err.Error()})
		case !v.Compatible(SupportedRulesVersion):
			fields = append(fields, cnserrors.FieldError{
				Field:  "version",
				Reason: fmt.Sprintf("unsupported version %s, want %s", v, SupportedRulesVersion),
			})
		}
	}
	if len(r.Forbidden) == 0 {
		fields = append(fields, cnserrors.FieldError{Field: "forbidden", Reason: "must not be empty"})
	}
	for name, diet := range r.Diets {
		if normalizeToken(name) == "" {
			fields = append(fields, cnserrors.FieldError{Field: "diets", Reason: fmt.Sprintf("invalid diet name %q", name)})
		}
		for _, inc := range diet.Includes {
			if _, ok := r.Diets[inc]; !ok {
				fields = append(fields, cnserrors.FieldError{
					Field:  "diets." + name + ".includes",
					Reason: fmt.Sprintf("unknown diet %q", inc),
				})
			}
		}
	}
	for label := range r.Allergens {
		if normalizeToken(label) == "" {
			fields = append(fields, cnserrors.FieldError{Field: "allergens", Reason: fmt.Sprintf("invalid allergen label %q", label)})
		}
	}

	if len(fields) > 0 {
		sort.Slice(fields, func(i, j int) bool { return fields[i].Field < fields[j].Field })
		return cnserrors.NewWithFields(cnserrors.ErrCodeInvalidRequest, "invalid rule set", fields...)
	}
	return nil
}

// DietNames returns the configured diets in sorted order.
func (r *Rules) DietNames() []string {
	return sortedKeys(r.Diets)
}

// AllergenNames returns the configured allergen labels in sorted order.
func (r *Rules) AllergenNames() []string {
	return sortedKeys(r.Allergens)
}

type tokenSet map[string]struct{}

func (s tokenSet) add(values ...string) {
	for _, v := range values {
		if n := normalizeToken(v); n != "" {
			s[n] = struct{}{}
		}
	}
}

func (s tokenSet) has(v string) bool {
	_, ok := s[v]
	return ok
}

func (s tokenSet) intersects(other tokenSet) bool {
	small, large := s, other
	if len(small) > len(large) {
		small, large = large, small
	}
	for v := range small {
		if large.has(v) {
			return true
		}
	}
	return false
}

// ruleset is Rules with every token normalized and lookups precomputed.
type ruleset struct {
	source string

	// forbidden is sorted so substring matching is deterministic.
	forbidden    []string
	forbiddenSet tokenSet

	stopwords tokenSet
	splitter  *regexp.Regexp
	exempt    map[string]struct{}

	diets     map[string]tokenSet
	allergens map[string]tokenSet
}

func compileRules(r *Rules) *ruleset {
	rs := &ruleset{
		source:       r.Source,
		forbiddenSet: tokenSet{},
		stopwords:    tokenSet{},
		exempt:       map[string]struct{}{},
		diets:        map[string]tokenSet{},
		allergens:    map[string]tokenSet{},
	}

	rs.forbiddenSet.add(r.Forbidden...)
	rs.forbidden = sortedKeys(rs.forbiddenSet)

	rs.stopwords.add(r.Stopwords...)
	rs.splitter = stopwordPattern(r.Stopwords)

	for _, e := range r.StopwordExempt {
		rs.exempt[strings.ToLower(strings.TrimSpace(e))] = struct{}{}
	}

	for name := range r.Diets {
		tokens := tokenSet{}
		collectDiet(r.Diets, name, tokens, map[string]bool{})
		rs.diets[strings.ToLower(strings.TrimSpace(name))] = tokens
	}

	for label, aliases := range r.Allergens {
		tokens := tokenSet{}
		tokens.add(label)
		tokens.add(aliases...)
		rs.allergens[normalizeToken(label)] = tokens
	}

	return rs
}

// collectDiet adds the tokens of diet name and every diet it includes.
func collectDiet(diets map[string]DietRule, name string, into tokenSet, seen map[string]bool) {
	if seen[name] {
		return
	}
	seen[name] = true

	rule, ok := diets[name]
	if !ok {
		return
	}
	into.add(rule.Tokens...)
	for _, inc := range rule.Includes {
		collectDiet(diets, inc, into, seen)
	}
}

// stopwordPattern matches any stopword as a whole word, longest first.
func stopwordPattern(stopwords []string) *regexp.Regexp {
	phrases := make([]string, 0, len(stopwords))
	for _, s := range stopwords {
		if s = strings.TrimSpace(s); s != "" {
			phrases = append(phrases, regexp.QuoteMeta(s))
		}
	}
	if len(phrases) == 0 {
		return nil
	}
	sort.SliceStable(phrases, func(i, j int) bool { return len(phrases[i]) > len(phrases[j]) })
	return regexp.MustCompile(`(?i)\b(?:` + strings.Join(phrases, "|") + `)\b`)
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
