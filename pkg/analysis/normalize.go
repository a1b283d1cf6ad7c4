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
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	dashReplacer = strings.NewReplacer(
		"\u2010", "-", "\u2011", "-", "\u2012", "-", "\u2013", "-", "\u2014", "-",
	)
	disallowedChars = regexp.MustCompile(`[^a-z0-9+\-\s]`)
	whitespaceRun   = regexp.MustCompile(`\s+`)

	segmentSeparators = regexp.MustCompile(`[\n;]+`)
	parenthesized     = regexp.MustCompile(`\([^)]*\)`)
	bracketed         = regexp.MustCompile(`\[[^\]]*\]`)
	monoDiglycerides  = regexp.MustCompile(`(?i)mono-\s+and\s+diglycerides`)
)

// item is one ingredient entry after normalization.
type item struct {
	original  string
	token     string
	canonical string
	display   string
}

// normalizeToken reduces text to the comparison form used by every rule:
// accents stripped, lower case, unified dashes, only [a-z0-9+-] and single
// spaces left.
func normalizeToken(text string) string {
	text = strings.ToLower(strings.TrimSpace(stripMarks(text)))
	text = dashReplacer.Replace(text)
	text = disallowedChars.ReplaceAllString(text, " ")
	text = whitespaceRun.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}

// stripMarks decomposes text and drops combining marks, so "crème" becomes
// "creme". Transformers are stateful and are built per call.
func stripMarks(text string) string {
	t := transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, text)
	if err != nil {
		return text
	}
	return out
}

// titleize capitalizes each word, leaving all-caps words alone.
func titleize(text string) string {
	caser := cases.Title(language.English)
	words := strings.Fields(text)
	for i, w := range words {
		if !isAllUpper(w) {
			words[i] = caser.String(w)
		}
	}
	return strings.Join(words, " ")
}

func isAllUpper(s string) bool {
	cased := false
	for _, r := range s {
		if unicode.IsLower(r) {
			return false
		}
		if unicode.IsUpper(r) {
			cased = true
		}
	}
	return cased
}

// tokenize splits a free-form ingredient list into raw entries. Lines,
// semicolons, commas and bullets separate entries; parenthesized and
// bracketed text is dropped; stopwords split an entry further.
func (rs *ruleset) tokenize(text string) []string {
	if text == "" {
		return nil
	}
	cleaned := strings.NewReplacer("\r", "\n", "\u2022", ",").Replace(text)

	var tokens []string
	for _, segment := range segmentSeparators.Split(cleaned, -1) {
		segment = strings.TrimSpace(segment)
		if segment == "" {
			continue
		}
		segment = monoDiglycerides.ReplaceAllString(segment, "mono-and-diglycerides")
		segment = parenthesized.ReplaceAllString(segment, " ")
		segment = bracketed.ReplaceAllString(segment, " ")
		segment = strings.TrimSpace(whitespaceRun.ReplaceAllString(segment, " "))
		if segment == "" {
			continue
		}

		for _, piece := range strings.Split(segment, ",") {
			piece = strings.TrimSpace(piece)
			if piece == "" {
				continue
			}
			parts := []string{piece}
			if _, exempt := rs.exempt[strings.ToLower(piece)]; !exempt {
				if split := rs.splitOnStopwords(piece); len(split) > 0 {
					parts = split
				}
			}
			for _, part := range parts {
				if normalizeToken(strings.Trim(part, ".- ")) != "" {
					tokens = append(tokens, strings.TrimSpace(part))
				}
			}
		}
	}
	return tokens
}

func (rs *ruleset) splitOnStopwords(chunk string) []string {
	if rs.splitter == nil {
		return []string{chunk}
	}
	var parts []string
	for _, p := range strings.Split(rs.splitter.ReplaceAllString(chunk, ","), ",") {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	return parts
}

// normalize tokenizes text and returns one item per distinct canonical form,
// in input order. Stopwords are dropped.
func (rs *ruleset) normalize(text string) []item {
	seen := map[string]struct{}{}
	var items []item
	for _, raw := range rs.tokenize(text) {
		token := normalizeToken(raw)
		if token == "" || rs.stopwords.has(token) {
			continue
		}
		if _, dup := seen[token]; dup {
			continue
		}
		seen[token] = struct{}{}
		items = append(items, item{
			original:  raw,
			token:     token,
			canonical: token,
			display:   titleize(token),
		})
	}
	return items
}
