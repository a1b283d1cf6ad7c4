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
	"errors"
	"mime"
	"mime/multipart"
	"strings"
	"unicode/utf8"

	cnserrors "github.com/NVIDIA/ingredient-checker/pkg/errors"
)

// Strategy names, also used as metric labels.
const (
	StrategyJSON  = "json"
	StrategyForm  = "form"
	StrategyRaw   = "raw"
	StrategyQuery = "query"
)

// Client-facing failure reasons.
const (
	ReasonInvalidJSON      = "invalid JSON"
	ReasonNotObject        = "body must be an object"
	ReasonInvalidForm      = "invalid form body"
	ReasonInvalidUTF8      = "body is not valid UTF-8"
	ReasonInvalidPayload   = "invalid request payload"
	ReasonMissingPayload   = "missing or invalid ingredients payload"
	ReasonEmptyIngredients = "ingredients cannot be empty"
	ReasonBodyTooLarge     = "request body too large"
)

const (
	fieldIngredients = "ingredients"
	fieldPreferences = "preferences"
)

var errMissingBoundary = errors.New("multipart boundary missing")

// AttemptFunc tries to build a payload from req. It returns (nil, nil) when
// the request is not in a shape it understands.
type AttemptFunc func(req *Request) (*Payload, error)

// Strategy is one named decoding path.
type Strategy struct {
	Name    string
	Attempt AttemptFunc
}

// DefaultStrategies returns the decoding chain in precedence order.
func DefaultStrategies(maxMultipartMemory int64) []Strategy {
	return []Strategy{
		{Name: StrategyJSON, Attempt: attemptJSON},
		{Name: StrategyForm, Attempt: formAttempt(maxMultipartMemory)},
		{Name: StrategyRaw, Attempt: attemptRaw},
		{Name: StrategyQuery, Attempt: attemptQuery},
	}
}

func badRequest(reason string) error {
	return cnserrors.New(cnserrors.ErrCodeInvalidRequest, reason)
}

func attemptJSON(req *Request) (*Payload, error) {
	if !req.hasMediaType("application/json") {
		return nil, nil
	}

	decoded, err := decodeJSON(req.Body)
	if err != nil {
		return nil, cnserrors.Wrap(cnserrors.ErrCodeInvalidRequest, ReasonInvalidJSON, err)
	}

	obj, ok := decoded.(map[string]any)
	if !ok {
		return nil, badRequest(ReasonNotObject)
	}

	var fields []cnserrors.FieldError
	p := &Payload{}

	switch v := obj[fieldIngredients].(type) {
	case string:
		p.Ingredients = v
	case nil:
		fields = append(fields, cnserrors.FieldError{Field: fieldIngredients, Reason: "field required"})
	default:
		fields = append(fields, cnserrors.FieldError{Field: fieldIngredients, Reason: "must be a string"})
	}

	// Preferences never fail the request; unusable shapes degrade to nil.
	p.Preferences = ParsePreferences(obj[fieldPreferences])

	if len(fields) > 0 {
		return nil, cnserrors.NewWithFields(cnserrors.ErrCodeInvalidRequest, ReasonInvalidPayload, fields...)
	}
	return p, nil
}

func formAttempt(maxMemory int64) AttemptFunc {
	return func(req *Request) (*Payload, error) {
		switch {
		case req.hasMediaType("multipart/form-data"):
			values, err := parseMultipart(req, maxMemory)
			if err != nil {
				return nil, cnserrors.Wrap(cnserrors.ErrCodeInvalidRequest, ReasonInvalidForm, err)
			}
			return fromValues(values), nil
		case req.hasMediaType("application/x-www-form-urlencoded"):
			return fromValues(parseFormLenient(string(req.Body))), nil
		default:
			return nil, nil
		}
	}
}

func parseMultipart(req *Request, maxMemory int64) (map[string][]string, error) {
	_, params, err := mime.ParseMediaType(req.ContentType)
	if err != nil {
		return nil, err
	}
	boundary := params["boundary"]
	if boundary == "" {
		return nil, errMissingBoundary
	}

	form, err := multipart.NewReader(bytes.NewReader(req.Body), boundary).ReadForm(maxMemory)
	if err != nil {
		return nil, err
	}
	defer func() { _ = form.RemoveAll() }()

	return form.Value, nil
}

// fromValues reads the ingredients and preferences fields of a decoded form.
// A missing ingredients field yields an empty string for the gate to reject.
func fromValues(values map[string][]string) *Payload {
	ingredients, _ := lastValue(values, fieldIngredients)
	var prefs Preferences
	if raw, ok := lastValue(values, fieldPreferences); ok {
		prefs = ParsePreferences(raw)
	}
	return &Payload{Ingredients: ingredients, Preferences: prefs}
}

func attemptRaw(req *Request) (*Payload, error) {
	if req.hasMediaType("application/json", "application/x-www-form-urlencoded", "multipart/form-data") {
		return nil, nil
	}
	if len(req.Body) == 0 {
		return nil, nil
	}
	if !utf8.Valid(req.Body) {
		return nil, badRequest(ReasonInvalidUTF8)
	}

	text := strings.TrimPrefix(string(req.Body), "\ufeff")

	// Misdeclared form posts: "ingredients=...&preferences=..." sent as text.
	if values := parseFormLenient(text); values[fieldIngredients] != nil {
		return fromValues(values), nil
	}

	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil, nil
	}
	return &Payload{Ingredients: trimmed}, nil
}

func attemptQuery(req *Request) (*Payload, error) {
	ingredients, ok := lastValue(req.Query, fieldIngredients)
	if !ok || isBlank(ingredients) {
		return nil, nil
	}

	var prefs Preferences
	if raw, ok := lastValue(req.Query, fieldPreferences); ok {
		prefs = ParsePreferences(raw)
	}
	return &Payload{Ingredients: ingredients, Preferences: prefs}, nil
}
