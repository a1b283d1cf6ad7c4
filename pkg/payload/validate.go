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
	"strings"

	cnserrors "github.com/NVIDIA/ingredient-checker/pkg/errors"
)

// Validate enforces the payload contract after resolution: ingredients must
// be non-blank. It returns a copy with the ingredients trimmed.
func Validate(p *Payload) (*Payload, error) {
	if p == nil {
		return nil, badRequest(ReasonMissingPayload)
	}

	ingredients := strings.TrimSpace(p.Ingredients)
	if ingredients == "" {
		return nil, cnserrors.NewWithFields(cnserrors.ErrCodeInvalidRequest, ReasonEmptyIngredients,
			cnserrors.FieldError{Field: fieldIngredients, Reason: ReasonEmptyIngredients})
	}

	return &Payload{
		Ingredients: ingredients,
		Preferences: p.Preferences,
	}, nil
}
