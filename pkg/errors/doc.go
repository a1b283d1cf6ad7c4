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

// Package errors provides structured error types for better observability
// and programmatic error handling across the application.
//
// Client-caused failures carry ErrCodeInvalidRequest and, when a specific
// input field is at fault, a list of FieldError values that is rendered
// verbatim in the HTTP error body:
//
//	err := errors.NewWithFields(
//	    errors.ErrCodeInvalidRequest,
//	    "invalid request payload",
//	    errors.FieldError{Field: "ingredients", Reason: "field required"},
//	)
//
// Collaborator failures are wrapped so the cause stays reachable through
// errors.Is and errors.As:
//
//	err := errors.Wrap(errors.ErrCodeInternal, "analysis failed", cause)
package errors
