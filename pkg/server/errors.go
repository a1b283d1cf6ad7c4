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

package server

import (
	"log/slog"
	"net/http"
	"time"

	cnserrors "github.com/NVIDIA/ingredient-checker/pkg/errors"
	"github.com/NVIDIA/ingredient-checker/pkg/serializer"
	"github.com/google/uuid"
)

// ErrorResponse is the body of every non-2xx JSON response.
type ErrorResponse struct {
	Code      string                 `json:"code" yaml:"code"`
	Message   string                 `json:"message" yaml:"message"`
	Fields    []cnserrors.FieldError `json:"fields,omitempty" yaml:"fields,omitempty"`
	Details   map[string]any         `json:"details,omitempty" yaml:"details,omitempty"`
	RequestID string                 `json:"requestId" yaml:"requestId"`
	Timestamp time.Time              `json:"timestamp" yaml:"timestamp"`
	Retryable bool                   `json:"retryable" yaml:"retryable"`
}

// HTTPStatusFromCode maps an error code to its HTTP status.
func HTTPStatusFromCode(code cnserrors.ErrorCode) int {
	switch code {
	case cnserrors.ErrCodeInvalidRequest:
		return http.StatusBadRequest
	case cnserrors.ErrCodeNotFound:
		return http.StatusNotFound
	case cnserrors.ErrCodeMethodNotAllowed:
		return http.StatusMethodNotAllowed
	case cnserrors.ErrCodePayloadTooLarge:
		return http.StatusRequestEntityTooLarge
	case cnserrors.ErrCodeRateLimitExceeded:
		return http.StatusTooManyRequests
	case cnserrors.ErrCodeUnavailable:
		return http.StatusServiceUnavailable
	case cnserrors.ErrCodeTimeout:
		return http.StatusGatewayTimeout
	case cnserrors.ErrCodeInternal:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}

func retryableFromCode(code cnserrors.ErrorCode) bool {
	switch code {
	case cnserrors.ErrCodeTimeout, cnserrors.ErrCodeUnavailable,
		cnserrors.ErrCodeRateLimitExceeded, cnserrors.ErrCodeInternal:
		return true
	default:
		return false
	}
}

// WriteError writes an error envelope with the given status.
func WriteError(w http.ResponseWriter, r *http.Request, statusCode int,
	code cnserrors.ErrorCode, message string, retryable bool, details map[string]any) {

	writeErrorResponse(w, r, statusCode, ErrorResponse{
		Code:      string(code),
		Message:   message,
		Details:   details,
		Retryable: retryable,
	})
}

// WriteErrorFromErr writes err as an error envelope. A StructuredError keeps
// its code, message, fields and context; the cause is surfaced only for
// client errors and logged otherwise. Any other error becomes INTERNAL with
// fallbackMessage.
func WriteErrorFromErr(w http.ResponseWriter, r *http.Request, err error, fallbackMessage string, details map[string]any) {
	requestID := RequestIDFromContext(r.Context())

	se, ok := cnserrors.As(err)
	if !ok {
		slog.Error("request failed", "requestID", requestID, "path", r.URL.Path, "error", err)
		writeErrorResponse(w, r, http.StatusInternalServerError, ErrorResponse{
			Code:      string(cnserrors.ErrCodeInternal),
			Message:   fallbackMessage,
			Details:   mergeDetails(nil, details),
			Retryable: true,
		})
		return
	}

	merged := mergeDetails(se.Context, details)
	if se.Cause != nil {
		if cnserrors.IsClientError(se) {
			merged = mergeDetails(merged, map[string]any{"error": se.Cause.Error()})
		} else {
			slog.Error("request failed", "requestID", requestID, "path", r.URL.Path,
				"code", se.Code, "error", se.Cause)
		}
	}

	writeErrorResponse(w, r, HTTPStatusFromCode(se.Code), ErrorResponse{
		Code:      string(se.Code),
		Message:   se.Message,
		Fields:    se.Fields,
		Details:   merged,
		Retryable: retryableFromCode(se.Code),
	})
}

func writeErrorResponse(w http.ResponseWriter, r *http.Request, statusCode int, resp ErrorResponse) {
	resp.RequestID = RequestIDFromContext(r.Context())
	if resp.RequestID == "" {
		resp.RequestID = uuid.New().String()
	}
	resp.Timestamp = time.Now().UTC()

	serializer.RespondJSON(w, statusCode, resp)
}

// mergeDetails returns a new map with the entries of a and b, b winning on
// conflicts. It returns nil when both are empty.
func mergeDetails(a, b map[string]any) map[string]any {
	if len(a) == 0 && len(b) == 0 {
		return nil
	}
	out := make(map[string]any, len(a)+len(b))
	for k, v := range a {
		out[k] = v
	}
	for k, v := range b {
		out[k] = v
	}
	return out
}
