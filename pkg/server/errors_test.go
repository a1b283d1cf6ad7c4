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
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	cnserrors "github.com/NVIDIA/ingredient-checker/pkg/errors"
)

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) ErrorResponse {
	t.Helper()
	var resp ErrorResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode error response: %v", err)
	}
	return resp
}

func TestHTTPStatusFromCode(t *testing.T) {
	tests := []struct {
		code cnserrors.ErrorCode
		want int
	}{
		{cnserrors.ErrCodeInvalidRequest, http.StatusBadRequest},
		{cnserrors.ErrCodeNotFound, http.StatusNotFound},
		{cnserrors.ErrCodeMethodNotAllowed, http.StatusMethodNotAllowed},
		{cnserrors.ErrCodePayloadTooLarge, http.StatusRequestEntityTooLarge},
		{cnserrors.ErrCodeRateLimitExceeded, http.StatusTooManyRequests},
		{cnserrors.ErrCodeUnavailable, http.StatusServiceUnavailable},
		{cnserrors.ErrCodeTimeout, http.StatusGatewayTimeout},
		{cnserrors.ErrCodeInternal, http.StatusInternalServerError},
		{cnserrors.ErrorCode("SOMETHING_ELSE"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(string(tt.code), func(t *testing.T) {
			if got := HTTPStatusFromCode(tt.code); got != tt.want {
				t.Errorf("HTTPStatusFromCode(%s) = %d, want %d", tt.code, got, tt.want)
			}
		})
	}
}

func TestRetryableFromCode(t *testing.T) {
	retryable := []cnserrors.ErrorCode{
		cnserrors.ErrCodeTimeout, cnserrors.ErrCodeUnavailable,
		cnserrors.ErrCodeRateLimitExceeded, cnserrors.ErrCodeInternal,
	}
	for _, code := range retryable {
		if !retryableFromCode(code) {
			t.Errorf("expected %s to be retryable", code)
		}
	}

	final := []cnserrors.ErrorCode{
		cnserrors.ErrCodeInvalidRequest, cnserrors.ErrCodePayloadTooLarge,
		cnserrors.ErrCodeMethodNotAllowed, cnserrors.ErrCodeNotFound,
	}
	for _, code := range final {
		if retryableFromCode(code) {
			t.Errorf("expected %s not to be retryable", code)
		}
	}
}

func TestMergeDetails(t *testing.T) {
	if got := mergeDetails(nil, nil); got != nil {
		t.Errorf("expected nil for empty inputs, got %v", got)
	}

	a := map[string]any{"a": 1, "shared": "a"}
	b := map[string]any{"b": 2, "shared": "b"}
	got := mergeDetails(a, b)

	if len(got) != 3 || got["shared"] != "b" || got["a"] != 1 || got["b"] != 2 {
		t.Errorf("unexpected merge result %v", got)
	}
	if a["shared"] != "a" || len(a) != 2 {
		t.Errorf("expected input to be left untouched, got %v", a)
	}
}

func TestWriteError(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/check", nil)
	req = req.WithContext(context.WithValue(req.Context(), contextKeyRequestID, "req-123"))
	rec := httptest.NewRecorder()

	WriteError(rec, req, http.StatusBadRequest, cnserrors.ErrCodeInvalidRequest,
		"bad input", false, map[string]any{"k": "v"})

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected status 400, got %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("expected application/json, got %q", ct)
	}

	resp := decodeError(t, rec)
	if resp.Code != string(cnserrors.ErrCodeInvalidRequest) || resp.Message != "bad input" {
		t.Errorf("unexpected envelope %+v", resp)
	}
	if resp.RequestID != "req-123" {
		t.Errorf("expected request ID req-123, got %q", resp.RequestID)
	}
	if resp.Retryable {
		t.Error("expected retryable=false")
	}
	if resp.Details["k"] != "v" {
		t.Errorf("expected details to carry k=v, got %v", resp.Details)
	}
	if resp.Timestamp.IsZero() {
		t.Error("expected timestamp to be set")
	}
}

func TestWriteErrorGeneratesRequestID(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteError(rec, httptest.NewRequest(http.MethodGet, "/", nil),
		http.StatusNotFound, cnserrors.ErrCodeNotFound, "nope", false, nil)

	if resp := decodeError(t, rec); resp.RequestID == "" {
		t.Error("expected a generated request ID")
	}
}

func TestWriteErrorFromErr(t *testing.T) {
	tests := []struct {
		name          string
		err           error
		wantStatus    int
		wantCode      string
		wantMessage   string
		wantRetryable bool
		wantCause     bool
		wantFields    int
	}{
		{
			name:        "client error surfaces cause",
			err:         cnserrors.Wrap(cnserrors.ErrCodeInvalidRequest, "missing or invalid ingredients payload", errors.New("unexpected EOF")),
			wantStatus:  http.StatusBadRequest,
			wantCode:    "INVALID_REQUEST",
			wantMessage: "missing or invalid ingredients payload",
			wantCause:   true,
		},
		{
			name: "field errors are kept",
			err: cnserrors.NewWithFields(cnserrors.ErrCodeInvalidRequest, "ingredients must not be empty",
				cnserrors.FieldError{Field: "ingredients", Reason: "empty"}),
			wantStatus:  http.StatusBadRequest,
			wantCode:    "INVALID_REQUEST",
			wantMessage: "ingredients must not be empty",
			wantFields:  1,
		},
		{
			name:        "payload too large",
			err:         cnserrors.New(cnserrors.ErrCodePayloadTooLarge, "request body too large"),
			wantStatus:  http.StatusRequestEntityTooLarge,
			wantCode:    "PAYLOAD_TOO_LARGE",
			wantMessage: "request body too large",
		},
		{
			name:          "unavailable hides cause",
			err:           cnserrors.Wrap(cnserrors.ErrCodeUnavailable, "analyzer unavailable", errors.New("dial tcp 10.0.0.1:80: connection refused")),
			wantStatus:    http.StatusServiceUnavailable,
			wantCode:      "SERVICE_UNAVAILABLE",
			wantMessage:   "analyzer unavailable",
			wantRetryable: true,
		},
		{
			name:          "plain error becomes internal",
			err:           errors.New("boom"),
			wantStatus:    http.StatusInternalServerError,
			wantCode:      "INTERNAL",
			wantMessage:   "fallback message",
			wantRetryable: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			WriteErrorFromErr(rec, httptest.NewRequest(http.MethodPost, "/check", nil), tt.err, "fallback message", nil)

			if rec.Code != tt.wantStatus {
				t.Errorf("expected status %d, got %d", tt.wantStatus, rec.Code)
			}
			resp := decodeError(t, rec)
			if resp.Code != tt.wantCode {
				t.Errorf("expected code %s, got %s", tt.wantCode, resp.Code)
			}
			if resp.Message != tt.wantMessage {
				t.Errorf("expected message %q, got %q", tt.wantMessage, resp.Message)
			}
			if resp.Retryable != tt.wantRetryable {
				t.Errorf("expected retryable=%v, got %v", tt.wantRetryable, resp.Retryable)
			}
			if _, ok := resp.Details["error"]; ok != tt.wantCause {
				t.Errorf("expected cause present=%v, got details %v", tt.wantCause, resp.Details)
			}
			if len(resp.Fields) != tt.wantFields {
				t.Errorf("expected %d fields, got %v", tt.wantFields, resp.Fields)
			}
		})
	}
}

func TestWriteErrorFromErrMergesContext(t *testing.T) {
	err := cnserrors.NewWithContext(cnserrors.ErrCodeTimeout, "analysis timed out", map[string]any{"timeout": "10s"})
	rec := httptest.NewRecorder()
	WriteErrorFromErr(rec, httptest.NewRequest(http.MethodPost, "/check", nil), err, "unused",
		map[string]any{"analyzer": "remote"})

	if rec.Code != http.StatusGatewayTimeout {
		t.Errorf("expected status 504, got %d", rec.Code)
	}
	resp := decodeError(t, rec)
	if resp.Details["timeout"] != "10s" || resp.Details["analyzer"] != "remote" {
		t.Errorf("expected merged details, got %v", resp.Details)
	}
}
