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
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"golang.org/x/time/rate"
)

// newBareServer returns a Server with only what the middleware needs.
func newBareServer(limit rate.Limit, burst int) *Server {
	return &Server{
		config:      NewConfig(),
		rateLimiter: rate.NewLimiter(limit, burst),
	}
}

func okHandler(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
}

func TestRequestIDMiddleware(t *testing.T) {
	s := newBareServer(100, 200)
	provided := uuid.New().String()

	tests := []struct {
		name   string
		header string
		keep   bool
	}{
		{"generates when missing", "", false},
		{"keeps valid uuid", provided, true},
		{"replaces invalid value", "invalid-not-a-uuid", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var captured string
			handler := s.requestIDMiddleware(func(w http.ResponseWriter, r *http.Request) {
				captured = RequestIDFromContext(r.Context())
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, "/check", nil)
			if tt.header != "" {
				req.Header.Set("X-Request-Id", tt.header)
			}
			rec := httptest.NewRecorder()
			handler(rec, req)

			if _, err := uuid.Parse(captured); err != nil {
				t.Fatalf("expected valid UUID in context, got %q", captured)
			}
			if tt.keep && captured != tt.header {
				t.Errorf("expected request ID %s, got %s", tt.header, captured)
			}
			if !tt.keep && captured == tt.header {
				t.Errorf("expected request ID %q to be replaced", tt.header)
			}
			if got := rec.Header().Get("X-Request-Id"); got != captured {
				t.Errorf("expected X-Request-Id header %s, got %s", captured, got)
			}
		})
	}
}

func TestVersionMiddleware(t *testing.T) {
	s := newBareServer(100, 200)

	var captured string
	handler := s.versionMiddleware(func(w http.ResponseWriter, r *http.Request) {
		captured = APIVersionFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/check", nil)
	req.Header.Set("Accept", "application/vnd.nvidia.ingredient-checker.v1+json")
	rec := httptest.NewRecorder()
	handler(rec, req)

	if captured != "v1" {
		t.Errorf("expected v1 in context, got %q", captured)
	}
	if rec.Header().Get("X-API-Version") != "v1" {
		t.Errorf("expected X-API-Version v1, got %q", rec.Header().Get("X-API-Version"))
	}
}

func TestRateLimitMiddleware_AllowsRequests(t *testing.T) {
	s := newBareServer(100, 200)

	called := false
	handler := s.rateLimitMiddleware(func(w http.ResponseWriter, _ *http.Request) {
		called = true
		w.WriteHeader(http.StatusOK)
	})

	rec := httptest.NewRecorder()
	handler(rec, httptest.NewRequest(http.MethodPost, "/check", nil))

	if !called {
		t.Error("expected handler to be called")
	}
	for _, header := range []string{"X-RateLimit-Limit", "X-RateLimit-Remaining", "X-RateLimit-Reset"} {
		if rec.Header().Get(header) == "" {
			t.Errorf("expected %s header", header)
		}
	}
}

func TestRateLimitMiddleware_RejectsWhenExceeded(t *testing.T) {
	s := newBareServer(0, 0)

	called := false
	handler := s.rateLimitMiddleware(func(w http.ResponseWriter, _ *http.Request) {
		called = true
	})

	rec := httptest.NewRecorder()
	handler(rec, httptest.NewRequest(http.MethodPost, "/check", nil))

	if called {
		t.Error("handler should not be called when rate limited")
	}
	if rec.Code != http.StatusTooManyRequests {
		t.Errorf("expected status 429, got %d", rec.Code)
	}
	if rec.Header().Get("Retry-After") == "" {
		t.Error("expected Retry-After header when rate limited")
	}
	resp := decodeError(t, rec)
	if resp.Code != "RATE_LIMIT_EXCEEDED" || !resp.Retryable {
		t.Errorf("unexpected envelope %+v", resp)
	}
}

func TestPanicRecoveryMiddleware(t *testing.T) {
	s := newBareServer(100, 200)

	t.Run("recovers panic", func(t *testing.T) {
		handler := s.panicRecoveryMiddleware(func(http.ResponseWriter, *http.Request) {
			panic("test panic")
		})
		rec := httptest.NewRecorder()
		handler(rec, httptest.NewRequest(http.MethodGet, "/check", nil))

		if rec.Code != http.StatusInternalServerError {
			t.Errorf("expected status 500, got %d", rec.Code)
		}
		if resp := decodeError(t, rec); resp.Code != "INTERNAL" {
			t.Errorf("expected INTERNAL, got %s", resp.Code)
		}
	})

	t.Run("passes normal requests", func(t *testing.T) {
		rec := httptest.NewRecorder()
		s.panicRecoveryMiddleware(okHandler)(rec, httptest.NewRequest(http.MethodGet, "/check", nil))

		if rec.Code != http.StatusOK {
			t.Errorf("expected status 200, got %d", rec.Code)
		}
	})
}

func TestLoggingMiddleware_TracksStatusCode(t *testing.T) {
	s := newBareServer(100, 200)

	for _, status := range []int{http.StatusOK, http.StatusBadRequest, http.StatusRequestEntityTooLarge, http.StatusInternalServerError} {
		t.Run(http.StatusText(status), func(t *testing.T) {
			handler := s.requestIDMiddleware(s.loggingMiddleware(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(status)
			}))

			rec := httptest.NewRecorder()
			handler(rec, httptest.NewRequest(http.MethodPost, "/check", nil))

			if rec.Code != status {
				t.Errorf("expected status %d, got %d", status, rec.Code)
			}
		})
	}
}

func TestResponseWriter(t *testing.T) {
	rec := httptest.NewRecorder()
	rw := newResponseWriter(rec)

	rw.WriteHeader(http.StatusAccepted)
	rw.WriteHeader(http.StatusTeapot)
	if _, err := rw.Write([]byte("hello")); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	if rw.Status() != http.StatusAccepted || rec.Code != http.StatusAccepted {
		t.Errorf("expected first status to win, got %d/%d", rw.Status(), rec.Code)
	}
	if rw.BytesWritten() != 5 {
		t.Errorf("expected 5 bytes, got %d", rw.BytesWritten())
	}
	if rw.Unwrap() != rec {
		t.Error("expected Unwrap to return the wrapped writer")
	}
}

func TestMiddlewareChain(t *testing.T) {
	s := newBareServer(100, 200)

	var hasRequestID bool
	handler := s.withMiddleware(func(w http.ResponseWriter, r *http.Request) {
		hasRequestID = RequestIDFromContext(r.Context()) != ""
		w.WriteHeader(http.StatusOK)
	})

	rec := httptest.NewRecorder()
	handler(rec, httptest.NewRequest(http.MethodPost, "/check", nil))

	if !hasRequestID {
		t.Error("expected request ID in context")
	}
	for _, header := range []string{"X-Request-Id", "X-RateLimit-Limit", "X-RateLimit-Remaining", "X-RateLimit-Reset", "X-API-Version"} {
		if rec.Header().Get(header) == "" {
			t.Errorf("expected header %s to be set", header)
		}
	}
}
