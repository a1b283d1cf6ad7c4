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
	"regexp"
	"strings"
	"testing"
)

func newCORSServer() *Server {
	s := newBareServer(100, 200)
	s.config.CORS = &CORSConfig{
		AllowedOrigins:       []string{"http://localhost:5173"},
		AllowedOriginPattern: regexp.MustCompile(`^https://([^.]+-)*clean-food-app.*\.vercel\.app$`),
		AllowCredentials:     true,
		MaxAge:               600,
	}
	return s
}

func TestCORSConfigAllows(t *testing.T) {
	cors := newCORSServer().config.CORS

	tests := []struct {
		origin string
		want   bool
	}{
		{"http://localhost:5173", true},
		{"https://clean-food-app.vercel.app", true},
		{"https://feature-x-clean-food-app-git-main.vercel.app", true},
		{"https://evil.example.com", false},
		{"http://clean-food-app.vercel.app", false},
		{"", false},
	}
	for _, tt := range tests {
		t.Run(tt.origin, func(t *testing.T) {
			if got := cors.Allows(tt.origin); got != tt.want {
				t.Errorf("Allows(%q) = %v, want %v", tt.origin, got, tt.want)
			}
		})
	}

	var disabled *CORSConfig
	if disabled.Allows("http://localhost:5173") {
		t.Error("nil config should allow nothing")
	}
	if !(&CORSConfig{AllowedOrigins: []string{"*"}}).Allows("https://any.example.com") {
		t.Error("wildcard should allow any origin")
	}
}

func TestCORSMiddleware_AllowedOrigin(t *testing.T) {
	s := newCORSServer()

	called := false
	handler := s.corsMiddleware(func(w http.ResponseWriter, _ *http.Request) {
		called = true
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodPost, "/check", nil)
	req.Header.Set("Origin", "https://clean-food-app.vercel.app")
	rec := httptest.NewRecorder()
	handler(rec, req)

	if !called {
		t.Fatal("expected handler to be called")
	}
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "https://clean-food-app.vercel.app" {
		t.Errorf("expected origin to be echoed, got %q", got)
	}
	if rec.Header().Get("Access-Control-Allow-Credentials") != "true" {
		t.Error("expected credentials to be allowed")
	}
	if rec.Header().Get("Vary") != "Origin" {
		t.Errorf("expected Vary: Origin, got %q", rec.Header().Get("Vary"))
	}
	if rec.Header().Get("Access-Control-Expose-Headers") == "" {
		t.Error("expected exposed headers")
	}
}

func TestCORSMiddleware_Preflight(t *testing.T) {
	s := newCORSServer()

	called := false
	handler := s.corsMiddleware(func(http.ResponseWriter, *http.Request) { called = true })

	req := httptest.NewRequest(http.MethodOptions, "/check", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	req.Header.Set("Access-Control-Request-Headers", "content-type")
	rec := httptest.NewRecorder()
	handler(rec, req)

	if called {
		t.Error("preflight should not reach the handler")
	}
	if rec.Code != http.StatusNoContent {
		t.Errorf("expected status 204, got %d", rec.Code)
	}
	if got := rec.Header().Get("Access-Control-Allow-Methods"); got != http.MethodPost {
		t.Errorf("expected requested method to be echoed, got %q", got)
	}
	if got := rec.Header().Get("Access-Control-Allow-Headers"); !strings.EqualFold(got, "content-type") {
		t.Errorf("expected requested headers to be echoed, got %q", got)
	}
	if got := rec.Header().Get("Access-Control-Max-Age"); got != "600" {
		t.Errorf("expected max age 600, got %q", got)
	}
}

func TestCORSMiddleware_PreflightConfiguredMethods(t *testing.T) {
	s := newCORSServer()
	s.config.CORS.AllowedMethods = []string{http.MethodGet, http.MethodPost}

	tests := []struct {
		method      string
		wantMethods string
		wantOrigin  string
	}{
		{http.MethodPost, http.MethodPost, "http://localhost:5173"},
		{http.MethodDelete, "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.method, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodOptions, "/check", nil)
			req.Header.Set("Origin", "http://localhost:5173")
			req.Header.Set("Access-Control-Request-Method", tt.method)
			rec := httptest.NewRecorder()
			s.corsMiddleware(okHandler)(rec, req)

			if got := rec.Header().Get("Access-Control-Allow-Methods"); got != tt.wantMethods {
				t.Errorf("Allow-Methods = %q, want %q", got, tt.wantMethods)
			}
			if got := rec.Header().Get("Access-Control-Allow-Origin"); got != tt.wantOrigin {
				t.Errorf("Allow-Origin = %q, want %q", got, tt.wantOrigin)
			}
		})
	}
}

func TestCORSMiddleware_Disabled(t *testing.T) {
	s := newBareServer(100, 200)

	req := httptest.NewRequest(http.MethodOptions, "/check", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()
	s.corsMiddleware(okHandler)(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("expected the handler to answer, got %d", rec.Code)
	}
	if rec.Header().Get("Access-Control-Allow-Origin") != "" {
		t.Error("expected no CORS headers without a policy")
	}
}

func TestCORSMiddleware_DisallowedOrigin(t *testing.T) {
	s := newCORSServer()

	t.Run("preflight rejected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodOptions, "/check", nil)
		req.Header.Set("Origin", "https://evil.example.com")
		req.Header.Set("Access-Control-Request-Method", http.MethodPost)
		rec := httptest.NewRecorder()
		s.corsMiddleware(okHandler)(rec, req)

		if rec.Code != http.StatusForbidden {
			t.Errorf("expected status 403, got %d", rec.Code)
		}
		if rec.Header().Get("Access-Control-Allow-Origin") != "" {
			t.Error("expected no Allow-Origin header for a disallowed origin")
		}
	})

	t.Run("simple request passes without headers", func(t *testing.T) {
		called := false
		req := httptest.NewRequest(http.MethodPost, "/check", nil)
		req.Header.Set("Origin", "https://evil.example.com")
		rec := httptest.NewRecorder()
		s.corsMiddleware(func(w http.ResponseWriter, _ *http.Request) {
			called = true
			w.WriteHeader(http.StatusOK)
		})(rec, req)

		if !called {
			t.Error("expected handler to be called")
		}
		if rec.Header().Get("Access-Control-Allow-Origin") != "" {
			t.Error("expected no Allow-Origin header for a disallowed origin")
		}
	})
}

func TestCORSMiddleware_NoOrigin(t *testing.T) {
	s := newCORSServer()

	rec := httptest.NewRecorder()
	s.corsMiddleware(okHandler)(rec, httptest.NewRequest(http.MethodGet, "/check", nil))

	if rec.Code != http.StatusOK {
		t.Errorf("expected status 200, got %d", rec.Code)
	}
	if rec.Header().Get("Vary") != "" || rec.Header().Get("Access-Control-Allow-Origin") != "" {
		t.Error("expected no CORS headers without an Origin")
	}
}
