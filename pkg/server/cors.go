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
	"log/slog"
	"net/http"
	"regexp"
	"slices"

	"github.com/NVIDIA/ingredient-checker/pkg/logging"
	"github.com/rs/cors"
)

// CORSConfig is the cross-origin policy. An origin is allowed when it is in
// AllowedOrigins or matches AllowedOriginPattern.
type CORSConfig struct {
	AllowedOrigins       []string
	AllowedOriginPattern *regexp.Regexp
	AllowCredentials     bool

	// AllowedMethods defaults to GET, HEAD and POST. AllowedHeaders defaults
	// to any header the preflight asks for.
	AllowedMethods []string
	AllowedHeaders []string

	// MaxAge is how long, in seconds, browsers may cache a preflight answer.
	MaxAge int
}

// Allows reports whether origin may make cross-origin requests.
func (c *CORSConfig) Allows(origin string) bool {
	if c == nil || origin == "" {
		return false
	}
	if slices.Contains(c.AllowedOrigins, "*") || slices.Contains(c.AllowedOrigins, origin) {
		return true
	}
	return c.AllowedOriginPattern != nil && c.AllowedOriginPattern.MatchString(origin)
}

// options maps the policy onto the cors package.
func (c *CORSConfig) options() cors.Options {
	methods := c.AllowedMethods
	if len(methods) == 0 {
		methods = []string{http.MethodGet, http.MethodHead, http.MethodPost}
	}
	headers := c.AllowedHeaders
	if len(headers) == 0 {
		headers = []string{"*"}
	}
	return cors.Options{
		AllowOriginFunc:  c.Allows,
		AllowedMethods:   methods,
		AllowedHeaders:   headers,
		ExposedHeaders:   []string{"X-Request-Id", "X-API-Version", "Retry-After"},
		AllowCredentials: c.AllowCredentials,
		MaxAge:           c.MaxAge,
		Debug:            slog.Default().Enabled(context.Background(), slog.LevelDebug),
		Logger:           logging.NewLogLogger(slog.LevelDebug, false),
	}
}

func isPreflight(r *http.Request) bool {
	return r.Method == http.MethodOptions &&
		r.Header.Get("Origin") != "" &&
		r.Header.Get("Access-Control-Request-Method") != ""
}

// corsMiddleware applies the configured CORS policy. Preflight requests from
// allowed origins are answered with 204; preflights from other origins get
// 403. Simple requests from other origins pass through without CORS headers,
// leaving the browser to block them. Requests without an Origin are not
// touched.
func (s *Server) corsMiddleware(next http.HandlerFunc) http.HandlerFunc {
	policy := s.config.CORS
	if policy == nil {
		return next
	}
	handler := cors.New(policy.options()).Handler(next)

	return func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if origin == "" {
			next.ServeHTTP(w, r)
			return
		}

		if !policy.Allows(origin) {
			corsRejects.Inc()
			if isPreflight(r) {
				w.Header().Add("Vary", "Origin")
				w.WriteHeader(http.StatusForbidden)
				return
			}
		}
		handler.ServeHTTP(w, r)
	}
}
