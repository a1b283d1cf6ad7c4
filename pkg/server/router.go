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
	"fmt"
	"log/slog"
	"net/http"
	"sort"
	"time"

	cnserrors "github.com/NVIDIA/ingredient-checker/pkg/errors"
	"github.com/NVIDIA/ingredient-checker/pkg/serializer"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// System routes, served without rate limiting.
const (
	routeHealthz = "/healthz"
	routeHealth  = "/health"
	routeReady   = "/ready"
	routeMetrics = "/metrics"
	routeRoot    = "/"
)

// setupRoutes configures all HTTP routes and middleware
func (s *Server) setupRoutes() http.Handler {
	mux := http.NewServeMux()

	// System endpoints (no rate limiting)
	mux.HandleFunc(routeHealthz, s.withSystemMiddleware(s.handleHealthz))
	mux.HandleFunc(routeHealth, s.withSystemMiddleware(s.handleHealth))
	mux.HandleFunc(routeReady, s.withSystemMiddleware(s.handleReady))
	mux.Handle(routeMetrics, promhttp.Handler())

	// API endpoints with middleware
	for path, handler := range s.config.Handlers {
		mux.HandleFunc(path, s.withMiddleware(handler))
	}

	return mux
}

// RootResponse is the body of GET /.
type RootResponse struct {
	Name      string   `json:"name" yaml:"name"`
	Version   string   `json:"version" yaml:"version"`
	Message   string   `json:"message" yaml:"message"`
	Ready     bool     `json:"ready" yaml:"ready"`
	Timestamp string   `json:"timestamp" yaml:"timestamp"`
	Routes    []string `json:"routes" yaml:"routes"`
}

// routes lists every served path, sorted.
func (s *Server) routes() []string {
	paths := []string{routeHealthz, routeHealth, routeReady, routeMetrics}
	for path := range s.config.Handlers {
		if path != routeRoot {
			paths = append(paths, path)
		}
	}
	sort.Strings(paths)
	return paths
}

// handleDefault serves the service banner at "/" and a NOT_FOUND envelope
// for any path no other route matched.
func (s *Server) handleDefault(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != routeRoot {
		WriteError(w, r, http.StatusNotFound, cnserrors.ErrCodeNotFound,
			"Route not found", false, map[string]any{"path": r.URL.Path})
		return
	}
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.Header().Set("Allow", "GET, HEAD")
		WriteError(w, r, http.StatusMethodNotAllowed, cnserrors.ErrCodeMethodNotAllowed,
			"Method not allowed", false, map[string]any{"method": r.Method})
		return
	}

	slog.Debug("handling default route",
		"path", r.URL.Path,
		"method", r.Method,
		"remote_addr", r.RemoteAddr,
		"user_agent", r.UserAgent(),
	)

	serializer.RespondJSON(w, http.StatusOK, RootResponse{
		Name:      s.config.Name,
		Version:   s.config.Version,
		Message:   fmt.Sprintf("%s is running", s.config.Name),
		Ready:     s.isReady(),
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Routes:    s.routes(),
	})
}
