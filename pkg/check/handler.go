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

package check

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/NVIDIA/ingredient-checker/pkg/analysis"
	"github.com/NVIDIA/ingredient-checker/pkg/defaults"
	cnserrors "github.com/NVIDIA/ingredient-checker/pkg/errors"
	"github.com/NVIDIA/ingredient-checker/pkg/payload"
	"github.com/NVIDIA/ingredient-checker/pkg/serializer"
	"github.com/NVIDIA/ingredient-checker/pkg/server"
)

var (
	// handler timeouts can be overridden in tests
	checkTimeout        = defaults.CheckHandlerTimeout
	capabilitiesTimeout = defaults.CapabilitiesHandlerTimeout
)

// Handler serves /check and /capabilities.
type Handler struct {
	resolver *payload.Resolver
	analyzer analysis.Analyzer
}

// NewHandler returns a Handler. A nil resolver uses payload defaults.
func NewHandler(resolver *payload.Resolver, analyzer analysis.Analyzer) *Handler {
	if resolver == nil {
		resolver = payload.NewResolver()
	}
	return &Handler{
		resolver: resolver,
		analyzer: analyzer,
	}
}

// HandleCheck resolves the payload from the body (or the query string),
// validates it and returns the analysis result.
func (h *Handler) HandleCheck(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), checkTimeout)
	defer cancel()

	switch r.Method {
	case http.MethodPost, http.MethodGet:
	default:
		w.Header().Set("Allow", "GET, POST")
		server.WriteError(w, r, http.StatusMethodNotAllowed, cnserrors.ErrCodeMethodNotAllowed,
			"Method not allowed", false, map[string]any{
				"method":  r.Method,
				"allowed": []string{"GET", "POST"},
			})
		return
	}
	if r.Body != nil {
		defer r.Body.Close()
	}

	p, err := h.resolver.Resolve(r.WithContext(ctx))
	if err != nil {
		h.writeRequestError(w, r, err)
		return
	}

	p, err = payload.Validate(p)
	if err != nil {
		h.writeRequestError(w, r, err)
		return
	}

	if err := ctx.Err(); err != nil {
		h.writeRequestError(w, r, err)
		return
	}

	slog.Debug("checking ingredients",
		"requestID", server.RequestIDFromContext(r.Context()),
		"length", len(p.Ingredients),
		"preferences", len(p.Preferences),
	)

	result, err := h.analyzer.Analyze(ctx, p.Ingredients, p.Preferences)
	if err != nil {
		if cause := ctx.Err(); cause != nil {
			writeAborted(w, r, cause, "request aborted during analysis")
			return
		}
		if cnserrors.IsClientError(err) {
			server.WriteErrorFromErr(w, r, err, "Invalid ingredients payload", nil)
			return
		}
		server.WriteErrorFromErr(w, r, analysisFailed(err), "analysis failed", nil)
		return
	}

	serializer.RespondJSON(w, http.StatusOK, result)
}

// HandleCapabilities returns the analyzer's capability snapshot.
func (h *Handler) HandleCapabilities(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), capabilitiesTimeout)
	defer cancel()

	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.Header().Set("Allow", "GET, HEAD")
		server.WriteError(w, r, http.StatusMethodNotAllowed, cnserrors.ErrCodeMethodNotAllowed,
			"Method not allowed", false, map[string]any{
				"method":  r.Method,
				"allowed": []string{"GET", "HEAD"},
			})
		return
	}

	caps, err := h.analyzer.Capabilities(ctx)
	if err != nil {
		se, ok := cnserrors.As(err)
		msg := err.Error()
		if ok {
			msg = se.Message
		}
		server.WriteErrorFromErr(w, r,
			cnserrors.Wrap(cnserrors.ErrCodeInternal, fmt.Sprintf("capabilities unavailable: %s", msg), err),
			"capabilities unavailable", nil)
		return
	}

	serializer.RespondJSON(w, http.StatusOK, caps)
}

// writeRequestError answers a resolution or validation failure. A request
// whose context ended is answered with TIMEOUT; the client is usually gone.
func (h *Handler) writeRequestError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		writeAborted(w, r, err, "request aborted before analysis")
		return
	}
	server.WriteErrorFromErr(w, r, err, "Invalid ingredients payload", nil)
}

// writeAborted answers a request whose deadline passed or whose client left.
func writeAborted(w http.ResponseWriter, r *http.Request, err error, msg string) {
	slog.Debug("check aborted", "requestID", server.RequestIDFromContext(r.Context()), "error", err)
	server.WriteErrorFromErr(w, r, cnserrors.Wrap(cnserrors.ErrCodeTimeout, msg, err), "request aborted", nil)
}

// analysisFailed wraps a collaborator failure, keeping only its message.
func analysisFailed(err error) error {
	msg := err.Error()
	if se, ok := cnserrors.As(err); ok {
		msg = se.Message
	}
	return cnserrors.Wrap(cnserrors.ErrCodeInternal, fmt.Sprintf("analysis failed: %s", msg), err)
}
