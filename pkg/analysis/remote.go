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

package analysis

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/NVIDIA/ingredient-checker/pkg/defaults"
	cnserrors "github.com/NVIDIA/ingredient-checker/pkg/errors"
	"github.com/NVIDIA/ingredient-checker/pkg/serializer"
)

const (
	remoteAnalyzePath      = "analyze"
	remoteCapabilitiesPath = "capabilities"

	// maxErrorBodyBytes bounds how much of a failed response is kept.
	maxErrorBodyBytes = 4 << 10
)

// RemoteOption configures a Remote analyzer.
type RemoteOption func(*Remote)

// WithHTTPClient replaces the HTTP client used for upstream calls.
func WithHTTPClient(c *http.Client) RemoteOption {
	return func(r *Remote) {
		if c != nil {
			r.client = c
		}
	}
}

// WithRemoteTimeout bounds each upstream call.
func WithRemoteTimeout(d time.Duration) RemoteOption {
	return func(r *Remote) {
		if d > 0 {
			r.timeout = d
		}
	}
}

// Remote forwards analysis to an external engine over HTTP.
type Remote struct {
	base    *url.URL
	client  *http.Client
	timeout time.Duration
}

// NewRemote returns a Remote analyzer for the engine at baseURL.
func NewRemote(baseURL string, opts ...RemoteOption) (*Remote, error) {
	u, err := url.Parse(strings.TrimSpace(baseURL))
	if err != nil {
		return nil, cnserrors.Wrap(cnserrors.ErrCodeInvalidRequest, "invalid analyzer URL", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" || u.Host == "" {
		return nil, cnserrors.NewWithContext(cnserrors.ErrCodeInvalidRequest, "analyzer URL must be absolute http(s)",
			map[string]any{"url": baseURL})
	}

	r := &Remote{
		base:    u,
		timeout: defaults.AnalyzerTimeout,
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.client == nil {
		r.client = serializer.NewHTTPClient(serializer.WithTotalTimeout(r.timeout))
	}
	return r, nil
}

// Endpoint returns the engine base URL.
func (r *Remote) Endpoint() string {
	return r.base.String()
}

type analyzeRequest struct {
	Ingredients string         `json:"ingredients"`
	Preferences map[string]any `json:"preferences,omitempty"`
}

// Analyze implements Analyzer.
func (r *Remote) Analyze(ctx context.Context, ingredients string, prefs map[string]any) (*Result, error) {
	body, err := json.Marshal(analyzeRequest{Ingredients: ingredients, Preferences: prefs})
	if err != nil {
		return nil, cnserrors.Wrap(cnserrors.ErrCodeInternal, "failed to encode analyzer request", err)
	}

	var res Result
	if err := r.do(ctx, http.MethodPost, remoteAnalyzePath, body, &res); err != nil {
		return nil, err
	}
	res.normalizeSlices()
	return &res, nil
}

// Capabilities implements Analyzer.
func (r *Remote) Capabilities(ctx context.Context) (map[string]any, error) {
	var caps map[string]any
	if err := r.do(ctx, http.MethodGet, remoteCapabilitiesPath, nil, &caps); err != nil {
		return nil, err
	}
	if caps == nil {
		caps = map[string]any{}
	}
	return caps, nil
}

func (r *Remote) do(parent context.Context, method, path string, body []byte, out any) error {
	ctx, cancel := context.WithTimeout(parent, r.timeout)
	defer cancel()

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	endpoint := r.base.JoinPath(path).String()

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return cnserrors.Wrap(cnserrors.ErrCodeInternal, "failed to build analyzer request", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := r.client.Do(req)
	if err != nil {
		if cause := parent.Err(); cause != nil {
			return cnserrors.WrapWithContext(cnserrors.ErrCodeTimeout, "request ended before the analyzer responded", cause,
				map[string]any{"endpoint": endpoint})
		}
		var netErr net.Error
		if errors.Is(ctx.Err(), context.DeadlineExceeded) || errors.As(err, &netErr) && netErr.Timeout() {
			return cnserrors.WrapWithContext(cnserrors.ErrCodeTimeout, "analyzer did not respond in time", err,
				map[string]any{"endpoint": endpoint})
		}
		return cnserrors.WrapWithContext(cnserrors.ErrCodeUnavailable, "analyzer unreachable", err,
			map[string]any{"endpoint": endpoint})
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return upstreamError(resp)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return cnserrors.WrapWithContext(cnserrors.ErrCodeInternal, "invalid analyzer response", err,
			map[string]any{"endpoint": endpoint})
	}
	return nil
}

// upstreamBody is the subset of error shapes engines commonly return: the
// structured envelope used by this service, or a {"detail": ...} body.
type upstreamBody struct {
	Code    cnserrors.ErrorCode    `json:"code"`
	Message string                 `json:"message"`
	Fields  []cnserrors.FieldError `json:"fields"`
	Detail  any                    `json:"detail"`
}

// upstreamError converts a non-2xx response. A 4xx response that explains
// itself is reported as a client error; everything else is an engine
// failure carrying the status and a body excerpt.
func upstreamError(resp *http.Response) error {
	data, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))
	excerpt := strings.TrimSpace(string(data))

	var ub upstreamBody
	structured := json.Unmarshal(data, &ub) == nil

	if structured && resp.StatusCode >= 400 && resp.StatusCode < 500 {
		msg := ub.Message
		if msg == "" {
			if s, ok := ub.Detail.(string); ok {
				msg = s
			}
		}
		if msg != "" {
			return cnserrors.NewWithFields(cnserrors.ErrCodeInvalidRequest, msg, ub.Fields...)
		}
	}

	msg := fmt.Sprintf("analyzer returned status %d", resp.StatusCode)
	if structured && ub.Message != "" {
		msg = fmt.Sprintf("%s: %s", msg, ub.Message)
	} else if excerpt != "" {
		msg = fmt.Sprintf("%s: %s", msg, excerpt)
	}
	return cnserrors.NewWithContext(cnserrors.ErrCodeInternal, msg, map[string]any{"status": resp.StatusCode})
}
