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
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/NVIDIA/ingredient-checker/pkg/defaults"
	cnserrors "github.com/NVIDIA/ingredient-checker/pkg/errors"
)

// Option configures a Resolver.
type Option func(*Resolver)

// WithMaxBodyBytes caps how much of the request body is read.
func WithMaxBodyBytes(n int64) Option {
	return func(r *Resolver) {
		if n > 0 {
			r.maxBodyBytes = n
		}
	}
}

// WithMaxMultipartMemory sets the in-memory budget for multipart parsing.
func WithMaxMultipartMemory(n int64) Option {
	return func(r *Resolver) {
		if n > 0 {
			r.maxMultipartMemory = n
		}
	}
}

// WithStrategies replaces the decoding chain.
func WithStrategies(strategies ...Strategy) Option {
	return func(r *Resolver) {
		r.strategies = strategies
	}
}

// Resolver turns HTTP requests into payloads. It holds no per-request state
// and is safe for concurrent use.
type Resolver struct {
	strategies         []Strategy
	maxBodyBytes       int64
	maxMultipartMemory int64
}

// NewResolver returns a Resolver using the default strategy chain.
func NewResolver(opts ...Option) *Resolver {
	r := &Resolver{
		maxBodyBytes:       defaults.MaxRequestBodyBytes,
		maxMultipartMemory: defaults.MaxMultipartMemory,
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.strategies == nil {
		r.strategies = DefaultStrategies(r.maxMultipartMemory)
	}
	return r
}

// Strategies returns the names of the configured strategies in order.
func (r *Resolver) Strategies() []string {
	names := make([]string, 0, len(r.strategies))
	for _, s := range r.strategies {
		names = append(names, s.Name)
	}
	return names
}

// Resolve reads req and runs the strategy chain over it.
func (r *Resolver) Resolve(req *http.Request) (*Payload, error) {
	in, err := r.ReadRequest(req)
	if err != nil {
		return nil, err
	}
	p, _, err := r.ResolveRequest(in)
	return p, err
}

// ReadRequest snapshots the parts of req the strategies need. The body read
// stops at the configured cap and when the request context is done.
func (r *Resolver) ReadRequest(req *http.Request) (*Request, error) {
	ctx := req.Context()
	in := &Request{
		ContentType: req.Header.Get("Content-Type"),
		Query:       req.URL.Query(),
	}

	if req.Body == nil || req.Body == http.NoBody {
		return in, ctx.Err()
	}

	body := http.MaxBytesReader(nil, req.Body, r.maxBodyBytes)
	data, err := io.ReadAll(&contextReader{ctx: ctx, r: body})
	if err != nil {
		var tooLarge *http.MaxBytesError
		switch {
		case errors.As(err, &tooLarge):
			return nil, cnserrors.NewWithContext(cnserrors.ErrCodePayloadTooLarge, ReasonBodyTooLarge,
				map[string]any{"limit": tooLarge.Limit})
		case ctx.Err() != nil:
			return nil, ctx.Err()
		default:
			return nil, cnserrors.Wrap(cnserrors.ErrCodeInvalidRequest, "failed to read request body", err)
		}
	}

	in.Body = data
	return in, nil
}

// ResolveRequest runs the strategy chain and reports which strategy produced
// the payload. Errors returned by a strategy are terminal.
func (r *Resolver) ResolveRequest(in *Request) (*Payload, string, error) {
	var (
		fallback     *Payload
		fallbackName string
	)

	for _, s := range r.strategies {
		p, err := s.Attempt(in)
		if err != nil {
			recordResolution(s.Name, outcomeRejected)
			slog.Debug("payload rejected", "strategy", s.Name, "error", err)
			return nil, s.Name, err
		}
		if p == nil {
			continue
		}
		if !isBlank(p.Ingredients) {
			recordResolution(s.Name, outcomeResolved)
			slog.Debug("payload resolved", "strategy", s.Name)
			return p, s.Name, nil
		}
		if fallback == nil {
			fallback, fallbackName = p, s.Name
		}
	}

	if fallback != nil {
		recordResolution(fallbackName, outcomeBlank)
		slog.Debug("payload resolved with blank ingredients", "strategy", fallbackName)
		return fallback, fallbackName, nil
	}

	recordResolution(strategyNone, outcomeUnmatched)
	return nil, "", badRequest(ReasonMissingPayload)
}

type contextReader struct {
	ctx context.Context
	r   io.Reader
}

func (c *contextReader) Read(p []byte) (int, error) {
	if err := c.ctx.Err(); err != nil {
		return 0, err
	}
	return c.r.Read(p)
}
