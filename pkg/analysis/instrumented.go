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
	"context"
	"errors"
	"log/slog"
	"time"

	cnserrors "github.com/NVIDIA/ingredient-checker/pkg/errors"
)

// Instrumented wraps an Analyzer with latency and failure metrics.
type Instrumented struct {
	next Analyzer
	name string
}

// Instrument wraps next. name is used as the "analyzer" metric label.
func Instrument(next Analyzer, name string) *Instrumented {
	return &Instrumented{next: next, name: name}
}

// Analyze implements Analyzer.
func (i *Instrumented) Analyze(ctx context.Context, ingredients string, prefs map[string]any) (*Result, error) {
	start := time.Now()
	res, err := i.next.Analyze(ctx, ingredients, prefs)
	i.observe(operationAnalyze, start, err)
	return res, err
}

// Capabilities implements Analyzer.
func (i *Instrumented) Capabilities(ctx context.Context) (map[string]any, error) {
	start := time.Now()
	caps, err := i.next.Capabilities(ctx)
	i.observe(operationCapabilities, start, err)
	return caps, err
}

func (i *Instrumented) observe(operation string, start time.Time, err error) {
	analysisDuration.WithLabelValues(i.name, operation).Observe(time.Since(start).Seconds())
	if err == nil {
		return
	}

	kind := failureKind(err)
	analysisFailures.WithLabelValues(i.name, operation, kind).Inc()
	slog.Debug("analyzer call failed", "analyzer", i.name, "operation", operation, "kind", kind, "error", err)
}

// failureKind classifies err for the failures metric.
func failureKind(err error) string {
	switch {
	case errors.Is(err, context.Canceled):
		return "canceled"
	case errors.Is(err, context.DeadlineExceeded), cnserrors.HasCode(err, cnserrors.ErrCodeTimeout):
		return "timeout"
	case cnserrors.IsClientError(err):
		return "client"
	default:
		return "engine"
	}
}
