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
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	operationAnalyze      = "analyze"
	operationCapabilities = "capabilities"
)

var (
	analysisDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "ingredient_checker_analysis_duration_seconds",
			Help:    "Duration of analyzer calls in seconds",
			Buckets: []float64{.001, .005, .01, .05, .1, .25, .5, 1, 2.5, 5, 10, 25},
		},
		[]string{"analyzer", "operation"},
	)

	analysisFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ingredient_checker_analysis_failures_total",
			Help: "Total number of failed analyzer calls",
		},
		[]string{"analyzer", "operation", "kind"},
	)
)
