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
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	outcomeResolved  = "resolved"
	outcomeBlank     = "blank"
	outcomeRejected  = "rejected"
	outcomeUnmatched = "unmatched"

	strategyNone = "none"
)

var payloadResolutions = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "ingredient_checker_payload_resolutions_total",
		Help: "Payload resolutions by deciding strategy and outcome",
	},
	[]string{"strategy", "outcome"},
)

func recordResolution(strategy, outcome string) {
	payloadResolutions.WithLabelValues(strategy, outcome).Inc()
}
