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

package cli

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/NVIDIA/ingredient-checker/pkg/defaults"
	"github.com/NVIDIA/ingredient-checker/pkg/header"
)

// CapabilitiesReport is the output of the capabilities command.
type CapabilitiesReport struct {
	header.Header `json:",inline" yaml:",inline"`

	Capabilities map[string]any `json:"capabilities" yaml:"capabilities"`
}

func capabilitiesCmd() *cli.Command {
	return &cli.Command{
		Name:  "capabilities",
		Usage: "Describe the configured analysis engine",
		Flags: []cli.Flag{
			analyzerURLFlag(),
			rulesFlag(),
			outputFlag(),
			formatFlag(),
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if _, err := parseOutputFormat(cmd); err != nil {
				return err
			}

			engine, err := newAnalyzer(cmd)
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(ctx, defaults.CapabilitiesHandlerTimeout)
			defer cancel()

			caps, err := engine.Capabilities(ctx)
			if err != nil {
				return fmt.Errorf("capabilities unavailable: %w", err)
			}

			report := CapabilitiesReport{Capabilities: caps}
			report.Init(header.KindCapabilities, version)
			return writeOutput(ctx, cmd, report)
		},
	}
}
