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

	"github.com/urfave/cli/v3"

	"github.com/NVIDIA/ingredient-checker/pkg/analysis"
	"github.com/NVIDIA/ingredient-checker/pkg/api"
	"github.com/NVIDIA/ingredient-checker/pkg/header"
)

// RulesReport is the output of the rules command.
type RulesReport struct {
	header.Header `json:",inline" yaml:",inline"`

	Rules *analysis.Rules `json:"rules" yaml:"rules"`
}

func rulesCmd() *cli.Command {
	return &cli.Command{
		Name:  "rules",
		Usage: "Print the effective heuristic rule set",
		Description: `Prints the rule set the heuristic engine would use: the file named by
--rules (or RULES_PATH), otherwise the embedded rules. The YAML output is a
valid rules file once the header fields are removed.`,
		Flags: []cli.Flag{
			rulesFlag(),
			outputFlag(),
			formatFlag(),
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if _, err := parseOutputFormat(cmd); err != nil {
				return err
			}

			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			rules, err := api.LoadRules(cfg)
			if err != nil {
				return err
			}

			report := RulesReport{Rules: rules}
			report.Init(header.KindRuleSet, version)
			report.Set("source", rules.Source)
			return writeOutput(ctx, cmd, report)
		},
	}
}
