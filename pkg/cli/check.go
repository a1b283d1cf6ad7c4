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
	"io"
	"maps"
	"os"
	"path/filepath"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/NVIDIA/ingredient-checker/pkg/analysis"
	"github.com/NVIDIA/ingredient-checker/pkg/defaults"
	"github.com/NVIDIA/ingredient-checker/pkg/header"
	"github.com/NVIDIA/ingredient-checker/pkg/payload"
)

// CheckReport is the output of the check command.
type CheckReport struct {
	header.Header `json:",inline" yaml:",inline"`

	Input  *payload.Payload `json:"input" yaml:"input"`
	Result *analysis.Result `json:"result" yaml:"result"`
}

func checkCmd() *cli.Command {
	return &cli.Command{
		Name:      "check",
		Usage:     "Analyze an ingredient list",
		ArgsUsage: "[ingredients...]",
		Description: `Analyzes an ingredient list with the configured engine.

The list is taken from the arguments, from --file, or from stdin, in that
order. A file is decoded the same way the service decodes a request body:
JSON files and form-encoded files are recognized by --content-type, or by the
.json extension, and anything else is read as plain text.

Examples:

  checker check "Water, Sugar, Palm Oil"
  checker check --diet vegan --allergy nuts -f label.txt
  echo '{"ingredients":"Milk, Oats"}' | checker check --content-type application/json`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "file",
				Aliases: []string{"f"},
				Usage:   "read the payload from a file (\"-\" for stdin)",
			},
			&cli.StringFlag{
				Name:  "content-type",
				Usage: "media type of the payload (default: from the file extension, else text/plain)",
			},
			&cli.StringFlag{
				Name:  "preferences",
				Usage: `preferences as a JSON object, e.g. '{"diet":"vegan","allergies":["nuts"]}'`,
			},
			&cli.StringFlag{
				Name:  "diet",
				Usage: "diet preference (e.g. vegetarian, vegan, jain)",
			},
			&cli.StringSliceFlag{
				Name:  "allergy",
				Usage: "allergen to check for, repeatable (e.g. gluten, nuts)",
			},
			analyzerURLFlag(),
			rulesFlag(),
			outputFlag(),
			formatFlag(),
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if _, err := parseOutputFormat(cmd); err != nil {
				return err
			}

			p, err := readPayload(cmd)
			if err != nil {
				return err
			}

			engine, err := newAnalyzer(cmd)
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(ctx, defaults.CheckHandlerTimeout)
			defer cancel()

			result, err := engine.Analyze(ctx, p.Ingredients, p.Preferences)
			if err != nil {
				return fmt.Errorf("analysis failed: %w", err)
			}

			report := CheckReport{Input: p, Result: result}
			report.Init(header.KindCheckReport, version)
			report.Set("source", result.Source)

			return writeOutput(ctx, cmd, report)
		},
	}
}

// readPayload resolves and validates the payload described by the command.
func readPayload(cmd *cli.Command) (*payload.Payload, error) {
	in := &payload.Request{ContentType: cmd.String("content-type")}

	switch path := cmd.String("file"); {
	case cmd.Args().Len() > 0:
		in.Body = []byte(strings.Join(cmd.Args().Slice(), " "))
	case path != "" && path != "-":
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read %q: %w", path, err)
		}
		in.Body = data
		if in.ContentType == "" && strings.EqualFold(filepath.Ext(path), ".json") {
			in.ContentType = "application/json"
		}
	default:
		data, err := io.ReadAll(io.LimitReader(stdin(cmd), defaults.MaxRequestBodyBytes+1))
		if err != nil {
			return nil, fmt.Errorf("failed to read stdin: %w", err)
		}
		if int64(len(data)) > defaults.MaxRequestBodyBytes {
			return nil, fmt.Errorf("%s: limit is %d bytes", payload.ReasonBodyTooLarge, defaults.MaxRequestBodyBytes)
		}
		in.Body = data
	}

	p, _, err := payload.NewResolver().ResolveRequest(in)
	if err != nil {
		return nil, err
	}
	p, err = payload.Validate(p)
	if err != nil {
		return nil, err
	}

	prefs, err := preferencesFromFlags(cmd)
	if err != nil {
		return nil, err
	}
	if prefs != nil {
		merged := payload.Preferences{}
		maps.Copy(merged, p.Preferences)
		maps.Copy(merged, prefs)
		p.Preferences = merged
	}
	return p, nil
}

// preferencesFromFlags builds preferences from --preferences, --diet and
// --allergy. It returns nil when none is set.
func preferencesFromFlags(cmd *cli.Command) (payload.Preferences, error) {
	var prefs payload.Preferences
	if raw := cmd.String("preferences"); raw != "" {
		prefs = payload.ParsePreferences(raw)
		if prefs == nil {
			return nil, fmt.Errorf("--preferences must be a JSON object, got %q", raw)
		}
	}

	if diet := strings.TrimSpace(cmd.String("diet")); diet != "" {
		if prefs == nil {
			prefs = payload.Preferences{}
		}
		prefs[analysis.PreferenceDiet] = diet
	}
	if allergies := cmd.StringSlice("allergy"); len(allergies) > 0 {
		if prefs == nil {
			prefs = payload.Preferences{}
		}
		list := make([]any, 0, len(allergies))
		for _, a := range allergies {
			list = append(list, a)
		}
		prefs[analysis.PreferenceAllergies] = list
	}
	return prefs, nil
}

func stdin(cmd *cli.Command) io.Reader {
	if r := cmd.Root().Reader; r != nil {
		return r
	}
	return os.Stdin
}
