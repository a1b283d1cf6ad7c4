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
	"log/slog"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/NVIDIA/ingredient-checker/pkg/analysis"
	"github.com/NVIDIA/ingredient-checker/pkg/api"
	"github.com/NVIDIA/ingredient-checker/pkg/config"
	"github.com/NVIDIA/ingredient-checker/pkg/serializer"
)

const (
	flagOutput      = "output"
	flagFormat      = "format"
	flagAnalyzerURL = "analyzer-url"
	flagRules       = "rules"
)

// Flag constructors return fresh instances; urfave flags keep parse state.

func outputFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    flagOutput,
		Aliases: []string{"o"},
		Usage:   "output file path (default: stdout)",
	}
}

func formatFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    flagFormat,
		Aliases: []string{"t"},
		Value:   string(serializer.FormatJSON),
		Usage:   fmt.Sprintf("output format (supported values: %s)", strings.Join(serializer.SupportedFormats(), ", ")),
	}
}

func analyzerURLFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    flagAnalyzerURL,
		Usage:   "base URL of a remote analysis engine; the built-in heuristic engine is used when empty",
		Sources: cli.EnvVars("ANALYZER_URL"),
	}
}

func rulesFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    flagRules,
		Usage:   "YAML or JSON rule set for the heuristic engine (default: embedded rules)",
		Sources: cli.EnvVars("RULES_PATH"),
	}
}

// parseOutputFormat returns the validated --format value.
func parseOutputFormat(cmd *cli.Command) (serializer.Format, error) {
	f := serializer.Format(strings.ToLower(strings.TrimSpace(cmd.String(flagFormat))))
	if f.IsUnknown() {
		return "", fmt.Errorf("unknown output format: %q, supported values: %s",
			cmd.String(flagFormat), strings.Join(serializer.SupportedFormats(), ", "))
	}
	return f, nil
}

// loadConfig reads the process configuration and applies analyzer flags.
func loadConfig(cmd *cli.Command) (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	if cmd.IsSet(flagAnalyzerURL) {
		cfg.AnalyzerURL = strings.TrimRight(cmd.String(flagAnalyzerURL), "/")
	}
	if cmd.IsSet(flagRules) {
		cfg.RulesPath = cmd.String(flagRules)
	}
	return cfg, nil
}

// newAnalyzer builds the analysis engine selected by the command flags.
func newAnalyzer(cmd *cli.Command) (analysis.Analyzer, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	return api.NewAnalyzer(cfg)
}

// writeOutput serializes v to --output in --format.
func writeOutput(ctx context.Context, cmd *cli.Command, v any) error {
	format, err := parseOutputFormat(cmd)
	if err != nil {
		return err
	}

	ser := serializer.NewFileWriterOrStdout(format, cmd.String(flagOutput))
	defer func() {
		if err := ser.Close(); err != nil {
			slog.Warn("failed to close serializer", "error", err)
		}
	}()

	return ser.Serialize(ctx, v)
}
