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

	"github.com/NVIDIA/ingredient-checker/pkg/api"
	"github.com/NVIDIA/ingredient-checker/pkg/config"
)

func serveCmd() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Run the ingredient check HTTP service",
		Description: `Runs the HTTP service until SIGINT or SIGTERM.

Settings are read from a .env file (or the file named by ENV_FILE), then from
environment variables. Flags override both.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "address",
				Usage:   "interface to bind (default: all interfaces)",
				Sources: cli.EnvVars("ADDRESS"),
			},
			&cli.IntFlag{
				Name:    "port",
				Aliases: []string{"p"},
				Value:   config.Default().Port,
				Usage:   "listen port",
				Sources: cli.EnvVars("PORT"),
			},
			&cli.FloatFlag{
				Name:    "rate-limit",
				Value:   config.Default().RateLimit,
				Usage:   "requests per second admitted to application routes",
				Sources: cli.EnvVars("RATE_LIMIT"),
			},
			&cli.IntFlag{
				Name:    "rate-limit-burst",
				Value:   config.Default().RateLimitBurst,
				Usage:   "rate limiter burst size",
				Sources: cli.EnvVars("RATE_LIMIT_BURST"),
			},
			&cli.StringSliceFlag{
				Name:  "cors-origin",
				Usage: "allowed browser origin, repeatable (replaces CORS_ALLOWED_ORIGINS)",
			},
			analyzerURLFlag(),
			rulesFlag(),
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if err := applyServeFlags(cmd, cfg); err != nil {
				return err
			}
			cfg.LogLevel = cmd.Root().String("log-level")
			return api.Run(ctx, cfg)
		},
	}
}

// applyServeFlags copies explicitly set flags onto cfg.
func applyServeFlags(cmd *cli.Command, cfg *config.Config) error {
	if cmd.IsSet("address") {
		cfg.Address = cmd.String("address")
	}
	if cmd.IsSet("port") {
		port := cmd.Int("port")
		if port <= 0 || port > 65535 {
			return fmt.Errorf("invalid port %d", port)
		}
		cfg.Port = port
	}
	if cmd.IsSet("rate-limit") {
		cfg.RateLimit = cmd.Float("rate-limit")
	}
	if cmd.IsSet("rate-limit-burst") {
		cfg.RateLimitBurst = cmd.Int("rate-limit-burst")
	}
	if cmd.IsSet("cors-origin") {
		cfg.CORSAllowedOrigins = cmd.StringSlice("cors-origin")
	}
	return cfg.Validate()
}
