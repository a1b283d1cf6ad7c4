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

package api

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/NVIDIA/ingredient-checker/pkg/analysis"
	"github.com/NVIDIA/ingredient-checker/pkg/check"
	"github.com/NVIDIA/ingredient-checker/pkg/config"
	"github.com/NVIDIA/ingredient-checker/pkg/defaults"
	"github.com/NVIDIA/ingredient-checker/pkg/logging"
	"github.com/NVIDIA/ingredient-checker/pkg/payload"
	"github.com/NVIDIA/ingredient-checker/pkg/server"
	"golang.org/x/time/rate"
)

const (
	name           = "ingredient-checker"
	versionDefault = "dev"

	analyzerRemote    = "remote"
	analyzerHeuristic = analysis.SourceHeuristic
)

var (
	// overridden during build with ldflags to reflect actual version info
	// e.g., -X "github.com/NVIDIA/ingredient-checker/pkg/api.version=1.0.0"
	version = versionDefault
	commit  = "unknown"
	date    = "unknown"
)

// Version returns the build version.
func Version() string {
	return version
}

// Serve loads configuration from the environment and runs the server until
// shutdown.
func Serve() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	return Run(context.Background(), cfg)
}

// Run starts the server described by cfg and blocks until ctx is done or the
// process is signalled.
func Run(ctx context.Context, cfg *config.Config) error {
	logging.SetDefaultStructuredLoggerWithLevel(name, version, cfg.LogLevel)
	slog.Info("starting",
		"name", name,
		"version", version,
		"commit", commit,
		"date", date,
	)

	engine, err := NewAnalyzer(cfg)
	if err != nil {
		slog.Error("failed to create analyzer", "error", err)
		return err
	}

	s := NewServer(cfg, engine)
	if err := s.Run(ctx); err != nil {
		slog.Error("server exited with error", "error", err)
		return err
	}

	return nil
}

// NewAnalyzer returns the analysis engine selected by cfg: the remote engine
// when AnalyzerURL is set, the heuristic engine otherwise. Either way the
// engine is instrumented.
func NewAnalyzer(cfg *config.Config) (analysis.Analyzer, error) {
	if cfg.AnalyzerURL != "" {
		remote, err := analysis.NewRemote(cfg.AnalyzerURL,
			analysis.WithRemoteTimeout(cfg.AnalyzerTimeout))
		if err != nil {
			return nil, err
		}
		slog.Info("using remote analyzer", "endpoint", remote.Endpoint(), "timeout", cfg.AnalyzerTimeout)
		return analysis.Instrument(remote, analyzerRemote), nil
	}

	rules, err := LoadRules(cfg)
	if err != nil {
		return nil, err
	}
	engine, err := analysis.NewHeuristic(rules)
	if err != nil {
		return nil, err
	}
	slog.Info("using heuristic analyzer", "rules", rules.Source, "rulesVersion", rules.Version)
	return analysis.Instrument(engine, analyzerHeuristic), nil
}

// LoadRules returns the rule set named by cfg.RulesPath, or the embedded one.
func LoadRules(cfg *config.Config) (*analysis.Rules, error) {
	if cfg.RulesPath == "" {
		return analysis.DefaultRules()
	}
	return analysis.LoadRules(cfg.RulesPath)
}

// NewServer builds the HTTP server for cfg around engine.
func NewServer(cfg *config.Config, engine analysis.Analyzer) *server.Server {
	resolver := payload.NewResolver(
		payload.WithMaxBodyBytes(cfg.MaxBodyBytes),
		payload.WithMaxMultipartMemory(min(cfg.MaxBodyBytes, defaults.MaxMultipartMemory)),
	)
	h := check.NewHandler(resolver, engine)

	routes := map[string]http.HandlerFunc{
		"/check":        h.HandleCheck,
		"/capabilities": h.HandleCapabilities,
	}

	return server.New(
		server.WithName(name),
		server.WithVersion(version),
		server.WithHandler(routes),
		server.WithAddress(cfg.Address),
		server.WithPort(cfg.Port),
		server.WithRateLimit(rate.Limit(cfg.RateLimit), cfg.RateLimitBurst),
		server.WithShutdownTimeout(cfg.ShutdownTimeout),
		server.WithCORS(CORS(cfg)),
	)
}

// CORS returns the cross-origin policy for cfg, or nil when no origin is
// allowed.
func CORS(cfg *config.Config) *server.CORSConfig {
	pattern := cfg.OriginPattern()
	if len(cfg.CORSAllowedOrigins) == 0 && pattern == nil {
		return nil
	}
	return &server.CORSConfig{
		AllowedOrigins:       cfg.CORSAllowedOrigins,
		AllowedOriginPattern: pattern,
		AllowCredentials:     true,
		MaxAge:               int(defaults.CORSMaxAge.Seconds()),
	}
}
