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

package server

import (
	"net/http"
	"regexp"
	"testing"
	"time"

	"github.com/NVIDIA/ingredient-checker/pkg/defaults"
	"golang.org/x/time/rate"
)

func TestNewConfigDefaults(t *testing.T) {
	cfg := NewConfig()

	if cfg.Name != "server" || cfg.Version != "undefined" {
		t.Errorf("unexpected identity %s/%s", cfg.Name, cfg.Version)
	}
	if cfg.Port != 8080 || cfg.Address != "" {
		t.Errorf("unexpected bind %q:%d", cfg.Address, cfg.Port)
	}
	if cfg.RateLimit != defaults.RateLimit || cfg.RateLimitBurst != defaults.RateLimitBurst {
		t.Errorf("unexpected rate limit %v/%d", cfg.RateLimit, cfg.RateLimitBurst)
	}
	if cfg.ShutdownTimeout != defaults.ServerShutdownTimeout {
		t.Errorf("unexpected shutdown timeout %v", cfg.ShutdownTimeout)
	}
	if cfg.CORS != nil {
		t.Error("expected CORS to be disabled by default")
	}
}

func TestOptions(t *testing.T) {
	noop := func(http.ResponseWriter, *http.Request) {}
	cors := &CORSConfig{AllowedOriginPattern: regexp.MustCompile(`^https://example\.com$`)}

	s := &Server{config: NewConfig()}
	for _, opt := range []Option{
		WithName("ingredient-checker"),
		WithVersion("v1.2.3"),
		WithAddress("127.0.0.1"),
		WithPort(9090),
		WithRateLimit(rate.Limit(5), 10),
		WithShutdownTimeout(3 * time.Second),
		WithShutdownTimeout(0),
		WithCORS(cors),
		WithHandler(map[string]http.HandlerFunc{"/check": noop}),
		WithHandler(map[string]http.HandlerFunc{"/capabilities": noop}),
	} {
		opt(s)
	}

	cfg := s.config
	if cfg.Name != "ingredient-checker" || cfg.Version != "v1.2.3" {
		t.Errorf("unexpected identity %s/%s", cfg.Name, cfg.Version)
	}
	if cfg.Address != "127.0.0.1" || cfg.Port != 9090 {
		t.Errorf("unexpected bind %q:%d", cfg.Address, cfg.Port)
	}
	if cfg.RateLimit != 5 || cfg.RateLimitBurst != 10 {
		t.Errorf("unexpected rate limit %v/%d", cfg.RateLimit, cfg.RateLimitBurst)
	}
	if cfg.ShutdownTimeout != 3*time.Second {
		t.Errorf("expected zero shutdown timeout to be ignored, got %v", cfg.ShutdownTimeout)
	}
	if cfg.CORS != cors {
		t.Error("expected CORS config to be set")
	}
	if len(cfg.Handlers) != 2 {
		t.Errorf("expected handlers to be merged, got %d", len(cfg.Handlers))
	}
}

func TestWithConfig(t *testing.T) {
	cfg := NewConfig()
	cfg.Name = "custom"

	s := &Server{config: NewConfig()}
	WithConfig(cfg)(s)
	if s.config != cfg {
		t.Error("expected config to be replaced")
	}

	WithConfig(nil)(s)
	if s.config != cfg {
		t.Error("expected nil config to be ignored")
	}
}
