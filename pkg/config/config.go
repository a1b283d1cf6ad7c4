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

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/NVIDIA/ingredient-checker/pkg/defaults"
)

const (
	// EnvFile names the variable that overrides the dotenv path.
	EnvFile = "ENV_FILE"

	defaultEnvFile = ".env"
)

// DefaultAllowedOrigins are the browser origins accepted by default.
var DefaultAllowedOrigins = []string{
	"https://clean-food-app.vercel.app",
	"https://clean-food-app-git-main-amantheshaikh.vercel.app",
	"http://localhost:5173",
}

// DefaultOriginPattern matches deployment preview origins.
const DefaultOriginPattern = `^https://([^.]+-)*clean-food-app.*\.vercel\.app$`

// Config holds process-level settings.
type Config struct {
	Address  string
	Port     int
	LogLevel string

	ShutdownTimeout time.Duration

	RateLimit      float64
	RateLimitBurst int

	MaxBodyBytes int64

	CORSAllowedOrigins []string
	CORSOriginPattern  string

	AnalyzerURL     string
	AnalyzerTimeout time.Duration
	RulesPath       string
}

// Default returns the built-in configuration without consulting the environment.
func Default() *Config {
	return &Config{
		Port:               8080,
		LogLevel:           "info",
		ShutdownTimeout:    defaults.ServerShutdownTimeout,
		RateLimit:          defaults.RateLimit,
		RateLimitBurst:     defaults.RateLimitBurst,
		MaxBodyBytes:       defaults.MaxRequestBodyBytes,
		CORSAllowedOrigins: append([]string(nil), DefaultAllowedOrigins...),
		CORSOriginPattern:  DefaultOriginPattern,
		AnalyzerTimeout:    defaults.AnalyzerTimeout,
	}
}

// Load applies the dotenv file (if any) and returns the configuration derived
// from the environment.
func Load() (*Config, error) {
	if err := loadEnvFile(); err != nil {
		return nil, err
	}
	return FromEnv(os.LookupEnv)
}

func loadEnvFile() error {
	path, explicit := os.LookupEnv(EnvFile)
	if !explicit {
		path = defaultEnvFile
	}

	err := godotenv.Load(path)
	switch {
	case err == nil:
		slog.Debug("loaded env file", "path", path)
		return nil
	case !explicit && errors.Is(err, fs.ErrNotExist):
		return nil
	default:
		return fmt.Errorf("failed to load env file %q: %w", path, err)
	}
}

// FromEnv builds a Config using lookup for every variable.
func FromEnv(lookup func(string) (string, bool)) (*Config, error) {
	cfg := Default()
	var errs []error

	get := func(key string) (string, bool) {
		v, ok := lookup(key)
		v = strings.TrimSpace(v)
		return v, ok && v != ""
	}

	if v, ok := get("ADDRESS"); ok {
		cfg.Address = v
	}
	if v, ok := get("PORT"); ok {
		port, err := strconv.Atoi(v)
		if err != nil || port <= 0 || port > 65535 {
			errs = append(errs, fmt.Errorf("PORT: invalid port %q", v))
		} else {
			cfg.Port = port
		}
	}
	if v, ok := get("LOG_LEVEL"); ok {
		cfg.LogLevel = v
	}
	if v, ok := get("SHUTDOWN_TIMEOUT_SECONDS"); ok {
		if d, err := parseSeconds(v); err != nil {
			errs = append(errs, fmt.Errorf("SHUTDOWN_TIMEOUT_SECONDS: %w", err))
		} else {
			cfg.ShutdownTimeout = d
		}
	}
	if v, ok := get("RATE_LIMIT"); ok {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil || f <= 0 {
			errs = append(errs, fmt.Errorf("RATE_LIMIT: invalid value %q", v))
		} else {
			cfg.RateLimit = f
		}
	}
	if v, ok := get("RATE_LIMIT_BURST"); ok {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			errs = append(errs, fmt.Errorf("RATE_LIMIT_BURST: invalid value %q", v))
		} else {
			cfg.RateLimitBurst = n
		}
	}
	if v, ok := get("MAX_BODY_BYTES"); ok {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil || n <= 0 {
			errs = append(errs, fmt.Errorf("MAX_BODY_BYTES: invalid value %q", v))
		} else {
			cfg.MaxBodyBytes = n
		}
	}
	if v, ok := get("CORS_ALLOWED_ORIGINS"); ok {
		cfg.CORSAllowedOrigins = SplitList(v)
	}
	if v, ok := lookup("CORS_ORIGIN_PATTERN"); ok {
		// An explicitly empty pattern disables preview matching.
		cfg.CORSOriginPattern = strings.TrimSpace(v)
	}
	if v, ok := get("ANALYZER_URL"); ok {
		cfg.AnalyzerURL = strings.TrimRight(v, "/")
	}
	if v, ok := get("ANALYZER_TIMEOUT_SECONDS"); ok {
		if d, err := parseSeconds(v); err != nil {
			errs = append(errs, fmt.Errorf("ANALYZER_TIMEOUT_SECONDS: %w", err))
		} else {
			cfg.AnalyzerTimeout = d
		}
	}
	if v, ok := get("RULES_PATH"); ok {
		cfg.RulesPath = v
	}

	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks cross-field constraints.
func (c *Config) Validate() error {
	if c.CORSOriginPattern != "" {
		if _, err := regexp.Compile(c.CORSOriginPattern); err != nil {
			return fmt.Errorf("CORS_ORIGIN_PATTERN: %w", err)
		}
	}
	if c.RateLimitBurst < 1 {
		return fmt.Errorf("rate limit burst must be positive, got %d", c.RateLimitBurst)
	}
	return nil
}

// OriginPattern compiles CORSOriginPattern; nil when unset.
func (c *Config) OriginPattern() *regexp.Regexp {
	if c.CORSOriginPattern == "" {
		return nil
	}
	return regexp.MustCompile(c.CORSOriginPattern)
}

// SplitList splits a comma separated list, dropping blanks.
func SplitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func parseSeconds(v string) (time.Duration, error) {
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("invalid seconds value %q", v)
	}
	return time.Duration(n) * time.Second, nil
}
