package main

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/alnah/go-valentine/internal/config"
)

// envConfig holds configuration from environment variables.
// Provides CI/CD-friendly overrides without requiring YAML files.
type envConfig struct {
	ConfigPath string        // VALENTINE_CONFIG: config file name or path
	Style      string        // VALENTINE_STYLE: style name or .css path
	Output     string        // VALENTINE_OUTPUT: output file
	ImageDir   string        // VALENTINE_IMAGES: image directory
	Script     string        // VALENTINE_SCRIPT: confetti library path
	Timeout    time.Duration // VALENTINE_TIMEOUT: browser timeout for verify
}

// knownEnvVars lists valid VALENTINE_* environment variables.
// Used to detect typos and warn users about unknown variables.
var knownEnvVars = map[string]bool{
	"VALENTINE_CONFIG":  true,
	"VALENTINE_STYLE":   true,
	"VALENTINE_OUTPUT":  true,
	"VALENTINE_IMAGES":  true,
	"VALENTINE_SCRIPT":  true,
	"VALENTINE_TIMEOUT": true,
	// Read by doctor only.
	"VALENTINE_CONTAINER": true,
}

// loadEnvConfig reads configuration from environment variables.
func loadEnvConfig(getenv func(string) string) *envConfig {
	cfg := &envConfig{
		ConfigPath: getenv("VALENTINE_CONFIG"),
		Style:      getenv("VALENTINE_STYLE"),
		Output:     getenv("VALENTINE_OUTPUT"),
		ImageDir:   getenv("VALENTINE_IMAGES"),
		Script:     getenv("VALENTINE_SCRIPT"),
	}

	// Invalid or non-positive durations are ignored
	if timeout := getenv("VALENTINE_TIMEOUT"); timeout != "" {
		if d, err := time.ParseDuration(timeout); err == nil && d > 0 {
			cfg.Timeout = d
		}
	}

	return cfg
}

// warnUnknownEnvVars prints warnings for unrecognized VALENTINE_* variables.
func warnUnknownEnvVars(w io.Writer, environ []string) {
	for _, env := range environ {
		if strings.HasPrefix(env, "VALENTINE_") {
			name := strings.SplitN(env, "=", 2)[0]
			if !knownEnvVars[name] {
				fmt.Fprintf(w, "warning: unknown environment variable %s (typo?)\n", name)
			}
		}
	}
}

// applyEnvConfig applies environment variable values over the config file.
// Precedence: CLI flags > env vars > config file > defaults
// (CLI flags are applied later via mergeFlags).
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	if env.Style != "" {
		cfg.Assets.Style = env.Style
	}
	if env.Output != "" {
		cfg.Output.Path = env.Output
	}
	if env.ImageDir != "" {
		cfg.Input.ImageDir = env.ImageDir
	}
	if env.Script != "" {
		cfg.Input.Script = env.Script
	}
}
