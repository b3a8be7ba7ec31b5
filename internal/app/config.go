package app

import (
	"fmt"
	"strings"
)

// DefaultTargetsDir is used when neither the flags nor the project name a
// targets directory.
const DefaultTargetsDir = "targets"

var (
	logLevels     = []string{"debug", "info", "warn", "error"}
	logFormats    = []string{"text", "json"}
	outputFormats = []string{"text", "json", "yaml"}
)

// Config holds all the necessary configuration for an App instance to run.
// Empty paths and target mean "not set"; the project file or the defaults
// fill them in later.
type Config struct {
	TargetsDir   string
	Target       string
	TemplatePath string // overrides target resolution
	ProjectPath  string // yaplc.hcl

	LogFormat    string
	LogLevel     string
	OutputFormat string
}

// NewConfig normalises and validates cfg.
func NewConfig(cfg Config) (*Config, error) {
	var err error
	if cfg.LogLevel, err = oneOf("log-level", cfg.LogLevel, "info", logLevels); err != nil {
		return nil, err
	}
	if cfg.LogFormat, err = oneOf("log-format", cfg.LogFormat, "text", logFormats); err != nil {
		return nil, err
	}
	if cfg.OutputFormat, err = oneOf("format", cfg.OutputFormat, "text", outputFormats); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func oneOf(flag, value, def string, allowed []string) (string, error) {
	value = strings.ToLower(strings.TrimSpace(value))
	if value == "" {
		return def, nil
	}
	for _, a := range allowed {
		if value == a {
			return value, nil
		}
	}
	return "", fmt.Errorf("invalid %s %q: must be one of '%s'", flag, value, strings.Join(allowed, "', '"))
}
