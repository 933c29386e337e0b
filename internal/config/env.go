package config

import (
	"os"
	"strings"
)

// loadFromEnv overrides config from TRADECHECK_* environment variables and
// records the environment as their source.
func loadFromEnv(cfg *Config, sources map[string]ConfigSource) {
	set := func(field string) {
		if sources != nil {
			sources[field] = SourceEnv
		}
	}

	if v := os.Getenv("TRADECHECK_FILE"); v != "" {
		cfg.ChecklistFile = v
		set("checklist_file")
	}
	if v := os.Getenv("TRADECHECK_CUTOFF"); v != "" {
		cfg.Cutoff = v
		set("cutoff")
	}

	// Logging configuration
	if v := os.Getenv("TRADECHECK_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
		set("log_level")
	}
	if v := os.Getenv("TRADECHECK_LOG_FORMAT"); v != "" {
		cfg.LogFormat = v
		set("log_format")
	}
	if v := os.Getenv("TRADECHECK_LOG_TIMESTAMPS"); v != "" {
		cfg.LogTimestamps = boolFromString(v)
		set("log_timestamps")
	}
	if v := os.Getenv("TRADECHECK_LOG_CALLER"); v != "" {
		cfg.LogCaller = boolFromString(v)
		set("log_caller")
	}
}

func boolFromString(s string) bool {
	s = strings.ToLower(strings.TrimSpace(s))
	return s == "1" || s == "true" || s == "yes" || s == "on"
}
