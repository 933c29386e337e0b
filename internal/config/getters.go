package config

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/nibzard/tradecheck/internal/logging"
	"github.com/nibzard/tradecheck/internal/reminder"
)

// GetCutoff returns the parsed reminder cutoff, falling back to the default
// when the configured value is invalid.
func (c *Config) GetCutoff() reminder.Cutoff {
	cutoff, err := reminder.ParseCutoff(c.Cutoff)
	if err != nil {
		return reminder.DefaultCutoff
	}
	return cutoff
}

// NewLogger builds the console logger described by the logging settings.
func (c *Config) NewLogger(w io.Writer) *log.Logger {
	return logging.FromConfig(w, c.LogLevel, c.LogFormat, c.LogTimestamps, c.LogCaller)
}

// Value returns the display form of a config field.
func (c *Config) Value(field string) string {
	switch field {
	case "checklist_file":
		return c.ChecklistFile
	case "cutoff":
		return c.Cutoff
	case "log_level":
		return c.LogLevel
	case "log_format":
		return c.LogFormat
	case "log_timestamps":
		return fmt.Sprint(c.LogTimestamps)
	case "log_caller":
		return fmt.Sprint(c.LogCaller)
	}
	return ""
}

// Describe writes each field with its value and source.
func (cws *ConfigWithSources) Describe(w io.Writer) {
	width := 0
	for _, field := range configFields() {
		if len(field) > width {
			width = len(field)
		}
	}
	for _, field := range configFields() {
		fmt.Fprintf(w, "%-*s = %s  (%s)\n", width, field, cws.Config.Value(field), cws.Sources[field])
	}
	if len(cws.Files) > 0 {
		fmt.Fprintf(w, "\nconfig files: %s\n", strings.Join(cws.Files, ", "))
	}
	if len(cws.Unknown) > 0 {
		fmt.Fprintf(w, "ignored keys: %s\n", strings.Join(cws.Unknown, ", "))
	}
}
