package config

// ExampleConfig returns an example configuration showing all available options.
func ExampleConfig() string {
	return `# tradecheck configuration file
# Values can be overridden by environment variables or CLI flags

# Checklist file (relative to the working directory; supports ~ expansion)
checklist_file = "trading_checklist.json"

# Local time (HH:MM, 24-hour) the checklist should be finished by
cutoff = "09:00"

# Logging: debug, info, warn, error
log_level = "warn"

# Log format: text, json, logfmt
log_format = "text"

# Show timestamps and caller locations in log lines
log_timestamps = false
log_caller = false
`
}
