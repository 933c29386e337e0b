package config

// ConfigSource represents where a configuration value came from.
type ConfigSource string

const (
	SourceDefault  ConfigSource = "default"
	SourceUserFile ConfigSource = "user file"
	SourceProjFile ConfigSource = "project file"
	SourceEnv      ConfigSource = "environment"
	SourceFlag     ConfigSource = "flag"
)

// Default values.
const (
	DefaultChecklistFile = "trading_checklist.json"
	DefaultCutoff        = "09:00"
	DefaultLogLevel      = "warn"
	DefaultLogFormat     = "text"
)

// Config holds the full configuration for tradecheck.
type Config struct {
	// ChecklistFile is the JSON checklist path. Relative paths resolve
	// against ProjectRoot.
	ChecklistFile string `toml:"checklist_file"`

	// Cutoff is the local HH:MM time the checklist should be done by.
	Cutoff string `toml:"cutoff"`

	// Logging configuration
	LogLevel      string `toml:"log_level"`
	LogFormat     string `toml:"log_format"`
	LogTimestamps bool   `toml:"log_timestamps"`
	LogCaller     bool   `toml:"log_caller"`

	// Project root (computed)
	ProjectRoot string `toml:"-"`
}

// ConfigWithSources holds configuration along with source information for each field.
type ConfigWithSources struct {
	Config  *Config
	Sources map[string]ConfigSource
	// Files lists the config files that were read, lowest priority first.
	Files []string
	// Unknown lists keys found in config files that tradecheck ignores.
	Unknown []string
}

// configFields returns the configurable field names, in display order.
func configFields() []string {
	return []string{
		"checklist_file",
		"cutoff",
		"log_level",
		"log_format",
		"log_timestamps",
		"log_caller",
	}
}

// setDefaults applies default values to the config.
func setDefaults(cfg *Config) {
	cfg.ChecklistFile = DefaultChecklistFile
	cfg.Cutoff = DefaultCutoff
	cfg.LogLevel = DefaultLogLevel
	cfg.LogFormat = DefaultLogFormat
	cfg.LogTimestamps = false
	cfg.LogCaller = false
}
