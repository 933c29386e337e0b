// Package config handles configuration loading and defaults.
//
// Configuration is loaded from multiple sources in priority order:
// 1. Built-in defaults
// 2. User config file (~/.tradecheck.toml or OS-specific config directory)
// 3. Project config file (tradecheck.toml or .tradecheck.toml in the working directory)
// 4. Environment variables (TRADECHECK_*)
// 5. CLI flags
//
// Each level overrides the previous one, so CLI flags take precedence.
//
// User-level config locations:
// - ~/.tradecheck.toml (preferred)
// - Windows: %APPDATA%\tradecheck\tradecheck.toml
// - macOS: ~/Library/Application Support/tradecheck/tradecheck.toml
// - Linux/BSD: $XDG_CONFIG_HOME/tradecheck/tradecheck.toml or ~/.config/tradecheck/tradecheck.toml
//
// Project-level config locations (overrides user config):
// - ./tradecheck.toml (preferred)
// - ./.tradecheck.toml
package config
