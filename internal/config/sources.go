package config

import (
	"os"
	"path/filepath"
)

// projectConfigCandidates lists project config paths in dir, preferred first.
func projectConfigCandidates(dir string) []string {
	return []string{
		filepath.Join(dir, "tradecheck.toml"),
		filepath.Join(dir, ".tradecheck.toml"),
	}
}

// userConfigCandidates lists user config paths, preferred first:
// ~/.tradecheck.toml, then tradecheck/tradecheck.toml under the OS config
// directory (XDG_CONFIG_HOME, ~/Library/Application Support, %AppData%).
func userConfigCandidates() []string {
	var paths []string
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".tradecheck.toml"))
	}
	if dir, err := os.UserConfigDir(); err == nil {
		paths = append(paths, filepath.Join(dir, "tradecheck", "tradecheck.toml"))
	}
	return paths
}

func findProjectConfigFile(dir string) string {
	return firstRegularFile(projectConfigCandidates(dir))
}

func findUserConfigFile() string {
	return firstRegularFile(userConfigCandidates())
}

// firstRegularFile returns the first path that exists and is not a
// directory, or "".
func firstRegularFile(paths []string) string {
	for _, p := range paths {
		if info, err := os.Stat(p); err == nil && !info.IsDir() {
			return p
		}
	}
	return ""
}
