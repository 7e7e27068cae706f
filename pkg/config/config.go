// Package config provides the settings that anchor every skill location to a
// concrete filesystem root. Settings are an explicitly passed value, threaded
// through the discovery and mutation services; there is no ambient global
// configuration state.
package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

// Directory layout underneath the two assistant homes.
const (
	skillsDirName       = "skills"
	commandsDirName     = "commands"
	systemSkillsDirName = ".system"
	pluginsDirName      = "plugins"
	pluginManifestName  = "installed_plugins.json"
)

// Settings holds the two independent assistant home directories. Both are
// absolute, normalized paths.
type Settings struct {
	ClaudeHome string
	CodexHome  string
}

// Default returns settings rooted at ~/.claude and ~/.codex.
func Default() (Settings, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return Settings{}, errors.Wrap(err, "failed to get user home directory")
	}
	return Settings{
		ClaudeHome: filepath.Join(home, ".claude"),
		CodexHome:  filepath.Join(home, ".codex"),
	}, nil
}

// Load builds settings from viper configuration (claude_home / codex_home
// keys, overridable via SKILLMAN_* environment variables), falling back to
// the defaults for any unset root.
func Load() (Settings, error) {
	defaults, err := Default()
	if err != nil {
		return Settings{}, err
	}

	s := defaults
	if p := NormalizePath(viper.GetString("claude_home")); p != "" {
		s.ClaudeHome = p
	}
	if p := NormalizePath(viper.GetString("codex_home")); p != "" {
		s.CodexHome = p
	}
	return s, nil
}

// NormalizePath trims whitespace, expands a leading tilde, and cleans the
// path. Returns "" for blank input.
func NormalizePath(path string) string {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return ""
	}
	if trimmed == "~" || strings.HasPrefix(trimmed, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			trimmed = filepath.Join(home, strings.TrimPrefix(trimmed[1:], "/"))
		}
	}
	return filepath.Clean(trimmed)
}

// PersonalSkillsDir is the directory holding the user's personal skills.
func (s Settings) PersonalSkillsDir() string {
	return filepath.Join(s.ClaudeHome, skillsDirName)
}

// LegacyCommandsDir is the flat directory holding legacy single-file commands.
func (s Settings) LegacyCommandsDir() string {
	return filepath.Join(s.ClaudeHome, commandsDirName)
}

// CodexSkillsDir is the secondary assistant's personal skills directory.
func (s Settings) CodexSkillsDir() string {
	return filepath.Join(s.CodexHome, skillsDirName)
}

// CodexSystemSkillsDir is the secondary assistant's read-only system skills
// directory.
func (s Settings) CodexSystemSkillsDir() string {
	return filepath.Join(s.CodexSkillsDir(), systemSkillsDirName)
}

// PluginManifestPath is the JSON manifest listing installed plugins.
func (s Settings) PluginManifestPath() string {
	return filepath.Join(s.ClaudeHome, pluginsDirName, pluginManifestName)
}
