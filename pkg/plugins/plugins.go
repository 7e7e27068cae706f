// Package plugins reads the installed-plugins manifest and exposes
// plugin-supplied skill directories as additional read-only locations.
// The manifest is external state owned by the assistant's plugin manager;
// it is consumed strictly read-only here.
package plugins

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/skillman-dev/skillman/pkg/config"
	"github.com/skillman-dev/skillman/pkg/discovery"
	"github.com/skillman-dev/skillman/pkg/logger"
	"github.com/skillman-dev/skillman/pkg/skill"
)

const skillsDirName = "skills"

// Plugin is one installed plugin that ships a skills directory.
type Plugin struct {
	// ID as recorded in the manifest, e.g. "my-plugin@my-marketplace".
	ID string
	// Name is the human-readable part of the id (before the @).
	Name string
	// SkillsDir is the plugin's skills directory.
	SkillsDir string
}

// Location returns the read-only skill location backed by this plugin.
func (p Plugin) Location() skill.Location {
	return skill.Plugin(p.ID, p.Name, p.SkillsDir)
}

// Registry discovers installed plugins from the JSON manifest.
type Registry struct {
	settings config.Settings
}

// NewRegistry creates a registry using the given settings.
func NewRegistry(settings config.Settings) *Registry {
	return &Registry{settings: settings}
}

// manifest mirrors installed_plugins.json: plugin id to one or more install
// records. Only the first record per id is consulted.
type manifest struct {
	Plugins map[string][]manifestEntry `json:"plugins"`
}

type manifestEntry struct {
	InstallPath string `json:"installPath"`
}

// Installed returns the plugins that ship a skills directory, sorted by
// name. A missing or unparseable manifest yields an empty result; plugins
// are optional and their absence is not an error.
func (r *Registry) Installed(ctx context.Context) []Plugin {
	manifestPath := r.settings.PluginManifestPath()

	data, err := os.ReadFile(manifestPath)
	if err != nil {
		return nil
	}

	var m manifest
	if err := json.Unmarshal(data, &m); err != nil {
		logger.G(ctx).WithError(err).WithField("path", manifestPath).Debug("Ignoring malformed plugin manifest")
		return nil
	}

	var plugins []Plugin
	for id, entries := range m.Plugins {
		if len(entries) == 0 || entries[0].InstallPath == "" {
			continue
		}
		skillsDir := filepath.Join(entries[0].InstallPath, skillsDirName)
		if info, err := os.Stat(skillsDir); err != nil || !info.IsDir() {
			continue
		}

		name := id
		if at := strings.Index(id, "@"); at >= 0 {
			name = id[:at]
		}
		plugins = append(plugins, Plugin{ID: id, Name: name, SkillsDir: skillsDir})
	}

	sort.Slice(plugins, func(i, j int) bool { return plugins[i].Name < plugins[j].Name })
	return plugins
}

// Skills discovers the skills shipped by a plugin.
func (r *Registry) Skills(ctx context.Context, p Plugin) ([]skill.Skill, error) {
	return discovery.NewService(r.settings).DiscoverSkills(ctx, p.SkillsDir, p.Location())
}
