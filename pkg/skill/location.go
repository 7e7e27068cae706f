package skill

import (
	"path/filepath"

	"github.com/skillman-dev/skillman/pkg/config"
)

// Project skills live under a fixed subdirectory of the project root,
// one per assistant.
const (
	claudeProjectSubdir = ".claude"
	codexProjectSubdir  = ".codex"
	skillsSubdir        = "skills"
)

// LocationKind discriminates the closed set of skill storage locations.
type LocationKind int

// Location kinds.
const (
	LocationPersonal LocationKind = iota
	LocationCodexPersonal
	LocationCodexSystem
	LocationProject
	LocationCodexProject
	LocationLegacyCommand
	LocationPlugin
)

// Location identifies where a skill lives. It is a tagged variant: each kind
// carries exactly the path parameters needed to compute its base directory
// and read-only policy. Locations are comparable values.
type Location struct {
	Kind LocationKind
	// Path is the project root for project kinds, the skills directory for
	// system/plugin kinds, and the commands directory for legacy commands.
	// Empty for the personal kinds, whose roots come from Settings.
	Path string
	// Plugin identity, set only for LocationPlugin.
	PluginID   string
	PluginName string
}

// Personal is the user's personal skills location.
func Personal() Location { return Location{Kind: LocationPersonal} }

// CodexPersonal is the secondary assistant's personal skills location.
func CodexPersonal() Location { return Location{Kind: LocationCodexPersonal} }

// CodexSystem is the secondary assistant's read-only system skills directory.
func CodexSystem(path string) Location {
	return Location{Kind: LocationCodexSystem, Path: path}
}

// Project is a per-project skills location rooted at the given project directory.
func Project(root string) Location { return Location{Kind: LocationProject, Path: root} }

// CodexProject is the secondary assistant's per-project skills location.
func CodexProject(root string) Location {
	return Location{Kind: LocationCodexProject, Path: root}
}

// LegacyCommand is the flat directory holding legacy single-file commands.
func LegacyCommand(path string) Location {
	return Location{Kind: LocationLegacyCommand, Path: path}
}

// Plugin is a read-only skills directory supplied by an installed plugin.
func Plugin(id, name, basePath string) Location {
	return Location{Kind: LocationPlugin, Path: basePath, PluginID: id, PluginName: name}
}

// BasePath resolves the location to its base directory. Pure: all roots come
// from the supplied settings or the location's own parameters.
func (l Location) BasePath(settings config.Settings) string {
	switch l.Kind {
	case LocationPersonal:
		return settings.PersonalSkillsDir()
	case LocationCodexPersonal:
		return settings.CodexSkillsDir()
	case LocationCodexSystem:
		return l.Path
	case LocationProject:
		return filepath.Join(l.Path, claudeProjectSubdir, skillsSubdir)
	case LocationCodexProject:
		return filepath.Join(l.Path, codexProjectSubdir, skillsSubdir)
	case LocationLegacyCommand:
		return l.Path
	case LocationPlugin:
		return l.Path
	default:
		return ""
	}
}

// IsReadOnly reports whether skills at this location may never be mutated.
func (l Location) IsReadOnly() bool {
	switch l.Kind {
	case LocationCodexSystem, LocationPlugin:
		return true
	default:
		return false
	}
}

// IsPlugin reports whether the location is plugin-supplied.
func (l Location) IsPlugin() bool { return l.Kind == LocationPlugin }

// Provider returns the assistant family this location belongs to.
func (l Location) Provider() Provider {
	switch l.Kind {
	case LocationCodexPersonal, LocationCodexSystem, LocationCodexProject:
		return ProviderCodex
	default:
		return ProviderClaude
	}
}

// DisplayName is a short human-readable label for the location.
func (l Location) DisplayName() string {
	switch l.Kind {
	case LocationPersonal, LocationCodexPersonal:
		return "Personal"
	case LocationCodexSystem:
		return "System Skill"
	case LocationProject, LocationCodexProject:
		return "Project: " + filepath.Base(l.Path)
	case LocationLegacyCommand:
		return "Legacy Command"
	case LocationPlugin:
		return l.PluginName
	default:
		return "Unknown"
	}
}
