// Package manager is the composition root of the skill store: it resolves
// the active locations, runs full discovery passes into a catalog, arms
// change watching, and fronts the mutation engine with the read-only
// authorization gate.
package manager

import (
	"context"
	"sync"

	"github.com/pkg/errors"

	"github.com/skillman-dev/skillman/pkg/config"
	"github.com/skillman-dev/skillman/pkg/crud"
	"github.com/skillman-dev/skillman/pkg/discovery"
	"github.com/skillman-dev/skillman/pkg/importer"
	"github.com/skillman-dev/skillman/pkg/logger"
	"github.com/skillman-dev/skillman/pkg/plugins"
	"github.com/skillman-dev/skillman/pkg/skill"
	"github.com/skillman-dev/skillman/pkg/watcher"
)

// ErrReadOnlySkill rejects mutations against read-only locations. This gate
// lives above the mutation engine: the engine checks path safety, the
// manager checks authorization.
var ErrReadOnlySkill = errors.New("skill is read-only and cannot be modified")

// Manager wires the discovery, mutation, plugin, and import services behind
// one catalog. The catalog is an immutable snapshot: every reload rebuilds
// it from scratch.
type Manager struct {
	settings   config.Settings
	discovery  *discovery.Service
	mutations  *crud.Service
	registry   *plugins.Registry
	importer   *importer.Service
	notifier   *watcher.Notifier
	watcherOpt []watcher.Option

	mu         sync.RWMutex
	catalog    *discovery.Catalog
	projects   []string
	pluginList []plugins.Plugin
}

// Option configures a Manager.
type Option func(*Manager)

// WithProjects seeds the set of monitored project roots.
func WithProjects(roots ...string) Option {
	return func(m *Manager) {
		for _, root := range roots {
			if p := config.NormalizePath(root); p != "" {
				m.projects = append(m.projects, p)
			}
		}
	}
}

// WithWatcherOptions forwards options to the change notifier.
func WithWatcherOptions(opts ...watcher.Option) Option {
	return func(m *Manager) { m.watcherOpt = opts }
}

// New creates a manager for the given settings.
func New(settings config.Settings, opts ...Option) *Manager {
	m := &Manager{
		settings:  settings,
		discovery: discovery.NewService(settings),
		mutations: crud.NewService(settings),
		registry:  plugins.NewRegistry(settings),
		importer:  importer.NewService(settings),
		catalog:   &discovery.Catalog{},
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Settings returns the settings the manager was built with.
func (m *Manager) Settings() config.Settings { return m.settings }

// sources resolves the full set of active locations to scan.
func (m *Manager) sources(pluginList []plugins.Plugin) []discovery.Source {
	m.mu.RLock()
	projects := append([]string(nil), m.projects...)
	m.mu.RUnlock()

	srcs := []discovery.Source{
		{BasePath: m.settings.PersonalSkillsDir(), Location: skill.Personal()},
		{BasePath: m.settings.CodexSkillsDir(), Location: skill.CodexPersonal()},
		{BasePath: m.settings.CodexSystemSkillsDir(), Location: skill.CodexSystem(m.settings.CodexSystemSkillsDir())},
		{BasePath: m.settings.LegacyCommandsDir(), Location: skill.LegacyCommand(m.settings.LegacyCommandsDir())},
	}
	for _, root := range projects {
		claudeLoc := skill.Project(root)
		codexLoc := skill.CodexProject(root)
		srcs = append(srcs,
			discovery.Source{BasePath: claudeLoc.BasePath(m.settings), Location: claudeLoc},
			discovery.Source{BasePath: codexLoc.BasePath(m.settings), Location: codexLoc},
		)
	}
	for _, p := range pluginList {
		srcs = append(srcs, discovery.Source{BasePath: p.SkillsDir, Location: p.Location()})
	}
	return srcs
}

// Reload runs a full discovery pass across every active location and
// publishes the new catalog. Location-level failures are carried in the
// catalog rather than aborting the reload.
func (m *Manager) Reload(ctx context.Context) *discovery.Catalog {
	pluginList := m.registry.Installed(ctx)
	catalog := m.discovery.DiscoverAll(ctx, m.sources(pluginList))
	if catalog.Err != nil {
		logger.G(ctx).WithError(catalog.Err).Warn("Some skill locations failed to scan")
	}

	m.mu.Lock()
	m.catalog = catalog
	m.pluginList = pluginList
	m.mu.Unlock()
	return catalog
}

// Catalog returns the latest published catalog snapshot.
func (m *Manager) Catalog() *discovery.Catalog {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.catalog
}

// Skills returns the skills of the latest catalog.
func (m *Manager) Skills() []skill.Skill {
	return m.Catalog().Skills
}

// Plugins returns the plugins seen by the latest reload.
func (m *Manager) Plugins() []plugins.Plugin {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]plugins.Plugin(nil), m.pluginList...)
}

// Find locates a skill in the current catalog by name. Directory skills take
// precedence over legacy commands with the same name.
func (m *Manager) Find(name string) (skill.Skill, bool) {
	var legacy *skill.Skill
	for _, s := range m.Skills() {
		if s.Name != name {
			continue
		}
		if !s.IsLegacyCommand {
			return s, true
		}
		if legacy == nil {
			found := s
			legacy = &found
		}
	}
	if legacy != nil {
		return *legacy, true
	}
	return skill.Skill{}, false
}

// AddProject registers a project root for discovery. No-op for duplicates.
func (m *Manager) AddProject(root string) {
	normalized := config.NormalizePath(root)
	if normalized == "" {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.projects {
		if existing == normalized {
			return
		}
	}
	m.projects = append(m.projects, normalized)
}

// RemoveProject unregisters a project root.
func (m *Manager) RemoveProject(root string) {
	normalized := config.NormalizePath(root)
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, existing := range m.projects {
		if existing == normalized {
			m.projects = append(m.projects[:i], m.projects[i+1:]...)
			return
		}
	}
}

// Projects returns the monitored project roots.
func (m *Manager) Projects() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]string(nil), m.projects...)
}

// WatchPaths computes the directories the change notifier should watch:
// every active location base path that may gain or lose skills.
func (m *Manager) WatchPaths() []string {
	m.mu.RLock()
	pluginList := append([]plugins.Plugin(nil), m.pluginList...)
	m.mu.RUnlock()

	var paths []string
	for _, src := range m.sources(pluginList) {
		paths = append(paths, src.BasePath)
	}
	return paths
}

// StartWatching arms the change notifier over the current watch paths.
// After each debounced change the manager reloads the catalog, re-arms
// watching (the set of skill directories may have changed), and hands the
// fresh catalog to onReload.
func (m *Manager) StartWatching(ctx context.Context, onReload func(*discovery.Catalog)) error {
	m.notifier = watcher.New(func() {
		catalog := m.Reload(ctx)
		if err := m.notifier.Watch(ctx, m.WatchPaths()); err != nil {
			logger.G(ctx).WithError(err).Error("Failed to re-arm file watcher")
		}
		if onReload != nil {
			onReload(catalog)
		}
	}, m.watcherOpt...)
	return m.notifier.Watch(ctx, m.WatchPaths())
}

// StopWatching releases all watch handles. Safe without StartWatching.
func (m *Manager) StopWatching() {
	if m.notifier != nil {
		m.notifier.Stop()
	}
}

// Create makes a new skill and returns its directory. The caller reloads via
// the returned manager state; mutations never patch the catalog in place.
func (m *Manager) Create(ctx context.Context, name string, fm skill.Frontmatter, content string, location skill.Location) (string, error) {
	if location.IsReadOnly() {
		return "", errors.WithStack(ErrReadOnlySkill)
	}
	return m.mutations.Create(ctx, name, fm, content, location)
}

// Update overwrites a skill's content after checking it is writable.
func (m *Manager) Update(ctx context.Context, sk skill.Skill, fm skill.Frontmatter, content string) error {
	if sk.Location.IsReadOnly() {
		return errors.WithStack(ErrReadOnlySkill)
	}
	return m.mutations.Update(ctx, sk, fm, content)
}

// SetEnabled toggles a skill between its enabled and disabled filenames.
func (m *Manager) SetEnabled(ctx context.Context, sk skill.Skill, enabled bool) error {
	if sk.Location.IsReadOnly() {
		return errors.WithStack(ErrReadOnlySkill)
	}
	return m.mutations.SetEnabled(ctx, sk, enabled)
}

// Delete removes a skill from disk.
func (m *Manager) Delete(ctx context.Context, sk skill.Skill) error {
	if sk.Location.IsReadOnly() {
		return errors.WithStack(ErrReadOnlySkill)
	}
	return m.mutations.Delete(ctx, sk)
}

// Move relocates a skill to another location; the mutation engine enforces
// the supported-move matrix.
func (m *Manager) Move(ctx context.Context, sk skill.Skill, target skill.Location) (string, error) {
	return m.mutations.Move(ctx, sk, target)
}

// Fork copies a read-only (typically plugin) skill into the personal
// location as a new editable skill.
func (m *Manager) Fork(ctx context.Context, sk skill.Skill) (string, error) {
	return m.mutations.Create(ctx, sk.Name, sk.Frontmatter, sk.Content, skill.Personal())
}

// Preview parses an extracted skill directory for import.
func (m *Manager) Preview(dir string) (*skill.Package, error) {
	return m.importer.Preview(dir)
}

// Import commits a previewed package to a writable location.
func (m *Manager) Import(ctx context.Context, pkg *skill.Package, name string, location skill.Location) (string, error) {
	if location.IsReadOnly() {
		return "", errors.WithStack(ErrReadOnlySkill)
	}
	return m.importer.Commit(ctx, pkg, name, location)
}

// Export copies a skill directory to an external destination directory.
func (m *Manager) Export(sk skill.Skill, destDir string) (string, error) {
	return m.importer.Export(sk, destDir)
}
