package plugins

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skillman-dev/skillman/pkg/config"
	"github.com/skillman-dev/skillman/pkg/skill"
)

func setupManifest(t *testing.T, settings config.Settings, content string) {
	t.Helper()
	manifestPath := settings.PluginManifestPath()
	require.NoError(t, os.MkdirAll(filepath.Dir(manifestPath), 0o755))
	require.NoError(t, os.WriteFile(manifestPath, []byte(content), 0o644))
}

func installPlugin(t *testing.T, root, skillName string) string {
	t.Helper()
	skillDir := filepath.Join(root, "skills", skillName)
	require.NoError(t, os.MkdirAll(skillDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(skillDir, skill.FileName),
		[]byte("---\ndescription: \"from plugin\"\n---\n\nbody\n"), 0o644))
	return root
}

func TestInstalled(t *testing.T) {
	ctx := context.Background()

	t.Run("missing manifest yields no plugins", func(t *testing.T) {
		settings := config.Settings{ClaudeHome: t.TempDir(), CodexHome: t.TempDir()}
		assert.Empty(t, NewRegistry(settings).Installed(ctx))
	})

	t.Run("malformed manifest yields no plugins", func(t *testing.T) {
		settings := config.Settings{ClaudeHome: t.TempDir(), CodexHome: t.TempDir()}
		setupManifest(t, settings, "{not json")
		assert.Empty(t, NewRegistry(settings).Installed(ctx))
	})

	t.Run("plugins without a skills dir are skipped", func(t *testing.T) {
		settings := config.Settings{ClaudeHome: t.TempDir(), CodexHome: t.TempDir()}
		bare := t.TempDir()
		setupManifest(t, settings, `{"plugins": {"bare@market": [{"installPath": "`+bare+`"}]}}`)
		assert.Empty(t, NewRegistry(settings).Installed(ctx))
	})

	t.Run("discovers and sorts plugins", func(t *testing.T) {
		settings := config.Settings{ClaudeHome: t.TempDir(), CodexHome: t.TempDir()}
		zebra := installPlugin(t, t.TempDir(), "zebra-skill")
		apple := installPlugin(t, t.TempDir(), "apple-skill")
		setupManifest(t, settings, `{"plugins": {
			"zebra@market": [{"installPath": "`+zebra+`"}],
			"apple@market": [{"installPath": "`+apple+`"}]
		}}`)

		plugins := NewRegistry(settings).Installed(ctx)
		require.Len(t, plugins, 2)
		assert.Equal(t, "apple", plugins[0].Name)
		assert.Equal(t, "apple@market", plugins[0].ID)
		assert.Equal(t, "zebra", plugins[1].Name)
		assert.Equal(t, filepath.Join(zebra, "skills"), plugins[1].SkillsDir)
	})
}

func TestPluginSkills(t *testing.T) {
	ctx := context.Background()
	settings := config.Settings{ClaudeHome: t.TempDir(), CodexHome: t.TempDir()}
	root := installPlugin(t, t.TempDir(), "helper")
	setupManifest(t, settings, `{"plugins": {"helper@market": [{"installPath": "`+root+`"}]}}`)

	registry := NewRegistry(settings)
	plugins := registry.Installed(ctx)
	require.Len(t, plugins, 1)

	skills, err := registry.Skills(ctx, plugins[0])
	require.NoError(t, err)
	require.Len(t, skills, 1)
	assert.Equal(t, "helper", skills[0].Name)
	assert.Equal(t, "from plugin", skills[0].Frontmatter.Description)
	assert.True(t, skills[0].Location.IsReadOnly())
	assert.Equal(t, skill.LocationPlugin, skills[0].Location.Kind)
}
