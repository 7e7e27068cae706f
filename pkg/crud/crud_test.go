package crud

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skillman-dev/skillman/pkg/config"
	"github.com/skillman-dev/skillman/pkg/discovery"
	"github.com/skillman-dev/skillman/pkg/skill"
)

func testSettings(t *testing.T) config.Settings {
	t.Helper()
	tmpDir := t.TempDir()
	return config.Settings{
		ClaudeHome: filepath.Join(tmpDir, ".claude"),
		CodexHome:  filepath.Join(tmpDir, ".codex"),
	}
}

func descFrontmatter(desc string) skill.Frontmatter {
	fm := skill.DefaultFrontmatter()
	fm.Description = desc
	return fm
}

func TestCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("creates directory and SKILL.md", func(t *testing.T) {
		settings := testSettings(t)
		service := NewService(settings)

		dir, err := service.Create(ctx, "demo", descFrontmatter("x"), "body", skill.Personal())
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(settings.PersonalSkillsDir(), "demo"), dir)

		content, err := os.ReadFile(filepath.Join(dir, skill.FileName))
		require.NoError(t, err)
		assert.Equal(t, "---\ndescription: \"x\"\n---\n\nbody\n", string(content))
	})

	t.Run("created skill is discoverable", func(t *testing.T) {
		settings := testSettings(t)
		service := NewService(settings)

		_, err := service.Create(ctx, "demo", descFrontmatter("x"), "body", skill.Personal())
		require.NoError(t, err)

		skills, err := discovery.NewService(settings).DiscoverSkills(ctx, settings.PersonalSkillsDir(), skill.Personal())
		require.NoError(t, err)
		require.Len(t, skills, 1)
		assert.Equal(t, "demo", skills[0].Name)
		assert.Equal(t, "x", skills[0].Frontmatter.Description)
		assert.True(t, skills[0].Enabled)
	})

	t.Run("rejects invalid names", func(t *testing.T) {
		service := NewService(testSettings(t))

		for _, name := range []string{"", "has space", "slash/y", "dot.dot", "../escape"} {
			_, err := service.Create(ctx, name, skill.DefaultFrontmatter(), "", skill.Personal())
			assert.ErrorIs(t, err, ErrInvalidName, "name %q", name)
		}
	})

	t.Run("rejects occupied target", func(t *testing.T) {
		service := NewService(testSettings(t))

		_, err := service.Create(ctx, "dup", skill.DefaultFrontmatter(), "", skill.Personal())
		require.NoError(t, err)
		_, err = service.Create(ctx, "dup", skill.DefaultFrontmatter(), "", skill.Personal())
		assert.ErrorIs(t, err, ErrAlreadyExists)
	})
}

func createTestSkill(t *testing.T, service *Service, settings config.Settings, name string) skill.Skill {
	t.Helper()
	ctx := context.Background()
	_, err := service.Create(ctx, name, descFrontmatter("test skill"), "body", skill.Personal())
	require.NoError(t, err)

	skills, err := discovery.NewService(settings).DiscoverSkills(ctx, settings.PersonalSkillsDir(), skill.Personal())
	require.NoError(t, err)
	for _, s := range skills {
		if s.Name == name {
			return s
		}
	}
	t.Fatalf("skill %s not found after create", name)
	return skill.Skill{}
}

func TestUpdate(t *testing.T) {
	ctx := context.Background()
	settings := testSettings(t)
	service := NewService(settings)
	sk := createTestSkill(t, service, settings, "editable")

	newFm := descFrontmatter("updated")
	require.NoError(t, service.Update(ctx, sk, newFm, "new body"))

	content, err := os.ReadFile(sk.FilePath())
	require.NoError(t, err)
	assert.Contains(t, string(content), "description: \"updated\"")
	assert.Contains(t, string(content), "new body")
}

func TestSetEnabled(t *testing.T) {
	ctx := context.Background()
	settings := testSettings(t)
	service := NewService(settings)
	sk := createTestSkill(t, service, settings, "switchable")

	enabledPath := filepath.Join(sk.Directory, skill.FileName)
	disabledPath := filepath.Join(sk.Directory, skill.FileNameDisabled)

	t.Run("same state is a no-op", func(t *testing.T) {
		require.NoError(t, service.SetEnabled(ctx, sk, true))
		assert.FileExists(t, enabledPath)
		assert.NoFileExists(t, disabledPath)
	})

	t.Run("disable renames to disabled form", func(t *testing.T) {
		require.NoError(t, service.SetEnabled(ctx, sk, false))
		assert.NoFileExists(t, enabledPath)
		assert.FileExists(t, disabledPath)
	})

	t.Run("re-enable round-trips through discovery", func(t *testing.T) {
		skills, err := discovery.NewService(settings).DiscoverSkills(ctx, settings.PersonalSkillsDir(), skill.Personal())
		require.NoError(t, err)
		require.Len(t, skills, 1)
		assert.False(t, skills[0].Enabled)

		require.NoError(t, service.SetEnabled(ctx, skills[0], true))

		skills, err = discovery.NewService(settings).DiscoverSkills(ctx, settings.PersonalSkillsDir(), skill.Personal())
		require.NoError(t, err)
		require.Len(t, skills, 1)
		assert.True(t, skills[0].Enabled)
		assert.FileExists(t, enabledPath)
	})
}

func TestDelete(t *testing.T) {
	ctx := context.Background()

	t.Run("removes skill directory", func(t *testing.T) {
		settings := testSettings(t)
		service := NewService(settings)
		sk := createTestSkill(t, service, settings, "doomed")

		require.NoError(t, service.Delete(ctx, sk))
		assert.NoDirExists(t, sk.Directory)
	})

	t.Run("removes only the file for legacy commands", func(t *testing.T) {
		settings := testSettings(t)
		service := NewService(settings)

		commandsDir := settings.LegacyCommandsDir()
		require.NoError(t, os.MkdirAll(commandsDir, 0o755))
		filePath := filepath.Join(commandsDir, "old.md")
		require.NoError(t, os.WriteFile(filePath, []byte("---\n---\n\nbody\n"), 0o644))
		require.NoError(t, os.WriteFile(filepath.Join(commandsDir, "keep.md"), []byte("---\n---\n\nkeep\n"), 0o644))

		sk := skill.Skill{
			Name:            "old",
			Location:        skill.LegacyCommand(commandsDir),
			Directory:       commandsDir,
			IsLegacyCommand: true,
			Enabled:         true,
		}
		require.NoError(t, service.Delete(ctx, sk))
		assert.NoFileExists(t, filePath)
		assert.FileExists(t, filepath.Join(commandsDir, "keep.md"))
		assert.DirExists(t, commandsDir)
	})
}

func TestPathSafety(t *testing.T) {
	ctx := context.Background()
	settings := testSettings(t)
	service := NewService(settings)

	// A skill whose recorded location does not contain its actual directory.
	outsideDir := t.TempDir()
	strayFile := filepath.Join(outsideDir, skill.FileName)
	require.NoError(t, os.WriteFile(strayFile, []byte("---\n---\n\nbody\n"), 0o644))

	stray := skill.Skill{
		Name:      "stray",
		Location:  skill.Personal(),
		Directory: outsideDir,
		Enabled:   true,
	}

	t.Run("delete refuses and leaves filesystem unchanged", func(t *testing.T) {
		err := service.Delete(ctx, stray)
		assert.ErrorIs(t, err, ErrUnsafePath)
		assert.DirExists(t, outsideDir)
		assert.FileExists(t, strayFile)
	})

	t.Run("move refuses", func(t *testing.T) {
		_, err := service.Move(ctx, stray, skill.Project(t.TempDir()))
		assert.ErrorIs(t, err, ErrUnsafePath)
		assert.DirExists(t, outsideDir)
	})

	t.Run("update refuses", func(t *testing.T) {
		err := service.Update(ctx, stray, skill.DefaultFrontmatter(), "tampered")
		assert.ErrorIs(t, err, ErrUnsafePath)

		content, err2 := os.ReadFile(strayFile)
		require.NoError(t, err2)
		assert.NotContains(t, string(content), "tampered")
	})

	t.Run("set enabled refuses", func(t *testing.T) {
		err := service.SetEnabled(ctx, stray, false)
		assert.ErrorIs(t, err, ErrUnsafePath)
		assert.FileExists(t, strayFile)
	})
}

func TestMove(t *testing.T) {
	ctx := context.Background()

	t.Run("personal to project", func(t *testing.T) {
		settings := testSettings(t)
		service := NewService(settings)
		sk := createTestSkill(t, service, settings, "mover")
		projectRoot := t.TempDir()

		targetDir, err := service.Move(ctx, sk, skill.Project(projectRoot))
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(projectRoot, ".claude", "skills", "mover"), targetDir)
		assert.NoDirExists(t, sk.Directory)
		assert.FileExists(t, filepath.Join(targetDir, skill.FileName))
	})

	t.Run("occupied target", func(t *testing.T) {
		settings := testSettings(t)
		service := NewService(settings)
		sk := createTestSkill(t, service, settings, "blocked")
		projectRoot := t.TempDir()

		occupied := filepath.Join(projectRoot, ".claude", "skills", "blocked")
		require.NoError(t, os.MkdirAll(occupied, 0o755))

		_, err := service.Move(ctx, sk, skill.Project(projectRoot))
		assert.ErrorIs(t, err, ErrAlreadyExists)
		assert.DirExists(t, sk.Directory)
	})

	t.Run("unsupported moves", func(t *testing.T) {
		settings := testSettings(t)
		service := NewService(settings)
		sk := createTestSkill(t, service, settings, "stuck")

		// Cross-assistant.
		_, err := service.Move(ctx, sk, skill.CodexPersonal())
		assert.ErrorIs(t, err, ErrUnsupportedMove)

		// Read-only target.
		_, err = service.Move(ctx, sk, skill.CodexSystem("/sys"))
		assert.ErrorIs(t, err, ErrUnsupportedMove)

		// Legacy command source.
		legacy := skill.Skill{
			Name:            "legacy",
			Location:        skill.LegacyCommand(settings.LegacyCommandsDir()),
			Directory:       settings.LegacyCommandsDir(),
			IsLegacyCommand: true,
		}
		_, err = service.Move(ctx, legacy, skill.Personal())
		assert.ErrorIs(t, err, ErrUnsupportedMove)

		// Source untouched throughout.
		assert.DirExists(t, sk.Directory)
	})

	t.Run("moved skill discoverable at target", func(t *testing.T) {
		settings := testSettings(t)
		service := NewService(settings)
		sk := createTestSkill(t, service, settings, "traveler")
		projectRoot := t.TempDir()

		_, err := service.Move(ctx, sk, skill.Project(projectRoot))
		require.NoError(t, err)

		loc := skill.Project(projectRoot)
		skills, err := discovery.NewService(settings).DiscoverSkills(ctx, loc.BasePath(settings), loc)
		require.NoError(t, err)
		require.Len(t, skills, 1)
		assert.Equal(t, "traveler", skills[0].Name)
		assert.Equal(t, "test skill", skills[0].Frontmatter.Description)
	})
}
