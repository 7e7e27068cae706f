package main

import (
	"context"
	"fmt"

	"github.com/pkg/errors"
	"github.com/spf13/viper"

	"github.com/skillman-dev/skillman/pkg/config"
	"github.com/skillman-dev/skillman/pkg/manager"
	"github.com/skillman-dev/skillman/pkg/skill"
)

// newManager builds the skill manager from the resolved settings and the
// configured project roots, then runs an initial discovery pass.
func newManager(ctx context.Context) (*manager.Manager, error) {
	settings, err := config.Load()
	if err != nil {
		return nil, errors.Wrap(err, "failed to load settings")
	}

	m := manager.New(settings, manager.WithProjects(viper.GetStringSlice("projects")...))
	m.Reload(ctx)
	return m, nil
}

// resolveLocation maps --location/--project-root flag values to a skill
// location. Project-scoped locations require a project root.
func resolveLocation(location, projectRoot string) (skill.Location, error) {
	switch location {
	case "", "personal":
		return skill.Personal(), nil
	case "codex":
		return skill.CodexPersonal(), nil
	case "project":
		if projectRoot == "" {
			return skill.Location{}, errors.New("--project-root is required for project locations")
		}
		return skill.Project(config.NormalizePath(projectRoot)), nil
	case "codex-project":
		if projectRoot == "" {
			return skill.Location{}, errors.New("--project-root is required for project locations")
		}
		return skill.CodexProject(config.NormalizePath(projectRoot)), nil
	default:
		return skill.Location{}, errors.Errorf("unknown location %q (personal, codex, project, codex-project)", location)
	}
}

// findSkill looks up a skill by name in the current catalog.
func findSkill(m *manager.Manager, name string) (skill.Skill, error) {
	sk, ok := m.Find(name)
	if !ok {
		return skill.Skill{}, errors.Errorf("skill %q not found", name)
	}
	return sk, nil
}

func enabledLabel(sk skill.Skill) string {
	if sk.Enabled {
		return "enabled"
	}
	return "disabled"
}

func describeSkill(sk skill.Skill) string {
	return fmt.Sprintf("%s (%s, %s)", sk.DisplayName(), sk.Location.DisplayName(), enabledLabel(sk))
}
