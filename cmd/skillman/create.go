package main

import (
	"fmt"
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/skillman-dev/skillman/pkg/presenter"
	"github.com/skillman-dev/skillman/pkg/skill"
)

var createCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Create a new skill",
	Long: `Create a new skill directory with a SKILL.md file.

The body can come from --file or stdin ("-"); otherwise a starter body is
generated. Names may contain letters, digits, hyphens, and underscores.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		name := args[0]

		m, err := newManager(ctx)
		if err != nil {
			return err
		}

		locationFlag, _ := cmd.Flags().GetString("location")
		projectRoot, _ := cmd.Flags().GetString("project-root")
		location, err := resolveLocation(locationFlag, projectRoot)
		if err != nil {
			return err
		}

		fm := skill.DefaultFrontmatter()
		fm.Description, _ = cmd.Flags().GetString("description")
		fm.Model, _ = cmd.Flags().GetString("model")
		fm.AllowedTools, _ = cmd.Flags().GetString("allowed-tools")

		content, err := readBodyFlag(cmd)
		if err != nil {
			return err
		}
		if content == "" {
			content = fmt.Sprintf("# %s\n\nDescribe when and how to use this skill.\n", name)
		}

		dir, err := m.Create(ctx, name, fm, content, location)
		if err != nil {
			return errors.Wrap(err, "failed to create skill")
		}

		presenter.Success(fmt.Sprintf("Created skill %q at %s", name, dir))
		return nil
	},
}

// readBodyFlag reads the skill body from --file, supporting "-" for stdin.
func readBodyFlag(cmd *cobra.Command) (string, error) {
	file, _ := cmd.Flags().GetString("file")
	if file == "" {
		return "", nil
	}
	if file == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", errors.Wrap(err, "failed to read stdin")
		}
		return string(data), nil
	}
	data, err := os.ReadFile(file)
	if err != nil {
		return "", errors.Wrapf(err, "failed to read %s", file)
	}
	return string(data), nil
}

func init() {
	createCmd.Flags().StringP("description", "d", "", "Skill description")
	createCmd.Flags().String("model", "", "Model this skill prefers")
	createCmd.Flags().String("allowed-tools", "", "Allowed tools expression")
	createCmd.Flags().StringP("file", "f", "", "Read the skill body from a file (\"-\" for stdin)")
	createCmd.Flags().StringP("location", "l", "personal", "Target location (personal, codex, project, codex-project)")
	createCmd.Flags().String("project-root", "", "Project root for project locations")
}
