package main

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/skillman-dev/skillman/pkg/presenter"
)

var moveCmd = &cobra.Command{
	Use:   "move <name>",
	Short: "Move a skill to another location",
	Long: `Move a skill between locations of the same assistant: personal and
project locations for Claude, Codex personal and Codex project locations
for Codex. Legacy commands and read-only skills cannot be moved.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		m, err := newManager(ctx)
		if err != nil {
			return err
		}

		sk, err := findSkill(m, args[0])
		if err != nil {
			return err
		}

		locationFlag, _ := cmd.Flags().GetString("to")
		projectRoot, _ := cmd.Flags().GetString("project-root")
		target, err := resolveLocation(locationFlag, projectRoot)
		if err != nil {
			return err
		}

		dir, err := m.Move(ctx, sk, target)
		if err != nil {
			return errors.Wrap(err, "failed to move skill")
		}

		presenter.Success(fmt.Sprintf("Moved skill %q to %s", sk.Name, dir))
		return nil
	},
}

func init() {
	moveCmd.Flags().StringP("to", "t", "", "Target location (personal, codex, project, codex-project)")
	moveCmd.Flags().String("project-root", "", "Project root for project locations")
	moveCmd.MarkFlagRequired("to")
}
