package main

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/skillman-dev/skillman/pkg/presenter"
)

var editCmd = &cobra.Command{
	Use:   "edit <name>",
	Short: "Update a skill's content",
	Long: `Replace a skill's body with content from --file (or stdin via "-").
Frontmatter fields can be updated with flags; unset flags keep their
current values.`,
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

		fm := sk.Frontmatter
		if cmd.Flags().Changed("description") {
			fm.Description, _ = cmd.Flags().GetString("description")
		}
		if cmd.Flags().Changed("model") {
			fm.Model, _ = cmd.Flags().GetString("model")
		}
		if cmd.Flags().Changed("allowed-tools") {
			fm.AllowedTools, _ = cmd.Flags().GetString("allowed-tools")
		}

		content := sk.Content
		if cmd.Flags().Changed("file") {
			content, err = readBodyFlag(cmd)
			if err != nil {
				return err
			}
		}

		if err := m.Update(ctx, sk, fm, content); err != nil {
			return errors.Wrap(err, "failed to update skill")
		}

		presenter.Success(fmt.Sprintf("Updated skill %q", sk.Name))
		return nil
	},
}

func init() {
	editCmd.Flags().StringP("description", "d", "", "Skill description")
	editCmd.Flags().String("model", "", "Model this skill prefers")
	editCmd.Flags().String("allowed-tools", "", "Allowed tools expression")
	editCmd.Flags().StringP("file", "f", "", "Read the new body from a file (\"-\" for stdin)")
}
