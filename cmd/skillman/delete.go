package main

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/skillman-dev/skillman/pkg/presenter"
)

var deleteCmd = &cobra.Command{
	Use:   "delete <name>",
	Short: "Delete a skill from disk",
	Long: `Delete a skill's directory and everything in it. Legacy commands are
single files and only the file is removed. Prompts for confirmation
unless --force is set.`,
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

		force, _ := cmd.Flags().GetBool("force")
		if !force {
			answer := presenter.Prompt(fmt.Sprintf("Delete %s?", describeSkill(sk)), "y", "N")
			if !strings.EqualFold(answer, "y") {
				presenter.Info("Aborted")
				return nil
			}
		}

		if err := m.Delete(ctx, sk); err != nil {
			return errors.Wrap(err, "failed to delete skill")
		}

		presenter.Success(fmt.Sprintf("Deleted skill %q", sk.Name))
		return nil
	},
}

func init() {
	deleteCmd.Flags().BoolP("force", "f", false, "Delete without confirmation")
}
