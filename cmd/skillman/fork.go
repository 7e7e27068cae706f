package main

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/skillman-dev/skillman/pkg/presenter"
)

var forkCmd = &cobra.Command{
	Use:   "fork <name>",
	Short: "Copy a read-only skill into the personal location",
	Long: `Fork makes an editable personal copy of a skill, typically one shipped
by a plugin or the Codex system directory.`,
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

		dir, err := m.Fork(ctx, sk)
		if err != nil {
			return errors.Wrap(err, "failed to fork skill")
		}

		presenter.Success(fmt.Sprintf("Forked skill %q to %s", sk.Name, dir))
		return nil
	},
}
