package main

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/skillman-dev/skillman/pkg/presenter"
)

var exportCmd = &cobra.Command{
	Use:   "export <name> <destination>",
	Short: "Export a skill to a directory",
	Long: `Copy a skill's directory, including supporting files, into the
destination directory. Plugin and system skills can be exported too.`,
	Args: cobra.ExactArgs(2),
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

		dir, err := m.Export(sk, args[1])
		if err != nil {
			return errors.Wrap(err, "failed to export skill")
		}

		presenter.Success(fmt.Sprintf("Exported skill %q to %s", sk.Name, dir))
		return nil
	},
}
