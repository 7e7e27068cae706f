package main

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/skillman-dev/skillman/pkg/presenter"
)

var enableCmd = &cobra.Command{
	Use:   "enable <name>",
	Short: "Enable a disabled skill",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return setEnabled(cmd, args[0], true)
	},
}

var disableCmd = &cobra.Command{
	Use:   "disable <name>",
	Short: "Disable a skill without deleting it",
	Long: `Disable a skill by renaming its skill file with a .disabled suffix.
The skill keeps its directory and supporting files and can be re-enabled.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return setEnabled(cmd, args[0], false)
	},
}

func setEnabled(cmd *cobra.Command, name string, enabled bool) error {
	ctx := cmd.Context()

	m, err := newManager(ctx)
	if err != nil {
		return err
	}

	sk, err := findSkill(m, name)
	if err != nil {
		return err
	}

	if sk.Enabled == enabled {
		presenter.Info(fmt.Sprintf("Skill %q is already %s", sk.Name, enabledLabel(sk)))
		return nil
	}

	if err := m.SetEnabled(ctx, sk, enabled); err != nil {
		return errors.Wrap(err, "failed to change skill state")
	}

	if enabled {
		presenter.Success(fmt.Sprintf("Enabled skill %q", sk.Name))
	} else {
		presenter.Success(fmt.Sprintf("Disabled skill %q", sk.Name))
	}
	return nil
}
