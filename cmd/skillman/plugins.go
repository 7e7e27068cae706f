package main

import (
	"encoding/json"
	"fmt"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/skillman-dev/skillman/pkg/presenter"
)

var pluginsCmd = &cobra.Command{
	Use:   "plugins",
	Short: "List installed plugins and their skills",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		m, err := newManager(ctx)
		if err != nil {
			return err
		}

		plugins := m.Plugins()
		jsonOutput, _ := cmd.Flags().GetBool("json")

		if jsonOutput {
			data := make([]map[string]any, len(plugins))
			for i, p := range plugins {
				var skillNames []string
				for _, sk := range m.Skills() {
					if sk.Location.IsPlugin() && sk.Location.PluginID == p.ID {
						skillNames = append(skillNames, sk.Name)
					}
				}
				data[i] = map[string]any{
					"id":        p.ID,
					"name":      p.Name,
					"skillsDir": p.SkillsDir,
					"skills":    skillNames,
				}
			}
			output, err := json.MarshalIndent(data, "", "  ")
			if err != nil {
				return errors.Wrap(err, "failed to marshal JSON output")
			}
			fmt.Println(string(output))
			return nil
		}

		if len(plugins) == 0 {
			presenter.Info("No plugins installed")
			return nil
		}

		for _, p := range plugins {
			presenter.Section(p.Name)
			presenter.Info(fmt.Sprintf("ID:   %s", p.ID))
			presenter.Info(fmt.Sprintf("Path: %s", p.SkillsDir))
			for _, sk := range m.Skills() {
				if sk.Location.IsPlugin() && sk.Location.PluginID == p.ID {
					presenter.Info(fmt.Sprintf("  • %s", sk.DisplayName()))
				}
			}
			presenter.Info("")
		}

		return nil
	},
}

func init() {
	pluginsCmd.Flags().Bool("json", false, "Output as JSON")
}
