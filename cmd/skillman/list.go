package main

import (
	"encoding/json"
	"fmt"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/skillman-dev/skillman/pkg/presenter"
	"github.com/skillman-dev/skillman/pkg/skill"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List discovered skills",
	Long: `List every skill found across the active locations: personal, Codex,
project roots, legacy commands, and installed plugins.

Use --json for machine-readable output.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		m, err := newManager(ctx)
		if err != nil {
			return err
		}

		catalog := m.Catalog()
		if catalog.Err != nil {
			presenter.Warning(fmt.Sprintf("Some locations failed to scan: %v", catalog.Err))
		}

		jsonOutput, _ := cmd.Flags().GetBool("json")
		disabledOnly, _ := cmd.Flags().GetBool("disabled")

		skills := catalog.Skills
		if disabledOnly {
			var filtered []skill.Skill
			for _, sk := range skills {
				if !sk.Enabled {
					filtered = append(filtered, sk)
				}
			}
			skills = filtered
		}

		if jsonOutput {
			data := make([]map[string]any, len(skills))
			for i, sk := range skills {
				data[i] = map[string]any{
					"name":        sk.Name,
					"description": sk.Frontmatter.Description,
					"location":    sk.Location.DisplayName(),
					"provider":    string(sk.Location.Provider()),
					"enabled":     sk.Enabled,
					"readOnly":    sk.Location.IsReadOnly(),
					"legacy":      sk.IsLegacyCommand,
					"path":        sk.Directory,
				}
			}
			output, err := json.MarshalIndent(data, "", "  ")
			if err != nil {
				return errors.Wrap(err, "failed to marshal JSON output")
			}
			fmt.Println(string(output))
			return nil
		}

		if len(skills) == 0 {
			presenter.Info("No skills found")
			return nil
		}

		// Group by location, preserving discovery order
		var order []string
		byLocation := make(map[string][]skill.Skill)
		for _, sk := range skills {
			key := fmt.Sprintf("%s / %s", sk.Location.Provider().DisplayName(), sk.Location.DisplayName())
			if _, seen := byLocation[key]; !seen {
				order = append(order, key)
			}
			byLocation[key] = append(byLocation[key], sk)
		}

		for _, key := range order {
			presenter.Section(key)
			for _, sk := range byLocation[key] {
				marker := " "
				if !sk.Enabled {
					marker = "✗"
				}
				desc := sk.Frontmatter.Description
				if desc == "" {
					desc = "(no description)"
				}
				presenter.Info(fmt.Sprintf("%s %-30s %s", marker, sk.DisplayName(), desc))
			}
			presenter.Info("")
		}

		return nil
	},
}

func init() {
	listCmd.Flags().Bool("json", false, "Output as JSON")
	listCmd.Flags().Bool("disabled", false, "Show only disabled skills")
}
