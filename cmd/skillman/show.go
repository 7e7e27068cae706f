package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/skillman-dev/skillman/pkg/presenter"
	"github.com/skillman-dev/skillman/pkg/skill"
)

var showCmd = &cobra.Command{
	Use:   "show <name>",
	Short: "Show a skill's metadata and content",
	Args:  cobra.ExactArgs(1),
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

		raw, _ := cmd.Flags().GetBool("raw")
		if raw {
			fmt.Print(skill.Serialize(sk.Frontmatter, sk.Content))
			return nil
		}

		presenter.Section(sk.DisplayName())
		presenter.Info(fmt.Sprintf("Location:    %s", sk.Location.DisplayName()))
		presenter.Info(fmt.Sprintf("Provider:    %s", sk.Location.Provider()))
		presenter.Info(fmt.Sprintf("State:       %s", enabledLabel(sk)))
		presenter.Info(fmt.Sprintf("Path:        %s", sk.Directory))
		if sk.Location.IsReadOnly() {
			presenter.Info("Read-only:   yes")
		}
		if sk.Frontmatter.Description != "" {
			presenter.Info(fmt.Sprintf("Description: %s", sk.Frontmatter.Description))
		}
		if sk.Frontmatter.Model != "" {
			presenter.Info(fmt.Sprintf("Model:       %s", sk.Frontmatter.Model))
		}
		if sk.Frontmatter.AllowedTools != "" {
			presenter.Info(fmt.Sprintf("Tools:       %s", sk.Frontmatter.AllowedTools))
		}
		presenter.Info(fmt.Sprintf("Modified:    %s", sk.LastModified.Format("2006-01-02 15:04:05")))

		if len(sk.SupportingFiles) > 0 {
			presenter.Info("")
			presenter.Section("Supporting files")
			for _, f := range sk.SupportingFiles {
				presenter.Info(fmt.Sprintf("  %s (%d bytes)", f.RelativePath, f.Size))
			}
		}

		presenter.Info("")
		presenter.Separator()
		fmt.Println(sk.Content)
		return nil
	},
}

func init() {
	showCmd.Flags().Bool("raw", false, "Print the raw serialized skill file")
}
