package main

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/skillman-dev/skillman/pkg/presenter"
)

var importCmd = &cobra.Command{
	Use:   "import <directory>",
	Short: "Import a skill from an extracted directory",
	Long: `Import a skill package from a directory containing a SKILL.md and
optional supporting files. The package is previewed first; --name
overrides the imported skill's name.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		m, err := newManager(ctx)
		if err != nil {
			return err
		}

		pkg, err := m.Preview(args[0])
		if err != nil {
			return errors.Wrap(err, "failed to read skill package")
		}

		name, _ := cmd.Flags().GetString("name")
		if name == "" {
			name = pkg.Name
		}

		presenter.Section(fmt.Sprintf("Importing %q", name))
		if pkg.Frontmatter.Description != "" {
			presenter.Info(fmt.Sprintf("Description: %s", pkg.Frontmatter.Description))
		}
		if len(pkg.SupportingFiles) > 0 {
			presenter.Info(fmt.Sprintf("Supporting files: %d", len(pkg.SupportingFiles)))
		}

		dryRun, _ := cmd.Flags().GetBool("dry-run")
		if dryRun {
			presenter.Info("Dry run, nothing written")
			return nil
		}

		locationFlag, _ := cmd.Flags().GetString("location")
		projectRoot, _ := cmd.Flags().GetString("project-root")
		location, err := resolveLocation(locationFlag, projectRoot)
		if err != nil {
			return err
		}

		dir, err := m.Import(ctx, pkg, name, location)
		if err != nil {
			return errors.Wrap(err, "failed to import skill")
		}

		presenter.Success(fmt.Sprintf("Imported skill %q to %s", name, dir))
		return nil
	},
}

func init() {
	importCmd.Flags().String("name", "", "Override the skill name")
	importCmd.Flags().StringP("location", "l", "personal", "Target location (personal, codex, project, codex-project)")
	importCmd.Flags().String("project-root", "", "Project root for project locations")
	importCmd.Flags().Bool("dry-run", false, "Preview without importing")
}
