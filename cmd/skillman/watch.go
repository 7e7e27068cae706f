package main

import (
	"fmt"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/skillman-dev/skillman/pkg/config"
	"github.com/skillman-dev/skillman/pkg/discovery"
	"github.com/skillman-dev/skillman/pkg/manager"
	"github.com/skillman-dev/skillman/pkg/presenter"
	"github.com/skillman-dev/skillman/pkg/watcher"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Watch skill directories and report changes",
	Long: `Watch every active skill location for filesystem changes. Each
debounced change triggers a rediscovery pass and prints the new skill
count. Runs until interrupted.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		settings, err := config.Load()
		if err != nil {
			return errors.Wrap(err, "failed to load settings")
		}

		debounce, _ := cmd.Flags().GetDuration("debounce")
		m := manager.New(settings,
			manager.WithProjects(viper.GetStringSlice("projects")...),
			manager.WithWatcherOptions(watcher.WithDebounce(debounce)),
		)

		catalog := m.Reload(ctx)
		presenter.Info(fmt.Sprintf("Watching %d locations, %d skills found",
			len(m.WatchPaths()), len(catalog.Skills)))

		err = m.StartWatching(ctx, func(c *discovery.Catalog) {
			presenter.Info(fmt.Sprintf("[%s] catalog reloaded, %d skills",
				time.Now().Format("15:04:05"), len(c.Skills)))
		})
		if err != nil {
			return errors.Wrap(err, "failed to start watching")
		}
		defer m.StopWatching()

		<-ctx.Done()
		presenter.Info("Stopping")
		return nil
	},
}

func init() {
	watchCmd.Flags().Duration("debounce", watcher.DefaultDebounce, "Debounce interval for change batching")
}
