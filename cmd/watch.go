package cmd

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/itsmostafa/docnav/internal/report"
	"github.com/itsmostafa/docnav/internal/site"
	"github.com/itsmostafa/docnav/internal/walker"
	"github.com/itsmostafa/docnav/internal/watch"
	"github.com/spf13/cobra"
)

var watchCmd = &cobra.Command{
	Use:   "watch <docs-dir> <out-dir>",
	Short: "Build, then rebuild whenever the docs change",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd, args[0], args[1])
		if err != nil {
			return err
		}
		logger := setupLogger(cfg.LogLevel)
		out := cmd.OutOrStdout()

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		builder := site.NewBuilder(cfg, logger)
		report.FormatHeader(out, cfg)
		result, err := builder.Build(ctx)
		if err != nil {
			return err
		}
		report.FormatSummary(out, result)

		// The output dir is skipped so our own writes never trigger a rebuild.
		filter, err := walker.New(walker.Options{
			Root:     cfg.DocsDir,
			Exclude:  cfg.Exclude,
			SkipDirs: []string{cfg.OutDir},
		})
		if err != nil {
			return err
		}
		w, err := watch.New(filter.Root(), filter, cfg.Watch.Debounce, logger)
		if err != nil {
			return err
		}
		defer w.Close()

		logger.Info("watching for changes", "root", filter.Root())
		iteration := 0
		return w.Run(ctx, func(ctx context.Context, batch []watch.Event) {
			iteration++
			report.FormatRebuildBanner(out, iteration, len(batch))
			result, err := builder.Build(ctx)
			if err != nil {
				if !errors.Is(err, context.Canceled) {
					logger.Error("rebuild failed", "error", err)
				}
				return
			}
			report.FormatSummary(out, result)
		})
	},
}

func init() {
	addBuildFlags(watchCmd)
	rootCmd.AddCommand(watchCmd)
}
