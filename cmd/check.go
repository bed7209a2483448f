package cmd

import (
	"errors"
	"fmt"

	"github.com/itsmostafa/docnav/internal/report"
	"github.com/itsmostafa/docnav/internal/site"
	"github.com/spf13/cobra"
)

var checkCmd = &cobra.Command{
	Use:   "check <docs-dir> <out-dir>",
	Short: "Fail when the manifest in <out-dir> is out of date",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd, args[0], args[1])
		if err != nil {
			return err
		}

		diff, err := site.NewBuilder(cfg, setupLogger(cfg.LogLevel)).Check(cmd.Context())
		if errors.Is(err, site.ErrManifestStale) {
			report.FormatDiff(cmd.OutOrStdout(), diff)
			return err
		}
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "manifest is up to date")
		return nil
	},
}

func init() {
	addBuildFlags(checkCmd)
	rootCmd.AddCommand(checkCmd)
}
