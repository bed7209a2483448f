package cmd

import (
	"fmt"

	"github.com/itsmostafa/docnav/internal/report"
	"github.com/itsmostafa/docnav/internal/site"
	"github.com/spf13/cobra"
)

var buildCmd = &cobra.Command{
	Use:   "build <docs-dir> <out-dir>",
	Short: "Render docs and write the navigation manifest",
	Long: `Render every markdown document under <docs-dir> into <out-dir>, copy the
other files alongside, and write manifest.json describing the navigation tree.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd, args[0], args[1])
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		report.FormatHeader(out, cfg)

		result, err := site.NewBuilder(cfg, setupLogger(cfg.LogLevel)).Build(cmd.Context())
		if err != nil {
			return err
		}
		report.FormatSummary(out, result)

		if len(result.Failures) > 0 {
			return fmt.Errorf("%d document(s) failed to convert", len(result.Failures))
		}
		return nil
	},
}

func init() {
	addBuildFlags(buildCmd)
	rootCmd.AddCommand(buildCmd)
}
