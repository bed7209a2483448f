package cmd

import (
	"github.com/itsmostafa/docnav/internal/manifest"
	"github.com/itsmostafa/docnav/internal/report"
	"github.com/itsmostafa/docnav/internal/site"
	"github.com/spf13/cobra"
)

var treeJSON bool

var treeCmd = &cobra.Command{
	Use:   "tree <docs-dir>",
	Short: "Print the navigation tree without writing anything",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd, args[0], "")
		if err != nil {
			return err
		}

		result, err := site.NewBuilder(cfg, setupLogger(cfg.LogLevel)).Plan(cmd.Context())
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if treeJSON {
			data, err := manifest.Marshal(result.Manifest)
			if err != nil {
				return err
			}
			_, err = out.Write(data)
			return err
		}
		report.FormatTree(out, result.Manifest)
		report.FormatProblems(out, result)
		return nil
	},
}

func init() {
	addBuildFlags(treeCmd)
	treeCmd.Flags().BoolVar(&treeJSON, "json", false, "Print the manifest JSON instead of a tree")
	rootCmd.AddCommand(treeCmd)
}
