package cmd

import (
	"path/filepath"
	"strings"

	"github.com/itsmostafa/docnav/internal/report"
	"github.com/itsmostafa/docnav/internal/search"
	"github.com/spf13/cobra"
)

var searchLimit int

var searchCmd = &cobra.Command{
	Use:   "search <out-dir> <query>...",
	Short: "Query the search index written by build --search",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd, "", args[0])
		if err != nil {
			return err
		}

		indexDir := filepath.Join(cfg.OutDir, cfg.Search.IndexName)
		hits, err := search.Search(indexDir, strings.Join(args[1:], " "), searchLimit)
		if err != nil {
			return err
		}
		report.FormatHits(cmd.OutOrStdout(), hits)
		return nil
	},
}

func init() {
	searchCmd.Flags().IntVarP(&searchLimit, "limit", "n", 10, "Maximum number of results")
	rootCmd.AddCommand(searchCmd)
}
