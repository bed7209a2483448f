package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/itsmostafa/docnav/internal/config"
	"github.com/itsmostafa/docnav/internal/version"
	"github.com/spf13/cobra"
)

var configPath string
var logLevel string
var excludes []string
var compressImages bool
var searchEnabled bool

var rootCmd = &cobra.Command{
	Use:   "docnav",
	Short: "Render numbered markdown docs into a static site",
	Long: `docnav renders a directory of numbered markdown documents into HTML articles
and a navigation manifest. The tree is inferred from file and directory names:
a file named 03_main.md owns the directory 03_main/ next to it.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.Version = version.Version
	rootCmd.SetVersionTemplate(fmt.Sprintf("docnav %s\n", version.String()))

	// Config path flag with env var fallback
	defaultConfig := os.Getenv("DOCNAV_CONFIG")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", defaultConfig, "Path to docnav.yaml (default: <docs-dir>/docnav.yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error)")
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// addBuildFlags registers the flags shared by commands that render docs.
func addBuildFlags(c *cobra.Command) {
	c.Flags().StringArrayVar(&excludes, "exclude", nil, "Glob pattern to exclude, relative to the docs dir (repeatable)")
	c.Flags().BoolVar(&compressImages, "compress-images", false, "Recompress JPEG and PNG assets when smaller")
	c.Flags().BoolVar(&searchEnabled, "search", false, "Write a full-text search index")
}

// loadConfig reads the config file and applies the flags the user set.
func loadConfig(cmd *cobra.Command, docsDir, outDir string) (*config.Config, error) {
	var cfg *config.Config
	var err error
	switch {
	case configPath != "":
		cfg, err = config.LoadConfig(configPath)
	case docsDir != "":
		cfg, err = config.LoadConfigFromDir(docsDir)
	default:
		cfg = config.DefaultConfig()
	}
	if err != nil {
		return nil, err
	}

	var flags config.Flags
	flagSet := cmd.Flags()
	if flagSet.Changed("exclude") {
		flags.Exclude = excludes
	}
	if flagSet.Changed("compress-images") {
		flags.CompressImages = &compressImages
	}
	if flagSet.Changed("search") {
		flags.Search = &searchEnabled
	}
	if flagSet.Changed("log-level") {
		flags.LogLevel = &logLevel
	}
	cfg.MergeWithFlags(flags)

	cfg.DocsDir = docsDir
	cfg.OutDir = outDir
	return cfg, nil
}

// setupLogger creates a text slog.Logger writing to stderr.
func setupLogger(level string) *slog.Logger {
	var lvl slog.Level
	switch strings.ToLower(level) {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
}
