package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// FileName is the config file looked up in the docs root.
const FileName = "docnav.yaml"

// ImagesConfig controls image recompression during asset copy.
type ImagesConfig struct {
	// Compress re-encodes JPEG and PNG assets, keeping the result only when smaller
	Compress bool `yaml:"compress"`

	// JPEGQuality is the JPEG encoder quality (1-100)
	JPEGQuality int `yaml:"jpeg_quality"`
}

// SearchConfig controls the full-text search index.
type SearchConfig struct {
	// Enabled writes a search index next to the manifest
	Enabled bool `yaml:"enabled"`

	// IndexName is the index directory name inside the output directory
	IndexName string `yaml:"index_name"`
}

// WatchConfig controls watch mode.
type WatchConfig struct {
	// Debounce is the quiet period before a rebuild
	Debounce time.Duration `yaml:"-"`
}

// Config holds everything a build needs. It is passed explicitly; nothing is
// kept in package state.
type Config struct {
	// DocsDir is the documentation root
	DocsDir string `yaml:"-"`

	// OutDir receives rendered articles, assets and the manifest
	OutDir string `yaml:"-"`

	// Extensions lists document file extensions, lowercase with leading dot
	Extensions []string `yaml:"extensions"`

	// Exclude lists doublestar patterns relative to the docs root
	Exclude []string `yaml:"exclude"`

	// ManifestName is the manifest file name inside OutDir
	ManifestName string `yaml:"manifest_name"`

	// ReportName is the build report file name inside OutDir
	ReportName string `yaml:"report_name"`

	// CleanTitles derives fallback titles from filenames ("03_getting_started" -> "getting started")
	CleanTitles bool `yaml:"clean_titles"`

	// LogLevel sets the logging verbosity (debug, info, warn, error)
	LogLevel string `yaml:"log_level"`

	Images ImagesConfig `yaml:"images"`
	Search SearchConfig `yaml:"search"`
	Watch  WatchConfig  `yaml:"watch"`
}

// DefaultConfig returns a Config with sensible default values.
func DefaultConfig() *Config {
	return &Config{
		Extensions:   []string{".md", ".markdown"},
		ManifestName: "manifest.json",
		ReportName:   "build.json",
		LogLevel:     "info",
		Images: ImagesConfig{
			Compress:    false,
			JPEGQuality: 85,
		},
		Search: SearchConfig{
			Enabled:   false,
			IndexName: "search.bleve",
		},
		Watch: WatchConfig{
			Debounce: 200 * time.Millisecond,
		},
	}
}

// LoadConfig loads configuration from path, merged over the defaults.
// A missing file yields the defaults; a malformed one is an error.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Durations are strings in YAML.
	type yamlConfig struct {
		Extensions   []string     `yaml:"extensions"`
		Exclude      []string     `yaml:"exclude"`
		ManifestName string       `yaml:"manifest_name"`
		ReportName   string       `yaml:"report_name"`
		CleanTitles  *bool        `yaml:"clean_titles"`
		LogLevel     string       `yaml:"log_level"`
		Images       *yaml.Node   `yaml:"images"`
		Search       *yaml.Node   `yaml:"search"`
		Watch        *struct {
			Debounce string `yaml:"debounce"`
		} `yaml:"watch"`
	}

	var yamlCfg yamlConfig
	if err := yaml.Unmarshal(data, &yamlCfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if len(yamlCfg.Extensions) > 0 {
		cfg.Extensions = normalizeExtensions(yamlCfg.Extensions)
	}
	if len(yamlCfg.Exclude) > 0 {
		cfg.Exclude = yamlCfg.Exclude
	}
	if yamlCfg.ManifestName != "" {
		cfg.ManifestName = yamlCfg.ManifestName
	}
	if yamlCfg.ReportName != "" {
		cfg.ReportName = yamlCfg.ReportName
	}
	if yamlCfg.CleanTitles != nil {
		cfg.CleanTitles = *yamlCfg.CleanTitles
	}
	if yamlCfg.LogLevel != "" {
		cfg.LogLevel = yamlCfg.LogLevel
	}
	// Decoding into the populated sub-structs keeps defaults for absent keys.
	if yamlCfg.Images != nil {
		if err := yamlCfg.Images.Decode(&cfg.Images); err != nil {
			return nil, fmt.Errorf("invalid images section: %w", err)
		}
	}
	if yamlCfg.Search != nil {
		if err := yamlCfg.Search.Decode(&cfg.Search); err != nil {
			return nil, fmt.Errorf("invalid search section: %w", err)
		}
	}
	if yamlCfg.Watch != nil && yamlCfg.Watch.Debounce != "" {
		debounce, err := time.ParseDuration(yamlCfg.Watch.Debounce)
		if err != nil {
			return nil, fmt.Errorf("invalid debounce format %q: %w", yamlCfg.Watch.Debounce, err)
		}
		cfg.Watch.Debounce = debounce
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadConfigFromDir loads docnav.yaml from the docs root.
func LoadConfigFromDir(dir string) (*Config, error) {
	return LoadConfig(filepath.Join(dir, FileName))
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	if c.Images.JPEGQuality < 1 || c.Images.JPEGQuality > 100 {
		return fmt.Errorf("jpeg_quality must be between 1 and 100, got %d", c.Images.JPEGQuality)
	}
	if len(c.Extensions) == 0 {
		return fmt.Errorf("at least one document extension is required")
	}
	if c.Watch.Debounce < 0 {
		return fmt.Errorf("watch debounce must not be negative")
	}
	return nil
}

// Flags carries command line overrides. Nil fields leave the config untouched.
type Flags struct {
	Exclude        []string
	CompressImages *bool
	Search         *bool
	LogLevel       *string
}

// MergeWithFlags applies non-nil flag values over the configuration.
func (c *Config) MergeWithFlags(f Flags) {
	if len(f.Exclude) > 0 {
		c.Exclude = append(c.Exclude, f.Exclude...)
	}
	if f.CompressImages != nil {
		c.Images.Compress = *f.CompressImages
	}
	if f.Search != nil {
		c.Search.Enabled = *f.Search
	}
	if f.LogLevel != nil && *f.LogLevel != "" {
		c.LogLevel = *f.LogLevel
	}
}

// IsDocument reports whether name has one of the configured document extensions.
func (c *Config) IsDocument(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, e := range c.Extensions {
		if ext == e {
			return true
		}
	}
	return false
}

func normalizeExtensions(exts []string) []string {
	out := make([]string, 0, len(exts))
	for _, e := range exts {
		e = strings.ToLower(strings.TrimSpace(e))
		if e == "" {
			continue
		}
		if !strings.HasPrefix(e, ".") {
			e = "." + e
		}
		out = append(out, e)
	}
	return out
}
