// Package site turns a documentation tree into rendered articles, copied
// assets and a navigation manifest.
package site

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/itsmostafa/docnav/internal/assets"
	"github.com/itsmostafa/docnav/internal/config"
	"github.com/itsmostafa/docnav/internal/convert"
	"github.com/itsmostafa/docnav/internal/filelock"
	"github.com/itsmostafa/docnav/internal/manifest"
	"github.com/itsmostafa/docnav/internal/search"
	"github.com/itsmostafa/docnav/internal/walker"
)

// LockName is the lock file held in the output directory during a build.
const LockName = ".docnav.lock"

var (
	// ErrBuildInProgress is returned when another build holds the output lock.
	ErrBuildInProgress = errors.New("another build is writing to the output directory")

	// ErrManifestStale is returned by Check when the manifest on disk differs.
	ErrManifestStale = errors.New("manifest is out of date")
)

// Failure records a document that could not be converted.
type Failure struct {
	Path  string `json:"path"`
	Error string `json:"error"`
}

// Result summarises one build.
type Result struct {
	BuildID      string             `json:"build_id"`
	StartedAt    time.Time          `json:"started_at"`
	Duration     time.Duration      `json:"-"`
	DurationMs   int64              `json:"duration_ms"`
	Documents    int                `json:"documents"`
	Drafts       int                `json:"drafts"`
	Assets       int                `json:"assets"`
	Compressed   int                `json:"compressed"`
	Nodes        int                `json:"nodes"`
	Orphans      []string           `json:"orphans,omitempty"`
	Failures     []Failure          `json:"failures,omitempty"`
	ManifestPath string             `json:"manifest_path,omitempty"`
	Manifest     *manifest.Manifest `json:"-"`
}

// Builder renders sites. It holds no state between builds.
type Builder struct {
	cfg       *config.Config
	logger    *slog.Logger
	converter *convert.Converter
	copier    *assets.Copier
}

// NewBuilder creates a Builder for cfg. A nil logger discards log output.
func NewBuilder(cfg *config.Config, logger *slog.Logger) *Builder {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Builder{
		cfg:       cfg,
		logger:    logger,
		converter: convert.New(),
		copier: assets.NewCopier(assets.Options{
			Compress:    cfg.Images.Compress,
			JPEGQuality: cfg.Images.JPEGQuality,
		}),
	}
}

// Build renders every document, copies every asset and writes the manifest,
// the optional search index and the build report into the output directory.
func (b *Builder) Build(ctx context.Context) (*Result, error) {
	if b.cfg.OutDir == "" {
		return nil, fmt.Errorf("output directory is required")
	}
	if err := os.MkdirAll(b.cfg.OutDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	lock := filelock.New(filepath.Join(b.cfg.OutDir, LockName))
	acquired, err := lock.TryAcquire()
	if err != nil {
		return nil, err
	}
	if !acquired {
		return nil, ErrBuildInProgress
	}
	defer lock.Release()

	result, docs, err := b.render(ctx, true)
	if err != nil {
		return nil, err
	}

	result.ManifestPath = filepath.Join(b.cfg.OutDir, b.cfg.ManifestName)
	if err := manifest.Write(result.ManifestPath, result.Manifest); err != nil {
		return nil, err
	}

	if b.cfg.Search.Enabled {
		indexDir := filepath.Join(b.cfg.OutDir, b.cfg.Search.IndexName)
		if err := search.Write(indexDir, docs); err != nil {
			return nil, fmt.Errorf("failed to write search index: %w", err)
		}
		b.logger.Debug("search index written", "path", indexDir, "documents", len(docs))
	}

	result.Duration = time.Since(result.StartedAt)
	result.DurationMs = result.Duration.Milliseconds()

	if b.cfg.ReportName != "" {
		if err := writeReport(filepath.Join(b.cfg.OutDir, b.cfg.ReportName), result); err != nil {
			return nil, err
		}
	}

	b.logger.Info("build complete",
		"build_id", result.BuildID,
		"documents", result.Documents,
		"assets", result.Assets,
		"failures", len(result.Failures),
		"duration", result.Duration,
	)
	return result, nil
}

// Plan converts every document in memory and returns the manifest without
// writing anything.
func (b *Builder) Plan(ctx context.Context) (*Result, error) {
	result, _, err := b.render(ctx, false)
	if err != nil {
		return nil, err
	}
	result.Duration = time.Since(result.StartedAt)
	result.DurationMs = result.Duration.Milliseconds()
	return result, nil
}

func (b *Builder) render(ctx context.Context, write bool) (*Result, []search.Document, error) {
	result := &Result{
		BuildID:   uuid.New().String(),
		StartedAt: time.Now(),
	}

	var skipDirs []string
	if b.cfg.OutDir != "" {
		skipDirs = append(skipDirs, b.cfg.OutDir)
	}
	w, err := walker.New(walker.Options{
		Root:       b.cfg.DocsDir,
		Exclude:    b.cfg.Exclude,
		SkipDirs:   skipDirs,
		SkipFiles:  []string{config.FileName},
		IsDocument: b.cfg.IsDocument,
	})
	if err != nil {
		return nil, nil, err
	}

	files, err := w.Walk(ctx)
	if err != nil {
		return nil, nil, err
	}
	b.logger.Debug("walked docs root", "root", w.Root(), "files", len(files))

	var entries []manifest.Entry
	var docs []search.Document
	renderedFrom := make(map[string]string)
	for _, f := range files {
		if err := ctx.Err(); err != nil {
			return nil, nil, err
		}

		if !f.IsDoc {
			if !write {
				continue
			}
			action, err := b.copier.Copy(f.AbsPath, b.outPath(f.RelPath))
			if err != nil {
				return nil, nil, err
			}
			result.Assets++
			if action == assets.ActionCompressed {
				result.Compressed++
			}
			continue
		}

		doc, err := b.convertFile(f)
		if err != nil {
			b.logger.Error("failed to convert document", "path", f.RelPath, "error", err)
			result.Failures = append(result.Failures, Failure{Path: f.RelPath, Error: err.Error()})
			continue
		}
		if doc.Draft {
			b.logger.Debug("skipping draft", "path", f.RelPath)
			result.Drafts++
			continue
		}

		rendered := path.Join(f.RelDir, f.Stem+".html")
		if first, ok := renderedFrom[rendered]; ok {
			b.logger.Error("duplicate rendered path", "path", f.RelPath, "rendered", rendered, "first", first)
			result.Failures = append(result.Failures, Failure{
				Path:  f.RelPath,
				Error: fmt.Sprintf("renders to %s, already produced by %s", rendered, first),
			})
			continue
		}
		renderedFrom[rendered] = f.RelPath
		if write {
			if err := writeFile(b.outPath(rendered), doc.HTML); err != nil {
				return nil, nil, err
			}
		}

		entries = append(entries, manifest.Entry{
			Title:        doc.Title,
			RenderedPath: rendered,
			Directory:    f.RelDir,
			OriginalName: f.Stem,
		})
		docs = append(docs, search.Document{Path: rendered, Title: doc.Title, Text: doc.Text})
		result.Documents++
	}

	result.Manifest = manifest.Build(entries)
	result.Nodes = result.Manifest.Count()
	result.Orphans = manifest.NewIndex(entries).Orphans()
	for _, dir := range result.Orphans {
		b.logger.Warn("directory not referenced by any numbered document", "directory", dir)
	}
	return result, docs, nil
}

func (b *Builder) convertFile(f walker.File) (*convert.Document, error) {
	src, err := os.ReadFile(f.AbsPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read: %w", err)
	}
	fallback := f.Stem
	if b.cfg.CleanTitles {
		if name := convert.DisplayName(f.Stem); name != "" {
			fallback = name
		}
	}
	return b.converter.Convert(src, fallback)
}

func (b *Builder) outPath(rel string) string {
	return filepath.Join(b.cfg.OutDir, filepath.FromSlash(rel))
}

func writeFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create directory for %s: %w", path, err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
