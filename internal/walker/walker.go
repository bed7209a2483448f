// Package walker lists the files of a documentation tree in sibling order,
// skipping ignored paths.
package walker

import (
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	gitignore "github.com/denormal/go-gitignore"

	"github.com/itsmostafa/docnav/internal/manifest"
)

// IgnoreFileName holds gitignore-style rules relative to the docs root.
const IgnoreFileName = ".docignore"

// DefaultExcludeNames are file and directory names that are never part of a site.
var DefaultExcludeNames = []string{
	".git", ".svn", ".hg",
	"node_modules", "__pycache__", ".venv", "vendor",
	".idea", ".vscode",
	".DS_Store", "Thumbs.db", "desktop.ini",
	IgnoreFileName,
}

// File is one non-ignored file under the docs root.
type File struct {
	AbsPath string
	RelPath string // slash-separated, relative to the docs root
	RelDir  string // slash-separated; "" for the root
	Name    string // base name with extension
	Stem    string // base name without extension
	IsDoc   bool
}

// Options configures a Walker.
type Options struct {
	// Root is the documentation root
	Root string

	// Exclude lists doublestar patterns matched against slash-separated relative paths
	Exclude []string

	// SkipDirs are absolute directories never descended into (e.g. the output directory)
	SkipDirs []string

	// SkipFiles are relative paths never reported (e.g. the config file)
	SkipFiles []string

	// IsDocument classifies files; nil treats nothing as a document
	IsDocument func(name string) bool
}

// Walker lists documentation files.
type Walker struct {
	root       string
	exclude    []string
	skipDirs   map[string]bool
	skipFiles  map[string]bool
	ignore     gitignore.GitIgnore
	isDocument func(string) bool
}

// New validates the options and loads the root's ignore file.
func New(opts Options) (*Walker, error) {
	root, err := filepath.Abs(opts.Root)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve docs root: %w", err)
	}
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("docs root not found: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("docs root is not a directory: %s", root)
	}

	for _, pattern := range opts.Exclude {
		if !doublestar.ValidatePattern(pattern) {
			return nil, fmt.Errorf("invalid exclude pattern %q", pattern)
		}
	}

	w := &Walker{
		root:       root,
		exclude:    opts.Exclude,
		skipDirs:   make(map[string]bool),
		skipFiles:  make(map[string]bool),
		ignore:     loadIgnoreFile(filepath.Join(root, IgnoreFileName), root),
		isDocument: opts.IsDocument,
	}
	for _, dir := range opts.SkipDirs {
		if abs, err := filepath.Abs(dir); err == nil {
			w.skipDirs[abs] = true
		}
	}
	for _, f := range opts.SkipFiles {
		w.skipFiles[filepath.ToSlash(f)] = true
	}
	return w, nil
}

// Root returns the absolute docs root.
func (w *Walker) Root() string {
	return w.root
}

// Walk returns every non-ignored file. Within a directory, files come first
// and then subdirectories, both in sibling order. Symlinked directories are
// skipped.
func (w *Walker) Walk(ctx context.Context) ([]File, error) {
	var files []File
	if err := w.walkDir(ctx, "", &files); err != nil {
		return nil, err
	}
	return files, nil
}

func (w *Walker) walkDir(ctx context.Context, relDir string, files *[]File) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	absDir := filepath.Join(w.root, filepath.FromSlash(relDir))
	dirEntries, err := os.ReadDir(absDir)
	if err != nil {
		return fmt.Errorf("failed to read directory %s: %w", absDir, err)
	}

	var fileNames, dirNames []string
	for _, entry := range dirEntries {
		isDir := entry.IsDir()
		if entry.Type()&os.ModeSymlink != 0 {
			// Linked files are read through the link; linked directories are
			// never entered, so a link to an ancestor cannot loop.
			info, err := os.Stat(filepath.Join(absDir, entry.Name()))
			if err != nil || info.IsDir() {
				continue
			}
		}
		rel := path.Join(relDir, entry.Name())
		if isDir {
			if !w.ShouldIgnoreDir(rel) {
				dirNames = append(dirNames, entry.Name())
			}
		} else if !w.ShouldIgnore(rel, false) {
			fileNames = append(fileNames, entry.Name())
		}
	}
	manifest.SortNames(fileNames)
	manifest.SortNames(dirNames)

	for _, name := range fileNames {
		rel := path.Join(relDir, name)
		*files = append(*files, File{
			AbsPath: filepath.Join(absDir, name),
			RelPath: rel,
			RelDir:  relDir,
			Name:    name,
			Stem:    strings.TrimSuffix(name, filepath.Ext(name)),
			IsDoc:   w.isDocument != nil && w.isDocument(name),
		})
	}
	for _, name := range dirNames {
		if err := w.walkDir(ctx, path.Join(relDir, name), files); err != nil {
			return err
		}
	}
	return nil
}

// ShouldIgnoreDir reports whether the directory at the slash-separated
// relative path is skipped entirely.
func (w *Walker) ShouldIgnoreDir(rel string) bool {
	if w.skipDirs[filepath.Join(w.root, filepath.FromSlash(rel))] {
		return true
	}
	return w.ShouldIgnore(rel, true)
}

// ShouldIgnore reports whether the slash-separated relative path is excluded
// by the default names, the ignore file or an exclude pattern.
func (w *Walker) ShouldIgnore(rel string, isDir bool) bool {
	if !isDir && w.skipFiles[rel] {
		return true
	}

	base := path.Base(rel)
	for _, name := range DefaultExcludeNames {
		if strings.EqualFold(base, name) {
			return true
		}
	}

	if w.ignore != nil {
		if match := w.ignore.Relative(rel, isDir); match != nil && match.Ignore() {
			return true
		}
	}

	for _, pattern := range w.exclude {
		if matched, err := doublestar.Match(pattern, rel); err == nil && matched {
			return true
		}
		// "drafts" excludes the directory; "drafts/**" excludes its contents.
		if isDir {
			if matched, err := doublestar.Match(pattern, rel+"/"); err == nil && matched {
				return true
			}
		}
	}
	return false
}

// Rel converts an absolute path under the root into a slash-separated
// relative path. ok is false for paths outside the root.
func (w *Walker) Rel(absPath string) (string, bool) {
	rel, err := filepath.Rel(w.root, absPath)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", false
	}
	if rel == "." {
		return "", true
	}
	return filepath.ToSlash(rel), true
}

func loadIgnoreFile(filePath string, baseDir string) gitignore.GitIgnore {
	f, err := os.Open(filePath)
	if err != nil {
		return nil
	}
	defer f.Close()

	return gitignore.New(f, baseDir, nil)
}
