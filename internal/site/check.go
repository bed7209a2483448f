package site

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	diffpatch "github.com/sergi/go-diff/diffmatchpatch"

	"github.com/itsmostafa/docnav/internal/filelock"
	"github.com/itsmostafa/docnav/internal/manifest"
)

// Check rebuilds the manifest in memory and compares it with the one in the
// output directory. When they differ it returns a line diff and ErrManifestStale.
func (b *Builder) Check(ctx context.Context) (string, error) {
	result, err := b.Plan(ctx)
	if err != nil {
		return "", err
	}
	want, err := manifest.Marshal(result.Manifest)
	if err != nil {
		return "", err
	}

	var have []byte
	data, err := os.ReadFile(filepath.Join(b.cfg.OutDir, b.cfg.ManifestName))
	switch {
	case os.IsNotExist(err):
	case err != nil:
		return "", fmt.Errorf("failed to read manifest: %w", err)
	default:
		// Re-marshal so formatting differences alone never count as stale.
		existing, err := manifest.Read(data)
		if err != nil {
			return "", err
		}
		if have, err = manifest.Marshal(existing); err != nil {
			return "", err
		}
	}

	if string(have) == string(want) {
		return "", nil
	}
	return lineDiff(string(have), string(want)), ErrManifestStale
}

// lineDiff renders a line-oriented diff with "-" and "+" prefixes.
func lineDiff(from, to string) string {
	dmp := diffpatch.New()
	a, b, lines := dmp.DiffLinesToChars(from, to)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lines)

	var sb strings.Builder
	for _, d := range diffs {
		prefix := "  "
		switch d.Type {
		case diffpatch.DiffInsert:
			prefix = "+ "
		case diffpatch.DiffDelete:
			prefix = "- "
		}
		for _, line := range strings.SplitAfter(d.Text, "\n") {
			if line == "" {
				continue
			}
			sb.WriteString(prefix)
			sb.WriteString(strings.TrimSuffix(line, "\n"))
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}

func writeReport(path string, result *Result) error {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal build report: %w", err)
	}
	if err := filelock.WriteFile(path, append(data, '\n')); err != nil {
		return fmt.Errorf("failed to write build report: %w", err)
	}
	return nil
}
