// Package assets copies non-document files into the site, optionally
// recompressing images on the way.
package assets

import (
	"bytes"
	"fmt"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Action records what happened to one asset.
type Action string

const (
	ActionCopied     Action = "copied"
	ActionCompressed Action = "compressed"
)

// Options configures a Copier.
type Options struct {
	// Compress re-encodes JPEG and PNG files
	Compress bool

	// JPEGQuality is the encoder quality for JPEG files
	JPEGQuality int
}

// Copier copies assets.
type Copier struct {
	opts Options
}

// NewCopier creates a Copier.
func NewCopier(opts Options) *Copier {
	if opts.JPEGQuality <= 0 || opts.JPEGQuality > 100 {
		opts.JPEGQuality = 85
	}
	return &Copier{opts: opts}
}

// Copy writes src to dst. When compression is enabled and src is a JPEG or
// PNG, the re-encoded image is written if it is smaller than the original.
// A decode failure falls back to a plain copy.
func (c *Copier) Copy(src, dst string) (Action, error) {
	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return "", fmt.Errorf("failed to create directory for %s: %w", dst, err)
	}

	if c.opts.Compress && IsImage(src) {
		data, err := os.ReadFile(src)
		if err != nil {
			return "", fmt.Errorf("failed to read %s: %w", src, err)
		}
		if smaller, err := c.recompress(data, strings.ToLower(filepath.Ext(src))); err == nil && len(smaller) < len(data) {
			if err := os.WriteFile(dst, smaller, 0644); err != nil {
				return "", fmt.Errorf("failed to write %s: %w", dst, err)
			}
			return ActionCompressed, nil
		}
		if err := os.WriteFile(dst, data, 0644); err != nil {
			return "", fmt.Errorf("failed to write %s: %w", dst, err)
		}
		return ActionCopied, nil
	}

	if err := copyFile(src, dst); err != nil {
		return "", err
	}
	return ActionCopied, nil
}

// IsImage reports whether path has a recompressible image extension.
func IsImage(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".jpg", ".jpeg", ".png":
		return true
	}
	return false
}

func (c *Copier) recompress(data []byte, ext string) ([]byte, error) {
	var buf bytes.Buffer
	switch ext {
	case ".jpg", ".jpeg":
		img, err := jpeg.Decode(bytes.NewReader(data))
		if err != nil {
			return nil, err
		}
		if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: c.opts.JPEGQuality}); err != nil {
			return nil, err
		}
	case ".png":
		img, err := png.Decode(bytes.NewReader(data))
		if err != nil {
			return nil, err
		}
		enc := png.Encoder{CompressionLevel: png.BestCompression}
		if err := enc.Encode(&buf, img); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unsupported image type %s", ext)
	}
	return buf.Bytes(), nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", src, err)
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return fmt.Errorf("failed to stat %s: %w", src, err)
	}

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", dst, err)
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return fmt.Errorf("failed to copy %s: %w", src, err)
	}
	return out.Close()
}
