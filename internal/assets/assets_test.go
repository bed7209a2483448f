package assets

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeUncompressedPNG(t *testing.T, path string) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 64, 64))
	for x := 0; x < 64; x++ {
		for y := 0; y < 64; y++ {
			img.Set(x, y, color.RGBA{R: 200, G: 30, B: 30, A: 255})
		}
	}
	var buf bytes.Buffer
	enc := png.Encoder{CompressionLevel: png.NoCompression}
	require.NoError(t, enc.Encode(&buf, img))
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0644))
	return buf.Bytes()
}

func TestCopyPlain(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "notes.txt")
	dst := filepath.Join(dir, "out", "nested", "notes.txt")
	require.NoError(t, os.WriteFile(src, []byte("hello"), 0600))

	action, err := NewCopier(Options{Compress: true}).Copy(src, dst)
	require.NoError(t, err)
	assert.Equal(t, ActionCopied, action)

	data, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(data))

	info, err := os.Stat(dst)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestCopyCompressesPNG(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "logo.png")
	dst := filepath.Join(dir, "out", "logo.png")
	original := writeUncompressedPNG(t, src)

	action, err := NewCopier(Options{Compress: true}).Copy(src, dst)
	require.NoError(t, err)
	assert.Equal(t, ActionCompressed, action)

	data, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Less(t, len(data), len(original))

	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, "png", format)
	assert.Equal(t, 64, cfg.Width)
}

func TestCopyWithoutCompression(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "logo.png")
	dst := filepath.Join(dir, "out", "logo.png")
	original := writeUncompressedPNG(t, src)

	action, err := NewCopier(Options{}).Copy(src, dst)
	require.NoError(t, err)
	assert.Equal(t, ActionCopied, action)

	data, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, original, data)
}

func TestCopyCorruptImageFallsBack(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "broken.jpg")
	dst := filepath.Join(dir, "out", "broken.jpg")
	require.NoError(t, os.WriteFile(src, []byte("not a jpeg"), 0644))

	action, err := NewCopier(Options{Compress: true, JPEGQuality: 70}).Copy(src, dst)
	require.NoError(t, err)
	assert.Equal(t, ActionCopied, action)

	data, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, "not a jpeg", string(data))
}

func TestCopyMissingSource(t *testing.T) {
	dir := t.TempDir()
	_, err := NewCopier(Options{}).Copy(filepath.Join(dir, "nope"), filepath.Join(dir, "out"))
	assert.Error(t, err)
}

func TestIsImage(t *testing.T) {
	assert.True(t, IsImage("a/b/photo.JPG"))
	assert.True(t, IsImage("x.jpeg"))
	assert.True(t, IsImage("x.png"))
	assert.False(t, IsImage("x.gif"))
	assert.False(t, IsImage("png"))
}
