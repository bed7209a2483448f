package search

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteAndSearch(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "search.bleve")

	docs := []Document{
		{Path: "00_intro.html", Title: "Introduction", Text: "welcome to the handbook"},
		{Path: "03_main/00_setup.html", Title: "Setup", Text: "install the toolchain and configure the database"},
		{Path: "readme.html", Title: "Readme", Text: "license and contact information"},
	}
	require.NoError(t, Write(dir, docs))

	hits, err := Search(dir, "toolchain", 10)
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, "03_main/00_setup.html", hits[0].Path)
	assert.Equal(t, "Setup", hits[0].Title)
	assert.Greater(t, hits[0].Score, 0.0)

	hits, err = Search(dir, "title:introduction", 10)
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, "00_intro.html", hits[0].Path)
}

func TestWriteReplaces(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "search.bleve")

	require.NoError(t, Write(dir, []Document{{Path: "old.html", Title: "Old", Text: "obsolete words"}}))
	require.NoError(t, Write(dir, []Document{{Path: "new.html", Title: "New", Text: "fresh words"}}))

	hits, err := Search(dir, "obsolete", 10)
	require.NoError(t, err)
	assert.Empty(t, hits)

	hits, err = Search(dir, "fresh", 10)
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, "new.html", hits[0].Path)
}

func TestSearchMissingIndex(t *testing.T) {
	_, err := Search(filepath.Join(t.TempDir(), "missing"), "x", 5)
	assert.Error(t, err)
}
