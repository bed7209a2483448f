// Package search maintains an on-disk full-text index of the rendered
// documents, rebuilt on every site build.
package search

import (
	"fmt"
	"os"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/mapping"
)

// Document is one indexed article.
type Document struct {
	Path  string `json:"path"`
	Title string `json:"title"`
	Text  string `json:"text"`
}

// Hit is one search result.
type Hit struct {
	Path  string
	Title string
	Score float64
}

// buildIndexMapping indexes title and text for search and stores title and
// path for display.
func buildIndexMapping() *mapping.IndexMappingImpl {
	indexMapping := bleve.NewIndexMapping()
	docMapping := bleve.NewDocumentMapping()

	titleFieldMapping := bleve.NewTextFieldMapping()
	titleFieldMapping.Store = true
	titleFieldMapping.IncludeInAll = true
	docMapping.AddFieldMappingsAt("title", titleFieldMapping)

	textFieldMapping := bleve.NewTextFieldMapping()
	textFieldMapping.Store = false
	textFieldMapping.IncludeInAll = true
	docMapping.AddFieldMappingsAt("text", textFieldMapping)

	pathFieldMapping := bleve.NewKeywordFieldMapping()
	pathFieldMapping.Store = true
	pathFieldMapping.IncludeInAll = false
	docMapping.AddFieldMappingsAt("path", pathFieldMapping)

	indexMapping.DefaultMapping = docMapping
	return indexMapping
}

// Write replaces the index at dir with one containing docs. The new index is
// built beside the old one and renamed into place.
func Write(dir string, docs []Document) error {
	tmpDir := dir + ".tmp"
	if err := os.RemoveAll(tmpDir); err != nil {
		return fmt.Errorf("removing stale index: %w", err)
	}

	index, err := bleve.New(tmpDir, buildIndexMapping())
	if err != nil {
		return fmt.Errorf("creating bleve index: %w", err)
	}

	batch := index.NewBatch()
	for _, doc := range docs {
		if err := batch.Index(doc.Path, doc); err != nil {
			index.Close()
			return fmt.Errorf("indexing %s: %w", doc.Path, err)
		}
	}
	if err := index.Batch(batch); err != nil {
		index.Close()
		return fmt.Errorf("writing index batch: %w", err)
	}
	if err := index.Close(); err != nil {
		return fmt.Errorf("closing index: %w", err)
	}

	if err := os.RemoveAll(dir); err != nil {
		return fmt.Errorf("removing previous index: %w", err)
	}
	if err := os.Rename(tmpDir, dir); err != nil {
		return fmt.Errorf("installing index: %w", err)
	}
	return nil
}

// Search runs a query-string query against the index at dir.
func Search(dir, queryString string, limit int) ([]Hit, error) {
	if limit <= 0 {
		limit = 10
	}

	index, err := bleve.Open(dir)
	if err != nil {
		return nil, fmt.Errorf("opening index %s: %w", dir, err)
	}
	defer index.Close()

	request := bleve.NewSearchRequest(bleve.NewQueryStringQuery(queryString))
	request.Size = limit
	request.Fields = []string{"path", "title"}

	result, err := index.Search(request)
	if err != nil {
		return nil, fmt.Errorf("searching index: %w", err)
	}

	hits := make([]Hit, 0, len(result.Hits))
	for _, h := range result.Hits {
		title, _ := h.Fields["title"].(string)
		hits = append(hits, Hit{
			Path:  h.ID,
			Title: title,
			Score: h.Score,
		})
	}
	return hits, nil
}
