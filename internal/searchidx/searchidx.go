// Package searchidx keeps a full-text index over analysis summaries so the
// history view can be searched by seller, customer, product, or any word of
// the summary text.
package searchidx

import (
	"fmt"
	"os"
	"strconv"

	"github.com/blevesearch/bleve/v2"
)

// Entry is one indexed analysis.
type Entry struct {
	ID       int64  `json:"id"`
	FileName string `json:"file_name"`
	Seller   string `json:"seller"`
	Customer string `json:"customer"`
	Product  string `json:"product"`
	Summary  string `json:"summary"`
}

// Hit is one search result row.
type Hit struct {
	ID    int64   `json:"id"`
	Score float64 `json:"score"`
}

type Index struct {
	idx bleve.Index
}

// Open loads the index at path, creating it on first run.
func Open(path string) (*Index, error) {
	var idx bleve.Index
	var err error

	if _, statErr := os.Stat(path); os.IsNotExist(statErr) {
		mapping := bleve.NewIndexMapping()
		idx, err = bleve.New(path, mapping)
	} else {
		idx, err = bleve.Open(path)
	}
	if err != nil {
		return nil, fmt.Errorf("open search index: %w", err)
	}
	return &Index{idx: idx}, nil
}

// OpenMemory builds a throwaway in-memory index.
func OpenMemory() (*Index, error) {
	idx, err := bleve.NewMemOnly(bleve.NewIndexMapping())
	if err != nil {
		return nil, fmt.Errorf("open memory index: %w", err)
	}
	return &Index{idx: idx}, nil
}

// Add indexes one analysis, replacing any previous entry with the same id.
func (i *Index) Add(e Entry) error {
	if err := i.idx.Index(key(e.ID), e); err != nil {
		return fmt.Errorf("index analysis %d: %w", e.ID, err)
	}
	return nil
}

// Remove drops an analysis from the index.
func (i *Index) Remove(id int64) error {
	if err := i.idx.Delete(key(id)); err != nil {
		return fmt.Errorf("remove analysis %d from index: %w", id, err)
	}
	return nil
}

// Search runs a match query over all indexed fields and returns up to
// limit hits, best first.
func (i *Index) Search(query string, limit int) ([]Hit, error) {
	if limit <= 0 {
		limit = 20
	}
	q := bleve.NewMatchQuery(query)
	req := bleve.NewSearchRequestOptions(q, limit, 0, false)

	res, err := i.idx.Search(req)
	if err != nil {
		return nil, fmt.Errorf("search %q: %w", query, err)
	}

	hits := []Hit{}
	for _, h := range res.Hits {
		id, err := strconv.ParseInt(h.ID, 10, 64)
		if err != nil {
			continue
		}
		hits = append(hits, Hit{ID: id, Score: h.Score})
	}
	return hits, nil
}

func (i *Index) Close() error {
	return i.idx.Close()
}

func key(id int64) string {
	return strconv.FormatInt(id, 10)
}
