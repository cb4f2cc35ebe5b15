package search

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/blevesearch/bleve/v2"
)

// Index wraps a Bleve index of catalogue documents.
//
// All methods are safe for concurrent use. The mutex keeps writers out
// while Rebuild swaps the underlying index.
type Index struct {
	index  bleve.Index
	path   string // Empty for an in-memory index
	logger *slog.Logger
	mu     sync.RWMutex
}

// Options configures the search index.
type Options struct {
	Path   string       // Index directory; empty keeps the index in memory
	Logger *slog.Logger // Discards when nil
}

// mappingVersion is bumped whenever buildIndexMapping changes, which forces a
// rebuild of an index written with an older mapping.
const mappingVersion = "1"

// Open opens the index at opts.Path, creating it when missing. An index that
// cannot be opened or was built with another mapping version is recreated empty.
func Open(opts Options) (*Index, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	if opts.Path == "" {
		idx, err := bleve.NewMemOnly(buildIndexMapping())
		if err != nil {
			return nil, fmt.Errorf("create memory index: %w", err)
		}
		return &Index{index: idx, logger: logger}, nil
	}

	versionPath := opts.Path + ".version"

	var idx bleve.Index
	needsRebuild := false

	if _, statErr := os.Stat(opts.Path); statErr == nil {
		existing, readErr := os.ReadFile(versionPath)
		switch {
		case readErr != nil:
			logger.Info("search index has no version file, will rebuild", "new_version", mappingVersion)
			needsRebuild = true
		case string(existing) != mappingVersion:
			logger.Info("search index mapping version changed, will rebuild",
				"old_version", string(existing),
				"new_version", mappingVersion,
			)
			needsRebuild = true
		default:
			var err error
			idx, err = bleve.Open(opts.Path)
			if err != nil {
				logger.Warn("failed to open existing index, will recreate", "path", opts.Path, "error", err)
				needsRebuild = true
			}
		}
	}

	if needsRebuild {
		if err := os.RemoveAll(opts.Path); err != nil {
			return nil, fmt.Errorf("remove old index: %w", err)
		}
	}

	if idx == nil {
		if err := os.MkdirAll(filepath.Dir(opts.Path), 0o755); err != nil {
			return nil, fmt.Errorf("create index directory: %w", err)
		}
		var err error
		idx, err = bleve.New(opts.Path, buildIndexMapping())
		if err != nil {
			return nil, fmt.Errorf("create index: %w", err)
		}
		if err := os.WriteFile(versionPath, []byte(mappingVersion), 0o644); err != nil {
			logger.Warn("failed to write search version file", "error", err)
		}
		logger.Info("created new search index", "path", opts.Path, "mapping_version", mappingVersion)
	} else {
		logger.Info("opened existing search index", "path", opts.Path)
	}

	return &Index{index: idx, path: opts.Path, logger: logger}, nil
}

// Close closes the index and releases resources.
func (s *Index) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.index.Close()
}

// Put indexes or replaces a single document.
func (s *Index) Put(doc *Document) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.index.Index(doc.ID(), doc.toMap())
}

// PutAll indexes documents in batches.
func (s *Index) PutAll(docs []*Document) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.putAll(docs)
}

func (s *Index) putAll(docs []*Document) error {
	const batchSize = 500

	for i := 0; i < len(docs); i += batchSize {
		end := min(i+batchSize, len(docs))

		batch := s.index.NewBatch()
		for _, doc := range docs[i:end] {
			if err := batch.Index(doc.ID(), doc.toMap()); err != nil {
				return fmt.Errorf("batch index %s: %w", doc.ID(), err)
			}
		}
		if err := s.index.Batch(batch); err != nil {
			return fmt.Errorf("commit batch %d-%d: %w", i, end, err)
		}
	}
	return nil
}

// Delete removes a document from the index. Missing documents are ignored.
func (s *Index) Delete(t DocType, id int64) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.index.Delete(DocID(t, id))
}

// Count returns the number of indexed documents.
func (s *Index) Count() (uint64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.index.DocCount()
}

// Rebuild replaces the whole index with docs. Searches block until it finishes.
func (s *Index) Rebuild(docs []*Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.index.Close(); err != nil {
		return fmt.Errorf("close index: %w", err)
	}

	var (
		idx bleve.Index
		err error
	)
	if s.path == "" {
		idx, err = bleve.NewMemOnly(buildIndexMapping())
	} else {
		if err := os.RemoveAll(s.path); err != nil {
			return fmt.Errorf("remove index: %w", err)
		}
		idx, err = bleve.New(s.path, buildIndexMapping())
	}
	if err != nil {
		return fmt.Errorf("create index: %w", err)
	}
	s.index = idx

	if err := s.putAll(docs); err != nil {
		return err
	}
	s.logger.Info("rebuilt search index", "documents", len(docs))
	return nil
}
