package providers

import (
	"context"

	"github.com/samber/do/v2"

	"github.com/Yassin1-prog/cooking-competition-DBMS/internal/config"
	"github.com/Yassin1-prog/cooking-competition-DBMS/internal/logger"
	"github.com/Yassin1-prog/cooking-competition-DBMS/internal/search"
	"github.com/Yassin1-prog/cooking-competition-DBMS/internal/service"
)

// SearchIndexHandle wraps the search index with shutdown capability.
type SearchIndexHandle struct {
	*search.Index
}

// Shutdown implements do.Shutdownable.
func (h *SearchIndexHandle) Shutdown() error {
	return h.Close()
}

// ProvideSearchIndex provides the Bleve search index.
func ProvideSearchIndex(i do.Injector) (*SearchIndexHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	index, err := search.Open(search.Options{
		Path:   cfg.Search.IndexPath,
		Logger: log.Logger,
	})
	if err != nil {
		return nil, err
	}

	docCount, _ := index.Count()
	log.Info("Search index initialized", "path", cfg.Search.IndexPath, "documents", docCount)

	return &SearchIndexHandle{Index: index}, nil
}

// EnsureSearchIndex rebuilds the index from the catalogue when it is empty
// but the database is not. Runs in the background so startup is not blocked.
func EnsureSearchIndex(i do.Injector) {
	catalog := do.MustInvoke[*service.CatalogService](i)
	log := do.MustInvoke[*logger.Logger](i)

	go func() {
		if err := catalog.EnsureIndex(context.Background()); err != nil {
			log.Error("Initial search reindex failed", "error", err)
		}
	}()
}
