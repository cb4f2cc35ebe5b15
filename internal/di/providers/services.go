package providers

import (
	"github.com/samber/do/v2"

	"github.com/Yassin1-prog/cooking-competition-DBMS/internal/config"
	"github.com/Yassin1-prog/cooking-competition-DBMS/internal/logger"
	"github.com/Yassin1-prog/cooking-competition-DBMS/internal/metrics"
	"github.com/Yassin1-prog/cooking-competition-DBMS/internal/service"
)

// ProvideCatalogService provides the cuisine, cook and recipe service.
func ProvideCatalogService(i do.Injector) (*service.CatalogService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	indexHandle := do.MustInvoke[*SearchIndexHandle](i)
	log := do.MustInvoke[*logger.Logger](i)
	return service.NewCatalogService(storeHandle.Store, indexHandle.Index, log.Logger), nil
}

// ProvideEpisodeService provides the read-only episode service.
func ProvideEpisodeService(i do.Injector) (*service.EpisodeService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	return service.NewEpisodeService(storeHandle.Store), nil
}

// ProvideGenerationService provides the episode generation service.
func ProvideGenerationService(i do.Injector) (*service.GenerationService, error) {
	cfg := do.MustInvoke[*config.Config](i)
	storeHandle := do.MustInvoke[*StoreHandle](i)
	m := do.MustInvoke[*metrics.Metrics](i)
	log := do.MustInvoke[*logger.Logger](i)
	events := do.MustInvoke[*SSEManagerHandle](i)
	return service.NewGenerationService(storeHandle.Store, cfg.Generation, m, log.Logger).
		WithEvents(events.Manager), nil
}

// ProvideSearchService provides the search service.
func ProvideSearchService(i do.Injector) (*service.SearchService, error) {
	indexHandle := do.MustInvoke[*SearchIndexHandle](i)
	m := do.MustInvoke[*metrics.Metrics](i)
	log := do.MustInvoke[*logger.Logger](i)
	return service.NewSearchService(indexHandle.Index, m, log.Logger), nil
}
