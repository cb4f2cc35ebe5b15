// Package di provides dependency injection configuration for the competition server.
package di

import (
	"github.com/samber/do/v2"

	"github.com/Yassin1-prog/cooking-competition-DBMS/internal/config"
	"github.com/Yassin1-prog/cooking-competition-DBMS/internal/di/providers"
	"github.com/Yassin1-prog/cooking-competition-DBMS/internal/logger"
	"github.com/Yassin1-prog/cooking-competition-DBMS/internal/metrics"
	"github.com/Yassin1-prog/cooking-competition-DBMS/internal/service"
)

// NewContainer creates and configures the DI container with all providers.
func NewContainer() *do.RootScope {
	injector := do.New()

	// Core infrastructure
	do.Provide(injector, providers.ProvideConfig)
	do.Provide(injector, providers.ProvideLogger)
	do.Provide(injector, providers.ProvideMetrics)
	do.Provide(injector, providers.ProvideSSEManager)

	// Persistence
	do.Provide(injector, providers.ProvideStore)
	do.Provide(injector, providers.ProvideSearchIndex)

	// Business services
	do.Provide(injector, providers.ProvideCatalogService)
	do.Provide(injector, providers.ProvideEpisodeService)
	do.Provide(injector, providers.ProvideGenerationService)
	do.Provide(injector, providers.ProvideSearchService)

	// Server
	do.Provide(injector, providers.ProvideGenerationLimiter)
	do.Provide(injector, providers.ProvideHTTPServer)

	return injector
}

// Bootstrap initializes all services and starts the HTTP server.
func Bootstrap(injector *do.RootScope) error {
	if _, err := do.Invoke[*config.Config](injector); err != nil {
		return err
	}
	_ = do.MustInvoke[*logger.Logger](injector)
	_ = do.MustInvoke[*metrics.Metrics](injector)
	_ = do.MustInvoke[*providers.SSEManagerHandle](injector)

	if _, err := do.Invoke[*providers.StoreHandle](injector); err != nil {
		return err
	}
	if _, err := do.Invoke[*providers.SearchIndexHandle](injector); err != nil {
		return err
	}

	_ = do.MustInvoke[*service.CatalogService](injector)
	_ = do.MustInvoke[*service.EpisodeService](injector)
	_ = do.MustInvoke[*service.GenerationService](injector)
	_ = do.MustInvoke[*service.SearchService](injector)

	providers.EnsureSearchIndex(injector)

	_ = do.MustInvoke[*providers.HTTPServerHandle](injector)

	return nil
}
