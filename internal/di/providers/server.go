package providers

import (
	"context"
	"errors"
	"net/http"

	"github.com/samber/do/v2"

	"github.com/Yassin1-prog/cooking-competition-DBMS/internal/api"
	"github.com/Yassin1-prog/cooking-competition-DBMS/internal/config"
	"github.com/Yassin1-prog/cooking-competition-DBMS/internal/logger"
	"github.com/Yassin1-prog/cooking-competition-DBMS/internal/metrics"
	"github.com/Yassin1-prog/cooking-competition-DBMS/internal/ratelimit"
	"github.com/Yassin1-prog/cooking-competition-DBMS/internal/service"
	"github.com/Yassin1-prog/cooking-competition-DBMS/internal/sse"
)

// GenerationLimiterHandle wraps the per-client generation limiter so its
// cleanup goroutine stops with the container.
type GenerationLimiterHandle struct {
	*ratelimit.KeyedRateLimiter
}

// Shutdown implements do.Shutdownable.
func (h *GenerationLimiterHandle) Shutdown() error {
	h.Stop()
	return nil
}

// ProvideGenerationLimiter provides the rate limiter for generation requests.
func ProvideGenerationLimiter(i do.Injector) (*GenerationLimiterHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	return &GenerationLimiterHandle{
		KeyedRateLimiter: ratelimit.PerMinute(cfg.RateLimit.GenerationsPerMinute, cfg.RateLimit.Burst),
	}, nil
}

// HTTPServerHandle wraps http.Server with Shutdownable.
type HTTPServerHandle struct {
	*http.Server
	errc chan error
}

// Shutdown implements do.Shutdownable.
func (h *HTTPServerHandle) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return h.Server.Shutdown(ctx)
}

// Err reports a listener failure. It never yields after a clean shutdown.
func (h *HTTPServerHandle) Err() <-chan error {
	return h.errc
}

// ProvideHTTPServer provides the HTTP server and starts listening.
func ProvideHTTPServer(i do.Injector) (*HTTPServerHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)
	storeHandle := do.MustInvoke[*StoreHandle](i)
	indexHandle := do.MustInvoke[*SearchIndexHandle](i)
	m := do.MustInvoke[*metrics.Metrics](i)
	limiter := do.MustInvoke[*GenerationLimiterHandle](i)
	events := do.MustInvoke[*SSEManagerHandle](i)

	services := &api.Services{
		Catalog:    do.MustInvoke[*service.CatalogService](i),
		Episode:    do.MustInvoke[*service.EpisodeService](i),
		Generation: do.MustInvoke[*service.GenerationService](i),
		Search:     do.MustInvoke[*service.SearchService](i),
	}

	if cfg.Admin.KeyHash == "" {
		log.Warn("ADMIN_KEY_HASH not set, write endpoints are open")
	}

	handler := api.NewServer(storeHandle.Store, indexHandle.Index, services, m, api.Options{
		AdminKeyHash:      cfg.Admin.KeyHash,
		CORSOrigins:       cfg.Server.CORSOrigins,
		GenerationLimiter: limiter.KeyedRateLimiter,
		Events:            sse.NewHandler(events.Manager, log.Logger),
	}, log.Logger)

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	errc := make(chan error, 1)
	go func() {
		log.Info("HTTP server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("HTTP server error", "error", err)
			errc <- err
		}
	}()

	return &HTTPServerHandle{Server: srv, errc: errc}, nil
}
