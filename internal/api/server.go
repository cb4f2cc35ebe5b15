// Package api provides the HTTP API server and handlers for the competition database.
package api

import (
	"log/slog"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/Yassin1-prog/cooking-competition-DBMS/internal/metrics"
	"github.com/Yassin1-prog/cooking-competition-DBMS/internal/ratelimit"
	"github.com/Yassin1-prog/cooking-competition-DBMS/internal/search"
	"github.com/Yassin1-prog/cooking-competition-DBMS/internal/sse"
	"github.com/Yassin1-prog/cooking-competition-DBMS/internal/store"
)

// adminKeyHeader carries the admin key on mutating requests.
const adminKeyHeader = "X-Admin-Key"

// Options configures the HTTP surface.
type Options struct {
	// AdminKeyHash is a bcrypt hash of the admin key. Empty disables the check.
	AdminKeyHash string
	CORSOrigins  []string
	// GenerationLimiter throttles POST /api/v1/generations per client. Nil disables it.
	GenerationLimiter *ratelimit.KeyedRateLimiter
	// Events streams generation progress at GET /api/v1/generations/events. Nil disables it.
	Events *sse.Handler
}

// Server holds dependencies for HTTP handlers.
type Server struct {
	store        store.Store
	index        *search.Index
	services     *Services
	metrics      *metrics.Metrics
	limiter      *ratelimit.KeyedRateLimiter
	events       *sse.Handler
	adminKeyHash []byte
	router       chi.Router
	api          huma.API
	logger       *slog.Logger
}

// NewServer creates a new HTTP server with all routes configured.
func NewServer(
	st store.Store,
	index *search.Index,
	services *Services,
	m *metrics.Metrics,
	opts Options,
	logger *slog.Logger,
) *Server {
	router := chi.NewRouter()

	s := &Server{
		store:        st,
		index:        index,
		services:     services,
		metrics:      m,
		limiter:      opts.GenerationLimiter,
		events:       opts.Events,
		adminKeyHash: []byte(opts.AdminKeyHash),
		router:       router,
		logger:       logger,
	}

	s.setupMiddleware(opts.CORSOrigins)

	humaConfig := huma.DefaultConfig("Cooking Competition API", "1.0.0")
	humaConfig.Info.Description = "Catalogue, episode history and episode generation for the cooking competition"
	humaConfig.Components.SecuritySchemes = map[string]*huma.SecurityScheme{
		"adminKey": {
			Type: "apiKey",
			In:   "header",
			Name: adminKeyHeader,
		},
	}

	s.api = humachi.New(router, humaConfig)
	RegisterErrorHandler()

	s.registerRoutes()

	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// API exposes the huma API, mainly for OpenAPI export.
func (s *Server) API() huma.API {
	return s.api
}

// setupMiddleware configures the middleware stack.
func (s *Server) setupMiddleware(origins []string) {
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(requestLogger(s.logger))
	s.router.Use(middleware.Recoverer)
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{
			http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete, http.MethodOptions,
		},
		AllowedHeaders: []string{"Accept", "Content-Type", adminKeyHeader},
		ExposedHeaders: []string{"Retry-After", middleware.RequestIDHeader},
		MaxAge:         300,
	}))
	if s.metrics != nil {
		s.router.Use(requestMetrics(s.metrics))
	}
	s.router.Use(middleware.Compress(5))
}

// registerRoutes wires every endpoint.
func (s *Server) registerRoutes() {
	s.registerHealthRoutes()
	s.registerCuisineRoutes()
	s.registerCookRoutes()
	s.registerRecipeRoutes()
	s.registerIngredientRoutes()
	s.registerToolRoutes()
	s.registerEpisodeRoutes()
	s.registerGenerationRoutes()
	s.registerSearchRoutes()

	if s.metrics != nil {
		s.router.Handle("/metrics", s.metrics.Handler())
	}
	if s.events != nil {
		s.router.Get("/api/v1/generations/events", s.events.ServeHTTP)
	}
}
