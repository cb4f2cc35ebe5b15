package api

import (
	"github.com/Yassin1-prog/cooking-competition-DBMS/internal/service"
)

// Services groups the business logic services used by the API server.
type Services struct {
	Catalog    *service.CatalogService
	Episode    *service.EpisodeService
	Generation *service.GenerationService
	Search     *service.SearchService
}
