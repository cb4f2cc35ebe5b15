package service

import (
	"context"
	"log/slog"

	domainerrors "github.com/Yassin1-prog/cooking-competition-DBMS/internal/errors"
	"github.com/Yassin1-prog/cooking-competition-DBMS/internal/metrics"
	"github.com/Yassin1-prog/cooking-competition-DBMS/internal/search"
)

// SearchService runs catalogue searches against the bleve index.
type SearchService struct {
	index   *search.Index
	metrics *metrics.Metrics // Optional
	logger  *slog.Logger
}

// NewSearchService creates a new search service. m may be nil.
func NewSearchService(index *search.Index, m *metrics.Metrics, logger *slog.Logger) *SearchService {
	return &SearchService{
		index:   index,
		metrics: m,
		logger:  logger,
	}
}

// SearchRequest is a catalogue query.
type SearchRequest struct {
	Query     string
	Type      string // cuisine, cook, recipe or empty for all
	CuisineID int64
	Limit     int
	Offset    int
}

// Search finds cuisines, cooks and recipes matching the request.
func (s *SearchService) Search(ctx context.Context, req SearchRequest) (*search.Result, error) {
	docType, ok := search.ParseDocType(req.Type)
	if !ok {
		return nil, domainerrors.ValidationWithDetails("validation failed",
			map[string]string{"type": "must be one of: cuisine, cook, recipe"})
	}
	if req.Limit < 0 || req.Offset < 0 {
		return nil, domainerrors.Validation("limit and offset must not be negative")
	}

	if s.metrics != nil {
		s.metrics.RecordSearch(string(docType))
	}

	res, err := s.index.Search(ctx, search.Params{
		Query:     req.Query,
		Type:      docType,
		CuisineID: req.CuisineID,
		Limit:     req.Limit,
		Offset:    req.Offset,
		Highlight: req.Query != "",
	})
	if err != nil {
		s.logger.Error("search failed", "query", req.Query, "error", err)
		return nil, domainerrors.Wrap(err, domainerrors.CodeInternal, "search failed")
	}
	return res, nil
}
