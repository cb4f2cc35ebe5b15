package service

import (
	"context"

	"github.com/Yassin1-prog/cooking-competition-DBMS/internal/domain"
	domainerrors "github.com/Yassin1-prog/cooking-competition-DBMS/internal/errors"
	"github.com/Yassin1-prog/cooking-competition-DBMS/internal/store"
)

// EpisodeService serves the read side of generated episodes.
type EpisodeService struct {
	store store.Store
}

// NewEpisodeService creates an episode service.
func NewEpisodeService(s store.Store) *EpisodeService {
	return &EpisodeService{store: s}
}

// ListEpisodes returns a page of episodes in ID order.
func (s *EpisodeService) ListEpisodes(ctx context.Context, params store.PaginationParams) (*store.PaginatedResult[domain.EpisodeSummary], error) {
	if params.Limit < 0 {
		return nil, domainerrors.Validation("limit must not be negative")
	}
	if _, err := store.DecodeCursor(params.Cursor); err != nil {
		return nil, domainerrors.Validation("invalid cursor").WithCause(err)
	}
	return s.store.ListEpisodes(ctx, params)
}

// GetEpisode returns an episode with featured items, grades, winner and panel.
func (s *EpisodeService) GetEpisode(ctx context.Context, id int64) (*domain.EpisodeDetail, error) {
	detail, err := s.store.GetEpisodeDetail(ctx, id)
	if err != nil {
		return nil, storeError(err, "episode")
	}
	return detail, nil
}
