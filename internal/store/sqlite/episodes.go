package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Yassin1-prog/cooking-competition-DBMS/internal/domain"
	"github.com/Yassin1-prog/cooking-competition-DBMS/internal/store"
)

// PersistEpisode writes the episode, its assignments and its judges in one
// transaction. Nothing is written unless every row is.
func (s *Store) PersistEpisode(ctx context.Context, ep *domain.Episode) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO episodes (id, year_filmed, ordinal, created_at) VALUES (?, ?, ?, ?)`,
		ep.ID, ep.Year, ep.Ordinal, formatTime(time.Now()))
	if err != nil {
		if isUniqueViolation(err) {
			return store.ErrAlreadyExists.WithMessage(
				fmt.Sprintf("episode %d (%d #%d) already exists", ep.ID, ep.Year, ep.Ordinal))
		}
		return err
	}

	for slot, a := range ep.Assignments {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO episode_assignments (
				episode_id, slot, cuisine_id, cook_id, recipe_id, grade1, grade2, grade3
			) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			ep.ID, slot, a.CuisineID, a.CookID, a.RecipeID, a.Grades[0], a.Grades[1], a.Grades[2])
		if err != nil {
			return episodeWriteError(err, ep.ID)
		}
	}

	for _, j := range ep.Judges {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO judges (episode_id, cook_id, position) VALUES (?, ?, ?)`,
			ep.ID, j.CookID, j.Position)
		if err != nil {
			return episodeWriteError(err, ep.ID)
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}
	s.logger.Debug("episode persisted", "episode_id", ep.ID, "year", ep.Year, "ordinal", ep.Ordinal)
	return nil
}

func episodeWriteError(err error, id int64) error {
	if isForeignKeyViolation(err) {
		return store.ErrInvalidReference.WithCause(fmt.Errorf("episode %d: %w", id, err))
	}
	return fmt.Errorf("episode %d: %w", id, err)
}

// GetEpisode retrieves an episode with its assignments in slot order and its
// judges in position order.
func (s *Store) GetEpisode(ctx context.Context, id int64) (*domain.Episode, error) {
	ep := &domain.Episode{ID: id}
	err := s.db.QueryRowContext(ctx,
		`SELECT year_filmed, ordinal FROM episodes WHERE id = ?`, id).Scan(&ep.Year, &ep.Ordinal)
	if err == sql.ErrNoRows {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT cuisine_id, cook_id, recipe_id, grade1, grade2, grade3
		FROM episode_assignments WHERE episode_id = ? ORDER BY slot`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var a domain.Assignment
		if err := rows.Scan(&a.CuisineID, &a.CookID, &a.RecipeID, &a.Grades[0], &a.Grades[1], &a.Grades[2]); err != nil {
			return nil, err
		}
		ep.Assignments = append(ep.Assignments, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	jrows, err := s.db.QueryContext(ctx,
		`SELECT cook_id, position FROM judges WHERE episode_id = ? ORDER BY position`, id)
	if err != nil {
		return nil, err
	}
	defer jrows.Close()
	for jrows.Next() {
		var j domain.JudgeSeat
		if err := jrows.Scan(&j.CookID, &j.Position); err != nil {
			return nil, err
		}
		ep.Judges = append(ep.Judges, j)
	}
	return ep, jrows.Err()
}

// GetEpisodeDetail returns the episode joined with names, average grades and
// the slot winner.
func (s *Store) GetEpisodeDetail(ctx context.Context, id int64) (*domain.EpisodeDetail, error) {
	ep, err := s.GetEpisode(ctx, id)
	if err != nil {
		return nil, err
	}
	detail := &domain.EpisodeDetail{
		EpisodeSummary: domain.EpisodeSummary{ID: ep.ID, Year: ep.Year, Ordinal: ep.Ordinal},
		Featured:       make([]domain.FeaturedItem, 0, len(ep.Assignments)),
		Judges:         make([]domain.PanelJudge, 0, len(ep.Judges)),
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT cu.name, r.name, c.first_name, c.last_name
		FROM episode_assignments a
		JOIN cuisines cu ON cu.id = a.cuisine_id
		JOIN recipes r ON r.id = a.recipe_id
		JOIN cooks c ON c.id = a.cook_id
		WHERE a.episode_id = ?
		ORDER BY a.slot`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	winner := ep.WinnerSlot()
	for i := 0; rows.Next(); i++ {
		if i >= len(ep.Assignments) {
			return nil, fmt.Errorf("episode %d: assignments changed while reading", id)
		}
		var (
			a    = ep.Assignments[i]
			cook domain.Cook
			item domain.FeaturedItem
		)
		if err := rows.Scan(&item.CuisineName, &item.RecipeName, &cook.FirstName, &cook.LastName); err != nil {
			return nil, err
		}
		item.CuisineID = a.CuisineID
		item.RecipeID = a.RecipeID
		item.CookID = a.CookID
		item.CookName = cook.FullName()
		item.Grades = a.Grades
		item.AverageGrade = a.AverageGrade()
		item.Winner = i == winner
		detail.Featured = append(detail.Featured, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	jrows, err := s.db.QueryContext(ctx, `
		SELECT j.cook_id, j.position, c.first_name, c.last_name
		FROM judges j
		JOIN cooks c ON c.id = j.cook_id
		WHERE j.episode_id = ?
		ORDER BY j.position`, id)
	if err != nil {
		return nil, err
	}
	defer jrows.Close()
	for jrows.Next() {
		var (
			pj   domain.PanelJudge
			cook domain.Cook
		)
		if err := jrows.Scan(&pj.CookID, &pj.Position, &cook.FirstName, &cook.LastName); err != nil {
			return nil, err
		}
		pj.Name = cook.FullName()
		detail.Judges = append(detail.Judges, pj)
	}
	return detail, jrows.Err()
}

// ListEpisodes returns a page of episodes ordered by ID.
func (s *Store) ListEpisodes(ctx context.Context, params store.PaginationParams) (*store.PaginatedResult[domain.EpisodeSummary], error) {
	params.Validate()

	afterID, err := store.DecodeCursor(params.Cursor)
	if err != nil {
		return nil, fmt.Errorf("decode cursor: %w", err)
	}

	var total int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM episodes`).Scan(&total); err != nil {
		return nil, err
	}

	// Fetch limit+1 rows to determine hasMore.
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, year_filmed, ordinal FROM episodes
		WHERE id > ?
		ORDER BY id ASC
		LIMIT ?`, afterID, params.Limit+1)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []domain.EpisodeSummary{}
	for rows.Next() {
		var e domain.EpisodeSummary
		if err := rows.Scan(&e.ID, &e.Year, &e.Ordinal); err != nil {
			return nil, err
		}
		items = append(items, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	hasMore := len(items) > params.Limit
	if hasMore {
		items = items[:params.Limit]
	}

	var nextCursor string
	if hasMore && len(items) > 0 {
		nextCursor = store.EncodeCursor(items[len(items)-1].ID)
	}

	return &store.PaginatedResult[domain.EpisodeSummary]{
		Items:      items,
		Total:      total,
		HasMore:    hasMore,
		NextCursor: nextCursor,
	}, nil
}

// MaxEpisodeID returns the highest episode ID, or 0 when nothing was filmed.
func (s *Store) MaxEpisodeID(ctx context.Context) (int64, error) {
	var id int64
	err := s.db.QueryRowContext(ctx, `SELECT COALESCE(MAX(id), 0) FROM episodes`).Scan(&id)
	return id, err
}

// MaxYearFilmed returns the latest year with an episode. ok is false when
// nothing was filmed.
func (s *Store) MaxYearFilmed(ctx context.Context) (int, bool, error) {
	var year sql.NullInt64
	if err := s.db.QueryRowContext(ctx, `SELECT MAX(year_filmed) FROM episodes`).Scan(&year); err != nil {
		return 0, false, err
	}
	return int(year.Int64), year.Valid, nil
}
