package sqlite

import (
	"context"
	"database/sql"

	"github.com/Yassin1-prog/cooking-competition-DBMS/internal/domain"
	"github.com/Yassin1-prog/cooking-competition-DBMS/internal/store"
)

// runColumns must match the scan order in scanRun.
const runColumns = `id, seed, start_year, end_year, legacy_year, status, episodes_generated,
	dead_ends, first_episode_id, last_episode_id, error, started_at, completed_at`

func scanRun(sc scanner) (*domain.GenerationRun, error) {
	var (
		r           domain.GenerationRun
		status      string
		firstID     sql.NullInt64
		lastID      sql.NullInt64
		errText     sql.NullString
		startedAt   string
		completedAt sql.NullString
	)
	err := sc.Scan(
		&r.ID,
		&r.Seed,
		&r.StartYear,
		&r.EndYear,
		&r.LegacyYear,
		&status,
		&r.EpisodesGenerated,
		&r.DeadEnds,
		&firstID,
		&lastID,
		&errText,
		&startedAt,
		&completedAt,
	)
	if err != nil {
		return nil, err
	}
	r.Status = domain.RunStatus(status)
	r.FirstEpisodeID = firstID.Int64
	r.LastEpisodeID = lastID.Int64
	r.Error = errText.String
	if r.StartedAt, err = parseTime(startedAt); err != nil {
		return nil, err
	}
	if r.CompletedAt, err = parseNullableTime(completedAt); err != nil {
		return nil, err
	}
	return &r, nil
}

// CreateGenerationRun records a new run.
func (s *Store) CreateGenerationRun(ctx context.Context, run *domain.GenerationRun) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO generation_runs (`+runColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID,
		run.Seed,
		run.StartYear,
		run.EndYear,
		run.LegacyYear,
		string(run.Status),
		run.EpisodesGenerated,
		run.DeadEnds,
		nullInt64(run.FirstEpisodeID),
		nullInt64(run.LastEpisodeID),
		nullString(run.Error),
		formatTime(run.StartedAt),
		nullTimeString(run.CompletedAt),
	)
	if isUniqueViolation(err) {
		return store.ErrAlreadyExists
	}
	return err
}

// UpdateGenerationRun stores the progress and outcome of a run.
func (s *Store) UpdateGenerationRun(ctx context.Context, run *domain.GenerationRun) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE generation_runs SET
			legacy_year = ?,
			status = ?,
			episodes_generated = ?,
			dead_ends = ?,
			first_episode_id = ?,
			last_episode_id = ?,
			error = ?,
			completed_at = ?
		WHERE id = ?`,
		run.LegacyYear,
		string(run.Status),
		run.EpisodesGenerated,
		run.DeadEnds,
		nullInt64(run.FirstEpisodeID),
		nullInt64(run.LastEpisodeID),
		nullString(run.Error),
		nullTimeString(run.CompletedAt),
		run.ID,
	)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

// GetGenerationRun retrieves a run by ID.
func (s *Store) GetGenerationRun(ctx context.Context, id string) (*domain.GenerationRun, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+runColumns+` FROM generation_runs WHERE id = ?`, id)
	r, err := scanRun(row)
	if err == sql.ErrNoRows {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return r, nil
}

// ListGenerationRuns returns every run, newest first.
func (s *Store) ListGenerationRuns(ctx context.Context) ([]*domain.GenerationRun, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+runColumns+` FROM generation_runs ORDER BY started_at DESC, id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*domain.GenerationRun
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
