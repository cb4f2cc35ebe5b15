package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Yassin1-prog/cooking-competition-DBMS/internal/domain"
	"github.com/Yassin1-prog/cooking-competition-DBMS/internal/store"
)

// cookColumns is the ordered list of columns selected in cook queries.
// Must match the scan order in scanCook.
const cookColumns = `id, first_name, last_name, birth_date, phone, years_of_experience, class`

func scanCook(sc scanner) (*domain.Cook, error) {
	var (
		c         domain.Cook
		birthDate string
		phone     sql.NullString
		class     string
	)
	err := sc.Scan(
		&c.ID,
		&c.FirstName,
		&c.LastName,
		&birthDate,
		&phone,
		&c.YearsOfExperience,
		&class,
	)
	if err != nil {
		return nil, err
	}
	c.BirthDate, err = time.Parse(dateLayout, birthDate)
	if err != nil {
		return nil, fmt.Errorf("parse birth date of cook %d: %w", c.ID, err)
	}
	c.Phone = phone.String
	c.Class = domain.CookClass(class)
	return &c, nil
}

// CreateCook inserts a cook with its qualified cuisines and sets its ID.
func (s *Store) CreateCook(ctx context.Context, c *domain.Cook) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `
		INSERT INTO cooks (first_name, last_name, birth_date, phone, years_of_experience, class)
		VALUES (?, ?, ?, ?, ?, ?)`,
		c.FirstName,
		c.LastName,
		c.BirthDate.Format(dateLayout),
		nullString(c.Phone),
		c.YearsOfExperience,
		string(c.Class),
	)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}

	if err := insertCookCuisines(ctx, tx, id, c.CuisineIDs); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	c.ID = id
	return nil
}

// UpdateCook replaces a cook's fields and qualified cuisines. Past episodes
// keep the cuisine each appearance was recorded under.
func (s *Store) UpdateCook(ctx context.Context, c *domain.Cook) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `
		UPDATE cooks
		SET first_name = ?, last_name = ?, birth_date = ?, phone = ?, years_of_experience = ?, class = ?
		WHERE id = ?`,
		c.FirstName,
		c.LastName,
		c.BirthDate.Format(dateLayout),
		nullString(c.Phone),
		c.YearsOfExperience,
		string(c.Class),
		c.ID,
	)
	if err != nil {
		return err
	}
	if err := requireAffected(res); err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM cook_cuisines WHERE cook_id = ?`, c.ID); err != nil {
		return err
	}
	if err := insertCookCuisines(ctx, tx, c.ID, c.CuisineIDs); err != nil {
		return err
	}
	return tx.Commit()
}

func insertCookCuisines(ctx context.Context, tx *sql.Tx, cookID int64, cuisineIDs []int64) error {
	for _, cuisineID := range cuisineIDs {
		_, err := tx.ExecContext(ctx,
			`INSERT OR IGNORE INTO cook_cuisines (cook_id, cuisine_id) VALUES (?, ?)`,
			cookID, cuisineID)
		if err != nil {
			if isForeignKeyViolation(err) {
				return store.ErrInvalidReference.WithMessage(fmt.Sprintf("cuisine %d does not exist", cuisineID))
			}
			return err
		}
	}
	return nil
}

// GetCook retrieves a cook with its qualified cuisines.
func (s *Store) GetCook(ctx context.Context, id int64) (*domain.Cook, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+cookColumns+` FROM cooks WHERE id = ?`, id)
	c, err := scanCook(row)
	if err == sql.ErrNoRows {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT cuisine_id FROM cook_cuisines WHERE cook_id = ? ORDER BY cuisine_id`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var cuisineID int64
		if err := rows.Scan(&cuisineID); err != nil {
			return nil, err
		}
		c.CuisineIDs = append(c.CuisineIDs, cuisineID)
	}
	return c, rows.Err()
}

// ListCooks returns every cook ordered by ID, with qualified cuisines loaded.
func (s *Store) ListCooks(ctx context.Context) ([]domain.Cook, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+cookColumns+` FROM cooks ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var cooks []domain.Cook
	index := make(map[int64]int)
	for rows.Next() {
		c, err := scanCook(rows)
		if err != nil {
			return nil, err
		}
		index[c.ID] = len(cooks)
		cooks = append(cooks, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	qrows, err := s.db.QueryContext(ctx,
		`SELECT cook_id, cuisine_id FROM cook_cuisines ORDER BY cook_id, cuisine_id`)
	if err != nil {
		return nil, err
	}
	defer qrows.Close()
	for qrows.Next() {
		var cookID, cuisineID int64
		if err := qrows.Scan(&cookID, &cuisineID); err != nil {
			return nil, err
		}
		if i, ok := index[cookID]; ok {
			cooks[i].CuisineIDs = append(cooks[i].CuisineIDs, cuisineID)
		}
	}
	return cooks, qrows.Err()
}

// GetCookStats counts a cook's appearances at the stove and on the panel, and
// the episodes the cook won.
func (s *Store) GetCookStats(ctx context.Context, id int64) (*domain.CookStats, error) {
	var exists int
	err := s.db.QueryRowContext(ctx, `SELECT 1 FROM cooks WHERE id = ?`, id).Scan(&exists)
	if err == sql.ErrNoRows {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	var stats domain.CookStats
	err = s.db.QueryRowContext(ctx, `
		SELECT
			(SELECT COUNT(*) FROM episode_assignments WHERE cook_id = ?1),
			(SELECT COUNT(*) FROM judges WHERE cook_id = ?1),
			(SELECT COUNT(*) FROM (
				SELECT cook_id, ROW_NUMBER() OVER (
					PARTITION BY episode_id
					ORDER BY grade1 + grade2 + grade3 DESC, slot ASC
				) AS place
				FROM episode_assignments
			) WHERE place = 1 AND cook_id = ?1)`,
		id,
	).Scan(&stats.CookAppearances, &stats.JudgeAppearances, &stats.Wins)
	if err != nil {
		return nil, err
	}
	return &stats, nil
}

// DeleteCook removes a cook and its qualifications. It fails with ErrInUse once
// the cook has appeared in an episode.
func (s *Store) DeleteCook(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM cooks WHERE id = ?`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return store.ErrInUse.WithMessage(fmt.Sprintf("cook %d has appeared in episodes", id))
		}
		return err
	}
	return requireAffected(res)
}
