package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Yassin1-prog/cooking-competition-DBMS/internal/domain"
	"github.com/Yassin1-prog/cooking-competition-DBMS/internal/normalize"
	"github.com/Yassin1-prog/cooking-competition-DBMS/internal/store"
)

// CreateCuisine inserts a cuisine and sets its ID. Names are unique after
// normalization.
func (s *Store) CreateCuisine(ctx context.Context, c *domain.Cuisine) error {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO cuisines (name, name_key) VALUES (?, ?)`,
		c.Name, normalize.Key(c.Name))
	if err != nil {
		if isUniqueViolation(err) {
			return store.ErrAlreadyExists.WithMessage(fmt.Sprintf("cuisine %q already exists", c.Name))
		}
		return err
	}
	c.ID, err = res.LastInsertId()
	return err
}

// GetCuisine retrieves a cuisine by ID.
func (s *Store) GetCuisine(ctx context.Context, id int64) (*domain.Cuisine, error) {
	var c domain.Cuisine
	err := s.db.QueryRowContext(ctx,
		`SELECT id, name FROM cuisines WHERE id = ?`, id).Scan(&c.ID, &c.Name)
	if err == sql.ErrNoRows {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// ListCuisines returns every cuisine ordered by ID.
func (s *Store) ListCuisines(ctx context.Context) ([]domain.Cuisine, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, name FROM cuisines ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Cuisine
	for rows.Next() {
		var c domain.Cuisine
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// RenameCuisine changes a cuisine's name.
func (s *Store) RenameCuisine(ctx context.Context, id int64, name string) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE cuisines SET name = ?, name_key = ? WHERE id = ?`,
		name, normalize.Key(name), id)
	if err != nil {
		if isUniqueViolation(err) {
			return store.ErrAlreadyExists.WithMessage(fmt.Sprintf("cuisine %q already exists", name))
		}
		return err
	}
	return requireAffected(res)
}

// DeleteCuisine removes a cuisine and the cook qualifications for it. It fails
// with ErrInUse while recipes or episodes still reference the cuisine.
func (s *Store) DeleteCuisine(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM cuisines WHERE id = ?`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return store.ErrInUse.WithMessage(fmt.Sprintf("cuisine %d is used by recipes or episodes", id))
		}
		return err
	}
	return requireAffected(res)
}

// requireAffected maps an update or delete that matched nothing to ErrNotFound.
func requireAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}
