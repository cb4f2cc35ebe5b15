package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Yassin1-prog/cooking-competition-DBMS/internal/domain"
	"github.com/Yassin1-prog/cooking-competition-DBMS/internal/normalize"
	"github.com/Yassin1-prog/cooking-competition-DBMS/internal/store"
)

// --- Ingredients ---

// CreateIngredient inserts an ingredient and sets its ID. Names are unique
// after normalization.
func (s *Store) CreateIngredient(ctx context.Context, in *domain.Ingredient) error {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO ingredients (name, name_key, calories) VALUES (?, ?, ?)`,
		in.Name, normalize.Key(in.Name), in.Calories)
	if err != nil {
		if isUniqueViolation(err) {
			return store.ErrAlreadyExists.WithMessage(fmt.Sprintf("ingredient %q already exists", in.Name))
		}
		return err
	}
	in.ID, err = res.LastInsertId()
	return err
}

// GetIngredient retrieves an ingredient by ID.
func (s *Store) GetIngredient(ctx context.Context, id int64) (*domain.Ingredient, error) {
	var in domain.Ingredient
	err := s.db.QueryRowContext(ctx,
		`SELECT id, name, calories FROM ingredients WHERE id = ?`, id).Scan(&in.ID, &in.Name, &in.Calories)
	if err == sql.ErrNoRows {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &in, nil
}

// ListIngredients returns every ingredient ordered by ID.
func (s *Store) ListIngredients(ctx context.Context) ([]domain.Ingredient, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, name, calories FROM ingredients ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Ingredient
	for rows.Next() {
		var in domain.Ingredient
		if err := rows.Scan(&in.ID, &in.Name, &in.Calories); err != nil {
			return nil, err
		}
		out = append(out, in)
	}
	return out, rows.Err()
}

// UpdateIngredient replaces an ingredient's name and calories.
func (s *Store) UpdateIngredient(ctx context.Context, in *domain.Ingredient) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE ingredients SET name = ?, name_key = ?, calories = ? WHERE id = ?`,
		in.Name, normalize.Key(in.Name), in.Calories, in.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return store.ErrAlreadyExists.WithMessage(fmt.Sprintf("ingredient %q already exists", in.Name))
		}
		return err
	}
	return requireAffected(res)
}

// DeleteIngredient removes an ingredient unless a recipe uses it.
func (s *Store) DeleteIngredient(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM ingredients WHERE id = ?`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return store.ErrInUse.WithMessage(fmt.Sprintf("ingredient %d is used by recipes", id))
		}
		return err
	}
	return requireAffected(res)
}

// --- Tools ---

// CreateTool inserts a tool and sets its ID.
func (s *Store) CreateTool(ctx context.Context, t *domain.Tool) error {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO tools (name, name_key) VALUES (?, ?)`,
		t.Name, normalize.Key(t.Name))
	if err != nil {
		if isUniqueViolation(err) {
			return store.ErrAlreadyExists.WithMessage(fmt.Sprintf("tool %q already exists", t.Name))
		}
		return err
	}
	t.ID, err = res.LastInsertId()
	return err
}

// GetTool retrieves a tool by ID.
func (s *Store) GetTool(ctx context.Context, id int64) (*domain.Tool, error) {
	var t domain.Tool
	err := s.db.QueryRowContext(ctx, `SELECT id, name FROM tools WHERE id = ?`, id).Scan(&t.ID, &t.Name)
	if err == sql.ErrNoRows {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// ListTools returns every tool ordered by ID.
func (s *Store) ListTools(ctx context.Context) ([]domain.Tool, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, name FROM tools ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Tool
	for rows.Next() {
		var t domain.Tool
		if err := rows.Scan(&t.ID, &t.Name); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// RenameTool changes a tool's name.
func (s *Store) RenameTool(ctx context.Context, id int64, name string) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE tools SET name = ?, name_key = ? WHERE id = ?`,
		name, normalize.Key(name), id)
	if err != nil {
		if isUniqueViolation(err) {
			return store.ErrAlreadyExists.WithMessage(fmt.Sprintf("tool %q already exists", name))
		}
		return err
	}
	return requireAffected(res)
}

// DeleteTool removes a tool unless a recipe calls for it.
func (s *Store) DeleteTool(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM tools WHERE id = ?`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return store.ErrInUse.WithMessage(fmt.Sprintf("tool %d is used by recipes", id))
		}
		return err
	}
	return requireAffected(res)
}
