package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Yassin1-prog/cooking-competition-DBMS/internal/domain"
	"github.com/Yassin1-prog/cooking-competition-DBMS/internal/normalize"
	"github.com/Yassin1-prog/cooking-competition-DBMS/internal/store"
)

// recipeColumns must match the scan order in scanRecipe.
const recipeColumns = `id, name, cuisine_id, category, difficulty, description, steps`

func scanRecipe(sc scanner) (*domain.Recipe, error) {
	var (
		r           domain.Recipe
		category    sql.NullString
		description sql.NullString
		steps       sql.NullString
	)
	err := sc.Scan(&r.ID, &r.Name, &r.CuisineID, &category, &r.Difficulty, &description, &steps)
	if err != nil {
		return nil, err
	}
	r.Category = category.String
	r.Description = description.String
	r.Steps = steps.String
	return &r, nil
}

// CreateRecipe inserts a recipe with its ingredients, tools and nutrition and
// sets its ID.
func (s *Store) CreateRecipe(ctx context.Context, r *domain.Recipe) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `
		INSERT INTO recipes (name, name_key, cuisine_id, category, difficulty, description, steps)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		r.Name,
		normalize.Key(r.Name),
		r.CuisineID,
		nullString(r.Category),
		r.Difficulty,
		nullString(r.Description),
		nullString(r.Steps),
	)
	if err != nil {
		return recipeWriteError(err, r)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}

	if err := insertRecipeParts(ctx, tx, id, r); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	r.ID = id
	return nil
}

// UpdateRecipe replaces a recipe's fields, ingredients, tools and nutrition.
func (s *Store) UpdateRecipe(ctx context.Context, r *domain.Recipe) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `
		UPDATE recipes
		SET name = ?, name_key = ?, cuisine_id = ?, category = ?, difficulty = ?, description = ?, steps = ?
		WHERE id = ?`,
		r.Name,
		normalize.Key(r.Name),
		r.CuisineID,
		nullString(r.Category),
		r.Difficulty,
		nullString(r.Description),
		nullString(r.Steps),
		r.ID,
	)
	if err != nil {
		return recipeWriteError(err, r)
	}
	if err := requireAffected(res); err != nil {
		return err
	}

	for _, table := range []string{"recipe_ingredients", "recipe_tools", "recipe_nutrition"} {
		if _, err := tx.ExecContext(ctx, `DELETE FROM `+table+` WHERE recipe_id = ?`, r.ID); err != nil {
			return err
		}
	}
	if err := insertRecipeParts(ctx, tx, r.ID, r); err != nil {
		return err
	}
	return tx.Commit()
}

func recipeWriteError(err error, r *domain.Recipe) error {
	switch {
	case isUniqueViolation(err):
		return store.ErrAlreadyExists.WithMessage(fmt.Sprintf("recipe %q already exists", r.Name))
	case isForeignKeyViolation(err):
		return store.ErrInvalidReference.WithMessage(fmt.Sprintf("cuisine %d does not exist", r.CuisineID))
	}
	return err
}

func insertRecipeParts(ctx context.Context, tx *sql.Tx, id int64, r *domain.Recipe) error {
	for _, in := range r.Ingredients {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO recipe_ingredients (recipe_id, ingredient_id, amount, main) VALUES (?, ?, ?, ?)`,
			id, in.IngredientID, nullString(in.Amount), in.Main)
		if err != nil {
			if isForeignKeyViolation(err) {
				return store.ErrInvalidReference.WithMessage(fmt.Sprintf("ingredient %d does not exist", in.IngredientID))
			}
			return err
		}
	}

	for _, t := range r.Tools {
		_, err := tx.ExecContext(ctx,
			`INSERT OR IGNORE INTO recipe_tools (recipe_id, tool_id) VALUES (?, ?)`, id, t.ID)
		if err != nil {
			if isForeignKeyViolation(err) {
				return store.ErrInvalidReference.WithMessage(fmt.Sprintf("tool %d does not exist", t.ID))
			}
			return err
		}
	}

	if n := r.Nutrition; n != nil {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO recipe_nutrition (recipe_id, calories, carbs, fat, protein) VALUES (?, ?, ?, ?, ?)`,
			id, n.Calories, n.Carbs, n.Fat, n.Protein)
		if err != nil {
			return err
		}
	}
	return nil
}

// GetRecipe retrieves a recipe with its ingredients, tools and nutrition.
func (s *Store) GetRecipe(ctx context.Context, id int64) (*domain.Recipe, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+recipeColumns+` FROM recipes WHERE id = ?`, id)
	r, err := scanRecipe(row)
	if err == sql.ErrNoRows {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	if err := s.loadRecipeIngredients(ctx, r); err != nil {
		return nil, err
	}
	if err := s.loadRecipeTools(ctx, r); err != nil {
		return nil, err
	}

	var n domain.Nutrition
	err = s.db.QueryRowContext(ctx,
		`SELECT calories, carbs, fat, protein FROM recipe_nutrition WHERE recipe_id = ?`, id,
	).Scan(&n.Calories, &n.Carbs, &n.Fat, &n.Protein)
	switch {
	case err == nil:
		r.Nutrition = &n
	case err != sql.ErrNoRows:
		return nil, err
	}
	return r, nil
}

func (s *Store) loadRecipeIngredients(ctx context.Context, r *domain.Recipe) error {
	rows, err := s.db.QueryContext(ctx, `
		SELECT ri.ingredient_id, i.name, ri.amount, ri.main
		FROM recipe_ingredients ri
		JOIN ingredients i ON i.id = ri.ingredient_id
		WHERE ri.recipe_id = ?
		ORDER BY ri.main DESC, i.name`, r.ID)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			in     domain.RecipeIngredient
			amount sql.NullString
		)
		if err := rows.Scan(&in.IngredientID, &in.Name, &amount, &in.Main); err != nil {
			return err
		}
		in.Amount = amount.String
		r.Ingredients = append(r.Ingredients, in)
	}
	return rows.Err()
}

func (s *Store) loadRecipeTools(ctx context.Context, r *domain.Recipe) error {
	rows, err := s.db.QueryContext(ctx, `
		SELECT t.id, t.name
		FROM recipe_tools rt
		JOIN tools t ON t.id = rt.tool_id
		WHERE rt.recipe_id = ?
		ORDER BY t.name`, r.ID)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var t domain.Tool
		if err := rows.Scan(&t.ID, &t.Name); err != nil {
			return err
		}
		r.Tools = append(r.Tools, t)
	}
	return rows.Err()
}

// ListRecipes returns every recipe ordered by ID.
func (s *Store) ListRecipes(ctx context.Context) ([]domain.Recipe, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+recipeColumns+` FROM recipes ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Recipe
	for rows.Next() {
		r, err := scanRecipe(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *r)
	}
	return out, rows.Err()
}

// CountRecipeAppearances returns the number of episodes that featured the recipe.
func (s *Store) CountRecipeAppearances(ctx context.Context, id int64) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM episode_assignments WHERE recipe_id = ?`, id).Scan(&n)
	return n, err
}

// DeleteRecipe removes a recipe unless an episode featured it.
func (s *Store) DeleteRecipe(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM recipes WHERE id = ?`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return store.ErrInUse.WithMessage(fmt.Sprintf("recipe %d was featured in episodes", id))
		}
		return err
	}
	return requireAffected(res)
}
