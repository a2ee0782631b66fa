// Package recipes stores brewing recipes and their ingredient lines.
package recipes

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/brewkeeper/brewkeeper/internal/domain"
)

const recipeColumns = `id, name, style, notes, batch_size_liters, boil_size_liters,
	boil_time_minutes, efficiency, created_at, updated_at`

// Repository handles recipe persistence in the recipes and recipe_ingredients tables.
type Repository struct {
	db  *sql.DB
	log zerolog.Logger
	now func() time.Time
}

// NewRepository creates a new recipe repository.
func NewRepository(db *sql.DB, log zerolog.Logger) *Repository {
	return &Repository{
		db:  db,
		log: log.With().Str("repository", "recipes").Logger(),
		now: func() time.Time { return time.Now().UTC() },
	}
}

// SetClock replaces the time source used for timestamps.
func (r *Repository) SetClock(now func() time.Time) {
	r.now = now
}

// Create validates and inserts a recipe with its ingredients.
func (r *Repository) Create(ctx context.Context, recipe *domain.Recipe) error {
	if err := recipe.Validate(); err != nil {
		return err
	}
	if recipe.ID == "" {
		recipe.ID = uuid.NewString()
	}
	recipe.CreatedAt = r.now().Truncate(time.Second)
	recipe.UpdatedAt = recipe.CreatedAt

	return r.inTx(ctx, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, `INSERT INTO recipes (`+recipeColumns+`)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			recipe.ID, recipe.Name, recipe.Style, recipe.Notes, recipe.BatchSizeLiters, recipe.BoilSizeLiters,
			recipe.BoilTimeMinutes, recipe.Efficiency, recipe.CreatedAt.Unix(), recipe.UpdatedAt.Unix())
		if err != nil {
			return fmt.Errorf("failed to insert recipe %s: %w", recipe.Name, err)
		}
		return insertIngredients(ctx, tx, recipe)
	})
}

// Get returns the recipe with id and its ingredients, or domain.ErrNotFound.
func (r *Repository) Get(ctx context.Context, id string) (*domain.Recipe, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+recipeColumns+` FROM recipes WHERE id = ?`, id)
	recipe, err := scanRecipe(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("recipe %s: %w", id, domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get recipe %s: %w", id, err)
	}
	if recipe.Ingredients, err = r.ingredients(ctx, id); err != nil {
		return nil, err
	}
	return recipe, nil
}

// Update replaces a recipe and all of its ingredient lines.
func (r *Repository) Update(ctx context.Context, recipe *domain.Recipe) error {
	if err := recipe.Validate(); err != nil {
		return err
	}
	recipe.UpdatedAt = r.now().Truncate(time.Second)

	return r.inTx(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, `UPDATE recipes SET
				name = ?, style = ?, notes = ?, batch_size_liters = ?, boil_size_liters = ?,
				boil_time_minutes = ?, efficiency = ?, updated_at = ?
			WHERE id = ?`,
			recipe.Name, recipe.Style, recipe.Notes, recipe.BatchSizeLiters, recipe.BoilSizeLiters,
			recipe.BoilTimeMinutes, recipe.Efficiency, recipe.UpdatedAt.Unix(), recipe.ID)
		if err != nil {
			return fmt.Errorf("failed to update recipe %s: %w", recipe.ID, err)
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return fmt.Errorf("recipe %s: %w", recipe.ID, domain.ErrNotFound)
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM recipe_ingredients WHERE recipe_id = ?`, recipe.ID); err != nil {
			return fmt.Errorf("failed to clear ingredients of %s: %w", recipe.ID, err)
		}
		return insertIngredients(ctx, tx, recipe)
	})
}

// Delete removes a recipe and its ingredient lines.
func (r *Repository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM recipes WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete recipe %s: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("recipe %s: %w", id, domain.ErrNotFound)
	}
	r.log.Debug().Str("id", id).Msg("recipe deleted")
	return nil
}

// List returns recipes ordered by name. A non-empty query matches name,
// style or notes case-insensitively.
func (r *Repository) List(ctx context.Context, query string) ([]domain.Recipe, error) {
	stmt := `SELECT ` + recipeColumns + ` FROM recipes`
	var args []any
	if q := strings.TrimSpace(query); q != "" {
		pattern := "%" + escapeLike(strings.ToLower(q)) + "%"
		stmt += ` WHERE lower(name) LIKE ? ESCAPE '\' OR lower(style) LIKE ? ESCAPE '\' OR lower(notes) LIKE ? ESCAPE '\'`
		args = append(args, pattern, pattern, pattern)
	}
	stmt += " ORDER BY lower(name), id"

	rows, err := r.db.QueryContext(ctx, stmt, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list recipes: %w", err)
	}
	var recipes []domain.Recipe
	for rows.Next() {
		recipe, err := scanRecipe(rows)
		if err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to scan recipe: %w", err)
		}
		recipes = append(recipes, *recipe)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, fmt.Errorf("failed to list recipes: %w", err)
	}
	rows.Close()

	// Ingredients are loaded after the cursor is closed; in-memory databases
	// run on a single connection.
	for i := range recipes {
		if recipes[i].Ingredients, err = r.ingredients(ctx, recipes[i].ID); err != nil {
			return nil, err
		}
	}
	return recipes, nil
}

func (r *Repository) ingredients(ctx context.Context, recipeID string) ([]domain.Ingredient, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT item_id, amount_grams, volume_liters, use, time_minutes
		FROM recipe_ingredients WHERE recipe_id = ? ORDER BY position`, recipeID)
	if err != nil {
		return nil, fmt.Errorf("failed to load ingredients of %s: %w", recipeID, err)
	}
	defer rows.Close()

	out := []domain.Ingredient{}
	for rows.Next() {
		var ing domain.Ingredient
		if err := rows.Scan(&ing.ItemID, &ing.AmountGrams, &ing.VolumeLiters, &ing.Use, &ing.TimeMinutes); err != nil {
			return nil, fmt.Errorf("failed to scan ingredient: %w", err)
		}
		out = append(out, ing)
	}
	return out, rows.Err()
}

func insertIngredients(ctx context.Context, tx *sql.Tx, recipe *domain.Recipe) error {
	for i, ing := range recipe.Ingredients {
		_, err := tx.ExecContext(ctx, `INSERT INTO recipe_ingredients
			(recipe_id, position, item_id, amount_grams, volume_liters, use, time_minutes)
			VALUES (?, ?, ?, ?, ?, ?, ?)`,
			recipe.ID, i, ing.ItemID, ing.AmountGrams, ing.VolumeLiters, ing.Use, ing.TimeMinutes)
		if err != nil {
			if strings.Contains(err.Error(), "FOREIGN KEY constraint failed") {
				return fmt.Errorf("%w: ingredient %d references unknown item %s", domain.ErrValidation, i+1, ing.ItemID)
			}
			return fmt.Errorf("failed to insert ingredient %d: %w", i+1, err)
		}
	}
	return nil
}

func (r *Repository) inTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			r.log.Warn().Err(rbErr).Msg("rollback failed")
		}
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit: %w", err)
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRecipe(s scanner) (*domain.Recipe, error) {
	var (
		recipe           domain.Recipe
		created, updated int64
	)
	err := s.Scan(&recipe.ID, &recipe.Name, &recipe.Style, &recipe.Notes, &recipe.BatchSizeLiters,
		&recipe.BoilSizeLiters, &recipe.BoilTimeMinutes, &recipe.Efficiency, &created, &updated)
	if err != nil {
		return nil, err
	}
	recipe.CreatedAt = time.Unix(created, 0).UTC()
	recipe.UpdatedAt = time.Unix(updated, 0).UTC()
	return &recipe, nil
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
