// Package inventory stores brewing ingredients and renders them in a user's
// display units.
package inventory

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

// ErrInUse is returned when deleting an item that a recipe still references.
var ErrInUse = errors.New("item is used by a recipe")

const itemColumns = `id, kind, name, supplier, notes, amount_grams, volume_liters, color_ebc,
	alpha_acid, form, laboratory, product_id, attenuation, created_at, updated_at`

// Repository handles item persistence in the items table.
type Repository struct {
	db  *sql.DB
	log zerolog.Logger
	now func() time.Time
}

// NewRepository creates a new item repository.
func NewRepository(db *sql.DB, log zerolog.Logger) *Repository {
	return &Repository{
		db:  db,
		log: log.With().Str("repository", "items").Logger(),
		now: func() time.Time { return time.Now().UTC() },
	}
}

// SetClock replaces the time source used for timestamps.
func (r *Repository) SetClock(now func() time.Time) {
	r.now = now
}

// Create validates and inserts item, assigning an ID when it has none.
func (r *Repository) Create(ctx context.Context, item *domain.Item) error {
	if err := item.Validate(); err != nil {
		return err
	}
	if item.ID == "" {
		item.ID = uuid.NewString()
	}
	now := r.now()
	item.CreatedAt = now.Truncate(time.Second)
	item.UpdatedAt = item.CreatedAt

	_, err := r.db.ExecContext(ctx, `INSERT INTO items (`+itemColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		item.ID, string(item.Kind), item.Name, item.Supplier, item.Notes,
		item.AmountGrams, item.VolumeLiters, item.ColorEBC,
		item.AlphaAcid, item.Form, item.Laboratory, item.ProductID, item.Attenuation,
		item.CreatedAt.Unix(), item.UpdatedAt.Unix())
	if err != nil {
		return fmt.Errorf("failed to insert item %s: %w", item.Name, err)
	}
	r.log.Debug().Str("id", item.ID).Str("kind", string(item.Kind)).Msg("item created")
	return nil
}

// Get returns the item with id, or domain.ErrNotFound.
func (r *Repository) Get(ctx context.Context, id string) (*domain.Item, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+itemColumns+` FROM items WHERE id = ?`, id)
	item, err := scanItem(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("item %s: %w", id, domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get item %s: %w", id, err)
	}
	return item, nil
}

// Update replaces every mutable field of an existing item.
func (r *Repository) Update(ctx context.Context, item *domain.Item) error {
	if err := item.Validate(); err != nil {
		return err
	}
	item.UpdatedAt = r.now().Truncate(time.Second)

	res, err := r.db.ExecContext(ctx, `UPDATE items SET
			kind = ?, name = ?, supplier = ?, notes = ?, amount_grams = ?, volume_liters = ?,
			color_ebc = ?, alpha_acid = ?, form = ?, laboratory = ?, product_id = ?,
			attenuation = ?, updated_at = ?
		WHERE id = ?`,
		string(item.Kind), item.Name, item.Supplier, item.Notes, item.AmountGrams, item.VolumeLiters,
		item.ColorEBC, item.AlphaAcid, item.Form, item.Laboratory, item.ProductID,
		item.Attenuation, item.UpdatedAt.Unix(), item.ID)
	if err != nil {
		return fmt.Errorf("failed to update item %s: %w", item.ID, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("item %s: %w", item.ID, domain.ErrNotFound)
	}
	return nil
}

// Delete removes an item. Items referenced by recipes are kept and ErrInUse is returned.
func (r *Repository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM items WHERE id = ?`, id)
	if err != nil {
		if strings.Contains(err.Error(), "FOREIGN KEY constraint failed") {
			return fmt.Errorf("item %s: %w", id, ErrInUse)
		}
		return fmt.Errorf("failed to delete item %s: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("item %s: %w", id, domain.ErrNotFound)
	}
	r.log.Debug().Str("id", id).Msg("item deleted")
	return nil
}

// List returns items matching filter ordered by kind and name. A non-empty
// query matches name, supplier, notes or product ID, case-insensitively.
func (r *Repository) List(ctx context.Context, filter domain.ItemFilter) ([]domain.Item, error) {
	var (
		where []string
		args  []any
	)
	if filter.Kind != "" {
		where = append(where, "kind = ?")
		args = append(args, string(filter.Kind))
	}
	if q := strings.TrimSpace(filter.Query); q != "" {
		pattern := "%" + escapeLike(strings.ToLower(q)) + "%"
		where = append(where, `(lower(name) LIKE ? ESCAPE '\' OR lower(supplier) LIKE ? ESCAPE '\'
			OR lower(notes) LIKE ? ESCAPE '\' OR lower(product_id) LIKE ? ESCAPE '\')`)
		args = append(args, pattern, pattern, pattern, pattern)
	}

	query := `SELECT ` + itemColumns + ` FROM items`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY kind, lower(name), id"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list items: %w", err)
	}
	defer rows.Close()

	var items []domain.Item
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan item: %w", err)
		}
		items = append(items, *item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list items: %w", err)
	}
	return items, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanItem(s scanner) (*domain.Item, error) {
	var (
		item             domain.Item
		kind             string
		created, updated int64
	)
	err := s.Scan(&item.ID, &kind, &item.Name, &item.Supplier, &item.Notes,
		&item.AmountGrams, &item.VolumeLiters, &item.ColorEBC,
		&item.AlphaAcid, &item.Form, &item.Laboratory, &item.ProductID, &item.Attenuation,
		&created, &updated)
	if err != nil {
		return nil, err
	}
	item.Kind = domain.Kind(kind)
	item.CreatedAt = time.Unix(created, 0).UTC()
	item.UpdatedAt = time.Unix(updated, 0).UTC()
	return &item, nil
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
