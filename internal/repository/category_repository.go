package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Omerrrrrrr/tamer-shop/internal/domain"
)

// EnsureDefaultCategories inserts any of the given categories that do not
// exist yet. Existing rows are left alone.
func (r *Repository) EnsureDefaultCategories(ctx context.Context, defaults []domain.Category) error {
	for _, cat := range defaults {
		if cat.ID == "" || cat.Label == "" {
			continue
		}
		_, err := r.db.ExecContext(ctx,
			`INSERT OR IGNORE INTO categories (id, label, image_url) VALUES (?, ?, ?)`,
			cat.ID, cat.Label, nullString(cat.ImageURL))
		if err != nil {
			return fmt.Errorf("ensure category %s: %w", cat.ID, err)
		}
	}
	return nil
}

func (r *Repository) GetAllCategories(ctx context.Context) ([]domain.Category, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, label, image_url FROM categories ORDER BY label ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query categories: %w", err)
	}
	defer rows.Close()

	var categories []domain.Category
	for rows.Next() {
		var cat domain.Category
		var imageURL sql.NullString
		if err := rows.Scan(&cat.ID, &cat.Label, &imageURL); err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		cat.ImageURL = imageURL.String
		categories = append(categories, cat)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}
	return categories, nil
}

func (r *Repository) GetCategory(ctx context.Context, id string) (*domain.Category, error) {
	var cat domain.Category
	var imageURL sql.NullString
	err := r.db.QueryRowContext(ctx,
		`SELECT id, label, image_url FROM categories WHERE id = ?`, id).
		Scan(&cat.ID, &cat.Label, &imageURL)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrCategoryNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query category: %w", err)
	}
	cat.ImageURL = imageURL.String
	return &cat, nil
}

func (r *Repository) CreateCategory(ctx context.Context, cat domain.Category) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO categories (id, label, image_url) VALUES (?, ?, ?)`,
		cat.ID, cat.Label, nullString(cat.ImageURL))
	if err != nil {
		return fmt.Errorf("insert category: %w", err)
	}
	return nil
}

// DeleteCategory refuses to delete a category while products still
// reference it.
func (r *Repository) DeleteCategory(ctx context.Context, id string) error {
	count, err := r.CountProductsByCategory(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrCategoryInUse
	}

	res, err := r.db.ExecContext(ctx, `DELETE FROM categories WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	return requireRow(res, ErrCategoryNotFound)
}

func (r *Repository) CountProductsByCategory(ctx context.Context, id string) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM products WHERE category = ?`, id).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count products by category: %w", err)
	}
	return count, nil
}
