package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Omerrrrrrr/tamer-shop/internal/domain"
)

const productColumns = `id, name, description, category, stock, price, images_json, discount_percent, created_at`

// ProductFilter narrows GetProductsFiltered. The zero value returns
// everything, newest first.
type ProductFilter struct {
	Category string // "" or "all" means every category
	Search   string // substring match on name or description
}

func (r *Repository) GetProduct(ctx context.Context, id int64) (*domain.Product, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+productColumns+` FROM products WHERE id = ?`, id)

	p, err := scanProduct(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrProductNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query product: %w", err)
	}
	return p, nil
}

func (r *Repository) GetAllProducts(ctx context.Context) ([]*domain.Product, error) {
	return r.GetProductsFiltered(ctx, ProductFilter{})
}

func (r *Repository) GetProductsFiltered(ctx context.Context, f ProductFilter) ([]*domain.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE 1=1`
	var args []any

	if f.Category != "" && f.Category != "all" {
		query += ` AND category = ?`
		args = append(args, f.Category)
	}
	if f.Search != "" {
		query += ` AND (name LIKE ? OR description LIKE ?)`
		pattern := "%" + f.Search + "%"
		args = append(args, pattern, pattern)
	}
	query += ` ORDER BY id DESC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	return collectProducts(rows)
}

// GetFeatured returns the latest products for the storefront landing page.
func (r *Repository) GetFeatured(ctx context.Context, limit int) ([]*domain.Product, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+productColumns+` FROM products ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query featured products: %w", err)
	}
	defer rows.Close()

	return collectProducts(rows)
}

func (r *Repository) CreateProduct(ctx context.Context, p *domain.Product) (int64, error) {
	imagesJSON, err := marshalImages(p.Images)
	if err != nil {
		return 0, err
	}

	res, err := r.db.ExecContext(ctx,
		`INSERT INTO products (name, description, category, stock, price, images_json, discount_percent, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		p.Name, p.Description, p.Category, p.Stock, p.Price, imagesJSON, p.DiscountPercent, time.Now())
	if err != nil {
		return 0, fmt.Errorf("insert product: %w", err)
	}
	return res.LastInsertId()
}

func (r *Repository) UpdateProduct(ctx context.Context, p *domain.Product) error {
	imagesJSON, err := marshalImages(p.Images)
	if err != nil {
		return err
	}

	res, err := r.db.ExecContext(ctx,
		`UPDATE products
		 SET name = ?, description = ?, category = ?, stock = ?, price = ?, images_json = ?, discount_percent = ?
		 WHERE id = ?`,
		p.Name, p.Description, p.Category, p.Stock, p.Price, imagesJSON, p.DiscountPercent, p.ID)
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}
	return requireRow(res, ErrProductNotFound)
}

func (r *Repository) DeleteProduct(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM products WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	return requireRow(res, ErrProductNotFound)
}

func (r *Repository) GetStats(ctx context.Context) (domain.CatalogStats, error) {
	var stats domain.CatalogStats
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*),
		        COALESCE(SUM(stock), 0),
		        COUNT(DISTINCT category)
		 FROM products`).
		Scan(&stats.TotalProducts, &stats.TotalStock, &stats.TotalCategories)
	if err != nil {
		return domain.CatalogStats{}, fmt.Errorf("failed to query stats: %w", err)
	}
	return stats, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProduct(row rowScanner) (*domain.Product, error) {
	p := &domain.Product{}
	var imagesJSON sql.NullString
	err := row.Scan(
		&p.ID,
		&p.Name,
		&p.Description,
		&p.Category,
		&p.Stock,
		&p.Price,
		&imagesJSON,
		&p.DiscountPercent,
		&p.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	// corrupt or missing images json degrades to no images
	if imagesJSON.Valid && imagesJSON.String != "" {
		var images []string
		if err := json.Unmarshal([]byte(imagesJSON.String), &images); err == nil {
			p.Images = images
		}
	}
	return p, nil
}

func collectProducts(rows *sql.Rows) ([]*domain.Product, error) {
	var products []*domain.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}
	return products, nil
}

func marshalImages(images []string) (sql.NullString, error) {
	if len(images) == 0 {
		return sql.NullString{}, nil
	}
	data, err := json.Marshal(images)
	if err != nil {
		return sql.NullString{}, fmt.Errorf("marshal images: %w", err)
	}
	return sql.NullString{String: string(data), Valid: true}, nil
}

func requireRow(res sql.Result, missing error) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return missing
	}
	return nil
}
