package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Omerrrrrrr/tamer-shop/internal/domain"
)

const orderColumns = `id, code, customer_name, customer_email, total_amount, shipping_amount, payable_amount, items_json, card_brand, card_last4, status, created_at`

// CreateOrder writes the durable checkout record. The code column carries
// a unique constraint; a collision surfaces as ErrDuplicateCode so the
// caller can mint a new code and retry.
func (r *Repository) CreateOrder(ctx context.Context, order *domain.Order) (int64, error) {
	itemsJSON, err := json.Marshal(order.Lines)
	if err != nil {
		return 0, fmt.Errorf("failed to marshal order lines: %w", err)
	}

	res, err := r.db.ExecContext(ctx,
		`INSERT INTO orders (code, customer_name, customer_email, total_amount, shipping_amount, payable_amount, items_json, card_brand, card_last4, status, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		order.Code,
		order.CustomerName,
		nullString(order.CustomerEmail),
		order.TotalAmount,
		order.Shipping,
		order.Payable,
		string(itemsJSON),
		order.CardBrand,
		order.CardLast4,
		string(order.Status),
		order.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, ErrDuplicateCode
		}
		return 0, fmt.Errorf("insert order: %w", err)
	}
	return res.LastInsertId()
}

func (r *Repository) GetOrderByCode(ctx context.Context, code string) (*domain.Order, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+orderColumns+` FROM orders WHERE code = ?`, code)

	order, err := scanOrder(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query order: %w", err)
	}
	return order, nil
}

// ListOrders returns every order, newest first (admin view).
func (r *Repository) ListOrders(ctx context.Context) ([]*domain.Order, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+orderColumns+` FROM orders ORDER BY id DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query orders: %w", err)
	}
	defer rows.Close()

	var orders []*domain.Order
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		orders = append(orders, order)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}
	return orders, nil
}

func scanOrder(row rowScanner) (*domain.Order, error) {
	order := &domain.Order{}
	var email sql.NullString
	var itemsJSON string
	var status string
	err := row.Scan(
		&order.ID,
		&order.Code,
		&order.CustomerName,
		&email,
		&order.TotalAmount,
		&order.Shipping,
		&order.Payable,
		&itemsJSON,
		&order.CardBrand,
		&order.CardLast4,
		&status,
		&order.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	order.CustomerEmail = email.String
	order.Status = domain.OrderStatus(status)
	if err := json.Unmarshal([]byte(itemsJSON), &order.Lines); err != nil {
		return nil, fmt.Errorf("unmarshal order lines: %w", err)
	}
	return order, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
