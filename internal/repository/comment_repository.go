package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Omerrrrrrr/tamer-shop/internal/domain"
)

func (r *Repository) AddComment(ctx context.Context, c *domain.Comment) (int64, error) {
	var userID sql.NullInt64
	if c.UserID != 0 {
		userID = sql.NullInt64{Int64: c.UserID, Valid: true}
	}

	res, err := r.db.ExecContext(ctx,
		`INSERT INTO comments (product_id, author_name, content, user_id, created_at) VALUES (?, ?, ?, ?, ?)`,
		c.ProductID, c.AuthorName, c.Content, userID, time.Now())
	if err != nil {
		return 0, fmt.Errorf("insert comment: %w", err)
	}
	return res.LastInsertId()
}

// GetComments lists a product's comments, newest first.
func (r *Repository) GetComments(ctx context.Context, productID int64) ([]domain.Comment, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, product_id, author_name, content, admin_reply, user_id, created_at
		 FROM comments WHERE product_id = ? ORDER BY id DESC`, productID)
	if err != nil {
		return nil, fmt.Errorf("failed to query comments: %w", err)
	}
	defer rows.Close()

	var comments []domain.Comment
	for rows.Next() {
		var c domain.Comment
		var reply sql.NullString
		var userID sql.NullInt64
		err := rows.Scan(&c.ID, &c.ProductID, &c.AuthorName, &c.Content, &reply, &userID, &c.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan comment: %w", err)
		}
		c.AdminReply = reply.String
		c.UserID = userID.Int64
		comments = append(comments, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}
	return comments, nil
}

func (r *Repository) GetComment(ctx context.Context, id int64) (*domain.Comment, error) {
	c := &domain.Comment{}
	var reply sql.NullString
	var userID sql.NullInt64
	err := r.db.QueryRowContext(ctx,
		`SELECT id, product_id, author_name, content, admin_reply, user_id, created_at
		 FROM comments WHERE id = ?`, id).
		Scan(&c.ID, &c.ProductID, &c.AuthorName, &c.Content, &reply, &userID, &c.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrCommentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query comment: %w", err)
	}
	c.AdminReply = reply.String
	c.UserID = userID.Int64
	return c, nil
}

func (r *Repository) ReplyComment(ctx context.Context, id int64, reply string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE comments SET admin_reply = ? WHERE id = ?`, reply, id)
	if err != nil {
		return fmt.Errorf("reply comment: %w", err)
	}
	return requireRow(res, ErrCommentNotFound)
}

func (r *Repository) UpdateCommentContent(ctx context.Context, id int64, content string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE comments SET content = ? WHERE id = ?`, content, id)
	if err != nil {
		return fmt.Errorf("update comment: %w", err)
	}
	return requireRow(res, ErrCommentNotFound)
}

func (r *Repository) DeleteComment(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM comments WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete comment: %w", err)
	}
	return requireRow(res, ErrCommentNotFound)
}
