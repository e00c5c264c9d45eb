package domain

import "time"

type User struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

type Comment struct {
	ID         int64     `json:"id"`
	ProductID  int64     `json:"product_id"`
	AuthorName string    `json:"author_name"`
	Content    string    `json:"content"`
	AdminReply string    `json:"admin_reply,omitempty"`
	UserID     int64     `json:"user_id,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}
