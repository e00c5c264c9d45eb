package repository

import "errors"

var (
	ErrProductNotFound  = errors.New("product not found")
	ErrOrderNotFound    = errors.New("order not found")
	ErrUserNotFound     = errors.New("user not found")
	ErrCommentNotFound  = errors.New("comment not found")
	ErrCategoryNotFound = errors.New("category not found")
	ErrDuplicateCode    = errors.New("order code already exists")
	ErrEmailTaken       = errors.New("email already registered")
	ErrCategoryInUse    = errors.New("category still has products")
)
