// Package session stores per-session shopping carts. Carts are ephemeral
// state: losing one costs the visitor a few clicks, so they live in redis
// with a TTL rather than in the relational store.
package session

import (
	"context"
	"errors"

	"github.com/Omerrrrrrr/tamer-shop/internal/domain"
)

// CartStore is the per-session cart collaborator. Get returns ErrNotFound
// when the session has no cart yet.
type CartStore interface {
	Get(ctx context.Context, sessionID string) (*domain.Cart, error)
	Set(ctx context.Context, sessionID string, cart *domain.Cart) error
	Delete(ctx context.Context, sessionID string) error
}

var ErrNotFound = errors.New("cart not found")
