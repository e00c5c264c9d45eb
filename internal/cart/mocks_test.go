package cart

import (
	"context"

	"github.com/Omerrrrrrr/tamer-shop/internal/domain"
	"github.com/Omerrrrrrr/tamer-shop/internal/repository"
	"github.com/Omerrrrrrr/tamer-shop/internal/session"
)

// mockLookup serves products from a map; unknown ids report not-found the
// way the repository does.
type mockLookup struct {
	products map[int64]*domain.Product
	err      error
}

func (m *mockLookup) GetProduct(_ context.Context, id int64) (*domain.Product, error) {
	if m.err != nil {
		return nil, m.err
	}
	p, ok := m.products[id]
	if !ok {
		return nil, repository.ErrProductNotFound
	}
	cp := *p
	return &cp, nil
}

type mockStore struct {
	carts  map[string]*domain.Cart
	getErr error
	setErr error
	delErr error
}

func newMockStore() *mockStore {
	return &mockStore{carts: map[string]*domain.Cart{}}
}

func (m *mockStore) Get(_ context.Context, sessionID string) (*domain.Cart, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	cart, ok := m.carts[sessionID]
	if !ok {
		return nil, session.ErrNotFound
	}
	return cart, nil
}

func (m *mockStore) Set(_ context.Context, sessionID string, cart *domain.Cart) error {
	if m.setErr != nil {
		return m.setErr
	}
	m.carts[sessionID] = cart
	return nil
}

func (m *mockStore) Delete(_ context.Context, sessionID string) error {
	if m.delErr != nil {
		return m.delErr
	}
	delete(m.carts, sessionID)
	return nil
}
