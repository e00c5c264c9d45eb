package checkout

import (
	"context"

	"github.com/Omerrrrrrr/tamer-shop/internal/domain"
	"github.com/Omerrrrrrr/tamer-shop/internal/repository"
)

type mockCarts struct {
	cart     *domain.Cart
	getErr   error
	clearErr error
	cleared  bool
}

func (m *mockCarts) Get(context.Context, string) (*domain.Cart, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	return m.cart, nil
}

func (m *mockCarts) Clear(context.Context, string) error {
	if m.clearErr != nil {
		return m.clearErr
	}
	m.cleared = true
	m.cart = &domain.Cart{SessionID: m.cart.SessionID}
	return nil
}

type mockLookup struct {
	products map[int64]*domain.Product
}

func (m *mockLookup) GetProduct(_ context.Context, id int64) (*domain.Product, error) {
	p, ok := m.products[id]
	if !ok {
		return nil, repository.ErrProductNotFound
	}
	cp := *p
	return &cp, nil
}

// mockSink captures created orders; createErr fails every attempt,
// dupFirst fails only the first with a code collision.
type mockSink struct {
	orders    []domain.Order
	createErr error
	dupFirst  bool
	calls     int
}

func (m *mockSink) CreateOrder(_ context.Context, order *domain.Order) (int64, error) {
	m.calls++
	if m.createErr != nil {
		return 0, m.createErr
	}
	if m.dupFirst && m.calls == 1 {
		return 0, repository.ErrDuplicateCode
	}
	m.orders = append(m.orders, *order)
	return int64(len(m.orders)), nil
}
