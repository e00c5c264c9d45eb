package catalog

import (
	"context"
	"sync"
	"testing"

	"github.com/Omerrrrrrr/tamer-shop/internal/domain"
	"github.com/Omerrrrrrr/tamer-shop/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockStore struct {
	mu       sync.Mutex
	products map[int64]*domain.Product
	order    []int64
	calls    int
}

func newMockStore(products ...*domain.Product) *mockStore {
	m := &mockStore{products: map[int64]*domain.Product{}}
	for _, p := range products {
		m.products[p.ID] = p
		m.order = append(m.order, p.ID)
	}
	return m
}

func (m *mockStore) GetProduct(_ context.Context, id int64) (*domain.Product, error) {
	m.mu.Lock()
	m.calls++
	m.mu.Unlock()
	p, ok := m.products[id]
	if !ok {
		return nil, repository.ErrProductNotFound
	}
	cp := *p
	return &cp, nil
}

func (m *mockStore) GetProductsFiltered(_ context.Context, f repository.ProductFilter) ([]*domain.Product, error) {
	var out []*domain.Product
	for i := len(m.order) - 1; i >= 0; i-- {
		p := m.products[m.order[i]]
		if f.Category != "" && f.Category != "all" && p.Category != f.Category {
			continue
		}
		cp := *p
		out = append(out, &cp)
	}
	return out, nil
}

func (m *mockStore) GetFeatured(ctx context.Context, limit int) ([]*domain.Product, error) {
	all, _ := m.GetProductsFiltered(ctx, repository.ProductFilter{})
	if len(all) > limit {
		all = all[:limit]
	}
	return all, nil
}

func (m *mockStore) GetStats(context.Context) (domain.CatalogStats, error) {
	return domain.CatalogStats{TotalProducts: len(m.products)}, nil
}

func (m *mockStore) GetAllCategories(context.Context) ([]domain.Category, error) {
	return []domain.Category{
		{ID: "kitchen", Label: "Kitchen"},
		{ID: "office", Label: "Office"},
	}, nil
}

func TestGetProduct_Decorated(t *testing.T) {
	store := newMockStore(&domain.Product{ID: 1, Name: "Kettle", Category: "kitchen", Price: 100, DiscountPercent: 20})
	svc := NewService(store)

	p, err := svc.GetProduct(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 80.0, p.SalePrice)

	// store copy untouched
	assert.Equal(t, 0.0, store.products[1].SalePrice)
}

func TestGetProduct_NotFoundPropagates(t *testing.T) {
	svc := NewService(newMockStore())

	_, err := svc.GetProduct(context.Background(), 42)
	assert.ErrorIs(t, err, repository.ErrProductNotFound)
}

func TestListProducts_Decorated(t *testing.T) {
	store := newMockStore(
		&domain.Product{ID: 1, Name: "Kettle", Category: "kitchen", Price: 100, DiscountPercent: 50},
		&domain.Product{ID: 2, Name: "Lamp", Category: "office", Price: 40},
	)
	svc := NewService(store)

	kitchen, err := svc.ListProducts(context.Background(), "kitchen", "")
	require.NoError(t, err)
	require.Len(t, kitchen, 1)
	assert.Equal(t, 50.0, kitchen[0].SalePrice)
}

func TestRelated_ExcludesSelfAndLimits(t *testing.T) {
	store := newMockStore(
		&domain.Product{ID: 1, Category: "kitchen", Price: 1},
		&domain.Product{ID: 2, Category: "kitchen", Price: 1},
		&domain.Product{ID: 3, Category: "kitchen", Price: 1},
		&domain.Product{ID: 4, Category: "office", Price: 1},
	)
	svc := NewService(store)

	related, err := svc.Related(context.Background(), &domain.Product{ID: 2, Category: "kitchen"}, 4)
	require.NoError(t, err)
	require.Len(t, related, 2)
	for _, p := range related {
		assert.NotEqual(t, int64(2), p.ID)
		assert.Equal(t, "kitchen", p.Category)
	}
}

func TestValidCategory(t *testing.T) {
	svc := NewService(newMockStore())

	ok, err := svc.ValidCategory(context.Background(), "kitchen")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = svc.ValidCategory(context.Background(), "toys")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestGetProduct_ConcurrentLookupsShareQuery(t *testing.T) {
	store := newMockStore(&domain.Product{ID: 1, Name: "Kettle", Price: 100})
	svc := NewService(store)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.GetProduct(context.Background(), 1)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	store.mu.Lock()
	calls := store.calls
	store.mu.Unlock()
	assert.LessOrEqual(t, calls, 20)
	assert.Positive(t, calls)
}
