// Package catalog is the read side of the product store. It decorates
// products with their sale price and serves as the product lookup for the
// cart and checkout pipelines.
package catalog

import (
	"context"
	"strconv"

	"github.com/Omerrrrrrr/tamer-shop/internal/domain"
	"github.com/Omerrrrrrr/tamer-shop/internal/pricing"
	"github.com/Omerrrrrrr/tamer-shop/internal/repository"
	"golang.org/x/sync/singleflight"
)

// Store is the slice of the repository the catalog reads from.
type Store interface {
	GetProduct(ctx context.Context, id int64) (*domain.Product, error)
	GetProductsFiltered(ctx context.Context, f repository.ProductFilter) ([]*domain.Product, error)
	GetFeatured(ctx context.Context, limit int) ([]*domain.Product, error)
	GetStats(ctx context.Context) (domain.CatalogStats, error)
	GetAllCategories(ctx context.Context) ([]domain.Category, error)
}

type Service struct {
	store Store
	sfg   singleflight.Group // collapses concurrent lookups of the same product
}

func NewService(store Store) *Service {
	return &Service{store: store}
}

// GetProduct returns the product decorated with its sale price. Concurrent
// requests for the same id share one store query.
func (s *Service) GetProduct(ctx context.Context, id int64) (*domain.Product, error) {
	v, err, _ := s.sfg.Do(productKey(id), func() (interface{}, error) {
		p, err := s.store.GetProduct(ctx, id)
		if err != nil {
			return nil, err
		}
		return pricing.WithPricing(p), nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*domain.Product), nil
}

func (s *Service) ListProducts(ctx context.Context, category, search string) ([]*domain.Product, error) {
	products, err := s.store.GetProductsFiltered(ctx, repository.ProductFilter{
		Category: category,
		Search:   search,
	})
	if err != nil {
		return nil, err
	}
	return decorate(products), nil
}

func (s *Service) Featured(ctx context.Context, limit int) ([]*domain.Product, error) {
	products, err := s.store.GetFeatured(ctx, limit)
	if err != nil {
		return nil, err
	}
	return decorate(products), nil
}

// Related lists up to limit other products from the same category.
func (s *Service) Related(ctx context.Context, p *domain.Product, limit int) ([]*domain.Product, error) {
	products, err := s.store.GetProductsFiltered(ctx, repository.ProductFilter{Category: p.Category})
	if err != nil {
		return nil, err
	}

	related := make([]*domain.Product, 0, limit)
	for _, candidate := range products {
		if candidate.ID == p.ID {
			continue
		}
		related = append(related, pricing.WithPricing(candidate))
		if len(related) == limit {
			break
		}
	}
	return related, nil
}

func (s *Service) Stats(ctx context.Context) (domain.CatalogStats, error) {
	return s.store.GetStats(ctx)
}

func (s *Service) Categories(ctx context.Context) ([]domain.Category, error) {
	return s.store.GetAllCategories(ctx)
}

// ValidCategory reports whether id names an existing category. Unknown
// filters fall back to "all" at the handler.
func (s *Service) ValidCategory(ctx context.Context, id string) (bool, error) {
	categories, err := s.store.GetAllCategories(ctx)
	if err != nil {
		return false, err
	}
	for _, cat := range categories {
		if cat.ID == id {
			return true, nil
		}
	}
	return false, nil
}

func decorate(products []*domain.Product) []*domain.Product {
	out := make([]*domain.Product, len(products))
	for i, p := range products {
		out[i] = pricing.WithPricing(p)
	}
	return out
}

func productKey(id int64) string {
	return strconv.FormatInt(id, 10)
}
