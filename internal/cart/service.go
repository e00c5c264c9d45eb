package cart

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/Omerrrrrrr/tamer-shop/internal/domain"
	"github.com/Omerrrrrrr/tamer-shop/internal/pricing"
	"github.com/Omerrrrrrr/tamer-shop/internal/repository"
	"github.com/Omerrrrrrr/tamer-shop/internal/session"
)

var (
	// ErrProductUnavailable covers products that are missing, out of
	// stock, or priced at zero; none of them may enter a cart.
	ErrProductUnavailable = errors.New("product unavailable")
	ErrLineNotFound       = errors.New("cart line not found")
)

type Service struct {
	carts    session.CartStore
	products ProductLookup
}

func NewService(carts session.CartStore, products ProductLookup) *Service {
	return &Service{
		carts:    carts,
		products: products,
	}
}

// Get returns the session's cart, or an empty one when none exists yet.
func (s *Service) Get(ctx context.Context, sessionID string) (*domain.Cart, error) {
	cart, err := s.carts.Get(ctx, sessionID)
	if errors.Is(err, session.ErrNotFound) {
		now := time.Now()
		return &domain.Cart{
			SessionID: sessionID,
			Lines:     nil,
			CreatedAt: now,
			UpdatedAt: now,
		}, nil
	}
	if err != nil {
		return nil, err
	}
	return cart, nil
}

// AddItem puts qty units of the product into the session cart, merging
// into an existing line when present. Snapshot fields on the line are
// refreshed from the current product state.
func (s *Service) AddItem(ctx context.Context, sessionID string, productID int64, qty int) (*domain.Cart, error) {
	product, err := s.products.GetProduct(ctx, productID)
	if errors.Is(err, repository.ErrProductNotFound) {
		return nil, ErrProductUnavailable
	}
	if err != nil {
		log.Printf("product lookup error: %v", err)
		return nil, err
	}
	if product.Stock <= 0 || product.Price <= 0 {
		return nil, ErrProductUnavailable
	}

	if qty < 1 {
		qty = 1
	}

	cart, err := s.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	unitPrice := pricing.SalePrice(product.Price, product.DiscountPercent)
	merged := false
	for i := range cart.Lines {
		if cart.Lines[i].ProductID == productID {
			cart.Lines[i].Quantity += qty
			cart.Lines[i].UnitPrice = unitPrice
			cart.Lines[i].OriginalPrice = product.Price
			cart.Lines[i].DiscountPercent = pricing.ClampDiscount(product.DiscountPercent)
			cart.Lines[i].ImageURL = product.MainImage()
			merged = true
			break
		}
	}
	if !merged {
		cart.Lines = append(cart.Lines, domain.CartLine{
			ProductID:       product.ID,
			Name:            product.Name,
			Quantity:        qty,
			UnitPrice:       unitPrice,
			OriginalPrice:   product.Price,
			DiscountPercent: pricing.ClampDiscount(product.DiscountPercent),
			ImageURL:        product.MainImage(),
			AddedAt:         time.Now(),
		})
	}

	return s.save(ctx, sessionID, cart)
}

// UpdateQuantity sets the quantity of an existing line. Quantity zero (or
// below) removes the line.
func (s *Service) UpdateQuantity(ctx context.Context, sessionID string, productID int64, qty int) (*domain.Cart, error) {
	cart, err := s.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	idx := -1
	for i := range cart.Lines {
		if cart.Lines[i].ProductID == productID {
			idx = i
			break
		}
	}
	if idx == -1 {
		return nil, ErrLineNotFound
	}

	if qty <= 0 {
		cart.Lines = append(cart.Lines[:idx], cart.Lines[idx+1:]...)
	} else {
		cart.Lines[idx].Quantity = qty
	}

	return s.save(ctx, sessionID, cart)
}

// RemoveItem drops the product's line; removing an absent line is not an
// error.
func (s *Service) RemoveItem(ctx context.Context, sessionID string, productID int64) (*domain.Cart, error) {
	cart, err := s.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	kept := cart.Lines[:0]
	for _, line := range cart.Lines {
		if line.ProductID != productID {
			kept = append(kept, line)
		}
	}
	cart.Lines = kept

	return s.save(ctx, sessionID, cart)
}

// Clear drops the whole session cart.
func (s *Service) Clear(ctx context.Context, sessionID string) error {
	if err := s.carts.Delete(ctx, sessionID); err != nil {
		log.Printf("cart clear error: %v", err)
		return err
	}
	return nil
}

// Totals resolves the session cart against current product data. Pruned
// lines (vanished products) are logged but not surfaced.
func (s *Service) Totals(ctx context.Context, sessionID string) (domain.CartTotals, error) {
	cart, err := s.Get(ctx, sessionID)
	if err != nil {
		return domain.CartTotals{}, err
	}

	totals, dropped, err := Totals(ctx, cart.Lines, s.products)
	if err != nil {
		return domain.CartTotals{}, err
	}
	if dropped > 0 {
		log.Printf("cart %s: dropped %d stale line(s)", sessionID, dropped)
	}
	return totals, nil
}

func (s *Service) save(ctx context.Context, sessionID string, cart *domain.Cart) (*domain.Cart, error) {
	cart.SessionID = sessionID
	cart.UpdatedAt = time.Now()
	if err := s.carts.Set(ctx, sessionID, cart); err != nil {
		log.Printf("cart save error: %v", err)
		return nil, err
	}
	return cart, nil
}
