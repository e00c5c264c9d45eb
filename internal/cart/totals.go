// Package cart holds the session cart operations and the totals
// calculator that resolves cart lines against live product data.
package cart

import (
	"context"
	"errors"
	"fmt"

	"github.com/Omerrrrrrr/tamer-shop/internal/domain"
	"github.com/Omerrrrrrr/tamer-shop/internal/pricing"
	"github.com/Omerrrrrrr/tamer-shop/internal/repository"
)

// ProductLookup resolves a product by id against the current store state.
// A missing product is reported via repository.ErrProductNotFound.
type ProductLookup interface {
	GetProduct(ctx context.Context, id int64) (*domain.Product, error)
}

// Totals resolves each cart line against the current product state and
// computes the aggregate amounts. Lines whose product no longer exists are
// pruned without error; the number of pruned lines is returned so callers
// can log or surface it if they care. Snapshot prices on the lines are
// never trusted: unit prices always come from the product's current price
// and discount. Line order follows the input.
func Totals(ctx context.Context, lines []domain.CartLine, lookup ProductLookup) (domain.CartTotals, int, error) {
	totals := domain.CartTotals{Lines: []domain.CartLine{}}
	dropped := 0

	for _, line := range lines {
		product, err := lookup.GetProduct(ctx, line.ProductID)
		if errors.Is(err, repository.ErrProductNotFound) {
			dropped++
			continue
		}
		if err != nil {
			return domain.CartTotals{}, dropped, fmt.Errorf("lookup product %d: %w", line.ProductID, err)
		}

		qty := line.Quantity
		if qty < 1 {
			qty = 1
		}

		unitPrice := pricing.SalePrice(product.Price, product.DiscountPercent)
		originalPrice := product.Price
		if originalPrice == 0 {
			originalPrice = unitPrice
		}

		totals.Lines = append(totals.Lines, domain.CartLine{
			ProductID:       product.ID,
			Name:            product.Name,
			Quantity:        qty,
			UnitPrice:       unitPrice,
			OriginalPrice:   originalPrice,
			DiscountPercent: pricing.ClampDiscount(product.DiscountPercent),
			ImageURL:        product.MainImage(),
			AddedAt:         line.AddedAt,
		})
		totals.TotalAmount += unitPrice * float64(qty)
		totals.TotalItems += qty
	}

	totals.Shipping = pricing.Shipping(totals.TotalAmount)
	totals.Payable = totals.TotalAmount + totals.Shipping
	return totals, dropped, nil
}
