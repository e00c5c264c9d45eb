// Package pricing computes sale prices from list prices and discount
// percentages. Discounts are always clamped to [0, 90] so a product can
// never be priced below 10% of its list price, and never negatively.
package pricing

import (
	"math"

	"github.com/Omerrrrrrr/tamer-shop/internal/domain"
)

const (
	maxDiscountPercent = 90.0

	// FreeShippingThreshold is the subtotal (inclusive) above which the
	// shipping fee is waived.
	FreeShippingThreshold = 500.0
	// ShippingFee is the flat fee charged below the threshold.
	ShippingFee = 29.9
)

// ClampDiscount brings a discount percent into the valid [0, 90] range.
// Negative values count as no discount.
func ClampDiscount(d float64) float64 {
	if d < 0 || math.IsNaN(d) {
		return 0
	}
	if d > maxDiscountPercent {
		return maxDiscountPercent
	}
	return d
}

// SalePrice applies the clamped discount to the list price and rounds
// half-up at the cent boundary. The result is never negative; a
// non-finite computation yields 0.
func SalePrice(price, discountPercent float64) float64 {
	if math.IsNaN(price) || math.IsInf(price, 0) {
		return 0
	}
	d := ClampDiscount(discountPercent)
	raw := price * (1 - d/100)
	sale := math.Round(raw*100) / 100
	if math.IsNaN(sale) || sale < 0 {
		return 0
	}
	return sale
}

// Shipping returns the shipping fee owed for the given subtotal.
func Shipping(totalAmount float64) float64 {
	if totalAmount >= FreeShippingThreshold {
		return 0
	}
	return ShippingFee
}

// WithPricing returns a copy of the product decorated with its sale price
// and a clamped discount percent. The input is not mutated; nil passes
// through as nil.
func WithPricing(p *domain.Product) *domain.Product {
	if p == nil {
		return nil
	}
	out := *p
	out.DiscountPercent = ClampDiscount(p.DiscountPercent)
	out.SalePrice = SalePrice(p.Price, p.DiscountPercent)
	return &out
}
