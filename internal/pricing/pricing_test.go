package pricing

import (
	"math"
	"testing"

	"github.com/Omerrrrrrr/tamer-shop/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSalePrice(t *testing.T) {
	tests := []struct {
		name     string
		price    float64
		discount float64
		want     float64
	}{
		{name: "twenty percent off", price: 100, discount: 20, want: 80},
		{name: "no discount", price: 100, discount: 0, want: 100},
		{name: "discount capped at 90", price: 100, discount: 200, want: 10},
		{name: "negative discount ignored", price: 100, discount: -15, want: 100},
		{name: "rounds to cents", price: 19.99, discount: 33, want: 13.39},
		{name: "half rounds up", price: 0.50, discount: 50, want: 0.25},
		{name: "zero price", price: 0, discount: 50, want: 0},
		{name: "nan price", price: math.NaN(), discount: 10, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, SalePrice(tt.price, tt.discount), 1e-9)
		})
	}
}

func TestSalePrice_OverCapEqualsCap(t *testing.T) {
	for _, d := range []float64{91, 100, 500, 1e9} {
		assert.Equal(t, SalePrice(123.45, 90), SalePrice(123.45, d))
	}
}

func TestSalePrice_NeverNegative(t *testing.T) {
	for _, price := range []float64{0, 0.01, 1, 99.99, 1e6} {
		for _, d := range []float64{-50, 0, 45, 90, 150} {
			assert.GreaterOrEqual(t, SalePrice(price, d), 0.0)
		}
	}
}

func TestShipping(t *testing.T) {
	assert.Equal(t, ShippingFee, Shipping(0))
	assert.Equal(t, ShippingFee, Shipping(499.99))
	assert.Equal(t, 0.0, Shipping(500))
	assert.Equal(t, 0.0, Shipping(1200))
}

func TestWithPricing(t *testing.T) {
	p := &domain.Product{ID: 1, Name: "Kettle", Price: 100, DiscountPercent: 20}

	got := WithPricing(p)
	require.NotNil(t, got)
	assert.Equal(t, 80.0, got.SalePrice)
	assert.Equal(t, 20.0, got.DiscountPercent)

	// input is untouched
	assert.Equal(t, 0.0, p.SalePrice)
}

func TestWithPricing_Nil(t *testing.T) {
	assert.Nil(t, WithPricing(nil))
}

func TestWithPricing_Idempotent(t *testing.T) {
	p := &domain.Product{ID: 2, Price: 59.9, DiscountPercent: 130}

	once := WithPricing(p)
	twice := WithPricing(once)

	assert.Equal(t, once.SalePrice, twice.SalePrice)
	assert.Equal(t, 90.0, twice.DiscountPercent)
}
