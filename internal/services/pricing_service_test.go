// internal/services/pricing_service_test.go
package services_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/eshoplabs/storefront-backend/internal/models"
	"github.com/eshoplabs/storefront-backend/internal/services"
)

func TestCalculateDiscountedLineNoPromo(t *testing.T) {
	pricing := services.NewPricingService(8)

	cart := models.CartState{
		Items: []models.CartItem{
			{ID: 1, Price: 100, DiscountPercentage: 10, Quantity: 2, Stock: 10},
		},
	}

	summary := pricing.Calculate(cart).Rounded()

	assert.Equal(t, 2, summary.ItemCount)
	assert.Equal(t, 180.00, summary.Subtotal)
	assert.Equal(t, 0.00, summary.PromoDiscount)
	assert.Equal(t, 14.40, summary.Tax)
	assert.Equal(t, 194.40, summary.Total)
}

func TestCalculateWithPromoCode(t *testing.T) {
	pricing := services.NewPricingService(8)

	cart := models.CartState{
		Items: []models.CartItem{
			{ID: 1, Price: 50, Quantity: 2, Stock: 10},
		},
		PromoCode:     "WELCOME20",
		PromoDiscount: 20,
	}

	summary := pricing.Calculate(cart).Rounded()

	// subtotal 100, promo -20, tax 8% of 80, total 86.40
	assert.Equal(t, 100.00, summary.Subtotal)
	assert.Equal(t, 20.00, summary.PromoDiscount)
	assert.Equal(t, 6.40, summary.Tax)
	assert.Equal(t, 86.40, summary.Total)
}

func TestCalculateEmptyCart(t *testing.T) {
	pricing := services.NewPricingService(8)

	summary := pricing.Calculate(models.CartState{})

	assert.Zero(t, summary.ItemCount)
	assert.Zero(t, summary.Subtotal)
	assert.Zero(t, summary.PromoDiscount)
	assert.Zero(t, summary.Tax)
	assert.Zero(t, summary.Total)
}

func TestCalculateMixedLines(t *testing.T) {
	pricing := services.NewPricingService(8)

	cart := models.CartState{
		Items: []models.CartItem{
			{ID: 1, Price: 100, DiscountPercentage: 10, Quantity: 1, Stock: 5},
			{ID: 2, Price: 20, Quantity: 3, Stock: 5},
		},
	}

	summary := pricing.Calculate(cart)

	assert.Equal(t, 4, summary.ItemCount)
	assert.InDelta(t, 150.00, summary.Subtotal, 1e-9)
	assert.InDelta(t, 12.00, summary.Tax, 1e-9)
	assert.InDelta(t, 162.00, summary.Total, 1e-9)
}

func TestRoundingHappensOnlyAtPresentation(t *testing.T) {
	pricing := services.NewPricingService(8)

	cart := models.CartState{
		Items: []models.CartItem{
			{ID: 1, Price: 9.99, DiscountPercentage: 7.17, Quantity: 3, Stock: 10},
		},
		PromoCode:     "SUMMER15",
		PromoDiscount: 15,
	}

	raw := pricing.Calculate(cart)
	rounded := raw.Rounded()

	// The raw total must equal the recomputed chain without any intermediate
	// rounding; the rounded form only snaps to cents at the end.
	line := 9.99 - 9.99*7.17/100
	subtotal := line * 3
	taxable := subtotal - subtotal*15/100
	expected := taxable + taxable*8/100

	assert.InDelta(t, expected, raw.Total, 1e-9)
	assert.InDelta(t, raw.Total, rounded.Total, 0.005)
}
