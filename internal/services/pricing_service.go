// internal/services/pricing_service.go
package services

import (
	"math"

	"github.com/eshoplabs/storefront-backend/internal/models"
)

type PricingService struct {
	taxRatePercent float64
}

// PriceBreakdown carries unrounded amounts; callers round for display only,
// so rounding error never compounds across the derivation steps.
type PriceBreakdown struct {
	ItemCount     int     `json:"item_count"`
	Subtotal      float64 `json:"subtotal"`
	PromoDiscount float64 `json:"promo_discount"`
	Tax           float64 `json:"tax"`
	Total         float64 `json:"total"`
}

func NewPricingService(taxRatePercent float64) *PricingService {
	return &PricingService{taxRatePercent: taxRatePercent}
}

// Calculate derives the order summary from cart state: per-line discounted
// prices, subtotal, promo discount off the subtotal, tax on the discounted
// amount, and the final total.
func (s *PricingService) Calculate(cart models.CartState) PriceBreakdown {
	var subtotal float64
	var itemCount int

	for _, item := range cart.Items {
		subtotal += item.EffectivePrice() * float64(item.Quantity)
		itemCount += item.Quantity
	}

	promoDiscount := subtotal * cart.PromoDiscount / 100
	taxable := subtotal - promoDiscount
	tax := taxable * s.taxRatePercent / 100

	return PriceBreakdown{
		ItemCount:     itemCount,
		Subtotal:      subtotal,
		PromoDiscount: promoDiscount,
		Tax:           tax,
		Total:         taxable + tax,
	}
}

// Rounded returns a copy with every amount rounded to cents for display.
func (b PriceBreakdown) Rounded() PriceBreakdown {
	b.Subtotal = round2(b.Subtotal)
	b.PromoDiscount = round2(b.PromoDiscount)
	b.Tax = round2(b.Tax)
	b.Total = round2(b.Total)
	return b
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
