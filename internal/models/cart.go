// internal/models/cart.go
package models

import "strings"

// CartItem is a cart line. Lines are keyed by (id, color, size); the same
// product with a different color or size is a distinct line. Price, discount
// and stock are snapshots taken when the item was added.
type CartItem struct {
	ID                 int     `json:"id"`
	Title              string  `json:"title"`
	Price              float64 `json:"price"`
	Image              string  `json:"image"`
	Color              string  `json:"color"`
	Size               string  `json:"size"`
	Quantity           int     `json:"quantity"`
	Stock              int     `json:"stock"`
	Brand              string  `json:"brand,omitempty"`
	DiscountPercentage float64 `json:"discountPercentage,omitempty"`
}

// Matches reports whether the line has the given composite key.
func (i CartItem) Matches(id int, color, size string) bool {
	return i.ID == id && i.Color == color && i.Size == size
}

// EffectivePrice applies the line's snapshot discount when one is set.
func (i CartItem) EffectivePrice() float64 {
	if i.DiscountPercentage > 0 {
		return i.Price - (i.Price * i.DiscountPercentage / 100)
	}
	return i.Price
}

// CartState holds the cart lines in insertion order plus the active promo
// code. PromoCode is non-empty exactly when PromoDiscount > 0.
type CartState struct {
	Items         []CartItem `json:"items"`
	PromoCode     string     `json:"promo_code"`
	PromoDiscount float64    `json:"promo_discount"`
}

// PromoCodes maps a code to its flat percentage discount. Codes are stored
// upper-cased; lookups go through LookupPromoCode.
var PromoCodes = map[string]float64{
	"SAVE10":    10,
	"WELCOME20": 20,
	"SUMMER15":  15,
	"FIRST25":   25,
}

// LookupPromoCode resolves a code case-insensitively. Returns the normalized
// code and its discount, or ok=false for an unknown code.
func LookupPromoCode(code string) (string, float64, bool) {
	normalized := strings.ToUpper(code)
	discount, ok := PromoCodes[normalized]
	return normalized, discount, ok
}
