// internal/models/product.go
package models

import "time"

// Product mirrors the upstream catalog API shape. Read-only on our side.
type Product struct {
	ID                 int         `json:"id"`
	Title              string      `json:"title"`
	Description        string      `json:"description"`
	Category           string      `json:"category"`
	Brand              string      `json:"brand,omitempty"`
	Price              float64     `json:"price"`
	DiscountPercentage float64     `json:"discountPercentage"`
	Rating             float64     `json:"rating"`
	Stock              int         `json:"stock"`
	Tags               []string    `json:"tags"`
	Thumbnail          string      `json:"thumbnail"`
	Images             []string    `json:"images"`
	Meta               ProductMeta `json:"meta"`
}

type ProductMeta struct {
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ProductList is the upstream list payload.
type ProductList struct {
	Products []Product `json:"products"`
	Total    int       `json:"total"`
	Skip     int       `json:"skip"`
	Limit    int       `json:"limit"`
}

// EffectivePrice applies the product-level discount when one is set.
func (p Product) EffectivePrice() float64 {
	if p.DiscountPercentage > 0 {
		return p.Price - (p.Price * p.DiscountPercentage / 100)
	}
	return p.Price
}

func (p Product) InStock() bool {
	return p.Stock > 0
}
