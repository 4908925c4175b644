// internal/models/common.go
package models

// Sort keys accepted by the product listing endpoint
type SortKey string

const (
	SortRelevance    SortKey = "relevance"
	SortPriceLowHigh SortKey = "price-low-high"
	SortPriceHighLow SortKey = "price-high-low"
	SortRating       SortKey = "rating"
	SortNewest       SortKey = "newest"
)

func (s SortKey) Valid() bool {
	switch s {
	case SortRelevance, SortPriceLowHigh, SortPriceHighLow, SortRating, SortNewest:
		return true
	}
	return false
}

type PriceRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// FilterState combines with AND semantics across facets; selections within
// categories and brands combine with OR.
type FilterState struct {
	Categories  []string   `json:"categories"`
	Brands      []string   `json:"brands"`
	PriceRange  PriceRange `json:"price_range"`
	Rating      float64    `json:"rating"`
	SearchQuery string     `json:"search_query"`
}

// Variant options offered on the product detail view. The upstream catalog
// does not carry per-product variants, so every product shares this set.
var (
	VariantColors = []string{"Black", "White", "Blue", "Red", "Gray"}
	VariantSizes  = []string{"XS", "S", "M", "L", "XL", "XXL"}
)
