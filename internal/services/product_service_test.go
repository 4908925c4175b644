// internal/services/product_service_test.go
package services_test

import (
	"context"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eshoplabs/storefront-backend/internal/catalog"
	"github.com/eshoplabs/storefront-backend/internal/config"
	"github.com/eshoplabs/storefront-backend/internal/models"
	"github.com/eshoplabs/storefront-backend/internal/services"
	"github.com/eshoplabs/storefront-backend/internal/utils"
)

func created(value string) models.ProductMeta {
	t, _ := time.Parse(time.RFC3339, value)
	return models.ProductMeta{CreatedAt: t}
}

func sampleProducts() []models.Product {
	return []models.Product{
		{
			ID: 1, Title: "iPhone 15", Description: "Latest Apple smartphone",
			Category: "smartphones", Brand: "Apple", Price: 899,
			DiscountPercentage: 10, Rating: 4.5, Stock: 12,
			Tags: []string{"electronics", "phone"}, Meta: created("2024-03-01T00:00:00Z"),
		},
		{
			ID: 2, Title: "MacBook Pro", Description: "Powerful laptop for work",
			Category: "laptops", Brand: "Apple", Price: 1499,
			DiscountPercentage: 5, Rating: 4.8, Stock: 0,
			Tags: []string{"electronics", "work"}, Meta: created("2024-05-10T00:00:00Z"),
		},
		{
			ID: 3, Title: "Casual Shirt", Description: "Comfortable cotton shirt",
			Category: "mens-shirts", Brand: "", Price: 19.99,
			DiscountPercentage: 0, Rating: 3.9, Stock: 50,
			Tags: []string{"clothing", "casual"}, Meta: created("2023-11-20T00:00:00Z"),
		},
		{
			ID: 4, Title: "Essence Mascara", Description: "Lash volumizing mascara",
			Category: "beauty", Brand: "Essence", Price: 9.99,
			DiscountPercentage: 20, Rating: 2.56, Stock: 99,
			Tags: []string{"beauty", "mascara"}, Meta: created("2024-01-05T00:00:00Z"),
		},
	}
}

func noFilters() models.FilterState {
	return models.FilterState{
		PriceRange: models.PriceRange{Min: 0, Max: math.MaxFloat64},
	}
}

func productIDs(products []models.Product) []int {
	ids := make([]int, len(products))
	for i, p := range products {
		ids[i] = p.ID
	}
	return ids
}

func TestFilterSearchMatchesAcrossFields(t *testing.T) {
	products := sampleProducts()

	tests := []struct {
		name  string
		query string
		want  []int
	}{
		{"title match", "iphone", []int{1}},
		{"description match", "cotton", []int{3}},
		{"brand match case-insensitive", "ESSENCE", []int{4}},
		{"category match", "laptop", []int{2}},
		{"tag match", "casual", []int{3}},
		{"no match", "spaceship", []int{}},
		{"empty query matches all", "", []int{1, 2, 3, 4}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			filters := noFilters()
			filters.SearchQuery = tt.query
			got := services.FilterProducts(products, filters)
			assert.Equal(t, tt.want, productIDs(got))
		})
	}
}

func TestFilterFacetsCombineWithAnd(t *testing.T) {
	products := sampleProducts()

	filters := noFilters()
	filters.Categories = []string{"smartphones", "laptops"}
	filters.Brands = []string{"Apple"}
	filters.Rating = 4.6

	got := services.FilterProducts(products, filters)
	assert.Equal(t, []int{2}, productIDs(got))
}

func TestFilterPriceRangeIsInclusive(t *testing.T) {
	products := sampleProducts()

	filters := noFilters()
	filters.PriceRange = models.PriceRange{Min: 9.99, Max: 19.99}

	got := services.FilterProducts(products, filters)
	assert.Equal(t, []int{3, 4}, productIDs(got))
}

func TestFilterRatingZeroMeansNoFilter(t *testing.T) {
	products := sampleProducts()

	filters := noFilters()
	filters.Rating = 0

	got := services.FilterProducts(products, filters)
	assert.Len(t, got, len(products))
}

// Soundness and completeness: every product in the result passes the
// predicate, every product outside it fails.
func TestFilterSoundAndComplete(t *testing.T) {
	products := sampleProducts()

	filters := noFilters()
	filters.SearchQuery = "e"
	filters.Rating = 3
	filters.PriceRange = models.PriceRange{Min: 10, Max: 1500}

	included := make(map[int]bool)
	for _, p := range services.FilterProducts(products, filters) {
		included[p.ID] = true
		assert.True(t, services.MatchesFilters(p, filters))
	}

	for _, p := range products {
		if !included[p.ID] {
			assert.False(t, services.MatchesFilters(p, filters))
		}
	}
}

func TestSortPriceLowHighIsNonDecreasingAndIdempotent(t *testing.T) {
	products := sampleProducts()

	services.SortProducts(products, models.SortPriceLowHigh)
	for i := 1; i < len(products); i++ {
		assert.LessOrEqual(t, products[i-1].Price, products[i].Price)
	}

	first := productIDs(products)
	services.SortProducts(products, models.SortPriceLowHigh)
	assert.Equal(t, first, productIDs(products))
}

func TestSortPriceHighLow(t *testing.T) {
	products := sampleProducts()
	services.SortProducts(products, models.SortPriceHighLow)
	assert.Equal(t, []int{2, 1, 3, 4}, productIDs(products))
}

func TestSortRatingDescending(t *testing.T) {
	products := sampleProducts()
	services.SortProducts(products, models.SortRating)
	assert.Equal(t, []int{2, 1, 3, 4}, productIDs(products))
}

func TestSortNewestByCreatedAt(t *testing.T) {
	products := sampleProducts()
	services.SortProducts(products, models.SortNewest)
	assert.Equal(t, []int{2, 1, 4, 3}, productIDs(products))
}

func TestRelevanceScoreFormula(t *testing.T) {
	p := models.Product{Rating: 4.5, Stock: 12, DiscountPercentage: 10}
	// 4.5*0.4 + 10 + (5 - 10*0.1)
	assert.InDelta(t, 15.8, services.RelevanceScore(p), 1e-9)

	outOfStock := models.Product{Rating: 4.5, Stock: 0, DiscountPercentage: 10}
	assert.InDelta(t, 5.8, services.RelevanceScore(outOfStock), 1e-9)
}

func TestRelevanceSortIsStableOnTies(t *testing.T) {
	// Identical scores keep input order
	products := []models.Product{
		{ID: 10, Rating: 4, Stock: 5, DiscountPercentage: 0},
		{ID: 11, Rating: 4, Stock: 5, DiscountPercentage: 0},
		{ID: 12, Rating: 5, Stock: 5, DiscountPercentage: 0},
	}

	services.SortProducts(products, models.SortRelevance)
	assert.Equal(t, []int{12, 10, 11}, productIDs(products))
}

func TestUnknownSortKeyFallsBackToRelevance(t *testing.T) {
	byUnknown := sampleProducts()
	byRelevance := sampleProducts()

	services.SortProducts(byUnknown, models.SortKey("bogus"))
	services.SortProducts(byRelevance, models.SortRelevance)

	assert.Equal(t, productIDs(byRelevance), productIDs(byUnknown))
}

func TestDistinctFacets(t *testing.T) {
	products := sampleProducts()

	assert.Equal(t, []string{"beauty", "laptops", "mens-shirts", "smartphones"},
		services.DistinctCategories(products))

	// Empty brands are excluded, result is sorted
	assert.Equal(t, []string{"Apple", "Essence"}, services.DistinctBrands(products))
}

// Concatenating every page must reproduce the full list exactly.
func TestPaginationPartitionsTheList(t *testing.T) {
	products := sampleProducts()
	services.SortProducts(products, models.SortPriceLowHigh)

	limit := 3
	totalPages := int(math.Ceil(float64(len(products)) / float64(limit)))

	var combined []models.Product
	for page := 1; page <= totalPages; page++ {
		combined = append(combined, utils.PageSlice(products, page, limit)...)
	}

	assert.Equal(t, productIDs(products), productIDs(combined))
	assert.Empty(t, utils.PageSlice(products, totalPages+1, limit))
}

func newUpstream(t *testing.T, handler http.HandlerFunc) (*services.ProductService, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client := catalog.NewClient(config.CatalogConfig{
		BaseURL:        server.URL,
		FetchLimit:     100,
		RequestTimeout: 5,
	})

	return services.NewProductService(client, 100), server
}

func TestSearchProductsAgainstUpstream(t *testing.T) {
	service, _ := newUpstream(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"products": [
				{"id": 1, "title": "iPhone 15", "category": "smartphones", "brand": "Apple", "price": 899, "rating": 4.5, "stock": 12, "tags": ["electronics"]},
				{"id": 2, "title": "Casual Shirt", "category": "mens-shirts", "price": 19.99, "rating": 3.9, "stock": 50, "tags": ["clothing"]}
			],
			"total": 2, "skip": 0, "limit": 100
		}`))
	})

	params := services.ProductSearchParams{
		PaginationParams: utils.PaginationParams{Page: 1, Limit: 12},
		Filters:          noFilters(),
		Sort:             models.SortRelevance,
	}
	params.Filters.SearchQuery = "shirt"

	products, total, err := service.SearchProducts(context.Background(), params)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, products, 1)
	assert.Equal(t, 2, products[0].ID)
}

func TestSearchProductsUpstreamFailure(t *testing.T) {
	service, _ := newUpstream(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	params := services.ProductSearchParams{
		PaginationParams: utils.PaginationParams{Page: 1, Limit: 12},
		Filters:          noFilters(),
	}

	_, _, err := service.SearchProducts(context.Background(), params)
	assert.Error(t, err)
}

func TestGetRelatedProductsExcludesSelf(t *testing.T) {
	service, _ := newUpstream(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"products": [
				{"id": 1, "title": "A"}, {"id": 2, "title": "B"}, {"id": 3, "title": "C"}
			],
			"total": 3, "skip": 0, "limit": 3
		}`))
	})

	related, err := service.GetRelatedProducts(context.Background(), 2, 2)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 3}, productIDs(related))
}
