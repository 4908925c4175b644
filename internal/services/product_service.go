// internal/services/product_service.go
package services

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/eshoplabs/storefront-backend/internal/catalog"
	"github.com/eshoplabs/storefront-backend/internal/models"
	"github.com/eshoplabs/storefront-backend/internal/utils"
)

type ProductService struct {
	client     *catalog.Client
	fetchLimit int
}

type ProductSearchParams struct {
	utils.PaginationParams
	Filters models.FilterState
	Sort    models.SortKey
}

func NewProductService(client *catalog.Client, fetchLimit int) *ProductService {
	return &ProductService{
		client:     client,
		fetchLimit: fetchLimit,
	}
}

// SearchProducts fetches the catalog and applies filter, sort and pagination
// in memory. Returns the visible page plus the total filtered count.
func (s *ProductService) SearchProducts(ctx context.Context, params ProductSearchParams) ([]models.Product, int64, error) {
	products, err := s.client.FetchProducts(ctx, s.fetchLimit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to fetch catalog: %w", err)
	}

	filtered := FilterProducts(products, params.Filters)
	SortProducts(filtered, params.Sort)
	page := utils.PageSlice(filtered, params.Page, params.Limit)

	return page, int64(len(filtered)), nil
}

// GetProduct returns a single product by id.
func (s *ProductService) GetProduct(ctx context.Context, id int) (*models.Product, error) {
	return s.client.FetchProduct(ctx, id)
}

// GetTrendingProducts returns the first limit products from the catalog.
func (s *ProductService) GetTrendingProducts(ctx context.Context, limit int) ([]models.Product, error) {
	return s.client.FetchProducts(ctx, limit)
}

// GetRelatedProducts returns up to limit products excluding the given id.
func (s *ProductService) GetRelatedProducts(ctx context.Context, id, limit int) ([]models.Product, error) {
	products, err := s.client.FetchProducts(ctx, limit+1)
	if err != nil {
		return nil, err
	}

	related := make([]models.Product, 0, limit)
	for _, p := range products {
		if p.ID == id {
			continue
		}
		related = append(related, p)
		if len(related) == limit {
			break
		}
	}

	return related, nil
}

// GetCategories returns the sorted distinct categories in the catalog.
func (s *ProductService) GetCategories(ctx context.Context) ([]string, error) {
	products, err := s.client.FetchProducts(ctx, s.fetchLimit)
	if err != nil {
		return nil, err
	}
	return DistinctCategories(products), nil
}

// GetBrands returns the sorted distinct non-empty brands in the catalog.
func (s *ProductService) GetBrands(ctx context.Context) ([]string, error) {
	products, err := s.client.FetchProducts(ctx, s.fetchLimit)
	if err != nil {
		return nil, err
	}
	return DistinctBrands(products), nil
}

// FilterProducts returns the products satisfying every active filter. Facets
// combine with AND; selections within a facet combine with OR.
func FilterProducts(products []models.Product, filters models.FilterState) []models.Product {
	filtered := make([]models.Product, 0, len(products))
	for _, p := range products {
		if MatchesFilters(p, filters) {
			filtered = append(filtered, p)
		}
	}
	return filtered
}

// MatchesFilters reports whether a single product passes every active filter.
func MatchesFilters(p models.Product, filters models.FilterState) bool {
	if filters.SearchQuery != "" && !matchesSearch(p, filters.SearchQuery) {
		return false
	}

	if len(filters.Categories) > 0 && !containsString(filters.Categories, p.Category) {
		return false
	}

	if len(filters.Brands) > 0 && !containsString(filters.Brands, p.Brand) {
		return false
	}

	if p.Price < filters.PriceRange.Min || p.Price > filters.PriceRange.Max {
		return false
	}

	if filters.Rating > 0 && p.Rating < filters.Rating {
		return false
	}

	return true
}

func matchesSearch(p models.Product, query string) bool {
	q := strings.ToLower(query)

	if strings.Contains(strings.ToLower(p.Title), q) ||
		strings.Contains(strings.ToLower(p.Description), q) ||
		strings.Contains(strings.ToLower(p.Brand), q) ||
		strings.Contains(strings.ToLower(p.Category), q) {
		return true
	}

	for _, tag := range p.Tags {
		if strings.Contains(strings.ToLower(tag), q) {
			return true
		}
	}

	return false
}

func containsString(haystack []string, needle string) bool {
	for _, s := range haystack {
		if s == needle {
			return true
		}
	}
	return false
}

// SortProducts orders products in place by the given key. Sorts are stable so
// ties keep their input order. An unknown key falls back to relevance.
func SortProducts(products []models.Product, key models.SortKey) {
	switch key {
	case models.SortPriceLowHigh:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].Price < products[j].Price
		})
	case models.SortPriceHighLow:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].Price > products[j].Price
		})
	case models.SortRating:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].Rating > products[j].Rating
		})
	case models.SortNewest:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].Meta.CreatedAt.After(products[j].Meta.CreatedAt)
		})
	default:
		sort.SliceStable(products, func(i, j int) bool {
			return RelevanceScore(products[i]) > RelevanceScore(products[j])
		})
	}
}

// RelevanceScore is the default-sort heuristic combining rating, availability
// and discount. Kept exactly as shipped for compatibility.
func RelevanceScore(p models.Product) float64 {
	score := p.Rating * 0.4
	if p.Stock > 0 {
		score += 10
	}
	score += 5 - p.DiscountPercentage*0.1
	return score
}

// DistinctCategories returns the sorted set of categories.
func DistinctCategories(products []models.Product) []string {
	return distinct(products, func(p models.Product) string { return p.Category })
}

// DistinctBrands returns the sorted set of non-empty brands.
func DistinctBrands(products []models.Product) []string {
	return distinct(products, func(p models.Product) string { return p.Brand })
}

func distinct(products []models.Product, field func(models.Product) string) []string {
	seen := make(map[string]struct{}, len(products))
	values := make([]string, 0, len(products))
	for _, p := range products {
		v := field(p)
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		values = append(values, v)
	}
	sort.Strings(values)
	return values
}
