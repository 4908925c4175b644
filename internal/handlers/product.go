// internal/handlers/product.go
package handlers

import (
	"errors"
	"math"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/eshoplabs/storefront-backend/internal/catalog"
	"github.com/eshoplabs/storefront-backend/internal/models"
	"github.com/eshoplabs/storefront-backend/internal/services"
	"github.com/eshoplabs/storefront-backend/internal/utils"
)

type ProductHandler struct {
	productService *services.ProductService
}

func NewProductHandler(productService *services.ProductService) *ProductHandler {
	return &ProductHandler{
		productService: productService,
	}
}

// GET /products
func (h *ProductHandler) GetProducts(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	sortKey := models.SortKey(c.DefaultQuery("sort", string(models.SortRelevance)))
	if !sortKey.Valid() {
		sortKey = models.SortRelevance
	}

	searchParams := services.ProductSearchParams{
		PaginationParams: params,
		Filters:          parseFilters(c),
		Sort:             sortKey,
	}

	products, total, err := h.productService.SearchProducts(c.Request.Context(), searchParams)
	if err != nil {
		utils.UpstreamErrorResponse(c, "Failed to fetch products")
		return
	}

	result := utils.CreatePaginationResult(products, total, params)
	utils.PaginatedResponse(c, result)
}

// GET /products/:id
func (h *ProductHandler) GetProduct(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid product ID", nil)
		return
	}

	product, err := h.productService.GetProduct(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			utils.NotFoundResponse(c, "Product")
			return
		}
		utils.UpstreamErrorResponse(c, "Failed to fetch product")
		return
	}

	utils.SuccessResponse(c, gin.H{
		"product": product,
		"variants": gin.H{
			"colors": models.VariantColors,
			"sizes":  models.VariantSizes,
		},
	})
}

// GET /products/trending
func (h *ProductHandler) GetTrendingProducts(c *gin.Context) {
	limit := parseLimit(c, 8)

	products, err := h.productService.GetTrendingProducts(c.Request.Context(), limit)
	if err != nil {
		utils.UpstreamErrorResponse(c, "Failed to fetch products")
		return
	}

	utils.SuccessResponse(c, gin.H{
		"products": products,
	})
}

// GET /products/:id/related
func (h *ProductHandler) GetRelatedProducts(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid product ID", nil)
		return
	}

	limit := parseLimit(c, 8)

	products, err := h.productService.GetRelatedProducts(c.Request.Context(), id, limit)
	if err != nil {
		utils.UpstreamErrorResponse(c, "Failed to fetch products")
		return
	}

	utils.SuccessResponse(c, gin.H{
		"products": products,
	})
}

// GET /categories
func (h *ProductHandler) GetCategories(c *gin.Context) {
	categories, err := h.productService.GetCategories(c.Request.Context())
	if err != nil {
		utils.UpstreamErrorResponse(c, "Failed to fetch categories")
		return
	}

	utils.SuccessResponse(c, gin.H{
		"categories": categories,
	})
}

// GET /brands
func (h *ProductHandler) GetBrands(c *gin.Context) {
	brands, err := h.productService.GetBrands(c.Request.Context())
	if err != nil {
		utils.UpstreamErrorResponse(c, "Failed to fetch brands")
		return
	}

	utils.SuccessResponse(c, gin.H{
		"brands": brands,
	})
}

func parseFilters(c *gin.Context) models.FilterState {
	filters := models.FilterState{
		SearchQuery: c.Query("search"),
		PriceRange: models.PriceRange{
			Min: 0,
			Max: math.MaxFloat64,
		},
	}

	if categories := c.Query("categories"); categories != "" {
		filters.Categories = strings.Split(categories, ",")
	}

	if brands := c.Query("brands"); brands != "" {
		filters.Brands = strings.Split(brands, ",")
	}

	if priceMinStr := c.Query("price_min"); priceMinStr != "" {
		if priceMin, err := strconv.ParseFloat(priceMinStr, 64); err == nil {
			filters.PriceRange.Min = priceMin
		}
	}

	if priceMaxStr := c.Query("price_max"); priceMaxStr != "" {
		if priceMax, err := strconv.ParseFloat(priceMaxStr, 64); err == nil {
			filters.PriceRange.Max = priceMax
		}
	}

	if ratingStr := c.Query("rating"); ratingStr != "" {
		if rating, err := strconv.ParseFloat(ratingStr, 64); err == nil {
			filters.Rating = rating
		}
	}

	return filters
}

func parseLimit(c *gin.Context, defaultLimit int) int {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(defaultLimit)))
	if err != nil || limit < 1 || limit > 50 {
		return defaultLimit
	}
	return limit
}
