// internal/handlers/cart.go
package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/eshoplabs/storefront-backend/internal/models"
	"github.com/eshoplabs/storefront-backend/internal/services"
	"github.com/eshoplabs/storefront-backend/internal/utils"
)

type CartHandler struct {
	cartService    *services.CartService
	pricingService *services.PricingService
}

// AddCartItemRequest carries the product snapshot taken when the shopper
// confirms color and size. Quantity is not validated here: the store clamps
// it into [1, stock].
type AddCartItemRequest struct {
	ID                 int     `json:"id" validate:"required"`
	Title              string  `json:"title" validate:"required"`
	Price              float64 `json:"price" validate:"gte=0"`
	Image              string  `json:"image"`
	Color              string  `json:"color" validate:"required"`
	Size               string  `json:"size" validate:"required"`
	Quantity           int     `json:"quantity"`
	Stock              int     `json:"stock" validate:"gte=0"`
	Brand              string  `json:"brand"`
	DiscountPercentage float64 `json:"discountPercentage" validate:"gte=0,lte=100"`
}

type UpdateQuantityRequest struct {
	ID       int    `json:"id" validate:"required"`
	Color    string `json:"color" validate:"required"`
	Size     string `json:"size" validate:"required"`
	Quantity int    `json:"quantity"`
}

type ApplyPromoRequest struct {
	Code string `json:"code" validate:"required"`
}

func NewCartHandler(cartService *services.CartService, pricingService *services.PricingService) *CartHandler {
	return &CartHandler{
		cartService:    cartService,
		pricingService: pricingService,
	}
}

// GET /cart
func (h *CartHandler) GetCart(c *gin.Context) {
	sessionID, ok := utils.GetSessionIDFromContext(c)
	if !ok {
		utils.InternalErrorResponse(c, "Missing cart session")
		return
	}

	utils.SuccessResponse(c, h.cartPayload(sessionID))
}

// POST /cart/items
func (h *CartHandler) AddItem(c *gin.Context) {
	sessionID, ok := utils.GetSessionIDFromContext(c)
	if !ok {
		utils.InternalErrorResponse(c, "Missing cart session")
		return
	}

	var req AddCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid input", err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	h.cartService.AddToCart(sessionID, models.CartItem{
		ID:                 req.ID,
		Title:              req.Title,
		Price:              req.Price,
		Image:              req.Image,
		Color:              req.Color,
		Size:               req.Size,
		Quantity:           req.Quantity,
		Stock:              req.Stock,
		Brand:              req.Brand,
		DiscountPercentage: req.DiscountPercentage,
	})

	utils.CreatedResponse(c, h.cartPayload(sessionID))
}

// PUT /cart/items
func (h *CartHandler) UpdateItem(c *gin.Context) {
	sessionID, ok := utils.GetSessionIDFromContext(c)
	if !ok {
		utils.InternalErrorResponse(c, "Missing cart session")
		return
	}

	var req UpdateQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid input", err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	h.cartService.UpdateQuantity(sessionID, req.ID, req.Color, req.Size, req.Quantity)

	utils.SuccessResponse(c, h.cartPayload(sessionID))
}

// DELETE /cart/items?id=&color=&size=
func (h *CartHandler) RemoveItem(c *gin.Context) {
	sessionID, ok := utils.GetSessionIDFromContext(c)
	if !ok {
		utils.InternalErrorResponse(c, "Missing cart session")
		return
	}

	id, err := strconv.Atoi(c.Query("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid product ID", nil)
		return
	}

	h.cartService.RemoveFromCart(sessionID, id, c.Query("color"), c.Query("size"))

	utils.SuccessResponse(c, h.cartPayload(sessionID))
}

// DELETE /cart
func (h *CartHandler) ClearCart(c *gin.Context) {
	sessionID, ok := utils.GetSessionIDFromContext(c)
	if !ok {
		utils.InternalErrorResponse(c, "Missing cart session")
		return
	}

	h.cartService.ClearCart(sessionID)

	utils.SuccessResponse(c, h.cartPayload(sessionID))
}

// POST /cart/promo
func (h *CartHandler) ApplyPromoCode(c *gin.Context) {
	sessionID, ok := utils.GetSessionIDFromContext(c)
	if !ok {
		utils.InternalErrorResponse(c, "Missing cart session")
		return
	}

	var req ApplyPromoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid input", err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	if !h.cartService.ApplyPromoCode(sessionID, req.Code) {
		utils.InvalidPromoCodeResponse(c)
		return
	}

	utils.SuccessResponse(c, h.cartPayload(sessionID))
}

// DELETE /cart/promo
func (h *CartHandler) RemovePromoCode(c *gin.Context) {
	sessionID, ok := utils.GetSessionIDFromContext(c)
	if !ok {
		utils.InternalErrorResponse(c, "Missing cart session")
		return
	}

	h.cartService.RemovePromoCode(sessionID)

	utils.SuccessResponse(c, h.cartPayload(sessionID))
}

func (h *CartHandler) cartPayload(sessionID string) gin.H {
	cart := h.cartService.GetCart(sessionID)
	summary := h.pricingService.Calculate(cart).Rounded()

	return gin.H{
		"cart":    cart,
		"summary": summary,
	}
}
