// internal/services/cart_service.go
package services

import (
	"sync"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/eshoplabs/storefront-backend/internal/models"
)

// CartService holds one in-memory cart per session. Carts live only for the
// lifetime of the process; nothing is persisted.
//
// Every mutation is a total function: missing lines are no-ops and
// out-of-range quantities are clamped, never rejected.
type CartService struct {
	mtx   sync.RWMutex
	carts map[string]*models.CartState
}

func NewCartService() *CartService {
	return &CartService{
		carts: make(map[string]*models.CartState),
	}
}

// NewSessionID mints an opaque session identifier for a new cart.
func (s *CartService) NewSessionID() string {
	return uuid.NewString()
}

// GetCart returns a copy of the session's cart state.
func (s *CartService) GetCart(sessionID string) models.CartState {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	cart, ok := s.carts[sessionID]
	if !ok {
		return models.CartState{Items: []models.CartItem{}}
	}

	items := make([]models.CartItem, len(cart.Items))
	copy(items, cart.Items)

	return models.CartState{
		Items:         items,
		PromoCode:     cart.PromoCode,
		PromoDiscount: cart.PromoDiscount,
	}
}

// AddToCart merges the item into an existing line with the same
// (id, color, size) key, capping the summed quantity at the line's stock
// snapshot. A new key appends a line, preserving insertion order.
func (s *CartService) AddToCart(sessionID string, item models.CartItem) {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	cart := s.cart(sessionID)

	for i := range cart.Items {
		line := &cart.Items[i]
		if line.Matches(item.ID, item.Color, item.Size) {
			line.Quantity = min(line.Quantity+item.Quantity, line.Stock)
			return
		}
	}

	item.Quantity = clampQuantity(item.Quantity, item.Stock)
	cart.Items = append(cart.Items, item)

	logrus.WithFields(logrus.Fields{
		"product_id": item.ID,
		"color":      item.Color,
		"size":       item.Size,
	}).Debug("Cart line added")
}

// RemoveFromCart deletes the matching line. No-op when absent.
func (s *CartService) RemoveFromCart(sessionID string, id int, color, size string) {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	cart := s.cart(sessionID)

	for i := range cart.Items {
		if cart.Items[i].Matches(id, color, size) {
			cart.Items = append(cart.Items[:i], cart.Items[i+1:]...)
			return
		}
	}
}

// UpdateQuantity sets the matching line's quantity, clamped to [1, stock].
// No-op when the line is absent.
func (s *CartService) UpdateQuantity(sessionID string, id int, color, size string, quantity int) {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	cart := s.cart(sessionID)

	for i := range cart.Items {
		line := &cart.Items[i]
		if line.Matches(id, color, size) {
			line.Quantity = clampQuantity(quantity, line.Stock)
			return
		}
	}
}

// ClearCart empties the line list and drops any active promo.
func (s *CartService) ClearCart(sessionID string) {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	cart := s.cart(sessionID)
	cart.Items = cart.Items[:0]
	cart.PromoCode = ""
	cart.PromoDiscount = 0
}

// ApplyPromoCode activates a known code (case-insensitive) and reports
// whether it was recognized. Unknown codes leave the cart untouched.
func (s *CartService) ApplyPromoCode(sessionID, code string) bool {
	normalized, discount, ok := models.LookupPromoCode(code)
	if !ok {
		return false
	}

	s.mtx.Lock()
	defer s.mtx.Unlock()

	cart := s.cart(sessionID)
	cart.PromoCode = normalized
	cart.PromoDiscount = discount
	return true
}

// RemovePromoCode resets the promo fields.
func (s *CartService) RemovePromoCode(sessionID string) {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	cart := s.cart(sessionID)
	cart.PromoCode = ""
	cart.PromoDiscount = 0
}

// cart returns the session's cart, creating it on first use. Callers must
// hold the write lock.
func (s *CartService) cart(sessionID string) *models.CartState {
	cart, ok := s.carts[sessionID]
	if !ok {
		cart = &models.CartState{Items: []models.CartItem{}}
		s.carts[sessionID] = cart
	}
	return cart
}

// clampQuantity mirrors the storefront rule: quantity always lands in
// [1, stock], with the stock cap winning when the two conflict.
func clampQuantity(quantity, stock int) int {
	return min(max(quantity, 1), stock)
}
