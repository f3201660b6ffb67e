package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/AlexMobiCraft/FREESPORT-B2B-sub002/internal/modules/cart"
)

const CartCountKey = "cart_count"

// CartCount exposes the badge count for the header on every page. It
// peeks at the in-memory store only; page loads never allocate a store
// or talk to the cart service.
func CartCount(carts *cart.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(CartCountKey, carts.Peek(CartKey(c)))
		c.Next()
	}
}

// GetCartCount returns the badge count set by CartCount.
func GetCartCount(c *gin.Context) int {
	return c.GetInt(CartCountKey)
}
