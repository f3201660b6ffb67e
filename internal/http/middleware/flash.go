package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/AlexMobiCraft/FREESPORT-B2B-sub002/internal/http/flash"
	"github.com/AlexMobiCraft/FREESPORT-B2B-sub002/pkg/view"
)

const FlashKey = "flash"

// Flash pops a pending flash cookie into the context so the page being
// rendered can show it once. The cookie is cleared either way.
func Flash(codec *flash.Codec) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, err := c.Cookie(codec.CookieName)
		if err == nil && raw != "" {
			if f, decErr := codec.Decode(raw); decErr == nil {
				c.Set(FlashKey, f)
			}
			c.SetCookie(codec.CookieName, "", -1, "/", "", codec.Secure, true)
		}
		c.Next()
	}
}

// GetFlash returns the flash popped for this request, if any.
func GetFlash(c *gin.Context) *view.Flash {
	v, ok := c.Get(FlashKey)
	if !ok {
		return nil
	}
	f, ok := v.(*view.Flash)
	if !ok {
		return nil
	}
	return f
}
