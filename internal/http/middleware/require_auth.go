package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/AlexMobiCraft/FREESPORT-B2B-sub002/internal/http/flash"
	"github.com/AlexMobiCraft/FREESPORT-B2B-sub002/pkg/view"
)

// RequireAuth guards routes that need a signed-in visitor. Browser
// requests are bounced to the login page with a notice; JSON clients
// get a 401.
func RequireAuth(flashes *flash.Codec) gin.HandlerFunc {
	return func(c *gin.Context) {
		if CurrentSession(c) != nil {
			c.Next()
			return
		}
		if WantsJSON(c) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Sign in to continue."})
			return
		}
		if v, err := flashes.Encode(view.Flash{Kind: view.FlashWarning, Message: "Sign in to continue."}); err == nil {
			c.SetCookie(flashes.CookieName, v, flashes.CookieMaxAge(), "/", "", flashes.Secure, true)
		}
		c.Redirect(http.StatusSeeOther, "/login?next="+c.Request.URL.Path)
		c.Abort()
	}
}
