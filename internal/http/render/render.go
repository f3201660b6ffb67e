// Package render holds the response helpers shared by the handlers.
package render

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/AlexMobiCraft/FREESPORT-B2B-sub002/internal/http/flash"
	"github.com/AlexMobiCraft/FREESPORT-B2B-sub002/pkg/view"
)

// JSON writes a JSON payload.
func JSON(c *gin.Context, status int, payload any) {
	c.JSON(status, payload)
}

// RedirectWithFlash sets a one-shot flash cookie and redirects.
func RedirectWithFlash(c *gin.Context, codec *flash.Codec, target string, f view.Flash) {
	if v, err := codec.Encode(f); err == nil {
		c.SetCookie(codec.CookieName, v, codec.CookieMaxAge(), "/", "", codec.Secure, true)
	}
	c.Redirect(http.StatusSeeOther, target)
}
