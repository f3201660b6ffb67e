package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/AlexMobiCraft/FREESPORT-B2B-sub002/internal/http/flash"
	"github.com/AlexMobiCraft/FREESPORT-B2B-sub002/internal/shared/apperr"
	"github.com/AlexMobiCraft/FREESPORT-B2B-sub002/pkg/view"
)

// WantsJSON reports whether the client asked for a JSON response.
func WantsJSON(c *gin.Context) bool {
	if c.GetHeader("X-Requested-With") == "XMLHttpRequest" {
		return true
	}
	accept := c.GetHeader("Accept")
	return strings.Contains(accept, "application/json")
}

// Fail records err on the context and aborts. The ErrorHandler
// middleware turns it into the response.
func Fail(c *gin.Context, err error) {
	_ = c.Error(err)
	c.Abort()
}

// ErrorHandler renders the first recorded error after the handler chain
// ran. JSON clients get a status plus public message; browser requests
// are sent back where they came from with an error flash.
func ErrorHandler(log *slog.Logger, flashes *flash.Codec) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}
		err := c.Errors[0].Err

		status := apperr.HTTPStatus(err)
		msg := apperr.PublicMessage(err)

		if status >= http.StatusInternalServerError {
			log.LogAttrs(c.Request.Context(), slog.LevelError, "request_failed",
				slog.String("request_id", GetRequestID(c)),
				slog.String("path", c.Request.URL.Path),
				slog.Any("err", err),
			)
		}

		if WantsJSON(c) {
			c.JSON(status, gin.H{"error": msg})
			return
		}

		target := c.Request.Referer()
		if target == "" {
			target = "/"
		}
		if v, encErr := flashes.Encode(view.Flash{Kind: view.FlashError, Message: msg}); encErr == nil {
			c.SetCookie(flashes.CookieName, v, flashes.CookieMaxAge(), "/", "", flashes.Secure, true)
		}
		c.Redirect(http.StatusSeeOther, target)
	}
}
