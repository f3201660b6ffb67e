package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/AlexMobiCraft/FREESPORT-B2B-sub002/internal/http/middleware"
	"github.com/AlexMobiCraft/FREESPORT-B2B-sub002/internal/http/render"
	"github.com/AlexMobiCraft/FREESPORT-B2B-sub002/internal/modules/blog"
	"github.com/AlexMobiCraft/FREESPORT-B2B-sub002/internal/shared/apperr"
)

// HomeHandler serves the landing page: latest posts plus the header
// state every page shares (cart badge, flash, viewer).
type HomeHandler struct {
	blog *blog.Repo
}

func NewHomeHandler(repo *blog.Repo) *HomeHandler {
	return &HomeHandler{blog: repo}
}

// Show handles GET /.
func (h *HomeHandler) Show(c *gin.Context) {
	posts, err := h.blog.ListPublished(c.Request.Context(), 3, 0)
	if err != nil {
		middleware.Fail(c, apperr.Wrap(err))
		return
	}

	payload := gin.H{
		"posts":      posts,
		"cart_count": middleware.GetCartCount(c),
	}
	if f := middleware.GetFlash(c); f != nil {
		payload["flash"] = f
	}
	if sess := middleware.CurrentSession(c); sess != nil {
		payload["viewer"] = gin.H{
			"email": sess.Email,
			"name":  sess.FirstName,
			"role":  sess.Role,
		}
	}
	render.JSON(c, http.StatusOK, payload)
}
