package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/AlexMobiCraft/FREESPORT-B2B-sub002/internal/http/flash"
	"github.com/AlexMobiCraft/FREESPORT-B2B-sub002/internal/http/middleware"
	"github.com/AlexMobiCraft/FREESPORT-B2B-sub002/internal/http/render"
	"github.com/AlexMobiCraft/FREESPORT-B2B-sub002/internal/modules/favorites"
	"github.com/AlexMobiCraft/FREESPORT-B2B-sub002/internal/shared/apperr"
	"github.com/AlexMobiCraft/FREESPORT-B2B-sub002/pkg/view"
)

// FavoritesHandler manages the signed-in visitor's saved products.
type FavoritesHandler struct {
	favorites *favorites.Repo
	flashes   *flash.Codec
}

func NewFavoritesHandler(favs *favorites.Repo, flashes *flash.Codec) *FavoritesHandler {
	return &FavoritesHandler{favorites: favs, flashes: flashes}
}

// List handles GET /favorites.
func (h *FavoritesHandler) List(c *gin.Context) {
	sess := middleware.CurrentSession(c)
	ids, err := h.favorites.List(c.Request.Context(), sess.AccountID)
	if err != nil {
		middleware.Fail(c, apperr.Wrap(err))
		return
	}
	render.JSON(c, http.StatusOK, gin.H{"product_ids": ids})
}

// Add handles POST /favorites/:productID.
func (h *FavoritesHandler) Add(c *gin.Context) {
	h.mutate(c, "Saved to favorites.", h.favorites.Add)
}

// Remove handles POST /favorites/:productID/delete.
func (h *FavoritesHandler) Remove(c *gin.Context) {
	h.mutate(c, "Removed from favorites.", h.favorites.Remove)
}

func (h *FavoritesHandler) mutate(c *gin.Context, okMsg string, op func(ctx context.Context, accountID, productID int64) error) {
	productID, err := strconv.ParseInt(c.Param("productID"), 10, 64)
	if err != nil || productID <= 0 {
		middleware.Fail(c, apperr.InvalidErr("Unknown product.", nil))
		return
	}
	sess := middleware.CurrentSession(c)
	if err := op(c.Request.Context(), sess.AccountID, productID); err != nil {
		middleware.Fail(c, apperr.Wrap(err))
		return
	}
	if middleware.WantsJSON(c) {
		render.JSON(c, http.StatusOK, gin.H{"ok": true})
		return
	}
	render.RedirectWithFlash(c, h.flashes, "/favorites", view.Flash{Kind: view.FlashSuccess, Message: okMsg})
}
