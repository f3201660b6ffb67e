package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/AlexMobiCraft/FREESPORT-B2B-sub002/internal/http/flash"
	"github.com/AlexMobiCraft/FREESPORT-B2B-sub002/internal/http/middleware"
	"github.com/AlexMobiCraft/FREESPORT-B2B-sub002/internal/http/render"
	"github.com/AlexMobiCraft/FREESPORT-B2B-sub002/internal/modules/cart"
	"github.com/AlexMobiCraft/FREESPORT-B2B-sub002/pkg/view"
)

// CartHandler exposes the cart page and its mutations. Mutations apply
// optimistically in the session store; a rejected mutation comes back
// with success=false and the cart payload already rolled back.
type CartHandler struct {
	carts   *cart.Manager
	flashes *flash.Codec
}

func NewCartHandler(carts *cart.Manager, flashes *flash.Codec) *CartHandler {
	return &CartHandler{carts: carts, flashes: flashes}
}

// Show handles GET /cart. The line collection is refreshed from the
// cart service; on failure the last known lines render with a notice.
func (h *CartHandler) Show(c *gin.Context) {
	st := store(c, h.carts)
	_ = st.Fetch(c.Request.Context())
	render.JSON(c, http.StatusOK, cartPage(st.Snapshot()))
}

type addItemForm struct {
	VariantID int64 `form:"variant_id" json:"variant_id"`
	Qty       int   `form:"qty" json:"qty"`
}

// Add handles POST /cart/items.
func (h *CartHandler) Add(c *gin.Context) {
	var in addItemForm
	if err := c.ShouldBind(&in); err != nil || in.VariantID <= 0 {
		h.invalid(c, "Choose a product variant.")
		return
	}
	st := store(c, h.carts)
	res := st.AddItem(c.Request.Context(), in.VariantID, in.Qty)
	h.respond(c, st, res, "Added to cart.")
}

type updateQtyForm struct {
	Qty int `form:"qty" json:"qty"`
}

// UpdateQuantity handles POST /cart/items/:id.
func (h *CartHandler) UpdateQuantity(c *gin.Context) {
	lineID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		h.invalid(c, "Unknown cart line.")
		return
	}
	var in updateQtyForm
	if err := c.ShouldBind(&in); err != nil {
		h.invalid(c, "Enter a quantity.")
		return
	}
	st := store(c, h.carts)
	res := st.UpdateQuantity(c.Request.Context(), lineID, in.Qty)
	h.respond(c, st, res, "Cart updated.")
}

// Remove handles POST /cart/items/:id/delete.
func (h *CartHandler) Remove(c *gin.Context) {
	lineID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		h.invalid(c, "Unknown cart line.")
		return
	}
	st := store(c, h.carts)
	res := st.RemoveItem(c.Request.Context(), lineID)
	h.respond(c, st, res, "Item removed.")
}

// Clear handles POST /cart/clear.
func (h *CartHandler) Clear(c *gin.Context) {
	st := store(c, h.carts)
	res := st.Clear(c.Request.Context())
	h.respond(c, st, res, "Cart cleared.")
}

type promoForm struct {
	Code  string `form:"code" json:"code"`
	Kind  string `form:"kind" json:"kind"`
	Value int64  `form:"value" json:"value"`
}

// ApplyPromo handles POST /cart/promo.
func (h *CartHandler) ApplyPromo(c *gin.Context) {
	var in promoForm
	if err := c.ShouldBind(&in); err != nil || strings.TrimSpace(in.Code) == "" {
		h.invalid(c, "Enter a promo code.")
		return
	}
	kind := cart.PromoKind(in.Kind)
	if kind != cart.PromoPercent && kind != cart.PromoFixed {
		h.invalid(c, "Unknown promo type.")
		return
	}
	if in.Value < 0 || (kind == cart.PromoPercent && in.Value > 100) {
		h.invalid(c, "Invalid promo value.")
		return
	}
	st := store(c, h.carts)
	st.ApplyPromo(c.Request.Context(), middleware.CartKey(c), cart.Promo{
		Code:  strings.TrimSpace(in.Code),
		Kind:  kind,
		Value: in.Value,
	})
	h.respond(c, st, cart.Result{Success: true}, "Promo code applied.")
}

// RemovePromo handles POST /cart/promo/delete.
func (h *CartHandler) RemovePromo(c *gin.Context) {
	st := store(c, h.carts)
	st.ClearPromo(c.Request.Context(), middleware.CartKey(c))
	h.respond(c, st, cart.Result{Success: true}, "Promo code removed.")
}

// respond renders the mutation outcome together with the current cart
// state. JSON clients always get 200 with the success flag; browsers
// get a redirect to the cart with a flash.
func (h *CartHandler) respond(c *gin.Context, st *cart.Store, res cart.Result, okMsg string) {
	if middleware.WantsJSON(c) {
		render.JSON(c, http.StatusOK, gin.H{
			"success": res.Success,
			"error":   res.Error,
			"cart":    cartPage(st.Snapshot()),
		})
		return
	}
	f := view.Flash{Kind: view.FlashSuccess, Message: okMsg}
	if !res.Success {
		f = view.Flash{Kind: view.FlashError, Message: res.Error}
	}
	render.RedirectWithFlash(c, h.flashes, "/cart", f)
}

func (h *CartHandler) invalid(c *gin.Context, msg string) {
	if middleware.WantsJSON(c) {
		render.JSON(c, http.StatusBadRequest, gin.H{"success": false, "error": msg})
		return
	}
	render.RedirectWithFlash(c, h.flashes, "/cart", view.Flash{Kind: view.FlashError, Message: msg})
}
