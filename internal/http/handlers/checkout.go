package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/AlexMobiCraft/FREESPORT-B2B-sub002/internal/http/flash"
	"github.com/AlexMobiCraft/FREESPORT-B2B-sub002/internal/http/middleware"
	"github.com/AlexMobiCraft/FREESPORT-B2B-sub002/internal/http/render"
	"github.com/AlexMobiCraft/FREESPORT-B2B-sub002/internal/http/validation"
	"github.com/AlexMobiCraft/FREESPORT-B2B-sub002/internal/modules/cart"
	"github.com/AlexMobiCraft/FREESPORT-B2B-sub002/internal/modules/checkout"
	"github.com/AlexMobiCraft/FREESPORT-B2B-sub002/internal/modules/notify"
	"github.com/AlexMobiCraft/FREESPORT-B2B-sub002/internal/shared/apperr"
	"github.com/AlexMobiCraft/FREESPORT-B2B-sub002/pkg/view"
)

// CheckoutHandler submits the cart as an order.
type CheckoutHandler struct {
	checkout *checkout.Service
	carts    *cart.Manager
	flashes  *flash.Codec
	notify   *notify.Service
}

func NewCheckoutHandler(svc *checkout.Service, carts *cart.Manager, flashes *flash.Codec, notifier *notify.Service) *CheckoutHandler {
	return &CheckoutHandler{checkout: svc, carts: carts, flashes: flashes, notify: notifier}
}

// Show handles GET /checkout: the order review with the current cart.
func (h *CheckoutHandler) Show(c *gin.Context) {
	st := store(c, h.carts)
	_ = st.Fetch(c.Request.Context())
	render.JSON(c, http.StatusOK, cartPage(st.Snapshot()))
}

type checkoutForm struct {
	DeliveryAddr string `form:"delivery_address" json:"delivery_address" validate:"required,min=10,max=500"`
	Comment      string `form:"comment" json:"comment" validate:"max=1000"`
}

// Submit handles POST /checkout.
func (h *CheckoutHandler) Submit(c *gin.Context) {
	var in checkoutForm
	if err := c.ShouldBind(&in); err != nil {
		middleware.Fail(c, apperr.InvalidErr("Check the form and try again.", nil))
		return
	}
	if fields := validation.Struct(in); fields != nil {
		middleware.Fail(c, apperr.InvalidErr("Check the form and try again.", fields))
		return
	}

	st := store(c, h.carts)
	conf, err := h.checkout.Submit(c.Request.Context(), middleware.BearerToken(c), st, checkout.Details{
		DeliveryAddr: in.DeliveryAddr,
		Comment:      in.Comment,
	})
	if err != nil {
		if errors.Is(err, checkout.ErrCartEmpty) {
			middleware.Fail(c, apperr.InvalidErr("Your cart is empty.", nil))
			return
		}
		middleware.Fail(c, err)
		return
	}

	if sess := middleware.CurrentSession(c); sess != nil && h.notify != nil {
		h.notify.OrderPlaced(c.Request.Context(), sess.Email, sess.FirstName,
			conf.Number, view.MoneyFromCents(conf.TotalCents, currency))
	}

	confirmation := view.OrderConfirmation{
		OrderID: conf.OrderID,
		Number:  conf.Number,
		Total:   view.MoneyFromCents(conf.TotalCents, currency),
	}
	if middleware.WantsJSON(c) {
		render.JSON(c, http.StatusCreated, confirmation)
		return
	}
	render.RedirectWithFlash(c, h.flashes, "/account/orders", view.Flash{
		Kind:    view.FlashSuccess,
		Message: "Order " + conf.Number + " placed.",
	})
}
