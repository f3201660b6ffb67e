package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/AlexMobiCraft/FREESPORT-B2B-sub002/internal/http/middleware"
	"github.com/AlexMobiCraft/FREESPORT-B2B-sub002/internal/http/render"
	"github.com/AlexMobiCraft/FREESPORT-B2B-sub002/internal/modules/checkout"
	"github.com/AlexMobiCraft/FREESPORT-B2B-sub002/pkg/view"
)

// OrdersHandler serves the account order history.
type OrdersHandler struct {
	checkout *checkout.Service
}

func NewOrdersHandler(svc *checkout.Service) *OrdersHandler {
	return &OrdersHandler{checkout: svc}
}

const ordersPageSize = 20

// List handles GET /account/orders.
func (h *OrdersHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.Query("page"))
	if page < 1 {
		page = 1
	}

	hist, err := h.checkout.History(c.Request.Context(), middleware.BearerToken(c), page, ordersPageSize)
	if err != nil {
		middleware.Fail(c, err)
		return
	}

	out := view.OrdersPage{Total: hist.Total, Page: page}
	for _, it := range hist.Items {
		out.Orders = append(out.Orders, view.OrderRow{
			OrderID:   it.OrderID,
			Number:    it.Number,
			Status:    it.Status,
			Items:     it.ItemCount,
			Total:     view.MoneyFromCents(it.TotalCents, currency),
			CreatedAt: it.CreatedAt,
		})
	}
	render.JSON(c, http.StatusOK, out)
}
