package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/AlexMobiCraft/FREESPORT-B2B-sub002/internal/http/middleware"
	"github.com/AlexMobiCraft/FREESPORT-B2B-sub002/internal/modules/cart"
	"github.com/AlexMobiCraft/FREESPORT-B2B-sub002/internal/modules/catalog"
	"github.com/AlexMobiCraft/FREESPORT-B2B-sub002/internal/modules/pricing"
	"github.com/AlexMobiCraft/FREESPORT-B2B-sub002/pkg/view"
)

const currency = "RUB"

// cartPage builds the cart view payload from a store snapshot.
func cartPage(snap cart.Snapshot) view.CartPage {
	page := view.CartPage{
		Count:         snap.TotalItems,
		SubtotalCents: snap.TotalPriceCents,
		DiscountCents: snap.DiscountCents,
		TotalCents:    snap.PayableCents,
		Subtotal:      view.MoneyFromCents(snap.TotalPriceCents, currency),
		Total:         view.MoneyFromCents(snap.PayableCents, currency),
		Currency:      currency,
		Error:         snap.Error,
	}
	if snap.DiscountCents > 0 {
		page.Discount = view.MoneyFromCents(snap.DiscountCents, currency)
	}
	if snap.Promo != nil {
		page.PromoCode = snap.Promo.Code
	}
	for _, ln := range snap.Lines {
		page.Items = append(page.Items, view.CartItem{
			LineID:         ln.ID,
			VariantID:      ln.VariantID,
			ProductName:    ln.ProductName,
			SKU:            ln.SKU,
			ImageURL:       ln.ImageURL,
			Color:          ln.Color,
			Size:           ln.Size,
			Qty:            ln.Quantity,
			UnitPriceCents: ln.UnitPriceCents,
			LineTotalCents: ln.LineTotalCents,
			UnitPrice:      view.MoneyFromCents(ln.UnitPriceCents, currency),
			LineTotal:      view.MoneyFromCents(ln.LineTotalCents, currency),
		})
	}
	return page
}

// productCard resolves the viewer's price for one listing item.
func productCard(p catalog.ProductSummary, role pricing.Role) view.ProductCard {
	price := pricing.Resolve(p.Prices, role)
	card := view.ProductCard{
		ID:         p.ID,
		Name:       p.Name,
		Slug:       p.Slug,
		ImageURL:   p.ImageURL,
		IsNew:      p.IsNew,
		OnSale:     p.OnSale,
		InStock:    p.InStock,
		PriceCents: price,
		Price:      view.MoneyFromCents(price, currency),
	}
	if pricing.ShowRRP(role) && p.Prices.RRPCents > 0 {
		card.RRPCents = p.Prices.RRPCents
		card.RRP = view.MoneyFromCents(p.Prices.RRPCents, currency)
	}
	return card
}

// treeNodes converts the category forest for the sidebar, marking the
// active node and the expanded path.
func treeNodes(nodes []*catalog.Category, activeID int64, expanded map[int64]bool) []view.TreeNode {
	out := make([]view.TreeNode, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, view.TreeNode{
			ID:       n.ID,
			Label:    n.Label,
			Slug:     n.Slug,
			Active:   n.ID == activeID,
			Expanded: expanded[n.ID],
			Children: treeNodes(n.Children, activeID, expanded),
		})
	}
	return out
}

// crumbs drops the synthetic root from the breadcrumb chain.
func crumbs(path []*catalog.Category) []view.Crumb {
	out := make([]view.Crumb, 0, len(path))
	for _, n := range path {
		if n.ID == 0 {
			continue
		}
		out = append(out, view.Crumb{ID: n.ID, Label: n.Label, Slug: n.Slug})
	}
	return out
}

// store returns the visitor's cart store.
func store(c *gin.Context, carts *cart.Manager) *cart.Store {
	return carts.ForSession(c.Request.Context(), middleware.CartKey(c), middleware.BearerToken(c))
}
