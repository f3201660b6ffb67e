package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/AlexMobiCraft/FREESPORT-B2B-sub002/internal/http/middleware"
	"github.com/AlexMobiCraft/FREESPORT-B2B-sub002/internal/http/render"
	"github.com/AlexMobiCraft/FREESPORT-B2B-sub002/internal/modules/favorites"
	"github.com/AlexMobiCraft/FREESPORT-B2B-sub002/internal/remote"
	"github.com/AlexMobiCraft/FREESPORT-B2B-sub002/pkg/view"
)

// ProductHandler serves the product detail page.
type ProductHandler struct {
	catalog   *remote.CatalogClient
	favorites *favorites.Repo
}

func NewProductHandler(catalogClient *remote.CatalogClient, favs *favorites.Repo) *ProductHandler {
	return &ProductHandler{catalog: catalogClient, favorites: favs}
}

// Show handles GET /products/:slug.
func (h *ProductHandler) Show(c *gin.Context) {
	detail, err := h.catalog.Product(c.Request.Context(), c.Param("slug"))
	if err != nil {
		middleware.Fail(c, err)
		return
	}

	role := middleware.CurrentRole(c)
	page := view.ProductDetailPage{
		ProductCard: productCard(detail.ProductSummary, role),
		Description: detail.Description,
	}
	for _, v := range detail.Variants {
		page.Variants = append(page.Variants, view.VariantOption{
			ID:      v.ID,
			SKU:     v.SKU,
			Color:   v.Color,
			Size:    v.Size,
			InStock: v.InStock,
		})
	}

	if sess := middleware.CurrentSession(c); sess != nil {
		fav, favErr := h.favorites.Contains(c.Request.Context(), sess.AccountID, detail.ID)
		if favErr == nil {
			page.Favorite = fav
		}
	}

	render.JSON(c, http.StatusOK, page)
}
