package handlers

import (
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/AlexMobiCraft/FREESPORT-B2B-sub002/internal/http/middleware"
	"github.com/AlexMobiCraft/FREESPORT-B2B-sub002/internal/http/render"
	"github.com/AlexMobiCraft/FREESPORT-B2B-sub002/internal/modules/catalog"
	"github.com/AlexMobiCraft/FREESPORT-B2B-sub002/pkg/view"
)

// ctrlIdleTTL bounds how long an idle session keeps its filter controller.
// The URL query is authoritative, so a recreated controller rebuilds the
// same state from the next request.
const ctrlIdleTTL = 15 * time.Minute

type ctrlEntry struct {
	ctrl     *catalog.Controller
	lastUsed time.Time
}

// CatalogHandler serves the listing page. Each shopping session keeps a
// live filter controller, so a burst of filter changes from one visitor
// shares a generation counter and the debounced search window. Idle
// controllers are evicted on access so fresh guest ids cannot grow the
// map without bound.
type CatalogHandler struct {
	lister   catalog.Lister
	debounce time.Duration
	now      func() time.Time

	mu    sync.Mutex
	ctrls map[string]*ctrlEntry
}

func NewCatalogHandler(lister catalog.Lister, debounce time.Duration) *CatalogHandler {
	return &CatalogHandler{
		lister:   lister,
		debounce: debounce,
		now:      time.Now,
		ctrls:    map[string]*ctrlEntry{},
	}
}

func (h *CatalogHandler) controllerFor(c *gin.Context) *catalog.Controller {
	key := middleware.CartKey(c)
	h.mu.Lock()
	cutoff := h.now().Add(-ctrlIdleTTL)
	for k, ent := range h.ctrls {
		if ent.lastUsed.Before(cutoff) {
			delete(h.ctrls, k)
		}
	}
	ent, ok := h.ctrls[key]
	if !ok {
		ent = &ctrlEntry{ctrl: catalog.NewController(h.lister, h.debounce)}
		h.ctrls[key] = ent
	}
	ent.lastUsed = h.now()
	h.mu.Unlock()

	if !ok {
		ent.ctrl.Load(c.Request.Context())
	}
	return ent.ctrl
}

// List handles GET /catalog. The URL query is authoritative: the filter
// is rebuilt from it on every page view, so links are shareable and the
// back button works.
func (h *CatalogHandler) List(c *gin.Context) {
	ctrl := h.controllerFor(c)
	ctrl.Hydrate(c.Request.Context(), c.Request.URL.Query())
	render.JSON(c, http.StatusOK, h.page(c, ctrl))
}

// Search handles GET /catalog/search?q=, the endpoint the search box
// hits on every keystroke. The controller debounces, so the upstream
// listing request fires once per burst; the response carries the state
// as of now and the client follows up with a List call for the settled
// result.
func (h *CatalogHandler) Search(c *gin.Context) {
	ctrl := h.controllerFor(c)
	ctrl.Search(c.Request.Context(), c.Query("q"))
	render.JSON(c, http.StatusOK, h.page(c, ctrl))
}

func (h *CatalogHandler) page(c *gin.Context, ctrl *catalog.Controller) view.CatalogPage {
	role := middleware.CurrentRole(c)
	products := ctrl.Products()
	filter := ctrl.Filter()

	page := view.CatalogPage{
		Total:      products.Total,
		Page:       products.Page,
		PageSize:   catalog.DefaultPageSize,
		Breadcrumb: crumbs(ctrl.Breadcrumb()),
		Query:      ctrl.QueryString(),
		Error:      ctrl.PageError(),
	}
	for _, p := range products.Items {
		page.Products = append(page.Products, productCard(p, role))
	}
	if tree := ctrl.Tree(); tree != nil {
		page.Tree = treeNodes(tree.Children, filter.CategoryID, ctrl.ExpandedKeys())
	}
	selected := map[int64]bool{}
	for _, id := range filter.BrandIDs {
		selected[id] = true
	}
	for _, b := range ctrl.Brands() {
		page.Brands = append(page.Brands, view.BrandOption{ID: b.ID, Name: b.Name, Selected: selected[b.ID]})
	}
	if page.Error != "" {
		log.Printf("catalog page error: %s", page.Error)
	}
	return page
}
