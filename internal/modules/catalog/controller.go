package catalog

import (
	"context"
	"net/url"
	"sync"
	"time"
)

// Controller coordinates the catalog page state: category selection, brand
// and price filters, free-text search, sort order and pagination. Structured
// filter changes fetch immediately; free-text search is debounced. Every
// change resets the page to 1 except a page change itself.
//
// A failed fetch sets a page-local error and leaves prior data in place so
// the page stays interactive; there is no automatic retry.
type Controller struct {
	lister   Lister
	debounce time.Duration

	mu         sync.Mutex
	tree       *Category
	brands     []Brand
	filter     Filter
	products   ProductPage
	breadcrumb []*Category
	expanded   map[int64]bool
	pageErr    string

	// gen invalidates in-flight fetches: a response is only applied when it
	// still carries the latest generation.
	gen   uint64
	timer *time.Timer
}

func NewController(lister Lister, debounce time.Duration) *Controller {
	return &Controller{
		lister:   lister,
		debounce: debounce,
		filter:   Filter{Page: 1},
		expanded: map[int64]bool{},
	}
}

// Load fetches the category tree and brand list, then the first product
// page. Partial failures keep whatever loaded before.
func (c *Controller) Load(ctx context.Context) {
	tree, err := c.lister.Categories(ctx)
	c.mu.Lock()
	if err != nil {
		c.pageErr = "Could not load categories."
	} else {
		c.tree = tree
		c.syncCategoryLocked()
	}
	c.mu.Unlock()

	brands, err := c.lister.Brands(ctx)
	c.mu.Lock()
	if err != nil {
		c.pageErr = "Could not load brands."
	} else {
		c.brands = brands
	}
	c.mu.Unlock()

	c.fetch(ctx)
}

// Hydrate initializes the filter from URL query values. Call after Load so
// category slugs resolve against the tree.
func (c *Controller) Hydrate(ctx context.Context, values url.Values) {
	c.mu.Lock()
	c.filter = ParseQuery(values, c.tree)
	c.syncCategoryLocked()
	c.mu.Unlock()
	c.fetch(ctx)
}

// SelectCategory activates a category and recomputes the breadcrumb path and
// the expanded sidebar keys that keep the active path visible.
func (c *Controller) SelectCategory(ctx context.Context, id int64) {
	c.mu.Lock()
	c.filter.CategoryID = id
	c.filter.Page = 1
	c.syncCategoryLocked()
	c.mu.Unlock()
	c.fetch(ctx)
}

func (c *Controller) SetBrands(ctx context.Context, ids []int64) {
	c.mu.Lock()
	c.filter.BrandIDs = append([]int64(nil), ids...)
	c.filter.Page = 1
	c.mu.Unlock()
	c.fetch(ctx)
}

func (c *Controller) SetPriceRange(ctx context.Context, minCents, maxCents int64) {
	c.mu.Lock()
	c.filter.PriceMinCents = minCents
	c.filter.PriceMaxCents = maxCents
	c.filter.Page = 1
	c.mu.Unlock()
	c.fetch(ctx)
}

func (c *Controller) SetSort(ctx context.Context, sortKey string) {
	c.mu.Lock()
	c.filter.Sort = sortKey
	c.filter.Page = 1
	c.mu.Unlock()
	c.fetch(ctx)
}

func (c *Controller) SetQuickFilters(ctx context.Context, onlyNew, onlySale, inStock bool) {
	c.mu.Lock()
	c.filter.OnlyNew = onlyNew
	c.filter.OnlySale = onlySale
	c.filter.InStock = inStock
	c.filter.Page = 1
	c.mu.Unlock()
	c.fetch(ctx)
}

// SetPage changes only the page number; it is the one mutation that does not
// reset pagination.
func (c *Controller) SetPage(ctx context.Context, page int) {
	if page < 1 {
		page = 1
	}
	c.mu.Lock()
	c.filter.Page = page
	c.mu.Unlock()
	c.fetch(ctx)
}

// Search updates the free-text query with a debounce so a keystroke burst
// issues a single listing request. A zero debounce fetches immediately.
func (c *Controller) Search(ctx context.Context, query string) {
	c.mu.Lock()
	c.filter.Query = query
	c.filter.Page = 1
	if c.debounce <= 0 {
		c.mu.Unlock()
		c.fetch(ctx)
		return
	}
	if c.timer != nil {
		c.timer.Stop()
	}
	c.timer = time.AfterFunc(c.debounce, func() {
		c.fetch(context.Background())
	})
	c.mu.Unlock()
}

// Close stops any pending debounced fetch.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
	c.gen++ // drop whatever is still in flight
}

func (c *Controller) fetch(ctx context.Context) {
	c.mu.Lock()
	c.gen++
	gen := c.gen
	f := c.filter
	c.mu.Unlock()

	page, err := c.lister.Products(ctx, f)

	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.gen {
		// A newer mutation superseded this request; its response is stale.
		return
	}
	if err != nil {
		c.pageErr = "Could not load products."
		return
	}
	c.products = page
	c.pageErr = ""
}

// syncCategoryLocked recomputes the breadcrumb and the expanded node set for
// the current category. Caller holds c.mu.
func (c *Controller) syncCategoryLocked() {
	c.breadcrumb = PathByID(c.tree, c.filter.CategoryID)
	c.expanded = make(map[int64]bool, len(c.breadcrumb))
	for _, n := range c.breadcrumb {
		c.expanded[n.ID] = true
	}
}

func (c *Controller) Filter() Filter {
	c.mu.Lock()
	defer c.mu.Unlock()
	f := c.filter
	f.BrandIDs = append([]int64(nil), c.filter.BrandIDs...)
	return f
}

func (c *Controller) Products() ProductPage {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.products
}

func (c *Controller) Tree() *Category {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.tree
}

func (c *Controller) Brands() []Brand {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]Brand(nil), c.brands...)
}

// Breadcrumb is the root-to-active-category chain.
func (c *Controller) Breadcrumb() []*Category {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]*Category(nil), c.breadcrumb...)
}

// ExpandedKeys reports which sidebar tree nodes must be expanded to keep the
// active path visible.
func (c *Controller) ExpandedKeys() map[int64]bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make(map[int64]bool, len(c.expanded))
	for k, v := range c.expanded {
		out[k] = v
	}
	return out
}

func (c *Controller) PageError() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pageErr
}

// QueryString is the canonical URL serialization of the current filter,
// suitable for a non-navigating address bar replace and for shareable links.
func (c *Controller) QueryString() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.filter.EncodeQuery(c.tree).Encode()
}
