package view

// ProductCard is one listing card. TierPrice is the price resolved for the
// viewer's role; RRP is filled for B2B viewers only.
type ProductCard struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Slug     string `json:"slug"`
	ImageURL string `json:"image_url"`
	IsNew    bool   `json:"is_new,omitempty"`
	OnSale   bool   `json:"on_sale,omitempty"`
	InStock  bool   `json:"in_stock"`

	PriceCents int64  `json:"price_cents"`
	Price      string `json:"price"`
	RRPCents   int64  `json:"rrp_cents,omitempty"`
	RRP        string `json:"rrp,omitempty"`
}

// Crumb is one breadcrumb step.
type Crumb struct {
	ID    int64  `json:"id"`
	Label string `json:"label"`
	Slug  string `json:"slug,omitempty"`
}

// TreeNode mirrors a category node for the sidebar, with the expansion flag
// that keeps the active path visible.
type TreeNode struct {
	ID       int64      `json:"id"`
	Label    string     `json:"label"`
	Slug     string     `json:"slug,omitempty"`
	Active   bool       `json:"active,omitempty"`
	Expanded bool       `json:"expanded,omitempty"`
	Children []TreeNode `json:"children,omitempty"`
}

// BrandOption is one brand filter checkbox.
type BrandOption struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Selected bool   `json:"selected,omitempty"`
}

// CatalogPage is the catalog listing payload.
type CatalogPage struct {
	Products   []ProductCard `json:"products"`
	Total      int           `json:"total"`
	Page       int           `json:"page"`
	PageSize   int           `json:"page_size"`
	Breadcrumb []Crumb       `json:"breadcrumb,omitempty"`
	Tree       []TreeNode    `json:"tree,omitempty"`
	Brands     []BrandOption `json:"brands,omitempty"`

	// Query is the canonical query-string serialization of the active
	// filter, for address-bar replace and shareable links.
	Query string `json:"query"`
	Error string `json:"error,omitempty"`
}

// VariantOption is one purchasable variant on the detail page.
type VariantOption struct {
	ID      int64  `json:"id"`
	SKU     string `json:"sku"`
	Color   string `json:"color,omitempty"`
	Size    string `json:"size,omitempty"`
	InStock bool   `json:"in_stock"`
}

// ProductDetailPage is the product detail payload.
type ProductDetailPage struct {
	ProductCard
	Description string          `json:"description"`
	Variants    []VariantOption `json:"variants"`
	Favorite    bool            `json:"favorite,omitempty"`
}
