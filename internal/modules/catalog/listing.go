package catalog

import (
	"context"

	"github.com/AlexMobiCraft/FREESPORT-B2B-sub002/internal/modules/pricing"
)

// ProductSummary is one card on the listing page. Prices carry the full tier
// set so the handler can resolve the role price without another round-trip.
type ProductSummary struct {
	ID       int64
	Name     string
	Slug     string
	BrandID  int64
	ImageURL string
	Prices   pricing.TierPrices
	IsNew    bool
	OnSale   bool
	InStock  bool
}

// ProductPage is one page of listing results.
type ProductPage struct {
	Items []ProductSummary
	Total int
	Page  int
}

// Brand is a filterable product brand.
type Brand struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Lister is the remote catalog service seen by the filter controller.
type Lister interface {
	Products(ctx context.Context, f Filter) (ProductPage, error)
	Categories(ctx context.Context) (*Category, error)
	Brands(ctx context.Context) ([]Brand, error)
}
