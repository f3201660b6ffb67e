package remote

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/AlexMobiCraft/FREESPORT-B2B-sub002/internal/modules/catalog"
	"github.com/AlexMobiCraft/FREESPORT-B2B-sub002/internal/modules/pricing"
)

// CatalogClient is the product/category/brand listing service client. It
// satisfies catalog.Lister.
type CatalogClient struct {
	c *Client
}

func NewCatalogClient(c *Client) *CatalogClient {
	return &CatalogClient{c: c}
}

type productDTO struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Slug     string `json:"slug"`
	BrandID  int64  `json:"brand_id"`
	ImageURL string `json:"image"`
	IsNew    bool   `json:"is_new"`
	OnSale   bool   `json:"on_sale"`
	InStock  bool   `json:"in_stock"`

	RetailPrice        int64 `json:"retail_price_cents"`
	OptPrice1          int64 `json:"opt1_price_cents"`
	OptPrice2          int64 `json:"opt2_price_cents"`
	OptPrice3          int64 `json:"opt3_price_cents"`
	TrainerPrice       int64 `json:"trainer_price_cents"`
	FederationRepPrice int64 `json:"federation_price_cents"`
	RRP                int64 `json:"rrp_cents"`
}

type productPageDTO struct {
	Count   int          `json:"count"`
	Results []productDTO `json:"results"`
}

func (d productDTO) toSummary() catalog.ProductSummary {
	return catalog.ProductSummary{
		ID:       d.ID,
		Name:     d.Name,
		Slug:     d.Slug,
		BrandID:  d.BrandID,
		ImageURL: d.ImageURL,
		IsNew:    d.IsNew,
		OnSale:   d.OnSale,
		InStock:  d.InStock,
		Prices: pricing.TierPrices{
			RetailCents:        d.RetailPrice,
			Wholesale1Cents:    d.OptPrice1,
			Wholesale2Cents:    d.OptPrice2,
			Wholesale3Cents:    d.OptPrice3,
			TrainerCents:       d.TrainerPrice,
			FederationRepCents: d.FederationRepPrice,
			RRPCents:           d.RRP,
		},
	}
}

// Products composes the listing request from the filter. The wire parameter
// names belong to the listing service and are independent of the storefront
// URL keys.
func (cl *CatalogClient) Products(ctx context.Context, f catalog.Filter) (catalog.ProductPage, error) {
	params := url.Values{}
	if f.CategoryID != 0 {
		params.Set("category", strconv.FormatInt(f.CategoryID, 10))
	}
	for _, id := range f.BrandIDs {
		params.Add("brand", strconv.FormatInt(id, 10))
	}
	if f.Query != "" {
		params.Set("search", f.Query)
	}
	if f.PriceMinCents > 0 {
		params.Set("min_price", strconv.FormatInt(f.PriceMinCents, 10))
	}
	if f.PriceMaxCents > 0 {
		params.Set("max_price", strconv.FormatInt(f.PriceMaxCents, 10))
	}
	if f.Sort != "" {
		params.Set("ordering", f.Sort)
	}
	if f.OnlyNew {
		params.Set("is_new", "true")
	}
	if f.OnlySale {
		params.Set("on_sale", "true")
	}
	if f.InStock {
		params.Set("in_stock", "true")
	}
	page := f.Page
	if page < 1 {
		page = 1
	}
	params.Set("page", strconv.Itoa(page))
	params.Set("page_size", strconv.Itoa(catalog.DefaultPageSize))

	var dto productPageDTO
	if err := cl.c.doJSON(ctx, http.MethodGet, "/api/products/?"+params.Encode(), "", nil, &dto); err != nil {
		return catalog.ProductPage{}, err
	}

	out := catalog.ProductPage{Total: dto.Count, Page: page}
	for _, p := range dto.Results {
		out.Items = append(out.Items, p.toSummary())
	}
	return out, nil
}

// Categories fetches the category hierarchy. The service returns a forest;
// it is wrapped under a synthetic root so tree traversals have one entry
// point.
func (cl *CatalogClient) Categories(ctx context.Context) (*catalog.Category, error) {
	var roots []*catalog.Category
	if err := cl.c.doJSON(ctx, http.MethodGet, "/api/categories/", "", nil, &roots); err != nil {
		return nil, err
	}
	return &catalog.Category{ID: 0, Label: "Catalog", Slug: "", Children: roots}, nil
}

func (cl *CatalogClient) Brands(ctx context.Context) ([]catalog.Brand, error) {
	var brands []catalog.Brand
	if err := cl.c.doJSON(ctx, http.MethodGet, "/api/brands/", "", nil, &brands); err != nil {
		return nil, err
	}
	return brands, nil
}

// Product fetches one product detail by slug.
func (cl *CatalogClient) Product(ctx context.Context, slug string) (ProductDetail, error) {
	var dto productDetailDTO
	if err := cl.c.doJSON(ctx, http.MethodGet, "/api/products/"+url.PathEscape(slug)+"/", "", nil, &dto); err != nil {
		return ProductDetail{}, err
	}
	return dto.toDetail(), nil
}

type variantDTO struct {
	ID      int64  `json:"id"`
	SKU     string `json:"sku"`
	Color   string `json:"color"`
	Size    string `json:"size"`
	InStock bool   `json:"in_stock"`
}

type productDetailDTO struct {
	productDTO
	Description string       `json:"description"`
	Variants    []variantDTO `json:"variants"`
}

// ProductDetail is the detail-page payload: summary fields plus variants.
type ProductDetail struct {
	catalog.ProductSummary
	Description string
	Variants    []Variant
}

type Variant struct {
	ID      int64
	SKU     string
	Color   string
	Size    string
	InStock bool
}

func (d productDetailDTO) toDetail() ProductDetail {
	out := ProductDetail{
		ProductSummary: d.productDTO.toSummary(),
		Description:    d.Description,
	}
	for _, v := range d.Variants {
		out.Variants = append(out.Variants, Variant(v))
	}
	return out
}
