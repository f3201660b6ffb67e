package cart

import "context"

// Line is one product variant in the cart with its denormalized display
// fields. LineTotalCents is always recomputed as unit price times quantity,
// never trusted from stale state after a server round-trip.
type Line struct {
	ID             int64  `json:"id"`
	VariantID      int64  `json:"variant_id"`
	Quantity       int    `json:"quantity"`
	UnitPriceCents int64  `json:"unit_price_cents"`
	LineTotalCents int64  `json:"line_total_cents"`
	ProductName    string `json:"product_name"`
	SKU            string `json:"sku"`
	ImageURL       string `json:"image_url"`
	Color          string `json:"color"`
	Size           string `json:"size"`
}

type PromoKind string

const (
	PromoPercent PromoKind = "percent"
	PromoFixed   PromoKind = "fixed"
)

// Promo is an applied promo code. Value is percent points for PromoPercent
// and cents for PromoFixed.
type Promo struct {
	Code  string    `json:"code"`
	Kind  PromoKind `json:"kind"`
	Value int64     `json:"value"`
}

// Result is what cart mutations return. Mutations never propagate a Go
// error past the operation boundary; failure is reported here and the store
// state is already rolled back when Success is false.
type Result struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

// Service is the remote cart API. It operates on product variants and may
// merge an added variant into an existing line server-side, returning a line
// id different from any local placeholder.
type Service interface {
	Fetch(ctx context.Context) ([]Line, error)
	Add(ctx context.Context, variantID int64, qty int) (Line, error)
	UpdateQuantity(ctx context.Context, lineID int64, qty int) (Line, error)
	Remove(ctx context.Context, lineID int64) error
	Clear(ctx context.Context) error
}

// Snapshot is a read-only copy of the store state handed to observers.
type Snapshot struct {
	Lines           []Line
	Promo           *Promo
	TotalItems      int
	TotalPriceCents int64
	DiscountCents   int64
	PayableCents    int64
	Error           string
}
