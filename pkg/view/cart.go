package view

// CartItem is one rendered cart line.
type CartItem struct {
	LineID      int64  `json:"line_id"`
	VariantID   int64  `json:"variant_id"`
	ProductName string `json:"product_name"`
	SKU         string `json:"sku"`
	ImageURL    string `json:"image_url"`
	Color       string `json:"color,omitempty"`
	Size        string `json:"size,omitempty"`
	Qty         int    `json:"qty"`

	UnitPriceCents int64  `json:"unit_price_cents"`
	LineTotalCents int64  `json:"line_total_cents"`
	UnitPrice      string `json:"unit_price"`
	LineTotal      string `json:"line_total"`
}

// CartPage is the cart page payload.
type CartPage struct {
	Items []CartItem `json:"items"`
	Count int        `json:"count"`

	SubtotalCents int64  `json:"subtotal_cents"`
	DiscountCents int64  `json:"discount_cents"`
	TotalCents    int64  `json:"total_cents"`
	Subtotal      string `json:"subtotal"`
	Discount      string `json:"discount,omitempty"`
	Total         string `json:"total"`

	PromoCode string `json:"promo_code,omitempty"`
	Currency  string `json:"currency"`
	Error     string `json:"error,omitempty"`
}
