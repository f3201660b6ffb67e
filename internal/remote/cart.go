package remote

import (
	"context"
	"fmt"
	"net/http"

	"github.com/AlexMobiCraft/FREESPORT-B2B-sub002/internal/modules/cart"
)

// GuestSessionHeader carries the signed guest id to the cart service so
// anonymous carts stay isolated from each other.
const GuestSessionHeader = "X-Guest-Session"

// CartClient talks to the remote cart service for one session. It satisfies
// cart.Service. The service operates on product variants and merges a
// duplicate variant addition into the existing line server-side.
//
// Identity: signed-in sessions authenticate with the bearer token; guests
// have no token and are identified by the guest session header instead.
type CartClient struct {
	c          *Client
	sessionKey string
	token      string
}

func NewCartClient(c *Client, sessionKey, token string) *CartClient {
	return &CartClient{c: c, sessionKey: sessionKey, token: token}
}

func (cc *CartClient) headers() map[string]string {
	if cc.token != "" {
		return nil
	}
	return map[string]string{GuestSessionHeader: cc.sessionKey}
}

type cartItemDTO struct {
	ID          int64  `json:"id"`
	VariantID   int64  `json:"variant_id"`
	Quantity    int    `json:"quantity"`
	UnitPrice   int64  `json:"unit_price_cents"`
	ProductName string `json:"product_name"`
	SKU         string `json:"sku"`
	ImageURL    string `json:"image"`
	Color       string `json:"color"`
	Size        string `json:"size"`
}

type cartDTO struct {
	Items []cartItemDTO `json:"items"`
}

func (d cartItemDTO) toLine() cart.Line {
	return cart.Line{
		ID:             d.ID,
		VariantID:      d.VariantID,
		Quantity:       d.Quantity,
		UnitPriceCents: d.UnitPrice,
		LineTotalCents: d.UnitPrice * int64(d.Quantity),
		ProductName:    d.ProductName,
		SKU:            d.SKU,
		ImageURL:       d.ImageURL,
		Color:          d.Color,
		Size:           d.Size,
	}
}

func (cc *CartClient) Fetch(ctx context.Context) ([]cart.Line, error) {
	var dto cartDTO
	if err := cc.c.doJSONWith(ctx, http.MethodGet, "/api/cart/", cc.token, cc.headers(), nil, &dto); err != nil {
		return nil, err
	}
	lines := make([]cart.Line, 0, len(dto.Items))
	for _, it := range dto.Items {
		lines = append(lines, it.toLine())
	}
	return lines, nil
}

func (cc *CartClient) Add(ctx context.Context, variantID int64, qty int) (cart.Line, error) {
	body := map[string]any{"variant_id": variantID, "quantity": qty}
	var dto cartItemDTO
	if err := cc.c.doJSONWith(ctx, http.MethodPost, "/api/cart/items/", cc.token, cc.headers(), body, &dto); err != nil {
		return cart.Line{}, err
	}
	return dto.toLine(), nil
}

func (cc *CartClient) UpdateQuantity(ctx context.Context, lineID int64, qty int) (cart.Line, error) {
	body := map[string]any{"quantity": qty}
	var dto cartItemDTO
	path := fmt.Sprintf("/api/cart/items/%d/", lineID)
	if err := cc.c.doJSONWith(ctx, http.MethodPatch, path, cc.token, cc.headers(), body, &dto); err != nil {
		return cart.Line{}, err
	}
	return dto.toLine(), nil
}

func (cc *CartClient) Remove(ctx context.Context, lineID int64) error {
	path := fmt.Sprintf("/api/cart/items/%d/", lineID)
	return cc.c.doJSONWith(ctx, http.MethodDelete, path, cc.token, cc.headers(), nil, nil)
}

func (cc *CartClient) Clear(ctx context.Context) error {
	return cc.c.doJSONWith(ctx, http.MethodDelete, "/api/cart/", cc.token, cc.headers(), nil, nil)
}
