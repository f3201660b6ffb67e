package checkout

import (
	"context"
	"log/slog"
	"time"

	"github.com/AlexMobiCraft/FREESPORT-B2B-sub002/internal/modules/cart"
)

// DraftLine is one order position sent to the order service.
type DraftLine struct {
	VariantID int64 `json:"variant_id"`
	Quantity  int   `json:"quantity"`
}

// Draft is the order submission payload.
type Draft struct {
	Lines        []DraftLine `json:"lines"`
	PromoCode    string      `json:"promo_code,omitempty"`
	DeliveryAddr string      `json:"delivery_address"`
	Comment      string      `json:"comment,omitempty"`
}

// Confirmation is the created order as the order service reports it.
type Confirmation struct {
	OrderID    int64     `json:"order_id"`
	Number     string    `json:"number"`
	TotalCents int64     `json:"total_cents"`
	CreatedAt  time.Time `json:"created_at"`
}

// HistoryItem is one row of the customer's order history.
type HistoryItem struct {
	OrderID    int64     `json:"order_id"`
	Number     string    `json:"number"`
	Status     string    `json:"status"`
	TotalCents int64     `json:"total_cents"`
	ItemCount  int       `json:"item_count"`
	CreatedAt  time.Time `json:"created_at"`
}

// HistoryPage is a paged order-history result.
type HistoryPage struct {
	Items []HistoryItem `json:"items"`
	Total int           `json:"total"`
}

// OrderAPI is the remote order service.
type OrderAPI interface {
	CreateOrder(ctx context.Context, token string, draft Draft) (Confirmation, error)
	Orders(ctx context.Context, token string, page, pageSize int) (HistoryPage, error)
}

// Service drives checkout: validate, submit, clear the cart.
type Service struct {
	api OrderAPI
	log *slog.Logger
}

func NewService(api OrderAPI, logger *slog.Logger) *Service {
	return &Service{api: api, log: logger}
}

// Details is the address/comment input collected from the checkout form.
type Details struct {
	DeliveryAddr string
	Comment      string
}

// Submit creates an order from the cart. Unlike cart mutations this is a
// catchable failure path: an empty cart and order-service errors propagate
// to the caller. The cart is cleared only after the order exists; a failed
// clear is logged, not surfaced, since the order already succeeded.
func (s *Service) Submit(ctx context.Context, token string, store *cart.Store, in Details) (Confirmation, error) {
	lines := store.Lines()
	if len(lines) == 0 {
		return Confirmation{}, ErrCartEmpty
	}

	draft := Draft{
		DeliveryAddr: in.DeliveryAddr,
		Comment:      in.Comment,
	}
	if promo := store.Promo(); promo != nil {
		draft.PromoCode = promo.Code
	}
	for _, ln := range lines {
		draft.Lines = append(draft.Lines, DraftLine{VariantID: ln.VariantID, Quantity: ln.Quantity})
	}

	conf, err := s.api.CreateOrder(ctx, token, draft)
	if err != nil {
		return Confirmation{}, err
	}

	if res := store.Clear(ctx); !res.Success {
		s.log.LogAttrs(ctx, slog.LevelWarn, "cart_clear_after_order_failed",
			slog.Int64("order_id", conf.OrderID),
			slog.String("error", res.Error),
		)
	}
	return conf, nil
}

// History lists the customer's past orders.
func (s *Service) History(ctx context.Context, token string, page, pageSize int) (HistoryPage, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	return s.api.Orders(ctx, token, page, pageSize)
}
