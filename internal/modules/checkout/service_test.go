package checkout

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AlexMobiCraft/FREESPORT-B2B-sub002/internal/modules/cart"
)

type fakeOrderAPI struct {
	conf      Confirmation
	createErr error
	draft     Draft
	token     string
}

func (f *fakeOrderAPI) CreateOrder(ctx context.Context, token string, draft Draft) (Confirmation, error) {
	f.token = token
	f.draft = draft
	return f.conf, f.createErr
}

func (f *fakeOrderAPI) Orders(ctx context.Context, token string, page, pageSize int) (HistoryPage, error) {
	return HistoryPage{}, nil
}

// fakeCart implements cart.Service for seeding a real store.
type fakeCart struct {
	lines []cart.Line
}

func (f *fakeCart) Fetch(ctx context.Context) ([]cart.Line, error) { return f.lines, nil }
func (f *fakeCart) Add(ctx context.Context, variantID int64, qty int) (cart.Line, error) {
	return cart.Line{}, nil
}
func (f *fakeCart) UpdateQuantity(ctx context.Context, lineID int64, qty int) (cart.Line, error) {
	return cart.Line{}, nil
}
func (f *fakeCart) Remove(ctx context.Context, lineID int64) error { return nil }
func (f *fakeCart) Clear(ctx context.Context) error                { return nil }

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func seededStore(t *testing.T, lines []cart.Line) *cart.Store {
	t.Helper()
	st := cart.NewStore(&fakeCart{lines: lines}, nil, discardLogger())
	require.NoError(t, st.Fetch(context.Background()))
	return st
}

func TestSubmit_EmptyCart(t *testing.T) {
	api := &fakeOrderAPI{}
	svc := NewService(api, discardLogger())
	st := seededStore(t, nil)

	_, err := svc.Submit(context.Background(), "tok", st, Details{DeliveryAddr: "Moscow"})
	assert.ErrorIs(t, err, ErrCartEmpty)
}

func TestSubmit_BuildsDraftAndClearsCart(t *testing.T) {
	api := &fakeOrderAPI{conf: Confirmation{OrderID: 42, Number: "FS-42"}}
	svc := NewService(api, discardLogger())
	st := seededStore(t, []cart.Line{
		{ID: 1, VariantID: 10, Quantity: 2, UnitPriceCents: 500},
		{ID: 2, VariantID: 11, Quantity: 1, UnitPriceCents: 900},
	})
	st.ApplyPromo(context.Background(), "sess", cart.Promo{Code: "TEAM10", Kind: cart.PromoPercent, Value: 10})

	conf, err := svc.Submit(context.Background(), "tok", st, Details{DeliveryAddr: "Moscow"})
	require.NoError(t, err)
	assert.Equal(t, int64(42), conf.OrderID)

	assert.Equal(t, "tok", api.token)
	assert.Equal(t, "TEAM10", api.draft.PromoCode)
	require.Len(t, api.draft.Lines, 2)
	assert.Equal(t, DraftLine{VariantID: 10, Quantity: 2}, api.draft.Lines[0])

	assert.Zero(t, st.TotalItems(), "cart cleared after successful order")
}

func TestSubmit_OrderServiceFailurePropagates(t *testing.T) {
	api := &fakeOrderAPI{createErr: errors.New("orders down")}
	svc := NewService(api, discardLogger())
	st := seededStore(t, []cart.Line{{ID: 1, VariantID: 10, Quantity: 1, UnitPriceCents: 500}})

	_, err := svc.Submit(context.Background(), "tok", st, Details{DeliveryAddr: "Moscow"})
	require.Error(t, err)
	assert.Equal(t, 1, st.TotalItems(), "cart untouched when the order fails")
}
