package cart

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AlexMobiCraft/FREESPORT-B2B-sub002/internal/kv"
)

func storeWithTotal(t *testing.T, totalCents int64) *Store {
	t.Helper()
	api := &fakeCartAPI{
		fetchResp: []Line{{ID: 1, VariantID: 1, Quantity: 1, UnitPriceCents: totalCents}},
	}
	s := newTestStore(api)
	require.NoError(t, s.Fetch(context.Background()))
	return s
}

func TestDiscount_PercentAndFixed(t *testing.T) {
	tests := []struct {
		name  string
		promo Promo
		total int64
		want  int64
	}{
		{"10 percent", Promo{Kind: PromoPercent, Value: 10}, 10000, 1000},
		{"0 percent", Promo{Kind: PromoPercent, Value: 0}, 10000, 0},
		{"100 percent", Promo{Kind: PromoPercent, Value: 100}, 10000, 10000},
		{"fixed below total", Promo{Kind: PromoFixed, Value: 2500}, 10000, 2500},
		{"fixed exceeding total clamps", Promo{Kind: PromoFixed, Value: 99999}, 10000, 10000},
		{"fixed on empty-ish total", Promo{Kind: PromoFixed, Value: 500}, 100, 100},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := storeWithTotal(t, tc.total)
			s.ApplyPromo(context.Background(), "sess", tc.promo)
			got := s.DiscountCents()
			assert.Equal(t, tc.want, got)
			assert.LessOrEqual(t, got, s.TotalPriceCents(), "discount never exceeds total")
			assert.Equal(t, tc.total-tc.want, s.PayableCents())
		})
	}
}

func TestDiscount_RecomputedOnEveryRead(t *testing.T) {
	api := &fakeCartAPI{
		fetchResp:  []Line{{ID: 1, VariantID: 1, Quantity: 2, UnitPriceCents: 500}},
		updateResp: Line{ID: 1, VariantID: 1, Quantity: 4, UnitPriceCents: 500},
	}
	s := newTestStore(api)
	require.NoError(t, s.Fetch(context.Background()))
	s.ApplyPromo(context.Background(), "sess", Promo{Kind: PromoPercent, Value: 50})

	assert.Equal(t, int64(500), s.DiscountCents())

	require.True(t, s.UpdateQuantity(context.Background(), 1, 4).Success)
	assert.Equal(t, int64(1000), s.DiscountCents(), "discount follows the new total")
}

func TestPromoStore_PersistsAcrossStores(t *testing.T) {
	mem := kv.NewMemory()
	promos := NewPromoStore(mem, testLogger())
	ctx := context.Background()

	s1 := NewStore(&fakeCartAPI{}, promos, testLogger())
	s1.ApplyPromo(ctx, "sess-1", Promo{Code: "FED15", Kind: PromoPercent, Value: 15})

	// A new store for the same session sees the persisted promo.
	s2 := NewStore(&fakeCartAPI{}, promos, testLogger())
	s2.RestorePromo(ctx, "sess-1")
	require.NotNil(t, s2.Promo())
	assert.Equal(t, "FED15", s2.Promo().Code)

	// Other sessions do not.
	s3 := NewStore(&fakeCartAPI{}, promos, testLogger())
	s3.RestorePromo(ctx, "sess-2")
	assert.Nil(t, s3.Promo())

	// Clearing removes the persisted copy too.
	s2.ClearPromo(ctx, "sess-1")
	s4 := NewStore(&fakeCartAPI{}, promos, testLogger())
	s4.RestorePromo(ctx, "sess-1")
	assert.Nil(t, s4.Promo())
}

func TestManager_OneStorePerSession(t *testing.T) {
	promos := NewPromoStore(kv.NewMemory(), testLogger())
	m := NewManager(func(sessionKey, token string) Service {
		return &fakeCartAPI{}
	}, promos, testLogger())

	ctx := context.Background()
	a := m.ForSession(ctx, "sess-a", "")
	b := m.ForSession(ctx, "sess-b", "")
	assert.NotSame(t, a, b)
	assert.Same(t, a, m.ForSession(ctx, "sess-a", ""))

	m.Drop("sess-a")
	assert.NotSame(t, a, m.ForSession(ctx, "sess-a", ""))
}
