package cart

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestManager(api Service) *Manager {
	return NewManager(func(sessionKey, token string) Service { return api }, nil, testLogger())
}

func TestManagerPeekDoesNotAllocateStores(t *testing.T) {
	m := newTestManager(&fakeCartAPI{addResp: Line{ID: 1, VariantID: 5, Quantity: 2, UnitPriceCents: 300}})

	assert.Equal(t, 0, m.Peek("guest:a"))
	assert.Equal(t, 0, m.Peek("guest:b"))
	assert.Empty(t, m.stores, "a page view must not mint a store")

	st := m.ForSession(context.Background(), "guest:a", "")
	res := st.AddItem(context.Background(), 5, 2)
	require.True(t, res.Success)

	assert.Equal(t, 2, m.Peek("guest:a"))
	assert.Equal(t, 0, m.Peek("guest:b"))
	assert.Len(t, m.stores, 1)
}

func TestManagerEvictsIdleStores(t *testing.T) {
	m := newTestManager(&fakeCartAPI{})
	clock := time.Date(2026, 1, 2, 12, 0, 0, 0, time.UTC)
	m.now = func() time.Time { return clock }

	ctx := context.Background()
	m.ForSession(ctx, "guest:stale", "")
	clock = clock.Add(storeIdleTTL / 2)
	m.ForSession(ctx, "guest:fresh", "")

	// The stale store ages out; the fresh one was touched recently enough.
	clock = clock.Add(storeIdleTTL/2 + time.Minute)
	m.ForSession(ctx, "guest:new", "")

	m.mu.Lock()
	_, stale := m.stores["guest:stale"]
	_, fresh := m.stores["guest:fresh"]
	m.mu.Unlock()
	assert.False(t, stale)
	assert.True(t, fresh)
}

func TestManagerPeekKeepsActiveStoreAlive(t *testing.T) {
	m := newTestManager(&fakeCartAPI{})
	clock := time.Date(2026, 1, 2, 12, 0, 0, 0, time.UTC)
	m.now = func() time.Time { return clock }

	ctx := context.Background()
	m.ForSession(ctx, "guest:a", "")

	// Page views refresh the store even without cart mutations.
	for i := 0; i < 3; i++ {
		clock = clock.Add(storeIdleTTL - time.Minute)
		m.Peek("guest:a")
	}
	m.ForSession(ctx, "guest:other", "")

	m.mu.Lock()
	_, alive := m.stores["guest:a"]
	m.mu.Unlock()
	assert.True(t, alive)
}

func TestManagerDropForgetsStore(t *testing.T) {
	m := newTestManager(&fakeCartAPI{addResp: Line{ID: 1, VariantID: 5, Quantity: 1, UnitPriceCents: 300}})
	st := m.ForSession(context.Background(), "acct:7", "tok")
	res := st.AddItem(context.Background(), 5, 1)
	require.True(t, res.Success)

	m.Drop("acct:7")
	assert.Equal(t, 0, m.Peek("acct:7"))
}
