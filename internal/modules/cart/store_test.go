package cart

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeCartAPI scripts the remote cart service per operation.
type fakeCartAPI struct {
	mu sync.Mutex

	fetchResp []Line
	fetchErr  error

	addResp Line
	addErr  error

	updateResp Line
	updateErr  error

	removeErr error
	clearErr  error

	calls []string
}

func (f *fakeCartAPI) record(op string) {
	f.mu.Lock()
	f.calls = append(f.calls, op)
	f.mu.Unlock()
}

func (f *fakeCartAPI) Fetch(ctx context.Context) ([]Line, error) {
	f.record("fetch")
	return append([]Line(nil), f.fetchResp...), f.fetchErr
}

func (f *fakeCartAPI) Add(ctx context.Context, variantID int64, qty int) (Line, error) {
	f.record("add")
	return f.addResp, f.addErr
}

func (f *fakeCartAPI) UpdateQuantity(ctx context.Context, lineID int64, qty int) (Line, error) {
	f.record("update")
	return f.updateResp, f.updateErr
}

func (f *fakeCartAPI) Remove(ctx context.Context, lineID int64) error {
	f.record("remove")
	return f.removeErr
}

func (f *fakeCartAPI) Clear(ctx context.Context) error {
	f.record("clear")
	return f.clearErr
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestStore(api Service) *Store {
	return NewStore(api, nil, testLogger())
}

// recordSnapshots wires an observer that keeps every published snapshot.
func recordSnapshots(s *Store) *[]Snapshot {
	var snaps []Snapshot
	var mu sync.Mutex
	s.Observe(func(snap Snapshot) {
		mu.Lock()
		snaps = append(snaps, snap)
		mu.Unlock()
	})
	return &snaps
}

// assertAggregatesConsistent checks the invariant that aggregates equal the
// sums over the line collection at every observed point.
func assertAggregatesConsistent(t *testing.T, snaps []Snapshot) {
	t.Helper()
	for i, snap := range snaps {
		items := 0
		var price int64
		for _, ln := range snap.Lines {
			items += ln.Quantity
			price += ln.LineTotalCents
		}
		assert.Equal(t, items, snap.TotalItems, "snapshot %d items", i)
		assert.Equal(t, price, snap.TotalPriceCents, "snapshot %d price", i)
	}
}

func TestAddItem_AppendsAuthoritativeLine(t *testing.T) {
	api := &fakeCartAPI{
		addResp: Line{ID: 3, VariantID: 7, Quantity: 1, UnitPriceCents: 500, ProductName: "Boxing gloves", SKU: "BG-7"},
	}
	s := newTestStore(api)
	snaps := recordSnapshots(s)

	res := s.AddItem(context.Background(), 7, 1)
	require.True(t, res.Success)
	require.Empty(t, res.Error)

	lines := s.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, int64(3), lines[0].ID)
	assert.Equal(t, "Boxing gloves", lines[0].ProductName)
	assert.Equal(t, int64(500), lines[0].LineTotalCents, "line total recomputed from unit price")
	assert.Equal(t, 1, s.TotalItems())
	assert.Equal(t, int64(500), s.TotalPriceCents())

	// First snapshot is the optimistic placeholder.
	require.GreaterOrEqual(t, len(*snaps), 2)
	first := (*snaps)[0]
	require.Len(t, first.Lines, 1)
	assert.Negative(t, first.Lines[0].ID, "placeholder id is negative and timestamp-derived")
	assert.Zero(t, first.Lines[0].UnitPriceCents)

	assertAggregatesConsistent(t, *snaps)
}

func TestAddItem_ServerMergesIntoExistingLine(t *testing.T) {
	// Cart already holds line id 3 (variant 7, qty 4). The service merges the
	// new add into it and answers with id 3 qty 5.
	api := &fakeCartAPI{
		fetchResp: []Line{{ID: 3, VariantID: 7, Quantity: 4, UnitPriceCents: 500}},
		addResp:   Line{ID: 3, VariantID: 7, Quantity: 5, UnitPriceCents: 500},
	}
	s := newTestStore(api)
	require.NoError(t, s.Fetch(context.Background()))

	res := s.AddItem(context.Background(), 7, 1)
	require.True(t, res.Success)

	lines := s.Lines()
	require.Len(t, lines, 1, "placeholder must disappear, no duplicate line")
	assert.Equal(t, int64(3), lines[0].ID)
	assert.Equal(t, 5, lines[0].Quantity, "merged quantity wins, not the added qty")
	assert.Equal(t, int64(2500), s.TotalPriceCents())
}

func TestAddItem_FailureRollsBackToSnapshot(t *testing.T) {
	api := &fakeCartAPI{
		fetchResp: []Line{{ID: 1, VariantID: 10, Quantity: 2, UnitPriceCents: 500}},
		addErr:    errors.New("boom"),
	}
	s := newTestStore(api)
	require.NoError(t, s.Fetch(context.Background()))
	before := s.Snapshot()

	res := s.AddItem(context.Background(), 99, 1)
	assert.False(t, res.Success)
	assert.NotEmpty(t, res.Error)

	after := s.Snapshot()
	assert.Equal(t, before.Lines, after.Lines, "full rollback to the pre-operation snapshot")
	assert.Equal(t, before.TotalItems, after.TotalItems)
	assert.Equal(t, before.TotalPriceCents, after.TotalPriceCents)
	assert.NotEmpty(t, after.Error)
}

func TestUpdateQuantity_OptimisticThenRollback(t *testing.T) {
	// Cart has one line: variant 10, qty 2, unit price 500.
	api := &fakeCartAPI{
		fetchResp: []Line{{ID: 1, VariantID: 10, Quantity: 2, UnitPriceCents: 500}},
		updateErr: errors.New("network down"),
	}
	s := newTestStore(api)
	require.NoError(t, s.Fetch(context.Background()))
	snaps := recordSnapshots(s)

	res := s.UpdateQuantity(context.Background(), 1, 3)
	assert.False(t, res.Success)

	// The optimistic snapshot showed qty 3 / total 1500 before the call resolved.
	require.GreaterOrEqual(t, len(*snaps), 2)
	optimistic := (*snaps)[0]
	require.Len(t, optimistic.Lines, 1)
	assert.Equal(t, 3, optimistic.Lines[0].Quantity)
	assert.Equal(t, int64(1500), optimistic.TotalPriceCents)

	// After the failure the cart reverted to qty 2 / total 1000 and an error is set.
	lines := s.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, 2, lines[0].Quantity)
	assert.Equal(t, int64(1000), s.TotalPriceCents())
	assert.NotEmpty(t, s.Err())

	assertAggregatesConsistent(t, *snaps)
}

func TestUpdateQuantity_Success(t *testing.T) {
	api := &fakeCartAPI{
		fetchResp:  []Line{{ID: 1, VariantID: 10, Quantity: 2, UnitPriceCents: 500}},
		updateResp: Line{ID: 1, VariantID: 10, Quantity: 3, UnitPriceCents: 500},
	}
	s := newTestStore(api)
	require.NoError(t, s.Fetch(context.Background()))

	res := s.UpdateQuantity(context.Background(), 1, 3)
	require.True(t, res.Success)
	assert.Equal(t, 3, s.TotalItems())
	assert.Equal(t, int64(1500), s.TotalPriceCents())
	assert.Empty(t, s.Err())
}

func TestRemoveItem_FailureRestoresLine(t *testing.T) {
	api := &fakeCartAPI{
		fetchResp: []Line{
			{ID: 1, VariantID: 10, Quantity: 2, UnitPriceCents: 500},
			{ID: 2, VariantID: 11, Quantity: 1, UnitPriceCents: 900},
		},
		removeErr: errors.New("boom"),
	}
	s := newTestStore(api)
	require.NoError(t, s.Fetch(context.Background()))

	res := s.RemoveItem(context.Background(), 1)
	assert.False(t, res.Success)
	assert.Len(t, s.Lines(), 2)
	assert.Equal(t, int64(1900), s.TotalPriceCents())
}

func TestClear_SuccessEmptiesCartAndKeepsPromo(t *testing.T) {
	api := &fakeCartAPI{
		fetchResp: []Line{{ID: 1, VariantID: 10, Quantity: 2, UnitPriceCents: 500}},
	}
	s := newTestStore(api)
	require.NoError(t, s.Fetch(context.Background()))
	s.ApplyPromo(context.Background(), "sess", Promo{Code: "TEAM10", Kind: PromoPercent, Value: 10})

	res := s.Clear(context.Background())
	require.True(t, res.Success)
	assert.Empty(t, s.Lines())
	assert.Zero(t, s.TotalItems())
	require.NotNil(t, s.Promo(), "cart mutations never clear the promo")
	assert.Equal(t, "TEAM10", s.Promo().Code)
}

func TestFetch_FailureKeepsPriorLines(t *testing.T) {
	api := &fakeCartAPI{
		fetchResp: []Line{{ID: 1, VariantID: 10, Quantity: 1, UnitPriceCents: 700}},
	}
	s := newTestStore(api)
	require.NoError(t, s.Fetch(context.Background()))

	api.mu.Lock()
	api.fetchErr = errors.New("boom")
	api.mu.Unlock()

	err := s.Fetch(context.Background())
	require.Error(t, err)
	assert.Len(t, s.Lines(), 1, "prior data remains displayed")
	assert.NotEmpty(t, s.Err())
}

func TestMutationSequence_AggregatesNeverDrift(t *testing.T) {
	api := &fakeCartAPI{
		addResp: Line{ID: 5, VariantID: 20, Quantity: 2, UnitPriceCents: 1200},
	}
	s := newTestStore(api)
	snaps := recordSnapshots(s)

	require.True(t, s.AddItem(context.Background(), 20, 2).Success)

	api.mu.Lock()
	api.updateResp = Line{ID: 5, VariantID: 20, Quantity: 4, UnitPriceCents: 1200}
	api.mu.Unlock()
	require.True(t, s.UpdateQuantity(context.Background(), 5, 4).Success)

	require.True(t, s.RemoveItem(context.Background(), 5).Success)
	require.True(t, s.Clear(context.Background()).Success)

	assertAggregatesConsistent(t, *snaps)
	assert.Zero(t, s.TotalItems())
	assert.Zero(t, s.TotalPriceCents())
}

func TestObserve_EveryObserverReceivesCommittedSnapshot(t *testing.T) {
	api := &fakeCartAPI{
		addResp: Line{ID: 1, VariantID: 5, Quantity: 2, UnitPriceCents: 300},
	}
	s := newTestStore(api)
	first := recordSnapshots(s)
	second := recordSnapshots(s)

	res := s.AddItem(context.Background(), 5, 2)
	require.True(t, res.Success)

	require.NotEmpty(t, *first)
	require.Equal(t, len(*first), len(*second))
	last := (*first)[len(*first)-1]
	assert.Equal(t, 2, last.TotalItems)
	assert.Equal(t, int64(600), last.TotalPriceCents)
	assert.Equal(t, last, (*second)[len(*second)-1])
}
