package cart

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// Store is the authoritative local view of one shopping session's cart. It
// masks network latency by applying mutations optimistically and rolling
// back to a pre-operation snapshot when the cart service rejects them.
//
// Stores are constructed explicitly and injected where needed; there is no
// package-level singleton. One store per session.
type Store struct {
	svc    Service
	promos *PromoStore
	log    *slog.Logger

	mu        sync.Mutex
	st        state
	observers []func(Snapshot)

	// now is swappable in tests so placeholder ids are deterministic.
	now func() time.Time
}

// state is everything a mutation snapshot captures.
type state struct {
	lines  []Line
	promo  *Promo
	errMsg string
}

func (s state) clone() state {
	out := state{
		lines:  append([]Line(nil), s.lines...),
		errMsg: s.errMsg,
	}
	if s.promo != nil {
		p := *s.promo
		out.promo = &p
	}
	return out
}

func (s *state) indexOf(lineID int64) int {
	for i, ln := range s.lines {
		if ln.ID == lineID {
			return i
		}
	}
	return -1
}

func (s *state) removeLine(lineID int64) {
	if i := s.indexOf(lineID); i >= 0 {
		s.lines = append(s.lines[:i], s.lines[i+1:]...)
	}
}

// upsert places an authoritative line: overwrite in place when a line with
// the same id already exists (server-side merge), append otherwise.
func (s *state) upsert(ln Line) {
	if i := s.indexOf(ln.ID); i >= 0 {
		s.lines[i] = ln
		return
	}
	s.lines = append(s.lines, ln)
}

func NewStore(svc Service, promos *PromoStore, logger *slog.Logger) *Store {
	return &Store{
		svc:    svc,
		promos: promos,
		log:    logger,
		now:    time.Now,
	}
}

// Observe registers a callback invoked after every committed state change
// (cart badge, page rerender). Callbacks run outside the store lock.
func (s *Store) Observe(fn func(Snapshot)) {
	s.mu.Lock()
	s.observers = append(s.observers, fn)
	s.mu.Unlock()
}

// AddItem inserts a placeholder line immediately and reconciles it with the
// authoritative line once the cart service answers. The service may merge
// the variant into an existing line and return that line's id; reconcile
// then overwrites the existing line in place instead of appending.
func (s *Store) AddItem(ctx context.Context, variantID int64, qty int) Result {
	if qty < 1 {
		qty = 1
	}
	placeholderID := -s.now().UnixNano()

	return s.runTxn(ctx,
		func(st *state) {
			st.lines = append(st.lines, Line{
				ID:          placeholderID,
				VariantID:   variantID,
				Quantity:    qty,
				ProductName: "—",
			})
		},
		func(ctx context.Context) (reconcileFn, error) {
			ln, err := s.svc.Add(ctx, variantID, qty)
			if err != nil {
				return nil, err
			}
			ln.LineTotalCents = ln.UnitPriceCents * int64(ln.Quantity)
			return func(st *state) {
				st.removeLine(placeholderID)
				st.upsert(ln)
			}, nil
		},
	)
}

// UpdateQuantity changes a line's quantity optimistically, then overwrites
// the line with whatever the cart service returns.
func (s *Store) UpdateQuantity(ctx context.Context, lineID int64, qty int) Result {
	if qty < 1 {
		qty = 1
	}
	return s.runTxn(ctx,
		func(st *state) {
			if i := st.indexOf(lineID); i >= 0 {
				st.lines[i].Quantity = qty
				st.lines[i].LineTotalCents = st.lines[i].UnitPriceCents * int64(qty)
			}
		},
		func(ctx context.Context) (reconcileFn, error) {
			ln, err := s.svc.UpdateQuantity(ctx, lineID, qty)
			if err != nil {
				return nil, err
			}
			ln.LineTotalCents = ln.UnitPriceCents * int64(ln.Quantity)
			return func(st *state) {
				st.removeLine(lineID)
				st.upsert(ln)
			}, nil
		},
	)
}

// RemoveItem deletes a line optimistically.
func (s *Store) RemoveItem(ctx context.Context, lineID int64) Result {
	return s.runTxn(ctx,
		func(st *state) { st.removeLine(lineID) },
		func(ctx context.Context) (reconcileFn, error) {
			if err := s.svc.Remove(ctx, lineID); err != nil {
				return nil, err
			}
			return func(*state) {}, nil
		},
	)
}

// Clear empties the cart. The promo survives; only explicit promo actions
// touch it.
func (s *Store) Clear(ctx context.Context) Result {
	return s.runTxn(ctx,
		func(st *state) { st.lines = nil },
		func(ctx context.Context) (reconcileFn, error) {
			if err := s.svc.Clear(ctx); err != nil {
				return nil, err
			}
			return func(*state) {}, nil
		},
	)
}

// Fetch replaces the whole line collection with the server's authoritative
// list. No reconciliation: there is no local optimistic state to merge. On
// failure prior lines stay in place and the error is surfaced.
func (s *Store) Fetch(ctx context.Context) error {
	lines, err := s.svc.Fetch(ctx)
	s.mu.Lock()
	if err != nil {
		s.st.errMsg = publicError(err)
		s.mu.Unlock()
		s.notify()
		return err
	}
	for i := range lines {
		lines[i].LineTotalCents = lines[i].UnitPriceCents * int64(lines[i].Quantity)
	}
	s.st.lines = lines
	s.st.errMsg = ""
	s.mu.Unlock()
	s.notify()
	return nil
}

// --- reads ---

func (s *Store) Lines() []Line {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Line(nil), s.st.lines...)
}

// TotalItems is the sum of line quantities. Derived from the line collection
// on every read so it can never drift.
func (s *Store) TotalItems() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return totalItems(s.st.lines)
}

// TotalPriceCents is the sum of line totals.
func (s *Store) TotalPriceCents() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return totalPrice(s.st.lines)
}

func (s *Store) Err() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.st.errMsg
}

// Snapshot returns a consistent copy of the full store state.
func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *Store) snapshotLocked() Snapshot {
	total := totalPrice(s.st.lines)
	discount := discountFor(s.st.promo, total)
	snap := Snapshot{
		Lines:           append([]Line(nil), s.st.lines...),
		TotalItems:      totalItems(s.st.lines),
		TotalPriceCents: total,
		DiscountCents:   discount,
		PayableCents:    total - discount,
		Error:           s.st.errMsg,
	}
	if s.st.promo != nil {
		p := *s.st.promo
		snap.Promo = &p
	}
	return snap
}

func (s *Store) notify() {
	s.mu.Lock()
	observers := append([]func(Snapshot){}, s.observers...)
	snap := s.snapshotLocked()
	s.mu.Unlock()
	for _, fn := range observers {
		fn(snap)
	}
}

func totalItems(lines []Line) int {
	n := 0
	for _, ln := range lines {
		n += ln.Quantity
	}
	return n
}

func totalPrice(lines []Line) int64 {
	var sum int64
	for _, ln := range lines {
		sum += ln.LineTotalCents
	}
	return sum
}
