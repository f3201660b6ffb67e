package cart

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"time"

	"github.com/AlexMobiCraft/FREESPORT-B2B-sub002/internal/kv"
)

// promoKeyPrefix versions the persisted promo payload; bump on layout change.
const promoKeyPrefix = "cart:promo:v2:"

const promoTTL = 90 * 24 * time.Hour

// PromoStore persists promo-code state across sessions. Cart lines are
// deliberately excluded: they are re-fetched from the cart service on load
// so a stale local cart can never diverge from server-side stock and
// pricing truth.
type PromoStore struct {
	kv  kv.Store
	log *slog.Logger
}

func NewPromoStore(store kv.Store, logger *slog.Logger) *PromoStore {
	return &PromoStore{kv: store, log: logger}
}

func (p *PromoStore) Load(ctx context.Context, sessionKey string) (*Promo, error) {
	raw, ok, err := p.kv.Get(ctx, promoKeyPrefix+sessionKey)
	if err != nil || !ok {
		return nil, err
	}
	var promo Promo
	if err := json.Unmarshal([]byte(raw), &promo); err != nil {
		// Unreadable payload from an older version: drop it.
		_ = p.kv.Del(ctx, promoKeyPrefix+sessionKey)
		return nil, nil
	}
	return &promo, nil
}

func (p *PromoStore) Save(ctx context.Context, sessionKey string, promo Promo) error {
	buf, err := json.Marshal(promo)
	if err != nil {
		return err
	}
	return p.kv.Set(ctx, promoKeyPrefix+sessionKey, string(buf), promoTTL)
}

func (p *PromoStore) Clear(ctx context.Context, sessionKey string) error {
	return p.kv.Del(ctx, promoKeyPrefix+sessionKey)
}

// --- store-side promo operations: pure local transitions, no network call,
// no rollback need. Persistence is best-effort and only logged on failure. ---

// ApplyPromo sets the promo code. sessionKey addresses the persisted copy.
func (s *Store) ApplyPromo(ctx context.Context, sessionKey string, promo Promo) {
	promo.Code = strings.TrimSpace(promo.Code)
	s.mu.Lock()
	p := promo
	s.st.promo = &p
	s.mu.Unlock()
	s.notify()

	if s.promos != nil {
		if err := s.promos.Save(ctx, sessionKey, promo); err != nil {
			s.log.LogAttrs(ctx, slog.LevelWarn, "promo_persist_failed",
				slog.String("code", promo.Code),
				slog.Any("err", err),
			)
		}
	}
}

// ClearPromo removes the promo code locally and from persistence.
func (s *Store) ClearPromo(ctx context.Context, sessionKey string) {
	s.mu.Lock()
	s.st.promo = nil
	s.mu.Unlock()
	s.notify()

	if s.promos != nil {
		if err := s.promos.Clear(ctx, sessionKey); err != nil {
			s.log.LogAttrs(ctx, slog.LevelWarn, "promo_clear_failed", slog.Any("err", err))
		}
	}
}

// RestorePromo loads the persisted promo into the store, if any.
func (s *Store) RestorePromo(ctx context.Context, sessionKey string) {
	if s.promos == nil {
		return
	}
	promo, err := s.promos.Load(ctx, sessionKey)
	if err != nil {
		s.log.LogAttrs(ctx, slog.LevelWarn, "promo_load_failed", slog.Any("err", err))
		return
	}
	if promo == nil {
		return
	}
	s.mu.Lock()
	s.st.promo = promo
	s.mu.Unlock()
	s.notify()
}

func (s *Store) Promo() *Promo {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.st.promo == nil {
		return nil
	}
	p := *s.st.promo
	return &p
}

// DiscountCents is the promo discount against the current total, recomputed
// on every read and clamped so it never exceeds the total price.
func (s *Store) DiscountCents() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return discountFor(s.st.promo, totalPrice(s.st.lines))
}

// PayableCents is the total price after the promo discount.
func (s *Store) PayableCents() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	total := totalPrice(s.st.lines)
	return total - discountFor(s.st.promo, total)
}

func discountFor(promo *Promo, totalCents int64) int64 {
	if promo == nil {
		return 0
	}
	var d int64
	switch promo.Kind {
	case PromoPercent:
		d = totalCents * promo.Value / 100
	case PromoFixed:
		d = promo.Value
	}
	if d < 0 {
		d = 0
	}
	if d > totalCents {
		d = totalCents
	}
	return d
}
