package cart

import (
	"context"
	"log/slog"

	"github.com/AlexMobiCraft/FREESPORT-B2B-sub002/internal/shared/apperr"
)

// reconcileFn merges the service's authoritative answer into the optimistic
// state after a successful effect.
type reconcileFn func(*state)

// runTxn is the transactional mutation protocol shared by every cart
// mutation: snapshot the state, apply the speculative change, run the
// network effect, then commit the reconciled state or revert to the
// snapshot. Reconciliation differs per operation, so the effect returns it.
//
// Overlapping mutations are deliberately not serialized against each other:
// each takes its own snapshot at call time and a failed operation restores
// exactly that snapshot. Each operation is atomic with respect to its own
// outcome; there is no linearizability guarantee across concurrent edits.
func (s *Store) runTxn(
	ctx context.Context,
	speculate func(*state),
	effect func(context.Context) (reconcileFn, error),
) Result {
	s.mu.Lock()
	snap := s.st.clone()
	speculate(&s.st)
	s.st.errMsg = ""
	s.mu.Unlock()
	s.notify()

	reconcile, err := effect(ctx)

	s.mu.Lock()
	if err != nil {
		msg := publicError(err)
		s.st = snap
		s.st.errMsg = msg
		s.mu.Unlock()
		s.notify()
		s.log.LogAttrs(ctx, slog.LevelWarn, "cart_mutation_rolled_back",
			slog.String("error", msg),
			slog.Any("err", err),
		)
		return Result{Success: false, Error: msg}
	}
	reconcile(&s.st)
	s.st.errMsg = ""
	s.mu.Unlock()
	s.notify()
	return Result{Success: true}
}

// publicError normalizes any error into a display-ready message before it
// becomes UI-visible state.
func publicError(err error) string {
	if err == nil {
		return ""
	}
	return apperr.PublicMessage(err)
}
