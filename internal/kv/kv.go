package kv

import (
	"context"
	"time"
)

// Store is a small persistent key-value surface. The storefront keeps only
// long-lived UI state here (promo codes); cart lines are deliberately never
// persisted and are re-fetched from the cart service instead.
type Store interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Del(ctx context.Context, key string) error
}
