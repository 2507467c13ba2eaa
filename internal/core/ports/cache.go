package ports

import (
	"context"
	"time"
)

// QueryCache holds short-lived snapshots of upstream list and detail
// responses. A missing entry is indistinguishable from a stale one: both
// force a refetch, which is the whole contract.
type QueryCache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, payload []byte, ttl time.Duration) error
	// Invalidate drops every entry whose key starts with one of the given
	// prefixes.
	Invalidate(ctx context.Context, prefixes ...string) error
}
