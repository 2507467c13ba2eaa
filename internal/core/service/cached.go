package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/rs/zerolog"

	"github.com/propdesk/crm-console/internal/core/domain"
	"github.com/propdesk/crm-console/internal/core/ports"
	"github.com/propdesk/crm-console/internal/metrics"
)

// cacheLoad tries to satisfy a read from the query cache. Cache failures
// count as misses; the upstream API is always able to answer.
func cacheLoad(ctx context.Context, cache ports.QueryCache, kind Kind, key string, dst any, log zerolog.Logger) bool {
	payload, ok, err := cache.Get(ctx, key)
	if err != nil {
		log.Warn().Err(err).Str("key", key).Msg("cache read failed")
		metrics.CacheLookupsTotal.WithLabelValues(string(kind), "miss").Inc()
		return false
	}
	if !ok {
		metrics.CacheLookupsTotal.WithLabelValues(string(kind), "miss").Inc()
		return false
	}
	if err := json.Unmarshal(payload, dst); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("cache entry corrupt, refetching")
		metrics.CacheLookupsTotal.WithLabelValues(string(kind), "miss").Inc()
		return false
	}
	metrics.CacheLookupsTotal.WithLabelValues(string(kind), "hit").Inc()
	return true
}

// cacheStore writes a fresh snapshot. Failures are logged and swallowed:
// the value was already served to the caller.
func cacheStore(ctx context.Context, cache ports.QueryCache, key string, v any, ttl time.Duration, log zerolog.Logger) {
	payload, err := json.Marshal(v)
	if err != nil {
		log.Warn().Err(err).Str("key", key).Msg("cache marshal failed")
		return
	}
	if err := cache.Set(ctx, key, payload, ttl); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("cache write failed")
	}
}

// tenantOf extracts the cache scope from the session. Services run behind
// the session gate, so an unauthenticated session here is a wiring bug.
func tenantOf(session *domain.Session) (string, error) {
	if session == nil || !session.IsAuthenticated || session.User == nil {
		return "", domain.ErrUnauthenticated
	}
	return session.User.TenantID, nil
}
