package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/propdesk/crm-console/internal/core/ports"
	"github.com/propdesk/crm-console/internal/metrics"
)

// Kind names a cached resource kind. It is the first discriminator in
// every cache key.
type Kind string

const (
	KindLeads      Kind = "leads"
	KindProjects   Kind = "projects"
	KindUnits      Kind = "units"
	KindBookings   Kind = "bookings"
	KindActivities Kind = "activities"
)

// Op identifies a mutation for the invalidation rule table.
type Op string

const (
	OpLeadCreate     Op = "lead.create"
	OpLeadUpdate     Op = "lead.update"
	OpLeadDelete     Op = "lead.delete"
	OpLeadAssign     Op = "lead.assign"
	OpActivityCreate Op = "activity.create"
	OpProjectCreate  Op = "project.create"
	OpProjectUpdate  Op = "project.update"
	OpProjectDelete  Op = "project.delete"
	OpUnitCreate     Op = "unit.create"
	OpUnitUpdate     Op = "unit.update"
	OpUnitDelete     Op = "unit.delete"
	OpBookingCreate  Op = "booking.create"
	OpBookingUpdate  Op = "booking.update"
	OpBookingCancel  Op = "booking.cancel"
)

// scope describes one slice of the cache a mutation makes stale.
type scope struct {
	kind Kind
	// lists marks every list query for the kind stale.
	lists bool
	// detail marks the mutated entity's detail entry stale.
	detail bool
	// scopedLists marks only list queries keyed by the entity id stale
	// (activity timelines are keyed by their owning lead).
	scopedLists bool
}

// invalidationRules is the full dependency table between mutations and the
// cache-key prefixes they invalidate. Every mutation the console performs
// appears here; nothing invalidates ad hoc at a call site.
//
// Booking create/cancel also touch unit listings: the server flips unit
// availability as a side effect, and stale unit lists would contradict
// the booking the operator just saw succeed.
var invalidationRules = map[Op][]scope{
	OpLeadCreate:     {{kind: KindLeads, lists: true}},
	OpLeadUpdate:     {{kind: KindLeads, lists: true, detail: true}},
	OpLeadDelete:     {{kind: KindLeads, lists: true}},
	OpLeadAssign:     {{kind: KindLeads, lists: true, detail: true}},
	OpActivityCreate: {{kind: KindActivities, scopedLists: true}},
	OpProjectCreate:  {{kind: KindProjects, lists: true}},
	OpProjectUpdate:  {{kind: KindProjects, lists: true, detail: true}},
	OpProjectDelete:  {{kind: KindProjects, lists: true}},
	OpUnitCreate:     {{kind: KindUnits, lists: true}},
	OpUnitUpdate:     {{kind: KindUnits, lists: true, detail: true}},
	OpUnitDelete:     {{kind: KindUnits, lists: true}},
	OpBookingCreate:  {{kind: KindBookings, lists: true}, {kind: KindUnits, lists: true}},
	OpBookingUpdate:  {{kind: KindBookings, lists: true, detail: true}},
	OpBookingCancel:  {{kind: KindBookings, lists: true, detail: true}, {kind: KindUnits, lists: true}},
}

// listKey builds the cache key for a list query. filter is the stable
// encoding of the query parameters.
func listKey(tenantID string, kind Kind, filter string) string {
	return fmt.Sprintf("query:%s:%s:list:%s", tenantID, kind, filter)
}

// listPrefix matches every list query for a kind.
func listPrefix(tenantID string, kind Kind) string {
	return fmt.Sprintf("query:%s:%s:list:", tenantID, kind)
}

// detailKey builds the cache key for a single entity.
func detailKey(tenantID string, kind Kind, id string) string {
	return fmt.Sprintf("query:%s:%s:detail:%s", tenantID, kind, id)
}

// InvalidationPrefixes resolves a mutation to the cache-key prefixes it
// makes stale. id is the mutated entity's id; for OpActivityCreate it is
// the owning lead's id.
func InvalidationPrefixes(op Op, tenantID, id string) []string {
	var prefixes []string
	for _, sc := range invalidationRules[op] {
		if sc.lists {
			prefixes = append(prefixes, listPrefix(tenantID, sc.kind))
		}
		if sc.scopedLists {
			prefixes = append(prefixes, listKey(tenantID, sc.kind, id))
		}
		if sc.detail {
			prefixes = append(prefixes, detailKey(tenantID, sc.kind, id))
		}
	}
	return prefixes
}

// Invalidator applies the rule table against the query cache after a
// successful mutation.
type Invalidator struct {
	cache ports.QueryCache
	log   zerolog.Logger
}

func NewInvalidator(cache ports.QueryCache, log zerolog.Logger) *Invalidator {
	return &Invalidator{cache: cache, log: log}
}

// After marks everything the mutation touched stale. The mutation already
// succeeded upstream, so a failing invalidation is logged and swallowed:
// the short cache TTL bounds the damage.
func (v *Invalidator) After(ctx context.Context, op Op, tenantID, id string) {
	prefixes := InvalidationPrefixes(op, tenantID, id)
	if len(prefixes) == 0 {
		return
	}
	metrics.CacheInvalidationsTotal.WithLabelValues(string(op)).Inc()
	if err := v.cache.Invalidate(ctx, prefixes...); err != nil {
		v.log.Warn().Err(err).Str("op", string(op)).Msg("cache invalidation failed")
	}
}
