package listing

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/kindling/api/internal/cache"
	"github.com/kindling/api/internal/item"
	"github.com/kindling/api/internal/metrics"
)

// Rising-view defaults carried over from the page and refresh handler.
const (
	DefaultMinComments      = 5
	DefaultMinPoints        = 5
	DefaultRisingCandidates = 200
)

// risingKey caches one rising result per parameter combination; different
// thresholds or window sizes are logically different lists.
type risingKey struct {
	minComments int
	minPoints   int
	window      int
}

// Rising derives the filtered "rising" view over the "new" list. The
// upstream API has no sorted or filtered endpoints, so the first window
// IDs of "new" are resolved and filtered locally.
type Rising struct {
	lists  *Provider
	items  ItemGetter
	cache  cache.Store
	ttl    time.Duration
	fanout int
}

func NewRising(lists *Provider, items ItemGetter, store cache.Store, ttl time.Duration, fanout int) *Rising {
	if fanout <= 0 {
		fanout = item.DefaultFanout
	}
	return &Rising{
		lists:  lists,
		items:  items,
		cache:  store,
		ttl:    ttl,
		fanout: fanout,
	}
}

// IDs returns the rising view for the given thresholds, scanning the first
// window entries of "new". An ID survives when its item resolves, is not
// deleted or dead, and either both thresholds are zero (pass-through) or
// at least one enabled threshold is met: descendants >= minComments, or
// score >= minPoints. A zero threshold disables that criterion.
//
// Output order matches each surviving ID's position in the candidate
// window, regardless of fetch completion order.
func (r *Rising) IDs(ctx context.Context, minComments, minPoints, window int) []int {
	cacheKey := risingKey{minComments, minPoints, window}
	if v, ok := r.cache.Get(cacheKey); ok {
		metrics.CacheHits.WithLabelValues("rising").Inc()
		return v.([]int)
	}
	metrics.CacheMisses.WithLabelValues("rising").Inc()

	candidates := r.lists.IDs(ctx, ViewNew)
	if len(candidates) > window {
		candidates = candidates[:window]
	}

	keep := make([]bool, len(candidates))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(r.fanout)
	for i, id := range candidates {
		g.Go(func() error {
			it, ok := r.items.Get(ctx, id)
			if !ok || it.Deleted || it.Dead {
				return nil
			}
			keep[i] = matches(it, minComments, minPoints)
			return nil
		})
	}
	_ = g.Wait()

	ids := make([]int, 0, len(candidates))
	for i, id := range candidates {
		if keep[i] {
			ids = append(ids, id)
		}
	}

	r.cache.Set(cacheKey, ids, r.ttl)
	return ids
}

// matches applies the OR-combined thresholds.
func matches(it item.Item, minComments, minPoints int) bool {
	if minComments == 0 && minPoints == 0 {
		return true
	}
	if minComments > 0 && it.Descendants >= minComments {
		return true
	}
	if minPoints > 0 && it.Score >= minPoints {
		return true
	}
	return false
}
