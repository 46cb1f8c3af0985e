// Package item models Hacker News items and provides their cache-aside
// fetch paths: single items, pages of a ranked ID list, comment trees and
// poll options.
package item

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/kindling/api/internal/cache"
	"github.com/kindling/api/internal/hnclient"
	"github.com/kindling/api/internal/metrics"
)

// DefaultFanout bounds how many item fetches run concurrently within one
// batch (a page, a tree level, a candidate window).
const DefaultFanout = 10

// key scopes item cache entries apart from every other entry class.
type key int

// Provider fetches and caches individual items.
type Provider struct {
	client *hnclient.Client
	cache  cache.Store
	ttl    time.Duration
	fanout int
}

// NewProvider creates an item Provider. fanout <= 0 selects DefaultFanout.
func NewProvider(client *hnclient.Client, store cache.Store, ttl time.Duration, fanout int) *Provider {
	if fanout <= 0 {
		fanout = DefaultFanout
	}
	return &Provider{
		client: client,
		cache:  store,
		ttl:    ttl,
		fanout: fanout,
	}
}

// Get returns the item for id, or false if it cannot be resolved. Network
// failures, malformed payloads and upstream "no such item" nulls are all
// reported as absent; callers treat absence as routine, never fatal.
func (p *Provider) Get(ctx context.Context, id int) (Item, bool) {
	if v, ok := p.cache.Get(key(id)); ok {
		metrics.CacheHits.WithLabelValues("item").Inc()
		return v.(Item), true
	}
	metrics.CacheMisses.WithLabelValues("item").Inc()

	var it *Item
	if err := p.client.GetJSON(ctx, fmt.Sprintf("/item/%d.json", id), &it); err != nil {
		slog.Debug("item fetch failed", "id", id, "error", err)
		metrics.UpstreamRequests.WithLabelValues("item", "error").Inc()
		return Item{}, false
	}
	metrics.UpstreamRequests.WithLabelValues("item", "ok").Inc()
	if it == nil {
		return Item{}, false
	}

	p.cache.Set(key(id), *it, p.ttl)
	return *it, true
}

// resolve fetches ids concurrently, bounded by the provider fanout, and
// returns one slot per input ID in input order. Unresolvable IDs yield nil.
func (p *Provider) resolve(ctx context.Context, ids []int) []*Item {
	results := make([]*Item, len(ids))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(p.fanout)
	for i, id := range ids {
		g.Go(func() error {
			if it, ok := p.Get(ctx, id); ok {
				results[i] = &it
			}
			return nil
		})
	}
	_ = g.Wait()

	return results
}

// PollOptions resolves an item's poll option IDs in display order. Options
// that fail to load are skipped.
func (p *Provider) PollOptions(ctx context.Context, it Item) []Item {
	if len(it.Parts) == 0 {
		return nil
	}

	var opts []Item
	for _, res := range p.resolve(ctx, it.Parts) {
		if res != nil {
			opts = append(opts, *res)
		}
	}
	return opts
}
