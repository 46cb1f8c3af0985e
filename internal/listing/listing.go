// Package listing provides the named ranked ID lists ("top", "new", …),
// the computed "rising" view and the list-change detector used by the
// background refresh poll.
package listing

import (
	"context"
	"log/slog"
	"time"

	"github.com/kindling/api/internal/cache"
	"github.com/kindling/api/internal/hnclient"
	"github.com/kindling/api/internal/item"
	"github.com/kindling/api/internal/metrics"
)

// View names one ranked ID list.
type View string

const (
	ViewTop    View = "top"
	ViewNew    View = "new"
	ViewBest   View = "best"
	ViewAsk    View = "ask"
	ViewShow   View = "show"
	ViewJobs   View = "jobs"
	ViewActive View = "active"
	ViewRising View = "rising"
)

// endpoints maps each directly fetchable view to its upstream path.
// "active" and "rising" are handled separately.
var endpoints = map[View]string{
	ViewTop:  "/topstories.json",
	ViewNew:  "/newstories.json",
	ViewBest: "/beststories.json",
	ViewAsk:  "/askstories.json",
	ViewShow: "/showstories.json",
	ViewJobs: "/jobstories.json",
}

// ParseView maps a request parameter to a View, falling back to "top" for
// anything unknown.
func ParseView(s string) View {
	switch v := View(s); v {
	case ViewNew, ViewBest, ViewAsk, ViewShow, ViewJobs, ViewActive, ViewRising:
		return v
	default:
		return ViewTop
	}
}

// ItemGetter is the slice of the item provider the listing layer needs.
type ItemGetter interface {
	Get(ctx context.Context, id int) (item.Item, bool)
}

// Typed cache keys. Distinct types keep entry classes apart without
// string-prefix conventions.
type listKey View

type maxItemKey struct{}

// Provider fetches and caches the named ID lists and the max-item
// watermark.
type Provider struct {
	client     *hnclient.Client
	cache      cache.Store
	listTTL    time.Duration
	maxItemTTL time.Duration
}

func NewProvider(client *hnclient.Client, store cache.Store, listTTL, maxItemTTL time.Duration) *Provider {
	return &Provider{
		client:     client,
		cache:      store,
		listTTL:    listTTL,
		maxItemTTL: maxItemTTL,
	}
}

// IDs returns the current ordered ID list for view. It never fails: any
// transport or parse problem yields an empty list, indistinguishable from
// an upstream-reported empty view. Concurrent callers racing on a cold key
// may each fetch independently; both writes store equivalent lists.
//
// view must be one of the six named views or "active"; the parameterized
// "rising" view is built by Rising.
func (p *Provider) IDs(ctx context.Context, view View) []int {
	if v, ok := p.cache.Get(listKey(view)); ok {
		metrics.CacheHits.WithLabelValues("list").Inc()
		return v.([]int)
	}
	metrics.CacheMisses.WithLabelValues("list").Inc()

	ids, err := p.fetch(ctx, view)
	if err != nil {
		slog.Warn("list fetch failed", "view", view, "error", err)
		metrics.UpstreamRequests.WithLabelValues("list", "error").Inc()
		return nil
	}
	metrics.UpstreamRequests.WithLabelValues("list", "ok").Inc()

	p.cache.Set(listKey(view), ids, p.listTTL)
	return ids
}

func (p *Provider) fetch(ctx context.Context, view View) ([]int, error) {
	if view == ViewActive {
		// The updates feed is a JSON object; only its item IDs are used.
		var updates struct {
			Items    []int    `json:"items"`
			Profiles []string `json:"profiles"`
		}
		if err := p.client.GetJSON(ctx, "/updates.json", &updates); err != nil {
			return nil, err
		}
		return updates.Items, nil
	}

	path, ok := endpoints[view]
	if !ok {
		path = endpoints[ViewTop]
	}

	var ids []int
	if err := p.client.GetJSON(ctx, path, &ids); err != nil {
		return nil, err
	}
	return ids, nil
}

// MaxItem returns the current maximum item ID watermark, or 0 when it
// cannot be fetched. The watermark is the most volatile entry class and
// carries the shortest TTL.
func (p *Provider) MaxItem(ctx context.Context) int {
	if v, ok := p.cache.Get(maxItemKey{}); ok {
		metrics.CacheHits.WithLabelValues("maxitem").Inc()
		return v.(int)
	}
	metrics.CacheMisses.WithLabelValues("maxitem").Inc()

	var id int
	if err := p.client.GetJSON(ctx, "/maxitem.json", &id); err != nil {
		slog.Warn("maxitem fetch failed", "error", err)
		metrics.UpstreamRequests.WithLabelValues("maxitem", "error").Inc()
		return 0
	}
	metrics.UpstreamRequests.WithLabelValues("maxitem", "ok").Inc()

	p.cache.Set(maxItemKey{}, id, p.maxItemTTL)
	return id
}
