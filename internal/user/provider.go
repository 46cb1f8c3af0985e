// Package user models upstream author profiles and their cache-aside
// fetch path.
package user

import (
	"context"
	"log/slog"
	"net/url"
	"time"

	"github.com/kindling/api/internal/cache"
	"github.com/kindling/api/internal/hnclient"
	"github.com/kindling/api/internal/metrics"
)

// key scopes profile cache entries apart from every other entry class.
type key string

// Provider fetches and caches user profiles.
type Provider struct {
	client *hnclient.Client
	cache  cache.Store
	ttl    time.Duration
}

func NewProvider(client *hnclient.Client, store cache.Store, ttl time.Duration) *Provider {
	return &Provider{
		client: client,
		cache:  store,
		ttl:    ttl,
	}
}

// Get returns the profile for handle, or false if it cannot be resolved.
// Unknown handles, transport failures and malformed payloads all report
// absent; callers treat absence as routine.
func (p *Provider) Get(ctx context.Context, handle string) (Profile, bool) {
	if handle == "" {
		return Profile{}, false
	}

	if v, ok := p.cache.Get(key(handle)); ok {
		metrics.CacheHits.WithLabelValues("user").Inc()
		return v.(Profile), true
	}
	metrics.CacheMisses.WithLabelValues("user").Inc()

	var profile *Profile
	if err := p.client.GetJSON(ctx, "/user/"+url.PathEscape(handle)+".json", &profile); err != nil {
		slog.Debug("user fetch failed", "handle", handle, "error", err)
		metrics.UpstreamRequests.WithLabelValues("user", "error").Inc()
		return Profile{}, false
	}
	metrics.UpstreamRequests.WithLabelValues("user", "ok").Inc()
	if profile == nil {
		return Profile{}, false
	}

	p.cache.Set(key(handle), *profile, p.ttl)
	return *profile, true
}
