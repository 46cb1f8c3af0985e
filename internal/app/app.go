package app

import (
	"context"
	"log/slog"
	"time"

	"github.com/kindling/api/internal/cache"
	"github.com/kindling/api/internal/config"
	"github.com/kindling/api/internal/feed"
	"github.com/kindling/api/internal/handler"
	"github.com/kindling/api/internal/hnclient"
	"github.com/kindling/api/internal/item"
	"github.com/kindling/api/internal/listing"
	"github.com/kindling/api/internal/metrics"
	"github.com/kindling/api/internal/ratelimit"
	"github.com/kindling/api/internal/server"
	"github.com/kindling/api/internal/user"
)

type App struct {
	Config      *config.Config
	Cache       *cache.Memory
	Server      *server.Server
	RateLimiter *ratelimit.Limiter
}

func New(cfg *config.Config) (*App, error) {
	metrics.MustRegister()

	// The one shared upstream client and the one shared cache.
	client := hnclient.New(cfg.Upstream.BaseURL, cfg.Upstream.Timeout)
	store := cache.NewMemory()

	// Providers
	items := item.NewProvider(client, store, cfg.Cache.ItemTTL, cfg.Upstream.Fanout)
	users := user.NewProvider(client, store, cfg.Cache.UserTTL)
	lists := listing.NewProvider(client, store, cfg.Cache.ListTTL, cfg.Cache.MaxItemTTL)
	rising := listing.NewRising(lists, items, store, cfg.Cache.RisingTTL, cfg.Upstream.Fanout)
	detector := listing.NewDetector(lists, rising, items, cfg.Upstream.Fanout, cfg.Pages.RisingCandidates)
	feeds := feed.NewBuilder(lists, rising, items, cfg.Pages.PageSize)

	h := handler.New(handler.Dependencies{
		Lists:            lists,
		Rising:           rising,
		Detector:         detector,
		Items:            items,
		Users:            users,
		Feeds:            feeds,
		PageSize:         cfg.Pages.PageSize,
		CommentDepth:     cfg.Pages.CommentDepth,
		ScoreCap:         cfg.Pages.ScoreFetchCap,
		RisingCandidates: cfg.Pages.RisingCandidates,
	})

	// Build rate limiter (nil if disabled)
	var limiter *ratelimit.Limiter
	if cfg.RateLimit.Enabled {
		limiter = ratelimit.NewLimiter([]ratelimit.Rule{
			{Method: "GET", Path: "/hn-refresh", Limit: cfg.RateLimit.Refresh.Limit, Window: cfg.RateLimit.Refresh.Window},
		})
	}

	router := server.NewRouter(h, limiter, cfg.Server.AllowedOrigins)

	tlsOpts := server.TLSOptions{
		Mode:     cfg.Server.TLS.Mode,
		CertFile: cfg.Server.TLS.CertFile,
		KeyFile:  cfg.Server.TLS.KeyFile,
		Domain:   cfg.Server.TLS.Auto.Domain,
		Email:    cfg.Server.TLS.Auto.Email,
		CacheDir: cfg.Server.TLS.Auto.CacheDir,
	}

	srv := server.New(cfg.Server.Host, cfg.Server.Port, router, tlsOpts)

	return &App{
		Config:      cfg,
		Cache:       store,
		Server:      srv,
		RateLimiter: limiter,
	}, nil
}

func (a *App) Start(ctx context.Context) error {
	// Periodically drop expired cache entries.
	go func() {
		ticker := time.NewTicker(a.Config.Cache.SweepInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				a.Cache.Sweep()
			}
		}
	}()

	// Rate limiter cleanup
	if a.RateLimiter != nil {
		go func() {
			ticker := time.NewTicker(10 * time.Minute)
			defer ticker.Stop()
			for {
				select {
				case <-ctx.Done():
					return
				case <-ticker.C:
					a.RateLimiter.Cleanup()
				}
			}
		}()
	}

	slog.Info("starting kindling",
		"addr", a.Server.Addr(),
		"upstream", a.Config.Upstream.BaseURL,
		"tls", a.Server.TLSMode(),
	)

	return a.Server.Start()
}

func (a *App) Shutdown(ctx context.Context) error {
	return a.Server.Shutdown(ctx)
}
