package config

import (
	"errors"
	"fmt"
	"net/url"
	"time"
)

func Validate(cfg *Config) error {
	var errs []error

	// Server validation
	if cfg.Server.Port < 1 || cfg.Server.Port > 65535 {
		errs = append(errs, fmt.Errorf("server.port must be between 1 and 65535"))
	}
	for i, origin := range cfg.Server.AllowedOrigins {
		u, err := url.Parse(origin)
		if err != nil || u.Scheme == "" || u.Host == "" {
			errs = append(errs, fmt.Errorf("server.allowed_origins[%d] %q is not a valid URL with scheme", i, origin))
		}
	}

	// TLS validation
	switch cfg.Server.TLS.Mode {
	case "", "off":
		// no additional validation needed
	case "auto":
		if cfg.Server.TLS.Auto.Domain == "" {
			errs = append(errs, fmt.Errorf("server.tls.auto.domain is required when tls mode is auto"))
		}
		if cfg.Server.TLS.Auto.CacheDir == "" {
			errs = append(errs, fmt.Errorf("server.tls.auto.cache_dir is required when tls mode is auto"))
		}
	case "manual":
		if cfg.Server.TLS.CertFile == "" {
			errs = append(errs, fmt.Errorf("server.tls.cert_file is required when tls mode is manual"))
		}
		if cfg.Server.TLS.KeyFile == "" {
			errs = append(errs, fmt.Errorf("server.tls.key_file is required when tls mode is manual"))
		}
	default:
		errs = append(errs, fmt.Errorf("server.tls.mode must be off, auto, or manual"))
	}

	// Upstream validation
	if u, err := url.Parse(cfg.Upstream.BaseURL); err != nil || u.Scheme == "" || u.Host == "" {
		errs = append(errs, fmt.Errorf("upstream.base_url %q is not a valid URL with scheme", cfg.Upstream.BaseURL))
	}
	if cfg.Upstream.Timeout < time.Second {
		errs = append(errs, fmt.Errorf("upstream.timeout must be at least 1s"))
	}
	if cfg.Upstream.Fanout < 1 {
		errs = append(errs, fmt.Errorf("upstream.fanout must be at least 1"))
	}

	// Cache validation. The relative TTL ordering is load-bearing: lists
	// are volatile rankings, items change slower, profiles slower still.
	for _, ttl := range []struct {
		name string
		d    time.Duration
	}{
		{"cache.list_ttl", cfg.Cache.ListTTL},
		{"cache.item_ttl", cfg.Cache.ItemTTL},
		{"cache.user_ttl", cfg.Cache.UserTTL},
		{"cache.max_item_ttl", cfg.Cache.MaxItemTTL},
		{"cache.rising_ttl", cfg.Cache.RisingTTL},
	} {
		if ttl.d < time.Second {
			errs = append(errs, fmt.Errorf("%s must be at least 1s", ttl.name))
		}
	}
	if cfg.Cache.ListTTL > cfg.Cache.ItemTTL {
		errs = append(errs, fmt.Errorf("cache.list_ttl must not exceed cache.item_ttl"))
	}
	if cfg.Cache.ItemTTL > cfg.Cache.UserTTL {
		errs = append(errs, fmt.Errorf("cache.item_ttl must not exceed cache.user_ttl"))
	}
	if cfg.Cache.MaxItemTTL > cfg.Cache.ListTTL {
		errs = append(errs, fmt.Errorf("cache.max_item_ttl must not exceed cache.list_ttl"))
	}
	if cfg.Cache.SweepInterval < time.Minute {
		errs = append(errs, fmt.Errorf("cache.sweep_interval must be at least 1m"))
	}

	// Pages validation
	if cfg.Pages.PageSize < 1 || cfg.Pages.PageSize > 100 {
		errs = append(errs, fmt.Errorf("pages.page_size must be between 1 and 100"))
	}
	if cfg.Pages.CommentDepth < 0 || cfg.Pages.CommentDepth > 10 {
		errs = append(errs, fmt.Errorf("pages.comment_depth must be between 0 and 10"))
	}
	if cfg.Pages.RisingCandidates < 1 || cfg.Pages.RisingCandidates > 500 {
		errs = append(errs, fmt.Errorf("pages.rising_candidates must be between 1 and 500"))
	}
	if cfg.Pages.ScoreFetchCap < 1 {
		errs = append(errs, fmt.Errorf("pages.score_fetch_cap must be at least 1"))
	}

	// Rate limit validation (only when enabled)
	if cfg.RateLimit.Enabled {
		if cfg.RateLimit.Refresh.Limit < 1 {
			errs = append(errs, fmt.Errorf("rate_limit.refresh.limit must be at least 1"))
		}
		if cfg.RateLimit.Refresh.Window < time.Second {
			errs = append(errs, fmt.Errorf("rate_limit.refresh.window must be at least 1s"))
		}
	}

	// Log validation
	switch cfg.Log.Level {
	case "", "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Errorf("log.level must be debug, info, warn, or error"))
	}
	switch cfg.Log.Format {
	case "", "text", "json":
	default:
		errs = append(errs, fmt.Errorf("log.format must be text or json"))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}
