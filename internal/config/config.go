package config

import (
	"time"

	"github.com/kindling/api/internal/hnclient"
)

type Config struct {
	Server    ServerConfig    `koanf:"server"`
	Upstream  UpstreamConfig  `koanf:"upstream"`
	Cache     CacheConfig     `koanf:"cache"`
	Pages     PagesConfig     `koanf:"pages"`
	RateLimit RateLimitConfig `koanf:"rate_limit"`
	Log       LogConfig       `koanf:"log"`
}

type ServerConfig struct {
	Host           string    `koanf:"host"`
	Port           int       `koanf:"port"`
	AllowedOrigins []string  `koanf:"allowed_origins"`
	TLS            TLSConfig `koanf:"tls"`
}

type TLSConfig struct {
	Mode     string        `koanf:"mode"` // off, auto, manual
	CertFile string        `koanf:"cert_file"`
	KeyFile  string        `koanf:"key_file"`
	Auto     TLSAutoConfig `koanf:"auto"`
}

type TLSAutoConfig struct {
	Domain   string `koanf:"domain"`
	Email    string `koanf:"email"`
	CacheDir string `koanf:"cache_dir"`
}

type UpstreamConfig struct {
	BaseURL string        `koanf:"base_url"`
	Timeout time.Duration `koanf:"timeout"`
	Fanout  int           `koanf:"fanout"`
}

// CacheConfig holds the per-entry-class TTLs. Lists are volatile rankings
// and expire quickly; item content changes but identity does not, so items
// live longer; profiles are the most stable; the max-item watermark is the
// most volatile of all. Validate enforces that ordering.
type CacheConfig struct {
	ListTTL       time.Duration `koanf:"list_ttl"`
	ItemTTL       time.Duration `koanf:"item_ttl"`
	UserTTL       time.Duration `koanf:"user_ttl"`
	MaxItemTTL    time.Duration `koanf:"max_item_ttl"`
	RisingTTL     time.Duration `koanf:"rising_ttl"`
	SweepInterval time.Duration `koanf:"sweep_interval"`
}

type PagesConfig struct {
	PageSize         int `koanf:"page_size"`
	CommentDepth     int `koanf:"comment_depth"`
	RisingCandidates int `koanf:"rising_candidates"`
	ScoreFetchCap    int `koanf:"score_fetch_cap"`
}

type RateLimitConfig struct {
	Enabled bool              `koanf:"enabled"`
	Refresh RateLimitEndpoint `koanf:"refresh"`
}

type RateLimitEndpoint struct {
	Limit  int           `koanf:"limit"`
	Window time.Duration `koanf:"window"`
}

type LogConfig struct {
	Level  string `koanf:"level"`  // debug, info, warn, error
	Format string `koanf:"format"` // text, json
}

func Defaults() *Config {
	return &Config{
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: 8080,
			TLS:  TLSConfig{Mode: "off"},
		},
		Upstream: UpstreamConfig{
			BaseURL: hnclient.DefaultBaseURL,
			Timeout: 10 * time.Second,
			Fanout:  10,
		},
		Cache: CacheConfig{
			ListTTL:       60 * time.Second,
			ItemTTL:       5 * time.Minute,
			UserTTL:       10 * time.Minute,
			MaxItemTTL:    30 * time.Second,
			RisingTTL:     60 * time.Second,
			SweepInterval: 10 * time.Minute,
		},
		Pages: PagesConfig{
			PageSize:         20,
			CommentDepth:     4,
			RisingCandidates: 200,
			ScoreFetchCap:    30,
		},
		RateLimit: RateLimitConfig{
			Enabled: true,
			Refresh: RateLimitEndpoint{Limit: 30, Window: time.Minute},
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}
