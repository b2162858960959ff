package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/multierr"

	"github.com/hamed0406/urlpinger/internal/domain"
	"github.com/hamed0406/urlpinger/internal/pinger"
	"github.com/hamed0406/urlpinger/internal/probe"
)

// EnvPrefix prefixes every environment variable, e.g. PINGER_HTTP_TIMEOUT.
const EnvPrefix = "PINGER"

type Config struct {
	URLs        string          // comma-separated targets
	Strategy    domain.Strategy // parsed from "mode"
	Workers     int             // multi-thread pool size
	Concurrency int             // cooperative in-flight cap, 0 for none
	HTTPTimeout time.Duration   // 0 disables the client timeout
	UserAgent   string
	LogDir      string // empty logs to stderr
	LogLevel    string
	API         API
}

type API struct {
	Addr       string
	PublicKeys []string
	AdminKeys  []string
	RPM        int // requests per minute per client IP, 0 disables
	Burst      int
	MaxTargets int // per request
}

// flagKeys maps flag names to config keys.
var flagKeys = map[string]string{
	"urls":        "urls",
	"mode":        "mode",
	"workers":     "workers",
	"concurrency": "concurrency",
	"timeout":     "http.timeout",
	"user-agent":  "http.user_agent",
	"log-dir":     "log.dir",
	"log-level":   "log.level",
	"addr":        "api.addr",
}

// RegisterFlags adds the CLI flags.
func RegisterFlags(fs *pflag.FlagSet) {
	fs.StringP("urls", "u", "", "comma-separated list of URLs to ping")
	registerRunFlags(fs)
}

// RegisterServerFlags adds the flags of the HTTP API server.
func RegisterServerFlags(fs *pflag.FlagSet) {
	fs.String("addr", "127.0.0.1:8080", "API bind address")
	registerRunFlags(fs)
}

func registerRunFlags(fs *pflag.FlagSet) {
	fs.StringP("mode", "m", domain.DefaultStrategy.String(), "execution strategy: sync, async or multi")
	fs.Int("workers", pinger.DefaultWorkers, "worker threads for mode=multi")
	fs.Int("concurrency", 0, "max in-flight requests for mode=async (0 = unlimited)")
	fs.Duration("timeout", probe.DefaultTimeout, "per-request timeout (0 = none)")
	fs.String("user-agent", probe.DefaultUserAgent, "User-Agent header")
	fs.String("log-dir", "", "directory for rotated JSON logs (empty = stderr)")
	fs.String("log-level", "info", "log level")
}

// Load resolves the configuration from defaults, PINGER_* environment
// variables and, when fs is not nil, flags that were set explicitly.
func Load(fs *pflag.FlagSet) (Config, error) {
	v := viper.New()

	v.SetDefault("urls", "")
	v.SetDefault("mode", domain.DefaultStrategy.String())
	v.SetDefault("workers", pinger.DefaultWorkers)
	v.SetDefault("concurrency", 0)
	v.SetDefault("http.timeout", probe.DefaultTimeout)
	v.SetDefault("http.user_agent", probe.DefaultUserAgent)
	v.SetDefault("log.dir", "")
	v.SetDefault("log.level", "info")
	v.SetDefault("api.addr", "127.0.0.1:8080")
	v.SetDefault("api.public_keys", "")
	v.SetDefault("api.admin_keys", "")
	v.SetDefault("api.rpm", 120)
	v.SetDefault("api.burst", 60)
	v.SetDefault("api.max_targets", 100)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if fs != nil {
		for name, key := range flagKeys {
			if f := fs.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return Config{}, fmt.Errorf("config: bind %s: %w", name, err)
				}
			}
		}
	}

	cfg := Config{
		URLs:        v.GetString("urls"),
		Workers:     v.GetInt("workers"),
		Concurrency: v.GetInt("concurrency"),
		HTTPTimeout: v.GetDuration("http.timeout"),
		UserAgent:   v.GetString("http.user_agent"),
		LogDir:      v.GetString("log.dir"),
		LogLevel:    v.GetString("log.level"),
		API: API{
			Addr:       v.GetString("api.addr"),
			PublicKeys: splitList(v.GetString("api.public_keys")),
			AdminKeys:  splitList(v.GetString("api.admin_keys")),
			RPM:        v.GetInt("api.rpm"),
			Burst:      v.GetInt("api.burst"),
			MaxTargets: v.GetInt("api.max_targets"),
		},
	}

	var errs error
	s, err := domain.ParseStrategy(v.GetString("mode"))
	errs = multierr.Append(errs, err)
	cfg.Strategy = s

	if cfg.Workers < 1 {
		errs = multierr.Append(errs, fmt.Errorf("workers must be at least 1, got %d", cfg.Workers))
	}
	if cfg.Concurrency < 0 {
		errs = multierr.Append(errs, fmt.Errorf("concurrency must not be negative, got %d", cfg.Concurrency))
	}
	if cfg.HTTPTimeout < 0 {
		errs = multierr.Append(errs, fmt.Errorf("http timeout must not be negative, got %s", cfg.HTTPTimeout))
	}
	if cfg.API.MaxTargets < 1 {
		errs = multierr.Append(errs, fmt.Errorf("api max targets must be at least 1, got %d", cfg.API.MaxTargets))
	}
	if errs != nil {
		return Config{}, fmt.Errorf("config: %w", errs)
	}
	return cfg, nil
}

// FromEnv loads the configuration without flags.
func FromEnv() (Config, error) {
	return Load(nil)
}

// splitList splits "a, b,,c" into [a b c].
func splitList(raw string) []string {
	var out []string
	for _, p := range strings.Split(raw, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
