package config

import (
	"errors"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"go.uber.org/multierr"

	"github.com/hamed0406/urlpinger/internal/domain"
)

func TestFromEnv_Defaults(t *testing.T) {
	cfg, err := FromEnv()
	if err != nil {
		t.Fatalf("FromEnv: %v", err)
	}
	if cfg.Strategy != domain.Cooperative {
		t.Fatalf("default mode should be async, got %v", cfg.Strategy)
	}
	if cfg.Workers != 32 || cfg.Concurrency != 0 || cfg.HTTPTimeout != 10*time.Second {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if cfg.API.Addr != "127.0.0.1:8080" || cfg.API.MaxTargets != 100 || cfg.LogDir != "" {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
}

func TestFromEnv_ParsesEnv(t *testing.T) {
	t.Setenv("PINGER_MODE", "multi")
	t.Setenv("PINGER_WORKERS", "7")
	t.Setenv("PINGER_HTTP_TIMEOUT", "1500ms")
	t.Setenv("PINGER_LOG_DIR", "./_testlogs")
	t.Setenv("PINGER_API_ADDR", ":9090")
	t.Setenv("PINGER_API_PUBLIC_KEYS", "pub_a, pub_b,")
	t.Setenv("PINGER_API_ADMIN_KEYS", "adm_x")
	t.Setenv("PINGER_API_RPM", "0")

	cfg, err := FromEnv()
	if err != nil {
		t.Fatalf("FromEnv: %v", err)
	}
	if cfg.Strategy != domain.MultiThread || cfg.Workers != 7 || cfg.HTTPTimeout != 1500*time.Millisecond {
		t.Fatalf("env not applied: %+v", cfg)
	}
	if cfg.LogDir != "./_testlogs" || cfg.API.Addr != ":9090" || cfg.API.RPM != 0 {
		t.Fatalf("env not applied: %+v", cfg)
	}
	if len(cfg.API.PublicKeys) != 2 || cfg.API.PublicKeys[1] != "pub_b" {
		t.Fatalf("public keys wrong: %q", cfg.API.PublicKeys)
	}
	if len(cfg.API.AdminKeys) != 1 || cfg.API.AdminKeys[0] != "adm_x" {
		t.Fatalf("admin keys wrong: %q", cfg.API.AdminKeys)
	}
}

func TestLoad_FlagsOverrideEnv(t *testing.T) {
	t.Setenv("PINGER_MODE", "multi")
	t.Setenv("PINGER_WORKERS", "7")

	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	RegisterFlags(fs)
	if err := fs.Parse([]string{"-u", "a,,b", "-m", "sync", "--timeout", "2s"}); err != nil {
		t.Fatalf("parse: %v", err)
	}

	cfg, err := Load(fs)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.URLs != "a,,b" || cfg.Strategy != domain.Sequential || cfg.HTTPTimeout != 2*time.Second {
		t.Fatalf("flags not applied: %+v", cfg)
	}
	if cfg.Workers != 7 {
		t.Fatalf("unset flag must not hide env, got workers=%d", cfg.Workers)
	}
}

func TestLoad_UnknownMode(t *testing.T) {
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	RegisterFlags(fs)
	if err := fs.Parse([]string{"--mode", "threads"}); err != nil {
		t.Fatalf("parse: %v", err)
	}
	if _, err := Load(fs); !errors.Is(err, domain.ErrUnknownStrategy) {
		t.Fatalf("want ErrUnknownStrategy, got %v", err)
	}
}

func TestLoad_ReportsEveryProblem(t *testing.T) {
	t.Setenv("PINGER_MODE", "fast")
	t.Setenv("PINGER_WORKERS", "0")
	t.Setenv("PINGER_CONCURRENCY", "-2")

	_, err := FromEnv()
	if err == nil {
		t.Fatal("want error")
	}
	if n := len(multierr.Errors(errors.Unwrap(err))); n != 3 {
		t.Fatalf("want 3 combined errors, got %d: %v", n, err)
	}
}

func TestSplitList(t *testing.T) {
	if got := splitList(""); len(got) != 0 {
		t.Fatalf("want empty, got %q", got)
	}
	if got := splitList(" a ,b,, c"); len(got) != 3 || got[0] != "a" || got[2] != "c" {
		t.Fatalf("got %q", got)
	}
}
