// cmd/preflight/main.go
package main

import (
	"fmt"
	"os"

	"github.com/hamed0406/urlpinger/internal/config"
)

func main() {
	fail := func(msg string) {
		fmt.Fprintln(os.Stderr, "✖", msg)
		os.Exit(1)
	}
	warn := func(msg string) { fmt.Fprintln(os.Stderr, "⚠", msg) }
	ok := func(msg string) { fmt.Println("✔", msg) }

	cfg, err := config.FromEnv()
	if err != nil {
		fail(err.Error())
	}
	ok(fmt.Sprintf("mode=%s workers=%d concurrency=%d timeout=%s", cfg.Strategy, cfg.Workers, cfg.Concurrency, cfg.HTTPTimeout))

	if len(cfg.API.AdminKeys) == 0 {
		warn("PINGER_API_ADMIN_KEYS is empty; /metrics is open to everyone.")
	}
	if len(cfg.API.PublicKeys) == 0 && len(cfg.API.AdminKeys) == 0 {
		warn("no API keys configured; /api/ping accepts anonymous requests.")
	}
	if cfg.API.RPM <= 0 {
		warn("PINGER_API_RPM is 0; rate limiting is disabled.")
	}
	if cfg.HTTPTimeout == 0 {
		warn("PINGER_HTTP_TIMEOUT is 0; a hung target can hold a request forever.")
	}
	if cfg.LogDir == "" {
		warn("PINGER_LOG_DIR empty; logs go to stderr.")
	} else {
		ok("PINGER_LOG_DIR=" + cfg.LogDir)
	}
	ok("PINGER_API_ADDR=" + cfg.API.Addr)

	ok("preflight passed")
}
