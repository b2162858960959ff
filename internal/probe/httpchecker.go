package probe

import (
	"context"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/hamed0406/urlpinger/internal/domain"
)

const (
	DefaultTimeout   = 10 * time.Second
	DefaultUserAgent = "urlpinger/1.0"

	// maxDrain bounds how much of a body is read so the connection can go
	// back to the pool.
	maxDrain = 64 << 10
)

type HTTPOptions struct {
	Timeout   time.Duration // zero means no client timeout
	UserAgent string
}

// HTTPChecker sends GET requests through one shared client.
type HTTPChecker struct {
	Client    *http.Client
	UserAgent string
}

func NewHTTPChecker(opts HTTPOptions) *HTTPChecker {
	return &HTTPChecker{
		Client:    NewHTTPClient(opts),
		UserAgent: opts.UserAgent,
	}
}

// NewHTTPClient builds a client whose transport keeps enough idle
// connections per host for a whole batch to reuse them.
func NewHTTPClient(opts HTTPOptions) *http.Client {
	dialTimeout := opts.Timeout
	if dialTimeout <= 0 {
		dialTimeout = 30 * time.Second
	}
	transport := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   dialTimeout,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		MaxIdleConns:          100,
		MaxIdleConnsPerHost:   100,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   10 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
	}
	return &http.Client{Timeout: opts.Timeout, Transport: transport}
}

func (h *HTTPChecker) Check(ctx context.Context, target string) Outcome {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return Outcome{StatusCode: domain.SentinelStatus, Cause: domain.CauseInvalidURL}
	}
	if h.UserAgent != "" {
		req.Header.Set("User-Agent", h.UserAgent)
	}

	resp, err := h.Client.Do(req)
	if err != nil {
		return Outcome{StatusCode: domain.SentinelStatus, Cause: Classify(req, err)}
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxDrain))

	return Outcome{StatusCode: resp.StatusCode}
}
