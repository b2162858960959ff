package domain

import (
	"net/http"
	"strings"
	"time"
)

// Target is one endpoint string to GET. It is never validated before dispatch.
type Target string

// ParseTargets splits a comma-separated list into targets. Order is kept,
// segments are not trimmed and empty segments survive as empty targets.
func ParseTargets(raw string) []Target {
	parts := strings.Split(raw, ",")
	out := make([]Target, len(parts))
	for i, p := range parts {
		out[i] = Target(p)
	}
	return out
}

// TargetsFrom wraps an already split list.
func TargetsFrom(urls []string) []Target {
	out := make([]Target, len(urls))
	for i, u := range urls {
		out[i] = Target(u)
	}
	return out
}

// SentinelStatus is reported as the status code of every failed ping.
const SentinelStatus = http.StatusNotFound

// Cause classifies why a ping did not produce a server response.
type Cause string

const (
	CauseNone       Cause = ""
	CauseTimeout    Cause = "timeout"
	CauseDNS        Cause = "dns"
	CauseRefused    Cause = "connection_refused"
	CauseInvalidURL Cause = "invalid_url"
	CauseTLS        Cause = "tls"
	CauseProtocol   Cause = "protocol"
	CauseCanceled   Cause = "canceled"
	CausePanic      Cause = "panic"
)

// PingResult is the outcome for one target.
//
// StatusCode is the server's status when Cause is empty, SentinelStatus otherwise.
type PingResult struct {
	URL        string        `json:"url"`
	StatusCode int           `json:"status_code"`
	Duration   time.Duration `json:"duration_ns"`
	Cause      Cause         `json:"cause,omitempty"`
}

// Reachable reports whether the server answered at all.
func (r PingResult) Reachable() bool {
	return r.Cause == CauseNone
}

// Failed builds the result for a ping that never got a response.
func Failed(url string, cause Cause, d time.Duration) PingResult {
	return PingResult{URL: url, StatusCode: SentinelStatus, Duration: d, Cause: cause}
}
