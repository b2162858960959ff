package main

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"
)

func countingServer(t *testing.T) (*httptest.Server, *atomic.Int64) {
	t.Helper()
	var hits atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		if r.URL.Path == "/teapot" {
			w.WriteHeader(http.StatusTeapot)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	t.Cleanup(srv.Close)
	return srv, &hits
}

func TestRun_UnknownModeFailsBeforeNetwork(t *testing.T) {
	srv, hits := countingServer(t)
	var stdout, stderr bytes.Buffer

	code := run(context.Background(), []string{"-u", srv.URL, "-m", "threads"}, &stdout, &stderr)

	require.Equal(t, exitUsage, code)
	require.Contains(t, stderr.String(), "unknown strategy")
	require.Empty(t, stdout.String())
	require.Zero(t, hits.Load(), "no request may be sent for a bad mode")
}

func TestRun_MissingURLs(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := run(context.Background(), []string{"-m", "sync"}, &stdout, &stderr)
	require.Equal(t, exitUsage, code)
	require.Contains(t, stderr.String(), "--urls is required")
}

func TestRun_PrintsOneLinePerURL(t *testing.T) {
	srv, hits := countingServer(t)
	urls := srv.URL + "/ok,htx:example.com," + srv.URL + "/teapot"

	for _, mode := range []string{"sync", "async", "multi"} {
		t.Run(mode, func(t *testing.T) {
			var stdout, stderr bytes.Buffer
			code := run(context.Background(), []string{"--urls", urls, "--mode", mode, "--log-level", "error"}, &stdout, &stderr)
			require.Equal(t, exitOK, code, stderr.String())

			lines := strings.Split(strings.TrimRight(stdout.String(), "\n"), "\n")
			require.Len(t, lines, 5, stdout.String())
			require.Contains(t, lines[1], srv.URL+"/ok")
			require.Contains(t, lines[1], "200")
			require.Contains(t, lines[2], "htx:example.com")
			require.Contains(t, lines[2], "404 (invalid_url)")
			require.Contains(t, lines[3], "418")
			require.Contains(t, lines[4], "mode="+mode)
		})
	}
	require.EqualValues(t, 6, hits.Load())
}

func TestRun_DefaultModeIsAsync(t *testing.T) {
	srv, _ := countingServer(t)
	var stdout, stderr bytes.Buffer
	code := run(context.Background(), []string{"-u", srv.URL}, &stdout, &stderr)
	require.Equal(t, exitOK, code)
	require.Contains(t, stdout.String(), "mode=async")
}
