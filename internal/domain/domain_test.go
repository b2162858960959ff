package domain

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"
)

func TestParseTargets_KeepsOrderAndEmptySegments(t *testing.T) {
	got := ParseTargets("a,,b")
	if len(got) != 3 {
		t.Fatalf("want 3 targets, got %d: %q", len(got), got)
	}
	if got[0] != "a" || got[1] != "" || got[2] != "b" {
		t.Fatalf("unexpected targets: %q", got)
	}
}

func TestParseTargets_CountIsCommasPlusOne(t *testing.T) {
	inputs := []string{
		"https://example.com",
		"a,b",
		" a , b ,c",
		",",
		",,,",
		"htx:example.com,https://example.com,",
		"x,x,x,x",
	}
	for _, in := range inputs {
		got := ParseTargets(in)
		if want := strings.Count(in, ",") + 1; len(got) != want {
			t.Fatalf("%q: want %d targets, got %d", in, want, len(got))
		}
		if joined := strings.Join(targetStrings(got), ","); joined != in {
			t.Fatalf("%q: round trip gave %q", in, joined)
		}
	}
}

func TestParseTargets_NoTrimNoDedup(t *testing.T) {
	got := ParseTargets(" a,a")
	if len(got) != 2 || got[0] != " a" || got[1] != "a" {
		t.Fatalf("unexpected targets: %q", got)
	}
}

func TestTargetsFrom(t *testing.T) {
	got := TargetsFrom([]string{"b", "", "a"})
	if len(got) != 3 || got[0] != "b" || got[1] != "" || got[2] != "a" {
		t.Fatalf("unexpected targets: %q", got)
	}
}

func TestParseStrategy(t *testing.T) {
	cases := map[string]Strategy{
		"sync":  Sequential,
		"async": Cooperative,
		"multi": MultiThread,
	}
	for in, want := range cases {
		got, err := ParseStrategy(in)
		if err != nil {
			t.Fatalf("%q: %v", in, err)
		}
		if got != want || got.String() != in {
			t.Fatalf("%q: got %v", in, got)
		}
	}

	for _, bad := range []string{"", "SYNC", "threads", " async"} {
		if _, err := ParseStrategy(bad); !errors.Is(err, ErrUnknownStrategy) {
			t.Fatalf("%q: want ErrUnknownStrategy, got %v", bad, err)
		}
	}
}

func TestStrategy_Valid(t *testing.T) {
	if Strategy(0).Valid() || Strategy(42).Valid() {
		t.Fatal("out of range strategies must be invalid")
	}
	if Strategy(42).String() != "Strategy(42)" {
		t.Fatalf("unexpected name %q", Strategy(42).String())
	}
	if _, err := Strategy(42).MarshalText(); err == nil {
		t.Fatal("want error marshalling invalid strategy")
	}
}

func TestPingResult_JSON(t *testing.T) {
	r := Failed("htx:example.com", CauseInvalidURL, 3*time.Millisecond)
	if r.StatusCode != SentinelStatus || r.Reachable() {
		t.Fatalf("unexpected failed result: %+v", r)
	}
	b, err := json.Marshal(r)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if !strings.Contains(string(b), `"cause":"invalid_url"`) || !strings.Contains(string(b), `"status_code":404`) {
		t.Fatalf("unexpected json: %s", b)
	}

	ok, _ := json.Marshal(PingResult{URL: "https://example.com", StatusCode: 200, Duration: time.Millisecond})
	if strings.Contains(string(ok), "cause") {
		t.Fatalf("cause should be omitted for reachable results: %s", ok)
	}
}

func targetStrings(ts []Target) []string {
	out := make([]string, len(ts))
	for i, t := range ts {
		out[i] = string(t)
	}
	return out
}
