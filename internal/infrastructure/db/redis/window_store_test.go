package redis

import (
	"testing"
	"time"
)

func TestHitsEncoding_KeepsMillisecondOrder(t *testing.T) {
	base := time.UnixMilli(1_700_000_000_123)
	hits := []time.Time{base, base.Add(250 * time.Millisecond), base.Add(3 * time.Second)}

	raw, err := encodeHits(hits)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if string(raw) != "[1700000000123,1700000000373,1700000003123]" {
		t.Fatalf("unexpected encoding %s", raw)
	}

	got, err := decodeHits(raw)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(got) != len(hits) {
		t.Fatalf("expected %d hits, got %d", len(hits), len(got))
	}
	for i := range hits {
		if !got[i].Equal(hits[i]) {
			t.Fatalf("hit %d: expected %v, got %v", i, hits[i], got[i])
		}
	}
}

func TestDecodeHits_RejectsGarbage(t *testing.T) {
	if _, err := decodeHits([]byte("not-json")); err == nil {
		t.Fatalf("expected decode error")
	}
}

func TestKeys(t *testing.T) {
	if got := sessionKey("abc"); got != "session:abc" {
		t.Fatalf("session key = %q", got)
	}
	if got := (&WindowStore{}).key("login:alice|10.0.0.1"); got != "ratelimit:login:alice|10.0.0.1" {
		t.Fatalf("window key = %q", got)
	}
}
