package engine

import (
	"context"
	"testing"
	"time"
)

func initTestCache(t *testing.T, ttl time.Duration, maxEntries int) {
	t.Helper()
	prev := transcriptCache
	InitCache("", ttl, maxEntries, time.Hour)
	t.Cleanup(func() { transcriptCache = prev })
}

func TestCacheKeyDeterministic(t *testing.T) {
	a := CacheKey("yt", "dQw4w9WgXcQ", "en")
	b := CacheKey("yt", "dQw4w9WgXcQ", "en")
	c := CacheKey("yt", "dQw4w9WgXcQ", "de")
	if a != b {
		t.Errorf("same parts produced different keys: %q vs %q", a, b)
	}
	if a == c {
		t.Error("different parts produced the same key")
	}
	if len(a) != len("tldr:")+24 {
		t.Errorf("key length = %d: %q", len(a), a)
	}
}

func TestCacheSetGet(t *testing.T) {
	initTestCache(t, time.Minute, 100)
	ctx := context.Background()

	key := CacheKey("test", "set-get")
	if _, ok := CacheGet(ctx, key); ok {
		t.Fatal("unexpected hit before set")
	}
	CacheSet(ctx, key, []byte("payload"))
	data, ok := CacheGet(ctx, key)
	if !ok || string(data) != "payload" {
		t.Errorf("get = %q, %v", data, ok)
	}
}

func TestCacheExpiry(t *testing.T) {
	initTestCache(t, 10*time.Millisecond, 100)
	ctx := context.Background()

	key := CacheKey("test", "expiry")
	CacheSet(ctx, key, []byte("x"))
	time.Sleep(20 * time.Millisecond)
	if _, ok := CacheGet(ctx, key); ok {
		t.Error("entry should have expired")
	}
}

func TestCacheJSONRoundTrip(t *testing.T) {
	initTestCache(t, time.Minute, 100)
	ctx := context.Background()

	type doc struct {
		Title string   `json:"title"`
		Tags  []string `json:"tags"`
	}
	key := CacheKey("test", "json")
	CacheStoreJSON(ctx, key, doc{Title: "t", Tags: []string{"a", "b"}})

	got, ok := CacheLoadJSON[doc](ctx, key)
	if !ok {
		t.Fatal("miss after store")
	}
	if got.Title != "t" || len(got.Tags) != 2 {
		t.Errorf("got = %+v", got)
	}
}

func TestCacheUninitialized(t *testing.T) {
	prev := transcriptCache
	transcriptCache = nil
	t.Cleanup(func() { transcriptCache = prev })

	ctx := context.Background()
	CacheSet(ctx, "k", []byte("v")) // must not panic
	if _, ok := CacheGet(ctx, "k"); ok {
		t.Error("hit on nil cache")
	}
}
