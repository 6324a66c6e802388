package cache

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/matzehuels/arbor/pkg/observability"
)

func TestNullCache(t *testing.T) {
	ctx := context.Background()
	c := NewNullCache()
	defer c.Close()

	// Get always returns miss
	data, hit, err := c.Get(ctx, "key")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if hit || data != nil {
		t.Error("NullCache.Get should always return a nil miss")
	}

	if err := c.Set(ctx, "key", []byte("value"), time.Hour); err != nil {
		t.Errorf("Set error: %v", err)
	}
	if _, hit, _ = c.Get(ctx, "key"); hit {
		t.Error("NullCache should not store data")
	}
	if err := c.Delete(ctx, "key"); err != nil {
		t.Errorf("Delete error: %v", err)
	}
}

// backends returns every backend that can run without external services.
func backends(t *testing.T) map[string]Cache {
	t.Helper()
	fc, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	return map[string]Cache{
		"memory": NewMemoryCache(0),
		"file":   fc,
	}
}

func TestBackends(t *testing.T) {
	ctx := context.Background()
	for name, c := range backends(t) {
		t.Run(name, func(t *testing.T) {
			defer c.Close()

			if _, hit, err := c.Get(ctx, "missing"); hit || err != nil {
				t.Fatalf("Get(missing) = %v, %v", hit, err)
			}
			if err := c.Set(ctx, "k", []byte("v1"), 0); err != nil {
				t.Fatal(err)
			}
			data, hit, err := c.Get(ctx, "k")
			if err != nil || !hit || string(data) != "v1" {
				t.Fatalf("Get(k) = %q, %v, %v", data, hit, err)
			}

			// Overwrite
			_ = c.Set(ctx, "k", []byte("v2"), time.Hour)
			if data, _, _ := c.Get(ctx, "k"); string(data) != "v2" {
				t.Errorf("after overwrite = %q", data)
			}

			if err := c.Delete(ctx, "k"); err != nil {
				t.Fatal(err)
			}
			if _, hit, _ := c.Get(ctx, "k"); hit {
				t.Error("hit after Delete")
			}
			if err := c.Delete(ctx, "k"); err != nil {
				t.Errorf("Delete(missing) = %v", err)
			}
		})
	}
}

func TestMemoryCacheTTL(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache(4)
	now := time.Unix(1000, 0)
	c.now = func() time.Time { return now }

	_ = c.Set(ctx, "k", []byte("v"), time.Minute)
	now = now.Add(30 * time.Second)
	if _, hit, _ := c.Get(ctx, "k"); !hit {
		t.Error("entry expired early")
	}
	now = now.Add(time.Minute)
	if _, hit, _ := c.Get(ctx, "k"); hit {
		t.Error("entry did not expire")
	}
	if c.Len() != 0 {
		t.Errorf("expired entry not collected, Len() = %d", c.Len())
	}
}

func TestMemoryCacheEviction(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache(2)
	now := time.Unix(1000, 0)
	c.now = func() time.Time { return now }

	_ = c.Set(ctx, "old", []byte("1"), 0)
	now = now.Add(time.Second)
	_ = c.Set(ctx, "new", []byte("2"), 0)
	now = now.Add(time.Second)
	_ = c.Set(ctx, "newest", []byte("3"), 0)

	if c.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", c.Len())
	}
	if _, hit, _ := c.Get(ctx, "old"); hit {
		t.Error("oldest entry should have been evicted")
	}
	for _, k := range []string{"new", "newest"} {
		if _, hit, _ := c.Get(ctx, k); !hit {
			t.Errorf("%s evicted", k)
		}
	}
}

func TestMemoryCacheEvictsOldestRegardlessOfTTL(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache(2)
	now := time.Unix(1000, 0)
	c.now = func() time.Time { return now }

	_ = c.Set(ctx, "old-ttl", []byte("1"), time.Hour)
	now = now.Add(time.Second)
	_ = c.Set(ctx, "fresh", []byte("2"), 0)
	now = now.Add(time.Second)
	_ = c.Set(ctx, "newest", []byte("3"), 0)

	if _, hit, _ := c.Get(ctx, "old-ttl"); hit {
		t.Error("oldest entry should have been evicted even though it has a TTL")
	}
	if _, hit, _ := c.Get(ctx, "fresh"); !hit {
		t.Error("newer entry without TTL was evicted")
	}
}

func TestMemoryCacheEvictsExpiredFirst(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache(2)
	now := time.Unix(1000, 0)
	c.now = func() time.Time { return now }

	_ = c.Set(ctx, "old", []byte("1"), 0)
	now = now.Add(time.Second)
	_ = c.Set(ctx, "short", []byte("2"), time.Second)
	now = now.Add(5 * time.Second)
	_ = c.Set(ctx, "newest", []byte("3"), 0)

	if _, hit, _ := c.Get(ctx, "old"); !hit {
		t.Error("expired entry should be dropped before the oldest live one")
	}
	if c.Len() != 2 {
		t.Errorf("Len() = %d, want 2", c.Len())
	}
}

func TestMemoryCacheCopies(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache(0)
	buf := []byte("abc")
	_ = c.Set(ctx, "k", buf, 0)
	buf[0] = 'X'
	got, _, _ := c.Get(ctx, "k")
	got[1] = 'Y'
	again, _, _ := c.Get(ctx, "k")
	if string(again) != "abc" {
		t.Errorf("stored value aliased caller memory: %q", again)
	}
}

func TestFileCacheCorruptEntry(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	c, _ := NewFileCache(dir)
	_ = c.Set(ctx, "k", []byte("v"), 0)

	path := c.path("k")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, hit, err := c.Get(ctx, "k"); hit || err != nil {
		t.Errorf("corrupt entry: hit=%v err=%v", hit, err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("corrupt entry not removed")
	}
	if !strings.HasPrefix(path, filepath.Clean(dir)) {
		t.Errorf("path %s outside %s", path, dir)
	}
}

func TestFileCacheExpired(t *testing.T) {
	ctx := context.Background()
	c, _ := NewFileCache(t.TempDir())
	_ = c.Set(ctx, "k", []byte("v"), time.Nanosecond)
	time.Sleep(5 * time.Millisecond)
	if _, hit, _ := c.Get(ctx, "k"); hit {
		t.Error("expired file entry returned")
	}
}

func TestHash(t *testing.T) {
	h1 := Hash([]byte("hello"))
	if h1 != Hash([]byte("hello")) {
		t.Error("Hash should be deterministic")
	}
	if h1 == Hash([]byte("world")) {
		t.Error("Different inputs should produce different hashes")
	}
	if len(h1) != 64 {
		t.Errorf("Hash length should be 64, got %d", len(h1))
	}

	j1, err := HashJSON(map[string]int{"a": 1})
	if err != nil {
		t.Fatal(err)
	}
	if j2, _ := HashJSON(map[string]int{"a": 2}); j1 == j2 {
		t.Error("HashJSON should depend on content")
	}
	if _, err := HashJSON(func() {}); err == nil {
		t.Error("HashJSON should fail for unencodable values")
	}
}

func TestKeyers(t *testing.T) {
	k := NewDefaultKeyer()
	svg := k.RenderKey("doc", RenderKeyOpts{Format: "svg"})
	if !strings.HasPrefix(svg, "render:") {
		t.Errorf("RenderKey = %s", svg)
	}
	if svg == k.RenderKey("doc", RenderKeyOpts{Format: "svg", Highlight: "n1"}) {
		t.Error("options should change the key")
	}
	if svg == k.RenderKey("other", RenderKeyOpts{Format: "svg"}) {
		t.Error("document hash should change the key")
	}

	scoped := NewScopedKeyer(nil, "arbor:1:")
	if got := scoped.RenderKey("doc", RenderKeyOpts{Format: "svg"}); got != "arbor:1:"+svg {
		t.Errorf("scoped RenderKey = %s", got)
	}
}

func TestInstrument(t *testing.T) {
	ctx := context.Background()
	h := &countingHooks{}
	observability.SetCacheHooks(h)
	defer observability.Reset()

	c := Instrument(NewMemoryCache(0), "svg")
	_, _, _ = c.Get(ctx, "k")
	_ = c.Set(ctx, "k", []byte("abcd"), 0)
	_, _, _ = c.Get(ctx, "k")

	if h.hits != 1 || h.misses != 1 || h.bytes != 4 {
		t.Errorf("hooks = %+v, want 1 hit, 1 miss, 4 bytes", *h)
	}
	if h.keyType != "svg" {
		t.Errorf("keyType = %q", h.keyType)
	}
}

type countingHooks struct {
	hits, misses, bytes int
	keyType             string
}

func (h *countingHooks) OnCacheHit(_ context.Context, kt string)  { h.hits++; h.keyType = kt }
func (h *countingHooks) OnCacheMiss(_ context.Context, kt string) { h.misses++; h.keyType = kt }
func (h *countingHooks) OnCacheSet(_ context.Context, kt string, size int) {
	h.bytes += size
	h.keyType = kt
}

func TestRedisCache(t *testing.T) {
	addr := os.Getenv("ARBOR_TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("ARBOR_TEST_REDIS_ADDR not set")
	}
	ctx := context.Background()
	c, err := NewRedisCache(ctx, RedisConfig{Addr: addr, Prefix: "arbor-test:"})
	if err != nil {
		t.Fatal(err)
	}
	defer c.Close()

	_ = c.Delete(ctx, "k")
	if _, hit, err := c.Get(ctx, "k"); hit || err != nil {
		t.Fatalf("Get(missing) = %v, %v", hit, err)
	}
	if err := c.Set(ctx, "k", []byte("v"), time.Minute); err != nil {
		t.Fatal(err)
	}
	if data, hit, _ := c.Get(ctx, "k"); !hit || string(data) != "v" {
		t.Errorf("Get(k) = %q, %v", data, hit)
	}
	_ = c.Delete(ctx, "k")
}

func TestRedisCacheUnreachable(t *testing.T) {
	old := retryBaseDelay
	retryBaseDelay = time.Millisecond
	defer func() { retryBaseDelay = old }()

	_, err := NewRedisCache(context.Background(), RedisConfig{Addr: "127.0.0.1:1"})
	if !errors.Is(err, ErrNetwork) {
		t.Errorf("err = %v, want ErrNetwork", err)
	}
}

func TestRetryableError(t *testing.T) {
	if Retryable(nil) != nil {
		t.Error("Retryable(nil) should return nil")
	}

	err := Retryable(ErrNetwork)
	if !IsRetryable(err) {
		t.Error("IsRetryable should return true for wrapped error")
	}
	if err.Error() != ErrNetwork.Error() {
		t.Errorf("Error message should be preserved: %s", err.Error())
	}
	if IsRetryable(errors.New("plain")) {
		t.Error("IsRetryable should return false for unwrapped error")
	}
}

func TestRetryWithBackoff(t *testing.T) {
	old := retryBaseDelay
	retryBaseDelay = time.Millisecond
	defer func() { retryBaseDelay = old }()
	ctx := context.Background()

	calls := 0
	if err := RetryWithBackoff(ctx, func() error { calls++; return nil }); err != nil || calls != 1 {
		t.Errorf("success: err=%v calls=%d", err, calls)
	}

	plain := errors.New("plain")
	calls = 0
	if err := RetryWithBackoff(ctx, func() error { calls++; return plain }); err != plain || calls != 1 {
		t.Errorf("non-retryable: err=%v calls=%d", err, calls)
	}

	calls = 0
	err := RetryWithBackoff(ctx, func() error {
		calls++
		if calls < 2 {
			return Retryable(ErrNetwork)
		}
		return nil
	})
	if err != nil || calls != 2 {
		t.Errorf("retry: err=%v calls=%d", err, calls)
	}

	calls = 0
	err = RetryWithBackoff(ctx, func() error { calls++; return Retryable(ErrNetwork) })
	if !errors.Is(err, ErrNetwork) || calls != 3 {
		t.Errorf("exhausted: err=%v calls=%d", err, calls)
	}
}

func TestRetryWithBackoffContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := RetryWithBackoff(ctx, func() error {
		return Retryable(ErrNetwork)
	})
	if err != context.Canceled {
		t.Errorf("Should return context error: %v", err)
	}
}
