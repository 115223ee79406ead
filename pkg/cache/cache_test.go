package cache

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

func newClock() *fakeClock {
	return &fakeClock{now: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)}
}

func TestNullCache(t *testing.T) {
	ctx := context.Background()
	c := NewNullCache()
	defer c.Close()

	if err := c.Set(ctx, "key", []byte("value"), time.Hour); err != nil {
		t.Errorf("Set error: %v", err)
	}

	data, hit, err := c.Get(ctx, "key")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if hit || data != nil {
		t.Error("NullCache should not store data")
	}

	if err := c.Delete(ctx, "key"); err != nil {
		t.Errorf("Delete error: %v", err)
	}
}

func TestMemoryCache_GetSet(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache()

	if err := c.Set(ctx, "k", []byte(`{"a":1}`), 30*time.Second); err != nil {
		t.Fatalf("Set error: %v", err)
	}
	data, hit, err := c.Get(ctx, "k")
	if err != nil || !hit {
		t.Fatalf("Get = %v, %v; want hit", hit, err)
	}
	if string(data) != `{"a":1}` {
		t.Errorf("Get data = %s", data)
	}

	// Returned bytes are a copy
	data[0] = 'X'
	again, _, _ := c.Get(ctx, "k")
	if string(again) != `{"a":1}` {
		t.Error("mutating returned data changed the cached entry")
	}
}

func TestMemoryCache_Expiry(t *testing.T) {
	ctx := context.Background()
	clock := newClock()
	c := NewMemoryCache().WithClock(clock.Now)

	_ = c.Set(ctx, "k", []byte("v"), 30*time.Second)

	clock.Advance(29 * time.Second)
	if _, hit, _ := c.Get(ctx, "k"); !hit {
		t.Fatal("entry should be fresh before TTL")
	}

	clock.Advance(time.Second)
	if _, hit, _ := c.Get(ctx, "k"); hit {
		t.Fatal("entry should be absent once TTL has elapsed")
	}
	if c.Len() != 0 {
		t.Errorf("expired entry should be dropped on read, Len = %d", c.Len())
	}
}

func TestMemoryCache_NoTTL(t *testing.T) {
	ctx := context.Background()
	clock := newClock()
	c := NewMemoryCache().WithClock(clock.Now)

	_ = c.Set(ctx, "k", []byte("v"), 0)
	clock.Advance(24 * time.Hour)
	if _, hit, _ := c.Get(ctx, "k"); !hit {
		t.Error("entry without TTL should not expire")
	}
}

func TestMemoryCache_DeleteClose(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache()

	_ = c.Set(ctx, "a", []byte("1"), time.Minute)
	_ = c.Set(ctx, "b", []byte("2"), time.Minute)

	if err := c.Delete(ctx, "a"); err != nil {
		t.Fatalf("Delete error: %v", err)
	}
	if _, hit, _ := c.Get(ctx, "a"); hit {
		t.Error("deleted key still present")
	}
	if err := c.Delete(ctx, "missing"); err != nil {
		t.Errorf("Delete of missing key: %v", err)
	}

	_ = c.Close()
	if c.Len() != 0 {
		t.Errorf("Close should drop entries, Len = %d", c.Len())
	}
}

func TestMemoryCache_Concurrent(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = c.Set(ctx, "shared", []byte("v"), time.Minute)
			_, _, _ = c.Get(ctx, "shared")
		}()
	}
	wg.Wait()

	if _, hit, _ := c.Get(ctx, "shared"); !hit {
		t.Error("expected shared key after concurrent writes")
	}
}

func TestFileCache_GetSet(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}

	if err := c.Set(ctx, "k", []byte("payload"), time.Minute); err != nil {
		t.Fatalf("Set error: %v", err)
	}
	data, hit, err := c.Get(ctx, "k")
	if err != nil || !hit {
		t.Fatalf("Get = %v, %v; want hit", hit, err)
	}
	if string(data) != "payload" {
		t.Errorf("Get data = %q", data)
	}

	_, hit, _ = c.Get(ctx, "other")
	if hit {
		t.Error("unexpected hit for missing key")
	}
}

func TestFileCache_Expiry(t *testing.T) {
	ctx := context.Background()
	clock := newClock()
	c, _ := NewFileCache(t.TempDir())
	c.now = clock.Now

	_ = c.Set(ctx, "k", []byte("v"), 30*time.Second)
	clock.Advance(31 * time.Second)

	if _, hit, _ := c.Get(ctx, "k"); hit {
		t.Error("expired file entry returned as hit")
	}
	if _, err := os.Stat(c.path("k")); !os.IsNotExist(err) {
		t.Error("expired file entry should be removed")
	}
}

func TestFileCache_CorruptEntry(t *testing.T) {
	ctx := context.Background()
	c, _ := NewFileCache(t.TempDir())

	path := c.path("k")
	_ = os.MkdirAll(filepath.Dir(path), 0o755)
	_ = os.WriteFile(path, []byte("not json"), 0o644)

	_, hit, err := c.Get(ctx, "k")
	if err != nil || hit {
		t.Errorf("corrupt entry: hit=%v err=%v; want miss", hit, err)
	}
}

func TestFileCache_Clear(t *testing.T) {
	ctx := context.Background()
	c, _ := NewFileCache(t.TempDir())

	for _, k := range []string{"a", "b", "c"} {
		_ = c.Set(ctx, k, []byte(k), time.Minute)
	}

	n, err := c.Clear()
	if err != nil {
		t.Fatalf("Clear error: %v", err)
	}
	if n != 3 {
		t.Errorf("Clear removed %d entries, want 3", n)
	}
	if _, hit, _ := c.Get(ctx, "a"); hit {
		t.Error("entry survived Clear")
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
	if len(h1) != 16 {
		t.Errorf("Hash length should be 16, got %d", len(h1))
	}
}

func TestDefaultKeyer(t *testing.T) {
	k := NewDefaultKeyer()

	k1 := k.GraphQLKey("query { a }", []byte(`{"username":"octocat"}`))
	k2 := k.GraphQLKey("query { a }", []byte(`{"username":"octocat"}`))
	if k1 != k2 {
		t.Error("GraphQLKey should be deterministic")
	}
	if len(k1) != len("graphql:")+32 {
		t.Errorf("GraphQLKey unexpected length: %s", k1)
	}

	if k1 == k.GraphQLKey("query { a }", []byte(`{"username":"other"}`)) {
		t.Error("different variables should produce different keys")
	}
	if k1 == k.GraphQLKey("query { b }", []byte(`{"username":"octocat"}`)) {
		t.Error("different queries should produce different keys")
	}
}

func TestScopedKeyer(t *testing.T) {
	scoped := NewScopedKeyer(nil, "tenant:")
	key := scoped.GraphQLKey("q", []byte("{}"))
	want := "tenant:" + NewDefaultKeyer().GraphQLKey("q", []byte("{}"))
	if key != want {
		t.Errorf("ScopedKeyer key = %s, want %s", key, want)
	}
}

func TestNewRedisCache_BadURL(t *testing.T) {
	_, err := NewRedisCache(context.Background(), "http://localhost:6379", "")
	if err == nil {
		t.Error("expected error for non-redis URL scheme")
	}
}
