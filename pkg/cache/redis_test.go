package cache

import (
	"context"
	"os"
	"testing"
	"time"
)

// Set BPMNLAYOUT_TEST_REDIS=redis://localhost:6379/15 to run against a
// real server. The tests only touch keys under a private prefix.
func newTestRedis(t *testing.T) *RedisCache {
	t.Helper()
	url := os.Getenv("BPMNLAYOUT_TEST_REDIS")
	if url == "" {
		t.Skip("BPMNLAYOUT_TEST_REDIS not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	c, err := NewRedisCache(ctx, RedisConfig{URL: url, Prefix: "bpmnlayout-test:" + t.Name() + ":"})
	if err != nil {
		t.Fatalf("NewRedisCache: %v", err)
	}
	t.Cleanup(func() {
		_, _ = c.Clear(context.Background())
		c.Close()
	})
	return c
}

func TestRedisCache(t *testing.T) {
	c := newTestRedis(t)
	ctx := context.Background()

	if _, hit, err := c.Get(ctx, "k"); hit || err != nil {
		t.Fatalf("Get on empty = %v, %v", hit, err)
	}
	if err := c.Set(ctx, "k", []byte("v"), time.Minute); err != nil {
		t.Fatalf("Set: %v", err)
	}
	data, hit, err := c.Get(ctx, "k")
	if err != nil || !hit || string(data) != "v" {
		t.Fatalf("Get = %q, %v, %v", data, hit, err)
	}
	if err := c.Delete(ctx, "k"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, hit, _ := c.Get(ctx, "k"); hit {
		t.Error("entry survived Delete")
	}
}

func TestRedisCacheClear(t *testing.T) {
	c := newTestRedis(t)
	ctx := context.Background()

	for _, k := range []string{"a", "b", "c"} {
		if err := c.Set(ctx, k, []byte(k), time.Minute); err != nil {
			t.Fatal(err)
		}
	}
	n, err := c.Clear(ctx)
	if err != nil || n != 3 {
		t.Errorf("Clear = %d, %v, want 3", n, err)
	}
}

func TestNewRedisCacheErrors(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if _, err := NewRedisCache(ctx, RedisConfig{URL: "http://localhost"}); err == nil {
		t.Error("NewRedisCache with http URL should fail")
	}

	// Port 1 is reserved and refuses connections.
	_, err := NewRedisCache(ctx, RedisConfig{URL: "redis://127.0.0.1:1/0", DialTimeout: 200 * time.Millisecond})
	if !IsNetwork(err) {
		t.Errorf("NewRedisCache unreachable = %v, want ErrNetwork", err)
	}
}
