package cache

import (
	"context"
	"testing"
	"time"
)

func TestMemoryCacheSetGet(t *testing.T) {
	c := NewMemoryCache()
	defer c.Close()
	ctx := context.Background()

	if err := c.SetBytes(ctx, "k1", []byte("v1"), time.Minute); err != nil {
		t.Fatalf("set: %v", err)
	}
	b, ok, err := c.GetBytes(ctx, "k1")
	if err != nil || !ok {
		t.Fatalf("expected hit, ok=%v err=%v", ok, err)
	}
	if string(b) != "v1" {
		t.Fatalf("got %q", b)
	}
}

func TestMemoryCacheExpiry(t *testing.T) {
	c := NewMemoryCache()
	defer c.Close()
	ctx := context.Background()

	c.SetBytes(ctx, "k1", []byte("v1"), 10*time.Millisecond)
	time.Sleep(30 * time.Millisecond)
	if _, ok, _ := c.GetBytes(ctx, "k1"); ok {
		t.Fatalf("expired key must miss")
	}
}

func TestMemoryCacheDelete(t *testing.T) {
	c := NewMemoryCache()
	defer c.Close()
	ctx := context.Background()

	c.SetBytes(ctx, "k1", []byte("v1"), time.Minute)
	c.SetBytes(ctx, "k2", []byte("v2"), time.Minute)
	if err := c.Delete(ctx, "k1", "k2"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, ok, _ := c.GetBytes(ctx, "k1"); ok {
		t.Fatalf("k1 survived delete")
	}
}

func TestMemoryCacheDeletePrefix(t *testing.T) {
	c := NewMemoryCache()
	defer c.Close()
	ctx := context.Background()

	c.SetBytes(ctx, "avail:s1:1", []byte("a"), time.Minute)
	c.SetBytes(ctx, "avail:s1:2", []byte("b"), time.Minute)
	c.SetBytes(ctx, "avail:s2:1", []byte("c"), time.Minute)

	if err := c.DeletePrefix(ctx, "avail:s1:"); err != nil {
		t.Fatalf("delete prefix: %v", err)
	}
	if _, ok, _ := c.GetBytes(ctx, "avail:s1:1"); ok {
		t.Fatalf("prefixed key survived")
	}
	if _, ok, _ := c.GetBytes(ctx, "avail:s2:1"); !ok {
		t.Fatalf("other sitter's key must survive")
	}
}

func TestMemoryCacheEviction(t *testing.T) {
	c := NewMemoryCache(WithMaxSize(2))
	defer c.Close()
	ctx := context.Background()

	c.SetBytes(ctx, "k1", []byte("a"), time.Minute)
	c.SetBytes(ctx, "k2", []byte("b"), time.Minute)
	c.GetBytes(ctx, "k1") // refresh k1
	c.SetBytes(ctx, "k3", []byte("c"), time.Minute)

	if _, ok, _ := c.GetBytes(ctx, "k2"); ok {
		t.Fatalf("least recently used key must be evicted")
	}
	if _, ok, _ := c.GetBytes(ctx, "k1"); !ok {
		t.Fatalf("recently used key must survive")
	}
}
