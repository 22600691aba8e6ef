package kvstore

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func testRedisStore(t *testing.T) *RedisStore {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisStoreFromClient(client)
}

func TestRedisStore_SetGetDelete(t *testing.T) {
	ctx := context.Background()
	store := testRedisStore(t)

	if _, err := store.Get(ctx, "leads"); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound for a missing key, got %v", err)
	}

	value := []byte(`[{"id":"L-2026-001"}]`)
	if err := store.Set(ctx, "leads", value); err != nil {
		t.Fatalf("set failed: %v", err)
	}

	got, err := store.Get(ctx, "leads")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if string(got) != string(value) {
		t.Fatalf("got %s, want %s", got, value)
	}

	if err := store.Delete(ctx, "leads"); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if _, err := store.Get(ctx, "leads"); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
}

func TestRedisStore_KeysAreNamespaced(t *testing.T) {
	ctx := context.Background()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	store := NewRedisStoreFromClient(client)

	if err := store.Set(ctx, "leads", []byte(`[]`)); err != nil {
		t.Fatalf("set failed: %v", err)
	}

	if !mr.Exists(keyPrefix + "leads") {
		t.Fatalf("expected key %q in redis", keyPrefix+"leads")
	}
	if mr.Exists("leads") {
		t.Fatal("unprefixed key should not exist")
	}
}
