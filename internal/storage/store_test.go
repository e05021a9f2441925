package storage

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newRedisStoreForTest(t *testing.T) *RedisStore {
	t.Helper()

	server := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: server.Addr()})
	t.Cleanup(func() {
		_ = client.Close()
	})
	return NewRedisStore(client, "test_prefix")
}

func newSQLiteStoreForTest(t *testing.T) *SQLiteStore {
	t.Helper()

	store, err := NewSQLiteStore(filepath.Join(t.TempDir(), "client.db"))
	if err != nil {
		t.Fatalf("open sqlite store: %v", err)
	}
	t.Cleanup(func() {
		_ = store.Close()
	})
	return store
}

func TestStoresRoundTrip(t *testing.T) {
	stores := map[string]Store{
		"memory": NewMemoryStore(),
		"sqlite": newSQLiteStoreForTest(t),
		"redis":  newRedisStoreForTest(t),
	}

	for name, store := range stores {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			if _, err := store.Get(ctx, "missing"); !errors.Is(err, ErrNotFound) {
				t.Fatalf("get missing key: got %v, want ErrNotFound", err)
			}

			if err := store.Put(ctx, KeySession, []byte("first")); err != nil {
				t.Fatalf("put: %v", err)
			}
			got, err := store.Get(ctx, KeySession)
			if err != nil {
				t.Fatalf("get: %v", err)
			}
			if string(got) != "first" {
				t.Fatalf("get: got %q, want %q", got, "first")
			}

			if err := store.Put(ctx, KeySession, []byte("second")); err != nil {
				t.Fatalf("overwrite: %v", err)
			}
			got, err = store.Get(ctx, KeySession)
			if err != nil {
				t.Fatalf("get after overwrite: %v", err)
			}
			if string(got) != "second" {
				t.Fatalf("overwrite not visible: got %q", got)
			}

			if err := store.Delete(ctx, KeySession); err != nil {
				t.Fatalf("delete: %v", err)
			}
			if _, err := store.Get(ctx, KeySession); !errors.Is(err, ErrNotFound) {
				t.Fatalf("get after delete: got %v, want ErrNotFound", err)
			}

			// Deleting an absent key must not fail.
			if err := store.Delete(ctx, "never-existed"); err != nil {
				t.Fatalf("delete absent key: %v", err)
			}
		})
	}
}

func TestMemoryStoreCopiesValues(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	original := []byte("payload")
	if err := store.Put(ctx, "k", original); err != nil {
		t.Fatalf("put: %v", err)
	}
	original[0] = 'X'

	got, err := store.Get(ctx, "k")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if string(got) != "payload" {
		t.Fatalf("stored value aliased caller buffer: got %q", got)
	}

	got[0] = 'Y'
	again, err := store.Get(ctx, "k")
	if err != nil {
		t.Fatalf("second get: %v", err)
	}
	if string(again) != "payload" {
		t.Fatalf("returned value aliased store buffer: got %q", again)
	}
}

func TestSessionKeysAreDisjoint(t *testing.T) {
	if KeySession == KeyAdminSession {
		t.Fatal("user and admin session keys must differ")
	}
}

func TestRedisStorePrefixesKeys(t *testing.T) {
	server := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: server.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	store := NewRedisStore(client, "agro")
	ctx := context.Background()
	if err := store.Put(ctx, KeySession, []byte("v")); err != nil {
		t.Fatalf("put: %v", err)
	}
	if _, err := server.Get("agro:session"); err != nil {
		t.Fatalf("expected prefixed key in redis: %v", err)
	}
}
