package storage

import (
	"context"
	"testing"
	"time"
)

func TestMemoryStore_PutGet(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	if err := store.Put(ctx, "a/b.png", []byte("data"), "image/png"); err != nil {
		t.Fatalf("put failed: %v", err)
	}

	obj, err := store.Get(ctx, "a/b.png")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if obj == nil {
		t.Fatal("expected object, got nil")
	}
	if string(obj.Body) != "data" {
		t.Errorf("body = %q, expected 'data'", obj.Body)
	}
	if obj.ContentType != "image/png" {
		t.Errorf("content type = %q", obj.ContentType)
	}
	if obj.ETag == "" {
		t.Error("expected a non-empty ETag")
	}
}

func TestMemoryStore_GetMissingIsNilNil(t *testing.T) {
	store := NewMemoryStore()

	obj, err := store.Get(context.Background(), "nope")
	if err != nil {
		t.Fatalf("missing key must not error: %v", err)
	}
	if obj != nil {
		t.Errorf("expected nil object, got %+v", obj)
	}
}

func TestMemoryStore_DeleteIdempotent(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	_ = store.Put(ctx, "k1", []byte("x"), "text/plain")
	if err := store.Delete(ctx, "k1", "never-existed"); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if err := store.Delete(ctx, "k1"); err != nil {
		t.Fatalf("second delete must be a no-op: %v", err)
	}
	if store.Len() != 0 {
		t.Errorf("Len = %d, expected 0", store.Len())
	}
}

func TestMemoryStore_ListByPrefix(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	_ = store.Put(ctx, "published/catalog.json", []byte("{}"), "application/json")
	_ = store.Put(ctx, "p1--img.png", []byte("x"), "image/png")
	_ = store.Put(ctx, "p2--img.png", []byte("x"), "image/png")

	infos, err := store.List(ctx, "published/")
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(infos) != 1 || infos[0].Key != "published/catalog.json" {
		t.Errorf("unexpected listing: %+v", infos)
	}

	all, err := store.List(ctx, "")
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(all) != 3 {
		t.Errorf("expected 3 keys, got %d", len(all))
	}
}

func TestMemoryStore_SetModified(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	_ = store.Put(ctx, "k", []byte("x"), "text/plain")
	past := time.Now().Add(-72 * time.Hour)
	store.SetModified("k", past)

	infos, _ := store.List(ctx, "")
	if len(infos) != 1 || !infos[0].LastModified.Equal(past) {
		t.Errorf("expected backdated timestamp, got %+v", infos)
	}
}
