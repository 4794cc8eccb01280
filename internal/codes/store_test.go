package codes

import (
	"context"
	"testing"
	"time"
)

func TestMemoryStoreVerifyConsumesOnMatch(t *testing.T) {
	store := NewMemoryStore(time.Minute)
	ctx := context.Background()

	if err := store.Set(ctx, "+79990000001", "12345"); err != nil {
		t.Fatalf("Set: %v", err)
	}

	ok, err := store.Verify(ctx, "+79990000001", "12345")
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if !ok {
		t.Fatal("expected match")
	}

	ok, err = store.Verify(ctx, "+79990000001", "12345")
	if err != nil {
		t.Fatalf("second Verify: %v", err)
	}
	if ok {
		t.Fatal("code must be consumed after a successful verify")
	}
}

func TestMemoryStoreMismatchKeepsCode(t *testing.T) {
	store := NewMemoryStore(time.Minute)
	ctx := context.Background()

	if err := store.Set(ctx, "+79990000002", "12345"); err != nil {
		t.Fatalf("Set: %v", err)
	}

	ok, err := store.Verify(ctx, "+79990000002", "54321")
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if ok {
		t.Fatal("mismatch must not verify")
	}

	ok, err = store.Verify(ctx, "+79990000002", "12345")
	if err != nil {
		t.Fatalf("Verify after mismatch: %v", err)
	}
	if !ok {
		t.Fatal("a failed attempt must leave the stored code intact")
	}
}

func TestMemoryStoreSetOverwrites(t *testing.T) {
	store := NewMemoryStore(time.Minute)
	ctx := context.Background()

	store.Set(ctx, "+79990000003", "11111")
	store.Set(ctx, "+79990000003", "22222")

	if ok, _ := store.Verify(ctx, "+79990000003", "11111"); ok {
		t.Fatal("stale code must not verify after overwrite")
	}
	if ok, _ := store.Verify(ctx, "+79990000003", "22222"); !ok {
		t.Fatal("fresh code must verify")
	}
}

func TestMemoryStoreExpiry(t *testing.T) {
	store := NewMemoryStore(10 * time.Millisecond)
	ctx := context.Background()

	store.Set(ctx, "+79990000004", "12345")
	time.Sleep(20 * time.Millisecond)

	if ok, _ := store.Verify(ctx, "+79990000004", "12345"); ok {
		t.Fatal("expired code must not verify")
	}
}

func TestMemoryStoreMissingIdentity(t *testing.T) {
	store := NewMemoryStore(time.Minute)

	ok, err := store.Verify(context.Background(), "+79990000005", "12345")
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if ok {
		t.Fatal("unknown identity must not verify")
	}
}
