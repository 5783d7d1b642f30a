package history

import (
	"path/filepath"
	"testing"
	"time"
)

func newTestStorage(t *testing.T) (*Storage, string) {
	t.Helper()

	path := filepath.Join(t.TempDir(), "history.json")
	store, err := NewStorage(path)
	if err != nil {
		t.Fatalf("new storage: %v", err)
	}
	return store, path
}

func TestAddAndGet(t *testing.T) {
	store, _ := newTestStorage(t)

	record := NewRecord(KindSwap)
	record.SellSymbol = "SOL"
	record.SellAmount = "1"
	record.BuySymbol = "USDC"
	record.BuyAmount = "150"
	record.Signature = "sig"

	if err := store.Add(record); err != nil {
		t.Fatalf("add: %v", err)
	}
	if record.ID == "" {
		t.Fatal("expected a generated ID")
	}

	got, err := store.Get(record.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.SellSymbol != "SOL" || got.Signature != "sig" {
		t.Fatalf("unexpected record %+v", got)
	}

	if _, err := store.Get("missing"); err == nil {
		t.Fatal("expected error for missing record")
	}
}

func TestPersistence(t *testing.T) {
	store, path := newTestStorage(t)

	record := NewRecord(KindBridge)
	record.OrderID = "order-1"
	if err := store.Add(record); err != nil {
		t.Fatalf("add: %v", err)
	}

	// A fresh instance over the same file sees the saved record.
	reloaded, err := NewStorage(path)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if reloaded.Count() != 1 {
		t.Fatalf("expected 1 record after reload got %d", reloaded.Count())
	}

	got, err := reloaded.Get(record.ID)
	if err != nil {
		t.Fatalf("get after reload: %v", err)
	}
	if got.OrderID != "order-1" || got.Kind != KindBridge {
		t.Fatalf("unexpected record %+v", got)
	}
}

func TestListNewestFirst(t *testing.T) {
	store, _ := newTestStorage(t)

	older := NewRecord(KindSwap)
	older.CreatedAt = time.Now().Add(-time.Hour)
	newer := NewRecord(KindSwap)

	if err := store.Add(older); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := store.Add(newer); err != nil {
		t.Fatalf("add: %v", err)
	}

	records := store.List()
	if len(records) != 2 {
		t.Fatalf("expected 2 records got %d", len(records))
	}
	if records[0].ID != newer.ID {
		t.Fatal("expected newest record first")
	}
}

func TestListByKind(t *testing.T) {
	store, _ := newTestStorage(t)

	if err := store.Add(NewRecord(KindSwap)); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := store.Add(NewRecord(KindBridge)); err != nil {
		t.Fatalf("add: %v", err)
	}

	swaps := store.ListByKind(KindSwap)
	if len(swaps) != 1 || swaps[0].Kind != KindSwap {
		t.Fatalf("unexpected swaps %+v", swaps)
	}

	bridges := store.ListByKind(KindBridge)
	if len(bridges) != 1 || bridges[0].Kind != KindBridge {
		t.Fatalf("unexpected bridges %+v", bridges)
	}
}

func TestMissingFileIsNotAnError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "does", "not", "exist", "history.json")

	store, err := NewStorage(path)
	if err != nil {
		t.Fatalf("new storage: %v", err)
	}
	if store.Count() != 0 {
		t.Fatalf("expected empty storage got %d", store.Count())
	}
}
