package storage

import (
	"os"
	"path/filepath"
	"testing"
)

func TestRoundTripAcrossReopen(t *testing.T) {
	dir := t.TempDir()

	store := Open(dir)
	store.Set("token", "abc")
	store.Set("theme", "light")
	store.Delete("theme")

	reopened := Open(dir)
	if value, ok := reopened.Get("token"); !ok || value != "abc" {
		t.Fatalf("expected token to survive reopen, got %q ok=%v", value, ok)
	}
	if _, ok := reopened.Get("theme"); ok {
		t.Fatal("expected deleted key to stay deleted after reopen")
	}
	if reopened.Degraded() {
		t.Fatal("expected healthy store")
	}
}

func TestCorruptStateFileStartsClean(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "state.json"), []byte("{broken"), 0o600); err != nil {
		t.Fatal(err)
	}

	store := Open(dir)
	if _, ok := store.Get("token"); ok {
		t.Fatal("expected empty store after corrupt file")
	}
	if store.Degraded() {
		t.Fatal("a corrupt file should reset, not degrade")
	}

	store.Set("token", "fresh")
	if value, ok := Open(dir).Get("token"); !ok || value != "fresh" {
		t.Fatalf("expected write after reset to persist, got %q ok=%v", value, ok)
	}
}

func TestEmptyDirDegradesToMemory(t *testing.T) {
	store := Open("")
	if !store.Degraded() {
		t.Fatal("expected degraded store without a directory")
	}
	store.Set("token", "in-memory")
	if value, ok := store.Get("token"); !ok || value != "in-memory" {
		t.Fatalf("degraded store must still hold values, got %q ok=%v", value, ok)
	}
}

func TestInMemory(t *testing.T) {
	store := InMemory()
	if !store.Degraded() {
		t.Fatal("expected in-memory store to report degraded persistence")
	}
	store.Set("k", "v")
	if value, _ := store.Get("k"); value != "v" {
		t.Fatalf("got %q", value)
	}
	store.Delete("k")
	if _, ok := store.Get("k"); ok {
		t.Fatal("expected delete to remove the key")
	}
}
