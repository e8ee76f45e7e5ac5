package theme

import "testing"

type mapStorage map[string]string

func (m mapStorage) Get(key string) (string, bool) {
	v, ok := m[key]
	return v, ok
}
func (m mapStorage) Set(key, value string) { m[key] = value }
func (m mapStorage) Delete(key string)     { delete(m, key) }

func TestDefaultsToDarkAndApplies(t *testing.T) {
	var applied []Mode
	store := New(mapStorage{}, func(m Mode) { applied = append(applied, m) })

	if !store.IsDark() {
		t.Fatal("expected dark default")
	}
	if len(applied) != 1 || applied[0] != Dark {
		t.Fatalf("expected dark applied on construction, got %v", applied)
	}
}

func TestLoadsPersistedLight(t *testing.T) {
	storage := mapStorage{"theme": "light"}
	store := New(storage, nil)
	if store.IsDark() {
		t.Fatal("expected persisted light mode")
	}
}

func TestUnknownValueFallsBackToDark(t *testing.T) {
	store := New(mapStorage{"theme": "sepia"}, nil)
	if !store.IsDark() {
		t.Fatal("expected dark for unknown persisted value")
	}
}

func TestToggleRoundTripPersists(t *testing.T) {
	storage := mapStorage{}
	var applied []Mode
	store := New(storage, func(m Mode) { applied = append(applied, m) })

	if got := store.Toggle(); got != Light {
		t.Fatalf("expected light after first toggle, got %v", got)
	}
	if storage["theme"] != "light" {
		t.Fatalf("expected light persisted, got %q", storage["theme"])
	}

	if got := store.Toggle(); got != Dark {
		t.Fatalf("expected dark after second toggle, got %v", got)
	}
	if storage["theme"] != "dark" {
		t.Fatalf("expected dark persisted, got %q", storage["theme"])
	}
	if len(applied) != 3 {
		t.Fatalf("expected 3 apply calls, got %d", len(applied))
	}

	// A fresh store sees the final persisted preference.
	if !New(storage, nil).IsDark() {
		t.Fatal("expected fresh store to load dark")
	}
}
