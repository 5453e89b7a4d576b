package storage

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

var (
	_ Provider = (*JSONStore)(nil)
	_ Provider = (*MemoryStore)(nil)
)

func setupTestJSONStore(t *testing.T) (*JSONStore, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "nested", "habitburn.json")
	store := NewJSONStore(path)
	if err := store.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	return store, path
}

func TestJSONStore_PersistsAcrossLoads(t *testing.T) {
	store, path := setupTestJSONStore(t)

	if err := store.Set("habits", []byte(`[{"id":"a"}]`)); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if err := store.Set("onboardingCompleted", []byte(`true`)); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("Stat failed: %v", err)
	}
	if info.Mode().Perm() != 0600 {
		t.Errorf("Expected file mode 0600, got %v", info.Mode().Perm())
	}

	reloaded := NewJSONStore(path)
	if err := reloaded.Load(); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	got, err := reloaded.Get("onboardingCompleted")
	if err != nil || string(got) != "true" {
		t.Errorf("Get after reload = %q, %v", got, err)
	}

	keys, _ := reloaded.Keys()
	if len(keys) != 2 || keys[0] != "habits" {
		t.Errorf("Keys() = %v, want [habits onboardingCompleted]", keys)
	}
}

func TestJSONStore_RejectsInvalidJSON(t *testing.T) {
	store, _ := setupTestJSONStore(t)

	if err := store.Set("user", []byte("{not json")); err == nil {
		t.Error("Expected Set to reject invalid JSON")
	}
}

func TestJSONStore_NotLoaded(t *testing.T) {
	store := NewJSONStore(filepath.Join(t.TempDir(), "x.json"))

	if _, err := store.Get("habits"); !errors.Is(err, ErrNotLoaded) {
		t.Errorf("Get error = %v, want ErrNotLoaded", err)
	}
	if err := store.Set("habits", []byte("[]")); !errors.Is(err, ErrNotLoaded) {
		t.Errorf("Set error = %v, want ErrNotLoaded", err)
	}
	if err := store.Load(); err == nil {
		t.Error("Expected Load of missing file to fail")
	}
}

func TestJSONStore_InitKeepsExistingData(t *testing.T) {
	store, path := setupTestJSONStore(t)
	if err := store.Set("user", []byte(`{"name":"Sam"}`)); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	again := NewJSONStore(path)
	if err := again.Init(); err != nil {
		t.Fatalf("second Init failed: %v", err)
	}
	if _, err := again.Get("user"); err != nil {
		t.Errorf("Expected existing record to survive Init, got %v", err)
	}
}

func TestJSONStore_ReplacesFileWithoutLeftovers(t *testing.T) {
	store, path := setupTestJSONStore(t)
	for _, v := range []string{`[]`, `[{"id":"a"}]`, `[{"id":"a"},{"id":"b"}]`} {
		if err := store.Set("habits", []byte(v)); err != nil {
			t.Fatalf("Set failed: %v", err)
		}
	}
	if err := store.Delete("habits"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	entries, err := os.ReadDir(filepath.Dir(path))
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 || entries[0].Name() != filepath.Base(path) {
		var names []string
		for _, e := range entries {
			names = append(names, e.Name())
		}
		t.Errorf("Expected only %s in the storage directory, got %v", filepath.Base(path), names)
	}

	reloaded := NewJSONStore(path)
	if err := reloaded.Load(); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if _, err := reloaded.Get("habits"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected deleted record to stay deleted, got %v", err)
	}
}

func TestMemoryStore(t *testing.T) {
	store := NewMemoryStore()
	if _, err := store.Get("habits"); !errors.Is(err, ErrNotLoaded) {
		t.Errorf("Get before Init error = %v, want ErrNotLoaded", err)
	}
	if err := store.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}

	value := []byte(`[]`)
	if err := store.Set("habits", value); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	value[0] = 'x'
	got, _ := store.Get("habits")
	if string(got) != "[]" {
		t.Errorf("Expected stored value to be copied, got %q", got)
	}

	if _, err := store.Get("user"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get(missing) error = %v, want ErrNotFound", err)
	}

	store.FailWrites = true
	if err := store.Set("habits", []byte(`[1]`)); err == nil {
		t.Error("Expected simulated write failure")
	}
	got, _ = store.Get("habits")
	if string(got) != "[]" {
		t.Errorf("Expected failed write to leave value intact, got %q", got)
	}
}
