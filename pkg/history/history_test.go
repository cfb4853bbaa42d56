package history

import (
	"os"
	"path/filepath"
	"testing"
)

func TestStore_AppendAndList(t *testing.T) {
	store, err := NewStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	first, err := store.Append(Entry{Dir: "/work/app", Packages: []string{"eslint"}, SaveDev: true})
	if err != nil {
		t.Fatalf("Append() failed: %v", err)
	}
	if first.ID == "" {
		t.Error("Append() did not assign an ID")
	}
	if first.Time.IsZero() {
		t.Error("Append() did not assign a timestamp")
	}

	second, err := store.Append(Entry{Dir: "/work/app", Packages: []string{"express"}})
	if err != nil {
		t.Fatal(err)
	}
	if second.ID == first.ID {
		t.Error("entries share an ID")
	}

	entries, err := store.List(0)
	if err != nil {
		t.Fatalf("List() failed: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("List() returned %d entries, want 2", len(entries))
	}
	if entries[0].ID != second.ID {
		t.Error("List() is not newest first")
	}
	if !entries[1].SaveDev {
		t.Error("SaveDev not persisted")
	}
}

func TestStore_ListLimit(t *testing.T) {
	store, err := NewStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	for _, pkg := range []string{"a", "b", "c"} {
		if _, err := store.Append(Entry{Packages: []string{pkg}}); err != nil {
			t.Fatal(err)
		}
	}

	entries, err := store.List(2)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 2 {
		t.Fatalf("List(2) returned %d entries", len(entries))
	}
	if entries[0].Packages[0] != "c" {
		t.Errorf("List(2)[0] = %v, want newest entry", entries[0].Packages)
	}
}

func TestStore_Clear(t *testing.T) {
	store, err := NewStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	if _, err := store.Append(Entry{Packages: []string{"lodash"}}); err != nil {
		t.Fatal(err)
	}
	if err := store.Clear(); err != nil {
		t.Fatalf("Clear() failed: %v", err)
	}

	entries, err := store.List(0)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Errorf("List() after Clear() returned %d entries", len(entries))
	}

	// clearing an already-empty store is fine
	if err := store.Clear(); err != nil {
		t.Errorf("second Clear() failed: %v", err)
	}
}

func TestStore_CorruptFileIgnored(t *testing.T) {
	dir := t.TempDir()
	store, err := NewStore(dir)
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "history.json"), []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}

	entries, err := store.List(0)
	if err != nil {
		t.Fatalf("List() failed on corrupt file: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("corrupt file yielded %d entries", len(entries))
	}
}

func TestDefaultDir_XDG(t *testing.T) {
	stateHome := t.TempDir()
	t.Setenv("XDG_STATE_HOME", stateHome)

	got, err := DefaultDir()
	if err != nil {
		t.Fatal(err)
	}
	want := filepath.Join(stateHome, "depkit")
	if got != want {
		t.Errorf("DefaultDir() = %q, want %q", got, want)
	}
}
