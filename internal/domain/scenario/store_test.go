package scenario

import (
	"os"
	"path/filepath"
	"testing"
)

func TestStore_SaveAndList(t *testing.T) {
	store := NewStore(t.TempDir())

	saved, err := store.Save(map[string]interface{}{"name": "winter surge", "horizon_years": 3})
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if saved.ID == "" {
		t.Fatal("save returned an empty id")
	}
	if saved.SavedAt.IsZero() {
		t.Error("save returned a zero timestamp")
	}

	listed, err := store.List()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(listed) != 1 {
		t.Fatalf("list has %d entries, want 1", len(listed))
	}
	if listed[0].ID != saved.ID {
		t.Errorf("listed id = %q, want %q", listed[0].ID, saved.ID)
	}
	if listed[0].Payload["name"] != "winter surge" {
		t.Errorf("listed payload name = %v, want winter surge", listed[0].Payload["name"])
	}
}

func TestStore_GetRoundTrips(t *testing.T) {
	store := NewStore(t.TempDir())

	saved, err := store.Save(map[string]interface{}{"name": "baseline"})
	if err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := store.Get(saved.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Payload["name"] != "baseline" {
		t.Errorf("payload name = %v, want baseline", got.Payload["name"])
	}
	if !got.SavedAt.Equal(saved.SavedAt) {
		t.Errorf("saved_at = %v, want %v", got.SavedAt, saved.SavedAt)
	}
}

func TestStore_ListMissingDirectoryIsEmpty(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "does-not-exist"))
	listed, err := store.List()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(listed) != 0 {
		t.Errorf("list has %d entries, want 0", len(listed))
	}
}

func TestStore_GetRejectsNonUUIDIDs(t *testing.T) {
	base := t.TempDir()
	store := NewStore(filepath.Join(base, "saved"))
	if _, err := store.Save(map[string]interface{}{"name": "inside"}); err != nil {
		t.Fatalf("save: %v", err)
	}

	// A sibling file outside the store directory must stay unreachable
	// through Get, even with a traversal id.
	outside := filepath.Join(base, "outside")
	if err := os.WriteFile(outside+".json", []byte(`{"id":"outside"}`), 0o644); err != nil {
		t.Fatal(err)
	}

	for _, id := range []string{"../outside", "..%2Foutside", "not-a-uuid", ""} {
		if _, err := store.Get(id); err == nil {
			t.Errorf("Get(%q) succeeded, want error", id)
		}
	}
}

func TestStore_ListSkipsForeignFiles(t *testing.T) {
	dir := t.TempDir()
	store := NewStore(dir)
	if _, err := store.Save(map[string]interface{}{"name": "keep"}); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "README.txt"), []byte("not a scenario"), 0o644); err != nil {
		t.Fatal(err)
	}

	listed, err := store.List()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(listed) != 1 {
		t.Errorf("list has %d entries, want 1", len(listed))
	}
}
