package snapshot

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/lumen-lang/lumen/runtime"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "snapshots.db"))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreSaveLoad(t *testing.T) {
	store := openTestStore(t)

	orig := sampleTree()
	defer orig.Release()

	id, err := store.Save(orig)
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if id == "" {
		t.Fatal("Save returned an empty id")
	}

	got, err := store.Load(id)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	defer got.Release()

	if got.Inspect() != orig.Inspect() {
		t.Errorf("loaded snapshot mismatch:\n got  %s\n want %s", got.Inspect(), orig.Inspect())
	}
}

func TestStoreLoadMissing(t *testing.T) {
	store := openTestStore(t)
	if _, err := store.Load("no-such-id"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Load of missing id returned %v, want ErrNotFound", err)
	}
}

func TestStoreDelete(t *testing.T) {
	store := openTestStore(t)

	id, err := store.Save(runtime.FromInt(1))
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if err := store.Delete(id); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := store.Load(id); !errors.Is(err, ErrNotFound) {
		t.Error("deleted snapshot should not load")
	}
	if err := store.Delete(id); !errors.Is(err, ErrNotFound) {
		t.Errorf("second Delete returned %v, want ErrNotFound", err)
	}
}

func TestStoreList(t *testing.T) {
	store := openTestStore(t)

	ids, err := store.List()
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(ids) != 0 {
		t.Fatalf("fresh store listed %d snapshots", len(ids))
	}

	want := make(map[string]bool)
	for i := 0; i < 3; i++ {
		id, err := store.Save(runtime.FromInt(int32(i)))
		if err != nil {
			t.Fatalf("Save failed: %v", err)
		}
		want[id] = true
	}

	ids, err = store.List()
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(ids) != len(want) {
		t.Fatalf("List returned %d ids, want %d", len(ids), len(want))
	}
	for _, id := range ids {
		if !want[id] {
			t.Errorf("List returned unknown id %s", id)
		}
	}
}

func TestStoreRejectsCallables(t *testing.T) {
	store := openTestStore(t)
	fn := runtime.FromFn(func(v runtime.Value) runtime.Value { return v })
	if _, err := store.Save(fn); err == nil {
		t.Error("Save should reject function payloads")
	}
}
