package jsonstore

import (
	"os"
	"path/filepath"
	"testing"
)

type testRecord struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Count int    `json:"count"`
}

func TestRoundTripPreservesOrderAndValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "records.json")
	store := New[[]testRecord](path)

	records := []testRecord{
		{ID: "a", Title: "first", Count: 1},
		{ID: "b", Title: "second", Count: 2},
		{ID: "c", Title: "third", Count: 3},
	}
	if err := store.Save(records); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}

	loaded := New[[]testRecord](path).Load()
	if len(loaded) != len(records) {
		t.Fatalf("expected %d records, got %d", len(records), len(loaded))
	}
	for i := range records {
		if loaded[i] != records[i] {
			t.Fatalf("record %d mismatch: got %+v want %+v", i, loaded[i], records[i])
		}
	}
}

func TestLoadMissingFileReturnsZero(t *testing.T) {
	store := New[[]testRecord](filepath.Join(t.TempDir(), "nope.json"))
	if got := store.Load(); got != nil {
		t.Fatalf("expected nil slice for missing file, got %v", got)
	}
}

func TestLoadCorruptFileReturnsZero(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatalf("seed corrupt file: %v", err)
	}
	store := New[[]testRecord](path)
	if got := store.Load(); got != nil {
		t.Fatalf("expected nil slice for corrupt file, got %v", got)
	}
}

func TestSaveOverwritesAtomically(t *testing.T) {
	path := filepath.Join(t.TempDir(), "records.json")
	store := New[[]testRecord](path)

	if err := store.Save([]testRecord{{ID: "a"}}); err != nil {
		t.Fatalf("first save: %v", err)
	}
	if err := store.Save([]testRecord{{ID: "b"}, {ID: "c"}}); err != nil {
		t.Fatalf("second save: %v", err)
	}

	loaded := store.Load()
	if len(loaded) != 2 || loaded[0].ID != "b" {
		t.Fatalf("expected second document to win, got %v", loaded)
	}

	entries, err := os.ReadDir(filepath.Dir(path))
	if err != nil {
		t.Fatalf("read dir: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected no leftover temp files, found %d entries", len(entries))
	}
}

func TestSaveCreatesParentDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "deep", "records.json")
	store := New[map[string]string](path)
	if err := store.Save(map[string]string{"k": "v"}); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}
	loaded := store.Load()
	if loaded["k"] != "v" {
		t.Fatalf("unexpected document %v", loaded)
	}
}
