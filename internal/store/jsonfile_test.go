package store

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

type testRecord struct {
	ID    string `json:"id"`
	Value int    `json:"value"`
}

func TestCollectionStartsEmpty(t *testing.T) {
	col, err := newCollection[testRecord](filepath.Join(t.TempDir(), "records.json"))
	if err != nil {
		t.Fatalf("new collection: %v", err)
	}

	records, err := col.List()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(records) != 0 {
		t.Fatalf("expected empty collection, got %d records", len(records))
	}
}

func TestCollectionRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "records.json")
	col, err := newCollection[testRecord](path)
	if err != nil {
		t.Fatalf("new collection: %v", err)
	}

	want := []testRecord{{ID: "a", Value: 1}, {ID: "b", Value: 2}}
	err = col.Mutate(func(records []testRecord) ([]testRecord, error) {
		return append(records, want...), nil
	})
	if err != nil {
		t.Fatalf("mutate: %v", err)
	}

	// A fresh collection over the same file must see the same records.
	reopened, err := newCollection[testRecord](path)
	if err != nil {
		t.Fatalf("reopen collection: %v", err)
	}
	got, err := reopened.List()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != len(want) {
		t.Fatalf("expected %d records, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("record %d: got %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestCollectionMutateErrorWritesNothing(t *testing.T) {
	col, err := newCollection[testRecord](filepath.Join(t.TempDir(), "records.json"))
	if err != nil {
		t.Fatalf("new collection: %v", err)
	}
	if err := col.Mutate(func(records []testRecord) ([]testRecord, error) {
		return append(records, testRecord{ID: "a"}), nil
	}); err != nil {
		t.Fatalf("mutate: %v", err)
	}

	boom := errors.New("boom")
	err = col.Mutate(func(records []testRecord) ([]testRecord, error) {
		records[0].Value = 99
		return records, boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected mutation error, got %v", err)
	}

	records, err := col.List()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if records[0].Value != 0 {
		t.Fatalf("failed mutation was persisted: %+v", records[0])
	}
}

func TestCollectionCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "records.json")
	col, err := newCollection[testRecord](path)
	if err != nil {
		t.Fatalf("new collection: %v", err)
	}
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatalf("corrupt file: %v", err)
	}

	if _, err := col.List(); !errors.Is(err, ErrStorageUnavailable) {
		t.Fatalf("expected ErrStorageUnavailable, got %v", err)
	}
	err = col.Mutate(func(records []testRecord) ([]testRecord, error) {
		return records, nil
	})
	if !errors.Is(err, ErrStorageUnavailable) {
		t.Fatalf("expected ErrStorageUnavailable from mutate, got %v", err)
	}
}
