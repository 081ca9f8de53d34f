package journal

import (
	"path/filepath"
	"testing"
	"time"

	bolt "go.etcd.io/bbolt"
)

func TestBoltStoreRecordsNewestFirst(t *testing.T) {
	storeRaw, err := openBolt(filepath.Join(t.TempDir(), "journal.db"), normalizeOptions(Options{}))
	if err != nil {
		t.Fatalf("openBolt: %v", err)
	}
	store := storeRaw.(*boltStore)
	defer store.Close()

	for _, path := range []string{"a", "b", "c"} {
		if err := store.Record(Entry{Method: "GET", Path: path, StatusCode: 200, Outcome: "ok"}); err != nil {
			t.Fatalf("Record %s: %v", path, err)
		}
	}

	entries, err := store.Recent(2)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(entries) != 2 || entries[0].Path != "c" || entries[1].Path != "b" {
		t.Fatalf("unexpected entries: %#v", entries)
	}
	if entries[0].ID == "" || entries[0].At.IsZero() {
		t.Fatalf("ID and At should be filled: %#v", entries[0])
	}

	all, err := store.Recent(0)
	if err != nil || len(all) != 3 {
		t.Fatalf("Recent(0) = %d entries, err=%v", len(all), err)
	}
}

func TestBoltStoreExpiresEntries(t *testing.T) {
	opts := Options{
		EntryTTL:        1 * time.Second,
		CleanupInterval: 1 * time.Second,
	}

	storeRaw, err := openBolt(filepath.Join(t.TempDir(), "journal.db"), opts)
	if err != nil {
		t.Fatalf("openBolt: %v", err)
	}
	store := storeRaw.(*boltStore)
	defer store.Close()

	if err := store.Record(Entry{Method: "GET", Path: "old"}); err != nil {
		t.Fatalf("Record: %v", err)
	}

	// Fast-forward cleanup cadence and trigger expiry.
	store.lastCleanup.Store(time.Now().Add(-2 * time.Second).Unix())
	time.Sleep(1100 * time.Millisecond)

	entries, err := store.Recent(10)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("expected expired entry to be hidden, got %#v", entries)
	}

	if err := store.Record(Entry{Method: "POST", Path: "new"}); err != nil {
		t.Fatalf("Record: %v", err)
	}
	entries, err = store.Recent(10)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(entries) != 1 || entries[0].Path != "new" {
		t.Fatalf("expected only the new entry, got %#v", entries)
	}
}

func TestBoltStorePurgeRemovesConsecutiveExpiredEntries(t *testing.T) {
	storeRaw, err := openBolt(filepath.Join(t.TempDir(), "journal.db"), Options{
		EntryTTL:        time.Hour,
		CleanupInterval: 24 * time.Hour,
	})
	if err != nil {
		t.Fatalf("openBolt: %v", err)
	}
	store := storeRaw.(*boltStore)
	defer store.Close()

	for i := 0; i < 5; i++ {
		if err := store.Record(Entry{Method: "GET", Path: "short"}); err != nil {
			t.Fatalf("Record: %v", err)
		}
	}
	store.entryTTL = 10 * time.Hour
	for i := 0; i < 2; i++ {
		if err := store.Record(Entry{Method: "GET", Path: "long"}); err != nil {
			t.Fatalf("Record: %v", err)
		}
	}

	removed, err := store.purgeExpired(time.Now().Add(2 * time.Hour))
	if err != nil {
		t.Fatalf("purgeExpired: %v", err)
	}
	if removed != 5 {
		t.Fatalf("removed = %d, want 5", removed)
	}

	var keys int
	if err := store.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(callsBucket)).ForEach(func(_, _ []byte) error {
			keys++
			return nil
		})
	}); err != nil {
		t.Fatalf("count keys: %v", err)
	}
	if keys != 2 {
		t.Fatalf("%d keys left in bucket, want 2", keys)
	}
}

func TestNewStoreTypes(t *testing.T) {
	s, err := NewStore("none", "", Options{})
	if err != nil {
		t.Fatalf("NewStore none: %v", err)
	}
	if err := s.Record(Entry{}); err != nil {
		t.Fatalf("noop Record: %v", err)
	}
	if _, err := NewStore("bbolt", " ", Options{}); err == nil {
		t.Fatalf("expected bbolt without path to fail")
	}
	if _, err := NewStore("redis", "x", Options{}); err == nil {
		t.Fatalf("expected unsupported type to fail")
	}

	s, err = NewStore("BBolt", filepath.Join(t.TempDir(), "nested", "j.db"), Options{})
	if err != nil {
		t.Fatalf("NewStore bbolt: %v", err)
	}
	defer s.Close()
	if _, ok := s.(*boltStore); !ok {
		t.Fatalf("expected *boltStore, got %T", s)
	}
}
