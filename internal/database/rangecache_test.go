package database

import (
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"
)

// setupTestCache opens a cache in a temp dir with a controllable clock.
func setupTestCache(t *testing.T) (*RangeCache, *time.Time) {
	t.Helper()

	rc, err := Open(t.TempDir(), DefaultOptions())
	if err != nil {
		t.Fatalf("failed to open cache: %v", err)
	}
	t.Cleanup(func() { _ = rc.Close() })

	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	rc.now = func() time.Time { return now }
	return rc, &now
}

func TestOpen(t *testing.T) {
	t.Parallel()

	t.Run("creates nested directory", func(t *testing.T) {
		t.Parallel()

		dir := filepath.Join(t.TempDir(), "a", "b")
		rc, err := Open(dir, DefaultOptions())
		if err != nil {
			t.Fatalf("Open() error = %v", err)
		}
		defer rc.Close()

		if _, err := os.Stat(filepath.Join(dir, FileName)); err != nil {
			t.Errorf("database file missing: %v", err)
		}
		if rc.Path() != filepath.Join(dir, FileName) {
			t.Errorf("Path() = %q", rc.Path())
		}
	})

	t.Run("missing database without create fails", func(t *testing.T) {
		t.Parallel()

		_, err := Open(t.TempDir(), Options{CreateIfNotExists: false})
		if err == nil {
			t.Fatal("expected error for missing database")
		}
	})

	t.Run("reopens existing database", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		rc, err := Open(dir, DefaultOptions())
		if err != nil {
			t.Fatal(err)
		}
		if err := rc.Put(t.Context(), "ABCDE", []byte("x:1")); err != nil {
			t.Fatal(err)
		}
		_ = rc.Close()

		rc, err = Open(dir, Options{CreateIfNotExists: false})
		if err != nil {
			t.Fatalf("reopen error = %v", err)
		}
		defer rc.Close()
		if _, ok, _ := rc.Get(t.Context(), "ABCDE"); !ok {
			t.Error("entry lost across reopen")
		}
	})

	t.Run("zero TTL uses default", func(t *testing.T) {
		t.Parallel()

		rc, err := Open(t.TempDir(), Options{CreateIfNotExists: true})
		if err != nil {
			t.Fatal(err)
		}
		defer rc.Close()
		if rc.TTL() != DefaultTTL {
			t.Errorf("TTL() = %v, want %v", rc.TTL(), DefaultTTL)
		}
	})
}

func TestRangeCache_PutGet(t *testing.T) {
	t.Parallel()

	rc, _ := setupTestCache(t)
	ctx := t.Context()

	if _, ok, err := rc.Get(ctx, "5BAA6"); err != nil || ok {
		t.Fatalf("Get() on empty cache = ok %v, err %v", ok, err)
	}

	body := []byte("1E4C9B93F3F0682250B6CF8331B7EE68FD8:10434004\r\n")
	if err := rc.Put(ctx, "5baa6", body); err != nil {
		t.Fatalf("Put() error = %v", err)
	}

	got, ok, err := rc.Get(ctx, "5BAA6")
	if err != nil || !ok {
		t.Fatalf("Get() = ok %v, err %v", ok, err)
	}
	if string(got) != string(body) {
		t.Errorf("Get() body = %q, want %q", got, body)
	}

	if err := rc.Put(ctx, "5BAA6", []byte("new")); err != nil {
		t.Fatalf("Put() overwrite error = %v", err)
	}
	got, _, _ = rc.Get(ctx, "5BAA6")
	if string(got) != "new" {
		t.Errorf("overwrite not applied, got %q", got)
	}
}

func TestRangeCache_TTL(t *testing.T) {
	t.Parallel()

	rc, now := setupTestCache(t)
	ctx := t.Context()

	if err := rc.Put(ctx, "ABCDE", []byte("x:1")); err != nil {
		t.Fatal(err)
	}

	*now = now.Add(rc.TTL() - time.Minute)
	if _, ok, _ := rc.Get(ctx, "ABCDE"); !ok {
		t.Error("entry should still be fresh")
	}

	*now = now.Add(2 * time.Minute)
	if _, ok, _ := rc.Get(ctx, "ABCDE"); ok {
		t.Error("entry should have expired")
	}
}

func TestRangeCache_InvalidPrefix(t *testing.T) {
	t.Parallel()

	rc, _ := setupTestCache(t)
	for _, p := range []string{"", "ABCD", "ABCDEF", "GHIJK", "5BAA61E4C9B93F3F0682250B6CF8331B7EE68FD8"} {
		if err := rc.Put(t.Context(), p, []byte("x")); !errors.Is(err, ErrInvalidPrefix) {
			t.Errorf("Put(%q) error = %v, want ErrInvalidPrefix", p, err)
		}
		if _, _, err := rc.Get(t.Context(), p); !errors.Is(err, ErrInvalidPrefix) {
			t.Errorf("Get(%q) error = %v, want ErrInvalidPrefix", p, err)
		}
	}
}

func TestRangeCache_PurgeListStats(t *testing.T) {
	t.Parallel()

	rc, now := setupTestCache(t)
	ctx := t.Context()

	if err := rc.Put(ctx, "00000", []byte("old")); err != nil {
		t.Fatal(err)
	}
	*now = now.Add(rc.TTL() + time.Hour)
	if err := rc.Put(ctx, "11111", []byte("fresh-1")); err != nil {
		t.Fatal(err)
	}
	if err := rc.Put(ctx, "22222", []byte("fresh-22")); err != nil {
		t.Fatal(err)
	}

	stats, err := rc.Stats(ctx)
	if err != nil {
		t.Fatalf("Stats() error = %v", err)
	}
	if stats.Entries != 3 || stats.Expired != 1 {
		t.Errorf("stats = %+v, want 3 entries, 1 expired", stats)
	}
	if stats.Bytes != int64(len("old")+len("fresh-1")+len("fresh-22")) {
		t.Errorf("bytes = %d", stats.Bytes)
	}
	if !stats.Newest.After(stats.Oldest) {
		t.Errorf("newest %v should be after oldest %v", stats.Newest, stats.Oldest)
	}

	entries, err := rc.List(ctx, 0)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("List() returned %d entries, want 3", len(entries))
	}
	if entries[len(entries)-1].Prefix != "00000" || !entries[len(entries)-1].Expired {
		t.Errorf("oldest entry = %+v, want expired 00000", entries[len(entries)-1])
	}
	if limited, _ := rc.List(ctx, 1); len(limited) != 1 {
		t.Errorf("List(1) returned %d entries", len(limited))
	}

	n, err := rc.Purge(ctx, true)
	if err != nil || n != 1 {
		t.Fatalf("Purge(expired) = %d, %v; want 1", n, err)
	}
	n, err = rc.Purge(ctx, false)
	if err != nil || n != 2 {
		t.Fatalf("Purge(all) = %d, %v; want 2", n, err)
	}

	stats, err = rc.Stats(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if stats.Entries != 0 || !stats.Oldest.IsZero() {
		t.Errorf("stats after purge = %+v", stats)
	}
}

func TestRangeCache_ConcurrentWrites(t *testing.T) {
	t.Parallel()

	rc, _ := setupTestCache(t)
	prefixes := []string{"AAAAA", "BBBBB", "CCCCC", "DDDDD", "EEEEE", "FFFFF"}

	var wg sync.WaitGroup
	for _, p := range prefixes {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := rc.Put(t.Context(), p, []byte(p+":1")); err != nil {
				t.Errorf("Put(%s) error = %v", p, err)
			}
		}()
	}
	wg.Wait()

	stats, err := rc.Stats(t.Context())
	if err != nil {
		t.Fatal(err)
	}
	if stats.Entries != len(prefixes) {
		t.Errorf("entries = %d, want %d", stats.Entries, len(prefixes))
	}
}
