package scholar

import (
	"path/filepath"
	"testing"
)

func TestCache_PutGet(t *testing.T) {
	cache, err := OpenCache(filepath.Join(t.TempDir(), "cache.db"))
	if err != nil {
		t.Fatalf("OpenCache() error: %v", err)
	}
	defer cache.Close()

	if _, ok, err := cache.Get("abc123"); err != nil || ok {
		t.Fatalf("Get() on empty cache = ok=%v err=%v, want miss", ok, err)
	}

	bib := "@article{x, title = {T}}"
	if err := cache.Put("abc123", bib); err != nil {
		t.Fatalf("Put() error: %v", err)
	}

	got, ok, err := cache.Get("abc123")
	if err != nil {
		t.Fatalf("Get() error: %v", err)
	}
	if !ok || got != bib {
		t.Errorf("Get() = %q ok=%v, want stored citation", got, ok)
	}
}

func TestCache_PutReplaces(t *testing.T) {
	cache, err := OpenCache(filepath.Join(t.TempDir(), "cache.db"))
	if err != nil {
		t.Fatalf("OpenCache() error: %v", err)
	}
	defer cache.Close()

	if err := cache.Put("k", "old"); err != nil {
		t.Fatal(err)
	}
	if err := cache.Put("k", "new"); err != nil {
		t.Fatal(err)
	}

	got, ok, _ := cache.Get("k")
	if !ok || got != "new" {
		t.Errorf("Get() after replace = %q, want new", got)
	}
}

func TestScraper_CloseClosesCache(t *testing.T) {
	cache, err := OpenCache(filepath.Join(t.TempDir(), "cache.db"))
	if err != nil {
		t.Fatalf("OpenCache() error: %v", err)
	}

	s := &Scraper{
		cancelTab:   func() {},
		cancelAlloc: func() {},
		cache:       cache,
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close() error: %v", err)
	}

	if err := cache.Put("k", "v"); err == nil {
		t.Error("Put() after Close() succeeded, cache database was not closed")
	}
}
