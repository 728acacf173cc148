package cache

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeSession(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestGetOrParseCachesByMtime(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "s.jsonl")
	writeSession(t, path, `{"type":"session_meta","payload":{"cwd":"/repo"}}`)

	c := New(4)
	first, err := c.GetOrParse(path)
	if err != nil {
		t.Fatalf("GetOrParse: %v", err)
	}
	second, err := c.GetOrParse(path)
	if err != nil {
		t.Fatalf("GetOrParse (cached): %v", err)
	}
	if first != second {
		t.Fatalf("expected the same cached *CodeAnalysis pointer on a hit, got different pointers")
	}
}

func TestGetOrParseReparsesOnMtimeChange(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "s.jsonl")
	writeSession(t, path, `{"type":"session_meta","payload":{"cwd":"/repo"}}`)

	c := New(4)
	first, err := c.GetOrParse(path)
	if err != nil {
		t.Fatalf("GetOrParse: %v", err)
	}

	future := time.Now().Add(time.Hour)
	if err := os.Chtimes(path, future, future); err != nil {
		t.Fatal(err)
	}

	second, err := c.GetOrParse(path)
	if err != nil {
		t.Fatalf("GetOrParse (after mtime change): %v", err)
	}
	if first == second {
		t.Fatalf("expected reparse to produce a fresh analysis after mtime changed")
	}
}

func TestGetOrParseMissingFile(t *testing.T) {
	c := New(4)
	if _, err := c.GetOrParse(filepath.Join(t.TempDir(), "missing.jsonl")); err == nil {
		t.Fatal("expected an error for a missing file")
	}
}

func TestEvictionAtCapacity(t *testing.T) {
	dir := t.TempDir()
	c := New(2)

	paths := make([]string, 3)
	for i := range paths {
		p := filepath.Join(dir, string(rune('a'+i))+".jsonl")
		writeSession(t, p, `{"type":"session_meta","payload":{"cwd":"/repo"}}`)
		paths[i] = p
		if _, err := c.GetOrParse(p); err != nil {
			t.Fatalf("GetOrParse(%s): %v", p, err)
		}
	}

	if got := c.Stats().Entries; got != 2 {
		t.Fatalf("expected capacity-bounded entry count 2, got %d", got)
	}
}

func TestInvalidateAndClear(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "s.jsonl")
	writeSession(t, path, `{"type":"session_meta","payload":{"cwd":"/repo"}}`)

	c := New(4)
	if _, err := c.GetOrParse(path); err != nil {
		t.Fatal(err)
	}
	c.Invalidate(path)
	if got := c.Stats().Entries; got != 0 {
		t.Fatalf("expected 0 entries after Invalidate, got %d", got)
	}

	if _, err := c.GetOrParse(path); err != nil {
		t.Fatal(err)
	}
	c.Clear()
	if got := c.Stats().Entries; got != 0 {
		t.Fatalf("expected 0 entries after Clear, got %d", got)
	}
}
