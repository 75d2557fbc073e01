package store

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestFilePersister_SaveLoad_RoundTrip(t *testing.T) {
	p, err := NewFilePersister(t.TempDir(), testLogger())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	in := map[int64]string{1: "one", 2: "two"}
	if err := p.Save("pairs", in); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	var out map[int64]string
	found, err := p.Load("pairs", &out)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !found {
		t.Fatal("expected snapshot to be found")
	}
	if len(out) != 2 || out[1] != "one" || out[2] != "two" {
		t.Fatalf("unexpected round-trip result: %v", out)
	}
}

func TestFilePersister_Load_Missing(t *testing.T) {
	p, err := NewFilePersister(t.TempDir(), testLogger())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	var out map[int64]string
	found, err := p.Load("absent", &out)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if found {
		t.Fatal("expected found=false for a missing snapshot")
	}
}

func TestFilePersister_Load_Corrupt(t *testing.T) {
	dir := t.TempDir()
	p, err := NewFilePersister(dir, testLogger())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if err := os.WriteFile(filepath.Join(dir, "bad.json"), []byte("{not json"), 0o644); err != nil {
		t.Fatalf("failed to write corrupt snapshot: %v", err)
	}

	var out map[int64]string
	found, err := p.Load("bad", &out)
	if err != nil {
		t.Fatalf("expected no error from a corrupt snapshot, got %v", err)
	}
	if found {
		t.Fatal("expected found=false for a corrupt snapshot")
	}
}

func TestFilePersister_Save_ReplacesPrevious(t *testing.T) {
	p, err := NewFilePersister(t.TempDir(), testLogger())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if err := p.Save("state", []int{1, 2, 3}); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if err := p.Save("state", []int{4}); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	var out []int
	found, err := p.Load("state", &out)
	if err != nil || !found {
		t.Fatalf("expected snapshot, got found=%v err=%v", found, err)
	}
	if len(out) != 1 || out[0] != 4 {
		t.Fatalf("expected latest snapshot [4], got %v", out)
	}
}
