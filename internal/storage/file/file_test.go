package file

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingKey(t *testing.T) {
	s, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("new store: %v", err)
	}

	_, ok, err := s.Load(context.Background(), "invoices_history")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if ok {
		t.Fatalf("expected ok=false for missing key")
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	s, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	ctx := context.Background()

	if err := s.Save(ctx, "customers", []byte(`["Alice Corp"]`)); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, ok, err := s.Load(ctx, "customers")
	if err != nil || !ok {
		t.Fatalf("load: ok=%v err=%v", ok, err)
	}
	if string(got) != `["Alice Corp"]` {
		t.Fatalf("loaded %q", got)
	}

	// A second save overwrites the whole value.
	if err := s.Save(ctx, "customers", []byte(`[]`)); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, _, _ = s.Load(ctx, "customers")
	if string(got) != `[]` {
		t.Fatalf("after overwrite loaded %q", got)
	}
}

func TestSaveLeavesNoTempFile(t *testing.T) {
	dir := t.TempDir()
	s, err := New(dir)
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	if err := s.Save(context.Background(), "customers", []byte(`[]`)); err != nil {
		t.Fatalf("save: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "customers.json.tmp")); !os.IsNotExist(err) {
		t.Fatalf("temp file left behind: %v", err)
	}
}
