package main

import (
	"context"
	"testing"

	"invoicepad/internal/config"
)

func TestOpenStoreMemory(t *testing.T) {
	store, closeFn, err := openStore(context.Background(), config.Config{Backend: config.BackendMemory})
	if err != nil {
		t.Fatalf("memory backend failed: %v", err)
	}
	if store == nil {
		t.Fatalf("expected a store")
	}
	if closeFn != nil {
		t.Fatalf("memory backend needs no closer")
	}
}

func TestOpenStoreRejectsUnknownBackend(t *testing.T) {
	_, _, err := openStore(context.Background(), config.Config{Backend: "sqlite"})
	if err == nil {
		t.Fatalf("expected unknown backend to be rejected")
	}
}

func TestOpenStoreFile(t *testing.T) {
	store, _, err := openStore(context.Background(), config.Config{
		Backend: config.BackendFile,
		DataDir: t.TempDir(),
	})
	if err != nil {
		t.Fatalf("file backend failed: %v", err)
	}
	if store == nil {
		t.Fatalf("expected a store")
	}
}
