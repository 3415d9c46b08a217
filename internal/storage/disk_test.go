package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestSaveAndRemove(t *testing.T) {
	dir := t.TempDir()
	store, err := NewDiskStore(dir, "http://media.test/vehicles/")
	if err != nil {
		t.Fatalf("store init failed: %v", err)
	}

	id, url, err := store.Save(context.Background(), "front.JPG", strings.NewReader("image bytes"))
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if id == "" {
		t.Fatal("expected a non-empty id")
	}
	if !strings.HasPrefix(url, "http://media.test/vehicles/") {
		t.Fatalf("unexpected url %q", url)
	}
	if !strings.HasSuffix(url, ".jpg") {
		t.Fatalf("expected lowercased extension in %q", url)
	}

	matches, _ := filepath.Glob(filepath.Join(dir, id+"*"))
	if len(matches) != 1 {
		t.Fatalf("expected one stored file, got %v", matches)
	}
	data, err := os.ReadFile(matches[0])
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	if string(data) != "image bytes" {
		t.Fatalf("stored content mismatch: %q", data)
	}

	if err := store.Remove(context.Background(), id); err != nil {
		t.Fatalf("remove failed: %v", err)
	}
	matches, _ = filepath.Glob(filepath.Join(dir, id+"*"))
	if len(matches) != 0 {
		t.Fatalf("expected file removed, got %v", matches)
	}
}

func TestSaveSanitizesExtension(t *testing.T) {
	store, err := NewDiskStore(t.TempDir(), "http://media.test")
	if err != nil {
		t.Fatalf("store init failed: %v", err)
	}

	_, url, err := store.Save(context.Background(), "payload.exe", strings.NewReader("x"))
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if !strings.HasSuffix(url, ".bin") {
		t.Fatalf("expected unknown extensions to become .bin, got %q", url)
	}
}

func TestRemoveMissingIsNoop(t *testing.T) {
	store, err := NewDiskStore(t.TempDir(), "http://media.test")
	if err != nil {
		t.Fatalf("store init failed: %v", err)
	}
	if err := store.Remove(context.Background(), "does-not-exist"); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
}

func TestNewDiskStoreRequiresBaseURL(t *testing.T) {
	if _, err := NewDiskStore(t.TempDir(), ""); err == nil {
		t.Fatal("expected error for empty base URL")
	}
}
