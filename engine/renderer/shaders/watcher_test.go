package shaders

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestWatcherReportsCompiledShaderWrites(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWatcher(dir)
	if err != nil {
		t.Fatalf("failed to create watcher: %s", err)
	}
	defer w.Close()

	target := filepath.Join(dir, "quad.vert.spv")
	if err := os.WriteFile(target, []byte{0x03, 0x02, 0x23, 0x07}, 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case got := <-w.Changed():
		if got != target {
			t.Errorf("expected %q, got %q", target, got)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("no change reported for a rewritten shader")
	}
}

func TestWatcherIgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWatcher(dir)
	if err != nil {
		t.Fatalf("failed to create watcher: %s", err)
	}
	defer w.Close()

	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("scratch"), 0o644); err != nil {
		t.Fatal(err)
	}
	target := filepath.Join(dir, "quad.frag.spv")
	if err := os.WriteFile(target, []byte{0x03, 0x02, 0x23, 0x07}, 0o644); err != nil {
		t.Fatal(err)
	}

	// The .spv write must come through; the .txt written before it must not.
	select {
	case got := <-w.Changed():
		if got != target {
			t.Errorf("expected %q, got %q", target, got)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("no change reported for a rewritten shader")
	}
}

func TestWatcherCloseStopsDelivery(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWatcher(dir)
	if err != nil {
		t.Fatalf("failed to create watcher: %s", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close: %s", err)
	}

	select {
	case _, ok := <-w.Changed():
		if ok {
			t.Error("unexpected event after close")
		}
	case <-time.After(5 * time.Second):
		t.Fatal("changed channel not closed after Close")
	}
}
