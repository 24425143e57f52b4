package notify

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestWatcherPublishesOnFileChange(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "store.db")
	if err := os.WriteFile(dbPath, []byte("initial"), 0644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	bus := NewBus()
	sub := bus.Subscribe(TopicStoreChanged)
	defer sub.Unsubscribe()

	watcher, err := NewWatcher(dbPath, bus)
	if err != nil {
		t.Fatalf("NewWatcher failed: %v", err)
	}
	if err := watcher.Start(context.Background()); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	defer watcher.Stop()

	// Simulate another process writing the store file.
	if err := os.WriteFile(dbPath, []byte("changed"), 0644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	select {
	case event := <-sub.C:
		if event.Topic != TopicStoreChanged {
			t.Errorf("topic = %q, want %q", event.Topic, TopicStoreChanged)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("no store-changed event after file write")
	}
}

func TestWatcherIgnoresUnrelatedFiles(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "store.db")
	if err := os.WriteFile(dbPath, []byte("initial"), 0644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	bus := NewBus()
	sub := bus.Subscribe(TopicStoreChanged)
	defer sub.Unsubscribe()

	watcher, err := NewWatcher(dbPath, bus)
	if err != nil {
		t.Fatalf("NewWatcher failed: %v", err)
	}
	if err := watcher.Start(context.Background()); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	defer watcher.Stop()

	if err := os.WriteFile(filepath.Join(dir, "other.txt"), []byte("x"), 0644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	select {
	case <-sub.C:
		t.Error("unrelated file change produced a store event")
	case <-time.After(600 * time.Millisecond):
	}
}
