package sqlite

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/skf-fest/refresko/internal/storage"
)

func TestEngine(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")
	engine, err := New(dbPath)
	if err != nil {
		t.Fatalf("Failed to create engine: %v", err)
	}
	defer engine.Close()

	t.Run("Get on absent key", func(t *testing.T) {
		_, ok, err := engine.Get("missing")
		if err != nil {
			t.Fatalf("Get failed: %v", err)
		}
		if ok {
			t.Error("Expected absent key to report !ok")
		}
	})

	t.Run("Set then Get", func(t *testing.T) {
		if err := engine.Set("isAuthenticated", []byte("true")); err != nil {
			t.Fatalf("Set failed: %v", err)
		}
		value, ok, err := engine.Get("isAuthenticated")
		if err != nil {
			t.Fatalf("Get failed: %v", err)
		}
		if !ok || string(value) != "true" {
			t.Errorf("Get = %q, %v; want \"true\", true", value, ok)
		}
	})

	t.Run("Set overwrites", func(t *testing.T) {
		if err := engine.Set("loginEmail", []byte("a@skf.in")); err != nil {
			t.Fatalf("Set failed: %v", err)
		}
		if err := engine.Set("loginEmail", []byte("b@skf.in")); err != nil {
			t.Fatalf("Set failed: %v", err)
		}
		value, _, err := engine.Get("loginEmail")
		if err != nil {
			t.Fatalf("Get failed: %v", err)
		}
		if string(value) != "b@skf.in" {
			t.Errorf("Get = %q, want overwritten value", value)
		}
	})

	t.Run("Delete", func(t *testing.T) {
		if err := engine.Set("temp", []byte("x")); err != nil {
			t.Fatalf("Set failed: %v", err)
		}
		if err := engine.Delete("temp"); err != nil {
			t.Fatalf("Delete failed: %v", err)
		}
		if _, ok, _ := engine.Get("temp"); ok {
			t.Error("Expected deleted key to be absent")
		}
		// Deleting again is a no-op.
		if err := engine.Delete("temp"); err != nil {
			t.Errorf("Delete of absent key failed: %v", err)
		}
	})

	t.Run("Keys and Clear", func(t *testing.T) {
		if err := engine.Clear(); err != nil {
			t.Fatalf("Clear failed: %v", err)
		}
		for _, key := range []string{"k1", "k2", "k3"} {
			if err := engine.Set(key, []byte("v")); err != nil {
				t.Fatalf("Set failed: %v", err)
			}
		}
		keys, err := engine.Keys()
		if err != nil {
			t.Fatalf("Keys failed: %v", err)
		}
		if len(keys) != 3 {
			t.Errorf("Keys returned %d entries, want 3", len(keys))
		}
		if err := engine.Clear(); err != nil {
			t.Fatalf("Clear failed: %v", err)
		}
		keys, _ = engine.Keys()
		if len(keys) != 0 {
			t.Errorf("Keys after Clear returned %d entries, want 0", len(keys))
		}
	})
}

func TestEngineCapacity(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")
	engine, err := New(dbPath, WithMaxValueBytes(8))
	if err != nil {
		t.Fatalf("Failed to create engine: %v", err)
	}
	defer engine.Close()

	if err := engine.Set("small", []byte("12345678")); err != nil {
		t.Fatalf("Set within cap failed: %v", err)
	}
	err = engine.Set("big", []byte("123456789"))
	if !errors.Is(err, storage.ErrCapacityExceeded) {
		t.Errorf("Set over cap = %v, want ErrCapacityExceeded", err)
	}
	if _, ok, _ := engine.Get("big"); ok {
		t.Error("Rejected write must not leave a value behind")
	}
}

func TestEngineDurability(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	engine, err := New(dbPath)
	if err != nil {
		t.Fatalf("Failed to create engine: %v", err)
	}
	if err := engine.Set("studentProfile", []byte(`{"studentId":"STU001"}`)); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if err := engine.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	reopened, err := New(dbPath)
	if err != nil {
		t.Fatalf("Failed to reopen engine: %v", err)
	}
	defer reopened.Close()

	value, ok, err := reopened.Get("studentProfile")
	if err != nil {
		t.Fatalf("Get after reopen failed: %v", err)
	}
	if !ok || string(value) != `{"studentId":"STU001"}` {
		t.Errorf("Get after reopen = %q, %v", value, ok)
	}
}
