package config

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

func TestFileTokenStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), TokenFileName)
	store := NewFileTokenStore(path)

	if _, err := store.Load(); !errors.Is(err, ErrNoToken) {
		t.Fatalf("Load() on empty store error = %v, want ErrNoToken", err)
	}

	if err := store.Save("abc123"); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	token, err := store.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if token != "abc123" {
		t.Errorf("Load() = %q, want %q", token, "abc123")
	}
}

func TestFileTokenStorePermissions(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("file modes are not meaningful on windows")
	}

	path := filepath.Join(t.TempDir(), TokenFileName)
	store := NewFileTokenStore(path)

	if err := store.Save("secret"); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if perm := info.Mode().Perm(); perm != 0600 {
		t.Errorf("token file mode = %o, want 0600", perm)
	}
}

func TestFileTokenStoreTrimsWhitespace(t *testing.T) {
	path := filepath.Join(t.TempDir(), TokenFileName)
	if err := os.WriteFile(path, []byte("  abc123\n"), 0600); err != nil {
		t.Fatal(err)
	}

	token, err := NewFileTokenStore(path).Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if token != "abc123" {
		t.Errorf("Load() = %q, want trimmed token", token)
	}
}

func TestFileTokenStoreClear(t *testing.T) {
	path := filepath.Join(t.TempDir(), TokenFileName)
	store := NewFileTokenStore(path)

	// Clearing a store that has no token is not an error.
	if err := store.Clear(); err != nil {
		t.Fatalf("Clear() on empty store error = %v", err)
	}

	if err := store.Save("abc123"); err != nil {
		t.Fatal(err)
	}
	if err := store.Clear(); err != nil {
		t.Fatalf("Clear() error = %v", err)
	}
	if _, err := store.Load(); !errors.Is(err, ErrNoToken) {
		t.Errorf("Load() after Clear() error = %v, want ErrNoToken", err)
	}
}

func TestMemoryTokenStore(t *testing.T) {
	store := &MemoryTokenStore{}

	if _, err := store.Load(); !errors.Is(err, ErrNoToken) {
		t.Fatalf("Load() on empty store error = %v, want ErrNoToken", err)
	}

	if err := store.Save("tok"); err != nil {
		t.Fatal(err)
	}
	token, err := store.Load()
	if err != nil || token != "tok" {
		t.Fatalf("Load() = %q, %v, want %q, nil", token, err, "tok")
	}

	if err := store.Clear(); err != nil {
		t.Fatal(err)
	}
	if _, err := store.Load(); !errors.Is(err, ErrNoToken) {
		t.Errorf("Load() after Clear() error = %v, want ErrNoToken", err)
	}
}
