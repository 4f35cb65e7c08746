package client

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLocalStorageRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "storage.json")
	s := NewLocalStorage(path)

	if _, ok, err := s.GetItem(KeyUser); ok || err != nil {
		t.Fatalf("GetItem on missing file = %v, %v", ok, err)
	}
	if err := s.SetItem(KeyUser, `{"id":"user-123"}`); err != nil {
		t.Fatal(err)
	}
	if err := s.SetItem(KeySession, "sid"); err != nil {
		t.Fatal(err)
	}

	// a second handle sees what the first wrote
	other := NewLocalStorage(path)
	if v, ok, err := other.GetItem(KeyUser); !ok || err != nil || v != `{"id":"user-123"}` {
		t.Errorf("GetItem(user) = %q, %v, %v", v, ok, err)
	}

	if err := s.RemoveItem(KeyUser); err != nil {
		t.Fatal(err)
	}
	if _, ok, _ := s.GetItem(KeyUser); ok {
		t.Error("user still present after RemoveItem")
	}
	if v, _, _ := s.GetItem(KeySession); v != "sid" {
		t.Errorf("session = %q, want untouched", v)
	}
	if err := s.RemoveItem("never-set"); err != nil {
		t.Errorf("RemoveItem(never-set) = %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if perm := info.Mode().Perm(); perm != 0o600 {
		t.Errorf("file mode = %o, want 600", perm)
	}
}

func TestLocalStorageCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "storage.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o600); err != nil {
		t.Fatal(err)
	}
	s := NewLocalStorage(path)

	if _, _, err := s.GetItem(KeyUser); err == nil {
		t.Error("GetItem on corrupt file returned no error")
	}
	if err := s.RemoveItem(KeyUser); err != nil {
		t.Fatalf("RemoveItem: %v", err)
	}
	if _, ok, err := s.GetItem(KeyUser); ok || err != nil {
		t.Errorf("after RemoveItem = %v, %v; want clean empty storage", ok, err)
	}

	if err := os.WriteFile(path, []byte("]]"), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := s.SetItem(KeySession, "fresh"); err != nil {
		t.Fatalf("SetItem over corrupt file: %v", err)
	}
	if v, _, _ := s.GetItem(KeySession); v != "fresh" {
		t.Errorf("session = %q", v)
	}
}
