package storage

import (
	"errors"
	"testing"
)

func TestMemoryStoreRoundTrip(t *testing.T) {
	s := NewMemoryStore()

	if _, ok, err := s.Get("missing"); ok || err != nil {
		t.Fatalf("missing key: ok=%v err=%v", ok, err)
	}

	if err := s.Set("k", []byte("v1")); err != nil {
		t.Fatalf("set failed: %v", err)
	}
	value, ok, err := s.Get("k")
	if err != nil || !ok || string(value) != "v1" {
		t.Fatalf("get = %q ok=%v err=%v", value, ok, err)
	}

	if err := s.Set("k", []byte("v2")); err != nil {
		t.Fatalf("overwrite failed: %v", err)
	}
	value, _, _ = s.Get("k")
	if string(value) != "v2" {
		t.Errorf("expected overwrite, got %q", value)
	}

	if err := s.Delete("k"); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if _, ok, _ := s.Get("k"); ok {
		t.Error("key must be gone after delete")
	}
}

func TestMemoryStoreReturnsCopies(t *testing.T) {
	s := NewMemoryStore()
	original := []byte("data")
	s.Set("k", original)

	value, _, _ := s.Get("k")
	value[0] = 'X'

	again, _, _ := s.Get("k")
	if string(again) != "data" {
		t.Errorf("store must not share backing arrays with callers, got %q", again)
	}
}

func TestMemoryStoreFailWrites(t *testing.T) {
	s := NewMemoryStore()
	sentinel := errors.New("boom")
	s.FailWrites = sentinel

	if err := s.Set("k", []byte("v")); !errors.Is(err, sentinel) {
		t.Errorf("expected injected error, got %v", err)
	}
	if _, ok, _ := s.Get("k"); ok {
		t.Error("failed write must not store anything")
	}
}
