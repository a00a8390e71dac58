package store

import (
	"context"
	"path/filepath"
	"testing"
)

func TestFileMediumRoundTrip(t *testing.T) {
	m, err := NewFileMedium(filepath.Join(t.TempDir(), "photos.json"))
	if err != nil {
		t.Fatal(err)
	}

	ctx := context.Background()

	if _, ok, err := m.Read(ctx); err != nil || ok {
		t.Fatalf("fresh medium should be absent, got ok=%v err=%v", ok, err)
	}

	payload := []byte(`[{"id":"a"}]`)
	if err := m.Write(ctx, payload); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	got, ok, err := m.Read(ctx)
	if err != nil || !ok {
		t.Fatalf("Read failed: ok=%v err=%v", ok, err)
	}
	if string(got) != string(payload) {
		t.Errorf("expected %s, got %s", payload, got)
	}

	// Overwrite replaces, not appends.
	if err := m.Write(ctx, []byte(`[]`)); err != nil {
		t.Fatal(err)
	}
	got, _, _ = m.Read(ctx)
	if string(got) != `[]` {
		t.Errorf("expected [], got %s", got)
	}
}

func TestSQLiteMediumRoundTrip(t *testing.T) {
	m, err := NewSQLiteMedium(filepath.Join(t.TempDir(), "photos.db"), "polaroid-photos")
	if err != nil {
		t.Fatal(err)
	}
	defer m.Close()

	ctx := context.Background()

	if _, ok, err := m.Read(ctx); err != nil || ok {
		t.Fatalf("fresh medium should be absent, got ok=%v err=%v", ok, err)
	}

	if err := m.Write(ctx, []byte("one")); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	if err := m.Write(ctx, []byte("two")); err != nil {
		t.Fatalf("second Write failed: %v", err)
	}

	got, ok, err := m.Read(ctx)
	if err != nil || !ok {
		t.Fatalf("Read failed: ok=%v err=%v", ok, err)
	}
	if string(got) != "two" {
		t.Errorf("expected latest write, got %s", got)
	}
}

func TestMemoryMediumIsolatesCallers(t *testing.T) {
	m := NewMemoryMedium()
	ctx := context.Background()

	payload := []byte("abc")
	if err := m.Write(ctx, payload); err != nil {
		t.Fatal(err)
	}
	payload[0] = 'x'

	got, _, _ := m.Read(ctx)
	if string(got) != "abc" {
		t.Errorf("medium should copy payloads, got %s", got)
	}
}
