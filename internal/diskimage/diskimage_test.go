package diskimage

import (
	"os"
	"path/filepath"
	"testing"
)

func TestOpenNoPathYieldsTypeNone(t *testing.T) {
	img, err := Open("")
	if err != nil {
		t.Fatalf("Open(\"\") error: %v", err)
	}
	if img.Type() != TypeNone {
		t.Fatalf("Type() = %v, want TypeNone", img.Type())
	}
	if err := img.ReadAt(0, make([]byte, 1)); err == nil {
		t.Fatal("ReadAt on TypeNone image should fail")
	}
}

func TestOpenVDKDetectsHeader(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.vdk")
	header := []byte{'D', 'K', 12, 0, 1, 0, 0, 0, 1, 1, 0, 0}
	payload := make([]byte, 18*256)
	for i := range payload {
		payload[i] = byte(i)
	}
	if err := os.WriteFile(path, append(header, payload...), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	img, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if img.Type() != TypeVDK {
		t.Fatalf("Type() = %v, want TypeVDK", img.Type())
	}
	if img.HeaderSize() != 12 {
		t.Fatalf("HeaderSize() = %d, want 12", img.HeaderSize())
	}

	buf := make([]byte, 4)
	if err := img.ReadAt(img.HeaderSize(), buf); err != nil {
		t.Fatalf("ReadAt: %v", err)
	}
	for i, b := range buf {
		if b != byte(i) {
			t.Fatalf("ReadAt()[%d] = %d, want %d", i, b, i)
		}
	}
}

func TestWriteThenReadRoundTrips(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.raw")
	if err := os.WriteFile(path, make([]byte, 512), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	img, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	want := []byte{1, 2, 3, 4}
	if err := img.WriteAt(100, want); err != nil {
		t.Fatalf("WriteAt: %v", err)
	}
	got := make([]byte, 4)
	if err := img.ReadAt(100, got); err != nil {
		t.Fatalf("ReadAt: %v", err)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("round-trip mismatch at %d: got %d want %d", i, got[i], want[i])
		}
	}
}
