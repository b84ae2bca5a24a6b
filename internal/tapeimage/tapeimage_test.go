package tapeimage

import (
	"os"
	"path/filepath"
	"testing"
)

func TestCreateWithEmptyPathYieldsNoopImage(t *testing.T) {
	img, err := Create("")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if img.Type() != TypeNone {
		t.Fatalf("Type() = %v, want TypeNone", img.Type())
	}
	if err := img.WriteAll([]byte{0x01, 0x02}); err != nil {
		t.Fatalf("WriteAll on a TypeNone image should be a no-op, got: %v", err)
	}
	if err := img.Close(); err != nil {
		t.Fatalf("Close on a TypeNone image should be a no-op, got: %v", err)
	}
}

func TestCreateWithPathOpensCasFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.cas")
	img, err := Create(path)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	defer img.Close()

	if img.Type() != TypeCas {
		t.Fatalf("Type() = %v, want TypeCas", img.Type())
	}
}

func TestWriteAllWritesAndTruncates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.cas")
	img, err := Create(path)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	defer img.Close()

	first := []byte{0x55, 0x55, 0x3C, 0x00, 0x01, 0x02, 0x03}
	if err := img.WriteAll(first); err != nil {
		t.Fatalf("WriteAll: %v", err)
	}
	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if string(got) != string(first) {
		t.Fatalf("file contents = %v, want %v", got, first)
	}

	// A shorter second flush must truncate away the first flush's tail,
	// since WriteAll always rewrites a complete stream from offset 0.
	second := []byte{0xAA}
	if err := img.WriteAll(second); err != nil {
		t.Fatalf("WriteAll: %v", err)
	}
	got, err = os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if string(got) != string(second) {
		t.Fatalf("file contents after second flush = %v, want %v", got, second)
	}
}

func TestCreateWithUnwritableDirectoryErrors(t *testing.T) {
	_, err := Create(filepath.Join(t.TempDir(), "no-such-dir", "test.cas"))
	if err == nil {
		t.Fatal("expected an error creating a CAS file in a nonexistent directory")
	}
}

func TestCloseOnTypeNoneImageIsSafe(t *testing.T) {
	img := &Image{}
	if err := img.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
}
