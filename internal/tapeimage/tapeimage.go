// Package tapeimage implements the byte-stream file backend the tape trap
// flushes a captured CAS stream to, using a plain OS file as the stand-in
// for a real SD/FAT32-backed cassette output device.
package tapeimage

import (
	"fmt"
	"os"
)

// Type identifies whether an output path was configured.
type Type int

const (
	TypeNone Type = iota
	TypeCas
)

// Image is a write-only CAS output file. Unlike diskimage.Image it has no
// read path: the tape trap only ever writes a completed capture.
type Image struct {
	file *os.File
	typ  Type
}

// Create opens path for a single whole-buffer write. An empty path yields
// a TypeNone image: WriteAll becomes a no-op, representing "no tape
// output configured" rather than a fatal condition.
func Create(path string) (*Image, error) {
	if path == "" {
		return &Image{typ: TypeNone}, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return nil, fmt.Errorf("tapeimage: create %q: %w", path, err)
	}
	return &Image{file: f, typ: TypeCas}, nil
}

// Type reports whether an output file is configured.
func (img *Image) Type() Type { return img.typ }

// WriteAll flushes a complete CAS byte stream, overwriting any prior
// contents. Each tape-trap EOF produces exactly one such call.
func (img *Image) WriteAll(data []byte) error {
	if img.typ == TypeNone {
		return nil
	}
	if _, err := img.file.WriteAt(data, 0); err != nil {
		return fmt.Errorf("tapeimage: write: %w", err)
	}
	return img.file.Truncate(int64(len(data)))
}

// Close releases the underlying file, if any.
func (img *Image) Close() error {
	if img.file == nil {
		return nil
	}
	return img.file.Close()
}
