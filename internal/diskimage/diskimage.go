// Package diskimage implements the flat byte-stream file backend the
// WD2797 model consumes: a seekable image file, optionally
// wrapped in the VDK container format. The SD-card block driver and
// FAT32 layer that would sit beneath a real byte-stream collaborator on
// target hardware are explicitly out of this core's scope; this
// package stands in for that collaborator using a plain OS file, which is
// what the core's own interface boundary requires.
package diskimage

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
)

// Type identifies the container format backing an image.
type Type int

const (
	TypeNone Type = iota
	TypeRaw
	TypeVDK
)

// Typed media errors.
var (
	ErrSeekOutOfRange = errors.New("diskimage: seek out of range")
	ErrReadFault      = errors.New("diskimage: read fault")
	ErrWriteFault     = errors.New("diskimage: write fault")
	ErrNoImage        = errors.New("diskimage: no image mounted")
)

// vdkHeaderSize is the fixed 12-byte VDK header length.
const vdkHeaderSize = 12

// Header is the parsed VDK container header.
type Header struct {
	HeaderSize   uint16
	VDKVersion   byte
	VDKVersionOld byte
	SourceID     byte
	SourceVersion byte
	Tracks       byte
	Sides        byte
	Flags        byte
	Compression  byte
}

// Image is the byte-stream collaborator the disk controller drives.
type Image struct {
	file   *os.File
	typ    Type
	header Header
}

// Open mounts path as a disk image, auto-detecting the VDK container by
// its two-byte magic. A missing or empty path yields a TypeNone image:
// the controller's sector, address and track commands then complete
// immediately with RECORD NOT FOUND and transfer no data, while RESTORE
// and SEEK still move the track register.
func Open(path string) (*Image, error) {
	if path == "" {
		return &Image{typ: TypeNone}, nil
	}
	f, err := os.OpenFile(path, os.O_RDWR, 0o644)
	if err != nil {
		return &Image{typ: TypeNone}, nil
	}
	img := &Image{file: f, typ: TypeRaw}
	var magic [2]byte
	if _, err := f.ReadAt(magic[:], 0); err == nil && magic[0] == 'D' && magic[1] == 'K' {
		hdr, err := readHeader(f)
		if err != nil {
			return nil, fmt.Errorf("diskimage: parse VDK header: %w", err)
		}
		img.typ = TypeVDK
		img.header = hdr
	}
	return img, nil
}

func readHeader(f *os.File) (Header, error) {
	buf := make([]byte, vdkHeaderSize)
	if _, err := f.ReadAt(buf, 0); err != nil {
		return Header{}, ErrReadFault
	}
	return Header{
		HeaderSize:    binary.LittleEndian.Uint16(buf[2:4]),
		VDKVersion:    buf[4],
		VDKVersionOld: buf[5],
		SourceID:      buf[6],
		SourceVersion: buf[7],
		Tracks:        buf[8],
		Sides:         buf[9],
		Flags:         buf[10],
		Compression:   buf[11],
	}, nil
}

// Type reports the mounted image's container format.
func (img *Image) Type() Type { return img.typ }

// HeaderSize returns the VDK payload offset, or 0 for non-VDK images.
func (img *Image) HeaderSize() int64 {
	if img.typ != TypeVDK {
		return 0
	}
	return int64(img.header.HeaderSize)
}

// ReadAt reads len(buf) bytes at offset, per the byte-stream contract.
func (img *Image) ReadAt(offset int64, buf []byte) error {
	if img.typ == TypeNone {
		return ErrNoImage
	}
	if offset < 0 {
		return ErrSeekOutOfRange
	}
	n, err := img.file.ReadAt(buf, offset)
	if err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("%w: %v", ErrReadFault, err)
	}
	if n < len(buf) {
		for i := n; i < len(buf); i++ {
			buf[i] = 0
		}
	}
	return nil
}

// WriteAt writes buf at offset, per the byte-stream contract.
func (img *Image) WriteAt(offset int64, buf []byte) error {
	if img.typ == TypeNone {
		return ErrNoImage
	}
	if offset < 0 {
		return ErrSeekOutOfRange
	}
	if _, err := img.file.WriteAt(buf, offset); err != nil {
		return fmt.Errorf("%w: %v", ErrWriteFault, err)
	}
	return nil
}
