// Package sam implements the MC6883 Synchronous Address Multiplexer's
// memory-mapped toggle register window. The SAM captures
// video_mode and video_ram_offset and forwards them to the VDG; the
// remaining paged-memory fields are latched but inert, matching this
// core's fixed RAM/ROM memory map.
package sam

import "github.com/dragon32/dragon32-core/internal/dragonlog"

// Base and Size describe the SAM toggle window, 0xFFC0-0xFFDF.
const (
	Base uint16 = 0xFFC0
	Size uint16 = 0x20
)

// field names one of the 16 even/odd toggle pairs, in address order
// starting at Base.
type field int

const (
	fieldF6 field = iota
	fieldF5
	fieldF4
	fieldF3
	fieldF2
	fieldF1
	fieldF0
	fieldP1
	fieldTY
	fieldM0
	fieldM1
	fieldR0
	fieldR1
	fieldV0
	fieldV1
	fieldV2
	fieldCount
)

// SAM holds the 16 toggle bits and the two derived outputs consumed by the
// VDG.
type SAM struct {
	bits [fieldCount]bool
	log  *dragonlog.Logger
}

// New returns a SAM with all toggles clear (power-on state).
func New(log *dragonlog.Logger) *SAM {
	if log == nil {
		log = dragonlog.Discard()
	}
	return &SAM{log: log}
}

// Reset clears every toggle. The SAM has no independent reset line on real
// hardware; the executive calls this on a cold machine reset only.
func (s *SAM) Reset() {
	for i := range s.bits {
		s.bits[i] = false
	}
}

// Handle services a bus IO access in the SAM's window. Reads return an
// unspecified byte; writes toggle the field whose pair contains
// addr, even clears and odd sets.
func (s *SAM) Handle(addr uint16, value byte, write bool) byte {
	if !write {
		return 0
	}
	offset := addr - Base
	f := field(offset / 2)
	if f >= fieldCount {
		s.log.Debugf("sam: write to unmapped toggle offset 0x%02X", offset)
		return 0
	}
	s.bits[f] = offset%2 == 1
	return 0
}

func (s *SAM) bit(f field) byte {
	if s.bits[f] {
		return 1
	}
	return 0
}

// VideoMode returns the 3-bit SAM video mode (V2:V1:V0).
func (s *SAM) VideoMode() byte {
	return s.bit(fieldV2)<<2 | s.bit(fieldV1)<<1 | s.bit(fieldV0)
}

// VideoRAMOffset returns the 6-bit video RAM base offset, taken from
// F1..F6.
func (s *SAM) VideoRAMOffset() byte {
	return s.bit(fieldF6)<<5 | s.bit(fieldF5)<<4 | s.bit(fieldF4)<<3 |
		s.bit(fieldF3)<<2 | s.bit(fieldF2)<<1 | s.bit(fieldF1)
}
