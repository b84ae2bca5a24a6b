// Package bus implements the Dragon 32's 64 KiB address space: a flat byte
// array tagged per-cell as RAM, ROM, or memory-mapped I/O, with dispatch to
// registered peripheral handlers on every access.
package bus

import (
	"fmt"

	"github.com/dragon32/dragon32-core/internal/dragonlog"
)

// Size is the full 6809 address space.
const Size = 0x10000

// Tag identifies how a cell in the address space is backed.
type Tag uint8

const (
	// TagRAM is a plain read/write cell.
	TagRAM Tag = iota
	// TagROM is read-only; writes are dropped (logged, not fatal).
	TagROM
	// TagIO routes reads and writes through a registered Handler.
	TagIO
)

// Op distinguishes a read access from a write access when dispatching to an
// I/O Handler.
type Op uint8

const (
	OpRead Op = iota
	OpWrite
)

// Handler services memory-mapped I/O access to a contiguous address range.
// It is invoked with the byte value on write (ignored on read) and must
// return the value to surface to the CPU on read (ignored on write).
type Handler interface {
	HandleIO(addr uint16, value byte, op Op) byte
}

// HandlerFunc adapts a plain function to the Handler interface.
type HandlerFunc func(addr uint16, value byte, op Op) byte

func (f HandlerFunc) HandleIO(addr uint16, value byte, op Op) byte {
	return f(addr, value, op)
}

type ioRegion struct {
	lo, hi  uint16
	handler Handler
}

// Bus is the Dragon 32 memory/IO fabric shared by the CPU and every
// peripheral. It is single-threaded and re-entrant: handlers may themselves
// call Read/Write while servicing an access.
type Bus struct {
	cells   [Size]byte
	tags    [Size]Tag
	regions []ioRegion
	log     *dragonlog.Logger
}

// New returns a Bus with every cell tagged RAM and zeroed.
func New(log *dragonlog.Logger) *Bus {
	if log == nil {
		log = dragonlog.Discard()
	}
	return &Bus{log: log}
}

// Load copies bytes into RAM starting at base, regardless of the current
// tag of the destination cells. Call DefineROM afterwards to freeze the
// range.
func (b *Bus) Load(base uint16, data []byte) {
	for i, v := range data {
		addr := int(base) + i
		if addr >= Size {
			break
		}
		b.cells[addr] = v
	}
}

// DefineROM marks [lo, hi] (inclusive) read-only. It must be called after
// Load has populated the range.
func (b *Bus) DefineROM(lo, hi uint16) {
	for addr := uint32(lo); addr <= uint32(hi); addr++ {
		b.tags[addr] = TagROM
	}
}

// DefineRAM marks [lo, hi] (inclusive) as plain read/write RAM. Used to
// reclaim a range previously marked ROM or IO.
func (b *Bus) DefineRAM(lo, hi uint16) {
	for addr := uint32(lo); addr <= uint32(hi); addr++ {
		b.tags[addr] = TagRAM
	}
}

// DefineIO registers handler for [lo, hi] (inclusive). A later DefineIO call
// whose range covers an address already mapped to IO replaces the handler
// for that address (last-writer-wins).
func (b *Bus) DefineIO(lo, hi uint16, handler Handler) {
	for addr := uint32(lo); addr <= uint32(hi); addr++ {
		b.tags[addr] = TagIO
	}
	b.regions = append(b.regions, ioRegion{lo: lo, hi: hi, handler: handler})
}

func (b *Bus) handlerFor(addr uint16) Handler {
	// Last-registered matching region wins.
	for i := len(b.regions) - 1; i >= 0; i-- {
		r := b.regions[i]
		if addr >= r.lo && addr <= r.hi {
			return r.handler
		}
	}
	return nil
}

// Read returns the byte at addr, dispatching to a registered Handler for IO
// cells and returning 0 if an IO cell has no handler.
func (b *Bus) Read(addr uint16) byte {
	switch b.tags[addr] {
	case TagIO:
		if h := b.handlerFor(addr); h != nil {
			return h.HandleIO(addr, 0, OpRead)
		}
		return 0
	default:
		return b.cells[addr]
	}
}

// Write stores value at addr. Writes to ROM cells are silently dropped
// (logged at debug level); writes to IO cells are dispatched to the
// registered Handler; writes to an unregistered IO cell are ignored.
func (b *Bus) Write(addr uint16, value byte) {
	switch b.tags[addr] {
	case TagROM:
		b.log.Debugf("bus: dropped write 0x%02X to ROM address 0x%04X", value, addr)
	case TagIO:
		if h := b.handlerFor(addr); h != nil {
			h.HandleIO(addr, value, OpWrite)
		}
	default:
		b.cells[addr] = value
	}
}

// ReadWord reads a big-endian 16-bit value (the 6809's native byte order)
// at addr, addr+1.
func (b *Bus) ReadWord(addr uint16) uint16 {
	hi := b.Read(addr)
	lo := b.Read(addr + 1)
	return uint16(hi)<<8 | uint16(lo)
}

// WriteWord writes a big-endian 16-bit value at addr, addr+1.
func (b *Bus) WriteWord(addr uint16, value uint16) {
	b.Write(addr, byte(value>>8))
	b.Write(addr+1, byte(value))
}

// TagAt reports how addr is currently backed. Intended for debug/disassembly
// tooling, not the hot interpreter path.
func (b *Bus) TagAt(addr uint16) Tag {
	return b.tags[addr]
}

// Peek reads the raw underlying cell without triggering an IO handler.
// For debug tooling and tests that must not re-enter a handler; the VDG
// samples video RAM through Read.
func (b *Bus) Peek(addr uint16) byte {
	return b.cells[addr]
}

// Poke writes the raw underlying cell without triggering an IO handler or
// honouring ROM protection. Used only by loaders and tests.
func (b *Bus) Poke(addr uint16, value byte) {
	b.cells[addr] = value
}

func (t Tag) String() string {
	switch t {
	case TagRAM:
		return "RAM"
	case TagROM:
		return "ROM"
	case TagIO:
		return "IO"
	default:
		return fmt.Sprintf("Tag(%d)", t)
	}
}
