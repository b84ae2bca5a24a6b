package tape

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/dragon32/dragon32-core/internal/tapeimage"
)

type fakeBus struct{ mem [65536]byte }

func (f *fakeBus) Read(addr uint16) byte { return f.mem[addr] }

type fakeCPU struct{ sp uint16 }

func (f *fakeCPU) StackPointer() uint16 { return f.sp }

// feedBytes drives the trap with one byte per handlerCallsPerByte calls,
// as OnWrite expects.
func feedBytes(t *testing.T, trap *Trap, bus *fakeBus, cpu *fakeCPU, data []byte) {
	t.Helper()
	for _, b := range data {
		bus.mem[cpu.sp] = b
		for i := 0; i < handlerCallsPerByte; i++ {
			trap.OnWrite(cpu)
		}
	}
}

func buildHeaderBlock(filename string) []byte {
	fn := make([]byte, filenameMaxLen)
	copy(fn, filename)
	block := []byte{blockTypeHeader, 0x0F}
	block = append(block, fn...)
	block = append(block, 0x02, 0x00, 0x00) // filetype, ascii, gap
	block = append(block, 0x00)             // cksum
	return block
}

func buildDataBlock(payload []byte) []byte {
	block := []byte{blockTypeData, byte(len(payload))}
	block = append(block, payload...)
	block = append(block, 0x00) // cksum
	return block
}

func buildEOFBlock() []byte {
	return []byte{blockTypeEOF, 0x00, 0x00}
}

func TestCaptureEndsIdleAndEmitsConcatenatedStream(t *testing.T) {
	bus := &fakeBus{}
	cpu := &fakeCPU{sp: 0x7000}

	var stream []byte
	stream = append(stream, leaderByte, leaderByte, syncByte)
	stream = append(stream, buildHeaderBlock("HELLO")...)
	stream = append(stream, buildDataBlock([]byte{'A', 'B'})...)
	stream = append(stream, buildEOFBlock()...)

	dir := t.TempDir()
	path := filepath.Join(dir, "out.cas")
	out, err := tapeimage.Create(path)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	trap := New(bus, out, nil)

	feedBytes(t, trap, bus, cpu, stream)

	if trap.State() != StateIdle {
		t.Fatalf("state = %v, want StateIdle", trap.State())
	}
	if trap.Filename() != "HELLO" {
		t.Fatalf("Filename() = %q, want HELLO", trap.Filename())
	}

	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if len(got) != len(stream) {
		t.Fatalf("output length = %d, want %d", len(got), len(stream))
	}
	for i := range stream {
		if got[i] != stream[i] {
			t.Fatalf("byte %d = 0x%02X, want 0x%02X", i, got[i], stream[i])
		}
	}
}

func TestMisalignedByteFallsBackToIdleWithoutError(t *testing.T) {
	bus := &fakeBus{}
	cpu := &fakeCPU{sp: 0x7000}
	trap := New(bus, nil, nil)

	feedBytes(t, trap, bus, cpu, []byte{leaderByte, 0x99})

	if trap.State() != StateIdle {
		t.Fatalf("state = %v, want StateIdle after misalignment", trap.State())
	}
}

func TestOnlyEveryHandlerCallsPerByteCountsAsOneByte(t *testing.T) {
	bus := &fakeBus{}
	cpu := &fakeCPU{sp: 0x7000}
	trap := New(bus, nil, nil)

	bus.mem[cpu.sp] = leaderByte
	for i := 0; i < handlerCallsPerByte-1; i++ {
		trap.OnWrite(cpu)
	}
	if trap.State() != StateIdle {
		t.Fatalf("state = %v, want StateIdle before the 16th call", trap.State())
	}
	trap.OnWrite(cpu)
	if trap.State() != StateLeader {
		t.Fatalf("state = %v, want StateLeader after the 16th call", trap.State())
	}
}

func TestNilOutputIsANoOp(t *testing.T) {
	bus := &fakeBus{}
	cpu := &fakeCPU{sp: 0x7000}
	trap := New(bus, nil, nil)

	var stream []byte
	stream = append(stream, leaderByte, syncByte)
	stream = append(stream, buildEOFBlock()...)
	feedBytes(t, trap, bus, cpu, stream)

	if trap.State() != StateIdle {
		t.Fatalf("state = %v, want StateIdle", trap.State())
	}
}
