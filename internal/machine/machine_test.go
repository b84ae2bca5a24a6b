package machine

import (
	"hash/crc32"
	"testing"
)

type fakeReset struct{ pressed bool }

func (f *fakeReset) Pressed() bool { return f.pressed }

type fakeClock struct{ us uint32 }

func (f *fakeClock) NowUs() uint32 { return f.us }

type fakeKeyboard struct{ code byte }

func (f *fakeKeyboard) ReadScanCode() byte { c := f.code; f.code = 0; return c }

type fakeLoaderEscape struct{ called int }

func (f *fakeLoaderEscape) OnLoaderEscape() { f.called++ }

// setResetVector points 0xFFFE-F at addr via a plain RAM write, leaving
// the PIA/SAM/disk IO windows beneath it untouched (LoadROM would clobber
// them if it covered this range, since real ROM protection and the IO
// windows are disjoint sub-ranges of 0xFF00-0xFFFF).
func setResetVector(m *Machine, addr uint16) {
	m.Bus.Write(0xFFFE, byte(addr>>8))
	m.Bus.Write(0xFFFF, byte(addr))
}

func newTestMachine(t *testing.T, clock Clock, reset ResetButton) *Machine {
	t.Helper()
	m := New(Collaborators{Clock: clock, ResetButton: reset})
	setResetVector(m, 0xC000)
	m.CPU.Reset(true)
	return m
}

func TestStepAdvancesCPU(t *testing.T) {
	m := newTestMachine(t, &fakeClock{}, nil)
	if m.CPU.PC != 0xC000 {
		t.Fatalf("PC = 0x%04X, want 0xC000", m.CPU.PC)
	}
	m.Step()
	if m.CPU.PC == 0xC000 {
		t.Fatal("PC did not advance after Step")
	}
}

func TestWarmResetPreservesCPUButVectorsPC(t *testing.T) {
	clock := &fakeClock{}
	reset := &fakeReset{}
	m := newTestMachine(t, clock, reset)
	m.CPU.A = 0x42

	reset.pressed = true
	m.Step()
	clock.us = 100_000 // held 100ms, a short press
	reset.pressed = false
	m.Step()

	if m.CPU.A != 0x42 {
		t.Fatalf("A = 0x%02X, want 0x42 preserved across warm reset", m.CPU.A)
	}
	if m.CPU.PC != 0xC000 {
		t.Fatalf("PC = 0x%04X, want 0xC000 after warm reset", m.CPU.PC)
	}
}

func TestLongResetZeroesColdMarkerAndColdResets(t *testing.T) {
	clock := &fakeClock{}
	reset := &fakeReset{}
	m := newTestMachine(t, clock, reset)
	m.Bus.Write(coldResetMark, 0xFF)
	m.CPU.A = 0x99

	reset.pressed = true
	m.Step()
	clock.us = longResetUs + 1
	reset.pressed = false
	m.Step()

	if got := m.Bus.Read(coldResetMark); got != 0 {
		t.Fatalf("cold reset marker = 0x%02X, want 0", got)
	}
	if m.CPU.A != 0 {
		t.Fatalf("A = 0x%02X, want 0 after cold reset", m.CPU.A)
	}
}

func TestFunctionKeySuspendsCPUAndNotifiesLoaderEscape(t *testing.T) {
	kbd := &fakeKeyboard{code: 0x3B}
	escape := &fakeLoaderEscape{}
	clock := &fakeClock{}
	m := New(Collaborators{Keyboard: kbd, LoaderEscape: escape, Clock: clock})
	setResetVector(m, 0xC000)
	m.CPU.Reset(true)

	m.Step() // establishes the timing baseline; no VDG refresh yet
	clock.us = vdgRefreshUs
	m.Step() // crosses the refresh threshold, polling the keyboard

	if escape.called != 1 {
		t.Fatalf("OnLoaderEscape called %d times, want 1", escape.called)
	}
	if m.CPU.State().String() != "HALTED" {
		t.Fatalf("CPU state = %v, want HALTED", m.CPU.State())
	}
}

func TestMatchingBasicROMChecksumArmsTapeTrap(t *testing.T) {
	rom := []byte("a stand-in BASIC ROM image")
	old := basicROMChecksum
	basicROMChecksum = crc32.ChecksumIEEE(rom)
	defer func() { basicROMChecksum = old }()

	m := New(Collaborators{BasicROM: rom})
	if !m.Tape.ArmedForROM() {
		t.Fatal("tape trap should stay armed when the ROM checksum matches")
	}
}

func TestMismatchingBasicROMChecksumDisarmsTapeTrap(t *testing.T) {
	m := New(Collaborators{BasicROM: []byte("not the real BASIC ROM")})
	if m.Tape.ArmedForROM() {
		t.Fatal("tape trap should be disarmed when the ROM checksum does not match")
	}
}

func TestNoBasicROMLeavesTapeTrapArmed(t *testing.T) {
	m := New(Collaborators{})
	if !m.Tape.ArmedForROM() {
		t.Fatal("tape trap should default to armed when no ROM is supplied")
	}
}
