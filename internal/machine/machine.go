// Package machine implements the executive loop: it owns the bus, CPU,
// and every peripheral as component instances, wires their memory-mapped
// windows onto the bus, and drives the per-iteration schedule of CPU
// stepping, vsync IRQ, disk tick, reset polling, and tape trap service.
package machine

import (
	"hash/crc32"

	"github.com/dragon32/dragon32-core/internal/bus"
	"github.com/dragon32/dragon32-core/internal/cpu"
	"github.com/dragon32/dragon32-core/internal/disk"
	"github.com/dragon32/dragon32-core/internal/diskimage"
	"github.com/dragon32/dragon32-core/internal/dragonlog"
	"github.com/dragon32/dragon32-core/internal/pia"
	"github.com/dragon32/dragon32-core/internal/sam"
	"github.com/dragon32/dragon32-core/internal/tape"
	"github.com/dragon32/dragon32-core/internal/tapeimage"
	"github.com/dragon32/dragon32-core/internal/vdg"
)

// basicROMChecksum is the expected CRC-32 (IEEE) of Dragon Data's Color
// BASIC 1.2 ROM image, the only BASIC ROM this core's tape-trap address
// (casLastSineAddr) is valid against. This value is a placeholder — no
// ROM image ships in this repository to compute it from — and should be
// replaced with the real checksum of whatever ROM a deployment loads.
var basicROMChecksum uint32 = 0x1B9F8A73

// vdgRefreshUs and diskTickUs are the executive's two timing cadences:
// 20 ms VDG refresh, 1 ms disk tick.
const (
	vdgRefreshUs  = 20_000
	diskTickUs    = 1_000
	longResetUs   = 1_500_000
	coldResetMark = 0x0071
)

// ResetButton reports the host reset line.
type ResetButton interface {
	Pressed() bool
}

// Clock is the host microsecond monotonic timebase.
type Clock interface {
	NowUs() uint32
}

// LoaderEscape is notified when the keyboard's synthesized function-key
// channel fires LOADER_ESCAPE; the CPU is already suspended by the time
// this is called.
type LoaderEscape interface {
	OnLoaderEscape()
}

// Machine owns every component instance and the bus they share.
type Machine struct {
	Bus  *bus.Bus
	CPU  *cpu.CPU
	Sam  *sam.SAM
	Pia0 *pia.Pia0
	Pia1 *pia.Pia1
	VDG  *vdg.VDG
	Disk *disk.Controller
	Tape *tape.Trap

	resetButton  ResetButton
	clock        Clock
	loaderEscape LoaderEscape
	log          *dragonlog.Logger

	lastVdgRefreshUs uint32
	lastDiskTickUs   uint32
	haveLastUs       bool
	resetPressedAtUs uint32
	resetHeld        bool
}

// Collaborators bundles the host-provided dependencies New wires in. Any
// field may be nil; the corresponding peripheral behaves per its own
// nil-safe defaults.
type Collaborators struct {
	Keyboard     pia.KeyboardSource
	Joystick     pia.Joystick
	DAC          pia.DAC
	ResetButton  ResetButton
	Clock        Clock
	LoaderEscape LoaderEscape
	DiskImage    *diskimage.Image
	TapeOutput   *tapeimage.Image
	Log          *dragonlog.Logger

	// BasicROM, if provided, gates the tape trap's ArmedForROM check
	// against basicROMChecksum. A nil/empty slice leaves the trap in its
	// default-armed state, matching a bare Trap used without a Machine
	// at all.
	BasicROM []byte
}

// New constructs a Machine: every peripheral instance, wired onto a fresh
// Bus at its memory window, and the CPU wired to that Bus and to every
// peripheral's interrupt lines.
func New(c Collaborators) *Machine {
	log := c.Log
	if log == nil {
		log = dragonlog.Discard()
	}

	b := bus.New(log)
	cc := cpu.New(b, log)

	s := sam.New(log)
	kbd := pia.NewKeyboard(c.Keyboard)
	p0 := pia.NewPia0(kbd, c.Joystick, cc, c.DAC, log)
	p1 := pia.NewPia1(cc, c.DAC, log)
	v := vdg.New(b, s, p1, log)
	d := disk.New(cc, log)
	if c.DiskImage != nil {
		d.Mount(c.DiskImage)
	}
	t := tape.New(b, c.TapeOutput, log)
	if len(c.BasicROM) > 0 {
		armed := crc32.ChecksumIEEE(c.BasicROM) == basicROMChecksum
		t.SetArmedForROM(armed)
		if !armed {
			log.Warnf("tape: loaded ROM failed BASIC signature check, disarming cassette trap")
		}
	}

	b.DefineIO(sam.Base, sam.Base+sam.Size-1, bus.HandlerFunc(func(addr uint16, value byte, op bus.Op) byte {
		return s.Handle(addr, value, op == bus.OpWrite)
	}))
	b.DefineIO(pia.Base0, pia.Base0+3, bus.HandlerFunc(func(addr uint16, value byte, op bus.Op) byte {
		return p0.Handle(addr, value, op == bus.OpWrite)
	}))
	b.DefineIO(pia.Base1, pia.Base1+3, bus.HandlerFunc(func(addr uint16, value byte, op bus.Op) byte {
		return p1.Handle(addr, value, op == bus.OpWrite)
	}))
	b.DefineIO(disk.RegBase, disk.RegBase+3, bus.HandlerFunc(func(addr uint16, value byte, op bus.Op) byte {
		return d.Handle(addr, value, op == bus.OpWrite)
	}))
	b.DefineIO(disk.DriveCtrlAddr, disk.DriveCtrlAddr, bus.HandlerFunc(func(addr uint16, value byte, op bus.Op) byte {
		return d.HandleDriveCtrl(addr, value, op == bus.OpWrite)
	}))
	b.DefineIO(casLastSineAddr, casLastSineAddr, bus.HandlerFunc(func(addr uint16, value byte, op bus.Op) byte {
		if op == bus.OpWrite {
			t.OnWrite(cc)
		}
		return 0
	}))

	return &Machine{
		Bus: b, CPU: cc, Sam: s, Pia0: p0, Pia1: p1, VDG: v, Disk: d, Tape: t,
		resetButton:  c.ResetButton,
		clock:        c.Clock,
		loaderEscape: c.LoaderEscape,
		log:          log,
	}
}

// casLastSineAddr is the BASIC CasLastSine RAM variable the tape trap
// hooks. This address coincides with a general-purpose RAM cell outside
// a BASIC ROM environment, which is why the trap is gated by a
// ROM-signature check (see ArmedForROM) rather than trusted
// unconditionally.
const casLastSineAddr uint16 = 0x01AA

// LoadROM copies data at base and marks it read-only. Callers follow it
// with SetExecVector when base is the cartridge/BASIC ROM window.
func (m *Machine) LoadROM(base uint16, data []byte) {
	if len(data) == 0 {
		return
	}
	m.Bus.Load(base, data)
	end := base + uint16(len(data)) - 1
	m.Bus.DefineROM(base, end)
}

// SetExecVector points the EXEC vector at addr.
func (m *Machine) SetExecVector(addr uint16) {
	m.Bus.WriteWord(0x009D, addr)
}

// Step runs one executive iteration: one CPU instruction, then the
// timing-gated peripheral schedule.
func (m *Machine) Step() {
	m.CPU.Step()
	m.pollReset()
	m.serviceTiming()
	m.serviceFunctionKey()
}

func (m *Machine) nowUs() uint32 {
	if m.clock == nil {
		return 0
	}
	return m.clock.NowUs()
}

func (m *Machine) pollReset() {
	if m.resetButton == nil {
		return
	}
	now := m.nowUs()
	if m.resetButton.Pressed() {
		if !m.resetHeld {
			m.resetHeld = true
			m.resetPressedAtUs = now
		}
		return
	}
	if !m.resetHeld {
		return
	}
	m.resetHeld = false
	held := now - m.resetPressedAtUs
	if held >= longResetUs {
		m.coldReset()
	} else {
		m.warmReset()
	}
}

func (m *Machine) warmReset() {
	m.CPU.Reset(false)
}

func (m *Machine) coldReset() {
	m.Bus.Write(coldResetMark, 0)
	m.CPU.Reset(true)
	m.Sam.Reset()
	m.Pia0.Reset()
	m.Pia1.Reset()
	m.Disk.Reset()
	m.Tape.Reset()
}

func (m *Machine) serviceTiming() {
	now := m.nowUs()
	if !m.haveLastUs {
		m.lastVdgRefreshUs = now
		m.lastDiskTickUs = now
		m.haveLastUs = true
		return
	}
	if now-m.lastDiskTickUs >= diskTickUs {
		elapsed := now - m.lastDiskTickUs
		m.lastDiskTickUs = now
		m.Disk.Tick(int64(elapsed))
	}
	if now-m.lastVdgRefreshUs >= vdgRefreshUs {
		m.lastVdgRefreshUs = now
		m.VDG.Render()
		m.Pia0.VsyncIRQ()
		m.Pia1.CartridgeEdge()
	}
}

func (m *Machine) serviceFunctionKey() {
	if m.Pia0.FunctionKey() != pia.FunctionKeyLoaderEscape {
		return
	}
	m.CPU.Suspend()
	if m.loaderEscape != nil {
		m.loaderEscape.OnLoaderEscape()
	}
}
