// Package cpu implements the MC6809E instruction interpreter at the heart
// of the Dragon 32 core. It executes one instruction per Step call,
// decodes the full page-0/page-2(0x10)/page-3(0x11) opcode map, and
// samples the NMI/FIRQ/IRQ line latches between instructions.
package cpu

import (
	"fmt"

	"github.com/dragon32/dragon32-core/internal/dragonlog"
)

// Bus is the memory interface the CPU requires. *bus.Bus satisfies it.
type Bus interface {
	Read(addr uint16) byte
	Write(addr uint16, value byte)
	ReadWord(addr uint16) uint16
	WriteWord(addr uint16, value uint16)
}

// Observer receives zero-overhead-when-unset trace/breakpoint hooks. Implementations must not mutate CPU state.
type Observer interface {
	OnInstructionEnd(snap Snapshot)
	OnIO(addr uint16, op byte, value byte)
	OnException(kind string)
}

const (
	vecReset = 0xFFFE
	vecNMI   = 0xFFFC
	vecSWI   = 0xFFFA
	vecIRQ   = 0xFFF8
	vecFIRQ  = 0xFFF6
	vecSWI2  = 0xFFF4
	vecSWI3  = 0xFFF2
)

// CPU is the MC6809E interpreter.
type CPU struct {
	Registers

	bus Bus
	log *dragonlog.Logger

	state State

	nmiLatch, firqLatch, irqLatch bool
	nmiArmed                      bool // false in the brief post-RESET window, until the first write to S
	lastOpcodeBytes               []byte

	observer Observer
}

// New returns a CPU wired to bus, already put through the cold power-on
// sequence (Reset(true)), so PC holds the reset vector read from bus.
func New(b Bus, log *dragonlog.Logger) *CPU {
	if log == nil {
		log = dragonlog.Discard()
	}
	c := &CPU{bus: b, log: log}
	c.Reset(true)
	return c
}

// SetObserver attaches (or detaches, with nil) the trace/breakpoint
// observer.
func (c *CPU) SetObserver(o Observer) { c.observer = o }

// Reset performs a cold or warm reset. Cold reset zeroes DP, sets
// CC.I and CC.F, and leaves the rest of the register file undefined (we
// zero it, for determinism, rather than leaving Go zero-values to chance);
// warm reset only updates CC.I, CC.F, and PC.
func (c *CPU) Reset(cold bool) {
	if cold {
		c.Registers = Registers{}
		c.DP = 0
	}
	c.CC |= FlagI | FlagF
	c.PC = c.bus.ReadWord(vecReset)
	c.state = StateRunning
	c.nmiLatch, c.firqLatch, c.irqLatch = false, false, false
	c.nmiArmed = false
}

// Irq, Firq, and Nmi assert the corresponding interrupt request latch. They
// are idempotent: asserting an already-pending line has no additional
// effect until the CPU accepts it.
func (c *CPU) Irq()  { c.irqLatch = true }
func (c *CPU) Firq() { c.firqLatch = true }
func (c *CPU) Nmi()  { c.nmiLatch = true }

// State returns the current coarse execution state.
func (c *CPU) State() State { return c.state }

// StackPointer returns S, the hardware stack pointer. It exists so I/O
// handlers can read bytes the ROM
// has pushed without being handed a mutable CPU reference.
func (c *CPU) StackPointer() uint16 { return c.S }

// Suspend halts CPU execution until Resume is called. The executive uses
// this when the keyboard's synthesized function-key channel reports
// LOADER_ESCAPE and defers control to the out-of-scope loader.
func (c *CPU) Suspend() { c.state = StateHalted }

// Resume returns a Suspend()-halted CPU to RUNNING. A CPU halted for any
// other reason (illegal opcode) is left untouched.
func (c *CPU) Resume() {
	if c.state == StateHalted {
		c.state = StateRunning
	}
}

// GetState returns a read-only snapshot of the register file and shadow
// state, suitable for peripherals and debug tooling.
func (c *CPU) GetState() Snapshot {
	bytesCopy := make([]byte, len(c.lastOpcodeBytes))
	copy(bytesCopy, c.lastOpcodeBytes)
	return Snapshot{
		A: c.A, B: c.B,
		X: c.X, Y: c.Y, U: c.U, S: c.S,
		PC: c.PC, DP: c.DP, CC: c.CC,
		LastPC: c.LastPC, LastBytes: bytesCopy,
		State: c.state,
	}
}

func (c *CPU) pushByteS(v byte) {
	c.S--
	c.bus.Write(c.S, v)
	c.nmiArmed = true
}

func (c *CPU) pullByteS() byte {
	v := c.bus.Read(c.S)
	c.S++
	return v
}

func (c *CPU) pushByteU(v byte) {
	c.U--
	c.bus.Write(c.U, v)
}

func (c *CPU) pullByteU() byte {
	v := c.bus.Read(c.U)
	c.U++
	return v
}

func (c *CPU) pushWordS(v uint16) {
	c.pushByteS(byte(v))
	c.pushByteS(byte(v >> 8))
}

func (c *CPU) pullWordS() uint16 {
	hi := c.pullByteS()
	lo := c.pullByteS()
	return uint16(hi)<<8 | uint16(lo)
}

// stackFull pushes the entire machine state (12 bytes, E set) in the order
// required by the stacking contract: PC_lo, PC_hi, U_lo, U_hi, Y_lo, Y_hi,
// X_lo, X_hi, DP, B, A, CC.
func (c *CPU) stackFull() {
	c.CC |= FlagE
	c.pushByteS(byte(c.PC))
	c.pushByteS(byte(c.PC >> 8))
	c.pushByteS(byte(c.U))
	c.pushByteS(byte(c.U >> 8))
	c.pushByteS(byte(c.Y))
	c.pushByteS(byte(c.Y >> 8))
	c.pushByteS(byte(c.X))
	c.pushByteS(byte(c.X >> 8))
	c.pushByteS(c.DP)
	c.pushByteS(c.B)
	c.pushByteS(c.A)
	c.pushByteS(c.CC)
}

// stackFast pushes the FIRQ-style 3-byte state (PC_lo, PC_hi, CC), E clear.
func (c *CPU) stackFast() {
	c.CC &^= FlagE
	c.pushByteS(byte(c.PC))
	c.pushByteS(byte(c.PC >> 8))
	c.pushByteS(c.CC)
}

func (c *CPU) unstack() {
	c.CC = c.pullByteS()
	if c.CC&FlagE != 0 {
		c.A = c.pullByteS()
		c.B = c.pullByteS()
		c.DP = c.pullByteS()
		xh := c.pullByteS()
		xl := c.pullByteS()
		c.X = uint16(xh)<<8 | uint16(xl)
		yh := c.pullByteS()
		yl := c.pullByteS()
		c.Y = uint16(yh)<<8 | uint16(yl)
		uh := c.pullByteS()
		ul := c.pullByteS()
		c.U = uint16(uh)<<8 | uint16(ul)
	}
	pch := c.pullByteS()
	pcl := c.pullByteS()
	c.PC = uint16(pch)<<8 | uint16(pcl)
}

// enterInterrupt vectors into an IRQ/NMI/SWI-family handler after a full
// stack, masking the appropriate lines.
func (c *CPU) enterInterrupt(vector uint16, maskIRQAndFIRQ bool) {
	c.stackFull()
	c.setFlag(FlagI, true)
	if maskIRQAndFIRQ {
		c.setFlag(FlagF, true)
	}
	c.PC = c.bus.ReadWord(vector)
	c.state = StateRunning
}

func (c *CPU) enterFirq() {
	c.stackFast()
	c.setFlag(FlagF, true)
	c.setFlag(FlagI, true)
	c.PC = c.bus.ReadWord(vecFIRQ)
	c.state = StateRunning
}

// samplePending checks the line latches in priority order (NMI > FIRQ >
// IRQ) and, if one is both pending and unmasked, services it. Returns true
// if an interrupt was accepted this call.
func (c *CPU) samplePending() bool {
	if c.nmiLatch && c.nmiArmed {
		c.nmiLatch = false
		c.enterInterrupt(vecNMI, false)
		return true
	}
	if c.firqLatch && !c.flag(FlagF) {
		c.firqLatch = false
		c.enterFirq()
		return true
	}
	if c.irqLatch && !c.flag(FlagI) {
		c.irqLatch = false
		c.enterInterrupt(vecIRQ, false)
		return true
	}
	return false
}

// cwaiWake services a CWAI-suspended CPU. Unlike samplePending, it must not
// stack again: CWAI already pushed the full machine state before
// suspending, so waking only needs to mask the accepted line and vector.
func (c *CPU) cwaiWake() {
	if c.nmiLatch && c.nmiArmed {
		c.nmiLatch = false
		c.setFlag(FlagI, true)
		c.PC = c.bus.ReadWord(vecNMI)
		c.state = StateRunning
		return
	}
	if c.firqLatch && !c.flag(FlagF) {
		c.firqLatch = false
		c.setFlag(FlagF, true)
		c.setFlag(FlagI, true)
		c.PC = c.bus.ReadWord(vecFIRQ)
		c.state = StateRunning
		return
	}
	if c.irqLatch && !c.flag(FlagI) {
		c.irqLatch = false
		c.setFlag(FlagI, true)
		c.PC = c.bus.ReadWord(vecIRQ)
		c.state = StateRunning
		return
	}
}

// Step executes exactly one instruction (or services one pending, sampled
// interrupt) and returns.
func (c *CPU) Step() {
	switch c.state {
	case StateHalted, StateException:
		return
	case StateWaitingInterrupt: // CWAI
		c.cwaiWake()
		return
	case StateSyncing: // SYNC
		if c.nmiLatch || c.firqLatch || c.irqLatch {
			c.state = StateRunning
		}
		return
	}

	if c.samplePending() {
		return
	}

	c.LastPC = c.PC
	startPC := c.PC
	opcode := c.fetchByte()

	switch opcode {
	case 0x10:
		c.execPage2()
	case 0x11:
		c.execPage3()
	default:
		c.execPage0(opcode)
	}

	n := int(c.PC - startPC)
	if n < 0 || n > 8 {
		n = 1
	}
	c.lastOpcodeBytes = make([]byte, n)
	for i := 0; i < n; i++ {
		c.lastOpcodeBytes[i] = c.bus.Read(startPC + uint16(i))
	}

	if c.observer != nil {
		c.observer.OnInstructionEnd(c.GetState())
	}
}

func (c *CPU) illegalOpcode(opcode byte) {
	c.state = StateException
	c.log.Warnf("cpu: illegal opcode 0x%02X at 0x%04X", opcode, c.LastPC)
	if c.observer != nil {
		c.observer.OnException(fmt.Sprintf("illegal opcode 0x%02X", opcode))
	}
}

// MnemonicAt disassembles a single instruction at pc without advancing the
// CPU's own PC, returning its mnemonic text.
func (c *CPU) MnemonicAt(pc uint16) string {
	return disassemble(c.bus, pc)
}
