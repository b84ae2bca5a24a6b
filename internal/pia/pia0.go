package pia

import "github.com/dragon32/dragon32-core/internal/dragonlog"

// Base0 is PIA0's memory window, 0xFF00-0xFF03.
const Base0 uint16 = 0xFF00

// Pia0 models the keyboard/joystick/vsync PIA.
type Pia0 struct {
	core
	kbd      *Keyboard
	joystick Joystick
	sink     InterruptSink
	dac      DAC
}

// NewPia0 wires PIA0 to its host collaborators. joystick, sink, and dac
// may be nil (tests exercise the register mechanics without them).
func NewPia0(kbd *Keyboard, joystick Joystick, sink InterruptSink, dac DAC, log *dragonlog.Logger) *Pia0 {
	if log == nil {
		log = dragonlog.Discard()
	}
	if kbd == nil {
		kbd = NewKeyboard(nil)
	}
	return &Pia0{core: core{log: log}, kbd: kbd, joystick: joystick, sink: sink, dac: dac}
}

// Reset clears both ports. The executive calls it on a cold machine reset;
// a warm reset leaves the ports as they are.
func (p *Pia0) Reset() { p.core.reset() }

// Handle services a bus IO access anywhere in 0xFF00-0xFF03.
func (p *Pia0) Handle(addr uint16, value byte, write bool) byte {
	offset := addr - Base0
	if !write {
		result := p.regRead(offset, p.portAInput(), p.portBInput())
		p.syncAudioMux()
		return result
	}
	p.regWrite(offset, value)
	p.syncAudioMux()
	return 0
}

// portAInput supplies port A's live input bits: bit 7 is the joystick
// comparator, the rest float high (unused on this port as input).
func (p *Pia0) portAInput() byte {
	var v byte = 0xFF
	if p.joystick != nil && p.joystick.Comparator() != 0 {
		v |= 0x80
	} else {
		v &^= 0x80
	}
	return v
}

// portBInput supplies port B's live input bits: the keyboard row sense,
// masked by the current column strobe driven out of port A.
func (p *Pia0) portBInput() byte {
	return p.kbd.rowSense(p.a.outputBits())
}

// VsyncIRQ latches a CB1 rising edge from the 50 Hz vertical-sync source
// and asserts IRQ if enabled. The executive calls this every 20 ms.
func (p *Pia0) VsyncIRQ() {
	p.kbd.Poll()
	if p.b.latchC1() && p.sink != nil {
		p.sink.Irq()
	}
}

// FunctionKey exposes the keyboard's synthesized escape channel to the
// executive.
func (p *Pia0) FunctionKey() FunctionKey { return p.kbd.FunctionKey() }

// syncAudioMux forwards CA2/CB2's output levels to the host sound
// multiplexer on every register access: CA2 and CB2 are outputs driving
// the two-bit sound-multiplexer select.
func (p *Pia0) syncAudioMux() {
	if p.dac == nil {
		return
	}
	sel := (((p.a.cr >> 5) & 1) << 1) | ((p.b.cr >> 5) & 1)
	p.dac.AudioMuxSelect(sel)
}
