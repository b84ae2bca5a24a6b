package pia

import "github.com/dragon32/dragon32-core/internal/dragonlog"

// Base1 is PIA1's memory window, 0xFF20-0xFF23.
const Base1 uint16 = 0xFF20

// VideoModeBitsMask selects the GM2,GM1,GM0,^A/G,CSS bits within port B
// (bits [7:3]).
const VideoModeBitsMask byte = 0xF8

// Pia1 models the DAC/cartridge-FIRQ/VDG-mode PIA.
type Pia1 struct {
	core
	sink InterruptSink
	dac  DAC
}

// NewPia1 wires PIA1 to its host collaborators. sink and dac may be nil
// for tests that only exercise the register mechanics.
func NewPia1(sink InterruptSink, dac DAC, log *dragonlog.Logger) *Pia1 {
	if log == nil {
		log = dragonlog.Discard()
	}
	return &Pia1{core: core{log: log}, sink: sink, dac: dac}
}

// Reset clears both ports.
func (p *Pia1) Reset() { p.core.reset() }

// Handle services a bus IO access anywhere in 0xFF20-0xFF23.
func (p *Pia1) Handle(addr uint16, value byte, write bool) byte {
	offset := addr - Base1
	if !write {
		return p.regRead(offset, p.portAInput(), p.portBInput())
	}
	p.regWrite(offset, value)
	if offset == 0 && p.a.cr&crDDRSelect != 0 && p.dac != nil {
		// Port A bits [7:2] drive the 6-bit DAC on every data write.
		p.dac.WriteDAC(p.a.outputBits() >> 2)
	}
	return 0
}

// portAInput supplies port A's live input bits. Bit 1 is the cassette
// input line; this core models tape input entirely through the
// write-side capture trap, so no physical tape-audio ADC is wired here
// and the bit reads as a constant 0.
func (p *Pia1) portAInput() byte { return 0 }

func (p *Pia1) portBInput() byte { return 0 }

// VideoModeBits returns the GM2,GM1,GM0,^A/G,CSS bits PIA1 port B is
// driving, for the VDG to read each frame.
func (p *Pia1) VideoModeBits() byte {
	return p.b.outputBits() & VideoModeBitsMask
}

// CartridgeEdge latches a CB1 edge from the cartridge line and asserts
// FIRQ if enabled.
func (p *Pia1) CartridgeEdge() {
	if p.b.latchC1() && p.sink != nil {
		p.sink.Firq()
	}
}
