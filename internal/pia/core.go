// Package pia implements the two MC6821 Peripheral Interface Adapters:
// PIA0 (keyboard matrix, function-key channel, joystick comparator,
// audio mux select, 50 Hz vsync IRQ) and PIA1 (DAC, cartridge FIRQ, VDG
// mode bits).
// Both share the register-level mechanics in this file; pia0.go and
// pia1.go layer the domain-specific behavior on top.
package pia

import "github.com/dragon32/dragon32-core/internal/dragonlog"

// Control register bit layout: DDR select is bit 2, interrupt flags are
// bits 6-7, interrupt enables are bits 0-1 (C1) and 3-4 (C2).
const (
	crDDRSelect  byte = 1 << 2
	crC1IRQEn    byte = 1 << 0
	crC1Edge     byte = 1 << 1
	crC2IRQEn    byte = 1 << 3
	crC2Edge     byte = 1 << 4
	crC2Flag     byte = 1 << 6
	crC1Flag     byte = 1 << 7
	crWritableLo byte = 0x3F // bits 0-5 are software-writable
)

// port models one 6821 port pair: data-direction register, output
// register, and control register. Input-line bits are supplied by the
// owning PIA's InputBits callback at read time rather than stored here.
type port struct {
	ddr byte
	or  byte
	cr  byte
}

func (p *port) reset() { *p = port{} }

// readData services a PRx/DDRx access, composing latched outputs with
// live input bits per DDR and clearing the C1/C2 IRQ flags as a side
// effect of reading the data register, matching real 6821 hardware.
func (p *port) readData(inputBits byte) byte {
	if p.cr&crDDRSelect == 0 {
		return p.ddr
	}
	val := (p.or & p.ddr) | (inputBits &^ p.ddr)
	p.cr &^= crC1Flag | crC2Flag
	return val
}

func (p *port) writeData(v byte) {
	if p.cr&crDDRSelect == 0 {
		p.ddr = v
		return
	}
	p.or = v
}

func (p *port) readCR() byte { return p.cr }

func (p *port) writeCR(v byte) {
	p.cr = (p.cr & ^crWritableLo) | (v & crWritableLo)
}

// latchC1 raises the C1 interrupt flag and reports whether the associated
// IRQ/FIRQ line should be asserted (flag set AND enabled).
func (p *port) latchC1() bool {
	p.cr |= crC1Flag
	return p.cr&crC1IRQEn != 0
}

func (p *port) latchC2() bool {
	p.cr |= crC2Flag
	return p.cr&crC2IRQEn != 0
}

// outputBits returns the bits of or that DDR marks as outputs, for
// peripherals (sound mux, DAC) that observe the port's driven value.
func (p *port) outputBits() byte { return p.or & p.ddr }

// core is embedded by Pia0 and Pia1 for the four-register memory window
// {PRA/DDRA, CRA, PRB/DDRB, CRB}.
type core struct {
	a, b port
	log  *dragonlog.Logger
}

func (c *core) reset() {
	c.a.reset()
	c.b.reset()
}

// regRead/regWrite dispatch the four-address window given the two ports'
// live input-bit sources.
func (c *core) regRead(offset uint16, inputA, inputB byte) byte {
	switch offset {
	case 0:
		return c.a.readData(inputA)
	case 1:
		return c.a.readCR()
	case 2:
		return c.b.readData(inputB)
	case 3:
		return c.b.readCR()
	}
	return 0
}

func (c *core) regWrite(offset uint16, value byte) {
	switch offset {
	case 0:
		c.a.writeData(value)
	case 1:
		c.a.writeCR(value)
	case 2:
		c.b.writeData(value)
	case 3:
		c.b.writeCR(value)
	}
}
