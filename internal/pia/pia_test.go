package pia

import "testing"

type fakeKeyboard struct{ code byte }

func (f *fakeKeyboard) ReadScanCode() byte { return f.code }

type fakeJoystick struct{ btn, cmp byte }

func (f *fakeJoystick) Button() byte     { return f.btn }
func (f *fakeJoystick) Comparator() byte { return f.cmp }

type fakeSink struct{ irq, firq int }

func (f *fakeSink) Irq()  { f.irq++ }
func (f *fakeSink) Firq() { f.firq++ }

type fakeDAC struct {
	lastWrite byte
	lastMux   byte
}

func (f *fakeDAC) WriteDAC(v byte)        { f.lastWrite = v }
func (f *fakeDAC) AudioMuxSelect(v byte)  { f.lastMux = v }

func TestDDRSelectGatesDataAccess(t *testing.T) {
	p := NewPia0(nil, nil, nil, nil, nil)
	// CRA bit2 clear: offset 0 accesses DDRA.
	p.Handle(Base0+0, 0x7F, true)
	if p.a.ddr != 0x7F {
		t.Fatalf("DDRA = 0x%02X, want 0x7F", p.a.ddr)
	}
	// Select OR access via CRA bit2, then write the output register.
	p.Handle(Base0+1, crDDRSelect, true)
	p.Handle(Base0+0, 0xAA, true)
	if p.a.or != 0xAA {
		t.Fatalf("ORA = 0x%02X, want 0xAA", p.a.or)
	}
}

func TestJoystickComparatorOnPortABit7(t *testing.T) {
	joy := &fakeJoystick{cmp: 1}
	p := NewPia0(nil, joy, nil, nil, nil)
	p.Handle(Base0+1, crDDRSelect, true) // select OR access
	got := p.Handle(Base0+0, 0, false)
	if got&0x80 == 0 {
		t.Fatalf("port A read 0x%02X, want bit 7 set", got)
	}
}

func TestVsyncIRQSetsFlagAndAssertsWhenEnabled(t *testing.T) {
	sink := &fakeSink{}
	p := NewPia0(nil, nil, sink, nil, nil)
	p.Handle(Base0+3, crDDRSelect|crC1IRQEn, true) // select CRB, enable C1 IRQ
	p.VsyncIRQ()
	if sink.irq != 1 {
		t.Fatalf("Irq() called %d times, want 1", sink.irq)
	}
	if p.b.cr&crC1Flag == 0 {
		t.Fatalf("CRB C1 flag not set after vsync edge")
	}
	// Reading port B clears the flag.
	p.Handle(Base0+2, 0, false)
	if p.b.cr&crC1Flag != 0 {
		t.Fatalf("CRB C1 flag still set after port B read")
	}
}

func TestKeyboardFunctionKeyEscape(t *testing.T) {
	kbd := NewKeyboard(&fakeKeyboard{code: scanCodeF1})
	kbd.Poll()
	if kbd.FunctionKey() != FunctionKeyLoaderEscape {
		t.Fatalf("FunctionKey() = %v, want LoaderEscape", kbd.FunctionKey())
	}
}

func TestKeyboardMatrixLatchAndRowSense(t *testing.T) {
	kbd := NewKeyboard(&fakeKeyboard{code: 10}) // col=3, row=1
	kbd.Poll()
	rows := kbd.rowSense(0x00) // all columns strobed active
	if rows&(1<<1) == 0 {
		t.Fatalf("row sense 0x%02X missing row 1", rows)
	}
}

func TestPia1DACWriteOnPortAWrite(t *testing.T) {
	dac := &fakeDAC{}
	p := NewPia1(nil, dac, nil)
	p.Handle(Base1+0, 0xFC, true)        // DDRA: bits 7-2 are outputs
	p.Handle(Base1+1, crDDRSelect, true) // select OR access on CRA
	p.Handle(Base1+0, 0xFC, true)        // 11111100
	if dac.lastWrite != 0x3F {
		t.Fatalf("DAC write = 0x%02X, want 0x3F", dac.lastWrite)
	}
}

func TestPia1VideoModeBits(t *testing.T) {
	p := NewPia1(nil, nil, nil)
	p.Handle(Base1+2, 0xF8, true)        // DDRB: bits 7-3 are outputs
	p.Handle(Base1+3, crDDRSelect, true) // select OR access on CRB
	p.Handle(Base1+2, 0xF8, true)
	if got := p.VideoModeBits(); got != 0xF8 {
		t.Fatalf("VideoModeBits() = 0x%02X, want 0xF8", got)
	}
}

func TestPia1CartridgeEdgeAssertsFirq(t *testing.T) {
	sink := &fakeSink{}
	p := NewPia1(sink, nil, nil)
	p.Handle(Base1+3, crDDRSelect|crC1IRQEn, true)
	p.CartridgeEdge()
	if sink.firq != 1 {
		t.Fatalf("Firq() called %d times, want 1", sink.firq)
	}
}

func TestResetClearsPorts(t *testing.T) {
	p := NewPia0(nil, nil, nil, nil, nil)
	p.Handle(Base0+0, 0xFF, true)
	p.Reset()
	if p.a.ddr != 0 {
		t.Fatalf("DDRA after reset = 0x%02X, want 0", p.a.ddr)
	}
}
