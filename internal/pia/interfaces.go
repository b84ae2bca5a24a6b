package pia

// InterruptSink is the subset of the CPU's interrupt-line API the PIAs
// drive. *cpu.CPU satisfies it.
type InterruptSink interface {
	Irq()
	Firq()
}

// KeyboardSource supplies one scan code per poll; 0 means no key is
// currently down. Blocking or non-blocking is the collaborator's choice.
type KeyboardSource interface {
	ReadScanCode() byte
}

// Joystick is the host-side ADC comparator loop feeding PIA0 port A bit 7.
// Comparator must reflect the value sampled at least 20 µs after the most
// recent DAC write; that settle time is the host collaborator's
// responsibility, not the PIA's.
type Joystick interface {
	Button() byte
	Comparator() byte
}

// DAC is the 6-bit digital-to-analog output PIA1 drives from port A's
// upper bits, plus the 2-bit sound-multiplexer select PIA0 drives from
// CA2/CB2.
type DAC interface {
	WriteDAC(value byte)
	AudioMuxSelect(sel byte)
}

// FunctionKey is the synthesized "function key" channel: the executive
// polls it once per iteration to decide whether to suspend the CPU for
// the loader.
type FunctionKey int

const (
	FunctionKeyNone FunctionKey = iota
	FunctionKeyLoaderEscape
)
