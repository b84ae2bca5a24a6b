// Package tape implements the cassette-tape capture trap: a write I/O
// handler on the BASIC CasLastSine variable that reconstructs the byte
// stream the ROM is driving out to tape and flushes it as a CAS image
// once a complete block sequence ending in EOF is observed.
package tape

import (
	"github.com/dragon32/dragon32-core/internal/dragonlog"
	"github.com/dragon32/dragon32-core/internal/tapeimage"
)

// handlerCallsPerByte: every 16th invocation of the registered write
// handler corresponds to one byte the ROM has written to tape.
const handlerCallsPerByte = 16

// maxCaptureBytes bounds the rolling capture buffer to one CAS stream.
const maxCaptureBytes = 64 * 1024

// filenameMaxLen is the longest filename the header block yields.
const filenameMaxLen = 8

const (
	blockTypeHeader byte = 0x00
	blockTypeData   byte = 0x01
	blockTypeEOF    byte = 0xFF

	leaderByte byte = 0x55
	syncByte   byte = 0x3C
)

// State is the trap's stream state machine.
type State int

const (
	StateIdle State = iota
	StateLeader
	StateSync
	StateHeader
	StateData
	StateEOF
	StateWrite
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "IDLE"
	case StateLeader:
		return "LEADER"
	case StateSync:
		return "SYNC"
	case StateHeader:
		return "HEADER"
	case StateData:
		return "DATA"
	case StateEOF:
		return "EOF"
	case StateWrite:
		return "WRITE"
	default:
		return "UNKNOWN"
	}
}

// blockPhase tracks progress within a HEADER/DATA/EOF block once its type
// byte has been consumed.
type blockPhase int

const (
	phaseLength blockPhase = iota
	phaseFilename
	phaseFiletype
	phaseAscii
	phaseGap
	phasePayload
	phaseChecksum
)

// CPUState is the read-only introspection window a bus handler receives:
// enough of CPU state (stack pointer, in this trap's case) to read bytes
// the ROM has pushed, without the ability to mutate it.
type CPUState interface {
	StackPointer() uint16
}

// Bus is the subset of *bus.Bus the trap reads the captured byte through.
type Bus interface {
	Read(addr uint16) byte
}

// Trap models the cassette capture state machine.
type Trap struct {
	bus Bus
	out *tapeimage.Image
	log *dragonlog.Logger

	armed bool

	callCount int
	state     State
	buf       []byte
	filename  []byte

	phase         blockPhase
	blockType     byte
	payloadLen    int
	payloadSeen   int
	filenameSeen  int
}

// New wires a Trap to its bus (for stack introspection) and output
// collaborator.
func New(bus Bus, out *tapeimage.Image, log *dragonlog.Logger) *Trap {
	if log == nil {
		log = dragonlog.Discard()
	}
	return &Trap{bus: bus, out: out, log: log, state: StateIdle, armed: true}
}

// State returns the trap's current stream state, for tests and tracing.
func (t *Trap) State() State { return t.state }

// Filename returns the last header block's extracted filename.
func (t *Trap) Filename() string { return string(t.filename) }

// ArmedForROM reports whether the trap is currently servicing writes. A
// bare Trap starts armed (it has no ROM context to doubt); Machine
// construction may disarm it once a loaded ROM fails its BASIC signature
// check, since the trap address coincides with a general-purpose RAM
// cell outside a BASIC environment and a disarmed trap just ignores the
// writes instead of miscapturing them.
func (t *Trap) ArmedForROM() bool { return t.armed }

// SetArmedForROM arms or disarms the trap.
func (t *Trap) SetArmedForROM(armed bool) { t.armed = armed }

// Reset returns the trap to idle with an empty capture buffer, keeping
// its current armed setting. Any partially-captured stream is discarded
// rather than flushed.
func (t *Trap) Reset() {
	armed := t.armed
	*t = Trap{bus: t.bus, out: t.out, log: t.log, state: StateIdle, armed: armed}
}

// OnWrite services a write to a registered trap address. cpu gives
// read-only access to the stack pointer the ROM pushed the tape byte to.
// A disarmed trap (see ArmedForROM) ignores the write entirely.
func (t *Trap) OnWrite(cpu CPUState) {
	if !t.armed {
		return
	}
	t.callCount++
	if t.callCount < handlerCallsPerByte {
		return
	}
	t.callCount = 0
	b := t.bus.Read(cpu.StackPointer())
	t.feed(b)
}

func (t *Trap) reset() {
	t.state = StateIdle
	t.buf = t.buf[:0]
	t.phase = phaseLength
}

func (t *Trap) capture(b byte) {
	if len(t.buf) >= maxCaptureBytes {
		t.log.Warnf("tape: capture buffer full, discarding stream")
		t.reset()
		return
	}
	t.buf = append(t.buf, b)
}

func (t *Trap) feed(b byte) {
	switch t.state {
	case StateIdle:
		if b == leaderByte {
			t.capture(b)
			t.state = StateLeader
		}
	case StateLeader:
		t.capture(b)
		switch {
		case b == leaderByte:
			// stay in LEADER
		case b == syncByte:
			t.state = StateSync
		case b == blockTypeHeader || b == blockTypeData || b == blockTypeEOF:
			t.beginBlock(b)
		default:
			t.log.Debugf("tape: misaligned byte 0x%02X in LEADER, resetting", b)
			t.reset()
		}
	case StateSync:
		t.capture(b)
		switch b {
		case blockTypeHeader, blockTypeData, blockTypeEOF:
			t.beginBlock(b)
		default:
			t.log.Debugf("tape: misaligned byte 0x%02X in SYNC, resetting", b)
			t.reset()
		}
	case StateHeader:
		t.feedHeader(b)
	case StateData:
		t.feedData(b)
	case StateEOF:
		t.feedEOF(b)
	}
}

func (t *Trap) beginBlock(blockType byte) {
	t.blockType = blockType
	t.phase = phaseLength
	switch blockType {
	case blockTypeHeader:
		t.filenameSeen = 0
		t.filename = t.filename[:0]
		t.state = StateHeader
	case blockTypeData:
		t.state = StateData
	case blockTypeEOF:
		t.state = StateEOF
	}
}

// feedHeader parses {length, filename[8], filetype, ascii, gap, cksum}.
func (t *Trap) feedHeader(b byte) {
	t.capture(b)
	switch t.phase {
	case phaseLength:
		t.phase = phaseFilename
	case phaseFilename:
		if isAlnum(b) && len(t.filename) < filenameMaxLen {
			t.filename = append(t.filename, b)
		}
		t.filenameSeen++
		if t.filenameSeen >= filenameMaxLen {
			t.phase = phaseFiletype
		}
	case phaseFiletype:
		t.phase = phaseAscii
	case phaseAscii:
		t.phase = phaseGap
	case phaseGap:
		t.phase = phaseChecksum
	case phaseChecksum:
		t.state = StateLeader
	}
}

// feedData parses {length, payload[length], cksum}.
func (t *Trap) feedData(b byte) {
	t.capture(b)
	switch t.phase {
	case phaseLength:
		t.payloadLen = int(b)
		t.payloadSeen = 0
		if t.payloadLen == 0 {
			t.phase = phaseChecksum
		} else {
			t.phase = phasePayload
		}
	case phasePayload:
		t.payloadSeen++
		if t.payloadSeen >= t.payloadLen {
			t.phase = phaseChecksum
		}
	case phaseChecksum:
		t.state = StateLeader
	}
}

// feedEOF parses {length=0, cksum} and transitions to WRITE.
func (t *Trap) feedEOF(b byte) {
	t.capture(b)
	switch t.phase {
	case phaseLength:
		t.phase = phaseChecksum
	case phaseChecksum:
		t.state = StateWrite
		t.flush()
	}
}

func (t *Trap) flush() {
	if t.out != nil {
		if err := t.out.WriteAll(t.buf); err != nil {
			t.log.Warnf("tape: flush failed: %v", err)
		}
	}
	t.reset()
}

func isAlnum(b byte) bool {
	return (b >= '0' && b <= '9') || (b >= 'A' && b <= 'Z') || (b >= 'a' && b <= 'z')
}
