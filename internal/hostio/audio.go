package hostio

import (
	"math"
	"sync"

	"github.com/ebitengine/oto/v3"
)

// dacRingSize bounds the sample ring the executive's WriteDAC calls feed
// and oto's Read callback drains; sized generously against any plausible
// host scheduling jitter between the two.
const dacRingSize = 8192

// OtoDAC streams PIA1's 6-bit DAC samples (and PIA0's 2-bit audio-mux
// select) to a real audio device via oto. WriteDAC fills a ring buffer
// that the oto callback drains on its own goroutine.
type OtoDAC struct {
	ctx    *oto.Context
	player *oto.Player

	mu      sync.Mutex
	ring    [dacRingSize]float32
	head    int
	tail    int
	full    bool
	muxSel  byte
	started bool
}

// NewOtoDAC opens an oto context at sampleRate and starts the streaming
// player.
func NewOtoDAC(sampleRate int) (*OtoDAC, error) {
	ctx, ready, err := oto.NewContext(&oto.NewContextOptions{
		SampleRate:   sampleRate,
		ChannelCount: 1,
		Format:       oto.FormatFloat32LE,
		BufferSize:   4,
	})
	if err != nil {
		return nil, err
	}
	<-ready

	d := &OtoDAC{ctx: ctx}
	d.player = ctx.NewPlayer(d)
	d.player.Play()
	d.started = true
	return d, nil
}

// WriteDAC satisfies pia.DAC: value is the 6-bit (0-63) sample PIA1 drives
// from port A's upper bits each data write.
func (d *OtoDAC) WriteDAC(value byte) {
	sample := (float32(value)/63.0)*2 - 1 // 6-bit unsigned -> [-1, 1]
	d.mu.Lock()
	defer d.mu.Unlock()
	d.ring[d.tail] = sample
	d.tail = (d.tail + 1) % dacRingSize
	if d.full {
		d.head = (d.head + 1) % dacRingSize
	}
	d.full = d.tail == d.head
}

// AudioMuxSelect satisfies pia.DAC: sel is PIA0 CA2/CB2's 2-bit
// sound-multiplexer select. This DAC only has one output path, so the
// value is recorded for introspection rather than switched on.
func (d *OtoDAC) AudioMuxSelect(sel byte) {
	d.mu.Lock()
	d.muxSel = sel & 0x03
	d.mu.Unlock()
}

// MuxSelect returns the most recent AudioMuxSelect value, for tests.
func (d *OtoDAC) MuxSelect() byte {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.muxSel
}

// Read implements io.Reader for oto.Player, draining the ring buffer one
// float32 sample at a time; starved reads emit silence.
func (d *OtoDAC) Read(p []byte) (int, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	n := len(p) / 4
	for i := 0; i < n; i++ {
		var s float32
		if d.head != d.tail || d.full {
			s = d.ring[d.head]
			d.head = (d.head + 1) % dacRingSize
			d.full = false
		}
		putFloat32LE(p[i*4:], s)
	}
	return n * 4, nil
}

func putFloat32LE(b []byte, f float32) {
	bits := math.Float32bits(f)
	b[0] = byte(bits)
	b[1] = byte(bits >> 8)
	b[2] = byte(bits >> 16)
	b[3] = byte(bits >> 24)
}

// Close stops the player.
func (d *OtoDAC) Close() error {
	d.mu.Lock()
	started := d.started
	d.started = false
	d.mu.Unlock()
	if started && d.player != nil {
		return d.player.Close()
	}
	return nil
}
