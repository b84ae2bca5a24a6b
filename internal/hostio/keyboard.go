// Package hostio provides reference implementations of the host
// collaborators: the narrow set of interfaces the core consumes but does
// not own (keyboard, joystick, DAC, frame buffer, clock, reset button).
// None of this package is on the core's own import path; cmd/dragon32
// wires it in as one possible host.
package hostio

import (
	"sync"
	"syscall"
	"time"

	"golang.org/x/term"
)

// TermKeyboard puts the controlling terminal into raw mode and surfaces
// one scan code per ReadScanCode call, satisfying pia.KeyboardSource. A
// background goroutine reads stdin and maps host bytes onto the Dragon
// 32 PIA0 scan-code space.
type TermKeyboard struct {
	fd       int
	oldState *term.State

	mu      sync.Mutex
	pending byte

	stopCh chan struct{}
	done   chan struct{}
	once   sync.Once
}

// NewTermKeyboard puts fd (normally int(os.Stdin.Fd())) into raw mode and
// starts the background reader. Call Close to restore the terminal.
func NewTermKeyboard(fd int) (*TermKeyboard, error) {
	old, err := term.MakeRaw(fd)
	if err != nil {
		return nil, err
	}
	k := &TermKeyboard{
		fd:       fd,
		oldState: old,
		stopCh:   make(chan struct{}),
		done:     make(chan struct{}),
	}
	if err := syscall.SetNonblock(fd, true); err != nil {
		_ = term.Restore(fd, old)
		return nil, err
	}
	go k.run()
	return k, nil
}

func (k *TermKeyboard) run() {
	defer close(k.done)
	buf := make([]byte, 1)
	for {
		select {
		case <-k.stopCh:
			return
		default:
		}
		n, err := syscall.Read(k.fd, buf)
		if n > 0 {
			k.mu.Lock()
			k.pending = hostByteToScanCode(buf[0])
			k.mu.Unlock()
		}
		if err == syscall.EAGAIN || err == syscall.EWOULDBLOCK || n == 0 {
			time.Sleep(5 * time.Millisecond)
			continue
		}
		if err != nil {
			return
		}
	}
}

// ReadScanCode satisfies pia.KeyboardSource: returns and clears the most
// recently captured code, 0 if none is pending.
func (k *TermKeyboard) ReadScanCode() byte {
	k.mu.Lock()
	defer k.mu.Unlock()
	c := k.pending
	k.pending = 0
	return c
}

// Close stops the background reader and restores the terminal.
func (k *TermKeyboard) Close() error {
	k.once.Do(func() { close(k.stopCh) })
	<-k.done
	_ = syscall.SetNonblock(k.fd, false)
	if k.oldState != nil {
		return term.Restore(k.fd, k.oldState)
	}
	return nil
}

// hostByteToScanCode maps a raw terminal byte onto the PIA0 scan-code
// space: DEL becomes BS, CR becomes LF, and every other byte passes
// through unchanged.
func hostByteToScanCode(b byte) byte {
	if b == 0x7F { // DEL -> BS
		return 0x08
	}
	if b == '\r' {
		return '\n'
	}
	return b
}
