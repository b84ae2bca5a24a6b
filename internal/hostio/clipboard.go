package hostio

import (
	"golang.design/x/clipboard"
)

// ClipboardPasteLoader reads the host clipboard and queues its bytes as
// scan codes, one per ReadScanCode call, letting a BASIC program be
// pasted in as synthesized keystrokes instead of typed.
type ClipboardPasteLoader struct {
	ok    bool
	queue []byte
}

// maxPasteBytes bounds how much of one paste is queued at a time.
const maxPasteBytes = 4096

// NewClipboardPasteLoader initializes the clipboard backend. A failed
// Init (no X11/Wayland/clipboard service available) leaves the loader
// inert: Paste becomes a no-op rather than an error.
func NewClipboardPasteLoader() *ClipboardPasteLoader {
	return &ClipboardPasteLoader{ok: clipboard.Init() == nil}
}

// Paste reads the current clipboard text and queues it for ReadScanCode.
// Any bytes still queued from a previous paste are discarded.
func (c *ClipboardPasteLoader) Paste() {
	if !c.ok {
		return
	}
	data := clipboard.Read(clipboard.FmtText)
	if len(data) == 0 {
		return
	}
	data = normalizePasteText(data)
	data = capPasteText(data, maxPasteBytes)
	c.queue = append(c.queue[:0], data...)
}

// ReadScanCode satisfies pia.KeyboardSource, draining the queue filled by
// the most recent Paste one byte at a time.
func (c *ClipboardPasteLoader) ReadScanCode() byte {
	if len(c.queue) == 0 {
		return 0
	}
	b := c.queue[0]
	c.queue = c.queue[1:]
	return b
}

// normalizePasteText collapses CRLF and lone CR into LF, matching BASIC's
// line-ending expectations.
func normalizePasteText(raw []byte) []byte {
	norm := make([]byte, 0, len(raw))
	for i := 0; i < len(raw); i++ {
		if raw[i] == '\r' {
			if i+1 < len(raw) && raw[i+1] == '\n' {
				i++
			}
			norm = append(norm, '\n')
			continue
		}
		norm = append(norm, raw[i])
	}
	return norm
}

func capPasteText(raw []byte, max int) []byte {
	if len(raw) <= max {
		return raw
	}
	return raw[:max]
}
