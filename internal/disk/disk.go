// Package disk implements the WD2797 floppy controller state machine:
// Type I-IV commands against a VDK-or-raw byte-stream image, status
// bits, and the FIRQ/NMI interrupt scheduling the executive drives via
// periodic Tick calls.
package disk

import (
	"github.com/dragon32/dragon32-core/internal/diskimage"
	"github.com/dragon32/dragon32-core/internal/dragonlog"
)

// Memory windows.
const (
	RegBase       uint16 = 0xFF40 // CMD/STATUS, TRACK, SECTOR, DATA
	DriveCtrlAddr uint16 = 0xFF48
)

// Status bits.
const (
	StatusBusy           byte = 1 << 0
	StatusDRQ            byte = 1 << 1
	StatusTrack0         byte = 1 << 2
	StatusCRCErr         byte = 1 << 3
	StatusRecordNotFound byte = 1 << 4
	StatusHeadLoaded     byte = 1 << 5
	StatusWriteProtect   byte = 1 << 6
	StatusNotReady       byte = 1 << 7
)

// State is the controller's coarse operation state.
type State int

const (
	StateIdle State = iota
	StateRead
	StateWrite
	StateReadID
	StateWriteTrk
)

const (
	bytesPerSector  = 256
	sectorsPerTrack = 18
	trackBufSize    = sectorsPerTrack * bytesPerSector // 4608
	defaultTracks   = 40

	// idleToNMIUs is the delay after entering IDLE before NMI fires: 250 ms.
	idleToNMIUs = 250_000
)

// InterruptSink is the subset of the CPU interrupt API the disk drives.
// FIRQ is routed via PIA1 on real hardware, but the controller only needs
// to assert the line.
type InterruptSink interface {
	Firq()
	Nmi()
}

// Controller is the WD2797 model.
type Controller struct {
	cmd, status, track, sector, data byte

	motorOn       bool
	doubleDensity bool
	nmiInhibit    bool
	drive         byte

	trackBuf  [trackBufSize]byte
	bufIndex  int
	state     State

	idleElapsedUs  int64
	nmiFiredInIdle bool

	image *diskimage.Image
	sink  InterruptSink
	log   *dragonlog.Logger
}

// New returns a Controller with no image mounted (TypeNone) until Mount
// is called.
func New(sink InterruptSink, log *dragonlog.Logger) *Controller {
	if log == nil {
		log = dragonlog.Discard()
	}
	img, _ := diskimage.Open("")
	return &Controller{image: img, sink: sink, log: log, status: StatusTrack0}
}

// Mount replaces the controller's image backend.
func (c *Controller) Mount(img *diskimage.Image) { c.image = img }

// Reset returns the controller to its post-power-on state.
func (c *Controller) Reset() {
	*c = Controller{image: c.image, sink: c.sink, log: c.log, status: StatusTrack0}
}

// sectorOffset computes the byte offset of (track, sector) within the
// image payload.
func (c *Controller) sectorOffset(track, sector byte) int64 {
	const side = 0
	tracks := int64(defaultTracks)
	header := int64(0)
	if c.image != nil {
		header = c.image.HeaderSize()
	}
	return header + ((int64(side)*tracks + int64(track)) * sectorsPerTrack + int64(sector-1)) * bytesPerSector
}

// Handle services the CMD/STATUS/TRACK/SECTOR/DATA window at RegBase.
func (c *Controller) Handle(addr uint16, value byte, write bool) byte {
	offset := addr - RegBase
	switch offset {
	case 0:
		if write {
			c.execCommand(value)
			return 0
		}
		return c.status
	case 1:
		if write {
			c.track = value
			return 0
		}
		return c.track
	case 2:
		if write {
			c.sector = value
			return 0
		}
		return c.sector
	case 3:
		if write {
			c.data = value
			if c.state == StateIdle {
				return 0
			}
			return c.writeData(value)
		}
		return c.readData()
	}
	return 0
}

// HandleDriveCtrl services the separate 0xFF48 drive/motor register.
func (c *Controller) HandleDriveCtrl(addr uint16, value byte, write bool) byte {
	if !write {
		return 0
	}
	c.motorOn = value&0x01 != 0
	c.drive = (value >> 1) & 0x03
	c.doubleDensity = value&0x08 != 0
	return 0
}

func (c *Controller) enterState(s State) {
	c.state = s
	if s != StateIdle {
		c.idleElapsedUs = 0
		c.nmiFiredInIdle = false
	}
}

func (c *Controller) issueINTRQ() {
	// Command completion sets status; NMI assertion itself is governed by
	// the periodic Tick's 250ms-after-idle rule, not fired here.
}

func (c *Controller) execCommand(cmd byte) {
	c.cmd = cmd
	switch {
	case cmd&0xF0 == 0x00: // RESTORE
		c.track = 0
		c.status = StatusTrack0
		c.enterState(StateIdle)
		c.issueINTRQ()
	case cmd&0xF0 == 0x10: // SEEK
		c.track = c.data
		c.status = 0
		if c.track == 0 {
			c.status |= StatusTrack0
		}
		c.enterState(StateIdle)
		c.issueINTRQ()
	case cmd == 0x88: // READ SECTOR
		c.beginReadSector()
	case cmd == 0xA8: // WRITE SECTOR
		c.beginWriteSector()
	case cmd == 0xC0: // READ ADDRESS
		c.beginReadAddress()
	case cmd == 0xF4: // WRITE TRACK
		c.beginWriteTrack()
	case cmd == 0xD0: // FORCE INTERRUPT
		c.enterState(StateIdle)
		c.status = 0
	default:
		c.log.Warnf("disk: unknown command 0x%02X", cmd)
		c.status = StatusRecordNotFound
	}
}

func (c *Controller) beginReadSector() {
	if c.image == nil || c.image.Type() == diskimage.TypeNone {
		c.status = StatusRecordNotFound
		return
	}
	off := c.sectorOffset(c.track, c.sector)
	if err := c.image.ReadAt(off, c.trackBuf[:bytesPerSector]); err != nil {
		c.status = StatusRecordNotFound | StatusCRCErr
		return
	}
	c.bufIndex = 0
	c.status = StatusBusy | StatusDRQ
	c.enterState(StateRead)
}

func (c *Controller) beginWriteSector() {
	if c.image == nil || c.image.Type() == diskimage.TypeNone {
		c.status = StatusRecordNotFound
		return
	}
	c.bufIndex = 0
	c.status = StatusBusy | StatusDRQ
	c.enterState(StateWrite)
}

func (c *Controller) beginReadAddress() {
	if c.image == nil || c.image.Type() == diskimage.TypeNone {
		c.status = StatusRecordNotFound
		return
	}
	c.trackBuf[0] = c.track
	c.trackBuf[1] = 1 // side, always reported as 1 by this controller
	c.trackBuf[2] = c.sector
	c.trackBuf[3] = 0xFF // size=256 bytes
	c.trackBuf[4] = 0xA5 // CRC sentinel
	c.trackBuf[5] = 0xA5
	c.bufIndex = 0
	c.status = StatusBusy | StatusDRQ
	c.enterState(StateReadID)
}

func (c *Controller) beginWriteTrack() {
	if c.image == nil || c.image.Type() == diskimage.TypeNone {
		c.status = StatusRecordNotFound
		return
	}
	for i := range c.trackBuf {
		c.trackBuf[i] = 0xE5
	}
	c.bufIndex = 0
	c.status = StatusBusy | StatusDRQ
	c.enterState(StateWriteTrk)
}

func (c *Controller) readData() byte {
	switch c.state {
	case StateRead:
		v := c.trackBuf[c.bufIndex]
		c.bufIndex++
		c.status &^= StatusDRQ
		if c.bufIndex >= bytesPerSector {
			c.status &^= StatusBusy
			c.enterState(StateIdle)
		} else {
			c.status |= StatusDRQ
		}
		return v
	case StateReadID:
		v := c.trackBuf[c.bufIndex]
		c.bufIndex++
		c.status &^= StatusDRQ
		if c.bufIndex >= 6 {
			c.status &^= StatusBusy
			c.enterState(StateIdle)
		} else {
			c.status |= StatusDRQ
		}
		return v
	}
	return 0
}

func (c *Controller) writeData(value byte) byte {
	switch c.state {
	case StateWrite:
		c.trackBuf[c.bufIndex] = value
		c.bufIndex++
		c.status &^= StatusDRQ
		if c.bufIndex >= bytesPerSector {
			off := c.sectorOffset(c.track, c.sector)
			if err := c.image.WriteAt(off, c.trackBuf[:bytesPerSector]); err != nil {
				c.status |= StatusCRCErr
			}
			c.status &^= StatusBusy
			c.enterState(StateIdle)
		} else {
			c.status |= StatusDRQ
		}
	case StateWriteTrk:
		c.trackBuf[c.bufIndex] = value
		c.bufIndex++
		c.status &^= StatusDRQ
		if c.bufIndex >= trackBufSize {
			off := c.sectorOffset(c.track, 1)
			if c.image != nil {
				if err := c.image.WriteAt(off, c.trackBuf[:]); err != nil {
					c.status |= StatusCRCErr
				}
			}
			c.status &^= StatusBusy
			c.enterState(StateIdle)
		} else {
			c.status |= StatusDRQ
		}
	}
	return 0
}

// Tick drives the periodic FIRQ/NMI schedule. elapsedUs is the time since the previous call.
func (c *Controller) Tick(elapsedUs int64) {
	if c.state != StateIdle {
		c.status |= StatusDRQ
		if c.sink != nil {
			c.sink.Firq()
		}
		return
	}
	c.idleElapsedUs += elapsedUs
	if !c.nmiFiredInIdle && c.idleElapsedUs >= idleToNMIUs && !c.nmiInhibit {
		c.nmiFiredInIdle = true
		if c.sink != nil {
			c.sink.Nmi()
		}
	}
}

// Status returns the current status register, for tests and tracing.
func (c *Controller) Status() byte { return c.status }

// State returns the current coarse state, for tests and tracing.
func (c *Controller) State() State { return c.state }
