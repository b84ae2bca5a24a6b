// Package vdg implements the MC6847 Video Display Generator: a
// per-refresh render of the 64 KiB address space's video RAM window into
// a 256×192 8-bpp frame buffer, in the mode selected by the SAM/PIA1
// truth table.
package vdg

import "github.com/dragon32/dragon32-core/internal/dragonlog"

const (
	Width  = 256
	Height = 192
)

// Bus is the memory interface the VDG reads video RAM through. *bus.Bus
// satisfies it.
type Bus interface {
	Read(addr uint16) byte
}

// Sam is the subset of *sam.SAM the VDG consumes.
type Sam interface {
	VideoMode() byte
	VideoRAMOffset() byte
}

// Pia1 is the subset of *pia.Pia1 the VDG consumes.
type Pia1 interface {
	VideoModeBits() byte
}

// FrameBuffer is the 256x192 8-bpp pixel buffer, each byte a palette
// index.
type FrameBuffer [Width * Height]byte

// VDG renders frames on demand; between renders it keeps only the last
// rendered frame, and reading the bus fresh each call is the idempotence
// and no-tearing contract.
type VDG struct {
	bus  Bus
	sam  Sam
	pia1 Pia1
	log  *dragonlog.Logger

	fb FrameBuffer
}

// New wires a VDG to its collaborators.
func New(bus Bus, sam Sam, pia1 Pia1, log *dragonlog.Logger) *VDG {
	if log == nil {
		log = dragonlog.Discard()
	}
	return &VDG{bus: bus, sam: sam, pia1: pia1, log: log}
}

// FrameBuffer returns the last-rendered frame.
func (v *VDG) FrameBuffer() *FrameBuffer { return &v.fb }

// CurrentMode derives the mode currently selected by SAM+PIA1. Within
// sam.vm=4, SG12 and SG24 are told apart by the CSS bit (see sg24Selected);
// no byte count enters the choice.
func (v *VDG) CurrentMode() Mode {
	modeBits := v.pia1.VideoModeBits()
	gm := (modeBits >> 5) & 0x07
	ag := modeBits&0x10 != 0
	return currentMode(v.sam.VideoMode(), ag, gm, v.sg24Selected())
}

// sg24Selected is a fixed heuristic (no independent "byte count" input
// exists on this core's interfaces): SG24 is selected when CSS is set,
// SG12 otherwise. This keeps an otherwise ambiguous disambiguation
// deterministic.
func (v *VDG) sg24Selected() bool {
	modeBits := v.pia1.VideoModeBits()
	return modeBits&0x08 != 0
}

func (v *VDG) css() bool { return v.pia1.VideoModeBits()&0x08 != 0 }

// videoBase computes the video RAM window's starting address.
func (v *VDG) videoBase() uint16 {
	return uint16(v.sam.VideoRAMOffset()) << 9
}

// Render paints exactly one 256x192 frame from the bus, per the current
// mode.
func (v *VDG) Render() {
	mode := v.CurrentMode()
	base := v.videoBase()
	switch mode {
	case ModeAlphaInt, ModeAlphaExt:
		v.renderAlpha(base, mode == ModeAlphaExt)
	case ModeSG8:
		v.renderSemigraphics(base, 2)
	case ModeSG12:
		v.renderSemigraphics(base, 3)
	case ModeSG24:
		v.renderSemigraphics(base, 6)
	case ModeG1R:
		v.renderResolution(base, 64, 64)
	case ModeG1C:
		v.renderColor(base, 32, 64)
	case ModeG2R:
		v.renderResolution(base, 128, 64)
	case ModeG2C:
		v.renderColor(base, 64, 64)
	case ModeG3R:
		v.renderResolution(base, 128, 96)
	case ModeG3C:
		v.renderColor(base, 64, 96)
	case ModeG6R:
		v.renderResolution(base, 256, 192)
	case ModeG6C:
		v.renderColor(base, 128, 192)
	case ModeDMA:
		v.log.Warnf("vdg: DMA mode selected; not implemented, leaving frame unchanged")
	default:
		v.log.Warnf("vdg: unhandled mode %s", mode)
	}
}

func (v *VDG) plot(x, y int, color VDGColor) {
	if x < 0 || x >= Width || y < 0 || y >= Height {
		return
	}
	v.fb[y*Width+x] = paletteIndexFor(color)
}

// renderAlpha paints the 32x16 text/semigraphics grid shared by
// ALPHA_INT/SG4 and ALPHA_EXT/SG6.
func (v *VDG) renderAlpha(base uint16, ext bool) {
	css := v.css()
	fg := ColorGreen
	if css {
		fg = ColorOrange
	}
	addr := base
	for row := 0; row < 16; row++ {
		for col := 0; col < 32; col++ {
			b := v.bus.Read(addr)
			addr++
			ox, oy := col*fontWidth, row*fontHeight
			if b&0x80 != 0 {
				if ext {
					v.plotSG6(ox, oy, b, css)
				} else {
					v.plotSG4(ox, oy, b)
				}
				continue
			}
			v.plotGlyph(ox, oy, b, fg)
		}
	}
}

func (v *VDG) plotGlyph(ox, oy int, b byte, fg VDGColor) {
	idx := b & 0x3F
	inv := b&0x40 != 0
	glyph := fontTable[idx]
	for row := 0; row < fontHeight; row++ {
		pattern := glyph[row]
		for col := 0; col < fontWidth; col++ {
			on := pattern&(0x80>>uint(col)) != 0
			if inv {
				on = !on
			}
			c := ColorBlack
			if on {
				c = fg
			}
			v.plot(ox+col, oy+row, c)
		}
	}
}

func (v *VDG) plotSG4(ox, oy int, b byte) {
	idx := b & 0x0F
	fg := colorTable[(b>>4)&0x07]
	glyph := sg4Table[idx]
	for row := 0; row < fontHeight; row++ {
		pattern := glyph[row]
		for col := 0; col < fontWidth; col++ {
			c := ColorBlack
			if pattern&(0x80>>uint(col)) != 0 {
				c = fg
			}
			v.plot(ox+col, oy+row, c)
		}
	}
}

func (v *VDG) plotSG6(ox, oy int, b byte, css bool) {
	idx := b & 0x3F
	subset := cssSubset(css)
	fg := subset[0]
	if b&0x40 != 0 {
		fg = subset[1]
	}
	glyph := sg6Table[idx]
	for row := 0; row < fontHeight; row++ {
		pattern := glyph[row]
		for col := 0; col < fontWidth; col++ {
			c := ColorBlack
			if pattern&(0x80>>uint(col)) != 0 {
				c = fg
			}
			v.plot(ox+col, oy+row, c)
		}
	}
}

// renderSemigraphics paints SG8/SG12/SG24: like SG4, but each alpha cell
// splits into subcells vertical sub-cells, each with its own sequential
// byte.
func (v *VDG) renderSemigraphics(base uint16, subcells int) {
	subH := fontHeight / subcells
	addr := base
	for row := 0; row < 16; row++ {
		for col := 0; col < 32; col++ {
			ox, cellY := col*fontWidth, row*fontHeight
			for s := 0; s < subcells; s++ {
				b := v.bus.Read(addr)
				addr++
				idx := b & 0x0F
				fg := colorTable[(b>>4)&0x07]
				glyph := sg4Table[idx]
				oy := cellY + s*subH
				for r := 0; r < subH; r++ {
					pattern := glyph[(r*fontHeight/subH)%fontHeight]
					for c := 0; c < fontWidth; c++ {
						col2 := ColorBlack
						if pattern&(0x80>>uint(c)) != 0 {
							col2 = fg
						}
						v.plot(ox+c, oy+r, col2)
					}
				}
			}
		}
	}
}

// renderResolution paints a 1-bit-per-pixel (Resolution) graphics mode at
// its native dimensions, replicated up to 256x192.
func (v *VDG) renderResolution(base uint16, nativeW, nativeH int) {
	hRep, vRep := Width/nativeW, Height/nativeH
	on := ColorGreen
	if v.css() {
		on = ColorBuff
	}
	rowBytes := nativeW / 8
	addr := base
	for ny := 0; ny < nativeH; ny++ {
		for bx := 0; bx < rowBytes; bx++ {
			b := v.bus.Read(addr)
			addr++
			for bit := 0; bit < 8; bit++ {
				c := ColorBlack
				if b&(0x80>>uint(bit)) != 0 {
					c = on
				}
				px := (bx*8 + bit) * hRep
				py := ny * vRep
				for dy := 0; dy < vRep; dy++ {
					for dx := 0; dx < hRep; dx++ {
						v.plot(px+dx, py+dy, c)
					}
				}
			}
		}
	}
}

// renderColor paints a 2-bit-per-pixel (Color) graphics mode at its
// native dimensions, replicated up to 256x192.
func (v *VDG) renderColor(base uint16, nativeW, nativeH int) {
	hRep, vRep := Width/nativeW, Height/nativeH
	subset := cssSubset(v.css())
	rowBytes := nativeW / 4
	addr := base
	for ny := 0; ny < nativeH; ny++ {
		for bx := 0; bx < rowBytes; bx++ {
			b := v.bus.Read(addr)
			addr++
			for px4 := 0; px4 < 4; px4++ {
				shift := uint(6 - px4*2)
				idx := (b >> shift) & 0x03
				c := subset[idx]
				px := (bx*4 + px4) * hRep
				py := ny * vRep
				for dy := 0; dy < vRep; dy++ {
					for dx := 0; dx < hRep; dx++ {
						v.plot(px+dx, py+dy, c)
					}
				}
			}
		}
	}
}
