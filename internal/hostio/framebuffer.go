package hostio

import (
	"bytes"
	"image"
	"image/color"
	"image/png"

	"golang.org/x/image/draw"

	"github.com/dragon32/dragon32-core/internal/vdg"
)

// hostPalette gives RGB values for each of the VDG's 16 host palette
// indices (internal/vdg.Palette*), in index order. These are the
// conventional Dragon 32/CoCo RGB values.
var hostPalette = [16]color.RGBA{
	{0x00, 0x00, 0x00, 0xFF}, // black
	{0x00, 0x00, 0xAA, 0xFF}, // blue
	{0x00, 0xAA, 0x00, 0xFF}, // green
	{0x00, 0xAA, 0xAA, 0xFF}, // cyan
	{0xAA, 0x00, 0x00, 0xFF}, // red
	{0xAA, 0x00, 0xAA, 0xFF}, // magenta
	{0xAA, 0x55, 0x00, 0xFF}, // brown
	{0xAA, 0xAA, 0xAA, 0xFF}, // gray
	{0x55, 0x55, 0x55, 0xFF}, // dark gray
	{0x55, 0x55, 0xFF, 0xFF}, // light blue
	{0x55, 0xFF, 0x55, 0xFF}, // light green
	{0x55, 0xFF, 0xFF, 0xFF}, // light cyan
	{0xFF, 0x55, 0x55, 0xFF}, // light red
	{0xFF, 0x55, 0xFF, 0xFF}, // light magenta
	{0xFF, 0xFF, 0x55, 0xFF}, // yellow
	{0xFF, 0xFF, 0xFF, 0xFF}, // white
}

// ImageFrameBuffer expands the VDG's 256x192 8-bpp palette-index buffer
// into an image.RGBA and scales it onto a host-sized canvas using
// golang.org/x/image/draw.
type ImageFrameBuffer struct {
	indexed *image.RGBA
	scaled  *image.RGBA
	scale   int
}

// NewImageFrameBuffer builds a frame buffer that renders the VDG's fixed
// 256x192 image at the given integer scale.
func NewImageFrameBuffer(scale int) *ImageFrameBuffer {
	if scale < 1 {
		scale = 1
	}
	return &ImageFrameBuffer{
		indexed: image.NewRGBA(image.Rect(0, 0, vdg.Width, vdg.Height)),
		scaled:  image.NewRGBA(image.Rect(0, 0, vdg.Width*scale, vdg.Height*scale)),
		scale:   scale,
	}
}

// Update expands fb through hostPalette and scales the result into the
// buffer Image returns.
func (f *ImageFrameBuffer) Update(fb *vdg.FrameBuffer) {
	for y := 0; y < vdg.Height; y++ {
		for x := 0; x < vdg.Width; x++ {
			idx := fb[y*vdg.Width+x] & 0x0F
			f.indexed.SetRGBA(x, y, hostPalette[idx])
		}
	}
	draw.NearestNeighbor.Scale(f.scaled, f.scaled.Bounds(), f.indexed, f.indexed.Bounds(), draw.Over, nil)
}

// Image returns the last-Update'd, host-scaled RGBA frame.
func (f *ImageFrameBuffer) Image() *image.RGBA { return f.scaled }

// PNGSnapshot encodes the current frame as a PNG, for any host screenshot
// hook.
func (f *ImageFrameBuffer) PNGSnapshot() ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, f.scaled); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
