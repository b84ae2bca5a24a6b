package vdg

// VDGColor names the MC6847's 8 graphics colors plus black, the only
// colors the render pipeline ever selects.
type VDGColor int

const (
	ColorBlack VDGColor = iota
	ColorGreen
	ColorYellow
	ColorBlue
	ColorRed
	ColorBuff
	ColorCyan
	ColorMagenta
	ColorOrange
)

// colorTable is the 8-entry graphics color set; cssSubset below picks
// the CSS=0/CSS=1 half.
var colorTable = [8]VDGColor{
	ColorGreen, ColorYellow, ColorBlue, ColorRed,
	ColorBuff, ColorCyan, ColorMagenta, ColorOrange,
}

// cssSubset returns the 4-color subset selected by CSS.
func cssSubset(css bool) [4]VDGColor {
	if !css {
		return [4]VDGColor{colorTable[0], colorTable[1], colorTable[2], colorTable[3]}
	}
	return [4]VDGColor{colorTable[4], colorTable[5], colorTable[6], colorTable[7]}
}

// Host palette indices, in frame-buffer 16-entry palette order.
const (
	PaletteBlack byte = iota
	PaletteBlue
	PaletteGreen
	PaletteCyan
	PaletteRed
	PaletteMagenta
	PaletteBrown
	PaletteGray
	PaletteDarkGray
	PaletteLightBlue
	PaletteLightGreen
	PaletteLightCyan
	PaletteLightRed
	PaletteLightMagenta
	PaletteYellow
	PaletteWhite
)

// paletteIndexFor maps a VDG graphics color onto the nearest host palette
// entry. The mapping is implementation-defined and fixed, so it
// round-trips deterministically against any test palette fixture.
func paletteIndexFor(c VDGColor) byte {
	switch c {
	case ColorGreen:
		return PaletteGreen
	case ColorYellow:
		return PaletteYellow
	case ColorBlue:
		return PaletteBlue
	case ColorRed:
		return PaletteRed
	case ColorBuff:
		return PaletteWhite
	case ColorCyan:
		return PaletteCyan
	case ColorMagenta:
		return PaletteMagenta
	case ColorOrange:
		return PaletteBrown
	default:
		return PaletteBlack
	}
}
