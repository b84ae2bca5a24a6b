package vdg

// Mode is the derived current video mode.
type Mode int

const (
	ModeAlphaInt Mode = iota
	ModeAlphaExt
	ModeSG4
	ModeSG6
	ModeSG8
	ModeSG12
	ModeSG24
	ModeG1C
	ModeG1R
	ModeG2C
	ModeG2R
	ModeG3C
	ModeG3R
	ModeG6C
	ModeG6R
	ModeDMA
)

func (m Mode) String() string {
	switch m {
	case ModeAlphaInt:
		return "ALPHA_INT"
	case ModeAlphaExt:
		return "ALPHA_EXT"
	case ModeSG4:
		return "SG4"
	case ModeSG6:
		return "SG6"
	case ModeSG8:
		return "SG8"
	case ModeSG12:
		return "SG12"
	case ModeSG24:
		return "SG24"
	case ModeG1C:
		return "G1C"
	case ModeG1R:
		return "G1R"
	case ModeG2C:
		return "G2C"
	case ModeG2R:
		return "G2R"
	case ModeG3C:
		return "G3C"
	case ModeG3R:
		return "G3R"
	case ModeG6C:
		return "G6C"
	case ModeG6R:
		return "G6R"
	case ModeDMA:
		return "DMA"
	default:
		return "UNKNOWN"
	}
}

// currentMode implements the video mode truth table over sam.video_mode
// and the PIA1-driven ^A/G, GMx, CSS bits. ag is PIA1 port B bit 4; gm is
// the 3-bit GM2:GM1:GM0 field; sg24 selects SG12 vs SG24 within sam.vm=4
// and is resolved by the caller before asking for a mode (VDG.CurrentMode
// derives it from the CSS bit).
func currentMode(samVM byte, ag bool, gm byte, sg24 bool) Mode {
	if samVM == 7 {
		return ModeDMA
	}
	if !ag {
		switch samVM {
		case 0:
			if gm&0x01 == 0 {
				return ModeAlphaInt
			}
			return ModeAlphaExt
		case 2:
			return ModeSG8
		case 4:
			if sg24 {
				return ModeSG24
			}
			return ModeSG12
		default:
			return ModeAlphaInt
		}
	}

	color := gm&0x01 == 0 // even GM selects the Color variant, odd selects Resolution
	switch samVM {
	case 1:
		if color {
			return ModeG1C
		}
		return ModeG1R
	case 2, 3:
		if color {
			return ModeG2C
		}
		return ModeG2R
	case 4, 5:
		if color {
			return ModeG3C
		}
		return ModeG3R
	case 6:
		if color {
			return ModeG6C
		}
		return ModeG6R
	default:
		return ModeAlphaInt
	}
}
