package cpu

// This file implements MC6809E effective-address computation:
// immediate, direct (DP-relative), extended, and the full indexed postbyte
// table including auto increment/decrement, accumulator offsets,
// PC-relative, and indirection through any of those.

func (c *CPU) fetchByte() byte {
	v := c.bus.Read(c.PC)
	c.PC++
	return v
}

func (c *CPU) fetchWord() uint16 {
	hi := c.fetchByte()
	lo := c.fetchByte()
	return uint16(hi)<<8 | uint16(lo)
}

// fetchImm8 consumes one immediate operand byte.
func (c *CPU) fetchImm8() byte { return c.fetchByte() }

// fetchImm16 consumes a 16-bit immediate operand.
func (c *CPU) fetchImm16() uint16 { return c.fetchWord() }

// fetchDirectEA resolves a direct-page operand address: DP:offset.
func (c *CPU) fetchDirectEA() uint16 {
	off := c.fetchByte()
	return uint16(c.DP)<<8 | uint16(off)
}

// fetchExtendedEA resolves a 16-bit absolute operand address.
func (c *CPU) fetchExtendedEA() uint16 {
	return c.fetchWord()
}

func (c *CPU) indexedRegister(sel byte) *uint16 {
	switch sel {
	case 0:
		return &c.X
	case 1:
		return &c.Y
	case 2:
		return &c.U
	default:
		return &c.S
	}
}

// fetchIndexedEA decodes the indexed addressing postbyte per the MC6809E
// reference table and returns the final effective address, consuming
// whatever extra bytes the selected mode requires.
func (c *CPU) fetchIndexedEA() uint16 {
	post := c.fetchByte()

	if post&0x80 == 0 {
		// 5-bit signed offset, no indirection.
		reg := c.indexedRegister((post >> 5) & 0x03)
		offset := int8(post<<3) >> 3 // sign-extend low 5 bits
		return *reg + uint16(int16(offset))
	}

	regSel := (post >> 5) & 0x03
	indirect := post&0x10 != 0
	mode := post & 0x0F
	reg := c.indexedRegister(regSel)

	var ea uint16
	switch mode {
	case 0x00: // ,R+
		ea = *reg
		*reg += 1
	case 0x01: // ,R++
		ea = *reg
		*reg += 2
	case 0x02: // ,-R
		*reg -= 1
		ea = *reg
	case 0x03: // ,--R
		*reg -= 2
		ea = *reg
	case 0x04: // ,R
		ea = *reg
	case 0x05: // B,R
		ea = *reg + uint16(int16(int8(c.B)))
	case 0x06: // A,R
		ea = *reg + uint16(int16(int8(c.A)))
	case 0x08: // n8,R
		off := int8(c.fetchByte())
		ea = *reg + uint16(int16(off))
	case 0x09: // n16,R
		off := int16(c.fetchWord())
		ea = *reg + uint16(off)
	case 0x0B: // D,R
		ea = *reg + c.D()
	case 0x0C: // n8,PC
		off := int8(c.fetchByte())
		ea = c.PC + uint16(int16(off))
	case 0x0D: // n16,PC
		off := int16(c.fetchWord())
		ea = c.PC + uint16(off)
	case 0x0F: // [n16] extended indirect
		ea = c.fetchWord()
		indirect = true
	default:
		// Reserved encodings (0x07, 0x0A, 0x0E): treated as ,R per
		// undefined-but-harmless fallback.
		ea = *reg
	}

	if indirect && mode != 0x0F {
		ea = c.bus.ReadWord(ea)
	} else if mode == 0x0F {
		ea = c.bus.ReadWord(ea)
	}
	return ea
}

// fetchRelative8 resolves the target of an 8-bit relative branch, relative
// to the address of the instruction *after* the offset byte.
func (c *CPU) fetchRelative8() uint16 {
	off := int8(c.fetchByte())
	return c.PC + uint16(int16(off))
}

// fetchRelative16 resolves the target of a 16-bit relative branch.
func (c *CPU) fetchRelative16() uint16 {
	off := int16(c.fetchWord())
	return c.PC + uint16(off)
}
