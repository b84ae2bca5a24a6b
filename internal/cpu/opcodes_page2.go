package cpu

// execPage2 decodes the 0x10-prefixed extension opcodes: long conditional
// branches, and the Y/S/D forms of CMP/LD/ST.
func (c *CPU) execPage2() {
	opcode := c.fetchByte()

	if opcode >= 0x20 && opcode <= 0x2F {
		target := c.fetchRelative16()
		if c.branchCondition(opcode & 0x0F) {
			c.PC = target
		}
		return
	}

	switch opcode {
	case 0x3F: // SWI2
		c.stackFull()
		c.PC = c.bus.ReadWord(vecSWI2)

	case 0x83: // CMPD immediate
		c.cmp16(c.D(), c.opImmediate16().val)
	case 0x8C: // CMPY immediate
		c.doCMP16(c.Y, c.opImmediate16())
	case 0x8E: // LDY immediate
		c.doLD16(&c.Y, c.opImmediate16())

	case 0x93: // CMPD direct
		c.cmp16(c.D(), c.opDirect16().val)
	case 0x9C: // CMPY direct
		c.doCMP16(c.Y, c.opDirect16())
	case 0x9E: // LDY direct
		c.doLD16(&c.Y, c.opDirect16())
	case 0x9F: // STY direct
		c.doST16(c.Y, c.opDirect16())

	case 0xA3: // CMPD indexed
		c.cmp16(c.D(), c.opIndexed16().val)
	case 0xAC: // CMPY indexed
		c.doCMP16(c.Y, c.opIndexed16())
	case 0xAE: // LDY indexed
		c.doLD16(&c.Y, c.opIndexed16())
	case 0xAF: // STY indexed
		c.doST16(c.Y, c.opIndexed16())

	case 0xB3: // CMPD extended
		c.cmp16(c.D(), c.opExtended16().val)
	case 0xBC: // CMPY extended
		c.doCMP16(c.Y, c.opExtended16())
	case 0xBE: // LDY extended
		c.doLD16(&c.Y, c.opExtended16())
	case 0xBF: // STY extended
		c.doST16(c.Y, c.opExtended16())

	case 0xCE: // LDS immediate
		c.doLD16(&c.S, c.opImmediate16())
		c.nmiArmed = true

	case 0xDE: // LDS direct
		c.doLD16(&c.S, c.opDirect16())
		c.nmiArmed = true
	case 0xDF: // STS direct
		c.doST16(c.S, c.opDirect16())

	case 0xEE: // LDS indexed
		c.doLD16(&c.S, c.opIndexed16())
		c.nmiArmed = true
	case 0xEF: // STS indexed
		c.doST16(c.S, c.opIndexed16())

	case 0xFE: // LDS extended
		c.doLD16(&c.S, c.opExtended16())
		c.nmiArmed = true
	case 0xFF: // STS extended
		c.doST16(c.S, c.opExtended16())

	default:
		c.illegalOpcode(opcode)
	}
}
