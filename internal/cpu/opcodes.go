package cpu

// This file dispatches the page-0 (unprefixed) MC6809E opcode map. Page-2
// (0x10 prefix) and page-3 (0x11 prefix) extensions live in
// opcodes_page2.go and opcodes_page3.go. Addressing-mode resolution is
// shared via addressing.go; flag-setting arithmetic lives in alu.go.

// operand8 carries a resolved 8-bit operand: its value, and (for memory
// operands) the address it came from so store-type instructions can write
// back.
type operand8 struct {
	val   byte
	ea    uint16
	isMem bool
}

// operand16 is the 16-bit analogue of operand8.
type operand16 struct {
	val   uint16
	ea    uint16
	isMem bool
}

func (c *CPU) opImmediate8() operand8 { return operand8{val: c.fetchImm8()} }
func (c *CPU) opDirect8() operand8 {
	ea := c.fetchDirectEA()
	return operand8{val: c.bus.Read(ea), ea: ea, isMem: true}
}
func (c *CPU) opIndexed8() operand8 {
	ea := c.fetchIndexedEA()
	return operand8{val: c.bus.Read(ea), ea: ea, isMem: true}
}
func (c *CPU) opExtended8() operand8 {
	ea := c.fetchExtendedEA()
	return operand8{val: c.bus.Read(ea), ea: ea, isMem: true}
}

func (c *CPU) opImmediate16() operand16 { return operand16{val: c.fetchImm16()} }
func (c *CPU) opDirect16() operand16 {
	ea := c.fetchDirectEA()
	return operand16{val: c.bus.ReadWord(ea), ea: ea, isMem: true}
}
func (c *CPU) opIndexed16() operand16 {
	ea := c.fetchIndexedEA()
	return operand16{val: c.bus.ReadWord(ea), ea: ea, isMem: true}
}
func (c *CPU) opExtended16() operand16 {
	ea := c.fetchExtendedEA()
	return operand16{val: c.bus.ReadWord(ea), ea: ea, isMem: true}
}

// --- 8-bit accumulator operations, parameterised over which accumulator ---

func (c *CPU) doSUB(acc *byte, o operand8)  { *acc = c.sub8(*acc, o.val) }
func (c *CPU) doCMP(acc byte, o operand8)   { c.cmp8(acc, o.val) }
func (c *CPU) doSBC(acc *byte, o operand8)  { *acc = c.sbc8(*acc, o.val) }
func (c *CPU) doAND(acc *byte, o operand8)  { *acc = c.and8(*acc, o.val) }
func (c *CPU) doBIT(acc byte, o operand8)   { c.bit8(acc, o.val) }
func (c *CPU) doLD(acc *byte, o operand8)   { *acc = c.load8(o.val) }
func (c *CPU) doEOR(acc *byte, o operand8)  { *acc = c.eor8(*acc, o.val) }
func (c *CPU) doADC(acc *byte, o operand8)  { *acc = c.adc8(*acc, o.val) }
func (c *CPU) doOR(acc *byte, o operand8)   { *acc = c.or8(*acc, o.val) }
func (c *CPU) doADD(acc *byte, o operand8)  { *acc = c.add8(*acc, o.val) }
func (c *CPU) doST(acc byte, o operand8) {
	c.bus.Write(o.ea, acc)
	negByteFlags(&c.Registers, acc)
	c.setFlag(FlagV, false)
}

// --- 16-bit register operations ---

func (c *CPU) doLD16(reg *uint16, o operand16) { *reg = c.load16(o.val) }
func (c *CPU) doST16(reg uint16, o operand16) {
	c.bus.WriteWord(o.ea, reg)
	negWordFlags(&c.Registers, reg)
	c.setFlag(FlagV, false)
}
func (c *CPU) doCMP16(reg uint16, o operand16) { c.cmp16(reg, o.val) }

// --- read-modify-write group: NEG/COM/LSR/ROR/ASR/ASL/ROL/DEC/INC/TST/CLR ---

func isIllegalRMWCol(col byte) bool {
	switch col {
	case 0x1, 0x2, 0x5, 0xB:
		return true
	}
	return false
}

// rmwApply performs the RMW operation named by col on v, returning the
// result and whether it should be written back (TST does not write back).
func (c *CPU) rmwApply(col byte, v byte) (byte, bool) {
	switch col {
	case 0x0:
		return c.neg8(v), true
	case 0x3:
		return c.com8(v), true
	case 0x4:
		return c.lsr8(v), true
	case 0x6:
		return c.ror8(v), true
	case 0x7:
		return c.asr8(v), true
	case 0x8:
		return c.asl8(v), true
	case 0x9:
		return c.rol8(v), true
	case 0xA:
		return c.dec8(v), true
	case 0xC:
		return c.inc8(v), true
	case 0xD:
		c.tst8(v)
		return v, false
	case 0xF:
		return c.clr8(), true
	default:
		return v, false
	}
}

func (c *CPU) execRMWDirect(opcode byte) {
	col := opcode & 0x0F
	ea := c.fetchDirectEA()
	if col == 0xE {
		c.PC = ea
		return
	}
	if isIllegalRMWCol(col) {
		c.illegalOpcode(opcode)
		return
	}
	res, store := c.rmwApply(col, c.bus.Read(ea))
	if store {
		c.bus.Write(ea, res)
	}
}

func (c *CPU) execRMWIndexed(opcode byte) {
	col := opcode & 0x0F
	ea := c.fetchIndexedEA()
	if col == 0xE {
		c.PC = ea
		return
	}
	if isIllegalRMWCol(col) {
		c.illegalOpcode(opcode)
		return
	}
	res, store := c.rmwApply(col, c.bus.Read(ea))
	if store {
		c.bus.Write(ea, res)
	}
}

func (c *CPU) execRMWExtended(opcode byte) {
	col := opcode & 0x0F
	ea := c.fetchExtendedEA()
	if col == 0xE {
		c.PC = ea
		return
	}
	if isIllegalRMWCol(col) {
		c.illegalOpcode(opcode)
		return
	}
	res, store := c.rmwApply(col, c.bus.Read(ea))
	if store {
		c.bus.Write(ea, res)
	}
}

func (c *CPU) execRMWInherent(opcode byte, acc *byte) {
	col := opcode & 0x0F
	if col == 0xE || isIllegalRMWCol(col) {
		c.illegalOpcode(opcode)
		return
	}
	res, store := c.rmwApply(col, *acc)
	if store {
		*acc = res
	}
}

// --- branch condition table, shared by short (0x20-0x2F) and long
// (0x1020-0x102F) branches ---

func (c *CPU) branchCondition(nibble byte) bool {
	n, z, v, cy := c.flag(FlagN), c.flag(FlagZ), c.flag(FlagV), c.flag(FlagC)
	switch nibble {
	case 0x0: // BRA
		return true
	case 0x1: // BRN
		return false
	case 0x2: // BHI
		return !cy && !z
	case 0x3: // BLS
		return cy || z
	case 0x4: // BHS/BCC
		return !cy
	case 0x5: // BLO/BCS
		return cy
	case 0x6: // BNE
		return !z
	case 0x7: // BEQ
		return z
	case 0x8: // BVC
		return !v
	case 0x9: // BVS
		return v
	case 0xA: // BPL
		return !n
	case 0xB: // BMI
		return n
	case 0xC: // BGE
		return n == v
	case 0xD: // BLT
		return n != v
	case 0xE: // BGT
		return !z && (n == v)
	case 0xF: // BLE
		return z || (n != v)
	}
	return false
}

// --- stack pointer word push/pull on the U stack (for PSHU/PULU) ---

func (c *CPU) pushWordU(v uint16) {
	c.pushByteU(byte(v))
	c.pushByteU(byte(v >> 8))
}

func (c *CPU) pullWordU() uint16 {
	hi := c.pullByteU()
	lo := c.pullByteU()
	return uint16(hi)<<8 | uint16(lo)
}

func (c *CPU) execPSHS(mask byte) {
	if mask&0x80 != 0 {
		c.pushWordS(c.PC)
	}
	if mask&0x40 != 0 {
		c.pushWordS(c.U)
	}
	if mask&0x20 != 0 {
		c.pushWordS(c.Y)
	}
	if mask&0x10 != 0 {
		c.pushWordS(c.X)
	}
	if mask&0x08 != 0 {
		c.pushByteS(c.DP)
	}
	if mask&0x04 != 0 {
		c.pushByteS(c.B)
	}
	if mask&0x02 != 0 {
		c.pushByteS(c.A)
	}
	if mask&0x01 != 0 {
		c.pushByteS(c.CC)
	}
}

func (c *CPU) execPULS(mask byte) {
	if mask&0x01 != 0 {
		c.CC = c.pullByteS()
	}
	if mask&0x02 != 0 {
		c.A = c.pullByteS()
	}
	if mask&0x04 != 0 {
		c.B = c.pullByteS()
	}
	if mask&0x08 != 0 {
		c.DP = c.pullByteS()
	}
	if mask&0x10 != 0 {
		c.X = c.pullWordS()
	}
	if mask&0x20 != 0 {
		c.Y = c.pullWordS()
	}
	if mask&0x40 != 0 {
		c.U = c.pullWordS()
	}
	if mask&0x80 != 0 {
		c.PC = c.pullWordS()
	}
}

func (c *CPU) execPSHU(mask byte) {
	if mask&0x80 != 0 {
		c.pushWordU(c.PC)
	}
	if mask&0x40 != 0 {
		c.pushWordU(c.S)
	}
	if mask&0x20 != 0 {
		c.pushWordU(c.Y)
	}
	if mask&0x10 != 0 {
		c.pushWordU(c.X)
	}
	if mask&0x08 != 0 {
		c.pushByteU(c.DP)
	}
	if mask&0x04 != 0 {
		c.pushByteU(c.B)
	}
	if mask&0x02 != 0 {
		c.pushByteU(c.A)
	}
	if mask&0x01 != 0 {
		c.pushByteU(c.CC)
	}
}

func (c *CPU) execPULU(mask byte) {
	if mask&0x01 != 0 {
		c.CC = c.pullByteU()
	}
	if mask&0x02 != 0 {
		c.A = c.pullByteU()
	}
	if mask&0x04 != 0 {
		c.B = c.pullByteU()
	}
	if mask&0x08 != 0 {
		c.DP = c.pullByteU()
	}
	if mask&0x10 != 0 {
		c.X = c.pullWordU()
	}
	if mask&0x20 != 0 {
		c.Y = c.pullWordU()
	}
	if mask&0x40 != 0 {
		c.U = c.pullWordU()
	}
	if mask&0x80 != 0 {
		c.PC = c.pullWordU()
	}
}

// --- EXG/TFR register file access by postbyte nibble code ---

func (c *CPU) reg16ByCode(code byte) (get func() uint16, set func(uint16), ok bool) {
	switch code {
	case 0x0:
		return c.D, c.SetD, true
	case 0x1:
		return func() uint16 { return c.X }, func(v uint16) { c.X = v }, true
	case 0x2:
		return func() uint16 { return c.Y }, func(v uint16) { c.Y = v }, true
	case 0x3:
		return func() uint16 { return c.U }, func(v uint16) { c.U = v }, true
	case 0x4:
		return func() uint16 { return c.S }, func(v uint16) { c.S = v }, true
	case 0x5:
		return func() uint16 { return c.PC }, func(v uint16) { c.PC = v }, true
	}
	return nil, nil, false
}

func (c *CPU) reg8ByCode(code byte) (get func() byte, set func(byte), ok bool) {
	switch code {
	case 0x8:
		return func() byte { return c.A }, func(v byte) { c.A = v }, true
	case 0x9:
		return func() byte { return c.B }, func(v byte) { c.B = v }, true
	case 0xA:
		return func() byte { return c.CC }, func(v byte) { c.CC = v }, true
	case 0xB:
		return func() byte { return c.DP }, func(v byte) { c.DP = v }, true
	}
	return nil, nil, false
}

func (c *CPU) execEXG(postbyte byte) {
	src, dst := postbyte>>4, postbyte&0x0F
	if g1, s1, ok1 := c.reg16ByCode(src); ok1 {
		g2, s2, ok2 := c.reg16ByCode(dst)
		if !ok2 {
			c.illegalOpcode(0x1E)
			return
		}
		v1, v2 := g1(), g2()
		s1(v2)
		s2(v1)
		return
	}
	if g1, s1, ok1 := c.reg8ByCode(src); ok1 {
		g2, s2, ok2 := c.reg8ByCode(dst)
		if !ok2 {
			c.illegalOpcode(0x1E)
			return
		}
		v1, v2 := g1(), g2()
		s1(v2)
		s2(v1)
		return
	}
	c.illegalOpcode(0x1E)
}

func (c *CPU) execTFR(postbyte byte) {
	src, dst := postbyte>>4, postbyte&0x0F
	if g1, _, ok1 := c.reg16ByCode(src); ok1 {
		if _, s2, ok2 := c.reg16ByCode(dst); ok2 {
			s2(g1())
			if dst == 0x4 { // TFR into S arms NMI the same as a write via LDS
				c.nmiArmed = true
			}
			return
		}
		c.illegalOpcode(0x1F)
		return
	}
	if g1, _, ok1 := c.reg8ByCode(src); ok1 {
		if _, s2, ok2 := c.reg8ByCode(dst); ok2 {
			s2(g1())
			return
		}
		c.illegalOpcode(0x1F)
		return
	}
	c.illegalOpcode(0x1F)
}

// execPage0 decodes and executes the unprefixed opcode map.
func (c *CPU) execPage0(opcode byte) {
	switch {
	case opcode <= 0x0F:
		c.execRMWDirect(opcode)
		return
	case opcode >= 0x60 && opcode <= 0x6F:
		c.execRMWIndexed(opcode)
		return
	case opcode >= 0x70 && opcode <= 0x7F:
		c.execRMWExtended(opcode)
		return
	case opcode >= 0x40 && opcode <= 0x4F:
		c.execRMWInherent(opcode, &c.A)
		return
	case opcode >= 0x50 && opcode <= 0x5F:
		c.execRMWInherent(opcode, &c.B)
		return
	case opcode >= 0x20 && opcode <= 0x2F:
		target := c.fetchRelative8()
		if c.branchCondition(opcode & 0x0F) {
			c.PC = target
		}
		return
	}

	switch opcode {
	case 0x12: // NOP
	case 0x13: // SYNC
		c.state = StateSyncing
	case 0x16: // LBRA
		c.PC = c.fetchRelative16()
	case 0x17: // LBSR
		target := c.fetchRelative16()
		c.pushWordS(c.PC)
		c.PC = target
	case 0x19: // DAA
		c.daa()
	case 0x1A: // ORCC #imm
		c.CC |= c.fetchImm8()
	case 0x1C: // ANDCC #imm
		c.CC &= c.fetchImm8()
	case 0x1D: // SEX
		if c.B&0x80 != 0 {
			c.A = 0xFF
		} else {
			c.A = 0x00
		}
		negWordFlags(&c.Registers, c.D())
	case 0x1E: // EXG
		c.execEXG(c.fetchByte())
	case 0x1F: // TFR
		c.execTFR(c.fetchByte())

	case 0x30: // LEAX
		c.X = c.fetchIndexedEA()
		c.setFlag(FlagZ, c.X == 0)
	case 0x31: // LEAY
		c.Y = c.fetchIndexedEA()
		c.setFlag(FlagZ, c.Y == 0)
	case 0x32: // LEAS
		c.S = c.fetchIndexedEA()
		c.nmiArmed = true
	case 0x33: // LEAU
		c.U = c.fetchIndexedEA()
	case 0x34: // PSHS
		c.execPSHS(c.fetchByte())
	case 0x35: // PULS
		c.execPULS(c.fetchByte())
	case 0x36: // PSHU
		c.execPSHU(c.fetchByte())
	case 0x37: // PULU
		c.execPULU(c.fetchByte())
	case 0x39: // RTS
		c.PC = c.pullWordS()
	case 0x3A: // ABX
		c.X += uint16(c.B)
	case 0x3B: // RTI
		c.unstack()
	case 0x3C: // CWAI
		mask := c.fetchImm8()
		c.CC &= mask
		c.stackFull()
		c.state = StateWaitingInterrupt
	case 0x3D: // MUL
		prod := uint16(c.A) * uint16(c.B)
		c.SetD(prod)
		c.setFlag(FlagZ, prod == 0)
		c.setFlag(FlagC, prod&0x80 != 0)
	case 0x3F: // SWI
		c.stackFull()
		c.CC |= FlagI | FlagF
		c.PC = c.bus.ReadWord(vecSWI)

	case 0x80:
		c.doSUB(&c.A, c.opImmediate8())
	case 0x81:
		c.doCMP(c.A, c.opImmediate8())
	case 0x82:
		c.doSBC(&c.A, c.opImmediate8())
	case 0x83:
		c.SetD(c.sub16(c.D(), c.opImmediate16().val))
	case 0x84:
		c.doAND(&c.A, c.opImmediate8())
	case 0x85:
		c.doBIT(c.A, c.opImmediate8())
	case 0x86:
		c.doLD(&c.A, c.opImmediate8())
	case 0x88:
		c.doEOR(&c.A, c.opImmediate8())
	case 0x89:
		c.doADC(&c.A, c.opImmediate8())
	case 0x8A:
		c.doOR(&c.A, c.opImmediate8())
	case 0x8B:
		c.doADD(&c.A, c.opImmediate8())
	case 0x8C:
		c.doCMP16(c.X, c.opImmediate16())
	case 0x8D: // BSR
		target := c.fetchRelative8()
		c.pushWordS(c.PC)
		c.PC = target
	case 0x8E:
		c.doLD16(&c.X, c.opImmediate16())

	case 0x90:
		c.doSUB(&c.A, c.opDirect8())
	case 0x91:
		c.doCMP(c.A, c.opDirect8())
	case 0x92:
		c.doSBC(&c.A, c.opDirect8())
	case 0x93:
		o := c.opDirect16()
		c.SetD(c.sub16(c.D(), o.val))
	case 0x94:
		c.doAND(&c.A, c.opDirect8())
	case 0x95:
		c.doBIT(c.A, c.opDirect8())
	case 0x96:
		c.doLD(&c.A, c.opDirect8())
	case 0x97:
		c.doST(c.A, c.opDirect8())
	case 0x98:
		c.doEOR(&c.A, c.opDirect8())
	case 0x99:
		c.doADC(&c.A, c.opDirect8())
	case 0x9A:
		c.doOR(&c.A, c.opDirect8())
	case 0x9B:
		c.doADD(&c.A, c.opDirect8())
	case 0x9C:
		c.doCMP16(c.X, c.opDirect16())
	case 0x9D: // JSR direct
		ea := c.fetchDirectEA()
		c.pushWordS(c.PC)
		c.PC = ea
	case 0x9E:
		c.doLD16(&c.X, c.opDirect16())
	case 0x9F:
		c.doST16(c.X, c.opDirect16())

	case 0xA0:
		c.doSUB(&c.A, c.opIndexed8())
	case 0xA1:
		c.doCMP(c.A, c.opIndexed8())
	case 0xA2:
		c.doSBC(&c.A, c.opIndexed8())
	case 0xA3:
		o := c.opIndexed16()
		c.SetD(c.sub16(c.D(), o.val))
	case 0xA4:
		c.doAND(&c.A, c.opIndexed8())
	case 0xA5:
		c.doBIT(c.A, c.opIndexed8())
	case 0xA6:
		c.doLD(&c.A, c.opIndexed8())
	case 0xA7:
		c.doST(c.A, c.opIndexed8())
	case 0xA8:
		c.doEOR(&c.A, c.opIndexed8())
	case 0xA9:
		c.doADC(&c.A, c.opIndexed8())
	case 0xAA:
		c.doOR(&c.A, c.opIndexed8())
	case 0xAB:
		c.doADD(&c.A, c.opIndexed8())
	case 0xAC:
		c.doCMP16(c.X, c.opIndexed16())
	case 0xAD: // JSR indexed
		ea := c.fetchIndexedEA()
		c.pushWordS(c.PC)
		c.PC = ea
	case 0xAE:
		c.doLD16(&c.X, c.opIndexed16())
	case 0xAF:
		c.doST16(c.X, c.opIndexed16())

	case 0xB0:
		c.doSUB(&c.A, c.opExtended8())
	case 0xB1:
		c.doCMP(c.A, c.opExtended8())
	case 0xB2:
		c.doSBC(&c.A, c.opExtended8())
	case 0xB3:
		o := c.opExtended16()
		c.SetD(c.sub16(c.D(), o.val))
	case 0xB4:
		c.doAND(&c.A, c.opExtended8())
	case 0xB5:
		c.doBIT(c.A, c.opExtended8())
	case 0xB6:
		c.doLD(&c.A, c.opExtended8())
	case 0xB7:
		c.doST(c.A, c.opExtended8())
	case 0xB8:
		c.doEOR(&c.A, c.opExtended8())
	case 0xB9:
		c.doADC(&c.A, c.opExtended8())
	case 0xBA:
		c.doOR(&c.A, c.opExtended8())
	case 0xBB:
		c.doADD(&c.A, c.opExtended8())
	case 0xBC:
		c.doCMP16(c.X, c.opExtended16())
	case 0xBD: // JSR extended
		ea := c.fetchExtendedEA()
		c.pushWordS(c.PC)
		c.PC = ea
	case 0xBE:
		c.doLD16(&c.X, c.opExtended16())
	case 0xBF:
		c.doST16(c.X, c.opExtended16())

	case 0xC0:
		c.doSUB(&c.B, c.opImmediate8())
	case 0xC1:
		c.doCMP(c.B, c.opImmediate8())
	case 0xC2:
		c.doSBC(&c.B, c.opImmediate8())
	case 0xC3:
		c.SetD(c.add16(c.D(), c.opImmediate16().val))
	case 0xC4:
		c.doAND(&c.B, c.opImmediate8())
	case 0xC5:
		c.doBIT(c.B, c.opImmediate8())
	case 0xC6:
		c.doLD(&c.B, c.opImmediate8())
	case 0xC8:
		c.doEOR(&c.B, c.opImmediate8())
	case 0xC9:
		c.doADC(&c.B, c.opImmediate8())
	case 0xCA:
		c.doOR(&c.B, c.opImmediate8())
	case 0xCB:
		c.doADD(&c.B, c.opImmediate8())
	case 0xCC:
		c.SetD(c.load16(c.opImmediate16().val))
	case 0xCE:
		c.doLD16(&c.U, c.opImmediate16())

	case 0xD0:
		c.doSUB(&c.B, c.opDirect8())
	case 0xD1:
		c.doCMP(c.B, c.opDirect8())
	case 0xD2:
		c.doSBC(&c.B, c.opDirect8())
	case 0xD3:
		c.SetD(c.add16(c.D(), c.opDirect16().val))
	case 0xD4:
		c.doAND(&c.B, c.opDirect8())
	case 0xD5:
		c.doBIT(c.B, c.opDirect8())
	case 0xD6:
		c.doLD(&c.B, c.opDirect8())
	case 0xD7:
		c.doST(c.B, c.opDirect8())
	case 0xD8:
		c.doEOR(&c.B, c.opDirect8())
	case 0xD9:
		c.doADC(&c.B, c.opDirect8())
	case 0xDA:
		c.doOR(&c.B, c.opDirect8())
	case 0xDB:
		c.doADD(&c.B, c.opDirect8())
	case 0xDC:
		c.SetD(c.load16(c.opDirect16().val))
	case 0xDD:
		c.doST16(c.D(), c.opDirect16())
	case 0xDE:
		c.doLD16(&c.U, c.opDirect16())
	case 0xDF:
		c.doST16(c.U, c.opDirect16())

	case 0xE0:
		c.doSUB(&c.B, c.opIndexed8())
	case 0xE1:
		c.doCMP(c.B, c.opIndexed8())
	case 0xE2:
		c.doSBC(&c.B, c.opIndexed8())
	case 0xE3:
		c.SetD(c.add16(c.D(), c.opIndexed16().val))
	case 0xE4:
		c.doAND(&c.B, c.opIndexed8())
	case 0xE5:
		c.doBIT(c.B, c.opIndexed8())
	case 0xE6:
		c.doLD(&c.B, c.opIndexed8())
	case 0xE7:
		c.doST(c.B, c.opIndexed8())
	case 0xE8:
		c.doEOR(&c.B, c.opIndexed8())
	case 0xE9:
		c.doADC(&c.B, c.opIndexed8())
	case 0xEA:
		c.doOR(&c.B, c.opIndexed8())
	case 0xEB:
		c.doADD(&c.B, c.opIndexed8())
	case 0xEC:
		c.SetD(c.load16(c.opIndexed16().val))
	case 0xED:
		c.doST16(c.D(), c.opIndexed16())
	case 0xEE:
		c.doLD16(&c.U, c.opIndexed16())
	case 0xEF:
		c.doST16(c.U, c.opIndexed16())

	case 0xF0:
		c.doSUB(&c.B, c.opExtended8())
	case 0xF1:
		c.doCMP(c.B, c.opExtended8())
	case 0xF2:
		c.doSBC(&c.B, c.opExtended8())
	case 0xF3:
		c.SetD(c.add16(c.D(), c.opExtended16().val))
	case 0xF4:
		c.doAND(&c.B, c.opExtended8())
	case 0xF5:
		c.doBIT(c.B, c.opExtended8())
	case 0xF6:
		c.doLD(&c.B, c.opExtended8())
	case 0xF7:
		c.doST(c.B, c.opExtended8())
	case 0xF8:
		c.doEOR(&c.B, c.opExtended8())
	case 0xF9:
		c.doADC(&c.B, c.opExtended8())
	case 0xFA:
		c.doOR(&c.B, c.opExtended8())
	case 0xFB:
		c.doADD(&c.B, c.opExtended8())
	case 0xFC:
		c.SetD(c.load16(c.opExtended16().val))
	case 0xFD:
		c.doST16(c.D(), c.opExtended16())
	case 0xFE:
		c.doLD16(&c.U, c.opExtended16())
	case 0xFF:
		c.doST16(c.U, c.opExtended16())

	default:
		c.illegalOpcode(opcode)
	}
}
