//go:build rv32c

package decode

// IsCompressed reports whether a fetched halfword begins a 16-bit
// instruction: quadrants 0, 1 and 2 (low two bits != 0b11) are compressed;
// quadrant 3 begins a full 32-bit word.
func IsCompressed(low16 uint16) bool {
	return low16&0x3 != 0x3
}

// rvcReg maps a 3-bit compressed register field (0..7) onto the
// corresponding GPR index (x8..x15) — the eight registers the compressed
// encodings with a 3-bit register field can address.
func rvcReg(b uint16) uint32 { return uint32(b) + 8 }

// DecodeCompressed expands a 16-bit instruction to the equivalent
// uncompressed Op. Reserved and malformed 16-bit encodings decode to
// Illegal, matching the rule that some compressed forms are defined to be
// illegal outright (e.g. c.addi4spn with a zero immediate).
func DecodeCompressed(half uint16) Op {
	h := uint32(half)
	illegal := Op{Kind: Illegal, Raw: h, Size: 2}

	quadrant := half & 0x3
	funct3 := (half >> 13) & 0x7

	switch quadrant {
	case 0b00:
		rdp := rvcReg((half >> 2) & 0x7)
		rs1p := rvcReg((half >> 7) & 0x7)
		switch funct3 {
		case 0b000: // c.addi4spn
			imm := ((half >> 11 & 0x3) << 4) | ((half >> 7 & 0xf) << 6) | ((half >> 6 & 0x1) << 2) | ((half >> 5 & 0x1) << 3)
			if imm == 0 {
				return illegal
			}
			return Op{Kind: Addi, Raw: h, Size: 2, Rd: rdp, Rs1: 2, Imm: int32(imm)}
		case 0b010: // c.lw
			imm := ((half >> 10 & 0x7) << 3) | ((half >> 6 & 0x1) << 2) | ((half >> 5 & 0x1) << 6)
			return Op{Kind: Lw, Raw: h, Size: 2, Rd: rdp, Rs1: rs1p, Imm: int32(imm)}
		case 0b110: // c.sw
			rs2p := rdp
			imm := ((half >> 10 & 0x7) << 3) | ((half >> 6 & 0x1) << 2) | ((half >> 5 & 0x1) << 6)
			return Op{Kind: Sw, Raw: h, Size: 2, Rs1: rs1p, Rs2: rs2p, Imm: int32(imm)}
		default:
			return illegal
		}

	case 0b01:
		rd := uint32(half>>7) & 0x1f
		switch funct3 {
		case 0b000: // c.addi / c.nop
			imm := signExtend(uint32((half>>12&1)<<5|(half>>2&0x1f)), 6)
			return Op{Kind: Addi, Raw: h, Size: 2, Rd: rd, Rs1: rd, Imm: imm}
		case 0b001: // c.jal, RV32 only: rd = x1
			imm := cjImm(half)
			return Op{Kind: Jal, Raw: h, Size: 2, Rd: 1, Imm: imm}
		case 0b010: // c.li
			imm := signExtend(uint32((half>>12&1)<<5|(half>>2&0x1f)), 6)
			return Op{Kind: Addi, Raw: h, Size: 2, Rd: rd, Rs1: 0, Imm: imm}
		case 0b011:
			if rd == 2 { // c.addi16sp
				imm := ((half >> 12 & 1) << 9) | ((half >> 6 & 1) << 4) | ((half >> 5 & 1) << 6) |
					((half >> 3 & 0x3) << 7) | ((half >> 2 & 1) << 5)
				signed := signExtend(uint32(imm), 10)
				if signed == 0 {
					return illegal
				}
				return Op{Kind: Addi, Raw: h, Size: 2, Rd: 2, Rs1: 2, Imm: signed}
			}
			// c.lui
			if rd == 0 {
				return illegal
			}
			field := uint32((half>>12&1)<<5 | (half>>2&0x1f))
			signed := signExtend(field, 6)
			if signed == 0 {
				return illegal
			}
			return Op{Kind: Lui, Raw: h, Size: 2, Rd: rd, Imm: signed << 12}
		case 0b100:
			rs1p := rvcReg((half >> 7) & 0x7)
			group := (half >> 10) & 0x3
			switch group {
			case 0b00: // c.srli
				if half>>12&1 != 0 {
					return illegal
				}
				shamt := uint32(half>>2) & 0x1f
				return Op{Kind: Srli, Raw: h, Size: 2, Rd: rs1p, Rs1: rs1p, Shamt: shamt}
			case 0b01: // c.srai
				if half>>12&1 != 0 {
					return illegal
				}
				shamt := uint32(half>>2) & 0x1f
				return Op{Kind: Srai, Raw: h, Size: 2, Rd: rs1p, Rs1: rs1p, Shamt: shamt}
			case 0b10: // c.andi
				imm := signExtend(uint32((half>>12&1)<<5|(half>>2&0x1f)), 6)
				return Op{Kind: Andi, Raw: h, Size: 2, Rd: rs1p, Rs1: rs1p, Imm: imm}
			case 0b11:
				if half>>12&1 != 0 {
					return illegal // c.subw/c.addw family: RV64-only
				}
				rs2p := rvcReg((half >> 2) & 0x7)
				var k Kind
				switch (half >> 5) & 0x3 {
				case 0b00:
					k = Sub
				case 0b01:
					k = Xor
				case 0b10:
					k = Or
				case 0b11:
					k = And
				}
				return Op{Kind: k, Raw: h, Size: 2, Rd: rs1p, Rs1: rs1p, Rs2: rs2p}
			}
		case 0b101: // c.j
			return Op{Kind: Jal, Raw: h, Size: 2, Rd: 0, Imm: cjImm(half)}
		case 0b110: // c.beqz
			return Op{Kind: Beq, Raw: h, Size: 2, Rs1: rvcReg((half >> 7) & 0x7), Rs2: 0, Imm: cbImm(half)}
		case 0b111: // c.bnez
			return Op{Kind: Bne, Raw: h, Size: 2, Rs1: rvcReg((half >> 7) & 0x7), Rs2: 0, Imm: cbImm(half)}
		}
		return illegal

	case 0b10:
		rd := uint32(half>>7) & 0x1f
		switch funct3 {
		case 0b000: // c.slli
			if half>>12&1 != 0 {
				return illegal
			}
			shamt := uint32(half>>2) & 0x1f
			return Op{Kind: Slli, Raw: h, Size: 2, Rd: rd, Rs1: rd, Shamt: shamt}
		case 0b010: // c.lwsp
			if rd == 0 {
				return illegal
			}
			imm := ((half >> 12 & 1) << 5) | ((half >> 4 & 0x7) << 2) | ((half >> 2 & 0x3) << 6)
			return Op{Kind: Lw, Raw: h, Size: 2, Rd: rd, Rs1: 2, Imm: int32(imm)}
		case 0b100:
			rs2 := uint32(half>>2) & 0x1f
			if half>>12&1 == 0 {
				if rs2 == 0 { // c.jr
					if rd == 0 {
						return illegal
					}
					return Op{Kind: Jalr, Raw: h, Size: 2, Rd: 0, Rs1: rd, Imm: 0}
				}
				// c.mv
				return Op{Kind: Add, Raw: h, Size: 2, Rd: rd, Rs1: 0, Rs2: rs2}
			}
			if rs2 == 0 {
				if rd == 0 { // c.ebreak
					return Op{Kind: Ebreak, Raw: h, Size: 2}
				}
				// c.jalr
				return Op{Kind: Jalr, Raw: h, Size: 2, Rd: 1, Rs1: rd, Imm: 0}
			}
			if rd == 0 {
				return illegal
			}
			// c.add
			return Op{Kind: Add, Raw: h, Size: 2, Rd: rd, Rs1: rd, Rs2: rs2}
		case 0b110: // c.swsp
			rs2 := uint32(half>>2) & 0x1f
			imm := ((half >> 9 & 0xf) << 2) | ((half >> 7 & 0x3) << 6)
			return Op{Kind: Sw, Raw: h, Size: 2, Rs1: 2, Rs2: rs2, Imm: int32(imm)}
		default:
			return illegal
		}
	}

	return illegal
}

// cjImm decodes the 11-bit jump offset shared by c.j and c.jal:
// imm[11|4|9:8|10|6|7|3:1|5] = inst[12|11|10:9|8|7|6|5:3|2].
func cjImm(half uint16) int32 {
	imm := uint32(half>>12&1) << 11
	imm |= uint32(half>>11&1) << 4
	imm |= uint32(half>>9&0x3) << 8
	imm |= uint32(half>>8&1) << 10
	imm |= uint32(half>>7&1) << 6
	imm |= uint32(half>>6&1) << 7
	imm |= uint32(half>>3&0x7) << 1
	imm |= uint32(half>>2&1) << 5
	return signExtend(imm, 12)
}

// cbImm decodes the 8-bit branch offset shared by c.beqz and c.bnez:
// imm[8|4:3|7:6|2:1|5] = inst[12|11:10|6:5|4:3|2].
func cbImm(half uint16) int32 {
	imm := uint32(half>>12&1) << 8
	imm |= uint32(half>>10&0x3) << 3
	imm |= uint32(half>>5&0x3) << 6
	imm |= uint32(half>>3&0x3) << 1
	imm |= uint32(half>>2&1) << 5
	return signExtend(imm, 9)
}
