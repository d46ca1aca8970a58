package decode

// Major opcodes (RISC-V manual ch. 24), bits [6:0] of a 32-bit word. The low
// two bits are always 0b11 here; bits [6:2] pick the group.
const (
	opLoad    = 0x03
	opLoadFP  = 0x07
	opMiscMem = 0x0f
	opOpImm   = 0x13
	opAuipc   = 0x17
	opStore   = 0x23
	opStoreFP = 0x27
	opAmo     = 0x2f
	opOp      = 0x33
	opLui     = 0x37
	opMadd    = 0x43
	opMsub    = 0x47
	opNmsub   = 0x4b
	opNmadd   = 0x4f
	opOpFP    = 0x53
	opBranch  = 0x63
	opJalr    = 0x67
	opJal     = 0x6f
	opSystem  = 0x73
)

// Decode32 decodes a full 32-bit instruction word (quadrant 0b11). Any other
// quadrant, or any reserved/malformed encoding within quadrant 3, decodes to
// Illegal.
func Decode32(w uint32) Op {
	if w&0x3 != 0x3 {
		return Op{Kind: Illegal, Raw: w, Size: 4}
	}

	opcode := w & 0x7f
	rd := (w >> 7) & 0x1f
	funct3 := (w >> 12) & 0x7
	rs1 := (w >> 15) & 0x1f
	rs2 := (w >> 20) & 0x1f
	funct7 := (w >> 25) & 0x7f

	illegal := Op{Kind: Illegal, Raw: w, Size: 4}

	switch opcode {
	case opLui:
		return Op{Kind: Lui, Raw: w, Size: 4, Rd: rd, Imm: immU(w)}
	case opAuipc:
		return Op{Kind: Auipc, Raw: w, Size: 4, Rd: rd, Imm: immU(w)}
	case opJal:
		return Op{Kind: Jal, Raw: w, Size: 4, Rd: rd, Imm: immJ(w)}
	case opJalr:
		if funct3 != 0 {
			return illegal
		}
		return Op{Kind: Jalr, Raw: w, Size: 4, Rd: rd, Rs1: rs1, Imm: immI(w)}

	case opBranch:
		var k Kind
		switch funct3 {
		case 0b000:
			k = Beq
		case 0b001:
			k = Bne
		case 0b100:
			k = Blt
		case 0b101:
			k = Bge
		case 0b110:
			k = Bltu
		case 0b111:
			k = Bgeu
		default:
			return illegal
		}
		return Op{Kind: k, Raw: w, Size: 4, Rs1: rs1, Rs2: rs2, Imm: immB(w)}

	case opLoad:
		var k Kind
		switch funct3 {
		case 0b000:
			k = Lb
		case 0b001:
			k = Lh
		case 0b010:
			k = Lw
		case 0b100:
			k = Lbu
		case 0b101:
			k = Lhu
		default:
			return illegal
		}
		return Op{Kind: k, Raw: w, Size: 4, Rd: rd, Rs1: rs1, Imm: immI(w)}

	case opStore:
		var k Kind
		switch funct3 {
		case 0b000:
			k = Sb
		case 0b001:
			k = Sh
		case 0b010:
			k = Sw
		default:
			return illegal
		}
		return Op{Kind: k, Raw: w, Size: 4, Rs1: rs1, Rs2: rs2, Imm: immS(w)}

	case opOpImm:
		switch funct3 {
		case 0b000:
			return Op{Kind: Addi, Raw: w, Size: 4, Rd: rd, Rs1: rs1, Imm: immI(w)}
		case 0b010:
			return Op{Kind: Slti, Raw: w, Size: 4, Rd: rd, Rs1: rs1, Imm: immI(w)}
		case 0b011:
			return Op{Kind: Sltiu, Raw: w, Size: 4, Rd: rd, Rs1: rs1, Imm: immI(w)}
		case 0b100:
			return Op{Kind: Xori, Raw: w, Size: 4, Rd: rd, Rs1: rs1, Imm: immI(w)}
		case 0b110:
			return Op{Kind: Ori, Raw: w, Size: 4, Rd: rd, Rs1: rs1, Imm: immI(w)}
		case 0b111:
			return Op{Kind: Andi, Raw: w, Size: 4, Rd: rd, Rs1: rs1, Imm: immI(w)}
		case 0b001:
			if funct7 != 0x00 {
				return illegal
			}
			return Op{Kind: Slli, Raw: w, Size: 4, Rd: rd, Rs1: rs1, Shamt: rs2}
		case 0b101:
			switch funct7 {
			case 0x00:
				return Op{Kind: Srli, Raw: w, Size: 4, Rd: rd, Rs1: rs1, Shamt: rs2}
			case 0x20:
				return Op{Kind: Srai, Raw: w, Size: 4, Rd: rd, Rs1: rs1, Shamt: rs2}
			default:
				return illegal
			}
		}
		return illegal

	case opOp:
		if funct7 == 0x01 {
			var k Kind
			switch funct3 {
			case 0b000:
				k = Mul
			case 0b001:
				k = Mulh
			case 0b010:
				k = Mulhsu
			case 0b011:
				k = Mulhu
			case 0b100:
				k = Div
			case 0b101:
				k = Divu
			case 0b110:
				k = Rem
			case 0b111:
				k = Remu
			}
			return Op{Kind: k, Raw: w, Size: 4, Rd: rd, Rs1: rs1, Rs2: rs2}
		}
		if funct7 != 0x00 && funct7 != 0x20 {
			return illegal
		}
		var k Kind
		switch funct3 {
		case 0b000:
			if funct7 == 0x20 {
				k = Sub
			} else {
				k = Add
			}
		case 0b001:
			if funct7 != 0 {
				return illegal
			}
			k = Sll
		case 0b010:
			if funct7 != 0 {
				return illegal
			}
			k = Slt
		case 0b011:
			if funct7 != 0 {
				return illegal
			}
			k = Sltu
		case 0b100:
			if funct7 != 0 {
				return illegal
			}
			k = Xor
		case 0b101:
			if funct7 == 0x20 {
				k = Sra
			} else {
				k = Srl
			}
		case 0b110:
			if funct7 != 0 {
				return illegal
			}
			k = Or
		case 0b111:
			if funct7 != 0 {
				return illegal
			}
			k = And
		}
		return Op{Kind: k, Raw: w, Size: 4, Rd: rd, Rs1: rs1, Rs2: rs2}

	case opMiscMem:
		switch funct3 {
		case 0b000:
			return Op{Kind: Fence, Raw: w, Size: 4}
		case 0b001:
			return Op{Kind: FenceI, Raw: w, Size: 4}
		default:
			return illegal
		}

	case opSystem:
		imm12 := w >> 20
		switch funct3 {
		case 0b000:
			if rd != 0 || rs1 != 0 {
				return illegal
			}
			switch imm12 {
			case 0x000:
				return Op{Kind: Ecall, Raw: w, Size: 4}
			case 0x001:
				return Op{Kind: Ebreak, Raw: w, Size: 4}
			case 0x105:
				return Op{Kind: Wfi, Raw: w, Size: 4}
			default:
				return illegal
			}
		case 0b001:
			return Op{Kind: Csrrw, Raw: w, Size: 4, Rd: rd, Rs1: rs1, Csr: imm12}
		case 0b010:
			return Op{Kind: Csrrs, Raw: w, Size: 4, Rd: rd, Rs1: rs1, Csr: imm12}
		case 0b011:
			return Op{Kind: Csrrc, Raw: w, Size: 4, Rd: rd, Rs1: rs1, Csr: imm12}
		case 0b101:
			return Op{Kind: Csrrwi, Raw: w, Size: 4, Rd: rd, Rs1: rs1, Csr: imm12}
		case 0b110:
			return Op{Kind: Csrrsi, Raw: w, Size: 4, Rd: rd, Rs1: rs1, Csr: imm12}
		case 0b111:
			return Op{Kind: Csrrci, Raw: w, Size: 4, Rd: rd, Rs1: rs1, Csr: imm12}
		default:
			return illegal
		}

	case opAmo:
		if funct3 != 0b010 {
			return illegal
		}
		funct5 := (w >> 27) & 0x1f
		aq := (w>>26)&1 != 0
		rl := (w>>25)&1 != 0
		var k Kind
		switch funct5 {
		case 0b00010:
			if rs2 != 0 {
				return illegal
			}
			k = LrW
		case 0b00011:
			k = ScW
		case 0b00001:
			k = AmoswapW
		case 0b00000:
			k = AmoaddW
		case 0b00100:
			k = AmoxorW
		case 0b01100:
			k = AmoandW
		case 0b01000:
			k = AmoorW
		case 0b10000:
			k = AmominW
		case 0b10100:
			k = AmomaxW
		case 0b11000:
			k = AmominuW
		case 0b11100:
			k = AmomaxuW
		default:
			return illegal
		}
		return Op{Kind: k, Raw: w, Size: 4, Rd: rd, Rs1: rs1, Rs2: rs2, Aq: aq, Rl: rl}

	case opLoadFP:
		return decodeLoadFP(w)
	case opStoreFP:
		return decodeStoreFP(w)
	case opMadd, opMsub, opNmsub, opNmadd:
		return decodeFMA(opcode, w)
	case opOpFP:
		return decodeOpFP(w)
	}

	return illegal
}
