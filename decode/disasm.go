package decode

import "fmt"

// xregNames are the RISC-V integer ABI register names, used by Disassemble
// in place of the raw x-N index, the way the teacher's debug_disasm_*.go
// family names registers for its own cores.
var xregNames = [32]string{
	"zero", "ra", "sp", "gp", "tp", "t0", "t1", "t2",
	"s0", "s1", "a0", "a1", "a2", "a3", "a4", "a5",
	"a6", "a7", "s2", "s3", "s4", "s5", "s6", "s7",
	"s8", "s9", "s10", "s11", "t3", "t4", "t5", "t6",
}

func xreg(i uint32) string {
	if i < 32 {
		return xregNames[i]
	}
	return fmt.Sprintf("x%d", i)
}

func freg(i uint32) string { return fmt.Sprintf("f%d", i&31) }

// Disassemble renders op as a single line of RISC-V assembly text: address,
// raw encoding in hex, and the mnemonic with operands.
func Disassemble(addr uint32, op Op) string {
	raw := op.Raw
	var hexBytes string
	if op.Size == 2 {
		hexBytes = fmt.Sprintf("%04x", uint16(raw))
	} else {
		hexBytes = fmt.Sprintf("%08x", raw)
	}
	return fmt.Sprintf("%08x: %-8s %s", addr, hexBytes, mnemonic(op))
}

func mnemonic(op Op) string {
	name := op.Kind.String()
	switch op.Kind {
	case Illegal:
		return fmt.Sprintf("illegal $%08x", op.Raw)

	case Lui, Auipc:
		return fmt.Sprintf("%s %s, 0x%x", name, xreg(op.Rd), uint32(op.Imm)>>12)
	case Jal:
		return fmt.Sprintf("%s %s, %d", name, xreg(op.Rd), op.Imm)
	case Jalr:
		return fmt.Sprintf("%s %s, %d(%s)", name, xreg(op.Rd), op.Imm, xreg(op.Rs1))

	case Beq, Bne, Blt, Bge, Bltu, Bgeu:
		return fmt.Sprintf("%s %s, %s, %d", name, xreg(op.Rs1), xreg(op.Rs2), op.Imm)

	case Lb, Lh, Lw, Lbu, Lhu:
		return fmt.Sprintf("%s %s, %d(%s)", name, xreg(op.Rd), op.Imm, xreg(op.Rs1))
	case Sb, Sh, Sw:
		return fmt.Sprintf("%s %s, %d(%s)", name, xreg(op.Rs2), op.Imm, xreg(op.Rs1))

	case Addi, Slti, Sltiu, Xori, Ori, Andi:
		return fmt.Sprintf("%s %s, %s, %d", name, xreg(op.Rd), xreg(op.Rs1), op.Imm)
	case Slli, Srli, Srai:
		return fmt.Sprintf("%s %s, %s, %d", name, xreg(op.Rd), xreg(op.Rs1), op.Shamt)

	case Add, Sub, Sll, Slt, Sltu, Xor, Srl, Sra, Or, And,
		Mul, Mulh, Mulhsu, Mulhu, Div, Divu, Rem, Remu:
		return fmt.Sprintf("%s %s, %s, %s", name, xreg(op.Rd), xreg(op.Rs1), xreg(op.Rs2))

	case Fence, FenceI, Ecall, Ebreak, Wfi:
		return name

	case Csrrw, Csrrs, Csrrc:
		return fmt.Sprintf("%s %s, 0x%x, %s", name, xreg(op.Rd), op.Csr, xreg(op.Rs1))
	case Csrrwi, Csrrsi, Csrrci:
		return fmt.Sprintf("%s %s, 0x%x, %d", name, xreg(op.Rd), op.Csr, op.Rs1)

	case LrW:
		return fmt.Sprintf("%s %s, (%s)", name, xreg(op.Rd), xreg(op.Rs1))
	case ScW, AmoswapW, AmoaddW, AmoxorW, AmoandW, AmoorW, AmominW, AmomaxW, AmominuW, AmomaxuW:
		return fmt.Sprintf("%s %s, %s, (%s)", name, xreg(op.Rd), xreg(op.Rs2), xreg(op.Rs1))

	case FlW, FlD:
		return fmt.Sprintf("%s %s, %d(%s)", name, freg(op.Rd), op.Imm, xreg(op.Rs1))
	case FsW, FsD:
		return fmt.Sprintf("%s %s, %d(%s)", name, freg(op.Rs2), op.Imm, xreg(op.Rs1))

	case FmaddS, FmsubS, FnmsubS, FnmaddS, FmaddD, FmsubD, FnmsubD, FnmaddD:
		return fmt.Sprintf("%s %s, %s, %s, %s", name, freg(op.Rd), freg(op.Rs1), freg(op.Rs2), freg(op.Rs3))

	case FaddS, FsubS, FmulS, FdivS, FsgnjS, FsgnjnS, FsgnjxS, FminS, FmaxS,
		FaddD, FsubD, FmulD, FdivD, FsgnjD, FsgnjnD, FsgnjxD, FminD, FmaxD:
		return fmt.Sprintf("%s %s, %s, %s", name, freg(op.Rd), freg(op.Rs1), freg(op.Rs2))

	case FsqrtS, FsqrtD, FcvtSD, FcvtDS:
		return fmt.Sprintf("%s %s, %s", name, freg(op.Rd), freg(op.Rs1))

	case FcvtWS, FcvtWuS, FcvtWD, FcvtWuD:
		return fmt.Sprintf("%s %s, %s", name, xreg(op.Rd), freg(op.Rs1))
	case FcvtSW, FcvtSWu, FcvtDW, FcvtDWu:
		return fmt.Sprintf("%s %s, %s", name, freg(op.Rd), xreg(op.Rs1))
	case FmvXW, FclassS, FclassD:
		return fmt.Sprintf("%s %s, %s", name, xreg(op.Rd), freg(op.Rs1))
	case FmvWX:
		return fmt.Sprintf("%s %s, %s", name, freg(op.Rd), xreg(op.Rs1))
	case FeqS, FltS, FleS, FeqD, FltD, FleD:
		return fmt.Sprintf("%s %s, %s, %s", name, xreg(op.Rd), freg(op.Rs1), freg(op.Rs2))

	default:
		return name
	}
}
