// Package decode turns a 16- or 32-bit instruction word into an Op — a flat
// tagged variant carrying every field the interpreter needs, already
// extracted (component C). Decoding never fails in the Go-error sense: an
// encoding that is reserved, malformed, or belongs to a feature not built
// into this binary decodes to an Op of Kind Illegal carrying the raw word,
// and it is the interpreter's job to turn that into an IllegalInstruction
// trap.
package decode

// Kind identifies one of the RV32IMA(C)(FD) operations. The interpreter
// switches on Kind alone; it never re-parses Raw.
type Kind uint8

const (
	Illegal Kind = iota

	// RV32I
	Lui
	Auipc
	Jal
	Jalr
	Beq
	Bne
	Blt
	Bge
	Bltu
	Bgeu
	Lb
	Lh
	Lw
	Lbu
	Lhu
	Sb
	Sh
	Sw
	Addi
	Slti
	Sltiu
	Xori
	Ori
	Andi
	Slli
	Srli
	Srai
	Add
	Sub
	Sll
	Slt
	Sltu
	Xor
	Srl
	Sra
	Or
	And
	Fence
	FenceI
	Ecall
	Ebreak
	Wfi
	Csrrw
	Csrrs
	Csrrc
	Csrrwi
	Csrrsi
	Csrrci

	// M extension
	Mul
	Mulh
	Mulhsu
	Mulhu
	Div
	Divu
	Rem
	Remu

	// A extension
	LrW
	ScW
	AmoswapW
	AmoaddW
	AmoxorW
	AmoandW
	AmoorW
	AmominW
	AmomaxW
	AmominuW
	AmomaxuW

	// F extension (single precision)
	FlW
	FsW
	FmaddS
	FmsubS
	FnmsubS
	FnmaddS
	FaddS
	FsubS
	FmulS
	FdivS
	FsqrtS
	FsgnjS
	FsgnjnS
	FsgnjxS
	FminS
	FmaxS
	FcvtWS
	FcvtWuS
	FcvtSW
	FcvtSWu
	FmvXW
	FmvWX
	FeqS
	FltS
	FleS
	FclassS

	// D extension (double precision)
	FlD
	FsD
	FmaddD
	FmsubD
	FnmsubD
	FnmaddD
	FaddD
	FsubD
	FmulD
	FdivD
	FsqrtD
	FsgnjD
	FsgnjnD
	FsgnjxD
	FminD
	FmaxD
	FcvtWD
	FcvtWuD
	FcvtDW
	FcvtDWu
	FcvtSD
	FcvtDS
	FeqD
	FltD
	FleD
	FclassD
)

// Op is the operation descriptor the decoder produces and the interpreter
// consumes. It carries exactly the decoded fields the instruction needs;
// fields unused by a given Kind are left zero.
type Op struct {
	Kind Kind
	Raw  uint32 // the original instruction word, zero-extended if 16-bit
	Size uint8  // 2 for a compressed encoding, 4 otherwise

	Rd, Rs1, Rs2, Rs3 uint32
	Imm               int32
	Shamt             uint32
	Csr               uint32
	Rm                uint8 // static rounding mode, or 0b111 for dynamic (fcsr.frm)
	Aq, Rl            bool
}

// String names a Kind the way the RISC-V manual spells the mnemonic,
// lower-case with dots, for disassembly and trap diagnostics.
func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "illegal"
}

var kindNames = [...]string{
	Illegal:  "illegal",
	Lui:      "lui",
	Auipc:    "auipc",
	Jal:      "jal",
	Jalr:     "jalr",
	Beq:      "beq",
	Bne:      "bne",
	Blt:      "blt",
	Bge:      "bge",
	Bltu:     "bltu",
	Bgeu:     "bgeu",
	Lb:       "lb",
	Lh:       "lh",
	Lw:       "lw",
	Lbu:      "lbu",
	Lhu:      "lhu",
	Sb:       "sb",
	Sh:       "sh",
	Sw:       "sw",
	Addi:     "addi",
	Slti:     "slti",
	Sltiu:    "sltiu",
	Xori:     "xori",
	Ori:      "ori",
	Andi:     "andi",
	Slli:     "slli",
	Srli:     "srli",
	Srai:     "srai",
	Add:      "add",
	Sub:      "sub",
	Sll:      "sll",
	Slt:      "slt",
	Sltu:     "sltu",
	Xor:      "xor",
	Srl:      "srl",
	Sra:      "sra",
	Or:       "or",
	And:      "and",
	Fence:    "fence",
	FenceI:   "fence.i",
	Ecall:    "ecall",
	Ebreak:   "ebreak",
	Wfi:      "wfi",
	Csrrw:    "csrrw",
	Csrrs:    "csrrs",
	Csrrc:    "csrrc",
	Csrrwi:   "csrrwi",
	Csrrsi:   "csrrsi",
	Csrrci:   "csrrci",
	Mul:      "mul",
	Mulh:     "mulh",
	Mulhsu:   "mulhsu",
	Mulhu:    "mulhu",
	Div:      "div",
	Divu:     "divu",
	Rem:      "rem",
	Remu:     "remu",
	LrW:      "lr.w",
	ScW:      "sc.w",
	AmoswapW: "amoswap.w",
	AmoaddW:  "amoadd.w",
	AmoxorW:  "amoxor.w",
	AmoandW:  "amoand.w",
	AmoorW:   "amoor.w",
	AmominW:  "amomin.w",
	AmomaxW:  "amomax.w",
	AmominuW: "amominu.w",
	AmomaxuW: "amomaxu.w",
	FlW:      "flw",
	FsW:      "fsw",
	FmaddS:   "fmadd.s",
	FmsubS:   "fmsub.s",
	FnmsubS:  "fnmsub.s",
	FnmaddS:  "fnmadd.s",
	FaddS:    "fadd.s",
	FsubS:    "fsub.s",
	FmulS:    "fmul.s",
	FdivS:    "fdiv.s",
	FsqrtS:   "fsqrt.s",
	FsgnjS:   "fsgnj.s",
	FsgnjnS:  "fsgnjn.s",
	FsgnjxS:  "fsgnjx.s",
	FminS:    "fmin.s",
	FmaxS:    "fmax.s",
	FcvtWS:   "fcvt.w.s",
	FcvtWuS:  "fcvt.wu.s",
	FcvtSW:   "fcvt.s.w",
	FcvtSWu:  "fcvt.s.wu",
	FmvXW:    "fmv.x.w",
	FmvWX:    "fmv.w.x",
	FeqS:     "feq.s",
	FltS:     "flt.s",
	FleS:     "fle.s",
	FclassS:  "fclass.s",
	FlD:      "fld",
	FsD:      "fsd",
	FmaddD:   "fmadd.d",
	FmsubD:   "fmsub.d",
	FnmsubD:  "fnmsub.d",
	FnmaddD:  "fnmadd.d",
	FaddD:    "fadd.d",
	FsubD:    "fsub.d",
	FmulD:    "fmul.d",
	FdivD:    "fdiv.d",
	FsqrtD:   "fsqrt.d",
	FsgnjD:   "fsgnj.d",
	FsgnjnD:  "fsgnjn.d",
	FsgnjxD:  "fsgnjx.d",
	FminD:    "fmin.d",
	FmaxD:    "fmax.d",
	FcvtWD:   "fcvt.w.d",
	FcvtWuD:  "fcvt.wu.d",
	FcvtDW:   "fcvt.d.w",
	FcvtDWu:  "fcvt.d.wu",
	FcvtSD:   "fcvt.s.d",
	FcvtDS:   "fcvt.d.s",
	FeqD:     "feq.d",
	FltD:     "flt.d",
	FleD:     "fle.d",
	FclassD:  "fclass.d",
}
