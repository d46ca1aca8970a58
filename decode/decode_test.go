package decode

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecode32Addi(t *testing.T) {
	// addi x1, x0, 7 -- spec §8 scenario 1.
	op := Decode32(0x00700093)
	assert.Equal(t, Addi, op.Kind)
	assert.EqualValues(t, 1, op.Rd)
	assert.EqualValues(t, 0, op.Rs1)
	assert.EqualValues(t, 7, op.Imm)
	assert.EqualValues(t, 4, op.Size)
}

func TestDecode32WrongQuadrantIsIllegal(t *testing.T) {
	op := Decode32(0x00000001) // low two bits 01, not a valid 32-bit word
	assert.Equal(t, Illegal, op.Kind)
}

func TestDecode32Div(t *testing.T) {
	// div x3, x1, x2: funct7=0000001, rs2=2, rs1=1, funct3=100, rd=3, opcode=OP
	word := uint32(0x01)<<25 | uint32(2)<<20 | uint32(1)<<15 | uint32(0b100)<<12 | uint32(3)<<7 | 0x33
	op := Decode32(word)
	assert.Equal(t, Div, op.Kind)
	assert.EqualValues(t, 3, op.Rd)
	assert.EqualValues(t, 1, op.Rs1)
	assert.EqualValues(t, 2, op.Rs2)
}

func TestDecode32Lw(t *testing.T) {
	// lw x1, 0(x2)
	op := Decode32(0x00012083)
	assert.Equal(t, Lw, op.Kind)
	assert.EqualValues(t, 1, op.Rd)
	assert.EqualValues(t, 2, op.Rs1)
	assert.EqualValues(t, 0, op.Imm)
}

func TestDecode32Ecall(t *testing.T) {
	op := Decode32(0x00000073)
	assert.Equal(t, Ecall, op.Kind)
}

func TestDecode32Ebreak(t *testing.T) {
	op := Decode32(0x00100073)
	assert.Equal(t, Ebreak, op.Kind)
}

func TestDecode32SlliTrapsOnBadShamt(t *testing.T) {
	// slli with funct7 != 0 is reserved on RV32.
	word := uint32(0x40000013) | (1 << 12) // funct3=001 (slli), rd=x0, funct7 bit set
	op := Decode32(word)
	assert.Equal(t, Illegal, op.Kind)
}

func TestDecode32BranchEncodesSignedOffset(t *testing.T) {
	// beq x0, x0, -4  (bits: imm=-4 -> 0xffc, funct3=000, opcode=0x63)
	// imm[12|10:5]=1111111, imm[4:1]=1110, imm[11]=1
	word := uint32(0xfe000ee3)
	op := Decode32(word)
	assert.Equal(t, Beq, op.Kind)
	assert.EqualValues(t, -4, op.Imm)
}

func TestDecode32CsrrsAddrAndRegs(t *testing.T) {
	// csrrs x1, 0x003 (fcsr), x2
	word := uint32(0x003)<<20 | uint32(2)<<15 | uint32(0b010)<<12 | uint32(1)<<7 | 0x73
	op := Decode32(word)
	assert.Equal(t, Csrrs, op.Kind)
	assert.EqualValues(t, 1, op.Rd)
	assert.EqualValues(t, 2, op.Rs1)
	assert.EqualValues(t, 0x003, op.Csr)
}

func TestDecode32AmoLrScPreserveAqRl(t *testing.T) {
	// lr.w with aq=1, rl=0
	word := uint32(0b00010)<<27 | 1<<26 | 0<<25 | uint32(0)<<20 | uint32(2)<<15 | uint32(0b010)<<12 | uint32(1)<<7 | 0x2f
	op := Decode32(word)
	assert.Equal(t, LrW, op.Kind)
	assert.True(t, op.Aq)
	assert.False(t, op.Rl)
	assert.EqualValues(t, 1, op.Rd)
	assert.EqualValues(t, 2, op.Rs1)
}

func TestDisassembleDoesNotPanicOnEveryKind(t *testing.T) {
	for k := Illegal; k <= FclassD; k++ {
		op := Op{Kind: k, Raw: 0, Size: 4}
		assert.NotPanics(t, func() { Disassemble(0x1000, op) })
	}
}
