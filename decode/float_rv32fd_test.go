//go:build rv32fd

package decode

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// rtypeWord assembles a 32-bit instruction word from its opcode-table fields the
// same way decode_test.go's non-FP cases do.
func rtypeWord(opcode, rd, funct3, rs1, rs2, funct7 uint32) uint32 {
	return funct7<<25 | rs2<<20 | rs1<<15 | funct3<<12 | rd<<7 | opcode
}

func TestDecodeLoadStoreFP(t *testing.T) {
	// flw f1, 4(x2)
	flw := Decode32(uint32(4)<<20 | uint32(2)<<15 | uint32(0b010)<<12 | uint32(1)<<7 | opLoadFP)
	assert.Equal(t, FlW, flw.Kind)
	assert.EqualValues(t, 1, flw.Rd)
	assert.EqualValues(t, 2, flw.Rs1)
	assert.EqualValues(t, 4, flw.Imm)

	// fld f1, 4(x2)
	fld := Decode32(uint32(4)<<20 | uint32(2)<<15 | uint32(0b011)<<12 | uint32(1)<<7 | opLoadFP)
	assert.Equal(t, FlD, fld.Kind)

	// an undefined LOAD-FP funct3 is reserved
	badLoad := Decode32(uint32(0b001)<<12 | opLoadFP)
	assert.Equal(t, Illegal, badLoad.Kind)

	// fsw f2, 4(x1)
	fsw := Decode32(uint32(4>>5)<<25 | uint32(2)<<20 | uint32(1)<<15 | uint32(0b010)<<12 | uint32(4&0x1f)<<7 | opStoreFP)
	assert.Equal(t, FsW, fsw.Kind)
	assert.EqualValues(t, 1, fsw.Rs1)
	assert.EqualValues(t, 2, fsw.Rs2)
	assert.EqualValues(t, 4, fsw.Imm)

	// an undefined STORE-FP funct3 is reserved
	badStore := Decode32(uint32(0b001)<<12 | opStoreFP)
	assert.Equal(t, Illegal, badStore.Kind)
}

func TestDecodeFMAFamily(t *testing.T) {
	// fmadd.s f1, f2, f3, f4, rm=0
	w := uint32(4)<<27 | uint32(0)<<25 | uint32(3)<<20 | uint32(2)<<15 | uint32(0)<<12 | uint32(1)<<7 | opMadd
	op := Decode32(w)
	assert.Equal(t, FmaddS, op.Kind)
	assert.EqualValues(t, 1, op.Rd)
	assert.EqualValues(t, 2, op.Rs1)
	assert.EqualValues(t, 3, op.Rs2)
	assert.EqualValues(t, 4, op.Rs3)

	// fmadd.d uses fmt==1
	wd := uint32(4)<<27 | uint32(1)<<25 | uint32(3)<<20 | uint32(2)<<15 | uint32(0)<<12 | uint32(1)<<7 | opMadd
	opd := Decode32(wd)
	assert.Equal(t, FmaddD, opd.Kind)

	// fmt > 1 is reserved regardless of which of the four FMA opcodes
	reserved := uint32(0)<<27 | uint32(0x3)<<25 | opNmadd
	assert.Equal(t, Illegal, Decode32(reserved).Kind)
}

func TestDecodeOpFPArithmetic(t *testing.T) {
	// fadd.s f1, f2, f3, rm=0 (funct5=0x00, fmt=0)
	fadd := Decode32(rtypeWord(opOpFP, 1, 0, 2, 3, 0x00<<2|0))
	assert.Equal(t, FaddS, fadd.Kind)

	// fadd.d: same funct5, fmt=1
	faddd := Decode32(rtypeWord(opOpFP, 1, 0, 2, 3, 0x00<<2|1))
	assert.Equal(t, FaddD, faddd.Kind)

	// fmt==2 is reserved for ordinary arithmetic funct5 groups
	reservedFmt := Decode32(rtypeWord(opOpFP, 1, 0, 2, 3, 0x00<<2|2))
	assert.Equal(t, Illegal, reservedFmt.Kind)
}

func TestDecodeFsqrtRequiresZeroRs2(t *testing.T) {
	// fsqrt.s f1, f2: funct5=0x0b, rs2 must be 0
	ok := Decode32(rtypeWord(opOpFP, 1, 0, 2, 0, 0x0b<<2|0))
	assert.Equal(t, FsqrtS, ok.Kind)

	// fsqrt.s with rs2 != 0 is reserved (mirrors fsqrt.s with rs2!=0 in §8)
	bad := Decode32(rtypeWord(opOpFP, 1, 0, 2, 1, 0x0b<<2|0))
	assert.Equal(t, Illegal, bad.Kind)
}

func TestDecodeFmvXWRequiresZeroRs2(t *testing.T) {
	// fmv.x.w x1, f2: funct5=0x1c, fmt=0, funct3=0, rs2 must be 0
	ok := Decode32(rtypeWord(opOpFP, 1, 0, 2, 0, 0x1c<<2|0))
	assert.Equal(t, FmvXW, ok.Kind)

	// fmv.x.w with rs2 != 0 is reserved
	bad := Decode32(rtypeWord(opOpFP, 1, 0, 2, 1, 0x1c<<2|0))
	assert.Equal(t, Illegal, bad.Kind)

	// fclass.s shares the same funct5/fmt with funct3==1
	fclass := Decode32(rtypeWord(opOpFP, 1, 1, 2, 0, 0x1c<<2|0))
	assert.Equal(t, FclassS, fclass.Kind)
}

func TestDecodeFcvtSDAndDS(t *testing.T) {
	// fcvt.s.d f1, f2: funct5=0x08, single result, rs2==1 selects the D source
	sd := Decode32(rtypeWord(opOpFP, 1, 0, 2, 1, 0x08<<2|0))
	assert.Equal(t, FcvtSD, sd.Kind)

	// fcvt.d.s f1, f2: funct5=0x08, double result, rs2==0 selects the S source
	ds := Decode32(rtypeWord(opOpFP, 1, 0, 2, 0, 0x08<<2|1))
	assert.Equal(t, FcvtDS, ds.Kind)

	// funct5=0x08 with any other (fmt, rs2) pairing is reserved
	bad := Decode32(rtypeWord(opOpFP, 1, 0, 2, 1, 0x08<<2|1))
	assert.Equal(t, Illegal, bad.Kind)
}

func TestDecodeOpFPUnknownFunct5IsIllegal(t *testing.T) {
	op := Decode32(rtypeWord(opOpFP, 1, 0, 2, 3, 0x1f<<2|0))
	assert.Equal(t, Illegal, op.Kind)
}
