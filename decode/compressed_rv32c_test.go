//go:build rv32c

package decode

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecodeCompressedLegalEncodings(t *testing.T) {
	cases := []struct {
		name string
		half uint16
		want Op
	}{
		{"c.addi4spn x8, sp, 4", 0x0040, Op{Kind: Addi, Raw: 0x0040, Size: 2, Rd: 8, Rs1: 2, Imm: 4}},
		{"c.lw x8, 4(x8)", 0x4040, Op{Kind: Lw, Raw: 0x4040, Size: 2, Rd: 8, Rs1: 8, Imm: 4}},
		{"c.sw x9, 4(x8)", 0xc044, Op{Kind: Sw, Raw: 0xc044, Size: 2, Rs1: 8, Rs2: 9, Imm: 4}},
		{"c.ebreak", 0x9002, Op{Kind: Ebreak, Raw: 0x9002, Size: 2}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := DecodeCompressed(c.half)
			assert.Equal(t, c.want, got)
		})
	}
}

func TestDecodeCompressedReservedEncodingsAreIllegal(t *testing.T) {
	cases := []struct {
		name string
		half uint16
	}{
		{"c.addi4spn with zero immediate", 0x0000},
		{"c.lui with rd==0", 0x6001},
		{"c.lui with zero immediate", 0x6081},
		{"c.addi16sp with zero immediate", 0x6101},
		{"c.srli with reserved shamt[5] set", 0x9001},
		{"c.subw/c.addw family is RV64-only", 0x9c01},
		{"c.jr with rd==0", 0x8002},
		{"unassigned quadrant-0 funct3", 0x2000},
		{"quadrant 3 is not a compressed prefix", 0x0003},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := DecodeCompressed(c.half)
			assert.Equal(t, Illegal, got.Kind)
		})
	}
}

func TestIsCompressedDistinguishesQuadrants(t *testing.T) {
	assert.True(t, IsCompressed(0x0040))
	assert.True(t, IsCompressed(0x4040))
	assert.False(t, IsCompressed(0x0003))
	assert.False(t, IsCompressed(0x00700093&0xffff))
}
