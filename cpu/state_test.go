package cpu

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestX0HardwiredZero(t *testing.T) {
	var s State
	s.WriteX(0, 0xdeadbeef)
	assert.Equal(t, uint32(0), s.ReadX(0))

	s.WriteX(5, 42)
	s.WriteX(0, 7)
	assert.Equal(t, uint32(0), s.ReadX(0), "x0 must read back zero after every step")
	assert.Equal(t, uint32(42), s.ReadX(5))
}

func TestNaNBoxRoundTrip(t *testing.T) {
	var s State
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 256; i++ {
		bits := rng.Uint32()
		reg := uint32(i % 32)
		s.WriteSingle(reg, bits)
		require.Equal(t, bits, s.ReadSingle(reg), "NaN-box law: read_single(write_single(i, b)) == b")
	}
}

func TestNaNBoxInvalidUpperBitsYieldCanonicalQNaN(t *testing.T) {
	var s State
	cases := []uint64{
		0x0000000012345678,
		0x00000000ffffffff,
		0xfffffffe3f800000,
		0x1234567812345678,
	}
	for _, w := range cases {
		s.WriteFRaw(1, w)
		assert.Equal(t, CanonicalQNaN32, s.ReadSingle(1), "upper bits %#x are not all-ones", w>>32)
	}
}

func TestFcsrSplitFields(t *testing.T) {
	var s State
	s.SetFrm(RoundTowardZero)
	s.RaiseFflags(FlagNX | FlagOF)
	assert.Equal(t, RoundTowardZero, s.Frm())
	assert.Equal(t, FlagNX|FlagOF, s.Fflags())

	s.RaiseFflags(FlagDZ)
	assert.Equal(t, FlagNX|FlagOF|FlagDZ, s.Fflags(), "fflags are monotonic under RaiseFflags")

	s.SetFflags(0)
	assert.Equal(t, uint8(0), s.Fflags())
	assert.Equal(t, RoundTowardZero, s.Frm(), "clearing fflags must not disturb frm")
}

func TestSnapshotRestorePreservesOnlyTrapCSRs(t *testing.T) {
	var s State
	s.WriteX(3, 100)
	s.WriteSingle(2, 0x40000000)
	s.PC = 0x1000
	snap := s.Snapshot()

	s.WriteX(3, 999) // simulate partial execution before the trap is discovered
	s.Restore(snap, 2, 0x1000, 0xbad)

	assert.Equal(t, uint32(100), s.ReadX(3), "restore must undo the partial register write")
	assert.Equal(t, uint32(0x1000), s.PC)
	assert.Equal(t, uint32(2), s.Mcause)
	assert.Equal(t, uint32(0x1000), s.Mepc)
	assert.Equal(t, uint32(0xbad), s.Mtval)
}
