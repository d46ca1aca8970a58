package interp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rv32sim/rvsim/cpu"
	"github.com/rv32sim/rvsim/decode"
)

// flatMemory is a minimal byte-addressable Memory for interpreter tests: a
// fixed-size little-endian array with no protection, faulting only outside
// its bounds.
type flatMemory struct {
	bytes []byte
}

func newFlatMemory(size int) *flatMemory { return &flatMemory{bytes: make([]byte, size)} }

func (m *flatMemory) Fetch(addr uint32) (uint16, bool) {
	v, ok := m.Load(addr, 2)
	return uint16(v), ok
}

func (m *flatMemory) Load(addr uint32, width uint8) (uint32, bool) {
	if int(addr)+int(width) > len(m.bytes) {
		return 0, false
	}
	var v uint32
	for i := uint8(0); i < width; i++ {
		v |= uint32(m.bytes[int(addr)+int(i)]) << (8 * i)
	}
	return v, true
}

func (m *flatMemory) Store(addr uint32, width uint8, value uint32) bool {
	if int(addr)+int(width) > len(m.bytes) {
		return false
	}
	for i := uint8(0); i < width; i++ {
		m.bytes[int(addr)+int(i)] = byte(value >> (8 * i))
	}
	return true
}

type recordingSyscalls struct {
	sawA7 uint32
	halt  bool
}

func (r *recordingSyscalls) ECall(s *cpu.State) bool {
	r.sawA7 = s.ReadX(17)
	return r.halt
}

func freshState() *cpu.State {
	return &cpu.State{PC: 0x1000}
}

// Scenario 1 (§8): addi x1, x0, 7 at 0x1000.
func TestScenarioAddi(t *testing.T) {
	s := freshState()
	op := decode.Decode32(0x00700093)
	mem := newFlatMemory(0x10)
	trap := Execute(s, op, mem, &recordingSyscalls{})
	require.Nil(t, trap)
	assert.EqualValues(t, 7, s.ReadX(1))
	assert.EqualValues(t, 0x1004, s.PC)
}

// Scenario 2 (§8): div x3, x1, x2 with x1=MinInt32, x2=-1 overflows to x1.
func TestScenarioDivOverflowReturnsDividend(t *testing.T) {
	s := freshState()
	s.WriteX(1, 0x80000000)
	s.WriteX(2, 0xffffffff)
	op := decode.Op{Kind: decode.Div, Rd: 3, Rs1: 1, Rs2: 2, Size: 4}
	mem := newFlatMemory(0x10)
	trap := Execute(s, op, mem, &recordingSyscalls{})
	require.Nil(t, trap)
	assert.EqualValues(t, 0x80000000, s.ReadX(3))
}

// Scenario 3 (§8): lw x1, 0(x2) with x2 misaligned traps and leaves x1/pc alone.
func TestScenarioMisalignedLoadTraps(t *testing.T) {
	s := freshState()
	s.WriteX(2, 0x2001)
	s.WriteX(1, 0xdeadbeef)
	op := decode.Op{Kind: decode.Lw, Rd: 1, Rs1: 2, Imm: 0, Size: 4}
	mem := newFlatMemory(0x3000)
	trap := Execute(s, op, mem, &recordingSyscalls{})
	require.NotNil(t, trap)
	assert.Equal(t, LoadAddressMisaligned, trap.Cause)
	assert.EqualValues(t, 0x2001, trap.Tval)
	assert.EqualValues(t, 0xdeadbeef, s.ReadX(1))
	assert.EqualValues(t, 0x1000, s.PC)
}

// Scenario 4 (§8): ecall with a7=93 traps EnvironmentCall and the hook sees a7.
func TestScenarioEcallReachesHook(t *testing.T) {
	s := freshState()
	s.WriteX(17, 93)
	op := decode.Op{Kind: decode.Ecall, Size: 4}
	mem := newFlatMemory(0x10)
	sys := &recordingSyscalls{halt: true}
	trap := Execute(s, op, mem, sys)
	require.NotNil(t, trap)
	assert.Equal(t, EnvironmentCall, trap.Cause)
	assert.True(t, trap.Halt)
	assert.EqualValues(t, 93, sys.sawA7)
	assert.EqualValues(t, 0x1000, s.PC)
}

func TestXZeroPinnedAfterWrite(t *testing.T) {
	s := freshState()
	op := decode.Op{Kind: decode.Addi, Rd: 0, Rs1: 0, Imm: 7, Size: 4}
	mem := newFlatMemory(0x10)
	trap := Execute(s, op, mem, &recordingSyscalls{})
	require.Nil(t, trap)
	assert.EqualValues(t, 0, s.ReadX(0))
}

func TestIllegalInstructionDoesNotAdvancePC(t *testing.T) {
	s := freshState()
	op := decode.Op{Kind: decode.Illegal, Raw: 0xffffffff, Size: 4}
	mem := newFlatMemory(0x10)
	trap := Execute(s, op, mem, &recordingSyscalls{})
	require.NotNil(t, trap)
	assert.Equal(t, IllegalInstruction, trap.Cause)
	assert.EqualValues(t, 0x1000, s.PC)
	assert.EqualValues(t, 0xffffffff, s.Mtval)
	assert.EqualValues(t, 2, s.Mcause)
}

func TestBranchTakenRedirectsPC(t *testing.T) {
	s := freshState()
	op := decode.Op{Kind: decode.Beq, Rs1: 0, Rs2: 0, Imm: -4, Size: 4}
	mem := newFlatMemory(0x10)
	trap := Execute(s, op, mem, &recordingSyscalls{})
	require.Nil(t, trap)
	assert.EqualValues(t, 0x0ffc, s.PC)
}

func TestBranchNotTakenFallsThrough(t *testing.T) {
	s := freshState()
	s.WriteX(1, 1)
	op := decode.Op{Kind: decode.Beq, Rs1: 0, Rs2: 1, Imm: -4, Size: 4}
	mem := newFlatMemory(0x10)
	trap := Execute(s, op, mem, &recordingSyscalls{})
	require.Nil(t, trap)
	assert.EqualValues(t, 0x1004, s.PC)
}

func TestJalMisalignedTargetTraps(t *testing.T) {
	s := &cpu.State{PC: 0x1000}
	op := decode.Op{Kind: decode.Jal, Rd: 1, Imm: decode.InstructionAlignment / 2, Size: 4}
	mem := newFlatMemory(0x10)
	trap := Execute(s, op, mem, &recordingSyscalls{})
	require.NotNil(t, trap)
	assert.Equal(t, InstructionAddressMisaligned, trap.Cause)
	assert.EqualValues(t, 0, s.ReadX(1))
}

func TestLrScRoundTrip(t *testing.T) {
	s := freshState()
	s.WriteX(1, 0x2000)
	s.WriteX(2, 0x42)
	mem := newFlatMemory(0x3000)
	require.True(t, mem.Store(0x2000, 4, 0x11111111))

	lr := decode.Op{Kind: decode.LrW, Rd: 3, Rs1: 1, Size: 4}
	trap := Execute(s, lr, mem, &recordingSyscalls{})
	require.Nil(t, trap)
	assert.EqualValues(t, 0x11111111, s.ReadX(3))
	assert.True(t, s.ReservationValid)

	sc := decode.Op{Kind: decode.ScW, Rd: 4, Rs1: 1, Rs2: 2, Size: 4}
	trap = Execute(s, sc, mem, &recordingSyscalls{})
	require.Nil(t, trap)
	assert.EqualValues(t, 0, s.ReadX(4))
	v, ok := mem.Load(0x2000, 4)
	require.True(t, ok)
	assert.EqualValues(t, 0x42, v)
	assert.False(t, s.ReservationValid)
}

func TestScFailsWithoutReservation(t *testing.T) {
	s := freshState()
	s.WriteX(1, 0x2000)
	mem := newFlatMemory(0x3000)
	sc := decode.Op{Kind: decode.ScW, Rd: 4, Rs1: 1, Rs2: 2, Size: 4}
	trap := Execute(s, sc, mem, &recordingSyscalls{})
	require.Nil(t, trap)
	assert.EqualValues(t, 1, s.ReadX(4))
}

func TestAmoaddAccumulates(t *testing.T) {
	s := freshState()
	s.WriteX(1, 0x2000)
	s.WriteX(2, 5)
	mem := newFlatMemory(0x3000)
	require.True(t, mem.Store(0x2000, 4, 10))
	op := decode.Op{Kind: decode.AmoaddW, Rd: 3, Rs1: 1, Rs2: 2, Size: 4}
	trap := Execute(s, op, mem, &recordingSyscalls{})
	require.Nil(t, trap)
	assert.EqualValues(t, 10, s.ReadX(3))
	v, _ := mem.Load(0x2000, 4)
	assert.EqualValues(t, 15, v)
}

func TestCsrrwRoundTrip(t *testing.T) {
	s := freshState()
	s.SetFcsr(0x1f)
	op := decode.Op{Kind: decode.Csrrw, Rd: 1, Rs1: 2, Csr: csrFcsr, Size: 4}
	s.WriteX(2, 0xa5)
	mem := newFlatMemory(0x10)
	trap := Execute(s, op, mem, &recordingSyscalls{})
	require.Nil(t, trap)
	assert.EqualValues(t, 0x1f, s.ReadX(1))
	assert.EqualValues(t, 0xa5, s.Fcsr())
}

func TestCsrrsZeroMaskPerformsNoWrite(t *testing.T) {
	s := freshState()
	s.SetFcsr(0x09)
	op := decode.Op{Kind: decode.Csrrs, Rd: 1, Rs1: 0, Csr: csrFcsr, Size: 4}
	mem := newFlatMemory(0x10)
	trap := Execute(s, op, mem, &recordingSyscalls{})
	require.Nil(t, trap)
	assert.EqualValues(t, 0x09, s.ReadX(1))
	assert.EqualValues(t, 0x09, s.Fcsr())
}

func TestCsrWriteToMepcTrapsIllegal(t *testing.T) {
	s := freshState()
	op := decode.Op{Kind: decode.Csrrw, Rd: 0, Rs1: 1, Csr: csrMepc, Size: 4}
	mem := newFlatMemory(0x10)
	trap := Execute(s, op, mem, &recordingSyscalls{})
	require.NotNil(t, trap)
	assert.Equal(t, IllegalInstruction, trap.Cause)
}

func TestMulDivByZero(t *testing.T) {
	s := freshState()
	s.WriteX(1, 10)
	s.WriteX(2, 0)
	divu := decode.Op{Kind: decode.Divu, Rd: 3, Rs1: 1, Rs2: 2, Size: 4}
	mem := newFlatMemory(0x10)
	trap := Execute(s, divu, mem, &recordingSyscalls{})
	require.Nil(t, trap)
	assert.EqualValues(t, 0xffffffff, s.ReadX(3))

	rem := decode.Op{Kind: decode.Rem, Rd: 4, Rs1: 1, Rs2: 2, Size: 4}
	trap = Execute(s, rem, mem, &recordingSyscalls{})
	require.Nil(t, trap)
	assert.EqualValues(t, 10, s.ReadX(4))
}
