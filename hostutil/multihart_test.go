package hostutil

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rv32sim/rvsim/cpu"
	"github.com/rv32sim/rvsim/sim"
)

type haltingSyscalls struct{}

func (haltingSyscalls) ECall(s *cpu.State) bool { return true }

func newAddiHart(t *testing.T) *sim.Simulator {
	t.Helper()
	mem := NewFlatMemory(0x100)
	mem.LoadImage(0, []byte{0x93, 0x00, 0x70, 0x00}) // addi x1, x0, 7
	state := &cpu.State{PC: 0}
	return sim.NewSimulator(state, mem, haltingSyscalls{})
}

func TestMultiHartRunsIndependently(t *testing.T) {
	a, b := newAddiHart(t), newAddiHart(t)
	h := NewMultiHart(a, b)
	traps := h.RunAll(context.Background(), 4)
	require.Len(t, traps, 2)
	assert.EqualValues(t, 7, a.State.ReadX(1))
	assert.EqualValues(t, 7, b.State.ReadX(1))
}
