package interp

import (
	"github.com/rv32sim/rvsim/cpu"
	"github.com/rv32sim/rvsim/decode"
)

// execBranch implements the six conditional branches (§4.D), reporting
// whether the branch is taken; dispatch computes and checks the target. Fence/fence.i/wfi
// have no observable effect in a single-hart interpreter with no instruction
// cache to invalidate, so dispatch treats them as plain fall-through.
func execBranch(s *cpu.State, op decode.Op) (taken bool) {
	a, b := s.ReadX(op.Rs1), s.ReadX(op.Rs2)
	switch op.Kind {
	case decode.Beq:
		return a == b
	case decode.Bne:
		return a != b
	case decode.Blt:
		return int32(a) < int32(b)
	case decode.Bge:
		return int32(a) >= int32(b)
	case decode.Bltu:
		return a < b
	case decode.Bgeu:
		return a >= b
	}
	return false
}
