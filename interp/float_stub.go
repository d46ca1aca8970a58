//go:build !rv32fd

package interp

import (
	"github.com/rv32sim/rvsim/cpu"
	"github.com/rv32sim/rvsim/decode"
)

// execFloat is never reached when the F/D extensions are not built in:
// decode.decodeOpFP and friends only ever produce Illegal ops in that
// configuration, which dispatch traps before getting here. It exists so
// interp.go compiles identically regardless of the rv32fd tag.
func execFloat(s *cpu.State, op decode.Op, mem Memory) *Trap {
	return &Trap{Cause: IllegalInstruction, Tval: op.Raw}
}
