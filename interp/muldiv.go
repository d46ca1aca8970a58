package interp

import (
	"math"

	"github.com/rv32sim/rvsim/cpu"
	"github.com/rv32sim/rvsim/decode"
)

// execMulDiv implements the M extension (§4.D). Mul/Div never trap: RISC-V
// defines fixed results for divide-by-zero and for the signed-overflow case
// (MinInt32 / -1), rather than raising an exception the way most ISAs do.
func execMulDiv(s *cpu.State, op decode.Op) *Trap {
	a := int32(s.ReadX(op.Rs1))
	b := int32(s.ReadX(op.Rs2))
	ua := s.ReadX(op.Rs1)
	ub := s.ReadX(op.Rs2)

	var result uint32
	switch op.Kind {
	case decode.Mul:
		result = ua * ub
	case decode.Mulh:
		result = uint32(int64(a) * int64(b) >> 32)
	case decode.Mulhsu:
		result = uint32((int64(a) * int64(ub)) >> 32)
	case decode.Mulhu:
		result = uint32((uint64(ua) * uint64(ub)) >> 32)
	case decode.Div:
		switch {
		case ub == 0:
			result = math.MaxUint32
		case a == math.MinInt32 && b == -1:
			result = uint32(a)
		default:
			result = uint32(a / b)
		}
	case decode.Divu:
		if ub == 0 {
			result = math.MaxUint32
		} else {
			result = ua / ub
		}
	case decode.Rem:
		switch {
		case ub == 0:
			result = ua
		case a == math.MinInt32 && b == -1:
			result = 0
		default:
			result = uint32(a % b)
		}
	case decode.Remu:
		if ub == 0 {
			result = ua
		} else {
			result = ua % ub
		}
	}

	s.WriteX(op.Rd, result)
	return nil
}
