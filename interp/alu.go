package interp

import (
	"github.com/rv32sim/rvsim/cpu"
	"github.com/rv32sim/rvsim/decode"
)

// execALU implements the RV32I register-immediate and register-register
// integer ops (§4.D). None of these can trap.
func execALU(s *cpu.State, op decode.Op) *Trap {
	a := s.ReadX(op.Rs1)
	imm := uint32(op.Imm)

	var result uint32
	switch op.Kind {
	case decode.Addi:
		result = a + imm
	case decode.Slti:
		result = boolU32(int32(a) < op.Imm)
	case decode.Sltiu:
		result = boolU32(a < imm)
	case decode.Xori:
		result = a ^ imm
	case decode.Ori:
		result = a | imm
	case decode.Andi:
		result = a & imm
	case decode.Slli:
		result = a << (op.Shamt & 31)
	case decode.Srli:
		result = a >> (op.Shamt & 31)
	case decode.Srai:
		result = uint32(int32(a) >> (op.Shamt & 31))

	case decode.Add:
		result = a + s.ReadX(op.Rs2)
	case decode.Sub:
		result = a - s.ReadX(op.Rs2)
	case decode.Sll:
		result = a << (s.ReadX(op.Rs2) & 31)
	case decode.Slt:
		result = boolU32(int32(a) < int32(s.ReadX(op.Rs2)))
	case decode.Sltu:
		result = boolU32(a < s.ReadX(op.Rs2))
	case decode.Xor:
		result = a ^ s.ReadX(op.Rs2)
	case decode.Srl:
		result = a >> (s.ReadX(op.Rs2) & 31)
	case decode.Sra:
		result = uint32(int32(a) >> (s.ReadX(op.Rs2) & 31))
	case decode.Or:
		result = a | s.ReadX(op.Rs2)
	case decode.And:
		result = a & s.ReadX(op.Rs2)
	}

	s.WriteX(op.Rd, result)
	return nil
}

func boolU32(b bool) uint32 {
	if b {
		return 1
	}
	return 0
}
