package interp

import (
	"github.com/rv32sim/rvsim/cpu"
	"github.com/rv32sim/rvsim/decode"
)

// execAtomic implements the A extension: LR.W/SC.W and the nine AMO ops
// (§4.D). RV32A only defines word-sized operations, so every instruction
// here is 4-byte aligned regardless of the op; a misaligned address is an
// IllegalInstruction per the spec's resolution of that Open Question,
// rather than the AddressMisaligned causes ordinary loads/stores use.
func execAtomic(s *cpu.State, op decode.Op, mem Memory) *Trap {
	addr := s.ReadX(op.Rs1)
	if misaligned(addr, 4) {
		return &Trap{Cause: IllegalInstruction, Tval: op.Raw}
	}

	if op.Kind == decode.LrW {
		raw, ok := mem.Load(addr, 4)
		if !ok {
			return &Trap{Cause: LoadAccessFault, Tval: addr}
		}
		s.ReservationValid = true
		s.ReservationAddr = addr
		s.WriteX(op.Rd, raw)
		return nil
	}

	if op.Kind == decode.ScW {
		success := s.ReservationValid && s.ReservationAddr == addr
		s.InvalidateReservation()
		if success {
			if !mem.Store(addr, 4, s.ReadX(op.Rs2)) {
				return &Trap{Cause: StoreAccessFault, Tval: addr}
			}
			s.WriteX(op.Rd, 0)
		} else {
			s.WriteX(op.Rd, 1)
		}
		return nil
	}

	old, ok := mem.Load(addr, 4)
	if !ok {
		return &Trap{Cause: LoadAccessFault, Tval: addr}
	}
	rs2 := s.ReadX(op.Rs2)

	var result uint32
	switch op.Kind {
	case decode.AmoswapW:
		result = rs2
	case decode.AmoaddW:
		result = old + rs2
	case decode.AmoxorW:
		result = old ^ rs2
	case decode.AmoandW:
		result = old & rs2
	case decode.AmoorW:
		result = old | rs2
	case decode.AmominW:
		result = uint32(min(int32(old), int32(rs2)))
	case decode.AmomaxW:
		result = uint32(max(int32(old), int32(rs2)))
	case decode.AmominuW:
		result = min(old, rs2)
	case decode.AmomaxuW:
		result = max(old, rs2)
	}

	if !mem.Store(addr, 4, result) {
		return &Trap{Cause: StoreAccessFault, Tval: addr}
	}
	if s.ReservationValid && addr == s.ReservationAddr {
		s.InvalidateReservation()
	}
	s.WriteX(op.Rd, old)
	return nil
}
