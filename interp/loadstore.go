package interp

import (
	"github.com/rv32sim/rvsim/cpu"
	"github.com/rv32sim/rvsim/decode"
)

func widthOf(k decode.Kind) uint8 {
	switch k {
	case decode.Lb, decode.Lbu, decode.Sb:
		return 1
	case decode.Lh, decode.Lhu, decode.Sh:
		return 2
	default:
		return 4
	}
}

func misaligned(addr uint32, width uint8) bool {
	return addr&uint32(width-1) != 0
}

// execLoad implements the base integer loads (§4.D), including the
// sign/zero-extension each width needs.
func execLoad(s *cpu.State, op decode.Op, mem Memory) *Trap {
	addr := s.ReadX(op.Rs1) + uint32(op.Imm)
	width := widthOf(op.Kind)
	if misaligned(addr, width) {
		return &Trap{Cause: LoadAddressMisaligned, Tval: addr}
	}

	raw, ok := mem.Load(addr, width)
	if !ok {
		return &Trap{Cause: LoadAccessFault, Tval: addr}
	}

	var result uint32
	switch op.Kind {
	case decode.Lb:
		result = uint32(int32(int8(raw)))
	case decode.Lh:
		result = uint32(int32(int16(raw)))
	case decode.Lbu:
		result = raw & 0xff
	case decode.Lhu:
		result = raw & 0xffff
	case decode.Lw:
		result = raw
	}

	s.WriteX(op.Rd, result)
	return nil
}

// execStore implements the base integer stores (§4.D). A successful store
// to the address under an outstanding LR/SC reservation invalidates it,
// whether or not the store came from the hart that set the reservation —
// this core models a single hart, so that distinction never arises.
func execStore(s *cpu.State, op decode.Op, mem Memory) *Trap {
	addr := s.ReadX(op.Rs1) + uint32(op.Imm)
	width := widthOf(op.Kind)
	if misaligned(addr, width) {
		return &Trap{Cause: StoreAddressMisaligned, Tval: addr}
	}

	value := s.ReadX(op.Rs2)
	if !mem.Store(addr, width, value) {
		return &Trap{Cause: StoreAccessFault, Tval: addr}
	}

	if s.ReservationValid && addr == s.ReservationAddr {
		s.InvalidateReservation()
	}
	return nil
}
