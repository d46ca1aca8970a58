//go:build rv32fd

package interp

import (
	"github.com/rv32sim/rvsim/cpu"
	"github.com/rv32sim/rvsim/decode"
	"github.com/rv32sim/rvsim/softfloat"
)

// resolveRM turns an op's static/dynamic rounding-mode field into a
// softfloat.RoundingMode and reports whether it is valid; the caller traps
// IllegalInstruction on any reserved encoding (§4.D). The two enums share encodings by construction, so this
// is a direct cast once validated.
func resolveRM(s *cpu.State, rm uint8) (softfloat.RoundingMode, bool) {
	if rm == 0b111 {
		rm = s.Frm()
	}
	mode := softfloat.RoundingMode(rm)
	return mode, mode.Valid()
}

// execFloat implements every RV32F/D instruction (§4.D, §4.B): it resolves
// the rounding mode, reads operands out of the register file (NaN-unboxing
// singles), calls into softfloat, ORs the returned flags into fcsr, and
// writes the result back. It is the sole bridge between the architectural
// register file and the stateless softfloat kernel.
func execFloat(s *cpu.State, op decode.Op, mem Memory) *Trap {
	switch op.Kind {
	case decode.FlW:
		addr := s.ReadX(op.Rs1) + uint32(op.Imm)
		if misaligned(addr, 4) {
			return &Trap{Cause: LoadAddressMisaligned, Tval: addr}
		}
		raw, ok := mem.Load(addr, 4)
		if !ok {
			return &Trap{Cause: LoadAccessFault, Tval: addr}
		}
		s.WriteSingle(op.Rd, raw)
		return nil

	case decode.FsW:
		addr := s.ReadX(op.Rs1) + uint32(op.Imm)
		if misaligned(addr, 4) {
			return &Trap{Cause: StoreAddressMisaligned, Tval: addr}
		}
		if !mem.Store(addr, 4, s.ReadSingle(op.Rs2)) {
			return &Trap{Cause: StoreAccessFault, Tval: addr}
		}
		if s.ReservationValid && addr == s.ReservationAddr {
			s.InvalidateReservation()
		}
		return nil

	case decode.FlD:
		addr := s.ReadX(op.Rs1) + uint32(op.Imm)
		if misaligned(addr, 8) {
			return &Trap{Cause: LoadAddressMisaligned, Tval: addr}
		}
		lo, ok := mem.Load(addr, 4)
		if !ok {
			return &Trap{Cause: LoadAccessFault, Tval: addr}
		}
		hi, ok := mem.Load(addr+4, 4)
		if !ok {
			return &Trap{Cause: LoadAccessFault, Tval: addr + 4}
		}
		s.WriteFRaw(op.Rd, uint64(lo)|uint64(hi)<<32)
		return nil

	case decode.FsD:
		addr := s.ReadX(op.Rs1) + uint32(op.Imm)
		if misaligned(addr, 8) {
			return &Trap{Cause: StoreAddressMisaligned, Tval: addr}
		}
		v := s.ReadFRaw(op.Rs2)
		if !mem.Store(addr, 4, uint32(v)) {
			return &Trap{Cause: StoreAccessFault, Tval: addr}
		}
		if !mem.Store(addr+4, 4, uint32(v>>32)) {
			return &Trap{Cause: StoreAccessFault, Tval: addr + 4}
		}
		if s.ReservationValid && addr == s.ReservationAddr {
			s.InvalidateReservation()
		}
		return nil
	}

	// Ops with no rounding-mode field decode with Rm == 0, which always
	// resolves validly, so this check only ever fires for the ops that do
	// carry one and picked a reserved static/dynamic encoding.
	rm, rmOK := resolveRM(s, op.Rm)
	if !rmOK {
		return &Trap{Cause: IllegalInstruction, Tval: op.Raw}
	}

	switch op.Kind {
	case decode.FaddS:
		r, fl := softfloat.AddS(s.ReadSingle(op.Rs1), s.ReadSingle(op.Rs2), rm)
		s.RaiseFflags(uint8(fl))
		s.WriteSingle(op.Rd, r)
	case decode.FsubS:
		r, fl := softfloat.SubS(s.ReadSingle(op.Rs1), s.ReadSingle(op.Rs2), rm)
		s.RaiseFflags(uint8(fl))
		s.WriteSingle(op.Rd, r)
	case decode.FmulS:
		r, fl := softfloat.MulS(s.ReadSingle(op.Rs1), s.ReadSingle(op.Rs2), rm)
		s.RaiseFflags(uint8(fl))
		s.WriteSingle(op.Rd, r)
	case decode.FdivS:
		r, fl := softfloat.DivS(s.ReadSingle(op.Rs1), s.ReadSingle(op.Rs2), rm)
		s.RaiseFflags(uint8(fl))
		s.WriteSingle(op.Rd, r)
	case decode.FsqrtS:
		r, fl := softfloat.SqrtS(s.ReadSingle(op.Rs1), rm)
		s.RaiseFflags(uint8(fl))
		s.WriteSingle(op.Rd, r)
	case decode.FmaddS:
		r, fl := softfloat.FmaS(s.ReadSingle(op.Rs1), s.ReadSingle(op.Rs2), s.ReadSingle(op.Rs3), rm)
		s.RaiseFflags(uint8(fl))
		s.WriteSingle(op.Rd, r)
	case decode.FmsubS:
		r, fl := softfloat.FmaS(s.ReadSingle(op.Rs1), s.ReadSingle(op.Rs2), flipSign32(s.ReadSingle(op.Rs3)), rm)
		s.RaiseFflags(uint8(fl))
		s.WriteSingle(op.Rd, r)
	case decode.FnmsubS:
		r, fl := softfloat.FmaS(flipSign32(s.ReadSingle(op.Rs1)), s.ReadSingle(op.Rs2), s.ReadSingle(op.Rs3), rm)
		s.RaiseFflags(uint8(fl))
		s.WriteSingle(op.Rd, r)
	case decode.FnmaddS:
		r, fl := softfloat.FmaS(flipSign32(s.ReadSingle(op.Rs1)), s.ReadSingle(op.Rs2), flipSign32(s.ReadSingle(op.Rs3)), rm)
		s.RaiseFflags(uint8(fl))
		s.WriteSingle(op.Rd, r)

	case decode.FsgnjS:
		s.WriteSingle(op.Rd, softfloat.SgnjS(s.ReadSingle(op.Rs1), s.ReadSingle(op.Rs2)))
	case decode.FsgnjnS:
		s.WriteSingle(op.Rd, softfloat.SgnjnS(s.ReadSingle(op.Rs1), s.ReadSingle(op.Rs2)))
	case decode.FsgnjxS:
		s.WriteSingle(op.Rd, softfloat.SgnjxS(s.ReadSingle(op.Rs1), s.ReadSingle(op.Rs2)))
	case decode.FminS:
		r, fl := softfloat.MinS(s.ReadSingle(op.Rs1), s.ReadSingle(op.Rs2))
		s.RaiseFflags(uint8(fl))
		s.WriteSingle(op.Rd, r)
	case decode.FmaxS:
		r, fl := softfloat.MaxS(s.ReadSingle(op.Rs1), s.ReadSingle(op.Rs2))
		s.RaiseFflags(uint8(fl))
		s.WriteSingle(op.Rd, r)

	case decode.FcvtWS:
		r, fl := softfloat.CvtSToI32(s.ReadSingle(op.Rs1), rm)
		s.RaiseFflags(uint8(fl))
		s.WriteX(op.Rd, uint32(r))
	case decode.FcvtWuS:
		r, fl := softfloat.CvtSToU32(s.ReadSingle(op.Rs1), rm)
		s.RaiseFflags(uint8(fl))
		s.WriteX(op.Rd, r)
	case decode.FcvtSW:
		r, fl := softfloat.CvtI32ToS(int32(s.ReadX(op.Rs1)), rm)
		s.RaiseFflags(uint8(fl))
		s.WriteSingle(op.Rd, r)
	case decode.FcvtSWu:
		r, fl := softfloat.CvtU32ToS(s.ReadX(op.Rs1), rm)
		s.RaiseFflags(uint8(fl))
		s.WriteSingle(op.Rd, r)

	case decode.FmvXW:
		s.WriteX(op.Rd, s.ReadSingle(op.Rs1))
	case decode.FmvWX:
		s.WriteSingle(op.Rd, s.ReadX(op.Rs1))

	case decode.FeqS:
		r, fl := softfloat.FeqS(s.ReadSingle(op.Rs1), s.ReadSingle(op.Rs2))
		s.RaiseFflags(uint8(fl))
		s.WriteX(op.Rd, boolU32(r))
	case decode.FltS:
		r, fl := softfloat.FltS(s.ReadSingle(op.Rs1), s.ReadSingle(op.Rs2))
		s.RaiseFflags(uint8(fl))
		s.WriteX(op.Rd, boolU32(r))
	case decode.FleS:
		r, fl := softfloat.FleS(s.ReadSingle(op.Rs1), s.ReadSingle(op.Rs2))
		s.RaiseFflags(uint8(fl))
		s.WriteX(op.Rd, boolU32(r))
	case decode.FclassS:
		s.WriteX(op.Rd, uint32(softfloat.ClassifyS(s.ReadSingle(op.Rs1))))

	case decode.FaddD:
		r, fl := softfloat.AddD(s.ReadFRaw(op.Rs1), s.ReadFRaw(op.Rs2), rm)
		s.RaiseFflags(uint8(fl))
		s.WriteFRaw(op.Rd, r)
	case decode.FsubD:
		r, fl := softfloat.SubD(s.ReadFRaw(op.Rs1), s.ReadFRaw(op.Rs2), rm)
		s.RaiseFflags(uint8(fl))
		s.WriteFRaw(op.Rd, r)
	case decode.FmulD:
		r, fl := softfloat.MulD(s.ReadFRaw(op.Rs1), s.ReadFRaw(op.Rs2), rm)
		s.RaiseFflags(uint8(fl))
		s.WriteFRaw(op.Rd, r)
	case decode.FdivD:
		r, fl := softfloat.DivD(s.ReadFRaw(op.Rs1), s.ReadFRaw(op.Rs2), rm)
		s.RaiseFflags(uint8(fl))
		s.WriteFRaw(op.Rd, r)
	case decode.FsqrtD:
		r, fl := softfloat.SqrtD(s.ReadFRaw(op.Rs1), rm)
		s.RaiseFflags(uint8(fl))
		s.WriteFRaw(op.Rd, r)
	case decode.FmaddD:
		r, fl := softfloat.FmaD(s.ReadFRaw(op.Rs1), s.ReadFRaw(op.Rs2), s.ReadFRaw(op.Rs3), rm)
		s.RaiseFflags(uint8(fl))
		s.WriteFRaw(op.Rd, r)
	case decode.FmsubD:
		r, fl := softfloat.FmaD(s.ReadFRaw(op.Rs1), s.ReadFRaw(op.Rs2), flipSign64(s.ReadFRaw(op.Rs3)), rm)
		s.RaiseFflags(uint8(fl))
		s.WriteFRaw(op.Rd, r)
	case decode.FnmsubD:
		r, fl := softfloat.FmaD(flipSign64(s.ReadFRaw(op.Rs1)), s.ReadFRaw(op.Rs2), s.ReadFRaw(op.Rs3), rm)
		s.RaiseFflags(uint8(fl))
		s.WriteFRaw(op.Rd, r)
	case decode.FnmaddD:
		r, fl := softfloat.FmaD(flipSign64(s.ReadFRaw(op.Rs1)), s.ReadFRaw(op.Rs2), flipSign64(s.ReadFRaw(op.Rs3)), rm)
		s.RaiseFflags(uint8(fl))
		s.WriteFRaw(op.Rd, r)

	case decode.FsgnjD:
		s.WriteFRaw(op.Rd, softfloat.SgnjD(s.ReadFRaw(op.Rs1), s.ReadFRaw(op.Rs2)))
	case decode.FsgnjnD:
		s.WriteFRaw(op.Rd, softfloat.SgnjnD(s.ReadFRaw(op.Rs1), s.ReadFRaw(op.Rs2)))
	case decode.FsgnjxD:
		s.WriteFRaw(op.Rd, softfloat.SgnjxD(s.ReadFRaw(op.Rs1), s.ReadFRaw(op.Rs2)))
	case decode.FminD:
		r, fl := softfloat.MinD(s.ReadFRaw(op.Rs1), s.ReadFRaw(op.Rs2))
		s.RaiseFflags(uint8(fl))
		s.WriteFRaw(op.Rd, r)
	case decode.FmaxD:
		r, fl := softfloat.MaxD(s.ReadFRaw(op.Rs1), s.ReadFRaw(op.Rs2))
		s.RaiseFflags(uint8(fl))
		s.WriteFRaw(op.Rd, r)

	case decode.FcvtWD:
		r, fl := softfloat.CvtDToI32(s.ReadFRaw(op.Rs1), rm)
		s.RaiseFflags(uint8(fl))
		s.WriteX(op.Rd, uint32(r))
	case decode.FcvtWuD:
		r, fl := softfloat.CvtDToU32(s.ReadFRaw(op.Rs1), rm)
		s.RaiseFflags(uint8(fl))
		s.WriteX(op.Rd, r)
	case decode.FcvtDW:
		s.WriteFRaw(op.Rd, softfloat.CvtI32ToD(int32(s.ReadX(op.Rs1))))
	case decode.FcvtDWu:
		s.WriteFRaw(op.Rd, softfloat.CvtU32ToD(s.ReadX(op.Rs1)))

	case decode.FcvtSD:
		r, fl := softfloat.CvtDToS(s.ReadFRaw(op.Rs1), rm)
		s.RaiseFflags(uint8(fl))
		s.WriteSingle(op.Rd, r)
	case decode.FcvtDS:
		r, fl := softfloat.CvtSToD(s.ReadSingle(op.Rs1))
		s.RaiseFflags(uint8(fl))
		s.WriteFRaw(op.Rd, r)

	case decode.FeqD:
		r, fl := softfloat.FeqD(s.ReadFRaw(op.Rs1), s.ReadFRaw(op.Rs2))
		s.RaiseFflags(uint8(fl))
		s.WriteX(op.Rd, boolU32(r))
	case decode.FltD:
		r, fl := softfloat.FltD(s.ReadFRaw(op.Rs1), s.ReadFRaw(op.Rs2))
		s.RaiseFflags(uint8(fl))
		s.WriteX(op.Rd, boolU32(r))
	case decode.FleD:
		r, fl := softfloat.FleD(s.ReadFRaw(op.Rs1), s.ReadFRaw(op.Rs2))
		s.RaiseFflags(uint8(fl))
		s.WriteX(op.Rd, boolU32(r))
	case decode.FclassD:
		s.WriteX(op.Rd, uint32(softfloat.ClassifyD(s.ReadFRaw(op.Rs1))))

	default:
		return &Trap{Cause: IllegalInstruction, Tval: op.Raw}
	}

	return nil
}

func flipSign32(bits uint32) uint32 { return bits ^ 0x80000000 }
func flipSign64(bits uint64) uint64 { return bits ^ 0x8000000000000000 }
