package interp

import (
	"github.com/rv32sim/rvsim/cpu"
	"github.com/rv32sim/rvsim/decode"
)

// Execute runs exactly one decoded instruction against s (§4.D). On success
// it returns nil with s advanced past op and, for any instruction that
// writes a register, that register updated. On failure it returns a *Trap
// and leaves s exactly as it was before the call except for Mcause/Mepc/
// Mtval — with one deliberate exception: EnvironmentCall and Breakpoint
// traps keep whatever register effects the SystemCalls hook (for ecall) or
// dispatch made before the trap was raised, since for ecall those effects
// ARE the instruction's mechanism, not a partial failure to roll back.
func Execute(s *cpu.State, op decode.Op, mem Memory, sys SystemCalls) *Trap {
	snap := s.Snapshot()
	epc := s.PC

	trap := dispatch(s, op, mem, sys)
	if trap == nil {
		return nil
	}

	s.Mcause = trap.Cause.mcause()
	s.Mepc = epc
	s.Mtval = trap.Tval

	switch trap.Cause {
	case EnvironmentCall, Breakpoint:
		// Register/memory effects already applied by dispatch stand; only
		// PC must not advance, which dispatch never did on a trapping path.
	default:
		regs, fregs, pc, fcsr, resValid, resAddr := snap.X, snap.F, snap.PC, snap.Fcsr(), snap.ReservationValid, snap.ReservationAddr
		s.X = regs
		s.F = fregs
		s.PC = pc
		s.SetFcsr(fcsr)
		s.ReservationValid = resValid
		s.ReservationAddr = resAddr
	}

	return trap
}

// dispatch executes op against s, advancing s.PC on every non-trapping path.
// It never touches Mcause/Mepc/Mtval — Execute owns those.
func dispatch(s *cpu.State, op decode.Op, mem Memory, sys SystemCalls) *Trap {
	pc := s.PC

	switch op.Kind {
	case decode.Illegal:
		return &Trap{Cause: IllegalInstruction, Tval: op.Raw}

	case decode.Lui:
		s.WriteX(op.Rd, uint32(op.Imm))
	case decode.Auipc:
		s.WriteX(op.Rd, pc+uint32(op.Imm))

	case decode.Jal:
		target := pc + uint32(op.Imm)
		if misaligned(target, decode.InstructionAlignment) {
			return &Trap{Cause: InstructionAddressMisaligned, Tval: target}
		}
		s.WriteX(op.Rd, pc+uint32(op.Size))
		s.PC = target
		return nil

	case decode.Jalr:
		target := (s.ReadX(op.Rs1) + uint32(op.Imm)) &^ 1
		if misaligned(target, decode.InstructionAlignment) {
			return &Trap{Cause: InstructionAddressMisaligned, Tval: target}
		}
		s.WriteX(op.Rd, pc+uint32(op.Size))
		s.PC = target
		return nil

	case decode.Beq, decode.Bne, decode.Blt, decode.Bge, decode.Bltu, decode.Bgeu:
		if execBranch(s, op) {
			target := pc + uint32(op.Imm)
			if misaligned(target, decode.InstructionAlignment) {
				return &Trap{Cause: InstructionAddressMisaligned, Tval: target}
			}
			s.PC = target
			return nil
		}

	case decode.Lb, decode.Lh, decode.Lw, decode.Lbu, decode.Lhu:
		if trap := execLoad(s, op, mem); trap != nil {
			return trap
		}
	case decode.Sb, decode.Sh, decode.Sw:
		if trap := execStore(s, op, mem); trap != nil {
			return trap
		}

	case decode.Addi, decode.Slti, decode.Sltiu, decode.Xori, decode.Ori, decode.Andi,
		decode.Slli, decode.Srli, decode.Srai,
		decode.Add, decode.Sub, decode.Sll, decode.Slt, decode.Sltu, decode.Xor, decode.Srl, decode.Sra, decode.Or, decode.And:
		if trap := execALU(s, op); trap != nil {
			return trap
		}

	case decode.Mul, decode.Mulh, decode.Mulhsu, decode.Mulhu, decode.Div, decode.Divu, decode.Rem, decode.Remu:
		if trap := execMulDiv(s, op); trap != nil {
			return trap
		}

	case decode.LrW, decode.ScW, decode.AmoswapW, decode.AmoaddW, decode.AmoxorW, decode.AmoandW, decode.AmoorW,
		decode.AmominW, decode.AmomaxW, decode.AmominuW, decode.AmomaxuW:
		if trap := execAtomic(s, op, mem); trap != nil {
			return trap
		}

	case decode.Fence, decode.FenceI, decode.Wfi:
		// No-op: single hart, no cache to invalidate, nothing to wait on.

	case decode.Ecall:
		halt := sys.ECall(s)
		return &Trap{Cause: EnvironmentCall, Tval: 0, Halt: halt}

	case decode.Ebreak:
		return &Trap{Cause: Breakpoint, Tval: pc}

	case decode.Csrrw, decode.Csrrs, decode.Csrrc, decode.Csrrwi, decode.Csrrsi, decode.Csrrci:
		if trap := execCSR(s, op); trap != nil {
			return trap
		}

	case decode.FlW, decode.FsW, decode.FlD, decode.FsD,
		decode.FmaddS, decode.FmsubS, decode.FnmsubS, decode.FnmaddS,
		decode.FaddS, decode.FsubS, decode.FmulS, decode.FdivS, decode.FsqrtS,
		decode.FsgnjS, decode.FsgnjnS, decode.FsgnjxS, decode.FminS, decode.FmaxS,
		decode.FcvtWS, decode.FcvtWuS, decode.FcvtSW, decode.FcvtSWu, decode.FmvXW, decode.FmvWX,
		decode.FeqS, decode.FltS, decode.FleS, decode.FclassS,
		decode.FmaddD, decode.FmsubD, decode.FnmsubD, decode.FnmaddD,
		decode.FaddD, decode.FsubD, decode.FmulD, decode.FdivD, decode.FsqrtD,
		decode.FsgnjD, decode.FsgnjnD, decode.FsgnjxD, decode.FminD, decode.FmaxD,
		decode.FcvtWD, decode.FcvtWuD, decode.FcvtDW, decode.FcvtDWu, decode.FcvtSD, decode.FcvtDS,
		decode.FeqD, decode.FltD, decode.FleD, decode.FclassD:
		if trap := execFloat(s, op, mem); trap != nil {
			return trap
		}

	default:
		return &Trap{Cause: IllegalInstruction, Tval: op.Raw}
	}

	s.PC = pc + uint32(op.Size)
	return nil
}
