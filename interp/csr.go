package interp

import (
	"github.com/rv32sim/rvsim/cpu"
	"github.com/rv32sim/rvsim/decode"
)

// CSR addresses for the small set this core implements (§4.D, §9). fflags,
// frm and fcsr are the standard RISC-V addresses for the floating-point
// control/status subfields; mepc/mcause/mtval reuse the standard
// machine-mode trap CSR addresses as read-only windows onto the shadow
// trap state package cpu already carries, since this core never models a
// separate privileged trap-CSR file.
const (
	csrFflags = 0x001
	csrFrm    = 0x002
	csrFcsr   = 0x003
	csrMepc   = 0x341
	csrMcause = 0x342
	csrMtval  = 0x343
)

func csrReadOnly(addr uint32) bool {
	if addr>>10 == 0b11 {
		return true
	}
	switch addr {
	case csrMepc, csrMcause, csrMtval:
		return true
	default:
		return false
	}
}

func csrRead(s *cpu.State, addr uint32) (uint32, bool) {
	switch addr {
	case csrFflags:
		return uint32(s.Fflags()), true
	case csrFrm:
		return uint32(s.Frm()), true
	case csrFcsr:
		return uint32(s.Fcsr()), true
	case csrMepc:
		return s.Mepc, true
	case csrMcause:
		return s.Mcause, true
	case csrMtval:
		return s.Mtval, true
	default:
		return 0, false
	}
}

// csrWrite stores v into the CSR at addr, masking to each CSR's real
// width, and reports whether the write was accepted. It is never called
// for a read-only address — execCSR checks that first.
func csrWrite(s *cpu.State, addr, v uint32) bool {
	switch addr {
	case csrFflags:
		s.SetFflags(uint8(v) & 0x1f)
		return true
	case csrFrm:
		s.SetFrm(uint8(v) & 0x7)
		return true
	case csrFcsr:
		s.SetFcsr(uint8(v))
		return true
	default:
		return false
	}
}

// execCSR implements csrrw/s/c and their immediate forms (§4.D). The old
// value is always read first (our CSRs are side-effect-free, so there is
// no observable difference from the real ISA's "skip the read when
// csrrw's rd is x0" optimisation); the new value is written per the op,
// except that csrrs/csrrc/-i with a zero mask perform no write at all, so
// a pure status read never trips the read-only check. For the immediate
// forms (csrrwi/csrrsi/csrrci) op.Rs1 already holds the 5-bit zimm, not a
// register index — decode stores it there directly.
func execCSR(s *cpu.State, op decode.Op) *Trap {
	old, ok := csrRead(s, op.Csr)
	if !ok {
		return &Trap{Cause: IllegalInstruction, Tval: op.Raw}
	}

	var operand uint32
	switch op.Kind {
	case decode.Csrrw, decode.Csrrs, decode.Csrrc:
		operand = s.ReadX(op.Rs1)
	case decode.Csrrwi, decode.Csrrsi, decode.Csrrci:
		operand = op.Rs1
	}

	var write uint32
	doWrite := true
	switch op.Kind {
	case decode.Csrrw, decode.Csrrwi:
		write = operand
	case decode.Csrrs, decode.Csrrsi:
		doWrite = operand != 0
		write = old | operand
	case decode.Csrrc, decode.Csrrci:
		doWrite = operand != 0
		write = old &^ operand
	}

	if doWrite {
		if csrReadOnly(op.Csr) || !csrWrite(s, op.Csr, write) {
			return &Trap{Cause: IllegalInstruction, Tval: op.Raw}
		}
	}

	s.WriteX(op.Rd, old)
	return nil
}
