// Package sim is rvsim's driver (component E): it owns a Clock, borrows the
// caller's CpuState, and loops fetch → decode → execute → commit against host-supplied
// memory and system-call callbacks (§4.E). It never redirects PC to a trap
// vector — a trap stops the loop and hands control back to the host.
package sim

import (
	"github.com/rv32sim/rvsim/cpu"
	"github.com/rv32sim/rvsim/decode"
	"github.com/rv32sim/rvsim/interp"
)

// Memory and SystemCalls are re-exported so host code depends only on
// package sim, not on interp directly, the way the teacher's top-level
// packages front their own CPU cores' interfaces.
type Memory = interp.Memory
type SystemCalls = interp.SystemCalls
type Trap = interp.Trap
type Cause = interp.Cause

const EnvironmentCall = interp.EnvironmentCall

// Clock is a free-running counter incremented once per committed step
// (§4.E). It never wraps in practice at 64 bits and carries no other state.
type Clock struct {
	cycles uint64
}

func (c *Clock) Tick()          { c.cycles++ }
func (c *Clock) Cycles() uint64 { return c.cycles }

// Simulator borrows a CpuState, a Memory and a SystemCalls for the duration
// of a run (§5: CpuState is owned by the caller). It holds no guest state of
// its own beyond the Clock.
type Simulator struct {
	State *cpu.State
	Mem   Memory
	Sys   SystemCalls
	Clock Clock
}

// NewSimulator wires state/mem/sys together. state, mem and sys must
// outlive the Simulator; the caller retains ownership.
func NewSimulator(state *cpu.State, mem Memory, sys SystemCalls) *Simulator {
	return &Simulator{State: state, Mem: mem, Sys: sys}
}

// Step fetches, decodes and executes exactly one instruction at s.State.PC.
// It returns the fetched Op for tracing/disassembly purposes even when a
// trap occurs, except when the fetch itself failed (Op is the zero value in
// that case).
func (s *Simulator) Step() (decode.Op, *Trap) {
	pc := s.State.PC

	low, ok := s.Mem.Fetch(pc)
	if !ok {
		// A failed fetch is a LoadAccessFault (mcause 5); like every other
		// trap it is recorded in the shadow trap CSRs.
		s.State.Mcause, s.State.Mepc, s.State.Mtval = 5, pc, pc
		return decode.Op{}, &Trap{Cause: interp.LoadAccessFault, Tval: pc}
	}

	var op decode.Op
	if decode.IsCompressed(low) {
		op = decode.DecodeCompressed(low)
	} else {
		hi, ok := s.Mem.Fetch(pc + 2)
		if !ok {
			s.State.Mcause, s.State.Mepc, s.State.Mtval = 5, pc, pc+2
			return decode.Op{}, &Trap{Cause: interp.LoadAccessFault, Tval: pc + 2}
		}
		op = decode.Decode(low, hi)
	}

	trap := interp.Execute(s.State, op, s.Mem, s.Sys)
	s.Clock.Tick()
	return op, trap
}

// Run executes up to maxSteps instructions (§4.E). It stops early on any
// trap except a non-halting EnvironmentCall, which it resumes from
// automatically by advancing PC past the ecall — ecall is always exactly
// 4 bytes, so s.State.Mepc+4 is always the correct resume address. Every
// other trap, including a halting ecall and every breakpoint, is returned
// to the caller with the loop stopped at the faulting instruction.
func (s *Simulator) Run(maxSteps uint64) *Trap {
	for i := uint64(0); i < maxSteps; i++ {
		_, trap := s.Step()
		if trap == nil {
			continue
		}
		if trap.Cause == interp.EnvironmentCall && !trap.Halt {
			s.State.PC = s.State.Mepc + 4
			continue
		}
		return trap
	}
	return nil
}
