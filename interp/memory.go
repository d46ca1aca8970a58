package interp

import "github.com/rv32sim/rvsim/cpu"

// Memory is the host-supplied external collaborator the core uses for
// every instruction fetch, load and store (§6). All addresses are
// guest-virtual; the core performs no translation and has no notion of
// what backs any given address — that is entirely the host's call.
type Memory interface {
	// Fetch returns the little-endian halfword at addr, or false if addr
	// is not executable/mapped. The driver calls this once for a
	// compressed instruction, twice (at addr and addr+2) for a full word.
	Fetch(addr uint32) (uint16, bool)

	// Load returns the little-endian, zero-extended value of width bytes
	// (1, 2 or 4) at addr, or false if the access faults.
	Load(addr uint32, width uint8) (uint32, bool)

	// Store writes the low width bytes of value, little-endian, to addr.
	// It returns false if the access faults, in which case memory must be
	// left unchanged.
	Store(addr uint32, width uint8, value uint32) bool
}

// SystemCalls is called whenever the interpreter executes ecall (§6). The
// hook may read and mutate any register in s — by convention a7 holds the
// syscall number, a0..a6 the arguments, and a0 the return value — and
// reports whether the host wants the run loop to stop here rather than
// resume automatically past the ecall.
type SystemCalls interface {
	ECall(s *cpu.State) (halt bool)
}
