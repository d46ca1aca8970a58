// Package cpu holds the RV32 register file: the 32 integer GPRs, the 32 FPRs,
// the program counter, fcsr, and the shadow trap CSRs. It is the leaf
// component of rvsim (component A) — every operation here is infallible and
// the package imports nothing from decode/interp/sim.
package cpu

// CanonicalQNaN32 is the canonical quiet NaN bit pattern for a single, used
// whenever a read of f[i] finds the slot is not validly NaN-boxed.
const CanonicalQNaN32 uint32 = 0x7fc00000

// CanonicalQNaN64 is the canonical quiet NaN bit pattern for a double.
const CanonicalQNaN64 uint64 = 0x7ff8000000000000

// nanBoxTag occupies the upper 32 bits of f[i] whenever it holds a valid
// single-precision value.
const nanBoxTag uint64 = 0xffffffff00000000

// FRM rounding-mode encodings (fcsr[7:5]).
const (
	RoundNearestEven uint8 = 0 // RNE
	RoundTowardZero  uint8 = 1 // RTZ
	RoundDown        uint8 = 2 // RDN, toward -Inf
	RoundUp          uint8 = 3 // RUP, toward +Inf
	RoundNearestMax  uint8 = 4 // RMM, round to nearest, ties away from zero
	RoundDynamic     uint8 = 7 // funct3 == 0b111: look up frm
)

// fflags bits (fcsr[4:0]).
const (
	FlagNX uint8 = 1 << 0 // inexact
	FlagUF uint8 = 1 << 1 // underflow
	FlagOF uint8 = 1 << 2 // overflow
	FlagDZ uint8 = 1 << 3 // divide by zero
	FlagNV uint8 = 1 << 4 // invalid operation
)

// State is the architectural state of one RV32 hart: the register file plus
// the handful of shadow CSRs the core needs to deliver traps (§3). It carries
// no reference to memory or to a host — those are supplied per call by the
// driver in package sim.
type State struct {
	X [32]uint32 // integer GPRs; X[0] is hard-wired to zero
	F [32]uint64 // FPRs, stored as raw bits, NaN-boxed when holding a single
	PC uint32

	fcsr uint8 // {frm[7:5], fflags[4:0]}

	// Reservation for the A extension's LR/SC pair. Valid is false when no
	// reservation is outstanding or it has been invalidated by an
	// intervening store to the reserved address.
	ReservationValid bool
	ReservationAddr  uint32

	// Shadow trap CSRs (§3): written by the interpreter when a trap fires,
	// read by the host's trap handler. The core never redirects PC using
	// these; it only records them for the host to inspect after Step
	// returns an error.
	Mcause uint32
	Mepc   uint32
	Mtval  uint32
}

// ReadX returns the value of integer register i (0..31). Reading x0 always
// yields zero.
func (s *State) ReadX(i uint32) uint32 {
	if i == 0 {
		return 0
	}
	return s.X[i&31]
}

// WriteX sets integer register i (0..31). Writes to x0 are silently
// discarded, preserving the invariant x[0] == 0 after every step.
func (s *State) WriteX(i uint32, v uint32) {
	if i == 0 {
		return
	}
	s.X[i&31] = v
}

// ReadFRaw returns the raw 64-bit contents of FPR i, with no NaN unboxing.
func (s *State) ReadFRaw(i uint32) uint64 {
	return s.F[i&31]
}

// WriteFRaw sets the raw 64-bit contents of FPR i. Used for double-precision
// results and for fmv.x.w/fmv.w.x-style raw bit moves into a register that
// is about to be reinterpreted.
func (s *State) WriteFRaw(i uint32, v uint64) {
	s.F[i&31] = v
}

// ReadSingle returns the 32-bit single stored in FPR i, unboxing it. If the
// slot is not validly NaN-boxed (upper 32 bits aren't all-ones), the
// canonical quiet NaN is returned instead, per §3.
func (s *State) ReadSingle(i uint32) uint32 {
	raw := s.F[i&31]
	if raw&nanBoxTag != nanBoxTag {
		return CanonicalQNaN32
	}
	return uint32(raw)
}

// WriteSingle stores a 32-bit single into FPR i, NaN-boxing it by setting the
// upper 32 bits to all-ones.
func (s *State) WriteSingle(i uint32, bits uint32) {
	s.F[i&31] = nanBoxTag | uint64(bits)
}

// Fcsr returns the full 8-bit fcsr value: {frm[7:5], fflags[4:0]}.
func (s *State) Fcsr() uint8 {
	return s.fcsr
}

// SetFcsr masks the written value to 8 bits and stores it verbatim. Callers
// that need to validate frm before committing (illegal rounding mode) must
// do so before calling SetFcsr; this method performs no validation.
func (s *State) SetFcsr(v uint8) {
	s.fcsr = v
}

// Frm returns the current dynamic rounding mode, fcsr[7:5].
func (s *State) Frm() uint8 {
	return s.fcsr >> 5
}

// SetFrm overwrites fcsr[7:5], leaving fflags untouched.
func (s *State) SetFrm(mode uint8) {
	s.fcsr = (s.fcsr &^ 0xe0) | ((mode & 0x7) << 5)
}

// Fflags returns the sticky exception flags, fcsr[4:0].
func (s *State) Fflags() uint8 {
	return s.fcsr & 0x1f
}

// SetFflags overwrites fcsr[4:0], leaving frm untouched.
func (s *State) SetFflags(flags uint8) {
	s.fcsr = (s.fcsr &^ 0x1f) | (flags & 0x1f)
}

// RaiseFflags ORs the given sticky flags into fcsr[4:0]. fflags are
// monotonic: the interpreter only ever calls this, never clears bits
// directly — only an explicit CSR write (SetFflags/SetFcsr) clears them.
func (s *State) RaiseFflags(flags uint8) {
	s.fcsr |= flags & 0x1f
}

// InvalidateReservation clears any outstanding LR/SC reservation. Called by
// the interpreter whenever a normal store targets the reserved address.
func (s *State) InvalidateReservation() {
	s.ReservationValid = false
}

// Snapshot returns a copy of the state, used by the interpreter to implement
// the "traps never partially commit" invariant (§3.2): callers take a
// snapshot before a potentially-trapping step and restore it if the step
// fails, except for the shadow trap CSRs which the trap itself is allowed to
// set.
func (s *State) Snapshot() State {
	return *s
}

// Restore overwrites s with a prior snapshot, then sets the shadow trap CSRs
// from cause, epc and tval so trap delivery is still visible to the host.
func (s *State) Restore(snap State, cause, epc, tval uint32) {
	*s = snap
	s.Mcause = cause
	s.Mepc = epc
	s.Mtval = tval
}
