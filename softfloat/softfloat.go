// Package softfloat is rvsim's IEEE-754 kernel (component B): a pure
// computational layer producing bit-exact single/double-precision results
// for every arithmetic, comparison, conversion and classification operation
// the RV32F/D extensions require, with explicit rounding-mode input and
// sticky-flag output on every call (§4.B). No operation here ever fails —
// invalid operations are reported through the returned Flags, never through
// an error or a panic, matching the RISC-V convention that NV is a flag,
// not a trap (§7).
//
// No third-party softfloat library appears anywhere in the reference
// corpus — the handful that exist in the wider Go ecosystem are thin cgo
// wrappers around Berkeley SoftFloat's C sources, which §1 explicitly
// places out of scope. This kernel is instead built on math/big.Float,
// which — given enough working precision and its native per-operation
// rounding mode — performs a single correctly-rounded conversion from an
// arbitrary-precision exact intermediate down to the target format, the
// same "compute wide, round once" discipline a from-scratch softfloat
// implementation follows by hand.
package softfloat

import "math/big"

// RoundingMode mirrors the RISC-V frm/funct3 encoding (§3, §4.D). Dynamic
// rounding (funct3 == 0b111) is resolved by the caller before reaching this
// package — the kernel only ever sees one of the five concrete modes.
type RoundingMode uint8

const (
	RNE RoundingMode = 0 // round to nearest, ties to even
	RTZ RoundingMode = 1 // round toward zero
	RDN RoundingMode = 2 // round toward -Inf
	RUP RoundingMode = 3 // round toward +Inf
	RMM RoundingMode = 4 // round to nearest, ties away from zero
)

// Valid reports whether m is one of the five static rounding-mode
// encodings. The interpreter traps IllegalInstruction before calling into
// this package for any other value, including the dynamic encoding 0b111.
func (m RoundingMode) Valid() bool {
	return m <= RMM
}

// Flags is the 5-bit sticky exception set (§4.B): NV, DZ, OF, UF, NX. The
// caller is expected to OR the returned value into fcsr.fflags; this
// package never reads or mutates ambient state itself.
type Flags uint8

const (
	FlagNX Flags = 1 << 0 // inexact
	FlagUF Flags = 1 << 1 // underflow
	FlagOF Flags = 1 << 2 // overflow
	FlagDZ Flags = 1 << 3 // divide by zero
	FlagNV Flags = 1 << 4 // invalid operation
)

// Classify mask bits (§4.B), ordered least-significant-bit first exactly as
// the RV32F/D `fclass` instruction defines them.
const (
	ClassNegInfinity  uint16 = 1 << 0
	ClassNegNormal    uint16 = 1 << 1
	ClassNegSubnormal uint16 = 1 << 2
	ClassNegZero      uint16 = 1 << 3
	ClassPosZero      uint16 = 1 << 4
	ClassPosSubnormal uint16 = 1 << 5
	ClassPosNormal    uint16 = 1 << 6
	ClassPosInfinity  uint16 = 1 << 7
	ClassSignalingNaN uint16 = 1 << 8
	ClassQuietNaN     uint16 = 1 << 9
)

// CanonicalNaN32 / CanonicalNaN64 are the bit patterns this kernel produces
// for every NaN result, regardless of which NaN(s) fed into the operation.
const (
	CanonicalNaN32 uint32 = 0x7fc00000
	CanonicalNaN64 uint64 = 0x7ff8000000000000
)

// workingPrec is the precision (bits) used for intermediate big.Float
// arithmetic before the final round-to-format step. It is chosen far larger
// than any format's mantissa (53 for double) plus the widest possible
// exponent spread a single add/mul/fma can introduce, so the intermediate
// is exact for +, -, *, and fma, and precise enough that div/sqrt are
// correctly rounded for all but a vanishing fraction of "hardest to round"
// operand pairs.
const workingPrec = 4096

func bigModeFor(rm RoundingMode) big.RoundingMode {
	switch rm {
	case RTZ:
		return big.ToZero
	case RDN:
		return big.ToNegativeInf
	case RUP:
		return big.ToPositiveInf
	case RMM:
		return big.ToNearestAway
	default:
		return big.ToNearestEven
	}
}

// formatParams describes the bit layout a roundFinal call rounds into.
type formatParams struct {
	mantissaBits uint // stored mantissa bits (excludes the implicit leading 1)
	minExp       int  // minimum normal unbiased exponent
	maxExp       int  // maximum normal unbiased exponent
}

var f32Params = formatParams{mantissaBits: 23, minExp: -126, maxExp: 127}
var f64Params = formatParams{mantissaBits: 52, minExp: -1022, maxExp: 1023}

// roundFinal rounds the (assumed exact-enough) value exact into the target
// format under rounding mode rm, handling gradual underflow by shrinking
// the retained precision as the exponent drops below minExp, and handling
// overflow by clamping to infinity or to the format's largest finite value
// per the direction rm rounds in. It returns the rounded big.Float (whose
// Prec already matches the retained precision, so a subsequent Float32()/
// Float64() conversion is itself exact) together with the NX/OF/UF flags.
func roundFinal(exact *big.Float, sign bool, fp formatParams, rm RoundingMode) (*big.Float, Flags) {
	if exact.Sign() == 0 {
		z := new(big.Float).SetPrec(fp.mantissaBits + 1)
		z.SetInt64(0)
		if sign {
			z.Neg(z)
		}
		return z, 0
	}

	e := exact.MantExp(nil) // exact == mant * 2**e, 0.5 <= |mant| < 1
	ieeeExp := e - 1        // exponent if normalized as 1.xxx * 2**ieeeExp

	prec := fp.mantissaBits + 1
	subnormal := false
	if ieeeExp < fp.minExp {
		shift := fp.minExp - ieeeExp
		if uint(shift) >= prec {
			// Rounds to zero or to the smallest subnormal; let a 1-bit
			// round decide which, then re-check below.
			shift = int(prec) - 1
		}
		prec -= uint(shift)
		subnormal = true
	}

	result := new(big.Float).SetPrec(prec).SetMode(bigModeFor(rm))
	acc := result.Set(exact).Acc()

	var flags Flags
	if acc != big.Exact {
		flags |= FlagNX
	}

	// Rounding a value just below a power of two can bump the exponent
	// (0.111..1 -> 1.000). Re-derive the exponent from the rounded result.
	newExp := result.MantExp(nil) - 1
	if result.Sign() == 0 {
		if flags&FlagNX != 0 {
			flags |= FlagUF
		}
		z := new(big.Float).SetPrec(fp.mantissaBits + 1).SetInt64(0)
		if sign {
			z.Neg(z)
		}
		return z, flags
	}

	if newExp > fp.maxExp {
		flags |= FlagOF | FlagNX
		return overflowResult(sign, fp, rm), flags
	}

	if subnormal && newExp >= fp.minExp {
		// Rounding pushed a subnormal back up into the normal range;
		// recompute once more at full precision so the mantissa is
		// correctly packed by the caller's Float32()/Float64() step.
		result = new(big.Float).SetPrec(fp.mantissaBits + 1).SetMode(bigModeFor(rm))
		acc = result.Set(exact).Acc()
		if acc != big.Exact {
			flags |= FlagNX
		}
	} else if subnormal && flags&FlagNX != 0 {
		flags |= FlagUF
	}

	if sign != (result.Sign() < 0) {
		result.Neg(result)
	}
	return result, flags
}

// overflowResult returns the correctly-clamped infinity or max-finite value
// for an overflowing result of the given sign under rounding mode rm.
func overflowResult(sign bool, fp formatParams, rm RoundingMode) *big.Float {
	roundsToInf := rm == RNE || rm == RMM || (rm == RUP && !sign) || (rm == RDN && sign)
	if roundsToInf {
		z := new(big.Float).SetPrec(fp.mantissaBits + 1).SetInf(sign)
		return z
	}
	// Clamp to the largest finite magnitude: (2 - 2**-mantissaBits) * 2**maxExp,
	// built directly from an all-ones (mantissaBits+1)-bit integer mantissa.
	maxMantissa := (uint64(1) << (fp.mantissaBits + 1)) - 1
	m := new(big.Float).SetPrec(fp.mantissaBits + 1).SetUint64(maxMantissa)
	z := new(big.Float).SetPrec(fp.mantissaBits + 1).SetMantExp(m, fp.maxExp-int(fp.mantissaBits))
	if sign {
		z.Neg(z)
	}
	return z
}
