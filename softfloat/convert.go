package softfloat

import "math/big"

// CvtSToD widens a single to a double. Widening never rounds except for an
// input sNaN, which still raises NV on the way to becoming the canonical
// double NaN.
func CvtSToD(a uint32) (uint64, Flags) {
	sign, exp, m, isZero, isInf, isNaN, isSignaling, _ := decomposeF32(a)
	if isNaN {
		if isSignaling {
			return CanonicalNaN64, FlagNV
		}
		return CanonicalNaN64, 0
	}
	if isZero {
		return zeroBits64(sign), 0
	}
	if isInf {
		return infBits64(sign), 0
	}
	v := exactF32(sign, exp, m)
	rounded, flags := roundFinal(v, sign, f64Params, RNE)
	return bitsFromRounded64(rounded), flags
}

// CvtDToS narrows a double to a single, rounding under rm.
func CvtDToS(a uint64, rm RoundingMode) (uint32, Flags) {
	sign, exp, m, isZero, isInf, isNaN, isSignaling, _ := decomposeF64(a)
	if isNaN {
		if isSignaling {
			return CanonicalNaN32, FlagNV
		}
		return CanonicalNaN32, 0
	}
	if isZero {
		return zeroBits32(sign), 0
	}
	if isInf {
		return infBits32(sign), 0
	}
	v := exactF64(sign, exp, m)
	rounded, flags := roundFinal(v, sign, f32Params, rm)
	return bitsFromRounded32(rounded), flags
}

// intConversionLimits describes the representable integer range used to
// saturate out-of-range float-to-int conversions per §4.B.
type intConversionLimits struct {
	signed bool
	bits   uint
}

func (l intConversionLimits) maxValue() *big.Float {
	var max uint64
	if l.signed {
		max = 1<<(l.bits-1) - 1
	} else {
		if l.bits == 64 {
			max = ^uint64(0)
		} else {
			max = 1<<l.bits - 1
		}
	}
	return new(big.Float).SetPrec(workingPrec).SetUint64(max)
}

func (l intConversionLimits) minValue() *big.Float {
	if !l.signed {
		return new(big.Float).SetPrec(workingPrec).SetInt64(0)
	}
	z := new(big.Float).SetPrec(workingPrec).SetUint64(1 << (l.bits - 1))
	return z.Neg(z)
}

// floatToInt rounds exact (built from a finite float operand) to the
// nearest integer under rm, then saturates and reports NV if it falls
// outside [min, max].
func floatToInt(exact *big.Float, rm RoundingMode, limits intConversionLimits) (int64, uint64, Flags) {
	// Adding ±2**k (|exact| < 2**k, k >= 1) makes the units bit the last bit
	// of a (k+1)-bit float, so one rounding under rm lands on an integer;
	// the offset is even and shares exact's sign, so every mode still agrees.
	k := exact.MantExp(nil)
	if k < 1 {
		k = 1
	}
	off := new(big.Float).SetPrec(workingPrec).SetMantExp(big.NewFloat(1), k)
	if exact.Sign() < 0 {
		off.Neg(off)
	}
	r := new(big.Float).SetPrec(uint(k) + 1).SetMode(bigModeFor(rm))
	acc := r.Set(new(big.Float).SetPrec(workingPrec).Add(exact, off)).Acc()
	r.SetPrec(workingPrec).Sub(r, off)
	var flags Flags
	if acc != big.Exact {
		flags |= FlagNX
	}

	if r.Cmp(limits.maxValue()) > 0 {
		flags |= FlagNV
		flags &^= FlagNX
		if limits.signed {
			return 1<<(limits.bits-1) - 1, 0, flags
		}
		max, _ := limits.maxValue().Uint64()
		return 0, max, flags
	}
	if r.Cmp(limits.minValue()) < 0 {
		flags |= FlagNV
		flags &^= FlagNX
		if limits.signed {
			return -(1 << (limits.bits - 1)), 0, flags
		}
		return 0, 0, flags
	}

	if limits.signed {
		v, _ := r.Int64()
		return v, 0, flags
	}
	v, _ := r.Uint64()
	return 0, v, flags
}

func nanOrInfToInt(sign, isInf bool, limits intConversionLimits) (int64, uint64) {
	// Both the NaN and out-of-range-infinity cases saturate to the
	// boundary in the direction the (missing) sign implies; NaN behaves
	// as if it carried a positive sign (§4.B).
	if !isInf {
		sign = false
	}
	if limits.signed {
		if sign {
			return -(1 << (limits.bits - 1)), 0
		}
		return 1<<(limits.bits-1) - 1, 0
	}
	if sign {
		return 0, 0
	}
	if limits.bits == 64 {
		return 0, ^uint64(0)
	}
	return 0, 1<<limits.bits - 1
}

func cvtFloatToIntS(a uint32, rm RoundingMode, limits intConversionLimits) (int64, uint64, Flags) {
	sign, exp, m, isZero, isInf, isNaN, _, _ := decomposeF32(a)
	if isNaN {
		i, u := nanOrInfToInt(false, false, limits)
		return i, u, FlagNV
	}
	if isZero {
		return 0, 0, 0
	}
	if isInf {
		i, u := nanOrInfToInt(sign, true, limits)
		return i, u, FlagNV
	}
	return floatToInt(exactF32(sign, exp, m), rm, limits)
}

func cvtFloatToIntD(a uint64, rm RoundingMode, limits intConversionLimits) (int64, uint64, Flags) {
	sign, exp, m, isZero, isInf, isNaN, _, _ := decomposeF64(a)
	if isNaN {
		i, u := nanOrInfToInt(false, false, limits)
		return i, u, FlagNV
	}
	if isZero {
		return 0, 0, 0
	}
	if isInf {
		i, u := nanOrInfToInt(sign, true, limits)
		return i, u, FlagNV
	}
	return floatToInt(exactF64(sign, exp, m), rm, limits)
}

// CvtSToI32 / CvtSToU32 convert a single to a 32-bit signed/unsigned
// integer, rounding under rm and saturating with NV on overflow.
func CvtSToI32(a uint32, rm RoundingMode) (int32, Flags) {
	i, _, f := cvtFloatToIntS(a, rm, intConversionLimits{signed: true, bits: 32})
	return int32(i), f
}

func CvtSToU32(a uint32, rm RoundingMode) (uint32, Flags) {
	_, u, f := cvtFloatToIntS(a, rm, intConversionLimits{signed: false, bits: 32})
	return uint32(u), f
}

// CvtDToI32 / CvtDToU32 convert a double to a 32-bit signed/unsigned
// integer.
func CvtDToI32(a uint64, rm RoundingMode) (int32, Flags) {
	i, _, f := cvtFloatToIntD(a, rm, intConversionLimits{signed: true, bits: 32})
	return int32(i), f
}

func CvtDToU32(a uint64, rm RoundingMode) (uint32, Flags) {
	_, u, f := cvtFloatToIntD(a, rm, intConversionLimits{signed: false, bits: 32})
	return uint32(u), f
}

// CvtI32ToS / CvtU32ToS convert an integer to a single, rounding under rm
// when the 32-bit value needs more than 24 significant bits.
func CvtI32ToS(v int32, rm RoundingMode) (uint32, Flags) {
	if v == 0 {
		return 0, 0
	}
	sign := v < 0
	mag := uint64(v)
	if sign {
		mag = uint64(-int64(v))
	}
	exact := new(big.Float).SetPrec(workingPrec).SetUint64(mag)
	if sign {
		exact.Neg(exact)
	}
	rounded, flags := roundFinal(exact, sign, f32Params, rm)
	return bitsFromRounded32(rounded), flags
}

func CvtU32ToS(v uint32, rm RoundingMode) (uint32, Flags) {
	if v == 0 {
		return 0, 0
	}
	exact := new(big.Float).SetPrec(workingPrec).SetUint64(uint64(v))
	rounded, flags := roundFinal(exact, false, f32Params, rm)
	return bitsFromRounded32(rounded), flags
}

// CvtI32ToD / CvtU32ToD convert an integer to a double. A 32-bit integer
// always fits exactly in 53 mantissa bits, so these never round.
func CvtI32ToD(v int32) uint64 {
	if v == 0 {
		return 0
	}
	sign := v < 0
	mag := uint64(v)
	if sign {
		mag = uint64(-int64(v))
	}
	exact := new(big.Float).SetPrec(workingPrec).SetUint64(mag)
	if sign {
		exact.Neg(exact)
	}
	rounded, _ := roundFinal(exact, sign, f64Params, RNE)
	return bitsFromRounded64(rounded)
}

func CvtU32ToD(v uint32) uint64 {
	if v == 0 {
		return 0
	}
	exact := new(big.Float).SetPrec(workingPrec).SetUint64(uint64(v))
	rounded, _ := roundFinal(exact, false, f64Params, RNE)
	return bitsFromRounded64(rounded)
}
