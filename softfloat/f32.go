package softfloat

import (
	"math"
	"math/big"
)

// decomposeF32 extracts sign, unbiased exponent and integer mantissa from a
// single-precision bit pattern. For subnormals the returned exponent is
// f32Params.minExp (the minimum normal exponent) and mantissa holds just the
// fraction bits, so the exact value in both cases equals
// mantissa * 2**(exponent-23).
func decomposeF32(bits uint32) (sign bool, exp int, mantissa uint64, isZero, isInf, isNaN, isSignaling, isSubnormal bool) {
	sign = bits>>31 != 0
	rawExp := int((bits >> 23) & 0xff)
	frac := uint64(bits & 0x7fffff)

	switch {
	case rawExp == 0 && frac == 0:
		isZero = true
	case rawExp == 0:
		isSubnormal = true
		exp = f32Params.minExp
		mantissa = frac
	case rawExp == 0xff && frac == 0:
		isInf = true
	case rawExp == 0xff:
		isNaN = true
		isSignaling = frac&(1<<22) == 0
	default:
		exp = rawExp - 127
		mantissa = frac | (1 << 23)
	}
	return
}

// exactF32 builds an exact big.Float from a finite, nonzero single.
func exactF32(sign bool, exp int, mantissa uint64) *big.Float {
	m := new(big.Float).SetPrec(workingPrec).SetUint64(mantissa)
	z := new(big.Float).SetPrec(workingPrec).SetMantExp(m, exp-23)
	if sign {
		z.Neg(z)
	}
	return z
}

func bitsFromRounded32(r *big.Float) uint32 {
	f, _ := r.Float32()
	return math.Float32bits(f)
}

func infBits32(sign bool) uint32 {
	if sign {
		return 0xff800000
	}
	return 0x7f800000
}

func zeroBits32(sign bool) uint32 {
	if sign {
		return 0x80000000
	}
	return 0
}

// isNaNBits32 reports whether bits encodes any NaN, and whether it is
// signaling.
func isNaNBits32(bits uint32) (nan, signaling bool) {
	rawExp := (bits >> 23) & 0xff
	frac := bits & 0x7fffff
	if rawExp != 0xff || frac == 0 {
		return false, false
	}
	return true, frac&(1<<22) == 0
}

// unaryNaNResult32 handles the common "if either operand is NaN" path for a
// binary operation: sNaN inputs raise NV, and any NaN input yields the
// canonical NaN. ok is false if neither operand is NaN.
func unaryNaNResult32(a, b uint32) (result uint32, flags Flags, ok bool) {
	aNaN, aSig := isNaNBits32(a)
	bNaN, bSig := isNaNBits32(b)
	if !aNaN && !bNaN {
		return 0, 0, false
	}
	if aSig || bSig {
		flags |= FlagNV
	}
	return CanonicalNaN32, flags, true
}

func addSubS(a, b uint32, rm RoundingMode, negateB bool) (uint32, Flags) {
	if res, flags, ok := unaryNaNResult32(a, b); ok {
		return res, flags
	}
	signA, expA, mA, zeroA, infA, _, _, _ := decomposeF32(a)
	signB, expB, mB, zeroB, infB, _, _, _ := decomposeF32(b)
	if negateB {
		signB = !signB
	}

	if infA && infB {
		if signA != signB {
			return CanonicalNaN32, FlagNV
		}
		return infBits32(signA), 0
	}
	if infA {
		return infBits32(signA), 0
	}
	if infB {
		return infBits32(signB), 0
	}
	if zeroA && zeroB {
		if signA == signB {
			return zeroBits32(signA), 0
		}
		// +0 + -0: +0 unless rm is RDN, which gives -0.
		if rm == RDN {
			return zeroBits32(true), 0
		}
		return zeroBits32(false), 0
	}
	if zeroA {
		return b32WithSign(b, signB), 0
	}
	if zeroB {
		return a, 0
	}

	va := exactF32(signA, expA, mA)
	vb := exactF32(signB, expB, mB)
	sum := new(big.Float).SetPrec(workingPrec).Add(va, vb)
	sign := sum.Sign() < 0
	if sum.Sign() == 0 {
		sign = rm == RDN
	}
	rounded, flags := roundFinal(sum, sign, f32Params, rm)
	return bitsFromRounded32(rounded), flags
}

func b32WithSign(bits uint32, sign bool) uint32 {
	if sign {
		return bits | 0x80000000
	}
	return bits &^ 0x80000000
}

// AddS computes a + b.
func AddS(a, b uint32, rm RoundingMode) (uint32, Flags) { return addSubS(a, b, rm, false) }

// SubS computes a - b.
func SubS(a, b uint32, rm RoundingMode) (uint32, Flags) { return addSubS(a, b, rm, true) }

// MulS computes a * b.
func MulS(a, b uint32, rm RoundingMode) (uint32, Flags) {
	if res, flags, ok := unaryNaNResult32(a, b); ok {
		return res, flags
	}
	signA, expA, mA, zeroA, infA, _, _, _ := decomposeF32(a)
	signB, expB, mB, zeroB, infB, _, _, _ := decomposeF32(b)
	sign := signA != signB

	if (infA && zeroB) || (infB && zeroA) {
		return CanonicalNaN32, FlagNV
	}
	if infA || infB {
		return infBits32(sign), 0
	}
	if zeroA || zeroB {
		return zeroBits32(sign), 0
	}

	va := exactF32(signA, expA, mA)
	vb := exactF32(signB, expB, mB)
	prod := new(big.Float).SetPrec(workingPrec).Mul(va, vb)
	rounded, flags := roundFinal(prod, sign, f32Params, rm)
	return bitsFromRounded32(rounded), flags
}

// DivS computes a / b.
func DivS(a, b uint32, rm RoundingMode) (uint32, Flags) {
	if res, flags, ok := unaryNaNResult32(a, b); ok {
		return res, flags
	}
	signA, expA, mA, zeroA, infA, _, _, _ := decomposeF32(a)
	signB, expB, mB, zeroB, infB, _, _, _ := decomposeF32(b)
	sign := signA != signB

	if infA && infB {
		return CanonicalNaN32, FlagNV
	}
	if zeroA && zeroB {
		return CanonicalNaN32, FlagNV
	}
	if infA {
		return infBits32(sign), 0
	}
	if infB {
		return zeroBits32(sign), 0
	}
	if zeroB {
		return infBits32(sign), FlagDZ
	}
	if zeroA {
		return zeroBits32(sign), 0
	}

	va := exactF32(signA, expA, mA)
	vb := exactF32(signB, expB, mB)
	quo := new(big.Float).SetPrec(workingPrec).Quo(va, vb)
	rounded, flags := roundFinal(quo, sign, f32Params, rm)
	return bitsFromRounded32(rounded), flags
}

// SqrtS computes the square root of a.
func SqrtS(a uint32, rm RoundingMode) (uint32, Flags) {
	if nan, sig := isNaNBits32(a); nan {
		if sig {
			return CanonicalNaN32, FlagNV
		}
		return CanonicalNaN32, 0
	}
	sign, exp, m, isZero, isInf, _, _, _ := decomposeF32(a)
	if isZero {
		return a, 0
	}
	if sign {
		return CanonicalNaN32, FlagNV
	}
	if isInf {
		return infBits32(false), 0
	}

	v := exactF32(sign, exp, m)
	root := new(big.Float).SetPrec(workingPrec).Sqrt(v)
	rounded, flags := roundFinal(root, false, f32Params, rm)
	return bitsFromRounded32(rounded), flags
}

// FmaS computes (a*b)+c with a single rounding.
func FmaS(a, b, c uint32, rm RoundingMode) (uint32, Flags) {
	if res, flags, ok := unaryNaNResult32(a, b); ok {
		if cNaN, cSig := isNaNBits32(c); cNaN && cSig {
			flags |= FlagNV
		}
		return res, flags
	}
	if nan, sig := isNaNBits32(c); nan {
		if sig {
			return CanonicalNaN32, FlagNV
		}
		return CanonicalNaN32, 0
	}

	signA, expA, mA, zeroA, infA, _, _, _ := decomposeF32(a)
	signB, expB, mB, zeroB, infB, _, _, _ := decomposeF32(b)
	prodSign := signA != signB

	if (infA && zeroB) || (infB && zeroA) {
		return CanonicalNaN32, FlagNV
	}

	signC, expC, mC, zeroC, infC, _, _, _ := decomposeF32(c)

	if infA || infB {
		if infC && prodSign != signC {
			return CanonicalNaN32, FlagNV
		}
		return infBits32(prodSign), 0
	}
	if infC {
		return infBits32(signC), 0
	}

	var product *big.Float
	if zeroA || zeroB {
		product = new(big.Float).SetPrec(workingPrec).SetInt64(0)
		if prodSign {
			product.Neg(product)
		}
	} else {
		va := exactF32(signA, expA, mA)
		vb := exactF32(signB, expB, mB)
		product = new(big.Float).SetPrec(workingPrec).Mul(va, vb)
	}

	if zeroC && product.Sign() == 0 {
		if prodSign == signC {
			return zeroBits32(prodSign), 0
		}
		if rm == RDN {
			return zeroBits32(true), 0
		}
		return zeroBits32(false), 0
	}

	vc := exactF32(signC, expC, mC)
	sum := new(big.Float).SetPrec(workingPrec).Add(product, vc)
	sign := sum.Sign() < 0
	if sum.Sign() == 0 {
		sign = rm == RDN
	}
	rounded, flags := roundFinal(sum, sign, f32Params, rm)
	return bitsFromRounded32(rounded), flags
}

// MinS implements IEEE-754 minNum with the RISC-V sNaN exception: NaNs are
// absorbed (the other operand wins), but a signaling NaN operand still
// raises NV even though it never appears in the result.
func MinS(a, b uint32) (uint32, Flags) { return minMaxS(a, b, true) }

// MaxS implements IEEE-754 maxNum with the same sNaN-raises-NV exception.
func MaxS(a, b uint32) (uint32, Flags) { return minMaxS(a, b, false) }

func minMaxS(a, b uint32, wantMin bool) (uint32, Flags) {
	aNaN, aSig := isNaNBits32(a)
	bNaN, bSig := isNaNBits32(b)
	var flags Flags
	if aSig || bSig {
		flags |= FlagNV
	}
	if aNaN && bNaN {
		return CanonicalNaN32, flags
	}
	if aNaN {
		return b, flags
	}
	if bNaN {
		return a, flags
	}

	af := math.Float32frombits(a)
	bf := math.Float32frombits(b)
	if af == 0 && bf == 0 {
		// -0 < +0 by sign bit, magnitudes are equal.
		aNeg := a&0x80000000 != 0
		bNeg := b&0x80000000 != 0
		if wantMin {
			if aNeg || bNeg {
				return zeroBits32(true), flags
			}
			return zeroBits32(false), flags
		}
		if aNeg && bNeg {
			return zeroBits32(true), flags
		}
		return zeroBits32(false), flags
	}
	if wantMin == (af < bf) {
		return a, flags
	}
	if af == bf {
		return a, flags
	}
	return b, flags
}

// FeqS computes a == b. Unlike flt/fle, a quiet NaN operand does not raise
// NV; only a signaling NaN does.
func FeqS(a, b uint32) (bool, Flags) {
	aNaN, aSig := isNaNBits32(a)
	bNaN, bSig := isNaNBits32(b)
	var flags Flags
	if aSig || bSig {
		flags |= FlagNV
	}
	if aNaN || bNaN {
		return false, flags
	}
	return math.Float32frombits(a) == math.Float32frombits(b), flags
}

// FltS computes a < b. Any NaN operand, quiet or signaling, raises NV.
func FltS(a, b uint32) (bool, Flags) {
	aNaN, _ := isNaNBits32(a)
	bNaN, _ := isNaNBits32(b)
	if aNaN || bNaN {
		return false, FlagNV
	}
	return math.Float32frombits(a) < math.Float32frombits(b), 0
}

// FleS computes a <= b. Any NaN operand raises NV.
func FleS(a, b uint32) (bool, Flags) {
	aNaN, _ := isNaNBits32(a)
	bNaN, _ := isNaNBits32(b)
	if aNaN || bNaN {
		return false, FlagNV
	}
	return math.Float32frombits(a) <= math.Float32frombits(b), 0
}

// ClassifyS returns the 10-bit fclass.s mask for a.
func ClassifyS(a uint32) uint16 {
	sign, _, _, isZero, isInf, isNaN, isSignaling, isSubnormal := decomposeF32(a)
	switch {
	case isNaN && isSignaling:
		return ClassSignalingNaN
	case isNaN:
		return ClassQuietNaN
	case isInf && sign:
		return ClassNegInfinity
	case isInf:
		return ClassPosInfinity
	case isZero && sign:
		return ClassNegZero
	case isZero:
		return ClassPosZero
	case isSubnormal && sign:
		return ClassNegSubnormal
	case isSubnormal:
		return ClassPosSubnormal
	case sign:
		return ClassNegNormal
	default:
		return ClassPosNormal
	}
}

// SgnjS, SgnjnS and SgnjxS implement the three sign-injection forms. None
// raises any flag, even for NaN operands (§4.B).
func SgnjS(a, b uint32) uint32  { return (a &^ 0x80000000) | (b & 0x80000000) }
func SgnjnS(a, b uint32) uint32 { return (a &^ 0x80000000) | (^b & 0x80000000) }
func SgnjxS(a, b uint32) uint32 { return a ^ (b & 0x80000000) }
