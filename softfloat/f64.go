package softfloat

import (
	"math"
	"math/big"
)

func decomposeF64(bits uint64) (sign bool, exp int, mantissa uint64, isZero, isInf, isNaN, isSignaling, isSubnormal bool) {
	sign = bits>>63 != 0
	rawExp := int((bits >> 52) & 0x7ff)
	frac := bits & 0xfffffffffffff

	switch {
	case rawExp == 0 && frac == 0:
		isZero = true
	case rawExp == 0:
		isSubnormal = true
		exp = f64Params.minExp
		mantissa = frac
	case rawExp == 0x7ff && frac == 0:
		isInf = true
	case rawExp == 0x7ff:
		isNaN = true
		isSignaling = frac&(1<<51) == 0
	default:
		exp = rawExp - 1023
		mantissa = frac | (1 << 52)
	}
	return
}

func exactF64(sign bool, exp int, mantissa uint64) *big.Float {
	m := new(big.Float).SetPrec(workingPrec).SetUint64(mantissa)
	z := new(big.Float).SetPrec(workingPrec).SetMantExp(m, exp-52)
	if sign {
		z.Neg(z)
	}
	return z
}

func bitsFromRounded64(r *big.Float) uint64 {
	f, _ := r.Float64()
	return math.Float64bits(f)
}

func infBits64(sign bool) uint64 {
	if sign {
		return 0xfff0000000000000
	}
	return 0x7ff0000000000000
}

func zeroBits64(sign bool) uint64 {
	if sign {
		return 0x8000000000000000
	}
	return 0
}

func isNaNBits64(bits uint64) (nan, signaling bool) {
	rawExp := (bits >> 52) & 0x7ff
	frac := bits & 0xfffffffffffff
	if rawExp != 0x7ff || frac == 0 {
		return false, false
	}
	return true, frac&(1<<51) == 0
}

func unaryNaNResult64(a, b uint64) (result uint64, flags Flags, ok bool) {
	aNaN, aSig := isNaNBits64(a)
	bNaN, bSig := isNaNBits64(b)
	if !aNaN && !bNaN {
		return 0, 0, false
	}
	if aSig || bSig {
		flags |= FlagNV
	}
	return CanonicalNaN64, flags, true
}

func b64WithSign(bits uint64, sign bool) uint64 {
	if sign {
		return bits | 0x8000000000000000
	}
	return bits &^ 0x8000000000000000
}

func addSubD(a, b uint64, rm RoundingMode, negateB bool) (uint64, Flags) {
	if res, flags, ok := unaryNaNResult64(a, b); ok {
		return res, flags
	}
	signA, expA, mA, zeroA, infA, _, _, _ := decomposeF64(a)
	signB, expB, mB, zeroB, infB, _, _, _ := decomposeF64(b)
	if negateB {
		signB = !signB
	}

	if infA && infB {
		if signA != signB {
			return CanonicalNaN64, FlagNV
		}
		return infBits64(signA), 0
	}
	if infA {
		return infBits64(signA), 0
	}
	if infB {
		return infBits64(signB), 0
	}
	if zeroA && zeroB {
		if signA == signB {
			return zeroBits64(signA), 0
		}
		if rm == RDN {
			return zeroBits64(true), 0
		}
		return zeroBits64(false), 0
	}
	if zeroA {
		return b64WithSign(b, signB), 0
	}
	if zeroB {
		return a, 0
	}

	va := exactF64(signA, expA, mA)
	vb := exactF64(signB, expB, mB)
	sum := new(big.Float).SetPrec(workingPrec).Add(va, vb)
	sign := sum.Sign() < 0
	if sum.Sign() == 0 {
		sign = rm == RDN
	}
	rounded, flags := roundFinal(sum, sign, f64Params, rm)
	return bitsFromRounded64(rounded), flags
}

// AddD computes a + b.
func AddD(a, b uint64, rm RoundingMode) (uint64, Flags) { return addSubD(a, b, rm, false) }

// SubD computes a - b.
func SubD(a, b uint64, rm RoundingMode) (uint64, Flags) { return addSubD(a, b, rm, true) }

// MulD computes a * b.
func MulD(a, b uint64, rm RoundingMode) (uint64, Flags) {
	if res, flags, ok := unaryNaNResult64(a, b); ok {
		return res, flags
	}
	signA, expA, mA, zeroA, infA, _, _, _ := decomposeF64(a)
	signB, expB, mB, zeroB, infB, _, _, _ := decomposeF64(b)
	sign := signA != signB

	if (infA && zeroB) || (infB && zeroA) {
		return CanonicalNaN64, FlagNV
	}
	if infA || infB {
		return infBits64(sign), 0
	}
	if zeroA || zeroB {
		return zeroBits64(sign), 0
	}

	va := exactF64(signA, expA, mA)
	vb := exactF64(signB, expB, mB)
	prod := new(big.Float).SetPrec(workingPrec).Mul(va, vb)
	rounded, flags := roundFinal(prod, sign, f64Params, rm)
	return bitsFromRounded64(rounded), flags
}

// DivD computes a / b.
func DivD(a, b uint64, rm RoundingMode) (uint64, Flags) {
	if res, flags, ok := unaryNaNResult64(a, b); ok {
		return res, flags
	}
	signA, expA, mA, zeroA, infA, _, _, _ := decomposeF64(a)
	signB, expB, mB, zeroB, infB, _, _, _ := decomposeF64(b)
	sign := signA != signB

	if infA && infB {
		return CanonicalNaN64, FlagNV
	}
	if zeroA && zeroB {
		return CanonicalNaN64, FlagNV
	}
	if infA {
		return infBits64(sign), 0
	}
	if infB {
		return zeroBits64(sign), 0
	}
	if zeroB {
		return infBits64(sign), FlagDZ
	}
	if zeroA {
		return zeroBits64(sign), 0
	}

	va := exactF64(signA, expA, mA)
	vb := exactF64(signB, expB, mB)
	quo := new(big.Float).SetPrec(workingPrec).Quo(va, vb)
	rounded, flags := roundFinal(quo, sign, f64Params, rm)
	return bitsFromRounded64(rounded), flags
}

// SqrtD computes the square root of a.
func SqrtD(a uint64, rm RoundingMode) (uint64, Flags) {
	if nan, sig := isNaNBits64(a); nan {
		if sig {
			return CanonicalNaN64, FlagNV
		}
		return CanonicalNaN64, 0
	}
	sign, exp, m, isZero, isInf, _, _, _ := decomposeF64(a)
	if isZero {
		return a, 0
	}
	if sign {
		return CanonicalNaN64, FlagNV
	}
	if isInf {
		return infBits64(false), 0
	}

	v := exactF64(sign, exp, m)
	root := new(big.Float).SetPrec(workingPrec).Sqrt(v)
	rounded, flags := roundFinal(root, false, f64Params, rm)
	return bitsFromRounded64(rounded), flags
}

// FmaD computes (a*b)+c with a single rounding.
func FmaD(a, b, c uint64, rm RoundingMode) (uint64, Flags) {
	if res, flags, ok := unaryNaNResult64(a, b); ok {
		if cNaN, cSig := isNaNBits64(c); cNaN && cSig {
			flags |= FlagNV
		}
		return res, flags
	}
	if nan, sig := isNaNBits64(c); nan {
		if sig {
			return CanonicalNaN64, FlagNV
		}
		return CanonicalNaN64, 0
	}

	signA, expA, mA, zeroA, infA, _, _, _ := decomposeF64(a)
	signB, expB, mB, zeroB, infB, _, _, _ := decomposeF64(b)
	prodSign := signA != signB

	if (infA && zeroB) || (infB && zeroA) {
		return CanonicalNaN64, FlagNV
	}

	signC, expC, mC, zeroC, infC, _, _, _ := decomposeF64(c)

	if infA || infB {
		if infC && prodSign != signC {
			return CanonicalNaN64, FlagNV
		}
		return infBits64(prodSign), 0
	}
	if infC {
		return infBits64(signC), 0
	}

	var product *big.Float
	if zeroA || zeroB {
		product = new(big.Float).SetPrec(workingPrec).SetInt64(0)
		if prodSign {
			product.Neg(product)
		}
	} else {
		va := exactF64(signA, expA, mA)
		vb := exactF64(signB, expB, mB)
		product = new(big.Float).SetPrec(workingPrec).Mul(va, vb)
	}

	if zeroC && product.Sign() == 0 {
		if prodSign == signC {
			return zeroBits64(prodSign), 0
		}
		if rm == RDN {
			return zeroBits64(true), 0
		}
		return zeroBits64(false), 0
	}

	vc := exactF64(signC, expC, mC)
	sum := new(big.Float).SetPrec(workingPrec).Add(product, vc)
	sign := sum.Sign() < 0
	if sum.Sign() == 0 {
		sign = rm == RDN
	}
	rounded, flags := roundFinal(sum, sign, f64Params, rm)
	return bitsFromRounded64(rounded), flags
}

// MinD and MaxD implement IEEE-754 minNum/maxNum with the RISC-V sNaN
// exception, mirroring MinS/MaxS.
func MinD(a, b uint64) (uint64, Flags) { return minMaxD(a, b, true) }
func MaxD(a, b uint64) (uint64, Flags) { return minMaxD(a, b, false) }

func minMaxD(a, b uint64, wantMin bool) (uint64, Flags) {
	aNaN, aSig := isNaNBits64(a)
	bNaN, bSig := isNaNBits64(b)
	var flags Flags
	if aSig || bSig {
		flags |= FlagNV
	}
	if aNaN && bNaN {
		return CanonicalNaN64, flags
	}
	if aNaN {
		return b, flags
	}
	if bNaN {
		return a, flags
	}

	af := math.Float64frombits(a)
	bf := math.Float64frombits(b)
	if af == 0 && bf == 0 {
		aNeg := a&0x8000000000000000 != 0
		bNeg := b&0x8000000000000000 != 0
		if wantMin {
			if aNeg || bNeg {
				return zeroBits64(true), flags
			}
			return zeroBits64(false), flags
		}
		if aNeg && bNeg {
			return zeroBits64(true), flags
		}
		return zeroBits64(false), flags
	}
	if wantMin == (af < bf) {
		return a, flags
	}
	if af == bf {
		return a, flags
	}
	return b, flags
}

// FeqD, FltD, FleD mirror the S-format comparisons.
func FeqD(a, b uint64) (bool, Flags) {
	aNaN, aSig := isNaNBits64(a)
	bNaN, bSig := isNaNBits64(b)
	var flags Flags
	if aSig || bSig {
		flags |= FlagNV
	}
	if aNaN || bNaN {
		return false, flags
	}
	return math.Float64frombits(a) == math.Float64frombits(b), flags
}

func FltD(a, b uint64) (bool, Flags) {
	aNaN, _ := isNaNBits64(a)
	bNaN, _ := isNaNBits64(b)
	if aNaN || bNaN {
		return false, FlagNV
	}
	return math.Float64frombits(a) < math.Float64frombits(b), 0
}

func FleD(a, b uint64) (bool, Flags) {
	aNaN, _ := isNaNBits64(a)
	bNaN, _ := isNaNBits64(b)
	if aNaN || bNaN {
		return false, FlagNV
	}
	return math.Float64frombits(a) <= math.Float64frombits(b), 0
}

// ClassifyD returns the 10-bit fclass.d mask for a.
func ClassifyD(a uint64) uint16 {
	sign, _, _, isZero, isInf, isNaN, isSignaling, isSubnormal := decomposeF64(a)
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

// SgnjD, SgnjnD and SgnjxD implement the double-precision sign-injection
// forms used by fsgnj.d, fsgnjn.d and fsgnjx.d.
func SgnjD(a, b uint64) uint64  { return (a &^ 0x8000000000000000) | (b & 0x8000000000000000) }
func SgnjnD(a, b uint64) uint64 { return (a &^ 0x8000000000000000) | (^b & 0x8000000000000000) }
func SgnjxD(a, b uint64) uint64 { return a ^ (b & 0x8000000000000000) }
