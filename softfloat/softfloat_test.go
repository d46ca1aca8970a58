package softfloat

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func f32(f float32) uint32  { return math.Float32bits(f) }
func f64(f float64) uint64  { return math.Float64bits(f) }
func toF32(b uint32) float32 { return math.Float32frombits(b) }
func toF64(b uint64) float64 { return math.Float64frombits(b) }

func TestAddSBasic(t *testing.T) {
	got, flags := AddS(f32(1.0), f32(2.0), RNE)
	assert.Equal(t, float32(3.0), toF32(got))
	assert.Equal(t, Flags(0), flags)
}

func TestDivSByZeroRaisesDZ(t *testing.T) {
	got, flags := DivS(f32(1.0), f32(0.0), RNE)
	assert.Equal(t, float32(math.Inf(1)), toF32(got))
	assert.Equal(t, FlagDZ, flags, "1.0/0.0 must set exactly DZ")
}

func TestDivSZeroByZeroIsInvalid(t *testing.T) {
	got, flags := DivS(f32(0.0), f32(0.0), RNE)
	assert.Equal(t, CanonicalNaN32, got)
	assert.Equal(t, FlagNV, flags)
}

func TestAddSQuietNaNDoesNotRaiseNV(t *testing.T) {
	qnan := uint32(0x7fc00000)
	one := f32(1.0)
	got, flags := AddS(qnan, one, RNE)
	assert.Equal(t, CanonicalNaN32, got)
	assert.Equal(t, Flags(0), flags, "a quiet NaN operand alone must not raise NV")
}

func TestAddSSignalingNaNRaisesNV(t *testing.T) {
	snan := uint32(0x7fa00000) // exponent all-ones, quiet bit clear, nonzero frac
	one := f32(1.0)
	got, flags := AddS(snan, one, RNE)
	assert.Equal(t, CanonicalNaN32, got)
	assert.Equal(t, FlagNV, flags)
}

func TestSqrtSNegativeIsInvalid(t *testing.T) {
	got, flags := SqrtS(f32(-4.0), RNE)
	assert.Equal(t, CanonicalNaN32, got)
	assert.Equal(t, FlagNV, flags)
}

func TestSqrtSExact(t *testing.T) {
	got, flags := SqrtS(f32(4.0), RNE)
	assert.Equal(t, float32(2.0), toF32(got))
	assert.Equal(t, Flags(0), flags)
}

func TestFmaSSingleRounding(t *testing.T) {
	// 1.0 * 3.0 + 4.0 == 7.0 exactly; flags must be clear.
	got, flags := FmaS(f32(1.0), f32(3.0), f32(4.0), RNE)
	assert.Equal(t, float32(7.0), toF32(got))
	assert.Equal(t, Flags(0), flags)
}

func TestMinMaxSAbsorbsNaN(t *testing.T) {
	qnan := uint32(0x7fc00000)
	one := f32(1.0)
	got, flags := MinS(qnan, one)
	assert.Equal(t, one, got)
	assert.Equal(t, Flags(0), flags)

	got, flags = MaxS(one, qnan)
	assert.Equal(t, one, got)
	assert.Equal(t, Flags(0), flags)
}

func TestMinMaxSSignalingNaNRaisesNVButIsAbsorbed(t *testing.T) {
	snan := uint32(0x7fa00000)
	one := f32(1.0)
	got, flags := MinS(snan, one)
	assert.Equal(t, one, got)
	assert.Equal(t, FlagNV, flags)
}

func TestMinSOrdersSignedZero(t *testing.T) {
	negZero := zeroBits32(true)
	posZero := zeroBits32(false)
	got, _ := MinS(negZero, posZero)
	assert.Equal(t, negZero, got)
	got, _ = MaxS(negZero, posZero)
	assert.Equal(t, posZero, got)
}

func TestFeqDoesNotRaiseNVOnQuietNaN(t *testing.T) {
	qnan := uint32(0x7fc00000)
	eq, flags := FeqS(qnan, qnan)
	assert.False(t, eq)
	assert.Equal(t, Flags(0), flags)
}

func TestFltRaisesNVOnQuietNaN(t *testing.T) {
	qnan := uint32(0x7fc00000)
	lt, flags := FltS(qnan, f32(1.0))
	assert.False(t, lt)
	assert.Equal(t, FlagNV, flags)
}

func TestClassifyS(t *testing.T) {
	assert.Equal(t, ClassPosInfinity, ClassifyS(f32(float32(math.Inf(1)))))
	assert.Equal(t, ClassNegInfinity, ClassifyS(f32(float32(math.Inf(-1)))))
	assert.Equal(t, ClassPosZero, ClassifyS(zeroBits32(false)))
	assert.Equal(t, ClassNegZero, ClassifyS(zeroBits32(true)))
	assert.Equal(t, ClassPosNormal, ClassifyS(f32(1.0)))
	assert.Equal(t, ClassPosSubnormal, ClassifyS(0x00000001))
	assert.Equal(t, ClassQuietNaN, ClassifyS(0x7fc00000))
	assert.Equal(t, ClassSignalingNaN, ClassifyS(0x7fa00000))
}

func TestSignInjectionRaisesNoFlags(t *testing.T) {
	a := f32(1.0)
	b := f32(-2.0)
	assert.Equal(t, f32(-1.0), SgnjS(a, b))
	assert.Equal(t, f32(1.0), SgnjnS(a, b))
	assert.Equal(t, f32(-1.0), SgnjxS(a, b))
}

func TestRoundTripS2D2S(t *testing.T) {
	values := []float32{0, 1, -1, 0.5, 3.14159, 1e30, 1e-30, float32(math.MaxFloat32)}
	for _, v := range values {
		d, flags := CvtSToD(f32(v))
		require.Equal(t, Flags(0), flags, "widening must never set flags for a finite input")
		back, flags2 := CvtDToS(d, RNE)
		assert.Equal(t, Flags(0), flags2)
		assert.Equal(t, v, toF32(back), "f64_to_f32(f32_to_f64(x)) must round-trip exactly for %v", v)
	}
}

func TestCvtSToI32Saturates(t *testing.T) {
	v, flags := CvtSToI32(f32(1e30), RNE)
	assert.Equal(t, int32(0x7fffffff), v)
	assert.Equal(t, FlagNV, flags)

	v, flags = CvtSToI32(f32(float32(math.Inf(-1))), RNE)
	assert.Equal(t, int32(-0x80000000), v)
	assert.Equal(t, FlagNV, flags)
}

func TestCvtSToU32NegativeIsInvalid(t *testing.T) {
	v, flags := CvtSToU32(f32(-1.0), RNE)
	assert.Equal(t, uint32(0), v)
	assert.Equal(t, FlagNV, flags)
}

func TestCvtI32ToSAndBack(t *testing.T) {
	bits, flags := CvtI32ToS(42, RNE)
	assert.Equal(t, float32(42.0), toF32(bits))
	assert.Equal(t, Flags(0), flags)

	back, flags := CvtSToI32(bits, RNE)
	assert.Equal(t, int32(42), back)
	assert.Equal(t, Flags(0), flags)
}

func TestSubnormalNotFlushedToZero(t *testing.T) {
	smallest := uint32(1) // smallest positive subnormal single
	got, flags := AddS(smallest, zeroBits32(false), RNE)
	assert.Equal(t, smallest, got, "subnormal operands are not flushed to zero")
	assert.Equal(t, Flags(0), flags)
}

func TestOverflowRoundsToInfinityUnderRNE(t *testing.T) {
	maxFinite := f32(math.MaxFloat32)
	got, flags := AddS(maxFinite, maxFinite, RNE)
	assert.True(t, math.IsInf(float64(toF32(got)), 1))
	assert.Equal(t, FlagOF|FlagNX, flags)
}

func TestOverflowClampsToMaxFiniteUnderRTZ(t *testing.T) {
	maxFinite := f32(math.MaxFloat32)
	got, flags := AddS(maxFinite, maxFinite, RTZ)
	assert.False(t, math.IsInf(float64(toF32(got)), 0))
	assert.Equal(t, float32(math.MaxFloat32), toF32(got))
	assert.Equal(t, FlagOF|FlagNX, flags)
}

func TestDoublePrecisionBasic(t *testing.T) {
	got, flags := AddD(f64(1.0), f64(2.0), RNE)
	assert.Equal(t, 3.0, toF64(got))
	assert.Equal(t, Flags(0), flags)

	got, flags = DivD(f64(1.0), f64(0.0), RNE)
	assert.True(t, math.IsInf(toF64(got), 1))
	assert.Equal(t, FlagDZ, flags)
}
