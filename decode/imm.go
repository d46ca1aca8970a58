package decode

// signExtend treats the low n bits of v as a two's-complement integer and
// sign-extends it to 32 bits.
func signExtend(v uint32, n uint) int32 {
	shift := 32 - n
	return int32(v<<shift) >> shift
}

func immI(w uint32) int32 {
	return signExtend(w>>20, 12)
}

func immS(w uint32) int32 {
	v := ((w >> 25) << 5) | ((w >> 7) & 0x1f)
	return signExtend(v, 12)
}

func immB(w uint32) int32 {
	v := ((w >> 31 & 1) << 12) | ((w >> 7 & 1) << 11) | ((w >> 25 & 0x3f) << 5) | ((w >> 8 & 0xf) << 1)
	return signExtend(v, 13)
}

func immU(w uint32) int32 {
	return int32(w & 0xfffff000)
}

func immJ(w uint32) int32 {
	v := ((w >> 31 & 1) << 20) | ((w >> 12 & 0xff) << 12) | ((w >> 20 & 1) << 11) | ((w >> 21 & 0x3ff) << 1)
	return signExtend(v, 21)
}
