package decode

// Decode decodes one instruction starting at the given little-endian
// halfword. If low is the low halfword of a full 32-bit encoding (its low
// two bits are 0b11), hi must supply the high halfword and the result has
// Size 4; otherwise hi is ignored and the result is a compressed
// instruction with Size 2.
//
// This mirrors §4.C's "two-level match": the caller (package sim) only
// needs to know how many bytes to fetch, which IsCompressed answers from
// the first halfword alone.
func Decode(low, hi uint16) Op {
	if !IsCompressed(low) {
		word := uint32(low) | uint32(hi)<<16
		return Decode32(word)
	}
	return DecodeCompressed(low)
}
