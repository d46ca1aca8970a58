//go:build !rv32fd

package decode

// Without the rv32fd build tag, the F/D opcode groups (LOAD-FP, STORE-FP,
// the fused-multiply-add family, OP-FP) are simply not recognized: every
// encoding in them decodes to Illegal, the same as any other reserved
// opcode would.

func decodeLoadFP(w uint32) Op  { return Op{Kind: Illegal, Raw: w, Size: 4} }
func decodeStoreFP(w uint32) Op { return Op{Kind: Illegal, Raw: w, Size: 4} }

func decodeFMA(opcode, w uint32) Op { return Op{Kind: Illegal, Raw: w, Size: 4} }

func decodeOpFP(w uint32) Op { return Op{Kind: Illegal, Raw: w, Size: 4} }
