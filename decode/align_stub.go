//go:build !rv32c

package decode

// InstructionAlignment is the minimum PC alignment the interpreter enforces
// on branch/jump targets: 4 bytes when the compressed extension is not
// built in, since every instruction is then a full word.
const InstructionAlignment = 4
