//go:build rv32c

package decode

// InstructionAlignment is the minimum PC alignment the interpreter enforces
// on branch/jump targets: 2 bytes once the compressed extension is built in.
const InstructionAlignment = 2
