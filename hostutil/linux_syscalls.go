package hostutil

import (
	"io"
	"os"

	"github.com/rv32sim/rvsim/cpu"
)

// Linux RV32 syscall numbers this minimal ABI understands (§9's "Linux
// syscall ABI" example of a host built on the no-trap-vectoring design).
const (
	sysWrite     = 64
	sysExit      = 93
	sysExitGroup = 94
	sysBrk       = 214
)

// LinuxSyscalls implements SystemCalls with just enough of the Linux
// user-mode RV32 ABI to run simple statically-linked guest binaries
// non-interactively: write to stdout/stderr, brk, and exit. Anything else
// returns ENOSYS in a0 and does not halt.
type LinuxSyscalls struct {
	Mem Memory

	// Stdout/Stderr receive write(2) output; default to os.Stdout/os.Stderr
	// when nil.
	Stdout io.Writer
	Stderr io.Writer

	// ExitCode is set when the guest calls exit/exit_group.
	ExitCode int32

	brk uint32 // current program break, 0 until first brk call sets it
}

// Memory mirrors interp.Memory so hostutil does not need to import interp
// just to name the type its LinuxSyscalls implementation reads from.
type Memory interface {
	Fetch(addr uint32) (uint16, bool)
	Load(addr uint32, width uint8) (uint32, bool)
	Store(addr uint32, width uint8, value uint32) bool
}

const enosys = ^uint32(38) + 1 // -ENOSYS

// ECall implements interp.SystemCalls. a7 holds the syscall number, a0..a2
// the first three arguments, a0 the return value on completion.
func (l *LinuxSyscalls) ECall(s *cpu.State) (halt bool) {
	switch s.ReadX(17) {
	case sysWrite:
		n := l.write(s.ReadX(10), s.ReadX(11), s.ReadX(12))
		s.WriteX(10, n)
		return false

	case sysBrk:
		requested := s.ReadX(10)
		if requested != 0 {
			l.brk = requested
		}
		s.WriteX(10, l.brk)
		return false

	case sysExit, sysExitGroup:
		l.ExitCode = int32(s.ReadX(10))
		return true

	default:
		s.WriteX(10, enosys)
		return false
	}
}

func (l *LinuxSyscalls) write(fd, addr, count uint32) uint32 {
	var w io.Writer
	switch fd {
	case 1:
		w = l.Stdout
		if w == nil {
			w = os.Stdout
		}
	case 2:
		w = l.Stderr
		if w == nil {
			w = os.Stderr
		}
	default:
		return enosys
	}

	buf := make([]byte, 0, count)
	for i := uint32(0); i < count; i++ {
		b, ok := l.Mem.Load(addr+i, 1)
		if !ok {
			break
		}
		buf = append(buf, byte(b))
	}
	n, err := w.Write(buf)
	if err != nil {
		return enosys
	}
	return uint32(n)
}
