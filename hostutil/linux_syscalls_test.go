package hostutil

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rv32sim/rvsim/cpu"
)

func TestLinuxSyscallsWrite(t *testing.T) {
	mem := NewFlatMemory(0x100)
	mem.LoadImage(0x40, []byte("hi\n"))
	var out bytes.Buffer
	sys := &LinuxSyscalls{Mem: mem, Stdout: &out}

	s := &cpu.State{}
	s.WriteX(17, sysWrite)
	s.WriteX(10, 1)
	s.WriteX(11, 0x40)
	s.WriteX(12, 3)

	halt := sys.ECall(s)
	require.False(t, halt)
	assert.EqualValues(t, 3, s.ReadX(10))
	assert.Equal(t, "hi\n", out.String())
}

func TestLinuxSyscallsExit(t *testing.T) {
	sys := &LinuxSyscalls{}
	s := &cpu.State{}
	s.WriteX(17, sysExit)
	s.WriteX(10, 7)
	halt := sys.ECall(s)
	assert.True(t, halt)
	assert.EqualValues(t, 7, sys.ExitCode)
}

func TestLinuxSyscallsBrkTracksProgramBreak(t *testing.T) {
	sys := &LinuxSyscalls{}
	s := &cpu.State{}
	s.WriteX(17, sysBrk)
	s.WriteX(10, 0x10000)
	sys.ECall(s)
	assert.EqualValues(t, 0x10000, s.ReadX(10))

	s.WriteX(10, 0) // query current break
	sys.ECall(s)
	assert.EqualValues(t, 0x10000, s.ReadX(10))
}

func TestLinuxSyscallsUnknownReturnsEnosys(t *testing.T) {
	sys := &LinuxSyscalls{}
	s := &cpu.State{}
	s.WriteX(17, 999)
	halt := sys.ECall(s)
	assert.False(t, halt)
	assert.EqualValues(t, enosys, s.ReadX(10))
}
