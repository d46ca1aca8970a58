// Command rvdbg is an interactive instruction-level debugger for rvsim, grounded
// in the teacher's debug_monitor.go/terminal_host.go pair: stdin is put into
// raw mode so single keystrokes reach the monitor without line buffering,
// the same pattern the teacher uses for its own interactive terminal chip
// input (terminal_host.go).
package main

import (
	"bufio"
	"flag"
	"fmt"
	"log"
	"os"

	"golang.org/x/term"

	"github.com/rv32sim/rvsim/cpu"
	"github.com/rv32sim/rvsim/decode"
	"github.com/rv32sim/rvsim/hostutil"
	"github.com/rv32sim/rvsim/sim"
)

func main() {
	log.SetFlags(0)

	loadAddr := flag.Uint64("load-addr", 0, "guest address the image is loaded at")
	memSize := flag.Int("mem", 16*1024*1024, "guest memory size in bytes")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: rvdbg [options] image.bin\n\nInteractive step debugger for a flat RV32 image.\n\nOptions:\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(1)
	}

	image, err := os.ReadFile(flag.Arg(0))
	if err != nil {
		log.Fatalf("rvdbg: %v", err)
	}

	mem := hostutil.NewFlatMemory(*memSize)
	mem.LoadImage(uint32(*loadAddr), image)
	sys := &hostutil.LinuxSyscalls{Mem: mem}
	state := &cpu.State{PC: uint32(*loadAddr)}
	s := sim.NewSimulator(state, mem, sys)

	mon := &monitor{sim: s, mem: mem}
	mon.run()
}

// monitor is the debugger's command loop: single-letter commands (s)tep,
// (c)ontinue, (r)egisters, (b)reakpoint, (q)uit, mirroring the teacher's
// MachineMonitor command surface at a scale that fits one hart and no
// windowing system.
type monitor struct {
	sim         *sim.Simulator
	mem         *hostutil.FlatMemory
	breakpoints map[uint32]bool
}

func (m *monitor) run() {
	fd := int(os.Stdin.Fd())
	isTerminal := term.IsTerminal(fd)

	var oldState *term.State
	if isTerminal {
		var err error
		oldState, err = term.MakeRaw(fd)
		if err != nil {
			log.Fatalf("rvdbg: failed to set raw mode: %v", err)
		}
		defer term.Restore(fd, oldState)
	}

	m.breakpoints = make(map[uint32]bool)
	fmt.Fprint(os.Stdout, "rvsim debugger — s step, c continue, r registers, b <addr> breakpoint, q quit\r\n")
	m.printState()

	reader := bufio.NewReader(os.Stdin)
	for {
		fmt.Fprint(os.Stdout, "> ")
		b, err := reader.ReadByte()
		if err != nil {
			return
		}
		switch b {
		case 's':
			m.step()
		case 'c':
			m.cont()
		case 'r':
			m.printState()
		case 'b':
			line, _ := reader.ReadString('\n')
			var addr uint32
			if _, err := fmt.Sscanf(line, "%x", &addr); err == nil {
				m.breakpoints[addr] = true
				fmt.Fprintf(os.Stdout, "\r\nbreakpoint set at 0x%08x\r\n", addr)
			}
		case 'q':
			return
		case '\r', '\n':
			// ignore bare Enter between commands
		default:
			fmt.Fprintf(os.Stdout, "\r\nunknown command %q\r\n", b)
		}
	}
}

func (m *monitor) step() {
	pc := m.sim.State.PC
	op, trap := m.sim.Step()
	fmt.Fprintf(os.Stdout, "\r\n%s\r\n", decode.Disassemble(pc, op))
	if trap != nil {
		fmt.Fprintf(os.Stdout, "trap: %s (tval=0x%08x)\r\n", trap.Cause, trap.Tval)
	}
	m.printState()
}

func (m *monitor) cont() {
	for {
		pc := m.sim.State.PC
		if m.breakpoints[pc] {
			fmt.Fprintf(os.Stdout, "\r\nbreakpoint hit at 0x%08x\r\n", pc)
			m.printState()
			return
		}
		_, trap := m.sim.Step()
		if trap != nil {
			if trap.Cause == sim.EnvironmentCall && !trap.Halt {
				m.sim.State.PC = m.sim.State.Mepc + 4
				continue
			}
			fmt.Fprintf(os.Stdout, "\r\ntrap: %s (tval=0x%08x)\r\n", trap.Cause, trap.Tval)
			m.printState()
			return
		}
	}
}

func (m *monitor) printState() {
	s := m.sim.State
	fmt.Fprintf(os.Stdout, "pc=%08x  a0=%08x a1=%08x a2=%08x  cycles=%d\r\n",
		s.PC, s.ReadX(10), s.ReadX(11), s.ReadX(12), m.sim.Clock.Cycles())
}
