// Command rvsim loads a flat RV32 binary image and runs it against
// hostutil's reference Memory and SystemCalls, in the style of the
// teacher's cmd/ie32to64: flags declared at package scope inside main,
// parsed once, errors reported with log.Fatalf.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/rv32sim/rvsim/cpu"
	"github.com/rv32sim/rvsim/decode"
	"github.com/rv32sim/rvsim/hostutil"
	"github.com/rv32sim/rvsim/sim"
)

type config struct {
	loadAddr uint32
	entry    uint32
	memSize  int
	maxSteps uint64
	trace    bool
}

func main() {
	log.SetFlags(0)

	loadAddr := flag.Uint64("load-addr", 0, "guest address the image is loaded at")
	entry := flag.Uint64("entry", 0, "guest address execution starts at (defaults to -load-addr)")
	memSize := flag.Int("mem", 16*1024*1024, "guest memory size in bytes")
	maxSteps := flag.Uint64("max-steps", 1_000_000, "stop after this many committed instructions")
	trace := flag.Bool("trace", false, "write a disassembly trace of every step to stderr")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: rvsim [options] image.bin\n\nRuns a flat RV32 binary image.\n\nOptions:\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(1)
	}

	cfg := config{
		loadAddr: uint32(*loadAddr),
		entry:    uint32(*entry),
		memSize:  *memSize,
		maxSteps: *maxSteps,
		trace:    *trace,
	}
	if cfg.entry == 0 {
		cfg.entry = cfg.loadAddr
	}

	image, err := os.ReadFile(flag.Arg(0))
	if err != nil {
		log.Fatalf("rvsim: %s: %v", flag.Arg(0), err)
	}

	exitCode, err := run(cfg, image, os.Stderr)
	if err != nil {
		log.Fatalf("rvsim: %v", err)
	}
	os.Exit(int(exitCode))
}

func run(cfg config, image []byte, traceOut *os.File) (int32, error) {
	if int(cfg.loadAddr)+len(image) > cfg.memSize {
		return 0, fmt.Errorf("image of %d bytes at 0x%x does not fit in %d bytes of memory", len(image), cfg.loadAddr, cfg.memSize)
	}

	mem := hostutil.NewFlatMemory(cfg.memSize)
	mem.LoadImage(cfg.loadAddr, image)

	sys := &hostutil.LinuxSyscalls{Mem: mem}
	state := &cpu.State{PC: cfg.entry}
	s := sim.NewSimulator(state, mem, sys)

	var tracer *log.Logger
	if cfg.trace {
		tracer = log.New(traceOut, "", 0)
	}

	for steps := uint64(0); steps < cfg.maxSteps; steps++ {
		pcBefore := state.PC
		op, trap := s.Step()
		if tracer != nil {
			tracer.Printf("%08x: %s  x1=%08x x2=%08x pc->%08x", pcBefore, decode.Disassemble(pcBefore, op), state.ReadX(1), state.ReadX(2), state.PC)
		}
		if trap == nil {
			continue
		}
		if trap.Cause == sim.EnvironmentCall {
			if !trap.Halt {
				state.PC = state.Mepc + 4
				continue
			}
			return sys.ExitCode, nil
		}
		return 0, fmt.Errorf("%s at pc=0x%08x (tval=0x%08x)", trap.Cause, pcBefore, trap.Tval)
	}

	return 0, fmt.Errorf("exceeded max-steps (%d) without halting", cfg.maxSteps)
}
