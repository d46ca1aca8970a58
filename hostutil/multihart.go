package hostutil

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/rv32sim/rvsim/sim"
)

// MultiHart schedules N independent sim.Simulator instances concurrently,
// the external-scheduling story spec.md §5 describes: "callers wishing to
// simulate multiple harts instantiate multiple simulators and schedule them
// externally". There is no shared state between harts here — each owns its
// own CpuState and Memory; MultiHart only waits for all of them to stop.
type MultiHart struct {
	harts []*sim.Simulator
}

// NewMultiHart wires up a harness over the given simulators. Each must
// already have its own state, memory and system-call hook.
func NewMultiHart(harts ...*sim.Simulator) *MultiHart {
	return &MultiHart{harts: harts}
}

// RunAll runs every hart up to maxSteps concurrently and returns the trap
// each one stopped on, indexed the same way the harts were supplied. A nil
// entry means that hart ran to maxSteps without trapping, or never started
// because ctx was already cancelled. Cancelling ctx
// stops new harts from starting; harts already running are not interrupted
// mid-step, matching the core's synchronous-callback contract (§5).
func (h *MultiHart) RunAll(ctx context.Context, maxSteps uint64) []*sim.Trap {
	traps := make([]*sim.Trap, len(h.harts))
	g, ctx := errgroup.WithContext(ctx)

	for i, hart := range h.harts {
		i, hart := i, hart
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}
			traps[i] = hart.Run(maxSteps)
			return nil
		})
	}

	// Every goroutine above only ever returns nil or ctx.Err(); a run
	// stopping on a guest trap is reported through traps, not through an
	// error, so there is nothing else to surface here.
	_ = g.Wait()
	return traps
}
