package sim

import (
	"sync"

	"github.com/sirupsen/logrus"
)

// State is a Driver's lifecycle state (spec §4.5).
type State int

const (
	StateInit State = iota
	StateRunning
	StatePaused
	StateHalted
	StateFinished
)

func (s State) String() string {
	switch s {
	case StateInit:
		return "init"
	case StateRunning:
		return "running"
	case StatePaused:
		return "paused"
	case StateHalted:
		return "halted"
	case StateFinished:
		return "finished"
	default:
		return "unknown"
	}
}

// Driver owns the fixed-timestep simulation loop over a Context. It is a
// single logical thread of control (spec §5): all per-step computation is
// sequential, and the only suspension point is the pause wait at the top of
// each iteration of the Run loop.
type Driver struct {
	ctx *Context

	mu    sync.Mutex
	cond  *sync.Cond
	state State
}

// NewDriver wraps a Context in a Driver, ready to Run.
func NewDriver(ctx *Context) *Driver {
	d := &Driver{ctx: ctx, state: StateInit}
	d.cond = sync.NewCond(&d.mu)
	return d
}

// State returns the driver's current lifecycle state.
func (d *Driver) State() State {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.state
}

// Context returns the underlying simulation context.
func (d *Driver) Context() *Context {
	return d.ctx
}

// Run advances the clock one step at a time, applying the forcing and
// engine ordering contract from spec §4.5/§5, until the clock reaches its
// configured end time or the driver is halted. It blocks while paused.
func (d *Driver) Run() error {
	d.mu.Lock()
	if d.state != StateHalted {
		d.state = StateRunning
	}
	d.mu.Unlock()

	for {
		d.mu.Lock()
		for d.state == StatePaused {
			d.cond.Wait()
		}
		halted := d.state == StateHalted
		d.mu.Unlock()
		if halted {
			return d.ctx.Flush()
		}

		if d.ctx.Clock.Done() {
			break
		}
		if err := d.step(); err != nil {
			return err
		}
	}

	d.mu.Lock()
	d.state = StateFinished
	d.mu.Unlock()
	return d.ctx.Flush()
}

// step advances the clock by one timestep and applies the forcing/engine
// ordering contract (spec §4.5 step 4, §5 "Ordering guarantees"):
// BCs -> gauge salinity -> tides -> rain -> ET -> runoff -> shoal solver ->
// mass transport -> depth update -> output sampling.
func (d *Driver) step() error {
	ctx := d.ctx
	ctx.Clock.Advance()

	ctx.ApplyFixedBC()
	ctx.ApplyDynamicBC()
	ctx.ApplyGaugeSalinity()
	ctx.ApplyTide()
	ctx.ApplyRain()
	ctx.ApplyET()
	ctx.ApplyRunoffStage()

	ctx.ShoalVelocities()
	if err := ctx.MassTransport(); err != nil {
		return err
	}
	ctx.UpdateDepths()

	ctx.Series().Sample(ctx)
	return nil
}

// Pause requests the driver suspend at the top of its next step.
func (d *Driver) Pause() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.state == StateRunning {
		d.state = StatePaused
	}
}

// Resume releases a paused driver to continue running.
func (d *Driver) Resume() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.state == StatePaused {
		d.state = StateRunning
		d.cond.Broadcast()
	}
}

// Halt requests the driver stop at the top of its next step, or
// immediately if it is currently paused (spec §5, "Cancellation").
func (d *Driver) Halt() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.state = StateHalted
	d.cond.Broadcast()
	logrus.Info("bam: run halted")
}
